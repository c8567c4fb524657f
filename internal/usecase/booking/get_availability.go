package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	hours domain.BusinessHours
	log   zerolog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.BusinessHours,
	log zerolog.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		hours: hours,
		log:   log,
	}
}

// Execute vrací volné začátky termínů ("HH:MM", vzestupně) pro den a
// službu. Zavřený den je prázdný výsledek, ne chyba.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	dateStr string,
	serviceID uint,
) ([]string, error) {

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	dayHours, open := uc.hours.HoursFor(date.Weekday())
	if !open {
		return []string{}, nil
	}

	// Neznámá služba znamená výchozích 60 minut, ne chybu. Záměrná
	// shovívavost; maskuje ale špatné service_id, proto aspoň warn.
	duration := domain.DefaultDurationMin
	service, err := uc.repo.GetService(ctx, serviceID)
	switch {
	case err == nil:
		if service.DurationMin > 0 {
			duration = service.DurationMin
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		uc.log.Warn().
			Uint("service_id", serviceID).
			Msg("unknown service, falling back to default duration")
	default:
		return nil, err
	}

	booked, err := uc.repo.BlockedIntervals(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(dayHours, duration, booked)

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}

	return out, nil
}
