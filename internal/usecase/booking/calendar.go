package booking

import (
	"context"
	"time"

	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/dto"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/timezone"
)

// Calendar agreguje rezervace pro zobrazovací okno (den/týden/měsíc).
// Čistě čtecí, sdílí ho admin kalendář i veřejný dotaz na dostupnost.
type Calendar struct {
	repo domain.Repository
}

func NewCalendar(repo domain.Repository) *Calendar {
	return &Calendar{repo: repo}
}

// Range vrací rezervace v rozsahu dat seřazené podle (datum, začátek),
// spojené s klientem a službou.
func (uc *Calendar) Range(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]dto.BookingListDTO, error) {

	start, err := time.ParseInLocation("2006-01-02", startDate, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	end, err := time.ParseInLocation("2006-01-02", endDate, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	bookings, err := uc.repo.ListBookingsInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return dto.BookingsToListDTO(bookings), nil
}

// SlotOccupants vrací rezervace začínající v konkrétním termínu dne
// (naplnění jednoho slotu v kalendáři).
func (uc *Calendar) SlotOccupants(
	ctx context.Context,
	dateStr string,
	timeStr string,
) ([]dto.BookingListDTO, error) {

	if _, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location()); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, err := domain.ParseClock(timeStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	bookings, err := uc.repo.ListBookingsByDateAndTime(ctx, dateStr, start.String())
	if err != nil {
		return nil, err
	}

	return dto.BookingsToListDTO(bookings), nil
}
