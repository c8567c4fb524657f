package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/audit"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/timezone"
	"github.com/yung988/eliceli-salon/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	ClientName  string
	ClientEmail string
	ClientPhone string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	hours domain.BusinessHours
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	hours domain.BusinessHours,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		hours: hours,
		audit: auditDispatcher,
		log:   log,
	}
}

// Execute vytvoří potvrzenou rezervaci z veřejného formuláře.
// end_time se odvodí z délky služby jednou a zmrazí; upsert klienta a
// insert rezervace běží v jedné transakci v repozitáři.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Validace vstupu
	// --------------------------------------------------
	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	if in.ClientName == "" || !validators.IsValidEmail(in.ClientEmail) {
		return nil, httperr.ErrBusiness("invalid_contact")
	}

	// --------------------------------------------------
	// Služba a odvozený konec
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	duration := service.DurationMin
	if duration <= 0 {
		duration = domain.DefaultDurationMin
	}

	interval := domain.NewInterval(start, duration)

	// --------------------------------------------------
	// Otevírací doba (zavřený den i přesah zavíračky odmítáme)
	// --------------------------------------------------
	dayHours, open := uc.hours.HoursFor(date.Weekday())
	if !open {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	window := dayHours.Window()
	if interval.Start < window.Start || interval.End > window.End {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// Zápis (klient + rezervace v jedné transakci)
	// --------------------------------------------------
	b := &models.Booking{
		Reference:   uuid.NewString(),
		ServiceID:   service.ID,
		BookingDate: in.Date,
		StartTime:   interval.Start.String(),
		EndTime:     interval.End.String(),
		Status:      string(domain.StatusConfirmed),
		Notes:       in.Notes,
	}

	client := domain.ClientInput{
		Name:  in.ClientName,
		Email: in.ClientEmail,
		Phone: in.ClientPhone,
	}

	if err := uc.repo.CreateBooking(ctx, client, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPublic,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
