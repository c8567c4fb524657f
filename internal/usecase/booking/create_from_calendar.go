package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/yung988/eliceli-salon/internal/audit"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// Kalendářní vytvoření z adminu: explicitní konec i stav, klient buď
// podle ID, nebo upsert podle e-mailu. Dostupnost se tu záměrně
// nevaliduje, salon si může zapsat termín i mimo otevírací dobu;
// konflikt u potvrzeného stavu ale pořád odchytí transakce v repozitáři.
type CreateFromCalendarInput struct {
	ClientID    uint
	ClientName  string
	ClientEmail string
	ClientPhone string

	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM

	Status string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateFromCalendar struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateFromCalendar(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CreateFromCalendar {
	return &CreateFromCalendar{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CreateFromCalendar) Execute(
	ctx context.Context,
	adminID uint,
	in CreateFromCalendarInput,
) (*models.Booking, error) {

	interval, err := domain.ParseInterval(in.StartTime, in.EndTime)
	if err != nil || interval.End <= interval.Start {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	status := domain.Status(in.Status)
	if !status.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	if in.ClientID == 0 && in.ClientEmail == "" {
		return nil, httperr.ErrBusiness("invalid_contact")
	}

	b := &models.Booking{
		Reference:   uuid.NewString(),
		ServiceID:   in.ServiceID,
		BookingDate: in.Date,
		StartTime:   interval.Start.String(),
		EndTime:     interval.End.String(),
		Status:      string(status),
		Notes:       in.Notes,
	}

	client := domain.ClientInput{
		ID:    in.ClientID,
		Name:  in.ClientName,
		Email: in.ClientEmail,
		Phone: in.ClientPhone,
	}

	if err := uc.repo.CreateBooking(ctx, client, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Actor:    audit.ActorAdmin,
		Action:   "booking_created_from_calendar",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
