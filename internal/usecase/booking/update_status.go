package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/audit"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute provede přechod stavu podle životního cyklu
// (pending→confirmed|cancelled, confirmed→cancelled|completed).
// Libovolný přepis stavu umí jen raw edit rezervace.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
	to domain.Status,
) (*models.Booking, error) {

	if !to.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if !domain.CanTransition(domain.Status(b.Status), to) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	updated, err := uc.repo.UpdateBookingStatus(ctx, bookingID, to)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Actor:    audit.ActorAdmin,
		Action:   "booking_status_" + string(to),
		Entity:   "booking",
		EntityID: &updated.ID,
	})

	return updated, nil
}
