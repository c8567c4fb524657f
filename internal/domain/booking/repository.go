package booking

import (
	"context"

	"github.com/yung988/eliceli-salon/internal/models"
)

// ClientInput identifikuje klienta rezervace: buď existující ID,
// nebo kontaktní údaje pro upsert podle e-mailu.
type ClientInput struct {
	ID    uint
	Name  string
	Email string
	Phone string
}

// ListFilter pro admin výpis rezervací. Prázdné hodnoty se ignorují.
type ListFilter struct {
	Date   string
	Status string
	Search string
}

type Repository interface {
	// -------- Services (referenční data) --------
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Availability --------
	BlockedIntervals(ctx context.Context, date string) ([]TimeInterval, error)

	// -------- Booking (create) --------
	// CreateBooking běží v jedné transakci: vyřeší klienta (upsert podle
	// e-mailu), u blokujícího stavu znovu ověří konflikt termínu a vloží
	// rezervaci.
	CreateBooking(ctx context.Context, in ClientInput, b *models.Booking) error

	// -------- Booking (read / mutace) --------
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)
	ListBookingsInRange(ctx context.Context, startDate, endDate string) ([]models.Booking, error)
	ListBookingsByDateAndTime(ctx context.Context, date, startTime string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint, status Status) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error

	// -------- Client --------
	FindClientByEmail(ctx context.Context, email string) (*models.Client, error)
	UpsertClient(ctx context.Context, name, email, phone string) (*models.Client, error)
	ListClients(ctx context.Context, search string) ([]models.Client, error)
}
