package dto

import "github.com/yung988/eliceli-salon/internal/models"

// BookingListDTO je řádek pro admin výpis a kalendář: rezervace
// spojená s klientem a službou.
type BookingListDTO struct {
	ID          uint   `json:"id"`
	Reference   string `json:"reference"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	ServiceID          uint    `json:"service_id"`
	ServiceName        string  `json:"service_name"`
	ServicePrice       float64 `json:"service_price"`
	ServiceDurationMin int     `json:"service_duration_min"`
}

func BookingToListDTO(b models.Booking) BookingListDTO {
	return BookingListDTO{
		ID:          b.ID,
		Reference:   b.Reference,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		Notes:       b.Notes,

		ClientID:    b.ClientID,
		ClientName:  b.Client.Name,
		ClientEmail: b.Client.Email,
		ClientPhone: b.Client.Phone,

		ServiceID:          b.ServiceID,
		ServiceName:        b.Service.Name,
		ServicePrice:       b.Service.Price,
		ServiceDurationMin: b.Service.DurationMin,
	}
}

func BookingsToListDTO(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToListDTO(b))
	}
	return out
}
