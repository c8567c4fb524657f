package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/validators"
)

type BookingGormRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewBookingGormRepository(db *gorm.DB, log zerolog.Logger) *BookingGormRepository {
	return &BookingGormRepository{db: db, log: log}
}

// --------------------------------------------------
// Services (referenční data)
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("price ASC").
		Find(&services).Error; err != nil {

		r.log.Error().Err(err).Msg("list services failed")
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// BlockedIntervals vrací obsazené intervaly dne; jen potvrzené
// rezervace blokují termín.
func (r *BookingGormRepository) BlockedIntervals(ctx context.Context, date string) ([]domain.TimeInterval, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where("booking_date = ? AND status = ?", date, domain.StatusConfirmed).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {

		r.log.Error().Err(err).Str("date", date).Msg("blocked intervals query failed")
		return nil, err
	}

	intervals := make([]domain.TimeInterval, 0, len(bookings))
	for _, b := range bookings {
		iv, err := domain.ParseInterval(b.StartTime, b.EndTime)
		if err != nil {
			r.log.Warn().Uint("booking_id", b.ID).Msg("skipping booking with malformed time")
			continue
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) FindClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", validators.NormalizeEmail(email)).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) UpsertClient(ctx context.Context, name, email, phone string) (*models.Client, error) {
	var client *models.Client
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		client, txErr = upsertClientTx(tx, name, email, phone)
		return txErr
	})
	if err != nil {
		r.log.Error().Err(err).Msg("client upsert failed")
		return nil, err
	}
	return client, nil
}

// upsertClientTx: lookup podle normalizovaného e-mailu; nalezený klient
// dostane nové jméno a telefon bez detekce konfliktu (last writer wins).
func upsertClientTx(tx *gorm.DB, name, email, phone string) (*models.Client, error) {
	normalized := validators.NormalizeEmail(email)

	var client models.Client
	err := tx.Where("email = ?", normalized).First(&client).Error

	if err == nil {
		client.Name = name
		client.Phone = phone
		if err := tx.Save(&client).Error; err != nil {
			return nil, err
		}
		return &client, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Email: normalized,
		Phone: phone,
	}
	if err := tx.Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{})

	if search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		r.log.Error().Err(err).Msg("list clients failed")
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

// CreateBooking drží upsert klienta, kontrolu konfliktu a insert
// v jedné transakci. Překryv se testuje znovu při zápisu, ne jen při
// výpisu dostupnosti; dvě souběžné rezervace téhož termínu tak
// nemohou obě projít. Přesné duplikáty navíc odmítá částečný unique
// index na potvrzených rezervacích.
func (r *BookingGormRepository) CreateBooking(ctx context.Context, in domain.ClientInput, b *models.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := resolveClientTx(tx, in)
		if err != nil {
			return err
		}
		b.ClientID = client.ID

		if domain.Status(b.Status).Blocks() {
			var conflicts []models.Booking
			if err := tx.
				Select("id").
				Where(
					"booking_date = ? AND status = ? AND start_time < ? AND end_time > ?",
					b.BookingDate, domain.StatusConfirmed, b.EndTime, b.StartTime,
				).
				Find(&conflicts).Error; err != nil {
				return err
			}

			if len(conflicts) > 0 {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		return tx.Create(b).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("time_conflict")
		}
		if !httperr.IsBusiness(err, "time_conflict") && !httperr.IsBusiness(err, "client_not_found") {
			r.log.Error().Err(err).Msg("create booking failed")
		}
		return err
	}

	return nil
}

func resolveClientTx(tx *gorm.DB, in domain.ClientInput) (*models.Client, error) {
	if in.ID != 0 {
		var client models.Client
		if err := tx.First(&client, in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("client_not_found")
			}
			return nil, err
		}
		return &client, nil
	}

	return upsertClientTx(tx, in.Name, in.Email, in.Phone)
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Client").
		Preload("Service")

	if f.Date != "" {
		q = q.Where("booking_date = ?", f.Date)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if f.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Select("bookings.*").
			Joins("JOIN clients ON clients.id = bookings.client_id").
			Where(
				"LOWER(clients.name) LIKE ? OR LOWER(clients.email) LIKE ? OR clients.phone LIKE ?",
				like, like, like,
			)
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date DESC, start_time ASC").
		Find(&bookings).Error; err != nil {

		r.log.Error().Err(err).Msg("list bookings failed")
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsInRange(ctx context.Context, startDate, endDate string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("booking_date BETWEEN ? AND ?", startDate, endDate).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {

		r.log.Error().Err(err).Msg("range query failed")
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsByDateAndTime(ctx context.Context, date, startTime string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("booking_date = ? AND start_time = ?", date, startTime).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {

		r.log.Error().Err(err).Msg("slot occupants query failed")
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking (mutace)
// --------------------------------------------------

func (r *BookingGormRepository) UpdateBookingStatus(ctx context.Context, id uint, status domain.Status) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}

	b.Status = string(status)
	if err := r.db.WithContext(ctx).Save(&b).Error; err != nil {
		r.log.Error().Err(err).Uint("booking_id", id).Msg("status update failed")
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error; err != nil {
		r.log.Error().Err(err).Uint("booking_id", b.ID).Msg("booking update failed")
		return err
	}
	return nil
}

func (r *BookingGormRepository) DeleteBooking(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		r.log.Error().Err(res.Error).Uint("booking_id", id).Msg("booking delete failed")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
