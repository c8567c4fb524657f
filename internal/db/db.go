package db

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/config"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/validators"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	seedServices(db, log)
	seedAdmin(db, cfg, log)

	return db
}

// Migrate provede automigraci a doplní omezení, která AutoMigrate
// neumí. Používají ji i testy nad sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Client{},
		&models.Booking{},
		&models.AdminUser{},
		&models.AuditLog{},
	); err != nil {
		return err
	}
	return ApplyConstraints(db)
}

// ApplyConstraints přidá částečný unikátní index: dvě potvrzené
// rezervace nemohou začínat ve stejný den ve stejný čas. Poslední
// pojistka proti souběžnému dvojitému zápisu, transakce v repozitáři
// řeší běžný případ.
func ApplyConstraints(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_confirmed_slot
		ON bookings (booking_date, start_time)
		WHERE status = 'confirmed'
	`).Error
}

func seedServices(db *gorm.DB, log zerolog.Logger) {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	services := []models.Service{
		{Name: "Dámský střih", Description: "Mytí, střih, foukaná a styling", DurationMin: 60, Price: 850},
		{Name: "Pánský střih", Description: "Střih a styling", DurationMin: 30, Price: 450},
		{Name: "Barvení", Description: "Barvení celé délky vlasů včetně střihu", DurationMin: 120, Price: 1900},
		{Name: "Melír", Description: "Melírování, tónování a foukaná", DurationMin: 150, Price: 2400},
		{Name: "Foukaná", Description: "Mytí a foukaná", DurationMin: 30, Price: 350},
		{Name: "Společenský účes", Description: "Účes na svatbu nebo ples", DurationMin: 90, Price: 1200},
	}

	if err := db.Create(&services).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed services")
		return
	}
	log.Info().Int("count", len(services)).Msg("seeded services")
}

func seedAdmin(db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	email := validators.NormalizeEmail(cfg.AdminEmail)

	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin password")
		return
	}

	admin := models.AdminUser{
		Name:         cfg.AdminName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("seeded admin user")
}
