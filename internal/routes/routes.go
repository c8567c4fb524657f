package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/audit"
	"github.com/yung988/eliceli-salon/internal/cache"
	"github.com/yung988/eliceli-salon/internal/config"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/handlers"
	infraRepo "github.com/yung988/eliceli-salon/internal/infra/repository"
	"github.com/yung988/eliceli-salon/internal/middleware"
	ucbooking "github.com/yung988/eliceli-salon/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	cacheClient := cache.New(cfg.RedisURL, log)

	hours := domain.DefaultBusinessHours()

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucbooking.NewGetAvailability(bookingRepo, hours, log)

	createBookingUC := ucbooking.NewCreateBooking(
		bookingRepo,
		hours,
		auditDispatcher,
		log,
	)

	createFromCalendarUC := ucbooking.NewCreateFromCalendar(
		bookingRepo,
		auditDispatcher,
	)

	updateStatusUC := ucbooking.NewUpdateStatus(bookingRepo, auditDispatcher)

	calendarUC := ucbooking.NewCalendar(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		bookingRepo,
		availabilityUC,
		createBookingUC,
		cacheClient,
	)

	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		updateStatusUC,
		auditDispatcher,
		cacheClient,
	)

	calendarHandler := handlers.NewCalendarHandler(
		calendarUC,
		createFromCalendarUC,
		hours,
		cacheClient,
	)

	clientHandler := handlers.NewClientHandler(bookingRepo)
	dashboardHandler := handlers.NewDashboardHandler(db)
	auditLogHandler := handlers.NewAuditLogHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// VEŘEJNÉ API (rezervační formulář)
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/availability", publicHandler.Availability)
		api.POST("/bookings", publicHandler.CreateBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN API
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/bookings", bookingHandler.List)
			admin.GET("/bookings/:id", bookingHandler.Detail)
			admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			admin.PUT("/bookings/:id", bookingHandler.Update)
			admin.DELETE("/bookings/:id", bookingHandler.Delete)

			admin.GET("/calendar", calendarHandler.Range)
			admin.GET("/calendar/slot", calendarHandler.SlotOccupants)
			admin.POST("/calendar/bookings", calendarHandler.Create)

			admin.GET("/business-hours", calendarHandler.BusinessHours)

			admin.GET("/clients", clientHandler.List)

			admin.GET("/dashboard", dashboardHandler.Stats)

			admin.GET("/audit-logs", auditLogHandler.List)
		}
	}
}
