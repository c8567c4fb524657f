package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// ======================================================
// DTOs
// ======================================================

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PopularService struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type DashboardStats struct {
	TotalBookings    int64            `json:"total_bookings"`
	TodayBookings    int64            `json:"today_bookings"`
	TotalClients     int64            `json:"total_clients"`
	BookingsByStatus []StatusCount    `json:"bookings_by_status"`
	PopularServices  []PopularService `json:"popular_services"`
}

// ======================================================
// STATS
// ======================================================

// Stats agreguje přehled pro úvodní stránku adminu. Všechno jsou
// rychlé agregace nad indexovanými sloupci, takže bez cache.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	var stats DashboardStats

	if err := db.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		httperr.Internal(c, "stats_failed", "Nepodařilo se načíst statistiky.")
		return
	}

	if err := db.Model(&models.Booking{}).
		Where("booking_date = ?", timezone.Today()).
		Count(&stats.TodayBookings).Error; err != nil {
		httperr.Internal(c, "stats_failed", "Nepodařilo se načíst statistiky.")
		return
	}

	if err := db.Model(&models.Client{}).Count(&stats.TotalClients).Error; err != nil {
		httperr.Internal(c, "stats_failed", "Nepodařilo se načíst statistiky.")
		return
	}

	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.BookingsByStatus).Error; err != nil {
		httperr.Internal(c, "stats_failed", "Nepodařilo se načíst statistiky.")
		return
	}

	if err := db.Model(&models.Booking{}).
		Select("bookings.service_id, services.name, COUNT(*) as count").
		Joins("JOIN services ON services.id = bookings.service_id").
		Group("bookings.service_id, services.name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.PopularServices).Error; err != nil {
		httperr.Internal(c, "stats_failed", "Nepodařilo se načíst statistiky.")
		return
	}

	c.JSON(http.StatusOK, stats)
}
