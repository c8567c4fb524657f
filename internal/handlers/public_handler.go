package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yung988/eliceli-salon/internal/cache"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/httpresp"
	ucbooking "github.com/yung988/eliceli-salon/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	repo           domain.Repository
	availabilityUC *ucbooking.GetAvailability
	createUC       *ucbooking.CreateBooking
	cache          *cache.Cache
}

func NewPublicHandler(
	repo domain.Repository,
	availabilityUC *ucbooking.GetAvailability,
	createUC *ucbooking.CreateBooking,
	c *cache.Cache,
) *PublicHandler {
	return &PublicHandler{
		repo:           repo,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cache:          c,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// SERVICES (ceník, řazený podle ceny)
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	if services, ok := h.cache.GetServices(ctx); ok {
		httpresp.List(c, services)
		return
	}

	services, err := h.repo.ListServices(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Nepodařilo se načíst služby.")
		return
	}

	h.cache.SetServices(ctx, services)
	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Datum a služba jsou povinné.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Neplatná služba.")
		return
	}

	ctx := c.Request.Context()

	if slots, ok := h.cache.GetSlots(ctx, dateStr, uint(serviceID)); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availabilityUC.Execute(ctx, dateStr, uint(serviceID))
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
			return
		}
		httperr.Internal(c, "availability_failed", "Nepodařilo se spočítat volné termíny.")
		return
	}

	h.cache.SetSlots(ctx, dateStr, uint(serviceID), slots)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE BOOKING
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Neplatná data rezervace.")
		return
	}

	booking, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.Name,
		ClientEmail: req.Email,
		ClientPhone: req.Phone,
		Notes:       req.Notes,
	})

	if err != nil {
		mapCreateBookingError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), booking.BookingDate)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"reference": booking.Reference,
		"booking":   booking,
	})
}

func mapCreateBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Neplatný čas.")
	case httperr.IsBusiness(err, "invalid_contact"):
		httperr.BadRequest(c, "invalid_contact", "Neplatné kontaktní údaje.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Neplatná služba.")
	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.BadRequest(c, "outside_business_hours", "Mimo otevírací dobu salonu.")
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.BadRequest(c, "client_not_found", "Klient nenalezen.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Neplatný stav rezervace.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Termín je již obsazený, vyberte prosím jiný.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Rezervaci se nepodařilo vytvořit.")
	}
}
