package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/audit"
	"github.com/yung988/eliceli-salon/internal/cache"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/dto"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/httpresp"
	"github.com/yung988/eliceli-salon/internal/middleware"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/timezone"
	ucbooking "github.com/yung988/eliceli-salon/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo           domain.Repository
	updateStatusUC *ucbooking.UpdateStatus
	audit          *audit.Dispatcher
	cache          *cache.Cache
}

func NewBookingHandler(
	repo domain.Repository,
	updateStatusUC *ucbooking.UpdateStatus,
	auditDispatcher *audit.Dispatcher,
	c *cache.Cache,
) *BookingHandler {
	return &BookingHandler{
		repo:           repo,
		updateStatusUC: updateStatusUC,
		audit:          auditDispatcher,
		cache:          c,
	}
}

// ======================================================
// DTOs
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Raw edit přepisuje hodnoty tak, jak přijdou z formuláře.
// end_time se znovu neodvozuje a stav se nevaliduje proti přechodům.
type UpdateBookingRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// LIST + DETAIL
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	filter := domain.ListFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	if filter.Date != "" {
		if _, err := time.ParseInLocation("2006-01-02", filter.Date, timezone.Location()); err != nil {
			httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
			return
		}
	}

	bookings, err := h.repo.ListBookings(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Nepodařilo se načíst rezervace.")
		return
	}

	httpresp.List(c, dto.BookingsToListDTO(bookings))
}

func (h *BookingHandler) Detail(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	booking, err := h.repo.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Rezervace nenalezena.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Nepodařilo se načíst rezervaci.")
		return
	}

	httpresp.OK(c, booking)
}

// ======================================================
// STATUS (pending→confirmed|cancelled, confirmed→cancelled|completed)
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Stav je povinný.")
		return
	}

	adminID := middleware.ContextAdminID(c)

	booking, err := h.updateStatusUC.Execute(
		c.Request.Context(), adminID, id, domain.Status(req.Status),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Rezervace nenalezena.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Neplatný stav rezervace.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Tento přechod stavu není povolen.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Nepodařilo se změnit stav.")
		}
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), booking.BookingDate)
	httpresp.OK(c, booking)
}

// ======================================================
// RAW EDIT
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Neplatná data rezervace.")
		return
	}

	if _, err := time.ParseInLocation("2006-01-02", req.BookingDate, timezone.Location()); err != nil {
		httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
		return
	}
	if _, err := domain.ParseInterval(req.StartTime, req.EndTime); err != nil {
		httperr.BadRequest(c, "invalid_time", "Neplatný čas.")
		return
	}

	ctx := c.Request.Context()

	booking, err := h.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Rezervace nenalezena.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Nepodařilo se načíst rezervaci.")
		return
	}

	oldDate := booking.BookingDate

	booking.ClientID = req.ClientID
	booking.ServiceID = req.ServiceID
	booking.BookingDate = req.BookingDate
	booking.StartTime = req.StartTime
	booking.EndTime = req.EndTime
	booking.Status = req.Status
	booking.Notes = req.Notes
	booking.Client = models.Client{}
	booking.Service = models.Service{}

	if err := h.repo.UpdateBooking(ctx, booking); err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Nepodařilo se uložit rezervaci.")
		return
	}

	adminID := middleware.ContextAdminID(c)
	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Actor:    audit.ActorAdmin,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	h.cache.InvalidateDate(ctx, oldDate)
	if booking.BookingDate != oldDate {
		h.cache.InvalidateDate(ctx, booking.BookingDate)
	}

	httpresp.OK(c, booking)
}

// ======================================================
// DELETE (tvrdé smazání, historie zůstává jen v audit logu)
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ctx := c.Request.Context()

	booking, err := h.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Rezervace nenalezena.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Nepodařilo se načíst rezervaci.")
		return
	}

	if err := h.repo.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Rezervace nenalezena.")
			return
		}
		httperr.Internal(c, "failed_to_delete_booking", "Nepodařilo se smazat rezervaci.")
		return
	}

	adminID := middleware.ContextAdminID(c)
	h.audit.Dispatch(audit.Event{
		AdminID:  &adminID,
		Actor:    audit.ActorAdmin,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &id,
	})

	h.cache.InvalidateDate(ctx, booking.BookingDate)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Neplatné ID.")
		return 0, err
	}
	return uint(id), nil
}
