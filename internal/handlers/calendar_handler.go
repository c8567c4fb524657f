package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yung988/eliceli-salon/internal/cache"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/httpresp"
	"github.com/yung988/eliceli-salon/internal/middleware"
	ucbooking "github.com/yung988/eliceli-salon/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	calendarUC *ucbooking.Calendar
	createUC   *ucbooking.CreateFromCalendar
	hours      domain.BusinessHours
	cache      *cache.Cache
}

func NewCalendarHandler(
	calendarUC *ucbooking.Calendar,
	createUC *ucbooking.CreateFromCalendar,
	hours domain.BusinessHours,
	c *cache.Cache,
) *CalendarHandler {
	return &CalendarHandler{
		calendarUC: calendarUC,
		createUC:   createUC,
		hours:      hours,
		cache:      c,
	}
}

// ======================================================
// DTOs
// ======================================================

type CreateFromCalendarRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	ServiceID uint `json:"service_id" binding:"required"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type DayHoursDTO struct {
	Open   int  `json:"open"`
	Close  int  `json:"close"`
	Closed bool `json:"closed"`
}

// ======================================================
// RANGE
// ======================================================

func (h *CalendarHandler) Range(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		httperr.BadRequest(c, "missing_params", "Rozsah start a end je povinný.")
		return
	}

	bookings, err := h.calendarUC.Range(c.Request.Context(), start, end)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
		case httperr.IsBusiness(err, "invalid_date_range"):
			httperr.BadRequest(c, "invalid_date_range", "Konec rozsahu je před začátkem.")
		default:
			httperr.Internal(c, "calendar_failed", "Nepodařilo se načíst kalendář.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":    start,
		"end":      end,
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// ======================================================
// SLOT DETAIL
// ======================================================

func (h *CalendarHandler) SlotOccupants(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")

	if dateStr == "" || timeStr == "" {
		httperr.BadRequest(c, "missing_params", "Datum a čas jsou povinné.")
		return
	}

	bookings, err := h.calendarUC.SlotOccupants(c.Request.Context(), dateStr, timeStr)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Neplatné datum.")
		case httperr.IsBusiness(err, "invalid_time"):
			httperr.BadRequest(c, "invalid_time", "Neplatný čas.")
		default:
			httperr.Internal(c, "calendar_failed", "Nepodařilo se načíst termín.")
		}
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// BUSINESS HOURS (pro mřížku kalendáře v adminu)
// ======================================================

func (h *CalendarHandler) BusinessHours(c *gin.Context) {
	out := make(map[string]DayHoursDTO, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		dh, open := h.hours.HoursFor(d)
		out[d.String()] = DayHoursDTO{
			Open:   dh.Open,
			Close:  dh.Close,
			Closed: !open,
		}
	}
	httpresp.OK(c, out)
}

// ======================================================
// CREATE FROM CALENDAR
// ======================================================

func (h *CalendarHandler) Create(c *gin.Context) {
	var req CreateFromCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Neplatná data rezervace.")
		return
	}

	adminID := middleware.ContextAdminID(c)

	booking, err := h.createUC.Execute(c.Request.Context(), adminID, ucbooking.CreateFromCalendarInput{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		mapCreateBookingError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), booking.BookingDate)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": booking,
	})
}
