package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharpfade/booking-api/internal/config"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/timezone"
	ucBooking "github.com/sharpfade/booking-api/internal/usecase/booking"
)

// PublicHandler serves the unauthenticated booking flow: browse
// availability, then submit a chosen slot. The slot list is advisory;
// the create path re-validates at commit time.
type PublicHandler struct {
	cfg *config.Config

	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateAppointment
}

func NewPublicHandler(
	cfg *config.Config,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		cfg:            cfg,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateAppointmentRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	CustomerID *uint  `json:"customer_id"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`

	IdempotencyKey string `json:"idempotency_key" binding:"required"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || barberIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "barber_id, service_id and date are required.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	date, err := parseDate(h.cfg, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:  uint(barberID),
			ServiceID: uint(serviceID),
			Date:      date,
			Now:       timezone.NowIn(h.cfg.Timezone),
		},
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE APPOINTMENT (self-service → Pending)
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	var customer domain.CustomerRef
	if req.CustomerID != nil {
		customer = domain.RegisteredCustomer(*req.CustomerID)
	} else {
		customer = domain.GuestCustomer(req.GuestName, req.GuestPhone)
	}

	ap, replayed, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateInput{
		BarberID:       req.BarberID,
		ServiceID:      req.ServiceID,
		Customer:       customer,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
		Now:            timezone.NowIn(h.cfg.Timezone),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if replayed {
		c.JSON(http.StatusOK, ap)
		return
	}
	c.JSON(http.StatusCreated, ap)
}
