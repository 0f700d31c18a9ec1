package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharpfade/booking-api/internal/config"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/middleware"
	"github.com/sharpfade/booking-api/internal/timezone"
	ucBooking "github.com/sharpfade/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	cfg *config.Config

	createUC       *ucBooking.CreateAppointment
	changeStatusUC *ucBooking.ChangeStatus
	rescheduleUC   *ucBooking.Reschedule
	listUC         *ucBooking.ListAppointments
}

func NewAppointmentHandler(
	cfg *config.Config,
	createUC *ucBooking.CreateAppointment,
	changeStatusUC *ucBooking.ChangeStatus,
	rescheduleUC *ucBooking.Reschedule,
	listUC *ucBooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		cfg:            cfg,
		createUC:       createUC,
		changeStatusUC: changeStatusUC,
		rescheduleUC:   rescheduleUC,
		listUC:         listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WalkInCreateRequest struct {
	BarberID  uint `json:"barber_id"`
	ServiceID uint `json:"service_id" binding:"required"`

	CustomerID *uint  `json:"customer_id"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`

	IdempotencyKey string `json:"idempotency_key"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// ======================================================
// CREATE (walk-in)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req WalkInCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	// Staff booking for themselves unless another barber is named.
	barberID := req.BarberID
	if barberID == 0 {
		barberID = actorID
	}

	var customer domain.CustomerRef
	if req.CustomerID != nil {
		customer = domain.RegisteredCustomer(*req.CustomerID)
	} else {
		customer = domain.GuestCustomer(req.GuestName, req.GuestPhone)
	}

	ap, replayed, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateInput{
		BarberID:       barberID,
		ServiceID:      req.ServiceID,
		Customer:       customer,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
		WalkIn:         true,
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

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDate(h.cfg, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	ap, err := h.changeStatusUC.Execute(
		c.Request.Context(),
		actorID,
		uint(id),
		domain.Status(req.Status),
		timezone.NowIn(h.cfg.Timezone),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid reschedule payload.")
		return
	}

	newStart, err := parseDateTime(h.cfg, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		actorID,
		uint(id),
		req.BarberID,
		newStart,
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
