package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharpfade/booking-api/internal/httperr"
)

// bookingErrorMessages maps business codes to user-facing text.
var bookingErrorMessages = map[string]string{
	httperr.CodeSlotUnavailable:   "The requested slot is no longer available.",
	httperr.CodeInvalidTransition: "The appointment cannot change to that status.",
	"invalid_date_or_time":        "Invalid date or time.",
	"too_soon":                    "The requested time is too soon.",
	"in_the_past":                 "The requested time is in the past.",
	"outside_working_hours":       "The barber does not work at that time.",
	"service_not_found":           "Unknown or inactive service.",
	"barber_not_found":            "Unknown barber.",
	"appointment_not_found":       "Appointment not found.",
	"appointment_not_active":      "The appointment is no longer active.",
	"missing_customer":            "Customer name and phone are required.",
	"ambiguous_customer":          "Provide either a customer id or guest details, not both.",
	"missing_idempotency_key":     "An idempotency key is required.",
	"invalid_idempotency_key":     "The idempotency key must be a UUID.",
	"invalid_status":              "Unknown appointment status.",
	"invalid_policy":              "Unknown emergency policy.",
	"invalid_target_barber":       "A different target barber is required for the move policy.",
}

// writeBookingError maps a use-case error onto HTTP. Business-expected
// conditions keep their code and metadata; anything else is a generic
// 500 safe to retry in full.
func writeBookingError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected failure, safe to retry.")
		return
	}

	msg := bookingErrorMessages[be.Code]
	if msg == "" {
		msg = "Request rejected."
	}

	status := http.StatusBadRequest
	switch be.Code {
	case httperr.CodeSlotUnavailable:
		status = http.StatusConflict
	case httperr.CodeInvalidTransition:
		status = http.StatusUnprocessableEntity
	case "appointment_not_found", "barber_not_found", "service_not_found":
		status = http.StatusNotFound
	}

	httperr.WriteBusiness(c, status, be, msg)
}
