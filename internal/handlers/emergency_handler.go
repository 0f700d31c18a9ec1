package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharpfade/booking-api/internal/config"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/middleware"
	"github.com/sharpfade/booking-api/internal/models"
	"github.com/sharpfade/booking-api/internal/timezone"
	ucBooking "github.com/sharpfade/booking-api/internal/usecase/booking"
)

// EmergencyHandler resolves a barber's whole day after an unplanned
// absence. The response is a report, not an all-or-nothing result:
// under the move policy some appointments may stay behind and must be
// reviewed manually.
type EmergencyHandler struct {
	cfg         *config.Config
	emergencyUC *ucBooking.HandleEmergency
}

func NewEmergencyHandler(cfg *config.Config, emergencyUC *ucBooking.HandleEmergency) *EmergencyHandler {
	return &EmergencyHandler{cfg: cfg, emergencyUC: emergencyUC}
}

type EmergencyRequest struct {
	BarberID       uint   `json:"barber_id"`
	Date           string `json:"date" binding:"required"`
	Policy         string `json:"policy" binding:"required,oneof=cancel move"`
	TargetBarberID uint   `json:"target_barber_id"`
}

func (h *EmergencyHandler) Handle(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req EmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid emergency payload.")
		return
	}

	// A barber reports their own absence; an admin may name another.
	barberID := req.BarberID
	if barberID == 0 {
		barberID = actorID
	}
	role := c.MustGet(middleware.ContextUserRole).(string)
	if barberID != actorID && role != models.RoleAdmin {
		httperr.Forbidden(c, "insufficient_role", "Only admins may act for another barber.")
		return
	}

	date, err := parseDate(h.cfg, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	report, err := h.emergencyUC.Execute(c.Request.Context(), actorID, ucBooking.EmergencyInput{
		BarberID:       barberID,
		Date:           date,
		Policy:         ucBooking.Policy(req.Policy),
		TargetBarberID: req.TargetBarberID,
		Now:            timezone.NowIn(h.cfg.Timezone),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
