package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/middleware"
	"github.com/sharpfade/booking-api/internal/models"
)

// ScheduleHandler lets a barber manage their weekly template. The
// template feeds the availability computation; editing it never
// touches existing appointments.
type ScheduleHandler struct {
	repo domain.Repository
}

func NewScheduleHandler(repo domain.Repository) *ScheduleHandler {
	return &ScheduleHandler{repo: repo}
}

type ScheduleDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsDayOff  bool   `json:"is_day_off"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required,dive"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	entries, err := h.repo.ListSchedule(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Failed to load schedule.")
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule payload.")
		return
	}

	seen := map[int]bool{}
	entries := make([]models.WeeklySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once.")
			return
		}
		seen[d.Weekday] = true

		if !d.IsDayOff && !validHM(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_working_window", "Working days need a valid HH:MM window.")
			return
		}

		entries = append(entries, models.WeeklySchedule{
			BarberID:  barberID,
			Weekday:   d.Weekday,
			IsDayOff:  d.IsDayOff,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if err := h.repo.ReplaceSchedule(c.Request.Context(), barberID, entries); err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Failed to save schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validHM(start, end string) bool {
	s, errS := time.Parse("15:04", start)
	e, errE := time.Parse("15:04", end)
	return errS == nil && errE == nil && e.After(s)
}
