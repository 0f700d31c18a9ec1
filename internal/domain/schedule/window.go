package schedule

import (
	"time"

	"github.com/sharpfade/booking-api/internal/models"
)

// Window is a barber's concrete working interval on one date.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps a weekly template entry onto date. It returns
// ok=false when the barber does not work that day: nil entry (never
// configured), day-off flag, or unusable times. "Not working" is a
// normal value here, never an error.
func ResolveWindow(entry *models.WeeklySchedule, date time.Time) (Window, bool) {
	if entry == nil || entry.IsDayOff {
		return Window{}, false
	}
	if entry.StartTime == "" || entry.EndTime == "" {
		return Window{}, false
	}

	start, okStart := atTimeOfDay(entry.StartTime, date)
	end, okEnd := atTimeOfDay(entry.EndTime, date)
	if !okStart || !okEnd || !end.After(start) {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}

func atTimeOfDay(hm string, date time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}
