package booking

import (
	"time"

	"github.com/sharpfade/booking-api/internal/models"
)

// EffectiveEnd extends an appointment end by its service buffer. The
// buffer is read live from the service, not snapshotted at booking.
func EffectiveEnd(end time.Time, bufferMin int) time.Time {
	if bufferMin <= 0 {
		return end
	}
	return end.Add(time.Duration(bufferMin) * time.Minute)
}

// Overlaps reports whether the half-open intervals [a0,a1) and [b0,b1)
// intersect. A booking ending exactly when another starts is not a
// conflict.
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && b0.Before(a1)
}

// FindConflict returns the first active appointment whose effective
// window overlaps the candidate effective window [start, end+buffer),
// skipping excludeID (the appointment being edited, 0 for none).
// Existing appointments must carry their Service for live buffer reads.
func FindConflict(
	start time.Time,
	end time.Time,
	bufferMin int,
	existing []models.Appointment,
	excludeID uint,
) *models.Appointment {

	candEnd := EffectiveEnd(end, bufferMin)

	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID {
			continue
		}
		if !IsActive(Status(ap.Status)) {
			continue
		}
		apEnd := EffectiveEnd(ap.EndTime, ap.Service.BufferMin)
		if Overlaps(start, candEnd, ap.StartTime, apEnd) {
			return ap
		}
	}
	return nil
}
