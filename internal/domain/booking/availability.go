package booking

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint

	// Midnight of the requested day in the shop timezone.
	Date time.Time

	// Reference instant for "already past" filtering; explicit so
	// availability is deterministic under test.
	Now time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
