package handlers

import (
	"time"

	"github.com/sharpfade/booking-api/internal/config"
	"github.com/sharpfade/booking-api/internal/timezone"
)

// All request dates/times are interpreted in the shop's configured
// timezone.

func shopLocation(cfg *config.Config) *time.Location {
	return timezone.Location(cfg.Timezone)
}

func parseDate(cfg *config.Config, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		shopLocation(cfg),
	)
}

func parseDateTime(cfg *config.Config, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		shopLocation(cfg),
	)
}
