package models

import "time"

// WeeklySchedule is a barber's recurring template for one weekday
// (0=Sunday..6=Saturday). At most one row per (barber, weekday);
// a missing row means the barber does not work that day.
type WeeklySchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_barber_weekday" json:"weekday"`

	StartTime string `json:"start_time"` // "HH:MM", 24h
	EndTime   string `json:"end_time"`
	IsDayOff  bool   `json:"is_day_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
