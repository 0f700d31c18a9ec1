package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Exactly one of CustomerID or GuestName+GuestPhone is set.
	CustomerID *uint  `json:"customer_id"`
	Customer   *User  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	GuestName  string `gorm:"size:100" json:"guest_name"`
	GuestPhone string `gorm:"size:20" json:"guest_phone"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	// Service price at booking time. Never recomputed if the
	// catalog price changes later.
	TotalPrice float64 `json:"total_price"`

	IdempotencyKey *string `gorm:"size:36;uniqueIndex" json:"idempotency_key,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
