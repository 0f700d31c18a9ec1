package booking

import (
	"context"
	"time"

	"github.com/sharpfade/booking-api/internal/models"
)

type Repository interface {
	// -------- Barber / Service --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Weekly schedule --------

	// GetScheduleEntry returns (nil, nil) when no row exists for the
	// weekday; absence means "not working".
	GetScheduleEntry(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WeeklySchedule, error)

	ListSchedule(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklySchedule, error)

	ReplaceSchedule(
		ctx context.Context,
		barberID uint,
		entries []models.WeeklySchedule,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByKey(
		ctx context.Context,
		key string,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListActiveForBarberBetween returns pending/confirmed
	// appointments intersecting [from, to), Service preloaded,
	// ordered by start time.
	ListActiveForBarberBetween(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListForBarberPeriod(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Atomicity --------

	// WithBarberLock runs fn inside an atomic scope that serializes
	// all writers for the barber. The conflict check and the
	// persistence write for a slot must both happen inside fn.
	WithBarberLock(
		ctx context.Context,
		barberID uint,
		fn func(Repository) error,
	) error
}
