package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharpfade/booking-api/internal/cache"
	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type BookingGormRepository struct {
	db    *gorm.DB
	cache *cache.ScheduleCache

	// forUpdate is set on the transaction-scoped instance handed to
	// WithBarberLock callbacks; only those reads take row locks.
	forUpdate bool
}

func NewBookingGormRepository(db *gorm.DB, scheduleCache *cache.ScheduleCache) *BookingGormRepository {
	return &BookingGormRepository{db: db, cache: scheduleCache}
}

// --------------------------------------------------
// Barber / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ?", id, []string{models.RoleBarber, models.RoleAdmin}).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetScheduleEntry(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WeeklySchedule, error) {

	if entry, ok := r.cache.Get(ctx, barberID, weekday); ok {
		return entry, nil
	}

	var entry models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, &entry)
	return &entry, nil
}

func (r *BookingGormRepository) ListSchedule(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklySchedule, error) {

	var entries []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *BookingGormRepository) ReplaceSchedule(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklySchedule,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})

	if err != nil {
		return err
	}

	r.cache.Invalidate(ctx, barberID)
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentByKey(
	ctx context.Context,
	key string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) ListActiveForBarberBetween(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	q := r.db.WithContext(ctx)
	for _, cond := range r.activeListingClauses() {
		q = q.Clauses(cond)
	}
	if err := q.
		Preload("Service").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, activeStatuses, to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// activeListingClauses returns the row-lock clause for the listing
// that feeds conflict checks. The ungated availability path reads
// without locking; inside a barber scope the rows are pinned until
// the transaction commits.
func (r *BookingGormRepository) activeListingClauses() []clause.Expression {
	if !r.forUpdate {
		return nil
	}
	return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
}

func (r *BookingGormRepository) ListForBarberPeriod(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Atomicity
// --------------------------------------------------

// WithBarberLock serializes writers per barber with a transaction-
// scoped Postgres advisory lock. Two concurrent creates for the same
// barber cannot both observe "slot free": the second waits for the
// first to commit and then re-reads.
func (r *BookingGormRepository) WithBarberLock(
	ctx context.Context,
	barberID uint,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			int64(barberID),
		).Error; err != nil {
			return err
		}

		return fn(&BookingGormRepository{db: tx, cache: r.cache, forUpdate: true})
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
