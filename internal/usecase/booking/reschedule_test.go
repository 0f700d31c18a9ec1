package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
)

func TestReschedule_MovesToTargetBarber(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusConfirmed), 10, 0))

	newStart := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), 99, id, 2, newStart)
	require.NoError(t, err)

	assert.Equal(t, uint(2), ap.BarberID)
	assert.Equal(t, newStart, ap.StartTime)
	assert.Equal(t, newStart.Add(30*time.Minute), ap.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
}

func TestReschedule_SameBarberDifferentTime(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusConfirmed), 10, 0))

	// Moving within its own day must not collide with itself.
	newStart := time.Date(2024, 6, 10, 10, 15, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), 99, id, 1, newStart)
	require.NoError(t, err)
	assert.Equal(t, newStart, ap.StartTime)
}

func TestReschedule_TargetSlotTaken(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusConfirmed), 10, 0))
	repo.addAppointment(appointmentAt(2, string(domain.StatusPending), 10, 0))

	_, err := uc.Execute(context.Background(), 99, id, 2, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestReschedule_OutsideTargetWindow(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusConfirmed), 10, 0))

	// 18:00 is past the target's 17:00 close. Reported as the slot
	// being unavailable, same as a taken one.
	_, err := uc.Execute(context.Background(), 99, id, 2, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestReschedule_InactiveAppointment(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusCancelled), 10, 0))

	_, err := uc.Execute(context.Background(), 99, id, 2, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC))
	assert.True(t, httperr.IsBusiness(err, "appointment_not_active"))
}

// cancelBeforeLockRepo cancels the appointment right before the lock
// is taken, simulating a transition that commits between Reschedule's
// initial read and its locked write.
type cancelBeforeLockRepo struct {
	*fakeRepo
	appointmentID uint
}

func (r *cancelBeforeLockRepo) WithBarberLock(ctx context.Context, barberID uint, fn func(domain.Repository) error) error {
	if ap, err := r.fakeRepo.GetAppointment(ctx, r.appointmentID); err == nil {
		ap.Status = string(domain.StatusCancelled)
		now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
		ap.CancelledAt = &now
		if err := r.fakeRepo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
	}
	return r.fakeRepo.WithBarberLock(ctx, barberID, fn)
}

func TestReschedule_ConcurrentCancelIsNotOverwritten(t *testing.T) {
	repo, _ := emergencyFixture(t)
	id := repo.addAppointment(appointmentAt(1, string(domain.StatusConfirmed), 10, 0))
	uc := NewReschedule(&cancelBeforeLockRepo{fakeRepo: repo, appointmentID: id}, nil)

	_, err := uc.Execute(context.Background(), 99, id, 2, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC))
	assert.True(t, httperr.IsBusiness(err, "appointment_not_active"))

	// The terminal state sticks; the move never resurrects it.
	stored, getErr := repo.GetAppointment(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, uint(1), stored.BarberID)
	assert.NotNil(t, stored.CancelledAt)
}

func TestReschedule_UnknownAppointment(t *testing.T) {
	repo, _ := emergencyFixture(t)
	uc := NewReschedule(repo, nil)

	_, err := uc.Execute(context.Background(), 99, 404, 2, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC))
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
