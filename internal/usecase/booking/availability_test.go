package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/sharpfade/booking-api/internal/domain/booking"
	"github.com/sharpfade/booking-api/internal/httperr"
	"github.com/sharpfade/booking-api/internal/models"
)

func availabilityFixture(t *testing.T, granularityMin int) (*fakeRepo, *GetAvailability) {
	t.Helper()

	repo := newFakeRepo()
	repo.addBarber(1, "Marco")
	repo.addService(models.Service{
		ID:          1,
		Name:        "Cut",
		DurationMin: 30,
		BufferMin:   10,
		Price:       50,
		Active:      true,
	})
	repo.setWorkday(1, int(time.Monday), "09:00", "17:00")

	return repo, NewGetAvailability(repo, granularityMin)
}

func slotStarts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestAvailability_BufferBlocksAdjacentSlots(t *testing.T) {
	repo, uc := availabilityFixture(t, 10)
	repo.addAppointment(models.Appointment{
		BarberID:  1,
		ServiceID: 1,
		Status:    string(domain.StatusConfirmed),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	starts := slotStarts(slots)
	assert.Contains(t, starts, "09:00")
	// 09:20 ends at 09:50 and its own buffer runs exactly to 10:00:
	// half-open, still free.
	assert.Contains(t, starts, "09:20")
	// From 09:30 the candidate buffer leaks into the busy block; the
	// block plus its 10-minute buffer reaches 10:40.
	assert.NotContains(t, starts, "09:30")
	assert.NotContains(t, starts, "09:50")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:30")
	assert.Contains(t, starts, "10:40")
}

func TestAvailability_FullDayWhenEmpty(t *testing.T) {
	_, uc := availabilityFixture(t, 30)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00 through 16:30 on a 30-minute grid.
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[0].End)
	assert.Equal(t, "16:30", slots[len(slots)-1].Start)
	assert.Equal(t, "17:00", slots[len(slots)-1].End)
}

func TestAvailability_DayOffIsEmptyNotError(t *testing.T) {
	_, uc := availabilityFixture(t, 30)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // Tuesday, no entry
	})
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailability_PastSlotsFilteredByNow(t *testing.T) {
	_, uc := availabilityFixture(t, 30)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	starts := slotStarts(slots)
	assert.NotContains(t, starts, "11:30")
	assert.Contains(t, starts, "12:00")
}

func TestAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	repo, uc := availabilityFixture(t, 30)
	repo.addAppointment(models.Appointment{
		BarberID:  1,
		ServiceID: 1,
		Status:    string(domain.StatusCancelled),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	})

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Contains(t, slotStarts(slots), "10:00")
}

func TestAvailability_InactiveService(t *testing.T) {
	repo, uc := availabilityFixture(t, 30)
	repo.addService(models.Service{ID: 1, Name: "Cut", DurationMin: 30, Active: false})

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  1,
		ServiceID: 1,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
