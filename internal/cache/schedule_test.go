package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpfade/booking-api/internal/models"
)

func newTestCache(t *testing.T) (*ScheduleCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewScheduleCache(client, 5*time.Minute), mr
}

func TestScheduleCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	entry := &models.WeeklySchedule{
		BarberID:  1,
		Weekday:   int(time.Monday),
		StartTime: "09:00",
		EndTime:   "17:00",
	}
	c.Set(ctx, entry)

	got, hit := c.Get(ctx, 1, int(time.Monday))
	require.True(t, hit)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "17:00", got.EndTime)
}

func TestScheduleCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, hit := c.Get(context.Background(), 1, int(time.Friday))
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestScheduleCache_InvalidateDropsAllWeekdays(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for wd := 0; wd < 7; wd++ {
		c.Set(ctx, &models.WeeklySchedule{BarberID: 1, Weekday: wd, StartTime: "09:00", EndTime: "17:00"})
	}
	c.Set(ctx, &models.WeeklySchedule{BarberID: 2, Weekday: 1, StartTime: "10:00", EndTime: "18:00"})

	c.Invalidate(ctx, 1)

	for wd := 0; wd < 7; wd++ {
		_, hit := c.Get(ctx, 1, wd)
		assert.False(t, hit, "weekday %d", wd)
	}

	// Other barbers keep their entries.
	_, hit := c.Get(ctx, 2, 1)
	assert.True(t, hit)
}

func TestScheduleCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, &models.WeeklySchedule{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "17:00"})
	mr.FastForward(6 * time.Minute)

	_, hit := c.Get(ctx, 1, 1)
	assert.False(t, hit)
}

func TestScheduleCache_NilClientDisables(t *testing.T) {
	var c *ScheduleCache
	ctx := context.Background()

	c.Set(ctx, &models.WeeklySchedule{BarberID: 1, Weekday: 1})
	_, hit := c.Get(ctx, 1, 1)
	assert.False(t, hit)
	c.Invalidate(ctx, 1)

	disabled := NewScheduleCache(nil, time.Minute)
	disabled.Set(ctx, &models.WeeklySchedule{BarberID: 1, Weekday: 1})
	_, hit = disabled.Get(ctx, 1, 1)
	assert.False(t, hit)
}
