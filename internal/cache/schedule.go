package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sharpfade/booking-api/internal/models"
)

// ScheduleCache keeps weekly schedule rows in Redis. Schedules are
// read on every availability query but edited rarely, and staleness is
// not safety-critical: a stale entry at worst offers a slot the
// commit-time conflict check will still validate. A nil client
// disables the cache.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

func key(barberID uint, weekday int) string {
	return fmt.Sprintf("schedule:%d:%d", barberID, weekday)
}

// Get returns the cached entry and whether the lookup hit. Redis
// errors degrade to a miss; the caller falls back to the database.
func (c *ScheduleCache) Get(ctx context.Context, barberID uint, weekday int) (*models.WeeklySchedule, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key(barberID, weekday)).Result()
	if err != nil {
		return nil, false
	}

	var entry models.WeeklySchedule
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, false
	}

	return &entry, true
}

func (c *ScheduleCache) Set(ctx context.Context, entry *models.WeeklySchedule) {
	if c == nil || c.client == nil || entry == nil {
		return
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return
	}

	c.client.Set(ctx, key(entry.BarberID, entry.Weekday), b, c.ttl)
}

// Invalidate drops all seven weekday keys for the barber.
func (c *ScheduleCache) Invalidate(ctx context.Context, barberID uint) {
	if c == nil || c.client == nil {
		return
	}

	keys := make([]string, 0, 7)
	for wd := 0; wd < 7; wd++ {
		keys = append(keys, key(barberID, wd))
	}
	c.client.Del(ctx, keys...)
}
