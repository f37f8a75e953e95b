package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
)

// Availability slots change on every booking mutation, so the TTL is
// short; correctness rides on explicit invalidation, the TTL only bounds
// staleness if an invalidation is lost.
const availabilityTTL = 2 * time.Minute

// AvailabilityCache keeps per-professional per-day free slots in Redis.
// Every operation degrades to a miss on Redis errors: the cache is an
// optimization, never an authority.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb}
}

func key(professionalID uint, serviceID uint, date string) string {
	return fmt.Sprintf("avail:%d:%d:%s", professionalID, serviceID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date string,
) ([]domain.TimeSlot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(professionalID, serviceID, date)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("availability cache read failed")
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date string,
	slots []domain.TimeSlot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(professionalID, serviceID, date), raw, availabilityTTL).Err(); err != nil {
		logrus.WithError(err).Warn("availability cache write failed")
	}
}

// Invalidate drops every cached day for the professional. Slot keys carry
// the service id, so a pattern scan covers all services at once.
func (c *AvailabilityCache) Invalidate(ctx context.Context, professionalID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*", professionalID)

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.WithError(err).Warn("availability cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Warn("availability cache scan failed")
	}
}
