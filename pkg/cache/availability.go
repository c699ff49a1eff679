package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const availabilityTTL = 30 * time.Second

// AvailabilityCache is a read-through cache for confirmed-seat counts.
// A miss or redis failure always falls back to the database; entries are
// invalidated whenever a reservation is created, cancelled or promoted.
type AvailabilityCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, log *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		log:    log.With(zap.String("cache", "availability")),
	}
}

func availabilityKey(classID uuid.UUID) string {
	return fmt.Sprintf("class:%s:confirmed", classID.String())
}

// GetConfirmedCount returns the cached count and whether it was present
func (c *AvailabilityCache) GetConfirmedCount(ctx context.Context, classID uuid.UUID) (int64, bool) {
	if c.client == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, availabilityKey(classID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("Availability cache read failed",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}

	return count, true
}

func (c *AvailabilityCache) SetConfirmedCount(ctx context.Context, classID uuid.UUID, count int64) {
	if c.client == nil {
		return
	}

	if err := c.client.Set(ctx, availabilityKey(classID), count, availabilityTTL).Err(); err != nil {
		c.log.Warn("Availability cache write failed",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
	}
}

// Invalidate drops the cached count after any reservation state change
func (c *AvailabilityCache) Invalidate(ctx context.Context, classID uuid.UUID) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, availabilityKey(classID)).Err(); err != nil {
		c.log.Warn("Availability cache invalidation failed",
			zap.Error(err),
			zap.String("class_id", classID.String()),
		)
	}
}
