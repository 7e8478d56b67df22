package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "kimono:plan:"

// RedisPlanCache stores serialized public plan views with a fixed TTL.
type RedisPlanCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{
		client: client,
		prefix: planKeyPrefix,
		ttl:    ttl,
	}
}

// Get returns nil, nil when the plan is not cached.
func (c *RedisPlanCache) Get(ctx context.Context, planID string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.buildKey(planID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plan from redis: %w", err)
	}
	return data, nil
}

func (c *RedisPlanCache) Set(ctx context.Context, planID string, payload []byte) error {
	if planID == "" {
		return errors.New("plan id cannot be empty")
	}
	if err := c.client.Set(ctx, c.buildKey(planID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store plan in redis: %w", err)
	}
	return nil
}

func (c *RedisPlanCache) Invalidate(ctx context.Context, planID string) error {
	if err := c.client.Del(ctx, c.buildKey(planID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan in redis: %w", err)
	}
	return nil
}

func (c *RedisPlanCache) buildKey(planID string) string {
	return c.prefix + planID
}
