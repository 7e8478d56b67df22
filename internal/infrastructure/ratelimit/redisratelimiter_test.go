package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	rule := Rule{Limit: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4", rule)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "1.2.3.4", rule)
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")

	allowed, err = limiter.Allow(ctx, "5.6.7.8", rule)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are not affected")
}

func TestRedisRateLimiter_RemainingAndReset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	rule := Rule{Limit: 5, Window: time.Minute}

	remaining, err := limiter.GetRemaining(ctx, "key", rule)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "key", rule)
		require.NoError(t, err)
	}
	remaining, err = limiter.GetRemaining(ctx, "key", rule)
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining)

	require.NoError(t, limiter.Reset(ctx, "key"))
	remaining, err = limiter.GetRemaining(ctx, "key", rule)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)
}

func TestRedisRateLimiter_DisabledRuleAllows(t *testing.T) {
	// No Redis round trip happens for a zero rule.
	limiter := NewRedisRateLimiter(redis.NewClient(&redis.Options{Addr: "localhost:0"}))
	allowed, err := limiter.Allow(context.Background(), "key", Rule{})
	require.NoError(t, err)
	assert.True(t, allowed)
}
