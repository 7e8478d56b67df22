package ratelimit

import (
	"context"
	"time"
)

// Rule caps requests per key inside a sliding window.
type Rule struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	GetRemaining(ctx context.Context, key string, rule Rule) (int64, error)
	Reset(ctx context.Context, key string) error
}
