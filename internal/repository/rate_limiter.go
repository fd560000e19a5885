package repository

import (
	"context"
	"time"
)

// RateLimiter counts actions per user inside a rolling window. Allow
// increments the counter and reports whether the action is still within
// the limit. Backed by Redis in production, a map in tests.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
