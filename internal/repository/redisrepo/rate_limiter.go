package redisrepo

import (
	"context"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type rateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) repository.RateLimiter {
	return &rateLimiter{client: client}
}

// Allow implements a fixed-window counter: INCR the key and attach the
// window TTL on first increment. Counting before the limit check means a
// denied action still consumes nothing extra on retry.
func (l *rateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
