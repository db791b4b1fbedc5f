// Package ratelimit counts requests per key in fixed windows stored in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
	Close() error
}

type RedisLimiter struct {
	redis *redis.Client
	now   func() time.Time
}

func NewRedisLimiter(ctx context.Context, redisURL string) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisLimiter{redis: client, now: time.Now}, nil
}

// Allow increments the counter of the current window and reports whether the
// request is within limit, together with the count so far.
func (rl *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	windowKey := WindowKey(key, rl.now(), window)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	count := int(incr.Val())
	return count <= limit, count, nil
}

func (rl *RedisLimiter) Close() error {
	return rl.redis.Close()
}

func WindowKey(key string, now time.Time, window time.Duration) string {
	seconds := int64(window / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	return fmt.Sprintf("ratelimit:%s:%d", key, now.Unix()/seconds)
}

// Unlimited allows everything. Used when no Redis is configured.
type Unlimited struct{}

func (Unlimited) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	return true, 0, nil
}

func (Unlimited) Close() error {
	return nil
}
