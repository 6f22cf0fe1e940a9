// Package ratelimit implements a fixed-window request counter on
// redis. The window is created by the first request and expires on its
// own; the reset time surfaces to throttled callers.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one limit check.
type Result struct {
	Allowed bool
	ResetAt time.Time
}

// RetryAfter returns how long the caller must wait before retrying.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.ResetAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// counter is the minimal command surface the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	PExpire(ctx context.Context, key string, ttl time.Duration) error
	PTTL(ctx context.Context, key string) (time.Duration, error)
}

// Limiter counts requests per key in fixed windows.
type Limiter struct {
	c   counter
	now func() time.Time
}

// NewLimiter builds a limiter on a redis client.
func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{c: redisCounter{rdb: rdb}, now: time.Now}
}

// Check increments the counter for key and reports whether the request
// is within limit for the current window.
func (l *Limiter) Check(ctx context.Context, key string, limit int, windowSeconds int) (Result, error) {
	window := time.Duration(windowSeconds) * time.Second
	counterKey := fmt.Sprintf("rate:%s", key)

	n, err := l.c.Incr(ctx, counterKey)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		// First hit opens the window.
		if err := l.c.PExpire(ctx, counterKey, window); err != nil {
			return Result{}, fmt.Errorf("rate limit expire: %w", err)
		}
		return Result{Allowed: true, ResetAt: l.now().Add(window)}, nil
	}

	ttl, err := l.c.PTTL(ctx, counterKey)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// Counter exists without expiry (lost between INCR and
		// PEXPIRE); restore the window rather than stay stuck.
		if err := l.c.PExpire(ctx, counterKey, window); err != nil {
			return Result{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = window
	}

	return Result{
		Allowed: n <= int64(limit),
		ResetAt: l.now().Add(ttl),
	}, nil
}

type redisCounter struct {
	rdb *redis.Client
}

func (r redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

func (r redisCounter) PExpire(ctx context.Context, key string, ttl time.Duration) error {
	return r.rdb.PExpire(ctx, key, ttl).Err()
}

func (r redisCounter) PTTL(ctx context.Context, key string) (time.Duration, error) {
	return r.rdb.PTTL(ctx, key).Result()
}
