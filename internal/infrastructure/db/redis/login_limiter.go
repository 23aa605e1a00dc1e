package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter counts login attempts per key in fixed windows backed by Redis.
// Key format: login:attempts:<key>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Non-positive arguments fall back to
// 10 attempts per 15 minutes.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records an attempt for key. When the window is exhausted it returns
// false and the time left until the window resets.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("login limiter expire: %w", err)
		}
	}

	if n <= int64(l.maxAttempts) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("login limiter ttl: %w", err)
	}
	if ttl < 0 {
		// The key lost its expiry; restore it so the client is not locked out forever.
		ttl = l.window
		_ = l.client.Expire(ctx, k, ttl).Err()
	}
	return false, ttl, nil
}

// Reset clears the attempts recorded for key, typically after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *LoginLimiter) key(key string) string {
	return "login:attempts:" + key
}
