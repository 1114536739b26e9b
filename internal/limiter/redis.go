package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisLimiter counts attempts in Redis so the limit holds across server
// instances.
type redisLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedis creates a Redis-backed attempt limiter.
func NewRedis(client *redis.Client, maxAttempts int, window time.Duration) AttemptLimiter {
	return &redisLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *redisLimiter) key(key string) string {
	return "pulso:login_attempts:" + key
}

// Allowed reports whether another attempt is permitted for the key.
func (l *redisLimiter) Allowed(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Get(ctx, l.key(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return count < l.maxAttempts, nil
}

// RecordFailure registers a failed attempt for the key. The window TTL is
// set on the first failure and left untouched afterwards, giving a fixed
// window per burst.
func (l *redisLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempt counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set attempt window: %w", err)
		}
	}

	return nil
}

// Reset clears the attempt counter for the key.
func (l *redisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt counter: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (l *redisLimiter) Close() error {
	return l.client.Close()
}

var _ AttemptLimiter = (*redisLimiter)(nil)
