package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockoutUnavailable indicates the lockout backend is unreachable
var ErrLockoutUnavailable = errors.New("login lockout backend unavailable")

// LoginLimiter tracks failed logins per email
type LoginLimiter interface {
	// Locked reports whether further attempts for key are refused
	Locked(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt and reports whether key is now locked
	RecordFailure(ctx context.Context, key string) (bool, error)
	// Reset clears the counter after a successful login
	Reset(ctx context.Context, key string) error
}

// LockoutConfig holds configuration for the failed-login lockout
type LockoutConfig struct {
	Threshold int           // Failures before the email is locked (default 5)
	Window    time.Duration // Counting window and lock duration (default 15m)
}

// RedisLoginLimiter counts failed logins in Redis. The counter expires one
// window after the first failure, which also ends any lock.
type RedisLoginLimiter struct {
	redis  redis.UniversalClient
	config LockoutConfig
}

// NewRedisLoginLimiter creates a Redis-backed login limiter
func NewRedisLoginLimiter(client redis.UniversalClient, cfg LockoutConfig) *RedisLoginLimiter {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	return &RedisLoginLimiter{redis: client, config: cfg}
}

func (l *RedisLoginLimiter) key(email string) string {
	return "login:fail:" + email
}

// Locked implements LoginLimiter
func (l *RedisLoginLimiter) Locked(ctx context.Context, email string) (bool, error) {
	count, err := l.redis.Get(ctx, l.key(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return count >= int64(l.config.Threshold), nil
}

// RecordFailure implements LoginLimiter
func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, email string) (bool, error) {
	count, err := l.redis.Incr(ctx, l.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, l.key(email), l.config.Window).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
		}
	}

	return count >= int64(l.config.Threshold), nil
}

// Reset implements LoginLimiter
func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return nil
}
