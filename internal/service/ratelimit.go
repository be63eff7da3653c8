package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"voyago/internal/repository"
)

// LoginLimiter counts failed logins per normalized email and client IP
// in redis. Keys expire on their own, so a quiet account resets without
// any cleanup job.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	if rdb == nil {
		return nil
	}
	return &LoginLimiter{
		rdb:    rdb,
		max:    int64(max),
		window: window,
	}
}

func (l *LoginLimiter) key(email, ip string) string {
	return fmt.Sprintf("login:fail:%s:%s", repository.NormalizeEmail(email), strings.TrimSpace(ip))
}

func (l *LoginLimiter) Allow(ctx context.Context, email, ip string) (bool, error) {
	count, err := l.rdb.Get(ctx, l.key(email, ip)).Int64()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return true, err
	}
	return count < l.max, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, email, ip string) error {
	key := l.key(email, ip)

	pipe := l.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}
