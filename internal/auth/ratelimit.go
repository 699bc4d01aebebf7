package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// counter 是限流所需的 redis 子集，*redis.Client 直接满足。
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter 基于 redis 的固定窗口计数器。
type RateLimiter struct {
	client counter
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(client counter, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, limit: limit, window: window, prefix: "folio:rate_limit"}
}

// Allow 为 key 计数一次，超过阈值时返回 false。
func (l *RateLimiter) Allow(ctx context.Context, scope, key string) (bool, error) {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true, nil
	}

	redisKey := fmt.Sprintf("%s:%s:%s", l.prefix, scope, key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}

// NewRedisClient 连接 redis 并做一次 PING。
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}
