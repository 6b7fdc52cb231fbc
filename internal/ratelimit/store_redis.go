package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a fixed-window counter shared by every replica. The first
// hit in a window sets the key's expiry.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit Limit) (Result, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, limit.Window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = limit.Window
	}
	resetAt := time.Now().Add(remaining)

	if count > limit.Requests {
		return Result{Allowed: false, Limit: limit.Requests, ResetAt: resetAt}, nil
	}
	return Result{
		Allowed:   true,
		Limit:     limit.Requests,
		Remaining: limit.Requests - count,
		ResetAt:   resetAt,
	}, nil
}
