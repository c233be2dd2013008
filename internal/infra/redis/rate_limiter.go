package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter implements a fixed-window counter, used to throttle login
// attempts per client.
type RateLimiter struct {
	client Client
}

func NewRateLimiter(client Client) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}

// LoginKey buckets login attempts by email and remote address.
func LoginKey(email, remoteAddr string) string {
	return fmt.Sprintf("rate_limit:login:%s:%s", email, remoteAddr)
}
