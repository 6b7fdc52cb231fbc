// Package ratelimit throttles requests per client IP with a sliding window
// (in memory) or a fixed window (Redis).
package ratelimit

import (
	"context"
	"time"
)

// Class groups endpoints that share a limit.
type Class string

const (
	// ClassAuth covers credential endpoints: signup, login and token.
	ClassAuth Class = "auth"
	// ClassDefault covers every other route.
	ClassDefault Class = "default"
)

// Limit is the number of requests allowed per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole number of seconds until the window frees up,
// never less than one.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Store counts requests per key.
type Store interface {
	Allow(ctx context.Context, key string, limit Limit) (Result, error)
}

// Key builds the store key for a class and client.
func Key(class Class, client string) string {
	return "lahu:rl:" + string(class) + ":" + client
}
