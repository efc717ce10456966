// Package ratelimit implements a fixed-window request limiter on top of a
// cache.Counter.
//
// Each caller gets Limit requests per Window. The window opens on the first
// request and the count resets when it ends, so a caller can get up to twice
// the quota across a window boundary.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/magnetco/enthusiastauto-sub003/internal/cache"
)

// Result describes the limiter's decision for one request.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is how long a rejected caller should wait.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Limiter enforces one policy. Keys are namespaced by the policy name so
// different endpoint groups keep separate counts.
type Limiter struct {
	name    string
	counter cache.Counter
	limit   int
	window  time.Duration
}

func New(name string, counter cache.Counter, limit int, window time.Duration) *Limiter {
	return &Limiter{
		name:    name,
		counter: counter,
		limit:   limit,
		window:  window,
	}
}

func (l *Limiter) Name() string {
	return l.name
}

func (l *Limiter) Limit() int {
	return l.limit
}

// Allow counts one request for identifier and reports whether it fits in the
// current window.
func (l *Limiter) Allow(ctx context.Context, identifier string) (Result, error) {
	w, err := l.counter.Incr(ctx, l.key(identifier), l.window)
	if err != nil {
		return Result{Allowed: true, Limit: l.limit, Remaining: l.limit}, fmt.Errorf("ratelimit %s: %w", l.name, err)
	}

	remaining := l.limit - int(w.Count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   w.Count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}, nil
}

func (l *Limiter) key(identifier string) string {
	return "ratelimit:" + l.name + ":" + identifier
}
