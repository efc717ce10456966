// Package cache provides the TTL key/value store shared by the recommendation
// service, session lookups and the rate limiter.
//
// Memory keeps entries in process and is only correct for a single instance.
// Redis shares entries across instances.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a TTL key/value store.
type Store interface {
	// Get returns the value for key, or ok=false when it is absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value for ttl. A ttl <= 0 uses the store's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Window is the state of a fixed-window counter after an increment.
type Window struct {
	Count   int64
	Start   time.Time
	ResetAt time.Time
}

// Counter increments fixed-window counters.
type Counter interface {
	// Incr adds one to key. When the key is absent or its window has ended a
	// new window starting now is opened with a count of one.
	Incr(ctx context.Context, key string, window time.Duration) (Window, error)
}

// Backend is what the server wires: a Store that can also count.
type Backend interface {
	Store
	Counter
	Close() error
}

// GetJSON decodes a JSON value stored under key.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var value T

	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}

	return value, true, nil
}

// SetJSON encodes value as JSON and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	return s.Set(ctx, key, raw, ttl)
}

// Remember returns the cached value for key or calls load, stores its result
// and returns it. Cache failures are not fatal: load still runs.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if value, ok, err := GetJSON[T](ctx, s, key); err == nil && ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	_ = SetJSON(ctx, s, key, value, ttl)

	return value, nil
}
