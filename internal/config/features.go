package config

import (
	"fmt"
	"time"
)

const (
	// CacheBackendMemory keeps entries in process. Not shared across instances.
	CacheBackendMemory = "memory"
	// CacheBackendRedis shares entries (and rate-limit counters) through Redis.
	CacheBackendRedis = "redis"
)

// CacheConfig selects and tunes the cache backing store.
type CacheConfig struct {
	Backend       string        `koanf:"backend"`
	DefaultTTL    time.Duration `koanf:"default_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	// KeyPrefix namespaces keys when the backend is shared (Redis).
	KeyPrefix string `koanf:"key_prefix"`
}

// DefaultCacheConfig returns the in-process cache with a one minute sweep.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Backend:       CacheBackendMemory,
		DefaultTTL:    5 * time.Minute,
		SweepInterval: time.Minute,
		KeyPrefix:     "ea:",
	}
}

func (c *CacheConfig) Validate() error {
	switch c.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("invalid cache backend: %s (must be one of: memory, redis)", c.Backend)
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("cache default_ttl must be positive")
	}
	if c.Backend == CacheBackendMemory && c.SweepInterval <= 0 {
		return fmt.Errorf("cache sweep_interval must be positive")
	}
	return nil
}

// RateLimitPolicy is a fixed-window quota: Limit requests per Window.
type RateLimitPolicy struct {
	Limit  int           `koanf:"limit"`
	Window time.Duration `koanf:"window"`
}

// RateLimitConfig holds one policy per endpoint group.
type RateLimitConfig struct {
	Enabled bool            `koanf:"enabled"`
	Auth    RateLimitPolicy `koanf:"auth"`
	Forms   RateLimitPolicy `koanf:"forms"`
	API     RateLimitPolicy `koanf:"api"`
}

func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: true,
		Auth:    RateLimitPolicy{Limit: 10, Window: time.Minute},
		Forms:   RateLimitPolicy{Limit: 5, Window: time.Minute},
		API:     RateLimitPolicy{Limit: 120, Window: time.Minute},
	}
}

func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	policies := map[string]RateLimitPolicy{
		"auth":  c.Auth,
		"forms": c.Forms,
		"api":   c.API,
	}
	for name, p := range policies {
		if p.Limit <= 0 {
			return fmt.Errorf("rate_limit %s limit must be positive", name)
		}
		if p.Window < time.Second {
			return fmt.Errorf("rate_limit %s window must be at least 1s", name)
		}
	}
	return nil
}

// RecommendationConfig tunes the recommendation endpoint.
type RecommendationConfig struct {
	CandidateTTL time.Duration `koanf:"candidate_ttl"`
	DefaultLimit int           `koanf:"default_limit"`
	MaxLimit     int           `koanf:"max_limit"`
	// HistorySize caps how many recent views feed a user's profile.
	HistorySize int `koanf:"history_size"`
}

func DefaultRecommendationConfig() *RecommendationConfig {
	return &RecommendationConfig{
		CandidateTTL: 5 * time.Minute,
		DefaultLimit: 8,
		MaxLimit:     24,
		HistorySize:  50,
	}
}

func (c *RecommendationConfig) Validate() error {
	if c.DefaultLimit <= 0 || c.MaxLimit <= 0 {
		return fmt.Errorf("recommendation limits must be positive")
	}
	if c.MaxLimit > 24 {
		return fmt.Errorf("recommendation max_limit must not exceed 24")
	}
	if c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("recommendation default_limit must not exceed max_limit")
	}
	if c.CandidateTTL <= 0 {
		return fmt.Errorf("recommendation candidate_ttl must be positive")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("recommendation history_size must be positive")
	}
	return nil
}
