package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Auth:    AuthConfig{SecretKey: strings.Repeat("k", 32)},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Observability == nil || cfg.Cache == nil || cfg.RateLimit == nil || cfg.Recommendation == nil {
		t.Fatal("expected optional blocks to be populated")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("service name = %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != "development" {
		t.Fatalf("environment = %q", cfg.Observability.Environment)
	}
	if cfg.Auth.SessionTTL != 30*24*time.Hour {
		t.Fatalf("session ttl = %v", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.CookieName != "ea_session" {
		t.Fatalf("cookie name = %q", cfg.Auth.CookieName)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.ResetTokenTTL = 15 * time.Minute
	cfg.Cache = &CacheConfig{Backend: CacheBackendRedis, DefaultTTL: time.Minute}
	cfg.ApplyDefaults()

	if cfg.Auth.ResetTokenTTL != 15*time.Minute {
		t.Fatalf("reset ttl overwritten: %v", cfg.Auth.ResetTokenTTL)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Fatalf("cache backend overwritten: %q", cfg.Cache.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("redis cache without sweep interval should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "log level",
			mutate: func(c *Config) { c.Observability.Logging.Level = "verbose" },
			want:   "invalid logging level",
		},
		{
			name:   "cache backend",
			mutate: func(c *Config) { c.Cache.Backend = "memcached" },
			want:   "invalid cache backend",
		},
		{
			name:   "rate limit window",
			mutate: func(c *Config) { c.RateLimit.Forms.Window = 0 },
			want:   "rate_limit forms window",
		},
		{
			name:   "rate limit disabled skips policies",
			mutate: func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.API.Limit = 0 },
			want:   "",
		},
		{
			name:   "recommendation limits",
			mutate: func(c *Config) { c.Recommendation.DefaultLimit = 50 },
			want:   "default_limit must not exceed",
		},
		{
			name:   "session ttl",
			mutate: func(c *Config) { c.Auth.SessionTTL = time.Second },
			want:   "session_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := &ObservabilityConfig{Environment: "production"}
	if got := c.GetLogLevel(); got != "info" {
		t.Fatalf("production default = %q", got)
	}
	c.Environment = "development"
	if got := c.GetLogLevel(); got != "debug" {
		t.Fatalf("development default = %q", got)
	}
	c.Logging.Level = "warn"
	if got := c.GetLogLevel(); got != "warn" {
		t.Fatalf("explicit level = %q", got)
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	if !c.HealthCheckEnabled("database") || !c.HealthCheckEnabled("redis") {
		t.Fatal("default checks should include database and redis")
	}
	c.HealthChecks.Checks = []string{"database"}
	if c.HealthCheckEnabled("redis") {
		t.Fatal("redis check should be disabled")
	}
	c.HealthChecks.Enabled = false
	if c.HealthCheckEnabled("database") {
		t.Fatal("checks disabled globally")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	required := map[string]string{
		"PRIMARY.ENV":                 "development",
		"SERVER.PORT":                 "8080",
		"SERVER.READ_TIMEOUT":         "30",
		"SERVER.WRITE_TIMEOUT":        "30",
		"SERVER.IDLE_TIMEOUT":         "60",
		"SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"DATABASE.HOST":               "localhost",
		"DATABASE.PORT":               "5432",
		"DATABASE.USER":               "postgres",
		"DATABASE.PASSWORD":           "postgres",
		"DATABASE.NAME":               "enthusiastauto",
		"DATABASE.SSL_MODE":           "disable",
		"DATABASE.MAX_OPEN_CONNS":     "25",
		"DATABASE.MAX_IDLE_CONNS":     "25",
		"DATABASE.CONN_MAX_LIFETIME":  "300",
		"DATABASE.CONN_MAX_IDLE_TIME": "300",
		"REDIS.ADDRESS":               "localhost:6379",
		"AUTH.SECRET_KEY":             strings.Repeat("k", 32),
		"INTEGRATION.RESEND_API_KEY":  "re_test",
		"INTEGRATION.EMAIL_FROM":      "Enthusiast Auto <hello@example.com>",
		"INTEGRATION.STAFF_EMAIL":     "staff@example.com",
		"INTEGRATION.SITE_URL":        "https://example.com",
	}
	for key, value := range required {
		t.Setenv(EnvPrefix+key, value)
	}
}

func TestLoadMergesPartialOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"RATE_LIMIT.API.LIMIT", "500")
	t.Setenv(EnvPrefix+"RATE_LIMIT.API.WINDOW", "1m")
	t.Setenv(EnvPrefix+"CACHE.BACKEND", "redis")
	t.Setenv(EnvPrefix+"RECOMMENDATION.HISTORY_SIZE", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	defaults := DefaultRateLimitConfig()
	if !cfg.RateLimit.Enabled {
		t.Fatal("overriding one policy disabled rate limiting")
	}
	if cfg.RateLimit.API != (RateLimitPolicy{Limit: 500, Window: time.Minute}) {
		t.Fatalf("api policy = %+v", cfg.RateLimit.API)
	}
	if cfg.RateLimit.Auth != defaults.Auth || cfg.RateLimit.Forms != defaults.Forms {
		t.Fatalf("other policies lost their defaults: auth=%+v forms=%+v", cfg.RateLimit.Auth, cfg.RateLimit.Forms)
	}

	if cfg.Cache.Backend != CacheBackendRedis || cfg.Cache.DefaultTTL != DefaultCacheConfig().DefaultTTL {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.Recommendation.HistorySize != 20 || cfg.Recommendation.MaxLimit != DefaultRecommendationConfig().MaxLimit {
		t.Fatalf("recommendation = %+v", cfg.Recommendation)
	}
	if cfg.Auth.CookieName != "ea_session" {
		t.Fatalf("cookie name = %q", cfg.Auth.CookieName)
	}
}

func TestLoadHonoursExplicitDisable(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"RATE_LIMIT.ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RateLimit.Enabled {
		t.Fatal("rate limiting should be off when disabled explicitly")
	}
}

func TestLoadReportsMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"REDIS.ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected a validation error for an empty redis address")
	}
}
