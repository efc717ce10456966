// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the rest of the application can rely on them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, cache,
//     rate limiting, recommendations).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Env vars are read using the ENTHUSIAST_ prefix. The prefix is removed and
	the rest is lowercased; nested struct fields are addressed with ".":

	  ENTHUSIAST_SERVER.PORT          -> server.port      -> Config.Server.Port
	  ENTHUSIAST_RATE_LIMIT.AUTH.LIMIT -> rate_limit.auth.limit
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "ENTHUSIAST_"

// ServiceName tags logs, traces and health responses.
const ServiceName = "enthusiastauto"

// Config is the root configuration object for the application.
//
// Optional blocks are pointers. Load starts from Defaults so unset fields
// keep their default values; ApplyDefaults covers configs built in code.
type Config struct {
	Primary        Primary               `koanf:"primary" validate:"required"`
	Server         ServerConfig          `koanf:"server" validate:"required"`
	Database       DatabaseConfig        `koanf:"database" validate:"required"`
	Redis          RedisConfig           `koanf:"redis" validate:"required"`
	Auth           AuthConfig            `koanf:"auth" validate:"required"`
	Integration    IntegrationConfig     `koanf:"integration" validate:"required"`
	Cache          *CacheConfig          `koanf:"cache"`
	RateLimit      *RateLimitConfig      `koanf:"rate_limit"`
	Recommendation *RecommendationConfig `koanf:"recommendation"`
	Observability  *ObservabilityConfig  `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
}

// AuthConfig stores session signing material and token lifetimes.
type AuthConfig struct {
	// SecretKey signs session JWTs (HS256).
	SecretKey string `koanf:"secret_key" validate:"required,min=32"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL time.Duration `koanf:"reset_token_ttl"`

	// CookieName is the cookie checked when no Authorization header is sent.
	CookieName string `koanf:"cookie_name"`
}

// IntegrationConfig holds credentials and addresses for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`

	// EmailFrom is the sender identity, e.g. "Enthusiast Auto <hello@example.com>".
	EmailFrom string `koanf:"email_from" validate:"required"`

	// StaffEmail receives service request and sell submission notifications.
	StaffEmail string `koanf:"staff_email" validate:"required,email"`

	// SiteURL is the public storefront URL used to build links in emails.
	SiteURL string `koanf:"site_url" validate:"required,url"`
}

// LoadConfig loads configuration from environment variables and logs
// fatally on load/validation errors so a misconfigured process never starts
// serving.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	mainConfig, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}

	return mainConfig, nil
}

// Load reads the environment over Defaults, validates the result and
// returns it. Variables override single fields, so setting one rate-limit
// policy keeps the defaults of the others.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Defaults()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.ApplyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return mainConfig, nil
}

// Defaults returns a Config with every optional block populated. Required
// blocks are left empty.
func Defaults() *Config {
	return &Config{
		Auth: AuthConfig{
			SessionTTL:    30 * 24 * time.Hour,
			ResetTokenTTL: time.Hour,
			CookieName:    "ea_session",
		},
		Cache:          DefaultCacheConfig(),
		RateLimit:      DefaultRateLimitConfig(),
		Recommendation: DefaultRecommendationConfig(),
		Observability:  DefaultObservabilityConfig(),
	}
}

// ApplyDefaults fills optional blocks and zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so logs
	// and traces are tagged consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if c.Cache == nil {
		c.Cache = DefaultCacheConfig()
	}
	if c.RateLimit == nil {
		c.RateLimit = DefaultRateLimitConfig()
	}
	if c.Recommendation == nil {
		c.Recommendation = DefaultRecommendationConfig()
	}

	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 30 * 24 * time.Hour
	}
	if c.Auth.ResetTokenTTL == 0 {
		c.Auth.ResetTokenTTL = time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "ea_session"
	}
}

// Validate applies the rules that struct tags cannot express.
func (c *Config) Validate() error {
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.Recommendation.Validate(); err != nil {
		return err
	}
	if c.Auth.SessionTTL < time.Minute {
		return fmt.Errorf("auth session_ttl must be at least 1m")
	}
	if c.Auth.ResetTokenTTL < time.Minute {
		return fmt.Errorf("auth reset_token_ttl must be at least 1m")
	}
	return nil
}
