package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/ratelimit"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

type RateLimitMiddleware struct {
	server *server.Server
	auth   *ratelimit.Limiter
	forms  *ratelimit.Limiter
	api    *ratelimit.Limiter
	now    func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit
	policy := func(name string, p config.RateLimitPolicy) *ratelimit.Limiter {
		return ratelimit.New(name, s.Cache, p.Limit, p.Window)
	}

	return &RateLimitMiddleware{
		server: s,
		auth:   policy("auth", cfg.Auth),
		forms:  policy("forms", cfg.Forms),
		api:    policy("api", cfg.API),
		now:    time.Now,
	}
}

// Auth limits signup, login and password reset.
func (r *RateLimitMiddleware) Auth() echo.MiddlewareFunc { return r.enforce(r.auth) }

// Forms limits service request and sell submission posts.
func (r *RateLimitMiddleware) Forms() echo.MiddlewareFunc { return r.enforce(r.forms) }

func (r *RateLimitMiddleware) API() echo.MiddlewareFunc { return r.enforce(r.api) }

func (r *RateLimitMiddleware) enforce(l *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !r.server.Config.RateLimit.Enabled {
			return next
		}

		return func(c echo.Context) error {
			identifier := GetUserID(c)
			if identifier == "" {
				identifier = c.RealIP()
			}

			res, err := l.Allow(c.Request().Context(), identifier)
			if err != nil {
				GetLogger(c).Error().Err(err).Str("policy", l.Name()).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
			h.Set(HeaderRateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retry := res.RetryAfter(r.now())
				seconds := int((retry + time.Second - 1) / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(seconds))

				r.RecordRateLimitHit(c.Path(), l.Name())
				GetLogger(c).Warn().Str("policy", l.Name()).Str("identifier", identifier).Msg("rate limit exceeded")

				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint, policy string) {
	if r.server.LoggerService != nil {
		r.server.LoggerService.RecordEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
			"policy":   policy,
		})
	}
}
