package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
)

const healthProbeKey = "health:probe"

type checkFunc func(ctx context.Context) error

type HealthHandler struct {
	Handler
	checks map[string]checkFunc
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		checks:  make(map[string]checkFunc),
	}

	obs := s.Config.Observability

	if obs.HealthCheckEnabled("database") && s.DB != nil {
		h.checks["database"] = func(ctx context.Context) error {
			return s.DB.Pool.Ping(ctx)
		}
	}
	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		h.checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}
	if obs.HealthCheckEnabled("cache") && s.Cache != nil {
		h.checks["cache"] = func(ctx context.Context) error {
			if err := s.Cache.Set(ctx, healthProbeKey, []byte("ok"), time.Second); err != nil {
				return err
			}
			if _, ok, err := s.Cache.Get(ctx, healthProbeKey); err != nil || !ok {
				return errors.Join(errors.New("cache probe missing"), err)
			}
			return nil
		}
	}

	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs every configured dependency check. Any failure makes the
// response a 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		checkStart := time.Now()
		err := check(ctx)
		cancel()
		elapsed := time.Since(checkStart)

		if err != nil {
			response.Status = "unhealthy"
			response.Checks[name] = checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}

			logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

			h.server.LoggerService.RecordEvent("HealthCheckError", map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		response.Checks[name] = checkResult{Status: "healthy", ResponseTime: elapsed.String()}
		logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
