package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/logger"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	UserIDKey    = "user_id"
	SessionIDKey = "session_id"
	LoggerKey    = "logger"
)

type loggerCtxKey struct{}

// ContextEnhancer attaches a request-scoped logger carrying the request id,
// route, client ip and trace ids.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			setLogger(c, &contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, l)
	c.SetRequest(c.Request().WithContext(ctx))
}

// LoggerFromContext returns the request logger stored by EnhanceContext, or
// nil outside a request.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return nil
}

// GetUserID returns the authenticated user's id, or "" for anonymous
// requests.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(uuid.UUID); ok {
		return userID.String()
	}
	return ""
}

// UserUUID returns the authenticated user's id.
func UserUUID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(UserIDKey).(uuid.UUID)
	return userID, ok
}

// OptionalUserUUID is UserUUID for routes that also serve anonymous callers.
func OptionalUserUUID(c echo.Context) *uuid.UUID {
	if userID, ok := UserUUID(c); ok {
		return &userID
	}
	return nil
}

func SessionUUID(c echo.Context) (uuid.UUID, bool) {
	sessionID, ok := c.Get(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}
