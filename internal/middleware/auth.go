package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
)

const authErrorKey = "auth_error"

// Authenticator resolves a session token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Identity, error)
}

type AuthMiddleware struct {
	server *server.Server
	auth   Authenticator
}

func NewAuthMiddleware(s *server.Server, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// token reads "Authorization: Bearer <token>", falling back to the session
// cookie set by the storefront.
func (am *AuthMiddleware) token(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(am.server.Config.Auth.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Identify authenticates the caller when a token is present and lets
// anonymous requests through. A rejected token is remembered so RequireAuth
// can report it.
func (am *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := am.token(c)
		if token == "" {
			return next(c)
		}

		identity, err := am.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Status != http.StatusUnauthorized {
				return err
			}
			GetLogger(c).Debug().Err(err).Msg("ignoring invalid session token")
			c.Set(authErrorKey, httpErr)
			return next(c)
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(SessionIDKey, identity.SessionID)

		l := GetLogger(c).With().Str("user_id", identity.UserID.String()).Logger()
		setLogger(c, &l)

		return next(c)
	}
}

// RequireAuth rejects requests Identify could not attach a user to.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserUUID(c); ok {
			return next(c)
		}
		if httpErr, ok := c.Get(authErrorKey).(*errs.HTTPError); ok {
			return httpErr
		}
		return errs.NewUnauthorizedError("Unauthorized", false)
	}
}
