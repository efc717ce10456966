package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/cache"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
	"github.com/magnetco/enthusiastauto-sub003/internal/handler"
	"github.com/magnetco/enthusiastauto-sub003/internal/middleware"
	"github.com/magnetco/enthusiastauto-sub003/internal/server"
	"github.com/magnetco/enthusiastauto-sub003/internal/service"
	"github.com/rs/zerolog"
)

// newTestRouter builds the full router without a database or Redis. Only
// paths that fail before reaching a service are exercised.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Auth:          config.AuthConfig{CookieName: "ea_session"},
			RateLimit:     config.DefaultRateLimitConfig(),
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		Cache:  cache.NewMemory(time.Minute, 0),
	}

	services := &service.Services{}
	return NewRouter(s, handler.NewHandlers(s, services), services)
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	e := newTestRouter(t)

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/me", ""},
		{http.MethodPatch, "/api/v1/me", `{"name":"x"}`},
		{http.MethodPost, "/api/v1/me/password", `{}`},
		{http.MethodGet, "/api/v1/favorites", ""},
		{http.MethodPost, "/api/v1/favorites", `{}`},
		{http.MethodGet, "/api/v1/favorites/3f0c8a8e-9a57-4c8e-bb0b-4d1c1a1f8c11", ""},
		{http.MethodDelete, "/api/v1/favorites/3f0c8a8e-9a57-4c8e-bb0b-4d1c1a1f8c11", ""},
		{http.MethodGet, "/api/v1/service-requests", ""},
		{http.MethodGet, "/api/v1/sell-submissions", ""},
		{http.MethodPost, "/api/v1/auth/logout", ""},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := serve(e, r.method, r.path, r.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRateLimitHeadersOnAPIRoutes(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/api/v1/favorites", "")
	if rec.Header().Get(middleware.HeaderRateLimitLimit) != "120" {
		t.Fatalf("limit header = %q", rec.Header().Get(middleware.HeaderRateLimitLimit))
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("missing request id")
	}
}

func TestPublicFormsValidateBeforeAuth(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodPost, "/api/v1/service-requests", `{"name":"Jamie"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); len(body.Errors) == 0 {
		t.Fatal("expected field errors")
	}
	if rec.Header().Get(middleware.HeaderRateLimitLimit) != "5" {
		t.Fatalf("forms policy not applied, limit = %q", rec.Header().Get(middleware.HeaderRateLimitLimit))
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/api/v1/inventory", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body.Message != "Route not found" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestStatus(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
}
