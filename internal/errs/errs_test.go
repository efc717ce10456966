package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsUseStatusText(t *testing.T) {
	tests := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewUnauthorizedError("nope", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{NewConflictError("dup", false, nil), http.StatusConflict, "CONFLICT"},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		if tt.err.Status != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.code, tt.err.Status, tt.status)
		}
		if tt.err.Code != tt.code {
			t.Errorf("code = %q, want %q", tt.err.Code, tt.code)
		}
	}
}

func TestCustomCode(t *testing.T) {
	err := NewConflictError("already saved", true, Code("FAVORITE_ALREADY_EXISTS"))
	if err.Code != "FAVORITE_ALREADY_EXISTS" {
		t.Fatalf("code = %q", err.Code)
	}

	fieldErr := NewFieldError("USER_ALREADY_EXISTS", "email", "is already registered")
	if fieldErr.Status != http.StatusBadRequest || len(fieldErr.Errors) != 1 || fieldErr.Errors[0].Field != "email" {
		t.Fatalf("unexpected field error: %+v", fieldErr)
	}
}

func TestHTTPErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("favorites: %w", NewNotFoundError("Vehicle not found", true, nil))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("expected errors.As to find HTTPError")
	}
	if httpErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d", httpErr.Status)
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Fatal("expected errors.Is to match any HTTPError")
	}
}

func TestWithMessageCopies(t *testing.T) {
	base := NewUnauthorizedError("Unauthorized", false)
	custom := base.WithMessage("Session expired")

	if base.Message != "Unauthorized" {
		t.Fatal("WithMessage mutated the original")
	}
	if custom.Message != "Session expired" || custom.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected copy: %+v", custom)
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	if got := MakeUpperCaseWithUnderscores("Too Many Requests"); got != "TOO_MANY_REQUESTS" {
		t.Fatalf("got %q", got)
	}
}
