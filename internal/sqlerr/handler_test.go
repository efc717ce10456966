package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/magnetco/enthusiastauto-sub003/internal/errs"
)

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "users",
		ConstraintName: "users_email_key",
		Message:        "duplicate key value violates unique constraint",
	}

	err := HandleError(fmt.Errorf("insert user: %w", pgErr))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", httpErr.Status)
	}
	if httpErr.Code != "USER_ALREADY_EXISTS" {
		t.Fatalf("code = %q", httpErr.Code)
	}
	if httpErr.Message != "A User with this Email already exists" {
		t.Fatalf("message = %q", httpErr.Message)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "email" {
		t.Fatalf("field errors = %+v", httpErr.Errors)
	}
}

func TestHandleErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "favorites",
		ColumnName: "vehicle_id",
	}

	var httpErr *errs.HTTPError
	if !errors.As(HandleError(pgErr), &httpErr) {
		t.Fatal("expected HTTPError")
	}
	if httpErr.Code != "FAVORITE_NOT_FOUND" {
		t.Fatalf("code = %q", httpErr.Code)
	}
	if httpErr.Message != "The referenced Vehicle does not exist" {
		t.Fatalf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorNoRows(t *testing.T) {
	var httpErr *errs.HTTPError

	if !errors.As(HandleError(fmt.Errorf("table:vehicles: %w", pgx.ErrNoRows)), &httpErr) {
		t.Fatal("expected HTTPError")
	}
	if httpErr.Status != http.StatusNotFound || httpErr.Message != "Vehicle not found" {
		t.Fatalf("unexpected error: %+v", httpErr)
	}

	wrapped := fmt.Errorf("failed to collect row from table:service_requests for user_id=42: %w", pgx.ErrNoRows)
	if !errors.As(HandleError(wrapped), &httpErr) {
		t.Fatal("expected HTTPError")
	}
	if httpErr.Message != "Service Request not found" {
		t.Fatalf("message = %q", httpErr.Message)
	}

	if !errors.As(HandleError(pgx.ErrNoRows), &httpErr) {
		t.Fatal("expected HTTPError")
	}
	if httpErr.Message != "Resource not found" {
		t.Fatalf("message = %q", httpErr.Message)
	}
}

func TestHandleErrorPassesThroughAndHidesUnknown(t *testing.T) {
	conflict := errs.NewConflictError("dup", true, nil)
	if got := HandleError(conflict); got != conflict {
		t.Fatalf("HTTPError should pass through unchanged, got %v", got)
	}

	var httpErr *errs.HTTPError
	if !errors.As(HandleError(errors.New("connection reset by peer")), &httpErr) {
		t.Fatal("expected HTTPError")
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d", httpErr.Status)
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := map[string]string{
		"unique_users_email":                   "email",
		"users_email_key":                      "email",
		"vehicles_slug_ukey":                   "slug",
		"favorites_user_id_vehicle_id_key":     "id",
		"":                                     "",
		"some_constraint_without_a_convention": "",
	}
	for in, want := range tests {
		if got := extractColumnForUniqueViolation(in); got != want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestViolationHelpers(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505", ConstraintName: "favorites_user_vehicle_key"})

	if !IsUniqueViolation(err, "") || !IsUniqueViolation(err, "favorites_user_vehicle_key") {
		t.Fatal("expected unique violation")
	}
	if IsUniqueViolation(err, "users_email_key") {
		t.Fatal("constraint name should be matched")
	}
	if IsForeignKeyViolation(err, "") {
		t.Fatal("not a foreign key violation")
	}
	if ErrCode(err) != UniqueViolation {
		t.Fatalf("ErrCode = %v", ErrCode(err))
	}
	if ErrCode(errors.New("x")) != Other {
		t.Fatal("plain errors map to Other")
	}
}
