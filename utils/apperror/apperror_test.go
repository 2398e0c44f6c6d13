package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestFrom(t *testing.T) {
	conflict := Conflict("already exists")

	if got := From(conflict); got.Status != 409 || got.Message != "already exists" {
		t.Errorf("From lost the error: %+v", got)
	}

	// Wrapped errors still unwrap to the original
	wrapped := fmt.Errorf("creating user: %w", conflict)
	if got := From(wrapped); got.Status != 409 {
		t.Errorf("From did not unwrap, got status %d", got.Status)
	}

	// Unknown failures become opaque 500s
	got := From(errors.New("pq: connection refused"))
	if got.Status != 500 {
		t.Errorf("expected 500, got %d", got.Status)
	}
	if got.Message != "Internal server error" {
		t.Errorf("storage error leaked to the client: %q", got.Message)
	}
}

func TestIsStatus(t *testing.T) {
	err := NotFound("missing")

	if !IsStatus(err, 404) {
		t.Error("IsStatus(404) = false for a NotFound error")
	}
	if IsStatus(err, 400) {
		t.Error("IsStatus(400) = true for a NotFound error")
	}
	if IsStatus(errors.New("plain"), 500) {
		t.Error("IsStatus matched a non-app error")
	}
	if IsStatus(nil, 404) {
		t.Error("IsStatus matched nil")
	}
}

func TestWithErrors(t *testing.T) {
	err := BadRequest("Validation error").WithErrors([]string{"email is required"})

	if len(err.Errs) != 1 || err.Errs[0] != "email is required" {
		t.Errorf("unexpected errs: %v", err.Errs)
	}
	if err.Error() != "Validation error" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
