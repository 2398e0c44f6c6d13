package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin student instructor"`
}

func TestValidateStructPasses(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(sampleRequest{
		Email:    "user@example.com",
		Password: "long-enough",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Role:     "superuser",
	})
	if err == nil {
		t.Fatal("invalid struct passed validation")
	}

	messages := FormatValidationErrors(err)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d: %v", len(messages), messages)
	}

	joined := strings.Join(messages, "; ")
	for _, want := range []string{
		"email must be a valid email",
		"password must be at least 8 characters",
		"role must be one of",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %q", want, joined)
		}
	}
}

func TestFormatValidationErrorsRequired(t *testing.T) {
	v := NewValidator()

	messages := FormatValidationErrors(v.ValidateStruct(sampleRequest{}))
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %v", messages)
	}
	if !strings.Contains(messages[0], "is required") {
		t.Errorf("unexpected first message: %q", messages[0])
	}
}
