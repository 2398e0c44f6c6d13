package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error is the failure type every service operation returns. The HTTP layer maps
// Status straight onto the response code, so services stay framework-free while
// still deciding which of the 4xx family a failure belongs to.
type Error struct {
	Status  int      `json:"statusCode"`
	Message string   `json:"message"`
	Errs    []string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(fiber.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(fiber.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(fiber.StatusConflict, message)
}

func TooManyRequests(message string) *Error {
	return New(fiber.StatusTooManyRequests, message)
}

// WithErrors attaches field-level details (validation messages, duplicate keys).
func (e *Error) WithErrors(errs []string) *Error {
	e.Errs = errs
	return e
}

// From extracts an *Error from err, wrapping unknown failures as a 500 so the
// HTTP layer never leaks raw storage errors to clients.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(fiber.StatusInternalServerError, "Internal server error")
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status == status
	}
	return false
}
