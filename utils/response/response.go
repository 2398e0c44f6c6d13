package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
)

// Response represents a standardized API response
type Response struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success:    true,
		StatusCode: fiber.StatusOK,
		Data:       data,
	})
}

// SuccessWithMessage returns a successful response with a message
func SuccessWithMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success:    true,
		StatusCode: fiber.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success:    true,
		StatusCode: fiber.StatusCreated,
		Message:    "Resource created successfully",
		Data:       data,
	})
}

// Error returns a failure response with the given status code
func Error(c *fiber.Ctx, status int, message string, errs []string) error {
	return c.Status(status).JSON(Response{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Errors:     errs,
	})
}

// FromAppError maps a service failure onto the matching status code
func FromAppError(c *fiber.Ctx, err error) error {
	appErr := apperror.From(err)
	return Error(c, appErr.Status, appErr.Message, appErr.Errs)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, nil)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, message, nil)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access denied"
	}
	return Error(c, fiber.StatusForbidden, message, nil)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message, nil)
}

// Conflict returns a 409 Conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message, nil)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message, nil)
}

// ValidationError returns a 400 response carrying field-level messages
func ValidationError(c *fiber.Ctx, errs []string) error {
	return Error(c, fiber.StatusBadRequest, "Validation error", errs)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message, nil)
}
