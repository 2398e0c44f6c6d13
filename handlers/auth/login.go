package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

// LoginRequest represents a login request. Password carries no required tag:
// an empty password must reach the credential check and fail with 401 exactly
// like any other wrong password, not short-circuit as a validation 400.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// Login handles user login and issues an access/refresh token pair
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Login successful", result)
}
