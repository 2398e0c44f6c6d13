package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
	"github.com/sahilchouksey/student-management-api/utils/response"
	"github.com/sahilchouksey/student-management-api/utils/validation"
)

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the old password, replaces it and revokes all
// refresh sessions so stolen tokens die with the old password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if err := h.authService.ChangePassword(c.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Password changed successfully", nil)
}
