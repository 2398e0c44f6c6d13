package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
	"github.com/sahilchouksey/student-management-api/utils/response"
)

// RefreshRequest carries the refresh token and the session slot it belongs to
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
	TokenID      string `json:"tokenId"`
}

// Refresh rotates a refresh token and returns a fresh token pair
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return response.BadRequest(c, "refreshToken is required")
	}

	pair, err := h.authService.Refresh(c.Context(), req.RefreshToken, req.TokenID)
	if err != nil {
		return response.FromAppError(c, err)
	}

	return response.Success(c, pair)
}

// LogoutRequest names the session slot to invalidate
type LogoutRequest struct {
	TokenID string `json:"tokenId"`
}

// Logout invalidates the caller's refresh session
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	var req LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), userID, req.TokenID); err != nil {
		return response.FromAppError(c, err)
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
