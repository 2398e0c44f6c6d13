package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/middleware"
	"github.com/sahilchouksey/student-management-api/utils/response"
)

// Me returns the authenticated user's credential record
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	return response.Success(c, user)
}
