package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/database"
	"github.com/sahilchouksey/student-management-api/utils/response"
)

// HealthCheck reports service liveness and database reachability
func HealthCheck(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable", nil)
		}

		return response.Success(c, fiber.Map{
			"status": "ok",
		})
	}
}
