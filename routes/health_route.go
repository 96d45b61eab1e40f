package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func HealthRoute(api fiber.Router, started time.Time) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Seconds(),
		})
	})
}
