package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// jsonSuccess writes the standard success envelope.
func jsonSuccess(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
