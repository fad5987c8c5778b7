package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken membaca user_id yang sudah disimpan AuthMiddleware di Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak valid")
	}
	return id, nil
}

// GetRoleFromToken membaca role dari Locals (diisi AuthMiddleware).
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - role tidak ditemukan di token")
	}
	return role, nil
}
