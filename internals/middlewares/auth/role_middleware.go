package auth

import (
	"github.com/gofiber/fiber/v2"

	"celikkalam_backend/internals/constants"
	helper "celikkalam_backend/internals/helpers"
)

// OnlyRolesCanAccess membatasi route untuk role tertentu.
// Dipakai setelah AuthMiddleware (role sudah ada di Locals).
func OnlyRolesCanAccess(errMessage string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return err
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, errMessage)
	}
}

// OnlyAdmin shortcut untuk group admin.
func OnlyAdmin(feature string) fiber.Handler {
	return OnlyRolesCanAccess(constants.RoleErrorAdmin(feature), constants.RoleAdmin)
}

// OnlyStaff: ustaz atau admin.
func OnlyStaff(feature string) fiber.Handler {
	return OnlyRolesCanAccess(constants.RoleErrorUstaz(feature), constants.StaffRoles...)
}
