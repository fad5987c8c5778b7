package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	controller "celikkalam_backend/internals/features/users/controller"
	"celikkalam_backend/internals/middlewares"
	authMiddleware "celikkalam_backend/internals/middlewares/auth"
)

// AuthRoutes: register/login publik + profil (JWT).
func AuthRoutes(app *fiber.App, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewAuthController(db, cacheClient)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	auth.Get("/me", authMiddleware.AuthMiddleware(db), h.Me)
}

// UserAdminRoutes: manajemen role oleh admin.
func UserAdminRoutes(r fiber.Router, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewAuthController(db, cacheClient)
	r.Patch("/users/:id/role", authMiddleware.OnlyAdmin("pentadbiran pengguna"), h.UpdateRole)
}
