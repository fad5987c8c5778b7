package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	controller "celikkalam_backend/internals/features/legacy/controller"
)

// ActionRoutes memasang endpoint action-dispatch lama di GET/POST /api.
func ActionRoutes(app *fiber.App, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewActionController(db, cacheClient)
	app.Get("/api", h.Handle)
	app.Post("/api", h.Handle)
}
