package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	controller "celikkalam_backend/internals/features/classes/controller"
	authMiddleware "celikkalam_backend/internals/middlewares/auth"
)

// ClassPublicRoutes: senarai kelas aktif untuk landing page.
func ClassPublicRoutes(public fiber.Router, db *gorm.DB) {
	h := controller.NewClassController(db, nil)
	public.Get("/classes", h.List)
}

// ClassStaffRoutes: create/update kelas (admin & ustaz).
func ClassStaffRoutes(r fiber.Router, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewClassController(db, cacheClient)
	staff := authMiddleware.OnlyStaff("pengurusan kelas")
	r.Post("/classes", staff, h.Create)
	r.Patch("/classes/:id", staff, h.Update)
}
