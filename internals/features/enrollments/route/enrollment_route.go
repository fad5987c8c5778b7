package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	controller "celikkalam_backend/internals/features/enrollments/controller"
	authMiddleware "celikkalam_backend/internals/middlewares/auth"
)

// EnrollmentUserRoutes: daftar & senarai pendaftaran milik sendiri (JWT).
func EnrollmentUserRoutes(private fiber.Router, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewEnrollmentController(db, cacheClient)
	private.Post("/enrollments", h.Enroll)
	private.Get("/enrollments", h.ListMine)
}

// EnrollmentAdminRoutes: override manual status bayaran.
func EnrollmentAdminRoutes(r fiber.Router, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewEnrollmentController(db, cacheClient)
	r.Patch("/enrollments/:id/mark-paid", authMiddleware.OnlyAdmin("pentadbiran bayaran"), h.MarkPaid)
}
