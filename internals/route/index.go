// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	database "celikkalam_backend/internals/databases"
	classRoute "celikkalam_backend/internals/features/classes/route"
	enrollmentRoute "celikkalam_backend/internals/features/enrollments/route"
	legacyRoute "celikkalam_backend/internals/features/legacy/route"
	paymentRoute "celikkalam_backend/internals/features/payment/route"
	userRoute "celikkalam_backend/internals/features/users/route"
	authMiddleware "celikkalam_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cacheClient *cache.Client) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== LEGACY ACTION API =====================
	// Kontrak utama SPA lama: GET/POST /api?action=...
	log.Println("[INFO] Setting up Action routes...")
	legacyRoute.ActionRoutes(app, db, cacheClient)

	// ===================== PAYMENT =====================
	log.Println("[INFO] Setting up Payment routes...")
	paymentRoute.PaymentRoutes(app, db, cacheClient)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up Auth routes...")
	userRoute.AuthRoutes(app, db, cacheClient)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT
	public := app.Group("/api")
	classRoute.ClassPublicRoutes(public, db)

	// PRIVATE (USER) → JWT
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	enrollmentRoute.EnrollmentUserRoutes(private, db, cacheClient)

	// STAFF/ADMIN → JWT; pemeriksaan role dipasang per-route
	// (Group middleware di Fiber berlaku untuk seluruh prefix).
	protected := app.Group("/api/a", authMiddleware.AuthMiddleware(db))
	classRoute.ClassStaffRoutes(protected, db, cacheClient)
	userRoute.UserAdminRoutes(protected, db, cacheClient)
	enrollmentRoute.EnrollmentAdminRoutes(protected, db, cacheClient)
}

// BaseRoutes: root & health check.
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("CelikKalam API - Fiber & PostgreSQL connected 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":      serverStatus,
			"database":    dbStatus,
			"server_time": time.Now().Format(time.RFC3339),
			"uptime_sec":  time.Since(startTime).Seconds(),
		})
	})
}
