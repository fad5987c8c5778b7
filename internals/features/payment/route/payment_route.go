package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	controller "celikkalam_backend/internals/features/payment/controller"
)

// PaymentRoutes memasang endpoint gateway (public — webhook dipanggil ToyyibPay).
func PaymentRoutes(app *fiber.App, db *gorm.DB, cacheClient *cache.Client) {
	h := controller.NewPaymentController(db, cacheClient)

	payment := app.Group("/api/payment")
	payment.Post("/create-bill", h.CreateBill)
	payment.Post("/webhook", h.Webhook)
	payment.Post("/verify", h.Verify)
}
