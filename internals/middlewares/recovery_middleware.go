package middlewares

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic handler supaya server tetap hidup;
// ErrorHandler di main.go yang mengubahnya jadi {"error": ...} 500.
// Stack trace dicetak kecuali DISABLE_STACK_TRACE diset (log Railway bising).
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: os.Getenv("DISABLE_STACK_TRACE") == "",
	})
}
