package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret          string
	AppURL             string
	ToyyibPayBaseURL   string
	ToyyibPaySecretKey string
	ToyyibPayCategory  string
	RedisURL           string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AppURL = GetEnv("APP_URL")
	ToyyibPayBaseURL = GetEnv("TOYYIBPAY_URL", "https://toyyibpay.com")
	ToyyibPaySecretKey = GetEnv("TOYYIBPAY_SECRET_KEY")
	ToyyibPayCategory = GetEnv("TOYYIBPAY_CATEGORY_CODE")
	RedisURL = GetEnv("REDIS_URL")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	// Kunci ToyyibPay boleh kosong di env — admin boleh isi lewat app_settings.
	if ToyyibPaySecretKey == "" {
		log.Println("⚠️ TOYYIBPAY_SECRET_KEY belum diset (fallback ke app_settings)")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
