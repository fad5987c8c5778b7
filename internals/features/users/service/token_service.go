package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"celikkalam_backend/internals/configs"
	"celikkalam_backend/internals/constants"
	"celikkalam_backend/internals/features/users/model"
)

const accessTTLDefault = 24 * time.Hour

// GenerateAccessToken membuat JWT HS256 berisi klaim dasar untuk dashboard.
func GenerateAccessToken(user model.UserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"name": user.Name,
		"role": constants.NormalizeRole(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTLDefault).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
