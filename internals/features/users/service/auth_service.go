package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/constants"
	"celikkalam_backend/internals/features/users/dto"
	"celikkalam_backend/internals/features/users/model"
)

// ErrInvalidCredentials dipakai login (legacy action & REST) untuk email/password salah.
var ErrInvalidCredentials = errors.New("Emel atau kata laluan salah.")

/* ==========================
   REGISTER
========================== */

// RegisterUser membuat user baru. Email duplikat → fiber.Error 400 dengan
// pesan yang sama seperti SPA lama.
func RegisterUser(db *gorm.DB, input dto.RegisterRequest) (model.UserModel, error) {
	user := model.UserModel{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
		Role:     input.Role,
		Phone:    strings.TrimSpace(input.Phone),
		IsActive: true,
	}
	if err := user.Validate(); err != nil {
		return model.UserModel{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Pre-check untuk pesan ramah; constraint unique tetap jadi pengaman race.
	var count int64
	if err := db.Model(&model.UserModel{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return model.UserModel{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa email")
	}
	if count > 0 {
		return model.UserModel{}, fiber.NewError(fiber.StatusBadRequest, "Emel telah didaftarkan.")
	}

	hash, err := HashPassword(user.Password)
	if err != nil {
		return model.UserModel{}, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}
	user.Password = hash

	if err := db.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return model.UserModel{}, fiber.NewError(fiber.StatusBadRequest, "Emel telah didaftarkan.")
		}
		return model.UserModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return user, nil
}

/* ==========================
   LOGIN
========================== */

// AuthenticateUser mencari user by email lalu membandingkan hash bcrypt.
func AuthenticateUser(db *gorm.DB, email, password string) (model.UserModel, error) {
	var user model.UserModel
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserModel{}, ErrInvalidCredentials
		}
		return model.UserModel{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa user")
	}

	if !user.IsActive {
		return model.UserModel{}, ErrInvalidCredentials
	}

	if err := CheckPasswordHash(user.Password, password); err != nil {
		return model.UserModel{}, ErrInvalidCredentials
	}

	user.Role = constants.NormalizeRole(user.Role)
	return user, nil
}
