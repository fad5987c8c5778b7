package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator instance
var validate = validator.New()

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email     string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required,min=6"`
	Role      string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"required,oneof=student admin ustaz"`
	Phone     string    `gorm:"size:30" json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum validasi
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "student"
	}
}

// Validate memeriksa apakah input sesuai aturan yang telah didefinisikan.
// Role divalidasi ketat (oneof) supaya data korup phone/role tidak bisa masuk lagi.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError mengubah error validasi menjadi pesan yang lebih jelas
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errorMessages := make(map[string]string)
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " wajib diisi."
		case "email":
			errorMessages[fieldErr.Field()] = "Format email tidak valid."
		case "min":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " harus minimal " + fieldErr.Param() + " karakter."
		case "max":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " harus kurang dari " + fieldErr.Param() + " karakter."
		case "oneof":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " harus salah satu dari " + fieldErr.Param() + "."
		default:
			errorMessages[fieldErr.Field()] = "Format tidak valid."
		}
	}

	var msg string
	for field, errorMsg := range errorMessages {
		msg += field + ": " + errorMsg + "\n"
	}
	return errors.New(msg)
}
