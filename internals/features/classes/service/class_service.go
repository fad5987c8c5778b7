package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"celikkalam_backend/internals/features/classes/dto"
	"celikkalam_backend/internals/features/classes/model"
)

// ListActiveClasses mengambil kelas aktif, terbaru dulu (urutan yang dipakai SPA).
func ListActiveClasses(db *gorm.DB) ([]model.ClassModel, error) {
	// Slice non-nil supaya store kosong di-serialize jadi [] bukan null.
	classes := make([]model.ClassModel, 0)
	err := db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&classes).Error
	return classes, err
}

// CreateClass menyimpan kelas baru.
func CreateClass(db *gorm.DB, input dto.CreateClassRequest) (model.ClassModel, error) {
	m, err := input.ToModel()
	if err != nil {
		return model.ClassModel{}, fiber.NewError(fiber.StatusBadRequest, "schedule_sessions tidak valid")
	}
	if err := db.Create(&m).Error; err != nil {
		return model.ClassModel{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return m, nil
}
