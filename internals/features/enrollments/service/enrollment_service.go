package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"celikkalam_backend/internals/features/enrollments/model"
)

/* ======================== ENROLL ======================== */

// EnrollUser mendaftarkan student ke satu kelas, status awal Unpaid.
// Daftar dua kali ke kelas yang sama ditolak (pre-check + unique index
// sebagai pengaman race).
func EnrollUser(db *gorm.DB, userID, classID uuid.UUID) (model.EnrollmentModel, error) {
	var count int64
	if err := db.Model(&model.EnrollmentModel{}).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Count(&count).Error; err != nil {
		return model.EnrollmentModel{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if count > 0 {
		return model.EnrollmentModel{}, fiber.NewError(fiber.StatusBadRequest, "Anda sudah mendaftar kelas ini.")
	}

	enrollment := model.EnrollmentModel{
		UserID:  userID,
		ClassID: classID,
		Status:  model.StatusUnpaid,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return model.EnrollmentModel{}, fiber.NewError(fiber.StatusBadRequest, "Anda sudah mendaftar kelas ini.")
		}
		return model.EnrollmentModel{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat pendaftaran")
	}

	return enrollment, nil
}

/* ======================== MARK PAID ======================== */

// MarkPaid menandai satu enrollment Paid. Guard status='Unpaid' membuat
// pemanggilan ulang (webhook dobel, verify + webhook) jadi no-op yang eksplisit.
// Return: true kalau baris benar-benar bertransisi Unpaid → Paid.
func MarkPaid(db *gorm.DB, enrollmentID uuid.UUID, transactionID, billCode string) (bool, error) {
	updates := map[string]interface{}{"status": model.StatusPaid}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	if billCode != "" {
		updates["bill_code"] = billCode
	}

	res := db.Model(&model.EnrollmentModel{}).
		Where("id = ? AND status = ?", enrollmentID, model.StatusUnpaid).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

/* ======================== BILL CODE ======================== */

// AttachBillCode menyimpan bill code terbaru pada enrollment (dipanggil saat
// create-bill). Tanpa idempotency key — bill kedua menimpa kode sebelumnya.
func AttachBillCode(db *gorm.DB, enrollmentID uuid.UUID, billCode string) error {
	return db.Model(&model.EnrollmentModel{}).
		Where("id = ?", enrollmentID).
		Update("bill_code", billCode).Error
}
