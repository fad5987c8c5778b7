package model

import (
	"time"

	"github.com/google/uuid"
)

// Status enrollment. Tidak ada refund/cancel — transisi hanya Unpaid → Paid.
const (
	StatusUnpaid = "Unpaid"
	StatusPaid   = "Paid"
)

// EnrollmentModel merepresentasikan tabel enrollments di database.
// Unique index (user_id, class_id): satu user satu pendaftaran per kelas.
type EnrollmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_class" json:"user_id"`
	ClassID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_class" json:"class_id"`
	Status        string    `gorm:"type:varchar(10);not null;default:'Unpaid'" json:"status"`
	TransactionID string    `gorm:"size:100" json:"transaction_id,omitempty"`
	BillCode      string    `gorm:"size:100" json:"bill_code,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
