package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClassModel merepresentasikan tabel classes di database.
// schedule = teks bebas utk tampilan; schedule_sessions = senarai timestamp ISO
// (varian terbaru SPA memakai keduanya).
type ClassModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title            string         `gorm:"size:200;not null" json:"title" validate:"required,min=3,max=200"`
	Description      string         `gorm:"type:text" json:"description"`
	Schedule         string         `gorm:"size:255" json:"schedule"`
	ScheduleSessions datatypes.JSON `gorm:"column:schedule_sessions" json:"schedule_sessions,omitempty"`
	Price            float64        `gorm:"type:numeric(10,2);not null;default:0" json:"price" validate:"gte=0"`
	GoogleMeetLink   string         `gorm:"size:500" json:"google_meet_link"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	Type             string         `gorm:"type:varchar(10);not null;default:'monthly'" json:"type" validate:"omitempty,oneof=single monthly"`
	InstructorID     *uuid.UUID     `gorm:"type:uuid" json:"instructor_id"`
	InstructorName   string         `gorm:"size:100" json:"instructor_name"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}
