package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"celikkalam_backend/internals/features/classes/model"
)

type CreateClassRequest struct {
	Title            string     `json:"title" validate:"required,min=3,max=200"`
	Description      string     `json:"description"`
	Schedule         string     `json:"schedule"`
	ScheduleSessions []string   `json:"schedule_sessions" validate:"omitempty,dive,datetime=2006-01-02T15:04:05Z07:00"`
	Price            float64    `json:"price" validate:"gte=0"`
	GoogleMeetLink   string     `json:"googleMeetLink"`
	Type             string     `json:"type" validate:"omitempty,oneof=single monthly"`
	InstructorID     *uuid.UUID `json:"instructorId"`
	InstructorName   string     `json:"instructorName"`
}

type UpdateClassRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description      *string  `json:"description"`
	Schedule         *string  `json:"schedule"`
	ScheduleSessions []string `json:"schedule_sessions" validate:"omitempty,dive,datetime=2006-01-02T15:04:05Z07:00"`
	Price            *float64 `json:"price" validate:"omitempty,gte=0"`
	GoogleMeetLink   *string  `json:"googleMeetLink"`
	IsActive         *bool    `json:"isActive"`
	Type             *string  `json:"type" validate:"omitempty,oneof=single monthly"`
}

// ToModel membentuk ClassModel baru dari request create.
func (r CreateClassRequest) ToModel() (model.ClassModel, error) {
	m := model.ClassModel{
		Title:          r.Title,
		Description:    r.Description,
		Schedule:       r.Schedule,
		Price:          r.Price,
		GoogleMeetLink: r.GoogleMeetLink,
		IsActive:       true,
		Type:           r.Type,
		InstructorID:   r.InstructorID,
		InstructorName: r.InstructorName,
	}
	if m.Type == "" {
		m.Type = "monthly"
	}
	if len(r.ScheduleSessions) > 0 {
		raw, err := json.Marshal(r.ScheduleSessions)
		if err != nil {
			return model.ClassModel{}, err
		}
		m.ScheduleSessions = datatypes.JSON(raw)
	}
	return m, nil
}
