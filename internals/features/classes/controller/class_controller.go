package controller

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	dto "celikkalam_backend/internals/features/classes/dto"
	model "celikkalam_backend/internals/features/classes/model"
	service "celikkalam_backend/internals/features/classes/service"
	helper "celikkalam_backend/internals/helpers"
)

type ClassController struct {
	DB    *gorm.DB
	Cache *cache.Client
}

func NewClassController(db *gorm.DB, cacheClient *cache.Client) *ClassController {
	return &ClassController{DB: db, Cache: cacheClient}
}

var validate = validator.New()

/* ======================== LIST (PUBLIC) ======================== */
// GET /api/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	classes, err := service.ListActiveClasses(h.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", classes)
}

/* ======================== CREATE (ADMIN/USTAZ) ======================== */
// POST /api/a/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var input dto.CreateClassRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	// Ustaz membuat kelas atas nama sendiri kalau instructor tidak diisi.
	if input.InstructorID == nil {
		if userID, err := helper.GetUserIDFromToken(c); err == nil {
			input.InstructorID = &userID
			if name, ok := c.Locals("user_name").(string); ok && input.InstructorName == "" {
				input.InstructorName = name
			}
		}
	}

	class, err := service.CreateClass(h.DB, input)
	if err != nil {
		return err
	}

	h.Cache.Invalidate(c.UserContext())
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kelas dibuat", class)
}

/* ======================== UPDATE (ADMIN) ======================== */
// PATCH /api/a/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Class ID tidak valid")
	}

	var input dto.UpdateClassRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Schedule != nil {
		updates["schedule"] = *input.Schedule
	}
	if len(input.ScheduleSessions) > 0 {
		raw, err := json.Marshal(input.ScheduleSessions)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "schedule_sessions tidak valid")
		}
		updates["schedule_sessions"] = datatypes.JSON(raw)
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.GoogleMeetLink != nil {
		updates["google_meet_link"] = *input.GoogleMeetLink
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada field untuk dikemaskini")
	}

	res := h.DB.Model(&model.ClassModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
	}

	h.Cache.Invalidate(c.UserContext())

	var class model.ClassModel
	if err := h.DB.First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Kelas dikemaskini", class)
}
