package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	model "celikkalam_backend/internals/features/enrollments/model"
	service "celikkalam_backend/internals/features/enrollments/service"
	helper "celikkalam_backend/internals/helpers"
)

type EnrollmentController struct {
	DB    *gorm.DB
	Cache *cache.Client
}

func NewEnrollmentController(db *gorm.DB, cacheClient *cache.Client) *EnrollmentController {
	return &EnrollmentController{DB: db, Cache: cacheClient}
}

/* ======================== ENROLL (STUDENT) ======================== */
// POST /api/u/enrollments  body: {"class_id": "..."}
func (h *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var input struct {
		ClassID uuid.UUID `json:"class_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.ClassID == uuid.Nil {
		return helper.Error(c, fiber.StatusBadRequest, "class_id wajib diisi")
	}

	enrollment, err := service.EnrollUser(h.DB, userID, input.ClassID)
	if err != nil {
		return err
	}

	h.Cache.Invalidate(c.UserContext())
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pendaftaran berjaya", enrollment)
}

/* ======================== LIST MINE (STUDENT) ======================== */
// GET /api/u/enrollments
func (h *EnrollmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.EnrollmentModel
	if err := h.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", rows)
}

/* ======================== MARK PAID (ADMIN OVERRIDE) ======================== */
// PATCH /api/a/enrollments/:id/mark-paid
// Override manual oleh admin; guard Unpaid yang sama dengan webhook.
func (h *EnrollmentController) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Enrollment ID tidak valid")
	}

	updated, err := service.MarkPaid(h.DB, id, "", "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if updated {
		h.Cache.Invalidate(c.UserContext())
	}

	return helper.Success(c, "OK", fiber.Map{
		"id":      id,
		"status":  model.StatusPaid,
		"updated": updated, // false = sudah Paid sebelumnya (no-op)
	})
}
