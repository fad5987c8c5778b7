package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	dto "celikkalam_backend/internals/features/users/dto"
	model "celikkalam_backend/internals/features/users/model"
	service "celikkalam_backend/internals/features/users/service"
	helper "celikkalam_backend/internals/helpers"
)

type AuthController struct {
	DB    *gorm.DB
	Cache *cache.Client
}

func NewAuthController(db *gorm.DB, cacheClient *cache.Client) *AuthController {
	return &AuthController{DB: db, Cache: cacheClient}
}

var validate = validator.New()

/* ======================== REGISTER ======================== */
// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.RegisterUser(h.DB, input)
	if err != nil {
		return err
	}

	h.Cache.Invalidate(c.UserContext())

	token, err := service.GenerateAccessToken(user)
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pendaftaran berjaya", fiber.Map{
		"user":  dto.FromUserModel(user),
		"token": token,
	})
}

/* ======================== LOGIN ======================== */
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.AuthenticateUser(h.DB, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	token, err := service.GenerateAccessToken(user)
	if err != nil {
		return err
	}

	return helper.Success(c, "Login berjaya", fiber.Map{
		"user":  dto.FromUserModel(user),
		"token": token,
	})
}

/* ======================== ME ======================== */
// GET /api/auth/me (JWT)
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.FromUserModel(user))
}

/* ======================== UPDATE ROLE (ADMIN) ======================== */
// PATCH /api/a/users/:id/role
func (h *AuthController) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User ID tidak valid")
	}

	var input dto.UpdateRoleRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	res := h.DB.Model(&model.UserModel{}).Where("id = ?", id).Update("role", input.Role)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}

	h.Cache.Invalidate(c.UserContext())
	return helper.Success(c, "Role dikemaskini", fiber.Map{"id": id, "role": input.Role})
}
