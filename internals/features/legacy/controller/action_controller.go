package controller

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	classDto "celikkalam_backend/internals/features/classes/dto"
	classService "celikkalam_backend/internals/features/classes/service"
	enrollmentModel "celikkalam_backend/internals/features/enrollments/model"
	enrollmentService "celikkalam_backend/internals/features/enrollments/service"
	userDto "celikkalam_backend/internals/features/users/dto"
	userModel "celikkalam_backend/internals/features/users/model"
	userService "celikkalam_backend/internals/features/users/service"
)

// ActionController adalah endpoint action-dispatch lama (/api?action=...)
// yang jadi kontrak utama SPA. Respons berupa JSON mentah persis bentuk
// yang diparse front end, bukan envelope helper.
type ActionController struct {
	DB    *gorm.DB
	Cache *cache.Client
}

func NewActionController(db *gorm.DB, cacheClient *cache.Client) *ActionController {
	return &ActionController{DB: db, Cache: cacheClient}
}

// actionPayload menampung gabungan field semua action.
// Key camelCase mengikuti SPA lama.
type actionPayload struct {
	Action string `json:"action"`

	// login / register
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`

	// createClass
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Schedule       string      `json:"schedule"`
	Price          interface{} `json:"price"`
	GoogleMeetLink string      `json:"googleMeetLink"`
	Type           string      `json:"type"`
	InstructorID   string      `json:"instructorId"`
	InstructorName string      `json:"instructorName"`

	// enroll / pay
	UserID   string `json:"userId"`
	ClassID  string `json:"classId"`
	EnrollID string `json:"enrollId"`
}

/* ======================== DISPATCH ======================== */

// Handle melayani GET dan POST /api.
func (h *ActionController) Handle(c *fiber.Ctx) error {
	action := c.Query("action")
	var payload actionPayload

	if c.Method() == fiber.MethodPost {
		body := c.Body()
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
			}
		}
		if payload.Action != "" {
			action = payload.Action
		}
	} else {
		h.fillFromQuery(c, &payload)
	}

	if action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Action parameter is required"})
	}

	switch action {
	case "getData":
		return h.getData(c)
	case "login":
		return h.login(c, payload)
	case "register":
		return h.register(c, payload)
	case "createClass":
		return h.createClass(c, payload)
	case "enroll":
		return h.enroll(c, payload)
	case "pay":
		return h.pay(c, payload)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown action: " + action})
	}
}

func (h *ActionController) fillFromQuery(c *fiber.Ctx, p *actionPayload) {
	p.Name = c.Query("name")
	p.Email = c.Query("email")
	p.Password = c.Query("password")
	p.Role = c.Query("role")
	p.Phone = c.Query("phone")
	p.Title = c.Query("title")
	p.Description = c.Query("description")
	p.Schedule = c.Query("schedule")
	if v := c.Query("price"); v != "" {
		p.Price = v
	}
	p.GoogleMeetLink = c.Query("googleMeetLink")
	p.Type = c.Query("type")
	p.InstructorID = c.Query("instructorId")
	p.InstructorName = c.Query("instructorName")
	p.UserID = c.Query("userId")
	p.ClassID = c.Query("classId")
	p.EnrollID = c.Query("enrollId")
}

/* ======================== ACTIONS ======================== */

// getData: snapshot lengkap untuk dashboard. Store kosong = array kosong,
// bukan error.
func (h *ActionController) getData(c *fiber.Ctx) error {
	if snap, err := h.Cache.GetSnapshot(c.UserContext()); err == nil && snap != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(snap)
	}

	classes, err := classService.ListActiveClasses(h.DB)
	if err != nil {
		return h.fail(c, err)
	}

	enrollments := make([]enrollmentModel.EnrollmentModel, 0)
	if err := h.DB.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return h.fail(c, err)
	}

	var users []userModel.UserModel
	if err := h.DB.Find(&users).Error; err != nil {
		return h.fail(c, err)
	}

	result := fiber.Map{
		"classes":     classes,
		"enrollments": enrollments,
		"users":       userDto.FromUserModels(users), // tanpa password
	}

	if err := h.Cache.SetSnapshot(c.UserContext(), result); err != nil {
		log.Printf("[WARN] gagal simpan snapshot cache: %v", err)
	}

	return c.JSON(result)
}

// login: kredensial salah dijawab 200 + status "error" (kontrak SPA lama).
func (h *ActionController) login(c *fiber.Ctx, p actionPayload) error {
	user, err := userService.AuthenticateUser(h.DB, p.Email, p.Password)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidCredentials) {
			return c.JSON(fiber.Map{"error": err.Error(), "status": "error"})
		}
		return h.fail(c, err)
	}

	token, err := userService.GenerateAccessToken(user)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   userDto.FromUserModel(user),
		"token":  token,
		"status": "success",
	})
}

func (h *ActionController) register(c *fiber.Ctx, p actionPayload) error {
	user, err := userService.RegisterUser(h.DB, userDto.RegisterRequest{
		Name:     p.Name,
		Email:    p.Email,
		Password: p.Password,
		Role:     p.Role,
		Phone:    p.Phone,
	})
	if err != nil {
		return h.fail(c, err)
	}

	h.Cache.Invalidate(c.UserContext())

	token, err := userService.GenerateAccessToken(user)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   userDto.FromUserModel(user),
		"token":  token,
		"status": "success",
	})
}

func (h *ActionController) createClass(c *fiber.Ctx, p actionPayload) error {
	// Tanpa price = kelas percuma; price tak numerik ditolak, jangan diam-diam jadi RM0
	var price float64
	if p.Price != nil {
		v, ok := parsePrice(p.Price)
		if !ok || v < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Harga tidak valid"})
		}
		price = v
	}

	var instructorID *uuid.UUID
	if p.InstructorID != "" {
		if id, err := uuid.Parse(p.InstructorID); err == nil {
			instructorID = &id
		}
	}

	class, err := classService.CreateClass(h.DB, classDto.CreateClassRequest{
		Title:          p.Title,
		Description:    p.Description,
		Schedule:       p.Schedule,
		Price:          price,
		GoogleMeetLink: p.GoogleMeetLink,
		Type:           p.Type,
		InstructorID:   instructorID,
		InstructorName: p.InstructorName,
	})
	if err != nil {
		return h.fail(c, err)
	}

	h.Cache.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"status": "success", "id": class.ID})
}

func (h *ActionController) enroll(c *fiber.Ctx, p actionPayload) error {
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId tidak valid"})
	}
	classID, err := uuid.Parse(p.ClassID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "classId tidak valid"})
	}

	enrollment, err := enrollmentService.EnrollUser(h.DB, userID, classID)
	if err != nil {
		return h.fail(c, err)
	}

	h.Cache.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"status": "success", "id": enrollment.ID})
}

// pay: transisi Unpaid → Paid satu baris; panggilan ulang no-op.
func (h *ActionController) pay(c *fiber.Ctx, p actionPayload) error {
	enrollID, err := uuid.Parse(p.EnrollID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enrollId tidak valid"})
	}

	if _, err := enrollmentService.MarkPaid(h.DB, enrollID, "", ""); err != nil {
		return h.fail(c, err)
	}

	h.Cache.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"status": "success"})
}

/* ======================== HELPERS ======================== */

// fail menerjemahkan error service ke bentuk {error: msg} yang dipahami SPA.
func (h *ActionController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parsePrice(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
