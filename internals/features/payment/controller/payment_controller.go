package controller

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"celikkalam_backend/internals/cache"
	"celikkalam_backend/internals/configs"
	enrollmentService "celikkalam_backend/internals/features/enrollments/service"
	service "celikkalam_backend/internals/features/payment/service"
)

// PaymentController menangani create-bill, webhook, dan verify.
// Endpoint ini mempertahankan bentuk respons mentah ({error:...}, {billCode:...})
// yang diparse SPA lama — bukan envelope helper.
type PaymentController struct {
	DB             *gorm.DB
	Cache          *cache.Client
	GatewayBaseURL string
}

func NewPaymentController(db *gorm.DB, cacheClient *cache.Client) *PaymentController {
	return &PaymentController{
		DB:             db,
		Cache:          cacheClient,
		GatewayBaseURL: configs.ToyyibPayBaseURL,
	}
}

/* ======================== CREATE BILL ======================== */
// POST /api/payment/create-bill
// body: {enrollmentId, name, email, phone, title, price|amount}
func (h *PaymentController) CreateBill(c *fiber.Ctx) error {
	var body struct {
		EnrollmentID string      `json:"enrollmentId"`
		Name         string      `json:"name"`
		Email        string      `json:"email"`
		Phone        string      `json:"phone"`
		Title        string      `json:"title"`
		Price        interface{} `json:"price"`
		Amount       interface{} `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}

	if strings.TrimSpace(body.EnrollmentID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	enrollmentID, err := uuid.Parse(body.EnrollmentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enrollmentId tidak valid"})
	}

	// Harga wajib numerik & > 0 — jangan sampai bill 0 sen terkirim ke gateway.
	raw := body.Price
	if raw == nil {
		raw = body.Amount
	}
	price, ok := parsePrice(raw)
	if !ok || price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Harga tidak valid"})
	}
	// ToyyibPay pakai sen (RM1 = 100)
	amountCents := int64(math.Round(price * 100))

	creds, configured := service.ResolveGatewayCredentials(h.DB)
	if !configured {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment gateway not configured by Admin"})
	}

	origin := strings.TrimRight(configs.AppURL, "/")
	if origin == "" {
		origin = c.BaseURL()
	}

	gw := service.NewClient(h.GatewayBaseURL, creds)
	billCode, err := gw.CreateBill(c.UserContext(), service.BillRequest{
		EnrollmentID: enrollmentID.String(),
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		Title:        body.Title,
		AmountCents:  amountCents,
		ReturnURL:    origin + "/?payment_verify=true&enrollment_id=" + enrollmentID.String(),
		CallbackURL:  origin + "/api/payment/webhook",
	})
	if err != nil {
		var gwErr *service.GatewayError
		if errors.As(err, &gwErr) {
			log.Printf("[ERROR] ToyyibPay createBill: %s", gwErr.RawBody)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":   "Gagal menjana bill ToyyibPay",
				"details": gwErr.RawBody,
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	// Simpan bill code terbaru pada enrollment (tanpa idempotency key:
	// create-bill dua kali memang menjana dua bill).
	if err := enrollmentService.AttachBillCode(h.DB, enrollmentID, billCode); err != nil {
		log.Printf("[WARN] gagal simpan bill_code: %v", err)
	}

	return c.JSON(fiber.Map{
		"billCode":   billCode,
		"paymentUrl": gw.PaymentURL(billCode),
	})
}

/* ======================== WEBHOOK ======================== */
// POST /api/payment/webhook  (form-encoded dari ToyyibPay)
// fields: refno, status, billcode, order_id (alias billExternalReferenceNo)
// Status '1' = berjaya. Tidak ada verifikasi signature — ToyyibPay tidak
// menyediakannya; guard Unpaid membuat duplicate delivery jadi no-op.
func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	refno := c.FormValue("refno")
	status := c.FormValue("status")
	billcode := c.FormValue("billcode")
	orderID := c.FormValue("order_id")
	if orderID == "" {
		orderID = c.FormValue("billExternalReferenceNo")
	}

	log.Printf("[INFO] Webhook: bill=%s status=%s ref=%s enrollment=%s", billcode, status, refno, orderID)

	if status != "1" || orderID == "" {
		return c.SendString("Ignored")
	}

	enrollmentID, err := uuid.Parse(orderID)
	if err != nil {
		return c.SendString("Ignored")
	}

	updated, err := enrollmentService.MarkPaid(h.DB, enrollmentID, refno, billcode)
	if err != nil {
		log.Printf("[ERROR] webhook update gagal: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database Update Failed")
	}
	if updated {
		h.Cache.Invalidate(c.UserContext())
	}

	return c.SendString("OK")
}

/* ======================== VERIFY ======================== */
// POST /api/payment/verify  body: {billCode, enrollmentId}
// Dipoll SPA setelah redirect balik dari gateway.
func (h *PaymentController) Verify(c *fiber.Ctx) error {
	var body struct {
		BillCode     string `json:"billCode"`
		EnrollmentID string `json:"enrollmentId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}
	if body.BillCode == "" || body.EnrollmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing parameters"})
	}
	enrollmentID, err := uuid.Parse(body.EnrollmentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enrollmentId tidak valid"})
	}

	creds, configured := service.ResolveGatewayCredentials(h.DB)
	if !configured {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment gateway not configured by Admin"})
	}

	gw := service.NewClient(h.GatewayBaseURL, creds)
	txs, err := gw.GetBillTransactions(c.UserContext(), body.BillCode)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if !service.IsBillPaid(txs) {
		return c.JSON(fiber.Map{"success": false, "status": "Unpaid", "details": txs})
	}

	updated, err := enrollmentService.MarkPaid(h.DB, enrollmentID, firstInvoice(txs), body.BillCode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if updated {
		h.Cache.Invalidate(c.UserContext())
	}

	return c.JSON(fiber.Map{"success": true, "status": "Paid"})
}

/* ======================== HELPERS ======================== */

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

func firstInvoice(txs []service.Transaction) string {
	if len(txs) > 0 {
		return txs[0].BillPaymentInvoice
	}
	return ""
}
