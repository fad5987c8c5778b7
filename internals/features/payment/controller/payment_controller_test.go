package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newPaymentApp(t *testing.T, gatewayURL string) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	h := NewPaymentController(gdb, nil)
	h.GatewayBaseURL = gatewayURL

	app := fiber.New()
	app.Post("/api/payment/create-bill", h.CreateBill)
	app.Post("/api/payment/webhook", h.Webhook)
	app.Post("/api/payment/verify", h.Verify)
	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func settingsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"key", "value"}).
		AddRow("toyyibpay_secret_key", "sk-test").
		AddRow("toyyibpay_category_code", "cat123")
}

/* ======================== CREATE BILL ======================== */

func TestCreateBillMissingPriceRejected(t *testing.T) {
	app, _ := newPaymentApp(t, "http://unused")

	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d","name":"Ali","email":"ali@example.com","title":"Tajwid Asas"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, "Harga tidak valid", body["error"])
}

func TestCreateBillNonNumericPriceRejected(t *testing.T) {
	app, _ := newPaymentApp(t, "http://unused")

	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d","name":"Ali","email":"ali@example.com","title":"Tajwid Asas","price":"banyak"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateBillZeroPriceRejected(t *testing.T) {
	app, _ := newPaymentApp(t, "http://unused")

	// Harga 0 tidak boleh menjana bill 0 sen di gateway
	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d","name":"Ali","email":"ali@example.com","title":"Tajwid Asas","price":0}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateBillMissingEnrollmentIDRejected(t *testing.T) {
	app, _ := newPaymentApp(t, "http://unused")

	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"name":"Ali","email":"ali@example.com","title":"Tajwid Asas","price":50}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, "Missing required fields", body["error"])
}

func TestCreateBillSuccess(t *testing.T) {
	var received url.Values
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"BillCode":"abc123"}]`))
	}))
	defer gateway.Close()

	app, mock := newPaymentApp(t, gateway.URL)

	mock.ExpectQuery(`SELECT \* FROM "app_settings"`).WillReturnRows(settingsRows())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "enrollments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d","name":"Ali","email":"ali@example.com","phone":"0134567890","title":"Tajwid Asas","price":"49.90"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, "abc123", body["billCode"])
	assert.Equal(t, gateway.URL+"/abc123", body["paymentUrl"])

	// RM49.90 → 4990 sen
	assert.Equal(t, "4990", received.Get("billAmount"))
	assert.Equal(t, "sk-test", received.Get("userSecretKey"))
	assert.Equal(t, "cat123", received.Get("categoryCode"))
	assert.Equal(t, "Yuran: Tajwid Asas", received.Get("billName"))
	assert.Equal(t, "bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d", received.Get("billExternalReferenceNo"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBillGatewayErrorForwarded(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[KEY-DID-NOT-EXIST]`))
	}))
	defer gateway.Close()

	app, mock := newPaymentApp(t, gateway.URL)
	mock.ExpectQuery(`SELECT \* FROM "app_settings"`).WillReturnRows(settingsRows())

	resp := postJSON(t, app, "/api/payment/create-bill",
		`{"enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d","name":"Ali","email":"ali@example.com","title":"Tajwid Asas","price":50}`)

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, "Gagal menjana bill ToyyibPay", body["error"])
}

/* ======================== WEBHOOK ======================== */

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWebhookSuccessMarksPaid(t *testing.T) {
	app, mock := newPaymentApp(t, "http://unused")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "enrollments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := postForm(t, app, "/api/payment/webhook", url.Values{
		"refno":    {"TP240001"},
		"status":   {"1"},
		"billcode": {"abc123"},
		"order_id": {"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d"},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	app, mock := newPaymentApp(t, "http://unused")

	// Sudah Paid → guard Unpaid match 0 baris, tetap OK
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "enrollments" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	resp := postForm(t, app, "/api/payment/webhook", url.Values{
		"refno":    {"TP240001"},
		"status":   {"1"},
		"billcode": {"abc123"},
		"order_id": {"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d"},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookFailedStatusIgnored(t *testing.T) {
	app, mock := newPaymentApp(t, "http://unused")

	resp := postForm(t, app, "/api/payment/webhook", url.Values{
		"refno":    {"TP240002"},
		"status":   {"3"},
		"billcode": {"abc123"},
		"order_id": {"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d"},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Ignored", string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookMissingOrderIDIgnored(t *testing.T) {
	app, mock := newPaymentApp(t, "http://unused")

	resp := postForm(t, app, "/api/payment/webhook", url.Values{
		"refno":  {"TP240003"},
		"status": {"1"},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Ignored", string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ======================== VERIFY ======================== */

func TestVerifyMissingParamsRejected(t *testing.T) {
	app, _ := newPaymentApp(t, "http://unused")

	resp := postJSON(t, app, "/api/payment/verify", `{"billCode":"abc123"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, "Missing parameters", body["error"])
}

func TestVerifyPaidUpdatesEnrollment(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"billpaymentStatus":"1","billpaymentInvoiceNo":"INV001"}]`))
	}))
	defer gateway.Close()

	app, mock := newPaymentApp(t, gateway.URL)

	mock.ExpectQuery(`SELECT \* FROM "app_settings"`).WillReturnRows(settingsRows())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "enrollments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/api/payment/verify",
		`{"billCode":"abc123","enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Paid", body["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyUnpaidReturnsDetails(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer gateway.Close()

	app, mock := newPaymentApp(t, gateway.URL)
	mock.ExpectQuery(`SELECT \* FROM "app_settings"`).WillReturnRows(settingsRows())

	resp := postJSON(t, app, "/api/payment/verify",
		`{"billCode":"abc123","enrollmentId":"bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unpaid", body["status"])
}
