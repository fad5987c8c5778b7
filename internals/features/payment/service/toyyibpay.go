package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client membungkus API ToyyibPay (createBill & getBillTransactions).
// ToyyibPay tidak punya SDK Go — request berupa form-encoded POST, respons
// sukses berupa array JSON.
type Client struct {
	BaseURL      string
	SecretKey    string
	CategoryCode string
	HTTPClient   *http.Client
}

func NewClient(baseURL string, creds GatewayCredentials) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		SecretKey:    creds.SecretKey,
		CategoryCode: creds.CategoryCode,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BillRequest data minimum untuk menjana satu bill.
type BillRequest struct {
	EnrollmentID string
	Name         string
	Email        string
	Phone        string
	Title        string
	AmountCents  int64
	ReturnURL    string
	CallbackURL  string
}

// Transaction satu transaksi pada getBillTransactions.
// Status: '1' berjaya, '2' pending, '3' gagal.
type Transaction struct {
	BillName           string `json:"billName"`
	BillPaymentStatus  string `json:"billpaymentStatus"`
	BillPaymentAmount  string `json:"billpaymentAmount"`
	BillPaymentInvoice string `json:"billpaymentInvoiceNo"`
	BillExternalRefNo  string `json:"billExternalReferenceNo"`
}

// GatewayError menyimpan respons mentah gateway saat bill gagal dijana,
// supaya controller bisa meneruskan details ke client.
type GatewayError struct {
	RawBody string
}

func (e *GatewayError) Error() string {
	return "toyyibpay: " + e.RawBody
}

/* ======================== CREATE BILL ======================== */

// CreateBill memanggil /index.php/api/createBill dan mengembalikan BillCode.
func (c *Client) CreateBill(ctx context.Context, req BillRequest) (string, error) {
	form := url.Values{}
	form.Set("userSecretKey", c.SecretKey)
	form.Set("categoryCode", c.CategoryCode)
	form.Set("billName", "Yuran: "+req.Title)
	form.Set("billDescription", "Pembayaran untuk kelas "+req.Title+". ID Pendaftaran: "+req.EnrollmentID)
	form.Set("billPriceSetting", "1")
	form.Set("billPayorInfo", "1")
	form.Set("billAmount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("billReturnUrl", req.ReturnURL)
	form.Set("billCallbackUrl", req.CallbackURL)
	form.Set("billExternalReferenceNo", req.EnrollmentID)
	form.Set("billTo", req.Name)
	form.Set("billEmail", req.Email)
	form.Set("billPhone", orDefault(req.Phone, "0123456789"))
	form.Set("billSplitPayment", "0")
	form.Set("billPaymentChannel", "0")
	form.Set("billContentEmail", "Terima kasih kerana mendaftar dengan CelikKalam.")
	form.Set("billChargeToCustomer", "1")

	body, err := c.postForm(ctx, "/index.php/api/createBill", form)
	if err != nil {
		return "", err
	}

	// Sukses: [{"BillCode":"abcdefg"}]
	var entries []struct {
		BillCode string `json:"BillCode"`
	}
	if err := json.Unmarshal(body, &entries); err == nil && len(entries) > 0 && entries[0].BillCode != "" {
		return entries[0].BillCode, nil
	}

	return "", &GatewayError{RawBody: string(body)}
}

// PaymentURL membentuk URL halaman pembayaran untuk satu bill code.
func (c *Client) PaymentURL(billCode string) string {
	return c.BaseURL + "/" + billCode
}

/* ======================== BILL TRANSACTIONS ======================== */

// GetBillTransactions mengambil transaksi bill. Array kosong = belum ada transaksi.
func (c *Client) GetBillTransactions(ctx context.Context, billCode string) ([]Transaction, error) {
	form := url.Values{}
	form.Set("userSecretKey", c.SecretKey)
	form.Set("billCode", billCode)

	body, err := c.postForm(ctx, "/index.php/api/getBillTransactions", form)
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, &GatewayError{RawBody: string(body)}
	}
	return txs, nil
}

// IsBillPaid: transaksi pertama berstatus '1'.
func IsBillPaid(txs []Transaction) bool {
	return len(txs) > 0 && txs[0].BillPaymentStatus == "1"
}

/* ======================== INTERNAL ======================== */

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("toyyibpay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("toyyibpay read response: %w", err)
	}
	return body, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
