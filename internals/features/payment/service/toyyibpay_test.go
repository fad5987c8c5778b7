package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() GatewayCredentials {
	return GatewayCredentials{SecretKey: "sk-test", CategoryCode: "cat123"}
}

func TestCreateBillSendsFormAndParsesBillCode(t *testing.T) {
	var gotPath string
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`[{"BillCode":"xyz789"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	billCode, err := c.CreateBill(context.Background(), BillRequest{
		EnrollmentID: "bb1f3e22-69de-4d3c-9b88-6a5a1a2b3c4d",
		Name:         "Ali",
		Email:        "ali@example.com",
		Title:        "Tajwid Asas",
		AmountCents:  4990,
		ReturnURL:    "https://celikkalam.my/?payment_verify=true",
		CallbackURL:  "https://celikkalam.my/api/payment/webhook",
	})
	require.NoError(t, err)

	assert.Equal(t, "xyz789", billCode)
	assert.Equal(t, "/index.php/api/createBill", gotPath)
	assert.Equal(t, "sk-test", gotForm.Get("userSecretKey"))
	assert.Equal(t, "cat123", gotForm.Get("categoryCode"))
	assert.Equal(t, "4990", gotForm.Get("billAmount"))
	assert.Equal(t, "Yuran: Tajwid Asas", gotForm.Get("billName"))
	// phone kosong → default
	assert.Equal(t, "0123456789", gotForm.Get("billPhone"))
}

func TestCreateBillGatewayErrorReturnsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[KEY-DID-NOT-EXIST]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	_, err := c.CreateBill(context.Background(), BillRequest{
		EnrollmentID: "x", Title: "Tajwid", AmountCents: 100,
	})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.RawBody, "KEY-DID-NOT-EXIST")
}

func TestGetBillTransactionsParsesStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "abc123", r.PostForm.Get("billCode"))
		_, _ = w.Write([]byte(`[{"billpaymentStatus":"1","billpaymentInvoiceNo":"INV001"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds())
	txs, err := c.GetBillTransactions(context.Background(), "abc123")
	require.NoError(t, err)

	require.Len(t, txs, 1)
	assert.Equal(t, "1", txs[0].BillPaymentStatus)
	assert.True(t, IsBillPaid(txs))
}

func TestIsBillPaid(t *testing.T) {
	assert.False(t, IsBillPaid(nil), "tiada transaksi = belum bayar")
	assert.False(t, IsBillPaid([]Transaction{{BillPaymentStatus: "2"}}), "pending bukan paid")
	assert.False(t, IsBillPaid([]Transaction{{BillPaymentStatus: "3"}}), "gagal bukan paid")
	assert.True(t, IsBillPaid([]Transaction{{BillPaymentStatus: "1"}}))
}

func TestPaymentURL(t *testing.T) {
	c := NewClient("https://toyyibpay.com/", testCreds())
	assert.Equal(t, "https://toyyibpay.com/abc123", c.PaymentURL("abc123"))
}
