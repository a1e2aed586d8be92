package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/settings"
	_ "github.com/pavilo/pavilo-billing/testing"
)

func testInvoice() billing.Invoice {
	return billing.Invoice{
		ID: "1756700000000",
		Customer: billing.CustomerSnapshot{
			Name:    "Rajesh Kumar",
			Phone:   "9876543210",
			Address: "12 Market Road, Ahmedabad",
		},
		Items: []billing.LineItem{
			{ID: "l1", Name: "Basmati Rice", Quantity: 2, Rate: 50, Unit: "kg", Amount: 100},
		},
		Subtotal:  100,
		GST:       18,
		Total:     118,
		GSTRate:   18,
		Status:    billing.StatusPending,
		CreatedAt: time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatAmountIndianGrouping(t *testing.T) {
	assert.Equal(t, "₹118.00", FormatAmount(118))
	assert.Equal(t, "₹1,50,000.00", FormatAmount(150000))
	assert.Equal(t, "₹0.50", FormatAmount(0.5))
}

func TestRenderInvoiceHTML(t *testing.T) {
	business := settings.BusinessSettings{
		BusinessName: "Kumar General Store",
		Phone:        "9123456780",
	}

	html, err := RenderInvoiceHTML(business, testInvoice())
	require.NoError(t, err)

	assert.Contains(t, html, "Kumar General Store")
	assert.Contains(t, html, "Invoice #1756700000000")
	assert.Contains(t, html, "Rajesh Kumar")
	assert.Contains(t, html, "Basmati Rice (kg)")
	for _, column := range []string{"Product", "Qty", "Rate", "Amount"} {
		assert.Contains(t, html, ">"+column+"<")
	}
	assert.Contains(t, html, "₹100.00")
	assert.Contains(t, html, "GST (18%)")
	assert.Contains(t, html, "₹118.00")
	assert.Contains(t, html, "Pending")
}

func TestRenderInvoiceHTMLFallbackHeader(t *testing.T) {
	html, err := RenderInvoiceHTML(settings.BusinessSettings{}, testInvoice())
	require.NoError(t, err)
	assert.Contains(t, html, "Pavilo Billing Buddy")
}

func TestGotenbergRenderHTML(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		assert.Equal(t, "index.html", header.Filename)
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(body), "<html>")

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	client := NewGotenbergClient(srv.URL)
	pdf, err := client.RenderHTML(context.Background(), "<html><body>hi</body></html>")
	require.NoError(t, err)

	assert.Equal(t, "/forms/chromium/convert/html", gotPath)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
}

func TestGotenbergRenderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewGotenbergClient(srv.URL)
	_, err := client.RenderHTML(context.Background(), "<html></html>")
	require.Error(t, err)
}

func TestGotenbergPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewGotenbergClient(srv.URL).Ping(context.Background()))
}
