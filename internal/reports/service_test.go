package reports

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/catalog"
)

type stubInvoices struct {
	invoices []billing.Invoice
}

func (s *stubInvoices) ListInvoices(ctx context.Context) ([]billing.Invoice, error) {
	return append([]billing.Invoice(nil), s.invoices...), nil
}

type stubProducts struct {
	products []catalog.Product
}

func (s *stubProducts) List(ctx context.Context) ([]catalog.Product, error) {
	return append([]catalog.Product(nil), s.products...), nil
}

func invoiceAt(id, customer string, total float64, status billing.Status, created time.Time, items ...billing.LineItem) billing.Invoice {
	return billing.Invoice{
		ID:        id,
		Customer:  billing.CustomerSnapshot{Name: customer},
		Items:     items,
		Total:     total,
		Status:    status,
		CreatedAt: created,
	}
}

func newTestService(invoices *stubInvoices, products *stubProducts) *Service {
	return NewService(invoices, products, slog.Default())
}

func TestSummaryCounts(t *testing.T) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	invoices := &stubInvoices{invoices: []billing.Invoice{
		invoiceAt("1", "Rajesh Kumar", 118, billing.StatusPaid, base),
		invoiceAt("2", "Priya Sharma", 236, billing.StatusPending, base.Add(time.Hour)),
		invoiceAt("3", "Rajesh Kumar", 59, "", base.Add(2*time.Hour)),
	}}
	svc := newTestService(invoices, &stubProducts{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 413.0, summary.TotalSales)
	assert.Equal(t, 3, summary.InvoiceCount)
	assert.Equal(t, 1, summary.PaidCount)
	// A missing status reads as Unpaid.
	assert.Equal(t, 2, summary.UnpaidCount)
	assert.Equal(t, 2, summary.DistinctCustomers)
}

func TestLowStockUsesThreshold(t *testing.T) {
	products := &stubProducts{products: []catalog.Product{
		{ID: "1", Name: "Basmati Rice", Stock: 50, MinStock: 10},
		{ID: "2", Name: "Wheat Flour", Stock: 5, MinStock: 10},
		{ID: "3", Name: "Sugar", Stock: 10, MinStock: 10},
		{ID: "4", Name: "Salt", Stock: 0},
	}}
	svc := newTestService(&stubInvoices{}, products)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Wheat Flour", low[0].Name)
	// Stock exactly at the threshold counts as low.
	assert.Equal(t, "Sugar", low[1].Name)
	// No configured minimum means never flagged, even when sold out.
	for _, p := range low {
		assert.NotEqual(t, "Salt", p.Name)
	}
}

func TestTopProductsRanksByAmount(t *testing.T) {
	base := time.Now()
	invoices := &stubInvoices{invoices: []billing.Invoice{
		invoiceAt("1", "A", 0, billing.StatusPaid, base,
			billing.LineItem{Name: "Basmati Rice", Quantity: 2, Amount: 200},
			billing.LineItem{Name: "Sugar", Quantity: 1, Amount: 40},
		),
		invoiceAt("2", "B", 0, billing.StatusPaid, base,
			billing.LineItem{Name: "Sugar", Quantity: 5, Amount: 200},
			billing.LineItem{Name: "", Quantity: 1, Amount: 999},
		),
	}}
	svc := newTestService(invoices, &stubProducts{})

	ranked, err := svc.TopProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Sugar", ranked[0].Name)
	assert.Equal(t, 240.0, ranked[0].Amount)
	assert.Equal(t, 6.0, ranked[0].Quantity)
	assert.Equal(t, "Basmati Rice", ranked[1].Name)

	capped, err := svc.TopProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
}

func TestDashboardBundlesAggregates(t *testing.T) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	invoices := &stubInvoices{invoices: []billing.Invoice{
		invoiceAt("1", "Rajesh Kumar", 118, billing.StatusPaid, base,
			billing.LineItem{Name: "Basmati Rice", Quantity: 2, Amount: 100}),
	}}
	products := &stubProducts{products: []catalog.Product{
		{ID: "2", Name: "Wheat Flour", Stock: 5, MinStock: 10},
	}}
	svc := newTestService(invoices, products)

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 118.0, dashboard.Summary.TotalSales)
	require.Len(t, dashboard.LowStock, 1)
	require.Len(t, dashboard.TopProducts, 1)
	assert.Equal(t, "Basmati Rice", dashboard.TopProducts[0].Name)
	require.Len(t, dashboard.RecentInvoices, 1)
}

func TestRecentInvoicesNewestFirstCapped(t *testing.T) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	var all []billing.Invoice
	for i := 0; i < 7; i++ {
		all = append(all, invoiceAt(
			time.Duration(i).String(), "C", 100, billing.StatusPaid, base.Add(time.Duration(i)*time.Hour)))
	}
	svc := newTestService(&stubInvoices{invoices: all}, &stubProducts{})

	recent, err := svc.RecentInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, all[6].ID, recent[0].ID)
	assert.Equal(t, all[2].ID, recent[4].ID)
}
