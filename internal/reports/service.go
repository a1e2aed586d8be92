package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/catalog"
)

// InvoiceSource provides the committed invoices to aggregate over.
type InvoiceSource interface {
	ListInvoices(ctx context.Context) ([]billing.Invoice, error)
}

// ProductSource provides the catalog for stock checks.
type ProductSource interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// Summary is the dashboard aggregate computed over all invoices.
type Summary struct {
	TotalSales        float64 `json:"totalSales"`
	InvoiceCount      int     `json:"invoiceCount"`
	PaidCount         int     `json:"paidCount"`
	UnpaidCount       int     `json:"unpaidCount"`
	DistinctCustomers int     `json:"distinctCustomers"`
}

// ProductSales ranks one product's sold amount across all invoices.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

const recentInvoiceLimit = 5

// Service computes read-only aggregates. Everything is derived on demand
// from the stored collections; nothing is cached or precomputed.
type Service struct {
	invoices InvoiceSource
	products ProductSource
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(invoices InvoiceSource, products ProductSource, logger *slog.Logger) *Service {
	return &Service{invoices: invoices, products: products, logger: logger}
}

// Summary totals sales and counts invoices by settlement state. Customers
// are counted by distinct snapshot name.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: summary: %w", err)
	}
	out := &Summary{InvoiceCount: len(invoices)}
	names := make(map[string]struct{})
	for _, inv := range invoices {
		out.TotalSales += inv.Total
		if inv.DisplayStatus() == billing.StatusPaid {
			out.PaidCount++
		} else {
			out.UnpaidCount++
		}
		if inv.Customer.Name != "" {
			names[inv.Customer.Name] = struct{}{}
		}
	}
	out.DistinctCustomers = len(names)
	return out, nil
}

// LowStock lists products at or below their minimum stock level. Products
// without a configured minimum are never flagged, even at zero stock.
func (s *Service) LowStock(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: low stock: %w", err)
	}
	low := make([]catalog.Product, 0)
	for _, p := range products {
		if p.MinStock > 0 && p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low, nil
}

// TopProducts ranks products by total sold amount, descending, capped at
// limit. Line items are grouped by name since invoices keep copies, not
// catalog references.
func (s *Service) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: top products: %w", err)
	}
	byName := make(map[string]*ProductSales)
	for _, inv := range invoices {
		for _, it := range inv.Items {
			if it.Name == "" {
				continue
			}
			entry, ok := byName[it.Name]
			if !ok {
				entry = &ProductSales{Name: it.Name}
				byName[it.Name] = entry
			}
			entry.Quantity += it.Quantity
			entry.Amount += it.Amount
		}
	}
	ranked := make([]ProductSales, 0, len(byName))
	for _, entry := range byName {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Dashboard bundles every aggregate the landing page needs.
type Dashboard struct {
	Summary        Summary           `json:"summary"`
	LowStock       []catalog.Product `json:"lowStock"`
	TopProducts    []ProductSales    `json:"topProducts"`
	RecentInvoices []billing.Invoice `json:"recentInvoices"`
}

// Dashboard computes all landing-page aggregates in one call, fanning the
// independent queries out concurrently.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.Summary(ctx)
		if err != nil {
			return err
		}
		out.Summary = *summary
		return nil
	})
	g.Go(func() error {
		low, err := s.LowStock(ctx)
		if err != nil {
			return err
		}
		out.LowStock = low
		return nil
	})
	g.Go(func() error {
		ranked, err := s.TopProducts(ctx, 5)
		if err != nil {
			return err
		}
		out.TopProducts = ranked
		return nil
	})
	g.Go(func() error {
		recent, err := s.RecentInvoices(ctx)
		if err != nil {
			return err
		}
		out.RecentInvoices = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentInvoices returns the newest invoices, most recent first.
func (s *Service) RecentInvoices(ctx context.Context) ([]billing.Invoice, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: recent invoices: %w", err)
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	if len(invoices) > recentInvoiceLimit {
		invoices = invoices[:recentInvoiceLimit]
	}
	return invoices, nil
}
