package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavilo/pavilo-billing/internal/catalog"
	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/shared"
)

// ProductLookup resolves a product for line-item selection.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

func errDraftNotFound(id string) error {
	return fmt.Errorf("%w: draft %s", httpx.ErrNotFound, id)
}

func errLineNotFound(id string) error {
	return fmt.Errorf("%w: line %s", httpx.ErrNotFound, id)
}

// Service drives the invoice draft state machine and owns the committed
// invoice store.
type Service struct {
	repo    InvoiceRepository
	catalog ProductLookup
	drafts  *draftRegistry
	logger  *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo InvoiceRepository, lookup ProductLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: lookup, drafts: newDraftRegistry(), logger: logger}
}

// StartDraft opens a new draft with one empty line and the default tax rate.
// The returned value is a snapshot, not the registry's copy.
func (s *Service) StartDraft() *Draft {
	d := newDraft()
	s.drafts.put(d)
	return s.drafts.view(d.ID)
}

// Draft returns a snapshot of an in-flight draft.
func (s *Service) Draft(id string) (*Draft, error) {
	d := s.drafts.view(id)
	if d == nil {
		return nil, errDraftNotFound(id)
	}
	return d, nil
}

// SetCustomer replaces the draft's customer snapshot fields.
func (s *Service) SetCustomer(draftID string, c CustomerSnapshot) error {
	return s.drafts.with(draftID, func(d *Draft) error {
		d.Customer = c
		return nil
	})
}

// SetGSTRate replaces the draft's tax rate.
func (s *Service) SetGSTRate(draftID string, rate float64) error {
	if rate < 0 {
		return fmt.Errorf("%w: gst rate must not be negative", httpx.ErrValidation)
	}
	return s.drafts.with(draftID, func(d *Draft) error {
		d.GSTRate = rate
		return nil
	})
}

// SetStatus sets the pre-finalization status flag.
func (s *Service) SetStatus(draftID string, status Status) error {
	if status != StatusPending && status != StatusReceived {
		return fmt.Errorf("%w: status must be Pending or Received before finalization", httpx.ErrValidation)
	}
	return s.drafts.with(draftID, func(d *Draft) error {
		d.Status = status
		return nil
	})
}

// AddLine appends an empty line item and returns it.
func (s *Service) AddLine(draftID string) (*LineItem, error) {
	var added LineItem
	err := s.drafts.with(draftID, func(d *Draft) error {
		added = emptyLine()
		d.Items = append(d.Items, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveLine drops a line unless it is the last one remaining; removing the
// last line is a silent no-op, never an error.
func (s *Service) RemoveLine(draftID, lineID string) error {
	return s.drafts.with(draftID, func(d *Draft) error {
		if len(d.Items) == 1 {
			return nil
		}
		kept := d.Items[:0]
		for _, it := range d.Items {
			if it.ID != lineID {
				kept = append(kept, it)
			}
		}
		d.Items = kept
		return nil
	})
}

// LinePatch is a partial update of a line item. Omitted fields keep their
// prior values.
type LinePatch struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Rate     *float64 `json:"rate,omitempty" validate:"omitempty,gte=0"`
	Unit     *string  `json:"unit,omitempty"`
}

// UpdateLine applies a partial update and recomputes the amount from the
// post-patch quantity and rate.
func (s *Service) UpdateLine(draftID, lineID string, patch LinePatch) error {
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", httpx.ErrValidation)
	}
	if patch.Rate != nil && *patch.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", httpx.ErrValidation)
	}
	return s.drafts.with(draftID, func(d *Draft) error {
		line := d.line(lineID)
		if line == nil {
			return errLineNotFound(lineID)
		}
		if patch.Name != nil {
			line.Name = *patch.Name
		}
		if patch.Quantity != nil {
			line.Quantity = *patch.Quantity
		}
		if patch.Rate != nil {
			line.Rate = *patch.Rate
		}
		if patch.Unit != nil {
			line.Unit = *patch.Unit
		}
		line.Amount = line.Quantity * line.Rate
		return nil
	})
}

// SelectProduct copies the catalog product's name, rate and unit into the
// line and recomputes the amount. An empty product id clears the line's
// pricing.
func (s *Service) SelectProduct(ctx context.Context, draftID, lineID, productID string) error {
	var product *catalog.Product
	if productID != "" {
		var err error
		product, err = s.catalog.Get(ctx, productID)
		if err != nil {
			return err
		}
	}
	return s.drafts.with(draftID, func(d *Draft) error {
		line := d.line(lineID)
		if line == nil {
			return errLineNotFound(lineID)
		}
		line.ProductID = productID
		if product == nil {
			line.Name = ""
			line.Rate = 0
			line.Unit = ""
		} else {
			line.Name = product.Name
			line.Rate = product.Rate
			line.Unit = product.Unit
		}
		line.Amount = line.Quantity * line.Rate
		return nil
	})
}

// Finalize prices the draft, commits the immutable invoice and discards the
// draft. A finalized draft id cannot be reused.
func (s *Service) Finalize(ctx context.Context, draftID string) (*Invoice, error) {
	var inv Invoice
	err := s.drafts.with(draftID, func(d *Draft) error {
		var subtotal float64
		for _, it := range d.Items {
			subtotal += it.Amount
		}
		gst := subtotal * d.GSTRate / 100
		inv = Invoice{
			ID:        shared.NewRecordID(),
			Customer:  d.Customer,
			Items:     append([]LineItem(nil), d.Items...),
			Subtotal:  subtotal,
			GST:       gst,
			Total:     subtotal + gst,
			GSTRate:   d.GSTRate,
			Status:    d.Status,
			CreatedAt: time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.repo.Mutate(ctx, func(invoices []Invoice) ([]Invoice, error) {
		return append(invoices, inv), nil
	})
	if err != nil {
		return nil, fmt.Errorf("billing: commit invoice: %w", err)
	}

	s.drafts.remove(draftID)
	s.logger.Info("invoice committed",
		slog.String("id", inv.ID), slog.Float64("total", inv.Total))
	return &inv, nil
}

// ListInvoices returns all committed invoices in creation order.
func (s *Service) ListInvoices(ctx context.Context) ([]Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing: list invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice looks up one committed invoice.
func (s *Service) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	invoices, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}
