package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/shared"
)

// Service tracks settlements against committed invoices. It writes the
// payment ledger and flips invoice statuses; it never touches drafts.
type Service struct {
	invoices billing.InvoiceRepository
	payments PaymentRepository
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(invoices billing.InvoiceRepository, payments PaymentRepository, logger *slog.Logger) *Service {
	return &Service{invoices: invoices, payments: payments, logger: logger}
}

func errInvoiceNotFound(id string) error {
	return fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}

// ListInvoices returns all committed invoices.
func (s *Service) ListInvoices(ctx context.Context) ([]billing.Invoice, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list invoices: %w", err)
	}
	return invoices, nil
}

// ListPayments returns the full payment ledger.
func (s *Service) ListPayments(ctx context.Context) ([]PaymentRecord, error) {
	records, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list payments: %w", err)
	}
	return records, nil
}

// PaymentsForInvoice filters the ledger down to one invoice's records.
func (s *Service) PaymentsForInvoice(ctx context.Context, invoiceID string) ([]PaymentRecord, error) {
	records, err := s.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]PaymentRecord, 0, len(records))
	for _, rec := range records {
		if rec.InvoiceID == invoiceID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// SetMethod records the intended payment method on an invoice that has not
// yet settled. Paid invoices are locked.
func (s *Service) SetMethod(ctx context.Context, invoiceID, method string) error {
	if !ValidMethod(method) {
		return fmt.Errorf("%w: unknown payment method %q", httpx.ErrValidation, method)
	}
	err := s.invoices.Mutate(ctx, func(invoices []billing.Invoice) ([]billing.Invoice, error) {
		for i := range invoices {
			if invoices[i].ID != invoiceID {
				continue
			}
			if invoices[i].Status == billing.StatusPaid {
				return nil, fmt.Errorf("%w: invoice %s already settled", httpx.ErrConflict, invoiceID)
			}
			invoices[i].PaymentMethod = method
			return invoices, nil
		}
		return nil, errInvoiceNotFound(invoiceID)
	})
	if err != nil {
		return err
	}
	return nil
}

// MarkPaid settles an invoice: a payment record is appended for the full
// invoice total and the invoice status flips to Paid. Calling it again on a
// settled invoice appends another record; the status flip alone is
// idempotent. The ledger write lands before the invoice write, so a crash in
// between leaves a record against a still-unpaid invoice.
func (s *Service) MarkPaid(ctx context.Context, invoiceID string) (*PaymentRecord, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: load invoices: %w", err)
	}
	var target *billing.Invoice
	for i := range invoices {
		if invoices[i].ID == invoiceID {
			target = &invoices[i]
			break
		}
	}
	if target == nil {
		return nil, errInvoiceNotFound(invoiceID)
	}

	method := target.PaymentMethod
	if method == "" {
		method = MethodCash
	}
	record := PaymentRecord{
		ID:        shared.NewRecordID(),
		InvoiceID: invoiceID,
		Method:    method,
		Amount:    target.Total,
		Date:      time.Now(),
	}

	err = s.payments.Mutate(ctx, func(records []PaymentRecord) ([]PaymentRecord, error) {
		return append(records, record), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger: append payment: %w", err)
	}

	err = s.invoices.Mutate(ctx, func(invoices []billing.Invoice) ([]billing.Invoice, error) {
		for i := range invoices {
			if invoices[i].ID == invoiceID {
				invoices[i].Status = billing.StatusPaid
				invoices[i].PaymentMethod = method
				return invoices, nil
			}
		}
		return nil, errInvoiceNotFound(invoiceID)
	})
	if err != nil {
		return nil, fmt.Errorf("ledger: flip invoice status: %w", err)
	}

	s.logger.Info("payment recorded",
		slog.String("invoice", invoiceID),
		slog.String("method", method),
		slog.Float64("amount", record.Amount))
	return &record, nil
}

// DeleteInvoice removes an invoice regardless of status. Payment records
// referencing it are kept; deletion does not cascade into the ledger.
func (s *Service) DeleteInvoice(ctx context.Context, invoiceID string) error {
	err := s.invoices.Mutate(ctx, func(invoices []billing.Invoice) ([]billing.Invoice, error) {
		kept := invoices[:0]
		found := false
		for _, inv := range invoices {
			if inv.ID == invoiceID {
				found = true
				continue
			}
			kept = append(kept, inv)
		}
		if !found {
			return nil, errInvoiceNotFound(invoiceID)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("invoice deleted", slog.String("invoice", invoiceID))
	return nil
}
