package ledger

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
)

type invoiceRepo struct {
	invoices []billing.Invoice
}

func (m *invoiceRepo) List(ctx context.Context) ([]billing.Invoice, error) {
	return append([]billing.Invoice(nil), m.invoices...), nil
}

func (m *invoiceRepo) Mutate(ctx context.Context, fn func([]billing.Invoice) ([]billing.Invoice, error)) error {
	next, err := fn(append([]billing.Invoice(nil), m.invoices...))
	if err != nil {
		return err
	}
	m.invoices = next
	return nil
}

type paymentRepo struct {
	records []PaymentRecord
}

func (m *paymentRepo) List(ctx context.Context) ([]PaymentRecord, error) {
	return append([]PaymentRecord(nil), m.records...), nil
}

func (m *paymentRepo) Mutate(ctx context.Context, fn func([]PaymentRecord) ([]PaymentRecord, error)) error {
	next, err := fn(append([]PaymentRecord(nil), m.records...))
	if err != nil {
		return err
	}
	m.records = next
	return nil
}

func testInvoice(id string) billing.Invoice {
	return billing.Invoice{
		ID:        id,
		Customer:  billing.CustomerSnapshot{Name: "Rajesh Kumar", Phone: "9876543210"},
		Subtotal:  100,
		GST:       18,
		Total:     118,
		GSTRate:   18,
		Status:    billing.StatusPending,
		CreatedAt: time.Now(),
	}
}

func newTestService(invoices *invoiceRepo, payments *paymentRepo) *Service {
	return NewService(invoices, payments, slog.Default())
}

func TestMarkPaidRecordsFullTotal(t *testing.T) {
	invoices := &invoiceRepo{invoices: []billing.Invoice{testInvoice("1001")}}
	payments := &paymentRepo{}
	svc := newTestService(invoices, payments)

	record, err := svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)

	assert.Equal(t, "1001", record.InvoiceID)
	assert.Equal(t, MethodCash, record.Method)
	assert.Equal(t, 118.0, record.Amount)
	assert.False(t, record.Date.IsZero())

	require.Len(t, payments.records, 1)
	assert.Equal(t, billing.StatusPaid, invoices.invoices[0].Status)
	assert.Equal(t, MethodCash, invoices.invoices[0].PaymentMethod)
}

func TestMarkPaidUsesChosenMethod(t *testing.T) {
	inv := testInvoice("1001")
	inv.PaymentMethod = MethodUPI
	invoices := &invoiceRepo{invoices: []billing.Invoice{inv}}
	payments := &paymentRepo{}
	svc := newTestService(invoices, payments)

	record, err := svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, MethodUPI, record.Method)
}

func TestMarkPaidAppendsOnRepeat(t *testing.T) {
	invoices := &invoiceRepo{invoices: []billing.Invoice{testInvoice("1001")}}
	payments := &paymentRepo{}
	svc := newTestService(invoices, payments)

	_, err := svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)

	// The status flip is idempotent; the ledger append is not.
	require.Len(t, payments.records, 2)
	assert.Equal(t, billing.StatusPaid, invoices.invoices[0].Status)
}

func TestMarkPaidUnknownInvoice(t *testing.T) {
	svc := newTestService(&invoiceRepo{}, &paymentRepo{})

	_, err := svc.MarkPaid(context.Background(), "missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestSetMethodValidation(t *testing.T) {
	invoices := &invoiceRepo{invoices: []billing.Invoice{testInvoice("1001")}}
	svc := newTestService(invoices, &paymentRepo{})

	err := svc.SetMethod(context.Background(), "1001", "Barter")
	require.ErrorIs(t, err, httpx.ErrValidation)

	require.NoError(t, svc.SetMethod(context.Background(), "1001", MethodBankTransfer))
	assert.Equal(t, MethodBankTransfer, invoices.invoices[0].PaymentMethod)
}

func TestSetMethodLockedOncePaid(t *testing.T) {
	inv := testInvoice("1001")
	inv.Status = billing.StatusPaid
	invoices := &invoiceRepo{invoices: []billing.Invoice{inv}}
	svc := newTestService(invoices, &paymentRepo{})

	err := svc.SetMethod(context.Background(), "1001", MethodCard)
	require.ErrorIs(t, err, httpx.ErrConflict)
}

func TestDeleteInvoiceKeepsPayments(t *testing.T) {
	invoices := &invoiceRepo{invoices: []billing.Invoice{testInvoice("1001")}}
	payments := &paymentRepo{}
	svc := newTestService(invoices, payments)

	_, err := svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(context.Background(), "1001"))
	assert.Empty(t, invoices.invoices)

	// Records for the deleted invoice stay in the ledger.
	records, err := svc.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1001", records[0].InvoiceID)
}

func TestDeleteInvoiceUnknown(t *testing.T) {
	svc := newTestService(&invoiceRepo{}, &paymentRepo{})

	err := svc.DeleteInvoice(context.Background(), "missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestPaymentsForInvoiceFilters(t *testing.T) {
	invoices := &invoiceRepo{invoices: []billing.Invoice{testInvoice("1001"), testInvoice("1002")}}
	payments := &paymentRepo{}
	svc := newTestService(invoices, payments)

	_, err := svc.MarkPaid(context.Background(), "1001")
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), "1002")
	require.NoError(t, err)

	records, err := svc.PaymentsForInvoice(context.Background(), "1002")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1002", records[0].InvoiceID)
}
