package billing

import (
	"context"
	"log/slog"

	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

// InvoiceRepository persists committed invoices, order-preserving. The
// payment ledger shares this interface to flip statuses and delete invoices.
type InvoiceRepository interface {
	List(ctx context.Context) ([]Invoice, error)
	Mutate(ctx context.Context, fn func([]Invoice) ([]Invoice, error)) error
}

// StoreRepository persists invoices through the storage adapter.
type StoreRepository struct {
	coll *store.Collection[Invoice]
}

// NewRepository binds the invoice collection to its storage key.
func NewRepository(st store.Store, logger *slog.Logger) *StoreRepository {
	return &StoreRepository{coll: store.NewCollection[Invoice](st, store.KeyInvoices, logger)}
}

func (r *StoreRepository) List(ctx context.Context) ([]Invoice, error) {
	return r.coll.Load(ctx)
}

func (r *StoreRepository) Mutate(ctx context.Context, fn func([]Invoice) ([]Invoice, error)) error {
	return r.coll.Update(ctx, fn)
}
