package ledger

import (
	"context"
	"log/slog"

	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

// PaymentRepository persists payment records, append-ordered.
type PaymentRepository interface {
	List(ctx context.Context) ([]PaymentRecord, error)
	Mutate(ctx context.Context, fn func([]PaymentRecord) ([]PaymentRecord, error)) error
}

// StoreRepository persists payment records through the storage adapter.
type StoreRepository struct {
	coll *store.Collection[PaymentRecord]
}

// NewRepository binds the payment collection to its storage key.
func NewRepository(st store.Store, logger *slog.Logger) *StoreRepository {
	return &StoreRepository{coll: store.NewCollection[PaymentRecord](st, store.KeyPayments, logger)}
}

func (r *StoreRepository) List(ctx context.Context) ([]PaymentRecord, error) {
	return r.coll.Load(ctx)
}

func (r *StoreRepository) Mutate(ctx context.Context, fn func([]PaymentRecord) ([]PaymentRecord, error)) error {
	return r.coll.Update(ctx, fn)
}
