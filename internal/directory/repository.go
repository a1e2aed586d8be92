package directory

import (
	"context"
	"log/slog"

	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

// Repository defines directory persistence.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Mutate(ctx context.Context, fn func([]Customer) ([]Customer, error)) error
}

// StoreRepository persists the directory through the storage adapter.
type StoreRepository struct {
	coll *store.Collection[Customer]
}

// NewRepository binds the directory to its storage key.
func NewRepository(st store.Store, logger *slog.Logger) *StoreRepository {
	return &StoreRepository{coll: store.NewCollection[Customer](st, store.KeyCustomers, logger)}
}

func (r *StoreRepository) List(ctx context.Context) ([]Customer, error) {
	return r.coll.Load(ctx)
}

func (r *StoreRepository) Mutate(ctx context.Context, fn func([]Customer) ([]Customer, error)) error {
	return r.coll.Update(ctx, fn)
}
