package catalog

import (
	"context"
	"log/slog"

	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

// Repository defines catalog persistence. Every mutation rewrites the whole
// collection.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Replace(ctx context.Context, products []Product) error
	Mutate(ctx context.Context, fn func([]Product) ([]Product, error)) error
}

// StoreRepository persists the catalog through the storage adapter.
type StoreRepository struct {
	coll *store.Collection[Product]
}

// NewRepository binds the catalog to its storage key.
func NewRepository(st store.Store, logger *slog.Logger) *StoreRepository {
	return &StoreRepository{coll: store.NewCollection[Product](st, store.KeyProducts, logger)}
}

func (r *StoreRepository) List(ctx context.Context) ([]Product, error) {
	return r.coll.Load(ctx)
}

func (r *StoreRepository) Replace(ctx context.Context, products []Product) error {
	return r.coll.Replace(ctx, products)
}

func (r *StoreRepository) Mutate(ctx context.Context, fn func([]Product) ([]Product, error)) error {
	return r.coll.Update(ctx, fn)
}
