package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Collection round-trips a JSON array of records under a fixed key. Every
// mutation rewrites the whole array. A per-collection mutex serializes
// load-modify-save cycles within this process; writers in other processes
// still race with last-write-wins, which is accepted.
type Collection[T any] struct {
	store  Store
	key    string
	logger *slog.Logger

	mu sync.Mutex
}

// NewCollection binds a collection to its storage key.
func NewCollection[T any](st Store, key string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{store: st, key: key, logger: logger}
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load decodes the stored array. An absent key yields nil. Corrupt stored
// data is logged and treated as absent; the caller decides whether to seed.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Load(ctx, c.key)
	if errors.Is(err, ErrAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Error("corrupt collection, falling back to empty",
			slog.String("key", c.key), slog.Any("error", err))
		return nil, nil
	}
	return items, nil
}

// Replace serializes items and overwrites the stored value.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c.key, err)
	}
	return c.store.Save(ctx, c.key, string(data))
}

// Update runs fn over the current records and persists whatever it returns.
// The whole cycle holds the collection mutex.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.Replace(ctx, next)
}
