package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/pavilo/pavilo-billing/internal/catalog"
	"github.com/pavilo/pavilo-billing/internal/directory"
	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

func main() {
	addr := getenv("REDIS_ADDR", "127.0.0.1:6379")
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	st, err := store.NewRedis(ctx, client)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	fmt.Println("→ Seeding products...")
	if err := seedCollection(ctx, st, store.KeyProducts, catalog.SampleProducts()); err != nil {
		log.Fatalf("seed products: %v", err)
	}

	fmt.Println("→ Seeding customers...")
	if err := seedCollection(ctx, st, store.KeyCustomers, directory.SampleCustomers()); err != nil {
		log.Fatalf("seed customers: %v", err)
	}

	fmt.Println("✓ Seed complete")
}

// seedCollection writes sample records only when the key has never been
// written, so re-running the script cannot clobber live data.
func seedCollection[T any](ctx context.Context, st store.Store, key string, records []T) error {
	_, err := st.Load(ctx, key)
	if err == nil {
		fmt.Printf("  %s already present, skipping\n", key)
		return nil
	}
	if !errors.Is(err, store.ErrAbsent) {
		return err
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return st.Save(ctx, key, string(encoded))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
