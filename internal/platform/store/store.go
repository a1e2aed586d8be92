// Package store provides the storage adapter: named collections persisted as
// serialized text under a single key, whole-value replacement on every write.
package store

import (
	"context"
	"errors"
)

// Collection keys. Field names and types of the stored JSON must match the
// documents written by earlier releases, so renaming a key or a struct tag is
// a breaking change for existing data.
const (
	KeyProducts         = "pavilo_products"
	KeyInvoices         = "pavilo_invoices"
	KeyPayments         = "pavilo_payments"
	KeyBusinessSettings = "pavilo_business_settings"
	KeyAppSettings      = "pavilo_app_settings"
	KeyCustomers        = "pavilo_customers"
)

// Keys lists every collection key, in a stable order. Used by the backup job.
var Keys = []string{
	KeyProducts,
	KeyInvoices,
	KeyPayments,
	KeyBusinessSettings,
	KeyAppSettings,
	KeyCustomers,
}

// ErrAbsent indicates no value has been stored under the key yet.
var ErrAbsent = errors.New("store: key absent")

// Store is the only I/O boundary of the application. Save replaces the entire
// value under key; there are no transactions and no partial writes. Concurrent
// writers are not coordinated beyond last-write-wins.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}
