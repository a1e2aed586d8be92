package directory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	customers []Customer
}

func (m *memoryRepo) List(ctx context.Context) ([]Customer, error) {
	return append([]Customer(nil), m.customers...), nil
}

func (m *memoryRepo) Mutate(ctx context.Context, fn func([]Customer) ([]Customer, error)) error {
	next, err := fn(append([]Customer(nil), m.customers...))
	if err != nil {
		return err
	}
	m.customers = append([]Customer(nil), next...)
	return nil
}

func seededRepo() *memoryRepo {
	return &memoryRepo{customers: []Customer{
		{ID: "1", Name: "Rajesh Kumar", Phone: "+91 9876543210", Email: "rajesh@email.com",
			Address: "123 MG Road, Mumbai", GSTNumber: "27ABCDE1234F1Z5",
			TotalOrders: 15, TotalAmount: 45000, LastOrderDate: "2024-01-15"},
		{ID: "2", Name: "Priya Sharma", Phone: "+91 9876543211",
			Address: "456 Park Street, Delhi", TotalOrders: 8, TotalAmount: 22000},
	}}
}

func TestCreateRequiresNamePhoneAddress(t *testing.T) {
	svc := NewService(&memoryRepo{}, slog.Default())

	_, err := svc.Create(context.Background(), CustomerInput{Phone: "1", Address: "a"})
	require.Error(t, err)
	_, err = svc.Create(context.Background(), CustomerInput{Name: "n", Address: "a"})
	require.Error(t, err)
	_, err = svc.Create(context.Background(), CustomerInput{Name: "n", Phone: "1"})
	require.Error(t, err)
}

func TestCreateAndGet(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, slog.Default())

	created, err := svc.Create(context.Background(), CustomerInput{
		Name: "Amit Patel", Phone: "+91 9000000000", Address: "Surat",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amit Patel", got.Name)
	assert.Zero(t, got.TotalOrders)
}

func TestSearchMatchesNamePhoneEmail(t *testing.T) {
	svc := NewService(seededRepo(), slog.Default())
	ctx := context.Background()

	byName, err := svc.Search(ctx, "rajesh")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byPhone, err := svc.Search(ctx, "9876543211")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "2", byPhone[0].ID)

	byEmail, err := svc.Search(ctx, "EMAIL.COM")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	none, err := svc.Search(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestTotalsSumAggregates(t *testing.T) {
	svc := NewService(seededRepo(), slog.Default())

	totals, err := svc.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Customers)
	assert.Equal(t, 23, totals.TotalOrders)
	assert.Equal(t, 67000.0, totals.TotalAmount)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo, slog.Default())

	err := svc.Update(context.Background(), "nope", CustomerInput{
		Name: "Ghost", Phone: "0", Address: "Nowhere",
	})
	require.NoError(t, err)
	require.Len(t, repo.customers, 2)
}

func TestDeleteRemovesCustomer(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo, slog.Default())

	require.NoError(t, svc.Delete(context.Background(), "1"))
	require.Len(t, repo.customers, 1)
	assert.Equal(t, "2", repo.customers[0].ID)
}
