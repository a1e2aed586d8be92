package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	products []Product
	saves    int
}

func (m *memoryRepo) List(ctx context.Context) ([]Product, error) {
	return append([]Product(nil), m.products...), nil
}

func (m *memoryRepo) Replace(ctx context.Context, products []Product) error {
	m.products = append([]Product(nil), products...)
	m.saves++
	return nil
}

func (m *memoryRepo) Mutate(ctx context.Context, fn func([]Product) ([]Product, error)) error {
	next, err := fn(append([]Product(nil), m.products...))
	if err != nil {
		return err
	}
	return m.Replace(ctx, next)
}

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, slog.Default())
}

func TestListSeedsSampleProducts(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo)

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Basmati Rice", products[0].Name)
	assert.Equal(t, 100.0, products[0].Rate)
	assert.Equal(t, "kg", products[0].Unit)
	assert.Equal(t, "Wheat Flour", products[1].Name)
	assert.Equal(t, 45.0, products[1].Rate)
	assert.Equal(t, "Sugar", products[2].Name)
	assert.Equal(t, 40.0, products[2].Rate)

	// Seeding persists the samples.
	require.Equal(t, 1, repo.saves)
	require.Len(t, repo.products, 3)

	// A second list serves the stored catalog without reseeding.
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)
}

func TestCreateAssignsIDAndPersists(t *testing.T) {
	repo := &memoryRepo{products: SampleProducts()}
	svc := newTestService(repo)

	product, err := svc.Create(context.Background(), ProductInput{
		Name: "Cooking Oil", Rate: 150, Unit: "l", Stock: 12, Category: "Grocery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Len(t, repo.products, 4)
	assert.Equal(t, "Cooking Oil", repo.products[3].Name)
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc := newTestService(&memoryRepo{})

	_, err := svc.Create(context.Background(), ProductInput{Name: "  ", Rate: 10})
	require.Error(t, err)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	repo := &memoryRepo{products: SampleProducts()}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), "nope", ProductInput{Name: "Ghost", Rate: 1})
	require.NoError(t, err)
	require.Len(t, repo.products, 3)
	for _, p := range repo.products {
		assert.NotEqual(t, "Ghost", p.Name)
	}
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	repo := &memoryRepo{products: SampleProducts()}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), "nope"))
	require.Len(t, repo.products, 3)
}

func TestDeleteRemovesProduct(t *testing.T) {
	repo := &memoryRepo{products: SampleProducts()}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), "2"))
	require.Len(t, repo.products, 2)
	for _, p := range repo.products {
		assert.NotEqual(t, "2", p.ID)
	}
}

func TestSearchMatchesSubstringCaseInsensitive(t *testing.T) {
	repo := &memoryRepo{products: SampleProducts()}
	svc := newTestService(repo)

	matched, err := svc.Search(context.Background(), "rice")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Basmati Rice", matched[0].Name)

	matched, err = svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, matched, 3)
}
