package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/shared"
)

// Service handles catalog business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Rate     float64 `json:"rate" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"max=20"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Category string  `json:"category" validate:"max=100"`
	MinStock int     `json:"minStock" validate:"gte=0"`
}

func (s *Service) validate(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if in.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", httpx.ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", httpx.ErrValidation)
	}
	return nil
}

// List returns all products, seeding the built-in sample dataset when the
// stored catalog is empty or unreadable.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	if len(products) == 0 {
		products = SampleProducts()
		if err := s.repo.Replace(ctx, products); err != nil {
			// Storage trouble is non-fatal; serve the samples regardless.
			s.logger.Error("persist sample catalog", slog.Any("error", err))
		}
	}
	return products, nil
}

// Search filters products by a case-insensitive substring match on name.
func (s *Service) Search(ctx context.Context, term string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return products, nil
	}
	needle := strings.ToLower(term)
	matched := []Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Get looks up a single product.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", httpx.ErrNotFound, id)
}

// Create assigns a time-based id and persists the full catalog.
func (s *Service) Create(ctx context.Context, in ProductInput) (*Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	product := Product{
		ID:       shared.NewRecordID(),
		Name:     in.Name,
		Rate:     in.Rate,
		Unit:     in.Unit,
		Stock:    in.Stock,
		Category: in.Category,
		MinStock: in.MinStock,
	}
	err := s.repo.Mutate(ctx, func(products []Product) ([]Product, error) {
		if len(products) == 0 {
			products = SampleProducts()
		}
		return append(products, product), nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: create: %w", err)
	}
	return &product, nil
}

// Update replaces the mutable fields of a product. A missing id is a no-op.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) error {
	if err := s.validate(in); err != nil {
		return err
	}
	found := false
	err := s.repo.Mutate(ctx, func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == id {
				products[i] = Product{
					ID:       id,
					Name:     in.Name,
					Rate:     in.Rate,
					Unit:     in.Unit,
					Stock:    in.Stock,
					Category: in.Category,
					MinStock: in.MinStock,
				}
				found = true
			}
		}
		return products, nil
	})
	if err != nil {
		return fmt.Errorf("catalog: update: %w", err)
	}
	if !found {
		s.logger.Warn("update ignored, unknown product", slog.String("id", id))
	}
	return nil
}

// Delete removes a product. A missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Mutate(ctx, func(products []Product) ([]Product, error) {
		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	return nil
}
