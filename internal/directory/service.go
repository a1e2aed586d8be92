package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/shared"
)

// Service handles directory business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CustomerInput carries the form fields of a customer. The aggregate fields
// are edited directly, matching the manual bookkeeping of the original data.
type CustomerInput struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Phone         string  `json:"phone" validate:"required,max=50"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Address       string  `json:"address" validate:"required"`
	GSTNumber     string  `json:"gstNumber" validate:"omitempty,max=50"`
	TotalOrders   int     `json:"totalOrders" validate:"gte=0"`
	TotalAmount   float64 `json:"totalAmount" validate:"gte=0"`
	LastOrderDate string  `json:"lastOrderDate"`
}

func (s *Service) validate(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: customer name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("%w: phone number is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: address is required", httpx.ErrValidation)
	}
	return nil
}

func fromInput(id string, in CustomerInput) Customer {
	return Customer{
		ID:            id,
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		GSTNumber:     in.GSTNumber,
		TotalOrders:   in.TotalOrders,
		TotalAmount:   in.TotalAmount,
		LastOrderDate: in.LastOrderDate,
	}
}

// List returns every customer.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	return customers, nil
}

// Search filters by case-insensitive substring over name, phone and email.
// The full list is scanned on every query; fine at the expected scale of
// hundreds of records.
func (s *Service) Search(ctx context.Context, term string) ([]Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return customers, nil
	}
	needle := strings.ToLower(term)
	matched := []Customer{}
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(c.Phone, term) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Get looks up a single customer.
func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s", httpx.ErrNotFound, id)
}

// Totals reports the directory-wide aggregate counters.
func (s *Service) Totals(ctx context.Context) (Totals, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return Totals{}, err
	}
	t := Totals{Customers: len(customers)}
	for _, c := range customers {
		t.TotalOrders += c.TotalOrders
		t.TotalAmount += c.TotalAmount
	}
	return t, nil
}

// Create assigns a time-based id and persists the full directory.
func (s *Service) Create(ctx context.Context, in CustomerInput) (*Customer, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	customer := fromInput(shared.NewRecordID(), in)
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		return append(customers, customer), nil
	})
	if err != nil {
		return nil, fmt.Errorf("directory: create: %w", err)
	}
	return &customer, nil
}

// Update replaces a customer's fields. A missing id is a no-op.
func (s *Service) Update(ctx context.Context, id string, in CustomerInput) error {
	if err := s.validate(in); err != nil {
		return err
	}
	found := false
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		for i := range customers {
			if customers[i].ID == id {
				customers[i] = fromInput(id, in)
				found = true
			}
		}
		return customers, nil
	})
	if err != nil {
		return fmt.Errorf("directory: update: %w", err)
	}
	if !found {
		s.logger.Warn("update ignored, unknown customer", slog.String("id", id))
	}
	return nil
}

// Delete removes a customer. A missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		kept := customers[:0]
		for _, c := range customers {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("directory: delete: %w", err)
	}
	return nil
}
