package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/platform/store"
)

// Service persists the two settings documents. Unlike the record
// collections these are stored as single JSON objects, so the service talks
// to the storage adapter directly.
type Service struct {
	store  store.Store
	logger *slog.Logger

	mu sync.Mutex
}

// NewService builds a Service instance.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) loadObject(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.store.Load(ctx, key)
	if errors.Is(err, store.ErrAbsent) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("settings: load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("stored settings are corrupt, serving defaults",
			slog.String("key", key), slog.Any("error", err))
		return false, nil
	}
	return true, nil
}

func (s *Service) saveObject(ctx context.Context, key string, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	if err := s.store.Save(ctx, key, string(encoded)); err != nil {
		return fmt.Errorf("settings: save %s: %w", key, err)
	}
	return nil
}

// Business returns the stored letterhead details, or the zero value when
// nothing has been saved yet.
func (s *Service) Business(ctx context.Context) (BusinessSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b BusinessSettings
	if _, err := s.loadObject(ctx, store.KeyBusinessSettings, &b); err != nil {
		return BusinessSettings{}, err
	}
	return b, nil
}

// SaveBusiness replaces the letterhead details wholesale.
func (s *Service) SaveBusiness(ctx context.Context, b BusinessSettings) error {
	if strings.TrimSpace(b.BusinessName) == "" {
		return fmt.Errorf("%w: business name is required", httpx.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveObject(ctx, store.KeyBusinessSettings, b)
}

// App returns the stored app preferences, falling back to defaults.
func (s *Service) App(ctx context.Context) (AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var a AppSettings
	found, err := s.loadObject(ctx, store.KeyAppSettings, &a)
	if err != nil {
		return AppSettings{}, err
	}
	if !found {
		return DefaultAppSettings(), nil
	}
	if a.Language == "" {
		a.Language = DefaultAppSettings().Language
	}
	return a, nil
}

// SaveApp replaces the app preferences wholesale. The language must parse as
// a BCP 47 tag and be one of the supported interface languages.
func (s *Service) SaveApp(ctx context.Context, a AppSettings) error {
	if _, err := language.Parse(a.Language); err != nil {
		return fmt.Errorf("%w: malformed language tag %q", httpx.ErrValidation, a.Language)
	}
	supported := false
	for _, lang := range SupportedLanguages {
		if a.Language == lang {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: unsupported language %q", httpx.ErrValidation, a.Language)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveObject(ctx, store.KeyAppSettings, a)
}
