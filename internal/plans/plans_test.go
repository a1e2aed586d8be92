package plans

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavilo/pavilo-billing/internal/auth"
)

func TestCatalogTiers(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 3)

	assert.Equal(t, "Basic", catalog[0].Name)
	assert.Equal(t, "₹999", catalog[0].Price)
	assert.False(t, catalog[0].Popular)

	assert.Equal(t, "Pro", catalog[1].Name)
	assert.Equal(t, "₹1,499", catalog[1].Price)
	assert.True(t, catalog[1].Popular)
	assert.Contains(t, catalog[1].Features, "GST reports & filing")

	assert.Equal(t, "Advanced", catalog[2].Name)
	assert.Equal(t, "₹2,499", catalog[2].Price)
	assert.Contains(t, catalog[2].Features, "Everything in Pro")
}

func TestByName(t *testing.T) {
	require.NotNil(t, ByName("Pro"))
	assert.Nil(t, ByName("pro"))
	assert.Nil(t, ByName("Enterprise"))
}

func TestListIncludesViewerWhenAuthenticated(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(slog.Default()).MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	identity := &auth.Identity{ID: "u1", Email: "owner@example.com"}
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "owner@example.com")
	assert.Contains(t, rec.Body.String(), "₹1,499")
}

func TestShowUnknownPlan(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(slog.Default()).MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Enterprise", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
