package plans

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavilo/pavilo-billing/internal/auth"
	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
)

// Handler serves the subscription plan catalog.
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// MountRoutes registers plan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{name}", h.show)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	catalog := Catalog()
	body := map[string]any{"plans": catalog, "total": len(catalog)}
	if identity := auth.IdentityFromContext(r.Context()); identity != nil {
		body["viewer"] = identity.Email
	}
	httpx.JSON(w, http.StatusOK, body)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	plan := ByName(chi.URLParam(r, "name"))
	if plan == nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no such plan")
		return
	}
	httpx.JSON(w, http.StatusOK, plan)
}
