package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pavilo/pavilo-billing/internal/auth"
	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/catalog"
	"github.com/pavilo/pavilo-billing/internal/directory"
	"github.com/pavilo/pavilo-billing/internal/export"
	"github.com/pavilo/pavilo-billing/internal/ledger"
	"github.com/pavilo/pavilo-billing/internal/plans"
	"github.com/pavilo/pavilo-billing/internal/reports"
	"github.com/pavilo/pavilo-billing/internal/settings"
	"github.com/pavilo/pavilo-billing/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Identity         auth.Middleware
	CatalogHandler   *catalog.Handler
	DirectoryHandler *directory.Handler
	BillingHandler   *billing.Handler
	LedgerHandler    *ledger.Handler
	ExportHandler    *export.Handler
	SettingsHandler  *settings.Handler
	ReportsHandler   *reports.Handler
	PlansHandler     *plans.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Pavilo defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Identity.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/catalog", params.CatalogHandler.MountRoutes)
	r.Route("/customers", params.DirectoryHandler.MountRoutes)
	r.Route("/billing", params.BillingHandler.MountRoutes)
	r.Route("/payments", params.LedgerHandler.MountRoutes)
	r.Route("/export", params.ExportHandler.MountRoutes)
	r.Route("/settings", params.SettingsHandler.MountRoutes)
	r.Route("/reports", params.ReportsHandler.MountRoutes)
	r.Route("/plans", params.PlansHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
