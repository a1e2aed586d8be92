package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
	"github.com/pavilo/pavilo-billing/internal/settings"
)

// InvoiceSource resolves committed invoices for rendering.
type InvoiceSource interface {
	GetInvoice(ctx context.Context, id string) (*billing.Invoice, error)
}

// BusinessSource provides the business letterhead details.
type BusinessSource interface {
	Business(ctx context.Context) (settings.BusinessSettings, error)
}

// Handler renders invoices as HTML previews and Gotenberg-backed PDFs.
type Handler struct {
	logger   *slog.Logger
	invoices InvoiceSource
	business BusinessSource
	pdf      *GotenbergClient
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, invoices InvoiceSource, business BusinessSource, pdf *GotenbergClient) *Handler {
	return &Handler{logger: logger, invoices: invoices, business: business, pdf: pdf}
}

// MountRoutes registers export routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ping", h.ping)
	r.Get("/invoices/{id}/preview", h.preview)
	r.Get("/invoices/{id}/pdf", h.renderPDF)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.pdf.Ping(r.Context()); err != nil {
		h.logger.Warn("gotenberg ping failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "pdf renderer is unreachable")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) invoiceHTML(r *http.Request) (string, string, error) {
	id := chi.URLParam(r, "id")
	inv, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		return "", id, err
	}
	business, err := h.business.Business(r.Context())
	if err != nil {
		return "", id, err
	}
	html, err := RenderInvoiceHTML(business, *inv)
	return html, id, err
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	html, _, err := h.invoiceHTML(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request) {
	html, id, err := h.invoiceHTML(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render invoice pdf", slog.String("invoice", id), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "pdf renderer failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=Invoice_%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
