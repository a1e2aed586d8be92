package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
)

// Handler exposes the payment ledger endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPayments)
	r.Get("/invoices/{id}", h.paymentsForInvoice)
	r.Put("/invoices/{id}/method", h.setMethod)
	r.Post("/invoices/{id}/mark-paid", h.markPaid)
	r.Delete("/invoices/{id}", h.deleteInvoice)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListPayments(r.Context())
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": records, "total": len(records)})
}

func (h *Handler) paymentsForInvoice(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.PaymentsForInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": records, "total": len(records)})
}

func (h *Handler) setMethod(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method string `json:"method"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.service.SetMethod(r.Context(), chi.URLParam(r, "id"), body.Method); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("mark paid", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, record)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
