package billing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
)

// Handler manages invoice building endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/drafts", h.startDraft)
	r.Get("/drafts/{id}", h.showDraft)
	r.Put("/drafts/{id}/customer", h.setCustomer)
	r.Put("/drafts/{id}/gst-rate", h.setGSTRate)
	r.Put("/drafts/{id}/status", h.setStatus)
	r.Post("/drafts/{id}/lines", h.addLine)
	r.Delete("/drafts/{id}/lines/{lineID}", h.removeLine)
	r.Patch("/drafts/{id}/lines/{lineID}", h.updateLine)
	r.Put("/drafts/{id}/lines/{lineID}/product", h.selectProduct)
	r.Post("/drafts/{id}/finalize", h.finalize)

	r.Get("/invoices", h.listInvoices)
	r.Get("/invoices/{id}", h.showInvoice)
}

func (h *Handler) startDraft(w http.ResponseWriter, r *http.Request) {
	d := h.service.StartDraft()
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *Handler) showDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Draft(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var c CustomerSnapshot
	if err := httpx.DecodeJSON(r, &c); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.service.SetCustomer(chi.URLParam(r, "id"), c); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) setGSTRate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GSTRate float64 `json:"gstRate"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.service.SetGSTRate(chi.URLParam(r, "id"), body.GSTRate); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status Status `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.service.SetStatus(chi.URLParam(r, "id"), body.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	line, err := h.service.AddLine(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, line)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveLine(chi.URLParam(r, "id"), chi.URLParam(r, "lineID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	var patch LinePatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	err := h.service.UpdateLine(chi.URLParam(r, "id"), chi.URLParam(r, "lineID"), patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) selectProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	err := h.service.SelectProduct(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"), body.ProductID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Finalize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("finalize draft", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices, "total": len(invoices)})
}

func (h *Handler) showInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
