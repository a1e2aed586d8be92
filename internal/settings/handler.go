package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pavilo/pavilo-billing/internal/platform/httpx"
)

// BusinessInput carries the letterhead fields for saving.
type BusinessInput struct {
	BusinessName string `json:"businessName" validate:"required"`
	OwnerName    string `json:"ownerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
}

// AppInput carries the app preference fields for saving.
type AppInput struct {
	Language string `json:"language" validate:"required"`
	DarkMode bool   `json:"darkMode"`
}

// Handler manages settings endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/business", h.showBusiness)
	r.Put("/business", h.saveBusiness)
	r.Get("/app", h.showApp)
	r.Put("/app", h.saveApp)
}

func (h *Handler) showBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Business(r.Context())
	if err != nil {
		h.logger.Error("load business settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) saveBusiness(w http.ResponseWriter, r *http.Request) {
	var input BusinessInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	b := BusinessSettings{
		BusinessName: input.BusinessName,
		OwnerName:    input.OwnerName,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
	}
	if err := h.service.SaveBusiness(r.Context(), b); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) showApp(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.App(r.Context())
	if err != nil {
		h.logger.Error("load app settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) saveApp(w http.ResponseWriter, r *http.Request) {
	var input AppInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	a := AppSettings{Language: input.Language, DarkMode: input.DarkMode}
	if err := h.service.SaveApp(r.Context(), a); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}
