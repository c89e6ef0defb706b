// AngelaMos | 2026
// handler.go

package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterProductRoutes mounts review endpoints onto the shared
// /products subrouter.
func (h *Handler) RegisterProductRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/{productID}/reviews", h.ListByProduct)
	r.With(authenticator).Post("/{productID}/reviews", h.Create)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		productID,
		req,
	)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	resp, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var appErr *core.AppError
	if errors.As(err, &appErr) {
		core.JSONError(w, appErr)
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "product")
		return
	}
	core.InternalServerError(w, err)
}
