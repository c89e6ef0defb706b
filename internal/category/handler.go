// AngelaMos | 2026
// handler.go

package category

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/purpleshop/api/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{category}", h.Detail)
		r.Get("/{category}/subcategories", h.Subcategories)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Categories(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")

	resp, err := h.service.CategoryDetail(r.Context(), name)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Subcategories(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")

	resp, err := h.service.Subcategories(r.Context(), name)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, resp)
}

// Summary serves the global catalog rollup; the server mounts it
// under the products stats path.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Summary(r.Context())
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
		core.NotFound(w, "category")
		return
	}
	core.InternalServerError(w, err)
}
