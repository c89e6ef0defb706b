// AngelaMos | 2026
// handler.go

package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/purpleshop/api/internal/config"
	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/middleware"
)

type Handler struct {
	service *Service
	catalog config.CatalogConfig
}

func NewHandler(service *Service, catalog config.CatalogConfig) *Handler {
	return &Handler{service: service, catalog: catalog}
}

// RegisterProductRoutes mounts the toggle endpoints onto the shared
// /products subrouter.
func (h *Handler) RegisterProductRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/{productID}/favorite", h.Favorite)
		r.Delete("/{productID}/favorite", h.Unfavorite)
	})
}

// RegisterUserRoutes mounts the favorites list onto the shared /users
// subrouter.
func (h *Handler) RegisterUserRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/{userID}/favorites", h.ListForUser)
}

func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	resp, err := h.service.Favorite(
		r.Context(),
		middleware.GetUserID(r.Context()),
		productID,
	)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if resp.CreatedAt.IsZero() {
		core.OK(w, resp)
		return
	}
	core.Created(w, resp)
}

func (h *Handler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	err := h.service.Unfavorite(
		r.Context(),
		middleware.GetUserID(r.Context()),
		productID,
	)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	page := parseIntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	size := parseIntQuery(r, "size", h.catalog.DefaultPageSize)
	if size < 1 {
		size = h.catalog.DefaultPageSize
	}
	if size > h.catalog.MaxPageSize {
		size = h.catalog.MaxPageSize
	}

	ctx := r.Context()
	resp, err := h.service.ListForUser(
		ctx,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		userID,
		page,
		size,
	)
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
		core.NotFound(w, "favorite")
		return
	}
	core.InternalServerError(w, err)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
