// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/purpleshop/api/internal/config"
	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	catalog   config.CatalogConfig
}

func NewHandler(service *Service, catalog config.CatalogConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		catalog:   catalog,
	}
}

// RegisterRoutes mounts the catalog surface onto the /products
// subrouter. The subrouter is shared with favorites and reviews, so
// route grouping happens at the server level.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/", h.Search)
	r.Get("/{productID}", h.GetDetail)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", h.Create)
		r.Put("/{productID}", h.Update)
		r.Delete("/{productID}", h.Delete)
		r.Post("/{productID}/sold", h.MarkAsSold)
	})
}

// RegisterUserRoutes mounts seller listings onto the /users subrouter.
func (h *Handler) RegisterUserRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.With(optionalAuth).Get("/{userID}/products", h.ListBySeller)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseSearchParams(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	resp, err := h.service.Search(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	resp, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ctx := r.Context()
	resp, err := h.service.Update(
		ctx,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		id,
		req,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	ctx := r.Context()
	err := h.service.Delete(
		ctx,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		id,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) MarkAsSold(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	ctx := r.Context()
	resp, err := h.service.MarkAsSold(
		ctx,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		id,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "userID")
	page := parseIntQuery(r, "page", 1)
	size := parseIntQuery(r, "size", h.catalog.DefaultPageSize)
	if size > h.catalog.MaxPageSize {
		size = h.catalog.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = h.catalog.DefaultPageSize
	}

	ctx := r.Context()
	resp, err := h.service.ListBySeller(
		ctx,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		sellerID,
		page,
		size,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) parseSearchParams(r *http.Request) (SearchParams, error) {
	q := r.URL.Query()

	params := SearchParams{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Location:    q.Get("location"),
		Condition:   q.Get("condition"),
		ProductType: q.Get("product_type"),
		SellerID:    q.Get("seller_id"),
		Page:        parseIntQuery(r, "page", 1),
		PageSize:    parseIntQuery(r, "size", h.catalog.DefaultPageSize),
	}

	var err error
	if params.MinPrice, err = parseFloatQuery(r, "min_price"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = parseFloatQuery(r, "max_price"); err != nil {
		return params, err
	}
	if params.Latitude, err = parseFloatQuery(r, "latitude"); err != nil {
		return params, err
	}
	if params.Longitude, err = parseFloatQuery(r, "longitude"); err != nil {
		return params, err
	}
	if params.RadiusKM, err = parseFloatQuery(r, "radius_km"); err != nil {
		return params, err
	}

	params.Normalize(h.catalog.DefaultPageSize, h.catalog.MaxPageSize)
	return params, nil
}

func handleServiceError(w http.ResponseWriter, err error) {
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

func parseFloatQuery(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, core.ValidationError(key + " must be a number")
	}
	return &v, nil
}
