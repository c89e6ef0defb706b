// AngelaMos | 2026
// dto.go

package product

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/purpleshop/api/internal/core"
)

type CreateProductRequest struct {
	Title             string     `json:"title" validate:"required,min=1,max=255"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price             *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category          string     `json:"category" validate:"required,max=100"`
	Subcategory       *string    `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Condition         string     `json:"condition" validate:"required,oneof=new like_new good fair poor"`
	ProductType       string     `json:"product_type" validate:"required,oneof=free second_hand new"`
	Location          string     `json:"location" validate:"required,max=100"`
	Latitude          *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ImageURLs         []string   `json:"image_urls,omitempty" validate:"omitempty,max=12,dive,url"`
	MainImageURL      *string    `json:"main_image_url,omitempty" validate:"omitempty,url"`
	Tags              []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Brand             *string    `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model             *string    `json:"model,omitempty" validate:"omitempty,max=100"`
	ShippingAvailable bool       `json:"shipping_available,omitempty"`
	ShippingCost      *float64   `json:"shipping_cost,omitempty" validate:"omitempty,gte=0"`
	LocalPickup       *bool      `json:"local_pickup,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// UpdateProductRequest carries only the fields the caller wants to
// change; nil means leave untouched.
type UpdateProductRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price        *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category     *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Subcategory  *string    `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Condition    *string    `json:"condition,omitempty" validate:"omitempty,oneof=new like_new good fair poor"`
	Location     *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	Latitude     *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ImageURLs    []string   `json:"image_urls,omitempty" validate:"omitempty,max=12,dive,url"`
	MainImageURL *string    `json:"main_image_url,omitempty" validate:"omitempty,url"`
	Tags         []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Brand        *string    `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model        *string    `json:"model,omitempty" validate:"omitempty,max=100"`
	ShippingCost *float64   `json:"shipping_cost,omitempty" validate:"omitempty,gte=0"`
	LocalPickup  *bool      `json:"local_pickup,omitempty"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=pending active inactive sold deleted"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// SearchParams is the full catalog filter set. Every field is
// optional; filters combine with AND.
type SearchParams struct {
	Search      string
	Category    string
	Subcategory string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Condition   string
	ProductType string
	SellerID    string
	Latitude    *float64
	Longitude   *float64
	RadiusKM    *float64
	Page        int
	PageSize    int
}

func (p *SearchParams) Normalize(defaultSize, maxSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

func (p *SearchParams) Validate() error {
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return core.ValidationError("min_price must be non-negative")
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return core.ValidationError("max_price must be non-negative")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && *p.MaxPrice < *p.MinPrice {
		return core.ValidationError(fmt.Sprintf("max_price %.2f is below min_price %.2f", *p.MaxPrice, *p.MinPrice))
	}
	if p.RadiusKM != nil && *p.RadiusKM <= 0 {
		return core.ValidationError("radius_km must be positive")
	}
	return nil
}

// HasGeoFilter reports whether all three geo inputs are present; a
// partial set is ignored rather than rejected.
func (p *SearchParams) HasGeoFilter() bool {
	return p.Latitude != nil && p.Longitude != nil && p.RadiusKM != nil && *p.RadiusKM > 0
}

func (p *SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// SellerInfo is the public slice of a seller's profile embedded in
// product responses.
type SellerInfo struct {
	ID          string  `json:"id" db:"id"`
	Username    *string `json:"username,omitempty" db:"username"`
	DisplayName *string `json:"display_name,omitempty" db:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty" db:"avatar_url"`
	Location    *string `json:"location,omitempty" db:"location"`
	IsVerified  bool    `json:"is_verified" db:"is_verified"`
}

// ReviewInfo is the review shape embedded in a product detail. The
// reviews package adapts its own entity into this.
type ReviewInfo struct {
	ID           string    `json:"id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Title        *string   `json:"title,omitempty"`
	Content      *string   `json:"content,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductResponse struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Description       *string     `json:"description,omitempty"`
	Price             *float64    `json:"price,omitempty"`
	Category          string      `json:"category"`
	Subcategory       *string     `json:"subcategory,omitempty"`
	Condition         string      `json:"condition"`
	ProductType       string      `json:"product_type"`
	Location          string      `json:"location"`
	Latitude          *float64    `json:"latitude,omitempty"`
	Longitude         *float64    `json:"longitude,omitempty"`
	ImageURLs         []string    `json:"image_urls"`
	MainImageURL      *string     `json:"main_image_url,omitempty"`
	Status            string      `json:"status"`
	IsFeatured        bool        `json:"is_featured"`
	IsAvailable       bool        `json:"is_available"`
	SellerID          string      `json:"seller_id"`
	Seller            *SellerInfo `json:"seller,omitempty"`
	ViewsCount        int         `json:"views_count"`
	FavoritesCount    int         `json:"favorites_count"`
	Tags              []string    `json:"tags"`
	Brand             *string     `json:"brand,omitempty"`
	Model             *string     `json:"model,omitempty"`
	ShippingAvailable bool        `json:"shipping_available"`
	ShippingCost      *float64    `json:"shipping_cost,omitempty"`
	LocalPickup       bool        `json:"local_pickup"`
	SoldAt            *time.Time  `json:"sold_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type ProductDetailResponse struct {
	ProductResponse
	Reviews []ReviewInfo `json:"reviews"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
	Pages    int               `json:"pages"`
}

func ToResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		Price:             p.Price,
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		Condition:         p.Condition,
		ProductType:       p.ProductType,
		Location:          p.Location,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		ImageURLs:         decodeStringList(p.ImageURLs),
		MainImageURL:      p.MainImageURL,
		Status:            p.Status,
		IsFeatured:        p.IsFeatured,
		IsAvailable:       p.IsAvailable(),
		SellerID:          p.SellerID,
		ViewsCount:        p.ViewsCount,
		FavoritesCount:    p.FavoritesCount,
		Tags:              decodeStringList(p.Tags),
		Brand:             p.Brand,
		Model:             p.Model,
		ShippingAvailable: p.ShippingAvailable,
		ShippingCost:      p.ShippingCost,
		LocalPickup:       p.LocalPickup,
		SoldAt:            p.SoldAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Image URLs and tags are stored as JSON text columns; a null or
// malformed column decodes to an empty list.
func decodeStringList(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeStringList(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

func ToResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToResponse(&products[i])
	}
	return out
}
