// AngelaMos | 2026
// dto.go

package category

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

type SubcategoryCount struct {
	Subcategory string `json:"subcategory" db:"subcategory"`
	Count       int    `json:"count" db:"count"`
}

type LocationCount struct {
	Location string `json:"location" db:"location"`
	Count    int    `json:"count" db:"count"`
}

type TypeCount struct {
	ProductType string `json:"product_type" db:"product_type"`
	Count       int    `json:"count" db:"count"`
}

// PriceStats is omitted entirely when a category has no priced
// listings; zeros would be misleading there.
type PriceStats struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

type CategoryListResponse struct {
	Categories []CategoryCount `json:"categories"`
	Total      int             `json:"total"`
}

type CategoryDetailResponse struct {
	Category      string             `json:"category"`
	Count         int                `json:"count"`
	Subcategories []SubcategoryCount `json:"subcategories"`
	PriceStats    *PriceStats        `json:"price_stats,omitempty"`
	Locations     []LocationCount    `json:"locations"`
	ProductTypes  []TypeCount        `json:"product_types"`
}

type SubcategoryListResponse struct {
	Category      string             `json:"category"`
	Subcategories []SubcategoryCount `json:"subcategories"`
}

// GlobalStats always reports every product type, zero-filled when a
// type has no active listings.
type GlobalStats struct {
	TotalProducts   int            `json:"total_products"`
	TotalCategories int            `json:"total_categories"`
	ByCategory      map[string]int `json:"by_category"`
	ByProductType   map[string]int `json:"by_product_type"`
	AveragePrice    float64        `json:"average_price"`
}
