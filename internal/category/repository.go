// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"fmt"
	"math"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/product"
)

// Repository computes rollups over the live products table. Every
// query counts active listings only.
type Repository interface {
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
	SubcategoryCounts(ctx context.Context, category string) ([]SubcategoryCount, error)
	LocationCounts(ctx context.Context, category string) ([]LocationCount, error)
	TypeCounts(ctx context.Context, category string) ([]TypeCount, error)
	PriceStats(ctx context.Context, category string) (*PriceStats, error)
	CategoryTotal(ctx context.Context, category string) (int, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*) AS count
		FROM products
		WHERE status = $1
		GROUP BY category
		ORDER BY count DESC, category ASC`

	var counts []CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query, product.StatusActive); err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}

	return counts, nil
}

// SubcategoryCounts skips listings without a subcategory rather than
// reporting a null bucket.
func (r *repository) SubcategoryCounts(
	ctx context.Context,
	category string,
) ([]SubcategoryCount, error) {
	query := `
		SELECT subcategory, COUNT(*) AS count
		FROM products
		WHERE status = $1 AND category = $2 AND subcategory IS NOT NULL
		GROUP BY subcategory
		ORDER BY count DESC, subcategory ASC`

	var counts []SubcategoryCount
	err := r.db.SelectContext(ctx, &counts, query, product.StatusActive, category)
	if err != nil {
		return nil, fmt.Errorf("subcategory counts: %w", err)
	}

	return counts, nil
}

func (r *repository) LocationCounts(
	ctx context.Context,
	category string,
) ([]LocationCount, error) {
	query := `
		SELECT location, COUNT(*) AS count
		FROM products
		WHERE status = $1 AND category = $2
		GROUP BY location
		ORDER BY count DESC, location ASC`

	var counts []LocationCount
	err := r.db.SelectContext(ctx, &counts, query, product.StatusActive, category)
	if err != nil {
		return nil, fmt.Errorf("location counts: %w", err)
	}

	return counts, nil
}

func (r *repository) TypeCounts(
	ctx context.Context,
	category string,
) ([]TypeCount, error) {
	query := `
		SELECT product_type, COUNT(*) AS count
		FROM products
		WHERE status = $1 AND category = $2
		GROUP BY product_type
		ORDER BY count DESC, product_type ASC`

	var counts []TypeCount
	err := r.db.SelectContext(ctx, &counts, query, product.StatusActive, category)
	if err != nil {
		return nil, fmt.Errorf("type counts: %w", err)
	}

	return counts, nil
}

// PriceStats returns nil when the category has no priced listings.
func (r *repository) PriceStats(
	ctx context.Context,
	category string,
) (*PriceStats, error) {
	query := `
		SELECT COUNT(price) AS priced,
		       COALESCE(MIN(price), 0) AS min,
		       COALESCE(AVG(price), 0) AS avg,
		       COALESCE(MAX(price), 0) AS max
		FROM products
		WHERE status = $1 AND category = $2 AND price IS NOT NULL`

	var row struct {
		Priced int     `db:"priced"`
		Min    float64 `db:"min"`
		Avg    float64 `db:"avg"`
		Max    float64 `db:"max"`
	}
	err := r.db.GetContext(ctx, &row, query, product.StatusActive, category)
	if err != nil {
		return nil, fmt.Errorf("price stats: %w", err)
	}

	if row.Priced == 0 {
		return nil, nil
	}

	return &PriceStats{
		Min: row.Min,
		Avg: math.Round(row.Avg*100) / 100,
		Max: row.Max,
	}, nil
}

func (r *repository) CategoryTotal(
	ctx context.Context,
	category string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE status = $1 AND category = $2`

	var total int
	err := r.db.GetContext(ctx, &total, query, product.StatusActive, category)
	if err != nil {
		return 0, fmt.Errorf("category total: %w", err)
	}

	return total, nil
}

func (r *repository) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	query := `
		SELECT COUNT(*) AS total_products,
		       COUNT(DISTINCT category) AS total_categories,
		       COALESCE(AVG(price), 0) AS average_price
		FROM products
		WHERE status = $1`

	var row struct {
		TotalProducts   int     `db:"total_products"`
		TotalCategories int     `db:"total_categories"`
		AveragePrice    float64 `db:"average_price"`
	}
	if err := r.db.GetContext(ctx, &row, query, product.StatusActive); err != nil {
		return nil, fmt.Errorf("global stats: %w", err)
	}

	typeQuery := `
		SELECT product_type, COUNT(*) AS count
		FROM products
		WHERE status = $1
		GROUP BY product_type`

	var typeCounts []TypeCount
	if err := r.db.SelectContext(ctx, &typeCounts, typeQuery, product.StatusActive); err != nil {
		return nil, fmt.Errorf("global type counts: %w", err)
	}

	byType := make(map[string]int, len(product.ProductTypes))
	for _, t := range product.ProductTypes {
		byType[t] = 0
	}
	for _, tc := range typeCounts {
		byType[tc.ProductType] = tc.Count
	}

	categoryQuery := `
		SELECT category, COUNT(*) AS count
		FROM products
		WHERE status = $1
		GROUP BY category`

	var categoryCounts []CategoryCount
	if err := r.db.SelectContext(ctx, &categoryCounts, categoryQuery, product.StatusActive); err != nil {
		return nil, fmt.Errorf("global category counts: %w", err)
	}

	byCategory := make(map[string]int, len(categoryCounts))
	for _, cc := range categoryCounts {
		byCategory[cc.Category] = cc.Count
	}

	return &GlobalStats{
		TotalProducts:   row.TotalProducts,
		TotalCategories: row.TotalCategories,
		ByCategory:      byCategory,
		ByProductType:   byType,
		AveragePrice:    math.Round(row.AveragePrice*100) / 100,
	}, nil
}
