// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/purpleshop/api/internal/core"
)

const productColumns = `
	id, title, description, price, category, subcategory, condition,
	product_type, location, latitude, longitude, image_urls,
	main_image_url, status, is_featured, seller_id, views_count,
	favorites_count, inquiries_count, tags, brand, model,
	shipping_available, shipping_cost, local_pickup, sold_at,
	expires_at, created_at, updated_at`

// degreesPerKM converts a kilometre radius into a latitude/longitude
// degree delta. The box is an approximation; it widens toward the
// poles and that is accepted.
const degreesPerKM = 1.0 / 111.0

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetActiveByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	UpdateStatus(ctx context.Context, id, status string) error
	MarkAsSold(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	Search(ctx context.Context, params SearchParams) ([]Product, int, error)
	ListBySeller(ctx context.Context, sellerID string, activeOnly bool, page, pageSize int) ([]Product, int, error)
	GetSellerInfo(ctx context.Context, sellerID string) (*SellerInfo, error)
	IncrementSellerProducts(ctx context.Context, sellerID string) error
	DecrementSellerProducts(ctx context.Context, sellerID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (
			id, title, description, price, category, subcategory,
			condition, product_type, location, latitude, longitude,
			image_urls, main_image_url, status, seller_id, tags, brand,
			model, shipping_available, shipping_cost, local_pickup,
			expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		p.Subcategory,
		p.Condition,
		p.ProductType,
		p.Location,
		p.Latitude,
		p.Longitude,
		p.ImageURLs,
		p.MainImageURL,
		p.Status,
		p.SellerID,
		p.Tags,
		p.Brand,
		p.Model,
		p.ShippingAvailable,
		p.ShippingCost,
		p.LocalPickup,
		p.ExpiresAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE id = $1`, productColumns)

	var p Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

func (r *repository) GetActiveByID(ctx context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE id = $1 AND status = $2`, productColumns)

	var p Product
	err := r.db.GetContext(ctx, &p, query, id, StatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get active product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get active product: %w", err)
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, category = $5,
		    subcategory = $6, condition = $7, location = $8,
		    latitude = $9, longitude = $10, image_urls = $11,
		    main_image_url = $12, tags = $13, brand = $14, model = $15,
		    shipping_available = $16, shipping_cost = $17,
		    local_pickup = $18, status = $19, sold_at = $20,
		    expires_at = $21, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		p.Subcategory,
		p.Condition,
		p.Location,
		p.Latitude,
		p.Longitude,
		p.ImageURLs,
		p.MainImageURL,
		p.Tags,
		p.Brand,
		p.Model,
		p.ShippingAvailable,
		p.ShippingCost,
		p.LocalPickup,
		p.Status,
		p.SoldAt,
		p.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE products
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "update product status", query, id, status)
}

// MarkAsSold succeeds only while the product is still active; a
// concurrent sale loses the race and gets ErrConflict.
func (r *repository) MarkAsSold(ctx context.Context, id string) error {
	query := `
		UPDATE products
		SET status = $2, sold_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, StatusSold, StatusActive)
	if err != nil {
		return fmt.Errorf("mark as sold: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark as sold: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("mark as sold: %w", core.ErrConflict)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE products
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status != $2`

	return r.execExpectingRow(ctx, "soft delete product", query, id, StatusDeleted)
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	query := `
		UPDATE products
		SET views_count = views_count + 1
		WHERE id = $1`

	return r.execExpectingRow(ctx, "increment views", query, id)
}

func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]Product, int, error) {
	whereClause, args, argIdx := buildSearchWhere(params)

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM products WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE %s
		ORDER BY created_at DESC, id ASC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}

	return products, total, nil
}

// buildSearchWhere assembles the AND-combined filter set. Only active
// listings are visible to search. Returns the clause, its args, and
// the next free placeholder index.
func buildSearchWhere(params SearchParams) (string, []any, int) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
	args = append(args, StatusActive)
	argIdx++

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR tags ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Subcategory != "" {
		conditions = append(conditions, fmt.Sprintf("subcategory = $%d", argIdx))
		args = append(args, params.Subcategory)
		argIdx++
	}

	if params.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Location)+"%")
		argIdx++
	}

	if params.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIdx))
		args = append(args, *params.MinPrice)
		argIdx++
	}

	if params.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIdx))
		args = append(args, *params.MaxPrice)
		argIdx++
	}

	if params.Condition != "" {
		conditions = append(conditions, fmt.Sprintf("condition = $%d", argIdx))
		args = append(args, params.Condition)
		argIdx++
	}

	if params.ProductType != "" {
		conditions = append(conditions, fmt.Sprintf("product_type = $%d", argIdx))
		args = append(args, params.ProductType)
		argIdx++
	}

	if params.SellerID != "" {
		conditions = append(conditions, fmt.Sprintf("seller_id = $%d", argIdx))
		args = append(args, params.SellerID)
		argIdx++
	}

	if params.HasGeoFilter() {
		delta := *params.RadiusKM * degreesPerKM
		conditions = append(conditions, fmt.Sprintf(
			"latitude BETWEEN $%d AND $%d", argIdx, argIdx+1))
		args = append(args, *params.Latitude-delta, *params.Latitude+delta)
		argIdx += 2
		conditions = append(conditions, fmt.Sprintf(
			"longitude BETWEEN $%d AND $%d", argIdx, argIdx+1))
		args = append(args, *params.Longitude-delta, *params.Longitude+delta)
		argIdx += 2
	}

	return strings.Join(conditions, " AND "), args, argIdx
}

func (r *repository) ListBySeller(
	ctx context.Context,
	sellerID string,
	activeOnly bool,
	page, pageSize int,
) ([]Product, int, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, "seller_id = $1")
	args = append(args, sellerID)

	if activeOnly {
		conditions = append(conditions, "status = $2")
		args = append(args, StatusActive)
	} else {
		conditions = append(conditions, "status != $2")
		args = append(args, StatusDeleted)
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM products WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count seller products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE %s
		ORDER BY created_at DESC, id ASC
		LIMIT $3 OFFSET $4`,
		productColumns, whereClause)

	args = append(args, pageSize, (page-1)*pageSize)

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list seller products: %w", err)
	}

	return products, total, nil
}

func (r *repository) GetSellerInfo(
	ctx context.Context,
	sellerID string,
) (*SellerInfo, error) {
	query := `
		SELECT id, username, display_name, avatar_url, location, is_verified
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var info SellerInfo
	err := r.db.GetContext(ctx, &info, query, sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get seller: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}

	return &info, nil
}

func (r *repository) IncrementSellerProducts(ctx context.Context, sellerID string) error {
	query := `
		UPDATE users
		SET products_count = products_count + 1
		WHERE id = $1`

	return r.execExpectingRow(ctx, "increment seller products", query, sellerID)
}

func (r *repository) DecrementSellerProducts(ctx context.Context, sellerID string) error {
	query := `
		UPDATE users
		SET products_count = GREATEST(products_count - 1, 0)
		WHERE id = $1`

	return r.execExpectingRow(ctx, "decrement seller products", query, sellerID)
}

func (r *repository) execExpectingRow(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
