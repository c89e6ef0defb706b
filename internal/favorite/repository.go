// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/product"
)

type Repository interface {
	Insert(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, userID, productID string) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	GetProductStatus(ctx context.Context, productID string) (string, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]FavoritedProduct, int, error)
	IncrementProductFavorites(ctx context.Context, productID string) error
	DecrementProductFavorites(ctx context.Context, productID string) error
	IncrementUserFavorites(ctx context.Context, userID string) error
	DecrementUserFavorites(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Insert resolves a concurrent-favorite race without raising a
// constraint error, so the surrounding transaction stays committable.
func (r *repository) Insert(ctx context.Context, f *Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
		RETURNING created_at`

	err := r.db.GetContext(ctx, &f.CreatedAt, query, f.ID, f.UserID, f.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("insert favorite: %w", core.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, productID string) error {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Exists(
	ctx context.Context,
	userID, productID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM favorites
			WHERE user_id = $1 AND product_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, productID); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	return exists, nil
}

func (r *repository) GetProductStatus(
	ctx context.Context,
	productID string,
) (string, error) {
	query := `SELECT status FROM products WHERE id = $1`

	var status string
	err := r.db.GetContext(ctx, &status, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get product status: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get product status: %w", err)
	}

	return status, nil
}

type favoriteRow struct {
	product.Product
	FavoritedAt time.Time `db:"favorited_at"`
}

// ListByUser returns the user's favorited products newest-favorite
// first, hiding listings that have since been deleted.
func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]FavoritedProduct, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND p.status != $2`

	var total int
	err := r.db.GetContext(ctx, &total, countQuery, userID, product.StatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	query := `
		SELECT p.*, f.created_at AS favorited_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND p.status != $2
		ORDER BY f.created_at DESC, p.id ASC
		LIMIT $3 OFFSET $4`

	var rows []favoriteRow
	err = r.db.SelectContext(ctx, &rows, query,
		userID, product.StatusDeleted, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]FavoritedProduct, len(rows))
	for i := range rows {
		out[i] = FavoritedProduct{
			ProductResponse: product.ToResponse(&rows[i].Product),
			FavoritedAt:     rows[i].FavoritedAt,
		}
	}

	return out, total, nil
}

func (r *repository) IncrementProductFavorites(ctx context.Context, productID string) error {
	query := `
		UPDATE products
		SET favorites_count = favorites_count + 1
		WHERE id = $1`

	return r.execExpectingRow(ctx, "increment product favorites", query, productID)
}

func (r *repository) DecrementProductFavorites(ctx context.Context, productID string) error {
	query := `
		UPDATE products
		SET favorites_count = GREATEST(favorites_count - 1, 0)
		WHERE id = $1`

	return r.execExpectingRow(ctx, "decrement product favorites", query, productID)
}

func (r *repository) IncrementUserFavorites(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET favorites_count = favorites_count + 1
		WHERE id = $1`

	return r.execExpectingRow(ctx, "increment user favorites", query, userID)
}

func (r *repository) DecrementUserFavorites(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET favorites_count = GREATEST(favorites_count - 1, 0)
		WHERE id = $1`

	return r.execExpectingRow(ctx, "decrement user favorites", query, userID)
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
