// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/purpleshop/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	ListByProduct(ctx context.Context, productID string) ([]ReviewResponse, error)
	Exists(ctx context.Context, reviewerID, productID string) (bool, error)
	GetProductTarget(ctx context.Context, productID string) (sellerID, status string, err error)
	AverageRating(ctx context.Context, productID string) (float64, error)
	IncrementSellerReviews(ctx context.Context, sellerID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (
			id, product_id, reviewer_id, seller_id, rating, title,
			comment, review_type, is_public
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, rv, query,
		rv.ID,
		rv.ProductID,
		rv.ReviewerID,
		rv.SellerID,
		rv.Rating,
		rv.Title,
		rv.Comment,
		rv.ReviewType,
		rv.IsPublic,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create review: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

type reviewRow struct {
	Review
	ReviewerName *string `db:"reviewer_name"`
}

// ListByProduct returns public reviews only.
func (r *repository) ListByProduct(
	ctx context.Context,
	productID string,
) ([]ReviewResponse, error) {
	query := `
		SELECT r.*, COALESCE(u.display_name, u.username) AS reviewer_name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.reviewer_id AND u.deleted_at IS NULL
		WHERE r.product_id = $1 AND r.is_public = TRUE
		ORDER BY r.created_at DESC, r.id ASC`

	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, query, productID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	out := make([]ReviewResponse, len(rows))
	for i := range rows {
		out[i] = toResponse(&rows[i])
	}

	return out, nil
}

func (r *repository) Exists(
	ctx context.Context,
	reviewerID, productID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews
			WHERE reviewer_id = $1 AND product_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, reviewerID, productID); err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}

	return exists, nil
}

func (r *repository) GetProductTarget(
	ctx context.Context,
	productID string,
) (string, string, error) {
	query := `SELECT seller_id, status FROM products WHERE id = $1`

	var row struct {
		SellerID string `db:"seller_id"`
		Status   string `db:"status"`
	}
	err := r.db.GetContext(ctx, &row, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("get review target: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("get review target: %w", err)
	}

	return row.SellerID, row.Status, nil
}

// AverageRating is rounded to two decimals; zero when unreviewed.
func (r *repository) AverageRating(
	ctx context.Context,
	productID string,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE product_id = $1 AND is_public = TRUE`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, productID); err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}

	return math.Round(avg*100) / 100, nil
}

func (r *repository) IncrementSellerReviews(ctx context.Context, sellerID string) error {
	query := `
		UPDATE users
		SET reviews_count = reviews_count + 1
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, sellerID)
	if err != nil {
		return fmt.Errorf("increment seller reviews: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment seller reviews: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("increment seller reviews: %w", core.ErrNotFound)
	}

	return nil
}

func toResponse(row *reviewRow) ReviewResponse {
	resp := ReviewResponse{
		ID:         row.ID,
		ProductID:  row.ProductID,
		ReviewerID: row.ReviewerID,
		Rating:     row.Rating,
		Title:      row.Title,
		Comment:    row.Comment,
		ReviewType: row.ReviewType,
		CreatedAt:  row.CreatedAt,
	}
	if row.ReviewerName != nil {
		resp.ReviewerName = *row.ReviewerName
	}
	return resp
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
