// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/product"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

// Create writes a review and bumps the seller's reviews count in the
// same transaction. One review per reviewer per product; sellers
// cannot review their own listings.
func (s *Service) Create(
	ctx context.Context,
	reviewerID, productID string,
	req CreateReviewRequest,
) (*ReviewResponse, error) {
	sellerID, status, err := s.repo.GetProductTarget(ctx, productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}
	if status == product.StatusDeleted {
		return nil, core.NotFoundError("product")
	}
	if sellerID == reviewerID {
		return nil, core.ForbiddenError("you cannot review your own listing")
	}

	exists, err := s.repo.Exists(ctx, reviewerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, core.ConflictError("you have already reviewed this product")
	}

	rv := &Review{
		ID:         uuid.NewString(),
		ProductID:  productID,
		ReviewerID: reviewerID,
		SellerID:   sellerID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		ReviewType: TypeProduct,
		IsPublic:   true,
	}
	if req.ReviewType != nil {
		rv.ReviewType = *req.ReviewType
	}
	if req.IsPublic != nil {
		rv.IsPublic = *req.IsPublic
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.Create(ctx, rv); err != nil {
			return err
		}
		return txRepo.IncrementSellerReviews(ctx, sellerID)
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError("you have already reviewed this product")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return &ReviewResponse{
		ID:         rv.ID,
		ProductID:  rv.ProductID,
		ReviewerID: rv.ReviewerID,
		Rating:     rv.Rating,
		Title:      rv.Title,
		Comment:    rv.Comment,
		ReviewType: rv.ReviewType,
		CreatedAt:  rv.CreatedAt,
	}, nil
}

func (s *Service) ListByProduct(
	ctx context.Context,
	productID string,
) (*ReviewListResponse, error) {
	if _, _, err := s.repo.GetProductTarget(ctx, productID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}

	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ReviewListResponse{
		Reviews:       reviews,
		Total:         len(reviews),
		AverageRating: avg,
	}, nil
}

// ProductReviewSource adapts the review store to the shape the
// product detail embeds.
type ProductReviewSource struct {
	repo Repository
}

func NewProductReviewSource(repo Repository) *ProductReviewSource {
	return &ProductReviewSource{repo: repo}
}

func (a *ProductReviewSource) ListForProduct(
	ctx context.Context,
	productID string,
) ([]product.ReviewInfo, error) {
	reviews, err := a.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := make([]product.ReviewInfo, len(reviews))
	for i, rv := range reviews {
		out[i] = product.ReviewInfo{
			ID:           rv.ID,
			ReviewerID:   rv.ReviewerID,
			ReviewerName: rv.ReviewerName,
			Rating:       rv.Rating,
			Title:        rv.Title,
			Content:      rv.Comment,
			CreatedAt:    rv.CreatedAt,
		}
	}

	return out, nil
}

var _ product.ReviewSource = (*ProductReviewSource)(nil)
