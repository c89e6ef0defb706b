// AngelaMos | 2026
// service.go

package favorite

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

// Favorite adds a product to the caller's favorites. Favoriting
// something already favorited is a no-op, not an error; the counters
// move only when a ledger row is actually written.
func (s *Service) Favorite(
	ctx context.Context,
	userID, productID string,
) (*FavoriteResponse, error) {
	status, err := s.repo.GetProductStatus(ctx, productID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}
	if status != product.StatusActive {
		return nil, core.NotFoundError("product")
	}

	var resp *FavoriteResponse
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		resp, err = applyFavorite(ctx, NewRepository(tx), userID, productID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("favorite product: %w", err)
	}

	return resp, nil
}

// Unfavorite removes a product from the caller's favorites. Removing
// something never favorited is a not-found, mirroring a double-delete.
func (s *Service) Unfavorite(
	ctx context.Context,
	userID, productID string,
) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return applyUnfavorite(ctx, NewRepository(tx), userID, productID)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("favorite")
		}
		return fmt.Errorf("unfavorite product: %w", err)
	}

	return nil
}

// ListForUser is restricted to the owner and admins.
func (s *Service) ListForUser(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	userID string,
	page, pageSize int,
) (*FavoriteListResponse, error) {
	if callerID != userID && !isAdmin {
		return nil, core.ForbiddenError("you can only view your own favorites")
	}

	favorites, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &FavoriteListResponse{
		Favorites: favorites,
		Total:     total,
		Page:      page,
		Size:      pageSize,
		Pages:     core.PageCount(total, pageSize),
	}, nil
}

// applyFavorite is the transactional body of Favorite: one ledger row
// plus both counters, or nothing. Separated from the transaction
// wrapper so the ledger invariants are testable against a fake
// repository.
func applyFavorite(
	ctx context.Context,
	repo Repository,
	userID, productID string,
) (*FavoriteResponse, error) {
	exists, err := repo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &FavoriteResponse{
			ProductID: productID,
			Favorited: true,
			Message:   "product already in favorites",
		}, nil
	}

	fav := &Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := repo.Insert(ctx, fav); err != nil {
		// A concurrent favorite won the unique constraint race;
		// treat it as the no-op path.
		if errors.Is(err, core.ErrDuplicateKey) {
			return &FavoriteResponse{
				ProductID: productID,
				Favorited: true,
				Message:   "product already in favorites",
			}, nil
		}
		return nil, err
	}

	if err := repo.IncrementProductFavorites(ctx, productID); err != nil {
		return nil, err
	}
	if err := repo.IncrementUserFavorites(ctx, userID); err != nil {
		return nil, err
	}

	return &FavoriteResponse{
		ProductID: productID,
		Favorited: true,
		Message:   "product added to favorites",
		CreatedAt: fav.CreatedAt,
	}, nil
}

// applyUnfavorite deletes the ledger row and floors both counters at
// zero in the same transaction.
func applyUnfavorite(
	ctx context.Context,
	repo Repository,
	userID, productID string,
) error {
	if err := repo.Delete(ctx, userID, productID); err != nil {
		return err
	}
	if err := repo.DecrementProductFavorites(ctx, productID); err != nil {
		// The product row may be gone entirely; the ledger row is
		// already deleted, so a missing counter target is not fatal.
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}
	}
	return repo.DecrementUserFavorites(ctx, userID)
}
