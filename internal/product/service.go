// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/purpleshop/api/internal/core"
)

// ReviewSource supplies the public reviews embedded in a product
// detail. Wired from the review package at startup.
type ReviewSource interface {
	ListForProduct(ctx context.Context, productID string) ([]ReviewInfo, error)
}

type Service struct {
	db      *sqlx.DB
	repo    Repository
	reviews ReviewSource
	logger  *slog.Logger
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	reviews ReviewSource,
	logger *slog.Logger,
) *Service {
	return &Service{db: db, repo: repo, reviews: reviews, logger: logger}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) (*ProductListResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	products, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ProductListResponse{
		Products: ToResponseList(products),
		Total:    total,
		Page:     params.Page,
		Size:     params.PageSize,
		Pages:    core.PageCount(total, params.PageSize),
	}, nil
}

// GetDetail returns an active listing with its seller and reviews.
// The view counter is best-effort; a failed increment is logged and
// never blocks the read.
func (s *Service) GetDetail(
	ctx context.Context,
	id string,
) (*ProductDetailResponse, error) {
	p, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "view count increment failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	} else {
		p.ViewsCount++
	}

	detail := &ProductDetailResponse{
		ProductResponse: ToResponse(p),
		Reviews:         []ReviewInfo{},
	}

	seller, err := s.repo.GetSellerInfo(ctx, p.SellerID)
	if err == nil {
		detail.Seller = seller
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	if s.reviews != nil {
		reviews, err := s.reviews.ListForProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Reviews = reviews
	}

	return detail, nil
}

func (s *Service) Create(
	ctx context.Context,
	sellerID string,
	req CreateProductRequest,
) (*ProductResponse, error) {
	localPickup := true
	if req.LocalPickup != nil {
		localPickup = *req.LocalPickup
	}

	p := &Product{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		Condition:         req.Condition,
		ProductType:       req.ProductType,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ImageURLs:         encodeStringList(req.ImageURLs),
		MainImageURL:      req.MainImageURL,
		Status:            StatusActive,
		SellerID:          sellerID,
		Tags:              encodeStringList(req.Tags),
		Brand:             req.Brand,
		Model:             req.Model,
		ShippingAvailable: req.ShippingAvailable,
		ShippingCost:      req.ShippingCost,
		LocalPickup:       localPickup,
		ExpiresAt:         req.ExpiresAt,
	}

	if p.ProductType == TypeFree {
		p.Price = nil
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.Create(ctx, p); err != nil {
			return err
		}
		return txRepo.IncrementSellerProducts(ctx, sellerID)
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	resp := ToResponse(p)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	id string,
	req UpdateProductRequest,
) (*ProductResponse, error) {
	p, err := s.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canMutate(callerID, isAdmin, p.SellerID) {
		return nil, core.ForbiddenError("you can only modify your own listings")
	}

	applyUpdate(p, req)

	if req.Status != nil && *req.Status != p.Status {
		if !CanTransition(p.Status, *req.Status) {
			return nil, core.ConflictError(fmt.Sprintf(
				"cannot change status from %s to %s", p.Status, *req.Status))
		}
		if *req.Status == StatusSold {
			now := time.Now().UTC()
			p.SoldAt = &now
		}
		p.Status = *req.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}

	resp := ToResponse(p)
	return &resp, nil
}

// MarkAsSold transitions an active listing to sold and stamps
// sold_at. Anything else, including a listing already sold, conflicts.
func (s *Service) MarkAsSold(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	id string,
) (*ProductResponse, error) {
	p, err := s.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canMutate(callerID, isAdmin, p.SellerID) {
		return nil, core.ForbiddenError("you can only modify your own listings")
	}

	if p.Status != StatusActive {
		return nil, core.ConflictError("only active listings can be marked as sold")
	}

	if err := s.repo.MarkAsSold(ctx, id); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("only active listings can be marked as sold")
		}
		return nil, err
	}

	p, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToResponse(p)
	return &resp, nil
}

// Delete soft-deletes a listing and releases its slot in the seller's
// products count, atomically.
func (s *Service) Delete(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	id string,
) error {
	p, err := s.loadVisible(ctx, id)
	if err != nil {
		return err
	}

	if !canMutate(callerID, isAdmin, p.SellerID) {
		return core.ForbiddenError("you can only delete your own listings")
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.SoftDelete(ctx, id); err != nil {
			return err
		}
		return txRepo.DecrementSellerProducts(ctx, p.SellerID)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("product")
		}
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}

// ListBySeller shows everything but deleted listings to the owner and
// admins, active listings only to everyone else.
func (s *Service) ListBySeller(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	sellerID string,
	page, pageSize int,
) (*ProductListResponse, error) {
	activeOnly := callerID != sellerID && !isAdmin

	products, total, err := s.repo.ListBySeller(ctx, sellerID, activeOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &ProductListResponse{
		Products: ToResponseList(products),
		Total:    total,
		Page:     page,
		Size:     pageSize,
		Pages:    core.PageCount(total, pageSize),
	}, nil
}

// loadVisible fetches by id treating deleted listings as gone.
func (s *Service) loadVisible(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("product")
		}
		return nil, err
	}
	if p.Status == StatusDeleted {
		return nil, core.NotFoundError("product")
	}
	return p, nil
}

// canMutate is the single ownership gate for listing mutations.
func canMutate(callerID string, isAdmin bool, ownerID string) bool {
	return isAdmin || (callerID != "" && callerID == ownerID)
}

// applyUpdate copies only the supplied fields onto the listing.
// Status is handled separately by the caller.
func applyUpdate(p *Product, req UpdateProductRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Subcategory != nil {
		p.Subcategory = req.Subcategory
	}
	if req.Condition != nil {
		p.Condition = *req.Condition
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.ImageURLs != nil {
		p.ImageURLs = encodeStringList(req.ImageURLs)
	}
	if req.MainImageURL != nil {
		p.MainImageURL = req.MainImageURL
	}
	if req.Tags != nil {
		p.Tags = encodeStringList(req.Tags)
	}
	if req.Brand != nil {
		p.Brand = req.Brand
	}
	if req.Model != nil {
		p.Model = req.Model
	}
	if req.ShippingCost != nil {
		p.ShippingCost = req.ShippingCost
	}
	if req.LocalPickup != nil {
		p.LocalPickup = *req.LocalPickup
	}
	if req.ExpiresAt != nil {
		p.ExpiresAt = req.ExpiresAt
	}
}
