// AngelaMos | 2026
// service_test.go

package review

import (
	"context"
	"errors"
	"testing"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/product"
)

type fakeRepo struct {
	Repository

	sellerID  string
	status    string
	targetErr error
	reviewed  bool
}

func (f *fakeRepo) GetProductTarget(ctx context.Context, productID string) (string, string, error) {
	if f.targetErr != nil {
		return "", "", f.targetErr
	}
	return f.sellerID, f.status, nil
}

func (f *fakeRepo) Exists(ctx context.Context, reviewerID, productID string) (bool, error) {
	return f.reviewed, nil
}

func TestCreateRejectsOwnListing(t *testing.T) {
	repo := &fakeRepo{sellerID: "u1", status: product.StatusActive}
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), "u1", "p1",
		CreateReviewRequest{Rating: 5})
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Create(own listing) error = %v, want forbidden", err)
	}
}

func TestCreateRejectsSecondReview(t *testing.T) {
	repo := &fakeRepo{
		sellerID: "seller",
		status:   product.StatusActive,
		reviewed: true,
	}
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), "u1", "p1",
		CreateReviewRequest{Rating: 4})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("Create(second review) error = %v, want conflict", err)
	}
}

func TestCreateMissingProduct(t *testing.T) {
	repo := &fakeRepo{targetErr: core.ErrNotFound}
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), "u1", "missing",
		CreateReviewRequest{Rating: 3})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Create(missing product) error = %v, want not found", err)
	}
}

func TestCreateDeletedProductIsGone(t *testing.T) {
	repo := &fakeRepo{sellerID: "seller", status: product.StatusDeleted}
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), "u1", "p1",
		CreateReviewRequest{Rating: 3})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Create(deleted product) error = %v, want not found", err)
	}
}
