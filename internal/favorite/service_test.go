// AngelaMos | 2026
// service_test.go

package favorite

import (
	"context"
	"errors"
	"testing"

	"github.com/purpleshop/api/internal/core"
)

// ledgerFake tracks counter movements so the tests can assert the
// row-and-counters invariant directly.
type ledgerFake struct {
	Repository

	rows      map[string]bool // userID|productID
	insertErr error

	productDelta map[string]int
	userDelta    map[string]int
	productGone  bool
}

func newLedgerFake() *ledgerFake {
	return &ledgerFake{
		rows:         map[string]bool{},
		productDelta: map[string]int{},
		userDelta:    map[string]int{},
	}
}

func key(userID, productID string) string { return userID + "|" + productID }

func (f *ledgerFake) Exists(ctx context.Context, userID, productID string) (bool, error) {
	return f.rows[key(userID, productID)], nil
}

func (f *ledgerFake) Insert(ctx context.Context, fav *Favorite) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[key(fav.UserID, fav.ProductID)] = true
	return nil
}

func (f *ledgerFake) Delete(ctx context.Context, userID, productID string) error {
	k := key(userID, productID)
	if !f.rows[k] {
		return core.ErrNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *ledgerFake) IncrementProductFavorites(ctx context.Context, productID string) error {
	f.productDelta[productID]++
	return nil
}

func (f *ledgerFake) DecrementProductFavorites(ctx context.Context, productID string) error {
	if f.productGone {
		return core.ErrNotFound
	}
	f.productDelta[productID]--
	return nil
}

func (f *ledgerFake) IncrementUserFavorites(ctx context.Context, userID string) error {
	f.userDelta[userID]++
	return nil
}

func (f *ledgerFake) DecrementUserFavorites(ctx context.Context, userID string) error {
	f.userDelta[userID]--
	return nil
}

func (f *ledgerFake) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]FavoritedProduct, int, error) {
	return []FavoritedProduct{}, 0, nil
}

func TestApplyFavoriteNewEntry(t *testing.T) {
	repo := newLedgerFake()

	resp, err := applyFavorite(context.Background(), repo, "u1", "p1")
	if err != nil {
		t.Fatalf("applyFavorite() error = %v", err)
	}
	if !resp.Favorited {
		t.Error("response should report favorited")
	}
	if !repo.rows[key("u1", "p1")] {
		t.Error("ledger row was not written")
	}
	if repo.productDelta["p1"] != 1 {
		t.Errorf("product counter delta = %d, want 1", repo.productDelta["p1"])
	}
	if repo.userDelta["u1"] != 1 {
		t.Errorf("user counter delta = %d, want 1", repo.userDelta["u1"])
	}
}

func TestApplyFavoriteIdempotent(t *testing.T) {
	repo := newLedgerFake()
	repo.rows[key("u1", "p1")] = true

	resp, err := applyFavorite(context.Background(), repo, "u1", "p1")
	if err != nil {
		t.Fatalf("applyFavorite() error = %v, repeat must be a no-op", err)
	}
	if !resp.Favorited {
		t.Error("repeat favorite should still report favorited")
	}
	if repo.productDelta["p1"] != 0 || repo.userDelta["u1"] != 0 {
		t.Errorf("counters moved on a no-op: product=%d user=%d",
			repo.productDelta["p1"], repo.userDelta["u1"])
	}
}

func TestApplyFavoriteConcurrentDuplicate(t *testing.T) {
	repo := newLedgerFake()
	repo.insertErr = core.ErrDuplicateKey

	resp, err := applyFavorite(context.Background(), repo, "u1", "p1")
	if err != nil {
		t.Fatalf("applyFavorite() error = %v, losing the race must be a no-op", err)
	}
	if !resp.Favorited {
		t.Error("race loser should still see the product as favorited")
	}
	if repo.productDelta["p1"] != 0 || repo.userDelta["u1"] != 0 {
		t.Error("counters must not move when the insert lost the race")
	}
}

func TestApplyUnfavorite(t *testing.T) {
	repo := newLedgerFake()
	repo.rows[key("u1", "p1")] = true

	if err := applyUnfavorite(context.Background(), repo, "u1", "p1"); err != nil {
		t.Fatalf("applyUnfavorite() error = %v", err)
	}
	if repo.rows[key("u1", "p1")] {
		t.Error("ledger row was not removed")
	}
	if repo.productDelta["p1"] != -1 {
		t.Errorf("product counter delta = %d, want -1", repo.productDelta["p1"])
	}
	if repo.userDelta["u1"] != -1 {
		t.Errorf("user counter delta = %d, want -1", repo.userDelta["u1"])
	}
}

func TestApplyUnfavoriteMissingRow(t *testing.T) {
	repo := newLedgerFake()

	err := applyUnfavorite(context.Background(), repo, "u1", "p1")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("applyUnfavorite(missing) error = %v, want not found", err)
	}
	if repo.productDelta["p1"] != 0 || repo.userDelta["u1"] != 0 {
		t.Error("counters must not move when no row was deleted")
	}
}

func TestApplyUnfavoriteToleratesDeletedProduct(t *testing.T) {
	repo := newLedgerFake()
	repo.rows[key("u1", "p1")] = true
	repo.productGone = true

	if err := applyUnfavorite(context.Background(), repo, "u1", "p1"); err != nil {
		t.Fatalf("applyUnfavorite() error = %v, missing product row must not fail", err)
	}
	if repo.userDelta["u1"] != -1 {
		t.Errorf("user counter delta = %d, want -1", repo.userDelta["u1"])
	}
}

func TestListForUserAuthorization(t *testing.T) {
	svc := NewService(nil, newLedgerFake())

	_, err := svc.ListForUser(context.Background(), "u2", false, "u1", 1, 20)
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("ListForUser(stranger) error = %v, want forbidden", err)
	}
}

func TestListForUserOwnerAndAdmin(t *testing.T) {
	repo := newLedgerFake()
	svc := NewService(nil, repo)

	if _, err := svc.ListForUser(context.Background(), "u1", false, "u1", 1, 20); err != nil {
		t.Errorf("ListForUser(owner) error = %v", err)
	}
	if _, err := svc.ListForUser(context.Background(), "admin", true, "u1", 1, 20); err != nil {
		t.Errorf("ListForUser(admin) error = %v", err)
	}
}
