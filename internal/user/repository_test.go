// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/purpleshop/api/internal/core"
)

type execRecorder struct {
	core.DBTX

	queries []string
	argLens []int
}

func (r *execRecorder) ExecContext(
	_ context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	r.queries = append(r.queries, query)
	r.argLens = append(r.argLens, len(args))
	return driver.RowsAffected(1), nil
}

func indexContaining(queries []string, substr string) int {
	for i, q := range queries {
		if strings.Contains(q, substr) {
			return i
		}
	}
	return -1
}

func TestCascadeDeleteStatementOrder(t *testing.T) {
	rec := &execRecorder{}
	repo := NewRepository(rec)

	if err := repo.CascadeDelete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.queries) != 9 {
		t.Fatalf("ran %d statements, want 9", len(rec.queries))
	}
	for i, n := range rec.argLens {
		if n != 1 {
			t.Errorf("statement %d bound %d args, want 1", i, n)
		}
	}

	lastFavorite := -1
	for i, q := range rec.queries {
		if strings.Contains(q, "favorites") {
			lastFavorite = i
		}
	}
	firstReview := indexContaining(rec.queries, "reviews")
	productSoftDelete := indexContaining(rec.queries, "SET status = 'deleted'")
	userSoftDelete := indexContaining(rec.queries, "SET deleted_at = NOW()")

	if lastFavorite == -1 || firstReview == -1 ||
		productSoftDelete == -1 || userSoftDelete == -1 {
		t.Fatalf("missing cascade phase in %q", rec.queries)
	}
	if !(lastFavorite < firstReview &&
		firstReview < productSoftDelete &&
		productSoftDelete < userSoftDelete) {
		t.Errorf("phase order favorites=%d reviews=%d products=%d user=%d",
			lastFavorite, firstReview, productSoftDelete, userSoftDelete)
	}
	if userSoftDelete != len(rec.queries)-1 {
		t.Errorf("user soft delete at %d, want final statement", userSoftDelete)
	}
}

// Review rows carry reviewer_id and seller_id; the cascade must not
// reference any other user column on reviews.
func TestCascadeDeleteReviewColumns(t *testing.T) {
	rec := &execRecorder{}
	repo := NewRepository(rec)

	if err := repo.CascadeDelete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counterStep := indexContaining(rec.queries, "reviews_count")
	if counterStep == -1 {
		t.Fatal("no review counter decrement statement")
	}
	if !strings.Contains(rec.queries[counterStep], "r.seller_id = u.id") {
		t.Errorf("counter decrement does not join on seller_id:\n%s",
			rec.queries[counterStep])
	}

	for i, q := range rec.queries {
		if !strings.Contains(q, "reviews") {
			continue
		}
		fields := strings.FieldsFunc(q, func(r rune) bool {
			return !(r == '_' || r == '.' ||
				('a' <= r && r <= 'z') || ('0' <= r && r <= '9'))
		})
		for _, f := range fields {
			name := f
			if dot := strings.LastIndex(name, "."); dot >= 0 {
				name = name[dot+1:]
			}
			if strings.HasSuffix(name, "_id") &&
				name != "reviewer_id" && name != "seller_id" &&
				name != "product_id" && name != "user_id" {
				t.Errorf("statement %d references unknown column %q", i, f)
			}
		}
	}
}
