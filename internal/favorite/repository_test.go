// AngelaMos | 2026
// repository_test.go

package favorite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/purpleshop/api/internal/core"
)

type getRecorder struct {
	core.DBTX

	query string
	err   error
}

func (r *getRecorder) GetContext(
	_ context.Context,
	_ any,
	query string,
	_ ...any,
) error {
	r.query = query
	return r.err
}

func TestInsertResolvesConflictWithoutConstraintError(t *testing.T) {
	rec := &getRecorder{err: sql.ErrNoRows}
	repo := NewRepository(rec)

	err := repo.Insert(context.Background(), &Favorite{
		ID:        "f1",
		UserID:    "u1",
		ProductID: "p1",
	})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("Insert(held row) error = %v, want duplicate key", err)
	}
	if !strings.Contains(rec.query, "ON CONFLICT (user_id, product_id) DO NOTHING") {
		t.Errorf("insert must absorb the unique-pair conflict:\n%s", rec.query)
	}
	if !strings.Contains(rec.query, "RETURNING created_at") {
		t.Errorf("insert must report whether a row was written:\n%s", rec.query)
	}
}

func TestInsertSucceeds(t *testing.T) {
	rec := &getRecorder{}
	repo := NewRepository(rec)

	if err := repo.Insert(context.Background(), &Favorite{
		ID:        "f1",
		UserID:    "u1",
		ProductID: "p1",
	}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
}
