// AngelaMos | 2026
// entity.go

package favorite

import (
	"time"
)

// Favorite is one row in the engagement ledger. The (user, product)
// pair is unique; the counters on users and products are derived from
// these rows and maintained in the same transaction.
type Favorite struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ProductID string    `db:"product_id"`
	CreatedAt time.Time `db:"created_at"`
}
