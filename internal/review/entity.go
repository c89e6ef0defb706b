// AngelaMos | 2026
// entity.go

package review

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// TypeProduct rates the listing itself; TypeUser rates the seller.
const (
	TypeProduct = "product"
	TypeUser    = "user"
)

type Review struct {
	ID         string    `db:"id"`
	ProductID  string    `db:"product_id"`
	ReviewerID string    `db:"reviewer_id"`
	SellerID   string    `db:"seller_id"`
	Rating     int       `db:"rating"`
	Title      *string   `db:"title"`
	Comment    *string   `db:"comment"`
	ReviewType string    `db:"review_type"`
	IsPublic   bool      `db:"is_public"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
