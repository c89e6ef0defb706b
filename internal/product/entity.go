// AngelaMos | 2026
// entity.go

package product

import (
	"time"
)

type Product struct {
	ID                string     `db:"id"`
	Title             string     `db:"title"`
	Description       *string    `db:"description"`
	Price             *float64   `db:"price"`
	Category          string     `db:"category"`
	Subcategory       *string    `db:"subcategory"`
	Condition         string     `db:"condition"`
	ProductType       string     `db:"product_type"`
	Location          string     `db:"location"`
	Latitude          *float64   `db:"latitude"`
	Longitude         *float64   `db:"longitude"`
	ImageURLs         *string    `db:"image_urls"`
	MainImageURL      *string    `db:"main_image_url"`
	Status            string     `db:"status"`
	IsFeatured        bool       `db:"is_featured"`
	SellerID          string     `db:"seller_id"`
	ViewsCount        int        `db:"views_count"`
	FavoritesCount    int        `db:"favorites_count"`
	InquiriesCount    int        `db:"inquiries_count"`
	Tags              *string    `db:"tags"`
	Brand             *string    `db:"brand"`
	Model             *string    `db:"model"`
	ShippingAvailable bool       `db:"shipping_available"`
	ShippingCost      *float64   `db:"shipping_cost"`
	LocalPickup       bool       `db:"local_pickup"`
	SoldAt            *time.Time `db:"sold_at"`
	ExpiresAt         *time.Time `db:"expires_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusSold     = "sold"
	StatusDeleted  = "deleted"
)

const (
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

const (
	TypeFree       = "free"
	TypeSecondHand = "second_hand"
	TypeNew        = "new"
)

// ProductTypes lists every product_type value; rollups report all of
// them even when zero.
var ProductTypes = []string{TypeFree, TypeSecondHand, TypeNew}

// IsAvailable holds when an active, unsold listing's expiry extends
// past its creation; the window is anchored to created_at, not the
// clock.
func (p *Product) IsAvailable() bool {
	return p.Status == StatusActive &&
		p.SoldAt == nil &&
		(p.ExpiresAt == nil || p.ExpiresAt.After(p.CreatedAt))
}

// transitions maps each status to the states reachable from it. Sold
// and deleted are terminal.
var transitions = map[string][]string{
	StatusPending:  {StatusActive, StatusDeleted},
	StatusActive:   {StatusSold, StatusInactive, StatusDeleted},
	StatusInactive: {StatusActive, StatusDeleted},
	StatusSold:     {},
	StatusDeleted:  {},
}

func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
