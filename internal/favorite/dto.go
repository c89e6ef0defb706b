// AngelaMos | 2026
// dto.go

package favorite

import (
	"time"

	"github.com/purpleshop/api/internal/product"
)

type FavoriteResponse struct {
	ProductID string    `json:"product_id"`
	Favorited bool      `json:"favorited"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// FavoritedProduct is a catalog entry as it appears in a user's
// favorites list.
type FavoritedProduct struct {
	product.ProductResponse
	FavoritedAt time.Time `json:"favorited_at"`
}

type FavoriteListResponse struct {
	Favorites []FavoritedProduct `json:"favorites"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Size      int                `json:"size"`
	Pages     int                `json:"pages"`
}
