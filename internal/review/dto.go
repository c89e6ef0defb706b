// AngelaMos | 2026
// dto.go

package review

import (
	"time"
)

type CreateReviewRequest struct {
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Title      *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
	ReviewType *string `json:"review_type,omitempty" validate:"omitempty,oneof=product user"`
	IsPublic   *bool   `json:"is_public,omitempty"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Title        *string   `json:"title,omitempty"`
	Comment      *string   `json:"comment,omitempty"`
	ReviewType   string    `json:"review_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int              `json:"total"`
	AverageRating float64          `json:"average_rating"`
}
