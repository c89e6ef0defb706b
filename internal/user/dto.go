// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	Username    *string  `json:"username,omitempty"     validate:"omitempty,min=3,max=50"`
	FirstName   *string  `json:"first_name,omitempty"   validate:"omitempty,max=100"`
	LastName    *string  `json:"last_name,omitempty"    validate:"omitempty,max=100"`
	DisplayName *string  `json:"display_name,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string  `json:"avatar_url,omitempty"   validate:"omitempty,url,max=500"`
	Bio         *string  `json:"bio,omitempty"          validate:"omitempty,max=2000"`
	Location    *string  `json:"location,omitempty"     validate:"omitempty,max=100"`
	Latitude    *float64 `json:"latitude,omitempty"     validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty"    validate:"omitempty,gte=-180,lte=180"`
}

// ProfileResponse is the owner's view of their own account.
type ProfileResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       *string    `json:"username,omitempty"`
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	DisplayName    *string    `json:"display_name,omitempty"`
	FullName       string     `json:"full_name,omitempty"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	Bio            *string    `json:"bio,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	IsVerified     bool       `json:"is_verified"`
	ProductsCount  int        `json:"products_count"`
	FavoritesCount int        `json:"favorites_count"`
	ReviewsCount   int        `json:"reviews_count"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PublicProfileResponse strips credentials, contact details and
// account internals from the profile.
type PublicProfileResponse struct {
	ID             string    `json:"id"`
	Username       *string   `json:"username,omitempty"`
	DisplayName    *string   `json:"display_name,omitempty"`
	FullName       string    `json:"full_name,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Location       *string   `json:"location,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	ProductsCount  int       `json:"products_count"`
	FavoritesCount int       `json:"favorites_count"`
	ReviewsCount   int       `json:"reviews_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		DisplayName:    u.DisplayName,
		FullName:       u.FullName(),
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		Location:       u.Location,
		Latitude:       u.Latitude,
		Longitude:      u.Longitude,
		Role:           u.Role,
		Status:         u.Status,
		IsVerified:     u.IsVerified,
		ProductsCount:  u.ProductsCount,
		FavoritesCount: u.FavoritesCount,
		ReviewsCount:   u.ReviewsCount,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToPublicProfile(u *User) PublicProfileResponse {
	return PublicProfileResponse{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		FullName:       u.FullName(),
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		Location:       u.Location,
		IsVerified:     u.IsVerified,
		ProductsCount:  u.ProductsCount,
		FavoritesCount: u.FavoritesCount,
		ReviewsCount:   u.ReviewsCount,
		CreatedAt:      u.CreatedAt,
	}
}

func ToPublicProfileList(users []User) []PublicProfileResponse {
	responses := make([]PublicProfileResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToPublicProfile(&users[i]))
	}
	return responses
}
