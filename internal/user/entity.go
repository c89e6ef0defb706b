// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Username       *string    `db:"username"`
	PasswordHash   string     `db:"password_hash"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	DisplayName    *string    `db:"display_name"`
	AvatarURL      *string    `db:"avatar_url"`
	Bio            *string    `db:"bio"`
	Location       *string    `db:"location"`
	Latitude       *float64   `db:"latitude"`
	Longitude      *float64   `db:"longitude"`
	Role           string     `db:"role"`
	Status         string     `db:"status"`
	IsVerified     bool       `db:"is_verified"`
	ProductsCount  int        `db:"products_count"`
	FavoritesCount int        `db:"favorites_count"`
	ReviewsCount   int        `db:"reviews_count"`
	LastLoginAt    *time.Time `db:"last_login_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusPending   = "pending"
)

func (u *User) IsActive() bool {
	return u.Status == StatusActive && u.DeletedAt == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName prefers first/last name, falling back to display name, then
// username.
func (u *User) FullName() string {
	if u.FirstName != nil && u.LastName != nil {
		return *u.FirstName + " " + *u.LastName
	}
	if u.DisplayName != nil {
		return *u.DisplayName
	}
	if u.Username != nil {
		return *u.Username
	}
	return ""
}
