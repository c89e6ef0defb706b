// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/purpleshop/api/internal/core"
	"github.com/purpleshop/api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrAccountNotVerified = errors.New("account not verified")
)

// UserInfo is the slice of the user record the auth flow needs.
type UserInfo struct {
	ID           string
	Email        string
	Username     *string
	DisplayName  string
	PasswordHash string
	Role         string
	Status       string
	IsVerified   bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
}

func (u *UserInfo) IsActive() bool {
	return u.Status == "active" && u.DeletedAt == nil
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Username     *string
	FirstName    *string
	LastName     *string
	Location     *string
}

// UserProvider decouples auth from the user package; user.Service
// implements it.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(ctx context.Context, params CreateUserParams) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID string) error
}

type Service struct {
	provider UserProvider
	jwt      *JWTManager
}

func NewService(provider UserProvider, jwt *JWTManager) *Service {
	return &Service{provider: provider, jwt: jwt}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	exists, err := s.provider.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	if req.Username != nil {
		taken, takenErr := s.provider.UsernameExists(ctx, *req.Username)
		if takenErr != nil {
			return nil, fmt.Errorf("check username: %w", takenErr)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.provider.Create(ctx, CreateUserParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
	})
	if err != nil {
		// unique constraints backstop concurrent duplicate registration
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.provider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.provider.UpdatePassword(ctx, user.ID, newHash)
	}

	switch {
	case user.Status == "suspended":
		return nil, ErrAccountSuspended
	case !user.IsVerified:
		return nil, ErrAccountNotVerified
	case !user.IsActive():
		return nil, fmt.Errorf("login: %w", core.ErrAccountInactive)
	}

	//nolint:errcheck // best-effort last-login stamp
	_ = s.provider.TouchLastLogin(ctx, user.ID)

	return s.createAuthResponse(user)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	email string,
) (*UserResponse, error) {
	user, err := s.provider.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ResolveSession validates the bearer credential, loads the subject user
// and requires an active account. Implements middleware.SessionResolver.
func (s *Service) ResolveSession(
	ctx context.Context,
	token string,
) (*middleware.Session, error) {
	claims, err := s.jwt.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve session: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if !user.IsActive() {
		return nil, fmt.Errorf("resolve session: %w", core.ErrAccountInactive)
	}

	return &middleware.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	accessToken, expiresAt, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		User: toUserResponse(user),
		AccessToken: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
			ExpiresAt:   expiresAt,
		},
	}, nil
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}

var _ middleware.SessionResolver = (*Service)(nil)
