// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/purpleshop/api/internal/auth"
	"github.com/purpleshop/api/internal/core"
)

type fakeRepo struct {
	Repository

	users   map[string]*User
	byEmail map[string]*User

	updated       *User
	statusUserID  string
	statusValue   string
	createdUser   *User
	lastLoginUser string
}

func newFakeRepo(users ...*User) *fakeRepo {
	f := &fakeRepo{
		users:   make(map[string]*User),
		byEmail: make(map[string]*User),
	}
	for _, u := range users {
		f.users[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.createdUser = u
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	f.updated = u
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.statusUserID = id
	f.statusValue = status
	return nil
}

func (f *fakeRepo) TouchLastLogin(_ context.Context, id string) error {
	f.lastLoginUser = id
	return nil
}

func strPtr(s string) *string { return &s }

func activeUser(id string) *User {
	return &User{
		ID:        id,
		Email:     id + "@example.com",
		Username:  strPtr("seller_" + id),
		Role:      RoleUser,
		Status:    StatusActive,
		CreatedAt: time.Now(),
	}
}

func TestGetPublicProfileHidesNonActive(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{
			name:   "active",
			mutate: func(u *User) {},
		},
		{
			name:    "inactive",
			mutate:  func(u *User) { u.Status = StatusInactive },
			wantErr: true,
		},
		{
			name:    "suspended",
			mutate:  func(u *User) { u.Status = StatusSuspended },
			wantErr: true,
		},
		{
			name: "soft deleted",
			mutate: func(u *User) {
				now := time.Now()
				u.DeletedAt = &now
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := activeUser("u1")
			tt.mutate(u)
			svc := NewService(nil, newFakeRepo(u))

			profile, err := svc.GetPublicProfile(context.Background(), "u1")
			if tt.wantErr {
				if !errors.Is(err, core.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ID != "u1" {
				t.Errorf("ID = %q, want u1", profile.ID)
			}
		})
	}
}

func TestGetPublicProfileOmitsPrivateFields(t *testing.T) {
	u := activeUser("u1")
	u.PasswordHash = "hash"
	svc := NewService(nil, newFakeRepo(u))

	profile, err := svc.GetPublicProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username == nil || *profile.Username != "seller_u1" {
		t.Errorf("Username not carried over")
	}
}

func TestUpdateMePartial(t *testing.T) {
	u := activeUser("u1")
	u.Bio = strPtr("original bio")
	u.Location = strPtr("Helsinki")
	repo := newFakeRepo(u)
	svc := NewService(nil, repo)

	updated, err := svc.UpdateMe(context.Background(), "u1", UpdateUserRequest{
		DisplayName: strPtr("New Name"),
		Bio:         strPtr("new bio"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DisplayName == nil || *updated.DisplayName != "New Name" {
		t.Errorf("DisplayName not applied")
	}
	if updated.Bio == nil || *updated.Bio != "new bio" {
		t.Errorf("Bio not applied")
	}
	if updated.Location == nil || *updated.Location != "Helsinki" {
		t.Errorf("Location changed by omitted field")
	}
	if repo.updated == nil {
		t.Fatal("Update was not called")
	}
}

func TestUpdateMeRequiresSession(t *testing.T) {
	svc := NewService(nil, newFakeRepo())

	if _, err := svc.UpdateMe(context.Background(), "", UpdateUserRequest{}); !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.GetMe(context.Background(), ""); !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeactivateMe(context.Background(), ""); !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeactivateMeSetsInactive(t *testing.T) {
	repo := newFakeRepo(activeUser("u1"))
	svc := NewService(nil, repo)

	if err := svc.DeactivateMe(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.statusUserID != "u1" || repo.statusValue != StatusInactive {
		t.Errorf("UpdateStatus(%q, %q), want (u1, %s)",
			repo.statusUserID, repo.statusValue, StatusInactive)
	}
}

func TestCreateNormalizesAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	info, err := svc.Create(context.Background(), auth.CreateUserParams{
		Email:        "New.User@Example.COM",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.createdUser.Email != "new.user@example.com" {
		t.Errorf("email = %q, want lowercased", repo.createdUser.Email)
	}
	if repo.createdUser.Role != RoleUser {
		t.Errorf("role = %q, want %s", repo.createdUser.Role, RoleUser)
	}
	if repo.createdUser.Status != StatusActive {
		t.Errorf("status = %q, want %s", repo.createdUser.Status, StatusActive)
	}
	if repo.createdUser.ID == "" {
		t.Error("ID not generated")
	}
	if info.Email != "new.user@example.com" {
		t.Errorf("info email = %q", info.Email)
	}
}

func TestGetByEmailLowercases(t *testing.T) {
	u := activeUser("u1")
	u.Email = "seller@example.com"
	repo := newFakeRepo(u)
	svc := NewService(nil, repo)

	info, err := svc.GetByEmail(context.Background(), "Seller@Example.Com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "u1" {
		t.Errorf("ID = %q, want u1", info.ID)
	}
}

func TestToUserInfoMapsDisplayName(t *testing.T) {
	u := activeUser("u1")
	u.FirstName = strPtr("Ada")
	u.LastName = strPtr("Lovelace")

	info := toUserInfo(u)
	if info.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want Ada Lovelace", info.DisplayName)
	}
}
