// AngelaMos | 2026
// dto_test.go

package user

import "testing"

func TestListUsersParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListUsersParams
		wantPage int
		wantSize int
	}{
		{"defaults", ListUsersParams{}, 1, 20},
		{"negative page", ListUsersParams{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", ListUsersParams{Page: 2, PageSize: 500}, 2, 100},
		{"within bounds", ListUsersParams{Page: 4, PageSize: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			if tt.in.Page != tt.wantPage || tt.in.PageSize != tt.wantSize {
				t.Errorf("got (%d, %d), want (%d, %d)",
					tt.in.Page, tt.in.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := ListUsersParams{Page: 3, PageSize: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestFullNameFallbacks(t *testing.T) {
	first, last := "Ada", "Lovelace"
	display := "ada_l"
	username := "ada"

	tests := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{FirstName: &first, LastName: &last, DisplayName: &display}, "Ada Lovelace"},
		{"display name", User{DisplayName: &display, Username: &username}, "ada_l"},
		{"username", User{Username: &username}, "ada"},
		{"nothing set", User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}
