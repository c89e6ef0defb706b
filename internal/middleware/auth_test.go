// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/purpleshop/api/internal/core"
)

type fakeResolver struct {
	session *Session
	err     error
}

func (f *fakeResolver) ResolveSession(ctx context.Context, token string) (*Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"wrong scheme", "Basic dXNlcjpwdw==", ""},
		{"scheme only", "Bearer", ""},
		{"trailing space trimmed", "Bearer abc ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	resolver := &fakeResolver{session: &Session{UserID: "u1"}}
	handler := Authenticator(resolver)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run without a token")
		},
	))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticatorRejectsInvalidToken(t *testing.T) {
	resolver := &fakeResolver{err: core.ErrTokenInvalid}
	handler := Authenticator(resolver)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run with an invalid token")
		},
	))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticatorAttachesSession(t *testing.T) {
	resolver := &fakeResolver{session: &Session{
		UserID: "u1", Email: "a@b.c", Role: "admin",
	}}

	var gotID, gotRole string
	handler := Authenticator(resolver)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotID = GetUserID(r.Context())
			gotRole = GetUserRole(r.Context())
		},
	))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if gotID != "u1" || gotRole != "admin" {
		t.Errorf("session in context = (%q, %q), want (u1, admin)", gotID, gotRole)
	}
}

func TestOptionalAuthDegradesToAnonymous(t *testing.T) {
	resolver := &fakeResolver{err: core.ErrTokenExpired}

	var called bool
	var gotID string
	handler := OptionalAuth(resolver)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotID = GetUserID(r.Context())
		},
	))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if !called {
		t.Fatal("handler must run for anonymous requests")
	}
	if gotID != "" {
		t.Errorf("user id = %q, want empty for failed optional auth", gotID)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin passes", "admin", http.StatusOK},
		{"user forbidden", "user", http.StatusForbidden},
		{"anonymous unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				},
			))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				r = r.WithContext(withSession(r.Context(), &Session{
					UserID: "u1", Role: tt.role,
				}))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := withSession(context.Background(), &Session{UserID: "u1", Role: "user"})
	admin := withSession(context.Background(), &Session{UserID: "u9", Role: "admin"})
	stranger := withSession(context.Background(), &Session{UserID: "u2", Role: "user"})

	if !IsOwnerOrAdmin(owner, "u1") {
		t.Error("owner must pass")
	}
	if !IsOwnerOrAdmin(admin, "u1") {
		t.Error("admin must pass")
	}
	if IsOwnerOrAdmin(stranger, "u1") {
		t.Error("stranger must not pass")
	}
	if IsOwnerOrAdmin(context.Background(), "u1") {
		t.Error("anonymous must not pass")
	}
}
