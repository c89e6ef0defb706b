// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/purpleshop/api/internal/config"
	"github.com/purpleshop/api/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "0123456789abcdef0123456789abcdef",
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "purpleshop-test",
		Audience:          "purpleshop-api",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	in := AccessTokenClaims{
		UserID: "u1",
		Email:  "alice@example.com",
		Role:   "user",
	}

	token, expiresAt, err := mgr.CreateAccessToken(in)
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 14*time.Minute {
		t.Errorf("expiry in %v, want close to 15m", remaining)
	}

	out, err := mgr.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if *out != in {
		t.Errorf("claims = %+v, want %+v", out, in)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	mgr1, _ := NewJWTManager(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "ffffffffffffffffffffffffffffffff"
	mgr2, _ := NewJWTManager(otherCfg)

	token, _, err := mgr1.CreateAccessToken(AccessTokenClaims{
		UserID: "u1", Email: "a@b.c", Role: "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	_, err = mgr2.VerifyAccessToken(token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken(wrong secret) error = %v, want token invalid", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	mgr, _ := NewJWTManager(cfg)

	token, _, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID: "u1", Email: "a@b.c", Role: "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	_, err = mgr.VerifyAccessToken(token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("VerifyAccessToken(expired) error = %v, want token expired", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr, _ := NewJWTManager(testJWTConfig())

	_, err := mgr.VerifyAccessToken("not.a.token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken(garbage) error = %v, want token invalid", err)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	otherCfg := testJWTConfig()
	otherCfg.Issuer = "someone-else"
	mgr1, _ := NewJWTManager(otherCfg)
	mgr2, _ := NewJWTManager(testJWTConfig())

	token, _, err := mgr1.CreateAccessToken(AccessTokenClaims{
		UserID: "u1", Email: "a@b.c", Role: "user",
	})
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	_, err = mgr2.VerifyAccessToken(token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken(wrong issuer) error = %v, want token invalid", err)
	}
}
