package auth

import (
	"errors"
	"testing"
	"time"

	"lempek/internal/domain"
	"lempek/internal/domain/models"
)

func testTokens() *Tokens {
	return NewTokens("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	principal := &models.Principal{
		UserID:   "user-1",
		Login:    "alice",
		Username: "Alice",
		Admin:    true,
	}

	signed, err := tokens.SignAccess(principal)
	if err != nil {
		t.Fatalf("SignAccess = %v", err)
	}

	got, err := tokens.VerifyAccess(signed)
	if err != nil {
		t.Fatalf("VerifyAccess = %v", err)
	}
	if *got != *principal {
		t.Errorf("principal = %+v, want %+v", got, principal)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	expires := time.Now().Add(24 * time.Hour)

	signed, err := tokens.SignRefresh("user-1", "token-abc", expires)
	if err != nil {
		t.Fatalf("SignRefresh = %v", err)
	}

	claims, err := tokens.VerifyRefresh(signed)
	if err != nil {
		t.Fatalf("VerifyRefresh = %v", err)
	}
	if claims.UserID != "user-1" || claims.TokenID != "token-abc" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := testTokens().SignAccess(&models.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	other := NewTokens("different-secret", 15*time.Minute, 24*time.Hour)
	if _, err := other.VerifyAccess(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("VerifyAccess with wrong secret = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute, 24*time.Hour)

	signed, err := tokens.SignAccess(&models.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.VerifyAccess(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("VerifyAccess on expired token = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := testTokens().VerifyAccess("not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("VerifyAccess(garbage) = %v, want ErrUnauthorized", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword = %v", err)
	}

	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}
