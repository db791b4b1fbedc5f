package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenExpiresAfterTTL(t *testing.T) {
	tokens, err := NewTokens("secret", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	raw, expiresAt, err := tokens.Issue(User{ID: "user-1", Email: "a@example.com", Name: "A"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.Equal(issued.Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected 30 day expiry, got %v", expiresAt)
	}

	tokens.now = func() time.Time { return issued.Add(29 * 24 * time.Hour) }
	if _, err := tokens.Parse(raw); err != nil {
		t.Fatalf("expected valid token within window, got %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(31 * 24 * time.Hour) }
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	issuer, _ := NewTokens("secret-a", time.Hour)
	verifier, _ := NewTokens("secret-b", time.Hour)

	raw, _, err := issuer.Issue(User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsUnsignedAndMalformed(t *testing.T) {
	tokens, _ := NewTokens("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for _, candidate := range []string{raw, "", "not.a.jwt"} {
		if _, err := tokens.Parse(candidate); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", candidate, err)
		}
	}
}

func TestTokenRequiresExpiry(t *testing.T) {
	tokens, _ := NewTokens("secret", time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without exp, got %v", err)
	}
}
