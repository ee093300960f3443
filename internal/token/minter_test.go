// minter_test.go -- unit tests for credential minting.
package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewMinter_RejectsShortKey(t *testing.T) {
	if _, err := NewMinter([]byte("short"), "janus", time.Hour); err == nil {
		t.Error("NewMinter: expected error for short key")
	}
}

func TestNewMinter_RejectsEmptyIssuer(t *testing.T) {
	if _, err := NewMinter(testKey, "", time.Hour); err == nil {
		t.Error("NewMinter: expected error for empty issuer")
	}
}

func TestNewMinter_RejectsNonPositiveTTL(t *testing.T) {
	if _, err := NewMinter(testKey, "janus", 0); err == nil {
		t.Error("NewMinter: expected error for zero ttl")
	}
}

// TestMint_Claims parses a minted credential back with the signing key and
// checks the registered claims.
func TestMint_Claims(t *testing.T) {
	m, err := NewMinter(testKey, "janus", time.Hour)
	if err != nil {
		t.Fatalf("NewMinter: unexpected error: %v", err)
	}

	signed, err := m.Mint("linkedin:X")
	if err != nil {
		t.Fatalf("Mint: unexpected error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (any, error) {
		return testKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse minted credential: %v", err)
	}
	if !tok.Valid {
		t.Fatal("minted credential failed validation")
	}

	if claims.Subject != "linkedin:X" {
		t.Errorf("sub: expected linkedin:X, got %q", claims.Subject)
	}
	if claims.Issuer != "janus" {
		t.Errorf("iss: expected janus, got %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("jti: expected a value")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("exp and iat must be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("lifetime: expected 1h, got %v", got)
	}
}

// TestMint_UniqueJTI verifies repeated logins stay distinguishable.
func TestMint_UniqueJTI(t *testing.T) {
	m, err := NewMinter(testKey, "janus", time.Hour)
	if err != nil {
		t.Fatalf("NewMinter: unexpected error: %v", err)
	}

	parse := func(signed string) string {
		claims := &jwt.RegisteredClaims{}
		if _, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (any, error) {
			return testKey, nil
		}); err != nil {
			t.Fatalf("parse: %v", err)
		}
		return claims.ID
	}

	a, _ := m.Mint("linkedin:X")
	b, _ := m.Mint("linkedin:X")
	if parse(a) == parse(b) {
		t.Error("Mint: expected distinct jti per credential")
	}
}

// TestMint_WrongKeyFailsVerification verifies the signature actually binds
// the credential to the key.
func TestMint_WrongKeyFailsVerification(t *testing.T) {
	m, err := NewMinter(testKey, "janus", time.Hour)
	if err != nil {
		t.Fatalf("NewMinter: unexpected error: %v", err)
	}

	signed, err := m.Mint("linkedin:X")
	if err != nil {
		t.Fatalf("Mint: unexpected error: %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		return []byte("ffffffffffffffffffffffffffffffff"), nil
	})
	if err == nil {
		t.Error("expected verification failure with the wrong key")
	}
}
