// Package token mints the application credentials handed back to the
// browser after a successful sign-in. Credentials are HS256 JWTs bound to
// the composite account key.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// minKeyBytes is the minimum HMAC key length accepted; shorter keys make
// HS256 forgeable in practice.
const minKeyBytes = 32

// Minter signs short-lived credentials for provisioned accounts.
// Safe for concurrent use.
type Minter struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

// NewMinter validates the signing key and returns a ready Minter.
func NewMinter(key []byte, issuer string, ttl time.Duration) (*Minter, error) {
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", minKeyBytes, len(key))
	}
	if issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}
	return &Minter{key: key, issuer: issuer, ttl: ttl}, nil
}

// Mint returns a signed credential with sub bound to uid. Each credential
// carries a random jti so repeated logins are distinguishable downstream.
func (m *Minter) Mint(uid string) (string, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating jti: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		ID:        jti.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("signing credential: %w", err)
	}
	return signed, nil
}
