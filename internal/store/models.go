// models.go -- Shared domain types for the store package.
// Used by both Postgres (durable accounts) and Redis (access-token records).
package store

import (
	"errors"
	"time"
)

// ErrAccountNotFound is returned by UpdateAccount and GetAccountByUID when
// no row exists for the composite key. The provisioner uses errors.Is on it
// to take the create path on first login.
var ErrAccountNotFound = errors.New("account not found")

// ErrTokenNotFound is returned by GetAccessToken when no token record
// exists for the composite key.
var ErrTokenNotFound = errors.New("access token not found")

// Account represents a row in the accounts table.
// UID is the composite key "<provider>:<externalID>" -- deterministic and
// stable across logins, which is what makes the upsert idempotent.
type Account struct {
	UID           string
	DisplayName   string
	PhotoURL      string
	Email         string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
