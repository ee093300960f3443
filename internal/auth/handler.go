// handler.go -- Dependencies and interfaces for the sign-in HTTP handlers.
package auth

import (
	"context"
	"time"

	"github.com/MGallo-Code/janus/internal/linkedin"
	"github.com/MGallo-Code/janus/internal/store"
)

// Provider is the external identity provider the flow authenticates against.
// Satisfied by *linkedin.Client — defined here (at consumer) per Go convention.
type Provider interface {
	// AuthCodeURL returns the consent page URL with state embedded.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a bearer access token.
	Exchange(ctx context.Context, code string) (accessToken string, err error)

	// Aggregate fetches and normalizes the member's profile using the token.
	Aggregate(ctx context.Context, accessToken string) (*linkedin.Profile, error)
}

// AccountStore defines the account operations the provisioner needs.
// Satisfied by *store.PostgresStore — defined here (at consumer) per Go convention.
type AccountStore interface {
	// CreateAccount inserts a fresh account keyed by the composite UID.
	CreateAccount(ctx context.Context, acct store.Account) error

	// UpdateAccount refreshes profile attributes of an existing account.
	// Returns store.ErrAccountNotFound when no row matches.
	UpdateAccount(ctx context.Context, acct store.Account) error

	// GetAccountByUID fetches one account by its composite key.
	GetAccountByUID(ctx context.Context, uid string) (*store.Account, error)
}

// TokenStore persists the raw provider access token per account.
// Satisfied by *store.RedisStore — defined here (at consumer) per Go convention.
type TokenStore interface {
	// SetAccessToken overwrites the token record for the account.
	SetAccessToken(ctx context.Context, uid, accessToken string) error
}

// Minter signs application credentials bound to a composite account key.
// Satisfied by *token.Minter.
type Minter interface {
	Mint(uid string) (string, error)
}

// AuthHandler holds dependencies for the redirect and callback handlers.
type AuthHandler struct {
	Provider Provider
	Accounts AccountStore
	Tokens   TokenStore
	Minter   Minter

	// StateTTL bounds how long the state cookie stays valid.
	StateTTL time.Duration
}
