// Package store handles all database and cache interactions.
//
// postgres.go -- pgxpool connection setup and account queries.
// One connection pool is created at startup and shared across handlers.
// All queries use parameterized statements (no string concatenation).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the durable account store backed by Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates and pings a connection pool, returning a
// ready-to-use store. Call once at startup; safe for concurrent use.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool}, nil
}

// Close shuts down the connection pool. Call via defer after creation.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// CreateAccount inserts a fresh account row keyed by the composite UID.
func (s *PostgresStore) CreateAccount(ctx context.Context, acct Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (uid, display_name, photo_url, email, email_verified)
		 VALUES ($1, $2, $3, $4, $5)`,
		acct.UID, acct.DisplayName, acct.PhotoURL, acct.Email, acct.EmailVerified)
	if err != nil {
		return fmt.Errorf("creating account %s: %w", acct.UID, err)
	}
	return nil
}

// UpdateAccount refreshes the profile attributes of an existing account.
// Returns ErrAccountNotFound when no row matches the UID, so the caller can
// fall back to CreateAccount.
func (s *PostgresStore) UpdateAccount(ctx context.Context, acct Account) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE accounts
		 SET display_name = $2, photo_url = $3, email = $4, email_verified = $5, updated_at = now()
		 WHERE uid = $1`,
		acct.UID, acct.DisplayName, acct.PhotoURL, acct.Email, acct.EmailVerified)
	if err != nil {
		return fmt.Errorf("updating account %s: %w", acct.UID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GetAccountByUID fetches one account by its composite key.
// Returns ErrAccountNotFound when no row exists.
func (s *PostgresStore) GetAccountByUID(ctx context.Context, uid string) (*Account, error) {
	var acct Account
	err := s.pool.QueryRow(ctx,
		`SELECT uid, display_name, photo_url, email, email_verified, created_at, updated_at
		 FROM accounts WHERE uid = $1`,
		uid,
	).Scan(&acct.UID, &acct.DisplayName, &acct.PhotoURL, &acct.Email,
		&acct.EmailVerified, &acct.CreatedAt, &acct.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching account %s: %w", uid, err)
	}
	return &acct, nil
}
