// stores.go
//
// Shared mock implementations of auth.AccountStore, auth.TokenStore, and
// auth.Minter. Imported by test files across packages to avoid duplicate
// mock definitions.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/MGallo-Code/janus/internal/store"
)

// MockAccountStore implements auth.AccountStore for tests.
// Always stateful -- Accounts is a map keyed by composite UID, like a real
// store. Use *Err fields to inject errors for specific operations; call
// counters record which path the provisioner took.
type MockAccountStore struct {
	// Error injection -- zero value means no error
	CreateErr error
	UpdateErr error
	GetErr    error

	Accounts map[string]*store.Account

	CreateCalls int
	UpdateCalls int

	mu sync.Mutex
}

// NewMockAccountStore returns a MockAccountStore seeded with the given
// accounts, indexed by UID.
func NewMockAccountStore(accounts ...*store.Account) *MockAccountStore {
	ms := &MockAccountStore{Accounts: make(map[string]*store.Account)}
	for _, a := range accounts {
		ms.Accounts[a.UID] = a
	}
	return ms
}

func (m *MockAccountStore) CreateAccount(_ context.Context, acct store.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.Accounts[acct.UID]; ok {
		return errors.New("account already exists")
	}
	m.Accounts[acct.UID] = &acct
	return nil
}

func (m *MockAccountStore) UpdateAccount(_ context.Context, acct store.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Accounts[acct.UID]; !ok {
		return store.ErrAccountNotFound
	}
	m.Accounts[acct.UID] = &acct
	return nil
}

func (m *MockAccountStore) GetAccountByUID(_ context.Context, uid string) (*store.Account, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[uid]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return a, nil
}

// MockTokenStore implements auth.TokenStore for tests.
// Tokens is a map keyed by composite UID; writes overwrite, like the real
// store.
type MockTokenStore struct {
	SetErr error

	Tokens map[string]string

	mu sync.Mutex
}

// NewMockTokenStore returns an empty MockTokenStore ready for use.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{Tokens: make(map[string]string)}
}

func (m *MockTokenStore) SetAccessToken(_ context.Context, uid, accessToken string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	m.Tokens[uid] = accessToken
	m.mu.Unlock()
	return nil
}

// MockMinter implements auth.Minter for tests. Mint returns "minted:<uid>"
// so assertions can check which key the credential was bound to.
type MockMinter struct {
	MintErr error

	Minted []string

	mu sync.Mutex
}

func (m *MockMinter) Mint(uid string) (string, error) {
	if m.MintErr != nil {
		return "", m.MintErr
	}
	m.mu.Lock()
	m.Minted = append(m.Minted, uid)
	m.mu.Unlock()
	return "minted:" + uid, nil
}
