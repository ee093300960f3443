// provision_test.go -- unit tests for account linking and credential minting.
package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGallo-Code/janus/internal/store"
	"github.com/MGallo-Code/janus/internal/testutil"
)

func provisionHandler() (AuthHandler, *testutil.MockAccountStore, *testutil.MockTokenStore, *testutil.MockMinter) {
	ms := testutil.NewMockAccountStore()
	ts := testutil.NewMockTokenStore()
	mm := &testutil.MockMinter{}
	return AuthHandler{
		Accounts: ms,
		Tokens:   ts,
		Minter:   mm,
		StateTTL: time.Hour,
	}, ms, ts, mm
}

func provisionRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/token", nil)
}

func TestProvision_FirstLoginCreatesAccount(t *testing.T) {
	h, ms, ts, _ := provisionHandler()

	cred, err := h.provision(provisionRequest(), testProfile(), "T")
	if err != nil {
		t.Fatalf("provision: unexpected error: %v", err)
	}
	if cred != "minted:linkedin:X" {
		t.Errorf("credential: expected minted:linkedin:X, got %q", cred)
	}

	// First login takes the update-then-create path.
	if ms.UpdateCalls != 1 || ms.CreateCalls != 1 {
		t.Errorf("expected 1 update and 1 create, got %d and %d", ms.UpdateCalls, ms.CreateCalls)
	}
	acct, ok := ms.Accounts["linkedin:X"]
	if !ok {
		t.Fatal("account linkedin:X not created")
	}
	if !acct.EmailVerified {
		t.Error("EmailVerified: expected true")
	}
	if ts.Tokens["linkedin:X"] != "T" {
		t.Errorf("access token: expected T, got %q", ts.Tokens["linkedin:X"])
	}
}

// TestProvision_RepeatLoginUpdates verifies a known identity refreshes its
// profile attributes without a second create.
func TestProvision_RepeatLoginUpdates(t *testing.T) {
	h, ms, ts, _ := provisionHandler()
	ms.Accounts["linkedin:X"] = &store.Account{
		UID:         "linkedin:X",
		DisplayName: "Old Name",
		Email:       "old@example.com",
	}

	if _, err := h.provision(provisionRequest(), testProfile(), "T2"); err != nil {
		t.Fatalf("provision: unexpected error: %v", err)
	}

	if ms.CreateCalls != 0 {
		t.Errorf("expected no create for a known account, got %d", ms.CreateCalls)
	}
	if got := ms.Accounts["linkedin:X"].DisplayName; got != "Stephen Anderson" {
		t.Errorf("DisplayName: expected refresh, got %q", got)
	}
	if ts.Tokens["linkedin:X"] != "T2" {
		t.Errorf("access token: expected overwrite with T2, got %q", ts.Tokens["linkedin:X"])
	}
}

func TestProvision_Idempotent(t *testing.T) {
	h, ms, _, mm := provisionHandler()

	for i := 0; i < 3; i++ {
		if _, err := h.provision(provisionRequest(), testProfile(), "T"); err != nil {
			t.Fatalf("provision run %d: unexpected error: %v", i, err)
		}
	}

	if len(ms.Accounts) != 1 {
		t.Errorf("expected one account after repeated logins, got %d", len(ms.Accounts))
	}
	if ms.CreateCalls != 1 {
		t.Errorf("expected exactly one create, got %d", ms.CreateCalls)
	}
	if len(mm.Minted) != 3 {
		t.Errorf("expected a fresh credential per login, got %d", len(mm.Minted))
	}
}

// TestProvision_UpdateFailureIsTerminal verifies a store failure other than
// not-found does not fall through to create.
func TestProvision_UpdateFailureIsTerminal(t *testing.T) {
	h, ms, _, mm := provisionHandler()
	ms.UpdateErr = errors.New("connection refused")

	if _, err := h.provision(provisionRequest(), testProfile(), "T"); err == nil {
		t.Fatal("provision: expected error when the account write fails")
	}
	if ms.CreateCalls != 0 {
		t.Errorf("expected no create after an update failure, got %d", ms.CreateCalls)
	}
	if len(mm.Minted) != 0 {
		t.Error("no credential may be minted after a failed account write")
	}
}

func TestProvision_TokenWriteFailureIsTerminal(t *testing.T) {
	h, _, ts, mm := provisionHandler()
	ts.SetErr = errors.New("redis down")

	if _, err := h.provision(provisionRequest(), testProfile(), "T"); err == nil {
		t.Fatal("provision: expected error when the token write fails")
	}
	if len(mm.Minted) != 0 {
		t.Error("no credential may be minted after a failed token write")
	}
}

func TestProvision_MintFailure(t *testing.T) {
	h, _, _, mm := provisionHandler()
	mm.MintErr = errors.New("bad key")

	if _, err := h.provision(provisionRequest(), testProfile(), "T"); err == nil {
		t.Fatal("provision: expected error when minting fails")
	}
}
