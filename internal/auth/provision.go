// provision.go -- Create-or-update account linking and credential minting.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MGallo-Code/janus/internal/linkedin"
	"github.com/MGallo-Code/janus/internal/store"

	"golang.org/x/sync/errgroup"
)

// provision links the external identity onto its internal account and
// returns a freshly minted credential.
//
// The account upsert and the access-token write are independent and run
// concurrently; the credential is minted only after both succeed. Repeated
// provisioning for the same identity converges on the same composite key:
// the update path refreshes profile attributes, the create path fires only
// when the update reports the account does not exist.
func (h *AuthHandler) provision(r *http.Request, profile *linkedin.Profile, accessToken string) (string, error) {
	uid := linkedin.ProviderName + ":" + profile.ID
	acct := store.Account{
		UID:         uid,
		DisplayName: profile.DisplayName,
		PhotoURL:    profile.PhotoURL,
		Email:       profile.Email,
		// The provider asserted ownership of the address.
		EmailVerified: true,
	}

	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		err := h.Accounts.UpdateAccount(gctx, acct)
		if errors.Is(err, store.ErrAccountNotFound) {
			logInfo(r, "first login, creating account", "uid", uid)
			return h.Accounts.CreateAccount(gctx, acct)
		}
		return err
	})
	g.Go(func() error {
		return h.Tokens.SetAccessToken(gctx, uid, accessToken)
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("provisioning %s: %w", uid, err)
	}

	credential, err := h.Minter.Mint(uid)
	if err != nil {
		return "", fmt.Errorf("minting credential for %s: %w", uid, err)
	}
	return credential, nil
}
