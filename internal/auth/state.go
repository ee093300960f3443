// state.go -- CSRF state token generation, cookie management, verification.
//
// The state value is round-tripped through the provider: issued on redirect,
// stored in a short-lived HttpOnly cookie, and checked against the ?state
// query parameter when the provider calls back.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
)

const stateCookieName = "__Host-oauth-state"

// ErrMissingState is returned when the callback arrives with no state
// cookie -- it expired or was never set, usually because the user took too
// long on the consent screen.
var ErrMissingState = errors.New("state cookie not set or expired")

// ErrStateMismatch is returned when the cookie is present but does not
// equal the state the provider sent back.
var ErrStateMismatch = errors.New("state parameter does not match cookie")

// issueState returns the state bound to this authorization attempt.
// An existing cookie value is reused so a reload of the redirect endpoint
// doesn't invalidate a consent screen already open in another tab;
// otherwise 20 random bytes are generated and hex-encoded.
func issueState(r *http.Request) (string, error) {
	if c, err := r.Cookie(stateCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	var b [20]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generating state with rand: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

// verifyState checks the returned ?state parameter against the cookie.
// Absence and inequality are distinct failures; both abort the flow.
func verifyState(r *http.Request, returned string) error {
	c, err := r.Cookie(stateCookieName)
	if err != nil || c.Value == "" {
		return ErrMissingState
	}
	// Constant-time comparison prevents timing oracle on state value.
	if subtle.ConstantTimeCompare([]byte(c.Value), []byte(returned)) != 1 {
		return ErrStateMismatch
	}
	return nil
}

// setStateCookie stores the state in a short-lived HttpOnly cookie.
func (h *AuthHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.StateTTL.Seconds()),
	})
}

// clearStateCookie expires the state cookie immediately. The state is bound
// to a single exchange attempt; it is discarded whether or not the exchange
// succeeds.
func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
