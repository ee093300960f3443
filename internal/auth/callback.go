// callback.go -- The post-consent callback: code exchange, profile
// aggregation, account provisioning, credential minting.
package auth

import (
	"errors"
	"net/http"

	"github.com/MGallo-Code/janus/internal/linkedin"
)

// Callback handles GET /token -- the provider redirects here with ?code and
// ?state after consent. The pipeline runs strictly forward:
//
//	verify state -> exchange code -> aggregate profile -> provision -> mint
//
// Any failure aborts the remaining steps; nothing is retried and no partial
// credential is ever issued. The result is JSONP-wrapped and always carries
// HTTP 200 -- errors travel in the payload (see responses.go).
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cb := callbackName(r)

	// State is checked before any outbound call is made.
	if err := verifyState(r, r.URL.Query().Get("state")); err != nil {
		if errors.Is(err, ErrMissingState) {
			logWarn(r, "callback: state cookie missing")
			writeJSONPError(w, cb, "state cookie not set or expired, maybe you took too long to authorize, please try again")
			return
		}
		logWarn(r, "callback: state mismatch")
		clearStateCookie(w)
		writeJSONPError(w, cb, "invalid oauth state")
		return
	}
	// The state is single-use; discard it whether or not the exchange succeeds.
	clearStateCookie(w)

	accessToken, err := h.Provider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		logWarn(r, "callback: code exchange failed", "error", err)
		writeJSONPError(w, cb, "authorization code exchange failed")
		return
	}

	profile, err := h.Provider.Aggregate(r.Context(), accessToken)
	if err != nil {
		if errors.Is(err, linkedin.ErrMalformedProfile) {
			logError(r, "callback: malformed profile", "error", err)
			writeJSONPError(w, cb, "linkedin returned an incomplete profile")
			return
		}
		logWarn(r, "callback: profile aggregation failed", "error", err)
		writeJSONPError(w, cb, "fetching linkedin profile failed")
		return
	}

	credential, err := h.provision(r, profile, accessToken)
	if err != nil {
		logError(r, "callback: provisioning failed", "error", err)
		writeJSONPError(w, cb, "account provisioning failed")
		return
	}

	logInfo(r, "credential issued", "uid", linkedin.ProviderName+":"+profile.ID)
	writeJSONP(w, cb, jsonpPayload{Token: credential})
}
