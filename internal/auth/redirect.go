// redirect.go -- Entry point of the sign-in flow.
package auth

import (
	"net/http"
)

// Redirect handles GET /redirect -- issues (or reuses) the CSRF state,
// stores it in a short-lived HttpOnly cookie, and sends the browser to the
// provider's consent page. No outbound calls are made here.
func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	state, err := issueState(r)
	if err != nil {
		InternalServerError(w, r, err)
		return
	}

	h.setStateCookie(w, state)
	logInfo(r, "issued oauth state, redirecting to consent page")
	http.Redirect(w, r, h.Provider.AuthCodeURL(state), http.StatusFound)
}
