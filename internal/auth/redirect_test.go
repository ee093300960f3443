// redirect_test.go -- unit tests for the flow entry point.
package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRedirect_SetsCookieAndRedirects(t *testing.T) {
	p := &mockProvider{authCodeURL: "https://provider.example.com/authorize"}
	h, _, _ := baseCallbackHandler(p)

	w := httptest.NewRecorder()
	h.Redirect(w, httptest.NewRequest(http.MethodGet, "/redirect", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status: expected 302, got %d", w.Code)
	}

	c := findCookie(t, w, stateCookieName)
	if c.Value == "" {
		t.Fatal("state cookie: expected a value")
	}

	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://provider.example.com/authorize") {
		t.Errorf("Location: expected consent page, got %q", loc)
	}
	// The state in the redirect URL must be the one stored in the cookie.
	if !strings.Contains(loc, "state="+c.Value) {
		t.Errorf("Location: state %q missing from %q", c.Value, loc)
	}
}

// TestRedirect_ReusesInFlightState verifies a second tab keeps the first
// tab's attempt valid.
func TestRedirect_ReusesInFlightState(t *testing.T) {
	p := &mockProvider{authCodeURL: "https://provider.example.com/authorize"}
	h, _, _ := baseCallbackHandler(p)

	r := httptest.NewRequest(http.MethodGet, "/redirect", nil)
	r.AddCookie(&http.Cookie{Name: stateCookieName, Value: "in-flight"})

	w := httptest.NewRecorder()
	h.Redirect(w, r)

	c := findCookie(t, w, stateCookieName)
	if c.Value != "in-flight" {
		t.Errorf("state cookie: expected reuse of in-flight state, got %q", c.Value)
	}
}

func TestRedirect_CookieTTLFollowsConfig(t *testing.T) {
	p := &mockProvider{authCodeURL: "https://provider.example.com/authorize"}
	h, _, _ := baseCallbackHandler(p)
	h.StateTTL = 10 * time.Minute

	w := httptest.NewRecorder()
	h.Redirect(w, httptest.NewRequest(http.MethodGet, "/redirect", nil))

	c := findCookie(t, w, stateCookieName)
	if c.MaxAge != 600 {
		t.Errorf("state cookie: expected MaxAge=600, got %d", c.MaxAge)
	}
}
