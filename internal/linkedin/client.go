// Package linkedin implements the LinkedIn v2 client used for sign-in:
// consent URL construction, authorization-code exchange, and aggregation of
// the member's identity, primary email, and profile photo into a Profile.
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"golang.org/x/sync/errgroup"
)

// ProviderName prefixes composite account keys ("linkedin:<id>").
const ProviderName = "linkedin"

// ErrMalformedProfile is returned when a LinkedIn response is missing a
// field the sign-in flow requires. Callers use errors.Is to distinguish a
// bad payload from a transport failure.
var ErrMalformedProfile = errors.New("malformed linkedin profile")

// Scopes requested on the consent screen: basic profile + email address.
var Scopes = []string{"r_liteprofile", "r_emailaddress"}

const (
	apiBaseURL    = "https://api.linkedin.com"
	mePath        = "/v2/me"
	emailPath     = "/v2/emailAddress?q=members&projection=(elements*(handle~))"
	photoPath     = "/v2/me?projection=(id,profilePicture(displayImage~:playableStreams))"
	clientTimeout = 10 * time.Second
)

// Profile is the normalized member record built from three API calls.
// PhotoURL is empty when LinkedIn serves no 400x400 rendition.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
}

// Client calls LinkedIn's OAuth2 and REST endpoints. Safe for concurrent use.
type Client struct {
	config     *oauth2.Config
	apiBase    string
	httpClient *http.Client
}

// NewClient returns a Client configured for LinkedIn's production endpoints.
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.LinkedIn,
			Scopes:       Scopes,
		},
		apiBase:    apiBaseURL,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

// AuthCodeURL builds the consent page URL with the state value embedded.
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a bearer access token.
// A provider-reported error is terminal; there are no retries.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	// Route the exchange through our timeout-bounded client.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging code: %w", err)
	}
	return token.AccessToken, nil
}

// Aggregate fetches the identity, email, and photo resources concurrently
// and normalizes them into a Profile. The three calls share nothing but the
// access token; the first failure cancels the rest and is reported once.
func (c *Client) Aggregate(ctx context.Context, accessToken string) (*Profile, error) {
	var (
		me    meResponse
		email emailResponse
		photo photoResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.getJSON(gctx, accessToken, mePath, &me) })
	g.Go(func() error { return c.getJSON(gctx, accessToken, emailPath, &email) })
	g.Go(func() error { return c.getJSON(gctx, accessToken, photoPath, &photo) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if me.ID == "" {
		return nil, fmt.Errorf("%w: identity missing id", ErrMalformedProfile)
	}
	name, err := fullName(&me)
	if err != nil {
		return nil, err
	}
	addr, err := emailAddress(&email)
	if err != nil {
		return nil, err
	}
	url, err := photoURL(&photo)
	if err != nil {
		return nil, err
	}

	return &Profile{ID: me.ID, DisplayName: name, Email: addr, PhotoURL: url}, nil
}

// getJSON performs one authenticated GET against the REST API and decodes
// the body into out. Non-200 responses are provider errors.
func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("linkedin api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("linkedin api returned %d for %s", resp.StatusCode, req.URL.Path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding linkedin response: %w", err)
	}
	return nil
}
