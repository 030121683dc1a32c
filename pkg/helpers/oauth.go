package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuthProvider is the adapter to the external identity provider. The rest of
// the system only sees the resolved OAuthUser; the provider endpoints are
// configuration.
type OAuthProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
}

// OAuthUser is the identity payload returned by the provider's userinfo
// endpoint. OpenID is unique per user and keys the local user row.
type OAuthUser struct {
	OpenID string `json:"sub"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func NewOAuthProvider(clientID, clientSecret, authURL, tokenURL, redirectURL, userInfoURL string, scopes []string) *OAuthProvider {
	return &OAuthProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		userInfoURL: userInfoURL,
	}
}

// AuthCodeURL returns the provider login URL carrying the state nonce.
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and resolves the user
// behind it via the userinfo endpoint.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*OAuthUser, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return p.fetchUser(ctx, token)
}

func (p *OAuthProvider) fetchUser(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.cfg.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}
	var u OAuthUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	if u.OpenID == "" {
		return nil, errors.New("userinfo missing subject")
	}
	return &u, nil
}
