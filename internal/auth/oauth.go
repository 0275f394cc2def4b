package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const discordUserInfoURL = "https://discord.com/api/users/@me"

// ProviderUser is the subset of provider profile data the auth subsystem needs.
type ProviderUser struct {
	ID            string
	Name          string
	Email         string
	EmailVerified bool
}

// OAuthProvider abstracts the social login provider so services can be tested
// without network access.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUser(ctx context.Context, token *oauth2.Token) (*ProviderUser, error)
}

// DiscordProvider implements OAuthProvider against Discord's OAuth2 API.
type DiscordProvider struct {
	config oauth2.Config
}

// NewDiscordProvider builds the Discord provider with the identify, email and
// guilds scopes.
func NewDiscordProvider(clientID, clientSecret, redirectURI string) *DiscordProvider {
	return &DiscordProvider{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint:     endpoints.Discord,
		},
	}
}

// AuthCodeURL returns the provider authorization URL carrying state.
func (p *DiscordProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token.
func (p *DiscordProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// discordUser mirrors the fields of Discord's /users/@me response we consume.
type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
}

// FetchUser retrieves the authenticated Discord user's profile.
func (p *DiscordProvider) FetchUser(ctx context.Context, token *oauth2.Token) (*ProviderUser, error) {
	client := p.config.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info endpoint returned status %d", resp.StatusCode)
	}

	var du discordUser
	if err := json.NewDecoder(resp.Body).Decode(&du); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	name := du.GlobalName
	if name == "" {
		name = du.Username
	}
	return &ProviderUser{
		ID:            du.ID,
		Name:          name,
		Email:         du.Email,
		EmailVerified: du.Verified,
	}, nil
}
