package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anya/internal/model"
)

// Client is a typed server-to-server client for the auth HTTP surface, used
// by the admin scripts instead of raw HTTP calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SignInResult is the decoded login response.
type SignInResult struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

// SignInEmail authenticates with email and password and returns the session
// token plus user.
func (c *Client) SignInEmail(ctx context.Context, email, password string) (*SignInResult, error) {
	var result SignInResult
	if err := c.post(ctx, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login response carried no session token")
	}
	return &result, nil
}

// LinkResult is the decoded link-social response.
type LinkResult struct {
	URL string `json:"url"`
}

// LinkSocial starts linking a social provider to the signed-in user and
// returns the authorization URL to complete in a browser.
func (c *Client) LinkSocial(ctx context.Context, token, provider, callbackURL string) (*LinkResult, error) {
	var result LinkResult
	if err := c.post(ctx, "/api/auth/link-social", token, map[string]string{
		"provider":    provider,
		"callbackURL": callbackURL,
	}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s: %s (status %d)", path, apiErr.Error, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
