package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resendBaseURL = "https://api.resend.com"

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Resend sends email through the Resend HTTP API.
type Resend struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// Ensure Resend implements Sender
var _ Sender = (*Resend)(nil)

// NewResend creates a Resend-backed sender.
func NewResend(apiKey string) *Resend {
	return &Resend{
		apiKey:     apiKey,
		from:       "Anya <onboarding@resend.dev>",
		baseURL:    resendBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts one email. Any non-2xx response is an error.
func (r *Resend) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(resendRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("resend returned status %d: %s", resp.StatusCode, apiErr.Message)
	}
	return nil
}
