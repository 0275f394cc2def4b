// Package ai is a thin wrapper over the OpenAI chat completion endpoint.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	chatModel     = "gpt-3.5-turbo"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client forwards chat messages to the completion endpoint. It is stateless;
// one instance can serve concurrent requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a chat client with the default API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    openAIBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the ordered messages and returns the first completion choice.
// apiKeyOverride, when non-empty, replaces the configured key for this call.
func (c *Client) Chat(ctx context.Context, messages []Message, apiKeyOverride string) (*Message, error) {
	payload, err := json.Marshal(completionRequest{
		Model:    chatModel,
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	key := c.apiKey
	if apiKeyOverride != "" {
		key = apiKeyOverride
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil && completion.Error.Message != "" {
			return nil, fmt.Errorf("completion endpoint: %s", completion.Error.Message)
		}
		return nil, fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no completion choice returned")
	}
	return &completion.Choices[0].Message, nil
}
