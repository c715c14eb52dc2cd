// Package genai is the OpenAI-compatible chat-completions client used for
// generative answers and the grammar-correction pre-pass. Failures map to
// typed errors so the router can pick the right user-facing message and
// log severity. Calls are never retried here.
package genai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"bankassist/internal/domain"
)

// Typed collaborator failures. Everything else surfaces as a plain error.
var (
	ErrConnection = errors.New("genai: connection failed")
	ErrRateLimit  = errors.New("genai: rate limited")
	ErrAuth       = errors.New("genai: authentication failed")
	ErrService    = errors.New("genai: service error")
)

const grammarPrompt = "If there are any typos or grammar errors in the query fix them, " +
	"but don't change the query, and just send the query, no additional words. " +
	"If a single word is sent, just fix typos if there are any, and return the word only."

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Config configures the chat client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a chat client, reading the API key from the configured
// environment variable.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  key,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}, nil
}

// Complete sends the system context, history and user message and returns
// the model's reply.
func (c *Client) Complete(systemContext []string, history []domain.Turn, userMessage string) (string, error) {
	msgs := make([]message, 0, len(systemContext)+len(history)+1)
	for _, sc := range systemContext {
		msgs = append(msgs, message{Role: "system", Content: sc})
	}
	for _, turn := range history {
		msgs = append(msgs, message{Role: string(turn.Role), Content: turn.Content})
	}
	msgs = append(msgs, message{Role: "user", Content: userMessage})
	return c.chat(msgs)
}

// FixGrammar returns the query with spelling and grammar corrected,
// preserving its meaning and adding no words.
func (c *Client) FixGrammar(query string) (string, error) {
	return c.chat([]message{
		{Role: "system", Content: grammarPrompt},
		{Role: "user", Content: query},
	})
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) chat(messages []message) (string, error) {
	body, _ := json.Marshal(struct {
		Model    string    `json:"model"`
		Messages []message `json:"messages"`
	}{Model: c.model, Messages: messages})

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", ErrAuth, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", ErrRateLimit, resp.Status)
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: %s", ErrService, resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrService, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrService)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
