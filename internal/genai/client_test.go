package genai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankassist/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_API_KEY", "test-key")
	c, err := NewClient(Config{
		BaseURL:   srv.URL,
		APIKeyEnv: "TEST_API_KEY",
		Model:     "test-model",
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func reply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("EMPTY_KEY_ENV", "")
	_, err := NewClient(Config{APIKeyEnv: "EMPTY_KEY_ENV"})
	assert.Error(t, err)
}

func TestCompleteSendsContextHistoryAndMessage(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply("  the answer  ")(w, r)
	})

	answer, err := c.Complete(
		[]string{"ctx one", "ctx two"},
		[]domain.Turn{{Role: domain.RoleUser, Content: "earlier"}, {Role: domain.RoleAssistant, Content: "reply"}},
		"current question",
	)
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer, "reply must be trimmed")

	require.Len(t, got.Messages, 5)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "ctx one", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[2].Role)
	assert.Equal(t, "assistant", got.Messages[3].Role)
	assert.Equal(t, "user", got.Messages[4].Role)
	assert.Equal(t, "current question", got.Messages[4].Content)
	assert.Equal(t, "test-model", got.Model)
}

func TestFixGrammarUsesCorrectionPrompt(t *testing.T) {
	var roles []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, m := range body.Messages {
			roles = append(roles, m.Role)
		}
		require.Equal(t, grammarPrompt, body.Messages[0].Content)
		require.Equal(t, "whats teh intrest rate", body.Messages[1].Content)
		reply("What's the interest rate")(w, r)
	})

	fixed, err := c.FixGrammar("whats teh intrest rate")
	require.NoError(t, err)
	assert.Equal(t, "What's the interest rate", fixed)
	assert.Equal(t, []string{"system", "user"}, roles)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ErrAuth},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimit},
		{"server error", http.StatusInternalServerError, ErrService},
		{"bad request", http.StatusBadRequest, ErrService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.Complete(nil, nil, "q")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(reply("x"))
	srv.Close() // refuse further connections
	t.Setenv("TEST_API_KEY", "test-key")
	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "TEST_API_KEY", Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Complete(nil, nil, "q")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	_, err := c.Complete(nil, nil, "q")
	assert.ErrorIs(t, err, ErrService)
}
