package freechatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func newTestProvider(url string) *Provider {
	config := DefaultConfig()
	config.APIKey = "test-key"
	config.APIEndpoint = url + "/v1/"
	return New(config)
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 9, "completion_tokens": 4, "total_tokens": 13},
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("FREE_CHATGPT_API_KEY", "from-env")
	config := DefaultConfig()

	assert.Equal(t, "from-env", config.APIKey)
	assert.Equal(t, "https://api.gpt.ge/v1", config.APIEndpoint)
	assert.Equal(t, "gpt-3.5-turbo", config.Model)
	assert.Equal(t, float32(0.7), config.Temperature)
	assert.Equal(t, 1000, config.MaxTokens)
}

func TestTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, providers.SystemPrompt, req.Messages[0].Content)
		assert.Equal(t, providers.BuildPrompt("Report", "Thai"), req.Messages[1].Content)
		assert.InDelta(t, 0.7, req.Temperature, 1e-6)
		assert.Equal(t, 1000, req.MaxTokens)

		writeCompletion(w, "\nรายงาน\n")
	}))
	defer server.Close()

	resp, err := newTestProvider(server.URL).Translate(context.Background(), &providers.ProviderRequest{
		Text:           "Report",
		TargetLanguage: "Thai",
	})
	require.NoError(t, err)
	assert.Equal(t, "รายงาน", resp.Text)
	assert.Equal(t, 9, resp.TokensIn)
	assert.Equal(t, 4, resp.TokensOut)
}

func TestTranslateErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		code    string
	}{
		{
			name: "Auth",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
			},
			code: providers.CodeAuth,
		},
		{
			name: "BadGateway",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			},
			code: providers.CodeNetwork,
		},
		{
			name: "EmptyContent",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeCompletion(w, "   ")
			},
			code: providers.CodeEmpty,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := newTestProvider(server.URL).Translate(context.Background(), &providers.ProviderRequest{Text: "x", TargetLanguage: "English"})
			require.Error(t, err)
			assert.Equal(t, tc.code, providers.ErrorCode(err))
		})
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	config := DefaultConfig()
	config.APIEndpoint = server.URL
	config.Timeout = 50 * time.Millisecond

	err := New(config).HealthCheck(context.Background())
	require.Error(t, err)
	assert.Equal(t, providers.CodeNetwork, providers.ErrorCode(err))
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, providers.HealthCheckPrompt, req.Messages[0].Content)
		assert.Equal(t, 10, req.MaxTokens)
		writeCompletion(w, "Hi")
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	assert.NoError(t, p.HealthCheck(context.Background()))
	assert.Equal(t, providers.FreeChatGPT, p.Kind())
}
