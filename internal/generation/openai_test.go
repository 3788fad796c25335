package generation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lsu-service/internal/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *generation.OpenAIClient {
	return generation.NewOpenAIClient(generation.Config{
		APIKey:      "test-key",
		BaseURL:     serverURL,
		Model:       "gpt-3.5-turbo",
		MaxTokens:   500,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	})
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func TestOpenAIClient_Generate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(completionResponse("  Un commentaire bienveillant.\n"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		text, err := client.Generate(context.Background(), "system prompt", "user prompt")
		require.NoError(t, err)

		// Surrounding whitespace is stripped.
		assert.Equal(t, "Un commentaire bienveillant.", text)

		assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
		assert.Equal(t, float64(500), gotBody["max_tokens"])
		assert.InDelta(t, 0.7, gotBody["temperature"], 0.001)

		messages, ok := gotBody["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 2)
		first := messages[0].(map[string]interface{})
		assert.Equal(t, "system", first["role"])
		assert.Equal(t, "system prompt", first["content"])
	})

	t.Run("RetriesRateLimit", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			json.NewEncoder(w).Encode(completionResponse("ok"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		text, err := client.Generate(context.Background(), "s", "u")
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("ServerErrorIsNotRetried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "boom"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Generate(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("APIErrorPayload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": "invalid model", "type": "invalid_request_error"},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Generate(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid model")
	})

	t.Run("EmptyChoices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Generate(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no completion returned")
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		client := generation.NewOpenAIClient(generation.Config{Timeout: time.Second})
		_, err := client.Generate(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})
}

func TestNewClient(t *testing.T) {
	t.Run("DefaultsToOpenAI", func(t *testing.T) {
		client, err := generation.NewClient(generation.Config{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", client.Name())
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		_, err := generation.NewClient(generation.Config{Provider: "mistral"})
		require.Error(t, err)
	})
}
