package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"diet-planner/internal/config"
	"diet-planner/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer groq_key", r.Header.Get("Authorization"))

			var body struct {
				Model       string  `json:"model"`
				Temperature float64 `json:"temperature"`
				Messages    []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, DefaultGroqModel, body.Model)
			assert.Equal(t, 0.5, body.Temperature)
			require.Len(t, body.Messages, 1)
			assert.Equal(t, "user", body.Messages[0].Role)
			assert.Equal(t, "plan please", body.Messages[0].Content)

			fmt.Fprintln(w, `{
				"choices": [{"message": {"role": "assistant", "content": "## Day 1\nOats"}}],
				"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
			}`)
		}))
		defer server.Close()

		client := NewGroqClient(&config.Config{GroqAPIURL: server.URL})
		resp, err := client.GenerateContent(context.Background(), "plan please")
		require.NoError(t, err)

		assert.Equal(t, "## Day 1\nOats", resp.Content)
		assert.Equal(t, shared.TokenUsage{PromptTokens: 12, CompletionTokens: 5, TotalTokens: 17, Model: DefaultGroqModel}, resp.Usage)
	})

	t.Run("MissingCredentialMakesNoRequest", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		client := NewGroqClient(&config.Config{GroqAPIURL: server.URL})
		_, err := client.GenerateContent(context.Background(), "plan please")

		var cfgErr *shared.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		assert.Equal(t, "GROQ_API_KEY", cfgErr.Key)
		assert.Zero(t, hits.Load())
	})

	t.Run("ServerErrorIsServiceError", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": "quota"}`)
		}))
		defer server.Close()

		client := NewGroqClient(&config.Config{GroqAPIURL: server.URL})
		_, err := client.GenerateContent(context.Background(), "plan please")

		var svcErr *shared.ServiceError
		require.True(t, errors.As(err, &svcErr), "expected ServiceError, got %v", err)
		assert.Contains(t, err.Error(), "status=429")
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("MalformedResponseIsServiceError", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices": []}`)
		}))
		defer server.Close()

		client := NewGroqClient(&config.Config{GroqAPIURL: server.URL})
		_, err := client.GenerateContent(context.Background(), "plan please")

		var svcErr *shared.ServiceError
		assert.True(t, errors.As(err, &svcErr), "expected ServiceError, got %v", err)
	})

	t.Run("ModelOverride", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Model string `json:"model"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			fmt.Fprintf(w, `{"choices": [{"message": {"content": %q}}]}`, body.Model)
		}))
		defer server.Close()

		client := NewGroqClient(&config.Config{GroqAPIURL: server.URL, LLMModel: "llama-3.3-70b-versatile"})
		resp, err := client.GenerateContent(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "llama-3.3-70b-versatile", resp.Content)
	})
}

func TestOpenAIClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "openai_key")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer openai_key", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, DefaultOpenAIModel, body["model"])
			assert.Equal(t, 0.5, body["temperature"])

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1700000000,
				"model": "gpt-4o-mini",
				"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "## Day 1\nEggs"}}],
				"usage": {"prompt_tokens": 9, "completion_tokens": 4, "total_tokens": 13}
			}`)
		}))
		defer server.Close()

		client := NewOpenAIClient(&config.Config{OpenAIURL: server.URL})
		resp, err := client.GenerateContent(context.Background(), "plan please")
		require.NoError(t, err)

		assert.Equal(t, "## Day 1\nEggs", resp.Content)
		assert.Equal(t, 13, resp.Usage.TotalTokens)
	})

	t.Run("SingleAttemptOnFailure", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "openai_key")

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewOpenAIClient(&config.Config{OpenAIURL: server.URL})
		_, err := client.GenerateContent(context.Background(), "plan please")

		var svcErr *shared.ServiceError
		require.True(t, errors.As(err, &svcErr), "expected ServiceError, got %v", err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("MissingCredential", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		_, err := NewOpenAIClient(&config.Config{}).GenerateContent(context.Background(), "x")
		var cfgErr *shared.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
	})
}

func TestGeminiClientMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewGeminiClient(&config.Config{}).GenerateContent(context.Background(), "x")
	var cfgErr *shared.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
	assert.Equal(t, "GEMINI_API_KEY", cfgErr.Key)
}

func TestNewTextGenerator(t *testing.T) {
	for _, provider := range []string{config.ProviderGroq, config.ProviderGemini, config.ProviderOpenAI} {
		gen, err := NewTextGenerator(&config.Config{LLMProvider: provider})
		require.NoError(t, err, provider)
		assert.NotNil(t, gen, provider)
	}

	_, err := NewTextGenerator(&config.Config{LLMProvider: "mistral"})
	assert.Error(t, err)
}
