package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/TextForge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		EngineURL:          url,
		EngineAPIKey:       "test-key",
		EngineModel:        "gpt2",
		EngineMaxNewTokens: 100,
		EngineTemperature:  0.7,
		EngineTimeout:      5 * time.Second,
	}
}

func TestGenerateText_Success(t *testing.T) {
	t.Parallel()

	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "cmpl-1",
			"model": "gpt2",
			"choices": []map[string]interface{}{
				{"text": " a deep shade of blue.", "index": 0, "finish_reason": "length"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	out, err := client.GenerateText(context.Background(), "The sky is")
	require.NoError(t, err)
	assert.Equal(t, " a deep shade of blue.", out)

	// The budget comes from configuration, never from the caller.
	assert.Equal(t, "gpt2", got.Model)
	assert.Equal(t, "The sky is", got.Prompt)
	assert.Equal(t, 100, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
}

func TestGenerateText_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded", "type": "server_error"},
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.GenerateText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerateText_NoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "cmpl-2", "choices": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.GenerateText(context.Background(), "hello")
	require.Error(t, err)
}

func TestGenerateText_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.GenerateText(context.Background(), "hello")
	require.Error(t, err)
}
