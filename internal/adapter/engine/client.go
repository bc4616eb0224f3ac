package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/GoArmGo/TextForge/internal/config"
)

// Client talks to the inference server hosting the pretrained model. It is
// built once at startup and shared read-only across requests; the generation
// budget is fixed here so request payloads can never inflate it.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	model        string
	maxNewTokens int
	temperature  float64
}

// NewClient creates a new engine client from application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.EngineTimeout},
		baseURL:      cfg.EngineURL,
		apiKey:       cfg.EngineAPIKey,
		model:        cfg.EngineModel,
		maxNewTokens: cfg.EngineMaxNewTokens,
		temperature:  cfg.EngineTemperature,
	}
}

// GenerateText implements ports.TextGenerator.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   c.maxNewTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling completion request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var engineErr errorResponse
		if json.Unmarshal(bodyBytes, &engineErr) == nil && engineErr.Error.Message != "" {
			return "", fmt.Errorf("generation engine returned status %d: %s", resp.StatusCode, engineErr.Error.Message)
		}
		return "", fmt.Errorf("generation engine returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decoding engine response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("generation engine returned no choices")
	}

	return completion.Choices[0].Text, nil
}
