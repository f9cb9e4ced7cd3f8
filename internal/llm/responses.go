package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ResponsesClient implements Client against an OpenAI-responses-compatible
// HTTP endpoint. The endpoint is treated as opaque and possibly slow; callers
// bound each request through the context.
type ResponsesClient struct {
	config *Config
	apiKey string
	client *http.Client
}

// NewResponsesClient creates a client for a responses-style endpoint
func NewResponsesClient(config *Config, apiKey string) (*ResponsesClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for the responses provider")
	}

	return &ResponsesClient{
		config: config,
		apiKey: apiKey,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// GenerateContent sends a prompt and returns the extracted text payload
func (c *ResponsesClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	// Maximum reasoning effort and high verbosity: slower, but prep sheets
	// are generated once per hearing and cached.
	body := map[string]any{
		"model":     modelName,
		"input":     prompt,
		"reasoning": map[string]string{"effort": "high"},
		"text":      map[string]string{"verbosity": "high"},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/v1/responses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("model service returned status %d: %s", resp.StatusCode, truncateForError(raw))
	}

	text, ok := DecodeEnvelope(raw)
	if !ok {
		return "", fmt.Errorf("no text payload in model response")
	}
	return text, nil
}

// GenerateJSON generates content and strips any markdown wrappers
func (c *ResponsesClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *ResponsesClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *ResponsesClient) Close() error {
	return nil
}

func truncateForError(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
