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

// OllamaClient talks to a local Ollama endpoint via /api/generate.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	BaseURL string // e.g. http://localhost:11434
	Model   string // e.g. llama3
	Timeout time.Duration
	// Client overrides the HTTP client (tests inject a stub transport).
	Client *http.Client
}

type ollamaPayload struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a client for the given endpoint and model.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  client,
	}
}

func (c *OllamaClient) Model() string { return c.model }

// Complete sends one non-streaming generate request. Low temperature
// keeps summaries focused; num_predict bounds response length.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := ollamaPayload{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.3,
			NumPredict:  500,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", fmt.Errorf("ollama returned empty response")
	}
	return text, nil
}

// Healthcheck verifies the endpoint is reachable before any article is
// processed.
func (c *OllamaClient) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("building healthcheck request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama healthcheck returned HTTP %d", resp.StatusCode)
	}
	return nil
}
