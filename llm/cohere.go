package llm

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereClient is a hosted alternative to the local Ollama endpoint,
// selected when COHERE_API_KEY is configured.
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

// CohereConfig configures the Cohere client.
type CohereConfig struct {
	APIKey  string
	Model   string // e.g. command-r
	Timeout time.Duration
}

// NewCohereClient builds a Cohere chat client. The HTTP client forces
// HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere edge.
func NewCohereClient(cfg CohereConfig) (*CohereClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cohere API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "command-r"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereClient{client: client, model: cfg.Model}, nil
}

func (c *CohereClient) Model() string { return c.model }

func (c *CohereClient) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := 0.3
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     prompt,
		Model:       &c.model,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("cohere request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("cohere returned empty response")
	}
	return text, nil
}

// Healthcheck issues a minimal chat request to confirm the key and
// endpoint work before a run starts.
func (c *CohereClient) Healthcheck(ctx context.Context) error {
	_, err := c.Complete(ctx, "Reply with the single word: ok")
	if err != nil {
		return fmt.Errorf("cohere healthcheck failed: %w", err)
	}
	return nil
}
