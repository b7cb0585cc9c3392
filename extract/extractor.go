package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsbrief/retry"

	readability "github.com/go-shiori/go-readability"
)

const (
	// maxBodyBytes caps how much of a response we will read. Pages larger
	// than this are truncated, not rejected.
	maxBodyBytes = 4 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// State classifies the terminal outcome of one extraction.
type State int

const (
	StateExtracted State = iota
	StateBlocked
	StateFailed
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateExtracted:
		return "extracted"
	case StateBlocked:
		return "blocked"
	case StateFailed:
		return "failed"
	case StateEmpty:
		return "empty"
	}
	return "unknown"
}

// Outcome is the result of extracting one URL. Text is set only when
// State is StateExtracted; Reason carries a human-readable detail for
// the other states.
type Outcome struct {
	State  State
	Text   string
	Reason string
}

// Strategy converts fetched HTML into plain text. Strategies are pure:
// no shared state, safe to call concurrently.
type Strategy func(html string, pageURL *url.URL) (string, error)

// Config tunes one Extractor instance.
type Config struct {
	// Timeout applies per fetch attempt.
	Timeout time.Duration
	// MinTextLength is the threshold below which an extraction counts as
	// empty. Also used to decide whether the primary strategy's output is
	// good enough to skip the fallback.
	MinTextLength int
	// BlockPhrases overrides DefaultBlockPhrases when non-empty.
	BlockPhrases []string
	// Retry bounds transient-failure retries. Blocked and empty outcomes
	// are never retried; retrying a block page only wastes the request
	// budget.
	Retry retry.Policy
	// Client overrides the HTTP client (tests inject a stub transport).
	Client *http.Client
}

// Extractor fetches a URL and produces plain article text through a
// primary readability strategy with a generic tag-walk fallback, then
// runs block-page detection over the extracted text.
type Extractor struct {
	client    *http.Client
	primary   Strategy
	fallback  Strategy
	detector  *BlockDetector
	minLength int
	retry     retry.Policy
}

// New builds an Extractor with the readability primary and goquery
// fallback strategies.
func New(cfg Config) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 100
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultPolicy()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Extractor{
		client:    client,
		primary:   readabilityStrategy,
		fallback:  fallbackStrategy,
		detector:  NewBlockDetector(cfg.BlockPhrases),
		minLength: cfg.MinTextLength,
		retry:     cfg.Retry,
	}
}

// Extract fetches the URL and returns a terminal Outcome. Network and
// HTTP errors never escape as errors; they come back as StateFailed so
// one bad article can't abort its siblings.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Outcome {
	if strings.TrimSpace(rawURL) == "" {
		return Outcome{State: StateFailed, Reason: "empty URL"}
	}

	var out Outcome
	err := retry.Do(ctx, e.retry, func(ctx context.Context) error {
		o, err := e.attempt(ctx, rawURL)
		if err != nil {
			log.Printf("Warning: fetch failed for %s: %v", rawURL, err)
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return Outcome{State: StateFailed, Reason: err.Error()}
	}
	return out
}

// attempt performs one fetch + extract pass. The returned error marks a
// transient failure eligible for retry; terminal outcomes return err == nil.
func (e *Extractor) attempt(ctx context.Context, rawURL string) (Outcome, error) {
	html, pageURL, err := e.fetch(ctx, rawURL)
	if err != nil {
		return Outcome{}, err
	}

	text := e.runStrategies(html, pageURL, rawURL)

	// Detection runs on extracted text, not raw HTML, so markup-embedded
	// phrases don't cause false positives. A match overrides a nominally
	// successful extraction.
	if phrase, blocked := e.detector.Detect(text); blocked {
		return Outcome{State: StateBlocked, Reason: fmt.Sprintf("block signature matched: %q", phrase)}, nil
	}

	if len(strings.TrimSpace(text)) < e.minLength {
		return Outcome{State: StateEmpty, Reason: fmt.Sprintf("extracted %d chars, below minimum %d", len(text), e.minLength)}, nil
	}
	return Outcome{State: StateExtracted, Text: strings.TrimSpace(text)}, nil
}

// runStrategies tries the primary strategy, then the fallback if the
// primary errored or came up short. The longer non-empty text wins.
func (e *Extractor) runStrategies(html string, pageURL *url.URL, rawURL string) string {
	primaryText, err := e.primary(html, pageURL)
	if err != nil {
		log.Printf("Warning: primary extraction failed for %s: %v", rawURL, err)
		primaryText = ""
	}
	if len(primaryText) >= e.minLength {
		return primaryText
	}

	fallbackText, err := e.fallback(html, pageURL)
	if err != nil {
		log.Printf("Warning: fallback extraction failed for %s: %v", rawURL, err)
		fallbackText = ""
	}
	if len(fallbackText) > len(primaryText) {
		return fallbackText
	}
	return primaryText
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("fetch returned HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "html") {
		return "", nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", nil, fmt.Errorf("reading body: %w", err)
	}

	pageURL := resp.Request.URL
	if pageURL == nil {
		pageURL, _ = url.Parse(rawURL)
	}
	return string(body), pageURL, nil
}

// readabilityStrategy is the primary extraction path: structured article
// parsing tuned for boilerplate removal.
func readabilityStrategy(html string, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", errors.New("readability produced no text")
	}
	return text, nil
}
