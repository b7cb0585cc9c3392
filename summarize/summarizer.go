package summarize

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"newsbrief/llm"
	"newsbrief/retry"
	"newsbrief/trace"
	"newsbrief/types"
)

// Config tunes one Summarizer instance.
type Config struct {
	// ChunkBudget is the per-call character budget. Text above the
	// budget is split and summarized chunk-then-condense.
	ChunkBudget int
	// TargetSentences is the length of the final summary.
	TargetSentences int
	// ChunkConcurrency bounds simultaneous chunk-level model calls
	// within one article.
	ChunkConcurrency int
	// Retry bounds model-call retries.
	Retry retry.Policy
}

// Summarizer produces a bounded-length analyst summary from extracted
// article text via one or more model calls, writing one trace record
// per call.
type Summarizer struct {
	completer llm.Completer
	sink      trace.Sink
	cfg       Config
}

// New builds a Summarizer over the given model collaborator and trace
// sink.
func New(completer llm.Completer, sink trace.Sink, cfg Config) *Summarizer {
	if cfg.ChunkBudget <= 0 {
		cfg.ChunkBudget = 4000
	}
	if cfg.TargetSentences <= 0 {
		cfg.TargetSentences = 3
	}
	if cfg.ChunkConcurrency <= 0 {
		cfg.ChunkConcurrency = 3
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultPolicy()
	}
	return &Summarizer{completer: completer, sink: sink, cfg: cfg}
}

// Summarize returns the article's summary or an error when any required
// model call exhausts its retry budget. Partial chunk summaries are an
// internal intermediate; they are discarded on failure and never
// surfaced as a degraded result.
func (s *Summarizer) Summarize(ctx context.Context, url, title, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text to summarize")
	}

	if len(text) <= s.cfg.ChunkBudget {
		return s.call(ctx, url, summaryPrompt(title, text, s.cfg.TargetSentences))
	}

	chunks := SplitChunks(text, s.cfg.ChunkBudget)
	log.Printf("Summarizing %s in %d chunks (%d chars, budget %d)", url, len(chunks), len(text), s.cfg.ChunkBudget)

	partials, err := s.summarizeChunks(ctx, url, title, chunks)
	if err != nil {
		return "", err
	}

	joined := strings.Join(partials, "\n\n")
	return s.call(ctx, url, condensePrompt(title, joined, s.cfg.TargetSentences))
}

// summarizeChunks fans chunk calls out up to ChunkConcurrency and joins
// before the condensation step; the join is the one synchronization
// barrier in the pipeline. Results keep chunk order regardless of
// completion order.
func (s *Summarizer) summarizeChunks(ctx context.Context, url, title string, chunks []string) ([]string, error) {
	partials := make([]string, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.cfg.ChunkConcurrency)

	for i, chunk := range chunks {
		wg.Add(1)
		go func(idx int, chunk string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			prompt := chunkPrompt(title, chunk, idx+1, len(chunks), s.cfg.TargetSentences)
			out, err := s.call(ctx, url, prompt)
			if err != nil {
				errs[idx] = fmt.Errorf("chunk %d/%d: %w", idx+1, len(chunks), err)
				return
			}
			partials[idx] = out
		}(i, chunk)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return partials, nil
}

// call issues one logical model call with retries. Every attempt writes
// exactly one trace record after the attempt completes, always carrying
// the exact prompt sent; a trace captured before the call could not
// record the model's actual response.
func (s *Summarizer) call(ctx context.Context, url, prompt string) (string, error) {
	var result string
	err := retry.Do(ctx, s.cfg.Retry, func(ctx context.Context) error {
		raw, err := s.completer.Complete(ctx, prompt)
		s.writeTrace(url, prompt, raw, err)
		if err != nil {
			return err
		}

		cleaned := CleanSummary(raw)
		if err := ValidateSummary(cleaned); err != nil {
			// A refusal or degenerate output is retried like any other
			// model failure.
			return fmt.Errorf("invalid model output: %w", err)
		}
		result = cleaned
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (s *Summarizer) writeTrace(url, prompt, response string, callErr error) {
	rec := types.TraceRecord{
		Timestamp: time.Now(),
		Model:     s.completer.Model(),
		URL:       url,
		Prompt:    prompt,
		Response:  response,
	}
	if callErr != nil {
		rec.Err = callErr.Error()
	}
	if err := s.sink.Write(rec); err != nil {
		log.Printf("Warning: failed to write trace record for %s: %v", url, err)
	}
}
