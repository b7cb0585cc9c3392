// Package pipeline drives deduplicated feed entries through extraction
// and summarization independently, collecting per-article outcomes into
// a batch result. One article's failure never affects its siblings.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"newsbrief/extract"
	"newsbrief/types"
)

// Extractor is the content extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, url string) extract.Outcome
}

// Summarizer is the summarization collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, url, title, text string) (string, error)
}

// Runner fans articles out over a bounded worker pool.
type Runner struct {
	extractor   Extractor
	summarizer  Summarizer
	model       string
	concurrency int
}

// NewRunner builds a Runner. Concurrency bounds simultaneous outbound
// network and model connections across articles.
func NewRunner(extractor Extractor, summarizer Summarizer, model string, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Runner{
		extractor:   extractor,
		summarizer:  summarizer,
		model:       model,
		concurrency: concurrency,
	}
}

// Run processes every entry independently and returns exactly one
// ArticleRecord per input, in input order. Cancellation stops
// scheduling new work but preserves records that already completed;
// entries that never ran are marked failed with a cancellation detail.
func (r *Runner) Run(ctx context.Context, entries []types.FeedEntry) *types.BatchResult {
	result := &types.BatchResult{
		StartedAt: time.Now(),
		Model:     r.model,
		Articles:  make([]*types.ArticleRecord, len(entries)),
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.concurrency)

	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, entry types.FeedEntry) {
			defer wg.Done()

			record := types.NewArticleRecord(entry)
			result.Articles[idx] = record

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				record.ExtractionState = types.ExtractionFailed
				record.ErrorDetail = fmt.Sprintf("run cancelled before processing: %v", ctx.Err())
				return
			}
			defer func() { <-semaphore }()

			r.processArticle(ctx, record)
		}(i, entry)
	}
	wg.Wait()

	result.FinishedAt = time.Now()
	log.Printf("Batch complete: %d articles, %d extracted, %d summarized",
		len(result.Articles), result.Extracted(), result.Summarized())
	return result
}

// processArticle mutates the record exactly once per stage: extraction
// first, then summarization only for extracted text. No model call is
// issued for blocked, failed or empty outcomes.
func (r *Runner) processArticle(ctx context.Context, record *types.ArticleRecord) {
	outcome := r.extractor.Extract(ctx, record.URL)

	switch outcome.State {
	case extract.StateExtracted:
		record.ExtractionState = types.ExtractionExtracted
		record.RawText = outcome.Text
	case extract.StateBlocked:
		record.ExtractionState = types.ExtractionBlocked
		record.ErrorDetail = outcome.Reason
		log.Printf("  ⚠️  Blocked: %s (%s)", record.URL, outcome.Reason)
		return
	case extract.StateEmpty:
		record.ExtractionState = types.ExtractionEmpty
		record.ErrorDetail = outcome.Reason
		log.Printf("  ⚠️  Empty: %s", record.URL)
		return
	default:
		record.ExtractionState = types.ExtractionFailed
		record.ErrorDetail = outcome.Reason
		log.Printf("  ❌ Extraction failed: %s (%s)", record.URL, outcome.Reason)
		return
	}

	summary, err := r.summarizer.Summarize(ctx, record.URL, record.Title, record.RawText)
	if err != nil {
		record.SummaryState = types.SummaryFailed
		record.ErrorDetail = err.Error()
		log.Printf("  ❌ Summarization failed: %s (%v)", record.URL, err)
		return
	}
	record.Summary = summary
	record.SummaryState = types.SummarySucceeded
	log.Printf("  ✓ Summarized: %s", record.URL)
}
