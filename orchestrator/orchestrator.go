package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"newsbrief/config"
	"newsbrief/dedup"
	"newsbrief/extract"
	"newsbrief/feeds"
	"newsbrief/llm"
	"newsbrief/pipeline"
	"newsbrief/publish"
	"newsbrief/retry"
	"newsbrief/summarize"
	"newsbrief/trace"
	"newsbrief/types"
)

// RunOnce executes a single end-to-end cycle: fetch feeds, deduplicate,
// extract and summarize every article, then hand the batch to the
// downstream publishers. The returned error covers only whole-run
// failures (bad config, unreachable model, all feeds dead); per-article
// failures live on the records.
func RunOnce(ctx context.Context, cfg *config.Config) (*types.BatchResult, error) {
	log.Println("=== newsbrief run ===")

	completer, err := buildCompleter(cfg)
	if err != nil {
		return nil, err
	}

	// The startup health check is the one fatal precondition: an
	// unreachable model endpoint fails the run before any article is
	// touched.
	if hc, ok := completer.(llm.HealthChecker); ok {
		hctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := hc.Healthcheck(hctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("model endpoint health check failed: %w", err)
		}
	}
	log.Printf("Model endpoint healthy: %s", completer.Model())

	// Step 1: Fetch feeds
	log.Println("Fetching feeds...")
	entries, err := feeds.FetchAll(ctx, feeds.DefaultSources)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feeds: %w", err)
	}
	log.Printf("Fetched %d entries across feeds", len(entries))

	// Step 2: Deduplicate by canonical URL, first seen wins
	entries = dedup.Deduplicate(entries)
	log.Printf("%d entries after deduplication", len(entries))

	// Step 2b: Filter URLs already processed in prior runs (optional)
	entries = filterSeen(ctx, cfg, entries)

	// Step 3: Run the pipeline with a trace sink for this run
	runStart := time.Now()
	sink, err := trace.NewFileSink(cfg.TraceDir, completer.Model(), runStart)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace sink: %w", err)
	}
	defer sink.Close()
	log.Printf("Tracing model calls to %s", sink.Path())

	retryPolicy := retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		Multiplier:  2,
	}

	extractor := extract.New(extract.Config{
		Timeout:       cfg.FetchTimeout,
		MinTextLength: cfg.MinTextLength,
		BlockPhrases:  cfg.BlockPhrases,
		Retry:         retryPolicy,
	})
	summarizer := summarize.New(completer, sink, summarize.Config{
		ChunkBudget:     cfg.ChunkBudget,
		TargetSentences: cfg.SummarySentences,
		Retry:           retryPolicy,
	})
	runner := pipeline.NewRunner(extractor, summarizer, completer.Model(), cfg.Concurrency)

	log.Printf("Processing %d articles with concurrency %d...", len(entries), cfg.Concurrency)
	batch := runner.Run(ctx, entries)

	// Step 4: Hand the batch to the downstream boundary
	markSeen(ctx, cfg, batch)
	publishBatch(ctx, cfg, batch)

	displayResults(batch)
	log.Println("=== run complete ===")
	return batch, nil
}

// buildCompleter selects Cohere when an API key is configured and the
// local Ollama endpoint otherwise.
func buildCompleter(cfg *config.Config) (llm.Completer, error) {
	if cfg.CohereAPIKey != "" {
		c, err := llm.NewCohereClient(llm.CohereConfig{
			APIKey:  cfg.CohereAPIKey,
			Model:   cfg.CohereModel,
			Timeout: cfg.ModelTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init Cohere client: %w", err)
		}
		return c, nil
	}
	return llm.NewOllamaClient(llm.OllamaConfig{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaModel,
		Timeout: cfg.ModelTimeout,
	}), nil
}

// filterSeen drops entries already processed within the Redis TTL
// window. Redis being down degrades to processing everything.
func filterSeen(ctx context.Context, cfg *config.Config, entries []types.FeedEntry) []types.FeedEntry {
	if cfg.RedisAddr == "" {
		return entries
	}
	store, err := dedup.NewSeenStore(dedup.SeenStoreConfig{Addr: cfg.RedisAddr, TTL: cfg.RedisTTL})
	if err != nil {
		log.Printf("Warning: seen-store unavailable: %v (processing all entries)", err)
		return entries
	}
	defer store.Close()

	kept := entries[:0]
	skipped := 0
	for _, e := range entries {
		seen, err := store.Seen(ctx, dedup.Canonicalize(e.URL))
		if err != nil {
			log.Printf("Warning: seen check failed for %s: %v", e.URL, err)
			seen = false
		}
		if seen {
			skipped++
			continue
		}
		kept = append(kept, e)
	}
	if skipped > 0 {
		log.Printf("Skipped %d entries already processed in prior runs", skipped)
	}
	return kept
}

// markSeen records processed URLs so the next run can skip them.
// Only articles that reached a terminal non-failed extraction state are
// marked; transient failures stay eligible for the next cycle.
func markSeen(ctx context.Context, cfg *config.Config, batch *types.BatchResult) {
	if cfg.RedisAddr == "" {
		return
	}
	store, err := dedup.NewSeenStore(dedup.SeenStoreConfig{Addr: cfg.RedisAddr, TTL: cfg.RedisTTL})
	if err != nil {
		log.Printf("Warning: seen-store unavailable: %v (skipping marks)", err)
		return
	}
	defer store.Close()

	for _, a := range batch.Articles {
		if a.ExtractionState == types.ExtractionFailed {
			continue
		}
		if err := store.Mark(ctx, dedup.Canonicalize(a.URL)); err != nil {
			log.Printf("Warning: failed to mark %s as seen: %v", a.URL, err)
		}
	}
}

// publishBatch hands the batch to whichever downstream targets are
// configured. Publish failures are logged, never fatal: the batch is
// already complete and callers still get it.
func publishBatch(ctx context.Context, cfg *config.Config, batch *types.BatchResult) {
	if cfg.S3Bucket != "" {
		uctx, cancel := context.WithTimeout(ctx, 60*time.Second)
		archiver, err := publish.NewS3Archiver(uctx, publish.S3Config{
			Region: cfg.S3Region,
			Bucket: cfg.S3Bucket,
			Prefix: cfg.S3Prefix,
		})
		if err != nil {
			log.Printf("Warning: failed to init S3 archiver: %v", err)
		} else if err := archiver.ArchiveBatch(uctx, batch); err != nil {
			log.Printf("Warning: S3 archive failed: %v", err)
		} else {
			log.Printf("Batch archived to s3://%s", cfg.S3Bucket)
		}
		cancel()
	} else {
		log.Println("S3 not configured; skipping archive")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := publish.NewKafkaPublisher(publish.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("Warning: failed to init Kafka publisher: %v", err)
			return
		}
		defer publisher.Close()

		n, err := publisher.PublishBatch(batch)
		if err != nil {
			log.Printf("Warning: Kafka publish stopped early: %v", err)
		}
		log.Printf("Published %d article(s) to Kafka topic %s", n, cfg.KafkaTopic)
	} else {
		log.Println("Kafka not configured; skipping publish")
	}
}

func displayResults(batch *types.BatchResult) {
	blocked, failed, empty := 0, 0, 0
	for _, a := range batch.Articles {
		switch a.ExtractionState {
		case types.ExtractionBlocked:
			blocked++
		case types.ExtractionFailed:
			failed++
		case types.ExtractionEmpty:
			empty++
		}
	}

	log.Println("=== Batch Summary ===")
	log.Printf("Total Articles:     %d", len(batch.Articles))
	log.Printf("Extracted:          %d", batch.Extracted())
	log.Printf("Summarized:         %d", batch.Summarized())
	log.Printf("Blocked:            %d", blocked)
	log.Printf("Empty:              %d", empty)
	log.Printf("Failed:             %d", failed)
	log.Println("=====================")
}
