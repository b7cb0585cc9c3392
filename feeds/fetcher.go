// Package feeds aggregates article metadata from RSS/Atom sources and
// tags each entry with its section before it enters the pipeline.
package feeds

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"newsbrief/types"

	"github.com/mmcdole/gofeed"
)

// Source describes one RSS/Atom feed to aggregate.
type Source struct {
	Name    string
	URL     string
	Region  Region
	Limit   int
	Enabled bool
}

// FetchSource retrieves and parses one feed, returning entries newest
// first up to the source limit. Section tags are assigned by the
// keyword classifier from the source region.
func FetchSource(ctx context.Context, src Source) ([]types.FeedEntry, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", src.Name, err)
	}

	entries := make([]types.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		entries = append(entries, types.FeedEntry{
			URL:         item.Link,
			Title:       item.Title,
			PublishedAt: publishedAt,
			Section:     ClassifySection(src.Region, item.Title, item.Description),
		})
	}

	// Newest first, then cap at the per-source limit.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})
	if src.Limit > 0 && len(entries) > src.Limit {
		entries = entries[:src.Limit]
	}
	return entries, nil
}

// FetchAll aggregates entries across all enabled sources in source
// order. Per-feed failures are logged and skipped; the call errors only
// when every feed fails, so one dead source never kills a run.
func FetchAll(ctx context.Context, sources []Source) ([]types.FeedEntry, error) {
	var all []types.FeedEntry
	var failures int
	var lastErr error

	for _, src := range sources {
		if !src.Enabled {
			continue
		}
		entries, err := FetchSource(ctx, src)
		if err != nil {
			failures++
			lastErr = err
			log.Printf("Warning: %v", err)
			continue
		}
		log.Printf("Fetched %d articles from %s", len(entries), src.Name)
		all = append(all, entries...)
	}

	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all %d feeds failed, last error: %w", failures, lastErr)
	}
	return all, nil
}
