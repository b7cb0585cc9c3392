package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsbrief/types"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Test Business Feed</title>
<item>
  <title>Older market story</title>
  <link>https://feed.example/older</link>
  <description>Stocks moved sideways.</description>
  <pubDate>Mon, 01 Jan 2024 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Chip maker expands plant</title>
  <link>https://feed.example/chips</link>
  <description>A semiconductor expansion.</description>
  <pubDate>Tue, 02 Jan 2024 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Untitled item link only</title>
  <link></link>
  <pubDate>Wed, 03 Jan 2024 08:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func rssServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
}

func TestFetchSource(t *testing.T) {
	srv := rssServer(t, testRSS)
	defer srv.Close()

	entries, err := FetchSource(context.Background(), Source{
		Name: "test", URL: srv.URL, Region: RegionUS, Limit: 10, Enabled: true,
	})
	if err != nil {
		t.Fatalf("FetchSource: %v", err)
	}

	// The empty-link item is dropped; the rest come back newest first.
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "https://feed.example/chips" {
		t.Errorf("entries not newest first: %s", entries[0].URL)
	}
	if entries[0].Section != types.SectionUSTech {
		t.Errorf("chip story section = %s, want %s", entries[0].Section, types.SectionUSTech)
	}
	if entries[1].Section != types.SectionUSIndustry {
		t.Errorf("market story section = %s, want %s", entries[1].Section, types.SectionUSIndustry)
	}
	if entries[0].PublishedAt.IsZero() {
		t.Error("published time not parsed")
	}
}

func TestFetchSourceLimit(t *testing.T) {
	srv := rssServer(t, testRSS)
	defer srv.Close()

	entries, err := FetchSource(context.Background(), Source{
		Name: "test", URL: srv.URL, Region: RegionUS, Limit: 1, Enabled: true,
	})
	if err != nil {
		t.Fatalf("FetchSource: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected limit of 1 entry, got %d", len(entries))
	}
	if entries[0].URL != "https://feed.example/chips" {
		t.Errorf("limit should keep the newest entry, got %s", entries[0].URL)
	}
}

func TestFetchAllSkipsFailingSources(t *testing.T) {
	good := rssServer(t, testRSS)
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	entries, err := FetchAll(context.Background(), []Source{
		{Name: "bad", URL: bad.URL, Region: RegionUS, Enabled: true},
		{Name: "good", URL: good.URL, Region: RegionUS, Enabled: true},
		{Name: "disabled", URL: bad.URL, Region: RegionUS, Enabled: false},
	})
	if err != nil {
		t.Fatalf("one good source should carry the run: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries from the good source, got %d", len(entries))
	}
}

func TestFetchAllAllFailed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	_, err := FetchAll(context.Background(), []Source{
		{Name: "bad1", URL: bad.URL, Region: RegionUS, Enabled: true},
		{Name: "bad2", URL: bad.URL, Region: RegionUS, Enabled: true},
	})
	if err == nil {
		t.Fatal("expected error when every feed fails")
	}
}

func TestFetchAllNoEnabledSources(t *testing.T) {
	entries, err := FetchAll(context.Background(), []Source{
		{Name: "disabled", URL: "https://feed.example/rss", Enabled: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
