package dedup

import (
	"reflect"
	"testing"

	"newsbrief/types"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"simple", "https://example.com/path", "https://example.com/path"},
		{"trailing slash", "https://example.com/path/", "https://example.com/path"},
		{"uppercase scheme and host", "HTTP://Example.COM/Path", "http://example.com/Path"},
		{"fragment stripped", "https://example.com/path#section", "https://example.com/path"},
		{"utm params stripped", "https://example.com/path?utm_source=feed&utm_medium=rss", "https://example.com/path"},
		{"tracking params stripped", "https://example.com/?fbclid=XYZ&gclid=ABC&ref=home", "https://example.com"},
		{"real params kept sorted", "https://example.com/a?z=1&a=2", "https://example.com/a?a=2&z=1"},
		{"mixed", "https://example.com/a?utm_campaign=x&id=7", "https://example.com/a?id=7"},
		{"empty", "", ""},
		{"whitespace", "  https://example.com  ", "https://example.com"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Canonicalize(c.url)
			if got != c.want {
				t.Fatalf("Canonicalize(%q) = %q; want %q", c.url, got, c.want)
			}
		})
	}
}

func entry(url string, section types.Section) types.FeedEntry {
	return types.FeedEntry{URL: url, Title: "t", Section: section}
}

func TestDeduplicateFirstSeenWins(t *testing.T) {
	in := []types.FeedEntry{
		entry("https://x.test/a", types.SectionWorld),
		entry("https://x.test/b", types.SectionUSTech),
		entry("https://x.test/a?utm_source=mail", types.SectionUSTech), // dup of first
		entry("https://x.test/c", types.SectionWorld),
		entry("HTTPS://X.TEST/b/", types.SectionWorld), // dup of second
	}

	got := Deduplicate(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique entries, got %d", len(got))
	}
	wantURLs := []string{"https://x.test/a", "https://x.test/b", "https://x.test/c"}
	for i, w := range wantURLs {
		if got[i].URL != w {
			t.Errorf("entry %d: got URL %q, want %q", i, got[i].URL, w)
		}
	}
	// First occurrence wins, including its section tag.
	if got[0].Section != types.SectionWorld {
		t.Errorf("first-seen section lost: got %q", got[0].Section)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []types.FeedEntry{
		entry("https://x.test/a", types.SectionWorld),
		entry("https://x.test/a", types.SectionWorld),
		entry("https://x.test/b", types.SectionWorld),
	}

	once := Deduplicate(in)
	twice := Deduplicate(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Deduplicate is not idempotent: %v vs %v", once, twice)
	}
}

func TestDeduplicateAcrossFeeds(t *testing.T) {
	// Two feeds each return the same URL; the batch-facing sequence must
	// keep exactly one entry for it.
	feedA := []types.FeedEntry{entry("https://x.test/a", types.SectionWorld)}
	feedB := []types.FeedEntry{entry("https://x.test/a", types.SectionUSTech)}

	got := Deduplicate(append(feedA, feedB...))
	if len(got) != 1 {
		t.Fatalf("expected 1 entry for duplicate URL, got %d", len(got))
	}
	if got[0].Section != types.SectionWorld {
		t.Errorf("expected first feed's entry to win, got section %q", got[0].Section)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Fatalf("empty input should yield empty output, got %d entries", len(got))
	}
}
