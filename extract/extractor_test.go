package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsbrief/retry"
)

func fastRetry(attempts int) retry.Policy {
	return retry.Policy{MaxAttempts: attempts, BaseDelay: time.Millisecond, Multiplier: 1}
}

func testExtractor() *Extractor {
	return New(Config{
		Timeout:       5 * time.Second,
		MinTextLength: 100,
		Retry:         fastRetry(1),
	})
}

const articleHTML = `<!DOCTYPE html>
<html><head><title>Chip maker expands</title></head>
<body>
<nav>Home | Business | Tech</nav>
<article>
<p>The semiconductor manufacturer announced a three billion dollar expansion of its fabrication campus on Tuesday, citing sustained demand.</p>
<p>Construction of the two new plants is expected to begin early next year and create roughly four thousand jobs in the region over five years.</p>
<p>Analysts said the move signals confidence that orders for automotive and industrial chips will keep growing despite a broader slowdown.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestExtractArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateExtracted {
		t.Fatalf("expected extracted, got %s (%s)", out.State, out.Reason)
	}
	if !strings.Contains(out.Text, "three billion dollar expansion") {
		t.Errorf("extracted text missing article body: %q", out.Text)
	}
	if strings.Contains(out.Text, "Copyright") && strings.Contains(out.Text, "Home | Business") {
		t.Errorf("extracted text still contains page chrome: %q", out.Text)
	}
}

func TestExtractBlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Please enable Javascript and cookies to continue</p></body></html>`))
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateBlocked {
		t.Fatalf("expected blocked, got %s (%s)", out.State, out.Reason)
	}
}

func TestBlockOverridesSuccessfulExtraction(t *testing.T) {
	// The signature buried in an otherwise full article still wins.
	page := strings.Replace(articleHTML,
		"</article>",
		"<p>You have reached your article limit for this month, thanks for reading.</p></article>", 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateBlocked {
		t.Fatalf("expected blocked, got %s (%s)", out.State, out.Reason)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Too short to be a usable article body here.</p></body></html>`))
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateEmpty {
		t.Fatalf("expected empty, got %s (%s)", out.State, out.Reason)
	}
}

func TestExtractHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateFailed {
		t.Fatalf("expected failed, got %s", out.State)
	}
	if !strings.Contains(out.Reason, "404") {
		t.Errorf("reason should mention the HTTP status: %q", out.Reason)
	}
}

func TestExtractNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateFailed {
		t.Fatalf("expected failed for non-HTML content, got %s", out.State)
	}
}

func TestExtractNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connections now refused

	out := testExtractor().Extract(context.Background(), srv.URL)
	if out.State != StateFailed {
		t.Fatalf("expected failed for unreachable host, got %s", out.State)
	}
}

func TestExtractRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := New(Config{MinTextLength: 100, Retry: fastRetry(3)})
	out := e.Extract(context.Background(), srv.URL)
	if out.State != StateExtracted {
		t.Fatalf("expected success after retries, got %s (%s)", out.State, out.Reason)
	}
	if attempts != 3 {
		t.Errorf("expected 3 fetch attempts, got %d", attempts)
	}
}

func TestExtractEmptyURL(t *testing.T) {
	out := testExtractor().Extract(context.Background(), "  ")
	if out.State != StateFailed {
		t.Fatalf("expected failed for empty URL, got %s", out.State)
	}
}
