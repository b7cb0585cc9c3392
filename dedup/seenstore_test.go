package dedup

import (
	"context"
	"testing"
)

func TestNilSeenStoreIsDisabled(t *testing.T) {
	var s *SeenStore

	seen, err := s.Seen(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("nil store Seen: %v", err)
	}
	if seen {
		t.Error("nil store must report nothing as seen")
	}
	if err := s.Mark(context.Background(), "https://example.com/article"); err != nil {
		t.Fatalf("nil store Mark: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("nil store Close: %v", err)
	}
}

func TestHashKeyStable(t *testing.T) {
	a := hashKey("https://example.com/article?a=1")
	b := hashKey("https://example.com/article?a=1")
	c := hashKey("https://example.com/article?a=2")
	if a != b {
		t.Error("same URL must hash to the same key")
	}
	if a == c {
		t.Error("different URLs must not collide")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}
