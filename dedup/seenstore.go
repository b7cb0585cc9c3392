package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenStore remembers canonical URLs processed by earlier runs so a feed
// that keeps re-serving the same items doesn't burn extraction and model
// budget every cycle. It is optional: a nil *SeenStore disables the check.
type SeenStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// SeenStoreConfig configures the Redis connection and key behaviour.
type SeenStoreConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Prefix   string // key prefix, default "newsbrief:seen:"
	TTL      time.Duration
}

// NewSeenStore connects to Redis and verifies connectivity.
func NewSeenStore(cfg SeenStoreConfig) (*SeenStore, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "newsbrief:seen:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &SeenStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

// Seen reports whether the canonical URL was marked in a prior run.
func (s *SeenStore) Seen(ctx context.Context, canonicalURL string) (bool, error) {
	if s == nil {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.prefix+hashKey(canonicalURL)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark records the canonical URL with the configured TTL.
func (s *SeenStore) Mark(ctx context.Context, canonicalURL string) error {
	if s == nil {
		return nil
	}
	return s.client.Set(ctx, s.prefix+hashKey(canonicalURL), 1, s.ttl).Err()
}

// Close closes the underlying Redis client.
func (s *SeenStore) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

func hashKey(canonicalURL string) string {
	// Keys are hashed so long URLs with odd characters stay Redis-friendly.
	h := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(h[:])
}
