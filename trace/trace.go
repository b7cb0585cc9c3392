// Package trace persists one record per model invocation so every prompt
// and raw response of a run can be audited after the fact.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"newsbrief/types"
)

// Sink is an append-only write target for model-call records. The
// pipeline writes one record per call and never reads its own output.
// Implementations must be safe for concurrent writers.
type Sink interface {
	Write(rec types.TraceRecord) error
	Close() error
}

// FileSink appends records as JSON lines to a file keyed by model and
// run start time, e.g. traces/llama3-20240115T063000Z.jsonl.
type FileSink struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFileSink creates the trace directory if needed and opens the run's
// trace file.
func NewFileSink(dir, model string, runStart time.Time) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating trace dir %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s-%s.jsonl", sanitizeModel(model), runStart.UTC().Format("20060102T150405Z"))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening trace file %s: %w", path, err)
	}
	return &FileSink{f: f, path: path}, nil
}

// Path returns the trace file location.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Write(rec types.TraceRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding trace record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("writing trace record: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

func sanitizeModel(model string) string {
	model = strings.ReplaceAll(model, "/", "-")
	model = strings.ReplaceAll(model, ":", "-")
	if model == "" {
		model = "model"
	}
	return model
}

// MemorySink collects records in memory for tests to assert exact call
// sequences.
type MemorySink struct {
	mu      sync.Mutex
	records []types.TraceRecord
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Write(rec types.TraceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemorySink) Close() error { return nil }

// Records returns a copy of everything written so far.
func (s *MemorySink) Records() []types.TraceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.TraceRecord, len(s.records))
	copy(out, s.records)
	return out
}
