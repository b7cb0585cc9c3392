package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Section identifies which feed bucket an article came from.
type Section string

const (
	SectionWorld            Section = "world"
	SectionUSTech           Section = "us-tech"
	SectionUSIndustry       Section = "us-industry"
	SectionMalaysiaTech     Section = "malaysia-tech"
	SectionMalaysiaIndustry Section = "malaysia-industry"
)

// ExtractionState tracks where an article is in the extraction lifecycle.
type ExtractionState string

const (
	ExtractionPending   ExtractionState = "pending"
	ExtractionExtracted ExtractionState = "extracted"
	ExtractionBlocked   ExtractionState = "blocked"
	ExtractionFailed    ExtractionState = "failed"
	ExtractionEmpty     ExtractionState = "empty"
)

// SummaryState tracks the outcome of the summarization stage.
type SummaryState string

const (
	SummaryNotAttempted SummaryState = "not_attempted"
	SummarySucceeded    SummaryState = "succeeded"
	SummaryFailed       SummaryState = "failed"
)

// FeedEntry is a raw item from a source feed. Entries are immutable once
// produced by the feed client; duplicate URLs across feeds are expected.
type FeedEntry struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Section     Section   `json:"section"`
}

// ArticleRecord is the unit the pipeline operates on end to end.
// SummaryState can only be SummarySucceeded when ExtractionState is
// ExtractionExtracted; no model call is ever issued for blocked, failed
// or empty articles.
type ArticleRecord struct {
	URL             string          `json:"url"`
	Title           string          `json:"title"`
	Section         Section         `json:"section"`
	PublishedAt     time.Time       `json:"published_at"`
	ExtractionState ExtractionState `json:"extraction_state"`
	RawText         string          `json:"raw_text,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	SummaryState    SummaryState    `json:"summary_state"`
	ErrorDetail     string          `json:"error_detail,omitempty"`
}

// NewArticleRecord creates a pending record for a deduplicated feed entry.
func NewArticleRecord(entry FeedEntry) *ArticleRecord {
	return &ArticleRecord{
		URL:             entry.URL,
		Title:           entry.Title,
		Section:         entry.Section,
		PublishedAt:     entry.PublishedAt,
		ExtractionState: ExtractionPending,
		SummaryState:    SummaryNotAttempted,
	}
}

// Summarizable reports whether the article is eligible for a model call.
func (a *ArticleRecord) Summarizable() bool {
	return a.ExtractionState == ExtractionExtracted && a.RawText != ""
}

// TraceRecord captures one model invocation: the exact prompt sent and the
// raw response (or error) received. Records are write-once; the pipeline
// never reads its own trace output.
type TraceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model"`
	URL       string    `json:"url"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response,omitempty"`
	Err       string    `json:"error,omitempty"`
}

// BatchResult is the sole output of one pipeline run: exactly one record
// per deduplicated input URL, preserving input order.
type BatchResult struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Model      string           `json:"model"`
	Articles   []*ArticleRecord `json:"articles"`
}

// Summarized counts articles with a successful summary.
func (b *BatchResult) Summarized() int {
	n := 0
	for _, a := range b.Articles {
		if a.SummaryState == SummarySucceeded {
			n++
		}
	}
	return n
}

// Extracted counts articles whose text extraction succeeded.
func (b *BatchResult) Extracted() int {
	n := 0
	for _, a := range b.Articles {
		if a.ExtractionState == ExtractionExtracted {
			n++
		}
	}
	return n
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
