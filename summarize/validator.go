package summarize

import (
	"fmt"
	"regexp"
	"strings"
)

// minSummaryLength rejects outputs too short to be a real summary.
const minSummaryLength = 80

// maxSummaryLength rejects runaway outputs that ignored the sentence
// target entirely.
const maxSummaryLength = 4000

// refusalPatterns match common model refusals and meta-commentary that
// gets produced instead of an actual summary.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi cannot\b`),
	regexp.MustCompile(`(?i)\bi can't\b`),
	regexp.MustCompile(`(?i)\bi am unable to\b`),
	regexp.MustCompile(`(?i)\bi'm unable to\b`),
	regexp.MustCompile(`(?i)\bunable to (provide|generate|create|summarize|write)\b`),
	regexp.MustCompile(`(?i)\bcannot (provide|generate|create|summarize|write)\b`),
	regexp.MustCompile(`(?i)\bi apologize\b`),
	regexp.MustCompile(`(?i)\bi'm sorry\b.*\b(cannot|can't|unable)\b`),
	regexp.MustCompile(`(?i)\bno information (available|provided|found)\b`),
	regexp.MustCompile(`(?i)\binsufficient information\b`),
	regexp.MustCompile(`(?i)\bnot enough (content|information|details)\b`),
	regexp.MustCompile(`(?i)^as an ai\b`),
}

// leadInPattern strips boilerplate openers some models prepend despite
// the prompt asking for summary text only.
var leadInPattern = regexp.MustCompile(`(?i)^(here is|here's|sure[,!]?|certainly[,!]?)\s+(a|the|your)?\s*(concise\s+)?summary[^:\n]*:\s*`)

// CleanSummary trims whitespace and strips a boilerplate lead-in if the
// model added one.
func CleanSummary(s string) string {
	s = strings.TrimSpace(s)
	s = leadInPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ValidateSummary checks model output for refusals and degenerate
// length. A validation failure is treated as a retryable model failure
// by the summarizer.
func ValidateSummary(s string) error {
	s = strings.TrimSpace(s)
	if len(s) < minSummaryLength {
		return fmt.Errorf("summary too short (%d chars, minimum %d)", len(s), minSummaryLength)
	}
	if len(s) > maxSummaryLength {
		return fmt.Errorf("summary too long (%d chars, maximum %d)", len(s), maxSummaryLength)
	}
	for _, p := range refusalPatterns {
		if p.MatchString(s) {
			return fmt.Errorf("refusal pattern detected: %s", p.String())
		}
	}
	return nil
}
