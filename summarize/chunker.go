package summarize

import "strings"

// SplitChunks splits text into ordered chunks at sentence boundaries so
// that each chunk is at or below budget characters. A chunk never ends
// mid-sentence; a single sentence longer than the budget becomes its
// own over-budget chunk rather than being cut.
func SplitChunks(text string, budget int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if budget <= 0 || len(text) <= budget {
		return []string{text}
	}

	sentences := SplitSentences(text)

	var chunks []string
	var current strings.Builder
	for _, s := range sentences {
		if current.Len() == 0 {
			current.WriteString(s)
			continue
		}
		// +1 for the joining space.
		if current.Len()+1+len(s) <= budget {
			current.WriteByte(' ')
			current.WriteString(s)
			continue
		}
		chunks = append(chunks, current.String())
		current.Reset()
		current.WriteString(s)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// sentence terminators; a terminator only ends a sentence when followed
// by whitespace (or end of text), optionally after closing quotes.
func isTerminator(r byte) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosing(r byte) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']'
}

// SplitSentences splits text into trimmed sentences, keeping the
// terminating punctuation with each sentence. Paragraph breaks always
// end a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	n := len(text)

	for i := 0; i < n; i++ {
		if isTerminator(text[i]) {
			end := i + 1
			for end < n && isClosing(text[end]) {
				end++
			}
			if end >= n || text[end] == ' ' || text[end] == '\n' || text[end] == '\t' || text[end] == '\r' {
				if s := strings.TrimSpace(text[start:end]); s != "" {
					sentences = append(sentences, s)
				}
				start = end
				i = end - 1
			}
		} else if text[i] == '\n' && i+1 < n && text[i+1] == '\n' {
			// Paragraph boundary without terminal punctuation (headings,
			// bylines) still closes the sentence.
			if s := strings.TrimSpace(text[start:i]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
