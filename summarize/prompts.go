package summarize

import "fmt"

// Prompt templates keep the analyst briefing voice: direct, factual,
// specific numbers where available, no filler.

const summaryPromptTemplate = `You are a senior research analyst writing a morning briefing.
Summarize the following news article in exactly %d sentences.

Guidelines:
- Be direct and factual, like a wire-service headline expanded into prose
- Lead with the key news, then supporting details
- Include specific numbers (percentages, dollar amounts) when available
- Skip generic filler; every sentence must add value
- Output only the summary sentences, with no preamble

Article Title: %s

Article Content:
%s

Summary:`

const chunkPromptTemplate = `You are a senior research analyst. The text below is part %d of %d of a longer news article.
Write a partial summary of this part in at most %d sentences, keeping concrete facts and numbers. Do not mention that this is a partial text. Output only the summary sentences.

Article Title: %s

Article Part:
%s

Partial summary:`

const condensePromptTemplate = `You are a senior research analyst writing a morning briefing.
Below are partial summaries of consecutive parts of one news article, in order.
Merge them into a single summary of exactly %d sentences covering the whole article.

Guidelines:
- Be direct and factual
- Keep the most important facts and numbers from across all parts
- Output only the summary sentences, with no preamble

Article Title: %s

Partial summaries:
%s

Summary:`

func summaryPrompt(title, content string, sentences int) string {
	return fmt.Sprintf(summaryPromptTemplate, sentences, title, content)
}

func chunkPrompt(title, chunk string, part, total, sentences int) string {
	return fmt.Sprintf(chunkPromptTemplate, part, total, sentences, title, chunk)
}

func condensePrompt(title, partials string, sentences int) string {
	return fmt.Sprintf(condensePromptTemplate, sentences, title, partials)
}
