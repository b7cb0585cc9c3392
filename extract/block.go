package extract

import "strings"

// DefaultBlockPhrases are signatures of pages served instead of real
// content: paywalls, ad-blocker walls, CAPTCHA challenges and JS
// checks. Matching is case-insensitive substring search over extracted
// text. The set is policy data, not logic; deployments override it via
// configuration.
var DefaultBlockPhrases = []string{
	"please enable javascript and cookies",
	"enable javascript and cookies to continue",
	"checking if the site connection is secure",
	"verify you are a human",
	"are you a robot",
	"complete the captcha",
	"access to this page has been denied",
	"subscribe to continue reading",
	"subscribe to read this article",
	"this content is for subscribers only",
	"to continue reading, please subscribe",
	"you have reached your article limit",
	"please disable your ad blocker",
	"ad blocker detected",
	"sign in to continue reading",
	"register to continue reading",
}

// BlockDetector scans extracted text for block-page signatures.
type BlockDetector struct {
	phrases []string
}

// NewBlockDetector builds a detector over the given phrases, falling
// back to DefaultBlockPhrases when none are provided. Phrases are
// lower-cased once at construction.
func NewBlockDetector(phrases []string) *BlockDetector {
	if len(phrases) == 0 {
		phrases = DefaultBlockPhrases
	}
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return &BlockDetector{phrases: lowered}
}

// Detect reports whether the text contains a block signature, returning
// the first matched phrase. The match triggers even when the phrase
// appears inside an otherwise successfully extracted article body.
func (d *BlockDetector) Detect(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, p := range d.phrases {
		if strings.Contains(lowered, p) {
			return p, true
		}
	}
	return "", false
}
