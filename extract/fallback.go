package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minParagraphLength filters out nav crumbs and photo credits that
// survive the tag stripping.
const minParagraphLength = 30

// fallbackStrategy is the generic HTML-tag-based extraction path used
// when readability errors or returns too little text. It strips chrome
// elements, looks for the main content container, and joins paragraph
// text.
func fallbackStrategy(html string, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, nav, header, footer, aside, noscript").Remove()

	root := findContentRoot(doc)
	if root == nil {
		return "", nil
	}

	var parts []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len(text) >= minParagraphLength {
			parts = append(parts, text)
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n"), nil
	}

	// No usable paragraphs: fall back to the container's full text.
	return normalizeWhitespace(root.Text()), nil
}

// findContentRoot walks the usual suspects for the main content area,
// mirroring how article pages typically mark their body.
func findContentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"article", "main"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	for _, sel := range []string{"[class*=article]", "[class*=content]", "div.post"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if s := doc.Find("body").First(); s.Length() > 0 {
		return s
	}
	return nil
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
