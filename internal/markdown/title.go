package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelectors, in strict priority order: semantic headings outrank the
// document title, which outranks secondary headings.
var titleSelectors = []string{"h1", "title", "h2"}

// ExtractTitle infers a human-readable title from an HTML fragment.
// For each selector in priority order, the first matching element is
// inspected; its trimmed text wins if non-empty. Returns ("", false)
// when no candidate yields text.
func ExtractTitle(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	for _, selector := range titleSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}
