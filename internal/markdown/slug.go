package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// diacriticFolder decomposes letters and drops their combining marks,
// so "é" slugs to "e".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns an arbitrary title into a filesystem-safe identifier:
// lowercase, words separated by single hyphens, nothing else. If nothing
// survives the cleanup, fallback is returned verbatim (the fallback is
// assumed to be valid already). Total over any input, including "".
func Slugify(name, fallback string) string {
	s := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	if s == "" {
		return fallback
	}
	if folded, _, err := transform.String(diacriticFolder, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}
