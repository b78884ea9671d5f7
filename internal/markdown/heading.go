package markdown

import (
	"regexp"
	"strings"
)

// Only levels 1 and 2 are recognized as structural boundaries; deeper
// headings stay inside their chapter.
var (
	headingLine     = regexp.MustCompile(`^(#{1,2})\s+(.+)$`)
	topLevelHeading = regexp.MustCompile(`(?m)^#\s`)
)

// MatchHeading reports whether line is a level-1 or level-2 ATX heading
// and extracts its text and level.
func MatchHeading(line string) (text string, level int, ok bool) {
	m := headingLine.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[2]), len(m[1]), true
}

// HasTopLevelHeading reports whether the Markdown text contains a line
// starting a level-1 heading.
func HasTopLevelHeading(md string) bool {
	return topLevelHeading.MatchString(strings.TrimLeft(md, " \t\r\n"))
}
