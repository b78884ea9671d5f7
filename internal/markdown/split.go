package markdown

import (
	"fmt"
	"strings"
)

// Chapter is one unit of a flat Markdown stream after splitting.
type Chapter struct {
	Title string
	Body  string
}

// SplitChapters partitions a flat Markdown stream into chapters. A level-1
// or level-2 heading line opens a new chapter; lines before the first
// heading belong to the first chapter; a document without any heading
// becomes a single chapter titled "<baseTitle> 1". Every input line lands
// in exactly one chapter: concatenating all bodies reproduces the input
// byte for byte.
func SplitChapters(content, baseTitle string) []Chapter {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var chapters []Chapter
	var buf strings.Builder
	title := ""
	titled := false
	num := 1

	flush := func() {
		t := title
		if t == "" {
			t = fmt.Sprintf("%s %d", baseTitle, num)
		}
		chapters = append(chapters, Chapter{Title: t, Body: buf.String()})
		num++
		buf.Reset()
	}

	for _, line := range lines {
		if text, _, ok := MatchHeading(line); ok {
			if titled {
				flush()
			}
			titled = true
			title = text
		}
		buf.WriteString(line)
	}
	flush()

	return chapters
}
