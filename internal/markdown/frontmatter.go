package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata holds the known front-matter keys plus any unrecognized ones,
// preserved opaquely in Extra for potential re-emission.
type Metadata struct {
	Title       string
	Author      string
	Description string
	Language    string
	Identifier  string
	Date        string
	Extra       map[string]string
}

// ParseFrontMatter extracts a YAML front-matter block from the start of a
// flat Markdown document. The block is delimited by a "---" line at
// document start and a matching closing line; values may be quoted.
// Returns the parsed metadata and the document body (content after the
// block). A missing or unparsable block yields zero metadata and the
// content unchanged.
func ParseFrontMatter(content string) (Metadata, string) {
	var meta Metadata

	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != "---" {
		return meta, content
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == "---" {
			closing = i
			break
		}
	}
	if closing < 0 {
		return meta, content
	}

	block := strings.Join(lines[1:closing], "")
	values := make(map[string]string)
	if err := yaml.Unmarshal([]byte(block), &values); err != nil {
		return meta, content
	}

	for key, value := range values {
		switch strings.ToLower(key) {
		case "title":
			meta.Title = value
		case "author":
			meta.Author = value
		case "description":
			meta.Description = value
		case "language":
			meta.Language = value
		case "identifier":
			meta.Identifier = value
		case "date":
			meta.Date = value
		default:
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[key] = value
		}
	}

	return meta, strings.Join(lines[closing+1:], "")
}
