package converter

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ymorin/epubmd/internal/epub"
	"github.com/ymorin/epubmd/internal/markdown"
)

// AssembleOptions holds options for the Markdown to EPUB pipeline.
// Explicit metadata fields win over values extracted from front matter.
type AssembleOptions struct {
	InputPath   string
	OutputPath  string
	Title       string
	Author      string
	Description string
	Language    string
	Logger      *slog.Logger
}

// Assembler builds a packaged EPUB from a flat Markdown document.
type Assembler struct {
	opts AssembleOptions
	log  *slog.Logger
}

// NewAssembler creates a new assembler.
func NewAssembler(opts AssembleOptions) *Assembler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{opts: opts, log: log}
}

// imageRef matches Markdown image references: ![alt](path)
var imageRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// Convert reads the input document, splits it into chapters and writes the
// EPUB. It fails without creating an output file when no non-empty chapter
// remains after filtering.
func (a *Assembler) Convert() error {
	raw, err := os.ReadFile(a.opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.opts.InputPath, err)
	}

	front, body := markdown.ParseFrontMatter(string(raw))
	meta := a.mergeMetadata(front)

	baseDir := filepath.Dir(a.opts.InputPath)
	assets, images := a.collectImages(body, baseDir)

	chapters, err := a.buildChapters(body, assets, meta.Language)
	if err != nil {
		return err
	}

	book := &epub.Book{
		Metadata:   meta,
		Chapters:   chapters,
		Stylesheet: defaultCSS,
		Images:     images,
	}

	if dir := filepath.Dir(a.opts.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	return epub.WriteBook(a.opts.OutputPath, book)
}

// mergeMetadata merges explicit options over front-matter values, with the
// defaults the output format needs.
func (a *Assembler) mergeMetadata(front markdown.Metadata) epub.Metadata {
	title := firstNonEmpty(a.opts.Title, front.Title, stem(a.opts.InputPath))
	author := firstNonEmpty(a.opts.Author, front.Author, "Auteur inconnu")

	return epub.Metadata{
		Title:       title,
		Creators:    []epub.Creator{{Name: author, Role: "aut"}},
		Language:    firstNonEmpty(a.opts.Language, front.Language, "fr"),
		Identifier:  firstNonEmpty(front.Identifier, fmt.Sprintf("md2epub-%s", time.Now().Format("20060102-150405"))),
		Date:        firstNonEmpty(front.Date, time.Now().Format("2006-01-02")),
		Description: firstNonEmpty(a.opts.Description, front.Description),
	}
}

// buildChapters splits the body into chapters and converts each to an
// XHTML content unit. Chapters that are empty after trimming, or that
// convert to empty HTML, are skipped with a warning. Zero surviving
// chapters is an error.
func (a *Assembler) buildChapters(body string, assets *AssetMap, lang string) ([]epub.BookChapter, error) {
	split := markdown.SplitChapters(body, "Chapitre")

	var chapters []epub.BookChapter
	for i, ch := range split {
		if strings.TrimSpace(ch.Body) == "" {
			a.log.Warn("empty chapter, skipping", "title", ch.Title)
			continue
		}

		htmlBody, err := markdown.ToHTML(assets.Rewrite(ch.Body))
		if err != nil {
			a.log.Warn("failed to convert chapter, skipping", "title", ch.Title, "error", err)
			continue
		}
		if strings.TrimSpace(htmlBody) == "" {
			a.log.Warn("chapter converted to empty HTML, skipping", "title", ch.Title)
			continue
		}

		chapters = append(chapters, epub.BookChapter{
			ID:       fmt.Sprintf("chapter-%02d", i+1),
			Filename: fmt.Sprintf("chapter_%02d.xhtml", i+1),
			Title:    ch.Title,
			Body:     wrapChapter(ch.Title, htmlBody, lang),
		})
	}

	if len(chapters) == 0 {
		return nil, fmt.Errorf("no valid chapters found in %s", a.opts.InputPath)
	}
	return chapters, nil
}

// collectImages scans the raw Markdown for image references, resolves them
// against baseDir and loads their content. Destination basenames are
// de-collided with a numeric suffix on the stem; media types are sniffed
// from content. Unresolvable references are skipped with a warning.
func (a *Assembler) collectImages(body, baseDir string) (*AssetMap, []epub.BookImage) {
	assets := NewAssetMap()
	var images []epub.BookImage
	taken := make(map[string]bool)

	for _, m := range imageRef.FindAllStringSubmatch(body, -1) {
		imgPath := m[2]
		if _, done := assets.Get(imgPath); done {
			continue
		}

		fullPath := imgPath
		if !filepath.IsAbs(fullPath) {
			fullPath = filepath.Join(baseDir, imgPath)
		}

		data, err := os.ReadFile(fullPath)
		if err != nil {
			a.log.Warn("image not found, skipping", "path", imgPath)
			continue
		}

		name := uniqueName(taken, filepath.Base(fullPath))
		taken[name] = true

		images = append(images, epub.BookImage{
			Name:      name,
			MediaType: mimetype.Detect(data).String(),
			Data:      data,
		})
		assets.Put(imgPath, "images/"+name)
	}

	return assets, images
}

// wrapChapter produces the complete XHTML document for one chapter. The
// title heading is added only when the converted body does not already
// carry one.
func wrapChapter(title, htmlBody, lang string) string {
	heading := ""
	if !strings.Contains(htmlBody, "<h1") {
		heading = fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" lang="%s">
<head>
  <title>%s</title>
  <link rel="stylesheet" type="text/css" href="style/default.css"/>
</head>
<body>
%s%s</body>
</html>
`, html.EscapeString(lang), html.EscapeString(title), heading, htmlBody)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
