package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ymorin/epubmd/internal/epub"
	"github.com/ymorin/epubmd/internal/markdown"
)

// ConvertOptions holds options for the EPUB to Markdown pipeline.
type ConvertOptions struct {
	InputPath     string
	OutputPath    string // single mode output file
	OutDir        string // split mode output directory
	Prefix        string // split mode chapter filename prefix
	ImgDir        string // image subdirectory name
	ExtractImages bool
	CoverBanner   bool
	Logger        *slog.Logger
}

// Pipeline orchestrates the EPUB to Markdown conversion.
type Pipeline struct {
	opts ConvertOptions
	log  *slog.Logger
}

// NewPipeline creates a new conversion pipeline.
func NewPipeline(opts ConvertOptions) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{opts: opts, log: log}
}

// ConvertSingle converts the EPUB to one Markdown file: a title heading,
// an optional cover banner, then every spine document in reading order.
func (p *Pipeline) ConvertSingle() error {
	reader, opf, err := p.openBook()
	if err != nil {
		return err
	}
	defer reader.Close()

	outDir := filepath.Dir(p.opts.OutputPath)
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	assets := NewAssetMap()
	if p.opts.ExtractImages {
		assets, err = ExportImages(reader, opf, outDir, p.opts.ImgDir, p.log)
		if err != nil {
			return err
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "# %s\n\n", p.bookTitle(opf))

	if p.opts.CoverBanner {
		if rel, ok := assets.CoverPath(); ok {
			fmt.Fprintf(&out, "![](%s)\n\n", rel)
		}
	}

	for item := range opf.SpineDocuments() {
		html, md, ok := p.loadDocument(reader, assets, item)
		if !ok {
			continue
		}
		if title, found := markdown.ExtractTitle(html); found && !markdown.HasTopLevelHeading(md) {
			fmt.Fprintf(&out, "## %s\n\n", title)
		}
		out.WriteString(md)
		out.WriteString("\n\n")
	}

	if err := os.WriteFile(p.opts.OutputPath, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.opts.OutputPath, err)
	}
	return nil
}

// ConvertSplit converts the EPUB to one Markdown file per spine document
// plus an index.md listing them. Returns the index path and the number of
// chapter files written.
func (p *Pipeline) ConvertSplit() (string, int, error) {
	reader, opf, err := p.openBook()
	if err != nil {
		return "", 0, err
	}
	defer reader.Close()

	if err := os.MkdirAll(p.opts.OutDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	assets := NewAssetMap()
	if p.opts.ExtractImages {
		assets, err = ExportImages(reader, opf, p.opts.OutDir, p.opts.ImgDir, p.log)
		if err != nil {
			return "", 0, err
		}
	}

	var indexLines []string
	num := 1

	for item := range opf.SpineDocuments() {
		html, md, ok := p.loadDocument(reader, assets, item)
		if !ok {
			continue
		}

		title, found := markdown.ExtractTitle(html)
		if !found {
			title = fmt.Sprintf("Chapitre %d", num)
		}
		slug := markdown.Slugify(title, fmt.Sprintf("%s-%02d", p.opts.Prefix, num))
		filename := fmt.Sprintf("%s-%02d-%s.md", p.opts.Prefix, num, slug)

		var chapter strings.Builder
		if !markdown.HasTopLevelHeading(md) {
			fmt.Fprintf(&chapter, "# %s\n\n", title)
		}
		chapter.WriteString(md)

		chapterPath := filepath.Join(p.opts.OutDir, filename)
		if err := os.WriteFile(chapterPath, []byte(chapter.String()), 0o644); err != nil {
			return "", 0, fmt.Errorf("failed to write %s: %w", chapterPath, err)
		}

		indexLines = append(indexLines, fmt.Sprintf("- [%s](%s)", title, filename))
		num++
	}

	var index strings.Builder
	fmt.Fprintf(&index, "# %s\n\n", p.bookTitle(opf))
	if p.opts.CoverBanner {
		if rel, ok := assets.CoverPath(); ok {
			fmt.Fprintf(&index, "![](%s)\n\n", rel)
		}
	}
	index.WriteString(strings.Join(indexLines, "\n"))
	index.WriteString("\n")

	indexPath := filepath.Join(p.opts.OutDir, "index.md")
	if err := os.WriteFile(indexPath, []byte(index.String()), 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write index: %w", err)
	}

	return indexPath, num - 1, nil
}

// openBook opens the input EPUB and parses its package document.
func (p *Pipeline) openBook() (*epub.Reader, *epub.OPF, error) {
	reader, err := epub.Open(p.opts.InputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	opf, err := reader.ReadOPF()
	if err != nil {
		reader.Close()
		return nil, nil, fmt.Errorf("failed to parse OPF: %w", err)
	}

	return reader, opf, nil
}

// loadDocument reads one spine document, rewrites its asset references and
// converts it to Markdown. Unreadable or unconvertible documents are
// logged and reported as not ok.
func (p *Pipeline) loadDocument(reader *epub.Reader, assets *AssetMap, item epub.ManifestItem) (html, md string, ok bool) {
	data, err := reader.ReadFile(item.Href)
	if err != nil {
		p.log.Warn("failed to read document, skipping", "href", item.Href, "error", err)
		return "", "", false
	}

	html = assets.Rewrite(string(data))

	md, err = markdown.ToMarkdown(html)
	if err != nil {
		p.log.Warn("failed to convert document, skipping", "href", item.Href, "error", err)
		return "", "", false
	}

	return html, md, true
}

// bookTitle returns the metadata title, or the input filename stem when
// the metadata carries none.
func (p *Pipeline) bookTitle(opf *epub.OPF) string {
	if opf.Metadata.Title != "" {
		return opf.Metadata.Title
	}
	base := filepath.Base(p.opts.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
