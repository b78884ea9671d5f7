package markdown

import (
	"bytes"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ToMarkdown converts an XHTML fragment to Markdown. Link and image
// references are preserved and no line wrapping is applied.
func ToMarkdown(htmlStr string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle("atx"),
			),
			table.NewTablePlugin(),
		),
	)

	md, err := conv.ConvertString(htmlStr)
	if err != nil {
		return "", fmt.Errorf("convert HTML to markdown: %w", err)
	}
	return md, nil
}

// ToHTML converts Markdown to an XHTML body fragment. Fenced code blocks
// and tables are supported; single newlines become hard breaks.
func ToHTML(md string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
