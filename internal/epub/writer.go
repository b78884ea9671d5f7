package epub

import (
	"archive/zip"
	"fmt"
	"html"
	"os"
	"strings"
	"time"
)

// Book is the in-memory form of an EPUB about to be written. Chapters are
// written to the spine in slice order; the navigation documents are
// synthesized from the same order.
type Book struct {
	Metadata   Metadata
	Chapters   []BookChapter
	Stylesheet string // CSS content; omitted from the package when empty
	Images     []BookImage
}

// BookChapter is one content unit of a Book.
type BookChapter struct {
	ID       string // manifest identifier, e.g. "chapter-01"
	Filename string // path under OEBPS/, e.g. "chapter_01.xhtml"
	Title    string
	Body     string // complete XHTML document
}

// BookImage is one binary asset of a Book, stored under OEBPS/images/.
type BookImage struct {
	Name      string // basename within images/
	MediaType string
	Data      []byte
}

const (
	containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

	stylesheetPath = "style/default.css"
)

// WriteBook writes the book as an EPUB 3 container at path, with an EPUB 2
// NCX alongside the nav document for older readers. The mimetype entry is
// written first and stored uncompressed, as required by the spec.
func WriteBook(path string, book *Book) error {
	if len(book.Chapters) == 0 {
		return fmt.Errorf("cannot write EPUB without chapters")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := writeEntries(zw, book); err != nil {
		zw.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize EPUB: %w", err)
	}
	return nil
}

func writeEntries(zw *zip.Writer, book *Book) error {
	mw, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("failed to create mimetype entry: %w", err)
	}
	if _, err := mw.Write([]byte("application/epub+zip")); err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}

	md := normalizeMetadata(book.Metadata)

	entries := []struct {
		name string
		data []byte
	}{
		{"META-INF/container.xml", []byte(containerXML)},
		{"OEBPS/content.opf", buildOPF(book, md)},
		{"OEBPS/nav.xhtml", buildNav(book)},
		{"OEBPS/toc.ncx", buildNCX(book, md)},
	}

	if book.Stylesheet != "" {
		entries = append(entries, struct {
			name string
			data []byte
		}{"OEBPS/" + stylesheetPath, []byte(book.Stylesheet)})
	}

	for _, img := range book.Images {
		entries = append(entries, struct {
			name string
			data []byte
		}{"OEBPS/images/" + img.Name, img.Data})
	}

	for _, ch := range book.Chapters {
		entries = append(entries, struct {
			name string
			data []byte
		}{"OEBPS/" + ch.Filename, []byte(ch.Body)})
	}

	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}

	return nil
}

// normalizeMetadata fills the fields the package format cannot leave empty.
func normalizeMetadata(md Metadata) Metadata {
	if md.Title == "" {
		md.Title = "Untitled"
	}
	if md.Language == "" {
		md.Language = "fr"
	}
	if md.Identifier == "" {
		md.Identifier = fmt.Sprintf("md2epub-%s", time.Now().Format("20060102-150405"))
	}
	return md
}

// buildOPF renders the package document. Manifest and spine follow
// chapter order.
func buildOPF(book *Book, md Metadata) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="bookid">` + "\n")

	b.WriteString(`  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">` + "\n")
	fmt.Fprintf(&b, "    <dc:identifier id=\"bookid\">%s</dc:identifier>\n", xmlEscape(md.Identifier))
	fmt.Fprintf(&b, "    <dc:title>%s</dc:title>\n", xmlEscape(md.Title))
	fmt.Fprintf(&b, "    <dc:language>%s</dc:language>\n", xmlEscape(md.Language))
	for _, c := range md.Creators {
		fmt.Fprintf(&b, "    <dc:creator>%s</dc:creator>\n", xmlEscape(c.Name))
	}
	if md.Description != "" {
		fmt.Fprintf(&b, "    <dc:description>%s</dc:description>\n", xmlEscape(md.Description))
	}
	if md.Date != "" {
		fmt.Fprintf(&b, "    <dc:date>%s</dc:date>\n", xmlEscape(md.Date))
	}
	fmt.Fprintf(&b, "    <meta property=\"dcterms:modified\">%s</meta>\n",
		time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	b.WriteString("  </metadata>\n")

	b.WriteString("  <manifest>\n")
	b.WriteString(`    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>` + "\n")
	b.WriteString(`    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>` + "\n")
	if book.Stylesheet != "" {
		fmt.Fprintf(&b, "    <item id=\"style-default\" href=\"%s\" media-type=\"text/css\"/>\n", stylesheetPath)
	}
	for i, img := range book.Images {
		fmt.Fprintf(&b, "    <item id=\"img-%d\" href=\"images/%s\" media-type=\"%s\"/>\n",
			i+1, xmlEscape(img.Name), xmlEscape(img.MediaType))
	}
	for _, ch := range book.Chapters {
		fmt.Fprintf(&b, "    <item id=\"%s\" href=\"%s\" media-type=\"application/xhtml+xml\"/>\n",
			xmlEscape(ch.ID), xmlEscape(ch.Filename))
	}
	b.WriteString("  </manifest>\n")

	b.WriteString(`  <spine toc="ncx">` + "\n")
	for _, ch := range book.Chapters {
		fmt.Fprintf(&b, "    <itemref idref=\"%s\"/>\n", xmlEscape(ch.ID))
	}
	b.WriteString("  </spine>\n")
	b.WriteString("</package>\n")

	return []byte(b.String())
}

// buildNav renders the EPUB 3 navigation document listing chapters in order.
func buildNav(book *Book) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">` + "\n")
	b.WriteString("<head>\n  <title>Table des matières</title>\n</head>\n<body>\n")
	b.WriteString(`<nav epub:type="toc">` + "\n")
	b.WriteString("<h1>Table des matières</h1>\n<ol>\n")
	for _, ch := range book.Chapters {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", xmlEscape(ch.Filename), xmlEscape(ch.Title))
	}
	b.WriteString("</ol>\n</nav>\n</body>\n</html>\n")
	return []byte(b.String())
}

// buildNCX renders the EPUB 2 compatibility table of contents.
func buildNCX(book *Book, md Metadata) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">` + "\n")
	b.WriteString("  <head>\n")
	fmt.Fprintf(&b, "    <meta name=\"dtb:uid\" content=\"%s\"/>\n", xmlEscape(md.Identifier))
	b.WriteString(`    <meta name="dtb:depth" content="1"/>` + "\n")
	b.WriteString("  </head>\n")
	fmt.Fprintf(&b, "  <docTitle><text>%s</text></docTitle>\n", xmlEscape(md.Title))
	b.WriteString("  <navMap>\n")
	for i, ch := range book.Chapters {
		fmt.Fprintf(&b, "    <navPoint id=\"navpoint-%d\" playOrder=\"%d\">\n", i+1, i+1)
		fmt.Fprintf(&b, "      <navLabel><text>%s</text></navLabel>\n", xmlEscape(ch.Title))
		fmt.Fprintf(&b, "      <content src=\"%s\"/>\n", xmlEscape(ch.Filename))
		b.WriteString("    </navPoint>\n")
	}
	b.WriteString("  </navMap>\n</ncx>\n")
	return []byte(b.String())
}

func xmlEscape(s string) string {
	return html.EscapeString(s)
}
