package converter

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
	"testing"
)

// testChapter is one XHTML content file of a generated test EPUB.
type testChapter struct {
	id   string
	href string // relative to OEBPS/
	html string
}

// testImage is one image asset of a generated test EPUB.
type testImage struct {
	id        string
	href      string // relative to OEBPS/
	mediaType string
	props     string
	data      []byte
}

// testBook describes a test EPUB to generate.
type testBook struct {
	title    string
	metaTags string // raw extra <meta .../> elements
	chapters []testChapter
	images   []testImage
}

// writeTestEPUB generates a minimal EPUB at path from the description.
// The spine lists chapters in slice order.
func writeTestEPUB(t *testing.T, path string, book testBook) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test epub: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	mw, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	mw.Write([]byte("application/epub+zip"))

	cw, _ := w.Create("META-INF/container.xml")
	cw.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`))

	var manifest, spine strings.Builder
	for _, ch := range book.chapters {
		fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="application/xhtml+xml"/>%s`, ch.id, ch.href, "\n")
		fmt.Fprintf(&spine, `    <itemref idref="%s"/>%s`, ch.id, "\n")
	}
	for _, img := range book.images {
		props := ""
		if img.props != "" {
			props = fmt.Sprintf(` properties="%s"`, img.props)
		}
		fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="%s"%s/>%s`, img.id, img.href, img.mediaType, props, "\n")
	}

	ow, _ := w.Create("OEBPS/content.opf")
	fmt.Fprintf(ow, `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>%s</dc:title>
    <dc:language>fr</dc:language>
%s  </metadata>
  <manifest>
%s  </manifest>
  <spine>
%s  </spine>
</package>`, book.title, book.metaTags, manifest.String(), spine.String())

	for _, ch := range book.chapters {
		fw, _ := w.Create("OEBPS/" + ch.href)
		fw.Write([]byte(ch.html))
	}
	for _, img := range book.images {
		fw, _ := w.Create("OEBPS/" + img.href)
		fw.Write(img.data)
	}
}
