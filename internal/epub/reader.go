package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Reader provides access to the contents of an EPUB container.
type Reader struct {
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
	opfPath   string
}

// container.xml structure
type container struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

var (
	ErrInvalidMimetype    = errors.New("invalid mimetype: must be 'application/epub+zip'")
	ErrMimetypeCompressed = errors.New("mimetype must not be compressed")
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
	ErrContainerNotFound  = errors.New("META-INF/container.xml not found")
	ErrOPFPathNotFound    = errors.New("OPF path not found in container.xml")
)

// Open opens an EPUB file and validates its container structure.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	r := &Reader{
		zipReader: zr,
		files:     make(map[string]*zip.File),
	}

	for _, f := range zr.File {
		r.files[normalizePath(f.Name)] = f
	}

	if err := r.validateMimetype(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseContainer(); err != nil {
		zr.Close()
		return nil, err
	}

	return r, nil
}

// Close closes the underlying zip archive.
func (r *Reader) Close() error {
	return r.zipReader.Close()
}

// OPFPath returns the path to the package document inside the container.
func (r *Reader) OPFPath() string {
	return r.opfPath
}

// ReadFile reads the contents of a file from the EPUB.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	name = normalizePath(name)
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// ReadOPF reads and parses the package document.
func (r *Reader) ReadOPF() (*OPF, error) {
	data, err := r.ReadFile(r.opfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OPF: %w", err)
	}
	return ParseOPF(data, path.Dir(r.opfPath))
}

// validateMimetype checks that the mimetype file exists and is valid
func (r *Reader) validateMimetype() error {
	f, ok := r.files["mimetype"]
	if !ok {
		return ErrMimetypeNotFound
	}

	if f.Method != zip.Store {
		return ErrMimetypeCompressed
	}

	content, err := r.ReadFile("mimetype")
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}

	if string(content) != "application/epub+zip" {
		return ErrInvalidMimetype
	}

	return nil
}

// parseContainer parses container.xml to extract the OPF path
func (r *Reader) parseContainer() error {
	content, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return ErrContainerNotFound
	}

	var c container
	if err := xml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("failed to parse container.xml: %w", err)
	}

	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			r.opfPath = normalizePath(rf.FullPath)
			return nil
		}
	}

	// No media-type match: fall back to the first rootfile
	if len(c.Rootfiles.Rootfile) > 0 {
		r.opfPath = normalizePath(c.Rootfiles.Rootfile[0].FullPath)
		return nil
	}

	return ErrOPFPathNotFound
}

// normalizePath normalizes container paths (removes ./ prefix)
func normalizePath(p string) string {
	return strings.TrimPrefix(p, "./")
}
