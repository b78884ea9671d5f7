package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ymorin/epubmd/internal/epub"
)

// AssetMap maps original asset references (full internal paths and bare
// basenames) to their exported relative paths. Iteration is deterministic,
// in insertion order, so reference rewriting is reproducible.
type AssetMap struct {
	keys   []string
	values map[string]string
}

// NewAssetMap creates an empty asset map.
func NewAssetMap() *AssetMap {
	return &AssetMap{values: make(map[string]string)}
}

// Put records a reference mapping. Re-putting an existing key updates the
// value without changing its position.
func (m *AssetMap) Put(ref, rel string) {
	if _, ok := m.values[ref]; !ok {
		m.keys = append(m.keys, ref)
	}
	m.values[ref] = rel
}

// Get returns the exported path for a reference.
func (m *AssetMap) Get(ref string) (string, bool) {
	rel, ok := m.values[ref]
	return rel, ok
}

// Len returns the number of distinct references.
func (m *AssetMap) Len() int {
	return len(m.keys)
}

// Rewrite replaces every literal occurrence of every mapped reference in
// text with its exported path, in insertion order. Literal substring
// replacement means a key that is a substring of another may act on text
// already rewritten; this is an accepted limitation.
func (m *AssetMap) Rewrite(text string) string {
	for _, key := range m.keys {
		text = strings.ReplaceAll(text, key, m.values[key])
	}
	return text
}

// CoverPath returns the exported path of the cover asset: the first mapped
// value whose basename starts with "cover.".
func (m *AssetMap) CoverPath() (string, bool) {
	seen := make(map[string]bool)
	for _, key := range m.keys {
		rel := m.values[key]
		if seen[rel] {
			continue
		}
		seen[rel] = true
		if strings.HasPrefix(strings.ToLower(path.Base(rel)), "cover.") {
			return rel, true
		}
	}
	return "", false
}

// ExportImages writes every image asset of the book under outDir/imgDir,
// creating the directory if needed. The detected cover is renamed to
// "cover.<ext>" (".jpg" when the source name has no extension); other
// assets keep their basename, with a numeric suffix appended to the stem
// when two distinct sources collide on one name. The returned map carries
// two keys per exported asset, the full internal href and the bare
// basename, both pointing at "imgDir/<final name>".
func ExportImages(reader *epub.Reader, opf *epub.OPF, outDir, imgDir string, logger *slog.Logger) (*AssetMap, error) {
	if logger == nil {
		logger = slog.Default()
	}

	imagesPath := filepath.Join(outDir, imgDir)
	if err := os.MkdirAll(imagesPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	assets := NewAssetMap()
	cover := opf.DetectCover()
	taken := make(map[string]bool)

	for _, item := range opf.ImageItems() {
		data, err := reader.ReadFile(item.Href)
		if err != nil {
			logger.Warn("failed to read image, skipping", "href", item.Href, "error", err)
			continue
		}

		srcName := path.Base(item.Href)
		var dstName string
		if cover != nil && item.Href == cover.Href {
			ext := path.Ext(srcName)
			if ext == "" {
				ext = ".jpg"
			}
			dstName = "cover" + ext
		} else {
			dstName = srcName
		}
		dstName = uniqueName(taken, dstName)
		taken[dstName] = true

		if err := os.WriteFile(filepath.Join(imagesPath, dstName), data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write image %s: %w", dstName, err)
		}

		rel := path.Join(imgDir, dstName)
		assets.Put(item.Href, rel)
		assets.Put(srcName, rel)
	}

	return assets, nil
}

// uniqueName appends "_1", "_2", ... to the name stem until the name is
// free among taken destination names.
func uniqueName(taken map[string]bool, name string) string {
	if !taken[name] {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}
