package epub

import (
	"path"
	"strings"
)

// CoverInfo holds information about the detected cover image.
type CoverInfo struct {
	ManifestID      string
	Href            string
	MediaType       string
	DetectionMethod string // "meta", "properties", "filename"
}

// Keyword sets for the filename heuristic. Filenames match a wider set
// than manifest IDs.
var (
	coverFilenameKeywords = []string{"cover", "couverture", "front", "titlepage"}
	coverIDKeywords       = []string{"cover", "couverture"}
)

// DetectCover detects the cover image from the OPF using prioritized
// methods, first match wins:
//  1. meta name="cover" pointing at an image manifest item (EPUB 2.0)
//  2. properties containing "cover-image" or "cover" on an image item (EPUB 3.0)
//  3. filename/ID keyword heuristic, shortest filename preferred
//
// A malformed EPUB 2.0 meta entry (empty content, unknown ID, non-image
// target) counts as absence and falls through to the next method.
// Returns nil if no cover image is found.
func (opf *OPF) DetectCover() *CoverInfo {
	if info := opf.detectCoverByMeta(); info != nil {
		return info
	}
	if info := opf.detectCoverByProperty(); info != nil {
		return info
	}
	return opf.detectCoverByKeyword()
}

func (opf *OPF) detectCoverByMeta() *CoverInfo {
	for _, m := range opf.Meta {
		if !strings.EqualFold(strings.TrimSpace(m.Name), "cover") {
			continue
		}
		coverID := strings.TrimSpace(m.Content)
		if coverID == "" {
			continue
		}
		item, ok := opf.Manifest[coverID]
		if !ok || !IsImage(item.MediaType) {
			continue
		}
		return &CoverInfo{
			ManifestID:      item.ID,
			Href:            item.Href,
			MediaType:       item.MediaType,
			DetectionMethod: "meta",
		}
	}
	return nil
}

func (opf *OPF) detectCoverByProperty() *CoverInfo {
	for _, item := range opf.ImageItems() {
		for _, prop := range item.Properties {
			if strings.EqualFold(prop, "cover-image") || strings.EqualFold(prop, "cover") {
				return &CoverInfo{
					ManifestID:      item.ID,
					Href:            item.Href,
					MediaType:       item.MediaType,
					DetectionMethod: "properties",
				}
			}
		}
	}
	return nil
}

func (opf *OPF) detectCoverByKeyword() *CoverInfo {
	var best *ManifestItem
	for _, item := range opf.ImageItems() {
		filename := strings.ToLower(path.Base(item.Href))
		id := strings.ToLower(item.ID)
		if !containsAny(filename, coverFilenameKeywords) && !containsAny(id, coverIDKeywords) {
			continue
		}
		// Shortest filename wins; ties keep the first candidate encountered
		if best == nil || len(path.Base(item.Href)) < len(path.Base(best.Href)) {
			candidate := item
			best = &candidate
		}
	}
	if best == nil {
		return nil
	}
	return &CoverInfo{
		ManifestID:      best.ID,
		Href:            best.Href,
		MediaType:       best.MediaType,
		DetectionMethod: "filename",
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
