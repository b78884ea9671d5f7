package epub

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// opfPackage represents the OPF XML structure
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

// opfMetadata represents the metadata section
type opfMetadata struct {
	Title       []string        `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator     []opfCreator    `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Language    []string        `xml:"http://purl.org/dc/elements/1.1/ language"`
	Identifier  []opfIdentifier `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Date        []string        `xml:"http://purl.org/dc/elements/1.1/ date"`
	Description []string        `xml:"http://purl.org/dc/elements/1.1/ description"`
	Meta        []opfMeta       `xml:"meta"`
}

// opfCreator represents a creator element
type opfCreator struct {
	Name string `xml:",chardata"`
	Role string `xml:"http://www.idpf.org/2007/opf role,attr"`
}

// opfIdentifier represents an identifier element
type opfIdentifier struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr"`
}

// opfMeta represents a meta element (EPUB 2.0 and 3.0)
type opfMeta struct {
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"` // EPUB 2.0: attribute value
	Value    string `xml:",chardata"`    // EPUB 3.0: element text content
	Property string `xml:"property,attr"`
}

// opfManifest represents the manifest section
type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

// opfManifestItem represents an item in the manifest
type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

// opfSpine represents the spine section
type opfSpine struct {
	ItemRefs []opfItemRef `xml:"itemref"`
}

// opfItemRef represents an itemref in the spine
type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// ParseOPF parses an OPF file content and returns the OPF structure.
// opfDir is the directory containing the OPF file (e.g., "OEBPS"); manifest
// hrefs are resolved against it so they match paths inside the container.
func ParseOPF(content []byte, opfDir string) (*OPF, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse OPF XML: %w", err)
	}

	opf := &OPF{
		Manifest: make(map[string]ManifestItem),
	}

	opf.Metadata = parseMetadata(&pkg.Metadata, pkg.UniqueID)

	for _, m := range pkg.Metadata.Meta {
		opf.Meta = append(opf.Meta, MetaEntry{
			Name:     m.Name,
			Content:  m.Content,
			Property: m.Property,
			Value:    strings.TrimSpace(m.Value),
		})
	}

	for _, item := range pkg.Manifest.Items {
		manifestItem := ManifestItem{
			ID:        item.ID,
			Href:      joinPath(opfDir, item.Href),
			MediaType: item.MediaType,
		}

		// Properties are space-separated
		if item.Properties != "" {
			manifestItem.Properties = strings.Fields(item.Properties)
		}

		opf.Manifest[item.ID] = manifestItem
		opf.ManifestOrder = append(opf.ManifestOrder, item.ID)
	}

	for _, itemRef := range pkg.Spine.ItemRefs {
		linear := itemRef.Linear != "no"
		opf.Spine = append(opf.Spine, SpineItem{
			IDRef:  itemRef.IDRef,
			Linear: linear,
		})
	}

	return opf, nil
}

// parseMetadata parses the metadata section
func parseMetadata(meta *opfMetadata, uniqueID string) Metadata {
	md := Metadata{}

	if len(meta.Title) > 0 {
		md.Title = strings.TrimSpace(meta.Title[0])
	}

	if len(meta.Language) > 0 {
		md.Language = strings.TrimSpace(meta.Language[0])
	}

	// Identifier: prefer the one marked as unique-identifier
	for _, id := range meta.Identifier {
		if id.ID == uniqueID {
			md.Identifier = id.Value
			break
		}
	}
	if md.Identifier == "" && len(meta.Identifier) > 0 {
		md.Identifier = meta.Identifier[0].Value
	}

	if len(meta.Date) > 0 {
		md.Date = strings.TrimSpace(meta.Date[0])
	}

	if len(meta.Description) > 0 {
		md.Description = strings.TrimSpace(meta.Description[0])
	}

	for _, creator := range meta.Creator {
		md.Creators = append(md.Creators, Creator{
			Name: strings.TrimSpace(creator.Name),
			Role: creator.Role,
		})
	}

	return md
}

// DocumentItems returns the XHTML content items in manifest order.
// This is the native-order fallback collection used when the spine
// resolves to nothing.
func (opf *OPF) DocumentItems() []ManifestItem {
	var items []ManifestItem
	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if IsXHTML(item.MediaType) {
			items = append(items, item)
		}
	}
	return items
}

// ImageItems returns the image-type items in manifest order (SVG excluded).
func (opf *OPF) ImageItems() []ManifestItem {
	var items []ManifestItem
	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if IsImage(item.MediaType) {
			items = append(items, item)
		}
	}
	return items
}

// joinPath joins the OPF directory with a manifest-relative href
func joinPath(base, rel string) string {
	if base == "" || base == "." {
		return rel
	}
	return path.Clean(path.Join(base, rel))
}

// IsXHTML checks if a media type indicates an XHTML content file.
func IsXHTML(mediaType string) bool {
	return strings.Contains(mediaType, "html") || strings.Contains(mediaType, "xhtml")
}

// IsImage checks if a media type indicates a raster image file.
// SVG (image/svg+xml) is excluded.
func IsImage(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
