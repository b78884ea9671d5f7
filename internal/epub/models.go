package epub

// OPF represents the parsed Open Package Format document
type OPF struct {
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item
	ManifestOrder []string                // manifest item IDs in document order
	Spine         []SpineItem
	Meta          []MetaEntry // raw <meta> elements, kept for cover detection
}

// Metadata represents the metadata section of the OPF
type Metadata struct {
	Title       string
	Creators    []Creator
	Language    string
	Identifier  string
	Date        string
	Description string
}

// Creator represents a creator (author, editor, etc.) of the book
type Creator struct {
	Name string
	Role string // e.g., "aut" for author, "edt" for editor
}

// ManifestItem represents an item in the manifest
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem represents an item reference in the spine
type SpineItem struct {
	IDRef  string
	Linear bool
}

// MetaEntry is a raw <meta> element from the OPF metadata section.
// EPUB 2.0 uses name/content attribute pairs, EPUB 3.0 uses a property
// attribute plus element text.
type MetaEntry struct {
	Name     string
	Content  string
	Property string
	Value    string
}
