package epub

import "iter"

// SpineDocuments yields the XHTML content items referenced by the spine,
// in declared reading order. Spine entries that do not resolve to an XHTML
// manifest item are skipped. If the spine is empty or nothing in it
// resolves, all document items are yielded in manifest order instead, so
// the sequence is non-empty whenever the book has content at all.
//
// The returned sequence is single-use.
func (opf *OPF) SpineDocuments() iter.Seq[ManifestItem] {
	return func(yield func(ManifestItem) bool) {
		yielded := false
		for _, spineItem := range opf.Spine {
			item, ok := opf.Manifest[spineItem.IDRef]
			if !ok || !IsXHTML(item.MediaType) {
				continue
			}
			yielded = true
			if !yield(item) {
				return
			}
		}
		if yielded {
			return
		}
		for _, item := range opf.DocumentItems() {
			if !yield(item) {
				return
			}
		}
	}
}
