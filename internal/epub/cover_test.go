package epub

import "testing"

func imageItem(id, href string, props ...string) ManifestItem {
	return ManifestItem{ID: id, Href: href, MediaType: "image/jpeg", Properties: props}
}

func manifestOf(items ...ManifestItem) (map[string]ManifestItem, []string) {
	m := make(map[string]ManifestItem)
	var order []string
	for _, item := range items {
		m[item.ID] = item
		order = append(order, item.ID)
	}
	return m, order
}

func TestDetectCover_Meta(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/photo.jpg"),
		imageItem("img2", "images/illustration.jpg"),
	)
	opf := &OPF{
		Manifest:      manifest,
		ManifestOrder: order,
		Meta:          []MetaEntry{{Name: "cover", Content: "img2"}},
	}

	info := opf.DetectCover()
	if info == nil {
		t.Fatal("DetectCover() = nil, want CoverInfo")
	}
	if info.ManifestID != "img2" {
		t.Errorf("ManifestID = %q, want %q", info.ManifestID, "img2")
	}
	if info.DetectionMethod != "meta" {
		t.Errorf("DetectionMethod = %q, want %q", info.DetectionMethod, "meta")
	}
}

func TestDetectCover_MetaBeatsProperties(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/a.jpg", "cover-image"),
		imageItem("img2", "images/b.jpg"),
	)
	opf := &OPF{
		Manifest:      manifest,
		ManifestOrder: order,
		Meta:          []MetaEntry{{Name: "cover", Content: "img2"}},
	}

	info := opf.DetectCover()
	if info == nil {
		t.Fatal("DetectCover() = nil, want CoverInfo")
	}
	if info.ManifestID != "img2" {
		t.Errorf("ManifestID = %q, want %q (meta entry outranks properties)", info.ManifestID, "img2")
	}
}

func TestDetectCover_MalformedMetaFallsThrough(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/a.jpg", "cover-image"),
	)
	tests := []struct {
		name string
		meta []MetaEntry
	}{
		{"empty content", []MetaEntry{{Name: "cover", Content: ""}}},
		{"unknown id", []MetaEntry{{Name: "cover", Content: "nope"}}},
		{"non-image target", []MetaEntry{{Name: "cover", Content: "doc1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make(map[string]ManifestItem, len(manifest)+1)
			for k, v := range manifest {
				m[k] = v
			}
			m["doc1"] = ManifestItem{ID: "doc1", Href: "text/doc1.xhtml", MediaType: "application/xhtml+xml"}
			opf := &OPF{Manifest: m, ManifestOrder: append(order, "doc1"), Meta: tt.meta}

			info := opf.DetectCover()
			if info == nil {
				t.Fatal("DetectCover() = nil, want fallback to properties")
			}
			if info.ManifestID != "img1" {
				t.Errorf("ManifestID = %q, want %q", info.ManifestID, "img1")
			}
			if info.DetectionMethod != "properties" {
				t.Errorf("DetectionMethod = %q, want %q", info.DetectionMethod, "properties")
			}
		})
	}
}

func TestDetectCover_Properties(t *testing.T) {
	for _, prop := range []string{"cover-image", "cover"} {
		manifest, order := manifestOf(
			imageItem("img1", "images/a.jpg"),
			imageItem("img2", "images/b.jpg", prop),
		)
		opf := &OPF{Manifest: manifest, ManifestOrder: order}

		info := opf.DetectCover()
		if info == nil {
			t.Fatalf("DetectCover() = nil, want property %q match", prop)
		}
		if info.ManifestID != "img2" {
			t.Errorf("ManifestID = %q, want %q", info.ManifestID, "img2")
		}
	}
}

func TestDetectCover_KeywordFilename(t *testing.T) {
	tests := []struct {
		name string
		href string
	}{
		{"cover", "images/cover.jpg"},
		{"couverture", "images/couverture.jpg"},
		{"front", "images/front.jpg"},
		{"titlepage", "images/titlepage.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest, order := manifestOf(
				imageItem("img1", "images/photo.jpg"),
				imageItem("img2", tt.href),
			)
			opf := &OPF{Manifest: manifest, ManifestOrder: order}

			info := opf.DetectCover()
			if info == nil {
				t.Fatal("DetectCover() = nil, want keyword match")
			}
			if info.Href != tt.href {
				t.Errorf("Href = %q, want %q", info.Href, tt.href)
			}
			if info.DetectionMethod != "filename" {
				t.Errorf("DetectionMethod = %q, want %q", info.DetectionMethod, "filename")
			}
		})
	}
}

func TestDetectCover_KeywordID(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/photo.jpg"),
		imageItem("cover-id", "images/img0042.jpg"),
	)
	opf := &OPF{Manifest: manifest, ManifestOrder: order}

	info := opf.DetectCover()
	if info == nil {
		t.Fatal("DetectCover() = nil, want ID keyword match")
	}
	if info.ManifestID != "cover-id" {
		t.Errorf("ManifestID = %q, want %q", info.ManifestID, "cover-id")
	}
}

func TestDetectCover_ShortestFilenameWins(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/cover-big.jpg"),
		imageItem("img2", "images/cover.jpg"),
	)
	opf := &OPF{Manifest: manifest, ManifestOrder: order}

	info := opf.DetectCover()
	if info == nil {
		t.Fatal("DetectCover() = nil, want heuristic match")
	}
	if info.Href != "images/cover.jpg" {
		t.Errorf("Href = %q, want %q", info.Href, "images/cover.jpg")
	}
}

func TestDetectCover_TieKeepsFirst(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/front.jpg"),
		imageItem("img2", "images/cover.jpg"),
	)
	opf := &OPF{Manifest: manifest, ManifestOrder: order}

	info := opf.DetectCover()
	if info == nil {
		t.Fatal("DetectCover() = nil, want heuristic match")
	}
	if info.ManifestID != "img1" {
		t.Errorf("ManifestID = %q, want %q (first candidate on equal length)", info.ManifestID, "img1")
	}
}

func TestDetectCover_None(t *testing.T) {
	manifest, order := manifestOf(
		imageItem("img1", "images/photo.jpg"),
		imageItem("img2", "images/illustration.jpg"),
	)
	opf := &OPF{Manifest: manifest, ManifestOrder: order}

	if info := opf.DetectCover(); info != nil {
		t.Fatalf("DetectCover() = %+v, want nil", info)
	}
}
