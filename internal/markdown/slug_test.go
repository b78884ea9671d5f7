package markdown

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{"simple", "Hello World", "fb", "hello-world"},
		{"accents folded", "Héllo   World!!", "fb", "hello-world"},
		{"french title", "Préface de l'auteur", "fb", "preface-de-lauteur"},
		{"empty", "", "chapitre-01", "chapitre-01"},
		{"whitespace only", "   \t\n ", "fb", "fb"},
		{"punctuation only", "!!! ???", "fb", "fb"},
		{"collapses hyphens", "a -- b", "fb", "a-b"},
		{"trims hyphens", "- edge -", "fb", "edge"},
		{"keeps digits and underscore", "Chapter_2 Part 3", "fb", "chapter_2-part-3"},
		{"already clean", "intro", "fb", "intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input, tt.fallback); got != tt.want {
				t.Errorf("Slugify(%q, %q) = %q, want %q", tt.input, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestSlugify_Shape(t *testing.T) {
	// Whatever survives cleanup must be lowercase words joined by single
	// hyphens, with no leading or trailing hyphen.
	shape := regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
	inputs := []string{
		"Hello World",
		"  A   B   C  ",
		"Ça alors !",
		"100% Pure",
		"--- x ---",
	}
	for _, in := range inputs {
		got := Slugify(in, "fallback")
		if got != "fallback" && !shape.MatchString(got) {
			t.Errorf("Slugify(%q) = %q, does not match %s", in, got, shape)
		}
	}
}
