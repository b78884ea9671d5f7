// Debug tool: dump the parsed package document of an EPUB, the resolved
// reading order and the cover detection result.
package main

import (
	"fmt"
	"os"

	"github.com/ymorin/epubmd/internal/epub"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <book.epub>\n", os.Args[0])
		os.Exit(1)
	}

	reader, err := epub.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	opf, err := reader.ReadOPF()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OPF path:    %s\n", reader.OPFPath())
	fmt.Printf("Title:       %s\n", opf.Metadata.Title)
	for _, c := range opf.Metadata.Creators {
		fmt.Printf("Creator:     %s (%s)\n", c.Name, c.Role)
	}
	fmt.Printf("Language:    %s\n", opf.Metadata.Language)
	fmt.Printf("Identifier:  %s\n", opf.Metadata.Identifier)
	fmt.Printf("Manifest:    %d items\n", len(opf.Manifest))
	fmt.Printf("Spine:       %d items\n", len(opf.Spine))

	fmt.Println("\nReading order:")
	i := 0
	for item := range opf.SpineDocuments() {
		i++
		fmt.Printf("  %2d. %s (%s)\n", i, item.Href, item.ID)
	}

	if cover := opf.DetectCover(); cover != nil {
		fmt.Printf("\nCover: %s (method=%s, media-type=%s)\n",
			cover.Href, cover.DetectionMethod, cover.MediaType)
	} else {
		fmt.Println("\nCover: not found")
	}
}
