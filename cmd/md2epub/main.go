package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ymorin/epubmd/internal/converter"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "md2epub input [output]",
		Short: "Convert Markdown files to EPUB",
		Long: `md2epub is a command-line tool that converts a flat Markdown
document into an EPUB ebook.

Metadata can be supplied through flags or through a YAML front-matter
block at the start of the document; flags win. The document is split
into chapters on level-1 and level-2 headings, referenced images are
embedded, and a table of contents is generated automatically.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	cmd.Flags().String("title", "", "Book title (overrides front matter)")
	cmd.Flags().String("author", "", "Book author (overrides front matter)")
	cmd.Flags().String("description", "", "Book description (overrides front matter)")
	cmd.Flags().String("language", "fr", "Book language")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("fichier introuvable : %s", input)
	}

	output := ""
	if len(args) > 1 {
		output = args[1]
	}
	if output == "" {
		base := filepath.Base(input)
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".epub"
	}

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	description, _ := cmd.Flags().GetString("description")
	language, _ := cmd.Flags().GetString("language")

	assembler := converter.NewAssembler(converter.AssembleOptions{
		InputPath:   input,
		OutputPath:  output,
		Title:       title,
		Author:      author,
		Description: description,
		Language:    language,
		Logger:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	if err := assembler.Convert(); err != nil {
		return fmt.Errorf("erreur lors de la conversion : %w", err)
	}

	fmt.Printf("✅ Conversion terminée : %s\n", output)
	fmt.Println("📚 Fichier EPUB créé avec succès")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
