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
		Use:   "epub2md input [output]",
		Short: "Convert EPUB files to Markdown",
		Long: `epub2md is a command-line tool that converts EPUB ebooks to
Markdown, either as a single document or split into per-chapter
files with an index.

Embedded images are exported to a subdirectory and all internal
references are rewritten to point at the exported files. The cover
image is detected, renamed to cover.<ext> and can be inserted as a
banner at the top of the output.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	cmd.Flags().Bool("split", false, "Split output into chapter files and generate an index")
	cmd.Flags().String("outdir", "md_chapitres", "Output directory when using --split")
	cmd.Flags().String("prefix", "chapitre", "Prefix for chapter files when using --split")
	cmd.Flags().String("imgdir", "images", "Subdirectory name for exported images")
	cmd.Flags().Bool("no-images", false, "Disable image extraction and path rewriting")
	cmd.Flags().Bool("no-cover-banner", false, "Do not insert the cover image at the top of the output")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("fichier introuvable : %s", input)
	}

	split, _ := cmd.Flags().GetBool("split")
	outDir, _ := cmd.Flags().GetString("outdir")
	prefix, _ := cmd.Flags().GetString("prefix")
	imgDir, _ := cmd.Flags().GetString("imgdir")
	noImages, _ := cmd.Flags().GetBool("no-images")
	noCoverBanner, _ := cmd.Flags().GetBool("no-cover-banner")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := converter.ConvertOptions{
		InputPath:     input,
		OutDir:        outDir,
		Prefix:        prefix,
		ImgDir:        imgDir,
		ExtractImages: !noImages,
		CoverBanner:   !noCoverBanner,
		Logger:        logger,
	}

	if split {
		indexPath, count, err := converter.NewPipeline(opts).ConvertSplit()
		if err != nil {
			return err
		}
		fmt.Printf("✅ %d chapitres générés dans '%s'.\n", count, outDir)
		if opts.ExtractImages {
			fmt.Printf("🖼️  Images exportées dans : %s\n", filepath.Join(outDir, imgDir))
		}
		fmt.Printf("📑 Sommaire : %s\n", indexPath)
		return nil
	}

	output := ""
	if len(args) > 1 {
		output = args[1]
	}
	if output == "" {
		base := filepath.Base(input)
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".md"
	}
	opts.OutputPath = output

	if err := converter.NewPipeline(opts).ConvertSingle(); err != nil {
		return err
	}
	fmt.Printf("✅ Conversion terminée : %s\n", output)
	if opts.ExtractImages {
		outDir := filepath.Dir(output)
		fmt.Printf("🖼️  Images exportées dans : %s\n", filepath.Join(outDir, imgDir))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
