package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if got, _ := cmd.Flags().GetString("language"); got != "fr" {
		t.Errorf("language = %q, want %q", got, "fr")
	}
	if got, _ := cmd.Flags().GetString("title"); got != "" {
		t.Errorf("title = %q, want empty", got)
	}
	if got, _ := cmd.Flags().GetString("author"); got != "" {
		t.Errorf("author = %q, want empty", got)
	}
}

func TestRun_MissingInput(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	err := run(cmd, []string{"./inexistant.md"})
	if err == nil {
		t.Fatal("run() error = nil, want error for missing input")
	}
	if !strings.Contains(err.Error(), "fichier introuvable") {
		t.Errorf("error = %v, want a fichier introuvable message", err)
	}
}

func TestRun_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "livre.md")
	if err := os.WriteFile(input, []byte("# Un\n\ntexte\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The default output is the input basename with an .epub extension,
	// written to the working directory
	t.Chdir(dir)

	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if err := run(cmd, []string{input}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "livre.epub")); err != nil {
		t.Errorf("livre.epub not created in the working directory: %v", err)
	}
}

func TestRun_ExplicitOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "livre.md")
	if err := os.WriteFile(input, []byte("# Un\n\ntexte\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "sortie.epub")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--title", "Mon Livre", "--author", "Jean Dupont"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if err := run(cmd, []string{input, output}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}
