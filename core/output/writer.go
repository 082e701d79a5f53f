// Package output handles file naming and writing for mbz2md outputs.
// The whole book goes to a single file; in split mode every chapter is
// written to its own numbered file named after the chapter slug.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// Writer writes rendered output to disk, overwriting existing files.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under name, relative to the output directory unless
// name is absolute.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.OutputDir, name)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteSections writes each section to dir as NN-slug.md and returns the
// written paths in order.
func (w *Writer) WriteSections(dir string, sections []core.Section) ([]string, error) {
	paths := make([]string, 0, len(sections))
	for i, s := range sections {
		name := filepath.Join(dir, SectionFilename(i, s))
		path, err := w.Write(name, []byte(s.Markdown))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SectionFilename names the file of the i-th section (zero based).
func SectionFilename(i int, s core.Section) string {
	slug := s.Slug
	if slug == "" {
		slug = "chapter"
	}
	return fmt.Sprintf("%02d-%s.md", i+1, slug)
}

// ReplaceExt swaps the extension of name for ext.
// Example: notes.md + .json → notes.json
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
