// Package render provides output renderers for the mbz2md pipeline.
// This file implements the Markdown renderer, which is a simple passthrough
// with optional YAML front matter.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct {
	FrontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(frontMatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{FrontMatter: frontMatter}
}

// Render returns the Markdown as bytes, prefixed with a front matter block
// describing the document when enabled.
func (r *MarkdownRenderer) Render(doc *core.Document) ([]byte, error) {
	if !r.FrontMatter {
		return []byte(doc.Markdown), nil
	}

	meta, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(doc.Markdown)
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
