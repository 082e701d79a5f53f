// JSON renderer.
// Builds a structured outline of the converted book: metadata, chapter
// sections, and the headings, links, images, code blocks and list items
// found by walking the Markdown AST.

package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// JSONRenderer produces a structured JSON outline from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the document into its JSON outline.
func (r *JSONRenderer) Render(doc *core.Document) ([]byte, error) {
	structure, err := Outline(doc.Markdown)
	if err != nil {
		return nil, err
	}

	sections := doc.Sections
	if sections == nil {
		sections = []core.Section{}
	}

	out := core.DocumentJSON{
		Metadata:  *doc,
		Sections:  sections,
		Structure: structure,
		Markdown:  doc.Markdown,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Outline parses md and collects its structural elements.
func Outline(md string) (core.DocumentStructure, error) {
	src := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	s := core.DocumentStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
		Images:   []core.Link{},
	}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, core.Heading{
				Level: node.Level,
				Text:  strings.TrimSpace(string(node.Text(src))),
			})
		case *ast.Link:
			s.Links = append(s.Links, core.Link{
				Text: string(node.Text(src)),
				Href: string(node.Destination),
			})
		case *ast.Image:
			s.Images = append(s.Images, core.Link{
				Text: string(node.Text(src)),
				Href: string(node.Destination),
			})
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			s.ListItems++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return core.DocumentStructure{}, fmt.Errorf("walking markdown: %w", err)
	}
	return s, nil
}
