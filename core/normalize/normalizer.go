// Package normalize implements the Normalizer interface.
// It converts chapter HTML into Markdown, which serves as the
// canonical intermediate format for all downstream renderers.
//
// Two engines are available: the native transcoder (Convert), which follows
// the book export's own formatting rules, and html-to-markdown.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Engine selects the HTML to Markdown implementation.
type Engine string

const (
	EngineNative  Engine = "native"
	EngineLibrary Engine = "html-to-markdown"
)

// Engines lists the supported engine names.
var Engines = []Engine{EngineNative, EngineLibrary}

// MarkdownNormalizer converts HTML to Markdown with the selected engine.
type MarkdownNormalizer struct {
	engine Engine
}

// New creates a MarkdownNormalizer. An empty engine selects the native one.
func New(engine Engine) (*MarkdownNormalizer, error) {
	switch engine {
	case "":
		engine = EngineNative
	case EngineNative, EngineLibrary:
	default:
		return nil, fmt.Errorf("unknown normalize engine %q", engine)
	}
	return &MarkdownNormalizer{engine: engine}, nil
}

// Engine reports the engine in use.
func (n *MarkdownNormalizer) Engine() Engine {
	return n.engine
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if n.engine == EngineNative {
		return Convert(html), nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
