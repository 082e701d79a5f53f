package render

import (
	"fmt"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatPDF}

// New returns the renderer for format. frontMatter only affects Markdown.
func New(format Format, frontMatter bool) (core.Renderer, error) {
	switch format {
	case FormatMarkdown, "":
		return NewMarkdownRenderer(frontMatter), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
