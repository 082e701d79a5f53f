// Package core defines the pipeline interfaces for mbz2md.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// Default values substituted for chapter fields missing from the manifest.
const (
	DefaultPageNumber      = 999
	DefaultSubchapterIndex = 0
	DefaultChapterTitle    = "Untitled"
	DefaultBookTitle       = "Learning Material"
)

// Chapter is one chapter record of a book manifest.
type Chapter struct {
	PageNumber      int    `json:"page_number"`
	SubchapterIndex int    `json:"subchapter_index"`
	Title           string `json:"title"`
	HTMLContent     string `json:"-"`
	Hidden          bool   `json:"hidden"`
}

// Book is the parsed manifest of a book activity.
type Book struct {
	Title        string
	ManifestPath string
	Chapters     []Chapter
}

// Section is a single chapter of the assembled document.
type Section struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Level    int    `json:"level"`
	Markdown string `json:"-"`
}

// Document is the assembled Markdown handed to renderers.
type Document struct {
	Title       string    `json:"title" yaml:"title"`
	Source      string    `json:"source" yaml:"source"`
	Chapters    int       `json:"chapters" yaml:"chapters"`
	GeneratedAt string    `json:"generated_at" yaml:"generated_at"` // ISO8601
	Markdown    string    `json:"-" yaml:"-"`
	Sections    []Section `json:"-" yaml:"-"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink or image reference found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentStructure holds structural metadata parsed from the Markdown.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Images     []Link    `json:"images"`
	CodeBlocks int       `json:"code_blocks"`
	ListItems  int       `json:"list_items"`
}

// DocumentJSON is the complete JSON outline of a converted book.
type DocumentJSON struct {
	Metadata  Document          `json:"metadata"`
	Sections  []Section         `json:"sections"`
	Structure DocumentStructure `json:"structure"`
	Markdown  string            `json:"markdown"`
}

// ArchiveExtractor unpacks a course backup into a directory.
type ArchiveExtractor interface {
	Extract(ctx context.Context, archivePath, destDir string) (int, error)
}

// ManifestParser reads a book manifest.
type ManifestParser interface {
	Parse(path string) (*Book, error)
}

// Extractor strips noise from chapter HTML.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts an assembled document into a final output format.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
