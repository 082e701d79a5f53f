package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mbz2md/core"
)

const sample = "# Course\n\n## Intro\nSee [docs](http://x) and ![A](a.png)\n\n- a\n- b\n\n```\ncode\n```\n\n### Sub\nÄäkkösiä ja **lihavoitua**\n\n---\n\n1. one\n"

func sampleDoc() *core.Document {
	return &core.Document{
		Title:       "Course",
		Source:      "backup.mbz",
		Chapters:    2,
		GeneratedAt: "2026-01-08T13:41:00Z",
		Markdown:    sample,
		Sections: []core.Section{
			{Slug: "intro", Title: "Intro", Level: 2},
			{Slug: "sub", Title: "Sub", Level: 3},
		},
	}
}

func TestMarkdownRendererPassthrough(t *testing.T) {
	out, err := NewMarkdownRenderer(false).Render(sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, sample, string(out))
}

func TestMarkdownRendererFrontMatter(t *testing.T) {
	out, err := NewMarkdownRenderer(true).Render(sampleDoc())
	require.NoError(t, err)

	var meta struct {
		Title       string `yaml:"title"`
		Source      string `yaml:"source"`
		Chapters    int    `yaml:"chapters"`
		GeneratedAt string `yaml:"generated_at"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(out), &meta)
	require.NoError(t, err)

	assert.Equal(t, "Course", meta.Title)
	assert.Equal(t, "backup.mbz", meta.Source)
	assert.Equal(t, 2, meta.Chapters)
	assert.Equal(t, "2026-01-08T13:41:00Z", meta.GeneratedAt)
	assert.Contains(t, string(body), "# Course")
}

func TestOutline(t *testing.T) {
	s, err := Outline(sample)
	require.NoError(t, err)

	assert.Equal(t, []core.Heading{
		{Level: 1, Text: "Course"},
		{Level: 2, Text: "Intro"},
		{Level: 3, Text: "Sub"},
	}, s.Headings)
	assert.Equal(t, []core.Link{{Text: "docs", Href: "http://x"}}, s.Links)
	assert.Equal(t, []core.Link{{Text: "A", Href: "a.png"}}, s.Images)
	assert.Equal(t, 1, s.CodeBlocks)
	assert.Equal(t, 3, s.ListItems)
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(sampleDoc())
	require.NoError(t, err)

	var decoded core.DocumentJSON
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Course", decoded.Metadata.Title)
	assert.Equal(t, sample, decoded.Markdown)
	assert.Len(t, decoded.Sections, 2)
	assert.Len(t, decoded.Structure.Headings, 3)
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestNew(t *testing.T) {
	for format, ext := range map[Format]string{
		FormatMarkdown: ".md",
		FormatJSON:     ".json",
		FormatPDF:      ".pdf",
	} {
		r, err := New(format, false)
		require.NoError(t, err)
		assert.Equal(t, ext, r.Extension())
	}

	_, err := New("docx", false)
	assert.Error(t, err)
}

func TestCleanInlineMarkdown(t *testing.T) {
	assert.Equal(t, "bold and code and docs [image: A]", cleanInlineMarkdown("**bold** and `code` and [docs](u) ![A](a.png)"))
}
