// Package assemble stitches the chapters of a book into one Markdown
// document: hidden chapters are dropped, the rest are ordered by page and
// subchapter, and each one is cleaned, normalized and placed under its
// own heading.
package assemble

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/unicode/norm"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// Assembler builds a core.Document from a parsed book.
type Assembler struct {
	extractor  core.Extractor
	normalizer core.Normalizer
	now        func() time.Time
}

// New creates an Assembler. A nil extractor skips HTML cleanup.
func New(extractor core.Extractor, normalizer core.Normalizer) *Assembler {
	return &Assembler{
		extractor:  extractor,
		normalizer: normalizer,
		now:        time.Now,
	}
}

// Visible returns the non-hidden chapters sorted by (PageNumber,
// SubchapterIndex). Chapters with equal keys keep their manifest order.
func Visible(chapters []core.Chapter) []core.Chapter {
	visible := make([]core.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if !ch.Hidden {
			visible = append(visible, ch)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.PageNumber != b.PageNumber {
			return a.PageNumber < b.PageNumber
		}
		return a.SubchapterIndex < b.SubchapterIndex
	})
	return visible
}

// Assemble converts every visible chapter and joins them under the book
// title. source names the archive the book came from.
func (a *Assembler) Assemble(book *core.Book, source string) (*core.Document, error) {
	chapters := Visible(book.Chapters)
	title := norm.NFC.String(book.Title)

	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n", title)

	sections := make([]core.Section, 0, len(chapters))
	seen := map[string]int{}

	for _, ch := range chapters {
		level := 2
		if ch.SubchapterIndex != 0 {
			level = 3
		}
		chTitle := norm.NFC.String(ch.Title)
		heading := fmt.Sprintf("%s %s\n", strings.Repeat("#", level), chTitle)
		doc.WriteString("\n" + heading)

		body, err := a.convert(ch.HTMLContent)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", ch.Title, err)
		}
		if ch.HTMLContent != "" {
			doc.WriteString(body + "\n")
		}

		sections = append(sections, core.Section{
			Slug:     uniqueSlug(chTitle, seen),
			Title:    chTitle,
			Level:    level,
			Markdown: heading + "\n" + body + "\n",
		})
	}

	return &core.Document{
		Title:       title,
		Source:      source,
		Chapters:    len(chapters),
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Markdown:    norm.NFC.String(doc.String()),
		Sections:    sections,
	}, nil
}

func (a *Assembler) convert(html string) (string, error) {
	if html == "" {
		return "", nil
	}
	if a.extractor != nil {
		cleaned, err := a.extractor.Extract(html)
		if err != nil {
			return "", fmt.Errorf("extract: %w", err)
		}
		html = cleaned
	}
	md, err := a.normalizer.Normalize(html)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return norm.NFC.String(md), nil
}

// uniqueSlug derives a file-safe slug from a chapter title, suffixing
// repeats with a counter.
func uniqueSlug(title string, seen map[string]int) string {
	s, err := slug.Normalize(title)
	if err != nil || s == "" {
		s = "chapter"
	}
	seen[s]++
	if n := seen[s]; n > 1 {
		s = fmt.Sprintf("%s-%d", s, n)
	}
	return s
}
