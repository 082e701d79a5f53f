// Package manifest locates and parses the book.xml manifest of a Moodle
// book activity.
package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/mbz2md/core"
)

// chapterXML mirrors a <chapter> element. Pointer fields distinguish
// missing elements from empty ones.
type chapterXML struct {
	PageNum    *string `xml:"pagenum"`
	Subchapter *string `xml:"subchapter"`
	Title      *string `xml:"title"`
	Content    *string `xml:"content"`
	Hidden     *string `xml:"hidden"`
}

// XMLParser parses book manifests with a streaming XML decoder.
type XMLParser struct{}

// NewParser creates an XMLParser.
func NewParser() *XMLParser {
	return &XMLParser{}
}

// Parse reads the manifest at path.
func (p *XMLParser) Parse(path string) (*core.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.ManifestNotFound(path)
		}
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	book, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	book.ManifestPath = path
	return book, nil
}

// Decode reads a manifest document. The book title is the first <name>
// element in document order; every <chapter> element becomes a record.
func Decode(r io.Reader) (*core.Book, error) {
	d := xml.NewDecoder(r)
	book := &core.Book{}
	var title *string

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "name":
			var s string
			if err := d.DecodeElement(&s, &se); err != nil {
				return nil, err
			}
			if title == nil {
				title = &s
			}
		case "chapter":
			var c chapterXML
			if err := d.DecodeElement(&c, &se); err != nil {
				return nil, err
			}
			book.Chapters = append(book.Chapters, c.record())
		}
	}

	book.Title = core.DefaultBookTitle
	if title != nil && strings.TrimSpace(*title) != "" {
		book.Title = strings.TrimSpace(*title)
	}
	return book, nil
}

func (c chapterXML) record() core.Chapter {
	ch := core.Chapter{
		PageNumber:      intOr(c.PageNum, core.DefaultPageNumber),
		SubchapterIndex: intOr(c.Subchapter, core.DefaultSubchapterIndex),
		Title:           core.DefaultChapterTitle,
		Hidden:          intOr(c.Hidden, 0) != 0,
	}
	if c.Title != nil && strings.TrimSpace(*c.Title) != "" {
		ch.Title = strings.TrimSpace(*c.Title)
	}
	if c.Content != nil {
		ch.HTMLContent = *c.Content
	}
	return ch
}

// intOr parses s, falling back to def when it is missing or not a number.
func intOr(s *string, def int) int {
	if s == nil {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return def
	}
	return n
}
