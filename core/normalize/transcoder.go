package normalize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type listKind int

const (
	unordered listKind = iota
	ordered
)

// voidElements never receive an end tag and are not pushed on the open stack.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// Convert transcodes an HTML fragment into Markdown.
//
// Entity references are decoded once before tokenization. Convert is total:
// unknown tags are skipped while their content is still processed, unmatched
// end tags are ignored, and elements left open at the end of the input are
// closed in order.
func Convert(fragment string) string {
	t := &transcoder{}
	t.feed(stripFenceMarks.Replace(html.UnescapeString(fragment)))
	return t.markdown()
}

type element struct {
	name string
	atom atom.Atom
}

// linkCapture collects the label of the anchor being read.
type linkCapture struct {
	href      string
	label     strings.Builder
	prevClose bool
	prevSpace bool
}

// transcoder holds the state of a single conversion. It is not reused.
type transcoder struct {
	out    strings.Builder
	open   []element
	lists  []listKind
	link   *linkCapture
	inCode bool
	inPre  bool

	// afterClose is set right after a closing inline construct.
	afterClose bool
	// pendingSpace is set when the last text read ended in whitespace.
	// Only an inline opener consumes it.
	pendingSpace bool
}

func (t *transcoder) feed(src string) {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			t.start(z.Token())
		case html.SelfClosingTagToken:
			tok := z.Token()
			t.start(tok)
			t.end(tok.Data)
		case html.EndTagToken:
			t.end(z.Token().Data)
		case html.TextToken:
			t.text(z.Token().Data)
		}
	}
}

func (t *transcoder) current() string {
	if len(t.open) == 0 {
		return ""
	}
	return t.open[len(t.open)-1].name
}

func (t *transcoder) start(tok html.Token) {
	if !voidElements[tok.DataAtom] {
		t.open = append(t.open, element{name: tok.Data, atom: tok.DataAtom})
	}

	if level, ok := headingLevels[tok.DataAtom]; ok {
		t.block("\n" + strings.Repeat("#", level) + " ")
		return
	}

	switch tok.DataAtom {
	case atom.P:
		if len(t.lists) == 0 && !strings.HasSuffix(t.out.String(), "\n\n") {
			t.block("\n\n")
		}
	case atom.Br:
		t.block("\n")
	case atom.Strong, atom.B:
		t.openInline("**")
	case atom.Em, atom.I:
		t.openInline("*")
	case atom.Code:
		if t.inPre {
			return
		}
		t.openInline("`")
		t.inCode = true
	case atom.Pre:
		t.inPre = true
		t.block("\n" + fenceStart + "```\n")
	case atom.Ul:
		t.lists = append(t.lists, unordered)
	case atom.Ol:
		t.lists = append(t.lists, ordered)
	case atom.Li:
		t.listItem()
	case atom.A:
		if t.link != nil {
			t.flushLink()
		}
		t.link = &linkCapture{href: attr(tok, "href"), prevClose: t.afterClose, prevSpace: t.pendingSpace}
		t.afterClose = false
		t.pendingSpace = false
	case atom.Img:
		t.openInline("![" + attr(tok, "alt") + "](" + attr(tok, "src") + ")")
		t.afterClose = true
	case atom.Hr:
		t.block("\n---\n")
	}
}

func (t *transcoder) listItem() {
	depth := len(t.lists) - 1
	if depth < 0 {
		depth = 0
	}
	marker := "- "
	if len(t.lists) > 0 && t.lists[len(t.lists)-1] == ordered {
		// Renderers number ordered lists themselves.
		marker = "1. "
	}
	t.block("\n" + strings.Repeat("  ", depth) + marker)
}

// end closes the innermost open element named name, closing everything
// opened after it first. End tags with no open element are ignored.
func (t *transcoder) end(name string) {
	for i := len(t.open) - 1; i >= 0; i-- {
		if t.open[i].name != name {
			continue
		}
		for len(t.open) > i {
			el := t.open[len(t.open)-1]
			t.open = t.open[:len(t.open)-1]
			t.close(el.atom)
		}
		return
	}
}

func (t *transcoder) close(a atom.Atom) {
	if _, ok := headingLevels[a]; ok {
		t.block("\n")
		return
	}

	switch a {
	case atom.P:
		t.block("\n")
	case atom.Strong, atom.B:
		t.closeInline("**")
	case atom.Em, atom.I:
		t.closeInline("*")
	case atom.Code:
		if t.inCode {
			t.closeInline("`")
			t.inCode = false
		}
	case atom.Pre:
		t.block("\n```" + fenceEnd + "\n")
		t.inPre = false
	case atom.Ul, atom.Ol:
		if len(t.lists) > 0 {
			t.lists = t.lists[:len(t.lists)-1]
		}
		t.block("\n")
	case atom.A:
		t.flushLink()
	}
}

func (t *transcoder) text(data string) {
	switch {
	case t.inPre && !t.inCode:
		t.out.WriteString(data)
		t.afterClose = false
		t.pendingSpace = false
		return
	case t.link != nil:
		t.link.label.WriteString(data)
		t.pendingSpace = endsWithSpace(data)
		return
	case t.inCode:
		t.out.WriteString(data)
		t.pendingSpace = false
		return
	}

	cur := t.current()
	listText := len(t.lists) > 0 && (cur == "li" || cur == "p")

	var s string
	if listText {
		s = collapseWhitespace(data)
	} else {
		s = strings.TrimSpace(data)
	}
	if s == "" {
		if data != "" && t.out.Len() > 0 {
			t.pendingSpace = true
		}
		return
	}
	if !listText && t.needsSpace(data) {
		t.out.WriteByte(' ')
	}
	t.out.WriteString(s)
	t.afterClose = false
	t.pendingSpace = endsWithSpace(data)
}

// needsSpace decides whether text must be separated from the buffer.
func (t *transcoder) needsSpace(raw string) bool {
	s := t.out.String()
	if s == "" {
		return false
	}
	if t.afterClose {
		return startsWithSpace(raw)
	}
	return !isBoundary(s[len(s)-1])
}

// openInline writes an opening inline construct to the current sink. It is
// separated from the preceding text only where the source had whitespace.
func (t *transcoder) openInline(s string) {
	sink := t.sink()
	if buf := sink.String(); t.pendingSpace && buf != "" && !strings.HasSuffix(buf, " ") && !strings.HasSuffix(buf, "\n") {
		sink.WriteByte(' ')
	}
	sink.WriteString(s)
	t.afterClose = false
	t.pendingSpace = false
}

func (t *transcoder) closeInline(s string) {
	t.sink().WriteString(s)
	t.afterClose = true
	t.pendingSpace = false
}

// block writes structural output. It always targets the main buffer.
func (t *transcoder) block(s string) {
	t.out.WriteString(s)
	t.afterClose = false
	t.pendingSpace = false
}

// sink is the link label while an anchor is open, the main buffer otherwise.
func (t *transcoder) sink() *strings.Builder {
	if t.link != nil {
		return &t.link.label
	}
	return &t.out
}

func (t *transcoder) flushLink() {
	link := t.link
	if link == nil {
		return
	}
	t.link = nil
	t.afterClose = link.prevClose
	t.pendingSpace = link.prevSpace

	label := strings.Join(strings.Fields(link.label.String()), " ")
	if link.href == "" || label == "" {
		return
	}
	t.openInline("[" + label + "](" + link.href + ")")
	t.afterClose = true
}

func (t *transcoder) markdown() string {
	for len(t.open) > 0 {
		el := t.open[len(t.open)-1]
		t.open = t.open[:len(t.open)-1]
		t.close(el.atom)
	}
	t.flushLink()
	return tidy(t.out.String())
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '\n', '*', '`', '-':
		return true
	}
	return false
}

func startsWithSpace(s string) bool {
	return strings.TrimLeftFunc(s, isSpace) != s
}

func endsWithSpace(s string) bool {
	return strings.TrimRightFunc(s, isSpace) != s
}
