package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Cleanup passes, applied in this order to everything outside fenced blocks.
var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	emptyListItem  = regexp.MustCompile(`(?m)^(\s*[-*]|\s*\d+\.)\s*\n\n`)
	indentedMarker = regexp.MustCompile(`\n\s+(-|\d+\.) `)
	repeatedSpaces = regexp.MustCompile(` {2,}`)
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// tidy flattens the transcoder output into its final form.
func tidy(md string) string {
	var b strings.Builder
	for _, seg := range splitFences(md) {
		if seg.fenced {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(tidyProse(seg.text))
	}
	return strings.TrimSpace(b.String())
}

func tidyProse(s string) string {
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	s = emptyListItem.ReplaceAllString(s, "${1} ")
	s = indentedMarker.ReplaceAllString(s, "\n${1} ")
	return collapseSpaces(s)
}

// collapseSpaces squeezes runs of literal spaces into one.
func collapseSpaces(s string) string {
	return repeatedSpaces.ReplaceAllString(s, " ")
}

// collapseWhitespace squeezes whitespace runs into single spaces, keeping
// a space at either edge when one was there.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r)
}

// fenceStart and fenceEnd bracket every fenced block the transcoder writes.
// They are private-use runes, stripped from the input and from the output.
const (
	fenceStart = "\ue000"
	fenceEnd   = "\ue001"
)

var stripFenceMarks = strings.NewReplacer(fenceStart, "", fenceEnd, "")

type segment struct {
	text   string
	fenced bool
}

// splitFences cuts md into prose and fenced code segments using the fence
// marks, never the backticks, so code containing ``` lines stays intact.
// Nested marks belong to the outermost block.
func splitFences(md string) []segment {
	var (
		segs  []segment
		cur   strings.Builder
		depth int
	)
	flush := func(fenced bool) {
		if cur.Len() > 0 {
			segs = append(segs, segment{text: cur.String(), fenced: fenced})
			cur.Reset()
		}
	}

	for md != "" {
		i := strings.IndexAny(md, fenceStart+fenceEnd)
		if i < 0 {
			cur.WriteString(md)
			break
		}
		cur.WriteString(md[:i])
		mark := md[i : i+len(fenceStart)]
		md = md[i+len(mark):]

		switch {
		case mark == fenceStart:
			if depth == 0 {
				flush(false)
			}
			depth++
		case depth > 0:
			depth--
			if depth == 0 {
				flush(true)
			}
		}
	}
	flush(depth > 0)
	return segs
}
