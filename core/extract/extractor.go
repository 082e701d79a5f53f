// Package extract implements the Extractor interface.
// It cleans chapter HTML before normalization by removing noise elements
// (scripts, styles, embedded players, forms) whose text would otherwise
// leak into the Markdown. Images are kept.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// noiseSelectors are HTML elements removed before normalization.
// These contribute no meaningful content to a chapter.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"iframe", "object", "embed",
	"video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

var noise = cascadia.MustCompile(strings.Join(noiseSelectors, ", "))

// HTMLExtractor strips noise from chapter HTML.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses a chapter fragment and returns it without noise elements.
// Blank input is returned unchanged.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.FindMatcher(noise).Remove()

	result, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}
