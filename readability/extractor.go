// Package readability extracts internal page excerpts using go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/haslan/marginalia"
)

// ExcerptLen is the maximum length, in characters, of an extracted excerpt.
const ExcerptLen = 180

// Ensure Extractor implements marginalia.ExcerptExtractor at compile time.
var _ marginalia.ExcerptExtractor = (*Extractor)(nil)

// Extractor derives a page's title and a short plain-text excerpt from its
// markup, for the internal page excerpts table.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's title and the opening of its main content,
// boilerplate removed.
func (e *Extractor) Extract(rawHTML string) (*marginalia.Excerpt, error) {
	if rawHTML == "" {
		return nil, marginalia.Errorf(marginalia.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "readability: %v", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	runes := []rune(text)
	if len(runes) > ExcerptLen {
		text = string(runes[:ExcerptLen-3]) + "..."
	}

	return &marginalia.Excerpt{
		Title: strings.TrimSpace(article.Title),
		Text:  text,
	}, nil
}
