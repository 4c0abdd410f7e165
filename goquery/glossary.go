// Package goquery provides CSS-selector based implementations of the
// marginalia parsing and annotation interfaces.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
)

// Ensure GlossaryParser implements marginalia.GlossaryParser at compile time.
var _ marginalia.GlossaryParser = (*GlossaryParser)(nil)

// GlossaryParser extracts term entries from the glossary document. The
// document exposes repeated entry blocks shaped like:
//
//	<div class="definition-entry" id="anchor">
//	    <h3><span class="definition-term">Term</span></h3>
//	    <div class="definition-content"><p>Body...</p></div>
//	</div>
type GlossaryParser struct{}

// NewGlossaryParser creates a new GlossaryParser.
func NewGlossaryParser() *GlossaryParser {
	return &GlossaryParser{}
}

// Parse builds a Registry from the glossary document. Entries missing a
// name, anchor, or body are skipped. Entries sharing a lower-cased name
// overwrite earlier ones, so the registry holds at most one term per key.
func (p *GlossaryParser) Parse(html string) (*marginalia.Registry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "failed to parse glossary: %v", err)
	}

	reg := marginalia.NewRegistry()

	doc.Find(".definition-entry").Each(func(_ int, entry *goquery.Selection) {
		anchor, _ := entry.Attr("id")
		name := strings.TrimSpace(entry.Find(".definition-term").First().Text())
		body := collapseSpace(entry.Find(".definition-content").First().Text())

		term := marginalia.Term{
			Name:    name,
			Anchor:  anchor,
			Preview: marginalia.TruncatePreview(body),
		}
		// Put rejects malformed entries; skipping them is not fatal.
		_ = reg.Put(term)
	})

	return reg, nil
}

// collapseSpace trims the text and folds internal whitespace runs into
// single spaces, undoing the glossary document's indentation.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
