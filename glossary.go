package marginalia

import (
	"context"
	"strings"
)

// GlossaryFile is the name of the glossary document at the site root.
const GlossaryFile = "definitions.html"

// GlossaryFetcher retrieves the glossary document from a location.
// Implementations may fetch over HTTP or read from the local site tree.
type GlossaryFetcher interface {
	// Fetch returns the glossary document's markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, location string) (html string, err error)
}

// GlossaryParser parses a glossary document into a Registry.
type GlossaryParser interface {
	// Parse extracts term entries from the document's markup. Malformed
	// entries (missing name, anchor, or body) are skipped, not fatal.
	Parse(html string) (*Registry, error)
}

// RegistryLoader loads the definition registry by fetching and parsing the
// glossary document. Load never returns a nil registry: on fetch or parse
// failure it returns an empty one alongside the error, so callers can log
// and degrade to unannotated prose instead of blocking page rendering.
type RegistryLoader struct {
	Fetcher GlossaryFetcher
	Parser  GlossaryParser
}

// Load fetches and parses the glossary at the given location.
func (l *RegistryLoader) Load(ctx context.Context, location string) (*Registry, error) {
	html, err := l.Fetcher.Fetch(ctx, location)
	if err != nil {
		return NewRegistry(), Errorf(EUNAVAILABLE, "glossary fetch failed: %v", err)
	}

	reg, err := l.Parser.Parse(html)
	if err != nil {
		return NewRegistry(), Errorf(EINVALID, "glossary parse failed: %v", err)
	}
	return reg, nil
}

// ResolveGlossaryPath returns the relative path from a page at the given
// directory depth to the glossary document at the site root. Depth 0 is a
// page alongside the glossary; a page under pages/writing/ has depth 2.
// Pure function of depth, independent of network access.
func ResolveGlossaryPath(depth int) string {
	if depth <= 0 {
		return GlossaryFile
	}
	return strings.Repeat("../", depth) + GlossaryFile
}

// GlossaryHref builds the destination reference for an annotated term: the
// resolved glossary path plus the term's anchor fragment.
func GlossaryHref(depth int, anchor string) string {
	return ResolveGlossaryPath(depth) + "#" + anchor
}
