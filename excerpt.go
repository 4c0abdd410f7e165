package marginalia

import "strings"

// Excerpt is a short title/excerpt pair for an internal page, shown when a
// reader previews a non-glossary link.
type Excerpt struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// ExcerptTable maps site-relative page paths to excerpts. It is a static
// lookup supplied by the surrounding application (or built by the crawl
// package) and read-only once loaded.
type ExcerptTable map[string]Excerpt

// Lookup resolves a link destination to an excerpt. Destinations are
// normalized before lookup: fragments and leading "./" or "../" segments
// are stripped, so relative hrefs from nested pages still resolve.
func (t ExcerptTable) Lookup(href string) (Excerpt, bool) {
	e, ok := t[NormalizePath(href)]
	return e, ok
}

// NormalizePath reduces a link destination to the site-relative path the
// excerpts table is keyed by.
func NormalizePath(href string) string {
	if idx := strings.Index(href, "#"); idx != -1 {
		href = href[:idx]
	}
	for {
		switch {
		case strings.HasPrefix(href, "../"):
			href = strings.TrimPrefix(href, "../")
		case strings.HasPrefix(href, "./"):
			href = strings.TrimPrefix(href, "./")
		case strings.HasPrefix(href, "/"):
			href = strings.TrimPrefix(href, "/")
		default:
			return href
		}
	}
}

// ExcerptExtractor derives a page's excerpt from its markup.
type ExcerptExtractor interface {
	// Extract returns the page title and a short plain-text excerpt.
	Extract(html string) (*Excerpt, error)
}

// ExcerptStore loads and saves excerpt tables.
type ExcerptStore interface {
	LoadExcerpts(path string) (ExcerptTable, error)
	SaveExcerpts(path string, table ExcerptTable) error
}
