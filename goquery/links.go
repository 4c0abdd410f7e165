package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
)

// Ensure LinkExtractor implements marginalia.LinkExtractor at compile time.
var _ marginalia.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds a page's same-host links for the excerpt builder's
// fallback link walk.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Links parses the page and returns resolved same-host link URLs in
// document order, deduplicated. Non-HTTP schemes (mailto:, javascript:)
// and self-references are skipped.
func (e *LinkExtractor) Links(pageHTML string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "failed to parse page: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		if resolved.Host != base.Host {
			return
		}

		s := resolved.String()
		if s == baseURL || seen[s] {
			return
		}
		seen[s] = true
		links = append(links, s)
	})
	return links, nil
}

// isNonHTTPLink checks for hrefs that are not page links.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
