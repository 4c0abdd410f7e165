package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/haslan/marginalia"
)

// Ensure SitemapSource implements marginalia.PageSource at compile time.
var _ marginalia.PageSource = (*SitemapSource)(nil)

// SitemapSource discovers a site's page URLs from its sitemap.xml.
type SitemapSource struct {
	fetcher marginalia.PageFetcher
}

// NewSitemapSource creates a SitemapSource over the given fetcher. A nil
// fetcher gets a default HTTP one.
func NewSitemapSource(fetcher marginalia.PageFetcher) *SitemapSource {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &SitemapSource{fetcher: fetcher}
}

// Discover fetches <baseURL>/sitemap.xml and returns the same-host page
// URLs it lists, deduplicated in document order. A missing sitemap is not
// an error: an empty slice is returned and callers fall back to
// link-walking.
func (s *SitemapSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "invalid base URL: %v", err)
	}

	sitemapURL := base.Scheme + "://" + base.Host + "/sitemap.xml"
	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		if marginalia.ErrorCode(err) == marginalia.ENOTFOUND {
			return []string{}, nil
		}
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "invalid sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "urlset" {
		return []string{}, nil
	}

	var urls []string
	seen := make(map[string]bool)
	for _, el := range root.SelectElements("url") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		raw := strings.TrimSpace(loc.Text())
		u, err := url.Parse(raw)
		if err != nil || u.Host != base.Host {
			continue
		}
		if !seen[raw] {
			seen[raw] = true
			urls = append(urls, raw)
		}
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}
