package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/haslan/marginalia"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for the fallback link walk.
const (
	frontierExpectedLinks     = 2000
	frontierFalsePositiveRate = 0.01
)

// DefaultPageLimit bounds the number of pages the builder visits, so a
// misconfigured base URL cannot turn into a runaway walk.
const DefaultPageLimit = 200

// Builder assembles the internal page excerpts table: it discovers the
// site's pages, fetches each one, and extracts a title/excerpt pair. Page
// failures are skipped, not fatal; the table is a progressive enhancement
// input, never required for the site to function.
type Builder struct {
	// Pages discovers page URLs, typically from the sitemap. Optional;
	// when nil or when discovery finds nothing, the builder falls back to
	// link-walking from the base URL.
	Pages marginalia.PageSource

	// Fetcher retrieves page markup. Required.
	Fetcher marginalia.PageFetcher

	// Extractor derives each page's excerpt. Required.
	Extractor marginalia.ExcerptExtractor

	// Links extracts same-host links for the fallback walk. Required
	// when the walk can be reached.
	Links marginalia.LinkExtractor

	// Limiter rate-limits fetches per host. Optional.
	Limiter marginalia.HostLimiter

	// Concurrency bounds parallel fetches for sitemap-discovered pages.
	// Defaults to 4.
	Concurrency int

	// Limit bounds the number of pages visited. Defaults to
	// DefaultPageLimit.
	Limit int
}

// Build returns the excerpts table for the site at baseURL, keyed by
// site-relative page path.
func (b *Builder) Build(ctx context.Context, baseURL string) (marginalia.ExcerptTable, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "invalid base URL: %v", err)
	}

	var urls []string
	if b.Pages != nil {
		discovered, err := b.Pages.Discover(ctx, baseURL)
		if err == nil {
			urls = discovered
		}
	}

	if len(urls) == 0 {
		return b.walk(ctx, baseURL)
	}

	limit := b.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if len(urls) > limit {
		urls = urls[:limit]
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	table := marginalia.ExcerptTable{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, pageURL := range urls {
		g.Go(func() error {
			excerpt, path, ok := b.visit(gctx, pageURL)
			if !ok {
				return nil
			}
			mu.Lock()
			table[path] = *excerpt
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

// walk builds the table by following same-host links from the base URL,
// deduplicated through the Bloom-filtered frontier. Used when the site has
// no sitemap.
func (b *Builder) walk(ctx context.Context, baseURL string) (marginalia.ExcerptTable, error) {
	limit := b.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	frontier := NewFrontier(frontierExpectedLinks, frontierFalsePositiveRate)
	frontier.Push(baseURL)

	table := marginalia.ExcerptTable{}
	visited := 0
	for visited < limit {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		visited++

		html, err := b.fetch(ctx, pageURL)
		if err != nil {
			continue
		}

		if links, err := b.Links.Links(html, pageURL); err == nil {
			for _, link := range links {
				if isPageURL(link) {
					frontier.Push(link)
				}
			}
		}

		excerpt, err := b.Extractor.Extract(html)
		if err != nil {
			continue
		}
		if path, ok := pagePath(pageURL); ok {
			table[path] = *excerpt
		}
	}
	return table, nil
}

// visit fetches and extracts one sitemap-discovered page.
func (b *Builder) visit(ctx context.Context, pageURL string) (*marginalia.Excerpt, string, bool) {
	if !isPageURL(pageURL) {
		return nil, "", false
	}
	path, ok := pagePath(pageURL)
	if !ok {
		return nil, "", false
	}

	html, err := b.fetch(ctx, pageURL)
	if err != nil {
		return nil, "", false
	}

	excerpt, err := b.Extractor.Extract(html)
	if err != nil {
		return nil, "", false
	}
	return excerpt, path, true
}

func (b *Builder) fetch(ctx context.Context, pageURL string) (string, error) {
	if b.Limiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", err
		}
		if err := b.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return b.Fetcher.Fetch(ctx, pageURL)
}

// pagePath reduces a page URL to the site-relative path the excerpts table
// is keyed by.
func pagePath(pageURL string) (string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	path := strings.TrimPrefix(u.Path, "/")
	if path == "" {
		path = "index.html"
	}
	return path, true
}

// isPageURL filters out assets the excerpt builder should never fetch.
func isPageURL(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, ".html") {
		return true
	}
	return !strings.Contains(lastSegment(path), ".")
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}
