package marginalia

import "context"

// PageFetcher retrieves a page's markup from a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// PageSource discovers the site's page URLs, typically from its sitemap.
// An empty (non-nil) slice means discovery succeeded but found nothing;
// callers then fall back to link-walking.
type PageSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}

// LinkFrontier manages a link-walk queue with deduplication.
type LinkFrontier interface {
	// Push queues a URL. Returns false if it has already been seen.
	Push(url string) bool

	// Pop returns the next URL, or false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued URLs.
	Len() int
}

// LinkExtractor finds the same-host links on a page, resolved against a
// base URL. The excerpt builder uses it when sitemap discovery comes up
// empty.
type LinkExtractor interface {
	Links(html string, baseURL string) ([]string, error)
}

// HostLimiter provides per-host rate limiting for site fetches.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
