// Package http provides HTTP-based implementations of the marginalia
// fetching interfaces: the glossary document loader and the page fetcher
// used by the excerpt builder.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/haslan/marginalia"
)

// DefaultTimeout bounds a single fetch. The glossary load must never block
// page enhancement for long; a slow response degrades to an empty registry.
const DefaultTimeout = 10 * time.Second

// userAgent identifies the engine to the site being fetched.
const userAgent = "marginalia/1.0"

// Ensure Fetcher implements both fetching interfaces at compile time.
var (
	_ marginalia.GlossaryFetcher = (*Fetcher)(nil)
	_ marginalia.PageFetcher     = (*Fetcher)(nil)
)

// Fetcher retrieves documents over HTTP. The same implementation serves
// the glossary loader and the excerpt builder; the site is static, so no
// script execution is needed.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithClient substitutes the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates an HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch retrieves the document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", marginalia.Errorf(marginalia.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", marginalia.Errorf(marginalia.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", marginalia.Errorf(marginalia.ENOTFOUND, "not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", marginalia.Errorf(marginalia.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", marginalia.Errorf(marginalia.EUNAVAILABLE, "read %s: %v", url, err)
	}
	return string(body), nil
}
