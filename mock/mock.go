// Package mock provides hand-written mocks of the marginalia interfaces
// for testing.
package mock

import (
	"context"

	"github.com/haslan/marginalia"
)

var _ marginalia.GlossaryFetcher = (*Fetcher)(nil)
var _ marginalia.PageFetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of the fetching interfaces.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ marginalia.GlossaryParser = (*GlossaryParser)(nil)

// GlossaryParser is a mock implementation of marginalia.GlossaryParser.
type GlossaryParser struct {
	ParseFn func(html string) (*marginalia.Registry, error)
}

func (p *GlossaryParser) Parse(html string) (*marginalia.Registry, error) {
	return p.ParseFn(html)
}

var _ marginalia.RegistrySource = (*RegistrySource)(nil)

// RegistrySource is a mock implementation of marginalia.RegistrySource.
type RegistrySource struct {
	LoadFn func(ctx context.Context, location string) (*marginalia.Registry, error)
}

func (s *RegistrySource) Load(ctx context.Context, location string) (*marginalia.Registry, error) {
	return s.LoadFn(ctx, location)
}

var _ marginalia.PageAnnotator = (*PageAnnotator)(nil)

// PageAnnotator is a mock implementation of marginalia.PageAnnotator.
type PageAnnotator struct {
	AnnotateFn func(pageHTML string, reg *marginalia.Registry, opts marginalia.AnnotateOptions) (*marginalia.AnnotateResult, error)
}

func (a *PageAnnotator) Annotate(pageHTML string, reg *marginalia.Registry, opts marginalia.AnnotateOptions) (*marginalia.AnnotateResult, error) {
	return a.AnnotateFn(pageHTML, reg, opts)
}

var _ marginalia.DropcapFormatter = (*DropcapFormatter)(nil)

// DropcapFormatter is a mock implementation of marginalia.DropcapFormatter.
type DropcapFormatter struct {
	DropcapFn func(pageHTML string) (string, error)
}

func (d *DropcapFormatter) Dropcap(pageHTML string) (string, error) {
	return d.DropcapFn(pageHTML)
}

var _ marginalia.ExcerptExtractor = (*ExcerptExtractor)(nil)

// ExcerptExtractor is a mock implementation of marginalia.ExcerptExtractor.
type ExcerptExtractor struct {
	ExtractFn func(html string) (*marginalia.Excerpt, error)
}

func (e *ExcerptExtractor) Extract(html string) (*marginalia.Excerpt, error) {
	return e.ExtractFn(html)
}

var _ marginalia.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of marginalia.PageSource.
type PageSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *PageSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}

var _ marginalia.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of marginalia.LinkExtractor.
type LinkExtractor struct {
	LinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) Links(html string, baseURL string) ([]string, error) {
	return e.LinksFn(html, baseURL)
}

var _ marginalia.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of marginalia.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, host)
}
