package main

import (
	"fmt"

	"github.com/haslan/marginalia/crawl"
	mgoquery "github.com/haslan/marginalia/goquery"
	mhttp "github.com/haslan/marginalia/http"
	"github.com/haslan/marginalia/readability"
	mslog "github.com/haslan/marginalia/slog"
	"github.com/haslan/marginalia/yaml"
)

// Run executes the excerpts command.
func (c *ExcerptsCmd) Run(deps *Dependencies) error {
	fetcher := mslog.NewLoggingPageFetcher(mhttp.NewFetcher(), deps.Logger)

	builder := &crawl.Builder{
		Pages:       mhttp.NewSitemapSource(fetcher),
		Fetcher:     fetcher,
		Extractor:   readability.NewExtractor(),
		Links:       mgoquery.NewLinkExtractor(),
		Limiter:     crawl.NewHostLimiter(c.RPS),
		Concurrency: c.Concurrency,
		Limit:       c.Limit,
	}

	table, err := builder.Build(deps.Ctx, c.BaseURL)
	if err != nil {
		return err
	}

	if err := yaml.NewStore().SaveExcerpts(c.Out, table); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d excerpt(s) written to %s\n", len(table), c.Out)
	return nil
}
