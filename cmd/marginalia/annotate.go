package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/fs"
	"golang.org/x/sync/errgroup"
)

// Run executes the annotate command.
func (c *AnnotateCmd) Run(deps *Dependencies) error {
	reg, err := deps.Registries(c.Glossary).Load(deps.Ctx, c.Glossary)
	if err != nil {
		// Degrade rather than abort: an unreachable glossary means the
		// pages pass through unannotated, matching the site's runtime
		// behavior. The logging decorator already recorded the failure.
		reg = marginalia.NewRegistry()
	}
	if reg.Len() == 0 {
		fmt.Fprintln(deps.Stderr, "warning: empty glossary, pages will pass through unchanged")
	}

	writer := fs.NewWriter()

	var mu sync.Mutex
	totalMatched, written := 0, 0

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for _, page := range c.Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(page)
			if err != nil {
				// A missing page is skipped, not fatal.
				fmt.Fprintf(deps.Stderr, "skip %s: %v\n", page, err)
				return nil
			}

			opts := marginalia.AnnotateOptions{
				Selectors:  c.Selector,
				PageDepth:  c.pageDepth(page),
				AllMatches: c.All,
			}
			res, err := deps.Annotator.Annotate(string(data), reg, opts)
			if err != nil {
				return fmt.Errorf("annotate %s: %w", page, err)
			}

			out := res.HTML
			if c.Dropcap {
				if out, err = deps.Dropcaps.Dropcap(out); err != nil {
					return fmt.Errorf("dropcap %s: %w", page, err)
				}
			}

			if c.Check {
				fmt.Fprintf(deps.Stdout, "%s: %d match(es), %d link(s)\n", page, res.Matched, len(res.Anchors))
			} else {
				changed, err := writer.WritePage(page, out)
				if err != nil {
					return fmt.Errorf("write %s: %w", page, err)
				}
				if changed {
					fmt.Fprintf(deps.Stdout, "%s: %d link(s)\n", page, len(res.Anchors))
				}
				mu.Lock()
				if changed {
					written++
				}
				mu.Unlock()
			}

			mu.Lock()
			totalMatched += res.Matched
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if c.Check {
		fmt.Fprintf(deps.Stdout, "%d page(s), %d match(es)\n", len(c.Pages), totalMatched)
	} else {
		fmt.Fprintf(deps.Stdout, "%d page(s) written, %d unchanged\n", written, len(c.Pages)-written)
	}
	return nil
}

// pageDepth resolves a page's directory depth below the site root, which
// determines the relative glossary path in generated links.
func (c *AnnotateCmd) pageDepth(page string) int {
	if c.SiteRoot == "" {
		return c.Depth
	}
	rel, err := filepath.Rel(c.SiteRoot, page)
	if err != nil || strings.HasPrefix(rel, "..") {
		return c.Depth
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}
