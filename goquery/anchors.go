package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
)

// InternalAnchors collects the pre-existing preview-eligible links on a
// page: anchors whose destination resolves in the internal page excerpts
// table. Definition links are ignored (they preview from the registry),
// as are external and fragment-only destinations.
func InternalAnchors(pageHTML string, table marginalia.ExcerptTable) ([]marginalia.Anchor, error) {
	if len(table) == 0 {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "failed to parse page: %v", err)
	}

	var anchors []marginalia.Anchor
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass(marginalia.LinkClass) {
			return
		}
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || strings.Contains(href, "://") {
			return
		}
		if _, ok := table.Lookup(href); !ok {
			return
		}
		anchors = append(anchors, marginalia.Anchor{
			ID:   fmt.Sprintf("pg-%d", len(anchors)+1),
			Kind: marginalia.AnchorInternal,
			Href: href,
		})
	})

	return anchors, nil
}
