package goquery

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Annotator implements marginalia.PageAnnotator at compile time.
var _ marginalia.PageAnnotator = (*Annotator)(nil)

// Annotator rewrites whole-word occurrences of registered terms in text
// nodes into definition links. It only ever touches true text nodes, so
// surrounding markup survives the pass byte for byte, and it never enters
// anchors, headings (h1-h4), code, pre, script, or elements already
// carrying the definition-link marker class.
type Annotator struct{}

// NewAnnotator creates a new Annotator.
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// excludedElements are never entered during traversal.
var excludedElements = map[atom.Atom]bool{
	atom.A:      true,
	atom.H1:     true,
	atom.H2:     true,
	atom.H3:     true,
	atom.H4:     true,
	atom.Code:   true,
	atom.Pre:    true,
	atom.Script: true,
	atom.Style:  true,
}

// matcher pairs a term with its compiled whole-word pattern.
type matcher struct {
	term marginalia.Term
	re   *regexp.Regexp
}

// span is a matched range within a text node's data.
type span struct {
	term  marginalia.Term
	start int
	end   int
}

// candidate is a text node scheduled for rewriting, with its matches.
// Candidates are collected in a read-only traversal and consumed by the
// mutation pass, so traversal never observes its own rewrites.
type candidate struct {
	node  *html.Node
	spans []span
}

// Annotate performs the one-shot scan-and-rewrite pass. An empty registry
// makes it a no-op; selectors matching nothing are skipped. Running the
// pass again on its own output produces the same document: every link it
// creates is excluded from later traversals by element type and marker
// class.
func (a *Annotator) Annotate(pageHTML string, reg *marginalia.Registry, opts marginalia.AnnotateOptions) (*marginalia.AnnotateResult, error) {
	if reg == nil || reg.Len() == 0 {
		return &marginalia.AnnotateResult{HTML: pageHTML}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "failed to parse page: %v", err)
	}

	selectors := opts.Selectors
	if len(selectors) == 0 {
		selectors = marginalia.DefaultContentSelectors
	}

	// Terms() orders longest display form first, which makes overlapping
	// terms resolve deterministically below.
	matchers := make([]matcher, 0, reg.Len())
	for _, t := range reg.Terms() {
		matchers = append(matchers, matcher{
			term: t,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(t.Name) + `\b`),
		})
	}

	// Pass one: read-only traversal collecting candidates.
	seen := make(map[*html.Node]bool)
	var candidates []candidate
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, root *goquery.Selection) {
			for _, n := range root.Nodes {
				collect(n, matchers, opts.AllMatches, seen, &candidates)
			}
		})
	}

	// Pass two: apply replacements. Mutation order no longer matters
	// because traversal is complete.
	res := &marginalia.AnnotateResult{}
	for _, c := range candidates {
		rewrite(c, opts.PageDepth, res)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Get(0)); err != nil {
		return nil, marginalia.Errorf(marginalia.EINTERNAL, "failed to render page: %v", err)
	}
	res.HTML = buf.String()

	return res, nil
}

// collect walks a subtree, honoring exclusions at traversal time, and
// records at most one candidate per text node.
func collect(n *html.Node, matchers []matcher, all bool, seen map[*html.Node]bool, out *[]candidate) {
	switch n.Type {
	case html.ElementNode:
		if excludedElements[n.DataAtom] || hasClass(n, marginalia.LinkClass) {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child, matchers, all, seen, out)
		}
	case html.TextNode:
		if seen[n] {
			return
		}
		seen[n] = true
		if spans := matchSpans(n.Data, matchers, all); len(spans) > 0 {
			*out = append(*out, candidate{node: n, spans: spans})
		}
	}
}

// matchSpans finds term matches in a text node's data. The earliest
// occurrence wins; matches starting at the same offset resolve
// longest-match-first. With all set, every non-overlapping match is kept
// under the same ordering rule; otherwise only the first.
func matchSpans(text string, matchers []matcher, all bool) []span {
	var found []span
	for _, m := range matchers {
		if all {
			for _, loc := range m.re.FindAllStringIndex(text, -1) {
				found = append(found, span{term: m.term, start: loc[0], end: loc[1]})
			}
		} else if loc := m.re.FindStringIndex(text); loc != nil {
			found = append(found, span{term: m.term, start: loc[0], end: loc[1]})
		}
	}
	if len(found) == 0 {
		return nil
	}

	// Stable sort keeps the longest-first matcher order for equal starts.
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	kept := found[:0]
	lastEnd := -1
	for _, s := range found {
		if s.start < lastEnd {
			continue
		}
		kept = append(kept, s)
		lastEnd = s.end
	}
	if !all {
		return kept[:1]
	}
	return kept
}

// rewrite replaces a candidate's text node with a fragment of plain text
// and definition links. Text outside the matched spans is preserved
// verbatim.
func rewrite(c candidate, depth int, res *marginalia.AnnotateResult) {
	parent := c.node.Parent
	if parent == nil {
		return
	}

	text := c.node.Data
	pos := 0
	for _, s := range c.spans {
		if s.start > pos {
			parent.InsertBefore(textNode(text[pos:s.start]), c.node)
		}

		href := marginalia.GlossaryHref(depth, s.term.Anchor)
		link := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.A,
			Data:     "a",
			Attr: []html.Attribute{
				{Key: "class", Val: marginalia.LinkClass},
				{Key: "href", Val: href},
				{Key: "data-term", Val: s.term.Name},
				{Key: "data-definition", Val: s.term.Preview},
			},
		}
		link.AppendChild(textNode(text[s.start:s.end]))
		parent.InsertBefore(link, c.node)

		res.Anchors = append(res.Anchors, marginalia.Anchor{
			ID:   fmt.Sprintf("dt-%d", len(res.Anchors)+1),
			Kind: marginalia.AnchorGlossary,
			Term: s.term,
			Href: href,
		})
		pos = s.end
	}
	if pos < len(text) {
		parent.InsertBefore(textNode(text[pos:]), c.node)
	}

	parent.RemoveChild(c.node)
	res.Matched++
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// hasClass reports whether the element's class attribute contains the
// given class token.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
