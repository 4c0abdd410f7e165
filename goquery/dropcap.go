package goquery

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultLeadSelector locates the lead paragraph the dropcap applies to.
const DefaultLeadSelector = ".writing-content p"

// Ensure Dropcap implements marginalia.DropcapFormatter at compile time.
var _ marginalia.DropcapFormatter = (*Dropcap)(nil)

// Dropcap wraps the first letter of the lead paragraph in a styled span.
// The first letter is found by skipping leading tags, not leading
// characters: a paragraph opening with nested inline markup (say an
// emphasis tag) keeps that markup unchanged around the styled letter.
type Dropcap struct {
	// LeadSelector identifies the lead content region's paragraphs.
	// Defaults to DefaultLeadSelector when empty.
	LeadSelector string
}

// NewDropcap creates a Dropcap with the default lead selector.
func NewDropcap() *Dropcap {
	return &Dropcap{}
}

// Dropcap applies the treatment once. Pages without a lead paragraph, with
// a dropcap already applied, or whose lead paragraph is shorter than
// marginalia.DropcapMinLength pass through unchanged.
func (d *Dropcap) Dropcap(pageHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", marginalia.Errorf(marginalia.EINVALID, "failed to parse page: %v", err)
	}

	selector := d.LeadSelector
	if selector == "" {
		selector = DefaultLeadSelector
	}

	lead := doc.Find(selector).First()
	if lead.Length() == 0 {
		return pageHTML, nil
	}
	if lead.Find("span.dropcap").Length() > 0 {
		return pageHTML, nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(lead.Text())) < marginalia.DropcapMinLength {
		return pageHTML, nil
	}

	tn := firstTextNode(lead.Get(0))
	if tn == nil {
		return pageHTML, nil
	}

	styleFirstLetter(tn)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Get(0)); err != nil {
		return "", marginalia.Errorf(marginalia.EINTERNAL, "failed to render page: %v", err)
	}
	return buf.String(), nil
}

// firstTextNode returns the first text node with non-whitespace content in
// document order under n, descending through leading inline tags.
func firstTextNode(n *html.Node) *html.Node {
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) != "" {
			return n
		}
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := firstTextNode(child); found != nil {
			return found
		}
	}
	return nil
}

// styleFirstLetter replaces a text node with [leading space][span with the
// first letter][remaining text].
func styleFirstLetter(tn *html.Node) {
	parent := tn.Parent
	text := tn.Data

	cut := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	letter, width := utf8.DecodeRuneInString(text[cut:])
	rest := text[cut+width:]

	if cut > 0 {
		parent.InsertBefore(textNode(text[:cut]), tn)
	}

	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "class", Val: "dropcap"}},
	}
	span.AppendChild(textNode(string(letter)))
	parent.InsertBefore(span, tn)

	if rest != "" {
		parent.InsertBefore(textNode(rest), tn)
	}
	parent.RemoveChild(tn)
}
