// Package sidenote implements the responsive layout engine for Tufte-style
// sidenotes: margin placement on desktop viewports, collapsible inline
// toggles on mobile.
package sidenote

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
	"golang.org/x/net/html"
)

// Note is one sidenote: an in-flow reference marker that stays visible, a
// number label, and exactly one content block holding the marginal note
// body. The layout engine only mutates presentation attributes, never the
// note's identity or content.
type Note struct {
	// ID identifies the note for toggle and hover events.
	ID string

	root    *html.Node
	ref     *html.Node
	number  *html.Node
	content *html.Node

	expanded bool // mobile-inline toggle state
	open     bool // desktop-margin hover/focus state
}

// Measurer supplies geometry from the host environment. The engine never
// reads layout state from globals.
type Measurer interface {
	// NoteRects returns the reference marker's bounding rectangle and the
	// content block's natural size. ok is false when the note is not
	// currently measurable.
	NoteRects(id string) (ref marginalia.Rect, content marginalia.Size, ok bool)

	// Column returns the main content column's bounding rectangle.
	Column() marginalia.Rect

	// Viewport returns the current viewport size.
	Viewport() marginalia.Size
}

// notesFromDocument locates the page's sidenote elements. Elements missing
// a reference marker or content block are skipped: a malformed note is a
// missing DOM target, not an error.
func notesFromDocument(doc *goquery.Document) []*Note {
	var notes []*Note
	doc.Find(".sidenote").Each(func(i int, sel *goquery.Selection) {
		ref := sel.Find(".sidenote-ref").First()
		number := sel.Find(".sidenote-number").First()
		content := sel.Find(".sidenote-content").First()
		if ref.Length() == 0 || content.Length() == 0 {
			return
		}

		id, ok := sel.Attr("id")
		if !ok || id == "" {
			id = fmt.Sprintf("sn-%d", i+1)
		}

		note := &Note{
			ID:      id,
			root:    sel.Get(0),
			ref:     ref.Get(0),
			content: content.Get(0),
		}
		if number.Length() > 0 {
			note.number = number.Get(0)
		}
		notes = append(notes, note)
	})
	return notes
}

// Attribute and class helpers for presentation mutations.

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return
			}
		}
		n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}

func removeClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		fields := strings.Fields(a.Val)
		kept := fields[:0]
		for _, c := range fields {
			if c != class {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
		} else {
			n.Attr[i].Val = strings.Join(kept, " ")
		}
		return
	}
}
