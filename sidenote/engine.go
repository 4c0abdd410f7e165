package sidenote

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/haslan/marginalia"
	"golang.org/x/net/html"
)

// Mode is the engine's layout mode. Exactly one mode is active at a time;
// it is derived solely from the current viewport width.
type Mode int

// Layout modes.
const (
	ModeNone Mode = iota // before the first Resize
	ModeDesktopMargin
	ModeMobileInline
)

// Layout constants, in logical pixels.
const (
	// DefaultBreakpoint is the viewport width at and above which notes
	// lay out in the margin.
	DefaultBreakpoint = 1100

	// DefaultGap separates stacked open notes vertically.
	DefaultGap = 12

	// columnGutter separates a margin note from the content column's
	// right edge.
	columnGutter = 24
)

// Classes and states written by the mobile-inline mode. Teardown removes
// every one of them, so a mode round trip restores the original markup.
const (
	toggleClass    = "sidenote-toggle"
	collapsedClass = "sidenote-collapsed"
)

// Placement is a computed margin position for one open note.
type Placement struct {
	ID     string
	Origin marginalia.Point

	// Visible is false when the note cannot fit inside the viewport's
	// right edge; the engine suppresses display rather than overlapping
	// adjacent page chrome.
	Visible bool
}

// Engine lays out a fixed set of sidenote elements, switching between
// margin placement and inline toggles as the viewport width crosses the
// breakpoint. Mode transitions tear down the previous mode's mutations
// before applying the new mode's, so converting to mobile and back restores
// the original structure and visibility of markers and content blocks.
type Engine struct {
	doc        *goquery.Document
	measurer   Measurer
	breakpoint float64
	gap        float64

	mode  Mode
	notes []*Note
	byID  map[string]*Note
}

// Option configures an Engine.
type Option func(*Engine)

// WithBreakpoint overrides the desktop/mobile width threshold.
func WithBreakpoint(px float64) Option {
	return func(e *Engine) { e.breakpoint = px }
}

// WithGap overrides the vertical gap between stacked open notes.
func WithGap(px float64) Option {
	return func(e *Engine) { e.gap = px }
}

// New parses the page's sidenote elements and returns an engine over them.
// The engine starts in ModeNone; the first Resize selects the active mode.
func New(pageHTML string, measurer Measurer, opts ...Option) (*Engine, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "failed to parse page: %v", err)
	}

	e := &Engine{
		doc:        doc,
		measurer:   measurer,
		breakpoint: DefaultBreakpoint,
		gap:        DefaultGap,
		notes:      notesFromDocument(doc),
		byID:       make(map[string]*Note),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, n := range e.notes {
		e.byID[n.ID] = n
	}
	return e, nil
}

// Notes returns the engine's notes in document order.
func (e *Engine) Notes() []*Note {
	return e.notes
}

// Mode returns the active layout mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// ModeFor derives the layout mode for a viewport width.
func (e *Engine) ModeFor(width float64) Mode {
	if width >= e.breakpoint {
		return ModeDesktopMargin
	}
	return ModeMobileInline
}

// Resize applies the mode for the given viewport width. It only acts on a
// verified mode change: the previous mode is torn down first, then the new
// mode set up, keeping the two modes' mutations from leaking into each
// other.
func (e *Engine) Resize(width float64) {
	next := e.ModeFor(width)
	if next == e.mode {
		return
	}

	switch e.mode {
	case ModeDesktopMargin:
		e.teardownDesktop()
	case ModeMobileInline:
		e.teardownMobile()
	}

	switch next {
	case ModeDesktopMargin:
		e.setupDesktop()
	case ModeMobileInline:
		e.setupMobile()
	}
	e.mode = next
}

// setupDesktop is structurally a no-op: margin placement is computed per
// hover/focus through Placements, and markers and content keep their
// original markup.
func (e *Engine) setupDesktop() {}

func (e *Engine) teardownDesktop() {
	for _, n := range e.notes {
		n.open = false
	}
}

// setupMobile converts each note into an independent collapsed toggle: the
// reference marker becomes the control, the content block is hidden until
// activated.
func (e *Engine) setupMobile() {
	for _, n := range e.notes {
		n.expanded = false
		addClass(n.ref, toggleClass)
		setAttr(n.ref, "role", "button")
		setAttr(n.ref, "tabindex", "0")
		setAttr(n.ref, "aria-expanded", "false")
		addClass(n.content, collapsedClass)
		setAttr(n.content, "aria-hidden", "true")
	}
}

func (e *Engine) teardownMobile() {
	for _, n := range e.notes {
		n.expanded = false
		removeClass(n.ref, toggleClass)
		removeAttr(n.ref, "role")
		removeAttr(n.ref, "tabindex")
		removeAttr(n.ref, "aria-expanded")
		removeClass(n.content, collapsedClass)
		removeAttr(n.content, "aria-hidden")
	}
}

// Toggle flips a note's expanded state in mobile-inline mode, updating the
// expanded/collapsed semantics for assistive technology. Toggles are
// independent of each other. Returns the new expanded state; ok is false
// outside mobile mode or for an unknown note.
func (e *Engine) Toggle(id string) (expanded bool, ok bool) {
	n, found := e.byID[id]
	if !found || e.mode != ModeMobileInline {
		return false, false
	}

	n.expanded = !n.expanded
	if n.expanded {
		setAttr(n.ref, "aria-expanded", "true")
		removeClass(n.content, collapsedClass)
		setAttr(n.content, "aria-hidden", "false")
	} else {
		setAttr(n.ref, "aria-expanded", "false")
		addClass(n.content, collapsedClass)
		setAttr(n.content, "aria-hidden", "true")
	}
	return n.expanded, true
}

// Open marks a note open in desktop-margin mode (hover or focus of its
// reference marker) and returns the recomputed placements for all open
// notes. ok is false outside desktop mode or for an unknown note.
func (e *Engine) Open(id string) (placements []Placement, ok bool) {
	n, found := e.byID[id]
	if !found || e.mode != ModeDesktopMargin {
		return nil, false
	}
	n.open = true
	return e.Placements(), true
}

// Close marks a note closed in desktop-margin mode.
func (e *Engine) Close(id string) {
	if n, found := e.byID[id]; found {
		n.open = false
	}
}

// Placements computes margin positions for the currently open notes, in
// document order. Each note aligns with its reference marker's top and
// sits just outside the content column's right edge; simultaneously open
// notes never overlap, later ones being pushed below the previous note's
// bottom plus the configured gap.
func (e *Engine) Placements() []Placement {
	column := e.measurer.Column()
	viewport := e.measurer.Viewport()
	x := column.Right() + columnGutter

	var placements []Placement
	prevBottom := -1.0
	for _, n := range e.notes {
		if !n.open {
			continue
		}
		ref, size, ok := e.measurer.NoteRects(n.ID)
		if !ok {
			continue
		}

		p := Placement{ID: n.ID, Origin: marginalia.Point{X: x, Y: ref.Y}, Visible: true}
		if x+size.Width > viewport.Width {
			// Conservative degradation: suppress rather than overlap
			// whatever sits beyond the viewport's right edge.
			p.Visible = false
		}
		if prevBottom >= 0 && p.Origin.Y < prevBottom+e.gap {
			p.Origin.Y = prevBottom + e.gap
		}
		if p.Visible {
			prevBottom = p.Origin.Y + size.Height
		}
		placements = append(placements, p)
	}
	return placements
}

// HTML renders the page markup in its current presentation state.
func (e *Engine) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.doc.Get(0)); err != nil {
		return "", marginalia.Errorf(marginalia.EINTERNAL, "failed to render page: %v", err)
	}
	return buf.String(), nil
}
