// Package popup implements the definition preview controller: a state
// machine over a single shared popup surface serving every preview-eligible
// anchor on the page.
package popup

import (
	"sync"
	"time"

	"github.com/haslan/marginalia"
)

// State is the controller's interaction state.
type State int

// Controller states.
const (
	Hidden State = iota
	Pending
	Visible
)

// DefaultShowDelay debounces popup display so rapid mouse passes over
// consecutive links do not flash previews.
const DefaultShowDelay = 150 * time.Millisecond

// Content is what the shared popup surface renders: it is resolved from the
// anchor's term or excerpt at show-time, never pre-rendered.
type Content struct {
	Title string
	Body  string
	Href  string
}

// Popup is a visible popup: its content and computed origin.
type Popup struct {
	Content Content
	Origin  marginalia.Point
}

// Controller owns the page's single popup state. At most one popup is
// visible at a time; showing a new one retires the previous state, and a
// newly triggered Pending cancels the delay timer of any previous Pending.
// The registry and excerpt table are shared read-only inputs.
type Controller struct {
	registry *marginalia.Registry
	excerpts marginalia.ExcerptTable
	sched    marginalia.Scheduler
	delay    time.Duration

	onShow func(Popup)
	onHide func()

	mu       sync.Mutex
	viewport marginalia.Viewport
	anchors  map[string]marginalia.Anchor
	state    State
	current  string
	cancel   marginalia.CancelFunc
	shown    Popup
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the Pending-to-Visible debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithScheduler sets the timer scheduler. Tests substitute a manually
// fired implementation.
func WithScheduler(s marginalia.Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithViewport sets the initial viewport.
func WithViewport(v marginalia.Viewport) Option {
	return func(c *Controller) { c.viewport = v }
}

// WithSurface registers the rendering surface callbacks invoked on show
// and hide.
func WithSurface(show func(Popup), hide func()) Option {
	return func(c *Controller) {
		c.onShow = show
		c.onHide = hide
	}
}

// NewController creates a Controller sharing the given registry and
// excerpt table. Both may be empty; unresolvable anchors then no-op.
func NewController(reg *marginalia.Registry, excerpts marginalia.ExcerptTable, opts ...Option) *Controller {
	c := &Controller{
		registry: reg,
		excerpts: excerpts,
		sched:    marginalia.TimerScheduler{},
		delay:    DefaultShowDelay,
		anchors:  make(map[string]marginalia.Anchor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach registers the anchors interaction events may reference. It is
// called with the anchors of a completed annotation pass, which makes the
// annotate-before-attach ordering a data dependency rather than a timing
// assumption. Attach may be called more than once to add internal-page
// anchors alongside glossary ones.
func (c *Controller) Attach(anchors []marginalia.Anchor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range anchors {
		if a.ID == "" {
			continue
		}
		c.anchors[a.ID] = a
	}
}

// SetViewport updates the host viewport used for placement and touch
// detection.
func (c *Controller) SetViewport(v marginalia.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = v
}

// State returns the current interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the visible or pending popup, if any.
func (c *Controller) Current() (Popup, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Visible {
		return Popup{}, false
	}
	return c.shown, true
}

// PointerEnter handles pointer-enter or focus on an anchor: the controller
// moves to Pending and shows the popup after the debounce delay. The
// anchor's bounding rectangle and the popup's natural size come from the
// host at event time; position is recomputed on every show.
func (c *Controller) PointerEnter(anchorID string, bounds marginalia.Rect, size marginalia.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	anchor, ok := c.anchors[anchorID]
	if !ok {
		return
	}
	if c.state == Visible && c.current == anchorID {
		return
	}

	// A visible popup for another anchor retires before the new one's
	// debounce starts, so at most one popup ever shows.
	if c.state == Visible {
		c.hideLocked()
	} else {
		c.cancelPendingLocked()
	}
	c.state = Pending
	c.current = anchorID
	c.cancel = c.sched.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state != Pending || c.current != anchorID {
			return
		}
		c.showLocked(anchor, bounds, size)
	})
}

// PointerLeave handles pointer-leave, blur, or an explicit dismiss for the
// given anchor. Pending and Visible both collapse to Hidden.
func (c *Controller) PointerLeave(anchorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != anchorID {
		return
	}
	c.hideLocked()
}

// Tap handles a tap on an anchor on touch viewports. The first tap opens
// the popup immediately and suppresses navigation; a second tap on the same
// anchor while its popup is visible is deliberate navigation, and the
// default link action proceeds. The returned value reports whether
// navigation should proceed.
func (c *Controller) Tap(anchorID string, bounds marginalia.Rect, size marginalia.Size) (navigate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	anchor, ok := c.anchors[anchorID]
	if !ok {
		return true
	}
	if c.state == Visible && c.current == anchorID {
		c.hideLocked()
		return true
	}

	c.cancelPendingLocked()
	c.current = anchorID
	c.showLocked(anchor, bounds, size)
	return false
}

// Dismiss hides any pending or visible popup.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLocked()
}

// showLocked transitions to Visible, resolving content from the anchor's
// term or excerpt. Unresolvable anchors leave the controller Hidden.
func (c *Controller) showLocked(anchor marginalia.Anchor, bounds marginalia.Rect, size marginalia.Size) {
	content, ok := c.resolve(anchor)
	if !ok {
		c.state = Hidden
		c.current = ""
		return
	}

	c.state = Visible
	c.shown = Popup{
		Content: content,
		Origin:  Place(bounds, size, c.viewport.Size, c.viewport.Touch),
	}
	if c.onShow != nil {
		c.onShow(c.shown)
	}
}

func (c *Controller) hideLocked() {
	c.cancelPendingLocked()
	wasVisible := c.state == Visible
	c.state = Hidden
	c.current = ""
	c.shown = Popup{}
	if wasVisible && c.onHide != nil {
		c.onHide()
	}
}

func (c *Controller) cancelPendingLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// resolve builds popup content for an anchor. Glossary anchors read the
// shared registry; internal anchors read the excerpts table.
func (c *Controller) resolve(anchor marginalia.Anchor) (Content, bool) {
	switch anchor.Kind {
	case marginalia.AnchorGlossary:
		term := anchor.Term
		if term.Name == "" {
			if found, ok := c.registry.LookupAnchor(anchorFragment(anchor.Href)); ok {
				term = found
			} else {
				return Content{}, false
			}
		}
		return Content{Title: term.Name, Body: term.Preview, Href: anchor.Href}, true
	case marginalia.AnchorInternal:
		if e, ok := c.excerpts.Lookup(anchor.Href); ok {
			return Content{Title: e.Title, Body: e.Text, Href: anchor.Href}, true
		}
	}
	return Content{}, false
}

func anchorFragment(href string) string {
	for i := len(href) - 1; i >= 0; i-- {
		if href[i] == '#' {
			return href[i+1:]
		}
	}
	return ""
}
