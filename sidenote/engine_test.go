package sidenote_test

import (
	"testing"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/mock"
	"github.com/haslan/marginalia/sidenote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sidenotePage = `<div class="writing-content">
<p>Prose<span class="sidenote" id="sn-a"><span class="sidenote-ref">1</span><span class="sidenote-number">1</span><span class="sidenote-content">First note body.</span></span> continues here.</p>
<p>More prose<span class="sidenote" id="sn-b"><span class="sidenote-ref">2</span><span class="sidenote-number">2</span><span class="sidenote-content">Second note body.</span></span> follows.</p>
<p>Broken<span class="sidenote"><span class="sidenote-ref">3</span></span> marker.</p>
</div>`

func newTestMeasurer() *mock.Measurer {
	return &mock.Measurer{
		Refs: map[string]marginalia.Rect{
			"sn-a": {X: 650, Y: 120, Width: 12, Height: 16},
			"sn-b": {X: 650, Y: 180, Width: 12, Height: 16},
		},
		Sizes: map[string]marginalia.Size{
			"sn-a": {Width: 200, Height: 100},
			"sn-b": {Width: 200, Height: 80},
		},
		ColumnVal: marginalia.Rect{X: 100, Y: 0, Width: 600, Height: 2000},
		View:      marginalia.Size{Width: 1300, Height: 900},
	}
}

func TestNew_ParsesNotes(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)

	notes := e.Notes()
	require.Len(t, notes, 2, "the note missing a content block is skipped")
	assert.Equal(t, "sn-a", notes[0].ID)
	assert.Equal(t, "sn-b", notes[1].ID)
	assert.Equal(t, sidenote.ModeNone, e.Mode())
}

func TestNew_AssignsOrdinalIDs(t *testing.T) {
	t.Parallel()

	page := `<p><span class="sidenote"><span class="sidenote-ref">1</span><span class="sidenote-content">Body.</span></span></p>`

	e, err := sidenote.New(page, newTestMeasurer())
	require.NoError(t, err)

	require.Len(t, e.Notes(), 1)
	assert.Equal(t, "sn-1", e.Notes()[0].ID)
}

func TestEngine_ModeFor(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)

	assert.Equal(t, sidenote.ModeDesktopMargin, e.ModeFor(1300))
	assert.Equal(t, sidenote.ModeDesktopMargin, e.ModeFor(1100), "the breakpoint itself is desktop")
	assert.Equal(t, sidenote.ModeMobileInline, e.ModeFor(1099))
}

func TestEngine_OpenPlacesInMargin(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(1300)

	placements, ok := e.Open("sn-a")
	require.True(t, ok)
	require.Len(t, placements, 1)

	// Column right edge 700 plus the gutter.
	assert.Equal(t, float64(724), placements[0].Origin.X)
	assert.Equal(t, float64(120), placements[0].Origin.Y, "aligned with the reference marker's top")
	assert.True(t, placements[0].Visible)
}

func TestEngine_OpenNotesStackWithoutOverlap(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(1300)

	_, ok := e.Open("sn-a")
	require.True(t, ok)
	placements, ok := e.Open("sn-b")
	require.True(t, ok)
	require.Len(t, placements, 2)

	// sn-a occupies 120 through 220; sn-b's marker top of 180 would
	// overlap, so it lands below the first note plus the gap.
	assert.Equal(t, float64(120), placements[0].Origin.Y)
	assert.Equal(t, float64(232), placements[1].Origin.Y)
}

func TestEngine_CloseReleasesStackSpace(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(1300)

	e.Open("sn-a")
	e.Open("sn-b")
	e.Close("sn-a")

	placements := e.Placements()
	require.Len(t, placements, 1)
	assert.Equal(t, "sn-b", placements[0].ID)
	assert.Equal(t, float64(180), placements[0].Origin.Y, "back at its marker's top")
}

func TestEngine_NarrowViewportSuppressesNote(t *testing.T) {
	t.Parallel()

	m := newTestMeasurer()
	m.View = marginalia.Size{Width: 900, Height: 900}

	e, err := sidenote.New(sidenotePage, m, sidenote.WithBreakpoint(880))
	require.NoError(t, err)
	e.Resize(900)
	require.Equal(t, sidenote.ModeDesktopMargin, e.Mode())

	placements, ok := e.Open("sn-a")
	require.True(t, ok)
	require.Len(t, placements, 1)
	assert.False(t, placements[0].Visible, "a note past the right edge is suppressed, not overlapped")
}

func TestEngine_OpenOutsideDesktopMode(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(800)

	_, ok := e.Open("sn-a")
	assert.False(t, ok)

	_, ok = e.Open("sn-missing")
	assert.False(t, ok)
}

func TestEngine_MobileSetup(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(800)
	require.Equal(t, sidenote.ModeMobileInline, e.Mode())

	got, err := e.HTML()
	require.NoError(t, err)

	assert.Contains(t, got, `class="sidenote-ref sidenote-toggle" role="button" tabindex="0" aria-expanded="false"`)
	assert.Contains(t, got, `class="sidenote-content sidenote-collapsed" aria-hidden="true"`)
}

func TestEngine_ToggleIsIndependent(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(800)

	expanded, ok := e.Toggle("sn-a")
	require.True(t, ok)
	assert.True(t, expanded)

	got, err := e.HTML()
	require.NoError(t, err)
	assert.Contains(t, got, `aria-expanded="true"`)
	assert.Contains(t, got, `aria-expanded="false"`, "the other note stays collapsed")
	assert.Contains(t, got, `class="sidenote-content" aria-hidden="false"`)

	expanded, ok = e.Toggle("sn-a")
	require.True(t, ok)
	assert.False(t, expanded)
}

func TestEngine_ToggleOutsideMobileMode(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)
	e.Resize(1300)

	_, ok := e.Toggle("sn-a")
	assert.False(t, ok)
}

func TestEngine_ModeRoundTripRestoresMarkup(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)

	e.Resize(1300)
	desktop, err := e.HTML()
	require.NoError(t, err)

	e.Resize(800)
	e.Toggle("sn-a")
	mobile, err := e.HTML()
	require.NoError(t, err)
	require.NotEqual(t, desktop, mobile)

	e.Resize(1300)
	restored, err := e.HTML()
	require.NoError(t, err)

	assert.Equal(t, desktop, restored, "mobile mutations are fully torn down")
	assert.NotContains(t, restored, "sidenote-toggle")
	assert.NotContains(t, restored, "sidenote-collapsed")
	assert.NotContains(t, restored, "aria-expanded")
}

func TestEngine_ResizeWithinModeIsStable(t *testing.T) {
	t.Parallel()

	e, err := sidenote.New(sidenotePage, newTestMeasurer())
	require.NoError(t, err)

	e.Resize(1300)
	e.Open("sn-a")
	e.Resize(1200)

	placements := e.Placements()
	require.Len(t, placements, 1, "a same-mode resize keeps open notes open")
}
