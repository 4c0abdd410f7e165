package popup_test

import (
	"testing"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/popup"
	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	t.Parallel()

	viewport := marginalia.Size{Width: 1280, Height: 800}
	size := marginalia.Size{Width: 300, Height: 150}

	tests := []struct {
		name     string
		anchor   marginalia.Rect
		viewport marginalia.Size
		touch    bool
		want     marginalia.Point
	}{
		{
			name:     "below the anchor by default",
			anchor:   marginalia.Rect{X: 100, Y: 200, Width: 80, Height: 20},
			viewport: viewport,
			want:     marginalia.Point{X: 100, Y: 228},
		},
		{
			name:     "flips above near the bottom edge",
			anchor:   marginalia.Rect{X: 100, Y: 700, Width: 80, Height: 20},
			viewport: viewport,
			want:     marginalia.Point{X: 100, Y: 542},
		},
		{
			name:     "stays below when the space above is even smaller",
			anchor:   marginalia.Rect{X: 100, Y: 10, Width: 80, Height: 20},
			viewport: marginalia.Size{Width: 1280, Height: 100},
			want:     marginalia.Point{X: 100, Y: 38},
		},
		{
			name:     "clamped off the right edge",
			anchor:   marginalia.Rect{X: 1100, Y: 200, Width: 80, Height: 20},
			viewport: viewport,
			want:     marginalia.Point{X: 964, Y: 228},
		},
		{
			name:     "clamped off the left edge",
			anchor:   marginalia.Rect{X: 2, Y: 200, Width: 10, Height: 20},
			viewport: viewport,
			want:     marginalia.Point{X: 16, Y: 228},
		},
		{
			name:     "centered on touch viewports",
			anchor:   marginalia.Rect{X: 10, Y: 200, Width: 40, Height: 20},
			viewport: marginalia.Size{Width: 400, Height: 800},
			touch:    true,
			want:     marginalia.Point{X: 50, Y: 228},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := popup.Place(tt.anchor, size, tt.viewport, tt.touch)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlace_NeverCrossesEdgeMargin(t *testing.T) {
	t.Parallel()

	viewport := marginalia.Size{Width: 1280, Height: 800}
	size := marginalia.Size{Width: 300, Height: 150}

	for _, anchor := range []marginalia.Rect{
		{X: 0, Y: 0, Width: 50, Height: 20},
		{X: 1250, Y: 780, Width: 50, Height: 20},
		{X: 640, Y: 400, Width: 50, Height: 20},
	} {
		got := popup.Place(anchor, size, viewport, false)
		assert.GreaterOrEqual(t, got.X, float64(popup.EdgeMargin))
		assert.LessOrEqual(t, got.X+size.Width, viewport.Width-popup.EdgeMargin)
	}
}
