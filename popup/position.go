package popup

import "github.com/haslan/marginalia"

// Placement constants, in logical pixels.
const (
	// EdgeMargin is the minimum distance between the popup and either
	// viewport edge.
	EdgeMargin = 16

	// anchorGap separates the popup from its anchor.
	anchorGap = 8
)

// Place computes the popup's top-left point for an anchor's bounding
// rectangle and the popup's natural size. The popup goes below the anchor
// unless the space below cannot fit it and the space above is larger, in
// which case it flips above. Horizontally the popup is clamped so it stays
// at least EdgeMargin inside the viewport; on touch viewports it is
// centered for readability instead of aligned to the anchor.
func Place(anchor marginalia.Rect, popup marginalia.Size, viewport marginalia.Size, touch bool) marginalia.Point {
	spaceBelow := viewport.Height - anchor.Bottom()
	spaceAbove := anchor.Y

	y := anchor.Bottom() + anchorGap
	if popup.Height+anchorGap > spaceBelow && spaceAbove > spaceBelow {
		y = anchor.Y - anchorGap - popup.Height
	}

	x := anchor.X
	if touch {
		x = (viewport.Width - popup.Width) / 2
	}
	if x+popup.Width > viewport.Width-EdgeMargin {
		x = viewport.Width - EdgeMargin - popup.Width
	}
	if x < EdgeMargin {
		x = EdgeMargin
	}

	return marginalia.Point{X: x, Y: y}
}
