package marginalia

// Point is a position in viewport coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Viewport describes the host environment's display capabilities. Values
// are read from the host, never written.
type Viewport struct {
	Size Size

	// Touch is true when the primary pointer is coarse (tap interaction
	// instead of hover).
	Touch bool

	// ReducedMotion is true when the host requests reduced motion.
	ReducedMotion bool
}
