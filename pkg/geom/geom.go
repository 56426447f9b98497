// Package geom holds the plain value types shared by the engine: positions,
// dimensions, velocities and axis-aligned rectangles.
package geom

// Position is a world-space point. For game objects it is the top-left anchor.
type Position struct {
	X float64
	Y float64
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Dimension is a width/height pair. Zero is legal and produces a box that
// never overlaps anything.
type Dimension struct {
	Width  float64
	Height float64
}

// Velocity is advisory data in world units per second. The engine never
// integrates it; concrete objects read it in their own Update.
type Velocity struct {
	X float64
	Y float64
}

// Scale returns the displacement covered in deltaMs milliseconds.
func (v Velocity) Scale(deltaMs float64) Position {
	return Position{X: v.X * deltaMs / 1000, Y: v.Y * deltaMs / 1000}
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect builds a rectangle from a position and a dimension.
func NewRect(p Position, d Dimension) Rect {
	return Rect{X: p.X, Y: p.Y, Width: d.Width, Height: d.Height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by d.
func (r Rect) Translate(d Position) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Overlaps reports whether a and b intersect.
//
// The test is strict on both axes, so boxes that only share an edge or a
// corner do not overlap. Degenerate boxes never overlap. The result is
// symmetric in its arguments.
func Overlaps(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.Right() > b.X &&
		a.Bottom() > b.Y &&
		a.X < b.Right() &&
		a.Y < b.Bottom()
}
