package canvas

import "math"

// Point is a 2D coordinate in logical units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// SetPoint moves the point to (x, y).
func (p *Point) SetPoint(x, y float64) {
	p.X, p.Y = x, y
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns a rectangle at (x, y) with the given size.
func NewRect(x, y, width, height float64) *Rect {
	return &Rect{X: x, Y: y, Width: width, Height: height}
}

// SetPosition moves the rectangle without changing its size.
func (r *Rect) SetPosition(x, y float64) {
	r.X, r.Y = x, y
}

// SetRect replaces position and size.
func (r *Rect) SetRect(x, y, width, height float64) {
	r.X, r.Y, r.Width, r.Height = x, y, width, height
}

// PointInRect reports whether (x, y) lies inside r. All four edges count
// as inside.
func (r *Rect) PointInRect(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
