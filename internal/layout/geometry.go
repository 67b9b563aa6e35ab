package layout

import "fmt"

// Point is a position in the paragraph's local coordinate space.
type Point struct {
	X, Y float64
}

// Translate returns the point shifted by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle in local coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH creates a rectangle from a top-left corner and size.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the rectangle's width.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the rectangle's height.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// TopLeft returns the rectangle's top-left corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Shift returns the rectangle translated by the given point.
func (r Rect) Shift(p Point) Rect {
	return r.Translate(p.X, p.Y)
}

// String returns a human-readable representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%.1f, %.1f, %.1f, %.1f)", r.Left, r.Top, r.Right, r.Bottom)
}

// TextDirection is the reading direction of a glyph run.
type TextDirection uint8

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR TextDirection = iota

	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// Box is a glyph box covering part of a selection, with the direction
// of the text inside it.
type Box struct {
	Left, Top, Right, Bottom float64
	Direction                TextDirection
}

// Rect returns the box's bounds.
func (b Box) Rect() Rect {
	return Rect{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}
}
