// Package core provides fundamental types and utilities for gapbird.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned rectangle in world units (real-valued).
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two boxes share any point.
// Boxes whose edges touch count as overlapping.
func (b Box) Overlaps(other Box) bool {
	return !(b.Right() < other.X ||
		b.X > other.Right() ||
		b.Bottom() < other.Y ||
		b.Y > other.Bottom())
}

// Scale maps a world-space box onto a cell grid.
// sx and sy are cells per world unit. Edges are rounded to the nearest cell
// so adjacent boxes never leave gaps between them.
func (b Box) Scale(sx, sy float64) Rect {
	x0 := int(math.Round(b.X * sx))
	y0 := int(math.Round(b.Y * sy))
	x1 := int(math.Round(b.Right() * sx))
	y1 := int(math.Round(b.Bottom() * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}
