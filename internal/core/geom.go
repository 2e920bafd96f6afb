// Package core provides fundamental types and utilities for the invaders platform.
// It contains no Bubble Tea dependency to keep game logic pure and testable.
package core

// Rect represents an integer rectangle in screen cells.
// Used for overlay panels drawn over the field.
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

// BoundingBox is an axis-aligned box in play-field units.
// Origin is the top-left corner and y grows downward.
type BoundingBox struct {
	X, Y float64
	W, H float64
}

// Box creates a bounding box from position and size.
func Box(x, y, w, h float64) BoundingBox {
	return BoundingBox{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b BoundingBox) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b BoundingBox) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Intersects reports whether the two boxes overlap on both axes.
// Boxes that only share an edge do not overlap.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Bottom() && b.Bottom() > other.Y
}

// IsInside is the collision predicate used by the game loop.
// It is the same symmetric overlap test as Intersects.
func (b BoundingBox) IsInside(other BoundingBox) bool {
	return b.Intersects(other)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
