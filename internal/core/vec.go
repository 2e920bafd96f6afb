package core

import "gonum.org/v1/gonum/spatial/r2"

// Vec2 is a 2D float vector. Entities use it as a direction, not a velocity.
type Vec2 struct {
	X, Y float64
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Scale returns a new vector with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(r2.Scale(s, r2.Vec(v)))
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return r2.Norm(r2.Vec(v))
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize scales the vector in place to unit length.
// A zero vector has no direction; it is left unchanged and false is returned.
func (v *Vec2) Normalize() bool {
	if v.IsZero() {
		return false
	}
	*v = Vec2(r2.Unit(r2.Vec(*v)))
	return true
}
