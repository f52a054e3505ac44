package core

import "math"

// ---- Position & Geometry ----

// Vec2 is a point or direction on the battlefield plane (pixel units)
type Vec2 struct {
	X, Y float64
}

// DistanceTo returns euclidean distance to another point
func (v Vec2) DistanceTo(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the vector length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Direction returns the unit vector from v toward o and the distance
// between them. The zero vector is returned when the points coincide.
func (v Vec2) Direction(o Vec2) (Vec2, float64) {
	d := o.Sub(v)
	dist := d.Len()
	if dist == 0 {
		return Vec2{}, 0
	}
	return Vec2{X: d.X / dist, Y: d.Y / dist}, dist
}

// StepToward moves v toward o by at most step, never passing o.
func (v Vec2) StepToward(o Vec2, step float64) Vec2 {
	dir, dist := v.Direction(o)
	if dist <= step {
		return o
	}
	return v.Add(dir.Scale(step))
}

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies strictly inside the rectangle.
// Points on the border are outside.
func (r Rect) Contains(p Vec2) bool {
	return p.X > r.X && p.X < r.X+r.W &&
		p.Y > r.Y && p.Y < r.Y+r.H
}

// Center returns the rectangle's midpoint
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// RectFromCorners builds the rectangle spanned by two arbitrary corners
func RectFromCorners(a, b Vec2) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
