package vmath

import "math"

// Vec2 is a float64 2D point or vector
type Vec2 struct {
	X, Y float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Mag(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2Dist returns Euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// V2ClampAxis clamps each component independently to [lo, hi]
// The result stays inside a square, not a disc
func V2ClampAxis(v Vec2, lo, hi float64) Vec2 {
	return Vec2{Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi)}
}
