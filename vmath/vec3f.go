package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector, Y is the vertical axis
// Steering runs on the X/Z ground plane and leaves Y to the caller
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns Euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

// V3FNormalize returns the unit vector, zero vector stays zero
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FClampMagnitude limits vector length to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func V3FClampMagnitude(v Vec3F, maxMag float64) Vec3F {
	if maxMag <= 0 {
		return Vec3F{}
	}
	magSq := V3FMagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return V3FScale(v, maxMag/math.Sqrt(magSq))
}

// V3FIsZero reports whether all components are exactly zero
func V3FIsZero(v Vec3F) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
