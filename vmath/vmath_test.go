package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV3FNormalize_ZeroSafe(t *testing.T) {
	assert.Equal(t, Vec3F{}, V3FNormalize(Vec3F{}))

	n := V3FNormalize(Vec3F{X: 3, Z: 4})
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Z, 1e-12)
	assert.InDelta(t, 1.0, V3FMag(n), 1e-12)
}

func TestV3FClampMagnitude(t *testing.T) {
	// Under the limit passes through untouched
	v := Vec3F{X: 1, Y: 0, Z: 1}
	assert.Equal(t, v, V3FClampMagnitude(v, 5))

	// Over the limit keeps direction
	c := V3FClampMagnitude(Vec3F{X: 30, Z: 40}, 5)
	assert.InDelta(t, 5.0, V3FMag(c), 1e-12)
	assert.InDelta(t, 3.0, c.X, 1e-12)
	assert.InDelta(t, 4.0, c.Z, 1e-12)

	// Non-positive limit zeroes the vector
	assert.Equal(t, Vec3F{}, V3FClampMagnitude(Vec3F{X: 1}, 0))
}

func TestV3FDist(t *testing.T) {
	assert.InDelta(t, math.Sqrt(3), V3FDist(Vec3F{1, 1, 1}, Vec3F{}), 1e-12)
}

func TestV2ClampAxis_IsSquare(t *testing.T) {
	// Corner of the square survives, a disc clamp would have pulled it in
	c := V2ClampAxis(Vec2{X: 50, Y: -50}, -30, 30)
	assert.Equal(t, Vec2{X: 30, Y: -30}, c)
	assert.InDelta(t, 30*math.Sqrt2, V2Mag(c), 1e-9)
}

func TestV2Dist(t *testing.T) {
	assert.InDelta(t, 10*math.Sqrt2, V2Dist(Vec2{}, Vec2{X: 10, Y: 10}), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.2, Clamp(1.25, 0, 1.2))
	assert.Equal(t, 0.0, Clamp(-0.05, 0, 1.2))
	assert.Equal(t, 0.6, Clamp(0.6, 0, 1.2))
	assert.Equal(t, 3, ClampInt(2, 3, 10))
}
