package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/agentlab/vmath"
)

func TestCapSpeed(t *testing.T) {
	v := vmath.Vec3F{X: 3, Z: 4}
	assert.False(t, CapSpeed(&v, 5))
	assert.Equal(t, vmath.Vec3F{X: 3, Z: 4}, v)

	assert.True(t, CapSpeed(&v, 2.5))
	assert.InDelta(t, 1.5, v.X, 1e-12)
	assert.InDelta(t, 2.0, v.Z, 1e-12)
}

func TestIntegrate_NeverExceedsMaxSpeed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for range 500 {
		k := NewKinetic(vmath.Vec3F{Y: 0.5}, 0.1+rng.Float64()*5, 1)
		k.Vel = vmath.Vec3F{
			X: (rng.Float64() - 0.5) * 100,
			Y: (rng.Float64() - 0.5) * 100,
			Z: (rng.Float64() - 0.5) * 100,
		}
		Integrate(&k, 1.0/60)
		assert.LessOrEqual(t, vmath.V3FMag(k.Vel), k.MaxSpeed+1e-9)
		assert.Equal(t, 0.5, k.Pos.Y)
	}
}

func TestIntegrate_MovesAndTurns(t *testing.T) {
	k := NewKinetic(vmath.Vec3F{X: 1, Y: 0.5, Z: 1}, 4, 1)
	k.Vel = vmath.Vec3F{X: 2}

	Integrate(&k, 0.5)
	assert.Equal(t, vmath.Vec3F{X: 2, Y: 0.5, Z: 1}, k.Pos)
	assert.Equal(t, vmath.Vec3F{X: 1}, k.Heading)

	// Stopping keeps the last heading
	SetImpulse(&k, vmath.Vec3F{})
	Integrate(&k, 0.5)
	assert.Equal(t, vmath.Vec3F{X: 1}, k.Heading)
	assert.Equal(t, vmath.Vec3F{X: 2, Y: 0.5, Z: 1}, k.Pos)

	ApplyImpulse(&k, vmath.Vec3F{Z: -3})
	Integrate(&k, 1)
	assert.InDelta(t, -2.0, k.Pos.Z, 1e-12)
	assert.InDelta(t, -1.0, k.Heading.Z, 1e-12)
	assert.False(t, math.IsNaN(k.Heading.X))
}
