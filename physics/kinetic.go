// Package physics holds ground-plane kinematic state and its integration step.
package physics

import (
	"github.com/lixenwraith/agentlab/vmath"
)

// Kinetic is the motion state of one agent
// Pos.Y is the ground height, integration never changes it
type Kinetic struct {
	Pos vmath.Vec3F
	Vel vmath.Vec3F
	// Heading is the unit facing direction, updated from velocity when moving
	Heading vmath.Vec3F

	MaxSpeed float64
	MaxForce float64
}

// NewKinetic creates a resting agent facing +Z
func NewKinetic(pos vmath.Vec3F, maxSpeed, maxForce float64) Kinetic {
	return Kinetic{
		Pos:      pos,
		Heading:  vmath.Vec3F{Z: 1},
		MaxSpeed: maxSpeed,
		MaxForce: maxForce,
	}
}

// ApplyImpulse adds a velocity delta
func ApplyImpulse(k *Kinetic, dv vmath.Vec3F) {
	k.Vel = vmath.V3FAdd(k.Vel, dv)
}

// SetImpulse overrides velocity
func SetImpulse(k *Kinetic, v vmath.Vec3F) {
	k.Vel = v
}

// Integrate drops vertical velocity, caps speed, advances position by vel*dt on the ground
// plane and turns the heading toward the direction of travel. A zero velocity leaves the
// heading unchanged.
func Integrate(k *Kinetic, dt float64) {
	k.Vel.Y = 0
	CapSpeed(&k.Vel, k.MaxSpeed)

	k.Pos.X += k.Vel.X * dt
	k.Pos.Z += k.Vel.Z * dt

	if !vmath.V3FIsZero(k.Vel) {
		k.Heading = vmath.V3FNormalize(k.Vel)
	}
}
