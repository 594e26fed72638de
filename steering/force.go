// Package steering computes classic autonomous-agent steering forces and runs them
// over a registry of agents once per tick.
//
// Every force function is pure and returns a velocity correction; callers add
// corrections to the agent velocity and leave the final speed cap to
// physics.Integrate.
package steering

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/agentlab/vmath"
)

// steer turns a desired velocity into a correction bounded by maxForce
func steer(desired, vel vmath.Vec3F, maxForce float64) vmath.Vec3F {
	return vmath.V3FClampMagnitude(vmath.V3FSub(desired, vel), maxForce)
}

// SeekForce steers toward target at full speed
func SeekForce(pos, vel, target vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	desired := vmath.V3FScale(vmath.V3FNormalize(vmath.V3FSub(target, pos)), maxSpeed)
	return steer(desired, vel, maxForce)
}

// FleeForce steers directly away from target at full speed
func FleeForce(pos, vel, target vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	desired := vmath.V3FScale(vmath.V3FNormalize(vmath.V3FSub(pos, target)), maxSpeed)
	return steer(desired, vel, maxForce)
}

// ArriveForce seeks target, scaling desired speed linearly down to zero inside slowingRadius
func ArriveForce(pos, vel, target vmath.Vec3F, maxSpeed, maxForce, slowingRadius float64) vmath.Vec3F {
	offset := vmath.V3FSub(target, pos)
	speed := maxSpeed
	if dist := vmath.V3FMag(offset); dist < slowingRadius {
		speed = maxSpeed * dist / slowingRadius
	}
	desired := vmath.V3FScale(vmath.V3FNormalize(offset), speed)
	return steer(desired, vel, maxForce)
}

// WanderState is the persistent wander angle of one agent
type WanderState struct {
	Angle float64
}

// WanderForce projects a circle ahead along vel, offsets it by the current wander angle and
// returns a force of magnitude maxForce toward that point. The angle is then perturbed by a
// uniform draw in [-angleChange, angleChange).
func WanderForce(vel vmath.Vec3F, maxForce, circleDistance, circleRadius, angleChange float64, state *WanderState, rng *rand.Rand) vmath.Vec3F {
	center := vmath.V3FScale(vmath.V3FNormalize(vel), circleDistance)
	displacement := vmath.Vec3F{
		X: math.Cos(state.Angle) * circleRadius,
		Z: math.Sin(state.Angle) * circleRadius,
	}

	if angleChange > 0 {
		state.Angle += (rng.Float64()*2 - 1) * angleChange
	}

	return vmath.V3FScale(vmath.V3FNormalize(vmath.V3FAdd(center, displacement)), maxForce)
}

// PredictPosition estimates where a moving target will be after the time the pursuer needs
// to cover the current distance at maxSpeed
func PredictPosition(pos, targetPos, targetVel vmath.Vec3F, maxSpeed float64) vmath.Vec3F {
	if maxSpeed <= 0 {
		return targetPos
	}
	t := vmath.V3FDist(targetPos, pos) / maxSpeed
	return vmath.V3FAdd(targetPos, vmath.V3FScale(targetVel, t))
}

// PursuitForce seeks the predicted position of a moving target
func PursuitForce(pos, vel, targetPos, targetVel vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	return SeekForce(pos, vel, PredictPosition(pos, targetPos, targetVel, maxSpeed), maxSpeed, maxForce)
}

// EvadeForce flees the predicted position of a moving target
func EvadeForce(pos, vel, targetPos, targetVel vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	return FleeForce(pos, vel, PredictPosition(pos, targetPos, targetVel, maxSpeed), maxSpeed, maxForce)
}

// SeparationForce returns the unit-force repulsion pushing a away from b, scaled by 1/distance
// Zero unless 0 < distance < desired
func SeparationForce(a, b vmath.Vec3F, desired float64) vmath.Vec3F {
	dist := vmath.V3FDist(a, b)
	if dist <= 0 || dist >= desired {
		return vmath.Vec3F{}
	}
	return vmath.V3FScale(vmath.V3FNormalize(vmath.V3FSub(a, b)), 1/dist)
}

// ContainmentForce turns an agent back once it leaves the square [-boundary, boundary] on X or Z
// Desired velocity on each violated axis points inward at maxSpeed, the correction is bounded by
// forceScale*maxForce. Zero while inside.
func ContainmentForce(pos, vel vmath.Vec3F, maxSpeed, maxForce, boundary, forceScale float64) vmath.Vec3F {
	var desired vmath.Vec3F

	switch {
	case pos.X > boundary:
		desired.X = -maxSpeed
	case pos.X < -boundary:
		desired.X = maxSpeed
	}
	switch {
	case pos.Z > boundary:
		desired.Z = -maxSpeed
	case pos.Z < -boundary:
		desired.Z = maxSpeed
	}

	if vmath.V3FIsZero(desired) {
		return vmath.Vec3F{}
	}
	return steer(desired, vel, maxForce*forceScale)
}
