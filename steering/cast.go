package steering

import (
	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/physics"
	"github.com/lixenwraith/agentlab/vmath"
)

// Cast holds the IDs of the demo agents
type Cast struct {
	Player   AgentID
	Seeker   AgentID
	Fleer    AgentID
	Arriver  AgentID
	Wanderer AgentID
	Pursuer  AgentID
	Evader   AgentID
}

// autonomous builds an agent that separates and stays contained
func autonomous(name string, x, z, maxSpeed, maxForce float64, b Behavior) Agent {
	return Agent{
		Name:      name,
		Kinetic:   physics.NewKinetic(vmath.Vec3F{X: x, Y: parameter.SteerGroundHeight, Z: z}, maxSpeed, maxForce),
		Behaviors: []Behavior{b},
		Separate:  true,
		Contain:   true,
	}
}

// SpawnDefaultCast adds a controlled player at the origin and one agent per target behavior around it
func SpawnDefaultCast(w *World) Cast {
	var c Cast
	c.Player = w.Spawn(Agent{
		Name:       "player",
		Kinetic:    physics.NewKinetic(vmath.Vec3F{Y: parameter.SteerPlayerHeight}, parameter.SteerPlayerSpeed, 0),
		Controlled: true,
	})

	c.Seeker = w.Spawn(autonomous("seek", -10, -10,
		parameter.SteerSeekMaxSpeed, parameter.SteerSeekMaxForce, Seek{Target: c.Player}))
	c.Fleer = w.Spawn(autonomous("flee", 5, 5,
		parameter.SteerFleeMaxSpeed, parameter.SteerFleeMaxForce, Flee{Target: c.Player}))
	c.Arriver = w.Spawn(autonomous("arrive", 10, -10,
		parameter.SteerArriveMaxSpeed, parameter.SteerArriveMaxForce,
		Arrive{Target: c.Player, SlowingRadius: parameter.SteerArriveSlowingRadius}))
	c.Wanderer = w.Spawn(autonomous("wander", -10, 10,
		parameter.SteerWanderMaxSpeed, parameter.SteerWanderMaxForce, NewWander()))
	c.Pursuer = w.Spawn(autonomous("pursuit", 15, 15,
		parameter.SteerPursuitMaxSpeed, parameter.SteerPursuitMaxForce, Pursuit{Target: c.Player}))
	c.Evader = w.Spawn(autonomous("evade", 0, 10,
		parameter.SteerEvadeMaxSpeed, parameter.SteerEvadeMaxForce, Evade{Target: c.Player}))

	return c
}
