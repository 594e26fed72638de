package parameter

// Steering - World
const (
	// SteerSeparation is the exclusive distance under which agents repel each other
	SteerSeparation = 2.0

	// SteerBoundary is the half-extent of the containment square on X and Z
	SteerBoundary = 12.0

	// SteerContainmentForceScale multiplies max force for boundary correction
	SteerContainmentForceScale = 2.0

	// SteerGroundHeight is the Y coordinate of autonomous agents
	SteerGroundHeight = 0.5

	// SteerPlayerHeight is the Y coordinate of the controlled player
	SteerPlayerHeight = 1.0

	SteerPlayerSpeed = 5.0

	// SteerParallelism bounds concurrent behavior evaluation (1 = serial)
	SteerParallelism = 4
)

// Steering - Agent Profiles (max speed, max force)
const (
	SteerSeekMaxSpeed    = 3.5
	SteerSeekMaxForce    = 0.8
	SteerFleeMaxSpeed    = 3.0
	SteerFleeMaxForce    = 1.0
	SteerArriveMaxSpeed  = 4.0
	SteerArriveMaxForce  = 0.7
	SteerWanderMaxSpeed  = 1.5
	SteerWanderMaxForce  = 0.3
	SteerPursuitMaxSpeed = 4.2
	SteerPursuitMaxForce = 0.9
	SteerEvadeMaxSpeed   = 3.8
	SteerEvadeMaxForce   = 1.1
)

// Steering - Behavior Parameters
const (
	SteerArriveSlowingRadius = 5.0

	SteerWanderCircleDistance = 3.0
	SteerWanderCircleRadius   = 1.5
	SteerWanderAngleChange    = 0.4
)
