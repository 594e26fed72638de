package steering

import (
	"math/rand/v2"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/physics"
	"github.com/lixenwraith/agentlab/vmath"
)

// Kind tags a behavior assignment
type Kind uint8

const (
	KindSeek Kind = iota
	KindFlee
	KindArrive
	KindWander
	KindPursuit
	KindEvade
)

func (k Kind) String() string {
	switch k {
	case KindSeek:
		return "seek"
	case KindFlee:
		return "flee"
	case KindArrive:
		return "arrive"
	case KindWander:
		return "wander"
	case KindPursuit:
		return "pursuit"
	case KindEvade:
		return "evade"
	default:
		return "unknown"
	}
}

// Lookup resolves a target to its kinematic state as of the start of the tick
type Lookup func(AgentID) (physics.Kinetic, bool)

// Behavior computes one velocity correction for self
// A target that no longer resolves yields a zero correction
type Behavior interface {
	Kind() Kind
	Force(self physics.Kinetic, lookup Lookup, rng *rand.Rand) vmath.Vec3F
}

// Seek steers toward the target agent
type Seek struct {
	Target AgentID
}

func (Seek) Kind() Kind { return KindSeek }

func (b Seek) Force(self physics.Kinetic, lookup Lookup, _ *rand.Rand) vmath.Vec3F {
	t, ok := lookup(b.Target)
	if !ok {
		return vmath.Vec3F{}
	}
	return SeekForce(self.Pos, self.Vel, t.Pos, self.MaxSpeed, self.MaxForce)
}

// Flee steers away from the target agent
type Flee struct {
	Target AgentID
}

func (Flee) Kind() Kind { return KindFlee }

func (b Flee) Force(self physics.Kinetic, lookup Lookup, _ *rand.Rand) vmath.Vec3F {
	t, ok := lookup(b.Target)
	if !ok {
		return vmath.Vec3F{}
	}
	return FleeForce(self.Pos, self.Vel, t.Pos, self.MaxSpeed, self.MaxForce)
}

// Arrive seeks the target agent and slows down inside SlowingRadius
type Arrive struct {
	Target        AgentID
	SlowingRadius float64
}

func (Arrive) Kind() Kind { return KindArrive }

func (b Arrive) Force(self physics.Kinetic, lookup Lookup, _ *rand.Rand) vmath.Vec3F {
	t, ok := lookup(b.Target)
	if !ok {
		return vmath.Vec3F{}
	}
	return ArriveForce(self.Pos, self.Vel, t.Pos, self.MaxSpeed, self.MaxForce, b.SlowingRadius)
}

// Wander drifts along a jittered circle projected ahead of the agent
// Must be assigned by pointer, the angle persists across ticks
type Wander struct {
	CircleDistance float64
	CircleRadius   float64
	AngleChange    float64
	State          WanderState
}

// NewWander returns a wander behavior with the demo parameters
func NewWander() *Wander {
	return &Wander{
		CircleDistance: parameter.SteerWanderCircleDistance,
		CircleRadius:   parameter.SteerWanderCircleRadius,
		AngleChange:    parameter.SteerWanderAngleChange,
	}
}

func (*Wander) Kind() Kind { return KindWander }

func (b *Wander) Force(self physics.Kinetic, _ Lookup, rng *rand.Rand) vmath.Vec3F {
	return WanderForce(self.Vel, self.MaxForce, b.CircleDistance, b.CircleRadius, b.AngleChange, &b.State, rng)
}

// Pursuit seeks where the target agent is predicted to be
type Pursuit struct {
	Target AgentID
}

func (Pursuit) Kind() Kind { return KindPursuit }

func (b Pursuit) Force(self physics.Kinetic, lookup Lookup, _ *rand.Rand) vmath.Vec3F {
	t, ok := lookup(b.Target)
	if !ok {
		return vmath.Vec3F{}
	}
	return PursuitForce(self.Pos, self.Vel, t.Pos, t.Vel, self.MaxSpeed, self.MaxForce)
}

// Evade flees where the target agent is predicted to be
type Evade struct {
	Target AgentID
}

func (Evade) Kind() Kind { return KindEvade }

func (b Evade) Force(self physics.Kinetic, lookup Lookup, _ *rand.Rand) vmath.Vec3F {
	t, ok := lookup(b.Target)
	if !ok {
		return vmath.Vec3F{}
	}
	return EvadeForce(self.Pos, self.Vel, t.Pos, t.Vel, self.MaxSpeed, self.MaxForce)
}

// Apply adds every behavior's correction to k.Vel in order, each seeing the velocity left by the previous
func Apply(k *physics.Kinetic, behaviors []Behavior, lookup Lookup, rng *rand.Rand) {
	for _, b := range behaviors {
		physics.ApplyImpulse(k, b.Force(*k, lookup, rng))
	}
}
