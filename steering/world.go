package steering

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/physics"
	"github.com/lixenwraith/agentlab/vmath"
)

var ErrUnknownAgent = errors.New("steering: unknown agent")

// Agent is one registered participant
// Controlled agents are moved by the caller and only serve as targets
type Agent struct {
	ID      AgentID
	Name    string
	Kinetic physics.Kinetic

	Behaviors []Behavior
	// Separate opts the agent into pairwise separation
	Separate bool
	// Contain opts the agent into boundary containment
	Contain bool

	Controlled bool
}

// WorldConfig holds the world-wide steering parameters
type WorldConfig struct {
	// Separation is the exclusive distance under which agents repel, 0 disables
	Separation float64
	// Boundary is the containment half-extent on X and Z, 0 disables
	Boundary float64
	// ContainmentForceScale multiplies max force for boundary corrections
	ContainmentForceScale float64
	// GroundHeight is the Y of autonomous agents
	GroundHeight float64
	// Parallelism bounds concurrent behavior evaluation, 1 is serial
	Parallelism int
}

// DefaultWorldConfig returns the demo world settings
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Separation:            parameter.SteerSeparation,
		Boundary:              parameter.SteerBoundary,
		ContainmentForceScale: parameter.SteerContainmentForceScale,
		GroundHeight:          parameter.SteerGroundHeight,
		Parallelism:           parameter.SteerParallelism,
	}
}

// TickStats summarizes one Tick
type TickStats struct {
	Agents         int
	SeparatedPairs int
	Contained      int
}

// World is the agent registry and per-tick steering pass
// Not safe for concurrent use, the caller serializes registry calls and ticks
type World struct {
	agents *Store[*Agent]
	nextID AgentID
	cfg    WorldConfig
	rng    *rand.Rand
}

// NewWorld creates an empty world, rng seeds the per-agent generators drawn every tick
func NewWorld(cfg WorldConfig, rng *rand.Rand) *World {
	return &World{
		agents: NewStore[*Agent](),
		cfg:    cfg,
		rng:    rng,
	}
}

func (w *World) Config() WorldConfig { return w.cfg }

// Spawn registers an agent and returns its new ID, the ID field of a is ignored
func (w *World) Spawn(a Agent) AgentID {
	w.nextID++
	a.ID = w.nextID
	a.Behaviors = slices.Clone(a.Behaviors)
	w.agents.Set(a.ID, &a)
	return a.ID
}

// Despawn removes an agent, behaviors targeting it become no-ops
func (w *World) Despawn(id AgentID) bool {
	return w.agents.Remove(id)
}

// Agent returns a copy of the agent
func (w *World) Agent(id AgentID) (Agent, bool) {
	a, ok := w.agents.Get(id)
	if !ok {
		return Agent{}, false
	}
	cp := *a
	cp.Behaviors = slices.Clone(a.Behaviors)
	return cp, true
}

// Agents returns copies of all agents in spawn order
func (w *World) Agents() []Agent {
	ids := w.agents.IDs()
	out := make([]Agent, 0, len(ids))
	for _, id := range ids {
		if a, ok := w.Agent(id); ok {
			out = append(out, a)
		}
	}
	return out
}

func (w *World) Count() int { return w.agents.Count() }

// Kinetic returns the kinematic state of an agent
func (w *World) Kinetic(id AgentID) (physics.Kinetic, bool) {
	a, ok := w.agents.Get(id)
	if !ok {
		return physics.Kinetic{}, false
	}
	return a.Kinetic, true
}

// SetKinetic overwrites the kinematic state of an agent
func (w *World) SetKinetic(id AgentID, k physics.Kinetic) error {
	a, ok := w.agents.Get(id)
	if !ok {
		return ErrUnknownAgent
	}
	a.Kinetic = k
	return nil
}

// SetBehaviors replaces the behavior assignment of an agent
func (w *World) SetBehaviors(id AgentID, behaviors ...Behavior) error {
	a, ok := w.agents.Get(id)
	if !ok {
		return ErrUnknownAgent
	}
	a.Behaviors = slices.Clone(behaviors)
	return nil
}

// Drive moves a controlled agent along dir at speed for dt, velocity is recorded for pursuit prediction
func (w *World) Drive(id AgentID, dir vmath.Vec3F, speed, dt float64) error {
	a, ok := w.agents.Get(id)
	if !ok {
		return ErrUnknownAgent
	}
	dir.Y = 0
	vel := vmath.V3FScale(vmath.V3FNormalize(dir), speed)
	physics.SetImpulse(&a.Kinetic, vel)
	a.Kinetic.Pos = vmath.V3FAdd(a.Kinetic.Pos, vmath.V3FScale(vel, dt))
	if !vmath.V3FIsZero(vel) {
		a.Kinetic.Heading = vmath.V3FNormalize(vel)
	}
	return nil
}

// Tick advances every autonomous agent by dt:
//  1. behaviors of each agent are applied to its own velocity against a snapshot of all agents,
//     agents run in parallel up to cfg.Parallelism
//  2. pairwise separation over the updated velocities
//  3. containment
//  4. speed cap and integration
//
// Results do not depend on Parallelism. ctx is checked before any agent is touched, a tick
// that starts always completes so the world never holds a partial pass.
func (w *World) Tick(ctx context.Context, dt float64) (TickStats, error) {
	if err := ctx.Err(); err != nil {
		return TickStats{}, err
	}

	ids := w.agents.IDs()
	agents := make([]*Agent, 0, len(ids))
	snapshot := make(map[AgentID]physics.Kinetic, len(ids))
	for _, id := range ids {
		if a, ok := w.agents.Get(id); ok {
			agents = append(agents, a)
			snapshot[id] = a.Kinetic
		}
	}
	lookup := func(id AgentID) (physics.Kinetic, bool) {
		k, ok := snapshot[id]
		return k, ok
	}

	autonomous := slices.DeleteFunc(slices.Clone(agents), func(a *Agent) bool { return a.Controlled })
	stats := TickStats{Agents: len(autonomous)}

	// Seeds are drawn serially so the outcome is independent of scheduling
	seeds := make([]uint64, len(autonomous))
	for i := range seeds {
		seeds[i] = w.rng.Uint64()
	}

	var g errgroup.Group
	g.SetLimit(max(w.cfg.Parallelism, 1))
	for i, a := range autonomous {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seeds[i], seeds[i]))
			Apply(&a.Kinetic, a.Behaviors, lookup, rng)
			return nil
		})
	}
	// Behaviors cannot fail
	_ = g.Wait()

	if w.cfg.Separation > 0 {
		stats.SeparatedPairs = w.separate(autonomous)
	}

	if w.cfg.Boundary > 0 {
		for _, a := range autonomous {
			if !a.Contain {
				continue
			}
			k := &a.Kinetic
			f := ContainmentForce(k.Pos, k.Vel, k.MaxSpeed, k.MaxForce, w.cfg.Boundary, w.cfg.ContainmentForceScale)
			if !vmath.V3FIsZero(f) {
				physics.ApplyImpulse(k, f)
				stats.Contained++
			}
		}
	}

	for _, a := range autonomous {
		physics.Integrate(&a.Kinetic, dt)
		a.Kinetic.Pos.Y = w.cfg.GroundHeight
	}

	return stats, nil
}

// separate applies inverse-distance repulsion to every close pair, both sides in one pass
func (w *World) separate(agents []*Agent) int {
	pairs := 0
	for i := 0; i < len(agents); i++ {
		a := agents[i]
		if !a.Separate {
			continue
		}
		for j := i + 1; j < len(agents); j++ {
			b := agents[j]
			if !b.Separate {
				continue
			}
			f := SeparationForce(a.Kinetic.Pos, b.Kinetic.Pos, w.cfg.Separation)
			if vmath.V3FIsZero(f) {
				continue
			}
			physics.ApplyImpulse(&a.Kinetic, vmath.V3FScale(f, a.Kinetic.MaxForce))
			physics.ApplyImpulse(&b.Kinetic, vmath.V3FScale(f, -b.Kinetic.MaxForce))
			pairs++
		}
	}
	return pairs
}
