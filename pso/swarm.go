// Package pso implements a particle swarm that converges on a user-set 2D target.
//
// The swarm is a pure state machine advanced one generation per Step call by an
// external scheduler. Fitness is Euclidean distance to the target, lower is better.
package pso

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/vmath"
)

// ErrEmptyPopulation is returned when a population of fewer than one particle is requested
var ErrEmptyPopulation = errors.New("pso: population must hold at least one particle")

// Particle is one candidate position with its personal best
type Particle struct {
	Pos     vmath.Vec2
	Vel     vmath.Vec2
	BestPos vmath.Vec2
	// BestVal is the closest distance to target ever observed, +Inf until first evaluation
	BestVal float64
}

// evaluate records a new distance and promotes the current position to personal best if improved
func (p *Particle) evaluate(dist float64) {
	if dist < p.BestVal {
		p.BestVal = dist
		p.BestPos = p.Pos
	}
}

// Params holds the runtime-adjustable swarm parameters
type Params struct {
	// Population is the number of particles, never below parameter.PSOMinPopulation via setters
	Population int
	// Generations caps the number of steps before the swarm is marked converged
	Generations int
	// Inertia (w) is the fraction of velocity retained per generation
	Inertia float64
	// Cognition (c1) weighs the pull toward personal best
	Cognition float64
	// Social (c2) weighs the pull toward global best
	Social float64
}

// DefaultParams returns the demo defaults
func DefaultParams() Params {
	return Params{
		Population:  parameter.PSOPopulation,
		Generations: parameter.PSOGenerations,
		Inertia:     parameter.PSOInertia,
		Cognition:   parameter.PSOCognition,
		Social:      parameter.PSOSocial,
	}
}

// InitializePopulation draws n particles uniformly in the square domain with zero velocity
func InitializePopulation(n int, rng *rand.Rand) ([]Particle, error) {
	if n < 1 {
		return nil, ErrEmptyPopulation
	}

	particles := make([]Particle, n)
	for i := range particles {
		pos := vmath.Vec2{
			X: -parameter.PSODomain + rng.Float64()*2*parameter.PSODomain,
			Y: -parameter.PSODomain + rng.Float64()*2*parameter.PSODomain,
		}
		particles[i] = Particle{
			Pos:     pos,
			BestPos: pos,
			BestVal: math.Inf(1),
		}
	}
	return particles, nil
}

// Swarm owns the particle population and optimization progress
// Not safe for concurrent use, the caller serializes ticks
type Swarm struct {
	Particles []Particle

	BestPos vmath.Vec2
	// BestVal is the minimum personal best over the population, +Inf before the first step
	BestVal float64

	Generation int
	Converged  bool

	target    vmath.Vec2
	hasTarget bool

	params Params
	rng    *rand.Rand
}

// NewSwarm creates a swarm without a target, stepping is a no-op until SetTarget
func NewSwarm(params Params, rng *rand.Rand) (*Swarm, error) {
	particles, err := InitializePopulation(params.Population, rng)
	if err != nil {
		return nil, err
	}
	return &Swarm{
		Particles: particles,
		BestVal:   math.Inf(1),
		params:    params,
		rng:       rng,
	}, nil
}

// Params returns a copy of the current parameters
func (s *Swarm) Params() Params {
	return s.params
}

// Target returns the optimization target and whether one is set
func (s *Swarm) Target() (vmath.Vec2, bool) {
	return s.target, s.hasTarget
}

// SetTarget replaces the target and discards all progress
func (s *Swarm) SetTarget(p vmath.Vec2) {
	s.target = p
	s.hasTarget = true
	s.Reset()
}

// Reset reinitializes the population and progress, the target is kept
func (s *Swarm) Reset() {
	s.Generation = 0
	s.BestVal = math.Inf(1)
	s.BestPos = vmath.Vec2{}
	s.Converged = false

	// Population is clamped by setters, a hand-built Params may still be invalid
	n := max(s.params.Population, 1)
	s.Particles, _ = InitializePopulation(n, s.rng)
}

// Step advances one generation toward the target
// Returns false when nothing happened: no target set or already converged
func (s *Swarm) Step() bool {
	if !s.hasTarget || s.Converged {
		return false
	}

	// Phase 1: best tracking completes for every particle before any move reads the global best
	for i := range s.Particles {
		p := &s.Particles[i]
		p.evaluate(vmath.V2Dist(p.Pos, s.target))
		if p.BestVal < s.BestVal {
			s.BestVal = p.BestVal
			s.BestPos = p.BestPos
		}
	}

	// Phase 2: velocity and position update
	w, c1, c2 := s.params.Inertia, s.params.Cognition, s.params.Social
	for i := range s.Particles {
		p := &s.Particles[i]
		r1 := s.rng.Float64()
		r2 := s.rng.Float64()

		cognitive := vmath.V2Scale(vmath.V2Sub(p.BestPos, p.Pos), c1*r1)
		social := vmath.V2Scale(vmath.V2Sub(s.BestPos, p.Pos), c2*r2)
		p.Vel = vmath.V2Add(vmath.V2Add(vmath.V2Scale(p.Vel, w), cognitive), social)

		p.Pos = vmath.V2ClampAxis(vmath.V2Add(p.Pos, p.Vel), -parameter.PSODomain, parameter.PSODomain)
	}

	s.Generation++

	if s.Generation >= s.params.Generations || s.BestVal < parameter.PSOConvergenceThreshold {
		s.Converged = true
	}
	return true
}
