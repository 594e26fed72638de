package pso

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/agentlab/vmath"
)

// SwarmStats summarizes the population relative to the target
type SwarmStats struct {
	Generation int
	BestValue  float64
	// MeanDistance and Spread are the mean and standard deviation of current distances to target
	MeanDistance float64
	Spread       float64
}

// Stats computes population statistics, distances are NaN without a target
func (s *Swarm) Stats() SwarmStats {
	stats := SwarmStats{
		Generation:   s.Generation,
		BestValue:    s.BestVal,
		MeanDistance: math.NaN(),
		Spread:       math.NaN(),
	}
	if !s.hasTarget || len(s.Particles) == 0 {
		return stats
	}

	dists := make([]float64, len(s.Particles))
	for i, p := range s.Particles {
		dists[i] = vmath.V2Dist(p.Pos, s.target)
	}

	if len(dists) == 1 {
		stats.MeanDistance = dists[0]
		stats.Spread = 0
		return stats
	}
	stats.MeanDistance, stats.Spread = stat.MeanStdDev(dists, nil)
	return stats
}

// Snapshot is an alias-free copy of the swarm for rendering or persistence
type Snapshot struct {
	Generation int
	Converged  bool
	Target     vmath.Vec2
	HasTarget  bool
	BestPos    vmath.Vec2
	BestVal    float64
	Params     Params
	Particles  []Particle
}

// Snapshot copies the current swarm state
func (s *Swarm) Snapshot() Snapshot {
	particles := make([]Particle, len(s.Particles))
	copy(particles, s.Particles)
	return Snapshot{
		Generation: s.Generation,
		Converged:  s.Converged,
		Target:     s.target,
		HasTarget:  s.hasTarget,
		BestPos:    s.BestPos,
		BestVal:    s.BestVal,
		Params:     s.params,
		Particles:  particles,
	}
}

// Restore rebuilds a swarm from a snapshot, particles are copied
func Restore(snap Snapshot, rng *rand.Rand) *Swarm {
	particles := make([]Particle, len(snap.Particles))
	copy(particles, snap.Particles)
	return &Swarm{
		Particles:  particles,
		BestPos:    snap.BestPos,
		BestVal:    snap.BestVal,
		Generation: snap.Generation,
		Converged:  snap.Converged,
		target:     snap.Target,
		hasTarget:  snap.HasTarget,
		params:     snap.Params,
		rng:        rng,
	}
}
