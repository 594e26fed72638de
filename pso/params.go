package pso

import (
	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/vmath"
)

// Setters clamp instead of rejecting. Only a population change reinitializes the swarm.

// SetPopulation resizes the population (floor parameter.PSOMinPopulation) and resets progress
func (s *Swarm) SetPopulation(n int) {
	s.params.Population = max(n, parameter.PSOMinPopulation)
	s.Reset()
}

// SetGenerations sets the generation cap, floor 0
func (s *Swarm) SetGenerations(n int) {
	s.params.Generations = max(n, 0)
}

// SetInertia sets w, clamped to [0, parameter.PSOInertiaMax]
func (s *Swarm) SetInertia(w float64) {
	s.params.Inertia = vmath.Clamp(w, 0, parameter.PSOInertiaMax)
}

// SetCognition sets c1, floor 0
func (s *Swarm) SetCognition(c1 float64) {
	s.params.Cognition = max(c1, 0)
}

// SetSocial sets c2, floor 0
func (s *Swarm) SetSocial(c2 float64) {
	s.params.Social = max(c2, 0)
}

// --- Step Adjustments ---

// AdjustGenerations moves the cap by steps*parameter.PSOGenerationStep
func (s *Swarm) AdjustGenerations(steps int) {
	s.SetGenerations(s.params.Generations + steps*parameter.PSOGenerationStep)
}

// AdjustPopulation moves the population by steps*parameter.PSOPopulationStep
func (s *Swarm) AdjustPopulation(steps int) {
	s.SetPopulation(s.params.Population + steps*parameter.PSOPopulationStep)
}

// AdjustInertia moves w by steps*parameter.PSOInertiaStep
func (s *Swarm) AdjustInertia(steps int) {
	s.SetInertia(s.params.Inertia + float64(steps)*parameter.PSOInertiaStep)
}

// AdjustCognition moves c1 by steps*parameter.PSOCoefficientStep
func (s *Swarm) AdjustCognition(steps int) {
	s.SetCognition(s.params.Cognition + float64(steps)*parameter.PSOCoefficientStep)
}

// AdjustSocial moves c2 by steps*parameter.PSOCoefficientStep
func (s *Swarm) AdjustSocial(steps int) {
	s.SetSocial(s.params.Social + float64(steps)*parameter.PSOCoefficientStep)
}
