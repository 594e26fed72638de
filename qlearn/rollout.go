package qlearn

import (
	"math/rand/v2"

	"github.com/lixenwraith/agentlab/parameter"
)

// Trajectory is one resolved walk through the environment
// Steps[i] is the transition from Path[i] to Path[i+1]
type Trajectory struct {
	Path  []State
	Steps []Transition
	Stuck bool
}

// Trace follows the table from start until a terminal cell, recording every resolved transition.
// Health is tracked so a lethal trap ends the walk. When the path reaches parameter.QLRolloutCap
// states the walk is abandoned and Stuck is set.
// The table is only read, pass a snapshot when training is live.
func Trace(env *Environment, table *ValueTable, epsilon float64, maxHealth int, rng *rand.Rand) Trajectory {
	s := env.Start()
	health := maxHealth
	traj := Trajectory{Path: []State{s}}

	for !IsTerminal(env.Cell(s), health) {
		if len(traj.Path) >= parameter.QLRolloutCap {
			traj.Stuck = true
			return traj
		}
		a := ChooseAction(table, s, epsilon, rng)
		tr := env.Resolve(s, a, health)
		s, health = tr.Next, tr.Health
		traj.Path = append(traj.Path, s)
		traj.Steps = append(traj.Steps, tr)
	}

	return traj
}

// Rollout returns the visited states of Trace, start included, and whether the walk got stuck
func Rollout(env *Environment, table *ValueTable, epsilon float64, maxHealth int, rng *rand.Rand) (path []State, stuck bool) {
	traj := Trace(env, table, epsilon, maxHealth, rng)
	return traj.Path, traj.Stuck
}
