package qlearn

import (
	"math/rand/v2"
)

// ChooseAction is epsilon-greedy: uniform over Actions with probability epsilon, else table.Best
func ChooseAction(table *ValueTable, s State, epsilon float64, rng *rand.Rand) Action {
	if epsilon > 0 && rng.Float64() < epsilon {
		return Actions[rng.IntN(ActionCount)]
	}
	return table.Best(s)
}

// Update applies one-step Q-learning
// Q(s,a) += alpha * (r + gamma * max Q(s',·) * (1-done) - Q(s,a))
func Update(table *ValueTable, s State, a Action, reward float64, next State, done bool, alpha, gamma float64) {
	old := table.Get(s, a)
	target := reward
	if !done {
		target += gamma * table.Max(next)
	}
	table.Set(s, a, old+alpha*(target-old))
}

// Transition is the fully resolved outcome of one move, reward and damage read from the same cell
type Transition struct {
	From    State
	Action  Action
	Next    State
	Cell    Cell
	WallHit bool
	Damage  int
	// Health is the agent health after damage
	Health int
	Reward float64
	Done   bool
}

// Resolve steps the environment and settles damage, reward and termination together
// All three read the cell the agent ends on, after a wall bump that is the cell it stayed on
func (e *Environment) Resolve(s State, a Action, health int) Transition {
	next, damage, wallHit := e.Step(s, a)
	cell := e.Cell(next)
	health -= damage

	return Transition{
		From:    s,
		Action:  a,
		Next:    next,
		Cell:    cell,
		WallHit: wallHit,
		Damage:  damage,
		Health:  health,
		Reward:  Reward(cell),
		Done:    IsTerminal(cell, health),
	}
}
