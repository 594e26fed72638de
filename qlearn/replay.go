package qlearn

import (
	"slices"
)

// --- Replay ---

// EventKind classifies a replay step for the presentation layer
type EventKind uint8

const (
	EventNone EventKind = iota
	EventMove
	EventWallHit
	EventTrap
	EventGoal
	EventDeath
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventMove:
		return "move"
	case EventWallHit:
		return "wall_hit"
	case EventTrap:
		return "trap"
	case EventGoal:
		return "goal"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is emitted by one Replay.Advance
type Event struct {
	Kind EventKind
	// Tier is 1-3 for EventTrap
	Tier   int
	Damage int
	Health int
	State  State
}

// ReplayStats accumulates over one replay
type ReplayStats struct {
	WallHits    int
	Trap1Hits   int
	Trap2Hits   int
	Trap3Hits   int
	TotalSteps  int
	ReachedGoal bool
	Died        bool
}

// Replay walks a traced trajectory one step per Advance
// Damage and wall hits come from the recorded transitions, nothing is re-resolved
type Replay struct {
	env       *Environment
	path      []State
	steps     []Transition
	maxHealth int

	health   int
	index    int
	finished bool
	stats    ReplayStats
}

// NewReplay copies traj and starts at its first state with full health
func NewReplay(env *Environment, traj Trajectory, maxHealth int) *Replay {
	r := &Replay{
		env:       env,
		path:      slices.Clone(traj.Path),
		steps:     slices.Clone(traj.Steps),
		maxHealth: maxHealth,
	}
	r.Restart()
	return r
}

// Restart returns to the first state with full health and cleared stats
func (r *Replay) Restart() {
	r.health = r.maxHealth
	r.index = 0
	r.finished = false
	r.stats = ReplayStats{}
}

func (r *Replay) Health() int        { return r.health }
func (r *Replay) Index() int         { return r.index }
func (r *Replay) Finished() bool     { return r.finished }
func (r *Replay) Stats() ReplayStats { return r.stats }
func (r *Replay) Path() []State      { return slices.Clone(r.path) }
func (r *Replay) Len() int           { return len(r.path) }

// Current returns the state at the replay cursor
func (r *Replay) Current() State {
	if len(r.path) == 0 {
		return r.env.Start()
	}
	return r.path[r.index]
}

// Advance moves one step along the path and reports what happened
// Death is reported on the call after health reaches zero, goal on the call after the last move
func (r *Replay) Advance() Event {
	if r.finished {
		return Event{Kind: EventNone, Health: r.health, State: r.Current()}
	}

	if r.health <= 0 {
		r.finished = true
		r.stats.Died = true
		return Event{Kind: EventDeath, Health: r.health, State: r.Current()}
	}

	if r.index >= len(r.steps) {
		r.finished = true
		cur := r.Current()
		if r.env.Cell(cur) == CellGoal {
			r.stats.ReachedGoal = true
			return Event{Kind: EventGoal, Health: r.health, State: cur}
		}
		return Event{Kind: EventNone, Health: r.health, State: cur}
	}

	tr := r.steps[r.index]
	ev := Event{Kind: EventMove, State: tr.Next, Damage: tr.Damage}

	switch {
	case tr.WallHit:
		ev.Kind = EventWallHit
		r.stats.WallHits++
	case tr.Cell.TrapTier() > 0:
		ev.Kind = EventTrap
		ev.Tier = tr.Cell.TrapTier()
		switch ev.Tier {
		case 1:
			r.stats.Trap1Hits++
		case 2:
			r.stats.Trap2Hits++
		case 3:
			r.stats.Trap3Hits++
		}
	}
	r.health -= tr.Damage

	r.index++
	r.stats.TotalSteps++
	ev.Health = r.health
	return ev
}
