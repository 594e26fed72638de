// Package persistence converts engine snapshots to TOML documents and back.
package persistence

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/qlearn"
	"github.com/lixenwraith/agentlab/vmath"
)

// --- Value Table ---

// TableDTO is a serializable value table snapshot
type TableDTO struct {
	Episode int        `toml:"episode"`
	Entries []EntryDTO `toml:"entries"`
}

// EntryDTO is one serializable (state, action) value
type EntryDTO struct {
	X      int     `toml:"x"`
	Y      int     `toml:"y"`
	Action string  `toml:"action"`
	Value  float64 `toml:"value"`
}

// FromTableSnapshot converts a table snapshot to DTO, entries are ordered by row, column and action
func FromTableSnapshot(snap qlearn.Snapshot) TableDTO {
	dto := TableDTO{Episode: snap.Episode}
	if snap.Table == nil {
		return dto
	}

	entries := snap.Table.Entries()
	slices.SortFunc(entries, func(a, b qlearn.Entry) int {
		return cmp.Or(
			cmp.Compare(a.State.Y, b.State.Y),
			cmp.Compare(a.State.X, b.State.X),
			cmp.Compare(a.Action, b.Action),
		)
	})

	dto.Entries = make([]EntryDTO, len(entries))
	for i, e := range entries {
		dto.Entries[i] = EntryDTO{
			X:      e.State.X,
			Y:      e.State.Y,
			Action: e.Action.String(),
			Value:  e.Value,
		}
	}
	return dto
}

// ToTableSnapshot rebuilds a table snapshot from DTO
func (dto TableDTO) ToTableSnapshot() (qlearn.Snapshot, error) {
	table := qlearn.NewValueTable()
	for i, e := range dto.Entries {
		a, err := qlearn.ParseAction(e.Action)
		if err != nil {
			return qlearn.Snapshot{}, fmt.Errorf("entry %d: %w", i, err)
		}
		table.Set(qlearn.State{X: e.X, Y: e.Y}, a, e.Value)
	}
	return qlearn.Snapshot{Episode: dto.Episode, Table: table}, nil
}

// --- Swarm ---

// SwarmDTO is a serializable swarm snapshot
type SwarmDTO struct {
	Generation int           `toml:"generation"`
	Converged  bool          `toml:"converged"`
	HasTarget  bool          `toml:"has_target"`
	Target     PointDTO      `toml:"target"`
	Best       PointDTO      `toml:"best"`
	BestValue  float64       `toml:"best_value"`
	Params     ParamsDTO     `toml:"params"`
	Particles  []ParticleDTO `toml:"particles"`
}

// PointDTO is a serializable 2D point
type PointDTO struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// ParamsDTO is the serializable swarm parameter set
type ParamsDTO struct {
	Population  int     `toml:"population"`
	Generations int     `toml:"generations"`
	Inertia     float64 `toml:"inertia"`
	Cognition   float64 `toml:"cognition"`
	Social      float64 `toml:"social"`
}

// ParticleDTO is a serializable particle
type ParticleDTO struct {
	Pos       PointDTO `toml:"pos"`
	Vel       PointDTO `toml:"vel"`
	Best      PointDTO `toml:"best"`
	BestValue float64  `toml:"best_value"`
}

func point(v vmath.Vec2) PointDTO  { return PointDTO{X: v.X, Y: v.Y} }
func (p PointDTO) vec() vmath.Vec2 { return vmath.Vec2{X: p.X, Y: p.Y} }

// FromSwarmSnapshot converts a swarm snapshot to DTO
func FromSwarmSnapshot(snap pso.Snapshot) SwarmDTO {
	dto := SwarmDTO{
		Generation: snap.Generation,
		Converged:  snap.Converged,
		HasTarget:  snap.HasTarget,
		Target:     point(snap.Target),
		Best:       point(snap.BestPos),
		BestValue:  snap.BestVal,
		Params: ParamsDTO{
			Population:  snap.Params.Population,
			Generations: snap.Params.Generations,
			Inertia:     snap.Params.Inertia,
			Cognition:   snap.Params.Cognition,
			Social:      snap.Params.Social,
		},
		Particles: make([]ParticleDTO, len(snap.Particles)),
	}

	for i, p := range snap.Particles {
		dto.Particles[i] = ParticleDTO{
			Pos:       point(p.Pos),
			Vel:       point(p.Vel),
			Best:      point(p.BestPos),
			BestValue: p.BestVal,
		}
	}
	return dto
}

// ToSwarmSnapshot converts DTO back to a swarm snapshot
func (dto SwarmDTO) ToSwarmSnapshot() pso.Snapshot {
	snap := pso.Snapshot{
		Generation: dto.Generation,
		Converged:  dto.Converged,
		HasTarget:  dto.HasTarget,
		Target:     dto.Target.vec(),
		BestPos:    dto.Best.vec(),
		BestVal:    dto.BestValue,
		Params: pso.Params{
			Population:  dto.Params.Population,
			Generations: dto.Params.Generations,
			Inertia:     dto.Params.Inertia,
			Cognition:   dto.Params.Cognition,
			Social:      dto.Params.Social,
		},
		Particles: make([]pso.Particle, len(dto.Particles)),
	}

	for i, p := range dto.Particles {
		snap.Particles[i] = pso.Particle{
			Pos:     p.Pos.vec(),
			Vel:     p.Vel.vec(),
			BestPos: p.Best.vec(),
			BestVal: p.BestValue,
		}
	}
	return snap
}
