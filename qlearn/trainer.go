package qlearn

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/agentlab/parameter"
)

// --- Training ---

// Config holds learning hyperparameters
type Config struct {
	// Alpha is the learning rate
	Alpha float64
	// Gamma is the discount factor
	Gamma float64
	// Epsilon is the exploration rate used while training
	Epsilon float64
	// Episodes is the number of episodes one Train call runs
	Episodes int
	// MaxSteps caps the length of one episode
	MaxSteps int
	// MaxHealth is the health an agent starts each episode with
	MaxHealth int
	// LogEvery emits a progress line every N episodes, 0 disables
	LogEvery int
	// Snapshots lists episode counts at which Train copies the table
	// Episode 0 is the untrained table
	Snapshots []int
}

// DefaultConfig returns the demo hyperparameters
func DefaultConfig() Config {
	return Config{
		Alpha:     parameter.QLLearningRate,
		Gamma:     parameter.QLDiscount,
		Epsilon:   parameter.QLEpsilon,
		Episodes:  parameter.QLEpisodes,
		MaxSteps:  parameter.QLMaxSteps,
		MaxHealth: parameter.QLMaxHealth,
		LogEvery:  parameter.QLLogEvery,
		Snapshots: slices.Clone(parameter.QLSnapshotEpisodes),
	}
}

// EpisodeResult summarizes one finished episode
type EpisodeResult struct {
	Episode     int
	Steps       int
	TotalReward float64
	ReachedGoal bool
	Died        bool
	WallHits    int
}

// Observer receives every finished episode
type Observer interface {
	ObserveEpisode(EpisodeResult)
}

// Snapshot is an independent copy of the table taken after Episode episodes
type Snapshot struct {
	Episode int
	Table   *ValueTable
}

// Trainer owns the live value table, it is not safe for concurrent use
type Trainer struct {
	env      *Environment
	table    *ValueTable
	cfg      Config
	rng      *rand.Rand
	logger   *slog.Logger
	observer Observer

	episodes int
}

// NewTrainer creates a trainer with an empty table, a nil logger discards output
func NewTrainer(env *Environment, cfg Config, rng *rand.Rand, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Trainer{
		env:    env,
		table:  NewValueTable(),
		cfg:    cfg,
		rng:    rng,
		logger: logger,
	}
}

// Resume continues from a snapshot: the live table becomes a copy of snap.Table and the
// episode count restarts at snap.Episode
func (t *Trainer) Resume(snap Snapshot) {
	if snap.Table == nil {
		t.table = NewValueTable()
	} else {
		t.table = snap.Table.Clone()
	}
	t.episodes = snap.Episode
}

// SetObserver registers the episode observer, nil removes it
func (t *Trainer) SetObserver(o Observer) {
	t.observer = o
}

// Table returns the live table, callers must not read it while training
func (t *Trainer) Table() *ValueTable {
	return t.table
}

// Episodes returns the number of completed episodes
func (t *Trainer) Episodes() int {
	return t.episodes
}

// RunEpisode plays one episode from start with full health, updating the table after every transition
func (t *Trainer) RunEpisode() EpisodeResult {
	t.episodes++
	res := EpisodeResult{Episode: t.episodes}

	s := t.env.Start()
	health := t.cfg.MaxHealth

	for res.Steps < t.cfg.MaxSteps {
		a := ChooseAction(t.table, s, t.cfg.Epsilon, t.rng)
		tr := t.env.Resolve(s, a, health)
		Update(t.table, s, a, tr.Reward, tr.Next, tr.Done, t.cfg.Alpha, t.cfg.Gamma)

		res.Steps++
		res.TotalReward += tr.Reward
		if tr.WallHit {
			res.WallHits++
		}

		s, health = tr.Next, tr.Health
		if tr.Done {
			res.ReachedGoal = tr.Cell == CellGoal
			res.Died = health <= 0
			break
		}
	}

	if t.observer != nil {
		t.observer.ObserveEpisode(res)
	}
	return res
}

// Train runs cfg.Episodes more episodes and returns the scheduled snapshots in episode order
// Schedule entries are absolute episode counts, those already passed are skipped
// Cancellation is checked between episodes, snapshots taken so far are returned with the error
func (t *Trainer) Train(ctx context.Context) ([]Snapshot, error) {
	schedule := slices.Clone(t.cfg.Snapshots)
	slices.Sort(schedule)
	schedule = slices.Compact(schedule)

	snapshots := make([]Snapshot, 0, len(schedule))
	next := 0
	take := func() {
		for next < len(schedule) && schedule[next] <= t.episodes {
			if schedule[next] == t.episodes {
				snapshots = append(snapshots, Snapshot{Episode: t.episodes, Table: t.table.Clone()})
			}
			next++
		}
	}

	end := t.episodes + t.cfg.Episodes
	take()
	for range t.cfg.Episodes {
		select {
		case <-ctx.Done():
			return snapshots, ctx.Err()
		default:
		}

		res := t.RunEpisode()
		take()

		if t.cfg.LogEvery > 0 && res.Episode%t.cfg.LogEvery == 0 {
			t.logger.Info("training progress",
				"episode", res.Episode,
				"total", end,
				"reward", res.TotalReward,
				"steps", res.Steps,
				"goal", res.ReachedGoal,
			)
		}
	}

	return snapshots, nil
}

// Stage pairs a snapshot episode with the exploration rate used to display it
type Stage struct {
	Episode int
	Epsilon float64
}

// DefaultStages returns the demo snapshot schedule, exploration falls as training progresses
func DefaultStages() []Stage {
	stages := make([]Stage, len(parameter.QLSnapshotEpisodes))
	for i, ep := range parameter.QLSnapshotEpisodes {
		stages[i] = Stage{Episode: ep, Epsilon: parameter.QLStageEpsilons[i]}
	}
	return stages
}
