package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/agentlab/persistence"
	"github.com/lixenwraith/agentlab/qlearn"
)

func newQLearnCmd(a *app) *cobra.Command {
	var (
		episodes int
		resume   string
	)

	cmd := &cobra.Command{
		Use:   "qlearn",
		Short: "Train a Q-table on a trap grid and replay each snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("episodes") {
				a.conf.QLearn.Episodes = episodes
			}
			if err := a.validateOverrides(); err != nil {
				return err
			}
			return runQLearn(cmd.Context(), cmd.OutOrStdout(), a, resume)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 0, "training episodes")
	cmd.Flags().StringVar(&resume, "resume", "", "continue from a saved table in --save-dir, e.g. qtable_0100 (same map and seed)")
	return cmd
}

func runQLearn(ctx context.Context, w io.Writer, a *app, resume string) error {
	rng := a.newRNG()

	env, err := buildEnvironment(a.conf.QLearn.Layout, rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "map %dx%d  start (%d,%d)  goal (%d,%d)\n%s",
		env.Width(), env.Height(), env.Start().X, env.Start().Y, env.Goal().X, env.Goal().Y, env)

	var m *persistence.Manager
	if a.saveDir != "" {
		m = persistence.NewManager(a.saveDir)
	}

	cfg := a.conf.TrainerConfig()
	trainer := qlearn.NewTrainer(env, cfg, rng, a.logger)
	trainer.SetObserver(a.metrics)

	if resume != "" {
		if m == nil {
			return errors.New("--resume requires --save-dir")
		}
		snap, err := loadSnapshot(m, resume)
		if err != nil {
			return err
		}
		trainer.Resume(snap)
		fmt.Fprintf(w, "resumed %s at episode %d\n", resume, snap.Episode)
	}

	snaps, err := trainer.Train(ctx)
	if err != nil {
		return err
	}

	stageEpsilon := make(map[int]float64)
	for _, st := range qlearn.DefaultStages() {
		stageEpsilon[st.Episode] = st.Epsilon
	}

	for _, snap := range snaps {
		eps := stageEpsilon[snap.Episode]
		traj := qlearn.Trace(env, snap.Table, eps, cfg.MaxHealth, rng)

		replay := qlearn.NewReplay(env, traj, cfg.MaxHealth)
		for !replay.Finished() {
			replay.Advance()
		}
		stats := replay.Stats()

		fmt.Fprintf(w, "episode %4d  eps %.1f  steps %3d  walls %2d  traps %d/%d/%d  hp %3d  %s\n",
			snap.Episode, eps, stats.TotalSteps, stats.WallHits,
			stats.Trap1Hits, stats.Trap2Hits, stats.Trap3Hits, replay.Health(), outcome(stats, traj.Stuck))

		if m == nil {
			continue
		}
		name := fmt.Sprintf("qtable_%04d", snap.Episode)
		if err := m.SaveTable(name, persistence.FromTableSnapshot(snap)); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

func loadSnapshot(m *persistence.Manager, name string) (qlearn.Snapshot, error) {
	dto, err := m.LoadTable(name)
	if err != nil {
		return qlearn.Snapshot{}, fmt.Errorf("load %s: %w", name, err)
	}
	snap, err := dto.ToTableSnapshot()
	if err != nil {
		return qlearn.Snapshot{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return snap, nil
}

func buildEnvironment(layout []string, rng *rand.Rand) (*qlearn.Environment, error) {
	if len(layout) > 0 {
		return qlearn.NewEnvironment(layout)
	}
	return qlearn.BuildEnvironment(rng), nil
}

func outcome(stats qlearn.ReplayStats, stuck bool) string {
	switch {
	case stats.ReachedGoal:
		return "goal"
	case stats.Died:
		return "died"
	case stuck:
		return "stuck"
	default:
		return "stopped"
	}
}
