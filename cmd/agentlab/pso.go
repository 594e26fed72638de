package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/agentlab/persistence"
	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/vmath"
)

func newPSOCmd(a *app) *cobra.Command {
	var targetX, targetY float64

	cmd := &cobra.Command{
		Use:   "pso",
		Short: "Run a particle swarm toward a target until it converges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("target-x") {
				a.conf.PSO.TargetX = targetX
			}
			if cmd.Flags().Changed("target-y") {
				a.conf.PSO.TargetY = targetY
			}
			if err := a.validateOverrides(); err != nil {
				return err
			}
			return runPSO(cmd.Context(), cmd.OutOrStdout(), a)
		},
	}

	cmd.Flags().Float64Var(&targetX, "target-x", 0, "target X in [-30, 30]")
	cmd.Flags().Float64Var(&targetY, "target-y", 0, "target Y in [-30, 30]")
	return cmd
}

func runPSO(ctx context.Context, w io.Writer, a *app) error {
	swarm, err := pso.NewSwarm(a.conf.PSOParams(), a.newRNG())
	if err != nil {
		return err
	}
	target := vmath.Vec2{X: a.conf.PSO.TargetX, Y: a.conf.PSO.TargetY}
	swarm.SetTarget(target)

	fmt.Fprintf(w, "target (%.2f, %.2f)  population %d  w %.2f  c1 %.2f  c2 %.2f\n",
		target.X, target.Y, a.conf.PSO.Population, a.conf.PSO.Inertia, a.conf.PSO.Cognition, a.conf.PSO.Social)

	for swarm.Step() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats := swarm.Stats()
		a.metrics.ObserveSwarm(stats, swarm.Converged)
		a.logger.Debug("pso generation", "generation", stats.Generation, "best", stats.BestValue, "spread", stats.Spread)
		fmt.Fprintf(w, "gen %3d  best %8.4f  mean %8.4f  spread %8.4f\n",
			stats.Generation, stats.BestValue, stats.MeanDistance, stats.Spread)
	}

	fmt.Fprintf(w, "converged after %d generations: best %.4f at (%.3f, %.3f)\n",
		swarm.Generation, swarm.BestVal, swarm.BestPos.X, swarm.BestPos.Y)

	if a.saveDir == "" {
		return nil
	}
	m := persistence.NewManager(a.saveDir)
	if err := m.SaveSwarm("swarm", persistence.FromSwarmSnapshot(swarm.Snapshot())); err != nil {
		return fmt.Errorf("save swarm: %w", err)
	}
	fmt.Fprintf(w, "saved %s\n", m.FilePath("swarm"))
	return nil
}
