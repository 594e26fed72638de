package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/steering"
	"github.com/lixenwraith/agentlab/vmath"
)

// playerTurnRate is the heading change of the scripted player in rad/s
const playerTurnRate = 0.5

func newSteerCmd(a *app) *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "steer",
		Short: "Run the steering cast around a player driving in a circle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("ticks") {
				a.conf.Steering.Ticks = ticks
			}
			if err := a.validateOverrides(); err != nil {
				return err
			}
			return runSteer(cmd.Context(), cmd.OutOrStdout(), a)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks to run")
	return cmd
}

func runSteer(ctx context.Context, w io.Writer, a *app) error {
	world := steering.NewWorld(a.conf.WorldConfig(), a.newRNG())
	cast := steering.SpawnDefaultCast(world)
	dt := a.conf.Steering.DT

	for i := range a.conf.Steering.Ticks {
		heading := float64(i) * dt * playerTurnRate
		dir := vmath.Vec3F{X: math.Cos(heading), Z: math.Sin(heading)}
		if err := world.Drive(cast.Player, dir, parameter.SteerPlayerSpeed, dt); err != nil {
			return err
		}

		stats, err := world.Tick(ctx, dt)
		if err != nil {
			return err
		}
		a.metrics.ObserveTick(stats)
	}

	player, _ := world.Kinetic(cast.Player)
	fmt.Fprintf(w, "%d ticks of %.4fs\n", a.conf.Steering.Ticks, dt)
	for _, ag := range world.Agents() {
		k := ag.Kinetic
		fmt.Fprintf(w, "%-8s pos (%7.2f, %7.2f)  speed %5.2f/%.2f  dist %6.2f\n",
			ag.Name, k.Pos.X, k.Pos.Z, vmath.V3FMag(k.Vel), k.MaxSpeed, vmath.V3FDist(k.Pos, player.Pos))
	}
	return nil
}
