package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/qlearn"
	"github.com/lixenwraith/agentlab/steering"
)

func TestObserveSwarm(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSwarm(pso.SwarmStats{Generation: 1, BestValue: 4.5, Spread: 2}, false)
	m.ObserveSwarm(pso.SwarmStats{Generation: 2, BestValue: 0.5, Spread: 1}, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.psoGenerations))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.psoBestValue))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.psoSpread))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.psoConverged))
}

func TestObserveEpisode(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveEpisode(qlearn.EpisodeResult{Episode: 1, Steps: 12, TotalReward: 89, ReachedGoal: true})
	m.ObserveEpisode(qlearn.EpisodeResult{Episode: 2, Steps: 3, TotalReward: -102, Died: true, WallHits: 2})
	m.ObserveEpisode(qlearn.EpisodeResult{Episode: 3, Steps: 100, TotalReward: -100, WallHits: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.qlEpisodes.WithLabelValues("goal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.qlEpisodes.WithLabelValues("death")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.qlEpisodes.WithLabelValues("timeout")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.qlWallHits))
	assert.Equal(t, 1, testutil.CollectAndCount(m.qlEpisodeReward))
}

func TestObserveTick(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTick(steering.TickStats{Agents: 6, SeparatedPairs: 2, Contained: 1})
	m.ObserveTick(steering.TickStats{Agents: 5, SeparatedPairs: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.steerTicks))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.steerAgents))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.steerSeparation))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.steerContained))
}

func TestNew_RegistersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveTick(steering.TickStats{Agents: 1})
	m.ObserveEpisode(qlearn.EpisodeResult{ReachedGoal: true})

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["agentlab_steering_ticks_total"])
	assert.True(t, names["agentlab_qlearn_episodes_total"])
	assert.True(t, names["agentlab_pso_best_distance"])

	// A second set on the same registry collides
	assert.Panics(t, func() { New(reg) })
}
