// Package telemetry exposes engine progress as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/qlearn"
	"github.com/lixenwraith/agentlab/steering"
)

const namespace = "agentlab"

// Metrics holds all collectors, registered on construction
type Metrics struct {
	// --- PSO ---
	psoGenerations prometheus.Counter
	psoBestValue   prometheus.Gauge
	psoSpread      prometheus.Gauge
	psoConverged   prometheus.Counter

	// --- Q-learning ---
	qlEpisodes      *prometheus.CounterVec
	qlEpisodeReward prometheus.Histogram
	qlEpisodeSteps  prometheus.Histogram
	qlWallHits      prometheus.Counter

	// --- Steering ---
	steerTicks      prometheus.Counter
	steerAgents     prometheus.Gauge
	steerSeparation prometheus.Counter
	steerContained  prometheus.Counter
}

// New creates the collectors on reg, pass prometheus.NewRegistry() in tests
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		psoGenerations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pso",
			Name:      "generations_total",
			Help:      "Swarm generations advanced",
		}),
		psoBestValue: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pso",
			Name:      "best_distance",
			Help:      "Global best distance to target",
		}),
		psoSpread: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pso",
			Name:      "distance_stddev",
			Help:      "Standard deviation of particle distance to target",
		}),
		psoConverged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pso",
			Name:      "convergences_total",
			Help:      "Swarm runs that reached convergence",
		}),

		qlEpisodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qlearn",
			Name:      "episodes_total",
			Help:      "Training episodes by outcome",
		}, []string{"outcome"}),
		qlEpisodeReward: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "qlearn",
			Name:      "episode_reward",
			Help:      "Total reward per training episode",
			Buckets:   []float64{-500, -250, -100, -50, 0, 25, 50, 75, 100},
		}),
		qlEpisodeSteps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "qlearn",
			Name:      "episode_steps",
			Help:      "Steps per training episode",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		qlWallHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qlearn",
			Name:      "wall_hits_total",
			Help:      "Moves reverted by walls during training",
		}),

		steerTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "steering",
			Name:      "ticks_total",
			Help:      "Steering ticks run",
		}),
		steerAgents: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "steering",
			Name:      "agents",
			Help:      "Autonomous agents in the last tick",
		}),
		steerSeparation: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "steering",
			Name:      "separated_pairs_total",
			Help:      "Agent pairs pushed apart by separation",
		}),
		steerContained: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "steering",
			Name:      "contained_total",
			Help:      "Containment corrections applied",
		}),
	}
}

// ObserveSwarm records one advanced generation, converged marks the step that finished the run
func (m *Metrics) ObserveSwarm(stats pso.SwarmStats, converged bool) {
	m.psoGenerations.Inc()
	m.psoBestValue.Set(stats.BestValue)
	m.psoSpread.Set(stats.Spread)
	if converged {
		m.psoConverged.Inc()
	}
}

// ObserveEpisode implements qlearn.Observer
func (m *Metrics) ObserveEpisode(res qlearn.EpisodeResult) {
	outcome := "timeout"
	switch {
	case res.ReachedGoal:
		outcome = "goal"
	case res.Died:
		outcome = "death"
	}
	m.qlEpisodes.WithLabelValues(outcome).Inc()
	m.qlEpisodeReward.Observe(res.TotalReward)
	m.qlEpisodeSteps.Observe(float64(res.Steps))
	m.qlWallHits.Add(float64(res.WallHits))
}

// ObserveTick records one steering tick
func (m *Metrics) ObserveTick(stats steering.TickStats) {
	m.steerTicks.Inc()
	m.steerAgents.Set(float64(stats.Agents))
	m.steerSeparation.Add(float64(stats.SeparatedPairs))
	m.steerContained.Add(float64(stats.Contained))
}

var _ qlearn.Observer = (*Metrics)(nil)
