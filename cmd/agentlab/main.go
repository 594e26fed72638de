// Command agentlab runs the swarm, Q-learning and steering engines headless, one tick at a time.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/agentlab/config"
	"github.com/lixenwraith/agentlab/telemetry"
)

// app carries state shared by all subcommands
type app struct {
	// Flags
	configPath  string
	seed        uint64
	debug       bool
	metricsAddr string
	saveDir     string

	conf     *config.Config
	logFile  *os.File
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	server   *http.Server
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "agentlab",
		Short:             "Headless particle swarm, Q-learning and steering simulations",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (.toml, .yaml)")
	flags.Uint64Var(&a.seed, "seed", 0, "random seed, 0 for a fresh seed")
	flags.BoolVar(&a.debug, "debug", false, "write debug logs to "+logDir+"/"+logFileName)
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.StringVar(&a.saveDir, "save-dir", "", "directory for snapshot files")

	root.AddCommand(newPSOCmd(a), newQLearnCmd(a), newSteerCmd(a))
	return root
}

// setup loads configuration and wires logging and metrics before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		conf.Seed = a.seed
	}
	if a.debug {
		conf.Debug = true
	}
	if conf.Seed == 0 {
		conf.Seed = rand.Uint64()
	}
	a.conf = conf

	a.logFile = setupLogging(conf.Debug)
	a.logger = slog.Default()
	a.logger.Debug("configuration loaded", "path", a.configPath, "seed", conf.Seed)

	a.registry = prometheus.NewRegistry()
	a.metrics = telemetry.New(a.registry)
	if a.metricsAddr != "" {
		a.serveMetrics()
	}
	return nil
}

func (a *app) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.server = &http.Server{
		Addr:              a.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "addr", a.metricsAddr, "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", a.metricsAddr)
}

func (a *app) teardown() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics server shutdown", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// newRNG returns a generator seeded from the run seed
func (a *app) newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(a.conf.Seed, a.conf.Seed))
}

// validateOverrides re-checks the configuration after command flags changed it
func (a *app) validateOverrides() error {
	if err := a.conf.Validate(); err != nil {
		return fmt.Errorf("invalid flag value: %w", err)
	}
	return nil
}
