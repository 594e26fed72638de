// Package config loads the run configuration of the agentlab CLI from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/qlearn"
	"github.com/lixenwraith/agentlab/steering"
)

var ErrUnsupportedFormat = errors.New("config: unsupported file extension")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full CLI configuration
type Config struct {
	// Seed fixes every random source, 0 draws a fresh seed per run
	Seed  uint64 `toml:"seed" yaml:"seed"`
	Debug bool   `toml:"debug" yaml:"debug"`

	PSO      PSOConfig      `toml:"pso" yaml:"pso"`
	QLearn   QLearnConfig   `toml:"qlearn" yaml:"qlearn"`
	Steering SteeringConfig `toml:"steering" yaml:"steering"`
}

// PSOConfig configures the swarm run
type PSOConfig struct {
	Population  int     `toml:"population" yaml:"population" validate:"gte=3"`
	Generations int     `toml:"generations" yaml:"generations" validate:"gte=0"`
	Inertia     float64 `toml:"inertia" yaml:"inertia" validate:"gte=0,lte=1.2"`
	Cognition   float64 `toml:"cognition" yaml:"cognition" validate:"gte=0"`
	Social      float64 `toml:"social" yaml:"social" validate:"gte=0"`
	TargetX     float64 `toml:"target_x" yaml:"target_x" validate:"gte=-30,lte=30"`
	TargetY     float64 `toml:"target_y" yaml:"target_y" validate:"gte=-30,lte=30"`
}

// QLearnConfig configures training and replay
type QLearnConfig struct {
	Alpha     float64 `toml:"alpha" yaml:"alpha" validate:"gt=0,lte=1"`
	Gamma     float64 `toml:"gamma" yaml:"gamma" validate:"gte=0,lte=1"`
	Epsilon   float64 `toml:"epsilon" yaml:"epsilon" validate:"gte=0,lte=1"`
	Episodes  int     `toml:"episodes" yaml:"episodes" validate:"gte=0"`
	MaxSteps  int     `toml:"max_steps" yaml:"max_steps" validate:"gt=0"`
	MaxHealth int     `toml:"max_health" yaml:"max_health" validate:"gt=0"`
	LogEvery  int     `toml:"log_every" yaml:"log_every" validate:"gte=0"`
	Snapshots []int   `toml:"snapshots" yaml:"snapshots" validate:"dive,gte=0"`
	// Layout replaces the generated map when set, one row per string
	Layout []string `toml:"layout" yaml:"layout" validate:"omitempty,min=1,dive,required"`
}

// SteeringConfig configures the steering world and run length
type SteeringConfig struct {
	Separation            float64 `toml:"separation" yaml:"separation" validate:"gte=0"`
	Boundary              float64 `toml:"boundary" yaml:"boundary" validate:"gte=0"`
	ContainmentForceScale float64 `toml:"containment_force_scale" yaml:"containment_force_scale" validate:"gte=0"`
	Parallelism           int     `toml:"parallelism" yaml:"parallelism" validate:"gte=1"`
	Ticks                 int     `toml:"ticks" yaml:"ticks" validate:"gt=0"`
	DT                    float64 `toml:"dt" yaml:"dt" validate:"gt=0"`
}

// Default returns the demo configuration
func Default() *Config {
	return &Config{
		PSO: PSOConfig{
			Population:  parameter.PSOPopulation,
			Generations: parameter.PSOGenerations,
			Inertia:     parameter.PSOInertia,
			Cognition:   parameter.PSOCognition,
			Social:      parameter.PSOSocial,
			TargetX:     10,
			TargetY:     10,
		},
		QLearn: QLearnConfig{
			Alpha:     parameter.QLLearningRate,
			Gamma:     parameter.QLDiscount,
			Epsilon:   parameter.QLEpsilon,
			Episodes:  parameter.QLEpisodes,
			MaxSteps:  parameter.QLMaxSteps,
			MaxHealth: parameter.QLMaxHealth,
			LogEvery:  parameter.QLLogEvery,
			Snapshots: slices.Clone(parameter.QLSnapshotEpisodes),
		},
		Steering: SteeringConfig{
			Separation:            parameter.SteerSeparation,
			Boundary:              parameter.SteerBoundary,
			ContainmentForceScale: parameter.SteerContainmentForceScale,
			Parallelism:           parameter.SteerParallelism,
			Ticks:                 600,
			DT:                    1.0 / 60,
		},
	}
}

// Load reads path over the defaults, the format follows the extension (.toml, .yaml, .yml)
// An empty path returns the defaults
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(conf); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks field bounds
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PSOParams converts to swarm parameters
func (c *Config) PSOParams() pso.Params {
	return pso.Params{
		Population:  c.PSO.Population,
		Generations: c.PSO.Generations,
		Inertia:     c.PSO.Inertia,
		Cognition:   c.PSO.Cognition,
		Social:      c.PSO.Social,
	}
}

// TrainerConfig converts to training hyperparameters
func (c *Config) TrainerConfig() qlearn.Config {
	return qlearn.Config{
		Alpha:     c.QLearn.Alpha,
		Gamma:     c.QLearn.Gamma,
		Epsilon:   c.QLearn.Epsilon,
		Episodes:  c.QLearn.Episodes,
		MaxSteps:  c.QLearn.MaxSteps,
		MaxHealth: c.QLearn.MaxHealth,
		LogEvery:  c.QLearn.LogEvery,
		Snapshots: slices.Clone(c.QLearn.Snapshots),
	}
}

// WorldConfig converts to steering world settings
func (c *Config) WorldConfig() steering.WorldConfig {
	return steering.WorldConfig{
		Separation:            c.Steering.Separation,
		Boundary:              c.Steering.Boundary,
		ContainmentForceScale: c.Steering.ContainmentForceScale,
		GroundHeight:          parameter.SteerGroundHeight,
		Parallelism:           c.Steering.Parallelism,
	}
}
