package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/pso"
	"github.com/lixenwraith/agentlab/qlearn"
	"github.com/lixenwraith/agentlab/steering"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_MatchesEngineDefaults(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())

	assert.Equal(t, pso.DefaultParams(), conf.PSOParams())
	assert.Equal(t, qlearn.DefaultConfig(), conf.TrainerConfig())
	assert.Equal(t, steering.DefaultWorldConfig(), conf.WorldConfig())
}

func TestLoad_EmptyPath(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
seed = 42
debug = true

[pso]
population = 20
target_x = -5.5

[qlearn]
episodes = 200
snapshots = [0, 100, 200]
layout = ["S.", ".G"]

[steering]
parallelism = 1
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), conf.Seed)
	assert.True(t, conf.Debug)
	assert.Equal(t, 20, conf.PSO.Population)
	assert.Equal(t, -5.5, conf.PSO.TargetX)
	assert.Equal(t, 10.0, conf.PSO.TargetY, "unset keys keep defaults")
	assert.Equal(t, parameter.PSOInertia, conf.PSO.Inertia)
	assert.Equal(t, 200, conf.QLearn.Episodes)
	assert.Equal(t, []int{0, 100, 200}, conf.QLearn.Snapshots)
	assert.Equal(t, []string{"S.", ".G"}, conf.QLearn.Layout)
	assert.Equal(t, 1, conf.Steering.Parallelism)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
seed: 7
qlearn:
  epsilon: 0.2
  max_steps: 50
steering:
  ticks: 120
  dt: 0.1
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), conf.Seed)
	assert.Equal(t, 0.2, conf.QLearn.Epsilon)
	assert.Equal(t, 50, conf.QLearn.MaxSteps)
	assert.Equal(t, 120, conf.Steering.Ticks)
	assert.Equal(t, 0.1, conf.Steering.DT)
	assert.Equal(t, parameter.QLEpisodes, conf.QLearn.Episodes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"population below floor", "a.toml", "[pso]\npopulation = 2\n"},
		{"inertia above cap", "b.yaml", "pso:\n  inertia: 1.5\n"},
		{"target outside domain", "c.toml", "[pso]\ntarget_y = 31.0\n"},
		{"negative snapshot", "d.yml", "qlearn:\n  snapshots: [0, -1]\n"},
		{"zero parallelism", "e.toml", "[steering]\nparallelism = 0\n"},
		{"empty layout row", "f.toml", "[qlearn]\nlayout = [\"SG\", \"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}

	_, err := Load(writeFile(t, "bad.toml", "[pso\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "run.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
