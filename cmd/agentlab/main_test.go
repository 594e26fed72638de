package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentlab.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPSOCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "pso", "--seed", "3", "--target-x", "-4", "--target-y", "7", "--save-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "target (-4.00, 7.00)")
	assert.Contains(t, out, "gen   1")
	assert.Contains(t, out, "converged after")
	assert.FileExists(t, filepath.Join(dir, "swarm.toml"))
}

func TestPSOCommand_RejectsTargetOutsideDomain(t *testing.T) {
	_, err := execute(t, "pso", "--target-x", "45")
	assert.Error(t, err)
}

func TestQLearnCommand(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, `
[qlearn]
episodes = 60
snapshots = [0, 50]
layout = ["S..", ".#.", "..G"]
`)

	out, err := execute(t, "qlearn", "--config", conf, "--seed", "11", "--save-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "map 3x3")
	assert.Contains(t, out, "S . .\n. # .\n. . G\n")
	assert.Equal(t, 2, strings.Count(out, "episode "))
	assert.FileExists(t, filepath.Join(dir, "qtable_0000.toml"))
	assert.FileExists(t, filepath.Join(dir, "qtable_0050.toml"))
}

func TestQLearnCommand_Resume(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, `
[qlearn]
episodes = 10
snapshots = [10, 20]
layout = ["S1.", "..#", "..G"]
`)

	_, err := execute(t, "qlearn", "--config", conf, "--seed", "7", "--save-dir", dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "qtable_0010.toml"))
	assert.NoFileExists(t, filepath.Join(dir, "qtable_0020.toml"))

	out, err := execute(t, "qlearn", "--config", conf, "--seed", "7", "--save-dir", dir, "--resume", "qtable_0010")
	require.NoError(t, err)
	assert.Contains(t, out, "resumed qtable_0010 at episode 10")
	assert.Contains(t, out, "episode   20")
	assert.FileExists(t, filepath.Join(dir, "qtable_0020.toml"))

	_, err = execute(t, "qlearn", "--config", conf, "--resume", "qtable_0010")
	assert.Error(t, err)

	_, err = execute(t, "qlearn", "--config", conf, "--save-dir", dir, "--resume", "qtable_0999")
	assert.Error(t, err)
}

func TestQLearnCommand_GeneratedMap(t *testing.T) {
	out, err := execute(t, "qlearn", "--seed", "5", "--episodes", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "map 10x10")
	// Only the 0 and 10 stages fall inside 20 episodes
	assert.Equal(t, 2, strings.Count(out, "episode "))
}

func TestSteerCommand(t *testing.T) {
	out, err := execute(t, "steer", "--seed", "2", "--ticks", "120")
	require.NoError(t, err)

	assert.Contains(t, out, "120 ticks")
	for _, name := range []string{"player", "seek", "flee", "arrive", "wander", "pursuit", "evade"} {
		assert.Contains(t, out, name)
	}
}

func TestRoot_BadConfig(t *testing.T) {
	conf := writeConfig(t, "[pso]\npopulation = 1\n")
	_, err := execute(t, "pso", "--config", conf)
	assert.Error(t, err)
}
