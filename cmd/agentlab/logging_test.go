package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	assert.Nil(t, logFile)

	assert.Equal(t, io.Discard, log.Writer())
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	require.FileExists(t, logPath)

	slog.Info("test log message", "k", 1)
	log.Println("bridged message")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test log message")
	assert.Contains(t, string(data), "bridged message")

	output := log.Writer()
	assert.NotEqual(t, os.Stdout, output)
	assert.NotEqual(t, os.Stderr, output)
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)
	require.NoError(t, os.MkdirAll(logDir, 0755))

	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	assert.True(t, rotatedFound, "expected rotated log file")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxLogSize))
}
