package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "agentlab.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes slog and log to logs/agentlab.log when debug is set, otherwise discards both
// Returns the open log file for the caller to close, nil when discarding
func setupLogging(debug bool) *os.File {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return setupLogging(false)
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return setupLogging(false)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
	// slog.SetDefault bridges the log package into the handler
	log.SetFlags(0)
	return f
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	rotated := fmt.Sprintf("%s.%s.log", logPath[:len(logPath)-len(filepath.Ext(logPath))], time.Now().Format("20060102-150405"))
	if err := os.Rename(logPath, rotated); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
	}
}
