package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "schmetterling.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MB
)

// setupLogging returns the process logger. Without debug everything is discarded,
// since the terminal is in raw mode and stdout/stderr belong to the screen.
// With debug it appends to logs/schmetterling.log, rotating a file over
// maxLogSize to .old first. The returned file is nil when nothing was opened.
func setupLogging(debug bool) (*slog.Logger, *os.File) {
	if !debug {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return slog.New(slog.DiscardHandler), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(logPath, logPath+".old"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return slog.New(slog.DiscardHandler), nil
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	logger.Info("logging started", "pid", os.Getpid())
	return logger, logFile
}
