// Package logging provides slog constructors with consistent configuration.
package logging

import (
	"log/slog"
	"os"
)

func level() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger creates a structured logger with JSON output, used by the serve
// mode. The log level is controlled via the LOG_LEVEL environment variable.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level()}))
}

// NewTextLogger creates a human-readable logger for CLI runs.
func NewTextLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level()}))
}
