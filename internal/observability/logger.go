// Package observability provides the process-wide structured logger.
package observability

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger writing to stderr. Debug output is
// enabled when verbose is set.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
