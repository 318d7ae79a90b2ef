// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger for a command run. On a
// terminal, output is human-readable text; when stderr is piped or
// redirected (CI, scripts), it is JSON for machine consumption.
// Verbose lowers the level to debug.
//
// Commands scope the logger with their own context via With():
//
//	logger := cli.NewLogger(verbose).With("command", "apply")
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
