// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package winloop

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record. It is the no-op diagnostic collector and
// the default logger: its handler reports every level disabled, so log
// calls skip formatting.
var silent = slog.New(slog.DiscardHandler)

// logger is read by the dispatch loop and its callbacks while SetLogger
// may run on another goroutine.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent)
}

// SetLogger sets the logger used by winloop and its sub-packages. Passing
// nil restores the silent default.
//
// Levels:
//   - [slog.LevelDebug]: skipped frames, surface reconfiguration, decoded images
//   - [slog.LevelInfo]: backend and adapter selection, window creation
//   - [slog.LevelWarn]: backend fallback, release failures, rejected
//     configuration reloads and resizes
//
// The winloop command installs a text handler on stderr:
//
//	winloop.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
