// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package winloop

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// useLogger installs l for the duration of the test.
func useLogger(t *testing.T, l *slog.Logger) {
	t.Helper()
	prev := Logger()
	SetLogger(l)
	t.Cleanup(func() { SetLogger(prev) })
}

func TestLoggerSilentByDefault(t *testing.T) {
	useLogger(t, nil)

	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("silent logger enabled for %v", level)
		}
	}
}

func TestSetLoggerRoutesRecords(t *testing.T) {
	var buf bytes.Buffer
	useLogger(t, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	Logger().Debug("surface: frame skipped")
	Logger().Info("surface: backend selected", "backend", "software")

	out := buf.String()
	if strings.Contains(out, "frame skipped") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "backend=software") {
		t.Errorf("log output = %q, want the backend attribute", out)
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	useLogger(t, slog.Default())

	SetLogger(nil)
	if Logger() != silent {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLoggerConcurrentSwap(t *testing.T) {
	useLogger(t, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() { Logger().Debug("surface: reconfigured") })
		wg.Go(func() {
			SetLogger(slog.Default())
			SetLogger(nil)
		})
	}
	wg.Wait()

	if Logger() == nil {
		t.Error("Logger() = nil after concurrent swaps")
	}
}
