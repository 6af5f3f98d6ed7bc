// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package winloop

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Disposition
	}{
		{"nil", nil, Proceed},
		{"surface lost", ErrSurfaceLost, SkipFrame},
		{"wrapped surface lost", fmt.Errorf("acquire: %w", ErrSurfaceLost), SkipFrame},
		{"init", ErrInit, Fatal},
		{"out of memory", fmt.Errorf("%w: texture 8192x8192", ErrOutOfMemory), Fatal},
		{"render", fmt.Errorf("%w: circle", ErrRender), Fatal},
		{"foreign", errors.New("boom"), Fatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(ErrConfig); got != 1 {
		t.Errorf("ExitCode(ErrConfig) = %d, want 1", got)
	}
}

func TestConfigError(t *testing.T) {
	err := error(&ConfigError{Path: "/tmp/window.toml", Err: fs.ErrNotExist})

	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("ConfigError should match its cause")
	}
	if !strings.Contains(err.Error(), "/tmp/window.toml") {
		t.Errorf("Error() = %q, want it to contain the path", err.Error())
	}

	var ce *ConfigError
	if !errors.As(fmt.Errorf("load: %w", err), &ce) || ce.Path != "/tmp/window.toml" {
		t.Errorf("errors.As() did not recover the ConfigError")
	}
}

func TestDispositionString(t *testing.T) {
	for d, want := range map[Disposition]string{
		Proceed:        "proceed",
		SkipFrame:      "skip-frame",
		Fatal:          "fatal",
		Disposition(9): "Disposition(9)",
	} {
		if got := d.String(); got != want {
			t.Errorf("Disposition(%d).String() = %q, want %q", int(d), got, want)
		}
	}
}
