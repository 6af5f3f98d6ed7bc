// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package winloop

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all sub-packages. Collaborator errors are
// wrapped with %w so both the class and the cause stay inspectable.
var (
	// ErrInit reports that a device, surface or window could not be created.
	// It is fatal.
	ErrInit = errors.New("winloop: initialization failed")

	// ErrSurfaceLost reports that the presentation surface must be rebuilt,
	// typically after the platform suspended or minimized the window.
	// The current frame is skipped and retried on the next redraw.
	ErrSurfaceLost = errors.New("winloop: surface lost")

	// ErrOutOfMemory reports GPU memory exhaustion. It is fatal.
	ErrOutOfMemory = errors.New("winloop: out of GPU memory")

	// ErrRender reports that a render step failed mid-encode. The frame is
	// discarded and the dispatch loop terminates.
	ErrRender = errors.New("winloop: render step failed")

	// ErrConfig reports a malformed or unsupported configuration file.
	ErrConfig = errors.New("winloop: invalid configuration")

	// ErrUnsupported reports a feature the current platform cannot provide.
	ErrUnsupported = errors.New("winloop: unsupported on this platform")
)

// ConfigError carries the offending configuration path.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrConfig and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfig, e.Err}
}

// Disposition is the decision taken at the boundary that receives an error.
type Disposition int

const (
	// Proceed means there was no error.
	Proceed Disposition = iota
	// SkipFrame drops the current frame and retries on the next redraw.
	SkipFrame
	// Fatal terminates the loop; the process should exit after cleanup.
	Fatal
)

// String returns the disposition name.
func (d Disposition) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case SkipFrame:
		return "skip-frame"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
}

// Classify maps an error to its disposition. Only ErrSurfaceLost is
// recoverable; every other error is fatal.
func Classify(err error) Disposition {
	switch {
	case err == nil:
		return Proceed
	case errors.Is(err, ErrSurfaceLost):
		return SkipFrame
	default:
		return Fatal
	}
}

// ExitCode returns the process exit status for err: 0 for nil, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
