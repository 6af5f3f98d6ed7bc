// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the window configuration from TOML or YAML files and
// keeps a shared copy current while the file changes on disk.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/surface"
)

// maxFileSize bounds the configuration files Load accepts.
const maxFileSize = 1 << 20

// ErrFileType is returned for files that are neither TOML nor YAML.
var ErrFileType = errors.New("unsupported file type (want .toml, .yaml or .yml)")

// WindowConfig describes the window and its surface.
type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	Decorated bool   `toml:"decorated" yaml:"decorated"`
	Visible   bool   `toml:"visible" yaml:"visible"`

	// Supersample is the render scale F, finite and within
	// [1, surface.MaxSupersample].
	Supersample float64 `toml:"supersample" yaml:"supersample"`

	// Backend names a surface backend; empty selects automatically.
	Backend string `toml:"backend" yaml:"backend"`

	// PresentMode is fifo, fifo-relaxed, mailbox or immediate. Empty
	// follows Vsync.
	PresentMode string `toml:"present_mode" yaml:"present_mode"`

	ClearColor Color `toml:"clear_color" yaml:"clear_color"`

	// Vsync selects fifo (true) or immediate (false) when PresentMode is
	// empty.
	Vsync bool `toml:"vsync" yaml:"vsync"`
}

// Default returns the built-in configuration.
func Default() WindowConfig {
	return WindowConfig{
		Title:       "winloop",
		Width:       800,
		Height:      600,
		Resizable:   true,
		Decorated:   true,
		Visible:     true,
		Supersample: 1,
		ClearColor:  White,
		Vsync:       true,
	}
}

// Load reads path, decoding by extension over Default. Every failure is a
// *winloop.ConfigError carrying path.
func Load(path string) (WindowConfig, error) {
	cfg, err := load(path)
	if err != nil {
		return WindowConfig{}, &winloop.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

func load(path string) (WindowConfig, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return WindowConfig{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return WindowConfig{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return WindowConfig{}, err
	}
	if len(data) > maxFileSize {
		return WindowConfig{}, fmt.Errorf("file exceeds %d bytes", maxFileSize)
	}

	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return WindowConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return WindowConfig{}, err
	}
	return cfg, nil
}

type decodeFunc func(data []byte, cfg *WindowConfig) error

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	default:
		return nil, ErrFileType
	}
}

func decodeTOML(data []byte, cfg *WindowConfig) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

func decodeYAML(data []byte, cfg *WindowConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid field.
func (c WindowConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if math.IsNaN(c.Supersample) || c.Supersample < 1 || c.Supersample > surface.MaxSupersample {
		return fmt.Errorf("supersample %g outside [1, %d]", c.Supersample, surface.MaxSupersample)
	}
	if _, err := surface.ParsePresentMode(c.PresentMode); err != nil {
		return err
	}
	return nil
}

// PresentModeValue resolves PresentMode and Vsync to a present mode.
func (c WindowConfig) PresentModeValue() gputypes.PresentMode {
	if c.PresentMode == "" && !c.Vsync {
		return gputypes.PresentModeImmediate
	}
	m, err := surface.ParsePresentMode(c.PresentMode)
	if err != nil {
		return gputypes.PresentModeFifo
	}
	return m
}

// Attributes returns the native window attributes.
func (c WindowConfig) Attributes() platform.WindowAttributes {
	return platform.WindowAttributes{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		Resizable: c.Resizable,
		Decorated: c.Decorated,
		Visible:   c.Visible,
	}
}

// SurfaceOptions returns the options for the window's surface. The size
// is left zero so the surface follows the framebuffer.
func (c WindowConfig) SurfaceOptions() surface.Options {
	return surface.Options{
		Supersample: c.Supersample,
		Backend:     c.Backend,
		PresentMode: c.PresentModeValue(),
	}
}
