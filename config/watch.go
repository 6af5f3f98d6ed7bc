// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/state"
)

// Watch reloads path whenever it is written or recreated and publishes
// every valid configuration into cell. Invalid files are logged and
// skipped; cell keeps the last valid value.
//
// The parent directory is watched so editors that replace the file on save
// are followed. Watch blocks until ctx is done and is meant to run on its
// own goroutine. The ready channel, if non-nil, is closed once the
// watcher is installed. onReload, if non-nil, is called on the watching
// goroutine after each publish.
func Watch(ctx context.Context, path string, cell *state.Cell[WindowConfig], ready chan<- struct{}, onReload func(WindowConfig)) error {
	if _, err := decoderFor(path); err != nil {
		return &winloop.ConfigError{Path: path, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &winloop.ConfigError{Path: path, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return &winloop.ConfigError{Path: path, Err: err}
	}
	if ready != nil {
		close(ready)
	}
	log := winloop.Logger().With("path", path)
	log.Debug("config: watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Warn("config: reload failed", "err", err)
				continue
			}
			snap := cell.Write(cfg)
			log.Info("config: reloaded", "generation", snap.Generation())
			if onReload != nil {
				onReload(cfg)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config: watcher error", "err", err)
		}
	}
}
