// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
)

// BackendFactory opens a Backend presenting to win.
type BackendFactory func(win platform.NativeWindow, opts Options) (Backend, error)

// RegistryEntry describes a registered backend.
type RegistryEntry struct {
	Name string

	// Priority orders automatic selection, highest first. The built-in
	// backends use 100 for wgpu and 10 for software.
	Priority int

	Factory BackendFactory

	// Available reports whether the backend can run on this system
	// without opening it.
	Available func() bool
}

// Registry maps backend names to factories. The zero value is ready to
// use.
//
//	func init() {
//	    surface.Register("vulkan", 100, openVulkan, vulkanAvailable)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry
}

// NewRegistry returns an empty registry. Most code uses the package-level
// functions, which share one registry with the built-in backends.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]RegistryEntry)}
}

var defaultRegistry = NewRegistry()

// Register adds a backend to the default registry. See Registry.Register.
func Register(name string, priority int, factory BackendFactory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// List returns the names in the default registry, highest priority first.
func List() []string { return defaultRegistry.List() }

// Available is List restricted to available backends.
func Available() []string { return defaultRegistry.Available() }

// Get returns the default registry's entry for name.
func Get(name string) (*RegistryEntry, bool) { return defaultRegistry.Get(name) }

// Open opens a backend from the default registry. See Registry.Open.
func Open(name string, win platform.NativeWindow, opts Options) (Backend, error) {
	return defaultRegistry.Open(name, win, opts)
}

// Register adds or replaces the backend called name. A nil available
// means always available.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]RegistryEntry)
	}
	r.entries[name] = RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
}

// Unregister removes the backend called name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns every registered name, highest priority first and then by
// name.
func (r *Registry) List() []string {
	return names(r.candidates(false))
}

// Available is List restricted to backends whose Available reports true.
func (r *Registry) Available() []string {
	return names(r.candidates(true))
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return &e, true
}

// Open opens the backend called name. An empty name tries the available
// backends in priority order and returns the first that opens, or every
// failure joined.
func (r *Registry) Open(name string, win platform.NativeWindow, opts Options) (Backend, error) {
	if name != "" {
		e, ok := r.Get(name)
		if !ok {
			return nil, &BackendNotFoundError{Name: name}
		}
		return open(*e, win, opts)
	}

	candidates := r.candidates(true)
	if len(candidates) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var errs []error
	for _, e := range candidates {
		b, err := open(e, win, opts)
		if err == nil {
			return b, nil
		}
		winloop.Logger().Log(context.Background(), fallbackLevel(win),
			"surface: backend failed, trying next", "backend", e.Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", e.Name, err))
	}
	return nil, errors.Join(errs...)
}

// fallbackLevel is Warn for windows with native handles and Debug
// otherwise.
func fallbackLevel(win platform.NativeWindow) slog.Level {
	if win == nil {
		return slog.LevelDebug
	}
	if _, err := win.NativeHandles(); err != nil {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func open(e RegistryEntry, win platform.NativeWindow, opts Options) (Backend, error) {
	if !e.Available() {
		return nil, &BackendUnavailableError{Name: e.Name}
	}
	b, err := e.Factory(win, opts)
	if err != nil {
		return nil, err
	}
	winloop.Logger().Info("surface: backend selected", "backend", e.Name, "priority", e.Priority)
	return b, nil
}

// candidates snapshots the entries in selection order.
func (r *Registry) candidates(onlyAvailable bool) []RegistryEntry {
	r.mu.RLock()
	out := make([]RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	if onlyAvailable {
		out = slices.DeleteFunc(out, func(e RegistryEntry) bool { return !e.Available() })
	}
	slices.SortFunc(out, func(a, b RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func names(entries []RegistryEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// ErrNoBackendAvailable is returned by Open when no registered backend is
// available.
var ErrNoBackendAvailable = fmt.Errorf("%w: surface: no backend available", winloop.ErrInit)

// BackendNotFoundError reports an unregistered backend name. It wraps
// winloop.ErrInit.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

func (e *BackendNotFoundError) Unwrap() error { return winloop.ErrInit }

// BackendUnavailableError reports a registered backend that cannot run on
// this system. It wraps winloop.ErrInit.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

func (e *BackendUnavailableError) Unwrap() error { return winloop.ErrInit }

func init() {
	Register("wgpu", 100, openWGPU, wgpuAvailable)
	Register("software", 10, func(_ platform.NativeWindow, opts Options) (Backend, error) {
		return NewSoftwareBackend(opts), nil
	}, nil)
}
