// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package state provides a single-slot publish/subscribe cell for immutable
// application snapshots shared between a producer goroutine and the render
// loop.
//
// Readers never block: Read is a single atomic pointer load. Writers are
// serialized so that generations grow strictly, but the critical section
// covers only the pointer swap. No GPU or I/O call runs while it is held.
package state

import (
	"sync"
	"sync/atomic"
)

// Snapshot is an immutable, published value of type S.
//
// A Snapshot is never modified after publication. If S contains pointers,
// slices or maps, the producer must not mutate them after Write.
type Snapshot[S any] struct {
	value S
	gen   uint64
}

// Value returns the snapshot's value.
func (s *Snapshot[S]) Value() S {
	return s.value
}

// Generation returns the publication counter of this snapshot.
// The initial value has generation 1 and every write adds one.
func (s *Snapshot[S]) Generation() uint64 {
	return s.gen
}

// Cell holds the current Snapshot of S.
//
// The zero Cell is not usable; create one with New.
type Cell[S any] struct {
	cur atomic.Pointer[Snapshot[S]]
	mu  sync.Mutex // serializes writers
}

// New creates a cell holding initial as generation 1.
func New[S any](initial S) *Cell[S] {
	c := &Cell[S]{}
	c.cur.Store(&Snapshot[S]{value: initial, gen: 1})
	return c
}

// Read returns the current snapshot. It never blocks on writers.
func (c *Cell[S]) Read() *Snapshot[S] {
	return c.cur.Load()
}

// Load is shorthand for c.Read().Value().
func (c *Cell[S]) Load() S {
	return c.cur.Load().value
}

// Write publishes v as the new snapshot and returns it.
func (c *Cell[S]) Write(v S) *Snapshot[S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := &Snapshot[S]{value: v, gen: c.cur.Load().gen + 1}
	c.cur.Store(next)
	return next
}

// Update derives the next snapshot from the current one. fn runs with the
// writer lock held, so it must be short and must not block; concurrent
// writers wait for it.
func (c *Cell[S]) Update(fn func(S) S) *Snapshot[S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.cur.Load()
	next := &Snapshot[S]{value: fn(prev.value), gen: prev.gen + 1}
	c.cur.Store(next)
	return next
}
