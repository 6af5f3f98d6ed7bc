// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package workpool runs batches of independent CPU work, such as the row
// bands of a software resolve pass, on a fixed set of goroutines.
package workpool

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of workers with one queue each. An idle worker takes
// work from the other queues before it blocks.
//
// Pool is safe for concurrent use.
type Pool struct {
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New starts a pool of n workers. n <= 0 means GOMAXPROCS.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	depth := max(n*4, 8)

	p := &Pool{
		queues: make([]chan func(), n),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)
	p.wg.Add(n)
	for i := range n {
		go p.worker(i)
	}
	return p
}

var (
	sharedOnce sync.Once
	shared     *Pool
)

// Shared returns a process-wide pool sized to GOMAXPROCS. It is never
// closed.
func Shared() *Pool {
	sharedOnce.Do(func() { shared = New(0) })
	return shared
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i, q := range p.queues {
		if i == id {
			continue
		}
		select {
		case fn := <-q:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every function and returns when all have finished. Work is
// spread round-robin over the queues. On a closed pool, or for a single
// item, the work runs on the calling goroutine.
func (p *Pool) Run(work []func()) {
	if len(work) == 1 || !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		task := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%len(p.queues)] <- task:
		case <-p.done:
			task()
		}
	}
	wg.Wait()
}

// Close stops accepting work, finishes what is queued and stops the
// workers. It is safe to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return len(p.queues)
}

// Bands splits r into at most n horizontal bands of at least minRows rows
// each. The bands cover r exactly and are ordered top to bottom.
func Bands(r image.Rectangle, n, minRows int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	minRows = max(minRows, 1)
	n = max(min(n, r.Dy()/minRows), 1)

	bands := make([]image.Rectangle, 0, n)
	y := r.Min.Y
	for i := range n {
		// Spread the remainder over the first bands.
		h := r.Dy() / n
		if i < r.Dy()%n {
			h++
		}
		bands = append(bands, image.Rect(r.Min.X, y, r.Max.X, y+h))
		y += h
	}
	return bands
}
