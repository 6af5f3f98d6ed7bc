// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

// entry is a cached value linked into the recency list.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// recency orders entries from most recently used (front) to least
// recently used (back). It is not safe for concurrent use; Cache guards it.
type recency[K comparable, V any] struct {
	front, back *entry[K, V]
	n           int
}

func (r *recency[K, V]) len() int { return r.n }

// push links a new entry at the front.
func (r *recency[K, V]) push(key K, value V) *entry[K, V] {
	e := &entry[K, V]{key: key, value: value}
	r.linkFront(e)
	return e
}

// touch moves e to the front.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if r.front == e {
		return
	}
	r.unlink(e)
	r.linkFront(e)
}

// remove unlinks e.
func (r *recency[K, V]) remove(e *entry[K, V]) {
	r.unlink(e)
}

// pop unlinks and returns the least recently used entry, or nil.
func (r *recency[K, V]) pop() *entry[K, V] {
	e := r.back
	if e != nil {
		r.unlink(e)
	}
	return e
}

func (r *recency[K, V]) reset() {
	r.front, r.back, r.n = nil, nil, 0
}

func (r *recency[K, V]) linkFront(e *entry[K, V]) {
	e.prev, e.next = nil, r.front
	if r.front != nil {
		r.front.prev = e
	} else {
		r.back = e
	}
	r.front = e
	r.n++
}

func (r *recency[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		r.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		r.back = e.prev
	}
	e.prev, e.next = nil, nil
	r.n--
}
