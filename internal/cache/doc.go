// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic LRU cache with a soft size limit.
//
// The render package keeps decoded images in it so that widgets loading
// the same file share one pixel buffer, and with it one GPU texture.
//
//	c := cache.New[string, *image.RGBA](32)
//	img, err := c.GetOrLoad(path, func() (*image.RGBA, error) {
//		return decode(path)
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
