// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
)

// A Cache memoizes Minify by content: a program minified twice with
// equal options is processed once. It is safe for concurrent use.
//
// Results are shared between callers and must not be modified.
type Cache struct {
	mu           sync.Mutex
	entries      map[[32]byte]*entry
	hits, misses int
}

type entry struct {
	ready chan struct{} // closed when res and err are set
	res   *Result
	err   error
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[[32]byte]*entry)}
}

// Minify is like the package-level Minify but consults the cache first.
// Concurrent requests for the same key wait for a single computation.
func (c *Cache) Minify(src []byte, opts Options) (*Result, error) {
	key := cacheKey(src, opts)

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.hits++
		c.mu.Unlock()
		<-e.ready
		return e.res, e.err
	}
	e = &entry{ready: make(chan struct{})}
	c.entries[key] = e
	c.misses++
	c.mu.Unlock()

	c.compute(e, src, opts)
	return e.res, e.err
}

// minifyFunc is the computation behind the cache.
var minifyFunc = Minify

// compute fills in e and releases its waiters, even if minification
// panics.
func (c *Cache) compute(e *entry, src []byte, opts Options) {
	defer close(e.ready)
	defer func() {
		if r := recover(); r != nil {
			e.res, e.err = nil, fmt.Errorf("minify: internal error: %v", r)
		}
	}()
	e.res, e.err = minifyFunc(src, opts)
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the BLAKE3 digest of the source and a canonical
// rendering of every option that affects the result.
func cacheKey(src []byte, opts Options) [32]byte {
	var buf strings.Builder
	buf.Write(src)
	buf.WriteByte(0)
	if c := opts.Compress; c != nil {
		fmt.Fprintf(&buf, "compress:%t,%t,%t,%t,%t;",
			c.ConstantFolding, c.DeadCodeElimination, c.BooleanOptimization,
			c.DropConsole, c.DropDebugger)
	}
	if m := opts.Mangle; m != nil && m.Enabled {
		fmt.Fprintf(&buf, "mangle:%q,%t,%t;", m.ReservedNames, m.KeepClassNames, m.KeepFunctionNames)
	}
	o := opts.Output
	fmt.Fprintf(&buf, "output:%q,%q,%t,%q,%t;", o.Indent, o.LineEnd, o.Semicolons, o.Quotes, o.Comments)
	fmt.Fprintf(&buf, "map:%t;ecma:%d;type:%q;file:%q", opts.SourceMap, opts.Ecma, opts.SourceType, opts.Filename)
	return blake3.Sum256([]byte(buf.String()))
}
