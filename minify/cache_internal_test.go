// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePanic(t *testing.T) {
	start := make(chan struct{})
	minifyFunc = func(src []byte, opts Options) (*Result, error) {
		<-start
		panic("boom")
	}
	defer func() { minifyFunc = Minify }()

	c := NewCache()
	src := []byte(`x();`)
	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Minify(src, DefaultOptions())
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.EqualError(t, err, "minify: internal error: boom")
	}
	hits, misses := c.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, len(errs)-1, hits)
}
