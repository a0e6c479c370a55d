// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"strconv"
)

// sizeStats describes the size reduction of one input.
type sizeStats struct {
	Original, Minified int // in bytes
}

// Saving returns the reduction as a percentage of the original size.
func (s sizeStats) Saving() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Original-s.Minified) / float64(s.Original) * 100
}

func (s sizeStats) String() string {
	return fmt.Sprintf("%s -> %s (saved %.2f%%)", formatBytes(s.Original), formatBytes(s.Minified), s.Saving())
}

var units = []string{"Bytes", "KB", "MB", "GB"}

// formatBytes returns n in the largest binary unit not exceeding it,
// rounded to at most two decimal places, e.g. "1.5 KB".
func formatBytes(n int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := float64(n) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}
