// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "testing"

func TestFormatBytes(t *testing.T) {
	for _, test := range []struct {
		n    int
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1100, "1.07 KB"},
		{5 << 20, "5 MB"},
		{3 << 30, "3 GB"},
		{2048 << 30, "2048 GB"},
	} {
		if got := formatBytes(test.n); got != test.want {
			t.Errorf("formatBytes(%d) = %q, want %q", test.n, got, test.want)
		}
	}
}

func TestSizeStats(t *testing.T) {
	s := sizeStats{Original: 2048, Minified: 512}
	if got, want := s.String(), "2 KB -> 512 Bytes (saved 75.00%)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (sizeStats{}).Saving(); got != 0 {
		t.Errorf("Saving of empty input = %v, want 0", got)
	}
}
