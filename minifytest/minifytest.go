// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minifytest defines utilities for testing the minifier and
// its passes against golden files.
package minifytest // import "github.com/jsmini/jsmini/minifytest"

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// DataFile returns the effective filename of the specified
// test data resource. The function abstracts differences between
// 'go test', under which a test runs in its package directory,
// and tools that run tests from the root of the module.
var DataFile = func(pkgdir, filename string) string {
	if root := moduleRoot(); root != "" {
		return filepath.Join(root, pkgdir, filename)
	}
	return filepath.Join(pkgdir, filename)
}

// moduleRoot returns the nearest directory at or above the working
// directory that contains a go.mod file, or "" if there is none.
func moduleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Diff returns a unified diff of want and got, or "" if they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(ensureNewline(want)),
		B:        difflib.SplitLines(ensureNewline(got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// CheckGolden reports an error to r if got differs from want.
// The label identifies the case in the report.
func CheckGolden(r Reporter, label, want, got string) bool {
	if d := Diff(want, got); d != "" {
		r.Errorf("%s: output differs from golden:\n%s", label, d)
		return false
	}
	return true
}

func ensureNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
