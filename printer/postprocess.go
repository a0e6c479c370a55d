// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printer

import (
	"regexp"
	"strings"
)

// A substitution is one textual rewrite applied to printed output.
type substitution struct {
	re   *regexp.Regexp
	repl string
}

// substitutions are applied in order, each to the whole text.
var substitutions = []substitution{
	{regexp.MustCompile(`\btrue\b`), "!0"},
	{regexp.MustCompile(`\bfalse\b`), "!1"},
	{regexp.MustCompile(`\bundefined\b`), "void 0"},
	{regexp.MustCompile(`;(\s*[}\]])`), "$1"},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`\s*([{}();,])\s*`), "$1"},
}

// PostProcess applies the final textual compaction to printed code:
// it abbreviates true, false and undefined, drops semicolons before a
// closing brace or bracket, collapses whitespace runs, and removes
// whitespace around punctuation.
//
// The rewrites operate on raw text. They do not recognize string,
// template or regular expression literals, so the contents of those
// literals are rewritten too.
func PostProcess(code string) string {
	for _, s := range substitutions {
		code = s.re.ReplaceAllString(code, s.repl)
	}
	return strings.TrimSpace(code)
}
