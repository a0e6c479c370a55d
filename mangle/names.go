// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mangle

const (
	letters   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alnum     = letters + "0123456789"
	firstBase = len(letters)
	restBase  = len(alnum)
)

// Candidate returns the nth name of the candidate sequence, counting
// from zero. The sequence holds the single letters a-z and A-Z in order,
// then every two-character name, then every three-character name, and
// so on. The first character of a name is a letter and the others are
// letters or digits; names of one length are ordered as numbers whose
// digits are the positions of their characters in those alphabets.
//
// Candidate does not exclude keywords.
func Candidate(n int) string {
	if n < firstBase {
		return letters[n : n+1]
	}
	n -= firstBase

	// Find the length of the name and its index among names of that length.
	size := 2
	count := firstBase * restBase
	for n >= count {
		n -= count
		count *= restBase
		size++
	}

	buf := make([]byte, size)
	for i := size - 1; i > 0; i-- {
		buf[i] = alnum[n%restBase]
		n /= restBase
	}
	buf[0] = letters[n]
	return string(buf)
}

// A generator enumerates candidate names, skipping those rejected
// by its taken function.
type generator struct {
	next  int
	taken func(name string) bool
}

func (g *generator) reset() { g.next = 0 }

// name returns the next acceptable candidate.
func (g *generator) name() string {
	for {
		s := Candidate(g.next)
		g.next++
		if !isKeyword(s) && !g.taken(s) {
			return s
		}
	}
}

// keywords are the reserved words of JavaScript, in strict and module
// code, and the global names that must never be shadowed.
var keywords = map[string]bool{
	"arguments":  true,
	"await":      true,
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"eval":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"implements": true,
	"import":     true,
	"in":         true,
	"Infinity":   true,
	"instanceof": true,
	"interface":  true,
	"let":        true,
	"NaN":        true,
	"new":        true,
	"null":       true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"return":     true,
	"static":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"undefined":  true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
	"yield":      true,
}

func isKeyword(s string) bool { return keywords[s] }
