// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

// This file defines the JavaScript type conversions used by folding.
//
// A value is represented by the Go type of a literal's Value field:
// float64 for a Number, string for a String, bool for a Boolean,
// and nil for null. BigInt values (*big.Int) are never folded.

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/jsmini/jsmini/syntax"
)

// ToBoolean returns the truth value of v.
func ToBoolean(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	case *big.Int:
		return v.Sign() != 0
	}
	return true
}

// ToNumber returns the numeric value of v.
func ToNumber(v interface{}) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		return v
	case string:
		return StringToNumber(v)
	}
	return math.NaN()
}

// ToString returns the string value of v.
func ToString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return syntax.FormatNumber(v)
	case string:
		return v
	}
	return ""
}

// decimal matches the StrDecimalLiteral production, without Infinity.
var decimal = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// StringToNumber converts a string to a number the way the Number
// function does: surrounding white space is ignored, the empty string
// is zero, and text that is not a numeric literal is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(+1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			v, ok := new(big.Int).SetString(s[2:], base)
			if !ok || strings.ContainsAny(s[2:], "+-_") {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(v).Float64()
			return f
		}
	}
	if !decimal.MatchString(s) {
		return math.NaN()
	}
	f, _ := strconv.ParseFloat(s, 64) // an out-of-range literal is ±Infinity
	return f
}

// isSpace reports whether r is JavaScript white space or a line
// terminator. Unlike unicode.IsSpace, it excludes U+0085 (NEL).
func isSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\n', '\r', '\u00A0', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// ToInt32 converts f to a signed 32-bit integer by truncation modulo 2^32.
func ToInt32(f float64) int32 {
	return int32(ToUint32(f))
}

// ToUint32 converts f to an unsigned 32-bit integer by truncation modulo 2^32.
func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return uint32(f)
}

// compareStrings compares x and y by UTF-16 code units.
func compareStrings(x, y string) int {
	a, b := utf16.Encode([]rune(x)), utf16.Encode([]rune(y))
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return +1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return +1
	}
	return 0
}

// strictEquals implements the === operator.
func strictEquals(x, y interface{}) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool:
		y, ok := y.(bool)
		return ok && x == y
	case float64:
		y, ok := y.(float64)
		return ok && x == y
	case string:
		y, ok := y.(string)
		return ok && x == y
	}
	return false
}

// looseEquals implements the == operator.
func looseEquals(x, y interface{}) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch xv := x.(type) {
	case bool:
		return looseEquals(ToNumber(xv), y)
	case float64:
		switch y.(type) {
		case bool, string:
			return xv == ToNumber(y)
		}
	case string:
		switch y.(type) {
		case bool, float64:
			return ToNumber(xv) == ToNumber(y)
		}
	}
	return strictEquals(x, y)
}

// lessThan implements the abstract relational comparison x < y.
// The ok result is false if either operand converts to NaN.
func lessThan(x, y interface{}) (less, ok bool) {
	if xs, isStr := x.(string); isStr {
		if ys, isStr := y.(string); isStr {
			return compareStrings(xs, ys) < 0, true
		}
	}
	a, b := ToNumber(x), ToNumber(y)
	if math.IsNaN(a) || math.IsNaN(b) {
		return false, false
	}
	return a < b, true
}

// pow implements the ** operator, which differs from math.Pow
// when the exponent is NaN and when |x| is 1 and y is infinite.
func pow(x, y float64) float64 {
	if math.IsNaN(y) || (math.Abs(x) == 1 && math.IsInf(y, 0)) {
		return math.NaN()
	}
	return math.Pow(x, y)
}
