// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// JavaScript quoted string literals.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unesc maps single-letter escapes to their values.
var unesc = [256]byte{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// Unquote unquotes the JavaScript string literal quoted, which must
// begin and end with the same quote character, ' or ".
//
// A string containing an unpaired surrogate escape cannot be
// represented in UTF-8 and is reported as an error.
func Unquote(quoted string) (s string, err error) {
	if len(quoted) < 2 {
		return "", fmt.Errorf("string literal too short")
	}
	q := quoted[0]
	if (q != '"' && q != '\'') || quoted[len(quoted)-1] != q {
		return "", fmt.Errorf("string literal has invalid quotes")
	}
	quoted = quoted[1 : len(quoted)-1]

	if !strings.Contains(quoted, `\`) {
		return quoted, nil
	}

	var buf strings.Builder
	var pending rune = -1 // high surrogate awaiting its pair
	flush := func() error {
		if pending >= 0 {
			return fmt.Errorf("unpaired surrogate \\u%04x", pending)
		}
		return nil
	}
	for len(quoted) > 0 {
		i := strings.IndexByte(quoted, '\\')
		if i < 0 {
			i = len(quoted)
		}
		if i > 0 {
			if err := flush(); err != nil {
				return "", err
			}
			buf.WriteString(quoted[:i])
			quoted = quoted[i:]
			continue
		}
		if len(quoted) == 1 {
			return "", fmt.Errorf("truncated escape sequence")
		}

		c := quoted[1]
		switch {
		case c == '\n', strings.HasPrefix(quoted[1:], "\u2028"), strings.HasPrefix(quoted[1:], "\u2029"):
			// Line continuation.
			_, size := utf8.DecodeRuneInString(quoted[1:])
			quoted = quoted[1+size:]
			continue

		case c == '\r':
			quoted = quoted[2:]
			if strings.HasPrefix(quoted, "\n") {
				quoted = quoted[1:]
			}
			continue

		case c == 'u':
			r, n, err := unquoteU(quoted)
			if err != nil {
				return "", err
			}
			quoted = quoted[n:]
			if utf16.IsSurrogate(r) {
				if r < 0xDC00 {
					if err := flush(); err != nil {
						return "", err
					}
					pending = r
					continue
				}
				if pending < 0 {
					return "", fmt.Errorf("unpaired surrogate \\u%04x", r)
				}
				r = utf16.DecodeRune(pending, r)
				pending = -1
				buf.WriteRune(r)
				continue
			}
			if err := flush(); err != nil {
				return "", err
			}
			buf.WriteRune(r)
			continue
		}

		if err := flush(); err != nil {
			return "", err
		}
		switch {
		case unesc[c] != 0:
			buf.WriteByte(unesc[c])
			quoted = quoted[2:]

		case c == 'x':
			if len(quoted) < 4 {
				return "", fmt.Errorf("truncated escape sequence %s", quoted)
			}
			n, err := strconv.ParseUint(quoted[2:4], 16, 0)
			if err != nil {
				return "", fmt.Errorf("invalid escape sequence %s", quoted[:4])
			}
			buf.WriteRune(rune(n))
			quoted = quoted[4:]

		case '0' <= c && c <= '7':
			// \0 or a legacy octal escape of up to three digits.
			n := 1
			for n < 3 && 1+n < len(quoted) && '0' <= quoted[1+n] && quoted[1+n] <= '7' {
				n++
			}
			v, _ := strconv.ParseUint(quoted[1:1+n], 8, 0)
			if v > 0377 {
				n--
				v >>= 3
			}
			buf.WriteRune(rune(v))
			quoted = quoted[1+n:]

		default:
			// Identity escape, e.g. \' \" \\ or \q.
			r, size := utf8.DecodeRuneInString(quoted[1:])
			buf.WriteRune(r)
			quoted = quoted[1+size:]
		}
	}
	if err := flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// unquoteU decodes a \uXXXX or \u{X...} escape at the start of s.
func unquoteU(s string) (r rune, n int, err error) {
	if strings.HasPrefix(s, `\u{`) {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, fmt.Errorf("unterminated escape sequence %s", s)
		}
		v, err := strconv.ParseUint(s[3:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, fmt.Errorf("invalid escape sequence %s", s[:end+1])
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 6 {
		return 0, 0, fmt.Errorf("truncated escape sequence %s", s)
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid escape sequence %s", s[:6])
	}
	return rune(v), 6, nil
}

// Quote returns a JavaScript string literal for s using the quote
// character q, which must be ' or ".
func Quote(s string, q byte) string {
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte(q)
	for i, r := range s {
		switch r {
		case rune(q), '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\v':
			buf.WriteString(`\v`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&buf, `\u%04x`, r)
		case utf8.RuneError:
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				fmt.Fprintf(&buf, `\x%02x`, s[i])
				continue
			}
			buf.WriteRune(r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&buf, `\x%02x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte(q)
	return buf.String()
}

// QuoteAuto quotes s with whichever quote character needs fewer escapes,
// preferring pref on a tie.
func QuoteAuto(s string, pref byte) string {
	other := byte('"')
	if pref == '"' {
		other = '\''
	}
	if strings.Count(s, string(other)) < strings.Count(s, string(pref)) {
		return Quote(s, other)
	}
	return Quote(s, pref)
}
