// Package repl provides a read/minify/print loop for JavaScript.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// The REPL reads lines until the brackets of the input are balanced,
// then minifies the accumulated text as a program and prints the
// result. Control-C discards a partially read program; Control-D exits.
package repl // import "github.com/jsmini/jsmini/repl"

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jsmini/jsmini/minify"
)

// REPL executes a read, minify, print loop with the given options.
//
// Programs are minified through a cache, so entering the same
// program twice reuses the earlier result.
func REPL(opts minify.Options) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()

	cache := minify.NewCache()
	for {
		if err := rep(rl, cache, opts); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, minifies, and prints one program.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Minification errors are printed.
func rep(rl *readline.Instance, cache *minify.Cache, opts minify.Options) error {
	var buf strings.Builder

	// readline returns EOF, ErrInterrupted, or a line.
	rl.SetPrompt(">>> ")
	for {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				break // minify what we have
			}
			return err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if Balanced(buf.String()) {
			break
		}
	}

	src := buf.String()
	if strings.TrimSpace(src) == "" {
		return nil
	}
	res, err := cache.Minify([]byte(src), opts)
	if err != nil {
		PrintError(err)
		return nil
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	fmt.Println(res.Code)
	return nil
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}

// Balanced reports whether src is a plausible complete program: every
// opening bracket outside string, template and comment text is closed,
// and no string, template or block comment is left open.
// An excess of closing brackets counts as balanced so that the
// parser can report it.
func Balanced(src string) bool {
	depth := 0
	var quote byte // the open string or template delimiter, if any
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case '\n':
				if quote != '`' {
					quote = 0 // unterminated; let the parser report it
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				j := strings.IndexByte(src[i:], '\n')
				if j < 0 {
					return depth <= 0
				}
				i += j
			} else if i+1 < len(src) && src[i+1] == '*' {
				j := strings.Index(src[i+2:], "*/")
				if j < 0 {
					return false
				}
				i += j + 3
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return quote == 0 && depth <= 0
}
