// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsmini/jsmini/internal/chunkedfile"
	"github.com/jsmini/jsmini/minify"
	"github.com/jsmini/jsmini/minifytest"
	"github.com/jsmini/jsmini/printer"
	"github.com/jsmini/jsmini/resolve"
	"github.com/jsmini/jsmini/syntax"
)

func mangled() minify.Options {
	opts := minify.DefaultOptions()
	opts.Mangle = &minify.MangleOptions{Enabled: true}
	return opts
}

func TestConstantFolding(t *testing.T) {
	res, err := minify.Minify([]byte(`const result = 2 + 3 * 4;`), minify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "const result = 14", res.Code)
	assert.NotContains(t, res.Code, "+")
	assert.NotContains(t, res.Code, "*")
	assert.Empty(t, res.Warnings)
}

func TestMangleLocals(t *testing.T) {
	const src = `function testFunction(parameter) { const localVariable = parameter * 2; return localVariable; }`
	res, err := minify.Minify([]byte(src), mangled())
	require.NoError(t, err)
	assert.Equal(t, "function testFunction(a){const b = a * 2;return b}", res.Code)

	const expr = `const fn = function testFunction(parameter) { return parameter; };`
	res, err = minify.Minify([]byte(expr), mangled())
	require.NoError(t, err)
	assert.Equal(t, "const fn = function b(a){return a}", res.Code)

	opts := mangled()
	opts.Mangle.KeepFunctionNames = true
	res, err = minify.Minify([]byte(expr), opts)
	require.NoError(t, err)
	assert.Equal(t, "const fn = function testFunction(a){return a}", res.Code)
}

func TestMangleKeepsGlobals(t *testing.T) {
	res, err := minify.Minify([]byte(`const globalVariable = 123;`), mangled())
	require.NoError(t, err)
	assert.Contains(t, res.Code, "globalVariable")
}

func TestEmptyInput(t *testing.T) {
	res, err := minify.Minify(nil, mangled())
	require.NoError(t, err)
	assert.Equal(t, "", res.Code)
	assert.NotNil(t, res.Warnings)
	assert.Empty(t, res.Warnings)
	assert.Nil(t, res.Map)
}

func TestSyntaxError(t *testing.T) {
	_, err := minify.Minify([]byte(`const a = ;`), minify.DefaultOptions())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "minify: "), err.Error())
	var serr syntax.Error
	require.True(t, errors.As(err, &serr), "got %T, want a syntax.Error", errors.Unwrap(err))
	assert.Equal(t, int32(1), serr.Pos.Line)
}

func TestDeadBranch(t *testing.T) {
	res, err := minify.Minify([]byte(`if (false) { console.log('x'); } console.log('y');`), minify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "console.log('y')", res.Code)
	assert.NotContains(t, res.Code, "if")
}

func TestDeadBranchDeclarations(t *testing.T) {
	for _, test := range []struct {
		src  string
		opts minify.Options
		want []string // substrings of the output
		drop []string // strings absent from the output
	}{
		// A statement list gets the declarations in place of the branch.
		{`function f() { if (false) { var hoisted = 1; } return hoisted; }`, mangled(),
			[]string{"var a;return a"}, []string{"if", "hoisted", "1"}},
		{`function f() { if (true) { g(); } else { var { left, right: [r] } = o; } return left + r; }`, minify.DefaultOptions(),
			[]string{"var left,r;g();return left + r"}, []string{"else", "right"}},
		// A single statement slot gets the declarations alone or in a block.
		{`while (x) if (0) var w = 1;`, minify.DefaultOptions(),
			[]string{"var w"}, []string{"if", "1"}},
		{`for (;;) if (1) z(); else var v = 2;`, minify.DefaultOptions(),
			[]string{"var v;z()"}, []string{"else", "2"}},
		// Function and lexical declarations are block scoped and go with the branch.
		{`if (false) { function g() { var inner; } let l; } h();`, minify.DefaultOptions(),
			[]string{"h()"}, []string{"function", "inner", "var", "let"}},
	} {
		res, err := minify.Minify([]byte(test.src), test.opts)
		require.NoError(t, err, test.src)
		for _, w := range test.want {
			assert.Contains(t, res.Code, w, test.src)
		}
		for _, d := range test.drop {
			assert.NotContains(t, res.Code, d, test.src)
		}
	}
}

func TestCatchParamRedeclared(t *testing.T) {
	const src = `function f() { try { x(); } catch (longErr) { var longErr = 3; } return longErr; }`
	res, err := minify.Minify([]byte(src), mangled())
	require.NoError(t, err)
	assert.Contains(t, res.Code, "catch(longErr){var longErr = 3}")
	assert.Contains(t, res.Code, "return longErr")
}

func TestNoCompress(t *testing.T) {
	opts := minify.DefaultOptions()
	opts.Compress = nil
	res, err := minify.Minify([]byte(`const ok = 2 + 3 * 4 === 14;`), opts)
	require.NoError(t, err)
	// The literal shorthand is part of printing and always applies.
	assert.Equal(t, "const ok = 2 + 3 * 4 === 14", res.Code)

	res, err = minify.Minify([]byte(`let t = true;`), opts)
	require.NoError(t, err)
	assert.Equal(t, "let t = !0", res.Code)
}

func TestWarnings(t *testing.T) {
	res, err := minify.Minify([]byte("x = 1 / 0;\ny = 2 * 3;"), minify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"1:7: cannot fold /: division by zero"}, res.Warnings)
	assert.Equal(t, "x = 1 / 0;y = 6", res.Code)
}

func TestScopeError(t *testing.T) {
	_, err := minify.Minify([]byte("let a;\nconst a = 1;"), minify.DefaultOptions())
	var list resolve.ErrorList
	require.True(t, errors.As(err, &list), "got %v, want a resolve.ErrorList", err)
	require.Len(t, list, 1)
	assert.Equal(t, int32(2), list[0].Pos.Line)
}

func TestScriptMode(t *testing.T) {
	const src = `import x from "m"; x();`
	opts := minify.DefaultOptions()
	res, err := minify.Minify([]byte(src), opts)
	require.NoError(t, err)
	assert.Equal(t, `import x from "m";x()`, res.Code)

	opts.SourceType = "script"
	_, err = minify.Minify([]byte(src), opts)
	var serr syntax.Error
	assert.True(t, errors.As(err, &serr), "got %v, want a syntax.Error", err)

	// with is sloppy-mode only; names it can see keep their spelling.
	opts = mangled()
	opts.SourceType = "script"
	res, err = minify.Minify([]byte(`function f(longName) { with (o) { longName(); } }`), opts)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "f(longName)")
	assert.Contains(t, res.Code, "with(o)")
	opts.SourceType = "module"
	_, err = minify.Minify([]byte(`with (o) {}`), opts)
	assert.True(t, errors.As(err, &serr), "got %v, want a syntax.Error", err)

	opts.SourceType = "commonjs"
	_, err = minify.Minify([]byte(`x();`), opts)
	assert.EqualError(t, err, `minify: invalid source type "commonjs"`)
}

func TestOutputQuotes(t *testing.T) {
	opts := minify.DefaultOptions()
	opts.Output = printer.Config{Quotes: "double"}
	res, err := minify.Minify([]byte(`s = "a" + 1;`), opts)
	require.NoError(t, err)
	assert.Equal(t, `s = "a1"`, res.Code)
}

func TestSourceMap(t *testing.T) {
	opts := mangled()
	opts.SourceMap = true
	opts.Filename = "app.js"
	const src = `function f(parameter) { const localVariable = parameter; return localVariable; }`
	res, err := minify.Minify([]byte(src), opts)
	require.NoError(t, err)
	require.NotNil(t, res.Map)

	data, err := res.MapJSON()
	require.NoError(t, err)
	var m struct {
		Version  int      `json:"version"`
		Sources  []string `json:"sources"`
		Names    []string `json:"names"`
		Mappings string   `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 3, m.Version)
	assert.Equal(t, []string{"app.js"}, m.Sources)
	assert.Equal(t, []string{"parameter", "localVariable"}, m.Names)
	assert.Equal(t, "", m.Mappings)

	res, err = minify.Minify([]byte(src), minify.DefaultOptions())
	require.NoError(t, err)
	data, err = res.MapJSON()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache(t *testing.T) {
	c := minify.NewCache()
	src := []byte(`const result = 2 + 3 * 4;`)

	var wg sync.WaitGroup
	results := make([]*minify.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.Minify(src, minify.DefaultOptions())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()
	for _, res := range results {
		assert.Same(t, results[0], res)
	}
	hits, misses := c.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, len(results)-1, hits)

	// Different options are a different entry.
	res, err := c.Minify(src, mangled())
	require.NoError(t, err)
	assert.Equal(t, "const result = 14", res.Code)
	assert.Equal(t, 2, c.Len())

	// Errors are cached too.
	_, err1 := c.Minify([]byte(`const a = ;`), minify.DefaultOptions())
	_, err2 := c.Minify([]byte(`const a = ;`), minify.DefaultOptions())
	assert.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 3, c.Len())
}

// options returns the options selected by a chunk of testdata/minify.js.
func options(chunk string) minify.Options {
	opts := minify.DefaultOptions()
	if strings.Contains(chunk, "option:mangle") {
		opts.Mangle = &minify.MangleOptions{Enabled: true}
	}
	if strings.Contains(chunk, "option:drop") {
		opts.Compress.DropConsole = true
		opts.Compress.DropDebugger = true
	}
	if strings.Contains(chunk, "option:nocompress") {
		opts.Compress = nil
	}
	return opts
}

func TestMinifyFile(t *testing.T) {
	filename := minifytest.DataFile("minify", "testdata/minify.js")
	for _, chunk := range chunkedfile.Read(filename, t) {
		res, err := minify.Minify([]byte(chunk.Source), options(chunk.Source))
		var (
			serr syntax.Error
			list resolve.ErrorList
		)
		switch {
		case errors.As(err, &serr):
			chunk.GotError(int(serr.Pos.Line), serr.Msg)
		case errors.As(err, &list):
			for _, e := range list {
				chunk.GotError(int(e.Pos.Line), e.Msg)
			}
		case err != nil:
			t.Errorf("%s:%d: %v", filename, chunk.Line, err)
		case chunk.HasWant:
			label := fmt.Sprintf("%s:%d", filename, chunk.Line)
			minifytest.CheckGolden(t, label, strings.TrimSpace(chunk.Want), res.Code)
		}
		chunk.Done()
	}
}
