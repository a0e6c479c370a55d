// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printer_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsmini/jsmini/printer"
	"github.com/jsmini/jsmini/syntax"
)

var pretty = &printer.Config{Indent: "  ", LineEnd: "\n", Semicolons: true}

func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := syntax.Parse("in.js", []byte(src), syntax.ParseOptions{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return f
}

func TestPrint(t *testing.T) {
	for _, test := range []struct {
		src, want string
	}{
		{`x = a + b * c;`, `x = a + b * c;`},
		{`x = (a + b) * c;`, `x = (a + b) * c;`},
		{`x = a - (b - c);`, `x = a - (b - c);`},
		{`x = (a - b) - c;`, `x = a - b - c;`},
		{`x = (a ** b) ** c;`, `x = (a ** b) ** c;`},
		{`x = a ** b ** c;`, `x = a ** b ** c;`},
		{`x = (-a) ** 2;`, `x = (-a) ** 2;`},
		{`x = a ?? (b || c);`, `x = a ?? (b || c);`},
		{`x = (a, b);`, `x = (a, b);`},
		{`x = a ? b : c ? d : e;`, `x = a ? b : c ? d : e;`},
		{`x = (a ? b : c) ? d : e;`, `x = (a ? b : c) ? d : e;`},
		{`x = - -y;`, `x = - -y;`},
		{`x = a + +b;`, `x = a + +b;`},
		{`x = !(a && b);`, `x = !(a && b);`},
		{`x = typeof y === "undefined";`, `x = typeof y === "undefined";`},
		{`({a: 1}).b;`, `({a: 1}.b);`},
		{`x = (1).toString();`, `x = (1).toString();`},
		{`new (f())();`, `new (f())();`},
		{`new a.b(c);`, `new a.b(c);`},
		{`x = a?.b?.[c]?.(d);`, `x = a?.b?.[c]?.(d);`},
		{`f = () => ({a: 1});`, `f = () => ({a: 1});`},
		{`f = async (a, ...b) => a;`, `f = async (a, ...b) => a;`},
		{"x = `a${b}c`;", "x = `a${b}c`;"},
		{"x = tag`a${b}`;", "x = tag`a${b}`;"},
		{`x = [a, , b, ,];`, `x = [a, , b, ,];`},
		{`x = /ab+c/gi;`, `x = /ab+c/gi;`},
		{`var {a, b: [c = 1], ...d} = e;`, `var {a, b: [c = 1], ...d} = e;`},
		{`for (var i = ("a" in b); i; ) ;`, `for (var i = ("a" in b); i;) ;`},
		{`for (const k in o) f(k);`, `for (const k in o) f(k);`},
		{`if (a) {
  b();
} else {
  c();
}`, `if (a) {
  b();
} else {
  c();
}`},
		{`class A extends B { static m() { return 1; } }`, `class A extends B {
  static m() {
    return 1;
  }
}`},
		{`switch (x) { case 1: a(); break; default: b(); }`, `switch (x) {
  case 1:
    a();
    break;
  default:
    b();
}`},
		{`try { a(); } catch (e) { b(e); } finally { c(); }`, `try {
  a();
} catch (e) {
  b(e);
} finally {
  c();
}`},
		{`outer: for (;;) { continue outer; }`, `outer: for (;;) {
  continue outer;
}`},
		{`import d, {a as b, c} from "m";`, `import d, {a as b, c} from "m";`},
		{`export {x as y};`, `export {x as y};`},
		{`export * from "m";`, `export * from "m";`},
		{`export const z = 1;`, `export const z = 1;`},
	} {
		got, err := printer.Print(parse(t, test.src), pretty)
		if err != nil {
			t.Errorf("print %q: %v", test.src, err)
			continue
		}
		if got != test.want {
			t.Errorf("print %q:\ngot  %s\nwant %s", test.src, got, test.want)
		}
	}
}

func TestPrintCompact(t *testing.T) {
	for _, test := range []struct {
		src, want string
	}{
		{`a(); b();`, `a();b()`},
		{`if (a) { b(); }`, `if (a) {b()}`},
		{`o = {get x() { return 1; }, y};`, `o = {get x() {return 1}, y}`},
		{`function f(a) { return a; }`, `function f(a) {return a}`},
	} {
		got, err := printer.Print(parse(t, test.src), nil)
		if err != nil {
			t.Errorf("print %q: %v", test.src, err)
			continue
		}
		if got != test.want {
			t.Errorf("print %q:\ngot  %s\nwant %s", test.src, got, test.want)
		}
	}
}

func TestPrintSynthesized(t *testing.T) {
	ident := func(name string) *syntax.Ident { return &syntax.Ident{Name: name} }
	num := func(f float64) *syntax.Literal { return &syntax.Literal{Token: syntax.NUMBER, Value: f} }
	str := func(s string) *syntax.Literal { return &syntax.Literal{Token: syntax.STRING, Value: s} }

	for _, test := range []struct {
		n      syntax.Node
		quotes string
		want   string
	}{
		{&syntax.BinaryExpr{X: ident("a"), Op: syntax.MINUS, Y: num(-5)}, "", `a - -5`},
		{&syntax.DotExpr{X: num(2.5), Name: ident("x")}, "", `(2.5).x`},
		{num(1e21), "", `1e+21`},
		{str(`it's`), "", `'it\'s'`},
		{str(`it's`), "double", `"it's"`},
		{str(`it's`), "auto", `"it's"`},
		{&syntax.Literal{Token: syntax.BOOL, Value: true}, "", `true`},
		{&syntax.Literal{Token: syntax.NULL}, "", `null`},
		// A nested if without else must not capture the outer else.
		{&syntax.IfStmt{
			Cond: ident("a"),
			Then: &syntax.IfStmt{Cond: ident("b"), Then: &syntax.ExprStmt{X: ident("c")}},
			Else: &syntax.ExprStmt{X: ident("d")},
		}, "", "if (a) {\n  if (b) c;\n} else d;"},
	} {
		cfg := *pretty
		cfg.Quotes = test.quotes
		got, err := printer.Print(test.n, &cfg)
		if err != nil {
			t.Errorf("print %T: %v", test.n, err)
			continue
		}
		if got != test.want {
			t.Errorf("print %T: got %s, want %s", test.n, got, test.want)
		}
	}
}

func TestPrintError(t *testing.T) {
	_, err := printer.Print(&syntax.IfStmt{}, nil)
	var perr *printer.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Print(incomplete if) = %v, want *printer.Error", err)
	}
}

// Printing a parsed program and parsing the result again yields the
// same tree, up to positions.
func TestRoundTrip(t *testing.T) {
	const src = `
import {a} from "lib";
const f = async function* g(x = 1, {y, z: [w]} = {}) {
  for await (const v of x) yield* v;
};
class C {
  #p = 1;
  static {
    this.q = [1, , 2];
  }
  get r() {
    return this.#p ?? -1;
  }
}
label: do {
  if (a) break label;
  else if (b) continue;
} while (i++ < 10 && !done);
export default (a, b) => a in b ? {a} : void 0;
`
	opts := syntax.ParseOptions{EcmaVersion: 2022}
	f1, err := syntax.Parse("a.js", []byte(src), opts)
	if err != nil {
		t.Fatal(err)
	}
	out1, err := printer.Print(f1, pretty)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := syntax.Parse("b.js", []byte(out1), opts)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, out1)
	}
	out2, err := printer.Print(f2, pretty)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(out1, out2); diff != "" {
		t.Errorf("print is not stable (-first +second):\n%s", diff)
	}
}

func TestPostProcess(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"if (a) {\n  b();\n}", "if(a){b()}"},
		{"x = true, y = false, z = undefined;", "x = !0,y = !1,z = void 0;"},
		{"f(a, [b;]);", "f(a,[b]);"},
		{"  a  \n\n  b  ", "a b"},
		{"trueish = falsey;", "trueish = falsey;"},
		// Literal contents are rewritten too.
		{"s = 'true story';", "s = '!0 story';"},
	} {
		if got := printer.PostProcess(test.in); got != test.want {
			t.Errorf("PostProcess(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
