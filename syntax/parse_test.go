// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jsmini/jsmini/internal/chunkedfile"
	"github.com/jsmini/jsmini/syntax"
)

func parseExpr(t *testing.T, src string) syntax.Expr {
	t.Helper()
	f, err := syntax.Parse("expr.js", []byte(src), syntax.ParseOptions{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if len(f.Stmts) != 1 {
		t.Fatalf("parse %q: got %d statements", src, len(f.Stmts))
	}
	stmt, ok := f.Stmts[0].(*syntax.ExprStmt)
	if !ok {
		t.Fatalf("parse %q: got %T, want expression statement", src, f.Stmts[0])
	}
	return stmt.X
}

func TestExprParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`f(1)`,
			`(CallExpr Fn=f Args=(1))`},
		{`x + 1`,
			`(BinaryExpr X=x Op=+ Y=1)`},
		{`x + y * z`,
			`(BinaryExpr X=x Op=+ Y=(BinaryExpr X=y Op=* Y=z))`},
		{`x % y - z`,
			`(BinaryExpr X=(BinaryExpr X=x Op=% Y=y) Op=- Y=z)`},
		{`a.b[c]`,
			`(IndexExpr X=(DotExpr X=a Name=b) Y=c)`},
		{`x.f()`,
			`(CallExpr Fn=(DotExpr X=x Name=f))`},
		{`x = 1`,
			`(AssignExpr X=x Op== Y=1)`},
		{`x += 'a'`,
			`(AssignExpr X=x Op=+= Y='a')`},
		{`a ? b : c`,
			`(CondExpr Cond=a True=b False=c)`},
		{`a ?? b`,
			`(BinaryExpr X=a Op=?? Y=b)`},
		{`a && b || c`,
			`(BinaryExpr X=(BinaryExpr X=a Op=&& Y=b) Op=|| Y=c)`},
		{`[1, , 2]`,
			`(ArrayExpr Elems=(1 nil 2))`},
		{`-x`,
			`(UnaryExpr Op=- X=x)`},
		{`typeof x`,
			`(UnaryExpr Op=typeof X=x)`},
		{`x++`,
			`(UpdateExpr Op=++ X=x)`},
		{`--x`,
			`(UpdateExpr Op=-- Prefix X=x)`},
		{`new Foo(1)`,
			`(NewExpr Fn=Foo Args=(1))`},
		{`a, b, c`,
			`(SeqExpr List=(a b c))`},
		{`(x) => x`,
			`(ArrowFunc Params=(x) Expr=x)`},
		{`({a: 1, b})`,
			`(ObjectExpr Props=((Property Key=a Value=1) (Property Key=b Value=b Shorthand)))`},
		{`(1 + 2) * 3`,
			`(BinaryExpr X=(BinaryExpr X=1 Op=+ Y=2) Op=* Y=3)`},
		{`"a" + 'b'`,
			`(BinaryExpr X="a" Op=+ Y='b')`},
		{`true === null`,
			`(BinaryExpr X=true Op==== Y=null)`},
		{`0x10n`,
			`0x10n`},
	} {
		got := treeString(parseExpr(t, test.input))
		if test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestStmtParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`var x = 1, y;`,
			`(VarDecl Token=var List=((VarDeclarator Name=x Init=1) (VarDeclarator Name=y)))`},
		{`let [a, b] = c;`,
			`(VarDecl Token=let List=((VarDeclarator Name=(ArrayPattern Elems=(a b)) Init=c)))`},
		{`if (a) b(); else c();`,
			`(IfStmt Cond=a Then=(ExprStmt X=(CallExpr Fn=b)) Else=(ExprStmt X=(CallExpr Fn=c)))`},
		{`while (x) {}`,
			`(WhileStmt Cond=x Body=(BlockStmt))`},
		{`for (const k of o) ;`,
			`(ForInStmt Of Left=(VarDecl Token=const List=((VarDeclarator Name=k))) Right=o Body=(EmptyStmt))`},
		{`try {} catch (e) {} finally {}`,
			`(TryStmt Body=(BlockStmt) Catch=(CatchClause Param=e Body=(BlockStmt)) Finally=(BlockStmt))`},
		{`function f(a, b) { return a; }`,
			`(FuncDecl Function=(Function Name=f Params=(a b) Body=(BlockStmt List=((ReturnStmt Result=a)))))`},
		{`debugger;`,
			`(DebuggerStmt)`},
		{`throw e;`,
			`(ThrowStmt X=e)`},
	} {
		f, err := syntax.Parse("stmt.js", []byte(test.input), syntax.ParseOptions{})
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		var got string
		if len(f.Stmts) == 1 {
			got = treeString(f.Stmts[0])
		} else {
			got = treeString(f)
		}
		if test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestEcmaVersionGates(t *testing.T) {
	for _, test := range []struct {
		src     string
		version int
		want    string // error substring, or "" for success
	}{
		{`a ?? b;`, 2020, ""},
		{`a ?? b;`, 2019, "nullish coalescing requires ecmaVersion 2020"},
		{`a?.b;`, 11, ""},
		{`a?.b;`, 10, "optional chaining requires ecmaVersion 2020"},
		{`let x = 1;`, 5, "let and const requires ecmaVersion 2015"},
		{`x ** 2;`, 7, ""},
		{`x ** 2;`, 6, "exponentiation requires ecmaVersion 2016"},
		{`(async function () {});`, 2016, "async functions requires ecmaVersion 2017"},
		{`1n;`, 2019, "BigInt requires ecmaVersion 2020"},
	} {
		_, err := syntax.Parse("gate.js", []byte(test.src), syntax.ParseOptions{EcmaVersion: test.version})
		switch {
		case err == nil && test.want != "":
			t.Errorf("parse %q at %d succeeded, want error %q", test.src, test.version, test.want)
		case err != nil && test.want == "":
			t.Errorf("parse %q at %d failed: %v", test.src, test.version, err)
		case err != nil && !strings.Contains(err.Error(), test.want):
			t.Errorf("parse %q at %d: got error %q, want %q", test.src, test.version, err, test.want)
		}
	}
}

func TestSourceType(t *testing.T) {
	src := []byte(`import x from "y";`)
	if _, err := syntax.Parse("m.js", src, syntax.ParseOptions{SourceType: syntax.Module}); err != nil {
		t.Errorf("module: %v", err)
	}
	_, err := syntax.Parse("s.js", src, syntax.ParseOptions{SourceType: syntax.Script})
	if err == nil || !strings.Contains(err.Error(), "sourceType: module") {
		t.Errorf("script: got %v, want sourceType error", err)
	}

	src = []byte(`with (o) f();`)
	f, err := syntax.Parse("s.js", src, syntax.ParseOptions{SourceType: syntax.Script})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if got, want := treeString(f.Stmts[0]), `(WithStmt X=o Body=(ExprStmt X=(CallExpr Fn=f)))`; got != want {
		t.Errorf("script: got %s, want %s", got, want)
	}
	_, err = syntax.Parse("m.js", src, syntax.ParseOptions{SourceType: syntax.Module})
	if err == nil || !strings.Contains(err.Error(), "'with' in strict mode") {
		t.Errorf("module: got %v, want strict mode error", err)
	}
}

func TestNormalizeEcmaVersion(t *testing.T) {
	for in, want := range map[int]int{0: 2020, 5: 5, 6: 2015, 11: 2020, 2017: 2017} {
		if got := syntax.NormalizeEcmaVersion(in); got != want {
			t.Errorf("NormalizeEcmaVersion(%d) = %d, want %d", in, got, want)
		}
	}
}

func stripPos(err error) string {
	s := err.Error()
	if i := strings.Index(s, ": "); i >= 0 {
		s = s[i+len(": "):] // strip line:col
	}
	return s
}

// treeString prints a syntax node as a parenthesized tree.
// Idents are printed as foo and Literals in their source spelling.
// Structs are printed as (type name=value ...).
// Only non-empty fields are shown.
func treeString(n syntax.Node) string {
	var buf bytes.Buffer
	writeTree(&buf, reflect.ValueOf(n))
	return buf.String()
}

func writeTree(out *bytes.Buffer, x reflect.Value) {
	switch x.Kind() {
	case reflect.String, reflect.Int, reflect.Bool:
		fmt.Fprintf(out, "%v", x.Interface())
	case reflect.Ptr, reflect.Interface:
		if elem := x.Elem(); elem.Kind() == 0 {
			out.WriteString("nil")
		} else {
			writeTree(out, elem)
		}
	case reflect.Struct:
		switch v := x.Interface().(type) {
		case syntax.Literal:
			out.WriteString(v.Raw)
			return
		case syntax.Ident:
			out.WriteString(v.Name)
			return
		}
		fmt.Fprintf(out, "(%s", strings.TrimPrefix(x.Type().String(), "syntax."))
		for i, n := 0, x.NumField(); i < n; i++ {
			f := x.Field(i)
			if f.Type() == reflect.TypeOf(syntax.Position{}) {
				continue // skip positions
			}
			name := x.Type().Field(i).Name
			if f.Type() == reflect.TypeOf(syntax.Token(0)) {
				fmt.Fprintf(out, " %s=%s", name, f.Interface())
				continue
			}

			switch f.Kind() {
			case reflect.Slice:
				if n := f.Len(); n > 0 {
					fmt.Fprintf(out, " %s=(", name)
					for i := 0; i < n; i++ {
						if i > 0 {
							out.WriteByte(' ')
						}
						writeTree(out, f.Index(i))
					}
					out.WriteByte(')')
				}
				continue
			case reflect.Ptr, reflect.Interface:
				if f.IsNil() {
					continue
				}
			case reflect.Uint8:
				if f.Uint() != 0 {
					fmt.Fprintf(out, " %s=%d", name, f.Uint())
				}
				continue
			case reflect.Bool:
				if f.Bool() {
					fmt.Fprintf(out, " %s", name)
				}
				continue
			case reflect.String:
				if f.String() == "" {
					continue
				}
			}
			fmt.Fprintf(out, " %s=", name)
			writeTree(out, f)
		}
		fmt.Fprintf(out, ")")
	default:
		fmt.Fprintf(out, "%T", x.Interface())
	}
}

func TestParseErrors(t *testing.T) {
	filename := "testdata/errors.js"
	for _, chunk := range chunkedfile.Read(filename, t) {
		_, err := syntax.Parse(filename, []byte(chunk.Source), syntax.ParseOptions{})
		switch err := err.(type) {
		case nil:
			// ok
		case syntax.Error:
			chunk.GotError(int(err.Pos.Line), err.Msg)
		default:
			t.Error(err)
		}
		chunk.Done()
	}
}

func BenchmarkParse(b *testing.B) {
	src := []byte(strings.Repeat(`
function fib(n) { return n < 2 ? n : fib(n - 1) + fib(n - 2); }
const xs = [1, 2, 3].map((x) => x * 2);
if (xs.length > 2) { console.log(fib(10)); } else { throw new Error("short"); }
`, 50))
	for i := 0; i < b.N; i++ {
		if _, err := syntax.Parse("bench.js", src, syntax.ParseOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
