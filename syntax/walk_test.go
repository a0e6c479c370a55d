package syntax_test

import (
	"bytes"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/jsmini/jsmini/syntax"
)

func mustParse(t testing.TB, src string) *syntax.File {
	t.Helper()
	f, err := syntax.Parse("walk.js", []byte(src), syntax.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestWalk(t *testing.T) {
	const src = `
for (const x of y) {
  if (x) {
    ;
  } else {
    f([2 * x, "abc"]);
  }
}
`
	f := mustParse(t, src)

	var buf bytes.Buffer
	var depth int
	v := &syntax.Visitor{
		Enter: func(c *syntax.Cursor) {
			fmt.Fprintf(&buf, "%s%s\n",
				strings.Repeat("  ", depth),
				strings.TrimPrefix(reflect.TypeOf(c.Node()).String(), "*syntax."))
			depth++
		},
		Exit: func(c *syntax.Cursor) { depth-- },
	}
	syntax.Walk(f, v)
	got := buf.String()
	want := `
File
  ForInStmt
    VarDecl
      VarDeclarator
        Ident
    Ident
    BlockStmt
      IfStmt
        Ident
        BlockStmt
          EmptyStmt
        BlockStmt
          ExprStmt
            CallExpr
              Ident
              ArrayExpr
                BinaryExpr
                  Literal
                  Ident
                Literal`
	got = strings.TrimSpace(got)
	want = strings.TrimSpace(want)
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWalkKindHooks(t *testing.T) {
	f := mustParse(t, `a(b(c));`)

	var events []string
	v := &syntax.Visitor{}
	v.OnEnterExit(syntax.KindCallExpr,
		func(c *syntax.Cursor) { events = append(events, "enter "+c.Name()) },
		func(c *syntax.Cursor) { events = append(events, "exit "+c.Name()) })
	v.On(syntax.KindIdent, func(c *syntax.Cursor) {
		events = append(events, c.Node().(*syntax.Ident).Name)
	})
	syntax.Walk(f, v)

	got := strings.Join(events, ", ")
	want := "enter X, a, enter Args, b, c, exit Args, exit X"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCursorEdits(t *testing.T) {
	f := mustParse(t, `a(); debugger; b(); c();`)

	v := &syntax.Visitor{}
	v.On(syntax.KindDebuggerStmt, func(c *syntax.Cursor) {
		if c.Index() != 1 || !c.InList() || c.Parent() != syntax.Node(f) {
			t.Errorf("debugger cursor: index %d, parent %T", c.Index(), c.Parent())
		}
		c.Delete()
	})
	v.On(syntax.KindExprStmt, func(c *syntax.Cursor) {
		call := c.Node().(*syntax.ExprStmt).X.(*syntax.CallExpr)
		switch call.Fn.(*syntax.Ident).Name {
		case "b":
			// Replace b() by two statements.
			c.InsertBefore(&syntax.ExprStmt{X: &syntax.Ident{Name: "x"}})
			c.Replace(&syntax.ExprStmt{X: &syntax.Ident{Name: "y"}})
		case "c":
			c.Replace(nil)
		}
	})
	syntax.Walk(f, v)

	var names []string
	for _, s := range f.Stmts {
		switch x := s.(*syntax.ExprStmt).X.(type) {
		case *syntax.Ident:
			names = append(names, x.Name)
		case *syntax.CallExpr:
			names = append(names, x.Fn.(*syntax.Ident).Name+"()")
		}
	}
	if got, want := strings.Join(names, " "), "a() x y"; got != want {
		t.Errorf("after edits: got %s, want %s", got, want)
	}
}

func TestCursorReplaceField(t *testing.T) {
	f := mustParse(t, `x = 1 + 2;`)
	v := &syntax.Visitor{}
	v.On(syntax.KindBinaryExpr, func(c *syntax.Cursor) {
		if c.InList() || c.Index() != -1 || c.Name() != "Y" {
			t.Errorf("binary cursor: name %q, index %d", c.Name(), c.Index())
		}
		c.Replace(&syntax.Literal{Token: syntax.NUMBER, Value: 3.0})
	})
	syntax.Walk(f, v)

	assign := f.Stmts[0].(*syntax.ExprStmt).X.(*syntax.AssignExpr)
	if lit, ok := assign.Y.(*syntax.Literal); !ok || lit.Value != 3.0 {
		t.Errorf("after replace: Y = %#v", assign.Y)
	}
}

func TestWalkReplaceRoot(t *testing.T) {
	root := &syntax.BinaryExpr{X: &syntax.Ident{Name: "a"}, Op: syntax.PLUS, Y: &syntax.Ident{Name: "b"}}
	v := &syntax.Visitor{}
	v.OnEnterExit(syntax.KindBinaryExpr, nil, func(c *syntax.Cursor) {
		c.Replace(c.Node().(*syntax.BinaryExpr).X)
	})
	got := syntax.Walk(root, v)
	if id, ok := got.(*syntax.Ident); !ok || id.Name != "a" {
		t.Errorf("Walk returned %#v, want ident a", got)
	}
}

func TestWalkSkipsHoles(t *testing.T) {
	f := mustParse(t, `[, a, , b];`)
	var n int
	v := &syntax.Visitor{}
	v.On(syntax.KindIdent, func(c *syntax.Cursor) { n++ })
	syntax.Walk(f, v)
	if n != 2 {
		t.Errorf("visited %d identifiers, want 2", n)
	}
}

func TestCheck(t *testing.T) {
	f := mustParse(t, `if (a) b(); c();`)
	if err := syntax.Check(f); err != nil {
		t.Fatalf("Check of parsed tree: %v", err)
	}

	// A node reachable twice.
	shared := &syntax.Ident{Name: "s"}
	bad := &syntax.File{Stmts: []syntax.Stmt{
		&syntax.ExprStmt{X: shared},
		&syntax.ExprStmt{X: shared},
	}}
	if err := syntax.Check(bad); err == nil || !strings.Contains(err.Error(), "shared") {
		t.Errorf("Check(shared) = %v, want shared-node error", err)
	}

	// A missing required child.
	bad = &syntax.File{Stmts: []syntax.Stmt{&syntax.IfStmt{Cond: &syntax.Ident{Name: "a"}}}}
	if err := syntax.Check(bad); err == nil || !strings.Contains(err.Error(), "IfStmt has no Then") {
		t.Errorf("Check(if) = %v, want missing Then", err)
	}
}

// ExampleWalk demonstrates the use of Walk to
// enumerate the identifiers in a JavaScript source file
// containing a nonsense program with varied grammar.
func ExampleWalk() {
	const src = `
import {a} from "library";

function b(c, {d = e}) {
  f += {g: h};
  const i = -(j);
  return k.l[m + n];
}

for (const o of [p, ...q]) {
  r(() => s, t ? u : v);
}
`
	f, err := syntax.Parse("hello.js", []byte(src), syntax.ParseOptions{})
	if err != nil {
		log.Fatal(err)
	}

	var idents []string
	v := &syntax.Visitor{}
	v.On(syntax.KindIdent, func(c *syntax.Cursor) {
		idents = append(idents, c.Node().(*syntax.Ident).Name)
	})
	syntax.Walk(f, v)
	fmt.Println(strings.Join(idents, " "))

	// The identifier 'a' appears as both ImportSpec.Imported and ImportSpec.Local.
	// The identifier 'd' appears as both Property.Key and Property.Value.

	// Output:
	// a a b c d d e f g h i j k l m n o p q r s t u v
}
