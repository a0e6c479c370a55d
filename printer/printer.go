// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package printer renders a JavaScript syntax tree as source text.
//
// The output is conventional: one statement per line (when a line
// ending is configured), spaces around binary operators, and the
// minimal parentheses implied by operator precedence. Literals keep
// their original spelling; synthesized literals are spelled afresh.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsmini/jsmini/syntax"
)

// A Config controls the formatting of printed code.
type Config struct {
	Indent     string // indentation unit, e.g. "  "; empty for none
	LineEnd    string // line terminator, e.g. "\n"; empty for none
	Semicolons bool   // terminate the last statement of each block
	Quotes     string // quote preference for synthesized strings: "single" (default), "double", "auto"
	Comments   bool   // accepted for compatibility; the parser does not retain comments
}

// An Error reports that a tree could not be rendered,
// which indicates a malformed tree.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("cannot print %s: %s", e.Pos, e.Msg)
	}
	return "cannot print: " + e.Msg
}

// Print returns the source text of the tree rooted at n.
func Print(n syntax.Node, cfg *Config) (string, error) {
	var buf strings.Builder
	if err := Fprint(&buf, n, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fprint writes the source text of the tree rooted at n to w.
// A nil cfg is equivalent to the zero Config.
func Fprint(w io.Writer, n syntax.Node, cfg *Config) (err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	p := &printer{cfg: cfg, quote: '\''}
	switch cfg.Quotes {
	case "double":
		p.quote = '"'
	case "auto":
		p.auto = true
	}

	defer func() {
		if e := recover(); e != nil {
			if pe, ok := e.(*Error); ok {
				err = pe
				return
			}
			panic(e)
		}
	}()
	p.node(n)
	_, err = io.WriteString(w, p.buf.String())
	return err
}

type printer struct {
	cfg   *Config
	buf   strings.Builder
	last  byte // last byte written
	depth int  // indentation depth
	quote byte
	auto  bool
}

func (p *printer) errorf(n syntax.Node, format string, args ...interface{}) {
	e := &Error{Msg: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Pos = n.Pos()
	}
	panic(e)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// print writes s, separating it from the preceding output by a space
// when the two would otherwise fuse into one token.
func (p *printer) print(s string) {
	if s == "" {
		return
	}
	if p.last != 0 {
		c := s[0]
		switch {
		case isIdentByte(p.last) && isIdentByte(c),
			p.last == '+' && c == '+',
			p.last == '-' && c == '-',
			p.last == '/' && c == '/':
			p.buf.WriteByte(' ')
		}
	}
	p.buf.WriteString(s)
	p.last = s[len(s)-1]
}

// raw writes s with no separation, as within a template literal.
func (p *printer) raw(s string) {
	if s == "" {
		return
	}
	p.buf.WriteString(s)
	p.last = s[len(s)-1]
}

func (p *printer) newline() {
	if p.cfg.LineEnd == "" {
		return
	}
	p.buf.WriteString(p.cfg.LineEnd)
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.cfg.Indent)
	}
	p.last = ' '
}

func (p *printer) node(n syntax.Node) {
	switch n := n.(type) {
	case *syntax.File:
		p.stmtList(n.Stmts, false)
	case syntax.Stmt:
		p.stmt(n, true)
	case syntax.Expr:
		p.expr(n, precSeq)
	case syntax.ClassMember:
		p.member(n)
	default:
		p.errorf(n, "unexpected %T at top level", n)
	}
}

// stmtList prints a list of statements, each on its own line.
func (p *printer) stmtList(list []syntax.Stmt, braced bool) {
	for i, s := range list {
		if s == nil {
			p.errorf(nil, "nil statement in list")
		}
		if i > 0 || braced {
			p.newline()
		}
		p.stmt(s, i < len(list)-1 || p.cfg.Semicolons)
	}
}

// semi terminates a statement.
func (p *printer) semi(term bool) {
	if term {
		p.print(";")
	}
}

func (p *printer) block(b *syntax.BlockStmt) {
	if b == nil {
		p.errorf(nil, "missing block")
	}
	p.print("{")
	if len(b.List) > 0 {
		p.depth++
		p.stmtList(b.List, true)
		p.depth--
		p.newline()
	}
	p.print("}")
}

// stmt prints s. If term is false the terminating semicolon of a
// simple statement may be omitted.
func (p *printer) stmt(s syntax.Stmt, term bool) {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		p.block(s)

	case *syntax.ExprStmt:
		if s.X == nil {
			p.errorf(s, "expression statement has no expression")
		}
		if startsStatementAmbiguously(s.X) {
			p.print("(")
			p.expr(s.X, precSeq)
			p.print(")")
		} else {
			p.expr(s.X, precSeq)
		}
		p.semi(term)

	case *syntax.VarDecl:
		p.varDecl(s, false)
		p.semi(term)

	case *syntax.FuncDecl:
		p.function(&s.Function)

	case *syntax.ClassDecl:
		p.class(&s.Class)

	case *syntax.ReturnStmt:
		p.print("return")
		if s.Result != nil {
			p.print(" ")
			p.expr(s.Result, precSeq)
		}
		p.semi(term)

	case *syntax.IfStmt:
		if s.Cond == nil || s.Then == nil {
			p.errorf(s, "incomplete if statement")
		}
		p.print("if (")
		p.expr(s.Cond, precSeq)
		p.print(") ")
		if s.Else != nil && danglingElse(s.Then) {
			p.block(&syntax.BlockStmt{List: []syntax.Stmt{s.Then}})
		} else {
			p.stmt(s.Then, s.Else != nil || term)
		}
		if s.Else != nil {
			p.print(" else ")
			p.stmt(s.Else, term)
		}

	case *syntax.ForStmt:
		p.print("for (")
		switch init := s.Init.(type) {
		case nil:
		case *syntax.VarDecl:
			p.varDecl(init, true)
		case *syntax.ExprStmt:
			p.exprNoIn(init.X, precSeq)
		default:
			p.errorf(s, "invalid for-loop initializer %s", init.Kind())
		}
		p.print(";")
		if s.Cond != nil {
			p.print(" ")
			p.expr(s.Cond, precSeq)
		}
		p.print(";")
		if s.Post != nil {
			p.print(" ")
			p.expr(s.Post, precSeq)
		}
		p.print(") ")
		p.body(s, s.Body, term)

	case *syntax.ForInStmt:
		p.print("for ")
		if s.Await {
			p.print("await ")
		}
		p.print("(")
		switch left := s.Left.(type) {
		case *syntax.VarDecl:
			p.varDecl(left, true)
		case *syntax.ExprStmt:
			p.expr(left.X, precCall)
		default:
			p.errorf(s, "invalid for-in target")
		}
		if s.Of {
			p.print(" of ")
			p.expr(s.Right, precAssign)
		} else {
			p.print(" in ")
			p.expr(s.Right, precSeq)
		}
		p.print(") ")
		p.body(s, s.Body, term)

	case *syntax.WhileStmt:
		p.print("while (")
		p.expr(s.Cond, precSeq)
		p.print(") ")
		p.body(s, s.Body, term)

	case *syntax.WithStmt:
		p.print("with (")
		p.expr(s.X, precSeq)
		p.print(") ")
		p.body(s, s.Body, term)

	case *syntax.DoWhileStmt:
		p.print("do ")
		p.body(s, s.Body, true)
		p.print(" while (")
		p.expr(s.Cond, precSeq)
		p.print(")")
		p.semi(term)

	case *syntax.TryStmt:
		p.print("try ")
		p.block(s.Body)
		if c := s.Catch; c != nil {
			p.print(" catch ")
			if c.Param != nil {
				p.print("(")
				p.expr(c.Param, precAssign)
				p.print(") ")
			}
			p.block(c.Body)
		}
		if s.Finally != nil {
			p.print(" finally ")
			p.block(s.Finally)
		}

	case *syntax.SwitchStmt:
		p.print("switch (")
		p.expr(s.Tag, precSeq)
		p.print(") {")
		p.depth++
		for _, c := range s.Cases {
			p.newline()
			if c.Test != nil {
				p.print("case ")
				p.expr(c.Test, precSeq)
				p.print(":")
			} else {
				p.print("default:")
			}
			p.depth++
			for _, st := range c.Body {
				p.newline()
				p.stmt(st, true)
			}
			p.depth--
		}
		p.depth--
		p.newline()
		p.print("}")

	case *syntax.BranchStmt:
		p.print(s.Token.String())
		if s.Label != nil {
			p.print(" " + s.Label.Name)
		}
		p.semi(term)

	case *syntax.ThrowStmt:
		p.print("throw ")
		p.expr(s.X, precSeq)
		p.semi(term)

	case *syntax.LabeledStmt:
		p.print(s.Label.Name + ": ")
		p.body(s, s.Body, term)

	case *syntax.EmptyStmt:
		p.print(";")

	case *syntax.DebuggerStmt:
		p.print("debugger")
		p.semi(term)

	case *syntax.ImportDecl:
		p.importDecl(s)
		p.semi(term)

	case *syntax.ExportDecl:
		p.exportDecl(s, term)

	default:
		p.errorf(s, "unexpected statement %T", s)
	}
}

// body prints the body of a loop or labeled statement.
func (p *printer) body(parent, body syntax.Stmt, term bool) {
	if body == nil {
		p.errorf(parent, "%s has no body", parent.Kind())
	}
	p.stmt(body, term)
}

// danglingElse reports whether s, used as the Then branch of an if
// statement with an else clause, would capture that else clause.
func danglingElse(s syntax.Stmt) bool {
	switch s := s.(type) {
	case *syntax.IfStmt:
		return s.Else == nil || danglingElse(s.Else)
	case *syntax.ForStmt:
		return danglingElse(s.Body)
	case *syntax.ForInStmt:
		return danglingElse(s.Body)
	case *syntax.WhileStmt:
		return danglingElse(s.Body)
	case *syntax.WithStmt:
		return danglingElse(s.Body)
	case *syntax.LabeledStmt:
		return danglingElse(s.Body)
	}
	return false
}

// startsStatementAmbiguously reports whether an expression statement
// beginning with x would be parsed as something other than an expression.
func startsStatementAmbiguously(x syntax.Expr) bool {
	for {
		switch e := x.(type) {
		case *syntax.ObjectExpr, *syntax.ObjectPattern, *syntax.FuncExpr, *syntax.ClassExpr:
			return true
		case *syntax.Ident:
			return false
		case *syntax.BinaryExpr:
			x = e.X
		case *syntax.AssignExpr:
			x = e.X
		case *syntax.CondExpr:
			x = e.Cond
		case *syntax.SeqExpr:
			x = e.List[0]
		case *syntax.CallExpr:
			x = e.Fn
		case *syntax.DotExpr:
			x = e.X
		case *syntax.IndexExpr:
			x = e.X
		case *syntax.TaggedTemplate:
			x = e.Tag
		case *syntax.UpdateExpr:
			if e.Prefix {
				return false
			}
			x = e.X
		default:
			return false
		}
	}
}

func (p *printer) varDecl(d *syntax.VarDecl, noIn bool) {
	if len(d.List) == 0 {
		p.errorf(d, "declaration has no declarators")
	}
	p.print(d.Token.String() + " ")
	for i, v := range d.List {
		if i > 0 {
			p.print(", ")
		}
		p.expr(v.Name, precAssign)
		if v.Init != nil {
			p.print(" = ")
			if noIn {
				p.exprNoIn(v.Init, precAssign)
			} else {
				p.expr(v.Init, precAssign)
			}
		}
	}
}

func (p *printer) importDecl(d *syntax.ImportDecl) {
	p.print("import ")
	var named []*syntax.ImportSpec
	first := true
	for _, spec := range d.Specs {
		switch spec.SpecKind {
		case syntax.ImportDefault:
			p.print(spec.Local.Name)
			first = false
		case syntax.ImportNamespace:
			if !first {
				p.print(", ")
			}
			p.print("* as " + spec.Local.Name)
			first = false
		default:
			named = append(named, spec)
		}
	}
	if named != nil {
		if !first {
			p.print(", ")
		}
		p.print("{")
		for i, spec := range named {
			if i > 0 {
				p.print(", ")
			}
			if spec.Imported != nil && spec.Imported.Name != spec.Local.Name {
				p.print(spec.Imported.Name + " as ")
			}
			p.print(spec.Local.Name)
		}
		p.print("}")
		first = false
	}
	if !first {
		p.print(" from ")
	}
	p.literal(d.Source)
}

func (p *printer) exportDecl(d *syntax.ExportDecl, term bool) {
	p.print("export ")
	if d.Default {
		p.print("default ")
	}
	switch {
	case d.Decl != nil:
		p.stmt(d.Decl, term)
		return
	case d.X != nil:
		p.expr(d.X, precAssign)
	case d.All:
		p.print("*")
		if d.Star != nil {
			p.print(" as " + d.Star.Name)
		}
	default:
		p.print("{")
		for i, spec := range d.Specs {
			if i > 0 {
				p.print(", ")
			}
			p.print(spec.Local.Name)
			if spec.Exported != nil && spec.Exported.Name != spec.Local.Name {
				p.print(" as " + spec.Exported.Name)
			}
		}
		p.print("}")
	}
	if d.Source != nil {
		p.print(" from ")
		p.literal(d.Source)
	}
	p.semi(term)
}

func (p *printer) function(f *syntax.Function) {
	if f.Async {
		p.print("async ")
	}
	p.print("function")
	if f.Generator {
		p.print("*")
	}
	if f.Name != nil {
		p.print(" " + f.Name.Name)
	}
	p.params(f.Params)
	p.print(" ")
	p.block(f.Body)
}

func (p *printer) params(params []syntax.Expr) {
	p.print("(")
	for i, param := range params {
		if i > 0 {
			p.print(", ")
		}
		p.expr(param, precAssign)
	}
	p.print(")")
}

func (p *printer) class(c *syntax.Class) {
	p.print("class")
	if c.Name != nil {
		p.print(" " + c.Name.Name)
	}
	if c.Super != nil {
		p.print(" extends ")
		p.expr(c.Super, precCall)
	}
	p.print(" {")
	if len(c.Body) > 0 {
		p.depth++
		for _, m := range c.Body {
			p.newline()
			p.member(m)
		}
		p.depth--
		p.newline()
	}
	p.print("}")
}

func (p *printer) member(m syntax.ClassMember) {
	switch m := m.(type) {
	case *syntax.MethodDef:
		if m.Static {
			p.print("static ")
		}
		p.method(m.PropKind, m.Key, m.Computed, m.Value)
	case *syntax.FieldDef:
		if m.Static {
			p.print("static ")
		}
		p.propertyKey(m.Key, m.Computed)
		if m.Value != nil {
			p.print(" = ")
			p.expr(m.Value, precAssign)
		}
		p.print(";")
	case *syntax.StaticBlock:
		p.print("static ")
		p.block(m.Body)
	default:
		p.errorf(m, "unexpected class member %T", m)
	}
}

func (p *printer) method(kind syntax.PropKind, key syntax.Expr, computed bool, f *syntax.FuncExpr) {
	if f == nil {
		p.errorf(key, "method has no function")
	}
	switch kind {
	case syntax.Get:
		p.print("get ")
	case syntax.Set:
		p.print("set ")
	}
	if f.Async {
		p.print("async ")
	}
	if f.Generator {
		p.print("*")
	}
	p.propertyKey(key, computed)
	p.params(f.Params)
	p.print(" ")
	p.block(f.Body)
}

func (p *printer) propertyKey(key syntax.Expr, computed bool) {
	if computed {
		p.print("[")
		p.expr(key, precAssign)
		p.print("]")
		return
	}
	switch key := key.(type) {
	case *syntax.Ident:
		p.print(key.Name)
	case *syntax.Literal:
		p.literal(key)
	default:
		p.errorf(key, "invalid property key %s", key.Kind())
	}
}
