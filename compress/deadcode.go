// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"github.com/jsmini/jsmini/resolve"
	"github.com/jsmini/jsmini/syntax"
)

// deadBranchVisitor replaces each if statement whose test is a literal
// by the branch the test selects.
//
// In a statement list, a selected block is spliced into the list in
// place of the if statement, unless the block declares a lexical name
// at its top level. In a single-statement slot, a selected block of
// one statement is replaced by that statement. An if statement with no
// selected branch is deleted from a list, and replaced by an empty
// statement elsewhere.
//
// The var declarations of the discarded branch belong to the enclosing
// function, so they are kept, without their initializers, in front of
// the selected branch.
func deadBranchVisitor(ctx *Context) *syntax.Visitor {
	v := &syntax.Visitor{}
	v.OnEnterExit(syntax.KindIfStmt, nil, func(c *syntax.Cursor) {
		stmt := c.Node().(*syntax.IfStmt)
		lit, ok := stmt.Cond.(*syntax.Literal)
		if !ok {
			return
		}
		taken, dropped := stmt.Else, stmt.Then
		if ToBoolean(lit.Value) {
			taken, dropped = stmt.Then, stmt.Else
		}
		if vars := hoistedVars(ctx.Model, dropped, stmt.If); vars != nil {
			switch {
			case c.InList():
				c.InsertBefore(vars)
			case taken == nil:
				taken = vars
			default:
				taken = &syntax.BlockStmt{Lbrace: stmt.If, List: []syntax.Stmt{vars, taken}}
			}
		}
		replaceStmt(c, taken, stmt.If)
	})
	return v
}

// hoistedVars returns a var declaration, without initializers, of the
// names declared by var statements in s outside nested functions, or
// nil if there are none. The identifiers denote the bindings of the
// original declarations in m, which may be nil.
func hoistedVars(m *resolve.Model, s syntax.Stmt, pos syntax.Position) *syntax.VarDecl {
	if s == nil {
		return nil
	}
	decl := &syntax.VarDecl{VarPos: pos, Token: syntax.VAR}
	seen := make(map[string]bool)
	nested := 0
	enter := func(*syntax.Cursor) { nested++ }
	leave := func(*syntax.Cursor) { nested-- }

	v := &syntax.Visitor{}
	for _, k := range []syntax.Kind{
		syntax.KindFuncDecl, syntax.KindFuncExpr, syntax.KindArrowFunc,
		syntax.KindClassDecl, syntax.KindClassExpr,
	} {
		v.OnEnterExit(k, enter, leave)
	}
	v.On(syntax.KindVarDecl, func(c *syntax.Cursor) {
		d := c.Node().(*syntax.VarDecl)
		if nested > 0 || d.Token != syntax.VAR {
			return
		}
		for _, spec := range d.List {
			declaredNames(spec.Name, func(id *syntax.Ident) {
				if seen[id.Name] {
					return
				}
				seen[id.Name] = true
				name := &syntax.Ident{NamePos: id.NamePos, Name: id.Name, Binding: id.Binding}
				if m != nil {
					if b := m.VarBinding(id); b != nil {
						name.Binding = b
					}
				}
				decl.List = append(decl.List, &syntax.VarDeclarator{Name: name})
			})
		}
	})
	syntax.Walk(s, v)

	if len(decl.List) == 0 {
		return nil
	}
	return decl
}

// declaredNames calls f for each identifier declared by the binding
// pattern x.
func declaredNames(x syntax.Expr, f func(*syntax.Ident)) {
	switch x := x.(type) {
	case *syntax.Ident:
		f(x)
	case *syntax.ArrayPattern:
		for _, elem := range x.Elems {
			if elem != nil {
				declaredNames(elem, f)
			}
		}
	case *syntax.ObjectPattern:
		for _, prop := range x.Props {
			declaredNames(prop, f)
		}
	case *syntax.Property:
		declaredNames(x.Value, f)
	case *syntax.AssignPattern:
		declaredNames(x.Left, f)
	case *syntax.SpreadElem:
		declaredNames(x.X, f)
	}
}

// replaceStmt replaces the statement at c by s, which may be nil.
// pos is the position given to a synthesized empty statement.
func replaceStmt(c *syntax.Cursor, s syntax.Stmt, pos syntax.Position) {
	block, isBlock := s.(*syntax.BlockStmt)
	switch {
	case s == nil:
		if c.InList() {
			c.Delete()
		} else {
			c.Replace(&syntax.EmptyStmt{Semi: pos})
		}

	case isBlock && !declaresLexical(block):
		if c.InList() {
			for _, s := range block.List {
				c.InsertBefore(s)
			}
			c.Delete()
		} else if len(block.List) == 1 {
			c.Replace(block.List[0])
		} else {
			c.Replace(block)
		}

	default:
		c.Replace(s)
	}
}

// declaresLexical reports whether the block declares a block-scoped
// name in its top-level statement list.
func declaresLexical(block *syntax.BlockStmt) bool {
	for _, s := range block.List {
		if syntax.IsLexical(s) {
			return true
		}
	}
	return false
}
