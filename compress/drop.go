// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import "github.com/jsmini/jsmini/syntax"

// dropConsoleVisitor removes expression statements that call a method
// of the global console object, such as console.log(x).
func dropConsoleVisitor(ctx *Context) *syntax.Visitor {
	v := &syntax.Visitor{}
	v.On(syntax.KindExprStmt, func(c *syntax.Cursor) {
		stmt := c.Node().(*syntax.ExprStmt)
		if isConsoleCall(stmt.X) {
			replaceStmt(c, nil, stmt.Pos())
		}
	})
	return v
}

// isConsoleCall reports whether x is a call whose callee is a member
// expression rooted at the free identifier console.
func isConsoleCall(x syntax.Expr) bool {
	call, ok := x.(*syntax.CallExpr)
	if !ok {
		return false
	}
	fn := call.Fn
	for {
		switch e := fn.(type) {
		case *syntax.DotExpr:
			fn = e.X
			continue
		case *syntax.IndexExpr:
			fn = e.X
			continue
		case *syntax.Ident:
			// A local variable named console is not the console object.
			return e.Name == "console" && e.Binding == nil && fn != call.Fn
		}
		return false
	}
}

// dropDebuggerVisitor removes debugger statements.
func dropDebuggerVisitor(ctx *Context) *syntax.Visitor {
	v := &syntax.Visitor{}
	v.On(syntax.KindDebuggerStmt, func(c *syntax.Cursor) {
		replaceStmt(c, nil, c.Node().Pos())
	})
	return v
}
