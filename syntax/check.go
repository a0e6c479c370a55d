// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// Check reports an error if the tree rooted at root is not well formed:
// if some node is reachable through more than one slot, if a statement
// list holds a nil statement, or if a required child is missing.
func Check(root Node) error {
	var err error
	seen := make(map[Node]bool)
	fail := func(n Node, format string, args ...interface{}) {
		if err == nil {
			err = Error{n.Pos(), fmt.Sprintf(format, args...)}
		}
	}

	v := &Visitor{}
	v.Enter = func(c *Cursor) {
		n := c.Node()
		if seen[n] {
			fail(n, "%s node is shared by more than one parent", n.Kind())
			return
		}
		seen[n] = true
		if name, ok := missingChild(n); ok {
			fail(n, "%s has no %s", n.Kind(), name)
		}
	}
	Walk(root, v)
	return err
}

// missingChild returns the name of a required child of n that is absent.
func missingChild(n Node) (string, bool) {
	switch n := n.(type) {
	case *File:
		return nilStmt(n.Stmts, "Stmts")
	case *BlockStmt:
		return nilStmt(n.List, "List")
	case *CaseClause:
		return nilStmt(n.Body, "Body")
	case *ExprStmt:
		return "X", n.X == nil
	case *IfStmt:
		if n.Cond == nil {
			return "Cond", true
		}
		return "Then", n.Then == nil
	case *ForStmt:
		return "Body", n.Body == nil
	case *ForInStmt:
		if n.Left == nil {
			return "Left", true
		}
		if n.Right == nil {
			return "Right", true
		}
		return "Body", n.Body == nil
	case *WhileStmt:
		if n.Cond == nil {
			return "Cond", true
		}
		return "Body", n.Body == nil
	case *WithStmt:
		if n.X == nil {
			return "X", true
		}
		return "Body", n.Body == nil
	case *DoWhileStmt:
		if n.Cond == nil {
			return "Cond", true
		}
		return "Body", n.Body == nil
	case *LabeledStmt:
		return "Body", n.Body == nil
	case *ThrowStmt:
		return "X", n.X == nil
	case *TryStmt:
		return "Body", n.Body == nil
	case *VarDecl:
		return "List", len(n.List) == 0
	case *VarDeclarator:
		return "Name", n.Name == nil
	case *FuncDecl:
		return "Body", n.Body == nil
	case *FuncExpr:
		return "Body", n.Body == nil
	case *ArrowFunc:
		return "Body", n.Body == nil && n.Expr == nil
	case *BinaryExpr:
		if n.X == nil {
			return "X", true
		}
		return "Y", n.Y == nil
	case *AssignExpr:
		if n.X == nil {
			return "X", true
		}
		return "Y", n.Y == nil
	case *UnaryExpr:
		return "X", n.X == nil
	case *CondExpr:
		if n.Cond == nil {
			return "Cond", true
		}
		if n.True == nil {
			return "True", true
		}
		return "False", n.False == nil
	case *CallExpr:
		return "Fn", n.Fn == nil
	case *DotExpr:
		if n.X == nil {
			return "X", true
		}
		return "Name", n.Name == nil
	case *IndexExpr:
		if n.X == nil {
			return "X", true
		}
		return "Y", n.Y == nil
	}
	return "", false
}

func nilStmt(list []Stmt, name string) (string, bool) {
	for _, s := range list {
		if s == nil {
			return name, true
		}
	}
	return "", false
}
