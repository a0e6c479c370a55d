// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Visitor is a registry of callbacks for Walk.
//
// For each node, Walk calls, in order: the entry callback registered for
// the node's kind, the catch-all Enter, the walk of the node's children,
// the exit callback registered for the node's kind, and the catch-all Exit.
// All callbacks are optional.
type Visitor struct {
	Enter func(*Cursor)
	Exit  func(*Cursor)

	hooks [numKinds]hooks
}

type hooks struct {
	enter, exit func(*Cursor)
}

// On registers f as the single callback for nodes of kind k.
// It is called once per node, on entry.
func (v *Visitor) On(k Kind, f func(*Cursor)) {
	v.hooks[k] = hooks{enter: f}
}

// OnEnterExit registers a pair of entry and exit callbacks for nodes of kind k.
// Either may be nil.
func (v *Visitor) OnEnterExit(k Kind, enter, exit func(*Cursor)) {
	v.hooks[k] = hooks{enter: enter, exit: exit}
}

// A Cursor describes a node encountered during Walk, together with
// the parent slot that holds it. A Cursor is valid only for the
// duration of the callback to which it is passed.
type Cursor struct {
	parent Node
	name   string
	iter   *iterator // non-nil if the node is an element of a list
	node   Node

	set func(Node)
	del func()
	ins func(Node)
}

type iterator struct {
	index, step int
}

// Node returns the current node.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the parent of the current node, or nil for the root.
func (c *Cursor) Parent() Node { return c.parent }

// Name returns the name of the parent field that contains the current
// node, for instance "Stmts", "X" or "Then". It is empty for the root.
func (c *Cursor) Name() string { return c.name }

// Index reports the index of the current node within its parent's list,
// or -1 if the parent slot is not a list.
func (c *Cursor) Index() int {
	if c.iter != nil {
		return c.iter.index
	}
	return -1
}

// InList reports whether the current node is an element of a list.
func (c *Cursor) InList() bool { return c.iter != nil }

// Replace replaces the current node in its parent slot.
// Replacing a list element with nil deletes it; replacing an optional
// field with nil clears it. The replacement must be of a type the
// slot can hold.
func (c *Cursor) Replace(n Node) {
	if n == nil && c.iter != nil {
		c.Delete()
		return
	}
	if c.set == nil {
		panic("syntax: cannot replace the root of a walk")
	}
	c.set(n)
	c.node = n
}

// Delete removes the current node from its parent's list.
// It panics if the node is not a list element.
func (c *Cursor) Delete() {
	if c.iter == nil {
		panic("syntax: Delete of a node that is not a list element")
	}
	c.del()
	c.iter.step--
	c.node = nil
}

// InsertBefore inserts n before the current node in its parent's list.
// It panics if the node is not a list element. The inserted node is not walked.
func (c *Cursor) InsertBefore(n Node) {
	if c.iter == nil {
		panic("syntax: InsertBefore of a node that is not a list element")
	}
	c.ins(n)
	c.iter.index++
}

// Walk traverses a syntax tree in depth-first order, calling the
// callbacks of v for each node. Children are visited in source order.
// Walk itself never modifies the tree; callbacks may do so through
// the Cursor. It returns the root, which differs from root only if
// a callback replaced it.
func Walk(root Node, v *Visitor) Node {
	a := applier{v: v}
	c := &Cursor{node: root}
	c.set = func(n Node) { root = n }
	a.apply(c)
	return root
}

type applier struct {
	v *Visitor
}

func (a *applier) apply(c *Cursor) {
	if h := a.v.hooks[c.node.Kind()]; h.enter != nil {
		if h.enter(c); c.node == nil {
			return
		}
	}
	if a.v.Enter != nil {
		if a.v.Enter(c); c.node == nil {
			return
		}
	}

	a.children(c.node)

	if h := a.v.hooks[c.node.Kind()]; h.exit != nil {
		if h.exit(c); c.node == nil {
			return
		}
	}
	if a.v.Exit != nil {
		a.v.Exit(c)
	}
}

func (a *applier) children(n Node) {
	switch n := n.(type) {
	case *File:
		walkList(a, n, "Stmts", &n.Stmts)

	case *BlockStmt:
		walkList(a, n, "List", &n.List)

	case *BranchStmt:
		walkField(a, n, "Label", &n.Label)

	case *ClassDecl:
		a.class(n, &n.Class)

	case *ClassExpr:
		a.class(n, &n.Class)

	case *DebuggerStmt, *EmptyStmt:
		// no children

	case *DoWhileStmt:
		walkField(a, n, "Body", &n.Body)
		walkField(a, n, "Cond", &n.Cond)

	case *ExportDecl:
		walkField(a, n, "Decl", &n.Decl)
		walkField(a, n, "X", &n.X)
		walkList(a, n, "Specs", &n.Specs)
		walkField(a, n, "Star", &n.Star)
		walkField(a, n, "Source", &n.Source)

	case *ExportSpec:
		walkField(a, n, "Local", &n.Local)
		walkField(a, n, "Exported", &n.Exported)

	case *ExprStmt:
		walkField(a, n, "X", &n.X)

	case *ForStmt:
		walkField(a, n, "Init", &n.Init)
		walkField(a, n, "Cond", &n.Cond)
		walkField(a, n, "Post", &n.Post)
		walkField(a, n, "Body", &n.Body)

	case *ForInStmt:
		walkField(a, n, "Left", &n.Left)
		walkField(a, n, "Right", &n.Right)
		walkField(a, n, "Body", &n.Body)

	case *FuncDecl:
		a.function(n, &n.Function)

	case *FuncExpr:
		a.function(n, &n.Function)

	case *IfStmt:
		walkField(a, n, "Cond", &n.Cond)
		walkField(a, n, "Then", &n.Then)
		walkField(a, n, "Else", &n.Else)

	case *ImportDecl:
		walkList(a, n, "Specs", &n.Specs)
		walkField(a, n, "Source", &n.Source)

	case *ImportSpec:
		walkField(a, n, "Imported", &n.Imported)
		walkField(a, n, "Local", &n.Local)

	case *LabeledStmt:
		walkField(a, n, "Label", &n.Label)
		walkField(a, n, "Body", &n.Body)

	case *ReturnStmt:
		walkField(a, n, "Result", &n.Result)

	case *SwitchStmt:
		walkField(a, n, "Tag", &n.Tag)
		walkList(a, n, "Cases", &n.Cases)

	case *CaseClause:
		walkField(a, n, "Test", &n.Test)
		walkList(a, n, "Body", &n.Body)

	case *ThrowStmt:
		walkField(a, n, "X", &n.X)

	case *TryStmt:
		walkField(a, n, "Body", &n.Body)
		walkField(a, n, "Catch", &n.Catch)
		walkField(a, n, "Finally", &n.Finally)

	case *CatchClause:
		walkField(a, n, "Param", &n.Param)
		walkField(a, n, "Body", &n.Body)

	case *VarDecl:
		walkList(a, n, "List", &n.List)

	case *VarDeclarator:
		walkField(a, n, "Name", &n.Name)
		walkField(a, n, "Init", &n.Init)

	case *WhileStmt:
		walkField(a, n, "Cond", &n.Cond)
		walkField(a, n, "Body", &n.Body)

	case *WithStmt:
		walkField(a, n, "X", &n.X)
		walkField(a, n, "Body", &n.Body)

	case *Ident, *Literal, *RegExpLit, *ThisExpr, *SuperExpr, *MetaProperty:
		// no children

	case *TemplateLit:
		walkList(a, n, "Exprs", &n.Exprs)

	case *TaggedTemplate:
		walkField(a, n, "Tag", &n.Tag)
		walkField(a, n, "Quasi", &n.Quasi)

	case *ArrayExpr:
		walkList(a, n, "Elems", &n.Elems)

	case *ArrayPattern:
		walkList(a, n, "Elems", &n.Elems)

	case *ObjectExpr:
		walkList(a, n, "Props", &n.Props)

	case *ObjectPattern:
		walkList(a, n, "Props", &n.Props)

	case *Property:
		walkField(a, n, "Key", &n.Key)
		walkField(a, n, "Value", &n.Value)

	case *ArrowFunc:
		walkList(a, n, "Params", &n.Params)
		walkField(a, n, "Body", &n.Body)
		walkField(a, n, "Expr", &n.Expr)

	case *MethodDef:
		walkField(a, n, "Key", &n.Key)
		walkField(a, n, "Value", &n.Value)

	case *FieldDef:
		walkField(a, n, "Key", &n.Key)
		walkField(a, n, "Value", &n.Value)

	case *StaticBlock:
		walkField(a, n, "Body", &n.Body)

	case *UnaryExpr:
		walkField(a, n, "X", &n.X)

	case *UpdateExpr:
		walkField(a, n, "X", &n.X)

	case *BinaryExpr:
		walkField(a, n, "X", &n.X)
		walkField(a, n, "Y", &n.Y)

	case *AssignExpr:
		walkField(a, n, "X", &n.X)
		walkField(a, n, "Y", &n.Y)

	case *AssignPattern:
		walkField(a, n, "Left", &n.Left)
		walkField(a, n, "Right", &n.Right)

	case *CondExpr:
		walkField(a, n, "Cond", &n.Cond)
		walkField(a, n, "True", &n.True)
		walkField(a, n, "False", &n.False)

	case *CallExpr:
		walkField(a, n, "Fn", &n.Fn)
		walkList(a, n, "Args", &n.Args)

	case *NewExpr:
		walkField(a, n, "Fn", &n.Fn)
		walkList(a, n, "Args", &n.Args)

	case *DotExpr:
		walkField(a, n, "X", &n.X)
		walkField(a, n, "Name", &n.Name)

	case *IndexExpr:
		walkField(a, n, "X", &n.X)
		walkField(a, n, "Y", &n.Y)

	case *SeqExpr:
		walkList(a, n, "List", &n.List)

	case *SpreadElem:
		walkField(a, n, "X", &n.X)

	case *AwaitExpr:
		walkField(a, n, "X", &n.X)

	case *YieldExpr:
		walkField(a, n, "X", &n.X)

	default:
		panic(n)
	}
}

func (a *applier) function(parent Node, f *Function) {
	walkField(a, parent, "Name", &f.Name)
	walkList(a, parent, "Params", &f.Params)
	walkField(a, parent, "Body", &f.Body)
}

func (a *applier) class(parent Node, c *Class) {
	walkField(a, parent, "Name", &c.Name)
	walkField(a, parent, "Super", &c.Super)
	walkList(a, parent, "Body", &c.Body)
}

// isZero reports whether a slot of type T holds no node.
// T is always a pointer or interface type, both comparable.
func isZero[T Node](n T) bool {
	var zero T
	return any(n) == any(zero)
}

func walkField[T Node](a *applier, parent Node, name string, p *T) {
	if isZero(*p) {
		return
	}
	c := &Cursor{parent: parent, name: name, node: *p}
	c.set = func(n Node) {
		if n == nil {
			var zero T
			*p = zero
		} else {
			*p = n.(T)
		}
	}
	a.apply(c)
}

func walkList[T Node](a *applier, parent Node, name string, list *[]T) {
	it := &iterator{}
	for it.index = 0; it.index < len(*list); it.index += it.step {
		it.step = 1
		n := (*list)[it.index]
		if isZero(n) {
			continue // array hole
		}
		c := &Cursor{parent: parent, name: name, iter: it, node: n}
		c.set = func(n Node) {
			(*list)[it.index] = n.(T)
		}
		c.del = func() {
			l := *list
			copy(l[it.index:], l[it.index+1:])
			var zero T
			l[len(l)-1] = zero
			*list = l[:len(l)-1]
		}
		c.ins = func(n Node) {
			var zero T
			l := append(*list, zero)
			copy(l[it.index+1:], l[it.index:])
			l[it.index] = n.(T)
			*list = l
		}
		a.apply(c)
	}
}
