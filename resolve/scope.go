// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

// This file defines the scope model computed by the resolver.

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/jsmini/jsmini/syntax"
)

// A ScopeKind distinguishes the kinds of lexical scope.
type ScopeKind uint8

const (
	Global   ScopeKind = iota // the module or script
	Function                  // function, arrow function or class static block
	Block                     // block, loop head, switch body or catch clause
	Class                     // class body
)

var scopeKindNames = [...]string{
	Global:   "global",
	Function: "function",
	Block:    "block",
	Class:    "class",
}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return fmt.Sprintf("ScopeKind(%d)", int(k))
}

// A Binding ties together all identifiers that denote the same variable.
type Binding struct {
	Name  string
	Scope *Scope

	// Decl is the node that declares the binding:
	// *syntax.FuncDecl, *syntax.FuncExpr, *syntax.ClassDecl or
	// *syntax.ClassExpr for function and class names,
	// *syntax.VarDeclarator for variables, *syntax.CatchClause for a
	// catch parameter, *syntax.ImportSpec for an import, and the
	// parameter's own *syntax.Ident for a function parameter.
	Decl syntax.Node

	// Idents are the identifiers in declaration position, first one first.
	// It is empty for a var whose only declarator redeclares a catch
	// parameter.
	Idents []*syntax.Ident

	// References are the identifiers that use the binding, in traversal order.
	References []*syntax.Ident

	// RefScopes holds the ids of the scopes containing a reference
	// or a declaring identifier.
	RefScopes *roaring.Bitmap

	Reassigned bool   // the binding is the target of an assignment or update
	ShortName  string // name assigned by the mangler, if any

	// Fixed is set if the binding must keep its name, as when one
	// identifier both declares it and assigns another binding.
	Fixed bool

	lexical bool // let, const, class, or function in a block
}

// IsClass reports whether the binding is the name of a class.
func (b *Binding) IsClass() bool {
	k := b.Decl.Kind()
	return k == syntax.KindClassDecl || k == syntax.KindClassExpr
}

// IsFunction reports whether the binding is the name of a function.
func (b *Binding) IsFunction() bool {
	k := b.Decl.Kind()
	return k == syntax.KindFuncDecl || k == syntax.KindFuncExpr
}

// FinalName returns the name the binding will have in the output.
func (b *Binding) FinalName() string {
	if b.ShortName != "" {
		return b.ShortName
	}
	return b.Name
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s@%s#%d", b.Name, b.Scope.Kind, b.Scope.ID)
}

// A Scope is a node of the scope tree.
type Scope struct {
	Kind     ScopeKind
	ID       int // pre-order index; the global scope is 0
	Parent   *Scope
	Children []*Scope
	Bindings []*Binding  // in declaration order
	Node     syntax.Node // node that introduced the scope; nil for the global scope

	// Dynamic is set if code in the scope may look up names at run
	// time, as a direct call to eval or a with statement does. Names
	// visible to a dynamic scope must keep their spelling.
	Dynamic bool

	last  int // largest id in the subtree rooted at this scope
	names map[string]*Binding
}

// Lookup returns the binding declared for name directly in s, or nil.
func (s *Scope) Lookup(name string) *Binding { return s.names[name] }

// Resolve returns the binding for name in the nearest enclosing scope
// that declares it, starting at s, or nil if the name is free.
func (s *Scope) Resolve(name string) *Binding {
	for ; s != nil; s = s.Parent {
		if b := s.names[name]; b != nil {
			return b
		}
	}
	return nil
}

// Subtree returns the bitmap of ids of s and all its descendants.
func (s *Scope) Subtree() *roaring.Bitmap {
	bm := roaring.New()
	bm.AddRange(uint64(s.ID), uint64(s.last)+1)
	return bm
}

// Encloses reports whether t is s or a descendant of s.
func (s *Scope) Encloses(t *Scope) bool {
	return s.ID <= t.ID && t.ID <= s.last
}

// functionScope returns the nearest enclosing scope that holds var declarations.
func (s *Scope) functionScope() *Scope {
	for s.Kind != Function && s.Kind != Global {
		s = s.Parent
	}
	return s
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s#%d", s.Kind, s.ID)
}

// A Model is the scope tree of one file.
type Model struct {
	Global *Scope
	Scopes []*Scope // all scopes, in pre-order; Scopes[i].ID == i

	// Free maps each name referenced without a declaration to the ids
	// of the scopes containing such references.
	Free map[string]*roaring.Bitmap

	stack  []*Scope // scope-entry stack during resolution
	nextID int
	byNode map[syntax.Node]*Scope
}

func newModel() *Model {
	m := &Model{
		Free:   make(map[string]*roaring.Bitmap),
		byNode: make(map[syntax.Node]*Scope),
	}
	m.Global = m.push(Global, nil)
	return m
}

// ScopeOf returns the scope introduced by node n, or nil.
func (m *Model) ScopeOf(n syntax.Node) *Scope { return m.byNode[n] }

// Current returns the innermost scope of the traversal in progress.
func (m *Model) Current() *Scope { return m.stack[len(m.stack)-1] }

// VarBinding returns the function-level binding declared by id, the
// identifier of a var declarator, or nil if id is unresolved.
// It differs from id.Binding when the declarator also assigns a catch
// parameter of the same name.
func (m *Model) VarBinding(id *syntax.Ident) *Binding {
	b, _ := id.Binding.(*Binding)
	if b == nil {
		return nil
	}
	return b.Scope.functionScope().Lookup(id.Name)
}

// Bindings returns every binding of the model, scope by scope in
// pre-order, each scope's bindings in declaration order.
func (m *Model) Bindings() []*Binding {
	var all []*Binding
	for _, s := range m.Scopes {
		all = append(all, s.Bindings...)
	}
	return all
}

// IsFreeIn reports whether name is referenced without a declaration
// somewhere in the subtree of s.
func (m *Model) IsFreeIn(name string, s *Scope) bool {
	bm := m.Free[name]
	return bm != nil && bm.Intersects(s.Subtree())
}

func (m *Model) push(kind ScopeKind, n syntax.Node) *Scope {
	s := &Scope{Kind: kind, ID: m.nextID, Node: n, names: make(map[string]*Binding)}
	m.nextID++
	if len(m.stack) > 0 {
		s.Parent = m.Current()
		s.Parent.Children = append(s.Parent.Children, s)
	}
	if n != nil {
		m.byNode[n] = s
	}
	m.Scopes = append(m.Scopes, s)
	m.stack = append(m.stack, s)
	return s
}

func (m *Model) pop() {
	s := m.Current()
	s.last = m.nextID - 1
	m.stack = m.stack[:len(m.stack)-1]
}
