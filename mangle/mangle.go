// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mangle renames the local variables of a resolved program
// to short names.
//
// Names are assigned scope by scope, in pre-order, with a candidate
// sequence that restarts in each scope, so sibling scopes reuse the
// same short names. A candidate is rejected in scope S if it is a
// keyword or a reserved name, if some binding of an enclosing scope
// that is referenced within S already goes by that name, if the name
// is referenced within S without a declaration, or if a binding of S
// or of a scope nested in S keeps that name.
//
// Names in the global scope, and in scopes that may look up names
// at run time, are never changed.
package mangle // import "github.com/jsmini/jsmini/mangle"

import (
	"unicode/utf8"

	"github.com/jsmini/jsmini/resolve"
	"github.com/jsmini/jsmini/syntax"
)

// Options configures the mangler.
type Options struct {
	Reserved          []string // names never used and never changed
	KeepClassNames    bool     // do not rename classes
	KeepFunctionNames bool     // do not rename functions
}

// File assigns short names to the bindings of m and renames the
// identifiers of f accordingly. The model must be that of f.
func File(f *syntax.File, m *resolve.Model, opts Options) {
	Assign(m, opts)
	Rewrite(f)
}

// Assign sets the ShortName of each binding of m that is renamed.
func Assign(m *resolve.Model, opts Options) {
	mg := &mangler{
		m:        m,
		opts:     opts,
		reserved: make(map[string]bool, len(opts.Reserved)),
	}
	for _, name := range opts.Reserved {
		mg.reserved[name] = true
	}
	for _, s := range m.Scopes {
		if s.Kind != resolve.Global && !s.Dynamic {
			mg.scope(s)
		}
	}
}

type mangler struct {
	m        *resolve.Model
	opts     Options
	reserved map[string]bool
	gen      generator
}

// scope assigns names to the bindings declared in s.
func (mg *mangler) scope(s *resolve.Scope) {
	var renamed []*resolve.Binding
	for _, b := range s.Bindings {
		if mg.eligible(b) {
			renamed = append(renamed, b)
		}
	}
	if len(renamed) == 0 {
		return
	}

	subtree := s.Subtree()
	kept := mg.keptNames(s)

	// visible holds the names of enclosing bindings referenced within s.
	visible := make(map[string]bool)
	for p := s.Parent; p != nil; p = p.Parent {
		for _, b := range p.Bindings {
			if b.RefScopes.Intersects(subtree) {
				visible[b.FinalName()] = true
			}
		}
	}

	mg.gen.reset()
	mg.gen.taken = func(name string) bool {
		return mg.reserved[name] || visible[name] || kept[name] || mg.m.IsFreeIn(name, s)
	}
	for _, b := range renamed {
		b.ShortName = mg.gen.name()
	}
}

// eligible reports whether binding b may be renamed.
func (mg *mangler) eligible(b *resolve.Binding) bool {
	switch {
	case b.Fixed,
		mg.reserved[b.Name],
		mg.opts.KeepClassNames && b.IsClass(),
		mg.opts.KeepFunctionNames && b.IsFunction(),
		utf8.RuneCountInString(b.Name) <= 1:
		return false
	}
	return true
}

// keptNames returns the names of the bindings declared in s or in
// a scope nested within s that will not be renamed.
func (mg *mangler) keptNames(s *resolve.Scope) map[string]bool {
	kept := make(map[string]bool)
	var visit func(s *resolve.Scope)
	visit = func(s *resolve.Scope) {
		for _, b := range s.Bindings {
			if s.Dynamic || !mg.eligible(b) {
				kept[b.Name] = true
			}
		}
		for _, child := range s.Children {
			visit(child)
		}
	}
	visit(s)
	return kept
}

// Rewrite renames every identifier of f whose binding has a short name.
func Rewrite(f *syntax.File) {
	v := &syntax.Visitor{}
	v.On(syntax.KindIdent, func(c *syntax.Cursor) {
		id := c.Node().(*syntax.Ident)
		if b, ok := id.Binding.(*resolve.Binding); ok && b.ShortName != "" {
			id.Name = b.ShortName
		}
	})
	syntax.Walk(f, v)
}
