// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve defines the scope model of a JavaScript program and
// the resolver that computes it.
//
// The resolver makes a single pass over the syntax tree. It creates a
// scope for each function, class, block, loop head, switch body and
// catch clause, declares a binding for every declared name, and records
// each identifier use. Uses are resolved after the traversal is complete,
// so a use may precede its declaration, as with hoisted var and function
// declarations or a closure that refers to a later let.
//
// Each resolved identifier records its binding in syntax.Ident.Binding.
// Identifiers that resolve to no binding are free; they are recorded in
// Model.Free and their Binding field is nil.
//
// The resolver also reports redeclarations that JavaScript rejects,
// such as two let declarations of one name in the same scope.
package resolve // import "github.com/jsmini/jsmini/resolve"

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/jsmini/jsmini/syntax"
)

// An Error describes the nature and position of a resolver error.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// An ErrorList is a non-empty list of resolver error messages.
type ErrorList []Error

func (e ErrorList) Error() string {
	var buf strings.Builder
	for i, err := range e {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

// File resolves the identifiers of f and returns its scope model.
// The model is returned even if an error is reported.
func File(f *syntax.File) (*Model, error) {
	r := newResolver()
	syntax.Walk(f, r.visitor())
	r.resolveUses()
	r.m.pop() // global

	if len(r.errors) > 0 {
		return r.m, r.errors
	}
	return r.m, nil
}

// A use is an identifier in reference position, awaiting resolution.
type use struct {
	id       *syntax.Ident
	scope    *Scope
	assigned bool
}

type resolver struct {
	m      *Model
	errors ErrorList

	uses  []use
	evals []use // direct calls of eval
	withs []int // for each enclosing with statement, the first scope id of its body

	decls   map[*syntax.Ident]bool // identifiers in declaration position
	targets map[*syntax.Ident]bool // identifiers assigned by an assignment or update
}

func newResolver() *resolver {
	return &resolver{
		m:       newModel(),
		decls:   make(map[*syntax.Ident]bool),
		targets: make(map[*syntax.Ident]bool),
	}
}

func (r *resolver) errorf(pos syntax.Position, format string, args ...interface{}) {
	r.errors = append(r.errors, Error{pos, fmt.Sprintf(format, args...)})
}

func (r *resolver) visitor() *syntax.Visitor {
	v := &syntax.Visitor{}
	pop := func(*syntax.Cursor) { r.m.pop() }

	v.OnEnterExit(syntax.KindFuncDecl, func(c *syntax.Cursor) {
		fn := c.Node().(*syntax.FuncDecl)
		if fn.Name != nil {
			s := r.m.Current()
			r.bind(s, fn.Name, fn, s.Kind == Block || s.Kind == Class)
		}
		r.function(fn, &fn.Function)
	}, pop)

	v.OnEnterExit(syntax.KindFuncExpr, func(c *syntax.Cursor) {
		fn := c.Node().(*syntax.FuncExpr)
		r.function(fn, &fn.Function)
		if fn.Name != nil {
			// The name of a function expression is visible only inside it.
			r.bind(r.m.Current(), fn.Name, fn, false)
		}
	}, pop)

	v.OnEnterExit(syntax.KindArrowFunc, func(c *syntax.Cursor) {
		fn := c.Node().(*syntax.ArrowFunc)
		r.m.push(Function, fn)
		r.params(fn.Params)
	}, pop)

	v.OnEnterExit(syntax.KindClassDecl, func(c *syntax.Cursor) {
		cls := c.Node().(*syntax.ClassDecl)
		if cls.Name != nil {
			r.bind(r.m.Current(), cls.Name, cls, true)
		}
		r.m.push(Class, cls)
	}, pop)

	v.OnEnterExit(syntax.KindClassExpr, func(c *syntax.Cursor) {
		cls := c.Node().(*syntax.ClassExpr)
		s := r.m.push(Class, cls)
		if cls.Name != nil {
			r.bind(s, cls.Name, cls, true)
		}
	}, pop)

	v.OnEnterExit(syntax.KindStaticBlock, func(c *syntax.Cursor) {
		r.m.push(Function, c.Node())
	}, pop)

	v.OnEnterExit(syntax.KindBlockStmt, func(c *syntax.Cursor) {
		if !isBody(c) {
			r.m.push(Block, c.Node())
		}
	}, func(c *syntax.Cursor) {
		if !isBody(c) {
			r.m.pop()
		}
	})

	// A loop head has its own scope for let and const declarations.
	v.OnEnterExit(syntax.KindForStmt, func(c *syntax.Cursor) {
		r.m.push(Block, c.Node())
	}, pop)

	v.OnEnterExit(syntax.KindForInStmt, func(c *syntax.Cursor) {
		s := c.Node().(*syntax.ForInStmt)
		r.m.push(Block, s)
		if x, ok := s.Left.(*syntax.ExprStmt); ok {
			r.assignTargets(x.X)
		}
	}, pop)

	// The case clauses of a switch share one scope, opened after the tag.
	v.On(syntax.KindCaseClause, func(c *syntax.Cursor) {
		if c.Index() == 0 {
			r.m.push(Block, c.Parent())
		}
	})
	v.OnEnterExit(syntax.KindSwitchStmt, nil, func(c *syntax.Cursor) {
		if len(c.Node().(*syntax.SwitchStmt).Cases) > 0 {
			r.m.pop()
		}
	})

	v.OnEnterExit(syntax.KindCatchClause, func(c *syntax.Cursor) {
		cc := c.Node().(*syntax.CatchClause)
		s := r.m.push(Block, cc)
		if cc.Param != nil {
			patternTargets(cc.Param, func(id *syntax.Ident) {
				r.bind(s, id, cc, false)
			})
		}
	}, pop)

	v.On(syntax.KindVarDecl, func(c *syntax.Cursor) {
		d := c.Node().(*syntax.VarDecl)
		for _, decl := range d.List {
			if decl.Name == nil {
				continue
			}
			patternTargets(decl.Name, func(id *syntax.Ident) {
				if d.Token == syntax.VAR {
					r.declareVar(id, decl)
				} else {
					r.bind(r.m.Current(), id, decl, true)
				}
			})
		}
	})

	v.On(syntax.KindImportSpec, func(c *syntax.Cursor) {
		spec := c.Node().(*syntax.ImportSpec)
		if spec.Local != nil {
			r.bind(r.m.Global, spec.Local, spec, true)
		}
	})

	// The local names of a re-export name exports of another module.
	v.On(syntax.KindExportDecl, func(c *syntax.Cursor) {
		d := c.Node().(*syntax.ExportDecl)
		if d.Source != nil {
			for _, spec := range d.Specs {
				r.decls[spec.Local] = true
			}
		}
	})

	v.On(syntax.KindAssignExpr, func(c *syntax.Cursor) {
		r.assignTargets(c.Node().(*syntax.AssignExpr).X)
	})

	v.On(syntax.KindUpdateExpr, func(c *syntax.Cursor) {
		r.assignTargets(c.Node().(*syntax.UpdateExpr).X)
	})

	v.On(syntax.KindCallExpr, func(c *syntax.Cursor) {
		if id, ok := c.Node().(*syntax.CallExpr).Fn.(*syntax.Ident); ok && id.Name == "eval" {
			r.evals = append(r.evals, use{id: id, scope: r.m.Current()})
		}
	})

	// Names in a with body may denote properties of its object, so
	// every scope inside it and every scope around it is dynamic.
	v.OnEnterExit(syntax.KindWithStmt, func(c *syntax.Cursor) {
		r.withs = append(r.withs, r.m.nextID)
	}, func(c *syntax.Cursor) {
		first := r.withs[len(r.withs)-1]
		r.withs = r.withs[:len(r.withs)-1]
		for _, s := range r.m.Scopes[first:] {
			s.Dynamic = true
		}
		for s := r.m.Current(); s != nil; s = s.Parent {
			s.Dynamic = true
		}
	})

	v.On(syntax.KindIdent, func(c *syntax.Cursor) {
		id := c.Node().(*syntax.Ident)
		if r.decls[id] || isPropertyName(c) {
			return
		}
		r.uses = append(r.uses, use{id: id, scope: r.m.Current(), assigned: r.targets[id]})
	})

	return v
}

// function opens the scope of a function and declares its parameters.
func (r *resolver) function(n syntax.Node, fn *syntax.Function) {
	r.m.push(Function, n)
	r.params(fn.Params)
}

func (r *resolver) params(params []syntax.Expr) {
	s := r.m.Current()
	for _, p := range params {
		patternTargets(p, func(id *syntax.Ident) { r.bind(s, id, id, false) })
	}
}

// isBody reports whether the block at c is the body of a function or
// catch clause, which shares the scope of its parent.
func isBody(c *syntax.Cursor) bool {
	if c.Name() != "Body" {
		return false
	}
	switch c.Parent().(type) {
	case *syntax.FuncDecl, *syntax.FuncExpr, *syntax.ArrowFunc, *syntax.StaticBlock, *syntax.CatchClause:
		return true
	}
	return false
}

// isPropertyName reports whether the identifier at c names a property,
// label or module export rather than a variable.
func isPropertyName(c *syntax.Cursor) bool {
	switch p := c.Parent().(type) {
	case *syntax.DotExpr:
		return c.Name() == "Name"
	case *syntax.Property:
		return c.Name() == "Key" && !p.Computed
	case *syntax.MethodDef:
		return c.Name() == "Key" && !p.Computed
	case *syntax.FieldDef:
		return c.Name() == "Key" && !p.Computed
	case *syntax.LabeledStmt, *syntax.BranchStmt:
		return c.Name() == "Label"
	case *syntax.ImportSpec:
		return c.Name() == "Imported"
	case *syntax.ExportSpec:
		return c.Name() == "Exported"
	case *syntax.ExportDecl:
		return c.Name() == "Star"
	}
	return false
}

// bind declares the identifier id in scope s. A redeclaration in the
// same scope reuses the existing binding.
func (r *resolver) bind(s *Scope, id *syntax.Ident, decl syntax.Node, lexical bool) *Binding {
	r.decls[id] = true
	b := s.names[id.Name]
	if b != nil {
		if lexical || b.lexical {
			r.errorf(id.NamePos, "identifier %s has already been declared", id.Name)
		}
		b.Idents = append(b.Idents, id)
		b.RefScopes.Add(uint32(r.m.Current().ID))
		id.Binding = b
		return b
	}
	b = &Binding{
		Name:      id.Name,
		Scope:     s,
		Decl:      decl,
		Idents:    []*syntax.Ident{id},
		RefScopes: roaring.New(),
		lexical:   lexical,
	}
	b.RefScopes.Add(uint32(r.m.Current().ID))
	s.names[id.Name] = b
	s.Bindings = append(s.Bindings, b)
	id.Binding = b
	return b
}

// declareVar declares a var in the nearest function scope.
// The declaration conflicts with any lexical declaration of the same
// name in the scopes it is hoisted through.
//
// A var that redeclares the simple parameter of an enclosing catch
// clause declares the function-level variable, but its identifier, and
// any initializer, refer to the catch parameter. Neither binding may
// then be renamed, since one identifier spells both.
func (r *resolver) declareVar(id *syntax.Ident, decl *syntax.VarDeclarator) {
	var param *Binding // catch parameter redeclared by id
	s := r.m.Current()
	for ; s.Kind != Function && s.Kind != Global; s = s.Parent {
		b := s.names[id.Name]
		if b == nil {
			continue
		}
		cc, isCatch := s.Node.(*syntax.CatchClause)
		switch {
		case b.lexical:
			r.errorf(id.NamePos, "identifier %s has already been declared", id.Name)
		case isCatch && param == nil:
			if _, simple := cc.Param.(*syntax.Ident); !simple {
				r.errorf(id.NamePos, "identifier %s has already been declared", id.Name)
			}
			param = b
		}
	}
	if param == nil {
		r.bind(s, id, decl, false)
		return
	}

	cur := uint32(r.m.Current().ID)
	fb := s.names[id.Name]
	if fb == nil {
		fb = &Binding{
			Name:      id.Name,
			Scope:     s,
			Decl:      decl,
			RefScopes: roaring.New(),
		}
		s.names[id.Name] = fb
		s.Bindings = append(s.Bindings, fb)
	} else if fb.lexical {
		r.errorf(id.NamePos, "identifier %s has already been declared", id.Name)
	}
	fb.RefScopes.Add(cur)
	fb.Fixed, param.Fixed = true, true

	r.decls[id] = true
	id.Binding = param
	param.References = append(param.References, id)
	param.RefScopes.Add(cur)
	if decl.Init != nil {
		param.Reassigned = true
	}
}

// assignTargets marks the identifiers assigned by target x.
func (r *resolver) assignTargets(x syntax.Expr) {
	patternTargets(x, func(id *syntax.Ident) { r.targets[id] = true })
}

// patternTargets calls f for each identifier bound or assigned by the
// destructuring pattern x. Default values are not targets.
func patternTargets(x syntax.Expr, f func(*syntax.Ident)) {
	switch x := x.(type) {
	case *syntax.Ident:
		f(x)
	case *syntax.ArrayPattern:
		for _, elem := range x.Elems {
			if elem != nil {
				patternTargets(elem, f)
			}
		}
	case *syntax.ArrayExpr:
		for _, elem := range x.Elems {
			if elem != nil {
				patternTargets(elem, f)
			}
		}
	case *syntax.ObjectPattern:
		for _, prop := range x.Props {
			patternTargets(prop, f)
		}
	case *syntax.ObjectExpr:
		for _, prop := range x.Props {
			patternTargets(prop, f)
		}
	case *syntax.Property:
		patternTargets(x.Value, f)
	case *syntax.AssignPattern:
		patternTargets(x.Left, f)
	case *syntax.AssignExpr:
		patternTargets(x.X, f)
	case *syntax.SpreadElem:
		patternTargets(x.X, f)
	}
	// Member expressions are targets but bind nothing.
}

// resolveUses resolves the recorded uses in traversal order.
func (r *resolver) resolveUses() {
	for _, u := range r.uses {
		b := u.scope.Resolve(u.id.Name)
		if b == nil {
			bm := r.m.Free[u.id.Name]
			if bm == nil {
				bm = roaring.New()
				r.m.Free[u.id.Name] = bm
			}
			bm.Add(uint32(u.scope.ID))
			continue
		}
		u.id.Binding = b
		b.References = append(b.References, u.id)
		b.RefScopes.Add(uint32(u.scope.ID))
		if u.assigned {
			b.Reassigned = true
		}
	}

	for _, e := range r.evals {
		if e.id.Binding != nil {
			continue // a local function named eval
		}
		for s := e.scope; s != nil; s = s.Parent {
			s.Dynamic = true
		}
	}
}

