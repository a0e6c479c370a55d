// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress implements the semantics-preserving transformations
// of the minifier: constant folding, dead-branch elimination, and the
// removal of console calls and debugger statements.
//
// Each transformation is a Pass: a function from a Context to a
// syntax.Visitor. A Pipeline runs its passes in order, each as one
// complete traversal of the file. Passes mutate the tree only through
// the syntax.Cursor of the current callback.
//
// The scope model computed by the resolver is not refreshed between
// passes. A pass may delete the only occurrences of a binding, leaving
// a binding with stale references; it must not introduce new bindings.
package compress // import "github.com/jsmini/jsmini/compress"

import (
	"fmt"

	"github.com/jsmini/jsmini/resolve"
	"github.com/jsmini/jsmini/syntax"
)

// Options selects the passes of a pipeline.
type Options struct {
	ConstantFolding     bool // fold binary operations on literals
	DeadCodeElimination bool // remove if statements with a literal test
	BooleanOptimization bool // shorten true, false and undefined; applied when printing
	DropConsole         bool // remove calls of console methods
	DropDebugger        bool // remove debugger statements
}

// A Context carries the state shared by the passes of one compilation.
type Context struct {
	Model    *resolve.Model
	Options  Options
	Warnings []string
}

// Warnf records a warning about the construct at pos.
func (ctx *Context) Warnf(pos syntax.Position, format string, args ...interface{}) {
	ctx.Warnings = append(ctx.Warnings, pos.String()+": "+fmt.Sprintf(format, args...))
}

// A Pass is one transformation of a file.
type Pass struct {
	Name    string
	Visitor func(ctx *Context) *syntax.Visitor

	// Structural is set for passes that replace or delete statements.
	// The tree is checked for well-formedness after such a pass.
	Structural bool
}

// The built-in passes.
var (
	ConstantFolding     = Pass{Name: "constant-folding", Visitor: foldVisitor}
	DeadCodeElimination = Pass{Name: "dead-code", Visitor: deadBranchVisitor, Structural: true}
	DropConsole         = Pass{Name: "drop-console", Visitor: dropConsoleVisitor, Structural: true}
	DropDebugger        = Pass{Name: "drop-debugger", Visitor: dropDebuggerVisitor, Structural: true}
)

// A Pipeline is an ordered sequence of passes.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns the pipeline of built-in passes selected by opts,
// in the order constant folding, dead-branch elimination, console
// removal, debugger removal.
func NewPipeline(opts Options) *Pipeline {
	p := new(Pipeline)
	if opts.ConstantFolding {
		p.Add(ConstantFolding)
	}
	if opts.DeadCodeElimination {
		p.Add(DeadCodeElimination)
	}
	if opts.DropConsole {
		p.Add(DropConsole)
	}
	if opts.DropDebugger {
		p.Add(DropDebugger)
	}
	return p
}

// Add appends a pass to the pipeline.
func (p *Pipeline) Add(pass Pass) { p.passes = append(p.passes, pass) }

// Remove removes the named pass, reporting whether it was present.
func (p *Pipeline) Remove(name string) bool {
	for i, pass := range p.passes {
		if pass.Name == name {
			p.passes = append(p.passes[:i], p.passes[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the names of the passes, in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name
	}
	return names
}

// Run applies each pass of the pipeline to f in turn.
// It fails if a structural pass leaves a malformed tree.
func (p *Pipeline) Run(f *syntax.File, ctx *Context) error {
	for _, pass := range p.passes {
		syntax.Walk(f, pass.Visitor(ctx))
		if pass.Structural {
			if err := syntax.Check(f); err != nil {
				return fmt.Errorf("%s: %w", pass.Name, err)
			}
		}
	}
	return nil
}
