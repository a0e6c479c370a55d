// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minify is the entry point of the minifier.
//
// Minify parses a program, resolves its scopes, runs the selected
// compression passes and the mangler, and prints the result:
//
//	res, err := minify.Minify(src, minify.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	os.Stdout.WriteString(res.Code)
//
// Each call owns its syntax tree and scope model, so concurrent calls
// do not interfere.
package minify // import "github.com/jsmini/jsmini/minify"

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jsmini/jsmini/compress"
	"github.com/jsmini/jsmini/mangle"
	"github.com/jsmini/jsmini/printer"
	"github.com/jsmini/jsmini/resolve"
	"github.com/jsmini/jsmini/syntax"
)

// CompressOptions selects the compression passes.
type CompressOptions = compress.Options

// MangleOptions configures renaming of local variables.
type MangleOptions struct {
	Enabled           bool
	ReservedNames     []string // never produced, never changed
	KeepClassNames    bool
	KeepFunctionNames bool
}

// Options configures Minify.
type Options struct {
	Compress  *CompressOptions // nil disables every compression pass
	Mangle    *MangleOptions   // nil or !Enabled disables the mangler
	Output    printer.Config
	SourceMap bool // populate Result.Map

	// Ecma is the language edition accepted by the parser.
	// Zero means syntax.DefaultEcmaVersion.
	Ecma int

	// SourceType is "module" (the default) or "script".
	SourceType string

	// Filename names the input in the source map.
	// Empty means "input.js".
	Filename string
}

// DefaultOptions returns the options used when none are given:
// every compression pass except the drop passes, no mangling,
// ECMAScript 2020 module code.
func DefaultOptions() Options {
	return Options{
		Compress: &CompressOptions{
			ConstantFolding:     true,
			DeadCodeElimination: true,
			BooleanOptimization: true,
		},
		Ecma:       syntax.DefaultEcmaVersion,
		SourceType: "module",
	}
}

// A Result is the output of Minify.
type Result struct {
	Code     string
	Map      *structpb.Struct // nil unless Options.SourceMap
	Warnings []string         // never nil
}

// MapJSON returns the source map as JSON, or nil if there is none.
func (r *Result) MapJSON() ([]byte, error) {
	if r.Map == nil {
		return nil, nil
	}
	return protojson.Marshal(r.Map)
}

// Minify returns the minified form of the program src.
//
// Empty input yields empty code without parsing. A syntax error, a
// scope error, or a malformed tree left by a pass fails the call; the
// error wraps the underlying syntax.Error, resolve.ErrorList or
// *printer.Error.
func Minify(src []byte, opts Options) (*Result, error) {
	if len(src) == 0 {
		return &Result{Code: "", Warnings: []string{}}, nil
	}

	popts, err := parseOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}
	f, err := syntax.Parse(opts.filename(), src, popts)
	if err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}
	m, err := resolve.File(f)
	if err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}

	warnings := []string{}
	if opts.Compress != nil {
		ctx := &compress.Context{Model: m, Options: *opts.Compress}
		if err := compress.NewPipeline(*opts.Compress).Run(f, ctx); err != nil {
			return nil, fmt.Errorf("minify: %w", err)
		}
		warnings = append(warnings, ctx.Warnings...)
	}

	var renamed []string
	if mo := opts.Mangle; mo != nil && mo.Enabled {
		mangle.File(f, m, mangle.Options{
			Reserved:          mo.ReservedNames,
			KeepClassNames:    mo.KeepClassNames,
			KeepFunctionNames: mo.KeepFunctionNames,
		})
		renamed = renamedNames(m)
	}

	out, err := printer.Print(f, &opts.Output)
	if err != nil {
		return nil, fmt.Errorf("minify: %w", err)
	}

	res := &Result{Code: printer.PostProcess(out), Warnings: warnings}
	if opts.SourceMap {
		res.Map, err = sourceMap(opts.filename(), renamed)
		if err != nil {
			return nil, fmt.Errorf("minify: %w", err)
		}
	}
	return res, nil
}

func (opts *Options) filename() string {
	if opts.Filename == "" {
		return "input.js"
	}
	return opts.Filename
}

func parseOptions(opts Options) (syntax.ParseOptions, error) {
	popts := syntax.ParseOptions{EcmaVersion: opts.Ecma}
	switch strings.ToLower(opts.SourceType) {
	case "", "module":
		popts.SourceType = syntax.Module
	case "script":
		popts.SourceType = syntax.Script
	default:
		return popts, fmt.Errorf("invalid source type %q", opts.SourceType)
	}
	return popts, nil
}

// renamedNames returns the original names of the renamed bindings,
// in scope order, without duplicates.
func renamedNames(m *resolve.Model) []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range m.Bindings() {
		if b.ShortName != "" && !seen[b.Name] {
			seen[b.Name] = true
			names = append(names, b.Name)
		}
	}
	return names
}

// sourceMap returns a value with the shape of a version 3 source map.
// It records the source and the renamed identifiers but no mappings.
func sourceMap(filename string, names []string) (*structpb.Struct, error) {
	nameList := make([]interface{}, len(names))
	for i, name := range names {
		nameList[i] = name
	}
	return structpb.NewStruct(map[string]interface{}{
		"version":  3,
		"sources":  []interface{}{filename},
		"names":    nameList,
		"mappings": "",
	})
}
