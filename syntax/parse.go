// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file converts the concrete syntax tree produced by the
// tree-sitter JavaScript grammar into the abstract syntax tree.
//
// Conversion errors are reported by panicking with an Error,
// recovered by Parse.

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// A SourceType selects between module and script goal symbols.
type SourceType uint8

const (
	Module SourceType = iota
	Script
)

func (t SourceType) String() string {
	if t == Script {
		return "script"
	}
	return "module"
}

// ParseOptions configures Parse.
type ParseOptions struct {
	// EcmaVersion is the newest language edition accepted, either as a
	// year (2015, 2020) or as an edition number (5, 6, 11).
	// Zero means DefaultEcmaVersion.
	EcmaVersion int
	SourceType  SourceType

	AllowImportExportEverywhere bool // accept import/export below the top level
	AllowReturnOutsideFunction  bool // accept return at the top level
}

// DefaultEcmaVersion is the language edition assumed when none is given.
const DefaultEcmaVersion = 2020

// NormalizeEcmaVersion maps an edition number to its year.
// Editions 6 through 2014 are numbered from ES2015.
func NormalizeEcmaVersion(v int) int {
	switch {
	case v <= 0:
		return DefaultEcmaVersion
	case v >= 6 && v < 2015:
		return v + 2009
	}
	return v
}

// Parse parses the JavaScript program src and returns the
// corresponding syntax tree. The filename is recorded in File.Path.
// A malformed program yields an Error.
func Parse(filename string, src []byte, opts ParseOptions) (f *File, err error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root, src)
	}

	p := converter{
		src:  src,
		opts: opts,
		ecma: NormalizeEcmaVersion(opts.EcmaVersion),
	}
	defer func() {
		if e := recover(); e != nil {
			if se, ok := e.(Error); ok {
				f, err = nil, se
				return
			}
			panic(e)
		}
	}()
	f = p.file(root)
	f.Path = filename
	return f, nil
}

// firstError returns an Error describing the first error or missing
// node of the tree, in source order.
func firstError(n *sitter.Node, src []byte) error {
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil || !n.HasError() && !n.IsMissing() {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(n)
	if found == nil {
		return Error{pos(n), "syntax error"}
	}
	if found.IsMissing() {
		return Error{pos(found), fmt.Sprintf("missing %s", found.Type())}
	}
	text := strings.TrimSpace(found.Content(src))
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if len(text) > 20 {
		text = text[:20] + "..."
	}
	if text == "" {
		return Error{pos(found), "unexpected end of input"}
	}
	return Error{pos(found), fmt.Sprintf("unexpected token %q", text)}
}

func pos(n *sitter.Node) Position {
	pt := n.StartPoint()
	return Position{Line: int32(pt.Row) + 1, Col: int32(pt.Column) + 1}
}

type converter struct {
	src  []byte
	opts ParseOptions
	ecma int

	depth     int // statement nesting depth
	funcDepth int // function nesting depth
}

func (p *converter) errorf(n *sitter.Node, format string, args ...interface{}) {
	panic(Error{pos(n), fmt.Sprintf(format, args...)})
}

// require reports an error if the requested language edition
// predates the one that introduced feature.
func (p *converter) require(n *sitter.Node, feature string, version int) {
	if p.ecma < version {
		p.errorf(n, "%s requires ecmaVersion %d or later", feature, version)
	}
}

func (p *converter) text(n *sitter.Node) string { return n.Content(p.src) }

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "html_comment", "hash_bang_line":
		return true
	}
	return false
}

// named returns the named children of n, excluding comments.
func named(n *sitter.Node) []*sitter.Node {
	var list []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); !isComment(c) {
			list = append(list, c)
		}
	}
	return list
}

// firstNamed returns the first non-comment named child of n, or nil.
func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); !isComment(c) {
			return c
		}
	}
	return nil
}

// hasToken reports whether n has an anonymous child with the given text
// before its child named field (or anywhere, if field is empty).
func hasToken(n *sitter.Node, tok, field string) bool {
	var stop *sitter.Node
	if field != "" {
		stop = n.ChildByFieldName(field)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if stop != nil && c.StartByte() >= stop.StartByte() {
			break
		}
		if !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (p *converter) file(n *sitter.Node) *File {
	f := &File{Module: p.opts.SourceType == Module}
	for _, c := range named(n) {
		f.Stmts = append(f.Stmts, p.stmt(c))
	}
	return f
}

func (p *converter) stmts(list []*sitter.Node) []Stmt {
	var stmts []Stmt
	for _, c := range list {
		stmts = append(stmts, p.stmt(c))
	}
	return stmts
}

func (p *converter) block(n *sitter.Node) *BlockStmt {
	if n.Type() != "statement_block" {
		p.errorf(n, "expected block, found %s", n.Type())
	}
	return &BlockStmt{Lbrace: pos(n), List: p.stmts(named(n))}
}

func (p *converter) stmt(n *sitter.Node) Stmt {
	p.depth++
	defer func() { p.depth-- }()

	switch n.Type() {
	case "expression_statement":
		return &ExprStmt{X: p.expr(firstNamed(n))}

	case "variable_declaration", "lexical_declaration":
		return p.varDecl(n)

	case "function_declaration", "generator_function_declaration":
		return &FuncDecl{Function: p.function(n)}

	case "class_declaration":
		return &ClassDecl{Class: p.class(n)}

	case "statement_block":
		return p.block(n)

	case "if_statement":
		s := &IfStmt{
			If:   pos(n),
			Cond: p.paren(n.ChildByFieldName("condition")),
			Then: p.stmt(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstNamed(alt)
			}
			s.Else = p.stmt(alt)
		}
		return s

	case "switch_statement":
		s := &SwitchStmt{Switch: pos(n), Tag: p.paren(n.ChildByFieldName("value"))}
		for _, c := range named(n.ChildByFieldName("body")) {
			cc := &CaseClause{Case: pos(c)}
			children := named(c)
			if c.Type() == "switch_case" {
				cc.Test = p.expr(children[0])
				children = children[1:]
			}
			cc.Body = p.stmts(children)
			s.Cases = append(s.Cases, cc)
		}
		return s

	case "for_statement":
		return p.forStmt(n)

	case "for_in_statement":
		return p.forInStmt(n)

	case "while_statement":
		return &WhileStmt{
			While: pos(n),
			Cond:  p.paren(n.ChildByFieldName("condition")),
			Body:  p.stmt(n.ChildByFieldName("body")),
		}

	case "do_statement":
		return &DoWhileStmt{
			Do:   pos(n),
			Body: p.stmt(n.ChildByFieldName("body")),
			Cond: p.paren(n.ChildByFieldName("condition")),
		}

	case "try_statement":
		s := &TryStmt{Try: pos(n), Body: p.block(n.ChildByFieldName("body"))}
		if h := n.ChildByFieldName("handler"); h != nil {
			cc := &CatchClause{Catch: pos(h), Body: p.block(h.ChildByFieldName("body"))}
			if param := h.ChildByFieldName("parameter"); param != nil {
				cc.Param = p.pattern(param)
			}
			s.Catch = cc
		}
		if f := n.ChildByFieldName("finalizer"); f != nil {
			s.Finally = p.block(f.ChildByFieldName("body"))
		}
		return s

	case "break_statement", "continue_statement":
		s := &BranchStmt{Token: BREAK, TokenPos: pos(n)}
		if n.Type() == "continue_statement" {
			s.Token = CONTINUE
		}
		if label := n.ChildByFieldName("label"); label != nil {
			s.Label = p.ident(label)
		} else if c := firstNamed(n); c != nil && c.Type() == "statement_identifier" {
			s.Label = p.ident(c)
		}
		return s

	case "return_statement":
		if p.funcDepth == 0 && !p.opts.AllowReturnOutsideFunction {
			p.errorf(n, "'return' outside of function")
		}
		s := &ReturnStmt{Return: pos(n)}
		if c := firstNamed(n); c != nil {
			s.Result = p.expr(c)
		}
		return s

	case "throw_statement":
		return &ThrowStmt{Throw: pos(n), X: p.expr(firstNamed(n))}

	case "empty_statement":
		return &EmptyStmt{Semi: pos(n)}

	case "labeled_statement":
		label := n.ChildByFieldName("label")
		body := n.ChildByFieldName("body")
		if label == nil || body == nil {
			children := named(n)
			label, body = children[0], children[len(children)-1]
		}
		return &LabeledStmt{Label: p.ident(label), Body: p.stmt(body)}

	case "debugger_statement":
		return &DebuggerStmt{Debugger: pos(n)}

	case "with_statement":
		if p.opts.SourceType == Module {
			p.errorf(n, "'with' in strict mode")
		}
		return &WithStmt{
			With: pos(n),
			X:    p.paren(n.ChildByFieldName("object")),
			Body: p.stmt(n.ChildByFieldName("body")),
		}

	case "import_statement":
		p.checkModuleItem(n, "import")
		return p.importDecl(n)

	case "export_statement":
		p.checkModuleItem(n, "export")
		return p.exportDecl(n)
	}
	p.errorf(n, "unsupported statement %s", n.Type())
	panic("unreachable")
}

func (p *converter) checkModuleItem(n *sitter.Node, keyword string) {
	p.require(n, keyword, 2015)
	if p.opts.SourceType != Module {
		p.errorf(n, "'import' and 'export' may appear only with 'sourceType: module'")
	}
	if p.depth > 1 && !p.opts.AllowImportExportEverywhere {
		p.errorf(n, "'import' and 'export' may only appear at the top level")
	}
}

func (p *converter) varDecl(n *sitter.Node) *VarDecl {
	d := &VarDecl{VarPos: pos(n), Token: VAR}
	if n.Type() == "lexical_declaration" {
		p.require(n, "let and const", 2015)
		kind := n.ChildByFieldName("kind")
		if kind == nil {
			kind = n.Child(0)
		}
		if p.text(kind) == "const" {
			d.Token = CONST
		} else {
			d.Token = LET
		}
	}
	for _, c := range named(n) {
		if c.Type() != "variable_declarator" {
			continue
		}
		decl := &VarDeclarator{Name: p.pattern(c.ChildByFieldName("name"))}
		if v := c.ChildByFieldName("value"); v != nil {
			decl.Init = p.expr(v)
		}
		d.List = append(d.List, decl)
	}
	return d
}

func (p *converter) forStmt(n *sitter.Node) *ForStmt {
	s := &ForStmt{For: pos(n)}
	if init := n.ChildByFieldName("initializer"); init != nil && init.IsNamed() {
		switch init.Type() {
		case "variable_declaration", "lexical_declaration":
			s.Init = p.varDecl(init)
		case "expression_statement":
			s.Init = &ExprStmt{X: p.expr(firstNamed(init))}
		case "empty_statement":
		default:
			s.Init = &ExprStmt{X: p.expr(init)}
		}
	}
	if cond := n.ChildByFieldName("condition"); cond != nil && cond.IsNamed() {
		switch cond.Type() {
		case "expression_statement":
			s.Cond = p.expr(firstNamed(cond))
		case "empty_statement":
		default:
			s.Cond = p.expr(cond)
		}
	}
	if post := n.ChildByFieldName("increment"); post != nil {
		s.Post = p.expr(post)
	}
	s.Body = p.stmt(n.ChildByFieldName("body"))
	return s
}

func (p *converter) forInStmt(n *sitter.Node) *ForInStmt {
	s := &ForInStmt{For: pos(n)}
	var kind Token
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.IsNamed() {
			continue
		}
		switch c.Type() {
		case "var":
			kind = VAR
		case "let":
			kind = LET
		case "const":
			kind = CONST
		case "await":
			s.Await = true
		case "of":
			s.Of = true
		}
	}
	if s.Of {
		p.require(n, "for-of", 2015)
	}
	if s.Await {
		p.require(n, "for-await", 2018)
	}
	left := n.ChildByFieldName("left")
	if kind != 0 {
		if kind != VAR {
			p.require(n, "let and const", 2015)
		}
		s.Left = &VarDecl{
			VarPos: pos(n),
			Token:  kind,
			List:   []*VarDeclarator{{Name: p.pattern(left)}},
		}
	} else {
		s.Left = &ExprStmt{X: p.pattern(left)}
	}
	s.Right = p.expr(n.ChildByFieldName("right"))
	s.Body = p.stmt(n.ChildByFieldName("body"))
	return s
}

func (p *converter) importDecl(n *sitter.Node) *ImportDecl {
	d := &ImportDecl{Import: pos(n)}
	for _, c := range named(n) {
		switch c.Type() {
		case "import_clause":
			for _, cc := range named(c) {
				switch cc.Type() {
				case "identifier":
					d.Specs = append(d.Specs, &ImportSpec{SpecKind: ImportDefault, Local: p.ident(cc)})
				case "namespace_import":
					d.Specs = append(d.Specs, &ImportSpec{SpecKind: ImportNamespace, Local: p.ident(firstNamed(cc))})
				case "named_imports":
					for _, spec := range named(cc) {
						if spec.Type() != "import_specifier" {
							continue
						}
						name := p.ident(spec.ChildByFieldName("name"))
						var local *Ident
						if alias := spec.ChildByFieldName("alias"); alias != nil {
							local = p.ident(alias)
						} else {
							local = &Ident{NamePos: name.NamePos, Name: name.Name}
						}
						d.Specs = append(d.Specs, &ImportSpec{SpecKind: ImportNamed, Imported: name, Local: local})
					}
				}
			}
		case "string":
			d.Source = p.stringLit(c)
		}
	}
	if src := n.ChildByFieldName("source"); src != nil {
		d.Source = p.stringLit(src)
	}
	if d.Source == nil {
		p.errorf(n, "import has no source")
	}
	return d
}

func (p *converter) exportDecl(n *sitter.Node) *ExportDecl {
	d := &ExportDecl{Export: pos(n), Default: hasToken(n, "default", ""), All: hasToken(n, "*", "")}
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		switch decl.Type() {
		case "function_expression", "function", "generator_function":
			// export default function () {}
			d.Decl = &FuncDecl{Function: p.function(decl)}
		case "class":
			d.Decl = &ClassDecl{Class: p.class(decl)}
		default:
			d.Decl = p.stmt(decl)
		}
		return d
	}
	if v := n.ChildByFieldName("value"); v != nil {
		d.X = p.expr(v)
		return d
	}
	for _, c := range named(n) {
		switch c.Type() {
		case "export_clause":
			for _, spec := range named(c) {
				if spec.Type() != "export_specifier" {
					continue
				}
				es := &ExportSpec{Local: p.ident(spec.ChildByFieldName("name"))}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					es.Exported = p.ident(alias)
				}
				d.Specs = append(d.Specs, es)
			}
		case "namespace_export":
			d.Star = p.ident(firstNamed(c))
		case "identifier":
			d.Star = p.ident(c)
		case "string":
			d.Source = p.stringLit(c)
		}
	}
	if src := n.ChildByFieldName("source"); src != nil {
		d.Source = p.stringLit(src)
	}
	return d
}

// ident converts any identifier-like node.
func (p *converter) ident(n *sitter.Node) *Ident {
	if n == nil {
		panic(Error{Msg: "missing identifier"})
	}
	if n.Type() == "private_property_identifier" {
		p.require(n, "private class members", 2022)
	}
	return &Ident{NamePos: pos(n), Name: p.text(n)}
}

// paren converts a parenthesized_expression to its contents.
func (p *converter) paren(n *sitter.Node) Expr {
	if n.Type() == "parenthesized_expression" {
		return p.expr(firstNamed(n))
	}
	return p.expr(n)
}

func (p *converter) stringLit(n *sitter.Node) *Literal {
	raw := p.text(n)
	lit := &Literal{Token: STRING, TokenPos: pos(n), Raw: raw}
	if s, err := Unquote(raw); err == nil {
		lit.Value = s
	}
	return lit
}

func (p *converter) numberLit(n *sitter.Node) *Literal {
	raw := p.text(n)
	if strings.HasSuffix(raw, "n") {
		p.require(n, "BigInt", 2020)
		v, ok := new(big.Int).SetString(strings.TrimSuffix(raw, "n"), 0)
		if !ok {
			p.errorf(n, "invalid BigInt literal %s", raw)
		}
		return &Literal{Token: BIGINT, TokenPos: pos(n), Raw: raw, Value: v}
	}
	v, err := ParseNumber(raw)
	if err != nil {
		p.errorf(n, "%v", err)
	}
	return &Literal{Token: NUMBER, TokenPos: pos(n), Raw: raw, Value: v}
}

func (p *converter) expr(n *sitter.Node) Expr {
	if n == nil {
		panic(Error{Msg: "missing expression"})
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier", "undefined":
		return p.ident(n)

	case "private_property_identifier":
		return p.ident(n)

	case "this":
		return &ThisExpr{This: pos(n)}

	case "super":
		return &SuperExpr{Super: pos(n)}

	case "true", "false":
		return &Literal{Token: BOOL, TokenPos: pos(n), Raw: n.Type(), Value: n.Type() == "true"}

	case "null":
		return &Literal{Token: NULL, TokenPos: pos(n), Raw: "null"}

	case "number":
		return p.numberLit(n)

	case "string":
		return p.stringLit(n)

	case "template_string":
		return p.template(n)

	case "regex":
		x := &RegExpLit{TokenPos: pos(n)}
		if pat := n.ChildByFieldName("pattern"); pat != nil {
			x.Pattern = p.text(pat)
		}
		if flags := n.ChildByFieldName("flags"); flags != nil {
			x.Flags = p.text(flags)
		}
		return x

	case "array":
		x := &ArrayExpr{Lbrack: pos(n)}
		x.Elems = p.elements(n, p.expr)
		return x

	case "object":
		return p.object(n)

	case "function", "function_expression", "generator_function":
		return &FuncExpr{Function: p.function(n)}

	case "arrow_function":
		return p.arrow(n)

	case "class":
		return &ClassExpr{Class: p.class(n)}

	case "parenthesized_expression":
		return p.expr(firstNamed(n))

	case "sequence_expression":
		x := &SeqExpr{}
		p.flattenSeq(n, &x.List)
		return x

	case "member_expression":
		x := &DotExpr{
			X:        p.object2(n.ChildByFieldName("object")),
			Dot:      pos(n),
			Name:     p.ident(n.ChildByFieldName("property")),
			Optional: p.optional(n),
		}
		return x

	case "subscript_expression":
		return &IndexExpr{
			X:        p.object2(n.ChildByFieldName("object")),
			Lbrack:   pos(n),
			Y:        p.expr(n.ChildByFieldName("index")),
			Optional: p.optional(n),
		}

	case "call_expression":
		fn := p.object2(n.ChildByFieldName("function"))
		args := n.ChildByFieldName("arguments")
		if args.Type() == "template_string" {
			return &TaggedTemplate{Tag: fn, Quasi: p.template(args)}
		}
		return &CallExpr{
			Fn:       fn,
			Lparen:   pos(args),
			Args:     p.elements(args, p.expr),
			Optional: p.optional(n),
		}

	case "new_expression":
		x := &NewExpr{New: pos(n), Fn: p.expr(n.ChildByFieldName("constructor"))}
		if args := n.ChildByFieldName("arguments"); args != nil {
			x.Args = p.elements(args, p.expr)
		}
		return x

	case "await_expression":
		p.require(n, "await", 2017)
		return &AwaitExpr{Await: pos(n), X: p.expr(firstNamed(n))}

	case "yield_expression":
		p.require(n, "yield", 2015)
		x := &YieldExpr{Yield: pos(n), Delegate: hasToken(n, "*", "")}
		if c := firstNamed(n); c != nil {
			x.X = p.expr(c)
		}
		return x

	case "unary_expression":
		op := p.operator(n)
		return &UnaryExpr{OpPos: pos(n), Op: op, X: p.expr(n.ChildByFieldName("argument"))}

	case "update_expression":
		op := p.operator(n)
		prefix := n.ChildCount() > 0 && !n.Child(0).IsNamed()
		return &UpdateExpr{OpPos: pos(n), Op: op, Prefix: prefix, X: p.pattern(n.ChildByFieldName("argument"))}

	case "binary_expression":
		op := p.operator(n)
		switch op {
		case STARSTAR:
			p.require(n, "exponentiation", 2016)
		case QQ:
			p.require(n, "nullish coalescing", 2020)
		}
		return &BinaryExpr{
			X:     p.expr(n.ChildByFieldName("left")),
			OpPos: pos(n.ChildByFieldName("operator")),
			Op:    op,
			Y:     p.expr(n.ChildByFieldName("right")),
		}

	case "assignment_expression", "augmented_assignment_expression":
		op := EQ
		if n.Type() == "augmented_assignment_expression" {
			op = p.operator(n)
			switch op {
			case STARSTAR_EQ:
				p.require(n, "exponentiation", 2016)
			case ANDAND_EQ, OROR_EQ, QQ_EQ:
				p.require(n, "logical assignment", 2021)
			}
		}
		left := n.ChildByFieldName("left")
		return &AssignExpr{
			X:     p.pattern(left),
			OpPos: pos(left),
			Op:    op,
			Y:     p.expr(n.ChildByFieldName("right")),
		}

	case "ternary_expression":
		return &CondExpr{
			Cond:  p.expr(n.ChildByFieldName("condition")),
			True:  p.expr(n.ChildByFieldName("consequence")),
			False: p.expr(n.ChildByFieldName("alternative")),
		}

	case "spread_element":
		p.require(n, "spread", 2015)
		return &SpreadElem{Ellipsis: pos(n), X: p.expr(firstNamed(n))}

	case "meta_property", "import":
		return &MetaProperty{TokenPos: pos(n), Raw: p.text(n)}
	}
	p.errorf(n, "unsupported expression %s", n.Type())
	panic("unreachable")
}

// object2 converts the object or callee of a member or call expression.
func (p *converter) object2(n *sitter.Node) Expr {
	if n != nil && n.Type() == "import" {
		return &MetaProperty{TokenPos: pos(n), Raw: "import"}
	}
	return p.expr(n)
}

// optional reports whether a member or call expression uses ?.
func (p *converter) optional(n *sitter.Node) bool {
	if n.ChildByFieldName("optional_chain") != nil || hasToken(n, "?.", "") {
		p.require(n, "optional chaining", 2020)
		return true
	}
	return false
}

// operator returns the operator token of a unary, update, binary or
// augmented assignment node.
func (p *converter) operator(n *sitter.Node) Token {
	var text string
	if op := n.ChildByFieldName("operator"); op != nil {
		text = p.text(op)
	} else {
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); !c.IsNamed() {
				text = c.Type()
				break
			}
		}
	}
	tok, ok := LookupOperator(text)
	if !ok {
		p.errorf(n, "unsupported operator %q", text)
	}
	return tok
}

func (p *converter) flattenSeq(n *sitter.Node, list *[]Expr) {
	for _, c := range named(n) {
		if c.Type() == "sequence_expression" {
			p.flattenSeq(c, list)
		} else {
			*list = append(*list, p.expr(c))
		}
	}
}

// elements converts the comma-separated elements of an array, array
// pattern or argument list. An elision yields a nil element.
func (p *converter) elements(n *sitter.Node, conv func(*sitter.Node) Expr) []Expr {
	list := []Expr{}
	pending := false // an element has been seen since the last comma
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if isComment(c) {
			continue
		}
		if !c.IsNamed() {
			if c.Type() == "," {
				if !pending {
					list = append(list, nil)
				}
				pending = false
			}
			continue
		}
		list = append(list, conv(c))
		pending = true
	}
	return list
}

func (p *converter) template(n *sitter.Node) *TemplateLit {
	p.require(n, "template literals", 2015)
	x := &TemplateLit{Backquote: pos(n)}
	start := n.StartByte() + 1
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "template_substitution" {
			continue
		}
		x.Quasis = append(x.Quasis, string(p.src[start:c.StartByte()]))
		x.Exprs = append(x.Exprs, p.expr(firstNamed(c)))
		start = c.EndByte()
	}
	x.Quasis = append(x.Quasis, string(p.src[start:n.EndByte()-1]))
	return x
}

func (p *converter) object(n *sitter.Node) *ObjectExpr {
	x := &ObjectExpr{Lbrace: pos(n)}
	for _, c := range named(n) {
		switch c.Type() {
		case "pair":
			key, computed := p.propertyKey(c.ChildByFieldName("key"))
			x.Props = append(x.Props, &Property{Key: key, Computed: computed, Value: p.expr(c.ChildByFieldName("value"))})
		case "shorthand_property_identifier":
			p.require(c, "shorthand properties", 2015)
			x.Props = append(x.Props, &Property{Key: p.ident(c), Value: p.ident(c), Shorthand: true})
		case "spread_element":
			p.require(c, "object spread", 2018)
			x.Props = append(x.Props, &SpreadElem{Ellipsis: pos(c), X: p.expr(firstNamed(c))})
		case "method_definition":
			key, computed, kind, f := p.method(c)
			x.Props = append(x.Props, &Property{PropKind: kind, Key: key, Computed: computed, Value: f})
		default:
			p.errorf(c, "unsupported object member %s", c.Type())
		}
	}
	return x
}

// propertyKey converts a property name, reporting whether it is computed.
func (p *converter) propertyKey(n *sitter.Node) (Expr, bool) {
	switch n.Type() {
	case "property_identifier", "identifier", "private_property_identifier", "shorthand_property_identifier":
		return p.ident(n), false
	case "string":
		return p.stringLit(n), false
	case "number":
		return p.numberLit(n), false
	case "computed_property_name":
		p.require(n, "computed property names", 2015)
		return p.expr(firstNamed(n)), true
	}
	p.errorf(n, "unsupported property name %s", n.Type())
	panic("unreachable")
}

// method converts a method_definition of an object literal or class body.
func (p *converter) method(n *sitter.Node) (key Expr, computed bool, kind PropKind, f *FuncExpr) {
	kind = Method
	f = &FuncExpr{Function: Function{FuncPos: pos(n)}}
	nameNode := n.ChildByFieldName("name")
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if sameNode(c, nameNode) {
			break
		}
		switch c.Type() {
		case "get", "static get":
			kind = Get
		case "set":
			kind = Set
		case "*":
			f.Generator = true
		case "async":
			p.require(c, "async functions", 2017)
			f.Async = true
		}
	}
	key, computed = p.propertyKey(nameNode)
	p.funcDepth++
	f.Params = p.params(n.ChildByFieldName("parameters"))
	f.Body = p.block(n.ChildByFieldName("body"))
	p.funcDepth--
	return key, computed, kind, f
}

func (p *converter) function(n *sitter.Node) Function {
	f := Function{FuncPos: pos(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		f.Name = p.ident(name)
	}
	f.Generator = strings.HasPrefix(n.Type(), "generator_") || hasToken(n, "*", "parameters")
	if f.Generator {
		p.require(n, "generators", 2015)
	}
	if hasToken(n, "async", "parameters") {
		p.require(n, "async functions", 2017)
		f.Async = true
	}
	p.funcDepth++
	f.Params = p.params(n.ChildByFieldName("parameters"))
	f.Body = p.block(n.ChildByFieldName("body"))
	p.funcDepth--
	return f
}

func (p *converter) arrow(n *sitter.Node) *ArrowFunc {
	p.require(n, "arrow functions", 2015)
	x := &ArrowFunc{StartPos: pos(n)}
	if hasToken(n, "async", "body") {
		p.require(n, "async functions", 2017)
		x.Async = true
	}
	if param := n.ChildByFieldName("parameter"); param != nil {
		x.Params = []Expr{p.pattern(param)}
	} else {
		x.Params = p.params(n.ChildByFieldName("parameters"))
	}
	p.funcDepth++
	defer func() { p.funcDepth-- }()
	body := n.ChildByFieldName("body")
	if body.Type() == "statement_block" {
		x.Body = p.block(body)
	} else {
		x.Expr = p.expr(body)
	}
	return x
}

func (p *converter) params(n *sitter.Node) []Expr {
	if n == nil {
		return nil
	}
	var params []Expr
	for _, c := range named(n) {
		params = append(params, p.pattern(c))
	}
	return params
}

func (p *converter) class(n *sitter.Node) Class {
	p.require(n, "classes", 2015)
	c := Class{ClassPos: pos(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = p.ident(name)
	}
	for _, child := range named(n) {
		switch child.Type() {
		case "class_heritage":
			c.Super = p.expr(firstNamed(child))
		case "decorator":
			p.errorf(child, "decorators are not supported")
		}
	}
	for _, m := range named(n.ChildByFieldName("body")) {
		switch m.Type() {
		case "method_definition":
			key, computed, kind, f := p.method(m)
			c.Body = append(c.Body, &MethodDef{
				Static:   hasToken(m, "static", "name") || hasToken(m, "static get", "name"),
				PropKind: kind,
				Key:      key,
				Computed: computed,
				Value:    f,
			})
		case "field_definition":
			p.require(m, "class fields", 2022)
			key, computed := p.propertyKey(m.ChildByFieldName("property"))
			fd := &FieldDef{Static: hasToken(m, "static", "property"), Key: key, Computed: computed}
			if v := m.ChildByFieldName("value"); v != nil {
				p.funcDepth++
				fd.Value = p.expr(v)
				p.funcDepth--
			}
			c.Body = append(c.Body, fd)
		case "class_static_block":
			p.require(m, "class static blocks", 2022)
			p.funcDepth++
			c.Body = append(c.Body, &StaticBlock{Static: pos(m), Body: p.block(m.ChildByFieldName("body"))})
			p.funcDepth--
		default:
			p.errorf(m, "unsupported class member %s", m.Type())
		}
	}
	return c
}

// pattern converts a binding or assignment target.
func (p *converter) pattern(n *sitter.Node) Expr {
	if n == nil {
		panic(Error{Msg: "missing binding pattern"})
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern", "undefined":
		return p.ident(n)

	case "member_expression", "subscript_expression":
		return p.expr(n)

	case "parenthesized_expression":
		return p.pattern(firstNamed(n))

	case "assignment_pattern", "assignment_expression":
		p.require(n, "default values", 2015)
		left := n.ChildByFieldName("left")
		return &AssignPattern{Left: p.pattern(left), Eq: pos(n), Right: p.expr(n.ChildByFieldName("right"))}

	case "rest_pattern", "spread_element":
		p.require(n, "rest elements", 2015)
		return &SpreadElem{Ellipsis: pos(n), X: p.pattern(firstNamed(n))}

	case "array_pattern", "array":
		p.require(n, "destructuring", 2015)
		return &ArrayPattern{Lbrack: pos(n), Elems: p.elements(n, p.pattern)}

	case "object_pattern", "object":
		p.require(n, "destructuring", 2015)
		x := &ObjectPattern{Lbrace: pos(n)}
		for _, c := range named(n) {
			switch c.Type() {
			case "pair_pattern", "pair":
				key, computed := p.propertyKey(c.ChildByFieldName("key"))
				x.Props = append(x.Props, &Property{Key: key, Computed: computed, Value: p.pattern(c.ChildByFieldName("value"))})
			case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
				x.Props = append(x.Props, &Property{Key: p.ident(c), Value: p.ident(c), Shorthand: true})
			case "object_assignment_pattern":
				left := c.ChildByFieldName("left")
				right := p.expr(c.ChildByFieldName("right"))
				if t := left.Type(); t != "shorthand_property_identifier_pattern" && t != "identifier" {
					p.errorf(left, "invalid destructuring target")
				}
				x.Props = append(x.Props, &Property{
					Key:       p.ident(left),
					Value:     &AssignPattern{Left: p.ident(left), Eq: pos(c), Right: right},
					Shorthand: true,
				})
			case "rest_pattern", "spread_element":
				p.require(c, "object rest", 2018)
				x.Props = append(x.Props, &SpreadElem{Ellipsis: pos(c), X: p.pattern(firstNamed(c))})
			default:
				p.errorf(c, "unsupported pattern member %s", c.Type())
			}
		}
		return x
	}
	p.errorf(n, "invalid assignment target %s", n.Type())
	panic("unreachable")
}
