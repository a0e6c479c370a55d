// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a JavaScript parser and abstract syntax tree.
//
// The tree is a tree: every node is owned by exactly one parent slot.
// Passes that rewrite the tree do so through the Cursor supplied by Walk.
package syntax

import "math/big"

// A Node is a node in a JavaScript syntax tree.
type Node interface {
	// Kind returns the discriminant of the node.
	Kind() Kind
	// Pos returns the start position of the node.
	Pos() Position
}

// A File represents a JavaScript program.
type File struct {
	Path   string
	Stmts  []Stmt
	Module bool // parsed as an ECMAScript module
}

// A Stmt is a JavaScript statement or declaration.
type Stmt interface {
	Node
	stmt()
}

func (*BlockStmt) stmt()    {}
func (*BranchStmt) stmt()   {}
func (*ClassDecl) stmt()    {}
func (*DebuggerStmt) stmt() {}
func (*DoWhileStmt) stmt()  {}
func (*EmptyStmt) stmt()    {}
func (*ExportDecl) stmt()   {}
func (*ExprStmt) stmt()     {}
func (*ForInStmt) stmt()    {}
func (*ForStmt) stmt()      {}
func (*FuncDecl) stmt()     {}
func (*IfStmt) stmt()       {}
func (*ImportDecl) stmt()   {}
func (*LabeledStmt) stmt()  {}
func (*ReturnStmt) stmt()   {}
func (*SwitchStmt) stmt()   {}
func (*ThrowStmt) stmt()    {}
func (*TryStmt) stmt()      {}
func (*VarDecl) stmt()      {}
func (*WhileStmt) stmt()    {}
func (*WithStmt) stmt()     {}

// A BlockStmt is a braced statement list: { List }.
type BlockStmt struct {
	Lbrace Position
	List   []Stmt
}

// A BranchStmt is a break or continue statement, with an optional label.
type BranchStmt struct {
	Token    Token // = BREAK | CONTINUE
	TokenPos Position
	Label    *Ident // optional
}

// A Function represents the common parts of FuncDecl and FuncExpr.
type Function struct {
	FuncPos   Position // position of 'function' or 'async'
	Name      *Ident   // optional for expressions and default exports
	Params    []Expr   // param = pattern | AssignPattern | SpreadElem
	Body      *BlockStmt
	Async     bool
	Generator bool
}

// A FuncDecl is a function declaration.
type FuncDecl struct {
	Function
}

// A Class represents the common parts of ClassDecl and ClassExpr.
type Class struct {
	ClassPos Position
	Name     *Ident // optional for expressions and default exports
	Super    Expr   // optional
	Body     []ClassMember
}

// A ClassDecl is a class declaration.
type ClassDecl struct {
	Class
}

// A ClassMember is a member of a class body.
type ClassMember interface {
	Node
	member()
}

func (*MethodDef) member()   {}
func (*FieldDef) member()    {}
func (*StaticBlock) member() {}

// A MethodDef is a method, getter, setter or constructor in a class body.
type MethodDef struct {
	Static   bool
	PropKind PropKind // = Method | Get | Set
	Key      Expr
	Computed bool
	Value    *FuncExpr
}

// A FieldDef is a class field: Key = Value.
type FieldDef struct {
	Static   bool
	Key      Expr
	Computed bool
	Value    Expr // optional
}

// A StaticBlock is a class static initialization block.
type StaticBlock struct {
	Static Position
	Body   *BlockStmt
}

// A DebuggerStmt is a debugger statement.
type DebuggerStmt struct {
	Debugger Position
}

// A DoWhileStmt is a do Body while (Cond) loop.
type DoWhileStmt struct {
	Do   Position
	Body Stmt
	Cond Expr
}

// An EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	Semi Position
}

// An ExportDecl is any form of export statement:
//
//	export Decl
//	export default Decl
//	export default X
//	export { Specs } [from Source]
//	export * [as Star] from Source
type ExportDecl struct {
	Export  Position
	Default bool
	Decl    Stmt // optional; = FuncDecl | ClassDecl | VarDecl
	X       Expr // optional; export default expression
	Specs   []*ExportSpec
	All     bool   // export *
	Star    *Ident // optional; export * as Star
	Source  *Literal
}

// An ExportSpec is one name in an export clause: Local as Exported.
type ExportSpec struct {
	Local    *Ident
	Exported *Ident // optional
}

// An ExprStmt is an expression evaluated for side effects.
type ExprStmt struct {
	X Expr
}

// A ForStmt is a C-style loop: for (Init; Cond; Post) Body.
type ForStmt struct {
	For  Position
	Init Stmt // optional; = VarDecl | ExprStmt
	Cond Expr // optional
	Post Expr // optional
	Body Stmt
}

// A ForInStmt is a for-in or for-of loop: for (Left in/of Right) Body.
type ForInStmt struct {
	For   Position
	Of    bool
	Await bool
	Left  Stmt // = VarDecl | ExprStmt
	Right Expr
	Body  Stmt
}

// An IfStmt is a conditional: if (Cond) Then else Else.
type IfStmt struct {
	If   Position
	Cond Expr
	Then Stmt
	Else Stmt // optional
}

// An ImportDecl is an import statement.
type ImportDecl struct {
	Import Position
	Specs  []*ImportSpec
	Source *Literal
}

// An ImportSpecKind distinguishes the forms of import specifier.
type ImportSpecKind uint8

const (
	ImportNamed     ImportSpecKind = iota // { Imported as Local }
	ImportDefault                         // Local
	ImportNamespace                       // * as Local
)

// An ImportSpec binds one local name from an imported module.
type ImportSpec struct {
	SpecKind ImportSpecKind
	Imported *Ident // optional; set for ImportNamed
	Local    *Ident
}

// A LabeledStmt is a statement with a label: Label: Body.
type LabeledStmt struct {
	Label *Ident
	Body  Stmt
}

// A ReturnStmt returns from a function.
type ReturnStmt struct {
	Return Position
	Result Expr // optional
}

// A SwitchStmt is a switch statement.
type SwitchStmt struct {
	Switch Position
	Tag    Expr
	Cases  []*CaseClause
}

// A CaseClause is a case or default clause of a switch statement.
type CaseClause struct {
	Case Position
	Test Expr // nil for default
	Body []Stmt
}

// A ThrowStmt throws an exception.
type ThrowStmt struct {
	Throw Position
	X     Expr
}

// A TryStmt is a try statement with a catch clause, a finally block, or both.
type TryStmt struct {
	Try     Position
	Body    *BlockStmt
	Catch   *CatchClause // optional
	Finally *BlockStmt   // optional
}

// A CatchClause is the handler of a try statement.
type CatchClause struct {
	Catch Position
	Param Expr // optional
	Body  *BlockStmt
}

// A VarDecl is a var, let or const declaration.
type VarDecl struct {
	VarPos Position
	Token  Token // = VAR | LET | CONST
	List   []*VarDeclarator
}

// A VarDeclarator declares the names in Name, with an optional initializer.
type VarDeclarator struct {
	Name Expr // = Ident | ArrayPattern | ObjectPattern
	Init Expr // optional
}

// A WhileStmt is a while (Cond) Body loop.
type WhileStmt struct {
	While Position
	Cond  Expr
	Body  Stmt
}

// A WithStmt is a with (X) Body statement, valid only in script code.
type WithStmt struct {
	With Position
	X    Expr
	Body Stmt
}

// An Expr is a JavaScript expression or binding pattern.
type Expr interface {
	Node
	expr()
}

func (*ArrayExpr) expr()      {}
func (*ArrayPattern) expr()   {}
func (*ArrowFunc) expr()      {}
func (*AssignExpr) expr()     {}
func (*AssignPattern) expr()  {}
func (*AwaitExpr) expr()      {}
func (*BinaryExpr) expr()     {}
func (*CallExpr) expr()       {}
func (*ClassExpr) expr()      {}
func (*CondExpr) expr()       {}
func (*DotExpr) expr()        {}
func (*FuncExpr) expr()       {}
func (*Ident) expr()          {}
func (*IndexExpr) expr()      {}
func (*Literal) expr()        {}
func (*MetaProperty) expr()   {}
func (*NewExpr) expr()        {}
func (*ObjectExpr) expr()     {}
func (*ObjectPattern) expr()  {}
func (*Property) expr()       {}
func (*RegExpLit) expr()      {}
func (*SeqExpr) expr()        {}
func (*SpreadElem) expr()     {}
func (*SuperExpr) expr()      {}
func (*TaggedTemplate) expr() {}
func (*TemplateLit) expr()    {}
func (*ThisExpr) expr()       {}
func (*UnaryExpr) expr()      {}
func (*UpdateExpr) expr()     {}
func (*YieldExpr) expr()      {}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    string

	Binding interface{} // a *resolve.Binding set by resolver, or nil
}

// A Literal represents a number, bigint, string, boolean or null literal.
type Literal struct {
	Token    Token // = NUMBER | BIGINT | STRING | BOOL | NULL
	TokenPos Position
	Raw      string      // uninterpreted text; may be empty for synthesized literals
	Value    interface{} // = float64 | *big.Int | string | bool | nil
}

// BigValue returns the value of a BIGINT literal.
func (x *Literal) BigValue() *big.Int {
	v, _ := x.Value.(*big.Int)
	return v
}

// A RegExpLit is a regular expression literal: /Pattern/Flags.
type RegExpLit struct {
	TokenPos Position
	Pattern  string
	Flags    string
}

// A TemplateLit is a template literal. Quasis holds the raw text chunks;
// len(Quasis) == len(Exprs)+1.
type TemplateLit struct {
	Backquote Position
	Quasis    []string
	Exprs     []Expr
}

// A TaggedTemplate is a tagged template: Tag`...`.
type TaggedTemplate struct {
	Tag   Expr
	Quasi *TemplateLit
}

// An ArrayExpr is an array literal. A nil element is a hole.
type ArrayExpr struct {
	Lbrack Position
	Elems  []Expr
}

// An ObjectExpr is an object literal.
type ObjectExpr struct {
	Lbrace Position
	Props  []Expr // = Property | SpreadElem
}

// A PropKind distinguishes plain properties from accessors and methods.
type PropKind uint8

const (
	Init PropKind = iota
	Get
	Set
	Method
)

// A Property is a member of an object literal or object pattern.
// In a shorthand property Key and Value are distinct identifiers with
// the same name; the Value identifier is the reference (or binding).
type Property struct {
	PropKind  PropKind
	Key       Expr
	Value     Expr
	Computed  bool
	Shorthand bool
}

// A FuncExpr is a function expression.
type FuncExpr struct {
	Function
}

// An ArrowFunc is an arrow function. Exactly one of Body and Expr is set.
type ArrowFunc struct {
	StartPos Position
	Async    bool
	Params   []Expr
	Body     *BlockStmt
	Expr     Expr
}

// A ClassExpr is a class expression.
type ClassExpr struct {
	Class
}

// A UnaryExpr represents a unary expression: Op X.
type UnaryExpr struct {
	OpPos Position
	Op    Token
	X     Expr
}

// An UpdateExpr is an increment or decrement: ++X, X++, --X, X--.
type UpdateExpr struct {
	OpPos  Position
	Op     Token // = INC | DEC
	Prefix bool
	X      Expr
}

// A BinaryExpr represents a binary or logical expression: X Op Y.
type BinaryExpr struct {
	X     Expr
	OpPos Position
	Op    Token
	Y     Expr
}

// An AssignExpr represents an assignment: X Op Y.
type AssignExpr struct {
	X     Expr
	OpPos Position
	Op    Token // = EQ | PLUS_EQ | ...
	Y     Expr
}

// A CondExpr represents the conditional: Cond ? True : False.
type CondExpr struct {
	Cond  Expr
	True  Expr
	False Expr
}

// A CallExpr represents a function call expression: Fn(Args).
type CallExpr struct {
	Fn       Expr
	Lparen   Position
	Args     []Expr
	Optional bool // Fn?.(Args)
}

// A NewExpr represents a constructor call: new Fn(Args).
type NewExpr struct {
	New  Position
	Fn   Expr
	Args []Expr
}

// A DotExpr represents a property selector: X.Name.
type DotExpr struct {
	X        Expr
	Dot      Position
	Name     *Ident
	Optional bool // X?.Name
}

// An IndexExpr represents a computed member access: X[Y].
type IndexExpr struct {
	X        Expr
	Lbrack   Position
	Y        Expr
	Optional bool // X?.[Y]
}

// A SeqExpr represents a comma expression: List[0], List[1], ...
type SeqExpr struct {
	List []Expr
}

// A SpreadElem is a spread element or a rest element: ...X.
type SpreadElem struct {
	Ellipsis Position
	X        Expr
}

// An AwaitExpr is an await expression.
type AwaitExpr struct {
	Await Position
	X     Expr
}

// A YieldExpr is a yield or yield* expression.
type YieldExpr struct {
	Yield    Position
	Delegate bool
	X        Expr // optional
}

// A ThisExpr is the keyword this.
type ThisExpr struct {
	This Position
}

// A SuperExpr is the keyword super.
type SuperExpr struct {
	Super Position
}

// A MetaProperty is new.target, import.meta or the import keyword of a
// dynamic import call.
type MetaProperty struct {
	TokenPos Position
	Raw      string
}

// An ArrayPattern is an array destructuring target. A nil element is a hole.
type ArrayPattern struct {
	Lbrack Position
	Elems  []Expr
}

// An ObjectPattern is an object destructuring target.
type ObjectPattern struct {
	Lbrace Position
	Props  []Expr // = Property | SpreadElem
}

// An AssignPattern is a target with a default value: Left = Right.
type AssignPattern struct {
	Left  Expr
	Eq    Position
	Right Expr
}

func (*File) Kind() Kind           { return KindFile }
func (*BlockStmt) Kind() Kind      { return KindBlockStmt }
func (*BranchStmt) Kind() Kind     { return KindBranchStmt }
func (*ClassDecl) Kind() Kind      { return KindClassDecl }
func (*DebuggerStmt) Kind() Kind   { return KindDebuggerStmt }
func (*DoWhileStmt) Kind() Kind    { return KindDoWhileStmt }
func (*EmptyStmt) Kind() Kind      { return KindEmptyStmt }
func (*ExportDecl) Kind() Kind     { return KindExportDecl }
func (*ExprStmt) Kind() Kind       { return KindExprStmt }
func (*ForInStmt) Kind() Kind      { return KindForInStmt }
func (*ForStmt) Kind() Kind        { return KindForStmt }
func (*FuncDecl) Kind() Kind       { return KindFuncDecl }
func (*IfStmt) Kind() Kind         { return KindIfStmt }
func (*ImportDecl) Kind() Kind     { return KindImportDecl }
func (*LabeledStmt) Kind() Kind    { return KindLabeledStmt }
func (*ReturnStmt) Kind() Kind     { return KindReturnStmt }
func (*SwitchStmt) Kind() Kind     { return KindSwitchStmt }
func (*ThrowStmt) Kind() Kind      { return KindThrowStmt }
func (*TryStmt) Kind() Kind        { return KindTryStmt }
func (*VarDecl) Kind() Kind        { return KindVarDecl }
func (*WhileStmt) Kind() Kind      { return KindWhileStmt }
func (*WithStmt) Kind() Kind       { return KindWithStmt }
func (*ArrayExpr) Kind() Kind      { return KindArrayExpr }
func (*ArrowFunc) Kind() Kind      { return KindArrowFunc }
func (*AssignExpr) Kind() Kind     { return KindAssignExpr }
func (*AwaitExpr) Kind() Kind      { return KindAwaitExpr }
func (*BinaryExpr) Kind() Kind     { return KindBinaryExpr }
func (*CallExpr) Kind() Kind       { return KindCallExpr }
func (*ClassExpr) Kind() Kind      { return KindClassExpr }
func (*CondExpr) Kind() Kind       { return KindCondExpr }
func (*DotExpr) Kind() Kind        { return KindDotExpr }
func (*FuncExpr) Kind() Kind       { return KindFuncExpr }
func (*Ident) Kind() Kind          { return KindIdent }
func (*IndexExpr) Kind() Kind      { return KindIndexExpr }
func (*Literal) Kind() Kind        { return KindLiteral }
func (*MetaProperty) Kind() Kind   { return KindMetaProperty }
func (*NewExpr) Kind() Kind        { return KindNewExpr }
func (*ObjectExpr) Kind() Kind     { return KindObjectExpr }
func (*Property) Kind() Kind       { return KindProperty }
func (*RegExpLit) Kind() Kind      { return KindRegExpLit }
func (*SeqExpr) Kind() Kind        { return KindSeqExpr }
func (*SpreadElem) Kind() Kind     { return KindSpreadElem }
func (*SuperExpr) Kind() Kind      { return KindSuperExpr }
func (*TaggedTemplate) Kind() Kind { return KindTaggedTemplate }
func (*TemplateLit) Kind() Kind    { return KindTemplateLit }
func (*ThisExpr) Kind() Kind       { return KindThisExpr }
func (*UnaryExpr) Kind() Kind      { return KindUnaryExpr }
func (*UpdateExpr) Kind() Kind     { return KindUpdateExpr }
func (*YieldExpr) Kind() Kind      { return KindYieldExpr }
func (*ArrayPattern) Kind() Kind   { return KindArrayPattern }
func (*AssignPattern) Kind() Kind  { return KindAssignPattern }
func (*ObjectPattern) Kind() Kind  { return KindObjectPattern }
func (*CaseClause) Kind() Kind     { return KindCaseClause }
func (*CatchClause) Kind() Kind    { return KindCatchClause }
func (*ExportSpec) Kind() Kind     { return KindExportSpec }
func (*FieldDef) Kind() Kind       { return KindFieldDef }
func (*ImportSpec) Kind() Kind     { return KindImportSpec }
func (*MethodDef) Kind() Kind      { return KindMethodDef }
func (*StaticBlock) Kind() Kind    { return KindStaticBlock }
func (*VarDeclarator) Kind() Kind  { return KindVarDeclarator }

func (x *File) Pos() Position {
	for _, stmt := range x.Stmts {
		if stmt != nil {
			return stmt.Pos()
		}
	}
	return Position{}
}

func (x *BlockStmt) Pos() Position    { return x.Lbrace }
func (x *BranchStmt) Pos() Position   { return x.TokenPos }
func (x *ClassDecl) Pos() Position    { return x.ClassPos }
func (x *DebuggerStmt) Pos() Position { return x.Debugger }
func (x *DoWhileStmt) Pos() Position  { return x.Do }
func (x *EmptyStmt) Pos() Position    { return x.Semi }
func (x *ExportDecl) Pos() Position   { return x.Export }
func (x *ExprStmt) Pos() Position     { return x.X.Pos() }
func (x *ForInStmt) Pos() Position    { return x.For }
func (x *ForStmt) Pos() Position      { return x.For }
func (x *FuncDecl) Pos() Position     { return x.FuncPos }
func (x *IfStmt) Pos() Position       { return x.If }
func (x *ImportDecl) Pos() Position   { return x.Import }
func (x *LabeledStmt) Pos() Position  { return x.Label.NamePos }
func (x *ReturnStmt) Pos() Position   { return x.Return }
func (x *SwitchStmt) Pos() Position   { return x.Switch }
func (x *ThrowStmt) Pos() Position    { return x.Throw }
func (x *TryStmt) Pos() Position      { return x.Try }
func (x *VarDecl) Pos() Position      { return x.VarPos }
func (x *WhileStmt) Pos() Position    { return x.While }
func (x *WithStmt) Pos() Position     { return x.With }
func (x *ArrayExpr) Pos() Position    { return x.Lbrack }
func (x *ArrowFunc) Pos() Position    { return x.StartPos }
func (x *AssignExpr) Pos() Position   { return x.X.Pos() }
func (x *AwaitExpr) Pos() Position    { return x.Await }
func (x *BinaryExpr) Pos() Position   { return x.X.Pos() }
func (x *CallExpr) Pos() Position     { return x.Fn.Pos() }
func (x *ClassExpr) Pos() Position    { return x.ClassPos }
func (x *CondExpr) Pos() Position     { return x.Cond.Pos() }
func (x *DotExpr) Pos() Position      { return x.X.Pos() }
func (x *FuncExpr) Pos() Position     { return x.FuncPos }
func (x *Ident) Pos() Position        { return x.NamePos }
func (x *IndexExpr) Pos() Position    { return x.X.Pos() }
func (x *Literal) Pos() Position      { return x.TokenPos }
func (x *MetaProperty) Pos() Position { return x.TokenPos }
func (x *NewExpr) Pos() Position      { return x.New }
func (x *ObjectExpr) Pos() Position   { return x.Lbrace }
func (x *Property) Pos() Position     { return x.Key.Pos() }
func (x *RegExpLit) Pos() Position    { return x.TokenPos }
func (x *SeqExpr) Pos() Position      { return x.List[0].Pos() }
func (x *SpreadElem) Pos() Position   { return x.Ellipsis }
func (x *SuperExpr) Pos() Position    { return x.Super }
func (x *TemplateLit) Pos() Position  { return x.Backquote }
func (x *ThisExpr) Pos() Position     { return x.This }
func (x *UnaryExpr) Pos() Position    { return x.OpPos }
func (x *YieldExpr) Pos() Position    { return x.Yield }
func (x *ArrayPattern) Pos() Position { return x.Lbrack }
func (x *CaseClause) Pos() Position   { return x.Case }
func (x *CatchClause) Pos() Position  { return x.Catch }
func (x *ExportSpec) Pos() Position   { return x.Local.NamePos }
func (x *FieldDef) Pos() Position     { return x.Key.Pos() }
func (x *ImportSpec) Pos() Position   { return x.Local.NamePos }
func (x *MethodDef) Pos() Position    { return x.Key.Pos() }
func (x *StaticBlock) Pos() Position  { return x.Static }

func (x *TaggedTemplate) Pos() Position { return x.Tag.Pos() }
func (x *VarDeclarator) Pos() Position  { return x.Name.Pos() }
func (x *AssignPattern) Pos() Position  { return x.Left.Pos() }
func (x *ObjectPattern) Pos() Position  { return x.Lbrace }

func (x *UpdateExpr) Pos() Position {
	if x.Prefix {
		return x.OpPos
	}
	return x.X.Pos()
}

// IsLexical reports whether the statement declares a block-scoped
// name (let, const, class or function) in its enclosing block.
func IsLexical(s Stmt) bool {
	switch s := s.(type) {
	case *VarDecl:
		return s.Token != VAR
	case *ClassDecl, *FuncDecl:
		return true
	}
	return false
}
