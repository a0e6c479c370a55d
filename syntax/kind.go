// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// A Kind is the discriminant of a syntax tree node.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindFile

	// Statements
	KindBlockStmt
	KindBranchStmt
	KindClassDecl
	KindDebuggerStmt
	KindDoWhileStmt
	KindEmptyStmt
	KindExportDecl
	KindExprStmt
	KindForInStmt
	KindForStmt
	KindFuncDecl
	KindIfStmt
	KindImportDecl
	KindLabeledStmt
	KindReturnStmt
	KindSwitchStmt
	KindThrowStmt
	KindTryStmt
	KindVarDecl
	KindWhileStmt
	KindWithStmt

	// Expressions
	KindArrayExpr
	KindArrowFunc
	KindAssignExpr
	KindAwaitExpr
	KindBinaryExpr
	KindCallExpr
	KindClassExpr
	KindCondExpr
	KindDotExpr
	KindFuncExpr
	KindIdent
	KindIndexExpr
	KindLiteral
	KindMetaProperty
	KindNewExpr
	KindObjectExpr
	KindProperty
	KindRegExpLit
	KindSeqExpr
	KindSpreadElem
	KindSuperExpr
	KindTaggedTemplate
	KindTemplateLit
	KindThisExpr
	KindUnaryExpr
	KindUpdateExpr
	KindYieldExpr

	// Patterns
	KindArrayPattern
	KindAssignPattern
	KindObjectPattern

	// Auxiliary nodes
	KindCaseClause
	KindCatchClause
	KindExportSpec
	KindFieldDef
	KindImportSpec
	KindMethodDef
	KindStaticBlock
	KindVarDeclarator

	numKinds
)

var kindNames = [...]string{
	KindInvalid:        "Invalid",
	KindFile:           "File",
	KindBlockStmt:      "BlockStmt",
	KindBranchStmt:     "BranchStmt",
	KindClassDecl:      "ClassDecl",
	KindDebuggerStmt:   "DebuggerStmt",
	KindDoWhileStmt:    "DoWhileStmt",
	KindEmptyStmt:      "EmptyStmt",
	KindExportDecl:     "ExportDecl",
	KindExprStmt:       "ExprStmt",
	KindForInStmt:      "ForInStmt",
	KindForStmt:        "ForStmt",
	KindFuncDecl:       "FuncDecl",
	KindIfStmt:         "IfStmt",
	KindImportDecl:     "ImportDecl",
	KindLabeledStmt:    "LabeledStmt",
	KindReturnStmt:     "ReturnStmt",
	KindSwitchStmt:     "SwitchStmt",
	KindThrowStmt:      "ThrowStmt",
	KindTryStmt:        "TryStmt",
	KindVarDecl:        "VarDecl",
	KindWhileStmt:      "WhileStmt",
	KindWithStmt:       "WithStmt",
	KindArrayExpr:      "ArrayExpr",
	KindArrowFunc:      "ArrowFunc",
	KindAssignExpr:     "AssignExpr",
	KindAwaitExpr:      "AwaitExpr",
	KindBinaryExpr:     "BinaryExpr",
	KindCallExpr:       "CallExpr",
	KindClassExpr:      "ClassExpr",
	KindCondExpr:       "CondExpr",
	KindDotExpr:        "DotExpr",
	KindFuncExpr:       "FuncExpr",
	KindIdent:          "Ident",
	KindIndexExpr:      "IndexExpr",
	KindLiteral:        "Literal",
	KindMetaProperty:   "MetaProperty",
	KindNewExpr:        "NewExpr",
	KindObjectExpr:     "ObjectExpr",
	KindProperty:       "Property",
	KindRegExpLit:      "RegExpLit",
	KindSeqExpr:        "SeqExpr",
	KindSpreadElem:     "SpreadElem",
	KindSuperExpr:      "SuperExpr",
	KindTaggedTemplate: "TaggedTemplate",
	KindTemplateLit:    "TemplateLit",
	KindThisExpr:       "ThisExpr",
	KindUnaryExpr:      "UnaryExpr",
	KindUpdateExpr:     "UpdateExpr",
	KindYieldExpr:      "YieldExpr",
	KindArrayPattern:   "ArrayPattern",
	KindAssignPattern:  "AssignPattern",
	KindObjectPattern:  "ObjectPattern",
	KindCaseClause:     "CaseClause",
	KindCatchClause:    "CatchClause",
	KindExportSpec:     "ExportSpec",
	KindFieldDef:       "FieldDef",
	KindImportSpec:     "ImportSpec",
	KindMethodDef:      "MethodDef",
	KindStaticBlock:    "StaticBlock",
	KindVarDeclarator:  "VarDeclarator",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
