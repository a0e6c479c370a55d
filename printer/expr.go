// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printer

import (
	"math"

	"github.com/jsmini/jsmini/syntax"
)

// Operator precedence, lowest first.
const (
	precSeq = iota
	precAssign
	precCond
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precUpdate
	precCall
	precMember
	precPrimary
)

var binaryPrec = [...]int{
	syntax.QQ:         precNullish,
	syntax.OROR:       precOr,
	syntax.ANDAND:     precAnd,
	syntax.PIPE:       precBitOr,
	syntax.CIRCUMFLEX: precBitXor,
	syntax.AMP:        precBitAnd,
	syntax.EQL:        precEquality,
	syntax.NEQ:        precEquality,
	syntax.EQLSTRICT:  precEquality,
	syntax.NEQSTRICT:  precEquality,
	syntax.LT:         precRelational,
	syntax.LE:         precRelational,
	syntax.GT:         precRelational,
	syntax.GE:         precRelational,
	syntax.IN:         precRelational,
	syntax.INSTANCEOF: precRelational,
	syntax.LTLT:       precShift,
	syntax.GTGT:       precShift,
	syntax.GTGTGT:     precShift,
	syntax.PLUS:       precAdditive,
	syntax.MINUS:      precAdditive,
	syntax.STAR:       precMultiplicative,
	syntax.SLASH:      precMultiplicative,
	syntax.PERCENT:    precMultiplicative,
	syntax.STARSTAR:   precExponent,
}

// precedence returns the binding strength of x as it will be printed.
func precedence(x syntax.Expr) int {
	switch x := x.(type) {
	case *syntax.SeqExpr:
		return precSeq
	case *syntax.AssignExpr, *syntax.ArrowFunc, *syntax.YieldExpr, *syntax.SpreadElem:
		return precAssign
	case *syntax.CondExpr:
		return precCond
	case *syntax.BinaryExpr:
		if int(x.Op) < len(binaryPrec) && binaryPrec[x.Op] > 0 {
			return binaryPrec[x.Op]
		}
		return precPrimary
	case *syntax.UnaryExpr, *syntax.AwaitExpr:
		return precUnary
	case *syntax.UpdateExpr:
		return precUpdate
	case *syntax.CallExpr, *syntax.NewExpr, *syntax.TaggedTemplate:
		return precCall
	case *syntax.DotExpr, *syntax.IndexExpr:
		return precMember
	case *syntax.Literal:
		if x.Raw == "" && x.Token == syntax.NUMBER {
			if f, ok := x.Value.(float64); ok && math.Signbit(f) {
				return precUnary
			}
		}
	}
	return precPrimary
}

// expr prints x, parenthesized if it binds less tightly than min.
func (p *printer) expr(x syntax.Expr, min int) {
	if x == nil {
		p.errorf(nil, "missing expression")
	}
	if precedence(x) < min {
		p.print("(")
		p.expr0(x)
		p.print(")")
		return
	}
	p.expr0(x)
}

// exprNoIn prints x where a bare 'in' operator would be misparsed,
// as in the initializer of a for loop.
func (p *printer) exprNoIn(x syntax.Expr, min int) {
	if containsIn(x) {
		p.print("(")
		p.expr(x, precSeq)
		p.print(")")
		return
	}
	p.expr(x, min)
}

func containsIn(x syntax.Expr) bool {
	found := false
	v := &syntax.Visitor{}
	v.Enter = func(c *syntax.Cursor) {
		if b, ok := c.Node().(*syntax.BinaryExpr); ok && b.Op == syntax.IN {
			found = true
		}
	}
	syntax.Walk(x, v)
	return found
}

func (p *printer) expr0(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.Ident:
		p.print(x.Name)

	case *syntax.Literal:
		p.literal(x)

	case *syntax.RegExpLit:
		p.print("/" + x.Pattern + "/" + x.Flags)

	case *syntax.TemplateLit:
		p.template(x)

	case *syntax.TaggedTemplate:
		p.expr(x.Tag, precCall)
		p.template(x.Quasi)

	case *syntax.ThisExpr:
		p.print("this")

	case *syntax.SuperExpr:
		p.print("super")

	case *syntax.MetaProperty:
		p.print(x.Raw)

	case *syntax.ArrayExpr:
		p.elements(x.Elems)

	case *syntax.ArrayPattern:
		p.elements(x.Elems)

	case *syntax.ObjectExpr:
		p.properties(x.Props)

	case *syntax.ObjectPattern:
		p.properties(x.Props)

	case *syntax.AssignPattern:
		p.expr(x.Left, precCall)
		p.print(" = ")
		p.expr(x.Right, precAssign)

	case *syntax.FuncExpr:
		p.function(&x.Function)

	case *syntax.ClassExpr:
		p.class(&x.Class)

	case *syntax.ArrowFunc:
		if x.Async {
			p.print("async ")
		}
		p.params(x.Params)
		p.print(" => ")
		switch {
		case x.Body != nil:
			p.block(x.Body)
		case leftmostObject(x.Expr):
			p.print("(")
			p.expr(x.Expr, precSeq)
			p.print(")")
		default:
			p.expr(x.Expr, precAssign)
		}

	case *syntax.UnaryExpr:
		op := x.Op.String()
		switch x.Op {
		case syntax.TYPEOF, syntax.VOID, syntax.DELETE:
			op += " "
		}
		p.print(op)
		p.expr(x.X, precUnary)

	case *syntax.UpdateExpr:
		if x.Prefix {
			p.print(x.Op.String())
			p.expr(x.X, precCall)
		} else {
			p.expr(x.X, precCall)
			p.print(x.Op.String())
		}

	case *syntax.AwaitExpr:
		p.print("await ")
		p.expr(x.X, precUnary)

	case *syntax.YieldExpr:
		p.print("yield")
		if x.Delegate {
			p.print("*")
		}
		if x.X != nil {
			p.print(" ")
			p.expr(x.X, precAssign)
		}

	case *syntax.BinaryExpr:
		p.binary(x)

	case *syntax.AssignExpr:
		p.expr(x.X, precCall)
		p.print(" " + x.Op.String() + " ")
		p.expr(x.Y, precAssign)

	case *syntax.CondExpr:
		p.expr(x.Cond, precNullish)
		p.print(" ? ")
		p.expr(x.True, precAssign)
		p.print(" : ")
		p.expr(x.False, precAssign)

	case *syntax.CallExpr:
		p.expr(x.Fn, precCall)
		if x.Optional {
			p.print("?.")
		}
		p.args(x.Args)

	case *syntax.NewExpr:
		p.print("new ")
		if containsCall(x.Fn) {
			p.print("(")
			p.expr(x.Fn, precSeq)
			p.print(")")
		} else {
			p.expr(x.Fn, precMember)
		}
		p.args(x.Args)

	case *syntax.DotExpr:
		p.object(x.X)
		if x.Optional {
			p.print("?.")
		} else {
			p.print(".")
		}
		p.print(x.Name.Name)

	case *syntax.IndexExpr:
		p.object(x.X)
		if x.Optional {
			p.print("?.")
		}
		p.print("[")
		p.expr(x.Y, precSeq)
		p.print("]")

	case *syntax.SeqExpr:
		for i, y := range x.List {
			if i > 0 {
				p.print(", ")
			}
			p.expr(y, precAssign)
		}

	case *syntax.SpreadElem:
		p.print("...")
		p.expr(x.X, precAssign)

	default:
		p.errorf(x, "unexpected expression %T", x)
	}
}

func (p *printer) binary(x *syntax.BinaryExpr) {
	prec := precedence(x)
	left, right := prec, prec+1
	if x.Op == syntax.STARSTAR {
		// Right associative; a unary operand on the left is a syntax error.
		left, right = precUpdate, prec
	}
	p.operand(x, x.X, left)
	p.print(" " + x.Op.String() + " ")
	p.operand(x, x.Y, right)
}

// operand prints an operand of the binary expression x.
// The ?? operator cannot be mixed with && or || without parentheses.
func (p *printer) operand(x *syntax.BinaryExpr, y syntax.Expr, min int) {
	if b, ok := y.(*syntax.BinaryExpr); ok {
		mixed := x.Op == syntax.QQ && (b.Op == syntax.OROR || b.Op == syntax.ANDAND) ||
			b.Op == syntax.QQ && (x.Op == syntax.OROR || x.Op == syntax.ANDAND)
		if mixed {
			p.print("(")
			p.expr(y, precSeq)
			p.print(")")
			return
		}
	}
	p.expr(y, min)
}

// object prints the object operand of a member expression.
func (p *printer) object(x syntax.Expr) {
	if lit, ok := x.(*syntax.Literal); ok && lit.Token == syntax.NUMBER {
		p.print("(")
		p.literal(lit)
		p.print(")")
		return
	}
	p.expr(x, precCall)
}

// containsCall reports whether the callee of a new expression
// contains a call that the 'new' would otherwise capture.
func containsCall(x syntax.Expr) bool {
	for {
		switch e := x.(type) {
		case *syntax.CallExpr:
			return true
		case *syntax.DotExpr:
			x = e.X
		case *syntax.IndexExpr:
			x = e.X
		case *syntax.TaggedTemplate:
			x = e.Tag
		default:
			return false
		}
	}
}

// leftmostObject reports whether printing x starts with an object literal.
func leftmostObject(x syntax.Expr) bool {
	for {
		switch e := x.(type) {
		case *syntax.ObjectExpr, *syntax.ObjectPattern:
			return true
		case *syntax.BinaryExpr:
			x = e.X
		case *syntax.AssignExpr:
			x = e.X
		case *syntax.CondExpr:
			x = e.Cond
		case *syntax.SeqExpr:
			x = e.List[0]
		case *syntax.CallExpr:
			x = e.Fn
		case *syntax.DotExpr:
			x = e.X
		case *syntax.IndexExpr:
			x = e.X
		case *syntax.TaggedTemplate:
			x = e.Tag
		default:
			return false
		}
	}
}

func (p *printer) args(args []syntax.Expr) {
	p.print("(")
	for i, a := range args {
		if i > 0 {
			p.print(", ")
		}
		p.expr(a, precAssign)
	}
	p.print(")")
}

func (p *printer) elements(elems []syntax.Expr) {
	p.print("[")
	for i, e := range elems {
		if i > 0 {
			p.print(", ")
		}
		if e != nil {
			p.expr(e, precAssign)
		}
	}
	if n := len(elems); n > 0 && elems[n-1] == nil {
		// A trailing hole needs its own comma.
		p.print(",")
	}
	p.print("]")
}

func (p *printer) properties(props []syntax.Expr) {
	p.print("{")
	for i, x := range props {
		if i > 0 {
			p.print(", ")
		}
		prop, ok := x.(*syntax.Property)
		if !ok {
			p.expr(x, precAssign)
			continue
		}
		switch prop.PropKind {
		case syntax.Get, syntax.Set, syntax.Method:
			f, ok := prop.Value.(*syntax.FuncExpr)
			if !ok {
				p.errorf(prop.Key, "method value is %T", prop.Value)
			}
			p.method(prop.PropKind, prop.Key, prop.Computed, f)
		default:
			if prop.Shorthand && shorthandOK(prop) {
				p.expr(prop.Value, precAssign)
				continue
			}
			p.propertyKey(prop.Key, prop.Computed)
			p.print(": ")
			p.expr(prop.Value, precAssign)
		}
	}
	p.print("}")
}

// shorthandOK reports whether a shorthand property still reads the same
// after its value identifier was renamed.
func shorthandOK(prop *syntax.Property) bool {
	key, ok := prop.Key.(*syntax.Ident)
	if !ok {
		return false
	}
	v := prop.Value
	if ap, ok := v.(*syntax.AssignPattern); ok {
		v = ap.Left
	}
	id, ok := v.(*syntax.Ident)
	return ok && id.Name == key.Name
}

func (p *printer) template(t *syntax.TemplateLit) {
	if t == nil || len(t.Quasis) != len(t.Exprs)+1 {
		p.errorf(t, "malformed template literal")
	}
	p.print("`")
	p.raw(t.Quasis[0])
	for i, x := range t.Exprs {
		p.raw("${")
		p.expr(x, precSeq)
		p.raw("}" + t.Quasis[i+1])
	}
	p.raw("`")
}

// literal prints a literal, using its original spelling when known.
func (p *printer) literal(lit *syntax.Literal) {
	if lit == nil {
		p.errorf(nil, "missing literal")
	}
	if lit.Raw != "" {
		p.print(lit.Raw)
		return
	}
	switch lit.Token {
	case syntax.NUMBER:
		f, ok := lit.Value.(float64)
		if !ok {
			p.errorf(lit, "number literal has value %T", lit.Value)
		}
		if math.Signbit(f) {
			p.print("-" + syntax.FormatNumber(-f))
		} else {
			p.print(syntax.FormatNumber(f))
		}
	case syntax.BIGINT:
		v := lit.BigValue()
		if v == nil {
			p.errorf(lit, "bigint literal has no value")
		}
		p.print(v.String() + "n")
	case syntax.STRING:
		s, ok := lit.Value.(string)
		if !ok {
			p.errorf(lit, "string literal has value %T", lit.Value)
		}
		if p.auto {
			p.print(syntax.QuoteAuto(s, '\''))
		} else {
			p.print(syntax.Quote(s, p.quote))
		}
	case syntax.BOOL:
		if b, _ := lit.Value.(bool); b {
			p.print("true")
		} else {
			p.print("false")
		}
	case syntax.NULL:
		p.print("null")
	default:
		p.errorf(lit, "unexpected literal token %s", lit.Token)
	}
}
