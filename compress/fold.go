// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"errors"
	"math"

	"github.com/jsmini/jsmini/syntax"
)

// foldVisitor replaces each binary operation on two literals by the
// literal of its value. Operations are folded on exit, so nested
// operations fold bottom-up.
func foldVisitor(ctx *Context) *syntax.Visitor {
	v := &syntax.Visitor{}
	v.OnEnterExit(syntax.KindBinaryExpr, nil, func(c *syntax.Cursor) {
		e := c.Node().(*syntax.BinaryExpr)
		x, ok1 := e.X.(*syntax.Literal)
		y, ok2 := e.Y.(*syntax.Literal)
		if !ok1 || !ok2 {
			return
		}
		lit, err := Fold(e.Op, x, y)
		if err != nil {
			ctx.Warnf(e.OpPos, "cannot fold %s: %v", e.Op, err)
			return
		}
		lit.TokenPos = e.Pos()
		c.Replace(lit)
	})
	return v
}

// Reasons for which a binary operation on literals is not folded.
var (
	errUnsupportedOp = errors.New("unsupported operator")
	errOperand       = errors.New("operand is not a foldable literal")
	errDivZero       = errors.New("division by zero")
	errNotFinite     = errors.New("result is not a finite number")
	errNegZero       = errors.New("result is negative zero")
)

// Fold returns the literal denoting the value of x op y,
// or an error explaining why the operation cannot be folded.
func Fold(op syntax.Token, x, y *syntax.Literal) (*syntax.Literal, error) {
	a, ok := literalValue(x)
	if !ok {
		return nil, errOperand
	}
	b, ok := literalValue(y)
	if !ok {
		return nil, errOperand
	}
	v, err := Binary(op, a, b)
	if err != nil {
		return nil, err
	}
	return makeLiteral(v)
}

// literalValue returns the foldable value of a literal.
func literalValue(lit *syntax.Literal) (interface{}, bool) {
	switch lit.Token {
	case syntax.NULL:
		return nil, true
	case syntax.NUMBER:
		v, ok := lit.Value.(float64)
		return v, ok
	case syntax.STRING:
		v, ok := lit.Value.(string)
		return v, ok
	case syntax.BOOL:
		v, ok := lit.Value.(bool)
		return v, ok
	}
	return nil, false // BigInt
}

// Binary returns the value of x op y under JavaScript semantics.
// Operands and result are values as described in ToNumber.
// Division and remainder by zero are not evaluated.
func Binary(op syntax.Token, x, y interface{}) (interface{}, error) {
	switch op {
	case syntax.PLUS:
		_, xs := x.(string)
		_, ys := y.(string)
		if xs || ys {
			return ToString(x) + ToString(y), nil
		}
		return ToNumber(x) + ToNumber(y), nil

	case syntax.MINUS:
		return ToNumber(x) - ToNumber(y), nil

	case syntax.STAR:
		return ToNumber(x) * ToNumber(y), nil

	case syntax.SLASH, syntax.PERCENT:
		d := ToNumber(y)
		if d == 0 {
			return nil, errDivZero
		}
		if op == syntax.SLASH {
			return ToNumber(x) / d, nil
		}
		return math.Mod(ToNumber(x), d), nil

	case syntax.STARSTAR:
		return pow(ToNumber(x), ToNumber(y)), nil

	case syntax.EQL:
		return looseEquals(x, y), nil
	case syntax.NEQ:
		return !looseEquals(x, y), nil
	case syntax.EQLSTRICT:
		return strictEquals(x, y), nil
	case syntax.NEQSTRICT:
		return !strictEquals(x, y), nil

	case syntax.LT:
		less, _ := lessThan(x, y)
		return less, nil
	case syntax.GT:
		less, _ := lessThan(y, x)
		return less, nil
	case syntax.LE:
		greater, ok := lessThan(y, x)
		return ok && !greater, nil
	case syntax.GE:
		less, ok := lessThan(x, y)
		return ok && !less, nil

	case syntax.AMP:
		return float64(ToInt32(ToNumber(x)) & ToInt32(ToNumber(y))), nil
	case syntax.PIPE:
		return float64(ToInt32(ToNumber(x)) | ToInt32(ToNumber(y))), nil
	case syntax.CIRCUMFLEX:
		return float64(ToInt32(ToNumber(x)) ^ ToInt32(ToNumber(y))), nil
	case syntax.LTLT:
		return float64(ToInt32(ToNumber(x)) << (ToUint32(ToNumber(y)) & 31)), nil
	case syntax.GTGT:
		return float64(ToInt32(ToNumber(x)) >> (ToUint32(ToNumber(y)) & 31)), nil
	case syntax.GTGTGT:
		return float64(ToUint32(ToNumber(x)) >> (ToUint32(ToNumber(y)) & 31)), nil

	case syntax.ANDAND:
		if ToBoolean(x) {
			return y, nil
		}
		return x, nil
	case syntax.OROR:
		if ToBoolean(x) {
			return x, nil
		}
		return y, nil
	case syntax.QQ:
		if x == nil {
			return y, nil
		}
		return x, nil
	}
	return nil, errUnsupportedOp
}

// makeLiteral returns a synthesized literal for v, if v has one.
func makeLiteral(v interface{}) (*syntax.Literal, error) {
	switch v := v.(type) {
	case nil:
		return &syntax.Literal{Token: syntax.NULL}, nil
	case bool:
		return &syntax.Literal{Token: syntax.BOOL, Value: v}, nil
	case string:
		return &syntax.Literal{Token: syntax.STRING, Value: v}, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errNotFinite
		}
		if v == 0 && math.Signbit(v) {
			return nil, errNegZero
		}
		return &syntax.Literal{Token: syntax.NUMBER, Value: v}, nil
	}
	return nil, errOperand
}
