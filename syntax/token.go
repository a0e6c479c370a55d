// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// A Token identifies a literal class, an operator or a keyword
// recorded in the syntax tree.
type Token int8

const (
	ILLEGAL Token = iota

	// Literal classes
	NUMBER // 123
	BIGINT // 123n
	STRING // "foo" or 'foo'
	BOOL   // true or false
	NULL   // null

	// Arithmetic and bitwise operators
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	STARSTAR   // **
	LTLT       // <<
	GTGT       // >>
	GTGTGT     // >>>
	AMP        // &
	PIPE       // |
	CIRCUMFLEX // ^
	TILDE      // ~

	// Logical operators
	NOT    // !
	ANDAND // &&
	OROR   // ||
	QQ     // ??

	// Comparison operators
	EQL        // ==
	NEQ        // !=
	EQLSTRICT  // ===
	NEQSTRICT  // !==
	LT         // <
	LE         // <=
	GT         // >
	GE         // >=
	IN         // in
	INSTANCEOF // instanceof

	// Unary keyword operators
	TYPEOF // typeof
	VOID   // void
	DELETE // delete

	// Update operators
	INC // ++
	DEC // --

	// Assignment operators
	EQ            // =
	PLUS_EQ       // +=
	MINUS_EQ      // -=
	STAR_EQ       // *=
	SLASH_EQ      // /=
	PERCENT_EQ    // %=
	STARSTAR_EQ   // **=
	LTLT_EQ       // <<=
	GTGT_EQ       // >>=
	GTGTGT_EQ     // >>>=
	AMP_EQ        // &=
	PIPE_EQ       // |=
	CIRCUMFLEX_EQ // ^=
	ANDAND_EQ     // &&=
	OROR_EQ       // ||=
	QQ_EQ         // ??=

	// Keywords
	VAR
	LET
	CONST
	BREAK
	CONTINUE
)

func (tok Token) String() string {
	if 0 <= tok && int(tok) < len(tokenNames) && tokenNames[tok] != "" {
		return tokenNames[tok]
	}
	return fmt.Sprintf("Token(%d)", int(tok))
}

var tokenNames = [...]string{
	ILLEGAL:       "illegal token",
	NUMBER:        "number literal",
	BIGINT:        "bigint literal",
	STRING:        "string literal",
	BOOL:          "boolean literal",
	NULL:          "null",
	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	SLASH:         "/",
	PERCENT:       "%",
	STARSTAR:      "**",
	LTLT:          "<<",
	GTGT:          ">>",
	GTGTGT:        ">>>",
	AMP:           "&",
	PIPE:          "|",
	CIRCUMFLEX:    "^",
	TILDE:         "~",
	NOT:           "!",
	ANDAND:        "&&",
	OROR:          "||",
	QQ:            "??",
	EQL:           "==",
	NEQ:           "!=",
	EQLSTRICT:     "===",
	NEQSTRICT:     "!==",
	LT:            "<",
	LE:            "<=",
	GT:            ">",
	GE:            ">=",
	IN:            "in",
	INSTANCEOF:    "instanceof",
	TYPEOF:        "typeof",
	VOID:          "void",
	DELETE:        "delete",
	INC:           "++",
	DEC:           "--",
	EQ:            "=",
	PLUS_EQ:       "+=",
	MINUS_EQ:      "-=",
	STAR_EQ:       "*=",
	SLASH_EQ:      "/=",
	PERCENT_EQ:    "%=",
	STARSTAR_EQ:   "**=",
	LTLT_EQ:       "<<=",
	GTGT_EQ:       ">>=",
	GTGTGT_EQ:     ">>>=",
	AMP_EQ:        "&=",
	PIPE_EQ:       "|=",
	CIRCUMFLEX_EQ: "^=",
	ANDAND_EQ:     "&&=",
	OROR_EQ:       "||=",
	QQ_EQ:         "??=",
	VAR:           "var",
	LET:           "let",
	CONST:         "const",
	BREAK:         "break",
	CONTINUE:      "continue",
}

// operators maps the source text of each operator and keyword to its token.
var operators = make(map[string]Token)

func init() {
	for tok := PLUS; tok <= CONTINUE; tok++ {
		operators[tokenNames[tok]] = tok
	}
}

// LookupOperator returns the token for the operator or keyword text s.
func LookupOperator(s string) (Token, bool) {
	tok, ok := operators[s]
	return tok, ok
}

// IsLogical reports whether tok is a short-circuit operator.
func (tok Token) IsLogical() bool { return tok == ANDAND || tok == OROR || tok == QQ }

// IsAssign reports whether tok is = or a compound assignment operator.
func (tok Token) IsAssign() bool { return EQ <= tok && tok <= QQ_EQ }
