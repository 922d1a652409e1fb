// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements negateTruthiness: it returns an expression whose
// truthiness is the complement of expr's, used to label
// the falsy sibling of every Conditional edge pair the construction engine
// installs (the truthy/falsy cover invariant).

package flow

import "github.com/godoctor/cfgbuild/ast"

// complementOperator maps a symmetric, negatable comparison operator to its
// logical complement.
var complementOperator = map[string]string{
	"==": "!=", "!=": "==",
	"===": "!==", "!==": "===",
	"<": ">=", ">=": "<",
	">": "<=", "<=": ">",
}

// NegateTruthiness returns an expression whose truthiness is the complement
// of expr's:
//
//   - if expr is unary `!x`, strip the negation, yielding `x`;
//   - if expr is a binary comparison with a symmetric negatable operator,
//     flip it to its complement;
//   - otherwise, wrap expr in a unary `!`.
//
// This is a label-and-guard transform; semantic equivalence modulo
// JavaScript's ToBoolean coercion is assumed, not verified.
func NegateTruthiness(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.UnaryExpression:
		if e.Operator == "!" {
			return e.Argument
		}
	case *ast.BinaryExpression:
		if complement, ok := complementOperator[e.Operator]; ok {
			return &ast.BinaryExpression{Operator: complement, Left: e.Left, Right: e.Right}
		}
	}
	return &ast.UnaryExpression{Operator: "!", Argument: expr}
}
