// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements stringify: a display-only, unambiguous
// textual rendering of an expression, used to label VariableDeclaration and
// Conditional/AbruptCompletion edges throughout the construction engine.
// No consumer parses the output back.

package flow

import (
	"strconv"
	"strings"

	"github.com/godoctor/cfgbuild/ast"
)

// precedence levels, loosely mirroring JavaScript operator precedence -
// just enough ordering to decide when a child expression needs parens to
// disambiguate against its parent.
const (
	precSequence = iota
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precCallNew
	precPrimary
)

var binaryPrecedence = map[string]int{
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
}

// Stringify renders expr as a human-readable, unambiguous label. A nil
// expr renders as the empty string.
func Stringify(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return stringifyPrec(expr, precSequence)
}

// exprPrecedence returns the precedence level of expr's outermost operator,
// used both to decide expr's own rendering and whether a parent needs to
// parenthesize it.
func exprPrecedence(expr ast.Expr) int {
	switch e := expr.(type) {
	case *ast.SequenceExpression:
		return precSequence
	case *ast.AssignmentExpression:
		return precAssignment
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.LogicalExpression:
		if e.Operator == "||" {
			return precLogicalOr
		}
		return precLogicalAnd
	case *ast.BinaryExpression:
		if p, ok := binaryPrecedence[e.Operator]; ok {
			return p
		}
		return precRelational
	case *ast.UnaryExpression:
		return precUnary
	case *ast.UpdateExpression:
		if e.Prefix {
			return precUnary
		}
		return precPostfix
	case *ast.CallExpression, *ast.NewExpression, *ast.MemberExpression:
		return precCallNew
	default:
		return precPrimary
	}
}

// stringifyPrec renders expr, wrapping it in parentheses if its own
// precedence is lower than minPrec (i.e. it would bind more loosely than
// the context requires).
func stringifyPrec(expr ast.Expr, minPrec int) string {
	s := stringifyNode(expr)
	if exprPrecedence(expr) < minPrec {
		return "(" + s + ")"
	}
	return s
}

func stringifyNode(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Literal:
		return stringifyLiteral(e)
	case *ast.UnaryExpression:
		return e.Operator + unarySeparator(e.Operator) + stringifyPrec(e.Argument, precUnary)
	case *ast.UpdateExpression:
		operand := stringifyPrec(e.Argument, precPostfix)
		if e.Prefix {
			return e.Operator + operand
		}
		return operand + e.Operator
	case *ast.BinaryExpression:
		p := exprPrecedence(e)
		return stringifyPrec(e.Left, p) + " " + e.Operator + " " + stringifyPrec(e.Right, p+1)
	case *ast.LogicalExpression:
		p := exprPrecedence(e)
		return stringifyPrec(e.Left, p) + " " + e.Operator + " " + stringifyPrec(e.Right, p+1)
	case *ast.AssignmentExpression:
		return stringifyPrec(e.Left, precConditional) + " " + e.Operator + " " + stringifyPrec(e.Right, precAssignment)
	case *ast.MemberExpression:
		if e.Computed {
			return stringifyPrec(e.Object, precCallNew) + "[" + Stringify(e.Property) + "]"
		}
		return stringifyPrec(e.Object, precCallNew) + "." + Stringify(e.Property)
	case *ast.CallExpression:
		return stringifyPrec(e.Callee, precCallNew) + "(" + stringifyExprList(e.Arguments) + ")"
	case *ast.NewExpression:
		return "new " + stringifyPrec(e.Callee, precCallNew) + "(" + stringifyExprList(e.Arguments) + ")"
	case *ast.ConditionalExpression:
		p := precConditional
		return stringifyPrec(e.Test, p+1) + " ? " + stringifyPrec(e.Consequent, precAssignment) + " : " + stringifyPrec(e.Alternate, precAssignment)
	case *ast.SequenceExpression:
		parts := make([]string, len(e.Expressions))
		for i, sub := range e.Expressions {
			parts[i] = stringifyPrec(sub, precAssignment)
		}
		return strings.Join(parts, ", ")
	case *ast.ArrayExpression:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			if el == nil {
				parts[i] = ""
				continue
			}
			parts[i] = stringifyPrec(el, precAssignment)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectExpression:
		parts := make([]string, len(e.Properties))
		for i, prop := range e.Properties {
			parts[i] = stringifyProperty(prop)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.FunctionExpression:
		name := ""
		if e.Id != nil {
			name = " " + e.Id.Name
		}
		return "function" + name + "(" + stringifyParams(e.Params) + ")"
	default:
		return "<?>"
	}
}

func unarySeparator(op string) string {
	switch op {
	case "typeof", "void", "delete":
		return " "
	default:
		return ""
	}
}

func stringifyLiteral(lit *ast.Literal) string {
	if lit.Raw != "" {
		return lit.Raw
	}
	switch v := lit.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return "<literal>"
	}
}

func stringifyExprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = stringifyPrec(e, precAssignment)
	}
	return strings.Join(parts, ", ")
}

func stringifyParams(params []*ast.Identifier) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

func stringifyProperty(prop *ast.Property) string {
	var key string
	if prop.Computed {
		key = "[" + Stringify(prop.Key) + "]"
	} else {
		key = Stringify(prop.Key)
	}
	return key + ": " + stringifyPrec(prop.Value, precAssignment)
}
