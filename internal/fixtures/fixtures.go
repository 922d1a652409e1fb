// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fixtures provides small builder helpers for assembling ast.Node
// trees by hand in tests, since this module has no front end of its own: a
// terse way to stand up a test input without hand-nesting every struct
// literal.
package fixtures

import "github.com/godoctor/cfgbuild/ast"

// Program builds a top-level Program from a list of statements.
func Program(body ...ast.Stmt) *ast.Program {
	return &ast.Program{Body: body}
}

// Block builds a BlockStatement.
func Block(body ...ast.Stmt) *ast.BlockStatement {
	return &ast.BlockStatement{Body: body}
}

// Id builds an Identifier.
func Id(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// Num builds a numeric Literal.
func Num(v float64) *ast.Literal {
	return &ast.Literal{Value: v}
}

// Bool builds a boolean Literal.
func Bool(v bool) *ast.Literal {
	return &ast.Literal{Value: v}
}

// Str builds a string Literal.
func Str(v string) *ast.Literal {
	return &ast.Literal{Value: v}
}

// ExprStmt wraps expr as an ExpressionStatement.
func ExprStmt(expr ast.Expr) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: expr}
}

// Call builds a CallExpression.
func Call(callee ast.Expr, args ...ast.Expr) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

// CallStmt wraps a call to a named function as a statement, e.g. a()/b().
func CallStmt(name string, args ...ast.Expr) *ast.ExpressionStatement {
	return ExprStmt(Call(Id(name), args...))
}

// Assign builds `left = right` as a statement.
func Assign(name string, right ast.Expr) *ast.ExpressionStatement {
	return ExprStmt(&ast.AssignmentExpression{Operator: "=", Left: Id(name), Right: right})
}

// Bin builds a BinaryExpression.
func Bin(op string, left, right ast.Expr) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right}
}

// Not builds a unary logical negation.
func Not(expr ast.Expr) *ast.UnaryExpression {
	return &ast.UnaryExpression{Operator: "!", Argument: expr}
}

// Var builds a single-declarator `var name [= init];` statement.
func Var(name string, init ast.Expr) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		Kind:         "var",
		Declarations: []*ast.VariableDeclarator{{Id: Id(name), Init: init}},
	}
}

// If builds an IfStatement; pass nil for alternate to omit the else branch.
func If(test ast.Expr, consequent, alternate ast.Stmt) *ast.IfStatement {
	return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}
}

// While builds a WhileStatement.
func While(test ast.Expr, body ast.Stmt) *ast.WhileStatement {
	return &ast.WhileStatement{Test: test, Body: body}
}

// Labeled builds a LabeledStatement.
func Labeled(label string, body ast.Stmt) *ast.LabeledStatement {
	return &ast.LabeledStatement{Label: label, Body: body}
}

// Break builds a BreakStatement; pass "" for an unlabeled break.
func Break(label string) *ast.BreakStatement {
	return &ast.BreakStatement{Label: label}
}

// Continue builds a ContinueStatement; pass "" for an unlabeled continue.
func Continue(label string) *ast.ContinueStatement {
	return &ast.ContinueStatement{Label: label}
}

// Return builds a ReturnStatement; pass nil for a bare `return;`.
func Return(argument ast.Expr) *ast.ReturnStatement {
	return &ast.ReturnStatement{Argument: argument}
}

// Throw builds a ThrowStatement.
func Throw(argument ast.Expr) *ast.ThrowStatement {
	return &ast.ThrowStatement{Argument: argument}
}

// Try builds a TryStatement. Pass a nil handlerParam for a parameterless
// catch, and a nil handlerBody or finalizer to omit that clause.
func Try(block *ast.BlockStatement, handlerParam *ast.Identifier, handlerBody, finalizer *ast.BlockStatement) *ast.TryStatement {
	var handler *ast.CatchClause
	if handlerBody != nil {
		handler = &ast.CatchClause{Param: handlerParam, Body: handlerBody}
	}
	return &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}
}

// Case builds a SwitchCase; pass a nil test for the default clause.
func Case(test ast.Expr, consequent ...ast.Stmt) *ast.SwitchCase {
	return &ast.SwitchCase{Test: test, Consequent: consequent}
}

// Switch builds a SwitchStatement.
func Switch(discriminant ast.Expr, cases ...*ast.SwitchCase) *ast.SwitchStatement {
	return &ast.SwitchStatement{Discriminant: discriminant, Cases: cases}
}

// FuncExpr builds a FunctionExpression; pass "" for an anonymous function.
func FuncExpr(name string, params []*ast.Identifier, body *ast.BlockStatement) *ast.FunctionExpression {
	var id *ast.Identifier
	if name != "" {
		id = Id(name)
	}
	return &ast.FunctionExpression{Id: id, Params: params, Body: body}
}

// Func builds a FunctionDeclaration.
func Func(name string, params []*ast.Identifier, body *ast.BlockStatement) *ast.FunctionDeclaration {
	var id *ast.Identifier
	if name != "" {
		id = Id(name)
	}
	return &ast.FunctionDeclaration{Id: id, Params: params, Body: body}
}
