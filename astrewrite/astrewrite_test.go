// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astrewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godoctor/cfgbuild/ast"
	"github.com/godoctor/cfgbuild/astrewrite"
	"github.com/godoctor/cfgbuild/internal/fixtures"
)

func TestLiftsTopLevelNamedFunctionExpression(t *testing.T) {
	// var f = function g() { a(); }
	program := fixtures.Program(
		fixtures.Var("f", fixtures.FuncExpr("g", nil, fixtures.Block(fixtures.CallStmt("a")))),
	)

	rewritten := astrewrite.LiftNamedFunctionExpressions(program)
	require.Len(t, rewritten.Body, 2)

	decl, ok := rewritten.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "lifted declaration should precede the var statement, got %T", rewritten.Body[0])
	assert.Equal(t, "g", decl.Id.Name)

	varDecl, ok := rewritten.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok, "var statement should follow the lifted declaration, got %T", rewritten.Body[1])
	init, ok := varDecl.Declarations[0].Init.(*ast.Identifier)
	require.True(t, ok, "declarator should reference the lifted name, got %T", varDecl.Declarations[0].Init)
	assert.Equal(t, "g", init.Name)
}

func TestLiftsNamedFunctionExpressionNestedInLiftedBody(t *testing.T) {
	// var f = function outer() { var g = function inner() {}; }
	program := fixtures.Program(
		fixtures.Var("f", fixtures.FuncExpr("outer", nil, fixtures.Block(
			fixtures.Var("g", fixtures.FuncExpr("inner", nil, fixtures.Block())),
		))),
	)

	rewritten := astrewrite.LiftNamedFunctionExpressions(program)
	require.Len(t, rewritten.Body, 2)

	outer, ok := rewritten.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "outer should be lifted, got %T", rewritten.Body[0])
	assert.Equal(t, "outer", outer.Id.Name)

	require.Len(t, outer.Body.Body, 2, "outer's body should gain a lifted declaration for inner")
	inner, ok := outer.Body.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "inner should be lifted inside outer's body, got %T", outer.Body.Body[0])
	assert.Equal(t, "inner", inner.Id.Name)

	varG, ok := outer.Body.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok, "var g should follow inner's lifted declaration, got %T", outer.Body.Body[1])
	init, ok := varG.Declarations[0].Init.(*ast.Identifier)
	require.True(t, ok, "g's declarator should reference the lifted name, got %T", varG.Declarations[0].Init)
	assert.Equal(t, "inner", init.Name)
}

func TestLeavesAnonymousFunctionExpressionUntouched(t *testing.T) {
	// var h = function() {}
	program := fixtures.Program(
		fixtures.Var("h", fixtures.FuncExpr("", nil, fixtures.Block())),
	)

	rewritten := astrewrite.LiftNamedFunctionExpressions(program)
	require.Len(t, rewritten.Body, 1)

	varDecl, ok := rewritten.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok, "got %T", rewritten.Body[0])
	_, isFn := varDecl.Declarations[0].Init.(*ast.FunctionExpression)
	assert.True(t, isFn, "anonymous function expression should remain an opaque initializer")
}

func TestLiftsInsideNestedStatementBodies(t *testing.T) {
	// while (x) { var f = function g() {}; }
	program := fixtures.Program(
		fixtures.While(fixtures.Id("x"), fixtures.Block(
			fixtures.Var("f", fixtures.FuncExpr("g", nil, fixtures.Block())),
		)),
	)

	rewritten := astrewrite.LiftNamedFunctionExpressions(program)
	require.Len(t, rewritten.Body, 1)

	loop, ok := rewritten.Body[0].(*ast.WhileStatement)
	require.True(t, ok, "got %T", rewritten.Body[0])
	block, ok := loop.Body.(*ast.BlockStatement)
	require.True(t, ok, "got %T", loop.Body)
	require.Len(t, block.Body, 2)
	decl, ok := block.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "got %T", block.Body[0])
	assert.Equal(t, "g", decl.Id.Name)
}
