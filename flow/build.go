// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the construction engine's entry point and statement
// dispatcher.

package flow

import (
	"github.com/godoctor/cfgbuild/ast"
	"github.com/godoctor/cfgbuild/astrewrite"
)

// BuildProgram is the top-level entry point. It preprocesses program
// (lifting named function expressions), constructs a FlowProgram, and runs
// the optimization pipeline on every resulting graph. All errors surface
// synchronously; no partial program is returned alongside a non-nil error.
func BuildProgram(program *ast.Program, options Options) (result *FlowProgram, diagnostics *Diagnostics, err error) {
	if program == nil {
		return nil, nil, invalidInputf("program is nil")
	}

	diagnostics = &Diagnostics{}

	defer func() {
		if r := recover(); r != nil {
			bp, ok := r.(buildPanic)
			if !ok {
				panic(r)
			}
			result, diagnostics, err = nil, nil, bp.err
		}
	}()

	rewritten := astrewrite.LiftNamedFunctionExpressions(program)

	ctx := newRootContext(options, diagnostics)
	g := ctx.Graph()

	completion := parseStatements(rewritten.Body, g.Entry, ctx)
	if completion.IsNormal() {
		g.AppendEpsilonEdgeTo(completion.Node, g.SuccessExit)
	}

	RunOptimizations(g, options.Passes)
	for _, fn := range *ctx.functions {
		RunOptimizations(fn.FlowGraph, options.Passes)
	}

	return &FlowProgram{FlowGraph: g, Functions: *ctx.functions}, diagnostics, nil
}

// parseStatements folds parseStatement over list; the first abrupt
// completion short-circuits translation of the remaining statements, since
// they are unreachable.
func parseStatements(list []ast.Stmt, current *FlowNode, ctx *Context) Completion {
	completion := normalCompletion(current)
	for _, stmt := range list {
		if !completion.IsNormal() {
			return completion
		}
		completion = parseStatement(stmt, completion.Node, ctx)
	}
	return completion
}

// parseStatement dispatches stmt to its dedicated translator by AST tag
//. A nil stmt returns normal(current).
// Unknown tags raise ErrUnsupportedConstruct.
func parseStatement(stmt ast.Stmt, current *FlowNode, ctx *Context) Completion {
	if stmt == nil {
		return normalCompletion(current)
	}

	ctx.enterDepth()
	defer ctx.leaveDepth()

	switch s := stmt.(type) {
	case *ast.EmptyStatement:
		return parseEmptyStatement(s, current, ctx)
	case *ast.DebuggerStatement:
		return parseDebuggerStatement(s, current, ctx)
	case *ast.BlockStatement:
		return parseStatements(s.Body, current, ctx)
	case *ast.VariableDeclaration:
		return parseVariableDeclaration(s, current, ctx)
	case *ast.ExpressionStatement:
		return parseExpressionStatement(s, current, ctx)
	case *ast.IfStatement:
		return parseIfStatement(s, current, ctx)
	case *ast.WhileStatement:
		return parseWhileStatement(s, current, ctx, "")
	case *ast.DoWhileStatement:
		return parseDoWhileStatement(s, current, ctx, "")
	case *ast.ForStatement:
		return parseForStatement(s, current, ctx, "")
	case *ast.ForInStatement:
		return parseForInStatement(s, current, ctx, "")
	case *ast.ForOfStatement:
		return parseForOfStatement(s, current, ctx, "")
	case *ast.SwitchStatement:
		return parseSwitchStatement(s, current, ctx, "")
	case *ast.BreakStatement:
		return parseBreakStatement(s, current, ctx)
	case *ast.ContinueStatement:
		return parseContinueStatement(s, current, ctx)
	case *ast.LabeledStatement:
		return parseLabeledStatement(s, current, ctx)
	case *ast.ReturnStatement:
		return parseReturnStatement(s, current, ctx)
	case *ast.ThrowStatement:
		return parseThrowStatement(s, current, ctx)
	case *ast.TryStatement:
		return parseTryStatement(s, current, ctx)
	case *ast.WithStatement:
		return parseWithStatement(s, current, ctx)
	case *ast.FunctionDeclaration:
		return parseFunctionDeclaration(s, current, ctx)
	default:
		panic(buildPanic{unsupportedConstructf("unrecognized statement %T", stmt)})
	}
}

// parseExpression lowers expr from current, returning the node control
// reaches after evaluating it. Sequence
// expressions fan out to a chain of Normal nodes, one per comma operand;
// every other expression produces a single Normal node labeled by
// Stringify(expr).
func parseExpression(expr ast.Expr, current *FlowNode, ctx *Context) *FlowNode {
	ctx.enterDepth()
	defer ctx.leaveDepth()

	g := ctx.Graph()
	if seq, ok := expr.(*ast.SequenceExpression); ok {
		for _, sub := range seq.Expressions {
			current = parseExpression(sub, current, ctx)
		}
		return current
	}
	return g.AppendTo(current, Stringify(expr), Epsilon, nil)
}
