// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements FunctionDeclaration, WithStatement, and
// LabeledStatement.

package flow

import "github.com/godoctor/cfgbuild/ast"

// parseFunctionDeclaration builds a fresh FlowFunction for stmt's body in
// its own subcontext and appends it to the shared accumulator. A
// FunctionDeclaration is itself a Normal statement in its enclosing body: it
// does not affect the flow graph being built around it, and its own
// completion is always normal(current).
func parseFunctionDeclaration(stmt *ast.FunctionDeclaration, current *FlowNode, ctx *Context) Completion {
	name := ""
	if stmt.Id != nil {
		name = stmt.Id.Name
	}

	fnCtx := ctx.newFunctionContext()
	fnGraph := fnCtx.Graph()

	bodyCompletion := parseStatements(stmt.Body.Body, fnGraph.Entry, fnCtx)
	if bodyCompletion.IsNormal() {
		// Falling off the end of a function body is an implicit
		// `return undefined`.
		undef := &ast.Identifier{Name: "undefined"}
		fnGraph.AddEdge(bodyCompletion.Node, fnGraph.SuccessExit, AbruptCompletion, "return undefined", undef)
	}

	ctx.addFunction(&FlowFunction{ID: ctx.CreateFunctionID(), Name: name, FlowGraph: fnGraph})
	return normalCompletion(current)
}

// parseWithStatement lowers the `object` expression, then translates body
// from the resulting node; the construct adds no
// shape of its own to the graph beyond that one evaluation node.
func parseWithStatement(stmt *ast.WithStatement, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()
	objNode := g.AppendTo(current, Stringify(stmt.Object), Epsilon, nil)
	return parseStatement(stmt.Body, objNode, ctx)
}

// parseLabeledStatement forwards stmt's label to its body's dedicated
// translator when that body natively understands labels (loops and switch),
// so `continue label` and `break label` resolve directly to the loop's own
// continue/break targets. For any other body (block, if, try, with), it
// pushes a break-only OtherStatement frame around the translation, giving
// `break label` somewhere to go even though the construct has no loop of its
// own. Any other body shape has no meaningful break target at all: the
// label is reported and the body is translated unlabeled.
func parseLabeledStatement(stmt *ast.LabeledStatement, current *FlowNode, ctx *Context) Completion {
	switch body := stmt.Body.(type) {
	case *ast.WhileStatement:
		return parseWhileStatement(body, current, ctx, stmt.Label)
	case *ast.DoWhileStatement:
		return parseDoWhileStatement(body, current, ctx, stmt.Label)
	case *ast.ForStatement:
		return parseForStatement(body, current, ctx, stmt.Label)
	case *ast.ForInStatement:
		return parseForInStatement(body, current, ctx, stmt.Label)
	case *ast.ForOfStatement:
		return parseForOfStatement(body, current, ctx, stmt.Label)
	case *ast.SwitchStatement:
		return parseSwitchStatement(body, current, ctx, stmt.Label)

	case *ast.BlockStatement, *ast.IfStatement, *ast.TryStatement, *ast.WithStatement:
		g := ctx.Graph()
		newFinal := g.CreateNode()
		ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: stmt.Label, BreakTarget: newFinal})
		bodyCompletion := parseStatement(stmt.Body, current, ctx)
		ctx.popEnclosing()
		if bodyCompletion.IsNormal() {
			g.AppendEpsilonEdgeTo(bodyCompletion.Node, newFinal)
		}
		return normalCompletion(newFinal)

	default:
		ctx.diagnostics.warning("label %q on a %T has no break target; translating unlabeled", stmt.Label, stmt.Body)
		return parseStatement(stmt.Body, current, ctx)
	}
}
