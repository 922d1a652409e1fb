// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the loop forms: WhileStatement, DoWhileStatement,
// ForStatement, ForInStatement, and ForOfStatement. Each translator accepts
// a label (possibly "") forwarded from an enclosing
// LabeledStatement.

package flow

import "github.com/godoctor/cfgbuild/ast"

// parseWhileStatement builds a `while (test) body` loop.
func parseWhileStatement(stmt *ast.WhileStatement, current *FlowNode, ctx *Context, label string) Completion {
	g := ctx.Graph()
	negated := NegateTruthiness(stmt.Test)

	loopBody := g.AppendConditionallyTo(current, Stringify(stmt.Test), stmt.Test)
	finalNode := g.AppendConditionallyTo(current, Stringify(negated), negated)

	ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: label, BreakTarget: finalNode, ContinueTarget: current})
	bodyCompletion := parseStatement(stmt.Body, loopBody, ctx)
	ctx.popEnclosing()

	if bodyCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(bodyCompletion.Node, current)
	}
	return normalCompletion(finalNode)
}

// parseDoWhileStatement builds a `do body while (test);` loop.
func parseDoWhileStatement(stmt *ast.DoWhileStatement, current *FlowNode, ctx *Context, label string) Completion {
	g := ctx.Graph()
	testNode := g.CreateNode()
	finalNode := g.CreateNode()

	ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: label, BreakTarget: finalNode, ContinueTarget: testNode})
	bodyCompletion := parseStatement(stmt.Body, current, ctx)
	ctx.popEnclosing()

	negated := NegateTruthiness(stmt.Test)
	g.AddEdge(testNode, current, Conditional, Stringify(stmt.Test), stmt.Test)
	g.AddEdge(testNode, finalNode, Conditional, Stringify(negated), negated)

	if bodyCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(bodyCompletion.Node, testNode)
	}
	return normalCompletion(finalNode)
}

// parseForInit lowers the optional init clause of a ForStatement, which may
// be nil, a VariableDeclaration, or a bare expression.
func parseForInit(init ast.Node, current *FlowNode, ctx *Context) *FlowNode {
	switch n := init.(type) {
	case nil:
		return current
	case *ast.VariableDeclaration:
		return parseVariableDeclaration(n, current, ctx).Node
	case ast.Expr:
		return parseExpression(n, current, ctx)
	default:
		panic(buildPanic{unsupportedConstructf("unrecognized for-init %T", init)})
	}
}

// parseForStatement builds a classic three-clause for loop.
func parseForStatement(stmt *ast.ForStatement, current *FlowNode, ctx *Context, label string) Completion {
	g := ctx.Graph()
	testDecisionNode := parseForInit(stmt.Init, current, ctx)

	beginBody := g.CreateNode()
	updateNode := g.CreateNode()
	finalNode := g.CreateNode()

	if stmt.Test != nil {
		negated := NegateTruthiness(stmt.Test)
		g.AddEdge(testDecisionNode, beginBody, Conditional, Stringify(stmt.Test), stmt.Test)
		g.AddEdge(testDecisionNode, finalNode, Conditional, Stringify(negated), negated)
	} else {
		// No test: unconditional fallthrough into the body rather than
		// a synthesized `true` guard, so the loop's shape does not
		// depend on which optimization passes are enabled.
		g.AppendEpsilonEdgeTo(testDecisionNode, beginBody)
	}

	ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: label, BreakTarget: finalNode, ContinueTarget: updateNode})
	bodyCompletion := parseStatement(stmt.Body, beginBody, ctx)
	ctx.popEnclosing()

	if stmt.Update != nil {
		updateEnd := parseExpression(stmt.Update, updateNode, ctx)
		g.AppendEpsilonEdgeTo(updateEnd, testDecisionNode)
	} else {
		g.AppendEpsilonEdgeTo(updateNode, testDecisionNode)
	}

	if bodyCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(bodyCompletion.Node, updateNode)
	}
	return normalCompletion(finalNode)
}

// loopVarLabel renders the assignment target of a for-in/for-of head,
// whether it is a fresh `var`/`let` declaration or a bare assignment target.
func loopVarLabel(left ast.Node) string {
	if decl, ok := left.(*ast.VariableDeclaration); ok && len(decl.Declarations) > 0 {
		return decl.Declarations[0].Id.Name
	}
	if expr, ok := left.(ast.Expr); ok {
		return Stringify(expr)
	}
	return "<target>"
}

// parseIterationStatement lowers the shared for-in/for-of iteration
// skeleton: a synthetic
// iterator is assigned at a condition node, which branches on `<has more>`
// / `<done>` into the body or the loop's exit.
func parseIterationStatement(kind string, left ast.Node, right ast.Expr, body ast.Stmt, current *FlowNode, ctx *Context, label string) Completion {
	g := ctx.Graph()
	iterName := ctx.CreateTemporaryLocalVariableName("iter")

	var conditionLabel string
	if kind == "of" {
		conditionLabel = iterName + " = iterator(" + Stringify(right) + ")"
	} else {
		conditionLabel = iterName + " = keys(" + Stringify(right) + ")"
	}
	conditionNode := g.AppendTo(current, conditionLabel, Epsilon, nil)

	var beginBodyLabel string
	target := loopVarLabel(left)
	if kind == "of" {
		beginBodyLabel = target + " = " + iterName + ".next()"
	} else {
		beginBodyLabel = target + " = <next>"
	}
	beginBody := g.AppendTo(conditionNode, "<has more>", Conditional, nil)
	beginBody = g.AppendTo(beginBody, beginBodyLabel, Epsilon, nil)
	finalNode := g.AppendTo(conditionNode, "<done>", Conditional, nil)

	ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: label, BreakTarget: finalNode, ContinueTarget: conditionNode})
	bodyCompletion := parseStatement(body, beginBody, ctx)
	ctx.popEnclosing()

	if bodyCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(bodyCompletion.Node, conditionNode)
	}
	return normalCompletion(finalNode)
}

func parseForInStatement(stmt *ast.ForInStatement, current *FlowNode, ctx *Context, label string) Completion {
	return parseIterationStatement("in", stmt.Left, stmt.Right, stmt.Body, current, ctx, label)
}

func parseForOfStatement(stmt *ast.ForOfStatement, current *FlowNode, ctx *Context, label string) Completion {
	return parseIterationStatement("of", stmt.Left, stmt.Right, stmt.Body, current, ctx, label)
}
