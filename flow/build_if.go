// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements IfStatement: a diamond (with else) or triangle
// (without else) that forks on the test and merges at a final node.

package flow

import "github.com/godoctor/cfgbuild/ast"

// parseIfStatement builds the diamond (with else) or triangle (without
// else) shape of an if statement.
func parseIfStatement(stmt *ast.IfStatement, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()
	negated := NegateTruthiness(stmt.Test)

	if stmt.Alternate == nil {
		thenNode := g.AppendConditionallyTo(current, Stringify(stmt.Test), stmt.Test)
		finalNode := g.AppendConditionallyTo(current, Stringify(negated), negated)

		thenCompletion := parseStatement(stmt.Consequent, thenNode, ctx)
		if thenCompletion.IsNormal() {
			g.AppendEpsilonEdgeTo(thenCompletion.Node, finalNode)
		}
		return normalCompletion(finalNode)
	}

	thenNode := g.AppendConditionallyTo(current, Stringify(stmt.Test), stmt.Test)
	elseNode := g.AppendConditionallyTo(current, Stringify(negated), negated)

	thenCompletion := parseStatement(stmt.Consequent, thenNode, ctx)
	elseCompletion := parseStatement(stmt.Alternate, elseNode, ctx)

	finalNode := g.CreateNode()
	if thenCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(thenCompletion.Node, finalNode)
	}
	if elseCompletion.IsNormal() {
		g.AppendEpsilonEdgeTo(elseCompletion.Node, finalNode)
	}
	// If both branches are abrupt, finalNode remains unreached; it is
	// kept and pruned by removeUnreachableNodes.
	return normalCompletion(finalNode)
}
