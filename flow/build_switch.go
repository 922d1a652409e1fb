// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements SwitchStatement, including fall-through
// between cases and the "default sits mid-list" wiring to the first case
// syntactically following it.

package flow

import "github.com/godoctor/cfgbuild/ast"

// parseSwitchStatement builds a switch's case chain:
//
//   - the discriminant is assigned once to a synthetic temporary;
//   - each non-default case is tested in source order against that
//     temporary via `temp === test`, chaining the "no match" edge
//     (stillSearching) into the next case's test;
//   - a case whose body completes normally falls through (Epsilon) into the
//     next case's body, in source order;
//   - the default clause, if present, is translated last, starting from
//     wherever stillSearching ended up, and its normal completion is wired
//     to the first case syntactically after it (fall-through), or to
//     finalNode if it was the last case or no case follows it;
//   - with no default, an unmatched discriminant flows straight to
//     finalNode.
func parseSwitchStatement(stmt *ast.SwitchStatement, current *FlowNode, ctx *Context, label string) Completion {
	g := ctx.Graph()
	temp := ctx.CreateTemporaryLocalVariableName("switch")
	stillSearching := g.AppendTo(current, temp+" = "+Stringify(stmt.Discriminant), Epsilon, nil)
	finalNode := g.CreateNode()

	ctx.pushEnclosing(&EnclosingStatement{Kind: OtherStatement, Label: label, BreakTarget: finalNode})

	var prevCaseEnd *Completion
	var firstAfterDefault *FlowNode
	var defaultCase *ast.SwitchCase
	seenDefault := false

	for _, c := range stmt.Cases {
		if c.Test == nil {
			defaultCase = c
			seenDefault = true
			continue
		}

		eq := &ast.BinaryExpression{Operator: "===", Left: &ast.Identifier{Name: temp}, Right: c.Test}
		beginBody := g.AppendConditionallyTo(stillSearching, Stringify(eq), eq)

		if seenDefault && firstAfterDefault == nil {
			firstAfterDefault = beginBody
		}
		if prevCaseEnd != nil && prevCaseEnd.IsNormal() {
			g.AppendEpsilonEdgeTo(prevCaseEnd.Node, beginBody)
		}

		bodyCompletion := parseStatements(c.Consequent, beginBody, ctx)
		prevCaseEnd = &bodyCompletion

		negated := NegateTruthiness(eq)
		stillSearching = g.AppendConditionallyTo(stillSearching, Stringify(negated), negated)
	}

	if prevCaseEnd != nil && prevCaseEnd.IsNormal() {
		g.AppendEpsilonEdgeTo(prevCaseEnd.Node, finalNode)
	}

	if defaultCase != nil {
		defaultCompletion := parseStatements(defaultCase.Consequent, stillSearching, ctx)
		if defaultCompletion.IsNormal() {
			if firstAfterDefault != nil {
				g.AppendEpsilonEdgeTo(defaultCompletion.Node, firstAfterDefault)
			} else {
				g.AppendEpsilonEdgeTo(defaultCompletion.Node, finalNode)
			}
		}
	} else {
		g.AppendEpsilonEdgeTo(stillSearching, finalNode)
	}

	ctx.popEnclosing()
	return normalCompletion(finalNode)
}
