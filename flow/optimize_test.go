// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godoctor/cfgbuild/ast"
	"github.com/godoctor/cfgbuild/flow"
	"github.com/godoctor/cfgbuild/internal/fixtures"
)

// loopySwitchProgram is a fixture exercising most construct shapes at once:
// a labeled while loop around a switch with fall-through, break, and a
// nested if.
func loopySwitchProgram() *ast.Program {
	return fixtures.Program(
		fixtures.Var("n", fixtures.Num(0)),
		fixtures.Labeled("outer", fixtures.While(fixtures.Id("x"), fixtures.Block(
			fixtures.Switch(fixtures.Id("k"),
				fixtures.Case(fixtures.Num(1), fixtures.CallStmt("a")),
				fixtures.Case(fixtures.Num(2), fixtures.CallStmt("b"), fixtures.Break("")),
				fixtures.Case(nil, fixtures.CallStmt("c")),
			),
			fixtures.If(fixtures.Id("y"), fixtures.Continue("outer"), nil),
			fixtures.CallStmt("tail"),
		))),
		fixtures.CallStmt("after"),
	)
}

// TestPassPipelineIsIdempotent checks that running the pass pipeline a
// second time on an already-optimized graph changes nothing.
func TestPassPipelineIsIdempotent(t *testing.T) {
	passes := flow.PassOptions{RewriteConstantConditionalEdges: true, RemoveTransitNodes: true}
	result, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{Passes: passes})
	require.NoError(t, err)
	g := result.FlowGraph

	before := edgeShapes(g)
	flow.RunOptimizations(g, passes)
	after := edgeShapes(g)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("second pipeline run changed the graph (-first +second):\n%s", diff)
	}
}

// TestConditionalEdgesComeInPairs checks that every node's outgoing
// Conditional edges appear in opposite-polarity pairs, so their count per
// node is always 0 or 2.
func TestConditionalEdgesComeInPairs(t *testing.T) {
	result, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{})
	require.NoError(t, err)

	for _, n := range result.FlowGraph.Nodes {
		conditional := 0
		for _, e := range n.Outgoing {
			if e.Kind == flow.Conditional {
				conditional++
			}
		}
		assert.Contains(t, []int{0, 2}, conditional,
			"node %d has %d outgoing Conditional edges", n.ID, conditional)
	}
}

// TestNoDuplicateOutgoingEdges checks that no node carries two outgoing
// edges with an identical (target, kind, astRef) tuple, with or without
// transit-node removal.
func TestNoDuplicateOutgoingEdges(t *testing.T) {
	for _, passes := range []flow.PassOptions{
		{},
		{RemoveTransitNodes: true},
		{RewriteConstantConditionalEdges: true, RemoveTransitNodes: true},
	} {
		result, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{Passes: passes})
		require.NoError(t, err)

		for _, n := range result.FlowGraph.Nodes {
			type key struct {
				target *flow.FlowNode
				kind   flow.EdgeKind
				astRef ast.Expr
			}
			seen := map[key]bool{}
			for _, e := range n.Outgoing {
				k := key{e.Target, e.Kind, e.AstRef}
				assert.False(t, seen[k], "passes %+v: node %d has duplicate edge to %d", passes, n.ID, e.Target.ID)
				seen[k] = true
			}
		}
	}
}

// TestTransitRemovalPreservesConditionalStructure checks that enabling
// removeTransitNodes never changes the conditional-edge guard structure.
func TestTransitRemovalPreservesConditionalStructure(t *testing.T) {
	plain, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{})
	require.NoError(t, err)
	spliced, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{
		Passes: flow.PassOptions{RemoveTransitNodes: true},
	})
	require.NoError(t, err)

	assert.Equal(t,
		countEdgesOfKind(plain.FlowGraph, flow.Conditional),
		countEdgesOfKind(spliced.FlowGraph, flow.Conditional))
	assert.Equal(t,
		countEdgesOfKind(plain.FlowGraph, flow.AbruptCompletion),
		countEdgesOfKind(spliced.FlowGraph, flow.AbruptCompletion))
}

// TestEveryNodeReachableAfterOptimization checks, via the collected node
// list, that every collected node except Entry has an incoming edge.
func TestEveryNodeReachableAfterOptimization(t *testing.T) {
	result, _, err := flow.BuildProgram(loopySwitchProgram(), flow.Options{
		Passes: flow.PassOptions{RemoveTransitNodes: true},
	})
	require.NoError(t, err)

	g := result.FlowGraph
	for _, n := range g.Nodes {
		if n == g.Entry {
			continue
		}
		assert.NotEmpty(t, n.Incoming, "node %d collected but has no incoming edges", n.ID)
	}
}

// TestConstantConditionalRewriteDropsDeadBranch checks that
// `if (true) a(); else b();` keeps only the then-branch once the rewrite
// is enabled, and the surviving edge is an Epsilon.
func TestConstantConditionalRewriteDropsDeadBranch(t *testing.T) {
	program := fixtures.Program(
		fixtures.If(fixtures.Bool(true),
			fixtures.CallStmt("a"),
			fixtures.CallStmt("b"),
		),
	)
	result, _, err := flow.BuildProgram(program, flow.Options{
		Passes: flow.PassOptions{RewriteConstantConditionalEdges: true},
	})
	require.NoError(t, err)
	g := result.FlowGraph

	assert.Equal(t, 0, countEdgesOfKind(g, flow.Conditional))
	sawA, sawB := false, false
	for _, e := range g.Edges {
		switch e.Label {
		case "a()":
			sawA = true
		case "b()":
			sawB = true
		}
	}
	assert.True(t, sawA, "then-branch should survive the rewrite")
	assert.False(t, sawB, "else-branch should be unreachable after the rewrite")
}
