// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/godoctor/cfgbuild/ast"
	"github.com/godoctor/cfgbuild/flow"
	"github.com/godoctor/cfgbuild/internal/fixtures"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildAll(t *testing.T, program *ast.Program) *flow.FlowProgram {
	t.Helper()
	result, diags, err := flow.BuildProgram(program, flow.Options{
		Passes: flow.PassOptions{RewriteConstantConditionalEdges: true, RemoveTransitNodes: true},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	_ = diags
	return result
}

// countEdgesOfKind counts how many edges of kind appear in g.Edges, which
// collectNodesAndEdges populates as part of RunOptimizations.
func countEdgesOfKind(g *flow.ControlFlowGraph, kind flow.EdgeKind) int {
	n := 0
	for _, e := range g.Edges {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// reaches reports whether target is reachable from g.Entry via g.Edges.
func reaches(g *flow.ControlFlowGraph, target *flow.FlowNode) bool {
	for _, n := range g.Nodes {
		if n == target {
			return true
		}
	}
	return false
}

func TestIfElseBothBranchesMerge(t *testing.T) {
	program := fixtures.Program(
		fixtures.If(fixtures.Id("x"),
			fixtures.CallStmt("a"),
			fixtures.CallStmt("b"),
		),
		fixtures.CallStmt("after"),
	)
	result := buildAll(t, program)
	g := result.FlowGraph

	assert.True(t, reaches(g, g.SuccessExit))
	assert.Equal(t, 2, countEdgesOfKind(g, flow.Conditional))
}

func TestIfWithoutElseRejoins(t *testing.T) {
	program := fixtures.Program(
		fixtures.If(fixtures.Id("x"), fixtures.CallStmt("a"), nil),
		fixtures.CallStmt("after"),
	)
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.SuccessExit))
}

func TestWhileBreakReachesFinalNode(t *testing.T) {
	program := fixtures.Program(
		fixtures.While(fixtures.Id("x"), fixtures.Block(
			fixtures.If(fixtures.Id("y"), fixtures.Break(""), nil),
			fixtures.CallStmt("body"),
		)),
		fixtures.CallStmt("after"),
	)
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.SuccessExit))
	assert.GreaterOrEqual(t, countEdgesOfKind(g, flow.AbruptCompletion), 1)
}

func TestLabeledContinueTargetsOuterLoop(t *testing.T) {
	// outer: while (x) { inner: while (y) { continue outer; } }
	program := fixtures.Program(
		fixtures.Labeled("outer", fixtures.While(fixtures.Id("x"),
			fixtures.While(fixtures.Id("y"), fixtures.Continue("outer")),
		)),
	)
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.SuccessExit))
}

func TestIllegalJumpTargetIsReported(t *testing.T) {
	program := fixtures.Program(fixtures.Break("nosuch"))
	_, _, err := flow.BuildProgram(program, flow.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrIllegalJumpTarget))
}

func TestSwitchFallThroughIntoNextCase(t *testing.T) {
	// switch (k) { case 1: a(); case 2: b(); break; default: c(); }
	program := fixtures.Program(
		fixtures.Switch(fixtures.Id("k"),
			fixtures.Case(fixtures.Num(1), fixtures.CallStmt("a")),
			fixtures.Case(fixtures.Num(2), fixtures.CallStmt("b"), fixtures.Break("")),
			fixtures.Case(nil, fixtures.CallStmt("c")),
		),
	)
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.SuccessExit))
}

func TestTryFinallyReplaysOnReturn(t *testing.T) {
	body := fixtures.Func("f", nil, fixtures.Block(
		fixtures.Try(
			fixtures.Block(fixtures.Return(fixtures.Num(1))),
			nil, nil,
			fixtures.Block(fixtures.CallStmt("cleanup")),
		),
	))
	program := fixtures.Program(body)
	result := buildAll(t, program)
	require.Len(t, result.Functions, 1)
	fg := result.Functions[0].FlowGraph
	assert.True(t, reaches(fg, fg.SuccessExit))

	sawCleanup := false
	for _, e := range fg.Edges {
		if e.Label == "cleanup()" {
			sawCleanup = true
		}
	}
	assert.True(t, sawCleanup, "expected the finally block to be replayed on the return path")
}

func TestThrowWithoutHandlerReachesErrorExit(t *testing.T) {
	program := fixtures.Program(fixtures.Throw(fixtures.Str("boom")))
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.ErrorExit))
}

func TestThrowInsideTryReachesHandler(t *testing.T) {
	program := fixtures.Program(
		fixtures.Try(
			fixtures.Block(fixtures.Throw(fixtures.Str("boom"))),
			fixtures.Id("e"),
			fixtures.Block(fixtures.CallStmt("handled")),
			nil,
		),
	)
	result := buildAll(t, program)
	g := result.FlowGraph
	assert.True(t, reaches(g, g.SuccessExit))

	sawHandled := false
	for _, e := range g.Edges {
		if e.Label == "handled()" {
			sawHandled = true
		}
	}
	assert.True(t, sawHandled)
}

func TestFunctionDeclarationGetsImplicitReturnUndefined(t *testing.T) {
	program := fixtures.Program(fixtures.Func("f", nil, fixtures.Block(fixtures.CallStmt("a"))))
	result := buildAll(t, program)
	require.Len(t, result.Functions, 1)
	fg := result.Functions[0].FlowGraph
	assert.True(t, reaches(fg, fg.SuccessExit))

	sawImplicitReturn := false
	for _, e := range fg.Edges {
		if e.Kind == flow.AbruptCompletion && e.Label == "return undefined" {
			sawImplicitReturn = true
		}
	}
	assert.True(t, sawImplicitReturn)
}

func TestNestedNamedFunctionExpressionsBecomeFlowFunctions(t *testing.T) {
	// var f = function outer() { var g = function inner() { a(); }; }
	program := fixtures.Program(
		fixtures.Var("f", fixtures.FuncExpr("outer", nil, fixtures.Block(
			fixtures.Var("g", fixtures.FuncExpr("inner", nil, fixtures.Block(fixtures.CallStmt("a")))),
		))),
	)
	result := buildAll(t, program)

	require.Len(t, result.Functions, 2)
	names := make([]string, 0, len(result.Functions))
	for _, fn := range result.Functions {
		names = append(names, fn.Name)
	}
	assert.ElementsMatch(t, []string{"outer", "inner"}, names)
}

func TestInfiniteLoopPrunesImplicitReturn(t *testing.T) {
	// function f() { while (true) { continue; } }
	program := fixtures.Program(
		fixtures.Func("f", nil, fixtures.Block(
			fixtures.While(fixtures.Bool(true), fixtures.Block(fixtures.Continue(""))),
		)),
	)
	result := buildAll(t, program)
	require.Len(t, result.Functions, 1)
	fg := result.Functions[0].FlowGraph

	// With the constant-conditional rewrite on, the loop's exit branch is
	// dropped, so the implicit `return undefined` edge originates from an
	// unreachable node and is pruned along with it.
	assert.False(t, reaches(fg, fg.SuccessExit))
	sawContinue := false
	for _, e := range fg.Edges {
		if e.Kind == flow.AbruptCompletion && e.Label == "continue" {
			sawContinue = true
		}
	}
	assert.True(t, sawContinue, "expected the continue back-edge to survive")
}

func TestNilProgramIsInvalidInput(t *testing.T) {
	_, _, err := flow.BuildProgram(nil, flow.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrInvalidInput))
}
