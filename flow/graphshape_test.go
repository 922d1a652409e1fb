// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/godoctor/cfgbuild/flow"
	"github.com/godoctor/cfgbuild/internal/fixtures"
)

// edgeShape is a plain, exported-only projection of a flow.FlowEdge used to
// diff a graph's edge set structurally with google/go-cmp, rather than
// comparing *flow.FlowEdge pointers or hand-rolling field-by-field
// assertions.
type edgeShape struct {
	SourceKind string
	TargetKind string
	Kind       flow.EdgeKind
	Label      string
}

func edgeShapes(g *flow.ControlFlowGraph) []edgeShape {
	shapes := make([]edgeShape, 0, len(g.Edges))
	for _, e := range g.Edges {
		shapes = append(shapes, edgeShape{
			SourceKind: e.Source.Kind.String(),
			TargetKind: e.Target.Kind.String(),
			Kind:       e.Kind,
			Label:      e.Label,
		})
	}
	sort.Slice(shapes, func(i, j int) bool {
		if shapes[i].Label != shapes[j].Label {
			return shapes[i].Label < shapes[j].Label
		}
		return shapes[i].Kind < shapes[j].Kind
	})
	return shapes
}

// TestEmptyProgramIsEntryEpsilonSuccessExit checks that an empty program
// reduces, after removeTransitNodes, to a single Epsilon edge from Entry
// to SuccessExit.
func TestEmptyProgramIsEntryEpsilonSuccessExit(t *testing.T) {
	result, _, err := flow.BuildProgram(fixtures.Program(), flow.Options{
		Passes: flow.PassOptions{RemoveTransitNodes: true},
	})
	require.NoError(t, err)

	got := edgeShapes(result.FlowGraph)
	want := []edgeShape{
		{SourceKind: "Entry", TargetKind: "SuccessExit", Kind: flow.Epsilon, Label: ""},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty program graph shape mismatch (-want +got):\n%s", diff)
	}
}

// TestIfElseShapeMatchesExpectedEdges checks that the if/else graph forks
// by exactly two Conditional edges, Conditional(a) and Conditional(!a).
func TestIfElseShapeMatchesExpectedEdges(t *testing.T) {
	program := fixtures.Program(
		fixtures.If(fixtures.Id("a"),
			fixtures.CallStmt("b"),
			fixtures.CallStmt("c"),
		),
	)
	result, _, err := flow.BuildProgram(program, flow.Options{
		Passes: flow.PassOptions{RemoveTransitNodes: true},
	})
	require.NoError(t, err)

	got := edgeShapes(result.FlowGraph)
	conditionalCount := 0
	for _, e := range got {
		if e.Kind == flow.Conditional {
			conditionalCount++
		}
	}
	if conditionalCount != 2 {
		t.Errorf("expected exactly 2 Conditional edges, got %d: %+v", conditionalCount, got)
	}
}
