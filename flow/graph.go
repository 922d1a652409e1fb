// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the graph model: FlowNode, FlowEdge, and the
// per-function ControlFlowGraph that owns them. Construction never
// introduces parallel duplicate edges with an identical
// (source, target, kind, astRef) tuple; AddEdge collapses them.

package flow

import "github.com/godoctor/cfgbuild/ast"

// NodeKind classifies a FlowNode.
type NodeKind int

const (
	// Entry is the unique node every graph's execution starts from.
	Entry NodeKind = iota
	// SuccessExit is the unique sink a graph reaches on normal/return completion.
	SuccessExit
	// ErrorExit is the unique sink a graph reaches on an unhandled throw.
	ErrorExit
	// Normal is any other vertex.
	Normal
)

func (k NodeKind) String() string {
	switch k {
	case Entry:
		return "Entry"
	case SuccessExit:
		return "SuccessExit"
	case ErrorExit:
		return "ErrorExit"
	case Normal:
		return "Normal"
	default:
		return "Unknown"
	}
}

// EdgeKind classifies a FlowEdge.
type EdgeKind int

const (
	// Epsilon is an unconditional control transfer with no guard.
	Epsilon EdgeKind = iota
	// Conditional is guarded by AstRef, a boolean expression; Label is its
	// stringification. The two iteration edges of a for-in/for-of loop are
	// the exception: they carry no AstRef and are labeled `<has more>` and
	// `<done>`.
	Conditional
	// AbruptCompletion is a break/continue/return/throw (or implicit
	// return-undefined) transition.
	AbruptCompletion
)

func (k EdgeKind) String() string {
	switch k {
	case Epsilon:
		return "Epsilon"
	case Conditional:
		return "Conditional"
	case AbruptCompletion:
		return "AbruptCompletion"
	default:
		return "Unknown"
	}
}

// FlowNode is a vertex marking a point between statements/expressions.
type FlowNode struct {
	ID       int
	Kind     NodeKind
	Outgoing []*FlowEdge
	Incoming []*FlowEdge
}

// FlowEdge is a directed transfer of control between two FlowNodes.
type FlowEdge struct {
	Source *FlowNode
	Target *FlowNode
	Kind   EdgeKind
	Label  string
	AstRef ast.Expr // set on Conditional edges (except for-in/for-of iteration edges) and on throw and return edges; nil on break/continue and bare-return edges
}

// ControlFlowGraph is one flow graph: one per lexical function
// body plus one for the top-level program.
type ControlFlowGraph struct {
	Entry       *FlowNode
	SuccessExit *FlowNode
	ErrorExit   *FlowNode

	// Nodes and Edges are populated by the collectNodesAndEdges
	// optimization pass; until then the graph is defined purely
	// by transitive reachability from Entry.
	Nodes []*FlowNode
	Edges []*FlowEdge

	alloc *idAllocator
}

// newGraph allocates a fresh graph with its Entry, SuccessExit, and
// ErrorExit nodes, sharing node-id generation with alloc so ids stay
// unique across every graph built within one BuildProgram call.
func newGraph(alloc *idAllocator) *ControlFlowGraph {
	g := &ControlFlowGraph{alloc: alloc}
	g.Entry = g.newNode(Entry)
	g.SuccessExit = g.newNode(SuccessExit)
	g.ErrorExit = g.newNode(ErrorExit)
	return g
}

// newNode allocates a node of the given kind within this graph.
func (g *ControlFlowGraph) newNode(kind NodeKind) *FlowNode {
	return &FlowNode{ID: g.alloc.nextNodeID(), Kind: kind}
}

// CreateNode allocates a Normal node in this graph.
func (g *ControlFlowGraph) CreateNode() *FlowNode {
	return g.newNode(Normal)
}

// AddEdge appends an outgoing edge from source to target, skipping
// installation if an edge with an identical (target, kind, astRef) already
// exists out of source.
func (g *ControlFlowGraph) AddEdge(source, target *FlowNode, kind EdgeKind, label string, astRef ast.Expr) *FlowEdge {
	for _, e := range source.Outgoing {
		if e.Target == target && e.Kind == kind && e.AstRef == astRef {
			return e
		}
	}
	e := &FlowEdge{Source: source, Target: target, Kind: kind, Label: label, AstRef: astRef}
	source.Outgoing = append(source.Outgoing, e)
	target.Incoming = append(target.Incoming, e)
	return e
}

// AppendTo creates a new Normal node and links source to it with an edge of
// the given kind, returning the new node so callers can chain further
// construction from it.
func (g *ControlFlowGraph) AppendTo(source *FlowNode, label string, kind EdgeKind, astRef ast.Expr) *FlowNode {
	target := g.CreateNode()
	g.AddEdge(source, target, kind, label, astRef)
	return target
}

// AppendEpsilonEdgeTo links source to an already-existing node via an
// unlabeled Epsilon edge.
func (g *ControlFlowGraph) AppendEpsilonEdgeTo(source, target *FlowNode) *FlowEdge {
	return g.AddEdge(source, target, Epsilon, "", nil)
}

// AppendConditionallyTo creates a new Normal node and links source to it via
// a Conditional edge guarded by astRef.
func (g *ControlFlowGraph) AppendConditionallyTo(source *FlowNode, label string, astRef ast.Expr) *FlowNode {
	return g.AppendTo(source, label, Conditional, astRef)
}
