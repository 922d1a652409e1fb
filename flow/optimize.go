// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the optimization pipeline: rewriting
// statically-decidable Conditional edge pairs into a single Epsilon edge,
// pruning nodes the rewrite (or an always-abrupt branch) made unreachable,
// splicing out pure pass-through nodes, and finally collecting the live
// node/edge set in deterministic order. Node-id membership sets for the BFS
// passes are bitsets rather than maps; node ids are dense small integers.
package flow

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/godoctor/cfgbuild/ast"
)

// RunOptimizations applies the enabled passes to g, in a fixed order, then
// always runs the final collection pass so g.Nodes/g.Edges reflect the
// live graph.
func RunOptimizations(g *ControlFlowGraph, passes PassOptions) {
	if passes.RewriteConstantConditionalEdges {
		rewriteConstantConditionalEdges(g)
	}
	removeUnreachableNodes(g)
	if passes.RemoveTransitNodes {
		removeTransitNodes(g)
		removeUnreachableNodes(g)
	}
	collectNodesAndEdges(g)
}

// literalTruthiness reports expr's statically known ToBoolean result.
// Literal nodes are decidable, as is a chain of `!` negations over one: the falsy sibling of a constant
// guard is always the `!`-wrapped form negateTruthiness produces, so the
// pass would never fire without unwrapping it. Anything else (including an
// Identifier named "undefined", which this engine does not special-case) is
// left alone.
func literalTruthiness(expr ast.Expr) (value bool, ok bool) {
	if neg, isNeg := expr.(*ast.UnaryExpression); isNeg {
		if neg.Operator != "!" {
			return false, false
		}
		value, ok = literalTruthiness(neg.Argument)
		return !value, ok
	}
	lit, isLit := expr.(*ast.Literal)
	if !isLit {
		return false, false
	}
	switch v := lit.Value.(type) {
	case nil:
		return false, true
	case bool:
		return v, true
	case float64:
		return v != 0 && !math.IsNaN(v), true
	case string:
		return v != "", true
	default:
		return false, false
	}
}

// rewriteConstantConditionalEdges collapses a node's paired Conditional
// edges into a single Epsilon edge wherever the guard's truthiness is
// statically decidable, dropping the branch that can never be taken. The
// dropped branch's subgraph is left in place; it becomes unreachable and
// is pruned by removeUnreachableNodes.
func rewriteConstantConditionalEdges(g *ControlFlowGraph) {
	for _, n := range reachableNodes(g) {
		var taken, dropped *FlowEdge
		decided := true
		conditionalCount := 0
		for _, e := range n.Outgoing {
			if e.Kind != Conditional {
				continue
			}
			conditionalCount++
			value, ok := literalTruthiness(e.AstRef)
			if !ok {
				decided = false
				continue
			}
			if value {
				taken = e
			} else {
				dropped = e
			}
		}
		if !decided || conditionalCount != 2 || taken == nil || dropped == nil {
			continue
		}

		dropIncoming(dropped.Target, dropped)
		newOutgoing := make([]*FlowEdge, 0, len(n.Outgoing)-1)
		for _, e := range n.Outgoing {
			if e == dropped {
				continue
			}
			if e == taken {
				e = &FlowEdge{Source: n, Target: taken.Target, Kind: Epsilon}
				replaceIncoming(taken.Target, taken, e)
			}
			newOutgoing = append(newOutgoing, e)
		}
		n.Outgoing = newOutgoing
	}
}

// replaceIncoming swaps old for replacement in target's Incoming list.
func replaceIncoming(target *FlowNode, old, replacement *FlowEdge) {
	for i, e := range target.Incoming {
		if e == old {
			target.Incoming[i] = replacement
			return
		}
	}
}

// reachableNodes walks g from Entry over Outgoing edges, visiting each node
// once, in BFS (and therefore deterministic, id-ascending-ish) order.
func reachableNodes(g *ControlFlowGraph) []*FlowNode {
	visited := bitset.New(uint(g.alloc.nextNode + 1))
	order := make([]*FlowNode, 0)
	queue := []*FlowNode{g.Entry}
	visited.Set(uint(g.Entry.ID))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, e := range n.Outgoing {
			if !visited.Test(uint(e.Target.ID)) {
				visited.Set(uint(e.Target.ID))
				queue = append(queue, e.Target)
			}
		}
	}
	return order
}

// removeUnreachableNodes drops, from every still-reachable node's Incoming
// list, any edge whose source is no longer reachable. A node with no path
// from Entry simply never appears in the BFS and is therefore absent from
// the final collection pass without further bookkeeping.
func removeUnreachableNodes(g *ControlFlowGraph) {
	reachable := reachableNodes(g)
	live := bitset.New(uint(g.alloc.nextNode + 1))
	for _, n := range reachable {
		live.Set(uint(n.ID))
	}
	for _, n := range reachable {
		kept := n.Incoming[:0:0]
		for _, e := range n.Incoming {
			if live.Test(uint(e.Source.ID)) {
				kept = append(kept, e)
			}
		}
		n.Incoming = kept
	}
}

// isTransitNode reports whether n is a pure pass-through node introduced by
// the construction engine purely to merge control flow (e.g. an if
// statement's finalNode): exactly one unlabeled incoming Epsilon edge and
// exactly one outgoing Epsilon edge, and not one of the graph's three
// distinguished nodes. Nodes that carry a label on their incoming edge
// (variable declarations, expression statements) are never transit nodes:
// collapsing them would discard information the graph exists to preserve.
func isTransitNode(n *FlowNode) bool {
	if n.Kind != Normal {
		return false
	}
	if len(n.Incoming) != 1 || len(n.Outgoing) != 1 {
		return false
	}
	in, out := n.Incoming[0], n.Outgoing[0]
	return in.Kind == Epsilon && in.Label == "" && out.Kind == Epsilon
}

// removeTransitNodes repeatedly splices transit nodes out of the graph,
// connecting their sole predecessor directly to their sole successor, until
// no more remain. It runs to a fixed point because splicing one node can
// expose its former predecessor or successor as a transit node in turn. The spliced edge keeps the outgoing
// edge's label and astRef (the incoming edge is unlabeled per
// isTransitNode), and an already-existing duplicate edge between the two
// endpoints absorbs the splice instead of being doubled.
func removeTransitNodes(g *ControlFlowGraph) {
	for {
		changed := false
		for _, n := range reachableNodes(g) {
			if n == g.Entry || !isTransitNode(n) {
				continue
			}
			in, out := n.Incoming[0], n.Outgoing[0]
			if hasEdge(in.Source, out.Target, Epsilon, out.AstRef) {
				dropOutgoing(in.Source, in)
				dropIncoming(out.Target, out)
			} else {
				spliced := &FlowEdge{Source: in.Source, Target: out.Target, Kind: Epsilon, Label: out.Label, AstRef: out.AstRef}
				replaceOutgoing(in.Source, in, spliced)
				replaceIncoming(out.Target, out, spliced)
			}
			n.Incoming, n.Outgoing = nil, nil
			changed = true
		}
		if !changed {
			return
		}
	}
}

// hasEdge reports whether source already carries an outgoing edge with the
// given (target, kind, astRef), the same duplicate criterion AddEdge uses.
func hasEdge(source, target *FlowNode, kind EdgeKind, astRef ast.Expr) bool {
	for _, e := range source.Outgoing {
		if e.Target == target && e.Kind == kind && e.AstRef == astRef {
			return true
		}
	}
	return false
}

// dropOutgoing deletes e from source's Outgoing list.
func dropOutgoing(source *FlowNode, e *FlowEdge) {
	for i, o := range source.Outgoing {
		if o == e {
			source.Outgoing = append(source.Outgoing[:i], source.Outgoing[i+1:]...)
			return
		}
	}
}

// dropIncoming deletes e from target's Incoming list.
func dropIncoming(target *FlowNode, e *FlowEdge) {
	for i, o := range target.Incoming {
		if o == e {
			target.Incoming = append(target.Incoming[:i], target.Incoming[i+1:]...)
			return
		}
	}
}

// replaceOutgoing swaps old for replacement in source's Outgoing list.
func replaceOutgoing(source *FlowNode, old, replacement *FlowEdge) {
	for i, e := range source.Outgoing {
		if e == old {
			source.Outgoing[i] = replacement
			return
		}
	}
}

// collectNodesAndEdges populates g.Nodes and g.Edges with the live,
// reachable graph in deterministic order: nodes in BFS-from-Entry order,
// edges sorted by (source id, target id, kind) within that.
func collectNodesAndEdges(g *ControlFlowGraph) {
	nodes := reachableNodes(g)
	g.Nodes = nodes

	var edges []*FlowEdge
	for _, n := range nodes {
		edges = append(edges, n.Outgoing...)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Source.ID != b.Source.ID {
			return a.Source.ID < b.Source.ID
		}
		if a.Target.ID != b.Target.ID {
			return a.Target.ID < b.Target.ID
		}
		return a.Kind < b.Kind
	})
	g.Edges = edges
}
