// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements TryStatement, the construct responsible
// for finalizer-replay semantics threaded through build_jump.go.

package flow

import "github.com/godoctor/cfgbuild/ast"

// makeFinalizerThunk closes over finalizer so every call allocates a fresh
// entry node and re-translates the finally block from scratch, giving each
// replay site its own disjoint subgraph. Returns nil
// when there is no finally block, matching EnclosingStatement.ParseFinalizer
// nil-ability.
func makeFinalizerThunk(finalizer *ast.BlockStatement, ctx *Context) func() (*FlowNode, Completion) {
	if finalizer == nil {
		return nil
	}
	return func() (*FlowNode, Completion) {
		entry := ctx.CreateNode()
		return entry, parseStatements(finalizer.Body, entry, ctx)
	}
}

// parseTryStatement builds one of the three TryStatement productions:
// try/catch, try/finally, or try/catch/finally.
//
// Abrupt completions out of the try block or handler body (break, continue,
// return, throw) are handled entirely by the jump translators in
// build_jump.go, which consult this frame's ParseFinalizer while it is still
// on the enclosing-statement stack; by the time control returns here, only
// the *normal*-completion merge of the try/handler bodies with a trailing
// finally remains to be wired.
func parseTryStatement(stmt *ast.TryStatement, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()

	var handlerBodyEntry *FlowNode
	if stmt.Handler != nil {
		handlerBodyEntry = g.CreateNode()
	}
	finalizerThunk := makeFinalizerThunk(stmt.Finalizer, ctx)

	frame := &EnclosingStatement{
		Kind:             TryStatement,
		Handler:          stmt.Handler,
		HandlerBodyEntry: handlerBodyEntry,
		ParseFinalizer:   finalizerThunk,
	}
	ctx.pushEnclosing(frame)

	frame.InTryBlock = true
	tryCompletion := parseStatements(stmt.Block.Body, current, ctx)
	frame.InTryBlock = false

	var handlerCompletion Completion
	if stmt.Handler != nil {
		handlerCompletion = parseStatements(stmt.Handler.Body.Body, handlerBodyEntry, ctx)
	}
	ctx.popEnclosing()

	switch {
	case stmt.Handler != nil && stmt.Finalizer == nil:
		return mergeNormalCompletions(g, tryCompletion, handlerCompletion)

	case stmt.Handler == nil && stmt.Finalizer != nil:
		// An abruptly-completing try block has already had this
		// finalizer replayed by whichever jump translator produced
		// that completion; only the normal-completion path still
		// needs one last (fall-through) replay here.
		if !tryCompletion.IsNormal() {
			return tryCompletion
		}
		return runFinalizerAfter(g, finalizerThunk, tryCompletion.Node)

	case stmt.Handler != nil && stmt.Finalizer != nil:
		var finalCompletions []Completion
		if tryCompletion.IsNormal() {
			finalCompletions = append(finalCompletions, runFinalizerAfter(g, finalizerThunk, tryCompletion.Node))
		}
		if handlerCompletion.IsNormal() {
			finalCompletions = append(finalCompletions, runFinalizerAfter(g, finalizerThunk, handlerCompletion.Node))
		}
		return mergeNormalCompletionList(g, finalCompletions)

	default:
		// Not a well-formed TryStatement (neither handler nor
		// finalizer); degrade to the try block alone.
		return tryCompletion
	}
}

// runFinalizerAfter links a normally-completing predecessor into one fresh
// copy of the finally block.
func runFinalizerAfter(g *ControlFlowGraph, finalizerThunk func() (*FlowNode, Completion), predecessor *FlowNode) Completion {
	entry, completion := finalizerThunk()
	g.AppendEpsilonEdgeTo(predecessor, entry)
	return completion
}

// mergeNormalCompletions joins the normal-completion ends of a try block and
// its handler into one shared successor node. Neither side carries a
// pending finalizer replay here, so an
// abruptly-completing side is simply skipped: it already installed its own
// AbruptCompletion edge via build_jump.go and needs no further wiring. If
// both sides are abrupt, finalNode is left unreachable and is pruned by the
// optimization pipeline.
func mergeNormalCompletions(g *ControlFlowGraph, a, b Completion) Completion {
	finalNode := g.CreateNode()
	if a.IsNormal() {
		g.AppendEpsilonEdgeTo(a.Node, finalNode)
	}
	if b.IsNormal() {
		g.AppendEpsilonEdgeTo(b.Node, finalNode)
	}
	return normalCompletion(finalNode)
}

// mergeNormalCompletionList merges the try/catch/finally production, where
// each list entry is already the result of replaying the finally block
// after a normally-completing try or handler body. Unlike
// mergeNormalCompletions, an abrupt entry here means the finalizer itself
// broke/continued/returned/threw, which overrides the merge outright: the
// first one found wins, since it is rare enough for
// both finalizer replays to complete abruptly that there is no need to
// thread a list of completions any further up the engine.
func mergeNormalCompletionList(g *ControlFlowGraph, completions []Completion) Completion {
	finalNode := g.CreateNode()
	for _, c := range completions {
		if !c.IsNormal() {
			return c
		}
		g.AppendEpsilonEdgeTo(c.Node, finalNode)
	}
	return normalCompletion(finalNode)
}
