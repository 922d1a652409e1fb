// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the four abrupt-completion statement forms:
// BreakStatement, ContinueStatement, ReturnStatement, and ThrowStatement.
// Each installs an AbruptCompletion edge after replaying the finalizer of
// every TryStatement frame it unwinds through.

package flow

import "github.com/godoctor/cfgbuild/ast"

// replayFinalizer builds one fresh copy of tryFrame's finally block (if it
// has one) and links current into it. It returns the finalizer's own
// completion, which callers fold into their own:
// an abruptly-completing finalizer overrides whatever completion was
// unwinding through it.
func replayFinalizer(tryFrame *EnclosingStatement, current *FlowNode, ctx *Context) Completion {
	if tryFrame.ParseFinalizer == nil {
		return normalCompletion(current)
	}
	tryFrame.InFinalizer = true
	bodyEntry, bodyCompletion := tryFrame.ParseFinalizer()
	tryFrame.InFinalizer = false

	ctx.Graph().AppendEpsilonEdgeTo(current, bodyEntry)
	return bodyCompletion
}

// replayFinalizersThrough replays, in innermost-first order, the finalizer
// of every frame in frames that is not already mid-replay (guarding against
// the finally block's own jumps re-triggering their enclosing try). It
// returns the possibly-updated "current" node and, if a finalizer itself
// completed abruptly, that completion (overriding the caller's own).
func replayFinalizersThrough(frames []*EnclosingStatement, current *FlowNode, ctx *Context) (*FlowNode, *Completion) {
	for _, frame := range frames {
		if frame.InFinalizer {
			continue
		}
		replay := replayFinalizer(frame, current, ctx)
		if !replay.IsNormal() {
			return current, &replay
		}
		current = replay.Node
	}
	return current, nil
}

// parseJump is shared by BreakStatement and ContinueStatement: resolve the
// target frame, replay the finalizers of every TryStatement nested inside
// it, then install the AbruptCompletion edge.
func parseJump(label string, isContinue bool, current *FlowNode, ctx *Context) Completion {
	frame, idx, ok := ctx.findEnclosing(label, isContinue)
	if !ok {
		kind := "break"
		if isContinue {
			kind = "continue"
		}
		panic(buildPanic{illegalJumpTargetf("%s has no resolvable target (label=%q)", kind, label)})
	}

	nested := ctx.enclosingTryFramesAbove(idx)
	var overridden *Completion
	current, overridden = replayFinalizersThrough(nested, current, ctx)
	if overridden != nil {
		return *overridden
	}

	g := ctx.Graph()
	target := frame.BreakTarget
	edgeLabel := "break"
	result := breakCompletion
	if isContinue {
		target = frame.ContinueTarget
		edgeLabel = "continue"
		result = continueCompletion
	}
	g.AddEdge(current, target, AbruptCompletion, edgeLabel, nil)
	return result
}

func parseBreakStatement(stmt *ast.BreakStatement, current *FlowNode, ctx *Context) Completion {
	return parseJump(stmt.Label, false, current, ctx)
}

func parseContinueStatement(stmt *ast.ContinueStatement, current *FlowNode, ctx *Context) Completion {
	return parseJump(stmt.Label, true, current, ctx)
}

// parseReturnStatement replays every enclosing try frame's finalizer, in
// stack order, then installs an AbruptCompletion edge to the graph's
// SuccessExit.
func parseReturnStatement(stmt *ast.ReturnStatement, current *FlowNode, ctx *Context) Completion {
	frames := ctx.allEnclosingTryFrames()
	current, overridden := replayFinalizersThrough(frames, current, ctx)
	if overridden != nil {
		return *overridden
	}

	g := ctx.Graph()
	label := "return undefined"
	var astRef ast.Expr
	if stmt.Argument != nil {
		label = "return " + Stringify(stmt.Argument)
		astRef = stmt.Argument
	}
	g.AddEdge(current, g.SuccessExit, AbruptCompletion, label, astRef)
	return returnCompletion
}

// parseThrowStatement walks the enclosing-statement stack outward from the
// innermost frame, looking for the first live
// TryStatement frame: if its try block is the one currently being
// translated and it has a handler, install the throw edge toward the
// handler; otherwise, if it has an unreplayed finalizer, replay it and keep
// walking outward. If the walk exhausts the stack without finding a
// handler, the throw reaches the graph's ErrorExit.
func parseThrowStatement(stmt *ast.ThrowStatement, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()

	for i := len(ctx.enclosingStatements) - 1; i >= 0; i-- {
		frame := ctx.enclosingStatements[i]
		if frame.Kind != TryStatement {
			continue
		}

		if frame.InTryBlock && frame.Handler != nil {
			paramName := "<exception>"
			if frame.Handler.Param != nil {
				paramName = frame.Handler.Param.Name
			}
			// The throw's AbruptCompletion edge terminates at the
			// handler's entry node; the thrown value's binding to the
			// handler parameter is its own node on the way there.
			label := paramName + " = " + Stringify(stmt.Argument)
			assignNode := g.AppendTo(current, label, Epsilon, nil)
			g.AddEdge(assignNode, frame.HandlerBodyEntry, AbruptCompletion, "throw "+Stringify(stmt.Argument), stmt.Argument)
			return throwCompletion
		}

		if frame.ParseFinalizer != nil && !frame.InFinalizer {
			replay := replayFinalizer(frame, current, ctx)
			if !replay.IsNormal() {
				return replay
			}
			current = replay.Node
		}
	}

	g.AddEdge(current, g.ErrorExit, AbruptCompletion, "throw "+Stringify(stmt.Argument), stmt.Argument)
	return throwCompletion
}
