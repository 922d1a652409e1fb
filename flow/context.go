// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the parsing context: per-function construction
// state, the enclosing-statement stack used to resolve
// break/continue/throw targets, and the process-local id/name generators
// shared across every function body built within one program.

package flow

import (
	"fmt"

	"github.com/godoctor/cfgbuild/ast"
)

// idAllocator hands out monotonically increasing ids shared by every graph
// and function built within one BuildProgram call. It is reset per build
// so tests stay deterministic.
type idAllocator struct {
	nextNode int
	nextFunc int
	nextTemp int
}

func (a *idAllocator) nextNodeID() int {
	id := a.nextNode
	a.nextNode++
	return id
}

func (a *idAllocator) nextFunctionID() int {
	id := a.nextFunc
	a.nextFunc++
	return id
}

func (a *idAllocator) nextTempOrdinal() int {
	id := a.nextTemp
	a.nextTemp++
	return id
}

// EnclosingKind classifies an EnclosingStatement frame.
type EnclosingKind int

const (
	// OtherStatement is any break/continue target that is not a try
	// statement: loops, switch, and labeled non-loop statements.
	OtherStatement EnclosingKind = iota
	// TryStatement is a try/catch/finally frame. Break/continue/throw
	// must replay its finalizer (if any) when unwinding through it.
	TryStatement
)

// EnclosingStatement is a frame on the parsing context's stack.
type EnclosingStatement struct {
	Kind  EnclosingKind
	Label string

	// BreakTarget and ContinueTarget are nil when this frame cannot be
	// the target of the corresponding jump (e.g. a switch has no
	// ContinueTarget; a labeled non-loop statement has no
	// ContinueTarget either).
	BreakTarget    *FlowNode
	ContinueTarget *FlowNode

	// The following fields apply only when Kind == TryStatement.
	Handler          *ast.CatchClause
	HandlerBodyEntry *FlowNode
	// ParseFinalizer builds a fresh copy of the finally block's subgraph
	// each time it is invoked, so every replay site gets a disjoint
	// subgraph.
	ParseFinalizer func() (bodyEntry *FlowNode, bodyCompletion Completion)
	InTryBlock     bool
	InFinalizer    bool
}

// Context is the per-outermost-translation state. A Context
// for a nested function body is created with newFunctionContext, sharing
// id/name generators and the functions accumulator but starting with a
// fresh graph and an empty enclosing-statement stack, since functions break
// the outer loop/try scope.
type Context struct {
	alloc       *idAllocator
	functions   *[]*FlowFunction
	diagnostics *Diagnostics
	options     Options

	currentFlowGraph    *ControlFlowGraph
	enclosingStatements []*EnclosingStatement

	depth int
}

// newRootContext starts a fresh build: a new graph, a new functions
// accumulator, and fresh generators.
func newRootContext(options Options, diagnostics *Diagnostics) *Context {
	alloc := &idAllocator{}
	functions := make([]*FlowFunction, 0)
	ctx := &Context{
		alloc:       alloc,
		functions:   &functions,
		diagnostics: diagnostics,
		options:     options,
	}
	ctx.currentFlowGraph = newGraph(alloc)
	return ctx
}

// newFunctionContext creates a subcontext for a nested function body:
// ids remain unique across the whole build and `functions` is still shared,
// but the graph and enclosing-statement stack are fresh and empty.
func (ctx *Context) newFunctionContext() *Context {
	return &Context{
		alloc:            ctx.alloc,
		functions:        ctx.functions,
		diagnostics:      ctx.diagnostics,
		options:          ctx.options,
		currentFlowGraph: newGraph(ctx.alloc),
		depth:            ctx.depth,
	}
}

// Graph returns the graph currently being built.
func (ctx *Context) Graph() *ControlFlowGraph { return ctx.currentFlowGraph }

// CreateNode allocates a Normal node in the current graph.
func (ctx *Context) CreateNode() *FlowNode {
	return ctx.currentFlowGraph.CreateNode()
}

// CreateTemporaryLocalVariableName yields a unique synthetic name such as
// "$$temp1" or, when hint is non-empty, "$$iter2".
func (ctx *Context) CreateTemporaryLocalVariableName(hint string) string {
	n := ctx.alloc.nextTempOrdinal()
	if hint == "" {
		hint = "temp"
	}
	return fmt.Sprintf("$$%s%d", hint, n)
}

// CreateFunctionID returns the next monotonically increasing function id.
func (ctx *Context) CreateFunctionID() int {
	return ctx.alloc.nextFunctionID()
}

// addFunction appends fn to the shared accumulator.
func (ctx *Context) addFunction(fn *FlowFunction) {
	*ctx.functions = append(*ctx.functions, fn)
}

// pushEnclosing pushes a new frame, to be popped after translating the
// construct it guards.
func (ctx *Context) pushEnclosing(frame *EnclosingStatement) {
	ctx.enclosingStatements = append(ctx.enclosingStatements, frame)
}

// popEnclosing pops the most recently pushed frame.
func (ctx *Context) popEnclosing() {
	ctx.enclosingStatements = ctx.enclosingStatements[:len(ctx.enclosingStatements)-1]
}

// enterDepth increments the recursion-depth counter and fails with
// ErrInputTooDeep if Options.MaxDepth is exceeded. Call leaveDepth via
// defer to pair it.
func (ctx *Context) enterDepth() {
	ctx.depth++
	if ctx.options.MaxDepth > 0 && ctx.depth > ctx.options.MaxDepth {
		panic(buildPanic{inputTooDeepf("recursion depth %d exceeds limit %d", ctx.depth, ctx.options.MaxDepth)})
	}
}

func (ctx *Context) leaveDepth() {
	ctx.depth--
}

// findEnclosing searches the enclosing-statement stack from the top
// (innermost) outward for the frame a break or continue targets:
//
//   - if label is non-empty, find the topmost frame with a matching label;
//   - else find the topmost frame whose kind is not TryStatement (break and
//     continue skip over try frames, though they must still replay their
//     finalizers).
//
// forContinue additionally rejects frames whose ContinueTarget is nil.
//
// It returns the resolved frame, its index on the stack (so callers can
// replay the finalizers of every TryStatement frame nested inside it), and
// whether a frame was found at all.
func (ctx *Context) findEnclosing(label string, forContinue bool) (*EnclosingStatement, int, bool) {
	for i := len(ctx.enclosingStatements) - 1; i >= 0; i-- {
		frame := ctx.enclosingStatements[i]
		if label != "" {
			if frame.Label == label {
				if forContinue && frame.ContinueTarget == nil {
					return nil, -1, false
				}
				return frame, i, true
			}
			continue
		}
		if frame.Kind == TryStatement {
			continue
		}
		if forContinue && frame.ContinueTarget == nil {
			continue
		}
		return frame, i, true
	}
	return nil, -1, false
}

// enclosingTryFramesAbove returns every TryStatement frame above (nested
// inside) index idx, in top-down (innermost-first) stack order - i.e. the
// order finalizers must replay in when unwinding past them.
func (ctx *Context) enclosingTryFramesAbove(idx int) []*EnclosingStatement {
	var frames []*EnclosingStatement
	for i := len(ctx.enclosingStatements) - 1; i > idx; i-- {
		if ctx.enclosingStatements[i].Kind == TryStatement {
			frames = append(frames, ctx.enclosingStatements[i])
		}
	}
	return frames
}

// allEnclosingTryFrames returns every TryStatement frame currently on the
// stack, innermost first.
func (ctx *Context) allEnclosingTryFrames() []*EnclosingStatement {
	return ctx.enclosingTryFramesAbove(-1)
}
