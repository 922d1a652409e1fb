// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flow

// FlowFunction is one user function's flow graph.
type FlowFunction struct {
	ID        int
	Name      string
	FlowGraph *ControlFlowGraph
}

// FlowProgram is the output of BuildProgram: the top-level
// graph plus one FlowFunction per lexical function body encountered.
type FlowProgram struct {
	FlowGraph *ControlFlowGraph
	Functions []*FlowFunction
}
