// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flow

// Options configures BuildProgram. The zero value matches the defaults:
// both optional passes disabled, no recursion limit enforced.
type Options struct {
	// Passes controls the optimization pipeline.
	Passes PassOptions

	// MaxDepth, when positive, bounds statement/expression recursion
	// depth; exceeding it fails with ErrInputTooDeep. Zero means unlimited.
	MaxDepth int
}

// PassOptions toggles the opt-in optimization passes.
type PassOptions struct {
	// RewriteConstantConditionalEdges enables pass 1.
	RewriteConstantConditionalEdges bool

	// RemoveTransitNodes enables pass 3.
	RemoveTransitNodes bool
}
