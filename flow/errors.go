// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file defines the error kinds the builder can fail with. Every error
// surfaces
// synchronously from the entry point; no partial graph is ever returned
// alongside a non-nil error.

package flow

import (
	"errors"
	"fmt"
)

// Sentinel error values, queryable with errors.Is. Each is wrapped with
// fmt.Errorf("%w: ...") to attach construct-specific detail before it
// escapes BuildProgram.
var (
	// ErrInvalidInput means the input is not a well-formed AST value, or
	// lacks a recognizable top-level Program node.
	ErrInvalidInput = errors.New("flow: invalid input")

	// ErrUnsupportedConstruct means the dispatcher encountered a
	// statement or expression tag it does not recognize.
	ErrUnsupportedConstruct = errors.New("flow: unsupported construct")

	// ErrIllegalJumpTarget means a break/continue could not be resolved
	// to a live enclosing statement frame.
	ErrIllegalJumpTarget = errors.New("flow: illegal jump target")

	// ErrInputTooDeep means the optional recursion-depth limit was exceeded.
	ErrInputTooDeep = errors.New("flow: input too deep")
)

func invalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func unsupportedConstructf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedConstruct, fmt.Sprintf(format, args...))
}

func illegalJumpTargetf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIllegalJumpTarget, fmt.Sprintf(format, args...))
}

func inputTooDeepf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInputTooDeep, fmt.Sprintf(format, args...))
}

// buildPanic is used internally to unwind the recursive translators with a
// single error value, rather than threading (Completion, error) return
// pairs through every translator signature. BuildProgram recovers it at the
// top level and converts it back into a plain error return, keeping the
// bulk of the construction engine's signatures focused on Completion.
type buildPanic struct{ err error }
