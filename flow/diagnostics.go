// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file defines Diagnostics, a severity-tagged side channel for
// non-fatal observations the builder makes along the way. Fatal conditions
// are never log entries; they are always a returned error (see errors.go),
// since the engine has no notion of a best-effort partial result.
package flow

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	// Info notes an unremarkable but possibly surprising construction
	// choice.
	Info Severity = iota
	// Warning notes a construct whose surface syntax suggests an intent
	// the graph cannot fully honor, e.g. a label on a statement with no
	// break target of its own.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single entry in a Diagnostics log.
type Diagnostic struct {
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics accumulates Diagnostic entries produced during one build.
type Diagnostics struct {
	Entries []Diagnostic
}

func (d *Diagnostics) add(sev Severity, format string, args ...interface{}) {
	d.Entries = append(d.Entries, Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) info(format string, args ...interface{}) {
	d.add(Info, format, args...)
}

func (d *Diagnostics) warning(format string, args ...interface{}) {
	d.add(Warning, format, args...)
}
