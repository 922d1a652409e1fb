// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cmd/cfgbuild is a thin command-line driver over package flow: it reads a
// JSON-encoded ESTree-subset program from stdin or a file argument, builds
// its FlowProgram, and prints per-graph node/edge counts. It carries no
// analysis of its own; every real decision lives in package flow.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/godoctor/cfgbuild/flow"
)

var (
	errUnsupportedConstruct = errors.New("unsupported construct")
	errInvalidInput         = errors.New("invalid input")
)

var (
	formatFlag = flag.String("format", "plain",
		"Output in 'plain' or 'json', default: plain")

	constantCondFlag = flag.Bool("rewrite-constant-conditionals", false,
		"Enable the rewriteConstantConditionalEdges optimization pass")

	transitFlag = flag.Bool("remove-transit-nodes", false,
		"Enable the removeTransitNodes optimization pass")

	maxDepthFlag = flag.Int("max-depth", 0,
		"Recursion depth limit, 0 means unlimited")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [<flag> ...] [file]

Reads a JSON-encoded ESTree-subset Program from file, or from
stdin if file is omitted, builds its control-flow graph, and prints
per-function node/edge counts.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	data, err := readInput(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	program, err := decodeProgram(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	options := flow.Options{
		Passes: flow.PassOptions{
			RewriteConstantConditionalEdges: *constantCondFlag,
			RemoveTransitNodes:              *transitFlag,
		},
		MaxDepth: *maxDepthFlag,
	}

	result, diagnostics, err := flow.BuildProgram(program, options)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	summary := summarize(result, diagnostics)
	switch *formatFlag {
	case "json":
		out, err := json.MarshalIndent(summary, "", "\t")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Printf("%s\n", out)
	default:
		printPlain(summary)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// graphSummary is the per-graph statistics printed for the top-level
// program and each function.
type graphSummary struct {
	Name        string `json:"name"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	Conditional int    `json:"conditionalEdges"`
	Abrupt      int    `json:"abruptCompletionEdges"`
}

type buildSummary struct {
	Program     graphSummary   `json:"program"`
	Functions   []graphSummary `json:"functions"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

func summarizeGraph(name string, g *flow.ControlFlowGraph) graphSummary {
	s := graphSummary{Name: name, Nodes: len(g.Nodes), Edges: len(g.Edges)}
	for _, e := range g.Edges {
		switch e.Kind {
		case flow.Conditional:
			s.Conditional++
		case flow.AbruptCompletion:
			s.Abrupt++
		}
	}
	return s
}

func summarize(result *flow.FlowProgram, diagnostics *flow.Diagnostics) buildSummary {
	summary := buildSummary{Program: summarizeGraph("<program>", result.FlowGraph)}
	for _, fn := range result.Functions {
		name := fn.Name
		if name == "" {
			name = fmt.Sprintf("<anonymous %d>", fn.ID)
		}
		summary.Functions = append(summary.Functions, summarizeGraph(name, fn.FlowGraph))
	}
	for _, d := range diagnostics.Entries {
		summary.Diagnostics = append(summary.Diagnostics, d.String())
	}
	return summary
}

func printPlain(s buildSummary) {
	printGraphLine(s.Program)
	for _, fn := range s.Functions {
		printGraphLine(fn)
	}
	for _, d := range s.Diagnostics {
		fmt.Printf("  %s\n", d)
	}
}

func printGraphLine(g graphSummary) {
	fmt.Printf("%s: %d nodes, %d edges (%d conditional, %d abrupt)\n",
		g.Name, g.Nodes, g.Edges, g.Conditional, g.Abrupt)
}
