// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godoctor/cfgbuild/flow"
)

const ifElseJSON = `{
	"type": "Program",
	"body": [
		{
			"type": "IfStatement",
			"test": {"type": "Identifier", "name": "a"},
			"consequent": {
				"type": "BlockStatement",
				"body": [
					{"type": "ExpressionStatement", "expression":
						{"type": "CallExpression",
						 "callee": {"type": "Identifier", "name": "b"},
						 "arguments": []}}
				]
			},
			"alternate": {
				"type": "BlockStatement",
				"body": [
					{"type": "ExpressionStatement", "expression":
						{"type": "CallExpression",
						 "callee": {"type": "Identifier", "name": "c"},
						 "arguments": []}}
				]
			}
		}
	]
}`

func TestDecodeProgramIfElse(t *testing.T) {
	program, err := decodeProgram([]byte(ifElseJSON))
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	result, _, err := flow.BuildProgram(program, flow.Options{})
	require.NoError(t, err)
	assert.NotNil(t, result.FlowGraph)
}

func TestDecodeProgramRejectsUnknownTopLevelType(t *testing.T) {
	_, err := decodeProgram([]byte(`{"type": "NotAProgram", "body": []}`))
	require.Error(t, err)
}

func TestDecodeProgramRejectsUnknownStatementTag(t *testing.T) {
	_, err := decodeProgram([]byte(`{"type": "Program", "body": [{"type": "MadeUpStatement"}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnsupportedConstruct)
}

func TestDecodeTryCatchFinally(t *testing.T) {
	src := `{
		"type": "Program",
		"body": [{
			"type": "TryStatement",
			"block": {"type": "BlockStatement", "body": [
				{"type": "ThrowStatement", "argument": {"type": "Literal", "value": "boom", "raw": "\"boom\""}}
			]},
			"handler": {
				"type": "CatchClause",
				"param": {"type": "Identifier", "name": "e"},
				"body": {"type": "BlockStatement", "body": []}
			},
			"finalizer": {"type": "BlockStatement", "body": [
				{"type": "ExpressionStatement", "expression":
					{"type": "CallExpression", "callee": {"type": "Identifier", "name": "cleanup"}, "arguments": []}}
			]}
		}]
	}`
	program, err := decodeProgram([]byte(src))
	require.NoError(t, err)

	result, _, err := flow.BuildProgram(program, flow.Options{})
	require.NoError(t, err)
	assert.True(t, len(result.FlowGraph.Nodes) > 0)
	assert.True(t, len(result.FlowGraph.Edges) > 0)
}
