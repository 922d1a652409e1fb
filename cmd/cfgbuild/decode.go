// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file decodes an ESTree-shaped JSON document into the ast package's
// node types. This module has no lexer/parser of its own, so a JSON-encoded
// AST is the only input shape cmd/cfgbuild can exercise the library with.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/godoctor/cfgbuild/ast"
)

// tagged is the common envelope every node in the input JSON carries: a
// "type" discriminator plus its own fields, decoded a second time once the
// concrete Go type is known.
type tagged struct {
	Type string `json:"type"`
}

func decodeProgram(data []byte) (*ast.Program, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	if t.Type != "Program" {
		return nil, fmt.Errorf("decode program: top-level node has type %q, want %q", t.Type, "Program")
	}
	var raw struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	body, err := decodeStmtList(raw.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

func decodeStmtList(raws []json.RawMessage) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(raws))
	for _, r := range raws {
		s, err := decodeStmt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeExprList(raws []json.RawMessage) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(raws))
	for _, r := range raws {
		if string(r) == "null" {
			out = append(out, nil)
			continue
		}
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func nodeType(raw json.RawMessage) (string, error) {
	if raw == nil || string(raw) == "null" {
		return "", nil
	}
	var t tagged
	if err := json.Unmarshal(raw, &t); err != nil {
		return "", fmt.Errorf("decode node: %w", err)
	}
	return t.Type, nil
}

// decodeStmt dispatches raw to the ast.Stmt constructor matching its "type"
// tag.
func decodeStmt(raw json.RawMessage) (ast.Stmt, error) {
	typ, err := nodeType(raw)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "BlockStatement":
		var n struct {
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		body, err := decodeStmtList(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Body: body}, nil

	case "ExpressionStatement":
		var n struct {
			Expression json.RawMessage `json:"expression"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil

	case "EmptyStatement":
		return &ast.EmptyStatement{}, nil

	case "DebuggerStatement":
		return &ast.DebuggerStatement{}, nil

	case "VariableDeclaration":
		var n struct {
			Kind         string `json:"kind"`
			Declarations []struct {
				Id   json.RawMessage `json:"id"`
				Init json.RawMessage `json:"init"`
			} `json:"declarations"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		decls := make([]*ast.VariableDeclarator, 0, len(n.Declarations))
		for _, d := range n.Declarations {
			id, err := decodeIdentifier(d.Id)
			if err != nil {
				return nil, err
			}
			init, err := decodeOptionalExpr(d.Init)
			if err != nil {
				return nil, err
			}
			decls = append(decls, &ast.VariableDeclarator{Id: id, Init: init})
		}
		return &ast.VariableDeclaration{Kind: n.Kind, Declarations: decls}, nil

	case "IfStatement":
		var n struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		test, err := decodeExpr(n.Test)
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStmt(n.Consequent)
		if err != nil {
			return nil, err
		}
		alternate, err := decodeOptionalStmt(n.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}, nil

	case "WhileStatement":
		var n struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		test, err := decodeExpr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Test: test, Body: body}, nil

	case "DoWhileStatement":
		var n struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		test, err := decodeExpr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Test: test, Body: body}, nil

	case "ForStatement":
		var n struct {
			Init   json.RawMessage `json:"init"`
			Test   json.RawMessage `json:"test"`
			Update json.RawMessage `json:"update"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		init, err := decodeForInit(n.Init)
		if err != nil {
			return nil, err
		}
		test, err := decodeOptionalExpr(n.Test)
		if err != nil {
			return nil, err
		}
		update, err := decodeOptionalExpr(n.Update)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body}, nil

	case "ForInStatement", "ForOfStatement":
		var n struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeForInit(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		if typ == "ForInStatement" {
			return &ast.ForInStatement{Left: left, Right: right, Body: body}, nil
		}
		return &ast.ForOfStatement{Left: left, Right: right, Body: body}, nil

	case "SwitchStatement":
		var n struct {
			Discriminant json.RawMessage `json:"discriminant"`
			Cases        []struct {
				Test       json.RawMessage   `json:"test"`
				Consequent []json.RawMessage `json:"consequent"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		discriminant, err := decodeExpr(n.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.SwitchCase, 0, len(n.Cases))
		for _, c := range n.Cases {
			test, err := decodeOptionalExpr(c.Test)
			if err != nil {
				return nil, err
			}
			consequent, err := decodeStmtList(c.Consequent)
			if err != nil {
				return nil, err
			}
			cases = append(cases, &ast.SwitchCase{Test: test, Consequent: consequent})
		}
		return &ast.SwitchStatement{Discriminant: discriminant, Cases: cases}, nil

	case "BreakStatement":
		return &ast.BreakStatement{Label: decodeLabel(raw)}, nil

	case "ContinueStatement":
		return &ast.ContinueStatement{Label: decodeLabel(raw)}, nil

	case "LabeledStatement":
		var n struct {
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Label: decodeLabel(raw), Body: body}, nil

	case "ReturnStatement":
		var n struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		arg, err := decodeOptionalExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Argument: arg}, nil

	case "ThrowStatement":
		var n struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Argument: arg}, nil

	case "TryStatement":
		var n struct {
			Block     json.RawMessage `json:"block"`
			Handler   json.RawMessage `json:"handler"`
			Finalizer json.RawMessage `json:"finalizer"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		block, err := decodeStmt(n.Block)
		if err != nil {
			return nil, err
		}
		blockStmt, ok := block.(*ast.BlockStatement)
		if !ok {
			return nil, fmt.Errorf("decode TryStatement: block is %T, want BlockStatement", block)
		}
		handler, err := decodeCatchClause(n.Handler)
		if err != nil {
			return nil, err
		}
		var finalizer *ast.BlockStatement
		if n.Finalizer != nil && string(n.Finalizer) != "null" {
			fin, err := decodeStmt(n.Finalizer)
			if err != nil {
				return nil, err
			}
			finalizer, ok = fin.(*ast.BlockStatement)
			if !ok {
				return nil, fmt.Errorf("decode TryStatement: finalizer is %T, want BlockStatement", fin)
			}
		}
		return &ast.TryStatement{Block: blockStmt, Handler: handler, Finalizer: finalizer}, nil

	case "WithStatement":
		var n struct {
			Object json.RawMessage `json:"object"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		object, err := decodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WithStatement{Object: object, Body: body}, nil

	case "FunctionDeclaration":
		node, err := decodeFunctionLike(raw, func(id *ast.Identifier, params []*ast.Identifier, body *ast.BlockStatement) ast.Node {
			return &ast.FunctionDeclaration{Id: id, Params: params, Body: body}
		})
		if err != nil {
			return nil, err
		}
		return node.(ast.Stmt), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unrecognized statement type %q", errUnsupportedConstruct, typ)
	}
}

// decodeOptionalStmt decodes raw as a Stmt, or returns (nil, nil) if raw is
// absent/null.
func decodeOptionalStmt(raw json.RawMessage) (ast.Stmt, error) {
	if raw == nil || string(raw) == "null" {
		return nil, nil
	}
	return decodeStmt(raw)
}

// decodeLabel reads a statement's "label" field, given either as an ESTree
// Identifier node or as a bare string; it returns "" when there is none.
func decodeLabel(raw json.RawMessage) string {
	var n struct {
		Label json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(raw, &n); err != nil || n.Label == nil || string(n.Label) == "null" {
		return ""
	}
	var name string
	if err := json.Unmarshal(n.Label, &name); err == nil {
		return name
	}
	if id, err := decodeIdentifier(n.Label); err == nil {
		return id.Name
	}
	return ""
}

// decodeForInit decodes the Init clause of a ForStatement, or the Left
// clause of a ForInStatement/ForOfStatement: nil, a VariableDeclaration, or
// a bare expression.
func decodeForInit(raw json.RawMessage) (ast.Node, error) {
	typ, err := nodeType(raw)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return nil, nil
	}
	if typ == "VariableDeclaration" {
		return decodeStmt(raw)
	}
	return decodeExpr(raw)
}

func decodeCatchClause(raw json.RawMessage) (*ast.CatchClause, error) {
	typ, err := nodeType(raw)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return nil, nil
	}
	if typ != "CatchClause" {
		return nil, fmt.Errorf("decode handler: node has type %q, want %q", typ, "CatchClause")
	}
	var n struct {
		Param json.RawMessage `json:"param"`
		Body  json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	param, err := decodeOptionalIdentifier(n.Param)
	if err != nil {
		return nil, err
	}
	body, err := decodeStmt(n.Body)
	if err != nil {
		return nil, err
	}
	blockBody, ok := body.(*ast.BlockStatement)
	if !ok {
		return nil, fmt.Errorf("decode CatchClause: body is %T, want BlockStatement", body)
	}
	return &ast.CatchClause{Param: param, Body: blockBody}, nil
}

// decodeExpr dispatches raw to the ast.Expr constructor matching its "type"
// tag.
func decodeExpr(raw json.RawMessage) (ast.Expr, error) {
	typ, err := nodeType(raw)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "Identifier":
		return decodeIdentifier(raw)

	case "Literal":
		var n struct {
			Value interface{} `json:"value"`
			Raw   string      `json:"raw"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: n.Value, Raw: n.Raw}, nil

	case "UnaryExpression":
		var n struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: n.Operator, Argument: arg}, nil

	case "UpdateExpression":
		var n struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
			Prefix   bool            `json:"prefix"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Operator: n.Operator, Argument: arg, Prefix: n.Prefix}, nil

	case "BinaryExpression":
		left, right, op, err := decodeBinaryLike(raw)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Operator: op, Left: left, Right: right}, nil

	case "LogicalExpression":
		left, right, op, err := decodeBinaryLike(raw)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpression{Operator: op, Left: left, Right: right}, nil

	case "AssignmentExpression":
		left, right, op, err := decodeBinaryLike(raw)
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Operator: op, Left: left, Right: right}, nil

	case "MemberExpression":
		var n struct {
			Object   json.RawMessage `json:"object"`
			Property json.RawMessage `json:"property"`
			Computed bool            `json:"computed"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		object, err := decodeExpr(n.Object)
		if err != nil {
			return nil, err
		}
		property, err := decodeExpr(n.Property)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Object: object, Property: property, Computed: n.Computed}, nil

	case "CallExpression", "NewExpression":
		var n struct {
			Callee    json.RawMessage   `json:"callee"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		callee, err := decodeExpr(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(n.Arguments)
		if err != nil {
			return nil, err
		}
		if typ == "CallExpression" {
			return &ast.CallExpression{Callee: callee, Arguments: args}, nil
		}
		return &ast.NewExpression{Callee: callee, Arguments: args}, nil

	case "ConditionalExpression":
		var n struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		test, err := decodeExpr(n.Test)
		if err != nil {
			return nil, err
		}
		consequent, err := decodeExpr(n.Consequent)
		if err != nil {
			return nil, err
		}
		alternate, err := decodeExpr(n.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}, nil

	case "SequenceExpression":
		var n struct {
			Expressions []json.RawMessage `json:"expressions"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		exprs, err := decodeExprList(n.Expressions)
		if err != nil {
			return nil, err
		}
		return &ast.SequenceExpression{Expressions: exprs}, nil

	case "ArrayExpression":
		var n struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		elems, err := decodeExprList(n.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayExpression{Elements: elems}, nil

	case "ObjectExpression":
		var n struct {
			Properties []struct {
				Key      json.RawMessage `json:"key"`
				Value    json.RawMessage `json:"value"`
				Computed bool            `json:"computed"`
			} `json:"properties"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		props := make([]*ast.Property, 0, len(n.Properties))
		for _, p := range n.Properties {
			key, err := decodeExpr(p.Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeExpr(p.Value)
			if err != nil {
				return nil, err
			}
			props = append(props, &ast.Property{Key: key, Value: value, Computed: p.Computed})
		}
		return &ast.ObjectExpression{Properties: props}, nil

	case "FunctionExpression":
		node, err := decodeFunctionLike(raw, func(id *ast.Identifier, params []*ast.Identifier, body *ast.BlockStatement) ast.Node {
			return &ast.FunctionExpression{Id: id, Params: params, Body: body}
		})
		if err != nil {
			return nil, err
		}
		return node.(ast.Expr), nil

	case "":
		return nil, fmt.Errorf("%w: expected an expression, found none", errInvalidInput)

	default:
		return nil, fmt.Errorf("%w: unrecognized expression type %q", errUnsupportedConstruct, typ)
	}
}

func decodeOptionalExpr(raw json.RawMessage) (ast.Expr, error) {
	if raw == nil || string(raw) == "null" {
		return nil, nil
	}
	return decodeExpr(raw)
}

func decodeBinaryLike(raw json.RawMessage) (left, right ast.Expr, operator string, err error) {
	var n struct {
		Operator string          `json:"operator"`
		Left     json.RawMessage `json:"left"`
		Right    json.RawMessage `json:"right"`
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, nil, "", err
	}
	left, err = decodeExpr(n.Left)
	if err != nil {
		return nil, nil, "", err
	}
	right, err = decodeExpr(n.Right)
	if err != nil {
		return nil, nil, "", err
	}
	return left, right, n.Operator, nil
}

func decodeIdentifier(raw json.RawMessage) (*ast.Identifier, error) {
	var n struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: n.Name}, nil
}

func decodeOptionalIdentifier(raw json.RawMessage) (*ast.Identifier, error) {
	typ, err := nodeType(raw)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return nil, nil
	}
	return decodeIdentifier(raw)
}

// decodeFunctionLike decodes the shared id/params/body shape of
// FunctionDeclaration and FunctionExpression, handing the parsed fields to
// make so each caller gets back its own concrete node type.
func decodeFunctionLike(raw json.RawMessage, make_ func(*ast.Identifier, []*ast.Identifier, *ast.BlockStatement) ast.Node) (ast.Node, error) {
	var n struct {
		Id     json.RawMessage   `json:"id"`
		Params []json.RawMessage `json:"params"`
		Body   json.RawMessage   `json:"body"`
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	id, err := decodeOptionalIdentifier(n.Id)
	if err != nil {
		return nil, err
	}
	params := make([]*ast.Identifier, 0, len(n.Params))
	for _, p := range n.Params {
		ident, err := decodeIdentifier(p)
		if err != nil {
			return nil, err
		}
		params = append(params, ident)
	}
	body, err := decodeStmt(n.Body)
	if err != nil {
		return nil, err
	}
	blockBody, ok := body.(*ast.BlockStatement)
	if !ok {
		return nil, fmt.Errorf("decode function body: got %T, want BlockStatement", body)
	}
	return make_(id, params, blockBody), nil
}
