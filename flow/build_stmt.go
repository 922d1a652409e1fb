// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the simple statement forms: empty, debugger,
// variable declaration, and expression statements.

package flow

import "github.com/godoctor/cfgbuild/ast"

func parseEmptyStatement(_ *ast.EmptyStatement, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()
	return normalCompletion(g.AppendTo(current, "(empty)", Epsilon, nil))
}

func parseDebuggerStatement(_ *ast.DebuggerStatement, current *FlowNode, ctx *Context) Completion {
	return normalCompletion(current)
}

// parseVariableDeclaration emits one Normal node per declarator.
func parseVariableDeclaration(decl *ast.VariableDeclaration, current *FlowNode, ctx *Context) Completion {
	g := ctx.Graph()
	for _, d := range decl.Declarations {
		label := d.Id.Name
		if d.Init != nil {
			label = d.Id.Name + " = " + Stringify(d.Init)
		}
		current = g.AppendTo(current, label, Epsilon, nil)
	}
	return normalCompletion(current)
}

// parseExpressionStatement lowers the wrapped expression.
func parseExpressionStatement(stmt *ast.ExpressionStatement, current *FlowNode, ctx *Context) Completion {
	return normalCompletion(parseExpression(stmt.Expression, current, ctx))
}
