// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astrewrite implements the AST preprocessing pass that runs before
// flow-graph construction proper: lifting named function
// expressions into ordinary function declarations so the construction
// engine in package flow only ever has to deal with one function-defining
// shape.
package astrewrite

import "github.com/godoctor/cfgbuild/ast"

// LiftNamedFunctionExpressions rewrites every declarator of a
// VariableDeclaration statement whose initializer is a named function
// expression - `var foo = function bar() {...}` - into a FunctionDeclaration
// for bar immediately preceding the declaration, with the declarator's Init
// replaced by a bare reference to bar. Unnamed function expressions, and
// declarators whose Init is anything else, are left untouched; so is every
// other statement shape, beyond recursing into the statement bodies it owns.
// Declarations in a for/for-in/for-of head are not rewritten.
func LiftNamedFunctionExpressions(program *ast.Program) *ast.Program {
	return &ast.Program{Body: rewriteList(program.Body)}
}

func rewriteList(list []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(list))
	for _, stmt := range list {
		out = append(out, rewriteStmt(stmt)...)
	}
	return out
}

// rewriteStmt recursively rewrites stmt's nested statement lists in place
// and returns the sequence that should replace it in its parent list: a
// lifted FunctionDeclaration followed by the original statement, or just
// the (possibly internally rewritten) statement itself.
func rewriteStmt(stmt ast.Stmt) []ast.Stmt {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		s.Body = rewriteList(s.Body)
	case *ast.IfStatement:
		s.Consequent = rewriteSingle(s.Consequent)
		if s.Alternate != nil {
			s.Alternate = rewriteSingle(s.Alternate)
		}
	case *ast.WhileStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.DoWhileStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.ForStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.ForInStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.ForOfStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.LabeledStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.WithStatement:
		s.Body = rewriteSingle(s.Body)
	case *ast.TryStatement:
		s.Block.Body = rewriteList(s.Block.Body)
		if s.Handler != nil {
			s.Handler.Body.Body = rewriteList(s.Handler.Body.Body)
		}
		if s.Finalizer != nil {
			s.Finalizer.Body = rewriteList(s.Finalizer.Body)
		}
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			c.Consequent = rewriteList(c.Consequent)
		}
	case *ast.FunctionDeclaration:
		s.Body.Body = rewriteList(s.Body.Body)
	case *ast.VariableDeclaration:
		return liftFromDeclaration(s)
	}
	return []ast.Stmt{stmt}
}

// rewriteSingle rewrites a single-statement body position (a loop or if
// branch that is not itself a block). Such a position cannot host an extra
// sibling statement, so if the rewrite produced more than one, it wraps the
// result in a block to give the lifted declaration somewhere to live.
func rewriteSingle(stmt ast.Stmt) ast.Stmt {
	rewritten := rewriteStmt(stmt)
	if len(rewritten) == 1 {
		return rewritten[0]
	}
	return &ast.BlockStatement{Body: rewritten}
}

// liftFromDeclaration returns the statements that should replace decl: any
// lifted FunctionDeclarations followed by decl itself, its declarators
// rewritten in place to reference the lifted names instead of inlining the
// function expressions.
func liftFromDeclaration(decl *ast.VariableDeclaration) []ast.Stmt {
	var lifted []ast.Stmt
	for _, d := range decl.Declarations {
		fn, ok := d.Init.(*ast.FunctionExpression)
		if !ok || fn.Id == nil {
			continue
		}
		// The lifted body may itself declare named function expressions,
		// so it gets the same rewrite as any other function body.
		fn.Body.Body = rewriteList(fn.Body.Body)
		lifted = append(lifted, &ast.FunctionDeclaration{Id: fn.Id, Params: fn.Params, Body: fn.Body})
		d.Init = &ast.Identifier{Name: fn.Id.Name}
	}
	return append(lifted, decl)
}
