// The MIT License (MIT)
//
// Copyright (c) 2026 fscc contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package codegen

import (
	"sort"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/bundle"
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/symtab"
)

// lowerDefs lowers one recursive group of definitions (a block's Defs or a
// program's top-level Defs) into the statements that must run, in order,
// before whatever follows the group. Class definitions contribute no
// statements of their own (a class only emits top-level struct/constructor
// definitions, handled immediately); local bindings go through
// lowerLocalGroup's three-phase protocol.
func (g *Generator) lowerDefs(defs []ast.Def) ([]cast.Stmt, error) {
	var locals []*ast.LocalDef
	for _, d := range defs {
		switch dt := d.(type) {
		case *ast.ClassDef:
			if err := g.lowerClass(dt); err != nil {
				return nil, err
			}
		case *ast.LocalDef:
			locals = append(locals, dt)
		}
	}
	return g.lowerLocalGroup(locals)
}

// lowerLocalGroup lowers a sequence of sibling val/var bindings that share
// one enclosing block, implementing spec.md §4.3's three-phase binding
// protocol:
//
//  1. Pre-declare: every binding whose value is a literal lambda gets its
//     final C variable name minted up front, so any sibling's lambda body
//     can reference it (self- or mutually-recursively) during body
//     lowering, before that function is actually emitted.
//  2. Setup, in source order: a plain binding's value is lowered and
//     assigned immediately; a lambda binding runs only its allocation
//     step (malloc env, malloc closure, assign the closure into its
//     pre-minted variable) and defers its captured-field writes.
//  3. Flush: every lambda binding's deferred field-assignment statements
//     are appended once, after every sibling in the group has completed
//     its own step 2 — by which point every possible captured value,
//     regardless of source order or recursion, is valid to read.
//
// A plain binding may never reference a later sibling (lambda or not):
// its value is evaluated immediately, at its own slot in step 2, before a
// later sibling's step 2 has run. A lambda binding faces no such
// restriction, since its captures are always read only in step 3 or later
// (a call through the closure), by which point every sibling's own
// variable is guaranteed assigned. checkForwardRefs enforces exactly this
// asymmetric rule with its own direct successor-structure walk, rather than
// a generic reachability graph over free names, since a free-name-only edge
// cannot distinguish an immediately evaluated reference from a deferred one
// (see DESIGN.md).
func (g *Generator) lowerLocalGroup(locals []*ast.LocalDef) ([]cast.Stmt, error) {
	if err := g.checkForwardRefs(locals); err != nil {
		return nil, err
	}

	cnames := make(map[symtab.ID]string, len(locals))
	for _, d := range locals {
		if _, ok := d.Value.(*ast.Lambda); ok {
			cname := g.Namer.UniqueCName(d.Name)
			cnames[d.Sym] = cname
			g.bindIdent(d.Sym, &cast.Ident{Name: cname})
			d.Value.SetBundle(&bundle.Rec{Name: cname})
		}
	}

	var stmts, deferred []cast.Stmt
	for _, d := range locals {
		if lam, ok := d.Value.(*ast.Lambda); ok {
			parts := g.buildLambda(lam, cnames[d.Sym])
			stmts = append(stmts, parts.setup...)
			deferred = append(deferred, parts.fieldAssign...)
			d.Value.SetBundle(&bundle.Variable{Def: &cast.VarDef{Name: cnames[d.Sym]}})
			continue
		}

		b := g.lowerExpr(d.Value)
		e := bundle.Lift(b, &stmts)
		cname := g.Namer.UniqueCName(d.Name)
		stmts = append(stmts, &cast.VarDef{Name: cname, Of: g.cType(d.Typ), Init: e})
		g.bindIdent(d.Sym, &cast.Ident{Name: cname})
		d.Value.SetBundle(&bundle.Variable{Def: &cast.VarDef{Name: cname}})
	}

	return append(stmts, deferred...), nil
}

// checkForwardRefs rejects a plain (non-lambda-literal) binding whose value
// directly reads a sibling that appears later in locals, lambda-valued or
// not (spec.md §7's "forward reference to a binding whose code has not yet
// been generated"). A lambda-valued binding is never checked as a
// referencer: every read it performs is deferred, either to this group's
// step 3 flush (its own captures) or to actual call time (its body), so it
// can legally name any sibling regardless of position.
func (g *Generator) checkForwardRefs(locals []*ast.LocalDef) *Error {
	index := make(map[symtab.ID]int, len(locals))
	for i, d := range locals {
		index[d.Sym] = i
	}
	for i, d := range locals {
		if _, ok := d.Value.(*ast.Lambda); ok {
			continue
		}
		for _, ref := range immediateRefs(d.Value) {
			if j, ok := index[ref]; ok && j > i {
				return errorAt(d.Span(), d,
					"%s forward-references %s, whose value has not been generated yet",
					d.Name, locals[j].Name)
			}
		}
	}
	return nil
}

// immediateRefs collects every symbol directly read by e's evaluation: a
// plain recursive descent through every sub-expression, except that a
// nested *ast.Lambda's own Body is never descended into (its references
// are deferred to call time), contributing only its already-computed
// FreeNames set instead. A generic top-down walker has no way to stop at
// that Lambda boundary, which is why this walk is hand-rolled rather than
// a reusable one.
func immediateRefs(e ast.Expr) []symtab.ID {
	var ids []symtab.ID
	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		switch et := e.(type) {
		case *ast.Literal, *ast.ArrayLit:
		case *ast.Ident:
			if et.Ref.Resolved {
				ids = append(ids, symtab.ID(et.Ref.ID))
			}
		case *ast.Select:
			walk(et.Recv)
		case *ast.Apply:
			walk(et.Callee)
			for _, a := range et.Args {
				walk(a)
			}
		case *ast.If:
			walk(et.Cond)
			walk(et.Then)
			walk(et.Else)
		case *ast.BinOp:
			walk(et.Lhs)
			walk(et.Rhs)
		case *ast.UnaryOp:
			walk(et.Operand)
		case *ast.Lambda:
			// FreeNames is a hash set; Slice() ranges its backing map in
			// randomized order. Sorted here so a forward-reference error
			// naming one of several candidates is chosen deterministically.
			free := et.FreeNames.Slice()
			sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
			ids = append(ids, free...)
		case *ast.Block:
			for _, d := range et.Defs {
				if ld, ok := d.(*ast.LocalDef); ok {
					walk(ld.Value)
				}
			}
			walk(et.Result)
		case *ast.New:
			for _, a := range et.Args {
				walk(a)
			}
		case *ast.Assign:
			walk(et.Value)
		case *ast.AssignRef:
			walk(et.Target)
			walk(et.Value)
		case *ast.While:
			walk(et.Cond)
			walk(et.Body)
		}
	}
	walk(e)
	return ids
}
