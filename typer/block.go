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

package typer

import (
	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/types"
)

// Check type-checks an entire program: a flat top-level group of classes
// and vals, exactly as if it were one block with no trailing result
// expression, except that a `main: () => Unit` binding is required (spec.md
// §4.2's program entry point).
func (t *Typer) Check(prog *ast.Program) error {
	t.Scope.Locate()
	defer t.Scope.Relocate()

	t.predeclareBuiltins()
	if err := t.typeRecursiveGroup(prog.Defs); err != nil {
		return err
	}
	return t.checkMain(prog)
}

// checkMain accepts either of two shapes for the program's entry point
// (spec.md §6's "top-level main: () => Unit"): a literal top-level
// `val main = ...` binding, checked directly against the scope; or, since
// spec.md's own S1 scenario declares `main` as a member of a class instead
// (`class Main { ...; val main = () => ... }`) with no separate top-level
// binding at all, a single top-level class with no constructor parameters
// and a `main` member of the required type. The class form is only
// consulted when no top-level `main` binding exists, so a program that
// defines both keeps the binding's literal precedence.
func (t *Typer) checkMain(prog *ast.Program) error {
	if id, ok := t.Scope.FindHere("main"); ok {
		typ, _, err := t.symbolType(id)
		if err != nil {
			return err
		}
		return t.checkMainType(prog, typ)
	}
	for _, d := range prog.Defs {
		cd, ok := d.(*ast.ClassDef)
		if !ok || len(cd.CtorParams) != 0 {
			continue
		}
		typ, ok := cd.TypesDef.MemberType("main")
		if !ok {
			continue
		}
		return t.checkMainType(prog, typ)
	}
	return errorAt(prog.Span(), prog, "program has no top-level \"main\" binding")
}

func (t *Typer) checkMainType(prog *ast.Program, typ types.Type) error {
	lam, ok := types.RealType(typ).(*types.Lambda)
	if !ok || len(lam.Params) != 0 || types.RealType(lam.Ret) != types.UnitType {
		return errorAt(prog.Span(), prog, "\"main\" must have type () => Unit, found %s", types.String(typ))
	}
	return nil
}

// typeBlock types `{ defs...; result }`: the recursive group rule (spec.md
// §4.2's hardest rule) applied to Defs, followed by Result in a scope where
// every binding's final type is already known.
func (t *Typer) typeBlock(e *ast.Block) error {
	t.Scope.Locate()
	defer t.Scope.Relocate()

	if len(e.Defs) > 0 {
		if err := t.typeRecursiveGroup(e.Defs); err != nil {
			return err
		}
	}
	if err := t.typeExpr(e.Result); err != nil {
		return err
	}
	t.setType(e, e.Result.Type())
	return nil
}

// typeRecursiveGroup implements the block rule's pre-declare/type/
// force-instantiate cycle over a flat list of sibling definitions. Classes
// are identity-stubbed before anything else so that any val (or other
// class) in the group can refer to them regardless of declaration order;
// local vals are then typed together as a single mutually-recursive group,
// since Featherweight Scala has no let-generalization and therefore no
// soundness reason to split them into dependency-ordered sub-groups (the
// codegen package performs its own, unrelated, forward-reference check on
// non-lambda bindings at lowering time instead).
func (t *Typer) typeRecursiveGroup(defs []ast.Def) error {
	var classes []*ast.ClassDef
	var locals []*ast.LocalDef

	for _, d := range defs {
		switch dt := d.(type) {
		case *ast.ClassDef:
			if err := t.declareClassStub(dt); err != nil {
				return err
			}
			classes = append(classes, dt)
		case *ast.LocalDef:
			if err := t.declareLocalStub(dt); err != nil {
				return err
			}
			locals = append(locals, dt)
		}
	}

	for _, cd := range classes {
		if err := t.fillClassCtor(cd); err != nil {
			return err
		}
	}
	for _, cd := range classes {
		if err := t.typeClassBody(cd); err != nil {
			return err
		}
	}

	if len(locals) > 0 {
		t.pushFrame()
		for _, d := range locals {
			if err := t.typeExpr(d.Value); err != nil {
				t.popFrame()
				return err
			}
			if err := t.unify(d.Typ, d.Value.Type(), d.Span(), d.Span(), d.Value.Span()); err != nil {
				t.popFrame()
				return err
			}
			t.recordDef(d)
		}
		f := t.popFrame()
		if err := t.forceInstantiate(f); err != nil {
			return err
		}
	}
	return nil
}

// declareClassStub allocates the symbol and the type-level identity object
// for a class, before its constructor or members are examined. The stub's
// pointer is what lets sibling classes and vals refer to it regardless of
// textual order.
func (t *Typer) declareClassStub(d *ast.ClassDef) error {
	id := t.Scope.AddSymbol(d.Name, d.Span())
	d.Sym = id
	t.Table.SetDealias(id, d)
	d.TypesDef = &types.ClassDef{ID: t.nextClassID, Name: d.Name}
	t.nextClassID++
	return nil
}

// declareLocalStub allocates the symbol and placeholder type for a val/var
// binding: its ascription if it wrote one, otherwise a fresh X-prefixed
// variable that later equalities and the final force-instantiate pass will
// pin down.
func (t *Typer) declareLocalStub(d *ast.LocalDef) error {
	ascr, err := t.resolveAscription(d.Ascription)
	if err != nil {
		return err
	}
	if ascr != nil {
		d.Typ = ascr
	} else {
		d.Typ = t.Solver.FreshVar("X", d.Span())
	}
	id := t.Scope.AddSymbol(d.Name, d.Span())
	t.Table.Get(id).Mutable = d.Mutable
	d.Sym = id
	t.Table.SetDealias(id, d)
	return nil
}
