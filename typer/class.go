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

// fillClassCtor resolves a class's constructor parameter types and records
// them on its type-level identity object. Run for every class in the
// group before any class body is typed, so a constructor call can check
// arity and argument types against a sibling class regardless of which one
// was declared first.
func (t *Typer) fillClassCtor(d *ast.ClassDef) error {
	ctor := make([]types.Type, len(d.CtorParams))
	for i, p := range d.CtorParams {
		ascr, err := t.resolveAscription(p.Ascription)
		if err != nil {
			return err
		}
		if ascr == nil {
			ascr = t.Solver.FreshVar("T", p.Span())
		}
		p.Typ = ascr
		ctor[i] = ascr
	}
	d.TypesDef.Ctor = ctor
	return nil
}

// typeClassBody opens the constructor-parameter scope, pre-declares every
// member, types each member body against its own placeholder, discharges
// any self-reference predicates accumulated while the class's own members
// were not yet known, and finally records each member's resolved type onto
// the class's type-level identity object (spec.md §4.2 Class rule).
//
// While a member's body is being typed, a select or an identifier whose
// ascription names this same class resolves to a shared ClassTypeVar
// (t.selfCTV) rather than the not-yet-complete concrete Class: spec.md's
// Select rule requires the receiver to instantiate to "a Class or a
// ClassTypeVar", and a self-reference during typing is exactly the case
// the latter exists for. Once every member has a type, the accumulated
// predicates are discharged against the now-real member list, and every
// member or frame node still carrying that ClassTypeVar (directly, or
// through a type-variable that came to link to it) is collapsed to the
// concrete Class; the solver's own Substitute never performs that
// collapse, so it must happen here before force-instantiate runs.
func (t *Typer) typeClassBody(d *ast.ClassDef) error {
	t.Scope.Locate()
	defer t.Scope.Relocate()

	for _, p := range d.CtorParams {
		id := t.Scope.AddSymbol(p.Name, p.Span())
		p.Sym = id
		t.Table.SetDealias(id, p)
	}

	prevClass, prevCTV := t.currentClassDef, t.selfCTV
	t.currentClassDef = d.TypesDef
	t.selfCTV = &types.ClassTypeVar{Def: d.TypesDef, Predicates: types.EmptyMemberSet}
	defer func() { t.currentClassDef, t.selfCTV = prevClass, prevCTV }()

	for _, m := range d.Members {
		ascr, err := t.resolveAscription(m.Ascription)
		if err != nil {
			return err
		}
		if ascr != nil {
			m.Typ = ascr
		} else {
			m.Typ = t.Solver.FreshVar("X", m.Span())
		}
		id := t.Scope.AddSymbol(m.Name, m.Span())
		t.Table.Get(id).Mutable = m.Mutable
		m.Sym = id
		t.Table.SetDealias(id, m)
	}

	t.pushFrame()
	for _, m := range d.Members {
		if err := t.typeExpr(m.Value); err != nil {
			t.popFrame()
			return err
		}
		if err := t.unify(m.Typ, m.Value.Type(), m.Span(), m.Span(), m.Value.Span()); err != nil {
			t.popFrame()
			return err
		}
		t.recordDef(m)
	}
	f := t.popFrame()

	self := t.selfCTV
	concrete := &types.Class{Def: d.TypesDef}
	for _, m := range d.Members {
		if ctv, ok := types.RealType(m.Typ).(*types.ClassTypeVar); ok && ctv.Def == d.TypesDef {
			m.Typ = concrete
		}
	}

	for _, m := range d.Members {
		d.TypesDef.AddMember(m.Name, m.Typ, m.Mutable)
	}

	if self.Predicates.Len() > 0 {
		if err := t.Solver.DischargeClassPredicates(self, concrete); err != nil {
			return err
		}
	}
	for _, n := range f.nodes {
		if ctv, ok := n.Type().(*types.ClassTypeVar); ok && ctv.Def == d.TypesDef {
			n.SetType(concrete)
		}
	}

	return t.forceInstantiate(f)
}
