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

// Package types implements the closed type variant described in spec.md
// §3.2: ground types, arrays, lambdas, classes, the inference-only
// TypeVar/ClassTypeVar forms, SymbolType (a lazily-resolved bare
// identifier), and the Ref l-value wrapper.
//
// Unlike the teacher library this package generalizes (poly has
// let-polymorphism over extensible rows; Featherweight Scala has none —
// spec.md never calls for generalizing a binding's type into a scheme), so
// there is no notion of a "generic" type-variable here: every TypeVar is
// either unbound or linked, full stop.
package types

import (
	"strconv"

	"github.com/fscala-lang/fscc/span"
)

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

// RealType follows a chain of linked type-variables to the type they
// currently resolve to. Non-variable types are returned unchanged.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || !tv.IsLinkVar() {
			return t
		}
		t = tv.link
	}
}

// GroundKind enumerates the ground (base) types.
type GroundKind int

const (
	Int GroundKind = iota
	Float
	Bool
	Str
	Unit
)

func (k GroundKind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Boolean"
	case Str:
		return "String"
	case Unit:
		return "Unit"
	default:
		return "<unknown ground>"
	}
}

// Ground is one of the fixed base types: Int, Float, Bool, String, Unit.
type Ground struct{ Kind GroundKind }

func (t Ground) TypeName() string { return t.Kind.String() }

var (
	IntType    Type = Ground{Int}
	FloatType  Type = Ground{Float}
	BoolType   Type = Ground{Bool}
	StringType Type = Ground{Str}
	UnitType   Type = Ground{Unit}
)

// Array is an array type: Array(elem).
type Array struct{ Elem Type }

func (t *Array) TypeName() string { return "Array" }

// Lambda is a function type: (params...) => ret.
type Lambda struct {
	Params []Type
	Ret    Type
}

func (t *Lambda) TypeName() string { return "Lambda" }

// Class is a fully-known class type: the def's member set is closed.
type Class struct{ Def *ClassDef }

func (t *Class) TypeName() string { return "Class(" + t.Def.Name + ")" }

// Var is a unification type-variable (spec.md's TypeVar). Prefix is "T" for
// ordinary expression type-variables or "X" for the placeholders installed
// while pre-declaring a recursive group; it is used purely for
// diagnostics, per spec.md §3.2.
type Var struct {
	id     int32
	link   Type
	prefix string
	origin span.Span
}

// NewVar creates a fresh, unbound type-variable.
func NewVar(id int, prefix string, origin span.Span) *Var {
	return &Var{id: int32(id), prefix: prefix, origin: origin}
}

func (tv *Var) TypeName() string { return "Var" }

func (tv *Var) Id() int            { return int(tv.id) }
func (tv *Var) Prefix() string     { return tv.prefix }
func (tv *Var) Origin() span.Span  { return tv.origin }
func (tv *Var) IsLinkVar() bool    { return tv.link != nil }
func (tv *Var) IsUnboundVar() bool { return tv.link == nil }
func (tv *Var) Link() Type         { return tv.link }

// SetLink binds the type-variable to t. Once linked, a Var is transparent
// to RealType.
func (tv *Var) SetLink(t Type) { tv.link = t }

// Unlink clears the type-variable's binding, restoring it to unbound. Used
// to roll back a speculative unification (solver.Solver's Rollback).
func (tv *Var) Unlink() { tv.link = nil }

// String renders a diagnostic name such as "T3" or "X7".
func (tv *Var) String() string {
	return tv.prefix + strconv.Itoa(tv.Id())
}

// SymbolType is a type written as a bare identifier in source (e.g. a class
// name in an annotation). It is lazily resolved by looking up the symbol it
// names; see the typer package's resolveSymbolType.
type SymbolType struct {
	Ref *SymRef
}

func (t *SymbolType) TypeName() string { return "SymbolType(" + t.Ref.Name + ")" }

// SymRef is a reference to a symbol which may not yet be resolved. It
// mirrors spec.md §3.1: "a symbol reference in an untyped tree is either
// unresolved (just a name) or resolved (already pointing at a symbol)."
//
// SymRef does not depend on symtab.ID's owner package directly to avoid a
// dependency from types back onto symtab's callers; resolution writes the
// numeric ID in place once known.
type SymRef struct {
	Name     string
	ID       int
	Resolved bool
}

// UnresolvedRef creates a SymRef naming an as-yet-unresolved symbol.
func UnresolvedRef(name string) *SymRef { return &SymRef{Name: name} }

// Resolve fixes ref to the given symbol ID.
func (ref *SymRef) Resolve(id int) {
	ref.ID = id
	ref.Resolved = true
}

// Ref wraps a typed node's type to mark it as an l-value whose value-type
// is Inner (spec.md §3.2 invariant: the solver never unifies Ref(_)
// directly; l-value-ness is tracked syntactically by wrapping/unwrapping at
// the points described in spec.md §4.2/§4.3).
type Ref struct{ Inner Type }

func (t *Ref) TypeName() string { return "Ref" }

// Deref returns t.Inner if t is a *Ref, or t unchanged otherwise.
func Deref(t Type) Type {
	if r, ok := t.(*Ref); ok {
		return r.Inner
	}
	return t
}

