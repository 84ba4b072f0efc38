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

// Package ast is the untyped/typed tree shared by the typer and the code
// generator: one tree, annotated in place as it passes through each phase
// (no separate typed-tree reconstruction).
package ast

import (
	"github.com/fscala-lang/fscc/bundle"
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
)

// Expr is the base interface for every expression node. Type is only
// meaningful after the typer has visited the node; Bundle is only
// meaningful after codegen has visited it.
type Expr interface {
	ExprName() string
	Span() span.Span
	Type() types.Type
	SetType(types.Type)
	Bundle() bundle.Bundle
	SetBundle(bundle.Bundle)
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*Apply)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*BinOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*New)(nil)
	_ Expr = (*Assign)(nil)
	_ Expr = (*AssignRef)(nil)
	_ Expr = (*While)(nil)
)

// base is embedded by every node to supply the span/type/bundle slots
// common to all expressions.
type base struct {
	sp       span.Span
	inferred types.Type
	code     bundle.Bundle
}

func (b *base) Span() span.Span          { return b.sp }
func (b *base) Type() types.Type         { return types.RealType(b.inferred) }
func (b *base) SetType(t types.Type)     { b.inferred = t }
func (b *base) Bundle() bundle.Bundle    { return b.code }
func (b *base) SetBundle(c bundle.Bundle) { b.code = c }

// LiteralKind distinguishes the ground-typed literal forms.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	BoolLit
	StringLit
	UnitLit
)

// Literal is a ground-typed constant.
type Literal struct {
	base
	Kind   LiteralKind
	Int    int64
	Float  float64
	Bool   bool
	String string
}

func NewLiteral(sp span.Span, kind LiteralKind) *Literal {
	return &Literal{base: base{sp: sp}, Kind: kind}
}

func (e *Literal) ExprName() string { return "Literal" }

// Ident references a value-level symbol, possibly not yet resolved.
type Ident struct {
	base
	Ref *types.SymRef
}

func NewIdent(sp span.Span, name string) *Ident {
	return &Ident{base: base{sp: sp}, Ref: types.UnresolvedRef(name)}
}

func (e *Ident) ExprName() string { return "Ident(" + e.Ref.Name + ")" }

// Select is a member access, e.m.
type Select struct {
	base
	Recv   Expr
	Member string
}

func (e *Select) ExprName() string { return "Select(." + e.Member + ")" }

// Apply is a call expression, callee(args...): a plain function call, a
// lambda application, or an array element access (a single-argument apply
// on an Array-typed callee).
type Apply struct {
	base
	Callee Expr
	Args   []Expr
}

func (e *Apply) ExprName() string { return "Apply" }

// If is the conditional expression.
type If struct {
	base
	Cond, Then, Else Expr
}

func (e *If) ExprName() string { return "If" }

// BinOp is a binary operator application; Op is the surface token (e.g.
// "+", "==").
type BinOp struct {
	base
	Op       string
	Lhs, Rhs Expr
}

func (e *BinOp) ExprName() string { return "BinOp(" + e.Op + ")" }

// UnaryOp is a unary operator application.
type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

func (e *UnaryOp) ExprName() string { return "UnaryOp(" + e.Op + ")" }

// ArrayLit allocates an array of the given length; it carries no element
// initializers (spec: `[n]` has type Array(elem) for a fresh elem).
type ArrayLit struct {
	base
	Len Expr
}

func (e *ArrayLit) ExprName() string { return "ArrayLit" }

// New constructs an instance of a class.
type New struct {
	base
	Class *types.SymRef
	Args  []Expr
}

func (e *New) ExprName() string { return "New(" + e.Class.Name + ")" }

// Assign is an assignment to a symbol already bound in scope, x = e.
type Assign struct {
	base
	Target *types.SymRef
	Value  Expr
}

func (e *Assign) ExprName() string { return "Assign(" + e.Target.Name + ")" }

// AssignRef is an assignment to an l-value expression, lv = e (array
// element or mutable member select).
type AssignRef struct {
	base
	Target Expr
	Value  Expr
}

func (e *AssignRef) ExprName() string { return "AssignRef" }

// While is the loop construct; its value type is always Unit.
type While struct {
	base
	Cond, Body Expr
}

func (e *While) ExprName() string { return "While" }
