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

// opSig is one candidate signature for an operator: both operand types
// (rhs is unused and equal to lhs for unary operators) and the result
// type.
type opSig struct {
	lhs, rhs, result types.Type
}

// binTable lists every accepted (operand, operand) -> result signature per
// binary operator token (spec.md §4.4). Comparisons and equality always
// produce Bool; arithmetic preserves the operand type.
var binTable = map[string][]opSig{
	"+": {{types.IntType, types.IntType, types.IntType}, {types.FloatType, types.FloatType, types.FloatType}},
	"-": {{types.IntType, types.IntType, types.IntType}, {types.FloatType, types.FloatType, types.FloatType}},
	"*": {{types.IntType, types.IntType, types.IntType}, {types.FloatType, types.FloatType, types.FloatType}},
	"/": {{types.IntType, types.IntType, types.IntType}, {types.FloatType, types.FloatType, types.FloatType}},
	"%": {{types.IntType, types.IntType, types.IntType}},

	"<":  {{types.IntType, types.IntType, types.BoolType}, {types.FloatType, types.FloatType, types.BoolType}},
	"<=": {{types.IntType, types.IntType, types.BoolType}, {types.FloatType, types.FloatType, types.BoolType}},
	">":  {{types.IntType, types.IntType, types.BoolType}, {types.FloatType, types.FloatType, types.BoolType}},
	">=": {{types.IntType, types.IntType, types.BoolType}, {types.FloatType, types.FloatType, types.BoolType}},

	"&&": {{types.BoolType, types.BoolType, types.BoolType}},
	"||": {{types.BoolType, types.BoolType, types.BoolType}},
}

// unaryTable lists every accepted operand -> result signature per unary
// operator token. "!" is unambiguous; "-" is ambiguous between Int and
// Float and therefore requires the operand to already be instantiated
// before a candidate is chosen.
var unaryTable = map[string][]opSig{
	"!": {{types.BoolType, nil, types.BoolType}},
	"-": {{types.IntType, nil, types.IntType}, {types.FloatType, nil, types.FloatType}},
}

// typeBinOp resolves a binary operator by probing each candidate signature
// in binTable with the solver's speculate/rollback primitive, per spec.md
// §4.4, except for "==" and "!=" which accept any pair of equal types
// rather than a fixed finite table.
func (t *Typer) typeBinOp(e *ast.BinOp) error {
	if err := t.typeExpr(e.Lhs); err != nil {
		return err
	}
	if err := t.typeExpr(e.Rhs); err != nil {
		return err
	}

	if e.Op == "==" || e.Op == "!=" {
		if err := t.unify(e.Lhs.Type(), e.Rhs.Type(), e.Span(), e.Lhs.Span(), e.Rhs.Span()); err != nil {
			return err
		}
		t.setType(e, types.BoolType)
		return nil
	}

	sigs, ok := binTable[e.Op]
	if !ok {
		return errorAt(e.Span(), e, "unknown operator %q", e.Op)
	}

	var matched *opSig
	for i := range sigs {
		sig := sigs[i]
		if t.Solver.CanUnify(e.Lhs.Type(), sig.lhs) && t.Solver.CanUnify(e.Rhs.Type(), sig.rhs) {
			matched = &sig
			break
		}
	}
	if matched == nil {
		return errorAt(e.Span(), e, "no overload of %q accepts (%s, %s)", e.Op, types.String(e.Lhs.Type()), types.String(e.Rhs.Type()))
	}
	if err := t.unify(e.Lhs.Type(), matched.lhs, e.Lhs.Span(), e.Lhs.Span(), e.Span()); err != nil {
		return err
	}
	if err := t.unify(e.Rhs.Type(), matched.rhs, e.Rhs.Span(), e.Rhs.Span(), e.Span()); err != nil {
		return err
	}
	t.setType(e, matched.result)
	return nil
}

// typeUnaryOp resolves a unary operator the same way, except "-" requires
// the operand to already be a concrete Int or Float (no defaulting): an
// unresolved operand is an ambiguity error rather than a silently-chosen
// Int, since nothing else in the expression would pin the choice down.
func (t *Typer) typeUnaryOp(e *ast.UnaryOp) error {
	if err := t.typeExpr(e.Operand); err != nil {
		return err
	}

	sigs, ok := unaryTable[e.Op]
	if !ok {
		return errorAt(e.Span(), e, "unknown operator %q", e.Op)
	}

	if len(sigs) == 1 {
		if err := t.unify(e.Operand.Type(), sigs[0].lhs, e.Span(), e.Operand.Span(), e.Span()); err != nil {
			return err
		}
		t.setType(e, sigs[0].result)
		return nil
	}

	operand := types.RealType(e.Operand.Type())
	if _, isVar := operand.(*types.Var); isVar {
		return errorAt(e.Span(), e, "ambiguous use of %q: operand type is not yet known", e.Op)
	}

	var matched *opSig
	for i := range sigs {
		sig := sigs[i]
		if t.Solver.CanUnify(operand, sig.lhs) {
			matched = &sig
			break
		}
	}
	if matched == nil {
		return errorAt(e.Span(), e, "no overload of %q accepts %s", e.Op, types.String(operand))
	}
	if err := t.unify(e.Operand.Type(), matched.lhs, e.Span(), e.Operand.Span(), e.Span()); err != nil {
		return err
	}
	t.setType(e, matched.result)
	return nil
}
