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

package codegen_test

import (
	"testing"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
	"github.com/nalgeon/be"
)

// TestDeterministicMangling builds one program, lowers it to C once, then
// lowers a completely independent ast.CopyExpr duplicate of the same
// program through a second, fresh typer.New/codegen.Generate pipeline, and
// checks the two renders are byte-identical. CopyExpr drops every
// type/bundle annotation the first pass attached, so the second pipeline
// re-resolves every symbol reference and re-mints every mangled C name from
// scratch; a mismatch would mean some part of the pipeline depends on
// allocation order or shared state rather than purely on the tree's
// structure. The program includes a lambda capturing two outer locals at
// once (f, below) specifically because a single-capture lambda can't
// expose a capture-field-ordering bug: buildLambda's FreeNames.Slice() is
// only at risk of nondeterministic order once there are at least two
// names to order.
func TestDeterministicMangling(t *testing.T) {
	isEvenBody := &ast.If{
		Cond: &ast.BinOp{Op: "==", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(0)},
		Then: intLit(1),
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "isOdd"), Args: []ast.Expr{
			&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		}},
	}
	isOddBody := &ast.If{
		Cond: &ast.BinOp{Op: "==", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(0)},
		Then: intLit(0),
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "isEven"), Args: []ast.Expr{
			&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		}},
	}

	isEven := ast.NewLocalDef(span.None, "isEven", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, isEvenBody))
	isOdd := ast.NewLocalDef(span.None, "isOdd", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, isOddBody))

	makeInner := func() *ast.Lambda {
		inner := ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "y", nil)}, nil,
			&ast.BinOp{Op: "+", Lhs: ast.NewIdent(span.None, "x"), Rhs: ast.NewIdent(span.None, "y")})
		return ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "x", nil)}, nil, inner)
	}
	adderDef := ast.NewLocalDef(span.None, "adder", false, nil, makeInner())
	add3Def := ast.NewLocalDef(span.None, "add3", false, nil,
		&ast.Apply{Callee: ast.NewIdent(span.None, "adder"), Args: []ast.Expr{intLit(3)}})

	// val a = 1; val b = 2; val f = (x: Int) => a + b + x — a lambda
	// capturing two outer locals at once, the shape whose capture-field
	// order only stays deterministic if FreeNames.Slice() is sorted before
	// buildLambda walks it.
	aDef := ast.NewLocalDef(span.None, "a", false, nil, intLit(1))
	bDef := ast.NewLocalDef(span.None, "b", false, nil, intLit(2))
	fBody := &ast.BinOp{
		Op:  "+",
		Lhs: &ast.BinOp{Op: "+", Lhs: ast.NewIdent(span.None, "a"), Rhs: ast.NewIdent(span.None, "b")},
		Rhs: ast.NewIdent(span.None, "x"),
	}
	fDef := ast.NewLocalDef(span.None, "f", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "x", types.IntType)}, nil, fBody))
	callF := &ast.Apply{Callee: ast.NewIdent(span.None, "f"), Args: []ast.Expr{intLit(5)}}
	callFDef := ast.NewLocalDef(span.None, "_callF", false, nil,
		&ast.Apply{Callee: ast.NewIdent(span.None, "printlnInt"), Args: []ast.Expr{callF}})

	result := &ast.Apply{
		Callee: ast.NewIdent(span.None, "printlnInt"),
		Args: []ast.Expr{&ast.Apply{
			Callee: ast.NewIdent(span.None, "isEven"),
			Args: []ast.Expr{&ast.Apply{
				Callee: ast.NewIdent(span.None, "add3"),
				Args:   []ast.Expr{intLit(4)},
			}},
		}},
	}
	body := ast.NewBlock(span.None,
		[]ast.Def{isEven, isOdd, adderDef, add3Def, aDef, bDef, fDef, callFDef}, result)
	original := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(body))})

	firstOut := check(t, original)
	firstText := render(firstOut)

	copied := copyProgram(original)
	secondOut := check(t, copied)
	secondText := render(secondOut)

	be.Equal(t, firstText, secondText)
}

// copyProgram rebuilds a top-level program out of ast.CopyExpr copies of
// each of its definitions, the same deep-copy-dropping-annotations
// operation a single LocalDef or ClassDef goes through internally, applied
// once per top-level def since ast.CopyExpr itself operates on expressions
// and the defs nested inside them, not on an *ast.Program.
func copyProgram(prog *ast.Program) *ast.Program {
	defs := make([]ast.Def, len(prog.Defs))
	for i, d := range prog.Defs {
		ld := d.(*ast.LocalDef)
		defs[i] = ast.NewLocalDef(ld.Span(), ld.Name, ld.Mutable, ld.Ascription, ast.CopyExpr(ld.Value))
	}
	return ast.NewProgram(prog.Span(), defs)
}
