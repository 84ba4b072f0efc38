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
	"strings"
	"testing"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
	"github.com/nalgeon/be"
)

func floatLit(f float64) *ast.Literal {
	l := ast.NewLiteral(span.None, ast.FloatLit)
	l.Float = f
	return l
}

// TestScenarioNewtonSqrt builds the Newton's-method square root program: a
// capturing-nothing absolute-value lambda, a var reassigned inside a while
// loop, and two trailing printlnFloat calls, end to end through
// typer.Check, codegen.Generate and internal/cprint.Print.
func TestScenarioNewtonSqrt(t *testing.T) {
	// val abs = (v: Float) => if (v < 0.0) -v else v
	absBody := &ast.If{
		Cond: &ast.BinOp{Op: "<", Lhs: ast.NewIdent(span.None, "v"), Rhs: floatLit(0.0)},
		Then: &ast.UnaryOp{Op: "-", Operand: ast.NewIdent(span.None, "v")},
		Else: ast.NewIdent(span.None, "v"),
	}
	absDef := ast.NewLocalDef(span.None, "abs", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "v", types.FloatType)}, nil, absBody))

	// val x = 2.0
	xDef := ast.NewLocalDef(span.None, "x", false, nil, floatLit(2.0))

	// var guess = x / 2.0
	guessDef := ast.NewLocalDef(span.None, "guess", true, nil,
		&ast.BinOp{Op: "/", Lhs: ast.NewIdent(span.None, "x"), Rhs: floatLit(2.0)})

	// while (abs(guess*guess - x) > 0.00001) { guess = (guess + x/guess) / 2.0 }
	errExpr := &ast.BinOp{
		Op: "-",
		Lhs: &ast.BinOp{Op: "*", Lhs: ast.NewIdent(span.None, "guess"), Rhs: ast.NewIdent(span.None, "guess")},
		Rhs: ast.NewIdent(span.None, "x"),
	}
	cond := &ast.BinOp{
		Op:  ">",
		Lhs: &ast.Apply{Callee: ast.NewIdent(span.None, "abs"), Args: []ast.Expr{errExpr}},
		Rhs: floatLit(0.00001),
	}
	refine := &ast.BinOp{
		Op: "/",
		Lhs: &ast.BinOp{
			Op:  "+",
			Lhs: ast.NewIdent(span.None, "guess"),
			Rhs: &ast.BinOp{Op: "/", Lhs: ast.NewIdent(span.None, "x"), Rhs: ast.NewIdent(span.None, "guess")},
		},
		Rhs: floatLit(2.0),
	}
	loop := &ast.While{
		Cond: cond,
		Body: &ast.Assign{Target: types.UnresolvedRef("guess"), Value: refine},
	}
	loopDef := ast.NewLocalDef(span.None, "_loop", false, nil, loop)

	// printlnFloat(x)
	printX := &ast.Apply{Callee: ast.NewIdent(span.None, "printlnFloat"), Args: []ast.Expr{ast.NewIdent(span.None, "x")}}
	printXDef := ast.NewLocalDef(span.None, "_printX", false, nil, printX)

	// printlnFloat(guess)
	printGuess := &ast.Apply{Callee: ast.NewIdent(span.None, "printlnFloat"), Args: []ast.Expr{ast.NewIdent(span.None, "guess")}}

	body := ast.NewBlock(span.None, []ast.Def{absDef, xDef, guessDef, loopDef, printXDef}, printGuess)
	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(body))})

	out := check(t, prog)
	be.True(t, out.UsedPrintf)

	text := render(out)
	be.True(t, strings.Contains(text, "while (1) {"))
	be.True(t, strings.Contains(text, "break;"))
	be.True(t, strings.Count(text, "printf(\"") == 2)
}

// TestScenarioRecursiveGroupInference mirrors S5: f calls g and g calls f,
// with g left unannotated; the program must still type-check and lower
// end to end, with g's inferred parameter and return types collapsing to
// Int => Int by the time codegen runs (codegen.cType would panic on any
// leftover type variable).
func TestScenarioRecursiveGroupInference(t *testing.T) {
	fBody := &ast.If{
		Cond: &ast.BinOp{Op: "==", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(0)},
		Then: intLit(1),
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "g"), Args: []ast.Expr{
			&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		}},
	}
	gBody := &ast.Apply{Callee: ast.NewIdent(span.None, "f"), Args: []ast.Expr{
		&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
	}}

	fDef := ast.NewLocalDef(span.None, "f", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", types.IntType)}, nil, fBody))
	// g is deliberately left with no parameter ascription, matching S5's
	// "un-annotated" requirement.
	gDef := ast.NewLocalDef(span.None, "g", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, gBody))

	result := &ast.Apply{
		Callee: ast.NewIdent(span.None, "printlnInt"),
		Args:   []ast.Expr{&ast.Apply{Callee: ast.NewIdent(span.None, "f"), Args: []ast.Expr{intLit(5)}}},
	}
	body := ast.NewBlock(span.None, []ast.Def{fDef, gDef}, result)
	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(body))})

	out := check(t, prog)
	text := render(out)
	be.True(t, strings.Contains(text, "int main(void) {"))
}
