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
	"github.com/fscala-lang/fscc/codegen"
	"github.com/fscala-lang/fscc/internal/cprint"
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
	"github.com/fscala-lang/fscc/typer"
	"github.com/nalgeon/be"
)

func intLit(n int64) *ast.Literal {
	l := ast.NewLiteral(span.None, ast.IntLit)
	l.Int = n
	return l
}

func unitLambda(body ast.Expr) *ast.Lambda {
	return ast.NewLambda(span.None, nil, nil, body)
}

func mainDef(value ast.Expr) *ast.LocalDef {
	return ast.NewLocalDef(span.None, "main", false, nil, value)
}

// check type-checks prog and lowers it, failing the test on either error.
func check(t *testing.T, prog *ast.Program) *codegen.Output {
	t.Helper()
	tr := typer.New()
	if err := tr.Check(prog); err != nil {
		t.Fatalf("unexpected type-check error: %v", err)
	}
	out, err := codegen.Generate(prog, tr.Table)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return out
}

func render(out *codegen.Output) string {
	return cprint.Print(out.Defs, out.UsedPrintf, out.UsedScanf, out.UsedMalloc)
}

// TestGenerateTopLevelMain exercises the plain top-level `val main`
// shape: a single call to a built-in I/O primitive, with no captures and
// no class involved at all.
func TestGenerateTopLevelMain(t *testing.T) {
	call := &ast.Apply{Callee: ast.NewIdent(span.None, "printlnInt"), Args: []ast.Expr{intLit(1)}}
	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(call))})

	out := check(t, prog)
	be.True(t, out.UsedPrintf)
	be.True(t, !out.UsedScanf)

	text := render(out)
	be.True(t, strings.Contains(text, "int main(void) {"))
	be.True(t, strings.Contains(text, "#include <stdio.h>"))
	be.True(t, strings.Contains(text, "return 0;"))
}

// TestGenerateClassMemberMain exercises the S1-shaped entry point: a
// top-level class with no constructor parameters, whose "main" member
// (not a separate top-level binding) is the program's entry point, and
// whose "fact" member calls itself recursively through the injected self
// field rather than an ordinary capture.
func TestGenerateClassMemberMain(t *testing.T) {
	// val fact = (n) => if (n <= 1) 1 else n * fact(n - 1)
	factBody := &ast.If{
		Cond: &ast.BinOp{Op: "<=", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		Then: intLit(1),
		Else: &ast.BinOp{
			Op:  "*",
			Lhs: ast.NewIdent(span.None, "n"),
			Rhs: &ast.Apply{
				Callee: ast.NewIdent(span.None, "fact"),
				Args:   []ast.Expr{&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)}},
			},
		},
	}
	factDef := ast.NewLocalDef(span.None, "fact", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, factBody))

	// val main = () => printlnInt(fact(readInt()))
	mainBody := &ast.Apply{
		Callee: ast.NewIdent(span.None, "printlnInt"),
		Args: []ast.Expr{&ast.Apply{
			Callee: ast.NewIdent(span.None, "fact"),
			Args:   []ast.Expr{&ast.Apply{Callee: ast.NewIdent(span.None, "readInt")}},
		}},
	}
	mainMember := ast.NewLocalDef(span.None, "main", false, nil, unitLambda(mainBody))

	class := ast.NewClassDef(span.None, "Main", nil, []*ast.LocalDef{factDef, mainMember})
	prog := ast.NewProgram(span.None, []ast.Def{class})

	out := check(t, prog)
	be.True(t, out.UsedPrintf)
	be.True(t, out.UsedScanf)
	be.True(t, out.UsedMalloc)

	text := render(out)
	be.True(t, strings.Contains(text, "struct Main_struct {"))
	be.True(t, strings.Contains(text, "Main_struct_new"))
	be.True(t, strings.Contains(text, "int main(void) {"))
	be.True(t, strings.Contains(text, "->main"))
}

// TestGenerateMutualRecursionInBlock exercises the three-phase ordering
// protocol for two mutually-referencing lambda bindings in the same
// block: isEven calls isOdd before isOdd's own definition has been typed
// or lowered, and vice versa.
func TestGenerateMutualRecursionInBlock(t *testing.T) {
	isEvenBody := &ast.If{
		Cond: &ast.BinOp{Op: "==", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(0)},
		Then: boolLit(true),
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "isOdd"), Args: []ast.Expr{
			&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		}},
	}
	isOddBody := &ast.If{
		Cond: &ast.BinOp{Op: "==", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(0)},
		Then: boolLit(false),
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "isEven"), Args: []ast.Expr{
			&ast.BinOp{Op: "-", Lhs: ast.NewIdent(span.None, "n"), Rhs: intLit(1)},
		}},
	}

	isEven := ast.NewLocalDef(span.None, "isEven", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, isEvenBody))
	isOdd := ast.NewLocalDef(span.None, "isOdd", false, nil,
		ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "n", nil)}, nil, isOddBody))

	result := &ast.If{
		Cond: &ast.Apply{Callee: ast.NewIdent(span.None, "isEven"), Args: []ast.Expr{intLit(4)}},
		Then: &ast.Apply{Callee: ast.NewIdent(span.None, "printlnInt"), Args: []ast.Expr{intLit(1)}},
		Else: &ast.Apply{Callee: ast.NewIdent(span.None, "printlnInt"), Args: []ast.Expr{intLit(0)}},
	}
	mainBody := ast.NewBlock(span.None, []ast.Def{isEven, isOdd}, result)

	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(mainBody))})
	out := check(t, prog)

	text := render(out)
	be.True(t, strings.Contains(text, "int main(void) {"))
}

// TestGenerateSurfacePrintf exercises the surface printf(fmt, arg)
// primitive: predeclareBuiltins gives it a fixed (String, Int) => Unit
// signature, and lowerBuiltinCall passes both arguments straight through
// to libc printf.
func TestGenerateSurfacePrintf(t *testing.T) {
	fmtLit := ast.NewLiteral(span.None, ast.StringLit)
	fmtLit.String = "got %d\n"
	call := &ast.Apply{Callee: ast.NewIdent(span.None, "printf"), Args: []ast.Expr{fmtLit, intLit(7)}}
	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(call))})

	out := check(t, prog)
	be.True(t, out.UsedPrintf)

	text := render(out)
	be.True(t, strings.Contains(text, `printf("got %d\n", 7)`))
}

func boolLit(b bool) *ast.Literal {
	l := ast.NewLiteral(span.None, ast.BoolLit)
	l.Bool = b
	return l
}

// TestGenerateLambdaCapture exercises buildLambda's environment-struct
// capture path and internal/cprint's cast-parenthesization fix: adder
// returns a lambda that captures its own parameter x, and the inner
// lambda's body reads it through a cast env pointer's arrow access.
func TestGenerateLambdaCapture(t *testing.T) {
	inner := ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "y", nil)}, nil,
		&ast.BinOp{Op: "+", Lhs: ast.NewIdent(span.None, "x"), Rhs: ast.NewIdent(span.None, "y")})
	adder := ast.NewLambda(span.None, []*ast.Param{ast.NewParam(span.None, "x", nil)}, nil, inner)

	// val adder = (x) => (y) => x + y
	// val add3 = adder(3)
	// printlnInt(add3(4))
	adderDef := ast.NewLocalDef(span.None, "adder", false, nil, adder)
	add3Def := ast.NewLocalDef(span.None, "add3", false, nil,
		&ast.Apply{Callee: ast.NewIdent(span.None, "adder"), Args: []ast.Expr{intLit(3)}})

	result := &ast.Apply{
		Callee: ast.NewIdent(span.None, "printlnInt"),
		Args: []ast.Expr{&ast.Apply{
			Callee: ast.NewIdent(span.None, "add3"),
			Args:   []ast.Expr{intLit(4)},
		}},
	}
	mainBody := ast.NewBlock(span.None, []ast.Def{adderDef, add3Def}, result)
	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(mainBody))})

	out := check(t, prog)
	be.True(t, out.UsedMalloc)

	text := render(out)
	// the inner lambda's captured-x access must be rendered as a
	// parenthesized cast receiver, never a bare "(T)(x)->field".
	be.True(t, strings.Contains(text, "))->"))
}

// TestGenerateWhileLoop exercises lowerWhile's while(1)+break rewrite.
func TestGenerateWhileLoop(t *testing.T) {
	// var x = 0
	// while (x < 3) { x = x + 1 }
	// printlnInt(x)
	xDef := ast.NewLocalDef(span.None, "x", true, nil, intLit(0))
	loop := &ast.While{
		Cond: &ast.BinOp{Op: "<", Lhs: ast.NewIdent(span.None, "x"), Rhs: intLit(3)},
		Body: &ast.Assign{
			Target: types.UnresolvedRef("x"),
			Value:  &ast.BinOp{Op: "+", Lhs: ast.NewIdent(span.None, "x"), Rhs: intLit(1)},
		},
	}
	result := &ast.Apply{Callee: ast.NewIdent(span.None, "printlnInt"), Args: []ast.Expr{ast.NewIdent(span.None, "x")}}

	// the while loop itself has no result to bind, so it is sequenced as
	// a throwaway Unit-valued binding ahead of the final read, the only
	// way a block can hold more than one statement before its result.
	loopDef := ast.NewLocalDef(span.None, "_loop", false, nil, loop)
	block := ast.NewBlock(span.None, []ast.Def{xDef, loopDef}, result)

	prog := ast.NewProgram(span.None, []ast.Def{mainDef(unitLambda(block))})
	out := check(t, prog)

	text := render(out)
	be.True(t, strings.Contains(text, "while (1) {"))
	be.True(t, strings.Contains(text, "break;"))
}
