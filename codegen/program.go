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
	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/prelude"
	"github.com/fscala-lang/fscc/symtab"
)

// Output is the result of a successful Generate: the C translation unit's
// top-level definitions, plus the prelude primitives the program actually
// exercised, which a renderer needs to decide which headers to emit
// (spec.md §6's "only include what was used").
type Output struct {
	Defs       []cast.TopDef
	UsedPrintf bool
	UsedScanf  bool
	UsedMalloc bool
}

// Generate lowers a type-checked program to its C top-level definitions,
// with prelude.TopDefs() prepended (spec.md §6's "standard library stub")
// and a synthesized `int main(void)` appended that locates the source
// program's entry point and invokes it once (spec.md §6 "Built-in program
// entry").
//
// The entry point may be a top-level `val main = () => ...` binding, or —
// spec.md's own S1 scenario declares it this way — a zero-constructor-
// argument class with a `main` member; both are spec.md §6-compliant
// readings of "the source program must declare a top-level main: () =>
// Unit", so both are accepted, the class form only when no top-level
// binding named "main" exists.
func Generate(prog *ast.Program, table *symtab.Table) (*Output, error) {
	g := New()
	g.Table = table

	var genErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(*Error); ok {
					genErr = e
					return
				}
				panic(r)
			}
		}()

		topCtx := &genContext{topLevel: true}
		g.pushContext(topCtx)
		stmts, err := g.lowerDefs(prog.Defs)
		if err != nil {
			panic(err)
		}

		entry, entryErr := g.findEntry(prog)
		if entryErr != nil {
			panic(entryErr)
		}
		stmts = append(stmts, entry...)
		stmts = append(stmts, &cast.Return{Value: &cast.Literal{Text: "0"}})
		g.popContext()

		g.emit(&cast.FuncDef{
			Name:   "main",
			Params: nil,
			Ret:    &cast.Base{Kind: cast.Int},
			Body:   stmts,
		})
	}()
	if genErr != nil {
		return nil, genErr
	}

	out := append([]cast.TopDef{}, prelude.TopDefs()...)
	out = append(out, g.topDefs...)
	return &Output{Defs: out, UsedPrintf: g.UsedPrintf, UsedScanf: g.UsedScanf, UsedMalloc: g.UsedMalloc}, nil
}

// findEntry locates the program's main binding (see Generate's doc
// comment) and returns the statements that call it once with no
// arguments, discarding its Unit result.
func (g *Generator) findEntry(prog *ast.Program) ([]cast.Stmt, *Error) {
	for _, d := range prog.Defs {
		if ld, ok := d.(*ast.LocalDef); ok && ld.Name == "main" {
			closure, ok := g.resolveIdent(ld.Sym)
			if !ok {
				return nil, errorAt(ld.Span(), ld, "main binding has no resolved code-gen expression")
			}
			return g.callClosureUnit(closure), nil
		}
	}
	for _, d := range prog.Defs {
		cd, ok := d.(*ast.ClassDef)
		if !ok || len(cd.CtorParams) != 0 {
			continue
		}
		if _, ok := cd.Member("main"); !ok {
			continue
		}
		structName := classStructName(cd.Name)
		instVar := g.Namer.UniqueCName("entry")
		var stmts []cast.Stmt
		stmts = append(stmts, &cast.VarDef{
			Name: instVar,
			Of:   cast.PointerTo(&cast.StructRef{Name: structName}),
			Init: &cast.Call{Callee: &cast.Ident{Name: structName + "_new"}},
		})
		closure := cast.Arrow(&cast.Ident{Name: instVar}, "main")
		stmts = append(stmts, g.callClosureUnit(closure)...)
		return stmts, nil
	}
	return nil, errorAt(prog.Span(), prog, "program declares no main binding")
}

// callClosureUnit builds the statement that invokes closure as a
// zero-argument, Unit-returning lambda: the same cast-func/call-with-env
// convention lowerApply uses for a general Apply, specialized for the one
// signature the program entry point always has.
func (g *Generator) callClosureUnit(closure cast.Expr) []cast.Stmt {
	alias := g.funcTypeAlias([]cast.Type{cast.PointerTo(&cast.Void{})}, &cast.Void{})
	fn := &cast.Cast{To: &cast.AliasRef{Name: alias.Name}, Operand: cast.Arrow(closure, "func")}
	call := &cast.Call{Callee: fn, Args: []cast.Expr{cast.Arrow(closure, "env")}}
	return []cast.Stmt{&cast.ExprStmt{Value: call}}
}
