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
	"strconv"
	"strings"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/bundle"
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/typer"
	"github.com/fscala-lang/fscc/types"
)

// lowerExpr is the general expression dispatcher (spec.md §4.3). Every
// case returns a bundle.Bundle: a result expression plus whatever prefix
// statements must run before it is evaluated. A Lambda literal lowered
// here is always the general, anonymous path (lowerLambda) immediately
// materialized into a closure pointer (materializeClosure); the named,
// deferred-capture path is reached only from lowerLocalGroup and
// lowerClass, which call buildLambda directly and never route through
// this dispatcher for the binding's own value.
func (g *Generator) lowerExpr(e ast.Expr) bundle.Bundle {
	switch et := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(et)

	case *ast.Ident:
		id := symtab.ID(et.Ref.ID)
		if v, ok := g.resolveIdent(id); ok {
			return &bundle.PureExpr{E: v}
		}
		panic(errorAt(et.Span(), et, "reference to %q has no resolved code-gen expression", et.Ref.Name))

	case *ast.Select:
		recv := g.lowerExpr(et.Recv)
		var prefix []cast.Stmt
		recvExpr := bundle.Lift(recv, &prefix)
		return &bundle.Block{E: cast.Arrow(recvExpr, et.Member), Prefix: prefix}

	case *ast.Apply:
		return g.lowerApply(et)

	case *ast.If:
		return g.lowerIf(et)

	case *ast.BinOp:
		var prefix []cast.Stmt
		lhs := bundle.Lift(g.lowerExpr(et.Lhs), &prefix)
		rhs := bundle.Lift(g.lowerExpr(et.Rhs), &prefix)
		return &bundle.Block{E: &cast.BinOp{Op: et.Op, Lhs: lhs, Rhs: rhs}, Prefix: prefix}

	case *ast.UnaryOp:
		var prefix []cast.Stmt
		operand := bundle.Lift(g.lowerExpr(et.Operand), &prefix)
		return &bundle.Block{E: &cast.UnOp{Op: et.Op, Operand: operand}, Prefix: prefix}

	case *ast.ArrayLit:
		return g.lowerArrayLit(et)

	case *ast.New:
		return g.lowerNew(et)

	case *ast.Assign:
		var prefix []cast.Stmt
		id := symtab.ID(et.Target.ID)
		target, ok := g.resolveIdent(id)
		if !ok {
			panic(errorAt(et.Span(), et, "assignment to %q with no resolved code-gen expression", et.Target.Name))
		}
		value := g.lowerValueForType(et.Value, et.Value.Type(), &prefix)
		prefix = append(prefix, &cast.Assign{Target: target, Value: value})
		return &bundle.Block{Prefix: prefix}

	case *ast.AssignRef:
		var prefix []cast.Stmt
		target := bundle.Lift(g.lowerExpr(et.Target), &prefix)
		value := g.lowerValueForType(et.Value, et.Value.Type(), &prefix)
		prefix = append(prefix, &cast.Assign{Target: target, Value: value})
		return &bundle.Block{Prefix: prefix}

	case *ast.While:
		return g.lowerWhile(et)

	case *ast.Lambda:
		b := g.lowerLambda(et)
		e, stmts := g.materializeClosure(b)
		return &bundle.Block{E: e, Prefix: stmts}

	case *ast.Block:
		stmts, err := g.lowerDefs(et.Defs)
		if err != nil {
			panic(err)
		}
		result := g.lowerExpr(et.Result)
		stmts = append(stmts, result.GetBlock()...)
		return &bundle.Block{E: result.GetExpr(), Prefix: stmts}
	}
	panic(errorAt(e.Span(), e, "codegen: unsupported expression shape %T", e))
}

// lowerValueForType lowers e and, if t is Lambda-typed, forces the result
// through materializeClosure so an assignment target of closure type never
// receives a bare SimpleFunc identifier.
func (g *Generator) lowerValueForType(e ast.Expr, t types.Type, prefix *[]cast.Stmt) cast.Expr {
	b := g.lowerExpr(e)
	if _, isLambda := types.RealType(t).(*types.Lambda); isLambda {
		expr, stmts := g.materializeClosure(b)
		*prefix = append(*prefix, stmts...)
		return expr
	}
	return bundle.Lift(b, prefix)
}

func (g *Generator) lowerLiteral(lit *ast.Literal) bundle.Bundle {
	switch lit.Kind {
	case ast.IntLit:
		return &bundle.PureExpr{E: &cast.Literal{Text: strconv.FormatInt(lit.Int, 10)}}
	case ast.FloatLit:
		return &bundle.PureExpr{E: &cast.Literal{Text: strconv.FormatFloat(lit.Float, 'g', -1, 64)}}
	case ast.BoolLit:
		if lit.Bool {
			return &bundle.PureExpr{E: &cast.Literal{Text: "1"}}
		}
		return &bundle.PureExpr{E: &cast.Literal{Text: "0"}}
	case ast.StringLit:
		return &bundle.PureExpr{E: &cast.Literal{Text: cQuote(lit.String)}}
	case ast.UnitLit:
		return &bundle.PureExpr{E: nil}
	}
	panic(errorAt(lit.Span(), lit, "codegen: unhandled literal kind %v", lit.Kind))
}

// cQuote renders s as a double-quoted C string literal, escaping the
// characters that would otherwise break out of the literal or corrupt a
// following directive.
func cQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// lowerApply lowers a call expression: the built-in I/O intrinsics, array
// indexing (a single-argument apply on an Array-typed callee), or a
// general lambda application through the closure-call convention (spec.md
// §4.3 "Apply"): cast closure.func to the right function-pointer alias and
// invoke it with (closure.env, args...).
func (g *Generator) lowerApply(app *ast.Apply) bundle.Bundle {
	if ident, ok := app.Callee.(*ast.Ident); ok {
		id := symtab.ID(ident.Ref.ID)
		if sym := g.Table.Get(id); sym != nil {
			if b, ok := sym.Dealias.(*typer.Builtin); ok {
				return g.lowerBuiltinCall(b, app)
			}
		}
	}

	if _, isArray := types.RealType(app.Callee.Type()).(*types.Array); isArray {
		return g.lowerArrayIndex(app)
	}

	var prefix []cast.Stmt
	closure := bundle.Lift(g.lowerExpr(app.Callee), &prefix)

	lamType := types.RealType(app.Callee.Type()).(*types.Lambda)
	paramTypes := make([]cast.Type, 0, len(lamType.Params)+1)
	paramTypes = append(paramTypes, cast.PointerTo(&cast.Void{}))
	for _, p := range lamType.Params {
		paramTypes = append(paramTypes, g.cType(p))
	}
	retType := g.cType(lamType.Ret)
	alias := g.funcTypeAlias(paramTypes, retType)

	args := make([]cast.Expr, 0, len(app.Args)+1)
	args = append(args, cast.Arrow(closure, "env"))
	for _, a := range app.Args {
		args = append(args, g.lowerValueForType(a, a.Type(), &prefix))
	}

	fn := &cast.Cast{To: &cast.AliasRef{Name: alias.Name}, Operand: cast.Arrow(closure, "func")}
	return &bundle.Block{E: &cast.Call{Callee: fn, Args: args}, Prefix: prefix}
}

// lowerArrayIndex lowers arr(idx) to *(arr + idx), the pointer-arithmetic
// representation an Array(elem) value uses throughout (cast has no
// dedicated index-expression node).
func (g *Generator) lowerArrayIndex(app *ast.Apply) bundle.Bundle {
	var prefix []cast.Stmt
	arr := bundle.Lift(g.lowerExpr(app.Callee), &prefix)
	idx := bundle.Lift(g.lowerExpr(app.Args[0]), &prefix)
	addr := &cast.BinOp{Op: "+", Lhs: arr, Rhs: idx}
	return &bundle.Block{E: &cast.UnOp{Op: "*", Operand: addr}, Prefix: prefix}
}

// lowerBuiltinCall lowers a call to one of the predeclared ground I/O
// primitives (spec.md §6) to its libc equivalent: readInt/readFloat to a
// scanf into a fresh local, printlnInt/printlnFloat to a printf with a
// trailing newline, printf straight through to libc's printf with the
// caller's own format string and substitution argument.
func (g *Generator) lowerBuiltinCall(b *typer.Builtin, app *ast.Apply) bundle.Bundle {
	switch b.Name {
	case "readInt":
		g.UsedScanf = true
		tmp := g.Namer.UniqueCName("rd")
		stmts := []cast.Stmt{
			&cast.VarDef{Name: tmp, Of: &cast.Base{Kind: cast.Int}},
			&cast.ExprStmt{Value: &cast.Call{
				Callee: &cast.Ident{Name: "scanf"},
				Args:   []cast.Expr{&cast.Literal{Text: cQuote("%d")}, &cast.UnOp{Op: "&", Operand: &cast.Ident{Name: tmp}}},
			}},
		}
		return &bundle.Block{E: &cast.Ident{Name: tmp}, Prefix: stmts}

	case "readFloat":
		g.UsedScanf = true
		tmp := g.Namer.UniqueCName("rd")
		stmts := []cast.Stmt{
			&cast.VarDef{Name: tmp, Of: &cast.Base{Kind: cast.Double}},
			&cast.ExprStmt{Value: &cast.Call{
				Callee: &cast.Ident{Name: "scanf"},
				Args:   []cast.Expr{&cast.Literal{Text: cQuote("%lf")}, &cast.UnOp{Op: "&", Operand: &cast.Ident{Name: tmp}}},
			}},
		}
		return &bundle.Block{E: &cast.Ident{Name: tmp}, Prefix: stmts}

	case "printlnInt":
		g.UsedPrintf = true
		var prefix []cast.Stmt
		arg := bundle.Lift(g.lowerExpr(app.Args[0]), &prefix)
		prefix = append(prefix, &cast.ExprStmt{Value: &cast.Call{
			Callee: &cast.Ident{Name: "printf"},
			Args:   []cast.Expr{&cast.Literal{Text: cQuote("%d\n")}, arg},
		}})
		return &bundle.Block{Prefix: prefix}

	case "printlnFloat":
		g.UsedPrintf = true
		var prefix []cast.Stmt
		arg := bundle.Lift(g.lowerExpr(app.Args[0]), &prefix)
		prefix = append(prefix, &cast.ExprStmt{Value: &cast.Call{
			Callee: &cast.Ident{Name: "printf"},
			Args:   []cast.Expr{&cast.Literal{Text: cQuote("%f\n")}, arg},
		}})
		return &bundle.Block{Prefix: prefix}

	case "printf":
		g.UsedPrintf = true
		var prefix []cast.Stmt
		format := bundle.Lift(g.lowerExpr(app.Args[0]), &prefix)
		arg := bundle.Lift(g.lowerExpr(app.Args[1]), &prefix)
		prefix = append(prefix, &cast.ExprStmt{Value: &cast.Call{
			Callee: &cast.Ident{Name: "printf"},
			Args:   []cast.Expr{format, arg},
		}})
		return &bundle.Block{Prefix: prefix}
	}
	panic(errorAt(app.Span(), app, "codegen: unhandled builtin %q", b.Name))
}

// lowerIf lowers a conditional expression. A Unit-typed if runs purely for
// effect: both branches are emitted as an IfElse statement with no result
// variable. Any other type gets an uninitialized result variable declared
// ahead of the IfElse, assigned at the tail of whichever branch runs;
// lowerValueForType materializes a Lambda-typed branch so both arms always
// assign a uniform closure pointer.
func (g *Generator) lowerIf(e *ast.If) bundle.Bundle {
	var prefix []cast.Stmt
	cond := bundle.Lift(g.lowerExpr(e.Cond), &prefix)

	ifType := e.Type()
	if types.RealType(ifType) == types.UnitType {
		var thenStmts, elseStmts []cast.Stmt
		thenResult := g.lowerExpr(e.Then)
		thenStmts = append(thenStmts, thenResult.GetBlock()...)
		if thenResult.GetExpr() != nil {
			thenStmts = append(thenStmts, &cast.ExprStmt{Value: thenResult.GetExpr()})
		}
		elseResult := g.lowerExpr(e.Else)
		elseStmts = append(elseStmts, elseResult.GetBlock()...)
		if elseResult.GetExpr() != nil {
			elseStmts = append(elseStmts, &cast.ExprStmt{Value: elseResult.GetExpr()})
		}
		prefix = append(prefix, &cast.IfElse{Cond: cond, Then: thenStmts, Else: elseStmts})
		return &bundle.Block{Prefix: prefix}
	}

	resultVar := g.Namer.UniqueCName("if")
	prefix = append(prefix, &cast.VarDef{Name: resultVar, Of: g.cType(ifType)})

	var thenStmts, elseStmts []cast.Stmt
	thenVal := g.lowerValueForType(e.Then, ifType, &thenStmts)
	thenStmts = append(thenStmts, &cast.Assign{Target: &cast.Ident{Name: resultVar}, Value: thenVal})
	elseVal := g.lowerValueForType(e.Else, ifType, &elseStmts)
	elseStmts = append(elseStmts, &cast.Assign{Target: &cast.Ident{Name: resultVar}, Value: elseVal})

	prefix = append(prefix, &cast.IfElse{Cond: cond, Then: thenStmts, Else: elseStmts})
	return &bundle.Block{E: &cast.Ident{Name: resultVar}, Prefix: prefix}
}

// lowerWhile rewrites the surface while into `while (1) { cond-prefix; if
// (!cond) break; body }` so a condition with side-effecting prefix
// statements (a call, a comparison against a freshly-read value) is
// correctly re-evaluated on every iteration rather than hoisted out once.
func (g *Generator) lowerWhile(e *ast.While) bundle.Bundle {
	var loopBody []cast.Stmt
	cond := bundle.Lift(g.lowerExpr(e.Cond), &loopBody)
	loopBody = append(loopBody, &cast.IfElse{
		Cond: &cast.UnOp{Op: "!", Operand: cond},
		Then: []cast.Stmt{&cast.Break{}},
	})
	body := g.lowerExpr(e.Body)
	loopBody = append(loopBody, body.GetBlock()...)
	if body.GetExpr() != nil {
		loopBody = append(loopBody, &cast.ExprStmt{Value: body.GetExpr()})
	}
	stmt := &cast.While{Cond: &cast.Literal{Text: "1"}, Body: loopBody}
	return &bundle.Block{Prefix: []cast.Stmt{stmt}}
}

// lowerArrayLit lowers [n] to a malloc'd buffer: (Elem*)malloc(sizeof(Elem)
// * n).
func (g *Generator) lowerArrayLit(e *ast.ArrayLit) bundle.Bundle {
	arrType := types.RealType(e.Type()).(*types.Array)
	elemCType := g.cType(arrType.Elem)

	var prefix []cast.Stmt
	length := bundle.Lift(g.lowerExpr(e.Len), &prefix)

	g.UsedMalloc = true
	size := &cast.BinOp{Op: "*", Lhs: &cast.SizeOf{Of: elemCType}, Rhs: length}
	alloc := &cast.Cast{
		To: cast.PointerTo(elemCType),
		Operand: &cast.Call{
			Callee: &cast.Ident{Name: "malloc"},
			Args:   []cast.Expr{size},
		},
	}
	return &bundle.Block{E: alloc, Prefix: prefix}
}

// lowerNew lowers `new C(args...)` to a call of C's generated constructor
// function (classStructName(C) + "_new"), built by lowerClass.
func (g *Generator) lowerNew(e *ast.New) bundle.Bundle {
	var prefix []cast.Stmt
	classType := types.RealType(e.Type()).(*types.Class)
	args := make([]cast.Expr, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, g.lowerValueForType(a, a.Type(), &prefix))
	}
	ctorName := classStructName(classType.Def.Name) + "_new"
	call := &cast.Call{Callee: &cast.Ident{Name: ctorName}, Args: args}
	return &bundle.Block{E: call, Prefix: prefix}
}
