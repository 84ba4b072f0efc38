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
	"sort"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/bundle"
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/prelude"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/typer"
	"github.com/fscala-lang/fscc/types"
)

// envParamName is the name every lowered function's leading, uniformly
// present environment parameter is given.
const envParamName = "env"

// selfFieldName is the environment field a class method's injected self
// pointer is stored under (spec.md §4.3.2).
const selfFieldName = "self"

// capturedField is one name a lowered lambda's environment struct carries:
// the field it is stored under, the C expression that reads its current
// value in the capturing (enclosing) context, and the field's C type.
type capturedField struct {
	field string
	value cast.Expr
	typ   cast.Type
}

// lambdaParts is buildLambda's result: the emitted function plus the
// pieces needed to materialize a closure value for it, split into setup
// (always safe to run immediately at the lambda's own construction point)
// and fieldAssign (the environment's captured-field writes, which a named
// binding's caller defers until every sibling in its recursive group has
// been assigned; see lowerDefs).
type lambdaParts struct {
	fn          *cast.FuncDef
	hasEnv      bool
	varName     string
	setup       []cast.Stmt
	fieldAssign []cast.Stmt
}

// buildLambda lowers lam's body into a standalone C function plus the
// malloc/assign statements that materialize one instance of it into
// varName, with a NULL environment when it captures nothing (spec.md
// §4.3.1). Every function is given a
// uniform leading `void *env` parameter regardless of whether it captures
// anything, so a SimpleFunc-backed lambda can always later be
// materialized into a generic closure without a separate wrapper (a
// deliberate generalization of step 2's literal "plain FuncDef" wording;
// recorded as a resolved Open Question in DESIGN.md).
func (g *Generator) buildLambda(lam *ast.Lambda, varName string) *lambdaParts {
	lamType := lam.Type().(*types.Lambda)

	var captures []capturedField
	var captureSyms []symtab.ID
	needsSelf := false
	// FreeNames is a hash set; Slice() ranges its backing map, so its order
	// is randomized per run. Sorting by ID first is what makes the capture
	// field order (and therefore the minted "cap__N" names) a pure function
	// of the symbol IDs involved, regardless of map iteration order.
	freeIDs := lam.FreeNames.Slice()
	sort.Slice(freeIDs, func(i, j int) bool { return freeIDs[i] < freeIDs[j] })
	for _, id := range freeIDs {
		if g.currentClassMembers != nil {
			if _, ok := g.currentClassMembers[id]; ok {
				needsSelf = true
				continue
			}
		}
		// A ground I/O primitive is called directly by name
		// (lowerBuiltinCall), never through a resolved value, so it is
		// never actually captured even though typer.markFree records it
		// as a free name like any other identifier crossing the lambda
		// boundary.
		if sym := g.Table.Get(id); sym != nil {
			if _, ok := sym.Dealias.(*typer.Builtin); ok {
				continue
			}
		}
		value, ok := g.resolveIdent(id)
		if !ok {
			panic("codegen: free name has no resolved expression in the enclosing context")
		}
		captures = append(captures, capturedField{
			field: g.Namer.UniqueCName("cap"),
			value: value,
			typ:   g.cType(g.freeNameType(id)),
		})
		captureSyms = append(captureSyms, id)
	}

	fname := g.Namer.UniqueCName("lambda")
	hasEnv := len(captures) > 0 || needsSelf

	var envType *cast.Pointer
	if hasEnv {
		envName := fname + "_env"
		fields := make([]cast.Field, 0, len(captures)+1)
		for _, c := range captures {
			fields = append(fields, cast.Field{Name: c.field, Of: c.typ})
		}
		if needsSelf {
			fields = append(fields, cast.Field{Name: selfFieldName, Of: cast.PointerTo(&cast.StructRef{Name: g.currentClassStruct})})
		}
		g.emit(&cast.StructDef{Name: envName, Fields: fields})
		envType = cast.PointerTo(&cast.StructRef{Name: envName})
	}

	params := make([]cast.Field, 0, len(lam.Params)+1)
	params = append(params, cast.Field{Name: envParamName, Of: cast.PointerTo(&cast.Void{})})
	for _, p := range lam.Params {
		params = append(params, cast.Field{Name: p.Name, Of: g.cType(p.Typ)})
	}

	isVoidRet := types.RealType(lamType.Ret) == types.UnitType
	retCType := cast.Type(&cast.Void{})
	if !isVoidRet {
		retCType = g.cType(lamType.Ret)
	}

	bodyCtx := &genContext{}
	g.pushContext(bodyCtx)
	for _, p := range lam.Params {
		bodyCtx.idents[p.Sym] = &cast.Ident{Name: p.Name}
	}
	var selfAccess cast.Expr
	if hasEnv {
		castEnv := &cast.Cast{To: envType, Operand: &cast.Ident{Name: envParamName}}
		for i, c := range captures {
			bodyCtx.idents[captureSyms[i]] = cast.Arrow(castEnv, c.field)
		}
		if needsSelf {
			selfAccess = cast.Arrow(castEnv, selfFieldName)
			bodyCtx.selfAccess = selfAccess
			for id, name := range g.currentClassMembers {
				bodyCtx.idents[id] = cast.Arrow(selfAccess, name)
			}
		}
	}

	var bodyStmts []cast.Stmt
	resultExpr := bundle.Lift(g.lowerExpr(lam.Body), &bodyStmts)
	if isVoidRet {
		if resultExpr != nil {
			bodyStmts = append(bodyStmts, &cast.ExprStmt{Value: resultExpr})
		}
	} else {
		bodyStmts = append(bodyStmts, &cast.Return{Value: resultExpr})
	}
	g.popContext()

	fn := &cast.FuncDef{Name: fname, Params: params, Ret: retCType, Body: bodyStmts}
	g.emit(fn)

	parts := &lambdaParts{fn: fn, hasEnv: hasEnv, varName: varName}
	if !hasEnv {
		parts.setup = g.closureAllocStmts(varName, fname, &cast.Null{})
		return parts
	}

	envVar := g.Namer.UniqueCName(fname + "_e")
	envName := fname + "_env"
	parts.setup = append(parts.setup, &cast.VarDef{
		Name: envVar,
		Of:   envType,
		Init: &cast.Cast{To: envType, Operand: &cast.Call{
			Callee: &cast.Ident{Name: "malloc"},
			Args:   []cast.Expr{&cast.SizeOf{Of: &cast.StructRef{Name: envName}}},
		}},
	})
	g.UsedMalloc = true
	parts.setup = append(parts.setup, g.closureAllocStmts(varName, fname,
		&cast.Cast{To: cast.PointerTo(&cast.Void{}), Operand: &cast.Ident{Name: envVar}})...)

	for _, c := range captures {
		parts.fieldAssign = append(parts.fieldAssign, &cast.Assign{
			Target: cast.Arrow(&cast.Ident{Name: envVar}, c.field),
			Value:  c.value,
		})
	}
	if needsSelf {
		parts.fieldAssign = append(parts.fieldAssign, &cast.Assign{
			Target: cast.Arrow(&cast.Ident{Name: envVar}, selfFieldName),
			Value:  g.top().selfAccess,
		})
	}
	return parts
}

// closureAllocStmts builds the three statements that materialize one
// fscc_closure value into varName: a malloc'd struct, its func field cast
// from fname, and its env field set to envExpr (a cast void* environment
// pointer, or cast.Null{} for a non-capturing function).
func (g *Generator) closureAllocStmts(varName, fname string, envExpr cast.Expr) []cast.Stmt {
	g.UsedMalloc = true
	closureRef := &cast.StructRef{Name: prelude.ClosureStructName}
	return []cast.Stmt{
		&cast.VarDef{
			Name: varName,
			Of:   prelude.ClosureStructRef(),
			Init: &cast.Cast{To: prelude.ClosureStructRef(), Operand: &cast.Call{
				Callee: &cast.Ident{Name: "malloc"},
				Args:   []cast.Expr{&cast.SizeOf{Of: closureRef}},
			}},
		},
		&cast.Assign{
			Target: cast.Arrow(&cast.Ident{Name: varName}, prelude.FuncField),
			Value:  &cast.Cast{To: cast.PointerTo(&cast.Void{}), Operand: &cast.Ident{Name: fname}},
		},
		&cast.Assign{
			Target: cast.Arrow(&cast.Ident{Name: varName}, prelude.EnvField),
			Value:  envExpr,
		},
	}
}

// freeNameType returns the surface type of a resolved symbol, used to pick
// an environment field's C type for a captured name.
func (g *Generator) freeNameType(id symtab.ID) types.Type {
	sym := g.Table.Get(id)
	switch d := sym.Dealias.(type) {
	case *ast.LocalDef:
		return d.Typ
	case *ast.Param:
		return d.Typ
	default:
		panic("codegen: captured free name has no typed definition")
	}
}

// lowerLambda lowers an anonymous (not block/class-bound) lambda
// expression: a single-pass materialization with no deferred captures,
// since an inline lambda literal has no sibling bindings to forward- or
// mutually-reference.
func (g *Generator) lowerLambda(lam *ast.Lambda) bundle.Bundle {
	varName := g.Namer.UniqueCName("closure")
	parts := g.buildLambda(lam, varName)
	if !parts.hasEnv {
		return &bundle.SimpleFunc{E: &cast.Ident{Name: parts.fn.Name}, Func: parts.fn}
	}
	prefix := append(append([]cast.Stmt{}, parts.setup...), parts.fieldAssign...)
	return &bundle.Closure{E: &cast.Ident{Name: varName}, Prefix: prefix, Func: parts.fn}
}

// materializeClosure forces b into a real closure-struct-pointer
// expression: if b is a SimpleFunc (a non-capturing lambda that has not
// yet been wrapped), it mallocs a trivial closure around it with a NULL
// environment; any other bundle already carries a closure pointer and is
// returned unchanged. Every lambda-typed named binding (block local,
// class member, function argument) is materialized this way so its C
// variable always holds a uniform closure pointer, regardless of whether
// its value happened to lower to the no-capture fast path.
func (g *Generator) materializeClosure(b bundle.Bundle) (cast.Expr, []cast.Stmt) {
	sf, ok := b.(*bundle.SimpleFunc)
	if !ok {
		return b.GetExpr(), b.GetBlock()
	}
	varName := g.Namer.UniqueCName("closure")
	stmts := g.closureAllocStmts(varName, sf.Func.Name, &cast.Null{})
	return &cast.Ident{Name: varName}, stmts
}
