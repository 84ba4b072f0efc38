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
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/types"
)

// typeExpr is the per-construct dispatcher described in spec.md §4.2.
func (t *Typer) typeExpr(e ast.Expr) error {
	switch et := e.(type) {
	case *ast.Literal:
		return t.typeLiteral(et)
	case *ast.Ident:
		return t.typeIdent(et)
	case *ast.Select:
		return t.typeSelect(et)
	case *ast.Apply:
		return t.typeApply(et)
	case *ast.If:
		return t.typeIf(et)
	case *ast.BinOp:
		return t.typeBinOp(et)
	case *ast.UnaryOp:
		return t.typeUnaryOp(et)
	case *ast.ArrayLit:
		return t.typeArrayLit(et)
	case *ast.Lambda:
		return t.typeLambda(et)
	case *ast.Block:
		return t.typeBlock(et)
	case *ast.New:
		return t.typeNew(et)
	case *ast.Assign:
		return t.typeAssign(et)
	case *ast.AssignRef:
		return t.typeAssignRef(et)
	case *ast.While:
		return t.typeWhile(et)
	default:
		return errorAt(e.Span(), e, "typer: unhandled expression %s", e.ExprName())
	}
}

func (t *Typer) typeLiteral(e *ast.Literal) error {
	switch e.Kind {
	case ast.IntLit:
		t.setType(e, types.IntType)
	case ast.FloatLit:
		t.setType(e, types.FloatType)
	case ast.BoolLit:
		t.setType(e, types.BoolType)
	case ast.StringLit:
		t.setType(e, types.StringType)
	case ast.UnitLit:
		t.setType(e, types.UnitType)
	}
	return nil
}

func (t *Typer) typeIdent(e *ast.Ident) error {
	id, depth, err := t.resolveRef(e.Ref, e.Span())
	if err != nil {
		return err
	}
	t.markFree(id, depth)
	typ, mutable, err := t.symbolType(id)
	if err != nil {
		return errorAt(e.Span(), e, "%v", err)
	}
	if mutable {
		typ = &types.Ref{Inner: typ}
	}
	t.setType(e, typ)
	return nil
}

// resolveRef resolves a SymRef against the current scope, binding it in
// place the first time it is seen (a copied tree's refs always start
// unresolved; see ast.CopyExpr). The reported depth is meaningful only for
// a freshly-resolved reference; an already-resolved one (revisited by a
// second typing pass) reports depth 0, which never reads as free.
func (t *Typer) resolveRef(ref *types.SymRef, sp span.Span) (symtab.ID, int, error) {
	if ref.Resolved {
		id := symtab.ID(ref.ID)
		if t.Table.Get(id) == nil {
			return symtab.Invalid, 0, errorAt(sp, nil, "unresolved symbol %q", ref.Name)
		}
		return id, 0, nil
	}
	id, depth, ok := t.Scope.FindDepth(ref.Name)
	if !ok {
		return symtab.Invalid, 0, errorAt(sp, nil, "undefined name %q", ref.Name)
	}
	ref.Resolve(int(id))
	return id, depth, nil
}

func (t *Typer) typeSelect(e *ast.Select) error {
	if err := t.typeExpr(e.Recv); err != nil {
		return err
	}
	recvType := types.Deref(types.RealType(e.Recv.Type()))
	switch rt := recvType.(type) {
	case *types.Class:
		typ, ok := rt.Def.MemberType(e.Member)
		if !ok {
			return errorAt(e.Span(), e, "%s has no member %q", rt.Def.Name, e.Member)
		}
		if rt.Def.MemberMutable(e.Member) {
			typ = &types.Ref{Inner: typ}
		}
		t.setType(e, typ)
		return nil

	case *types.ClassTypeVar:
		fresh := t.Solver.FreshVar("T", e.Span())
		rt.Predicates = rt.Predicates.Add(e.Member, fresh)
		t.setType(e, fresh)
		return nil

	default:
		return errorAt(e.Span(), e, "%s is not a class type", types.String(recvType))
	}
}

func (t *Typer) typeApply(e *ast.Apply) error {
	if err := t.typeExpr(e.Callee); err != nil {
		return err
	}
	calleeType := types.RealType(e.Callee.Type())

	if arr, ok := calleeType.(*types.Array); ok {
		if len(e.Args) != 1 {
			return errorAt(e.Span(), e, "array indexing takes exactly one argument, got %d", len(e.Args))
		}
		if err := t.typeExpr(e.Args[0]); err != nil {
			return err
		}
		if err := t.unify(e.Args[0].Type(), types.IntType, e.Args[0].Span(), e.Args[0].Span(), span.None); err != nil {
			return err
		}
		t.setType(e, &types.Ref{Inner: arr.Elem})
		return nil
	}

	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		if err := t.typeExpr(a); err != nil {
			return err
		}
		argTypes[i] = a.Type()
	}

	if lam, ok := calleeType.(*types.Lambda); ok {
		if len(lam.Params) != len(e.Args) {
			return errorAt(e.Span(), e, "expected %d argument(s), got %d", len(lam.Params), len(e.Args))
		}
		for i, p := range lam.Params {
			if err := t.unify(argTypes[i], p, e.Args[i].Span(), e.Args[i].Span(), span.None); err != nil {
				return err
			}
		}
		t.setType(e, lam.Ret)
		return nil
	}

	ret := t.Solver.FreshVar("T", e.Span())
	if err := t.unify(calleeType, &types.Lambda{Params: argTypes, Ret: ret}, e.Span(), e.Callee.Span(), span.None); err != nil {
		return err
	}
	t.setType(e, ret)
	return nil
}

func (t *Typer) typeIf(e *ast.If) error {
	if err := t.typeExpr(e.Cond); err != nil {
		return err
	}
	if err := t.unify(e.Cond.Type(), types.BoolType, e.Cond.Span(), e.Cond.Span(), span.None); err != nil {
		return err
	}
	if err := t.typeExpr(e.Then); err != nil {
		return err
	}
	if err := t.typeExpr(e.Else); err != nil {
		return err
	}
	thenType, thenOpen := t.Solver.Substitute(e.Then.Type())
	elseType, elseOpen := t.Solver.Substitute(e.Else.Type())
	if thenOpen == nil && elseOpen == nil && !t.Solver.CanUnify(thenType, elseType) {
		return errorAt(e.Span(), e, "if branches have mismatched types: %s vs %s",
			types.String(thenType), types.String(elseType))
	}
	if err := t.unify(e.Then.Type(), e.Else.Type(), e.Span(), e.Then.Span(), e.Else.Span()); err != nil {
		return err
	}
	t.setType(e, e.Then.Type())
	return nil
}

func (t *Typer) typeArrayLit(e *ast.ArrayLit) error {
	if err := t.typeExpr(e.Len); err != nil {
		return err
	}
	if err := t.unify(e.Len.Type(), types.IntType, e.Len.Span(), e.Len.Span(), span.None); err != nil {
		return err
	}
	elem := t.Solver.FreshVar("T", e.Span())
	t.setType(e, &types.Array{Elem: elem})
	return nil
}

func (t *Typer) typeLambda(e *ast.Lambda) error {
	t.Scope.Locate()
	lc := &lambdaCtx{node: e, depth: t.Scope.Depth()}
	t.lambdas = append(t.lambdas, lc)
	defer func() {
		t.lambdas = t.lambdas[:len(t.lambdas)-1]
		t.Scope.Relocate()
	}()

	paramTypes := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		ascr, err := t.resolveAscription(p.Ascription)
		if err != nil {
			return err
		}
		if ascr == nil {
			ascr = t.Solver.FreshVar("T", p.Span())
		}
		p.Typ = ascr
		id := t.Scope.AddSymbol(p.Name, p.Span())
		p.Sym = id
		t.Table.SetDealias(id, p)
		paramTypes[i] = ascr
	}

	// A bare lambda does not close its own frame: its body's nodes are left
	// in whatever frame is already open (the enclosing recursive group's),
	// so that two sibling bindings whose lambda bodies call each other are
	// only forced to fully resolve once, together, at that group's closing
	// force-instantiate (spec.md §4.2 Block rule step 4) rather than one at
	// a time in declaration order.
	if err := t.typeExpr(e.Body); err != nil {
		return err
	}

	retType := e.Body.Type()
	if e.RetAscription != nil {
		ascr, err := t.resolveAscription(e.RetAscription)
		if err != nil {
			return err
		}
		// This is a unify, not a straight equality comparison: retType may
		// still be an open variable here (a sibling in the same recursive
		// group whose own body hasn't forced it yet, per the comment
		// above), and unify is the only way to pin it to ascr without
		// waiting for the group's closing force-instantiate. Once both
		// sides are already concrete this behaves exactly like equality.
		if err := t.unify(ascr, retType, e.Span(), e.Span(), e.Body.Span()); err != nil {
			return err
		}
		retType = ascr
	}
	t.setType(e, &types.Lambda{Params: paramTypes, Ret: retType})
	return nil
}

func (t *Typer) typeNew(e *ast.New) error {
	id, _, err := t.resolveRef(e.Class, e.Span())
	if err != nil {
		return err
	}
	sym := t.Table.Get(id)
	cd, ok := sym.Dealias.(*ast.ClassDef)
	if !ok {
		return errorAt(e.Span(), e, "%q is not a class", e.Class.Name)
	}
	ctor := cd.TypesDef.Ctor
	if len(ctor) != len(e.Args) {
		return errorAt(e.Span(), e, "%s expects %d constructor argument(s), got %d", cd.Name, len(ctor), len(e.Args))
	}
	for i, a := range e.Args {
		if err := t.typeExpr(a); err != nil {
			return err
		}
		if err := t.unify(a.Type(), ctor[i], a.Span(), a.Span(), span.None); err != nil {
			return err
		}
	}
	t.setType(e, &types.Class{Def: cd.TypesDef})
	return nil
}

func (t *Typer) typeAssign(e *ast.Assign) error {
	id, depth, err := t.resolveRef(e.Target, e.Span())
	if err != nil {
		return err
	}
	t.markFree(id, depth)
	typ, mutable, err := t.symbolType(id)
	if err != nil {
		return errorAt(e.Span(), e, "%v", err)
	}
	if !mutable {
		return errorAt(e.Span(), e, "%q is not a var and cannot be assigned", e.Target.Name)
	}
	if err := t.typeExpr(e.Value); err != nil {
		return err
	}
	if err := t.unify(e.Value.Type(), typ, e.Span(), e.Value.Span(), span.None); err != nil {
		return err
	}
	t.setType(e, types.UnitType)
	return nil
}

func (t *Typer) typeAssignRef(e *ast.AssignRef) error {
	if err := t.typeExpr(e.Target); err != nil {
		return err
	}
	ref, ok := types.RealType(e.Target.Type()).(*types.Ref)
	if !ok {
		return errorAt(e.Span(), e, "%s is not assignable", ast.ExprString(e.Target))
	}
	if err := t.typeExpr(e.Value); err != nil {
		return err
	}
	if err := t.unify(e.Value.Type(), ref.Inner, e.Span(), e.Value.Span(), span.None); err != nil {
		return err
	}
	t.setType(e, types.UnitType)
	return nil
}

func (t *Typer) typeWhile(e *ast.While) error {
	if err := t.typeExpr(e.Cond); err != nil {
		return err
	}
	if err := t.unify(e.Cond.Type(), types.BoolType, e.Cond.Span(), e.Cond.Span(), span.None); err != nil {
		return err
	}
	if err := t.typeExpr(e.Body); err != nil {
		return err
	}
	t.setType(e, types.UnitType)
	return nil
}
