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

package ast

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/types"
)

func typesCopyRef(ref *types.SymRef) *types.SymRef { return types.UnresolvedRef(ref.Name) }

// CopyExpr deep-copies e, dropping any type/bundle annotations from a
// previous pass so the result can be re-typed and re-lowered from scratch.
// Symbol references are copied as unresolved names; the typer re-resolves
// them against whatever scope the copy is checked in.
func CopyExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch et := e.(type) {
	case *Literal:
		c := *et
		c.inferred, c.code = nil, nil
		return &c

	case *Ident:
		return NewIdent(et.sp, et.Ref.Name)

	case *Select:
		c := &Select{base: base{sp: et.sp}, Member: et.Member}
		c.Recv = CopyExpr(et.Recv)
		return c

	case *Apply:
		c := &Apply{base: base{sp: et.sp}, Callee: CopyExpr(et.Callee)}
		for _, a := range et.Args {
			c.Args = append(c.Args, CopyExpr(a))
		}
		return c

	case *If:
		return &If{base: base{sp: et.sp}, Cond: CopyExpr(et.Cond), Then: CopyExpr(et.Then), Else: CopyExpr(et.Else)}

	case *BinOp:
		return &BinOp{base: base{sp: et.sp}, Op: et.Op, Lhs: CopyExpr(et.Lhs), Rhs: CopyExpr(et.Rhs)}

	case *UnaryOp:
		return &UnaryOp{base: base{sp: et.sp}, Op: et.Op, Operand: CopyExpr(et.Operand)}

	case *ArrayLit:
		return &ArrayLit{base: base{sp: et.sp}, Len: CopyExpr(et.Len)}

	case *Lambda:
		params := make([]*Param, len(et.Params))
		for i, p := range et.Params {
			params[i] = NewParam(p.sp, p.Name, p.Ascription)
		}
		c := NewLambda(et.sp, params, et.RetAscription, CopyExpr(et.Body))
		c.FreeNames = set.New[symtab.ID](0)
		return c

	case *Block:
		defs := make([]Def, len(et.Defs))
		for i, d := range et.Defs {
			defs[i] = copyDef(d)
		}
		return NewBlock(et.sp, defs, CopyExpr(et.Result))

	case *New:
		c := &New{base: base{sp: et.sp}, Class: typesCopyRef(et.Class)}
		for _, a := range et.Args {
			c.Args = append(c.Args, CopyExpr(a))
		}
		return c

	case *Assign:
		return &Assign{base: base{sp: et.sp}, Target: typesCopyRef(et.Target), Value: CopyExpr(et.Value)}

	case *AssignRef:
		return &AssignRef{base: base{sp: et.sp}, Target: CopyExpr(et.Target), Value: CopyExpr(et.Value)}

	case *While:
		return &While{base: base{sp: et.sp}, Cond: CopyExpr(et.Cond), Body: CopyExpr(et.Body)}

	default:
		return e
	}
}

func copyDef(d Def) Def {
	switch dt := d.(type) {
	case *LocalDef:
		return NewLocalDef(dt.sp, dt.Name, dt.Mutable, dt.Ascription, CopyExpr(dt.Value))
	case *ClassDef:
		params := make([]*Param, len(dt.CtorParams))
		for i, p := range dt.CtorParams {
			params[i] = NewParam(p.sp, p.Name, p.Ascription)
		}
		members := make([]*LocalDef, len(dt.Members))
		for i, m := range dt.Members {
			members[i] = copyDef(m).(*LocalDef)
		}
		return NewClassDef(dt.sp, dt.Name, params, members)
	default:
		return d
	}
}
