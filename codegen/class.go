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
	"github.com/fscala-lang/fscc/bundle"
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/symtab"
)

// lowerClass lowers one class definition to its struct layout and
// constructor function (spec.md §4.3.2). A member is stored as a struct
// field regardless of whether it is a plain value or a method (a
// lambda-valued member); cType already maps a Lambda type to the generic
// closure-struct pointer, so no separate case is needed for the field
// declarations themselves. References to another member from inside a
// method body are collapsed to a single injected self field rather than
// an ordinary per-name capture (currentClassMembers), per spec.md's "drop
// class members, route through self" rule.
func (g *Generator) lowerClass(cd *ast.ClassDef) *Error {
	structName := classStructName(cd.Name)

	fields := make([]cast.Field, 0, len(cd.Members))
	members := make(map[symtab.ID]string, len(cd.Members))
	for _, m := range cd.Members {
		fields = append(fields, cast.Field{Name: m.Name, Of: g.cType(m.Typ)})
		members[m.Sym] = m.Name
	}
	g.emit(&cast.StructDef{Name: structName, Fields: fields})

	params := make([]cast.Field, 0, len(cd.CtorParams))
	for _, p := range cd.CtorParams {
		params = append(params, cast.Field{Name: p.Name, Of: g.cType(p.Typ)})
	}

	prevMembers, prevStruct := g.currentClassMembers, g.currentClassStruct
	g.currentClassMembers, g.currentClassStruct = members, structName
	defer func() { g.currentClassMembers, g.currentClassStruct = prevMembers, prevStruct }()

	selfVar := g.Namer.UniqueCName("self")
	bodyCtx := &genContext{selfAccess: &cast.Ident{Name: selfVar}}
	g.pushContext(bodyCtx)
	for _, p := range cd.CtorParams {
		bodyCtx.idents[p.Sym] = &cast.Ident{Name: p.Name}
	}

	structRef := &cast.StructRef{Name: structName}
	body := []cast.Stmt{
		&cast.VarDef{
			Name: selfVar,
			Of:   cast.PointerTo(structRef),
			Init: &cast.Cast{To: cast.PointerTo(structRef), Operand: &cast.Call{
				Callee: &cast.Ident{Name: "malloc"},
				Args:   []cast.Expr{&cast.SizeOf{Of: structRef}},
			}},
		},
	}
	g.UsedMalloc = true

	memberStmts, err := g.lowerClassMembers(cd.Members, bodyCtx.selfAccess)
	g.popContext()
	if err != nil {
		return err
	}
	body = append(body, memberStmts...)
	body = append(body, &cast.Return{Value: &cast.Ident{Name: selfVar}})

	g.emit(&cast.FuncDef{
		Name:   structName + "_new",
		Params: params,
		Ret:    cast.PointerTo(structRef),
		Body:   body,
	})
	return nil
}

// lowerClassMembers assigns every member's value directly into its struct
// field on selfExpr, using the same three-phase protocol lowerLocalGroup
// uses for block locals: every member's symbol is bound to its final
// self->field expression before any member's value is lowered (step 1,
// here trivial since the field is already the binding's permanent home,
// unlike a block local's pre-minted temporary); each member is then
// assigned in source order (step 2); and every lambda member's deferred
// environment-capture writes are flushed once at the end (step 3). A
// method assigning into its own field is always safe in step 2 itself
// (never deferred) since nothing needs to read self->thisMethod during
// its own construction, only later through a call.
func (g *Generator) lowerClassMembers(members []*ast.LocalDef, selfExpr cast.Expr) ([]cast.Stmt, *Error) {
	if err := g.checkForwardRefs(members); err != nil {
		return nil, err
	}

	for _, m := range members {
		g.bindIdent(m.Sym, cast.Arrow(selfExpr, m.Name))
	}

	var stmts, deferred []cast.Stmt
	for _, m := range members {
		field := cast.Arrow(selfExpr, m.Name)
		if lam, ok := m.Value.(*ast.Lambda); ok {
			temp := g.Namer.UniqueCName(m.Name)
			parts := g.buildLambda(lam, temp)
			stmts = append(stmts, parts.setup...)
			stmts = append(stmts, &cast.Assign{Target: field, Value: &cast.Ident{Name: temp}})
			deferred = append(deferred, parts.fieldAssign...)
			continue
		}
		b := g.lowerExpr(m.Value)
		value := bundle.Lift(b, &stmts)
		stmts = append(stmts, &cast.Assign{Target: field, Value: value})
	}

	return append(stmts, deferred...), nil
}
