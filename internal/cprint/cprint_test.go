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

package cprint

import (
	"strings"
	"testing"

	"github.com/fscala-lang/fscc/cast"
	"github.com/nalgeon/be"
)

func TestPrintStructDef(t *testing.T) {
	def := &cast.StructDef{Name: "point_struct", Fields: []cast.Field{
		{Name: "x", Of: &cast.Base{Kind: cast.Int}},
		{Name: "y", Of: &cast.Base{Kind: cast.Int}},
	}}
	out := Print([]cast.TopDef{def}, false, false, false)
	be.True(t, strings.Contains(out, "struct point_struct {"))
	be.True(t, strings.Contains(out, "int x;"))
	be.True(t, strings.Contains(out, "int y;"))
	be.True(t, !strings.Contains(out, "#include"))
}

func TestPrintIncludesGatedOnUsage(t *testing.T) {
	out := Print(nil, true, false, false)
	be.True(t, strings.Contains(out, "#include <stdio.h>"))
	be.True(t, !strings.Contains(out, "#include <stdlib.h>"))

	out = Print(nil, false, false, true)
	be.True(t, !strings.Contains(out, "#include <stdio.h>"))
	be.True(t, strings.Contains(out, "#include <stdlib.h>"))

	out = Print(nil, false, true, false)
	be.True(t, strings.Contains(out, "#include <stdio.h>"))
}

func TestPrintFuncDefWithBody(t *testing.T) {
	fn := &cast.FuncDef{
		Name: "add",
		Params: []cast.Field{
			{Name: "a", Of: &cast.Base{Kind: cast.Int}},
			{Name: "b", Of: &cast.Base{Kind: cast.Int}},
		},
		Ret: &cast.Base{Kind: cast.Int},
		Body: []cast.Stmt{
			&cast.Return{Value: &cast.BinOp{Op: "+", Lhs: &cast.Ident{Name: "a"}, Rhs: &cast.Ident{Name: "b"}}},
		},
	}
	out := Print([]cast.TopDef{fn}, false, false, false)
	be.True(t, strings.Contains(out, "int add(int a, int b) {"))
	be.True(t, strings.Contains(out, "return (a + b);"))
}

func TestPrintFuncDeclHasNoBody(t *testing.T) {
	decl := &cast.FuncDef{Name: "malloc", Params: []cast.Field{{Name: "size", Of: &cast.Base{Kind: cast.Int}}}, Ret: cast.PointerTo(&cast.Void{})}
	out := Print([]cast.TopDef{decl}, false, false, false)
	be.True(t, strings.Contains(out, "void *malloc(int size);"))
}

func TestPrintFuncPointerAlias(t *testing.T) {
	alias := &cast.AliasDef{
		Name: "fn_t__0",
		Of: cast.PointerTo(&cast.FuncType{
			Params: []cast.Type{cast.PointerTo(&cast.Void{})},
			Ret:    &cast.Void{},
		}),
	}
	out := Print([]cast.TopDef{alias}, false, false, false)
	be.Equal(t, strings.TrimSpace(strings.SplitN(out, "\n", 2)[1]), "typedef void (*fn_t__0)(void *);")
}

func TestPrintIfElseAndWhile(t *testing.T) {
	fn := &cast.FuncDef{
		Name: "loop",
		Ret:  &cast.Void{},
		Body: []cast.Stmt{
			&cast.While{
				Cond: &cast.Literal{Text: "1"},
				Body: []cast.Stmt{
					&cast.IfElse{
						Cond: &cast.Ident{Name: "done"},
						Then: []cast.Stmt{&cast.Break{}},
						Else: []cast.Stmt{&cast.Continue{}},
					},
				},
			},
		},
	}
	out := Print([]cast.TopDef{fn}, false, false, false)
	be.True(t, strings.Contains(out, "while (1) {"))
	be.True(t, strings.Contains(out, "if (done) {"))
	be.True(t, strings.Contains(out, "break;"))
	be.True(t, strings.Contains(out, "} else {"))
	be.True(t, strings.Contains(out, "continue;"))
}

func TestPrintArrowAndCast(t *testing.T) {
	e := cast.Arrow(&cast.Cast{To: cast.PointerTo(&cast.StructRef{Name: "env"}), Operand: &cast.Ident{Name: "env"}}, "cap__0")
	p := New()
	got := p.expr(e)
	be.Equal(t, got, "((struct env *)(env))->cap__0")
}
