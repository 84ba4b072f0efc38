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

// Package cprint renders a codegen.Generator's output to textual C. It is a
// stand-in for the final pretty-printer (out of scope), kept minimal enough
// to give end-to-end tests something to assert against.
package cprint

import (
	"fmt"
	"strings"

	"github.com/fscala-lang/fscc/cast"
)

// Printer accumulates rendered C source, tracking brace depth the way
// itsfuad-Ferret__cgen.go's Generator tracks indent.
type Printer struct {
	buf       strings.Builder
	indent    int
	indentStr string
}

// New creates a Printer using a one-tab indent step.
func New() *Printer {
	return &Printer{indentStr: "\t"}
}

func (p *Printer) write(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(p.indentStr)
	}
}

// Print renders defs as a complete C translation unit: headers gated on
// which prelude primitives were actually used (spec.md §6 "The emitter
// adds #include <stdio.h> and #include <stdlib.h> when the generated code
// has requested printf or malloc"; scanf is folded into the same stdio.h
// gate, since it needs the same header), followed by every top-level
// definition in order.
func Print(defs []cast.TopDef, usedPrintf, usedScanf, usedMalloc bool) string {
	p := New()
	if usedPrintf || usedScanf {
		p.write("#include <stdio.h>\n")
	}
	if usedMalloc {
		p.write("#include <stdlib.h>\n")
	}
	p.write("\n")
	for i, d := range defs {
		if i > 0 {
			p.write("\n")
		}
		p.topDef(d)
	}
	return p.buf.String()
}

func (p *Printer) topDef(d cast.TopDef) {
	switch dt := d.(type) {
	case *cast.StructDef:
		p.write("struct %s {\n", dt.Name)
		p.indent++
		for _, f := range dt.Fields {
			p.writeIndent()
			p.write("%s;\n", p.declarator(f.Of, f.Name))
		}
		p.indent--
		p.write("};\n")
	case *cast.AliasDef:
		p.write("typedef %s;\n", p.declarator(dt.Of, dt.Name))
	case *cast.FuncDef:
		p.write("%s(%s)", p.declarator(dt.Ret, dt.Name), p.params(dt.Params))
		if dt.Body == nil {
			p.write(";\n")
			return
		}
		p.write(" {\n")
		p.indent++
		for _, s := range dt.Body {
			p.stmt(s)
		}
		p.indent--
		p.write("}\n")
	default:
		panic(fmt.Sprintf("cprint: unhandled top-def %T", d))
	}
}

func (p *Printer) params(fields []cast.Field) string {
	if len(fields) == 0 {
		return "void"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = p.declarator(f.Of, f.Name)
	}
	return strings.Join(parts, ", ")
}

// declarator composes a C declarator for name of type t, the one place a
// function-pointer type needs its special "Ret (*Name)(Params)" spelling
// rather than a plain "Type Name".
func (p *Printer) declarator(t cast.Type, name string) string {
	if ptr, ok := t.(*cast.Pointer); ok {
		if ft, ok := ptr.Elem.(*cast.FuncType); ok {
			params := make([]string, len(ft.Params))
			for i, pt := range ft.Params {
				params[i] = p.typeName(pt)
			}
			paramList := "void"
			if len(params) > 0 {
				paramList = strings.Join(params, ", ")
			}
			return fmt.Sprintf("%s (*%s)(%s)", p.typeName(ft.Ret), name, paramList)
		}
	}
	tn := p.typeName(t)
	if strings.HasSuffix(tn, "*") {
		return tn + name
	}
	return tn + " " + name
}

func (p *Printer) typeName(t cast.Type) string {
	switch tt := t.(type) {
	case *cast.Base:
		return tt.Kind.String()
	case *cast.Void:
		return "void"
	case *cast.Pointer:
		return p.typeName(tt.Elem) + " *"
	case *cast.StructRef:
		return "struct " + tt.Name
	case *cast.AliasRef:
		return tt.Name
	case *cast.FuncType:
		params := make([]string, len(tt.Params))
		for i, pt := range tt.Params {
			params[i] = p.typeName(pt)
		}
		return fmt.Sprintf("%s (*)(%s)", p.typeName(tt.Ret), strings.Join(params, ", "))
	default:
		panic(fmt.Sprintf("cprint: unhandled type %T", t))
	}
}

func (p *Printer) stmt(s cast.Stmt) {
	p.writeIndent()
	switch st := s.(type) {
	case *cast.Return:
		if st.Value == nil {
			p.write("return;\n")
			return
		}
		p.write("return %s;\n", p.expr(st.Value))
	case *cast.IfElse:
		p.write("if (%s) {\n", p.expr(st.Cond))
		p.indent++
		for _, s := range st.Then {
			p.stmt(s)
		}
		p.indent--
		p.writeIndent()
		if len(st.Else) == 0 {
			p.write("}\n")
			return
		}
		p.write("} else {\n")
		p.indent++
		for _, s := range st.Else {
			p.stmt(s)
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	case *cast.While:
		p.write("while (%s) {\n", p.expr(st.Cond))
		p.indent++
		for _, s := range st.Body {
			p.stmt(s)
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	case *cast.Break:
		p.write("break;\n")
	case *cast.Continue:
		p.write("continue;\n")
	case *cast.VarDef:
		if st.Init == nil {
			p.write("%s;\n", p.declarator(st.Of, st.Name))
			return
		}
		p.write("%s = %s;\n", p.declarator(st.Of, st.Name), p.expr(st.Init))
	case *cast.Assign:
		p.write("%s = %s;\n", p.expr(st.Target), p.expr(st.Value))
	case *cast.ExprStmt:
		p.write("%s;\n", p.expr(st.Value))
	default:
		panic(fmt.Sprintf("cprint: unhandled stmt %T", s))
	}
}

func (p *Printer) expr(e cast.Expr) string {
	switch et := e.(type) {
	case *cast.Literal:
		return et.Text
	case *cast.Ident:
		return et.Name
	case *cast.BinOp:
		return fmt.Sprintf("(%s %s %s)", p.expr(et.Lhs), et.Op, p.expr(et.Rhs))
	case *cast.UnOp:
		if et.Postfix {
			return fmt.Sprintf("(%s%s)", p.expr(et.Operand), et.Op)
		}
		return fmt.Sprintf("(%s%s)", et.Op, p.expr(et.Operand))
	case *cast.Select:
		if et.Arrow {
			return fmt.Sprintf("%s->%s", p.recvExpr(et.Recv), et.Field)
		}
		return fmt.Sprintf("%s.%s", p.recvExpr(et.Recv), et.Field)
	case *cast.Call:
		args := make([]string, len(et.Args))
		for i, a := range et.Args {
			args[i] = p.expr(a)
		}
		return fmt.Sprintf("%s(%s)", p.recvExpr(et.Callee), strings.Join(args, ", "))
	case *cast.Cast:
		return fmt.Sprintf("(%s)(%s)", p.typeName(et.To), p.expr(et.Operand))
	case *cast.SizeOf:
		return fmt.Sprintf("sizeof(%s)", p.typeName(et.Of))
	case *cast.Null:
		return "NULL"
	default:
		panic(fmt.Sprintf("cprint: unhandled expr %T", e))
	}
}

// recvExpr renders e as the receiver of a postfix -> / . / call, wrapping
// it in parens when e is a cast: a cast binds more loosely than postfix
// member access or a call in C, so "(T)(x)->f" would actually parse as
// "(T)((x)->f)" without the extra parens.
func (p *Printer) recvExpr(e cast.Expr) string {
	s := p.expr(e)
	if _, ok := e.(*cast.Cast); ok {
		return "(" + s + ")"
	}
	return s
}
