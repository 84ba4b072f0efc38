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
	"fmt"
	"strconv"
	"strings"
)

// ExprString renders e as a surface-like expression, for diagnostics and
// test failure messages.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr) {
	switch et := e.(type) {
	case *Literal:
		switch et.Kind {
		case IntLit:
			sb.WriteString(strconv.FormatInt(et.Int, 10))
		case FloatLit:
			sb.WriteString(strconv.FormatFloat(et.Float, 'g', -1, 64))
		case BoolLit:
			sb.WriteString(strconv.FormatBool(et.Bool))
		case StringLit:
			sb.WriteString(strconv.Quote(et.String))
		case UnitLit:
			sb.WriteString("()")
		}

	case *Ident:
		sb.WriteString(et.Ref.Name)

	case *Select:
		exprString(sb, et.Recv)
		sb.WriteByte('.')
		sb.WriteString(et.Member)

	case *Apply:
		exprString(sb, et.Callee)
		sb.WriteByte('(')
		for i, a := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, a)
		}
		sb.WriteByte(')')

	case *If:
		sb.WriteString("if ")
		exprString(sb, et.Cond)
		sb.WriteString(" then ")
		exprString(sb, et.Then)
		sb.WriteString(" else ")
		exprString(sb, et.Else)

	case *BinOp:
		exprString(sb, et.Lhs)
		sb.WriteByte(' ')
		sb.WriteString(et.Op)
		sb.WriteByte(' ')
		exprString(sb, et.Rhs)

	case *UnaryOp:
		sb.WriteString(et.Op)
		exprString(sb, et.Operand)

	case *ArrayLit:
		sb.WriteByte('[')
		exprString(sb, et.Len)
		sb.WriteByte(']')

	case *Lambda:
		sb.WriteByte('(')
		for i, p := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") => ")
		exprString(sb, et.Body)

	case *Block:
		sb.WriteString("{ ")
		for _, d := range et.Defs {
			defString(sb, d)
			sb.WriteString("; ")
		}
		exprString(sb, et.Result)
		sb.WriteString(" }")

	case *New:
		sb.WriteString("new ")
		sb.WriteString(et.Class.Name)
		sb.WriteByte('(')
		for i, a := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, a)
		}
		sb.WriteByte(')')

	case *Assign:
		sb.WriteString(et.Target.Name)
		sb.WriteString(" = ")
		exprString(sb, et.Value)

	case *AssignRef:
		exprString(sb, et.Target)
		sb.WriteString(" = ")
		exprString(sb, et.Value)

	case *While:
		sb.WriteString("while ")
		exprString(sb, et.Cond)
		sb.WriteString(" do ")
		exprString(sb, et.Body)

	default:
		fmt.Fprintf(sb, "<%s>", e.ExprName())
	}
}

func defString(sb *strings.Builder, d Def) {
	switch dt := d.(type) {
	case *LocalDef:
		if dt.Mutable {
			sb.WriteString("var ")
		} else {
			sb.WriteString("val ")
		}
		sb.WriteString(dt.Name)
		sb.WriteString(" = ")
		exprString(sb, dt.Value)
	case *ClassDef:
		sb.WriteString("class ")
		sb.WriteString(dt.Name)
	}
}
