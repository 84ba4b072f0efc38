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

package cast

// Expr is the closed variant of C expressions.
type Expr interface{ cExpr() }

// Literal is a preformatted literal token (an int/float/string/char
// literal's already-rendered text). Formatting rules for numeric literals
// live in codegen, not here.
type Literal struct{ Text string }

// Ident references a C identifier already in scope.
type Ident struct{ Name string }

// BinOp is a binary expression using a C operator token verbatim.
type BinOp struct {
	Op       string
	Lhs, Rhs Expr
}

// UnOp is a unary expression; Postfix controls whether Op is written before
// or after Operand (only relevant for ++/-- which this generator never
// emits today, but the shape is kept general).
type UnOp struct {
	Op      string
	Operand Expr
	Postfix bool
}

// Select is a field access, "." for a struct value or "->" for a pointer,
// chosen by Arrow.
type Select struct {
	Recv  Expr
	Field string
	Arrow bool
}

// Call is a function call expression.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Cast is an explicit C cast, "(To)Operand".
type Cast struct {
	To      Type
	Operand Expr
}

// SizeOf is "sizeof(Of)".
type SizeOf struct{ Of Type }

// Null is the literal "NULL".
type Null struct{}

func (*Literal) cExpr() {}
func (*Ident) cExpr()   {}
func (*BinOp) cExpr()   {}
func (*UnOp) cExpr()    {}
func (*Select) cExpr()  {}
func (*Call) cExpr()    {}
func (*Cast) cExpr()    {}
func (*SizeOf) cExpr()  {}
func (*Null) cExpr()    {}

// Arrow is a convenience constructor for a pointer field access.
func Arrow(recv Expr, field string) *Select {
	return &Select{Recv: recv, Field: field, Arrow: true}
}

// Dot is a convenience constructor for a value field access.
func Dot(recv Expr, field string) *Select {
	return &Select{Recv: recv, Field: field, Arrow: false}
}
