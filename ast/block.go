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

import "github.com/fscala-lang/fscc/span"

// Block is `{ d1; ...; dn; e }`: a recursive group of local definitions
// followed by a trailing result expression. The empty-Defs case is the
// non-recursive fast path the typer's recursive handling degenerates to.
type Block struct {
	base
	Defs   []Def
	Result Expr
}

func NewBlock(sp span.Span, defs []Def, result Expr) *Block {
	return &Block{base: base{sp: sp}, Defs: defs, Result: result}
}

func (e *Block) ExprName() string { return "Block" }

// Program is a whole compilation unit: a flat list of top-level
// definitions (classes and vals), one of which must resolve to a
// `main: () => Unit` binding.
type Program struct {
	Defs []Def
	sp   span.Span
}

func NewProgram(sp span.Span, defs []Def) *Program {
	return &Program{Defs: defs, sp: sp}
}

func (p *Program) Span() span.Span { return p.sp }
