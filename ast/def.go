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
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/types"
)

// Def is a binding that introduces a symbol rather than producing a value
// in expression position: a block's val/var entries and a class
// definition both satisfy it.
type Def interface {
	DefName() string
	Span() span.Span
}

var (
	_ Def = (*LocalDef)(nil)
	_ Def = (*ClassDef)(nil)
)

// LocalDef is a val or var binding, either at the top level of a program
// or inside a block's recursive group.
type LocalDef struct {
	Name       string
	Mutable    bool
	Ascription types.Type // nil if not written by the user
	Value      Expr
	Sym        symtab.ID
	// Typ is the binding's established type: a fresh X-prefixed variable
	// while the enclosing group is being pre-declared, then the body's
	// actual type once typing finishes. Identifier resolution reads this
	// rather than Value.Type(), so the type is visible before Value itself
	// has been typed (forward references during recursive typing).
	Typ types.Type
	sp  span.Span
}

func NewLocalDef(sp span.Span, name string, mutable bool, ascription types.Type, value Expr) *LocalDef {
	return &LocalDef{Name: name, Mutable: mutable, Ascription: ascription, Value: value, Sym: symtab.Invalid, sp: sp}
}

func (d *LocalDef) DefName() string  { return d.Name }
func (d *LocalDef) Span() span.Span  { return d.sp }
