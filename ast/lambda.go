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

	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/types"
)

// Param is a lambda parameter or a class constructor parameter.
type Param struct {
	Name       string
	Ascription types.Type
	Sym        symtab.ID
	// Typ is Ascription with any SymbolType resolved to a concrete Class;
	// filled in by the typer when the parameter is brought into scope.
	Typ types.Type
	sp  span.Span
}

func NewParam(sp span.Span, name string, ascription types.Type) *Param {
	return &Param{Name: name, Ascription: ascription, Sym: symtab.Invalid, sp: sp}
}

func (p *Param) Span() span.Span { return p.sp }

// Lambda is a first-class function literal. FreeNames is populated by the
// typer as the body is walked: every symbol that resolves above the
// lambda's own frame is recorded there (spec.md §4.2 "Free-name
// tracking").
type Lambda struct {
	base
	Params        []*Param
	RetAscription types.Type // nil if the lambda has no ascribed return type
	Body          Expr
	FreeNames     *set.Set[symtab.ID]
}

func NewLambda(sp span.Span, params []*Param, retAscription types.Type, body Expr) *Lambda {
	return &Lambda{
		base:          base{sp: sp},
		Params:        params,
		RetAscription: retAscription,
		Body:          body,
		FreeNames:     set.New[symtab.ID](0),
	}
}

func (e *Lambda) ExprName() string { return "Lambda" }

// AddFreeName records name's resolved symbol as captured by e, if it is
// not one of e's own parameters.
func (e *Lambda) AddFreeName(id symtab.ID) {
	for _, p := range e.Params {
		if p.Sym == id {
			return
		}
	}
	e.FreeNames.Insert(id)
}
