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

// ClassDef is a class declaration: a constructor parameter list plus a
// body of val/var members (methods are just lambda-valued members).
//
// TypesDef is filled in once the typer finishes checking the body; it is
// the identity object shared by every types.Class/types.ClassTypeVar that
// refers to this definition.
type ClassDef struct {
	Name       string
	CtorParams []*Param
	Members    []*LocalDef
	Sym        symtab.ID
	TypesDef   *types.ClassDef
	sp         span.Span
}

func NewClassDef(sp span.Span, name string, ctorParams []*Param, members []*LocalDef) *ClassDef {
	return &ClassDef{Name: name, CtorParams: ctorParams, Members: members, Sym: symtab.Invalid, sp: sp}
}

func (d *ClassDef) DefName() string { return d.Name }
func (d *ClassDef) Span() span.Span { return d.sp }

// Member looks up a member definition by name.
func (d *ClassDef) Member(name string) (*LocalDef, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
