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

package typer

import (
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
)

// Builtin is the dealias installed for one of the ground primitive
// bindings spec.md §1/§6 lists as surface I/O primitives a program can
// call directly: readInt, readFloat, printlnInt, printlnFloat, printf.
// printf is given a fixed two-argument ground signature (a String format
// and one Int substitution) rather than its real C variadic arity, since
// this type system has no notion of a variadic or overloaded binding;
// malloc has no surface form at all; it is purely the generator's own
// collaborator for closure-environment allocation, never a name a source
// program resolves.
type Builtin struct {
	Name string
	Typ  *types.Lambda
}

var builtinSignatures = []struct {
	name   string
	params []types.Type
	ret    types.Type
}{
	{"readInt", nil, types.IntType},
	{"readFloat", nil, types.FloatType},
	{"printlnInt", []types.Type{types.IntType}, types.UnitType},
	{"printlnFloat", []types.Type{types.FloatType}, types.UnitType},
	{"printf", []types.Type{types.StringType, types.IntType}, types.UnitType},
}

// predeclareBuiltins binds each ground primitive into the program's
// outermost scope frame before any top-level definition is declared. A
// program that declares its own top-level binding of the same name simply
// wins, via the ordinary same-frame last-wins rule symtab.Scope.AddSymbol
// already applies everywhere else.
func (t *Typer) predeclareBuiltins() {
	for _, b := range builtinSignatures {
		id := t.Scope.AddSymbol(b.name, span.None)
		t.Table.SetDealias(id, &Builtin{Name: b.name, Typ: &types.Lambda{Params: b.params, Ret: b.ret}})
	}
}
