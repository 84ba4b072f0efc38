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

// Package cast is the target-side C AST: the closed set of types,
// expressions, statements, and top-level definitions the code generator
// emits. Nothing in this package renders to text; internal/cprint does
// that for tests.
package cast

// Type is the closed variant of C types the generator emits.
type Type interface{ cType() }

// BaseKind enumerates the C base types used by the generator.
type BaseKind int

const (
	Int BaseKind = iota
	Double
	Char
	Bool
)

func (k BaseKind) String() string {
	switch k {
	case Int:
		return "int"
	case Double:
		return "double"
	case Char:
		return "char"
	case Bool:
		return "bool"
	default:
		return "<unknown base type>"
	}
}

// Base is a built-in scalar type.
type Base struct{ Kind BaseKind }

// Pointer is a pointer-to-Elem type.
type Pointer struct{ Elem Type }

// Void is the C void type, used only as a function return type or as
// Pointer{Elem: Void{}} for an opaque pointer.
type Void struct{}

// StructRef names a previously emitted struct definition.
type StructRef struct{ Name string }

// AliasRef names a previously emitted type alias.
type AliasRef struct{ Name string }

// FuncType is a function's signature, used when a function pointer type
// needs spelling out directly rather than through an AliasRef.
type FuncType struct {
	Params []Type
	Ret    Type
}

func (*Base) cType()      {}
func (*Pointer) cType()   {}
func (*Void) cType()      {}
func (*StructRef) cType() {}
func (*AliasRef) cType()  {}
func (*FuncType) cType()  {}

// PointerTo is a convenience constructor for Pointer{Elem: t}.
func PointerTo(t Type) *Pointer { return &Pointer{Elem: t} }
