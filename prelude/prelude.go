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

// Package prelude holds the fixed runtime surface every emitted C program
// needs regardless of what the source program does: the generic closure
// struct codegen uses for every first-class lambda value, and forward
// declarations for the handful of libc calls the generator itself emits
// (malloc for environment/closure allocation, printf for the built-in I/O
// primitives). spec.md §2 item 8 calls this a "standard library stub";
// nothing here is loaded from an actual C header, it is built once as
// cast top-defs so codegen can reference ClosureStructName and the libc
// declarations as ordinary AST nodes rather than printed text.
package prelude

import "github.com/fscala-lang/fscc/cast"

// ClosureStructName is the C struct tag codegen uses for every lowered
// lambda value (spec.md §4.3: "Lambda(...) -> closure struct { void* func;
// void* env; }").
const ClosureStructName = "fscc_closure"

// FuncField and EnvField name the closure struct's two fields.
const (
	FuncField = "func"
	EnvField  = "env"
)

// ClosureStruct returns the fixed `struct fscc_closure { void *func; void
// *env; };` definition. Both fields are opaque `void*`: the generator casts
// `func` to the right function-pointer alias at each call site (§4.3,
// "Apply" lowering) rather than giving the struct a concrete function type,
// since a single struct tag must serve every lambda type in the program.
func ClosureStruct() *cast.StructDef {
	voidPtr := cast.PointerTo(&cast.Void{})
	return &cast.StructDef{
		Name: ClosureStructName,
		Fields: []cast.Field{
			{Name: FuncField, Of: voidPtr},
			{Name: EnvField, Of: voidPtr},
		},
	}
}

// ClosureStructRef is the C type of a closure value: a pointer to the
// struct ClosureStruct defines, since every closure is heap-allocated at
// its use site (§4.3.1 step 5).
func ClosureStructRef() *cast.Pointer {
	return cast.PointerTo(&cast.StructRef{Name: ClosureStructName})
}

// MallocDecl is a forward declaration for `void *malloc(size_t)`, restated
// with `size_t` as the `int` base kind: the generator only ever passes a
// `sizeof(...)` result (cast.SizeOf), never a raw size literal wider than
// what a C `int` parameter can bind by value in the targets this generator
// produces source for.
func MallocDecl() *cast.FuncDef {
	return &cast.FuncDef{
		Name:   "malloc",
		Params: []cast.Field{{Name: "size", Of: &cast.Base{Kind: cast.Int}}},
		Ret:    cast.PointerTo(&cast.Void{}),
	}
}

// PrintfDecl is a forward declaration for the variadic `int printf(const
// char *fmt, ...)` used by the built-in I/O primitives (println family).
// cast has no variadic parameter list, so this stub is declared with its
// one fixed parameter; codegen's call-lowering for printf appends extra
// arguments directly onto the emitted cast.Call without consulting this
// definition's Params.
func PrintfDecl() *cast.FuncDef {
	return &cast.FuncDef{
		Name:   "printf",
		Params: []cast.Field{{Name: "fmt", Of: cast.PointerTo(&cast.Base{Kind: cast.Char})}},
		Ret:    &cast.Base{Kind: cast.Int},
	}
}

// ScanfDecl is a forward declaration for the variadic `int scanf(const char
// *fmt, ...)` the readInt/readFloat primitives lower to, the mirror image
// of PrintfDecl.
func ScanfDecl() *cast.FuncDef {
	return &cast.FuncDef{
		Name:   "scanf",
		Params: []cast.Field{{Name: "fmt", Of: cast.PointerTo(&cast.Base{Kind: cast.Char})}},
		Ret:    &cast.Base{Kind: cast.Int},
	}
}

// TopDefs returns the fixed prelude definitions in emission order: the
// closure struct first (other declarations may reference pointer types,
// but none reference the struct tag itself, so order among the four is
// not load-bearing beyond "struct before anything that names it").
func TopDefs() []cast.TopDef {
	return []cast.TopDef{ClosureStruct(), MallocDecl(), PrintfDecl(), ScanfDecl()}
}
