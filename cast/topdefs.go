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

// TopDef is the closed variant of C top-level definitions.
type TopDef interface {
	cTopDef()
	TopDefName() string
}

// Field is a struct field or a function parameter, depending on context.
type Field struct {
	Name string
	Of   Type
}

// StructDef is "struct Name { Fields... };".
type StructDef struct {
	Name   string
	Fields []Field
}

// AliasDef is a typedef, "typedef Of Name;".
type AliasDef struct {
	Name string
	Of   Type
}

// FuncDef is a function definition. Body is nil for a forward declaration.
type FuncDef struct {
	Name   string
	Params []Field
	Ret    Type
	Body   []Stmt
}

func (*StructDef) cTopDef() {}
func (*AliasDef) cTopDef()  {}
func (*FuncDef) cTopDef()   {}

func (d *StructDef) TopDefName() string { return d.Name }
func (d *AliasDef) TopDefName() string  { return d.Name }
func (d *FuncDef) TopDefName() string   { return d.Name }
