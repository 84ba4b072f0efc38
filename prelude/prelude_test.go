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

package prelude

import (
	"testing"

	"github.com/fscala-lang/fscc/cast"
)

func TestClosureStructShape(t *testing.T) {
	def := ClosureStruct()
	if def.Name != ClosureStructName {
		t.Fatalf("got struct name %q, want %q", def.Name, ClosureStructName)
	}
	if len(def.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(def.Fields))
	}
	for i, want := range []string{FuncField, EnvField} {
		if def.Fields[i].Name != want {
			t.Fatalf("field %d: got %q, want %q", i, def.Fields[i].Name, want)
		}
		ptr, ok := def.Fields[i].Of.(*cast.Pointer)
		if !ok {
			t.Fatalf("field %d: got %T, want *cast.Pointer", i, def.Fields[i].Of)
		}
		if _, ok := ptr.Elem.(*cast.Void); !ok {
			t.Fatalf("field %d: pointer elem is %T, want *cast.Void", i, ptr.Elem)
		}
	}
}

func TestClosureStructRefPointsAtClosureStruct(t *testing.T) {
	ref := ClosureStructRef()
	inner, ok := ref.Elem.(*cast.StructRef)
	if !ok {
		t.Fatalf("got %T, want *cast.StructRef", ref.Elem)
	}
	if inner.Name != ClosureStructName {
		t.Fatalf("got %q, want %q", inner.Name, ClosureStructName)
	}
}

func TestMallocDeclReturnsVoidPointer(t *testing.T) {
	decl := MallocDecl()
	if decl.Name != "malloc" {
		t.Fatalf("got %q, want malloc", decl.Name)
	}
	ptr, ok := decl.Ret.(*cast.Pointer)
	if !ok {
		t.Fatalf("got %T, want *cast.Pointer", decl.Ret)
	}
	if _, ok := ptr.Elem.(*cast.Void); !ok {
		t.Fatalf("malloc return elem is %T, want *cast.Void", ptr.Elem)
	}
}

func TestPrintfDeclReturnsInt(t *testing.T) {
	decl := PrintfDecl()
	if decl.Name != "printf" {
		t.Fatalf("got %q, want printf", decl.Name)
	}
	base, ok := decl.Ret.(*cast.Base)
	if !ok || base.Kind != cast.Int {
		t.Fatalf("got %#v, want int base type", decl.Ret)
	}
}

func TestScanfDeclReturnsInt(t *testing.T) {
	decl := ScanfDecl()
	if decl.Name != "scanf" {
		t.Fatalf("got %q, want scanf", decl.Name)
	}
	base, ok := decl.Ret.(*cast.Base)
	if !ok || base.Kind != cast.Int {
		t.Fatalf("got %#v, want int base type", decl.Ret)
	}
}

func TestTopDefsOrderAndContents(t *testing.T) {
	defs := TopDefs()
	if len(defs) != 4 {
		t.Fatalf("got %d top-defs, want 4", len(defs))
	}
	if _, ok := defs[0].(*cast.StructDef); !ok {
		t.Fatalf("first top-def is %T, want *cast.StructDef", defs[0])
	}
	names := make(map[string]bool)
	for _, d := range defs {
		names[d.TopDefName()] = true
	}
	for _, want := range []string{ClosureStructName, "malloc", "printf", "scanf"} {
		if !names[want] {
			t.Fatalf("missing top-def named %q", want)
		}
	}
}
