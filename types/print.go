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

package types

import "strings"

// String renders t for diagnostics, following through Var links so error
// messages show the resolved type rather than a bare type-variable name
// whenever one is known.
func String(t Type) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t Type) {
	switch v := t.(type) {
	case nil:
		b.WriteString("<nil>")
	case Ground:
		b.WriteString(v.Kind.String())
	case *Array:
		b.WriteString("Array[")
		writeType(b, v.Elem)
		b.WriteString("]")
	case *Lambda:
		b.WriteString("(")
		for i, p := range v.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, p)
		}
		b.WriteString(") => ")
		writeType(b, v.Ret)
	case *Class:
		b.WriteString(v.Def.Name)
	case *ClassTypeVar:
		b.WriteString(v.Def.Name)
		b.WriteString("{")
		first := true
		v.Predicates.Range(func(name string, required []Type) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(name)
			if len(required) > 0 {
				b.WriteString(": ")
				writeType(b, required[0])
			}
			return true
		})
		b.WriteString("}")
	case *Var:
		if v.IsLinkVar() {
			writeType(b, v.Link())
		} else {
			b.WriteString(v.String())
		}
	case *SymbolType:
		b.WriteString(v.Ref.Name)
	case *Ref:
		b.WriteString("ref ")
		writeType(b, v.Inner)
	default:
		b.WriteString(t.TypeName())
	}
}
