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

package codegen

import (
	"strings"

	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/prelude"
	"github.com/fscala-lang/fscc/types"
)

// cType lowers a surface type to its C representation (spec.md §4.3
// "Types -> C"), always in *value* position: a Lambda always becomes the
// generic closure struct pointer here, never a function-pointer alias (the
// alias form is only used to cast a closure's func field at a call site,
// handled separately by funcSignature/funcTypeAlias in lowerApply and
// callClosureUnit).
func (g *Generator) cType(t types.Type) cast.Type {
	switch tt := types.RealType(t).(type) {
	case types.Ground:
		switch tt.Kind {
		case types.Int:
			return &cast.Base{Kind: cast.Int}
		case types.Float:
			return &cast.Base{Kind: cast.Double}
		case types.Bool:
			// spec.md §4.3 states the mapping plainly as "Bool -> int":
			// Featherweight Scala booleans are represented as C ints
			// throughout, not the separate cast.Bool base kind.
			return &cast.Base{Kind: cast.Int}
		case types.Str:
			return cast.PointerTo(&cast.Base{Kind: cast.Char})
		case types.Unit:
			return &cast.Void{}
		}
	case *types.Array:
		return cast.PointerTo(g.cType(tt.Elem))
	case *types.Lambda:
		return prelude.ClosureStructRef()
	case *types.Class:
		return cast.PointerTo(&cast.StructRef{Name: classStructName(tt.Def.Name)})
	case *types.Ref:
		return g.cType(tt.Inner)
	}
	panic("codegen: cType: unhandled type " + types.RealType(t).TypeName())
}

// classStructName is the C struct tag for a class's generated struct,
// shared by class.go's class lowering and cType's Class case.
func classStructName(name string) string { return name + "_struct" }

// funcSignature renders a stable string key for a C function signature,
// used to key the function-pointer-alias cache. A hand-built string is
// used rather than the cast.Type values themselves since cast.Type is not
// guaranteed comparable/hashable across all of its variants (e.g. a
// *cast.StructRef embedded inside a *cast.Pointer).
func funcSignature(params []cast.Type, ret cast.Type) string {
	var b strings.Builder
	b.WriteString(typeKey(ret))
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(typeKey(p))
	}
	b.WriteByte(')')
	return b.String()
}

func typeKey(t cast.Type) string {
	switch tt := t.(type) {
	case *cast.Base:
		return tt.Kind.String()
	case *cast.Pointer:
		return typeKey(tt.Elem) + "*"
	case *cast.Void:
		return "void"
	case *cast.StructRef:
		return "struct " + tt.Name
	case *cast.AliasRef:
		return tt.Name
	case *cast.FuncType:
		return funcSignature(tt.Params, tt.Ret)
	default:
		return "?"
	}
}

// funcTypeAlias returns the cached type-alias definition for a function
// pointer with the given (env-inclusive) signature, minting and emitting a
// fresh one on first use (spec.md §4.3 context point (iv)).
func (g *Generator) funcTypeAlias(params []cast.Type, ret cast.Type) *cast.AliasDef {
	key := funcSignature(params, ret)
	if a, ok := g.funcTypeAliases[key]; ok {
		return a
	}
	name := g.Namer.UniqueCName("fn_t")
	alias := &cast.AliasDef{
		Name: name,
		Of:   cast.PointerTo(&cast.FuncType{Params: params, Ret: ret}),
	}
	g.funcTypeAliases[key] = alias
	g.emit(alias)
	return alias
}
