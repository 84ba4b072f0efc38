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

// Package bundle packages a generated C expression together with whatever
// prefix statements it depends on, so the code generator can thread
// side-effecting lowerings (a malloc'd closure, an if's result temporary)
// through expression position without losing the statements that build
// them.
package bundle

import "github.com/fscala-lang/fscc/cast"

// Bundle is the closed variant of code-generation results.
type Bundle interface {
	// GetExpr returns the value-producing expression, or nil if the bundle
	// carries no value (PureBlock).
	GetExpr() cast.Expr
	// GetBlock returns the statements that must execute before GetExpr is
	// evaluated.
	GetBlock() []cast.Stmt
}

// PureExpr is an expression with no side prefix.
type PureExpr struct{ E cast.Expr }

func (b *PureExpr) GetExpr() cast.Expr   { return b.E }
func (b *PureExpr) GetBlock() []cast.Stmt { return nil }

// Block is an expression with a prefix that must run first.
type Block struct {
	E      cast.Expr
	Prefix []cast.Stmt
}

func (b *Block) GetExpr() cast.Expr    { return b.E }
func (b *Block) GetBlock() []cast.Stmt { return b.Prefix }

// PureBlock is a statement sequence with no result expression.
type PureBlock struct{ Stmts []cast.Stmt }

func (b *PureBlock) GetExpr() cast.Expr    { return nil }
func (b *PureBlock) GetBlock() []cast.Stmt { return b.Stmts }

// Variable's result is the named local declared by Def.
type Variable struct {
	Def    *cast.VarDef
	Prefix []cast.Stmt
}

func (b *Variable) GetExpr() cast.Expr    { return &cast.Ident{Name: b.Def.Name} }
func (b *Variable) GetBlock() []cast.Stmt { return b.Prefix }

// Closure's result is a { func, env } value; EnvStruct and Func are the
// top-level definitions the use site's Prefix allocates against.
type Closure struct {
	E         cast.Expr
	Prefix    []cast.Stmt
	EnvStruct *cast.StructDef
	Func      *cast.FuncDef
}

func (b *Closure) GetExpr() cast.Expr    { return b.E }
func (b *Closure) GetBlock() []cast.Stmt { return b.Prefix }

// SimpleFunc's result is a non-capturing function identifier; no
// environment is allocated.
type SimpleFunc struct {
	E    cast.Expr
	Func *cast.FuncDef
}

func (b *SimpleFunc) GetExpr() cast.Expr    { return b.E }
func (b *SimpleFunc) GetBlock() []cast.Stmt { return nil }

// Rec is a placeholder for a binding whose function has not been emitted
// yet. Name is the mangled C identifier fixed before the binding's lambda
// is lowered, so sibling recursive bindings can reference it immediately;
// the block and expr are otherwise empty.
type Rec struct{ Name string }

func (b *Rec) GetExpr() cast.Expr    { return &cast.Ident{Name: b.Name} }
func (b *Rec) GetBlock() []cast.Stmt { return nil }

// Lift appends b's prefix statements onto into and returns b's result
// expression, the standard way to splice a bundle into an ambient
// statement list.
func Lift(b Bundle, into *[]cast.Stmt) cast.Expr {
	*into = append(*into, b.GetBlock()...)
	return b.GetExpr()
}
