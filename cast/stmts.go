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

// Stmt is the closed variant of C statements.
type Stmt interface{ cStmt() }

// Return is "return Value;", or a bare "return;" when Value is nil.
type Return struct{ Value Expr }

// IfElse is "if (Cond) { Then } else { Else }"; Else may be empty.
type IfElse struct {
	Cond       Expr
	Then, Else []Stmt
}

// While is "while (Cond) { Body }".
type While struct {
	Cond Expr
	Body []Stmt
}

type Break struct{}
type Continue struct{}

// VarDef is a local variable declaration, "Of Name = Init;" or, when Init
// is nil, "Of Name;".
type VarDef struct {
	Name string
	Of   Type
	Init Expr
}

// Assign is "Target = Value;".
type Assign struct {
	Target Expr
	Value  Expr
}

// ExprStmt wraps a bare expression used for its side effect.
type ExprStmt struct{ Value Expr }

func (*Return) cStmt()   {}
func (*IfElse) cStmt()   {}
func (*While) cStmt()    {}
func (*Break) cStmt()    {}
func (*Continue) cStmt() {}
func (*VarDef) cStmt()   {}
func (*Assign) cStmt()   {}
func (*ExprStmt) cStmt() {}
