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

// Package typer implements the type checker described in spec.md §4.2: it
// walks an *ast.Program, resolving symbols against a symtab.Scope,
// emitting constraints into a solver.Solver, and annotating every node in
// place with its inferred type.
package typer

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/fscala-lang/fscc/ast"
	"github.com/fscala-lang/fscc/solver"
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/symtab"
	"github.com/fscala-lang/fscc/types"
)

// Error is a type error, carrying the primary span (spec.md §7). errorAt
// leaves LhsSpan/RhsSpan zero; a unification failure instead reaches the
// caller as a wrapped *solver.Error, which carries the two operand
// sub-spans.
type Error struct {
	Message  string
	Span     span.Span
	LhsSpan  span.Span
	RhsSpan  span.Span
	node     any
}

func (e *Error) Error() string { return e.Message }

// Debug dumps the node that triggered the error, for test failures and
// driver-side diagnostics.
func (e *Error) Debug() string {
	if e.node == nil {
		return e.Message
	}
	return e.Message + "\n" + spew.Sdump(e.node)
}

func errorAt(sp span.Span, node any, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: sp, node: node}
}

// lambdaCtx tracks one currently-open lambda's free-name capture boundary:
// Depth is the scope depth at which its parameter frame was pushed, so any
// symbol resolved above that depth is free with respect to it.
type lambdaCtx struct {
	node  *ast.Lambda
	depth int
}

// frame is a typing scope frame: every node typed while it is the
// innermost frame is recorded here, so force-instantiate can revisit all
// of them once the frame's group has been fully typed.
type frame struct {
	nodes []ast.Expr
	defs  []*ast.LocalDef
}

// Typer is the type-checking context for one compilation.
type Typer struct {
	Solver      *solver.Solver
	Table       *symtab.Table
	Scope       *symtab.Scope
	frames      []*frame
	lambdas     []*lambdaCtx
	nextClassID int

	// currentClassDef/selfCTV track the class currently being typed (if
	// any), so a member ascription naming that same class resolves to a
	// shared ClassTypeVar instead of a premature concrete Class whose
	// Members list is still being built (spec.md §4.2 Class rule).
	currentClassDef *types.ClassDef
	selfCTV         *types.ClassTypeVar
}

// New creates a typer over a fresh symbol table.
func New() *Typer {
	tbl := symtab.NewTable()
	return &Typer{
		Solver: solver.New(),
		Table:  tbl,
		Scope:  symtab.NewScope(tbl),
	}
}

func (t *Typer) pushFrame() { t.frames = append(t.frames, &frame{}) }

func (t *Typer) popFrame() *frame {
	f := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	return f
}

func (t *Typer) currentFrame() *frame {
	if len(t.frames) == 0 {
		return nil
	}
	return t.frames[len(t.frames)-1]
}

// setType assigns typ to e and records e in the innermost frame.
func (t *Typer) setType(e ast.Expr, typ types.Type) {
	e.SetType(typ)
	if f := t.currentFrame(); f != nil {
		f.nodes = append(f.nodes, e)
	}
}

func (t *Typer) recordDef(d *ast.LocalDef) {
	if f := t.currentFrame(); f != nil {
		f.defs = append(f.defs, d)
	}
}

// forceInstantiate runs the solver's checkpoint and then replaces every
// recorded node's type (and LocalDef's Typ) with its fully-substituted
// form, failing if any type-variable remains (spec.md §4.2 Block rule,
// step 4; spec.md §8 testable property 2).
func (t *Typer) forceInstantiate(f *frame) error {
	if err := t.Solver.Solve(); err != nil {
		return err
	}
	for _, node := range f.nodes {
		resolved, open := t.Solver.Substitute(node.Type())
		if open != nil {
			return errorAt(node.Span(), node, "could not fully infer the type of %s (stuck on %s)", ast.ExprString(node), open.String())
		}
		node.SetType(resolved)
	}
	for _, def := range f.defs {
		resolved, open := t.Solver.Substitute(def.Typ)
		if open != nil {
			return errorAt(def.Span(), def, "could not fully infer the type of %q (stuck on %s)", def.Name, open.String())
		}
		def.Typ = resolved
	}
	return nil
}

func (t *Typer) unify(a, b types.Type, sp, lhsSpan, rhsSpan span.Span) error {
	if err := t.Solver.AddEquality(a, b, sp, lhsSpan, rhsSpan); err != nil {
		return fmt.Errorf("type mismatch at %s: %w", sp, err)
	}
	return nil
}

// symbolType returns the type and mutability of an already-resolved
// symbol, by inspecting whatever the symbol currently dealiases to.
func (t *Typer) symbolType(id symtab.ID) (types.Type, bool, error) {
	sym := t.Table.Get(id)
	if sym == nil {
		return nil, false, fmt.Errorf("invalid symbol reference")
	}
	switch d := sym.Dealias.(type) {
	case symtab.Placeholder:
		return nil, false, fmt.Errorf("%q referenced before its type is known", sym.Name)
	case *ast.LocalDef:
		return d.Typ, sym.Mutable, nil
	case *ast.Param:
		return d.Typ, false, nil
	case *ast.ClassDef:
		return nil, false, fmt.Errorf("%q names a class, not a value", sym.Name)
	case *Builtin:
		return d.Typ, false, nil
	default:
		return nil, false, fmt.Errorf("unresolved symbol %q", sym.Name)
	}
}

// markFree records id as a free name on every currently-open lambda whose
// parameter frame sits below foundDepth (spec.md §4.2 "Free-name
// tracking").
func (t *Typer) markFree(id symtab.ID, foundDepth int) {
	for _, lc := range t.lambdas {
		if lc.depth > foundDepth {
			lc.node.AddFreeName(id)
		}
	}
}

// resolveSymbolType resolves a SymbolType annotation to a concrete Class
// by looking up the name it carries in the current scope.
func (t *Typer) resolveSymbolType(st *types.SymbolType) (types.Type, error) {
	id, ok := t.Scope.Find(st.Ref.Name)
	if !ok {
		return nil, errorAt(span.None, st, "unknown type %q", st.Ref.Name)
	}
	st.Ref.Resolve(int(id))
	sym := t.Table.Get(id)
	cd, ok := sym.Dealias.(*ast.ClassDef)
	if !ok || cd.TypesDef == nil {
		return nil, errorAt(span.None, st, "%q does not name a class", st.Ref.Name)
	}
	if t.currentClassDef != nil && cd.TypesDef == t.currentClassDef {
		return t.selfCTV, nil
	}
	return &types.Class{Def: cd.TypesDef}, nil
}

// resolveAscription resolves t if it is a SymbolType, and returns t
// unchanged otherwise.
func (t *Typer) resolveAscription(ascription types.Type) (types.Type, error) {
	if ascription == nil {
		return nil, nil
	}
	if st, ok := ascription.(*types.SymbolType); ok {
		return t.resolveSymbolType(st)
	}
	return ascription, nil
}
