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
	"github.com/fscala-lang/fscc/cast"
	"github.com/fscala-lang/fscc/namer"
	"github.com/fscala-lang/fscc/symtab"
)

// genContext is one level of the code-gen context stack (spec.md §4.3:
// "a stack-like code-gen context recording (i) whether we are at top
// level, (ii) the current closure environment struct and its parameter
// symbol, (iii) an optional self binding..., (iv) a cache mapping a C
// function type to its emitted type-alias definition"). Point (iv) is
// process-wide rather than per-level (funcTypeAliases on Generator), since
// the cache must survive across nested contexts to stay a cache.
type genContext struct {
	topLevel bool

	// env/envParam are never set or read by this package today (a lowered
	// function reaches its environment through the env->field arrows in
	// idents); they are kept for parity with spec.md's description of what
	// the context tracks.
	env      *cast.StructDef
	envParam string

	// idents resolves a symbol directly to the C expression that reads its
	// current value in this context: a bare identifier for a parameter or
	// an already-assigned local, or an env->field/env->self arrow
	// expression for a captured name.
	idents map[symtab.ID]cast.Expr

	// selfAccess yields the current method's self pointer, or nil when no
	// self binding is in scope (spec.md §4.3.2).
	selfAccess cast.Expr
}

// Generator holds the process-local state a single code-gen pass threads
// through every lowering call: the growing list of emitted top-level
// definitions, the context stack, the function-pointer-alias cache, and
// the per-class bookkeeping used while lowering one class's members.
type Generator struct {
	Namer *namer.Namer

	// Table resolves a captured free name back to its typed definition
	// (freeNameType in lambda.go), since a symbol's static type lives on
	// its ast.LocalDef/ast.Param, not on symtab.Symbol itself.
	Table *symtab.Table

	topDefs []cast.TopDef
	ctxs    []*genContext

	funcTypeAliases map[string]*cast.AliasDef
	nextAliasID     int

	// currentClassMembers/currentClassStruct are valid only while
	// lowerClass is lowering one class's methods; they let buildLambda
	// recognize a free name as a member reference (collapsed into a
	// single self field) rather than an ordinary per-name capture.
	currentClassMembers map[symtab.ID]string
	currentClassStruct  string

	// UsedPrintf/UsedMalloc/UsedScanf record whether the built-in I/O
	// primitives or any closure/environment allocation were exercised, so
	// a downstream emitter can conditionally add #include
	// <stdio.h>/<stdlib.h> (spec.md §6's "headers... declared as side
	// dependencies of each use").
	UsedPrintf bool
	UsedMalloc bool
	UsedScanf  bool
}

// New creates a Generator ready to lower one program.
func New() *Generator {
	return &Generator{
		Namer:           namer.New(),
		funcTypeAliases: make(map[string]*cast.AliasDef),
	}
}

func (g *Generator) pushContext(c *genContext) {
	if c.idents == nil {
		c.idents = make(map[symtab.ID]cast.Expr)
	}
	g.ctxs = append(g.ctxs, c)
}

func (g *Generator) popContext() {
	g.ctxs = g.ctxs[:len(g.ctxs)-1]
}

func (g *Generator) top() *genContext {
	return g.ctxs[len(g.ctxs)-1]
}

// emit appends a lowered top-level definition to the output stream.
func (g *Generator) emit(d cast.TopDef) {
	g.topDefs = append(g.topDefs, d)
}

// resolveIdent looks up id's current code-gen expression in the innermost
// context only. A lambda's context is seeded, before its body is lowered,
// with an entry for every one of its own parameters and every name it
// captures (as an env->field or env->self arrow expression); nested
// *ast.Block expressions within the same emitted C function extend this
// same map in place rather than pushing a new context (see lowerDefs), so
// a single flat lookup is always enough and never sees through a real C
// function boundary into a caller's locals that were not actually
// captured.
func (g *Generator) resolveIdent(id symtab.ID) (cast.Expr, bool) {
	e, ok := g.top().idents[id]
	return e, ok
}

// bindIdent installs id's C expression in the current (innermost) context.
func (g *Generator) bindIdent(id symtab.ID, e cast.Expr) {
	g.top().idents[id] = e
}
