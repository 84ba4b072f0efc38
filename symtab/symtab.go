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

// Package symtab implements the symbol and scope service described in
// spec.md §3.1: a lexically nested symbol table supporting Locate/Relocate
// (push/pop a frame), AddSymbol, FindHere (current frame only), and Find
// (walk outward).
//
// Symbols are addressed by integer ID into an append-only arena (Table)
// rather than by pointer, per the arena/handle redesign in spec.md §9: a
// symbol's mutable "dealias" slot is overwritten in place by ID, which
// keeps the symbol<->tree reference graph free of raw cyclic pointers.
package symtab

import "github.com/fscala-lang/fscc/span"

// ID addresses a Symbol within a Table.
type ID int

// Invalid is never returned by a successful lookup.
const Invalid ID = -1

// Placeholder marks a symbol whose Dealias has not yet been resolved to a
// concrete definition. It is installed by the typer while pre-declaring the
// bindings of a recursive group (spec.md §4.2 Block rule, step 2) and later
// overwritten once the binding's typed tree is known.
type Placeholder struct {
	// Name repeats the symbol's name, for diagnostics.
	Name string
}

// Symbol carries a name, a mutable dealias slot, and optional source
// position.
//
// Dealias holds one of: nil or Placeholder (unresolved), or a pointer to a
// definition node owned by the ast package (typed-tree, lambda-parameter,
// or class-definition). symtab does not depend on ast, so Dealias is typed
// as any; callers assert the concrete shape they expect.
type Symbol struct {
	Name    string
	Dealias any
	Pos     span.Span
	Mutable bool
}

// Table is an append-only arena of symbols, addressed by ID.
type Table struct {
	symbols []Symbol
}

// NewTable creates an empty symbol arena.
func NewTable() *Table { return &Table{} }

// New allocates a fresh symbol and returns its ID.
func (t *Table) New(name string, pos span.Span) ID {
	t.symbols = append(t.symbols, Symbol{Name: name, Pos: pos, Dealias: Placeholder{Name: name}})
	return ID(len(t.symbols) - 1)
}

// Get returns a pointer to the symbol for id, for in-place mutation of its
// dealias slot.
func (t *Table) Get(id ID) *Symbol {
	if id < 0 || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// SetDealias overwrites the dealias slot for id.
func (t *Table) SetDealias(id ID, def any) {
	if s := t.Get(id); s != nil {
		s.Dealias = def
	}
}

// Reset clears the arena; all previously issued IDs become invalid.
func (t *Table) Reset() { t.symbols = t.symbols[:0] }

type frame struct {
	byName map[string]ID
}

// Scope is a stack of lexical frames over a shared symbol Table.
type Scope struct {
	table  *Table
	frames []frame
}

// NewScope creates a scope with no frames yet pushed.
func NewScope(t *Table) *Scope { return &Scope{table: t} }

// Table returns the underlying symbol arena.
func (s *Scope) Table() *Table { return s.table }

// Depth returns the number of currently pushed frames.
func (s *Scope) Depth() int { return len(s.frames) }

// Locate pushes a fresh, empty frame.
func (s *Scope) Locate() {
	s.frames = append(s.frames, frame{byName: make(map[string]ID, 8)})
}

// Relocate pops the innermost frame.
func (s *Scope) Relocate() {
	s.frames = s.frames[:len(s.frames)-1]
}

// AddSymbol allocates a symbol and binds name to it in the innermost frame.
func (s *Scope) AddSymbol(name string, pos span.Span) ID {
	id := s.table.New(name, pos)
	f := &s.frames[len(s.frames)-1]
	f.byName[name] = id
	return id
}

// FindHere looks up name in the innermost frame only.
func (s *Scope) FindHere(name string) (ID, bool) {
	if len(s.frames) == 0 {
		return Invalid, false
	}
	id, ok := s.frames[len(s.frames)-1].byName[name]
	return id, ok
}

// Find looks up name, walking outward from the innermost frame.
func (s *Scope) Find(name string) (ID, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if id, ok := s.frames[i].byName[name]; ok {
			return id, true
		}
	}
	return Invalid, false
}

// FindDepth is like Find, but also reports the 1-based depth of the frame
// in which name was bound. The typer uses this to decide whether an
// identifier resolved outside the current lambda/method boundary (spec.md
// §4.2 "Free-name tracking"): a name found above the frame depth recorded
// when the lambda was entered is a free name.
func (s *Scope) FindDepth(name string) (ID, int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if id, ok := s.frames[i].byName[name]; ok {
			return id, i + 1, true
		}
	}
	return Invalid, 0, false
}
