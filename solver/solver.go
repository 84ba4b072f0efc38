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

// Package solver implements the constraint solver described in spec.md
// §4.1: union-find style unification over the closed types.Type variant,
// with an occurs check and a speculate/rollback primitive used by the
// typer to probe operator signatures and discharge class predicates.
package solver

import (
	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
)

// Solver accumulates equality constraints between types and resolves them
// by mutating types.Var links in place (unification is eager: binding
// happens at AddEquality time, not deferred to a batch Solve). Solve and
// Substitute exist as named operations mirroring the constraint-solver
// contract even though, with eager unification, most of their work has
// already happened by the time they are called.
type Solver struct {
	nextVar int
	trail   []*types.Var
}

// New creates an empty solver.
func New() *Solver { return &Solver{} }

// FreshVar allocates a new unbound type-variable.
func (s *Solver) FreshVar(prefix string, origin span.Span) *types.Var {
	id := s.nextVar
	s.nextVar++
	return types.NewVar(id, prefix, origin)
}

// Error is a unification failure, carrying the span of the equation that
// failed plus, when known, the spans of its two operands.
type Error struct {
	Message         string
	Span            span.Span
	LhsSpan, RhsSpan span.Span
}

func (e *Error) Error() string { return e.Message }

func fail(msg string, sp, lhsSpan, rhsSpan span.Span) *Error {
	return &Error{Message: msg, Span: sp, LhsSpan: lhsSpan, RhsSpan: rhsSpan}
}

// AddEquality records (and immediately attempts to solve) the constraint
// a = b. lhsSpan/rhsSpan may be span.None when the caller has no finer
// span than sp to offer.
func (s *Solver) AddEquality(a, b types.Type, sp, lhsSpan, rhsSpan span.Span) error {
	if err := s.unify(a, b, sp, lhsSpan, rhsSpan); err != nil {
		return err
	}
	return nil
}

// Solve is a no-op checkpoint: every constraint recorded through
// AddEquality has already been unified eagerly. It exists so the typer's
// force-instantiate phase (spec.md §4.2 Block rule step 4) has a named
// point to call before walking the frame.
func (s *Solver) Solve() error { return nil }

// Substitute resolves t through every bound variable. If some variable
// reachable from t is still unbound, the first one found is returned as
// the second result (the "Left(openVar)" case); otherwise the second
// result is nil and the first is t with every variable replaced.
func (s *Solver) Substitute(t types.Type) (types.Type, *types.Var) {
	switch v := t.(type) {
	case nil:
		return nil, nil

	case *types.Var:
		if v.IsLinkVar() {
			return s.Substitute(v.Link())
		}
		return v, v

	case *types.Array:
		elem, open := s.Substitute(v.Elem)
		if open != nil {
			return t, open
		}
		return &types.Array{Elem: elem}, nil

	case *types.Lambda:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			pt, open := s.Substitute(p)
			if open != nil {
				return t, open
			}
			params[i] = pt
		}
		ret, open := s.Substitute(v.Ret)
		if open != nil {
			return t, open
		}
		return &types.Lambda{Params: params, Ret: ret}, nil

	case *types.Ref:
		inner, open := s.Substitute(v.Inner)
		if open != nil {
			return t, open
		}
		return &types.Ref{Inner: inner}, nil

	case *types.ClassTypeVar:
		// A class-type-variable that survives to substitution time has not
		// been discharged to a concrete Class; treat it as an open variable
		// by minting a fresh C-prefixed variable to report as the open one.
		return t, s.FreshVar("C", span.None)

	default:
		return t, nil
	}
}

// Speculate marks the current trail position. Call Rollback(mark) to undo
// every binding made since, or simply discard the mark to commit.
func (s *Solver) Speculate() int { return len(s.trail) }

// Rollback unlinks every variable bound since mark.
func (s *Solver) Rollback(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		s.trail[i].Unlink()
	}
	s.trail = s.trail[:mark]
}

func (s *Solver) bind(v *types.Var, t types.Type) {
	v.SetLink(t)
	s.trail = append(s.trail, v)
}

// CanUnify speculatively attempts to unify a and b, rolling back
// regardless of outcome, and reports whether it would have succeeded. It
// is the probing primitive the typer uses for operator-candidate matching
// (spec.md §4.4) and other try-then-commit decisions.
func (s *Solver) CanUnify(a, b types.Type) bool {
	mark := s.Speculate()
	err := s.unify(a, b, span.None, span.None, span.None)
	s.Rollback(mark)
	return err == nil
}
