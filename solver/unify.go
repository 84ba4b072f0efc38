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

package solver

import (
	"fmt"

	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
)

func (s *Solver) unify(a, b types.Type, sp, lhsSpan, rhsSpan span.Span) error {
	// An l-value (a var binding or an array element, typed Ref(inner))
	// unifies as the value it holds: the wrapper is dropped on both sides
	// before anything is compared or bound, so no equation records a Ref.
	a, b = types.RealType(types.Deref(types.RealType(a))), types.RealType(types.Deref(types.RealType(b)))
	if a == b {
		return nil
	}

	av, aIsVar := a.(*types.Var)
	bv, bIsVar := b.(*types.Var)
	switch {
	case aIsVar && bIsVar:
		if av.Id() == bv.Id() {
			return nil
		}
		s.bind(av, bv)
		return nil

	case aIsVar:
		if s.occurs(av.Id(), b) {
			return fail("infinite type", sp, lhsSpan, rhsSpan)
		}
		s.bind(av, b)
		return nil

	case bIsVar:
		if s.occurs(bv.Id(), a) {
			return fail("infinite type", sp, lhsSpan, rhsSpan)
		}
		s.bind(bv, a)
		return nil
	}

	mismatch := func() error {
		return fail(fmt.Sprintf("can not unify %s with %s", types.String(a), types.String(b)), sp, lhsSpan, rhsSpan)
	}

	switch at := a.(type) {
	case types.Ground:
		bt, ok := b.(types.Ground)
		if !ok || at.Kind != bt.Kind {
			return mismatch()
		}
		return nil

	case *types.Array:
		bt, ok := b.(*types.Array)
		if !ok {
			return mismatch()
		}
		return s.unify(at.Elem, bt.Elem, sp, lhsSpan, rhsSpan)

	case *types.Lambda:
		bt, ok := b.(*types.Lambda)
		if !ok {
			return mismatch()
		}
		if len(at.Params) != len(bt.Params) {
			return fail("arity mismatch", sp, lhsSpan, rhsSpan)
		}
		for i := range at.Params {
			if err := s.unify(at.Params[i], bt.Params[i], sp, lhsSpan, rhsSpan); err != nil {
				return err
			}
		}
		return s.unify(at.Ret, bt.Ret, sp, lhsSpan, rhsSpan)

	case *types.Class:
		switch bt := b.(type) {
		case *types.Class:
			if at.Def != bt.Def {
				return mismatch()
			}
			return nil
		case *types.ClassTypeVar:
			return s.dischargeAgainstClass(bt, at, sp, lhsSpan, rhsSpan)
		}
		return mismatch()

	case *types.ClassTypeVar:
		switch bt := b.(type) {
		case *types.Class:
			return s.dischargeAgainstClass(at, bt, sp, lhsSpan, rhsSpan)
		case *types.ClassTypeVar:
			if at.Def != bt.Def {
				return mismatch()
			}
			merged := at.Predicates.Merge(bt.Predicates)
			at.Predicates = merged
			bt.Predicates = merged
			return nil
		}
		return mismatch()

	case *types.Ref:
		// A single Ref wrapper is dropped at the top of unify, so only a Ref
		// nested directly inside another Ref reaches this case; the typer
		// never builds one.
		return fail("internal error: attempted to unify a Ref type", sp, lhsSpan, rhsSpan)

	default:
		return mismatch()
	}
}

// DischargeClassPredicates checks every accumulated member requirement on
// ctv against cls's now-final member set, unifying required types against
// actual member types. Used by the typer's Class rule once a class body
// has finished typing and its ClassTypeVar is ready to collapse to a
// concrete Class.
func (s *Solver) DischargeClassPredicates(ctv *types.ClassTypeVar, cls *types.Class) error {
	return s.dischargeAgainstClass(ctv, cls, span.None, span.None, span.None)
}

func (s *Solver) dischargeAgainstClass(ctv *types.ClassTypeVar, cls *types.Class, sp, lhsSpan, rhsSpan span.Span) error {
	if ctv.Def != cls.Def {
		return fail(fmt.Sprintf("can not unify %s with %s", types.String(ctv), types.String(cls)), sp, lhsSpan, rhsSpan)
	}
	var failed error
	ctv.Predicates.Range(func(name string, required []types.Type) bool {
		memberType, ok := cls.Def.MemberType(name)
		if !ok {
			failed = fail(fmt.Sprintf("class %s has no member %q", cls.Def.Name, name), sp, lhsSpan, rhsSpan)
			return false
		}
		for _, req := range required {
			if err := s.unify(req, memberType, sp, lhsSpan, rhsSpan); err != nil {
				failed = err
				return false
			}
		}
		return true
	})
	return failed
}

func (s *Solver) occurs(id int, t types.Type) bool {
	switch v := types.RealType(t).(type) {
	case *types.Var:
		return v.Id() == id
	case *types.Array:
		return s.occurs(id, v.Elem)
	case *types.Lambda:
		for _, p := range v.Params {
			if s.occurs(id, p) {
				return true
			}
		}
		return s.occurs(id, v.Ret)
	case *types.Ref:
		return s.occurs(id, v.Inner)
	case *types.ClassTypeVar:
		found := false
		v.Predicates.Range(func(_ string, required []types.Type) bool {
			for _, t := range required {
				if s.occurs(id, t) {
					found = true
					return false
				}
			}
			return true
		})
		return found
	default:
		return false
	}
}
