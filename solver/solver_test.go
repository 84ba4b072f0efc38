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
	"testing"

	"github.com/fscala-lang/fscc/span"
	"github.com/fscala-lang/fscc/types"
)

func TestUnifyGround(t *testing.T) {
	s := New()
	if err := s.AddEquality(types.IntType, types.IntType, span.None, span.None, span.None); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddEquality(types.IntType, types.FloatType, span.None, span.None, span.None); err == nil {
		t.Fatalf("expected a mismatch error")
	}
}

func TestUnifyVarBindsThroughArray(t *testing.T) {
	s := New()
	v := s.FreshVar("T", span.None)
	arr := &types.Array{Elem: types.IntType}
	if err := s.AddEquality(v, arr, span.None, span.None, span.None); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved, open := s.Substitute(v)
	if open != nil {
		t.Fatalf("expected fully resolved type, got open var %v", open)
	}
	got, ok := resolved.(*types.Array)
	if !ok || got.Elem != types.IntType {
		t.Fatalf("expected Array(Int), got %s", types.String(resolved))
	}
}

func TestUnifyOccursCheckFails(t *testing.T) {
	s := New()
	v := s.FreshVar("T", span.None)
	self := &types.Array{Elem: v}
	if err := s.AddEquality(v, self, span.None, span.None, span.None); err == nil {
		t.Fatalf("expected an infinite-type error")
	}
}

func TestUnifyLambdaArityMismatch(t *testing.T) {
	s := New()
	a := &types.Lambda{Params: []types.Type{types.IntType}, Ret: types.BoolType}
	b := &types.Lambda{Params: []types.Type{types.IntType, types.IntType}, Ret: types.BoolType}
	if err := s.AddEquality(a, b, span.None, span.None, span.None); err == nil {
		t.Fatalf("expected an arity-mismatch error")
	}
}

func TestCanUnifyRollsBack(t *testing.T) {
	s := New()
	v := s.FreshVar("T", span.None)
	if !s.CanUnify(v, types.IntType) {
		t.Fatalf("expected speculative unification to succeed")
	}
	if v.IsLinkVar() {
		t.Fatalf("CanUnify must roll back its speculative binding")
	}
}

func TestClassTypeVarDischarge(t *testing.T) {
	def := &types.ClassDef{ID: 1, Name: "Point"}
	s := New()
	v := s.FreshVar("T", span.None)
	ctv := &types.ClassTypeVar{Def: def, Predicates: types.EmptyMemberSet.Add("x", v)}

	def.AddMember("x", types.IntType, false)
	cls := &types.Class{Def: def}

	if err := s.DischargeClassPredicates(ctv, cls); err != nil {
		t.Fatalf("unexpected discharge error: %v", err)
	}
	resolved, open := s.Substitute(v)
	if open != nil || resolved != types.IntType {
		t.Fatalf("expected predicate variable to resolve to Int, got %s", types.String(resolved))
	}
}

func TestClassTypeVarDischargeMissingMember(t *testing.T) {
	def := &types.ClassDef{ID: 2, Name: "Point"}
	s := New()
	v := s.FreshVar("T", span.None)
	ctv := &types.ClassTypeVar{Def: def, Predicates: types.EmptyMemberSet.Add("y", v)}
	cls := &types.Class{Def: def}

	if err := s.DischargeClassPredicates(ctv, cls); err == nil {
		t.Fatalf("expected a missing-member error")
	}
}
