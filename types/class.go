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

import "github.com/benbjohnson/immutable"

// ClassDef is the type-level identity of a class: its name, constructor
// parameter types, and member set. It is owned by the types package so
// that ast.ClassDef (the syntax-level definition, with member bodies) can
// hold a *ClassDef without this package importing ast.
//
// Members grows incrementally while the typer walks a class body (spec.md
// §4.2 Class rule): each member is appended once its own type is known.
type ClassDef struct {
	ID      int
	Name    string
	Ctor    []Type
	Members []Member
}

// Member is one class member: a val/var field or a zero-arg method,
// indistinguishable at the type level (both are just name -> Type).
type Member struct {
	Name    string
	Type    Type
	Mutable bool
}

// MemberType looks up a member by name on an already-known class.
func (d *ClassDef) MemberType(name string) (Type, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m.Type, true
		}
	}
	return nil, false
}

// MemberMutable reports whether name is a var (mutable) member. Returns
// false if name is not a member at all.
func (d *ClassDef) MemberMutable(name string) bool {
	for _, m := range d.Members {
		if m.Name == name {
			return m.Mutable
		}
	}
	return false
}

// AddMember appends a newly-typed member.
func (d *ClassDef) AddMember(name string, t Type, mutable bool) {
	d.Members = append(d.Members, Member{Name: name, Type: t, Mutable: mutable})
}

// ClassTypeVar stands for "whatever Def turns out to be, as long as it has
// these members" (spec.md §3.2/§4.2 Class rule). It is produced only when a
// class's own body refers to itself through a type ascription; a reference
// to any other class resolves to a concrete Class. Predicates accumulates the member requirements discovered through
// such selects; solver.DischargeClassPredicates checks them against Def's
// final Members once the class is fully typed.
type ClassTypeVar struct {
	Def        *ClassDef
	Predicates MemberSet
}

func (t *ClassTypeVar) TypeName() string { return "ClassTypeVar(" + t.Def.Name + ")" }

// MemberSet is an immutable label -> required-types map, used to accumulate
// HasMember(name, Type) predicates on a ClassTypeVar. It mirrors the
// teacher library's row-label TypeMap: a class predicate set is structurally
// a row, just discharged against a class's member list instead of unified
// against another row.
type MemberSet struct {
	m *immutable.SortedMap
}

// EmptyMemberSet is the predicate set with no requirements.
var EmptyMemberSet = MemberSet{m: immutable.NewSortedMap(nil)}

// Get returns the required types accumulated so far for member name.
func (s MemberSet) Get(name string) ([]Type, bool) {
	if s.m == nil {
		return nil, false
	}
	v, ok := s.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.([]Type), true
}

// Add records a new requirement that member name have type t, returning the
// extended set. The receiver is left unchanged (persistent update).
func (s MemberSet) Add(name string, t Type) MemberSet {
	base := s.m
	if base == nil {
		base = immutable.NewSortedMap(nil)
	}
	existing, _ := s.Get(name)
	next := append(append([]Type(nil), existing...), t)
	return MemberSet{m: base.Set(name, next)}
}

// Len reports the number of distinct member names with requirements.
func (s MemberSet) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Range calls fn for every (name, required-types) pair, in label order.
// Iteration stops early if fn returns false.
func (s MemberSet) Range(fn func(name string, required []Type) bool) {
	if s.m == nil {
		return
	}
	itr := s.m.Iterator()
	for !itr.Done() {
		k, v := itr.Next()
		if !fn(k.(string), v.([]Type)) {
			return
		}
	}
}

// Names returns the member names with outstanding predicates, in label
// order.
func (s MemberSet) Names() []string {
	names := make([]string, 0, s.Len())
	s.Range(func(name string, _ []Type) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Merge combines two predicate sets, concatenating requirement lists for
// names present in both.
func (s MemberSet) Merge(other MemberSet) MemberSet {
	result := s
	other.Range(func(name string, required []Type) bool {
		for _, t := range required {
			result = result.Add(name, t)
		}
		return true
	})
	return result
}
