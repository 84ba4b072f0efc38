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

// Package namer is a minimal concrete stand-in for the unique-name service
// spec.md §6 describes as an external collaborator: a process-local,
// resettable monotonic counter. The real driver's naming service is out of
// scope (§1); this package exists only so codegen has something to call
// (SPEC_FULL §10.7), mirroring solver.Solver's own plain, single-threaded
// counter (spec.md §5: naming is sequential, never concurrent).
package namer

import "strconv"

// Namer hands out two flavors of unique name from one shared counter:
// UniqueName for the "prefix$N" form and UniqueCName for names that must
// be valid C identifiers (every name codegen mints: struct tags, function
// names, locals, closure environment fields, Rec placeholders). Sharing
// one counter keeps the two forms from ever colliding even when the same
// prefix is requested through both.
type Namer struct {
	next int
}

// New creates a Namer starting at 0.
func New() *Namer { return &Namer{} }

// UniqueName returns "prefix$N" for a fresh N, per spec.md §6.
func (n *Namer) UniqueName(prefix string) string {
	name := prefix + "$" + strconv.Itoa(n.next)
	n.next++
	return name
}

// UniqueCName returns "prefix__N" for a fresh N: double underscore instead
// of "$", since "$" is not a legal character in a C identifier.
func (n *Namer) UniqueCName(prefix string) string {
	name := prefix + "__" + strconv.Itoa(n.next)
	n.next++
	return name
}

// Reset clears the counter, per spec.md §6's reset() contract: naming
// determinism within one compilation is a property consumers test, so a
// fresh Namer (or a Reset one) must reproduce the same name sequence for
// the same sequence of calls.
func (n *Namer) Reset() { n.next = 0 }
