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

package namer

import "testing"

func TestUniqueNameFormat(t *testing.T) {
	n := New()
	if got, want := n.UniqueName("env"), "env$0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := n.UniqueName("env"), "env$1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUniqueCNameFormat(t *testing.T) {
	n := New()
	if got, want := n.UniqueCName("closure"), "closure__0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := n.UniqueCName("closure"), "closure__1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUniqueNameAndCNameShareCounter(t *testing.T) {
	n := New()
	if got, want := n.UniqueName("x"), "x$0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := n.UniqueCName("x"), "x__1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := n.UniqueName("x"), "x$2"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUniqueNameNeverRepeats(t *testing.T) {
	n := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := n.UniqueName("v")
		if seen[name] {
			t.Fatalf("name %q repeated at iteration %d", name, i)
		}
		seen[name] = true
	}
}

func TestResetReproducesSequence(t *testing.T) {
	a := New()
	first := []string{a.UniqueName("f"), a.UniqueCName("f"), a.UniqueName("f")}

	a.Reset()
	second := []string{a.UniqueName("f"), a.UniqueCName("f"), a.UniqueName("f")}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sequence diverged after reset at index %d: %q != %q", i, first[i], second[i])
		}
	}
}

func TestRepeatedPrefixDoesNotCollide(t *testing.T) {
	n := New()
	a := n.UniqueName("closure")
	b := n.UniqueName("closure")
	if a == b {
		t.Fatalf("expected distinct names, got %q twice", a)
	}
}
