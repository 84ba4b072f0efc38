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

// Package codegen lowers a type-checked *ast.Program into a list of
// cast.TopDef values: the closure-converting C code generator described in
// spec.md §4.3.
package codegen

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/fscala-lang/fscc/span"
)

// Error is a code-gen error: one of the two fatal error surfaces spec.md §7
// names (the other is typer.Error). Unlike a type error it never carries
// two operand spans, since every code-gen error is a single-site
// structural failure (an illegal forward reference, a mutual-recursion
// cycle with a non-lambda member) rather than a mismatch between two
// expressions.
type Error struct {
	Message string
	Span    span.Span
	node    any
}

func (e *Error) Error() string { return e.Message }

// Debug dumps the node that triggered the error, mirroring typer.Error's
// Debug for test failures and driver-side diagnostics.
func (e *Error) Debug() string {
	if e.node == nil {
		return e.Message
	}
	return e.Message + "\n" + spew.Sdump(e.node)
}

func errorAt(sp span.Span, node any, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: sp, node: node}
}
