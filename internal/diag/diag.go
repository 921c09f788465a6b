// Copyright 2026 The DST Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag defines diagnostics: the error and warning records produced by
// validating a DST document, anchored to the syntax tree.
package diag

import (
	"fmt"
	"io"
	"slices"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/token"
)

// Severity classifies a diagnostic. There are exactly two severities.
type Severity int

const (
	Error Severity = iota + 1
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// A Diagnostic reports one problem. Node and Property identify the anchor;
// Pos and End hold the source range derived from them.
type Diagnostic struct {
	Severity Severity
	Message  string

	Node     ast.Node
	Property string // optional; e.g. "name" or "declaration"

	Pos token.Pos
	End token.Pos

	// Check names the rule that produced the diagnostic.
	Check string
}

// New creates a diagnostic anchored at the given property of n.
func New(sev Severity, msg string, n ast.Node, property string) Diagnostic {
	d := Diagnostic{
		Severity: sev,
		Message:  msg,
		Node:     n,
		Property: property,
	}
	if n != nil {
		d.Pos, d.End = ast.Span(n, property)
	}
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v: %s", d.Pos, d.Severity, d.Message)
}

// A Sink collects diagnostics in the order they are accepted. It does not
// sort, merge, or drop anything. The zero value is ready to use.
type Sink struct {
	list []Diagnostic
}

// Accept records a diagnostic.
func (s *Sink) Accept(d Diagnostic) {
	s.list = append(s.list, d)
}

// Diagnostics returns the diagnostics accepted so far, in order.
func (s *Sink) Diagnostics() []Diagnostic {
	return slices.Clone(s.list)
}

// Len reports the number of diagnostics accepted so far.
func (s *Sink) Len() int { return len(s.list) }

// Reset discards all diagnostics.
func (s *Sink) Reset() { s.list = s.list[:0] }

// Count returns the number of diagnostics in list with the given severity.
func Count(list []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range list {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by position. Diagnostics at the same position keep
// their relative order.
func Sort(list []Diagnostic) {
	slices.SortStableFunc(list, func(a, b Diagnostic) int {
		return a.Pos.Compare(b.Pos)
	})
}

// Print writes one line per diagnostic to w.
func Print(w io.Writer, list []Diagnostic) {
	for _, d := range list {
		fmt.Fprintln(w, d)
	}
}
