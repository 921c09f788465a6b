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

// Package rangeset maps byte ranges of a document to values.
package rangeset

import (
	"fmt"
	"sort"
)

// Range is the interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Contains reports whether offset lies within r.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

type entry[T any] struct {
	Range
	val T
}

// A Map associates ranges with values. Ranges may overlap; a lookup
// returns every range containing the offset. The zero value is an empty
// map ready to use.
type Map[T any] struct {
	entries []entry[T] // sorted by Start, then insertion order
	maxLen  int
}

// Add associates val with [start, end). Empty ranges are ignored.
func (m *Map[T]) Add(start, end int, val T) {
	if start >= end {
		return
	}
	i := sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].Start > start
	})
	m.entries = append(m.entries, entry[T]{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry[T]{Range{start, end}, val}
	m.maxLen = max(m.maxLen, end-start)
}

// Lookup returns the values of all ranges containing offset, ordered by
// range start.
func (m *Map[T]) Lookup(offset int) []T {
	// Only ranges starting within maxLen before offset can contain it.
	lo := sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].Start > offset-m.maxLen
	})
	var vals []T
	for _, e := range m.entries[lo:] {
		if e.Start > offset {
			break
		}
		if e.Contains(offset) {
			vals = append(vals, e.val)
		}
	}
	return vals
}

// Ranges returns all ranges in order.
func (m *Map[T]) Ranges() []Range {
	rs := make([]Range, len(m.entries))
	for i, e := range m.entries {
		rs[i] = e.Range
	}
	return rs
}

// Len reports the number of ranges.
func (m *Map[T]) Len() int { return len(m.entries) }

func (m *Map[T]) String() string {
	return fmt.Sprintf("rangeset.Map%v", m.Ranges())
}
