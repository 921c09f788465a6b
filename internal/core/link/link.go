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

// Package link reports references that do not bind to anything.
//
// The resolver itself never fails: an unresolvable reference merely has no
// matching candidate. This package turns such references into errors.
package link

import (
	"fmt"

	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/diag"
)

// Check reports an error to sink for every reference site of idx that has
// no binding. Sites with an empty name are skipped; the parser reports
// those. An agent in the first clause of an activity is skipped as well:
// the activity chain check reports it.
func Check(r *resolve.Resolver, idx *refindex.Index, sink *diag.Sink) {
	for _, s := range idx.Sites() {
		if s.Ref.Name == "" {
			continue
		}
		if _, ok := idx.Binding(s.Ref); ok {
			continue
		}
		if s.FirstClause() {
			if sym, ok := r.Denote(s); ok && sym.IsAgent() {
				continue
			}
		}
		msg := fmt.Sprintf("could not resolve reference to %s named '%s'", target(s), s.Ref.Name)
		d := diag.New(diag.Error, msg, s.Ref, "")
		d.Check = "link"
		sink.Accept(d)
	}
}

// target describes what a site may refer to.
func target(s resolve.Site) string {
	switch s.Slot {
	case resolve.SlotBook:
		return "book"
	case resolve.SlotLibrary:
		return "library"
	case resolve.SlotIcon:
		return "icon"
	case resolve.SlotAgent:
		return "agent"
	case resolve.SlotResource:
		if s.FirstClause() {
			return "work object"
		}
		return "agent or work object"
	case resolve.SlotRecipient:
		return "agent or work object"
	case resolve.SlotFootnote:
		return "footnote"
	}
	return "element"
}
