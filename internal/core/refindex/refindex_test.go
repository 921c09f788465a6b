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

package refindex_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/dsttest"
)

func TestIndex(t *testing.T) {
	set := dsttest.Load(t, `
-- shop.yaml --
book: Shop
library: Default
declarations:
  - agent: Clerk
  - workobject: Order
-- ordering.yaml --
story: Ordering
book: Shop
declarations:
  - agent: Customer
activities:
  - agent: Customer
    clauses:
      - connector: places
        resource: Order
      - connector: with
        resource: Clerk
    footnotes: [1, 3]
  - agent: Customer
    clauses:
      - connector: pays
        resource: Order
    footnotes: [1]
footnotes:
  - name: 1
    text: Cash only.
  - name: 2
    text: Never read.
`)
	f := set.File("ordering.yaml")
	idx := refindex.Build(f, resolve.New(f, set))
	story := set.Story("ordering.yaml")
	book := set.File("shop.yaml").Model.(*ast.Book)

	qt.Assert(t, qt.IsTrue(idx.Reachable(story.Footnotes[0])))
	qt.Assert(t, qt.IsFalse(idx.Reachable(story.Footnotes[1])))
	qt.Assert(t, qt.IsTrue(idx.Reachable(book)))
	qt.Assert(t, qt.IsTrue(idx.Reachable(book.Declarations[1])))

	// Targets are listed once, in order of first reference.
	targets := idx.Targets()
	qt.Assert(t, qt.HasLen(targets, 5))
	qt.Assert(t, qt.Equals(targets[0], ast.Node(book)))
	qt.Assert(t, qt.Equals(targets[1], ast.Node(story.Declarations[0])))
	qt.Assert(t, qt.Equals(targets[2], ast.Node(book.Declarations[1])))
	qt.Assert(t, qt.Equals(targets[3], ast.Node(book.Declarations[0])))
	qt.Assert(t, qt.Equals(targets[4], ast.Node(story.Footnotes[0])))

	refs := idx.References(book.Declarations[1])
	qt.Assert(t, qt.HasLen(refs, 2))
	qt.Assert(t, qt.Equals(refs[0], story.Activities[0].Clauses[0].Resource.Declaration))
	qt.Assert(t, qt.Equals(refs[1], story.Activities[1].Clauses[0].Resource.Declaration))

	// Footnote 3 does not exist.
	dangling := story.Activities[0].Notes.Notes[1]
	_, ok := idx.Binding(dangling)
	qt.Assert(t, qt.IsFalse(ok))
	sym, ok := idx.Binding(story.Activities[0].Agent.Declaration)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(sym.Layer, resolve.Local))

	qt.Assert(t, qt.HasLen(idx.Sites(), 9))
}

func TestEmpty(t *testing.T) {
	f := &ast.File{Filename: "empty.yaml"}
	idx := refindex.Build(f, resolve.New(f, nil))
	qt.Assert(t, qt.HasLen(idx.Targets(), 0))
	qt.Assert(t, qt.IsFalse(idx.Reachable(f)))
}
