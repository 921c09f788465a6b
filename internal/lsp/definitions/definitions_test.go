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

package definitions_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/dsttest"
	"dstlang.org/go/internal/lsp/definitions"
)

const archive = `
-- lib.yaml --
library: Default
icons:
  - name: Person
-- shop.yaml --
book: Shop
library: Default
declarations:
  - agent: Clerk
    icon: Person
  - workobject: Order
-- ordering.yaml --
story: Ordering
book: Shop
declarations:
  - agent: Customer
    icon: Person
activities:
  - agent: Customer
    clauses:
      - connector: places
        resource: Order
      - connector: with
        resource: Clerk
    footnotes: [1, 9]
  - agent: Customer
    clauses:
      - connector: pays
        resource: Order
footnotes:
  - name: 1
    text: By card.
`

type position struct {
	filename string
	line     int
	n        int
	str      string
}

// fln returns the position of the n-th (1-based) occurrence of str on the
// given line (1-based) of filename.
func fln(filename string, line, n int, str string) position {
	return position{filename, line, n, str}
}

func (p position) offset(t *testing.T, set *dsttest.Set) int {
	t.Helper()
	f := set.File(p.filename).Model.Pos().File()
	lines := f.Lines()
	start, end := lines[p.line-1], f.Size()
	if p.line < len(lines) {
		end = lines[p.line]
	}
	text := string(f.Content()[start:end])
	n := p.n
	for i := range text {
		if strings.HasPrefix(text[i:], p.str) {
			if n--; n == 0 {
				return start + i
			}
		}
	}
	t.Fatalf("%q not found on line %d of %s", p.str, p.line, p.filename)
	return 0
}

func at(n ast.Node) string {
	id := ast.Name(n)
	if id == nil {
		return "?"
	}
	return id.Pos().String()
}

func analyse(set *dsttest.Set, filename string) *definitions.FileDefinitions {
	f := set.File(filename)
	return definitions.Analyse(f, refindex.Build(f, resolve.New(f, set)))
}

func TestForOffset(t *testing.T) {
	set := dsttest.Load(t, archive)
	d := analyse(set, "ordering.yaml")

	testCases := []struct {
		from position
		want []string
	}{
		{fln("ordering.yaml", 2, 1, "Shop"), []string{"shop.yaml:1:7"}},
		{fln("ordering.yaml", 5, 1, "Person"), []string{"lib.yaml:3:11"}},
		{fln("ordering.yaml", 7, 1, "Customer"), []string{"ordering.yaml:4:12"}},
		{fln("ordering.yaml", 10, 1, "Order"), []string{"shop.yaml:6:17"}},
		{fln("ordering.yaml", 12, 1, "Clerk"), []string{"shop.yaml:4:12"}},
		{fln("ordering.yaml", 13, 1, "1"), []string{"ordering.yaml:19:11"}},
		// Unresolved.
		{fln("ordering.yaml", 13, 1, "9"), nil},
		// A name denotes its own node.
		{fln("ordering.yaml", 4, 1, "Customer"), []string{"ordering.yaml:4:12"}},
		// Not an identifier.
		{fln("ordering.yaml", 9, 1, "places"), nil},
		{fln("ordering.yaml", 3, 1, "declarations"), nil},
	}
	for _, tc := range testCases {
		var got []string
		for _, n := range d.ForOffset(tc.from.offset(t, set)) {
			got = append(got, at(n))
		}
		qt.Check(t, qt.DeepEquals(got, tc.want), qt.Commentf("from %v", tc.from))
	}

	// The offset just past an identifier still selects it.
	off := fln("ordering.yaml", 12, 1, "Clerk").offset(t, set) + len("Clerk")
	qt.Assert(t, qt.HasLen(d.ForOffset(off), 1))
	qt.Assert(t, qt.IsTrue(d.IsReference(off)))
	qt.Assert(t, qt.IsFalse(d.IsReference(fln("ordering.yaml", 4, 1, "Customer").offset(t, set))))
}

func TestReferences(t *testing.T) {
	set := dsttest.Load(t, archive)
	d := analyse(set, "ordering.yaml")

	var got []string
	for _, id := range d.ReferencesTo(fln("ordering.yaml", 4, 1, "Customer").offset(t, set)) {
		got = append(got, id.Pos().String())
	}
	qt.Assert(t, qt.DeepEquals(got, []string{"ordering.yaml:7:12", "ordering.yaml:14:12"}))

	order := set.File("shop.yaml").Model.(*ast.Book).Declarations[1]
	got = got[:0]
	for _, id := range d.References(order) {
		got = append(got, id.Pos().String())
	}
	qt.Assert(t, qt.DeepEquals(got, []string{"ordering.yaml:10:19", "ordering.yaml:17:19"}))

	// The book itself has no references to its own declarations.
	qt.Assert(t, qt.HasLen(analyse(set, "shop.yaml").References(order), 0))
}

func TestOffset(t *testing.T) {
	set := dsttest.Load(t, archive)
	d := analyse(set, "ordering.yaml")
	off := d.Offset(12, 19)
	qt.Assert(t, qt.Equals(off, fln("ordering.yaml", 12, 1, "Clerk").offset(t, set)))

	empty := definitions.Analyse(&ast.File{}, refindex.Build(&ast.File{}, resolve.New(&ast.File{}, nil)))
	qt.Assert(t, qt.Equals(empty.Offset(1, 1), -1))
	qt.Assert(t, qt.HasLen(empty.ForOffset(0), 0))
}
