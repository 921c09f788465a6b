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

package parser_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/errors"
	"dstlang.org/go/dst/parser"
)

const storySrc = `story: Ordering
book: Shop
declarations:
  - agent: Customer
    icon: Person
  - workobject: Order
activities:
  - agent: Customer
    clauses:
      - connector: places
        resource: Order
      - connector: with
        name: handsTo
        resource: Clerk
        recipients: [Manager, "Boss"]
    footnotes: [1]
footnotes:
  - name: 1
    text: Paid up front.
`

func TestParseStory(t *testing.T) {
	f, err := parser.ParseFile("ordering.yaml", storySrc)
	qt.Assert(t, qt.IsNil(err))

	s, ok := f.Model.(*ast.Story)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("tree: %s", pretty.Sprint(f)))
	qt.Assert(t, qt.Equals(s.Name.Name, "Ordering"))
	qt.Assert(t, qt.Equals(s.Book.Name, "Shop"))
	qt.Assert(t, qt.Equals(s.Book.Pos().String(), "ordering.yaml:2:7"))

	qt.Assert(t, qt.HasLen(s.Declarations, 2))
	qt.Assert(t, qt.Equals(s.Declarations[0].Kind, ast.Agent))
	qt.Assert(t, qt.Equals(s.Declarations[0].Icon.Name, "Person"))
	qt.Assert(t, qt.Equals(s.Declarations[1].Kind, ast.WorkObject))
	qt.Assert(t, qt.IsNil(s.Declarations[1].Icon))

	qt.Assert(t, qt.HasLen(s.Activities, 1))
	a := s.Activities[0]
	qt.Assert(t, qt.Equals(a.Agent.Declaration.Name, "Customer"))
	qt.Assert(t, qt.HasLen(a.Clauses, 2))
	qt.Assert(t, qt.Equals(a.Clauses[0].Connector.EffectiveName(), "places"))
	qt.Assert(t, qt.Equals(a.Clauses[1].Connector.EffectiveName(), "handsTo"))
	qt.Assert(t, qt.Equals(a.Clauses[1].Resource.Declaration.Name, "Clerk"))
	qt.Assert(t, qt.HasLen(a.Clauses[1].Recipients, 2))

	// Quoted scalars are positioned after the quote.
	boss := a.Clauses[1].Recipients[1].Declaration
	qt.Assert(t, qt.Equals(boss.Pos().String(), "ordering.yaml:15:32"))
	qt.Assert(t, qt.Equals(boss.End().Column(), 36))

	qt.Assert(t, qt.HasLen(a.Notes.Notes, 1))
	qt.Assert(t, qt.Equals(a.Notes.Notes[0].Name, "1"))
	qt.Assert(t, qt.HasLen(s.Footnotes, 1))
	qt.Assert(t, qt.Equals(s.Footnotes[0].Text, "Paid up front."))
}

func TestParseLibraryAndBook(t *testing.T) {
	f, err := parser.ParseFile("default.yaml", `library: Default
icons:
  - name: Person
    glyph: person
  - name: Document
    glyph: doc
`)
	qt.Assert(t, qt.IsNil(err))
	lib := f.Model.(*ast.Library)
	qt.Assert(t, qt.HasLen(lib.Icons, 2))
	qt.Assert(t, qt.Equals(lib.Icons[1].Glyph, "doc"))

	f, err = parser.ParseFile("shop.yaml", []byte(`book: Shop
library: Default
declarations:
  - agent: Clerk
`))
	qt.Assert(t, qt.IsNil(err))
	book := f.Model.(*ast.Book)
	qt.Assert(t, qt.Equals(book.Library.Name, "Default"))
	qt.Assert(t, qt.HasLen(book.Decls(), 1))
}

func TestParseEmpty(t *testing.T) {
	f, err := parser.ParseFile("empty.yaml", "")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(f.Model))
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []string
	}{{
		name: "UnknownTopLevel",
		src:  "novel: War\n",
		want: []string{`unknown top-level element "novel"; expected library, book or story`},
	}, {
		name: "UnknownKey",
		src:  "story: S\nchapters: []\n",
		want: []string{`unknown key "chapters" in story`},
	}, {
		name: "MissingResource",
		src: `story: S
activities:
  - agent: A
    clauses:
      - connector: sends
`,
		want: []string{"missing resource"},
	}, {
		name: "BookWithoutLibrary",
		src:  "book: Shop\n",
		want: []string{"book Shop must name a library"},
	}, {
		name: "BothKinds",
		src: `story: S
declarations:
  - agent: A
    workobject: B
`,
		want: []string{"declaration cannot be both an agent and a work object"},
	}, {
		name: "TwoDocuments",
		src:  "story: S\n---\nstory: T\n",
		want: []string{"expected a single YAML document"},
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := parser.ParseFile(tc.name+".yaml", tc.src)
			qt.Assert(t, qt.IsNotNil(f))
			qt.Assert(t, qt.IsNotNil(err))
			var got []string
			for _, e := range errors.Errors(err) {
				got = append(got, e.Error())
			}
			qt.Assert(t, qt.DeepEquals(got, tc.want))
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parser.ParseFile("bad.yaml", "story: [unclosed\n")
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(err.Error(), "bad.yaml:")))
}
