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

package validate_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/parser"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/core/validate"
	"dstlang.org/go/internal/diag"
	"dstlang.org/go/internal/dsttest"
)

// run validates every file of set in order and returns the diagnostics.
func run(t *testing.T, set *dsttest.Set, reg *validate.Registry) []diag.Diagnostic {
	t.Helper()
	var sink diag.Sink
	for _, f := range set.Files {
		r := resolve.New(f, set)
		idx := refindex.Build(f, r)
		err := validate.Validate(context.Background(), f, r, idx, reg, &sink)
		qt.Assert(t, qt.IsNil(err))
	}
	return sink.Diagnostics()
}

func render(list []diag.Diagnostic) string {
	var b strings.Builder
	diag.Print(&b, list)
	return b.String()
}

func TestValidate(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.HasLen(files, 0)))

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			qt.Assert(t, qt.IsNil(err))
			set := dsttest.Parse(t, a)

			got := render(run(t, set, nil))
			want := dsttest.Section(a, "out/diagnostics")
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("unexpected diagnostics (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	a, err := txtar.ParseFile("testdata/naming.txtar")
	qt.Assert(t, qt.IsNil(err))
	set := dsttest.Parse(t, a)

	first := render(run(t, set, nil))
	second := render(run(t, set, nil))
	qt.Assert(t, qt.Equals(second, first))

	// A single resolver and index may be shared between runs.
	f := set.File("naming.yaml")
	r := resolve.New(f, set)
	idx := refindex.Build(f, r)
	var s1, s2 diag.Sink
	qt.Assert(t, qt.IsNil(validate.Validate(context.Background(), f, r, idx, nil, &s1)))
	qt.Assert(t, qt.IsNil(validate.Validate(context.Background(), f, r, idx, nil, &s2)))
	qt.Assert(t, qt.Equals(render(s2.Diagnostics()), render(s1.Diagnostics())))
}

func TestFootnoteReachability(t *testing.T) {
	set := dsttest.Load(t, `
-- notes.yaml --
story: Notes
declarations:
  - agent: Clerk
  - workobject: Order
activities:
  - agent: Clerk
    clauses:
      - connector: files
        resource: Order
    footnotes: [1, 3]
footnotes:
  - name: 1
  - name: 2
  - name: 3
`)
	list := run(t, set, nil)
	qt.Assert(t, qt.HasLen(list, 1))
	qt.Assert(t, qt.Equals(list[0].Severity, diag.Warning))
	qt.Assert(t, qt.Equals(list[0].Message, "Unreferenced footnote '2'."))
	qt.Assert(t, qt.Equals(list[0].Check, "unreferencedFootnotes"))
	qt.Assert(t, qt.Equals(list[0].Node, ast.Node(set.Story("notes.yaml").Footnotes[1])))
}

func TestOverrideIgnoresKind(t *testing.T) {
	set := dsttest.Load(t, `
-- shop.yaml --
book: Shop
library: Default
declarations:
  - agent: Clerk
  - workobject: Order
-- story.yaml --
story: Mixed
book: Shop
declarations:
  - workobject: Clerk
  - agent: Order
`)
	list := run(t, set, nil)
	var got []string
	for _, d := range list {
		got = append(got, d.Message)
	}
	qt.Assert(t, qt.DeepEquals(got, []string{
		"An agent or work object named 'Clerk' is already declared in book 'Shop'.",
		"An agent or work object named 'Order' is already declared in book 'Shop'.",
	}))
	for _, d := range list {
		qt.Assert(t, qt.Equals(d.Severity, diag.Error))
		qt.Assert(t, qt.Equals(d.Property, "name"))
	}
}

func TestRegistry(t *testing.T) {
	qt.Assert(t, qt.DeepEquals(validate.Default().Checks(), []string{
		"uniqueDeclarationNames",
		"declarationOverride",
		"uniqueFootnotes",
		"unreferencedFootnotes",
		"declarationCase",
		"activityChain",
		"multipleRecipients",
		"connectorCase",
		"iconCase",
	}))

	// A custom registry runs only its own checks, for all matching nodes.
	reg := &validate.Registry{}
	validate.Register(reg, "everyScope", func(c *validate.Context, s ast.DeclarationScope) {
		c.Warnf(s, "name", "scope with %d declarations", len(s.Decls()))
	})
	validate.Register(reg, "everyResource", func(c *validate.Context, r *ast.Resource) {
		c.Errorf(r, "declaration", "resource %s", r.Declaration.Name)
	})
	set := dsttest.Load(t, `
-- shop.yaml --
book: Shop
library: Default
declarations:
  - agent: Clerk
-- story.yaml --
story: Small
book: Shop
declarations:
  - workobject: Order
activities:
  - agent: Clerk
    clauses:
      - connector: takes
        resource: Order
`)
	got := render(run(t, set, reg))
	want := `shop.yaml:1:7: warning: scope with 1 declarations
story.yaml:1:8: warning: scope with 1 declarations
story.yaml:9:19: error: resource Order
`
	qt.Assert(t, qt.Equals(got, want))
}

func TestCancel(t *testing.T) {
	set := dsttest.Load(t, `
-- story.yaml --
story: Small
declarations:
  - agent: clerk
`)
	f := set.File("story.yaml")
	r := resolve.New(f, set)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sink diag.Sink
	err := validate.Validate(ctx, f, r, refindex.Build(f, r), nil, &sink)
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
	qt.Assert(t, qt.Equals(sink.Len(), 0))
}

func TestEmptyFile(t *testing.T) {
	f := &ast.File{Filename: "empty.yaml"}
	r := resolve.New(f, nil)
	var sink diag.Sink
	err := validate.Validate(context.Background(), f, r, refindex.Build(f, r), nil, &sink)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(sink.Len(), 0))
}

func TestMissingNames(t *testing.T) {
	f, err := parser.ParseFile("gaps.yaml", `story: Gaps
declarations:
  - icon: Person
  - icon: Person
footnotes:
  - text: First.
  - text: Second.
`)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsNotNil(f.Model))

	r := resolve.New(f, nil)
	var sink diag.Sink
	err = validate.Validate(context.Background(), f, r, refindex.Build(f, r), nil, &sink)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(sink.Len(), 0), qt.Commentf("%v", sink.Diagnostics()))
}
