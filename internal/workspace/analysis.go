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

package workspace

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/errors"
	"dstlang.org/go/internal/core/link"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
	"dstlang.org/go/internal/core/validate"
	"dstlang.org/go/internal/diag"
	"dstlang.org/go/internal/lsp/definitions"
)

// A document is one version of an open file. Documents are never modified
// once stored; an update replaces the document.
type document struct {
	filename string
	version  int32
	stamp    uint64 // cycle generation of the update that stored it
	file     *ast.File
	parseErr error
}

// A snapshot is the set of documents one cycle works on.
type snapshot struct {
	docs []*document // sorted by filename
}

func (s *snapshot) Models() []ast.Model {
	var a []ast.Model
	for _, d := range s.docs {
		if d.file.Model != nil {
			a = append(a, d.file.Model)
		}
	}
	return a
}

func (s *snapshot) Lookup(name string) ast.Model {
	for _, m := range s.Models() {
		if id := ast.Name(m); id != nil && id.Name == name {
			return m
		}
	}
	return nil
}

// declaring returns the documents whose top-level element is called name.
func (s *snapshot) declaring(name string) []*document {
	var a []*document
	for _, d := range s.docs {
		if d.file.Model == nil {
			continue
		}
		if id := ast.Name(d.file.Model); id != nil && id.Name == name {
			a = append(a, d)
		}
	}
	return a
}

// fingerprint identifies the versions of all documents that the analysis
// of d may depend on: those that could satisfy its book and library links.
func (s *snapshot) fingerprint(d *document) string {
	var b strings.Builder
	var visit func(name string, depth int)
	visit = func(name string, depth int) {
		for _, dep := range s.declaring(name) {
			fmt.Fprintf(&b, "%s=%s#%d;", name, dep.filename, dep.stamp)
			if bk, ok := dep.file.Model.(*ast.Book); ok && depth == 0 && bk.Library != nil {
				visit(bk.Library.Name, depth+1)
			}
		}
	}
	switch m := d.file.Model.(type) {
	case *ast.Story:
		if m.Book != nil {
			visit(m.Book.Name, 0)
		}
	case *ast.Book:
		if m.Library != nil {
			visit(m.Library.Name, 1)
		}
	}
	return b.String()
}

// dependsOn reports whether the analysis of d may change when the document
// named filename changes.
func (s *snapshot) dependsOn(d *document, filename string) bool {
	return strings.Contains(s.fingerprint(d), "="+filename+"#")
}

type cacheKey struct {
	filename string
	version  int32
	stamp    uint64
	deps     string
}

// An Analysis holds the results of checking one document.
type Analysis struct {
	Filename string
	Version  int32
	File     *ast.File

	// Diagnostics holds parse errors, followed by validation results and
	// unresolved references.
	Diagnostics []diag.Diagnostic

	Index       *refindex.Index
	Definitions *definitions.FileDefinitions

	// Generation is the cycle that produced the analysis.
	Generation uint64
}

// analyse runs the semantic passes over a parsed document.
func analyse(ctx context.Context, s *snapshot, d *document, reg *validate.Registry) (*Analysis, error) {
	a := &Analysis{
		Filename: d.filename,
		Version:  d.version,
		File:     d.file,
	}
	var sink diag.Sink
	for _, e := range errors.Errors(d.parseErr) {
		sink.Accept(diag.Diagnostic{
			Severity: diag.Error,
			Message:  e.Error(),
			Pos:      e.Position(),
			End:      e.Position(),
			Check:    "parse",
		})
	}

	r := resolve.New(d.file, s)
	a.Index = refindex.Build(d.file, r)
	a.Definitions = definitions.Analyse(d.file, a.Index)
	if err := validate.Validate(ctx, d.file, r, a.Index, reg, &sink); err != nil {
		return nil, err
	}
	link.Check(r, a.Index, &sink)
	a.Diagnostics = sink.Diagnostics()
	return a, nil
}

func sortedDocs(m map[string]*document) []*document {
	docs := make([]*document, 0, len(m))
	for _, d := range m {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].filename < docs[j].filename })
	return docs
}
