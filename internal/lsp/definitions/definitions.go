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

// Package definitions answers go-to-definition and find-references
// queries for a single DST document.
package definitions

import (
	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/token"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/lsp/rangeset"
)

// span is an identifier of the document: either the name of a node or a
// reference to one. For an unresolved reference, target is nil.
type span struct {
	ident  *ast.Ident
	target ast.Node
	isRef  bool
}

// FileDefinitions holds the identifiers of one document by offset.
type FileDefinitions struct {
	File  *ast.File
	index *refindex.Index
	spans rangeset.Map[span]
}

// Analyse records the names and references of f. idx must have been built
// for f.
func Analyse(f *ast.File, idx *refindex.Index) *FileDefinitions {
	d := &FileDefinitions{File: f, index: idx}
	if f.Model != nil {
		ast.Inspect(f.Model, func(n ast.Node) bool {
			if id := ast.Name(n); id != nil {
				d.add(span{ident: id, target: n})
			}
			return true
		})
	}
	for _, s := range idx.Sites() {
		sp := span{ident: s.Ref, isRef: true}
		if sym, ok := idx.Binding(s.Ref); ok {
			sp.target = sym.Node
		}
		d.add(sp)
	}
	return d
}

// add records an identifier. A cursor just after the identifier still
// selects it.
func (d *FileDefinitions) add(s span) {
	if s.ident.Name == "" || !s.ident.NamePos.IsValid() {
		return
	}
	start := s.ident.Pos().Offset()
	d.spans.Add(start, start+len(s.ident.Name)+1, s)
}

// ForOffset returns the nodes the identifier at offset refers to. For the
// name of a node, this is the node itself. It returns nil if there is no
// identifier at offset or if it is an unresolved reference.
func (d *FileDefinitions) ForOffset(offset int) []ast.Node {
	var nodes []ast.Node
	for _, s := range d.spans.Lookup(offset) {
		if s.target != nil {
			nodes = append(nodes, s.target)
		}
	}
	return nodes
}

// IsReference reports whether the identifier at offset is a reference
// rather than a name.
func (d *FileDefinitions) IsReference(offset int) bool {
	for _, s := range d.spans.Lookup(offset) {
		if s.isRef {
			return true
		}
	}
	return false
}

// ReferencesTo returns the references within this document to whatever
// the identifier at offset denotes.
func (d *FileDefinitions) ReferencesTo(offset int) []*ast.Ident {
	var refs []*ast.Ident
	for _, n := range d.ForOffset(offset) {
		refs = append(refs, d.index.References(n)...)
	}
	return refs
}

// References returns the references within this document to n, which may
// be declared in another document.
func (d *FileDefinitions) References(n ast.Node) []*ast.Ident {
	return d.index.References(n)
}

// Offset converts a line and column to an offset in the document. It
// returns -1 if the document has no position information.
func (d *FileDefinitions) Offset(line, column int) int {
	f := d.tokenFile()
	if f == nil {
		return -1
	}
	return f.Offset(f.PosAt(line, column))
}

func (d *FileDefinitions) tokenFile() *token.File {
	if d.File.Model == nil {
		return nil
	}
	return d.File.Model.Pos().File()
}
