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

// Package refindex records, for one file, which nodes are the target of at
// least one reference.
package refindex

import (
	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/core/resolve"
)

// An Index maps reference targets to the identifiers referring to them.
type Index struct {
	sites    []resolve.Site
	bindings map[*ast.Ident]resolve.Symbol
	refs     map[ast.Node][]*ast.Ident
	targets  []ast.Node
}

// Build binds every reference site of f using r, in a single pass in tree
// order.
func Build(f *ast.File, r *resolve.Resolver) *Index {
	x := &Index{
		bindings: map[*ast.Ident]resolve.Symbol{},
		refs:     map[ast.Node][]*ast.Ident{},
	}
	x.sites = resolve.Sites(f)
	for _, s := range x.sites {
		sym, ok := r.Bind(s)
		if !ok {
			continue
		}
		x.bindings[s.Ref] = sym
		if _, seen := x.refs[sym.Node]; !seen {
			x.targets = append(x.targets, sym.Node)
		}
		x.refs[sym.Node] = append(x.refs[sym.Node], s.Ref)
	}
	return x
}

// Reachable reports whether at least one reference of the file binds to n.
func (x *Index) Reachable(n ast.Node) bool {
	_, ok := x.refs[n]
	return ok
}

// Targets returns all reference targets in order of first reference.
func (x *Index) Targets() []ast.Node {
	return x.targets
}

// References returns the identifiers binding to n in tree order.
func (x *Index) References(n ast.Node) []*ast.Ident {
	return x.refs[n]
}

// Binding returns the symbol ref was bound to.
func (x *Index) Binding(ref *ast.Ident) (resolve.Symbol, bool) {
	s, ok := x.bindings[ref]
	return s, ok
}

// Sites returns the reference sites of the file in tree order.
func (x *Index) Sites() []resolve.Site {
	return x.sites
}
