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

package ast

import "fmt"

// Walk traverses a syntax tree in depth-first order: It starts by calling
// before(node); node must not be nil. If before returns true, Walk invokes
// itself recursively for each of the non-nil children of node, followed by a
// call of after. Both functions may be nil. If before is nil, it is assumed
// to always return true.
//
// Children are visited in source order, so a walk over an unchanged tree
// always yields the same sequence of nodes.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if before == nil {
		before = func(Node) bool { return true }
	}
	if after == nil {
		after = func(Node) {}
	}
	walk(node, before, after)
}

// Inspect calls f for every node of the tree rooted at node, in the order
// used by Walk, descending into the children of a node only if f returns
// true.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, f, nil)
}

func walkList[N Node](list []N, before func(Node) bool, after func(Node)) {
	for _, node := range list {
		walk(node, before, after)
	}
}

func walk(node Node, before func(Node) bool, after func(Node)) {
	if !before(node) {
		return
	}

	switch n := node.(type) {
	case *Ident:
		// nothing to do

	case *File:
		if n.Model != nil {
			walk(n.Model, before, after)
		}

	case *Library:
		walk(n.Name, before, after)
		walkList(n.Icons, before, after)

	case *Icon:
		walk(n.Name, before, after)

	case *Book:
		walk(n.Name, before, after)
		if n.Library != nil {
			walk(n.Library, before, after)
		}
		walkList(n.Declarations, before, after)

	case *Story:
		walk(n.Name, before, after)
		if n.Book != nil {
			walk(n.Book, before, after)
		}
		walkList(n.Declarations, before, after)
		walkList(n.Activities, before, after)
		walkList(n.Footnotes, before, after)

	case *Declaration:
		walk(n.Name, before, after)
		if n.Icon != nil {
			walk(n.Icon, before, after)
		}

	case *Activity:
		if n.Agent != nil {
			walk(n.Agent, before, after)
		}
		walkList(n.Clauses, before, after)
		if n.Notes != nil {
			walk(n.Notes, before, after)
		}

	case *AgentRef:
		walk(n.Declaration, before, after)

	case *Clause:
		if n.Connector != nil {
			walk(n.Connector, before, after)
		}
		walk(n.Resource, before, after)
		walkList(n.Recipients, before, after)

	case *Connector:
		if n.Name != nil {
			walk(n.Name, before, after)
		}

	case *Resource:
		walk(n.Declaration, before, after)

	case *FootnoteLinks:
		walkList(n.Notes, before, after)

	case *Footnote:
		walk(n.Name, before, after)

	default:
		panic(fmt.Sprintf("Walk: unexpected node type %T", n))
	}

	after(node)
}
