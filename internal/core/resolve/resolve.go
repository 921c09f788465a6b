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

// Package resolve computes, for each reference in a DST document, the
// ordered list of nodes the reference may bind to.
//
// Candidates are layered. For references inside a story, the story's own
// declarations form the local layer and the declarations of the book it uses
// form the outer layer. A name present in the local layer hides any outer
// candidate with that name. Within a layer the first declaration of a name
// wins. A missing book or library contributes an empty layer.
//
// References to top-level elements (the book of a story, the library of a
// book) and to footnotes are looked up in all named elements of the document,
// followed by the top-level elements of all other documents.
package resolve

import (
	"fmt"

	"dstlang.org/go/dst/ast"
)

// A Layer tells where a candidate was found.
type Layer int

const (
	Local  Layer = iota // the enclosing story, or the document itself
	Outer               // the book used by a story, or the library of a book
	Global              // another document
)

func (l Layer) String() string {
	switch l {
	case Local:
		return "local"
	case Outer:
		return "outer"
	case Global:
		return "global"
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// A Symbol is a candidate target of a reference.
type Symbol struct {
	Name  string
	Node  ast.Node
	Layer Layer
}

// Declaration returns the declaration s denotes, if any.
func (s Symbol) Declaration() (*ast.Declaration, bool) {
	d, ok := s.Node.(*ast.Declaration)
	return d, ok
}

// IsAgent reports whether s denotes an agent declaration.
func (s Symbol) IsAgent() bool {
	d, ok := s.Declaration()
	return ok && d.Kind == ast.Agent
}

// IsWorkObject reports whether s denotes a work object declaration.
func (s Symbol) IsWorkObject() bool {
	d, ok := s.Declaration()
	return ok && d.Kind == ast.WorkObject
}

// Documents gives access to the top-level elements of other documents.
type Documents interface {
	// Lookup returns the first top-level element with the given name, or nil.
	Lookup(name string) ast.Model

	// Models returns all top-level elements in a stable order.
	Models() []ast.Model
}

// Lookup returns the first candidate in list with the given name.
func Lookup(list []Symbol, name string) (Symbol, bool) {
	for _, s := range list {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

type class struct {
	slot     Slot
	first    bool
	fallback bool
}

// A Resolver computes candidates for the references of a single file.
// Candidate lists are computed once per class of site and then reused, so a
// Resolver must be discarded when the file or any document it depends on
// changes. A Resolver is not safe for concurrent use.
type Resolver struct {
	file *ast.File
	docs Documents

	cache map[class][]Symbol
	decls []Symbol // unfiltered declaration scope, computed lazily

	linked  bool
	book    *ast.Book
	library *ast.Library
}

// New returns a Resolver for f. docs may be nil, in which case no other
// documents are visible.
func New(f *ast.File, docs Documents) *Resolver {
	return &Resolver{
		file:  f,
		docs:  docs,
		cache: map[class][]Symbol{},
	}
}

// File returns the file r resolves references for.
func (r *Resolver) File() *ast.File { return r.file }

// Book returns the book that forms the outer layer of a story, or nil if the
// file is not a story or its book cannot be found.
func (r *Resolver) Book() *ast.Book {
	r.link()
	return r.book
}

// Library returns the icon library visible from the file: the library of a
// book, or the library of the book a story uses. It returns nil if there is
// no such library.
func (r *Resolver) Library() *ast.Library {
	r.link()
	return r.library
}

func (r *Resolver) link() {
	if r.linked {
		return
	}
	r.linked = true

	var book *ast.Book
	switch m := r.file.Model.(type) {
	case *ast.Book:
		book = m
	case *ast.Story:
		if m.Book == nil {
			return
		}
		sym, ok := r.Bind(Site{Ref: m.Book, Container: m, Slot: SlotBook, Clause: -1})
		if !ok {
			return
		}
		r.book = sym.Node.(*ast.Book)
		book = r.book
	default:
		return
	}
	if book.Library == nil {
		return
	}
	sym, ok := r.Bind(Site{Ref: book.Library, Container: book, Slot: SlotLibrary, Clause: -1})
	if ok {
		r.library = sym.Node.(*ast.Library)
	}
}

// Resolve returns the candidates for site in priority order. The result must
// not be modified.
func (r *Resolver) Resolve(site Site) []Symbol {
	c, compute := r.classify(site)
	if list, ok := r.cache[c]; ok {
		return list
	}
	list := compute()
	r.cache[c] = list
	return list
}

// Bind returns the first candidate of site named like its reference.
func (r *Resolver) Bind(site Site) (Symbol, bool) {
	if site.Ref == nil {
		return Symbol{}, false
	}
	return Lookup(r.Resolve(site), site.Ref.Name)
}

// Denote returns the declaration an agent, resource or recipient reference
// names, regardless of the kind restrictions of its slot. For all other sites
// it is equivalent to Bind.
func (r *Resolver) Denote(site Site) (Symbol, bool) {
	if site.Ref == nil {
		return Symbol{}, false
	}
	switch site.Slot {
	case SlotAgent, SlotResource, SlotRecipient:
		s, ok := r.file.Model.(*ast.Story)
		if !ok {
			break
		}
		if r.decls == nil {
			r.decls = r.declarations(s, nil)
		}
		return Lookup(r.decls, site.Ref.Name)
	}
	return r.Bind(site)
}

func (r *Resolver) classify(site Site) (class, func() []Symbol) {
	story, inStory := r.file.Model.(*ast.Story)

	switch site.Slot {
	case SlotIcon:
		if _, ok := site.Container.(*ast.Declaration); ok {
			return class{slot: SlotIcon}, r.icons
		}

	case SlotAgent:
		if _, ok := site.Container.(*ast.AgentRef); ok && inStory {
			return class{slot: SlotAgent}, func() []Symbol {
				return r.declarations(story, isAgent)
			}
		}

	case SlotResource, SlotRecipient:
		if _, ok := site.Container.(*ast.Resource); ok && inStory {
			if site.FirstClause() {
				return class{slot: SlotResource, first: true}, func() []Symbol {
					return r.declarations(story, isWorkObject)
				}
			}
			// Resources of later clauses and recipients share one scope.
			return class{slot: SlotResource}, func() []Symbol {
				return r.declarations(story, nil)
			}
		}

	case SlotBook, SlotLibrary, SlotFootnote:
		return class{slot: site.Slot, fallback: true}, func() []Symbol {
			return r.global(targetFilter(site.Slot))
		}
	}
	return class{slot: site.Slot, fallback: true}, func() []Symbol {
		return r.global(nil)
	}
}

func isAgent(d *ast.Declaration) bool      { return d.Kind == ast.Agent }
func isWorkObject(d *ast.Declaration) bool { return d.Kind == ast.WorkObject }

func targetFilter(s Slot) func(ast.Node) bool {
	switch s {
	case SlotBook:
		return func(n ast.Node) bool { _, ok := n.(*ast.Book); return ok }
	case SlotLibrary:
		return func(n ast.Node) bool { _, ok := n.(*ast.Library); return ok }
	case SlotFootnote:
		return func(n ast.Node) bool { _, ok := n.(*ast.Footnote); return ok }
	}
	return nil
}

// declarations returns the story declarations accepted by keep, followed by
// those of its book that are not hidden by a story declaration. A nil keep
// accepts all declarations.
func (r *Resolver) declarations(s *ast.Story, keep func(*ast.Declaration) bool) []Symbol {
	var list []Symbol
	seen := map[string]bool{}
	add := func(decls []*ast.Declaration, l Layer) {
		for _, d := range decls {
			if d.Name == nil || seen[d.Name.Name] {
				continue
			}
			if keep != nil && !keep(d) {
				continue
			}
			seen[d.Name.Name] = true
			list = append(list, Symbol{Name: d.Name.Name, Node: d, Layer: l})
		}
	}
	add(s.Declarations, Local)
	if b := r.Book(); b != nil {
		add(b.Declarations, Outer)
	}
	return list
}

func (r *Resolver) icons() []Symbol {
	lib := r.Library()
	if lib == nil {
		return nil
	}
	var list []Symbol
	seen := map[string]bool{}
	for _, ic := range lib.Icons {
		if ic.Name == nil || seen[ic.Name.Name] {
			continue
		}
		seen[ic.Name.Name] = true
		list = append(list, Symbol{Name: ic.Name.Name, Node: ic, Layer: Outer})
	}
	return list
}

// global returns the named elements of the file followed by the top-level
// elements of other documents. A nil accept admits any element.
func (r *Resolver) global(accept func(ast.Node) bool) []Symbol {
	var list []Symbol
	seen := map[string]bool{}
	visited := map[ast.Node]bool{}
	add := func(n ast.Node, l Layer) {
		id := ast.Name(n)
		if id == nil || seen[id.Name] || visited[n] {
			return
		}
		if accept != nil && !accept(n) {
			return
		}
		seen[id.Name] = true
		visited[n] = true
		list = append(list, Symbol{Name: id.Name, Node: n, Layer: l})
	}

	if r.file.Model != nil {
		ast.Inspect(r.file.Model, func(n ast.Node) bool {
			add(n, Local)
			return true
		})
	}
	if r.docs != nil {
		for _, m := range r.docs.Models() {
			if m != r.file.Model {
				add(m, Global)
			}
		}
	}
	return list
}
