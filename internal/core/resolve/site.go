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

package resolve

import (
	"fmt"

	"dstlang.org/go/dst/ast"
)

// A Slot identifies the grammar position a reference occupies.
type Slot int

const (
	SlotUnknown Slot = iota

	SlotBook      // the book a story uses
	SlotLibrary   // the icon library of a book
	SlotIcon      // the icon of a declaration
	SlotAgent     // the agent initiating an activity
	SlotResource  // the resource of an activity clause
	SlotRecipient // an extra recipient of an activity clause
	SlotFootnote  // a footnote linked from an activity
)

var slotNames = [...]string{
	SlotUnknown:   "unknown",
	SlotBook:      "book",
	SlotLibrary:   "library",
	SlotIcon:      "icon",
	SlotAgent:     "agent",
	SlotResource:  "resource",
	SlotRecipient: "recipient",
	SlotFootnote:  "footnote",
}

func (s Slot) String() string {
	if s >= 0 && int(s) < len(slotNames) {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// A Site is a place in the tree where an identifier refers to another node.
type Site struct {
	// Ref is the referring identifier.
	Ref *ast.Ident

	// Container is the node holding Ref: a *Story for SlotBook, a *Book for
	// SlotLibrary, a *Declaration for SlotIcon, an *AgentRef for SlotAgent,
	// a *Resource for SlotResource and SlotRecipient, and a *FootnoteLinks
	// for SlotFootnote.
	Container ast.Node

	Slot Slot

	// Clause is the index of the enclosing clause within its activity, or
	// -1 if the site is not inside a clause.
	Clause int
}

// FirstClause reports whether s is the resource of the first clause of an
// activity.
func (s Site) FirstClause() bool {
	return s.Slot == SlotResource && s.Clause == 0
}

// Sites returns all reference sites of f in tree order.
func Sites(f *ast.File) []Site {
	var sites []Site
	add := func(ref *ast.Ident, container ast.Node, slot Slot, clause int) {
		if ref != nil {
			sites = append(sites, Site{Ref: ref, Container: container, Slot: slot, Clause: clause})
		}
	}
	icons := func(decls []*ast.Declaration) {
		for _, d := range decls {
			add(d.Icon, d, SlotIcon, -1)
		}
	}

	switch m := f.Model.(type) {
	case *ast.Library, nil:
		// no references

	case *ast.Book:
		add(m.Library, m, SlotLibrary, -1)
		icons(m.Declarations)

	case *ast.Story:
		add(m.Book, m, SlotBook, -1)
		icons(m.Declarations)
		for _, a := range m.Activities {
			if a.Agent != nil {
				add(a.Agent.Declaration, a.Agent, SlotAgent, -1)
			}
			for i, c := range a.Clauses {
				add(c.Resource.Declaration, c.Resource, SlotResource, i)
				for _, r := range c.Recipients {
					add(r.Declaration, r, SlotRecipient, i)
				}
			}
			if a.Notes != nil {
				for _, n := range a.Notes.Notes {
					add(n, a.Notes, SlotFootnote, -1)
				}
			}
		}
	}
	return sites
}

// ClauseSites returns the sites of the resource and recipients of the i-th
// clause of a.
func ClauseSites(a *ast.Activity, i int) (resource Site, recipients []Site) {
	c := a.Clauses[i]
	resource = Site{Ref: c.Resource.Declaration, Container: c.Resource, Slot: SlotResource, Clause: i}
	for _, r := range c.Recipients {
		recipients = append(recipients, Site{Ref: r.Declaration, Container: r, Slot: SlotRecipient, Clause: i})
	}
	return resource, recipients
}
