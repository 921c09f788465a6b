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

// Package ast declares the types used to represent the syntax trees of DST
// documents: icon libraries, story books and stories.
package ast // import "dstlang.org/go/dst/ast"

import (
	"dstlang.org/go/dst/token"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// A document holds exactly one top-level element, a Model. Names that refer
// to other nodes (a story's book, a declaration's icon, the resource of an
// activity clause) are plain identifiers: the tree does not record what they
// resolve to. Resolution is done on demand by internal/core/resolve.

// A Node represents any node in the syntax tree.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node

	node()
}

// A Model is a top-level element: a *Library, *Book or *Story.
type Model interface {
	Node
	modelNode()
}

func (*Library) modelNode() {}
func (*Book) modelNode()    {}
func (*Story) modelNode()   {}

// A DeclarationScope owns an ordered list of declarations: a *Book or a
// *Story.
type DeclarationScope interface {
	Model
	Decls() []*Declaration
}

func (b *Book) Decls() []*Declaration  { return b.Declarations }
func (s *Story) Decls() []*Declaration { return s.Declarations }

func (*File) node()          {}
func (*Ident) node()         {}
func (*Library) node()       {}
func (*Icon) node()          {}
func (*Book) node()          {}
func (*Story) node()         {}
func (*Declaration) node()   {}
func (*Activity) node()      {}
func (*AgentRef) node()      {}
func (*Clause) node()        {}
func (*Connector) node()     {}
func (*Resource) node()      {}
func (*FootnoteLinks) node() {}
func (*Footnote) node()      {}

// ----------------------------------------------------------------------------
// Identifiers

// An Ident is either the name of a node or a reference to another node by
// name.
type Ident struct {
	NamePos token.Pos
	Name    string
}

// NewIdent creates an identifier without position information.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func (x *Ident) Pos() token.Pos { return x.NamePos }
func (x *Ident) End() token.Pos { return x.NamePos.Add(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// ----------------------------------------------------------------------------
// Files and top-level elements

// A File is a single parsed document.
type File struct {
	Filename string
	Model    Model // nil for an empty document
}

func (f *File) Pos() token.Pos {
	if f.Model == nil {
		return token.NoPos
	}
	return f.Model.Pos()
}

func (f *File) End() token.Pos {
	if f.Model == nil {
		return token.NoPos
	}
	return f.Model.End()
}

// A Library is a named set of icons.
type Library struct {
	Keyword token.Pos
	Name    *Ident
	Icons   []*Icon
}

func (x *Library) Pos() token.Pos { return x.Keyword }
func (x *Library) End() token.Pos {
	if n := len(x.Icons); n > 0 {
		return x.Icons[n-1].End()
	}
	return x.Name.End()
}

// An Icon associates a name with a glyph.
type Icon struct {
	Name     *Ident
	GlyphPos token.Pos
	Glyph    string
}

func (x *Icon) Pos() token.Pos { return x.Name.Pos() }
func (x *Icon) End() token.Pos {
	if x.Glyph != "" {
		return x.GlyphPos.Add(len(x.Glyph))
	}
	return x.Name.End()
}

// A Book is a reusable set of declarations. Its icons come from the library
// it names.
type Book struct {
	Keyword      token.Pos
	Name         *Ident
	Library      *Ident // reference to a Library
	Declarations []*Declaration
}

func (x *Book) Pos() token.Pos { return x.Keyword }
func (x *Book) End() token.Pos {
	end := x.Name.End()
	if x.Library != nil {
		end = later(end, x.Library.End())
	}
	if n := len(x.Declarations); n > 0 {
		end = later(end, x.Declarations[n-1].End())
	}
	return end
}

// A Story is a sequence of activities between declared agents and work
// objects. It may use the declarations of a Book.
type Story struct {
	Keyword      token.Pos
	Name         *Ident
	Book         *Ident // optional reference to a Book
	Declarations []*Declaration
	Activities   []*Activity
	Footnotes    []*Footnote
}

func (x *Story) Pos() token.Pos { return x.Keyword }
func (x *Story) End() token.Pos {
	end := x.Name.End()
	if x.Book != nil {
		end = later(end, x.Book.End())
	}
	if n := len(x.Declarations); n > 0 {
		end = later(end, x.Declarations[n-1].End())
	}
	if n := len(x.Activities); n > 0 {
		end = later(end, x.Activities[n-1].End())
	}
	if n := len(x.Footnotes); n > 0 {
		end = later(end, x.Footnotes[n-1].End())
	}
	return end
}

// ----------------------------------------------------------------------------
// Declarations

// DeclKind distinguishes the two kinds of declaration.
type DeclKind int

const (
	WorkObject DeclKind = iota
	Agent
)

func (k DeclKind) String() string {
	switch k {
	case Agent:
		return "agent"
	case WorkObject:
		return "work object"
	}
	return "unknown"
}

// A Declaration introduces an agent or a work object.
type Declaration struct {
	KindPos token.Pos
	Kind    DeclKind
	Name    *Ident
	Icon    *Ident // optional reference to an Icon
}

func (x *Declaration) Pos() token.Pos { return x.KindPos }
func (x *Declaration) End() token.Pos {
	if x.Icon != nil {
		return later(x.Name.End(), x.Icon.End())
	}
	return x.Name.End()
}

// ----------------------------------------------------------------------------
// Activities

// An Activity is a chain of clauses started by an agent.
type Activity struct {
	Agent   *AgentRef
	Clauses []*Clause // len(Clauses) > 0 for a well-formed activity
	Notes   *FootnoteLinks
}

func (x *Activity) Pos() token.Pos {
	if x.Agent != nil {
		return x.Agent.Pos()
	}
	if len(x.Clauses) > 0 {
		return x.Clauses[0].Pos()
	}
	return token.NoPos
}

func (x *Activity) End() token.Pos {
	end := token.NoPos
	if x.Agent != nil {
		end = x.Agent.End()
	}
	if n := len(x.Clauses); n > 0 {
		end = later(end, x.Clauses[n-1].End())
	}
	if x.Notes != nil {
		end = later(end, x.Notes.End())
	}
	return end
}

// An AgentRef names the agent that initiates an activity.
type AgentRef struct {
	Declaration *Ident
}

func (x *AgentRef) Pos() token.Pos { return x.Declaration.Pos() }
func (x *AgentRef) End() token.Pos { return x.Declaration.End() }

// A Clause is one step of an activity: a connector followed by the resource
// it leads to. Recipients lists further resources for a fan-out.
type Clause struct {
	Connector  *Connector
	Resource   *Resource
	Recipients []*Resource
}

func (x *Clause) Pos() token.Pos {
	if x.Connector != nil {
		return x.Connector.Pos()
	}
	return x.Resource.Pos()
}

func (x *Clause) End() token.Pos {
	if n := len(x.Recipients); n > 0 {
		return x.Recipients[n-1].End()
	}
	return x.Resource.End()
}

// A Connector labels the edge between two resources. Name, if set,
// overrides Label as the connector's identity.
type Connector struct {
	LabelPos token.Pos
	Label    string
	Name     *Ident // optional
}

func (x *Connector) Pos() token.Pos { return x.LabelPos }
func (x *Connector) End() token.Pos {
	end := x.LabelPos.Add(len(x.Label))
	if x.Name != nil {
		end = later(end, x.Name.End())
	}
	return end
}

// EffectiveName returns the explicit name if there is one, and the label
// otherwise.
func (x *Connector) EffectiveName() string {
	if x.Name != nil && x.Name.Name != "" {
		return x.Name.Name
	}
	return x.Label
}

// A Resource refers to a declaration from within a clause.
type Resource struct {
	Declaration *Ident
}

func (x *Resource) Pos() token.Pos { return x.Declaration.Pos() }
func (x *Resource) End() token.Pos { return x.Declaration.End() }

// FootnoteLinks attaches footnotes to an activity.
type FootnoteLinks struct {
	Lbrack token.Pos
	Notes  []*Ident
}

func (x *FootnoteLinks) Pos() token.Pos { return x.Lbrack }
func (x *FootnoteLinks) End() token.Pos {
	if n := len(x.Notes); n > 0 {
		return x.Notes[n-1].End()
	}
	return x.Lbrack.Add(1)
}

// A Footnote is a numbered remark of a story.
type Footnote struct {
	Name    *Ident
	TextPos token.Pos
	Text    string
}

func (x *Footnote) Pos() token.Pos { return x.Name.Pos() }
func (x *Footnote) End() token.Pos {
	if x.Text != "" {
		return later(x.Name.End(), x.TextPos.Add(len(x.Text)))
	}
	return x.Name.End()
}

// ----------------------------------------------------------------------------
// Convenience functions

// Name returns the identifier naming n, or nil if n is not a named node.
func Name(n Node) *Ident {
	switch x := n.(type) {
	case *Library:
		return x.Name
	case *Book:
		return x.Name
	case *Story:
		return x.Name
	case *Icon:
		return x.Name
	case *Declaration:
		return x.Name
	case *Footnote:
		return x.Name
	}
	return nil
}

// Span returns the source range of the given property of n. An empty or
// unknown property denotes the whole node.
func Span(n Node, property string) (start, end token.Pos) {
	var x Node
	switch property {
	case "name":
		if id := Name(n); id != nil {
			x = id
		} else if c, ok := n.(*Connector); ok && c.Name != nil {
			x = c.Name
		}
	case "declaration":
		switch r := n.(type) {
		case *Resource:
			x = r.Declaration
		case *AgentRef:
			x = r.Declaration
		}
	case "icon":
		if d, ok := n.(*Declaration); ok && d.Icon != nil {
			x = d.Icon
		}
	case "book":
		if s, ok := n.(*Story); ok && s.Book != nil {
			x = s.Book
		}
	case "library":
		if b, ok := n.(*Book); ok && b.Library != nil {
			x = b.Library
		}
	}
	if x == nil {
		x = n
	}
	return x.Pos(), x.End()
}

// later returns the later of two positions, ignoring NoPos.
func later(a, b token.Pos) token.Pos {
	switch {
	case !b.IsValid():
		return a
	case !a.IsValid(), a.Compare(b) < 0:
		return b
	}
	return a
}
