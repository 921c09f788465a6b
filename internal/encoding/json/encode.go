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

// Package json exports DST syntax trees as JSON.
//
// Every node becomes an object with a "$type" member naming its kind.
// References become objects holding the referenced name in "$refText" and,
// if the reference resolves, the path of the target in "$ref". A path has
// the form "file#/member@index/member", where the file part is omitted for
// targets in the exported document itself.
package json

import (
	"encoding/json"
	"fmt"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/token"
	"dstlang.org/go/internal/core/refindex"
	"dstlang.org/go/internal/core/resolve"
)

// Config controls the output of Marshal.
type Config struct {
	// TextRegions adds a "$textRegion" member with the source range of
	// each node.
	TextRegions bool

	// SourceText adds a "$sourceText" member holding the source of the
	// top-level element.
	SourceText bool

	// Indent, if not empty, is used to indent the output.
	Indent string
}

type object = map[string]any

type encoder struct {
	cfg   Config
	file  *ast.File
	idx   *refindex.Index
	paths map[ast.Node]string
}

// Marshal encodes f. idx provides the bindings of references and may be
// nil, in which case no "$ref" members are written. docs is used to locate
// targets in other documents and may be nil.
func Marshal(f *ast.File, idx *refindex.Index, docs resolve.Documents, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if f.Model == nil {
		return nil, fmt.Errorf("%s: document is empty", f.Filename)
	}
	e := &encoder{
		cfg:   *cfg,
		file:  f,
		idx:   idx,
		paths: map[ast.Node]string{},
	}
	e.addPaths(f.Model, "")
	if docs != nil {
		for _, m := range docs.Models() {
			if m != f.Model {
				e.addPaths(m, m.Pos().Filename())
			}
		}
	}

	v := e.model(f.Model)
	if cfg.SourceText {
		if tf := f.Model.Pos().File(); tf != nil {
			v["$sourceText"] = string(tf.Content())
		}
	}
	if cfg.Indent != "" {
		return json.MarshalIndent(v, "", cfg.Indent)
	}
	return json.Marshal(v)
}

// addPaths records the path of every node of m that can be referenced.
func (e *encoder) addPaths(m ast.Model, file string) {
	add := func(n ast.Node, p string) {
		if _, ok := e.paths[n]; !ok {
			e.paths[n] = file + "#" + p
		}
	}
	add(m, "")
	decls := func(list []*ast.Declaration) {
		for i, d := range list {
			add(d, fmt.Sprintf("/declarations@%d", i))
		}
	}
	switch m := m.(type) {
	case *ast.Library:
		for i, ic := range m.Icons {
			add(ic, fmt.Sprintf("/icons@%d", i))
		}
	case *ast.Book:
		decls(m.Declarations)
	case *ast.Story:
		decls(m.Declarations)
		for i, f := range m.Footnotes {
			add(f, fmt.Sprintf("/footnotes@%d", i))
		}
	}
}

func (e *encoder) node(typ string, n ast.Node) object {
	v := object{"$type": typ}
	if e.cfg.TextRegions {
		v["$textRegion"] = region(n.Pos(), n.End())
	}
	return v
}

func region(start, end token.Pos) object {
	if !start.IsValid() {
		return nil
	}
	s, t := start.Position(), end.Position()
	return object{
		"offset": s.Offset,
		"length": t.Offset - s.Offset,
		"range": object{
			"start": object{"line": s.Line - 1, "character": s.Column - 1},
			"end":   object{"line": t.Line - 1, "character": t.Column - 1},
		},
	}
}

func (e *encoder) ref(id *ast.Ident) any {
	if id == nil {
		return nil
	}
	v := object{"$refText": id.Name}
	if e.idx != nil {
		if sym, ok := e.idx.Binding(id); ok {
			if p, ok := e.paths[sym.Node]; ok {
				v["$ref"] = p
			}
		}
	}
	return v
}

func name(id *ast.Ident) string {
	if id == nil {
		return ""
	}
	return id.Name
}

func (e *encoder) model(m ast.Model) object {
	switch m := m.(type) {
	case *ast.Library:
		v := e.node("Library", m)
		v["name"] = name(m.Name)
		icons := []any{}
		for _, ic := range m.Icons {
			x := e.node("Icon", ic)
			x["name"] = name(ic.Name)
			if ic.Glyph != "" {
				x["glyph"] = ic.Glyph
			}
			icons = append(icons, x)
		}
		v["icons"] = icons
		return v

	case *ast.Book:
		v := e.node("Book", m)
		v["name"] = name(m.Name)
		v["library"] = e.ref(m.Library)
		v["declarations"] = e.declarations(m.Declarations)
		return v

	case *ast.Story:
		v := e.node("Story", m)
		v["name"] = name(m.Name)
		if m.Book != nil {
			v["book"] = e.ref(m.Book)
		}
		v["declarations"] = e.declarations(m.Declarations)
		activities := []any{}
		for _, a := range m.Activities {
			activities = append(activities, e.activity(a))
		}
		v["activities"] = activities
		notes := []any{}
		for _, f := range m.Footnotes {
			x := e.node("Footnote", f)
			x["name"] = name(f.Name)
			x["text"] = f.Text
			notes = append(notes, x)
		}
		v["footnotes"] = notes
		return v
	}
	panic(fmt.Sprintf("unexpected model %T", m))
}

func (e *encoder) declarations(list []*ast.Declaration) []any {
	a := []any{}
	for _, d := range list {
		typ := "WorkObjectDeclaration"
		if d.Kind == ast.Agent {
			typ = "AgentDeclaration"
		}
		x := e.node(typ, d)
		x["name"] = name(d.Name)
		if d.Icon != nil {
			x["icon"] = e.ref(d.Icon)
		}
		a = append(a, x)
	}
	return a
}

func (e *encoder) activity(a *ast.Activity) object {
	v := e.node("Activity", a)
	if a.Agent != nil {
		x := e.node("AgentRef", a.Agent)
		x["declaration"] = e.ref(a.Agent.Declaration)
		v["agent"] = x
	}
	clauses := []any{}
	for _, c := range a.Clauses {
		x := e.node("ActivityClause", c)
		if c.Connector != nil {
			conn := e.node("Connector", c.Connector)
			conn["label"] = c.Connector.Label
			if c.Connector.Name != nil {
				conn["name"] = c.Connector.Name.Name
			}
			x["connector"] = conn
		}
		x["resource"] = e.resource(c.Resource)
		recipients := []any{}
		for _, r := range c.Recipients {
			recipients = append(recipients, e.resource(r))
		}
		x["moreRecipients"] = recipients
		clauses = append(clauses, x)
	}
	v["clauses"] = clauses
	if a.Notes != nil {
		x := e.node("FootnoteLinks", a.Notes)
		notes := []any{}
		for _, n := range a.Notes.Notes {
			notes = append(notes, e.ref(n))
		}
		x["notes"] = notes
		v["footnotes"] = x
	}
	return v
}

func (e *encoder) resource(r *ast.Resource) object {
	v := e.node("Resource", r)
	v["declaration"] = e.ref(r.Declaration)
	return v
}
