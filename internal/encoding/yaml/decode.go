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

// Package yaml decodes DST documents written in YAML into syntax trees.
//
// A document is a single YAML mapping whose first key selects the kind of
// top-level element:
//
//	library: Default
//	icons:
//	  - name: Person
//	    glyph: person
//
//	book: Shop
//	library: Default
//	declarations:
//	  - agent: Clerk
//	    icon: Person
//	  - workobject: Order
//
//	story: Ordering
//	book: Shop
//	activities:
//	  - agent: Customer
//	    clauses:
//	      - connector: places
//	        resource: Order
//	      - connector: to
//	        resource: Clerk
//	        recipients: [Manager]
//	    footnotes: [1]
//	footnotes:
//	  - name: 1
//	    text: Paid up front.
package yaml

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/errors"
	"dstlang.org/go/dst/token"
)

// decoder wraps a [yaml.Decoder] to extract DST syntax tree nodes.
type decoder struct {
	yamlDecoder *yaml.Decoder

	tokFile  *token.File
	tokLines []int

	// errs collects all problems found so far. Decoding carries on after
	// most of them so that a single pass reports as much as possible.
	errs errors.Error
}

// NewDecoder creates a decoder for a DST document held in b.
//
// The filename is used for position information in syntax tree nodes
// as well as any errors encountered while decoding.
func NewDecoder(filename string, b []byte) *decoder {
	// yaml.v3 can report a node just past the end of the input,
	// so pretend there is an extra byte.
	tokFile := token.NewFile(filename, len(b)+1)
	tokFile.SetLinesForContent(b)
	tokFile.SetContent(b)
	return &decoder{
		tokFile:     tokFile,
		tokLines:    tokFile.Lines(),
		yamlDecoder: yaml.NewDecoder(bytes.NewReader(b)),
	}
}

// Decode parses a single YAML document into a syntax tree. A document
// without content yields a File with a nil Model.
//
// The returned File is non-nil even when an error is reported; it holds
// whatever could be recovered.
func Decode(filename string, data []byte) (*ast.File, error) {
	d := NewDecoder(filename, data)
	f := &ast.File{Filename: filename}

	var yn yaml.Node
	if err := d.yamlDecoder.Decode(&yn); err != nil {
		if err == io.EOF {
			return f, nil
		}
		return f, d.syntaxError(err)
	}
	var extra yaml.Node
	if err := d.yamlDecoder.Decode(&extra); err == nil {
		return f, errors.Newf(d.pos(&extra), "expected a single YAML document")
	} else if err != io.EOF {
		return f, d.syntaxError(err)
	}

	f.Model = d.document(&yn)
	if d.errs != nil {
		return f, errors.Sanitize(d.errs)
	}
	return f, nil
}

// syntaxError converts one of yaml.v3's opaque syntax errors into a
// positioned error where possible.
func (d *decoder) syntaxError(err error) error {
	e := err.Error()
	if s, ok := strings.CutPrefix(e, "yaml: line "); ok {
		// From "yaml: line 3: some issue" to "foo.yaml:3: some issue".
		e = d.tokFile.Name() + ":" + s
	} else if s, ok := strings.CutPrefix(e, "yaml:"); ok {
		e = d.tokFile.Name() + ":" + s
	}
	return errors.Newf(token.NoPos, "%s", e)
}

func (d *decoder) errorf(yn *yaml.Node, format string, args ...interface{}) {
	d.errs = errors.Append(d.errs, errors.Newf(d.pos(yn), format, args...))
}

// pos converts a YAML node position to a token position. Quoted scalars
// are positioned at their first character rather than at the quote.
func (d *decoder) pos(yn *yaml.Node) token.Pos {
	if yn.Line < 1 || yn.Line > len(d.tokLines) {
		return d.tokFile.Pos(d.tokFile.Size())
	}
	offset := d.tokLines[yn.Line-1] + (yn.Column - 1)
	if yn.Kind == yaml.ScalarNode && yn.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		offset++
	}
	return d.tokFile.Pos(offset)
}

func (d *decoder) document(yn *yaml.Node) ast.Model {
	if yn.Kind != yaml.DocumentNode || len(yn.Content) != 1 {
		d.errorf(yn, "expected a document with a single mapping")
		return nil
	}
	root := yn.Content[0]
	if root.Kind != yaml.MappingNode || len(root.Content) == 0 {
		d.errorf(root, "document must be a mapping starting with library, book or story")
		return nil
	}
	key := root.Content[0]
	switch key.Value {
	case "library":
		return d.library(root)
	case "book":
		return d.book(root)
	case "story":
		return d.story(root)
	}
	d.errorf(key, "unknown top-level element %q; expected library, book or story", key.Value)
	return nil
}

// fields iterates over the key/value pairs of a mapping, reporting keys
// not handled by fn.
func (d *decoder) fields(yn *yaml.Node, what string, fn func(key string, k, v *yaml.Node) bool) {
	if yn.Kind != yaml.MappingNode {
		d.errorf(yn, "%s must be a mapping", what)
		return
	}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		if seen[k.Value] {
			d.errorf(k, "duplicate key %q in %s", k.Value, what)
			continue
		}
		seen[k.Value] = true
		if !fn(k.Value, k, v) {
			d.errorf(k, "unknown key %q in %s", k.Value, what)
		}
	}
}

// sequence calls fn for each element of a sequence node. A missing (null)
// value is treated as an empty sequence.
func (d *decoder) sequence(yn *yaml.Node, what string, fn func(*yaml.Node)) {
	switch {
	case yn.Kind == yaml.SequenceNode:
		for _, c := range yn.Content {
			fn(c)
		}
	case yn.Kind == yaml.ScalarNode && yn.Tag == "!!null":
	default:
		d.errorf(yn, "%s must be a list", what)
	}
}

// ident extracts an identifier from a scalar node.
func (d *decoder) ident(yn *yaml.Node, what string) *ast.Ident {
	id := &ast.Ident{NamePos: d.pos(yn), Name: yn.Value}
	if yn.Kind != yaml.ScalarNode {
		d.errorf(yn, "%s must be a name", what)
		id.Name = ""
	} else if yn.Value == "" {
		d.errorf(yn, "%s must not be empty", what)
	}
	return id
}

// missing returns a placeholder identifier for a required name that is
// absent, so that consumers of the tree never see a nil name.
func (d *decoder) missing(yn *yaml.Node, what string) *ast.Ident {
	d.errorf(yn, "missing %s", what)
	return &ast.Ident{NamePos: d.pos(yn)}
}

func (d *decoder) library(yn *yaml.Node) *ast.Library {
	x := &ast.Library{Keyword: d.pos(yn.Content[0])}
	d.fields(yn, "library", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "library":
			x.Name = d.ident(v, "library name")
		case "icons":
			d.sequence(v, "icons", func(c *yaml.Node) {
				x.Icons = append(x.Icons, d.icon(c))
			})
		default:
			return false
		}
		return true
	})
	return x
}

func (d *decoder) icon(yn *yaml.Node) *ast.Icon {
	x := &ast.Icon{}
	d.fields(yn, "icon", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "name":
			x.Name = d.ident(v, "icon name")
		case "glyph":
			x.GlyphPos = d.pos(v)
			x.Glyph = v.Value
		default:
			return false
		}
		return true
	})
	if x.Name == nil {
		x.Name = d.missing(yn, "icon name")
	}
	return x
}

func (d *decoder) book(yn *yaml.Node) *ast.Book {
	x := &ast.Book{Keyword: d.pos(yn.Content[0])}
	d.fields(yn, "book", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "book":
			x.Name = d.ident(v, "book name")
		case "library":
			x.Library = d.ident(v, "library reference")
		case "declarations":
			x.Declarations = d.declarations(v)
		default:
			return false
		}
		return true
	})
	if x.Library == nil {
		d.errorf(yn, "book %s must name a library", x.Name)
	}
	return x
}

func (d *decoder) story(yn *yaml.Node) *ast.Story {
	x := &ast.Story{Keyword: d.pos(yn.Content[0])}
	d.fields(yn, "story", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "story":
			x.Name = d.ident(v, "story name")
		case "book":
			x.Book = d.ident(v, "book reference")
		case "declarations":
			x.Declarations = d.declarations(v)
		case "activities":
			d.sequence(v, "activities", func(c *yaml.Node) {
				x.Activities = append(x.Activities, d.activity(c))
			})
		case "footnotes":
			d.sequence(v, "footnotes", func(c *yaml.Node) {
				x.Footnotes = append(x.Footnotes, d.footnote(c))
			})
		default:
			return false
		}
		return true
	})
	return x
}

func (d *decoder) declarations(yn *yaml.Node) []*ast.Declaration {
	var a []*ast.Declaration
	d.sequence(yn, "declarations", func(c *yaml.Node) {
		a = append(a, d.declaration(c))
	})
	return a
}

func (d *decoder) declaration(yn *yaml.Node) *ast.Declaration {
	x := &ast.Declaration{}
	d.fields(yn, "declaration", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "agent", "workobject":
			if x.Name != nil {
				d.errorf(k, "declaration cannot be both an agent and a work object")
				return true
			}
			x.KindPos = d.pos(k)
			x.Kind = ast.WorkObject
			if key == "agent" {
				x.Kind = ast.Agent
			}
			x.Name = d.ident(v, "declaration name")
		case "icon":
			x.Icon = d.ident(v, "icon reference")
		default:
			return false
		}
		return true
	})
	if x.Name == nil {
		x.Name = d.missing(yn, "agent or workobject name")
		x.KindPos = x.Name.NamePos
	}
	return x
}

func (d *decoder) activity(yn *yaml.Node) *ast.Activity {
	x := &ast.Activity{}
	d.fields(yn, "activity", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "agent":
			x.Agent = &ast.AgentRef{Declaration: d.ident(v, "agent reference")}
		case "clauses":
			d.sequence(v, "clauses", func(c *yaml.Node) {
				x.Clauses = append(x.Clauses, d.clause(c))
			})
		case "footnotes":
			x.Notes = &ast.FootnoteLinks{Lbrack: d.pos(v)}
			d.sequence(v, "footnote links", func(c *yaml.Node) {
				x.Notes.Notes = append(x.Notes.Notes, d.ident(c, "footnote reference"))
			})
		default:
			return false
		}
		return true
	})
	if x.Agent == nil {
		x.Agent = &ast.AgentRef{Declaration: d.missing(yn, "initiating agent")}
	}
	if len(x.Clauses) == 0 {
		d.errorf(yn, "activity of %s has no clauses", x.Agent.Declaration.Name)
	}
	return x
}

func (d *decoder) clause(yn *yaml.Node) *ast.Clause {
	x := &ast.Clause{}
	connector := &ast.Connector{}
	hasConnector := false
	d.fields(yn, "clause", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "connector":
			hasConnector = true
			connector.LabelPos = d.pos(v)
			connector.Label = v.Value
		case "name":
			connector.Name = d.ident(v, "connector name")
		case "resource":
			x.Resource = &ast.Resource{Declaration: d.ident(v, "resource reference")}
		case "recipients":
			d.sequence(v, "recipients", func(c *yaml.Node) {
				x.Recipients = append(x.Recipients, &ast.Resource{Declaration: d.ident(c, "recipient reference")})
			})
		default:
			return false
		}
		return true
	})
	if hasConnector || connector.Name != nil {
		if !hasConnector {
			connector.LabelPos = connector.Name.NamePos
		}
		x.Connector = connector
	}
	if x.Resource == nil {
		x.Resource = &ast.Resource{Declaration: d.missing(yn, "resource")}
	}
	return x
}

func (d *decoder) footnote(yn *yaml.Node) *ast.Footnote {
	x := &ast.Footnote{}
	d.fields(yn, "footnote", func(key string, k, v *yaml.Node) bool {
		switch key {
		case "name":
			x.Name = d.ident(v, "footnote name")
		case "text":
			x.TextPos = d.pos(v)
			x.Text = v.Value
		default:
			return false
		}
		return true
	})
	if x.Name == nil {
		x.Name = d.missing(yn, "footnote name")
	}
	return x
}
