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

package validate

import (
	"unicode"
	"unicode/utf8"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/core/resolve"
)

// Default returns a registry holding the standard checks.
func Default() *Registry {
	reg := &Registry{}
	Register(reg, "uniqueDeclarationNames", uniqueDeclarationNames)
	Register(reg, "declarationOverride", declarationOverride)
	Register(reg, "uniqueFootnotes", uniqueFootnotes)
	Register(reg, "unreferencedFootnotes", unreferencedFootnotes)
	Register(reg, "declarationCase", declarationCase)
	Register(reg, "activityChain", activityChain)
	Register(reg, "multipleRecipients", multipleRecipients)
	Register(reg, "connectorCase", connectorCase)
	Register(reg, "iconCase", iconCase)
	return reg
}

func uniqueDeclarationNames(c *Context, s ast.DeclarationScope) {
	seen := map[string]bool{}
	for _, d := range s.Decls() {
		name := d.Name.Name
		if name == "" {
			continue
		}
		if seen[name] {
			c.Errorf(d, "name", "An agent or work object named '%s' is already declared in this story.", name)
		}
		seen[name] = true
	}
}

// declarationOverride reports story declarations that reuse the name of a
// declaration of the book, whatever their kinds.
func declarationOverride(c *Context, s *ast.Story) {
	book := c.Resolver.Book()
	if book == nil {
		return
	}
	inBook := map[string]bool{}
	for _, d := range book.Declarations {
		inBook[d.Name.Name] = true
	}
	for _, d := range s.Declarations {
		if d.Name.Name != "" && inBook[d.Name.Name] {
			c.Errorf(d, "name", "An agent or work object named '%s' is already declared in book '%s'.", d.Name.Name, book.Name.Name)
		}
	}
}

func uniqueFootnotes(c *Context, s *ast.Story) {
	seen := map[string]bool{}
	for _, f := range s.Footnotes {
		if f.Name.Name == "" {
			continue
		}
		if seen[f.Name.Name] {
			c.Errorf(f, "name", "Duplicate footnote index '%s'.", f.Name.Name)
		}
		seen[f.Name.Name] = true
	}
}

func unreferencedFootnotes(c *Context, s *ast.Story) {
	for _, f := range s.Footnotes {
		if f.Name.Name != "" && !c.Index.Reachable(f) {
			c.Warnf(f, "name", "Unreferenced footnote '%s'.", f.Name.Name)
		}
	}
}

// Names starting with something other than a cased letter never warn.
func startsLower(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToUpper(r) != r
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToLower(r) != r
}

func declarationCase(c *Context, d *ast.Declaration) {
	if startsLower(d.Name.Name) {
		c.Warnf(d, "name", "Agents and work object names should start with an uppercase letter.")
	}
}

func iconCase(c *Context, ic *ast.Icon) {
	if startsLower(ic.Name.Name) {
		c.Warnf(ic, "name", "Icon names should start with an uppercase letter.")
	}
}

func connectorCase(c *Context, x *ast.Connector) {
	if startsUpper(x.EffectiveName()) {
		c.Warnf(x, "", "Connector names should start with a lowercase letter.")
	}
}

// activityChain reports agents anywhere but at the end of an activity.
func activityChain(c *Context, a *ast.Activity) {
	n := len(a.Clauses)
	for i := 0; i < n-1; i++ {
		if denotesAgent(c, a, i) {
			c.Errorf(a.Clauses[i].Resource, "declaration", "Only the last element of the activity chain can be an agent.")
		}
	}
	if n == 1 && denotesAgent(c, a, 0) {
		c.Errorf(a.Clauses[0].Resource, "declaration", "An intermediate work object is needed before connecting to an agent.")
	}
}

func denotesAgent(c *Context, a *ast.Activity, i int) bool {
	site, _ := resolve.ClauseSites(a, i)
	sym, ok := c.Resolver.Denote(site)
	return ok && sym.IsAgent()
}

func multipleRecipients(c *Context, x *ast.Clause) {
	if len(x.Recipients) == 0 {
		return
	}
	site := resolve.Site{
		Ref:       x.Resource.Declaration,
		Container: x.Resource,
		Slot:      resolve.SlotResource,
		Clause:    -1,
	}
	if sym, ok := c.Resolver.Denote(site); ok && sym.IsWorkObject() {
		c.Errorf(x.Resource, "declaration", "Multiple recipients at the end of the activity chain must all be agents.")
	}
}
