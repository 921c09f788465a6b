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

// Package dsttest provides helpers for tests that work on sets of DST
// documents held in txtar archives.
package dsttest

import (
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/txtar"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/errors"
	"dstlang.org/go/dst/parser"
)

// A Set holds the parsed documents of an archive in archive order. It
// serves as the document index for name resolution.
type Set struct {
	Files []*ast.File
}

// Load parses the YAML files of the txtar archive held in archive.
func Load(t testing.TB, archive string) *Set {
	t.Helper()
	return Parse(t, txtar.Parse([]byte(archive)))
}

// Parse parses every file of a whose name ends in ".yaml". Other files,
// such as expected output, are ignored. Parse errors fail the test.
func Parse(t testing.TB, a *txtar.Archive) *Set {
	t.Helper()
	s := &Set{}
	for _, f := range a.Files {
		if !strings.HasSuffix(f.Name, ".yaml") {
			continue
		}
		file, err := parser.ParseFile(f.Name, f.Data)
		if err != nil {
			t.Fatalf("parsing %s: %v", f.Name, errors.Details(err))
		}
		s.Files = append(s.Files, file)
	}
	return s
}

// Section returns the contents of the named file of a, or "" if there is
// none.
func Section(a *txtar.Archive, name string) string {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	return ""
}

// File returns the file with the given name, or nil.
func (s *Set) File(name string) *ast.File {
	for _, f := range s.Files {
		if f.Filename == name {
			return f
		}
	}
	return nil
}

// Story returns the story of the named file. It panics if the file does not
// hold a story.
func (s *Set) Story(name string) *ast.Story {
	return s.File(name).Model.(*ast.Story)
}

// Lookup returns the first top-level element with the given name.
func (s *Set) Lookup(name string) ast.Model {
	for _, m := range s.Models() {
		if id := ast.Name(m); id != nil && id.Name == name {
			return m
		}
	}
	return nil
}

// Models returns the top-level elements of all files.
func (s *Set) Models() []ast.Model {
	var a []ast.Model
	for _, f := range s.Files {
		if f.Model != nil {
			a = append(a, f.Model)
		}
	}
	return a
}
