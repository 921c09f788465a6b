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

package diag

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/token"
)

func TestSink(t *testing.T) {
	src := []byte("story: S\ndeclarations:\n  - agent: clerk\n")
	f := token.NewFile("s.yaml", len(src))
	f.SetLinesForContent(src)
	decl := &ast.Declaration{
		KindPos: f.Pos(27),
		Kind:    ast.Agent,
		Name:    &ast.Ident{NamePos: f.Pos(34), Name: "clerk"},
	}
	story := &ast.Story{Keyword: f.Pos(0), Name: &ast.Ident{NamePos: f.Pos(7), Name: "S"}}

	var s Sink
	s.Accept(New(Warning, "lower case", decl, "name"))
	s.Accept(New(Error, "whole story", story, ""))
	qt.Assert(t, qt.Equals(s.Len(), 2))

	list := s.Diagnostics()
	qt.Assert(t, qt.Equals(list[0].Pos.String(), "s.yaml:3:12"))
	qt.Assert(t, qt.Equals(list[0].End.Column(), 17))

	Sort(list)
	qt.Assert(t, qt.Equals(list[0].Message, "whole story"))
	qt.Assert(t, qt.Equals(Count(list, Warning), 1))
	qt.Assert(t, qt.Equals(Count(list, Error), 1))

	var buf bytes.Buffer
	Print(&buf, list)
	qt.Assert(t, qt.Equals(buf.String(),
		"s.yaml:1:1: error: whole story\ns.yaml:3:12: warning: lower case\n"))

	// The sink hands out copies.
	list[0].Message = "changed"
	qt.Assert(t, qt.Equals(s.Diagnostics()[0].Message, "lower case"))

	s.Reset()
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestSeverityString(t *testing.T) {
	qt.Assert(t, qt.Equals(Error.String(), "error"))
	qt.Assert(t, qt.Equals(Warning.String(), "warning"))
	qt.Assert(t, qt.Equals(Severity(7).String(), "Severity(7)"))
}
