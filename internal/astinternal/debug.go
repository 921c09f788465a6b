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

// Package astinternal provides debugging helpers for DST syntax trees.
package astinternal

import (
	"fmt"
	"strings"

	"dstlang.org/go/dst/ast"
)

// DebugStr returns a short, single-line description of a node, suitable for
// test output and for identifying definition targets on the command line.
func DebugStr(n ast.Node) string {
	switch x := n.(type) {
	case nil:
		return "<nil>"
	case *ast.File:
		return "file " + x.Filename
	case *ast.Ident:
		return x.Name
	case *ast.Library:
		return "library " + x.Name.Name
	case *ast.Icon:
		return "icon " + x.Name.Name
	case *ast.Book:
		return "book " + x.Name.Name
	case *ast.Story:
		return "story " + x.Name.Name
	case *ast.Declaration:
		return x.Kind.String() + " " + x.Name.Name
	case *ast.Activity:
		var b strings.Builder
		if x.Agent != nil {
			b.WriteString(x.Agent.Declaration.Name)
		}
		for _, c := range x.Clauses {
			b.WriteString(" ")
			b.WriteString(DebugStr(c))
		}
		return strings.TrimSpace(b.String())
	case *ast.AgentRef:
		return x.Declaration.Name
	case *ast.Clause:
		var b strings.Builder
		if x.Connector != nil {
			b.WriteString(x.Connector.EffectiveName())
			b.WriteString(" ")
		}
		b.WriteString(x.Resource.Declaration.Name)
		for _, r := range x.Recipients {
			b.WriteString(", ")
			b.WriteString(r.Declaration.Name)
		}
		return b.String()
	case *ast.Connector:
		return x.EffectiveName()
	case *ast.Resource:
		return x.Declaration.Name
	case *ast.FootnoteLinks:
		names := make([]string, len(x.Notes))
		for i, id := range x.Notes {
			names[i] = id.Name
		}
		return "[" + strings.Join(names, ", ") + "]"
	case *ast.Footnote:
		return "footnote " + x.Name.Name
	}
	return fmt.Sprintf("%T", n)
}
