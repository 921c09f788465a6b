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

package astinternal_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/parser"
	"dstlang.org/go/internal/astinternal"
)

func TestDebugStr(t *testing.T) {
	f, err := parser.ParseFile("ordering.yaml", `story: Ordering
book: Shop
declarations:
  - agent: Customer
activities:
  - agent: Customer
    clauses:
      - connector: places
        resource: Order
      - connector: with
        name: handsTo
        resource: Clerk
        recipients: [Manager]
    footnotes: [1, 2]
footnotes:
  - name: 1
    text: Paid up front.
`)
	qt.Assert(t, qt.IsNil(err))
	s := f.Model.(*ast.Story)

	testCases := []struct {
		n    ast.Node
		want string
	}{
		{nil, "<nil>"},
		{f, "file ordering.yaml"},
		{s, "story Ordering"},
		{s.Book, "Shop"},
		{s.Declarations[0], "agent Customer"},
		{s.Activities[0], "Customer places Order handsTo Clerk, Manager"},
		{s.Activities[0].Clauses[1].Connector, "handsTo"},
		{s.Activities[0].Notes, "[1, 2]"},
		{s.Footnotes[0], "footnote 1"},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(astinternal.DebugStr(tc.n), tc.want))
	}
}
