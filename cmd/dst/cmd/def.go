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

package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/internal/astinternal"
)

const flagReferences flagName = "references"

func newDefCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "def file:line:column [context files]",
		Short: "show where the name at a position is defined",
		Long: `def prints the definition of the identifier at the given position, one
line per target, as the position of the target's name followed by a short
description.

With --references, def prints the positions of all references to what the
identifier denotes instead, across the given file and the context files.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: mkRunE(c, runDef),
	}
	cmd.Flags().BoolP(string(flagReferences), "r", false, "list references instead of definitions")
	return cmd
}

// parseLocation splits file:line:column.
func parseLocation(s string) (file string, line, col int, err error) {
	i := strings.LastIndexByte(s, ':')
	j := -1
	if i > 0 {
		j = strings.LastIndexByte(s[:i], ':')
	}
	if j <= 0 {
		return "", 0, 0, fmt.Errorf("invalid location %q; want file:line:column", s)
	}
	line, err1 := strconv.Atoi(s[j+1 : i])
	col, err2 := strconv.Atoi(s[i+1:])
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return "", 0, 0, fmt.Errorf("invalid location %q; want file:line:column", s)
	}
	return s[:j], line, col, nil
}

func runDef(cmd *Command, args []string) error {
	file, line, col, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	files := append([]string{file}, args[1:]...)
	w, err := loadWorkspace(cmd, slices.Compact(files))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagReferences.Bool(cmd) {
		for _, id := range w.References(file, line, col) {
			fmt.Fprintln(out, id.Pos())
		}
		return nil
	}
	nodes := w.Definition(file, line, col)
	if len(nodes) == 0 {
		return fmt.Errorf("%s: no definition found", args[0])
	}
	for _, n := range nodes {
		pos := n.Pos()
		if id := ast.Name(n); id != nil {
			pos = id.Pos()
		}
		fmt.Fprintf(out, "%v: %s\n", pos, astinternal.DebugStr(n))
	}
	return nil
}
