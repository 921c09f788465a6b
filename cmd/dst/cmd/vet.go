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

	"github.com/spf13/cobra"

	"dstlang.org/go/internal/diag"
	"dstlang.org/go/internal/dstdebug"
)

func newVetCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet [files or directories]",
		Short: "report problems in Domain Storytelling documents",
		Long: `vet checks the given documents together, resolving references between
them, and reports problems on standard output.

Directories stand for the YAML files directly inside them. Without
arguments, vet checks the current directory.

Errors make vet exit with a non-zero status. Warnings do not, unless
--strict is given or DST_DEBUG contains strict.
`,
		RunE: mkRunE(c, runVet),
	}
	addStrictFlag(cmd.Flags())
	addVerboseFlag(cmd.Flags())
	return cmd
}

func runVet(cmd *Command, args []string) error {
	files, err := expandArgs(args)
	if err != nil {
		return err
	}
	w, err := loadWorkspace(cmd, files)
	if err != nil {
		return err
	}

	strict := flagStrict.Bool(cmd) || dstdebug.Flags.Strict
	var nerr, nwarn int
	for _, f := range w.Filenames() {
		list := w.Diagnostics(f)
		nerr += diag.Count(list, diag.Error)
		nwarn += diag.Count(list, diag.Warning)
		printDiagnostics(cmd.OutOrStdout(), f, list)
	}
	if flagVerbose.Bool(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents, %d errors, %d warnings\n", len(files), nerr, nwarn)
	}
	if nerr > 0 || (strict && nwarn > 0) {
		return ErrPrintedError
	}
	return nil
}
