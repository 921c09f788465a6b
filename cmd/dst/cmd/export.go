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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	dstjson "dstlang.org/go/internal/encoding/json"
)

func newExportCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [-d dir] file [context files]",
		Short: "write the syntax tree of a document as JSON",
		Long: `export writes the syntax tree of a document as JSON.

References to other documents are resolved against the context files, for
instance the book a story uses and the library of that book. A resolved
reference carries the path of its target in "$ref".

With --destination, the output is written to <dir>/<name>.json, where name
is the base name of the file without its extension. Otherwise it is written
to standard output.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: mkRunE(c, runExport),
	}
	cmd.Flags().StringP(string(flagDestination), "d", "", "directory to write the output to")
	cmd.Flags().Bool(string(flagRegions), false, "include source regions and text")
	return cmd
}

func runExport(cmd *Command, args []string) error {
	w, err := loadWorkspace(cmd, args)
	if err != nil {
		return err
	}
	filename := args[0]
	a, ok := w.Analysis(filename)
	if !ok {
		return fmt.Errorf("%s: no analysis available", filename)
	}

	cfg := &dstjson.Config{Indent: "  "}
	if flagRegions.Bool(cmd) {
		cfg.TextRegions = true
		cfg.SourceText = true
	}
	b, err := dstjson.Marshal(a.File, a.Index, w, cfg)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	dir := flagDestination.String(cmd)
	if dir == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	out := filepath.Join(dir, name+".json")
	if err := os.WriteFile(out, b, 0o666); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
