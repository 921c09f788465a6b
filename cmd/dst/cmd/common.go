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
	"io"
	"os"
	"path/filepath"
	"sort"

	"dstlang.org/go/dst/errors"
	"dstlang.org/go/dst/token"
	"dstlang.org/go/internal/diag"
	"dstlang.org/go/internal/dstdebug"
	"dstlang.org/go/internal/workspace"
)

// expandArgs returns the files named by args. A directory stands for the
// YAML files it contains. With no arguments, the current directory is used.
func expandArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var files []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.yaml"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no YAML files in %s", arg)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// loadWorkspace reads files into a new workspace. Problems within the
// documents are reported as diagnostics, not as errors.
func loadWorkspace(cmd *Command, files []string) (*workspace.Workspace, error) {
	w, err := workspace.New(&workspace.Config{
		Logger:    cmd.Logger(),
		CacheSize: dstdebug.Flags.CacheSize,
	})
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "cannot read %s", f)
		}
		if err := w.Update(cmd.Context(), f, 0, src); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// printDiagnostics writes the diagnostics of a document sorted by position.
func printDiagnostics(w io.Writer, filename string, list []diag.Diagnostic) {
	diag.Sort(list)
	for _, d := range list {
		if d.Pos.IsValid() {
			fmt.Fprintln(w, d)
		} else {
			fmt.Fprintf(w, "%s: %v: %s\n", filename, d.Severity, d.Message)
		}
	}
}
