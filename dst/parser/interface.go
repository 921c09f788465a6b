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

// Package parser reads DST documents into syntax trees.
package parser // import "dstlang.org/go/dst/parser"

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/errors"
	"dstlang.org/go/dst/token"
	"dstlang.org/go/internal/encoding/yaml"
)

// ParseFile parses the source of a single DST document and returns the
// corresponding syntax tree.
//
// If src != nil, ParseFile parses the source from src and the filename is
// only used when recording position information. The type of the argument
// for the src parameter must be string, []byte, or io.Reader. If src == nil,
// ParseFile parses the file specified by filename.
//
// If the source couldn't be read, the returned File is nil and the error
// indicates the specific failure. If the source was read but problems were
// found, the returned File holds everything that could be recovered and the
// error is a list of positioned errors; see [errors.Errors].
func ParseFile(filename string, src interface{}) (f *ast.File, err error) {
	text, err := readSource(filename, src)
	if err != nil {
		return nil, errors.Wrapf(err, token.NoPos, "cannot read %s", filename)
	}
	return yaml.Decode(filename, text)
}

func readSource(filename string, src interface{}) ([]byte, error) {
	if src != nil {
		switch src := src.(type) {
		case string:
			return []byte(src), nil
		case []byte:
			return src, nil
		case *bytes.Buffer:
			// is io.Reader, but src is already available in []byte form
			return src.Bytes(), nil
		case io.Reader:
			return io.ReadAll(src)
		}
		return nil, fmt.Errorf("invalid source type %T", src)
	}
	return os.ReadFile(filename)
}
