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

// Package token defines source positions for DST documents.
package token // import "dstlang.org/go/dst/token"

import (
	"cmp"
	"fmt"
	"sort"
	"sync"
)

// -----------------------------------------------------------------------------
// Positions

// Position describes an arbitrary and printable source position within a file,
// including offset, line, and column location,
// which can be rendered in a human-friendly text form.
//
// A Position is valid if the line number is > 0.
type Position struct {
	Filename string // filename, if any
	Offset   int    // offset, starting at 0
	Line     int    // line number, starting at 1
	Column   int    // column number, starting at 1 (byte count)
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a human-readable form of a position in one of several forms:
//
//	file:line:column    valid position with file name
//	line:column         valid position without file name
//	file                invalid position with file name
//	-                   invalid position without file name
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Pos is a compact encoding of a source position: a file and a byte offset
// into it. The zero value is [NoPos].
type Pos struct {
	file *File
	// index is the offset plus one, so that a position at offset
	// zero can be told apart from NoPos.
	index int
}

// NoPos is the zero value for [Pos]; there is no file and line information
// associated with it, and [Pos.IsValid] is false.
//
// NoPos is always larger than any valid [Pos] value.
var NoPos = Pos{}

// File returns the file that contains p, or nil for [NoPos].
func (p Pos) File() *File {
	if p.index == 0 {
		return nil
	}
	return p.file
}

// IsValid reports whether p carries file position information.
func (p Pos) IsValid() bool {
	return p != NoPos
}

// Filename returns the name of the file that this position belongs to.
func (p Pos) Filename() string {
	if p.file == nil {
		return ""
	}
	return p.file.name
}

// Offset reports the byte offset relative to the file.
func (p Pos) Offset() int {
	if p.file == nil {
		return 0
	}
	return p.file.Offset(p)
}

// Line returns the position's line number, starting at 1.
func (p Pos) Line() int {
	return p.Position().Line
}

// Column returns the position's column number counting in bytes,
// starting at 1.
func (p Pos) Column() int {
	return p.Position().Column
}

// Position unpacks the position information into a flat struct.
func (p Pos) Position() Position {
	if p.file == nil {
		return Position{}
	}
	return p.file.Position(p)
}

// Add creates a new position relative to the p offset by n.
func (p Pos) Add(n int) Pos {
	if p == NoPos {
		return NoPos
	}
	return p.file.Pos(p.Offset() + n)
}

// String returns a human-readable form of a printable position.
func (p Pos) String() string {
	return p.Position().String()
}

// Compare returns an integer comparing two positions. The result will be 0 if p == p2,
// -1 if p < p2, and +1 if p > p2. Note that [NoPos] is always larger than any valid position.
func (p Pos) Compare(p2 Pos) int {
	if p == p2 {
		return 0
	} else if p == NoPos {
		return +1
	} else if p2 == NoPos {
		return -1
	}
	if c := cmp.Compare(p.Filename(), p2.Filename()); c != 0 {
		return c
	}
	return cmp.Compare(p.Offset(), p2.Offset())
}

// -----------------------------------------------------------------------------
// File

// A File has a name, size, and line offset table.
type File struct {
	mutex sync.RWMutex
	name  string
	size  int

	// lines and content are protected by mutex.
	lines   []int // offset of the first character of each line; lines[0] == 0
	content []byte
}

// NewFile returns a new file with the given name and size.
func NewFile(filename string, size int) *File {
	return &File{
		name:  filename,
		size:  size,
		lines: []int{0},
	}
}

// Name returns the file name of file f as passed to NewFile.
func (f *File) Name() string {
	return f.name
}

// Size returns the size of file f as passed to NewFile.
func (f *File) Size() int {
	return f.size
}

// LineCount returns the number of lines in file f.
func (f *File) LineCount() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.lines)
}

// Lines returns the line offset table. Callers must not mutate the result.
func (f *File) Lines() []int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.lines
}

// SetLinesForContent sets the line offsets for the given file content.
func (f *File) SetLinesForContent(content []byte) {
	lines := []int{0}
	for offset, b := range content {
		if b == '\n' && offset+1 < f.size {
			lines = append(lines, offset+1)
		}
	}
	f.mutex.Lock()
	f.lines = lines
	f.mutex.Unlock()
}

// SetContent sets the file's content. The content must not be altered
// after this call.
func (f *File) SetContent(content []byte) {
	f.mutex.Lock()
	f.content = content
	f.mutex.Unlock()
}

// Content retrieves the file's content, which may be nil. The returned
// content must not be altered.
func (f *File) Content() []byte {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.content
}

// fixOffset clamps offset such that 0 <= offset <= f.size.
func (f *File) fixOffset(offset int) int {
	switch {
	case offset < 0:
		return 0
	case offset > f.size:
		return f.size
	default:
		return offset
	}
}

// Pos returns the Pos value for the given file offset.
//
// If offset is negative, the result is the file's start
// position; if the offset is too large, the result is
// the file's end position.
func (f *File) Pos(offset int) Pos {
	return Pos{f, f.fixOffset(offset) + 1}
}

// PosAt returns the Pos for a 1-based line and column. Out of range lines
// and columns are clamped to the file.
func (f *File) PosAt(line, column int) Pos {
	lines := f.Lines()
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		return f.Pos(f.size)
	}
	if column < 1 {
		column = 1
	}
	return f.Pos(lines[line-1] + column - 1)
}

// Offset returns the offset for the given file position p.
func (f *File) Offset(p Pos) int {
	if p.index == 0 {
		return 0
	}
	return f.fixOffset(p.index - 1)
}

// Position returns the Position value for the given file position p.
// p must be a Pos value in f or NoPos.
func (f *File) Position(p Pos) (pos Position) {
	if p == NoPos {
		return pos
	}
	offset := f.Offset(p)
	pos.Filename = f.name
	pos.Offset = offset
	lines := f.Lines()
	if i := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1; i >= 0 {
		pos.Line, pos.Column = i+1, offset-lines[i]+1
	}
	return pos
}
