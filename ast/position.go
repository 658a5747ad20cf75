// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Span is a half-open range of byte offsets into a source file.
type Span struct {
	Start, End int
}

// Len returns the number of bytes in this span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Join returns the smallest span containing both s and other.
func (s Span) Join(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Text returns the text of src that s covers.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Position is a human-readable location in a source file.
type Position struct {
	Filename string
	Offset   int
	// Line and Col are 1-based. Col counts tabs as advancing to the next
	// multiple of 8, like most terminals.
	Line, Col int
}

func (p Position) String() string {
	if p.Line == 0 {
		if p.Filename == "" {
			return "<input>"
		}
		return p.Filename
	}
	name := p.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Col)
}

// Lines is a line table for a source file: it converts byte offsets into
// [Position]s.
type Lines struct {
	name string
	src  string
	// The offset at which each line starts. The value at index 0 is always
	// zero.
	starts []int
}

// NewLines builds a line table for src.
func NewLines(filename, src string) *Lines {
	l := &Lines{name: filename, src: src, starts: []int{0}}
	for i := range len(src) {
		if src[i] == '\n' {
			l.starts = append(l.starts, i+1)
		}
	}
	return l
}

// Filename returns the name this table was built for.
func (l *Lines) Filename() string {
	return l.name
}

// Position returns the position of the given offset.
func (l *Lines) Position(offset int) Position {
	offset = max(0, min(offset, len(l.src)))
	line := sort.Search(len(l.starts), func(n int) bool {
		return l.starts[n] > offset
	})

	col := 0
	for i := l.starts[line-1]; i < offset; i++ {
		if l.src[i] == '\t' {
			col += 8 - col%8
		} else {
			col++
		}
	}

	return Position{
		Filename: l.name,
		Offset:   offset,
		Line:     line,
		Col:      col + 1,
	}
}

// BlankLinesBetween returns the number of blank lines strictly between the
// line containing offset start and the line containing offset end.
func (l *Lines) BlankLinesBetween(start, end int) int {
	if start >= end {
		return 0
	}
	// The first piece is the rest of start's line; the last is the part of
	// end's line before end. Neither is a line of its own.
	pieces := strings.Split(l.src[start:end], "\n")
	var blank int
	for i := 1; i < len(pieces)-1; i++ {
		if strings.TrimSpace(pieces[i]) == "" {
			blank++
		}
	}
	return blank
}
