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

// Package doc is a layout engine for source code formatters.
//
// Formatters describe their output as a tree of [Doc] values: text, line
// breaks that may or may not be taken, and [Group]s that are rendered either
// "flat" on a single line or "broken" across several. [Print] chooses a
// rendering for each group so that lines stay within a column budget.
//
// Both [PropagateBreaks] and [Print] walk documents with an explicit work
// stack, so arbitrarily deep documents cannot overflow the goroutine stack.
package doc

import (
	"fmt"
	"strings"
)

// Doc is a node in a document tree.
//
// The set of implementations is closed: it is exactly the types declared in
// this package. A Doc is immutable once built, with the single exception of
// [Group.Break], which [PropagateBreaks] may set.
type Doc interface {
	isDoc()
}

// ID is a handle for a [Group], allocated with [IDs]. The zero ID means "no
// handle".
type ID int32

// IDs allocates group handles. Each formatting run owns its own allocator; a
// zero IDs is ready to use.
type IDs struct {
	last ID
}

// New returns a fresh handle.
func (g *IDs) New() ID {
	g.last++
	return g.last
}

// LineKind is the kind of a [Line].
type LineKind byte

const (
	Soft    LineKind = iota // Nothing when flat.
	Normal                  // One space when flat.
	Hard                    // Always a newline; forces enclosing groups to break.
	Literal                 // A newline without indentation.
)

// Text is literal text. It should not contain newlines; see [Lines].
type Text string

// Concat is a sequence of documents printed one after another.
type Concat []Doc

// Line is a potential line break. See [LineKind].
type Line struct {
	Kind LineKind

	// If set on a Literal line, the line is dropped when it would produce a
	// second consecutive blank line.
	SquashIfBlank bool
}

// Group is an atomic choice between rendering Contents flat or broken.
//
// If Alternatives is non-empty, this is a conditional group: Alternatives[0]
// is the default rendering (and Contents is ignored), and the remaining
// alternatives are progressively more expanded renderings, tried in order when
// the default does not fit.
type Group struct {
	Contents Doc
	Break    bool
	ID       ID

	Alternatives []Doc
}

// Fill is a sequence of alternating content and separator documents.
// Separators break independently: a separator only breaks when the content on
// either side of it would not otherwise fit.
type Fill []Doc

// Indent increases the indentation of Contents by one unit.
type Indent struct {
	Contents Doc
}

// Align increases the indentation of Contents by Width columns of spaces.
type Align struct {
	Width    int
	Contents Doc
}

// IfBreak prints Broken if the target group is broken, or Flat otherwise.
//
// If Group is zero, the target is the innermost enclosing group. Otherwise it
// refers to a group that must already have been printed.
type IfBreak struct {
	Flat, Broken Doc
	Group        ID
}

// BreakParent forces the innermost enclosing group to break, and prints
// nothing.
type BreakParent struct{}

// ForceFlat prints Contents flat. Hard lines inside still print as newlines,
// but they do not cause groups within Contents to break.
type ForceFlat struct {
	Contents Doc
}

// CollapsedSpace removes any whitespace at the end of the output and then
// prints a single space, unless the current line is otherwise empty.
type CollapsedSpace struct{}

// Trim removes any whitespace at the end of the output.
type Trim struct{}

// Region is a directive line, such as "#region Foo".
//
// A region never fits on a line with other content. The end of a region is
// printed at the indentation that was active where the matching start was
// printed.
type Region struct {
	Text string
	End  bool
}

// DeferredLineComment is a comment that must end its line. Its printing is
// deferred until just before the next line break. Its ID is reported like
// that of a [Comment].
type DeferredLineComment struct {
	Contents Doc
	ID       ID
}

// InlineComment is a comment printed in the middle of a line, with exactly
// one space on either side of it. Its ID is reported like that of a
// [Comment].
type InlineComment struct {
	Contents Doc
	ID       ID
}

// Comment is a comment printed in place. Its ID, if non-zero, is reported to
// [Options.Printed] when it is printed.
type Comment struct {
	Contents Doc
	ID       ID
}

// AlwaysFits hides Contents from fit measurement. It is used for text whose
// layout is already final, such as verbatim source.
type AlwaysFits struct {
	Contents Doc
}

type null struct{}

// Null prints nothing.
var Null Doc = null{}

var (
	SoftLine    = Line{Kind: Soft}
	LineBreak   = Line{Kind: Normal}
	HardLine    = Line{Kind: Hard}
	LiteralLine = Line{Kind: Literal}
)

func (Text) isDoc()                {}
func (Concat) isDoc()              {}
func (Line) isDoc()                {}
func (*Group) isDoc()              {}
func (Fill) isDoc()                {}
func (Indent) isDoc()              {}
func (Align) isDoc()               {}
func (IfBreak) isDoc()             {}
func (BreakParent) isDoc()         {}
func (ForceFlat) isDoc()           {}
func (CollapsedSpace) isDoc()      {}
func (Trim) isDoc()                {}
func (Region) isDoc()              {}
func (DeferredLineComment) isDoc() {}
func (InlineComment) isDoc()       {}
func (Comment) isDoc()             {}
func (AlwaysFits) isDoc()          {}
func (null) isDoc()                {}

// NewGroup returns a group around the given documents.
func NewGroup(docs ...Doc) *Group {
	return &Group{Contents: Cat(docs...)}
}

// Conditional returns a conditional group that tries each alternative in
// turn, from the most compact to the most expanded.
func Conditional(alternatives ...Doc) *Group {
	if len(alternatives) == 0 {
		panic("doc: conditional group needs at least one alternative")
	}
	return &Group{Alternatives: alternatives}
}

// contents returns the default contents of this group.
func (g *Group) contents() Doc {
	if len(g.Alternatives) > 0 {
		return g.Alternatives[0]
	}
	return g.Contents
}

// expanded returns the most expanded rendering of this group.
func (g *Group) expanded() Doc {
	if n := len(g.Alternatives); n > 0 {
		return g.Alternatives[n-1]
	}
	return g.Contents
}

// Cat concatenates documents, dropping nils and [Null]s and flattening nested
// [Concat]s.
func Cat(docs ...Doc) Doc {
	var out Concat
	for _, d := range docs {
		switch d := d.(type) {
		case nil, null:
		case Concat:
			out = append(out, d...)
		default:
			out = append(out, d)
		}
	}
	switch len(out) {
	case 0:
		return Null
	case 1:
		return out[0]
	}
	return out
}

// Join concatenates docs with sep between each pair.
func Join(sep Doc, docs []Doc) Doc {
	out := make(Concat, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return Cat(out...)
}

// Lines converts multi-line text into text separated by literal lines, so
// that continuation lines are printed exactly as given, without indentation.
//
// The result is wrapped in [AlwaysFits] when it spans several lines.
func Lines(text string) Doc {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.Contains(text, "\n") {
		return Text(text)
	}

	var out Concat
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, LiteralLine)
		}
		if line != "" {
			out = append(out, Text(line))
		}
	}
	return AlwaysFits{Contents: out}
}

// Mode is the rendering mode of a group.
type Mode byte

const (
	unresolved Mode = iota
	ModeBreak
	ModeFlat
	ModeForceFlat
)

func (m Mode) String() string {
	switch m {
	case ModeBreak:
		return "break"
	case ModeFlat:
		return "flat"
	case ModeForceFlat:
		return "force-flat"
	default:
		return "unresolved"
	}
}

// flat returns whether m suppresses ordinary line breaks.
func (m Mode) flat() bool {
	return m == ModeFlat || m == ModeForceFlat
}

// InvariantError is returned by [Print] when a document violates one of the
// engine's contracts, such as an [IfBreak] referring to a group that has not
// been printed yet.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "doc: " + e.Message
}

func invariantf(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}
