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

import "strings"

// Comment is a single comment token.
type Comment struct {
	Span Span
	Text string // The full text, including the `//` or `/*` markers.
}

// IsBlock returns whether this is a `/* */` comment.
func (c Comment) IsBlock() bool {
	return strings.HasPrefix(c.Text, "/*")
}

// Placement describes where a comment group sits relative to the code
// around it.
type Placement byte

const (
	// OwnLine: nothing but whitespace precedes the group on its line.
	OwnLine Placement = iota
	// EndOfLine: code precedes the group, and nothing follows it on its line.
	EndOfLine
	// Remaining: code follows the group on the same line.
	Remaining
)

func (p Placement) String() string {
	switch p {
	case OwnLine:
		return "own-line"
	case EndOfLine:
		return "end-of-line"
	default:
		return "remaining"
	}
}

// Classification describes how a comment group relates to the node it is
// attached to.
type Classification byte

const (
	Leading Classification = iota
	Trailing
	Dangling // Inside a node with no children to attach to, such as `{}`.
)

func (c Classification) String() string {
	switch c {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return "dangling"
	}
}

// CommentDirective is a formatter directive carried by a comment group.
type CommentDirective byte

const (
	NoDirective CommentDirective = iota
	// IgnoreDirective asks for the owning statement to be printed exactly as
	// written.
	IgnoreDirective
)

// CommentGroup is a maximal run of comments with no blank line between any
// two of them.
type CommentGroup struct {
	// ID is this group's index in [File.Groups], plus one.
	ID int

	Comments []Comment
	Span     Span

	Placement      Placement
	Classification Classification
	Directive      CommentDirective

	// The nodes this group was found between. These are lookup-only: the
	// group is owned by exactly one node, the one it is attached to.
	Enclosing, Preceding, Following Node

	// Blank lines between this group and the code or comment before and after
	// it, as written.
	BlankBefore, BlankAfter int
}

// IsBlock returns whether this group consists of a single block comment.
func (g *CommentGroup) IsBlock() bool {
	return len(g.Comments) == 1 && g.Comments[0].IsBlock()
}

// HasLineComment returns whether any comment in this group runs to the end
// of its line.
func (g *CommentGroup) HasLineComment() bool {
	for _, c := range g.Comments {
		if !c.IsBlock() {
			return true
		}
	}
	return false
}

// Owner returns the node this group is attached to.
func (g *CommentGroup) Owner() Node {
	switch g.Classification {
	case Leading:
		return g.Following
	case Trailing:
		return g.Preceding
	default:
		return g.Enclosing
	}
}
