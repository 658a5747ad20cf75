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

// Package comments attaches the comments of a parsed file to its syntax tree.
//
// Comments are not part of the tree the parser builds. [Attach] groups them,
// works out where each group sits relative to the surrounding code, and
// attaches every group to exactly one node, where the printer picks it up.
package comments

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/internal/interval"
)

// IgnoreDirective is the text of a line comment that asks for the statement
// after it to be left exactly as written.
const IgnoreDirective = "fmt-ignore"

// Attach groups the comments of file and attaches each group to a node. The
// groups are recorded in file.Groups, in source order.
//
// It returns an error if the span of some node is not nested in its parent's.
//
// Attach must be called at most once per file.
func Attach(file *ast.File) error {
	groups := group(file)
	if len(groups) == 0 {
		return nil
	}

	var index interval.Innermost[int, ast.Node]
	for n := range ast.Preorder(file) {
		span := n.Span()
		if span.Len() == 0 {
			continue
		}
		if err := index.Insert(span.Start, span.End-1, n); err != nil {
			return fmt.Errorf("comments: %v%v: %w", n.Kind(), span, err)
		}
	}

	for _, g := range groups {
		locate(file, &index, g)
		classify(file.Source, g)
		g.Owner().AddComment(g)
	}
	file.Groups = groups
	return nil
}

// Within returns the comment groups attached in the tree rooted at n that lie
// inside n's span, in source order. These are the groups that printing n from
// its source text prints.
func Within(n ast.Node) []*ast.CommentGroup {
	span := n.Span()
	var out []*ast.CommentGroup
	for m := range ast.Preorder(n) {
		for _, g := range m.Comments() {
			if span.Contains(g.Span) {
				out = append(out, g)
			}
		}
	}
	slices.SortFunc(out, func(a, b *ast.CommentGroup) int { return a.ID - b.ID })
	return out
}

// group splits the raw comments of file into groups.
//
// Two consecutive comments share a group if only whitespace separates them,
// with no blank line, and the first does not end a line of code.
func group(file *ast.File) []*ast.CommentGroup {
	src := file.Source

	var groups []*ast.CommentGroup
	var cur *ast.CommentGroup
	for _, c := range file.RawComments {
		if cur != nil {
			gap := src[cur.Span.End:c.Span.Start]
			newlines := strings.Count(gap, "\n")
			if strings.TrimSpace(gap) == "" && newlines <= 1 &&
				(newlines == 0 || startsLine(src, cur.Span.Start)) {
				cur.Comments = append(cur.Comments, c)
				cur.Span.End = c.Span.End
				continue
			}
		}
		cur = &ast.CommentGroup{
			ID:       len(groups) + 1,
			Comments: []ast.Comment{c},
			Span:     c.Span,
		}
		groups = append(groups, cur)
	}

	for _, g := range groups {
		switch {
		case startsLine(src, g.Span.Start):
			g.Placement = ast.OwnLine
		case endsLine(src, g.Span.End):
			g.Placement = ast.EndOfLine
		default:
			g.Placement = ast.Remaining
		}

		before := len(strings.TrimRight(src[:g.Span.Start], " \t\n"))
		g.BlankBefore = file.Lines.BlankLinesBetween(before, g.Span.Start)
		after := len(src) - len(strings.TrimLeft(src[g.Span.End:], " \t\n"))
		g.BlankAfter = file.Lines.BlankLinesBetween(g.Span.End, after)

		last := g.Comments[len(g.Comments)-1]
		if text, ok := strings.CutPrefix(last.Text, "//"); ok && strings.TrimSpace(text) == IgnoreDirective {
			g.Directive = ast.IgnoreDirective
		}
	}
	return groups
}

// locate finds the node that encloses g, and the children of that node on
// either side of it.
func locate(file *ast.File, index *interval.Innermost[int, ast.Node], g *ast.CommentGroup) {
	src := file.Source
	enclosing, ok := index.Get(g.Span.Start)
	if !ok {
		enclosing = file
	}
	g.Enclosing = enclosing
	children := g.Enclosing.Children()

	i := sort.Search(len(children), func(i int) bool {
		return children[i].Span().Start >= g.Span.End
	})
	if i < len(children) {
		g.Following = children[i]
	}
	if i > 0 && children[i-1].Span().End <= g.Span.Start {
		g.Preceding = children[i-1]
	}

	// A comment just inside an opening bracket belongs to what the bracket
	// opens, not to the code before it; likewise for a closing bracket.
	if g.Preceding != nil && strings.ContainsAny(src[g.Preceding.Span().End:g.Span.Start], "([{") {
		g.Preceding = nil
	}
	if g.Following != nil && strings.ContainsAny(src[g.Span.End:g.Following.Span().Start], ")]}") {
		g.Following = nil
	}
}

// classify decides whether g leads the code after it, trails the code before
// it, or dangles inside its enclosing node.
func classify(src string, g *ast.CommentGroup) {
	prec, next := g.Preceding != nil, g.Following != nil
	switch g.Placement {
	case ast.OwnLine:
		switch {
		case next:
			g.Classification = ast.Leading
		case prec:
			g.Classification = ast.Trailing
		default:
			g.Classification = ast.Dangling
		}

	case ast.EndOfLine:
		switch {
		case prec:
			g.Classification = ast.Trailing
		case next:
			g.Classification = ast.Leading
		default:
			g.Classification = ast.Dangling
		}

	default:
		switch {
		case next && strings.TrimSpace(src[g.Span.End:g.Following.Span().Start]) == "":
			g.Classification = ast.Leading
		case prec:
			g.Classification = ast.Trailing
		case next:
			g.Classification = ast.Leading
		default:
			g.Classification = ast.Dangling
		}
	}
}

// startsLine returns whether only whitespace precedes offset on its line.
func startsLine(src string, offset int) bool {
	line := src[:offset]
	if i := strings.LastIndexByte(line, '\n'); i >= 0 {
		line = line[i+1:]
	}
	return strings.TrimSpace(line) == ""
}

// endsLine returns whether only whitespace follows offset on its line.
func endsLine(src string, offset int) bool {
	line := src[offset:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line) == ""
}

// Split partitions the comments attached to n by classification.
func Split(n ast.Node) (leading, trailing, dangling []*ast.CommentGroup) {
	for _, g := range n.Comments() {
		switch g.Classification {
		case ast.Leading:
			leading = append(leading, g)
		case ast.Trailing:
			trailing = append(trailing, g)
		default:
			dangling = append(dangling, g)
		}
	}
	return leading, trailing, dangling
}

// Ignored returns whether n is preceded by an ignore directive.
func Ignored(n ast.Node) bool {
	return slices.ContainsFunc(n.Comments(), func(g *ast.CommentGroup) bool {
		return g.Classification == ast.Leading && g.Directive == ast.IgnoreDirective
	})
}
