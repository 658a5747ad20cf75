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

package printer

import (
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/doc"
)

// maxCommentBlankLines caps the blank lines kept around comment groups.
const maxCommentBlankLines = 2

// leading prints comment groups that come before their node.
func (p *printer) leading(groups []*ast.CommentGroup) doc.Doc {
	var out []doc.Doc
	for _, g := range groups {
		out = append(out, p.comment(g))
		if g.HasLineComment() || endsLine(p.src, g.Span.End) {
			out = append(out, doc.HardLine)
			out = append(out, blankLines(g.BlankAfter)...)
		} else {
			out = append(out, doc.Text(" "))
		}
	}
	return doc.Cat(out...)
}

// trailing prints comment groups that come after their node.
//
// Line comments are deferred to the end of the line, so that whatever
// follows the node on its line, such as a comma, is printed first.
func (p *printer) trailing(groups []*ast.CommentGroup) doc.Doc {
	var out []doc.Doc
	for _, g := range groups {
		id := doc.ID(g.ID)
		switch {
		case g.Placement == ast.OwnLine:
			out = append(out, doc.HardLine)
			out = append(out, blankLines(g.BlankBefore)...)
			if g.HasLineComment() {
				out = append(out, doc.DeferredLineComment{Contents: p.commentGroup(g), ID: id}, doc.BreakParent{})
			} else {
				out = append(out, p.comment(g))
			}
		case g.HasLineComment():
			out = append(out, doc.DeferredLineComment{Contents: p.commentGroup(g), ID: id}, doc.BreakParent{})
		case g.Placement == ast.EndOfLine:
			out = append(out, doc.InlineComment{Contents: p.commentGroup(g), ID: id})
		default:
			out = append(out, doc.Text(" "), p.comment(g))
		}
	}
	return doc.Cat(out...)
}

// danglingLines prints comment groups on lines of their own, as in an empty
// block. If after is set, the groups follow other lines.
func (p *printer) danglingLines(groups []*ast.CommentGroup, after bool) doc.Doc {
	var out []doc.Doc
	for i, g := range groups {
		if i > 0 || after {
			out = append(out, doc.HardLine)
			out = append(out, blankLines(g.BlankBefore)...)
		}
		out = append(out, p.comment(g))
	}
	return doc.Cat(out...)
}

// danglingInline prints comment groups inside brackets that have nothing
// else in them. Line comments force the brackets apart.
func (p *printer) danglingInline(groups []*ast.CommentGroup) doc.Doc {
	var out []doc.Doc
	for i, g := range groups {
		if i > 0 {
			if strings.Contains(p.src[groups[i-1].Span.End:g.Span.Start], "\n") {
				out = append(out, doc.HardLine)
			} else {
				out = append(out, doc.Text(" "))
			}
		}
		out = append(out, p.comment(g))
		if g.HasLineComment() {
			out = append(out, doc.BreakParent{})
		}
	}
	return doc.Cat(out...)
}

// comment prints a group in place.
func (p *printer) comment(g *ast.CommentGroup) doc.Doc {
	return doc.Comment{Contents: p.commentGroup(g), ID: doc.ID(g.ID)}
}

// commentGroup prints the comments of a group, keeping them on the lines
// they were written on relative to each other.
func (p *printer) commentGroup(g *ast.CommentGroup) doc.Doc {
	var out []doc.Doc
	for i, c := range g.Comments {
		if i > 0 {
			if strings.Contains(p.src[g.Comments[i-1].Span.End:c.Span.Start], "\n") {
				out = append(out, doc.HardLine)
			} else {
				out = append(out, doc.Text(" "))
			}
		}
		out = append(out, doc.Lines(p.commentText(c)))
	}
	return doc.Cat(out...)
}

// commentText returns the text of c as it should be printed.
func (p *printer) commentText(c ast.Comment) string {
	text := c.Text
	if !p.opts.FormatComments {
		return text
	}
	if c.IsBlock() {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		return strings.Join(lines, "\n")
	}
	body := strings.TrimPrefix(text, "//")
	switch {
	case body == "",
		strings.HasPrefix(body, " "),
		strings.HasPrefix(body, "\t"),
		strings.HasPrefix(body, "/"),
		strings.HasPrefix(body, "!"):
		return text
	}
	return "// " + body
}

func blankLines(n int) []doc.Doc {
	n = min(n, maxCommentBlankLines)
	out := make([]doc.Doc, n)
	for i := range out {
		out[i] = doc.HardLine
	}
	return out
}

// endsLine returns whether only whitespace follows offset on its line.
func endsLine(src string, offset int) bool {
	line := src[offset:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line) == ""
}
