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

// Package printer converts a GML syntax tree into a [doc.Doc].
//
// The printer decides the shape of the output: where statements end, which
// constructs may break and how, and where comments go. The layout engine in
// package doc then decides which of the allowed breaks to take.
package printer

import (
	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/comments"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/doc"
)

// Print builds the document for file. Comments must already have been
// attached with [comments.Attach].
//
// Every comment group appears in the document inside a comment document
// whose ID is the group's ID, so that [doc.Options.Printed] reports each
// group as it is written out.
func Print(file *ast.File, opts config.Options) doc.Doc {
	p := &printer{
		file: file,
		src:  file.Source,
		opts: opts,
	}
	_, _, dangling := comments.Split(file)
	return doc.Cat(
		p.statements(file.Body),
		p.danglingLines(dangling, len(file.Body) > 0),
	)
}

type printer struct {
	file *ast.File
	src  string
	opts config.Options
	ids  doc.IDs
}

// node returns the document for n with all of its comments.
func (p *printer) node(n ast.Node) doc.Doc {
	if n == nil {
		return doc.Null
	}
	lead, body, trail := p.parts(n)
	return doc.Cat(lead, body, trail)
}

// parts returns the documents for the leading comments of n, n itself, and
// its trailing comments. Lists use this to put separators between a node
// and its trailing comments.
func (p *printer) parts(n ast.Node) (lead, body, trail doc.Doc) {
	leading, trailing, dangling := comments.Split(n)
	lead = p.leading(leading)
	if n.Kind().IsStatement() && comments.Ignored(n) {
		body = p.verbatim(n)
	} else {
		body = p.bare(n, dangling)
	}
	trail = p.trailing(trailing)
	return lead, body, trail
}

// verbatim returns the source text of n, which carries the comments inside
// it.
func (p *printer) verbatim(n ast.Node) doc.Doc {
	body := doc.Lines(n.Span().Text(p.src))
	for _, g := range comments.Within(n) {
		body = doc.Comment{ID: doc.ID(g.ID), Contents: body}
	}
	return body
}

// bare returns the document for n without its leading and trailing
// comments. Node kinds with nowhere better to put dangling comments print
// them after the node.
func (p *printer) bare(n ast.Node, dangling []*ast.CommentGroup) doc.Doc {
	switch n := n.(type) {
	case *ast.Block:
		return p.block(n, dangling)
	case *ast.Switch:
		return p.switchStmt(n, dangling)
	case *ast.Enum:
		return p.enum(n, dangling)
	case *ast.Call:
		return doc.Cat(p.node(n.Fn), p.arguments(n.Args, dangling))
	case *ast.New:
		return doc.Cat(doc.Text("new "), p.node(n.Ctor), p.arguments(n.Args, dangling))
	case *ast.Array:
		return p.array(n, dangling)
	case *ast.Struct:
		return p.structLit(n, dangling)
	}

	var d doc.Doc
	if n.Kind().IsStatement() {
		d = p.statement(n)
	} else {
		d = p.expr(n)
	}
	return doc.Cat(d, p.trailing(dangling))
}

// statements prints a statement list, one statement per line. Blank lines
// between statements are kept, but never more than one in a row.
func (p *printer) statements(list []ast.Node) doc.Doc {
	var out []doc.Doc
	var prev ast.Node
	for _, n := range list {
		if n.Kind() == ast.KindEmpty && len(n.Comments()) == 0 {
			continue
		}
		if prev != nil {
			out = append(out, doc.HardLine)
			if p.file.Lines.BlankLinesBetween(extent(prev).End, extent(n).Start) > 0 {
				out = append(out, doc.HardLine)
			}
		}
		out = append(out, p.node(n))
		prev = n
	}
	return doc.Cat(out...)
}

// extent returns the span of n including its leading and trailing comments.
func extent(n ast.Node) ast.Span {
	span := n.Span()
	for _, g := range n.Comments() {
		if g.Classification != ast.Dangling {
			span = span.Join(g.Span)
		}
	}
	return span
}

// body prints the body of a control statement: a block goes after the
// header per the brace style, anything else on its own indented line.
func (p *printer) body(n ast.Node) doc.Doc {
	if isBlock(n) {
		return doc.Cat(p.braceSpace(), p.node(n))
	}
	return doc.Indent{Contents: doc.Cat(doc.HardLine, p.node(n))}
}

// braceSpace separates a header from the opening brace that follows it.
func (p *printer) braceSpace() doc.Doc {
	if p.opts.BraceStyle == config.NewLine {
		return doc.HardLine
	}
	return doc.Text(" ")
}

// isBlock returns whether n is printed as a braced block after its header.
func isBlock(n ast.Node) bool {
	return n != nil && n.Kind() == ast.KindBlock && !comments.Ignored(n)
}
