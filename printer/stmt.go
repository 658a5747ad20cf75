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
	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/comments"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/doc"
)

var semicolon = doc.Text(";")

// statement prints a statement other than those [printer.bare] handles
// itself.
func (p *printer) statement(n ast.Node) doc.Doc {
	switch n := n.(type) {
	case *ast.VarDecl:
		return doc.Cat(p.varDecl(n), semicolon)
	case *ast.ExprStmt:
		return doc.Cat(p.node(n.X), semicolon)
	case *ast.Assign:
		return doc.Cat(p.assign(n), semicolon)
	case *ast.Empty:
		return semicolon

	case *ast.If:
		return p.ifStmt(n)
	case *ast.While:
		return p.control("while", n.Cond, n.Body)
	case *ast.Repeat:
		return p.control("repeat", n.Count, n.Body)
	case *ast.With:
		return p.control("with", n.Object, n.Body)
	case *ast.DoUntil:
		var sep doc.Doc = doc.HardLine
		if isBlock(n.Body) && p.opts.BraceStyle != config.NewLine {
			sep = doc.Text(" ")
		}
		until, _ := p.header("until", n.Cond)
		return doc.Cat(doc.Text("do"), p.body(n.Body), sep, until, semicolon)
	case *ast.For:
		return p.forStmt(n)
	case *ast.Try:
		return p.try(n)

	case *ast.Return:
		if n.Value == nil {
			return doc.Cat(doc.Text("return"), semicolon)
		}
		return doc.Cat(doc.Text("return "), p.node(n.Value), semicolon)
	case *ast.Jump:
		return doc.Cat(doc.Text(n.Keyword), semicolon)
	case *ast.Throw:
		return doc.Cat(doc.Text("throw "), p.node(n.Value), semicolon)
	case *ast.Delete:
		return doc.Cat(doc.Text("delete "), p.node(n.Value), semicolon)

	case *ast.Function:
		return p.function(n)

	case *ast.Directive:
		switch n.Kind() {
		case ast.KindRegion:
			return doc.Region{Text: n.Text}
		case ast.KindEndRegion:
			return doc.Region{Text: n.Text, End: true}
		default:
			return doc.Lines(n.Text)
		}
	}
	panic(&doc.InvariantError{Message: "no printer for statement " + n.Kind().String()})
}

// simple prints a statement that may appear in a for-loop header, without a
// semicolon.
func (p *printer) simple(n ast.Node) doc.Doc {
	var body doc.Doc
	switch n := n.(type) {
	case *ast.VarDecl:
		body = p.varDecl(n)
	case *ast.Assign:
		body = p.assign(n)
	case *ast.ExprStmt:
		body = p.node(n.X)
	default:
		return p.node(n)
	}
	leading, trailing, dangling := comments.Split(n)
	return doc.Cat(p.leading(leading), body, p.trailing(dangling), p.trailing(trailing))
}

// header prints `keyword (x)`. The parentheses break apart if x does not
// fit.
//
// Line comments that end the line of x follow the closing parenthesis, and
// the second result reports whether there are any.
func (p *printer) header(keyword string, x ast.Node) (doc.Doc, bool) {
	leading, trailing, dangling := comments.Split(x)
	inside, after := splitEndOfLine(trailing)
	parens := doc.NewGroup(
		doc.Text(keyword+" ("),
		doc.Indent{Contents: doc.Cat(doc.SoftLine, p.leading(leading), p.bare(x, dangling), p.trailing(inside))},
		doc.SoftLine,
		doc.Text(")"),
	)
	return doc.Cat(parens, p.trailing(after)), len(after) > 0
}

// control prints a `keyword (x)` header and the body it governs.
func (p *printer) control(keyword string, x, body ast.Node) doc.Doc {
	header, ended := p.header(keyword, x)
	return doc.Cat(header, p.bodyAfter(body, ended))
}

// bodyAfter is like [printer.body], but if ended is set the header's line
// already ends in a line comment, so a block starts on the next line.
func (p *printer) bodyAfter(n ast.Node, ended bool) doc.Doc {
	if ended && isBlock(n) {
		return doc.Cat(doc.HardLine, p.node(n))
	}
	return p.body(n)
}

// splitEndOfLine splits off the trailing line comments at the end of groups
// that share a line with code.
func splitEndOfLine(groups []*ast.CommentGroup) (rest, eol []*ast.CommentGroup) {
	i := len(groups)
	for i > 0 && groups[i-1].Placement == ast.EndOfLine && groups[i-1].HasLineComment() {
		i--
	}
	return groups[:i], groups[i:]
}

func (p *printer) ifStmt(n *ast.If) doc.Doc {
	header, ended := p.header("if", n.Cond)
	out := []doc.Doc{header, p.bodyAfter(n.Then, ended)}
	if n.Else == nil {
		return doc.Cat(out...)
	}

	// Comments before `else` keep lines of their own, where they lead the
	// else branch again when the output is parsed.
	lead, _, _ := comments.Split(n.Else)
	switch {
	case len(lead) > 0:
		out = append(out, doc.HardLine, p.leading(lead), doc.Text("else"))
	case isBlock(n.Then) && p.opts.BraceStyle != config.NewLine:
		out = append(out, doc.Text(" else"))
	default:
		out = append(out, doc.HardLine, doc.Text("else"))
	}

	_, body, trail := p.parts(n.Else)
	switch {
	case isBlock(n.Else):
		out = append(out, p.braceSpace(), body, trail)
	case n.Else.Kind() == ast.KindIf:
		out = append(out, doc.Text(" "), body, trail)
	default:
		out = append(out, doc.Indent{Contents: doc.Cat(doc.HardLine, body, trail)})
	}
	return doc.Cat(out...)
}

// forStmt prints a for loop. The header is always kept on one line.
func (p *printer) forStmt(n *ast.For) doc.Doc {
	clause := func(x ast.Node) doc.Doc {
		if x == nil {
			return doc.Null
		}
		return p.simple(x)
	}
	var cond, update doc.Doc = doc.Text(";"), doc.Text(";")
	if n.Cond != nil {
		cond = doc.Cat(doc.Text("; "), p.node(n.Cond))
	}
	if n.Update != nil {
		update = doc.Cat(doc.Text("; "), clause(n.Update))
	}
	header := doc.ForceFlat{Contents: doc.Cat(
		doc.Text("for ("), clause(n.Init), cond, update, doc.Text(")"),
	)}
	var ended bool
	for _, x := range []ast.Node{n.Update, n.Cond, n.Init} {
		if x != nil {
			_, trailing, _ := comments.Split(x)
			_, eol := splitEndOfLine(trailing)
			ended = len(eol) > 0
			break
		}
	}
	return doc.Cat(header, p.bodyAfter(n.Body, ended))
}

func (p *printer) try(n *ast.Try) doc.Doc {
	out := []doc.Doc{doc.Text("try"), p.body(n.Body)}
	clause := func(keyword doc.Doc, block *ast.Block) {
		if p.opts.BraceStyle == config.NewLine || comments.Ignored(block) {
			out = append(out, doc.HardLine)
		} else {
			out = append(out, doc.Text(" "))
		}
		out = append(out, keyword, p.body(block))
	}
	if n.Catch != nil {
		var keyword doc.Doc = doc.Text("catch")
		if n.Param != nil {
			keyword = doc.Cat(doc.Text("catch ("), p.node(n.Param), doc.Text(")"))
		}
		clause(keyword, n.Catch)
	}
	if n.Finally != nil {
		clause(doc.Text("finally"), n.Finally)
	}
	return doc.Cat(out...)
}

func (p *printer) block(n *ast.Block, dangling []*ast.CommentGroup) doc.Doc {
	if len(n.Body) == 0 && len(dangling) == 0 {
		return doc.Text("{}")
	}
	return doc.Cat(
		doc.Text("{"),
		doc.Indent{Contents: doc.Cat(
			doc.HardLine,
			p.statements(n.Body),
			p.danglingLines(dangling, len(n.Body) > 0),
		)},
		doc.HardLine,
		doc.Text("}"),
	)
}

func (p *printer) switchStmt(n *ast.Switch, dangling []*ast.CommentGroup) doc.Doc {
	var cases []doc.Doc
	var prev ast.Node
	for _, c := range n.Cases {
		if prev != nil {
			cases = append(cases, doc.HardLine)
			if p.file.Lines.BlankLinesBetween(extent(prev).End, extent(c).Start) > 0 {
				cases = append(cases, doc.HardLine)
			}
		}
		cases = append(cases, p.node(c))
		prev = c
	}

	header, ended := p.header("switch", n.Value)
	space := p.braceSpace()
	if ended {
		space = doc.HardLine
	}
	return doc.Cat(
		header,
		space,
		doc.Text("{"),
		doc.Indent{Contents: doc.Cat(
			doc.HardLine,
			doc.Cat(cases...),
			p.danglingLines(dangling, len(n.Cases) > 0),
		)},
		doc.HardLine,
		doc.Text("}"),
	)
}

func (p *printer) caseClause(n *ast.Case) doc.Doc {
	var label doc.Doc = doc.Text("default:")
	if n.Test != nil {
		label = doc.Cat(doc.Text("case "), p.node(n.Test), doc.Text(":"))
	}
	if len(n.Body) == 0 {
		return label
	}
	return doc.Cat(label, doc.Indent{Contents: doc.Cat(doc.HardLine, p.statements(n.Body))})
}

func (p *printer) enum(n *ast.Enum, dangling []*ast.CommentGroup) doc.Doc {
	members := make([]doc.Doc, len(n.Members))
	for i, m := range n.Members {
		members[i] = p.item(m, doc.Text(","))
	}
	return doc.Cat(
		doc.Text("enum "),
		p.node(n.Name),
		p.braceSpace(),
		doc.Text("{"),
		doc.Indent{Contents: doc.Cat(
			doc.HardLine,
			doc.Join(doc.HardLine, members),
			p.danglingLines(dangling, len(n.Members) > 0),
		)},
		doc.HardLine,
		doc.Text("}"),
	)
}

func (p *printer) varDecl(n *ast.VarDecl) doc.Doc {
	if len(n.Decls) == 1 {
		return doc.Cat(doc.Text(n.Keyword+" "), p.node(n.Decls[0]))
	}
	decls := make([]doc.Doc, len(n.Decls))
	for i, d := range n.Decls {
		if i < len(n.Decls)-1 {
			decls[i] = p.item(d, doc.Text(","))
		} else {
			decls[i] = p.node(d)
		}
	}
	// Continuation lines line up with the first declarator.
	return doc.NewGroup(
		doc.Text(n.Keyword+" "),
		doc.Align{Width: len(n.Keyword) + 1, Contents: doc.Join(doc.LineBreak, decls)},
	)
}

func (p *printer) assign(n *ast.Assign) doc.Doc {
	return doc.Cat(
		p.node(n.Left),
		doc.Text(" "+ast.CanonicalOperator(n.Op)+" "),
		p.node(n.Right),
	)
}

// item prints a list element followed by its separator, placing the
// separator before any trailing comments of the element.
func (p *printer) item(n ast.Node, sep doc.Doc) doc.Doc {
	lead, body, trail := p.parts(n)
	return doc.Cat(lead, body, sep, trail)
}
