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
	"github.com/Pizzaandy/Gobo-sub001/parser"
)

// expr prints an expression, or a part of a statement that is not itself a
// statement.
func (p *printer) expr(n ast.Node) doc.Doc {
	switch n := n.(type) {
	case *ast.Ident:
		return doc.Text(n.Name)
	case *ast.Number:
		if strings.HasPrefix(n.Text, ".") {
			return doc.Text("0" + n.Text)
		}
		return doc.Text(n.Text)
	case *ast.String:
		return doc.Lines(n.Text)

	case *ast.Binary:
		return p.binary(n)
	case *ast.Unary:
		op := ast.CanonicalOperator(n.Op)
		x := p.node(n.X)
		if inner, ok := n.X.(*ast.Unary); ok && len(inner.Comments()) == 0 &&
			strings.ContainsAny(op, "+-") && strings.ContainsAny(inner.Op[:1], "+-") {
			// "- -x" must not become "--x".
			return doc.Cat(doc.Text(op+" "), x)
		}
		return doc.Cat(doc.Text(op), x)
	case *ast.Postfix:
		return doc.Cat(p.node(n.X), doc.Text(n.Op))
	case *ast.Ternary:
		return doc.NewGroup(
			p.node(n.Cond),
			doc.Indent{Contents: doc.Cat(
				doc.LineBreak, doc.Text("? "), p.node(n.Then),
				doc.LineBreak, doc.Text(": "), p.node(n.Else),
			)},
		)
	case *ast.Paren:
		return doc.Cat(doc.Text("("), p.node(n.X), doc.Text(")"))
	case *ast.Member:
		return doc.Cat(p.node(n.X), doc.Text("."), p.node(n.Name))
	case *ast.Index:
		open := "["
		if n.Accessor != "" {
			open += n.Accessor + " "
		}
		indices := make([]doc.Doc, len(n.Indices))
		for i, x := range n.Indices {
			indices[i] = p.node(x)
		}
		return doc.Cat(p.node(n.X), doc.Text(open), doc.Join(doc.Text(", "), indices), doc.Text("]"))
	case *ast.Function:
		return p.function(n)

	case *ast.Property:
		if n.Value == nil {
			return p.node(n.Name)
		}
		return doc.Cat(p.node(n.Name), doc.Text(": "), p.node(n.Value))
	case *ast.Declarator:
		return doc.Cat(p.node(n.Name), p.annotation(n.Type), p.initializer(n.Init))
	case *ast.Param:
		return doc.Cat(p.node(n.Name), p.annotation(n.Type), p.initializer(n.Default))
	case *ast.EnumMember:
		return doc.Cat(p.node(n.Name), p.initializer(n.Value))
	case *ast.Case:
		return p.caseClause(n)
	}
	panic(&doc.InvariantError{Message: "no printer for " + n.Kind().String()})
}

// annotation prints a `: Type` annotation, unless syntax extensions are
// being removed.
func (p *printer) annotation(typ string) doc.Doc {
	if typ == "" || p.opts.RemoveSyntaxExtensions {
		return doc.Null
	}
	return doc.Text(": " + typ)
}

func (p *printer) initializer(x ast.Node) doc.Doc {
	if x == nil {
		return doc.Null
	}
	return doc.Cat(doc.Text(" = "), p.node(x))
}

// binary prints a chain of binary operators of equal precedence as a group
// that breaks before each operator.
func (p *printer) binary(n *ast.Binary) doc.Doc {
	level, _ := parser.BinaryPrecedence(n.Op)

	// Collect the left spine of operators at this level, outermost first.
	chain := []*ast.Binary{n}
	for {
		left, ok := chain[len(chain)-1].Left.(*ast.Binary)
		if !ok || len(left.Comments()) > 0 {
			break
		}
		if l, _ := parser.BinaryPrecedence(left.Op); l != level {
			break
		}
		chain = append(chain, left)
	}

	first := p.node(chain[len(chain)-1].Left)
	var rest []doc.Doc
	for i := len(chain) - 1; i >= 0; i-- {
		b := chain[i]
		// Comments before the right operand go before the operator, so that
		// the operator stays at the start of its line.
		lead, body, trail := p.parts(b.Right)
		rest = append(rest,
			doc.LineBreak,
			lead,
			doc.Text(ast.CanonicalOperator(b.Op)+" "),
			body,
			trail,
		)
	}
	return doc.NewGroup(first, doc.Indent{Contents: doc.Cat(rest...)})
}

func (p *printer) function(n *ast.Function) doc.Doc {
	out := []doc.Doc{doc.Text("function")}
	if n.Name != nil {
		out = append(out, doc.Text(" "), p.node(n.Name))
	}

	params := make([]ast.Node, len(n.Params))
	for i, param := range n.Params {
		params[i] = param
	}
	out = append(out, p.arguments(params, nil))

	if n.ReturnType != "" && !p.opts.RemoveSyntaxExtensions {
		out = append(out, doc.Text(" -> "+n.ReturnType))
	}
	if n.Inherits != nil {
		out = append(out, doc.Text(" : "), p.node(n.Inherits))
	}
	if n.Constructor {
		out = append(out, doc.Text(" constructor"))
	}
	// The body is grouped apart from the header: its hard lines break neither
	// the parameter list nor an enclosing argument list.
	return doc.Cat(doc.NewGroup(out...), doc.NewGroup(p.body(n.Body)))
}

// arguments prints a parenthesized argument or parameter list. It stays on
// one line if it fits; otherwise a trailing struct argument is hugged, with
// only that argument broken; otherwise every argument goes on its own line.
//
// The one-line rendering is not indented, so that a function argument
// spanning several lines keeps the indentation of the call.
func (p *printer) arguments(args []ast.Node, dangling []*ast.CommentGroup) doc.Doc {
	if len(args) == 0 {
		return p.empty("(", ")", doc.SoftLine, dangling)
	}

	last := len(args) - 1
	items := make([]doc.Doc, len(args))
	for i, arg := range args {
		var sep doc.Doc = doc.Text(",")
		if i == last {
			sep = doc.Null
		}
		items[i] = p.item(arg, sep)
	}
	after := p.trailing(dangling)

	flat := doc.Cat(doc.Text("("), doc.Join(doc.Text(" "), items), doc.Text(")"), after)
	expanded := doc.Cat(
		doc.Text("("),
		doc.Indent{Contents: doc.Cat(doc.SoftLine, doc.Join(doc.LineBreak, items))},
		doc.SoftLine,
		doc.Text(")"),
		after,
	)
	// An argument that spans lines cannot share them with the arguments
	// after it.
	for _, item := range items[:last] {
		if doc.HasForcedBreak(item) {
			return &doc.Group{Contents: expanded, Break: true}
		}
	}
	if !huggable(args) {
		return doc.Conditional(flat, expanded)
	}

	hugged := []doc.Doc{doc.Text("(")}
	for _, item := range items[:last] {
		hugged = append(hugged, item, doc.Text(" "))
	}
	hugged = append(hugged, &doc.Group{Contents: items[last], Break: true}, doc.Text(")"), after)
	return doc.Conditional(flat, doc.Cat(hugged...), expanded)
}

// huggable returns whether the last of args is a struct literal that may be
// broken while the rest of the arguments stay on the line of the call.
//
// A trailing function needs no such treatment: its body always breaks, so the
// flat rendering already keeps its header on the line of the call.
func huggable(args []ast.Node) bool {
	last := args[len(args)-1]
	if last.Kind() != ast.KindStruct || len(last.Comments()) > 0 {
		return false
	}
	for _, arg := range args[:len(args)-1] {
		switch arg.Kind() {
		case ast.KindFunction, ast.KindStruct:
			return false
		}
	}
	return true
}

func (p *printer) array(n *ast.Array, dangling []*ast.CommentGroup) doc.Doc {
	if len(n.Elems) == 0 {
		return p.empty("[", "]", doc.SoftLine, dangling)
	}

	id := p.ids.New()
	items := p.commaItems(n.Elems, id)
	var inner doc.Doc
	if numeric(n.Elems) {
		// Numbers wrap like words in a paragraph.
		fill := make(doc.Fill, 0, 2*len(items))
		for i, item := range items {
			if i > 0 {
				fill = append(fill, doc.LineBreak)
			}
			fill = append(fill, item)
		}
		inner = fill
	} else {
		inner = doc.Join(doc.LineBreak, items)
	}
	return doc.Cat(&doc.Group{
		ID: id,
		Contents: doc.Cat(
			doc.Text("["),
			doc.Indent{Contents: doc.Cat(doc.SoftLine, inner)},
			doc.SoftLine,
			doc.Text("]"),
		),
	}, p.trailing(dangling))
}

func (p *printer) structLit(n *ast.Struct, dangling []*ast.CommentGroup) doc.Doc {
	if len(n.Props) == 0 {
		return p.empty("{", "}", doc.LineBreak, dangling)
	}

	props := make([]ast.Node, len(n.Props))
	for i, prop := range n.Props {
		props[i] = prop
	}
	id := p.ids.New()
	return doc.Cat(&doc.Group{
		ID: id,
		Contents: doc.Cat(
			doc.Text("{"),
			doc.Indent{Contents: doc.Cat(doc.LineBreak, doc.Join(doc.LineBreak, p.commaItems(props, id)))},
			doc.LineBreak,
			doc.Text("}"),
		),
	}, p.trailing(dangling))
}

// commaItems prints list elements separated by commas. The last element
// gets a trailing comma if the group with the given handle breaks.
func (p *printer) commaItems(list []ast.Node, group doc.ID) []doc.Doc {
	items := make([]doc.Doc, len(list))
	for i, n := range list {
		var sep doc.Doc = doc.Text(",")
		if i == len(list)-1 {
			sep = doc.IfBreak{Broken: doc.Text(","), Group: group}
		}
		items[i] = p.item(n, sep)
	}
	return items
}

// empty prints brackets with nothing but comments, if any, between them.
func (p *printer) empty(open, close string, line doc.Doc, dangling []*ast.CommentGroup) doc.Doc {
	if len(dangling) == 0 {
		return doc.Text(open + close)
	}
	return doc.NewGroup(
		doc.Text(open),
		doc.Indent{Contents: doc.Cat(line, p.danglingInline(dangling))},
		line,
		doc.Text(close),
	)
}

// numeric returns whether every element is a possibly signed number.
func numeric(elems []ast.Node) bool {
	if len(elems) < 2 {
		return false
	}
	for _, e := range elems {
		if u, ok := e.(*ast.Unary); ok && (u.Op == "-" || u.Op == "+") {
			e = u.X
		}
		if e.Kind() != ast.KindNumber || len(e.Comments()) > 0 {
			return false
		}
	}
	return true
}
