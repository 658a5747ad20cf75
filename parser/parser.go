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

// Package parser parses GML source into an [ast.File].
//
// The parser is a hand-written recursive descent parser, with precedence
// climbing for binary operators. It stops at the first syntax error, which it
// reports as a [*reporter.SyntaxError].
package parser

import (
	"fmt"
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// MaxDepth is the deepest nesting of statements and expressions the parser
// accepts.
const MaxDepth = 1000

// Parse parses a GML file. Line endings in src are normalized to "\n" before
// parsing; the normalized text is available as [ast.File.Source].
func Parse(filename, src string) (file *ast.File, err error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := ast.NewLines(filename, src)

	l := &lexer{src: src, lines: lines}
	if err := l.Lex(); err != nil {
		return nil, err
	}

	p := &parser{lexer: l}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			file, err = nil, b.err
		}
	}()

	file = &ast.File{
		Base:        ast.Base{Loc: ast.Span{Start: 0, End: len(src)}},
		Source:      src,
		Lines:       lines,
		RawComments: l.comments,
	}
	for p.peek().kind != tokEOF {
		file.Body = append(file.Body, p.parseStatement())
	}
	return file, nil
}

// bailout is panicked with to unwind the parser on the first error.
type bailout struct {
	err error
}

type parser struct {
	*lexer
	pos   int
	depth int
}

// reserved words cannot be used as identifiers.
var reserved = map[string]bool{
	"var": true, "static": true, "globalvar": true, "if": true, "else": true,
	"then": true, "while": true, "do": true, "until": true, "repeat": true,
	"for": true, "switch": true, "case": true, "default": true, "with": true,
	"return": true, "break": true, "continue": true, "exit": true,
	"throw": true, "try": true, "catch": true, "finally": true,
	"delete": true, "enum": true, "function": true, "new": true,
	"and": true, "or": true, "xor": true, "not": true, "mod": true, "div": true,
}

var assignOps = map[string]bool{
	"=": true, ":=": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "|=": true, "&=": true, "^=": true, "??=": true,
	"<<=": true, ">>=": true,
}

type precedence struct {
	level int
	right bool
}

var binaryOps = map[string]precedence{
	"??": {1, true},
	"||": {2, false}, "or": {2, false},
	"&&": {3, false}, "and": {3, false},
	"^^": {4, false}, "xor": {4, false},
	"==": {5, false}, "!=": {5, false}, "<>": {5, false}, "=": {5, false},
	"<": {6, false}, "<=": {6, false}, ">": {6, false}, ">=": {6, false},
	"|": {7, false},
	"^": {8, false},
	"&": {9, false},
	"<<": {10, false}, ">>": {10, false},
	"+": {11, false}, "-": {11, false},
	"*": {12, false}, "/": {12, false}, "%": {12, false}, "mod": {12, false}, "div": {12, false},
}

// BinaryPrecedence returns the binding strength of a binary operator; higher
// binds tighter. The second result is false for unknown operators.
func BinaryPrecedence(op string) (int, bool) {
	p, ok := binaryOps[op]
	return p.level, ok
}

var unaryOps = map[string]bool{
	"!": true, "not": true, "-": true, "+": true, "~": true, "++": true, "--": true,
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) token {
	return p.tokens[min(p.pos+n, len(p.tokens)-1)]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// is returns whether the next token is the given punctuation or word.
func (p *parser) is(text string) bool {
	t := p.peek()
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) token {
	if !p.is(text) {
		p.fail(p.peek(), "expected %q, found %s", text, describe(p.peek()))
	}
	return p.next()
}

// end returns the end of the last consumed token.
func (p *parser) end() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].span.End
}

func (p *parser) base(start int) ast.Base {
	return ast.Base{Loc: ast.Span{Start: start, End: p.end()}}
}

func (p *parser) fail(at token, format string, args ...any) {
	panic(bailout{err: reporter.Syntaxf(p.lines.Position(at.span.Start), format, args...)})
}

func (p *parser) enter() {
	p.depth++
	if p.depth > MaxDepth {
		p.fail(p.peek(), "nesting exceeds %d levels", MaxDepth)
	}
}

func (p *parser) leave() {
	p.depth--
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokDirective:
		return "directive"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// semi consumes an optional semicolon.
func (p *parser) semi() {
	p.accept(";")
}

// sameLine returns whether the next token is on the same line as the end of
// the last consumed token.
func (p *parser) sameLine() bool {
	next := p.peek()
	if next.kind == tokEOF {
		return false
	}
	return !strings.Contains(p.src[p.end():next.span.Start], "\n")
}

func (p *parser) parseStatement() ast.Node {
	p.enter()
	defer p.leave()

	t := p.peek()
	start := t.span.Start

	if t.kind == tokDirective {
		p.next()
		return &ast.Directive{Base: p.base(start), Keyword: directiveKeyword(t.text), Text: t.text}
	}
	if p.is(";") {
		p.next()
		return &ast.Empty{Base: p.base(start)}
	}
	if p.is("{") {
		b := p.parseBlock()
		p.semi()
		b.Loc.End = p.end()
		return b
	}

	var stmt ast.Node
	switch t.text {
	case "var", "static", "globalvar":
		d := p.parseVarDecl()
		p.semi()
		d.Loc.End = p.end()
		return d
	case "if":
		p.next()
		n := &ast.If{Cond: p.parseCondition()}
		p.accept("then")
		n.Then = p.parseStatement()
		if p.accept("else") {
			n.Else = p.parseStatement()
		}
		n.Base = p.base(start)
		return n
	case "while":
		p.next()
		n := &ast.While{Cond: p.parseCondition()}
		n.Body = p.parseStatement()
		n.Base = p.base(start)
		return n
	case "do":
		p.next()
		n := &ast.DoUntil{Body: p.parseStatement()}
		p.expect("until")
		n.Cond = p.parseCondition()
		p.semi()
		n.Base = p.base(start)
		return n
	case "repeat":
		p.next()
		n := &ast.Repeat{Count: p.parseCondition()}
		n.Body = p.parseStatement()
		n.Base = p.base(start)
		return n
	case "for":
		return p.parseFor()
	case "switch":
		return p.parseSwitch()
	case "with":
		p.next()
		n := &ast.With{Object: p.parseCondition()}
		n.Body = p.parseStatement()
		n.Base = p.base(start)
		return n
	case "return":
		p.next()
		n := &ast.Return{}
		if p.sameLine() && !p.is(";") && !p.is("}") {
			n.Value = p.parseExpr()
		}
		stmt = n
	case "break", "continue", "exit":
		p.next()
		stmt = &ast.Jump{Keyword: t.text}
	case "throw":
		p.next()
		stmt = &ast.Throw{Value: p.parseExpr()}
	case "delete":
		p.next()
		stmt = &ast.Delete{Value: p.parseExpr()}
	case "try":
		return p.parseTry()
	case "enum":
		return p.parseEnum()
	case "function":
		if p.peekAt(1).kind == tokIdent {
			fn := p.parseFunction()
			p.semi()
			fn.Loc.End = p.end()
			return fn
		}
	}

	if stmt == nil {
		stmt = p.parseSimple()
	}
	p.semi()
	ast.SetSpan(stmt, ast.Span{Start: start, End: p.end()})
	return stmt
}

// parseSimple parses a statement that may appear in a for-loop header: a
// declaration, an assignment, or an expression.
func (p *parser) parseSimple() ast.Node {
	start := p.peek().span.Start
	switch t := p.peek(); {
	case t.kind == tokIdent && (t.text == "var" || t.text == "static" || t.text == "globalvar"):
		return p.parseVarDecl()
	}

	lhs := p.parseUnary()
	if t := p.peek(); t.kind == tokPunct && assignOps[t.text] {
		p.next()
		rhs := p.parseExpr()
		return &ast.Assign{Base: p.base(start), Op: t.text, Left: lhs, Right: rhs}
	}

	x := p.parseTernaryRest(p.parseBinaryRest(lhs, 0))
	return &ast.ExprStmt{Base: p.base(start), X: x}
}

func (p *parser) parseBlock() *ast.Block {
	start := p.expect("{").span.Start
	b := &ast.Block{}
	for !p.is("}") && p.peek().kind != tokEOF {
		b.Body = append(b.Body, p.parseStatement())
	}
	p.expect("}")
	b.Base = p.base(start)
	return b
}

func (p *parser) parseVarDecl() *ast.VarDecl {
	t := p.next()
	d := &ast.VarDecl{Keyword: t.text}
	for {
		start := p.peek().span.Start
		decl := &ast.Declarator{Name: p.parseIdent()}
		if p.accept(":") {
			decl.Type = p.parseType()
		}
		if p.accept("=") || p.accept(":=") {
			decl.Init = p.parseExpr()
		}
		decl.Base = p.base(start)
		d.Decls = append(d.Decls, decl)
		if !p.accept(",") {
			break
		}
	}
	d.Base = p.base(t.span.Start)
	return d
}

// parseType parses a type annotation, returning its text without whitespace.
func (p *parser) parseType() string {
	start := p.peek().span.Start
	p.parseTypeExpr()
	return strings.Join(strings.Fields(p.src[start:p.end()]), "")
}

func (p *parser) parseTypeExpr() {
	p.parseIdent()
	for p.accept(".") {
		p.parseIdent()
	}
	if p.accept("<") {
		p.parseTypeExpr()
		for p.accept(",") {
			p.parseTypeExpr()
		}
		p.expect(">")
	}
	if p.accept("|") {
		p.parseTypeExpr()
	}
}

// parseCondition parses the controlling expression of a statement. Redundant
// parentheses around it are dropped, since they are always printed.
func (p *parser) parseCondition() ast.Node {
	x := p.parseExpr()
	if paren, ok := x.(*ast.Paren); ok {
		return paren.X
	}
	return x
}

func (p *parser) parseFor() ast.Node {
	start := p.next().span.Start
	n := &ast.For{}
	p.expect("(")
	if !p.is(";") {
		n.Init = p.parseSimple()
	}
	p.expect(";")
	if !p.is(";") {
		n.Cond = p.parseExpr()
	}
	p.expect(";")
	if !p.is(")") {
		n.Update = p.parseSimple()
	}
	p.expect(")")
	n.Body = p.parseStatement()
	n.Base = p.base(start)
	return n
}

func (p *parser) parseSwitch() ast.Node {
	start := p.next().span.Start
	n := &ast.Switch{Value: p.parseCondition()}
	p.expect("{")
	for !p.is("}") {
		t := p.peek()
		c := &ast.Case{}
		switch {
		case p.accept("case"):
			c.Test = p.parseExpr()
		case p.accept("default"):
		default:
			p.fail(t, "expected \"case\" or \"default\", found %s", describe(t))
		}
		p.expect(":")
		for !p.is("case") && !p.is("default") && !p.is("}") && p.peek().kind != tokEOF {
			c.Body = append(c.Body, p.parseStatement())
		}
		c.Base = p.base(t.span.Start)
		n.Cases = append(n.Cases, c)
	}
	p.expect("}")
	p.semi()
	n.Base = p.base(start)
	return n
}

func (p *parser) parseTry() ast.Node {
	t := p.next()
	n := &ast.Try{Body: p.parseBlock()}
	if p.accept("catch") {
		if p.accept("(") {
			n.Param = p.parseIdent()
			p.expect(")")
		}
		n.Catch = p.parseBlock()
	}
	if p.accept("finally") {
		n.Finally = p.parseBlock()
	}
	if n.Catch == nil && n.Finally == nil {
		p.fail(p.peek(), "expected \"catch\" or \"finally\", found %s", describe(p.peek()))
	}
	p.semi()
	n.Base = p.base(t.span.Start)
	return n
}

func (p *parser) parseEnum() ast.Node {
	start := p.next().span.Start
	n := &ast.Enum{Name: p.parseIdent()}
	p.expect("{")
	for !p.is("}") {
		mstart := p.peek().span.Start
		m := &ast.EnumMember{Name: p.parseIdent()}
		if p.accept("=") {
			m.Value = p.parseExpr()
		}
		m.Base = p.base(mstart)
		n.Members = append(n.Members, m)
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	p.semi()
	n.Base = p.base(start)
	return n
}

func (p *parser) parseFunction() *ast.Function {
	start := p.expect("function").span.Start
	fn := &ast.Function{}
	if p.peek().kind == tokIdent {
		fn.Name = p.parseIdent()
	}

	p.expect("(")
	for !p.is(")") {
		pstart := p.peek().span.Start
		param := &ast.Param{Name: p.parseIdent()}
		if p.accept(":") {
			param.Type = p.parseType()
		}
		if p.accept("=") {
			param.Default = p.parseExpr()
		}
		param.Base = p.base(pstart)
		fn.Params = append(fn.Params, param)
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")

	if p.accept("->") {
		fn.ReturnType = p.parseType()
	}
	if p.accept(":") {
		pstart := p.peek().span.Start
		parent := p.parseIdent()
		args := p.parseArgs("(", ")")
		fn.Inherits = &ast.Call{Base: p.base(pstart), Fn: parent, Args: args}
	}
	if p.accept("constructor") {
		fn.Constructor = true
	}
	fn.Body = p.parseBlock()
	fn.Base = p.base(start)
	return fn
}

func (p *parser) parseIdent() *ast.Ident {
	t := p.peek()
	if t.kind != tokIdent || reserved[t.text] {
		p.fail(t, "expected identifier, found %s", describe(t))
	}
	p.next()
	return &ast.Ident{Base: ast.Base{Loc: t.span}, Name: t.text}
}

// parseArgs parses a comma-separated expression list between open and
// close. A trailing comma is allowed.
func (p *parser) parseArgs(open, close string) []ast.Node {
	p.expect(open)
	var out []ast.Node
	for !p.is(close) {
		out = append(out, p.parseExpr())
		if !p.accept(",") {
			break
		}
	}
	p.expect(close)
	return out
}

func (p *parser) parseExpr() ast.Node {
	p.enter()
	defer p.leave()

	return p.parseTernaryRest(p.parseBinary(0))
}

func (p *parser) parseTernaryRest(cond ast.Node) ast.Node {
	if !p.accept("?") {
		return cond
	}
	n := &ast.Ternary{Cond: cond, Then: p.parseExpr()}
	p.expect(":")
	n.Else = p.parseExpr()
	n.Base = p.base(cond.Span().Start)
	return n
}

func (p *parser) parseBinary(minLevel int) ast.Node {
	return p.parseBinaryRest(p.parseUnary(), minLevel)
}

func (p *parser) parseBinaryRest(left ast.Node, minLevel int) ast.Node {
	for {
		t := p.peek()
		if t.kind != tokPunct && t.kind != tokIdent {
			return left
		}
		prec, ok := binaryOps[t.text]
		if !ok || prec.level < minLevel {
			return left
		}
		p.next()

		next := prec.level + 1
		if prec.right {
			next = prec.level
		}
		right := p.parseBinary(next)
		left = &ast.Binary{Base: p.base(left.Span().Start), Op: t.text, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() ast.Node {
	p.enter()
	defer p.leave()

	t := p.peek()
	if (t.kind == tokPunct || t.kind == tokIdent) && unaryOps[t.text] {
		p.next()
		x := p.parseUnary()
		return &ast.Unary{Base: p.base(t.span.Start), Op: t.text, X: x}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(x ast.Node) ast.Node {
	start := x.Span().Start
	for {
		t := p.peek()
		if t.kind != tokPunct {
			return x
		}
		switch t.text {
		case "(":
			args := p.parseArgs("(", ")")
			x = &ast.Call{Base: p.base(start), Fn: x, Args: args}
		case ".":
			p.next()
			name := p.parseIdent()
			x = &ast.Member{Base: p.base(start), X: x, Name: name}
		case "[", "[@", "[|", "[?", "[#", "[$":
			p.next()
			n := &ast.Index{X: x, Accessor: t.text[1:]}
			for {
				n.Indices = append(n.Indices, p.parseExpr())
				if !p.accept(",") {
					break
				}
			}
			p.expect("]")
			n.Base = p.base(start)
			x = n
		case "++", "--":
			if !p.sameLine() {
				return x
			}
			p.next()
			x = &ast.Postfix{Base: p.base(start), Op: t.text, X: x}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Node {
	t := p.peek()
	start := t.span.Start

	switch t.kind {
	case tokNumber:
		p.next()
		return &ast.Number{Base: ast.Base{Loc: t.span}, Text: t.text}
	case tokString:
		p.next()
		return &ast.String{Base: ast.Base{Loc: t.span}, Text: t.text}
	case tokIdent:
		switch t.text {
		case "function":
			return p.parseFunction()
		case "new":
			p.next()
			n := &ast.New{Ctor: p.parseIdent()}
			for p.is(".") {
				p.next()
				name := p.parseIdent()
				n.Ctor = &ast.Member{Base: p.base(n.Ctor.Span().Start), X: n.Ctor, Name: name}
			}
			if p.is("(") {
				n.Args = p.parseArgs("(", ")")
			}
			n.Base = p.base(start)
			return n
		}
		return p.parseIdent()
	case tokPunct:
		switch t.text {
		case "(":
			p.next()
			x := p.parseExpr()
			p.expect(")")
			return &ast.Paren{Base: p.base(start), X: x}
		case "[":
			elems := p.parseArgs("[", "]")
			return &ast.Array{Base: p.base(start), Elems: elems}
		case "{":
			return p.parseStruct()
		}
	}

	p.fail(t, "unexpected %s", describe(t))
	return nil
}

func (p *parser) parseStruct() ast.Node {
	start := p.expect("{").span.Start
	n := &ast.Struct{}
	for !p.is("}") {
		t := p.peek()
		prop := &ast.Property{}
		switch t.kind {
		case tokIdent:
			// Keywords are allowed as property names.
			p.next()
			prop.Name = &ast.Ident{Base: ast.Base{Loc: t.span}, Name: t.text}
		case tokString:
			p.next()
			prop.Name = &ast.String{Base: ast.Base{Loc: t.span}, Text: t.text}
		default:
			p.fail(t, "expected property name, found %s", describe(t))
		}
		if p.accept(":") {
			prop.Value = p.parseExpr()
		}
		prop.Base = p.base(t.span.Start)
		n.Props = append(n.Props, prop)
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	n.Base = p.base(start)
	return n
}
