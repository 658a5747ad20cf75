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

// Ident is an identifier, including keywords used as values such as `self`
// or `undefined`.
type Ident struct {
	Base
	Name string
}

// Number is a numeric literal, as written.
type Number struct {
	Base
	Text string
}

// String is a string literal, as written, including quotes and any `@`
// prefix.
type String struct {
	Base
	Text string
}

// Binary is a binary operator expression.
type Binary struct {
	Base
	Op          string
	Left, Right Node
}

// Unary is a prefix operator expression.
type Unary struct {
	Base
	Op string
	X  Node
}

// Postfix is a postfix `++` or `--`.
type Postfix struct {
	Base
	Op string
	X  Node
}

// Ternary is a `cond ? a : b` expression.
type Ternary struct {
	Base
	Cond, Then, Else Node
}

// Call is a function call.
type Call struct {
	Base
	Fn   Node
	Args []Node
}

// New is a constructor call with `new`.
type New struct {
	Base
	Ctor Node
	Args []Node
}

// Member is a `x.name` expression.
type Member struct {
	Base
	X    Node
	Name *Ident
}

// Index is an index expression. Accessor is the character after the opening
// bracket of an accessor such as `[@`, or empty for a plain index.
type Index struct {
	Base
	X        Node
	Accessor string
	Indices  []Node
}

// Paren is a parenthesized expression.
type Paren struct {
	Base
	X Node
}

// Array is an array literal.
type Array struct {
	Base
	Elems []Node
}

// Struct is a struct literal.
type Struct struct {
	Base
	Props []*Property
}

// Property is one `name: value` entry of a [Struct]. Name is an [*Ident] or
// a [*String]. Value is nil for shorthand properties.
type Property struct {
	Base
	Name  Node
	Value Node
}

func (*Ident) Kind() Kind    { return KindIdent }
func (*Number) Kind() Kind   { return KindNumber }
func (*String) Kind() Kind   { return KindString }
func (*Binary) Kind() Kind   { return KindBinary }
func (*Unary) Kind() Kind    { return KindUnary }
func (*Postfix) Kind() Kind  { return KindPostfix }
func (*Ternary) Kind() Kind  { return KindTernary }
func (*Call) Kind() Kind     { return KindCall }
func (*New) Kind() Kind      { return KindNew }
func (*Member) Kind() Kind   { return KindMember }
func (*Index) Kind() Kind    { return KindIndex }
func (*Paren) Kind() Kind    { return KindParen }
func (*Array) Kind() Kind    { return KindArray }
func (*Struct) Kind() Kind   { return KindStruct }
func (*Property) Kind() Kind { return KindProperty }

func (*Ident) Children() []Node      { return nil }
func (*Number) Children() []Node     { return nil }
func (*String) Children() []Node     { return nil }
func (n *Binary) Children() []Node   { return nodes(n.Left, n.Right) }
func (n *Unary) Children() []Node    { return nodes(n.X) }
func (n *Postfix) Children() []Node  { return nodes(n.X) }
func (n *Ternary) Children() []Node  { return nodes(n.Cond, n.Then, n.Else) }
func (n *Call) Children() []Node     { return append(nodes(n.Fn), n.Args...) }
func (n *New) Children() []Node      { return append(nodes(n.Ctor), n.Args...) }
func (n *Member) Children() []Node   { return nodes(n.X, opt(n.Name)) }
func (n *Index) Children() []Node    { return append(nodes(n.X), n.Indices...) }
func (n *Paren) Children() []Node    { return nodes(n.X) }
func (n *Array) Children() []Node    { return n.Elems }
func (n *Struct) Children() []Node   { return list(n.Props) }
func (n *Property) Children() []Node { return nodes(n.Name, n.Value) }
