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

// File is the root of a syntax tree.
type File struct {
	Base

	// Source is the text that was parsed, with line endings normalized to
	// "\n". Every span in the tree indexes into it.
	Source string
	Lines  *Lines

	Body []Node

	// RawComments is every comment in the file, in source order.
	RawComments []Comment
	// Groups is filled in by comment attachment.
	Groups []*CommentGroup
}

// Block is a braced statement list.
type Block struct {
	Base
	Body []Node
}

// VarDecl is a declaration introduced by `var`, `static` or `globalvar`.
type VarDecl struct {
	Base
	Keyword string
	Decls   []*Declarator
}

// Declarator is one `name: Type = value` entry of a [VarDecl].
type Declarator struct {
	Base
	Name *Ident
	Type string // Optional annotation, without the colon.
	Init Node   // Optional.
}

// If is an if statement. Else is optional.
type If struct {
	Base
	Cond, Then, Else Node
}

// While is a while loop.
type While struct {
	Base
	Cond, Body Node
}

// DoUntil is a `do ... until (cond)` loop.
type DoUntil struct {
	Base
	Body, Cond Node
}

// Repeat is a `repeat (n)` loop.
type Repeat struct {
	Base
	Count, Body Node
}

// For is a C-style for loop. Each header clause is optional.
type For struct {
	Base
	Init, Cond, Update Node
	Body               Node
}

// Switch is a switch statement.
type Switch struct {
	Base
	Value Node
	Cases []*Case
}

// Case is one arm of a [Switch]. Test is nil for `default`.
type Case struct {
	Base
	Test Node
	Body []Node
}

// With is a `with (object)` statement.
type With struct {
	Base
	Object, Body Node
}

// Return is a return statement. Value is optional.
type Return struct {
	Base
	Value Node
}

// Jump is one of `break`, `continue` or `exit`.
type Jump struct {
	Base
	Keyword string
}

// Throw is a throw statement.
type Throw struct {
	Base
	Value Node
}

// Try is a try statement. Catch and Finally are each optional, but not both.
type Try struct {
	Base
	Body    *Block
	Param   *Ident // Optional, even when Catch is present.
	Catch   *Block
	Finally *Block
}

// Delete is a `delete` statement.
type Delete struct {
	Base
	Value Node
}

// Enum is an enum declaration.
type Enum struct {
	Base
	Name    *Ident
	Members []*EnumMember
}

// EnumMember is one member of an [Enum]. Value is optional.
type EnumMember struct {
	Base
	Name  *Ident
	Value Node
}

// Function is a function declaration, or a function expression when Name is
// nil.
type Function struct {
	Base
	Name        *Ident
	Params      []*Param
	Inherits    *Call // Optional `: Parent(args)` clause.
	Constructor bool
	ReturnType  string // Optional annotation, without the arrow.
	Body        *Block
}

// Param is a function parameter.
type Param struct {
	Base
	Name    *Ident
	Type    string // Optional annotation, without the colon.
	Default Node   // Optional.
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Base
	X Node
}

// Assign is an assignment statement, including compound assignments.
type Assign struct {
	Base
	Op          string
	Left, Right Node
}

// Empty is a lone semicolon.
type Empty struct {
	Base
}

// Directive is a `#region`, `#endregion` or `#macro` line. Text is the whole
// line, without trailing whitespace.
type Directive struct {
	Base
	Keyword string
	Text    string
}

func (*File) Kind() Kind       { return KindFile }
func (*Block) Kind() Kind      { return KindBlock }
func (*VarDecl) Kind() Kind    { return KindVarDecl }
func (*Declarator) Kind() Kind { return KindDeclarator }
func (*If) Kind() Kind         { return KindIf }
func (*While) Kind() Kind      { return KindWhile }
func (*DoUntil) Kind() Kind    { return KindDoUntil }
func (*Repeat) Kind() Kind     { return KindRepeat }
func (*For) Kind() Kind        { return KindFor }
func (*Switch) Kind() Kind     { return KindSwitch }
func (*Case) Kind() Kind       { return KindCase }
func (*With) Kind() Kind       { return KindWith }
func (*Return) Kind() Kind     { return KindReturn }
func (*Jump) Kind() Kind       { return KindJump }
func (*Throw) Kind() Kind      { return KindThrow }
func (*Try) Kind() Kind        { return KindTry }
func (*Delete) Kind() Kind     { return KindDelete }
func (*Enum) Kind() Kind       { return KindEnum }
func (*EnumMember) Kind() Kind { return KindEnumMember }
func (*Function) Kind() Kind   { return KindFunction }
func (*Param) Kind() Kind      { return KindParam }
func (*ExprStmt) Kind() Kind   { return KindExprStmt }
func (*Assign) Kind() Kind     { return KindAssign }
func (*Empty) Kind() Kind      { return KindEmpty }

func (d *Directive) Kind() Kind {
	switch d.Keyword {
	case "region":
		return KindRegion
	case "endregion":
		return KindEndRegion
	default:
		return KindMacro
	}
}

func (n *File) Children() []Node       { return list(n.Body) }
func (n *Block) Children() []Node      { return list(n.Body) }
func (n *VarDecl) Children() []Node    { return list(n.Decls) }
func (n *Declarator) Children() []Node { return nodes(opt(n.Name), n.Init) }
func (n *If) Children() []Node         { return nodes(n.Cond, n.Then, n.Else) }
func (n *While) Children() []Node      { return nodes(n.Cond, n.Body) }
func (n *DoUntil) Children() []Node    { return nodes(n.Body, n.Cond) }
func (n *Repeat) Children() []Node     { return nodes(n.Count, n.Body) }
func (n *For) Children() []Node        { return nodes(n.Init, n.Cond, n.Update, n.Body) }
func (n *Case) Children() []Node       { return append(nodes(n.Test), n.Body...) }
func (n *With) Children() []Node       { return nodes(n.Object, n.Body) }
func (n *Return) Children() []Node     { return nodes(n.Value) }
func (*Jump) Children() []Node         { return nil }
func (n *Throw) Children() []Node      { return nodes(n.Value) }
func (n *Delete) Children() []Node     { return nodes(n.Value) }
func (n *EnumMember) Children() []Node { return nodes(opt(n.Name), n.Value) }
func (n *Param) Children() []Node      { return nodes(opt(n.Name), n.Default) }
func (n *ExprStmt) Children() []Node   { return nodes(n.X) }
func (n *Assign) Children() []Node     { return nodes(n.Left, n.Right) }
func (*Empty) Children() []Node        { return nil }
func (*Directive) Children() []Node    { return nil }

func (n *Switch) Children() []Node {
	return append(nodes(n.Value), list(n.Cases)...)
}

func (n *Try) Children() []Node {
	return nodes(opt(n.Body), opt(n.Param), opt(n.Catch), opt(n.Finally))
}

func (n *Enum) Children() []Node {
	return append(nodes(opt(n.Name)), list(n.Members)...)
}

func (n *Function) Children() []Node {
	out := nodes(opt(n.Name))
	out = append(out, list(n.Params)...)
	return append(out, nodes(opt(n.Inherits), opt(n.Body))...)
}
