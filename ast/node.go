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

// Kind identifies the type of a [Node].
type Kind byte

const (
	KindInvalid Kind = iota

	// Statements.
	KindFile
	KindBlock
	KindVarDecl
	KindDeclarator
	KindIf
	KindWhile
	KindDoUntil
	KindRepeat
	KindFor
	KindSwitch
	KindCase
	KindWith
	KindReturn
	KindJump
	KindThrow
	KindTry
	KindDelete
	KindEnum
	KindEnumMember
	KindFunction
	KindParam
	KindExprStmt
	KindAssign
	KindEmpty
	KindRegion
	KindEndRegion
	KindMacro

	// Expressions.
	KindIdent
	KindNumber
	KindString
	KindBinary
	KindUnary
	KindPostfix
	KindTernary
	KindCall
	KindNew
	KindMember
	KindIndex
	KindParen
	KindArray
	KindStruct
	KindProperty
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindFile:        "file",
	KindBlock:       "block",
	KindVarDecl:     "var-decl",
	KindDeclarator:  "declarator",
	KindIf:          "if",
	KindWhile:       "while",
	KindDoUntil:     "do-until",
	KindRepeat:      "repeat",
	KindFor:         "for",
	KindSwitch:      "switch",
	KindCase:        "case",
	KindWith:        "with",
	KindReturn:      "return",
	KindJump:        "jump",
	KindThrow:       "throw",
	KindTry:         "try",
	KindDelete:      "delete",
	KindEnum:        "enum",
	KindEnumMember:  "enum-member",
	KindFunction:    "function",
	KindParam:       "param",
	KindExprStmt:    "expr-stmt",
	KindAssign:      "assign",
	KindEmpty:       "empty",
	KindRegion:      "region",
	KindEndRegion:   "endregion",
	KindMacro:       "macro",
	KindIdent:       "ident",
	KindNumber:      "number",
	KindString:      "string",
	KindBinary:      "binary",
	KindUnary:       "unary",
	KindPostfix:     "postfix",
	KindTernary:     "ternary",
	KindCall:        "call",
	KindNew:         "new",
	KindMember:      "member",
	KindIndex:       "index",
	KindParen:       "paren",
	KindArray:       "array",
	KindStruct:      "struct",
	KindProperty:    "property",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// IsStatement returns whether nodes of this kind appear in statement lists.
func (k Kind) IsStatement() bool {
	return k >= KindFile && k <= KindMacro &&
		k != KindDeclarator && k != KindCase && k != KindEnumMember && k != KindParam
}

// Node is a node in the syntax tree.
type Node interface {
	// Kind returns the type of this node.
	Kind() Kind
	// Span returns the source range this node covers.
	Span() Span
	// Children returns the node's children, in source order. Absent optional
	// children are omitted.
	Children() []Node
	// Comments returns the comment groups attached to this node.
	Comments() []*CommentGroup
	// AddComment attaches a comment group to this node.
	AddComment(*CommentGroup)

	base() *Base
}

// Base holds the fields common to every node. It is embedded in each node
// type.
type Base struct {
	Loc Span

	comments []*CommentGroup
}

// Span implements [Node].
func (b *Base) Span() Span { return b.Loc }

// Comments implements [Node].
func (b *Base) Comments() []*CommentGroup { return b.comments }

// AddComment implements [Node].
func (b *Base) AddComment(c *CommentGroup) {
	b.comments = append(b.comments, c)
}

func (b *Base) base() *Base { return b }

// SetSpan replaces the span of n.
func SetSpan(n Node, span Span) {
	n.base().Loc = span
}

// nodes builds a child list, dropping absent children.
func nodes(children ...Node) []Node {
	out := children[:0]
	for _, n := range children {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// list converts a slice of concrete nodes into a child list.
func list[N Node](in []N) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}

// opt converts an optional concrete child into a [Node], mapping a nil
// pointer to a nil interface.
func opt[T any, P interface {
	*T
	Node
}](p P) Node {
	if p == nil {
		return nil
	}
	return p
}
