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

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"strings"
)

// Hashes computes a structural hash for every node in the tree rooted at
// root.
//
// A node's hash depends only on its kind, its [Label] and the hashes of its
// children. Spans, comments and type annotations do not contribute, and
// neither do empty statements, which formatting removes. Two trees that
// differ only in layout therefore hash the same.
func Hashes(root Node) map[Node]uint64 {
	type frame struct {
		node Node
		exit bool
	}

	out := make(map[Node]uint64)
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.exit {
			stack = append(stack, frame{node: f.node, exit: true})
			for _, c := range f.node.Children() {
				stack = append(stack, frame{node: c})
			}
			continue
		}

		h := fnv.New64a()
		var buf [8]byte
		h.Write([]byte{byte(f.node.Kind())})
		h.Write([]byte(Label(f.node)))
		h.Write([]byte{0})
		for _, c := range HashedChildren(f.node) {
			binary.LittleEndian.PutUint64(buf[:], out[c])
			h.Write(buf[:])
		}
		out[f.node] = h.Sum64()
	}
	return out
}

// Hash returns the structural hash of root. See [Hashes].
func Hash(root Node) uint64 {
	return Hashes(root)[root]
}

// HashedChildren returns the children of n that contribute to its structural
// hash.
func HashedChildren(n Node) []Node {
	children := n.Children()
	out := children[:0:0]
	for _, c := range children {
		if c.Kind() != KindEmpty {
			out = append(out, c)
		}
	}
	return out
}

// Label returns the part of a node that is not captured by its kind and
// children, in canonical form: an operator, a name or a literal.
func Label(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return n.Name
	case *Number:
		return CanonicalNumber(n.Text)
	case *String:
		return n.Text
	case *Binary:
		return CanonicalOperator(n.Op)
	case *Unary:
		return CanonicalOperator(n.Op)
	case *Postfix:
		return n.Op
	case *Assign:
		return CanonicalOperator(n.Op)
	case *VarDecl:
		return n.Keyword
	case *Jump:
		return n.Keyword
	case *Index:
		return n.Accessor
	case *Function:
		if n.Constructor {
			return "constructor"
		}
	case *Case:
		if n.Test == nil {
			return "default"
		}
	case *Directive:
		return strings.Join(strings.Fields(n.Text), " ")
	}
	return ""
}

var canonicalOperators = map[string]string{
	"and": "&&",
	"or":  "||",
	"xor": "^^",
	"not": "!",
	"mod": "%",
	"<>":  "!=",
	":=":  "=",
}

// CanonicalOperator returns the symbolic spelling of an operator that has a
// keyword or legacy alias, and op unchanged otherwise.
func CanonicalOperator(op string) string {
	if c, ok := canonicalOperators[op]; ok {
		return c
	}
	return op
}

// CanonicalNumber returns a spelling of a numeric literal that is the same
// for every literal with the same value: "$ff", "0xFF" and "255" are all
// "255".
func CanonicalNumber(text string) string {
	digits := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	var (
		value uint64
		err   error
	)
	switch {
	case strings.HasPrefix(digits, "0x"):
		value, err = strconv.ParseUint(digits[2:], 16, 64)
	case strings.HasPrefix(digits, "$"):
		value, err = strconv.ParseUint(digits[1:], 16, 64)
	case strings.HasPrefix(digits, "0b"):
		value, err = strconv.ParseUint(digits[2:], 2, 64)
	default:
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return digits
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if err != nil {
		return digits
	}
	return strconv.FormatUint(value, 10)
}
