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

import "iter"

// Inspect traverses the tree rooted at root in pre-order, calling f for each
// node. If f returns false, the node's children are skipped.
//
// The traversal uses an explicit stack, so it is safe on arbitrarily deep
// trees.
func Inspect(root Node, f func(Node) bool) {
	if root == nil {
		return
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			continue
		}
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Preorder returns an iterator over the tree rooted at root, in pre-order.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		done := false
		Inspect(root, func(n Node) bool {
			if done {
				return false
			}
			if !yield(n) {
				done = true
				return false
			}
			return true
		})
	}
}

// Comments returns every comment group attached anywhere in the tree rooted
// at root, in traversal order.
func Comments(root Node) []*CommentGroup {
	var out []*CommentGroup
	Inspect(root, func(n Node) bool {
		out = append(out, n.Comments()...)
		return true
	})
	return out
}
