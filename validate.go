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

package gobo

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/comments"
	"github.com/Pizzaandy/Gobo-sub001/parser"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// validate checks the output of formatting file: every comment was printed
// exactly once, the output parses to an equivalent tree, and formatting the
// output again leaves it unchanged.
func validate(file *ast.File, tracker *comments.Tracker, out string, opts Options) error {
	if err := tracker.Check(opts.Path); err != nil {
		return withOutput(err, out)
	}

	after, err := parser.Parse(opts.Path, out)
	if err != nil {
		return &reporter.InternalError{
			Kind:   reporter.ASTMismatch,
			Path:   opts.Path,
			Output: out,
			Err:    err,
		}
	}
	if a, b, ok := mismatch(file, after); ok {
		return &reporter.InternalError{
			Kind:   reporter.ASTMismatch,
			Path:   opts.Path,
			Before: describe(file.Source, a),
			After:  describe(out, b),
			Diff:   cmp.Diff(SExpr(a), SExpr(b)),
			Output: out,
		}
	}

	again := opts
	again.ValidateOutput = false
	again.Debug = false
	res, err := Format(out, again)
	if err != nil {
		return withOutput(err, out)
	}
	if res.Output != out {
		return &reporter.InternalError{
			Kind:   reporter.Idempotence,
			Path:   opts.Path,
			Diff:   Diff(opts.Path, out, res.Output),
			Output: out,
		}
	}
	return nil
}

func withOutput(err error, out string) error {
	if ie, ok := err.(*reporter.InternalError); ok {
		ie.Output = out
	}
	return err
}

// mismatch compares two trees by structural hash. If they differ, it returns
// the shallowest pair of corresponding subtrees that differ in something
// other than their children.
func mismatch(before, after ast.Node) (a, b ast.Node, ok bool) {
	hashA, hashB := ast.Hashes(before), ast.Hashes(after)
	a, b = before, after
	if hashA[a] == hashB[b] {
		return nil, nil, false
	}
	for {
		childrenA, childrenB := ast.HashedChildren(a), ast.HashedChildren(b)
		if a.Kind() != b.Kind() || ast.Label(a) != ast.Label(b) || len(childrenA) != len(childrenB) {
			return a, b, true
		}
		next := -1
		for i := range childrenA {
			if hashA[childrenA[i]] != hashB[childrenB[i]] {
				next = i
				break
			}
		}
		if next < 0 {
			// Equal kinds, labels and children. Only a hash collision
			// elsewhere could get here.
			return a, b, true
		}
		a, b = childrenA[next], childrenB[next]
	}
}

func describe(src string, n ast.Node) string {
	text := n.Span().Text(src)
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return fmt.Sprintf("%v%v %q", n.Kind(), n.Span(), text)
}

// SExpr renders the structure of a tree as an s-expression, in the form that
// determines its structural hash.
func SExpr(n ast.Node) string {
	var b strings.Builder
	sexpr(&b, n)
	return b.String()
}

func sexpr(b *strings.Builder, n ast.Node) {
	b.WriteString("(")
	b.WriteString(n.Kind().String())
	if label := ast.Label(n); label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	for _, c := range ast.HashedChildren(n) {
		b.WriteString(" ")
		sexpr(b, c)
	}
	b.WriteString(")")
}

// Diff returns a unified diff from before to after, or "" if they are equal.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}
	if path == "" {
		path = "<input>"
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
	return diff
}
