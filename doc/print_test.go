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

package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pizzaandy/Gobo-sub001/doc"
)

func render(t *testing.T, width int, d doc.Doc) string {
	t.Helper()
	doc.PropagateBreaks(d)
	out, err := doc.Print(doc.Options{Width: width}, d)
	require.NoError(t, err)
	return out
}

func TestPrint(t *testing.T) {
	t.Parallel()

	binary := func() doc.Doc {
		return doc.NewGroup(
			doc.Text("a = "),
			doc.Indent{Contents: doc.Cat(
				doc.Text("1 +"), doc.LineBreak,
				doc.Text("2 +"), doc.LineBreak,
				doc.Text("3;"),
			)},
		)
	}

	tests := []struct {
		name  string
		width int
		doc   func() doc.Doc
		want  string
	}{
		{
			name:  "empty",
			width: 80,
			doc:   func() doc.Doc { return doc.Null },
			want:  "",
		},
		{
			name:  "group-fits",
			width: 80,
			doc:   binary,
			want:  "a = 1 + 2 + 3;\n",
		},
		{
			name:  "group-exactly-fits",
			width: 14,
			doc:   binary,
			want:  "a = 1 + 2 + 3;\n",
		},
		{
			name:  "group-breaks",
			width: 13,
			doc:   binary,
			want:  "a = 1 +\n    2 +\n    3;\n",
		},
		{
			name:  "soft-line",
			width: 3,
			doc: func() doc.Doc {
				return doc.NewGroup(
					doc.Text("f("),
					doc.Indent{Contents: doc.Cat(doc.SoftLine, doc.Text("x"))},
					doc.SoftLine, doc.Text(")"),
				)
			},
			want: "f(\n    x\n)\n",
		},
		{
			name:  "hard-line-breaks-innermost-group-only",
			width: 8,
			doc: func() doc.Doc {
				return doc.NewGroup(
					doc.Text("a"),
					doc.NewGroup(doc.Text("b"), doc.HardLine, doc.Text("c")),
					doc.LineBreak,
					doc.NewGroup(doc.Text("dddddd"), doc.LineBreak, doc.Text("eeeeee")),
				)
			},
			// The outer group stays flat, but the group after the forced
			// newline is measured against the line it actually lands on.
			want: "ab\nc dddddd\neeeeee\n",
		},
		{
			name:  "force-flat",
			width: 1,
			doc: func() doc.Doc {
				return doc.ForceFlat{Contents: doc.NewGroup(
					doc.Text("for ("),
					doc.NewGroup(doc.Text("i = 0;"), doc.LineBreak, doc.Text("i < n;")),
					doc.Text(")"),
				)}
			},
			want: "for (i = 0; i < n;)\n",
		},
		{
			name:  "force-flat-keeps-hard-lines",
			width: 80,
			doc: func() doc.Doc {
				return doc.ForceFlat{Contents: doc.Cat(doc.Text("a"), doc.HardLine, doc.Text("b"))}
			},
			want: "a\nb\n",
		},
		{
			name:  "fill",
			width: 14,
			doc: func() doc.Doc {
				return doc.Fill{
					doc.Text("aaaa"), doc.LineBreak,
					doc.Text("aaaa"), doc.LineBreak,
					doc.Text("aaaa"), doc.LineBreak,
					doc.Text("aaaa"),
				}
			},
			want: "aaaa aaaa aaaa\naaaa\n",
		},
		{
			name:  "fill-in-force-flat",
			width: 1,
			doc: func() doc.Doc {
				return doc.ForceFlat{Contents: doc.Fill{
					doc.Text("1,"), doc.LineBreak, doc.Text("2,"), doc.LineBreak, doc.Text("3"),
				}}
			},
			want: "1, 2, 3\n",
		},
		{
			name:  "align",
			width: 10,
			doc: func() doc.Doc {
				return doc.NewGroup(
					doc.Text("var "),
					doc.Align{Width: 4, Contents: doc.Cat(
						doc.Text("a = 1,"), doc.LineBreak, doc.Text("b = 2;"),
					)},
				)
			},
			want: "var a = 1,\n    b = 2;\n",
		},
		{
			name:  "trim-and-collapsed-space",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(
					doc.Text("a   "), doc.CollapsedSpace{}, doc.Text("b  "),
					doc.Trim{}, doc.Text(";"),
				)
			},
			want: "a b;\n",
		},
		{
			name:  "collapsed-space-at-line-start",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(doc.CollapsedSpace{}, doc.Text("a"))
			},
			want: "a\n",
		},
		{
			name:  "trailing-whitespace-is-trimmed",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(doc.Text("a  "), doc.HardLine, doc.Text("b\t"))
			},
			want: "a\nb\n",
		},
		{
			name:  "leading-blank-lines-are-stripped",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(doc.HardLine, doc.HardLine, doc.Text("a"))
			},
			want: "a\n",
		},
		{
			name:  "literal-lines",
			width: 80,
			doc: func() doc.Doc {
				return doc.Indent{Contents: doc.Cat(
					doc.HardLine,
					doc.Text("x = "),
					doc.Lines("@\"one\n  two\nthree\""),
					doc.Text(";"),
				)}
			},
			want: "    x = @\"one\n  two\nthree\";\n",
		},
		{
			name:  "literal-line-squashes-blank-lines",
			width: 80,
			doc: func() doc.Doc {
				squash := doc.Line{Kind: doc.Literal, SquashIfBlank: true}
				return doc.Cat(doc.Text("a"), doc.LiteralLine, doc.LiteralLine, squash, squash, doc.Text("b"))
			},
			want: "a\n\nb\n",
		},
		{
			name:  "deferred-line-comment",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(
					doc.Text("a;"), doc.DeferredLineComment{Contents: doc.Text("// one")},
					doc.Text("  "),
					doc.HardLine,
					doc.Text("b;"), doc.DeferredLineComment{Contents: doc.Text("// two")},
				)
			},
			want: "a; // one\nb; // two\n",
		},
		{
			name:  "deferred-line-comment-after-open-bracket",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(
					doc.Text("f("),
					doc.DeferredLineComment{Contents: doc.Text("// c")},
					doc.Indent{Contents: doc.Cat(doc.HardLine, doc.Text("x"))},
					doc.HardLine, doc.Text(")"),
				)
			},
			want: "f(\n    // c\n    x\n)\n",
		},
		{
			name:  "deferred-line-comments-do-not-count-toward-width",
			width: 6,
			doc: func() doc.Doc {
				return doc.Cat(
					doc.NewGroup(
						doc.Text("a"),
						doc.DeferredLineComment{Contents: doc.Text("// a long comment")},
						doc.LineBreak, doc.Text("b;"),
					),
				)
			},
			want: "a b; // a long comment\n",
		},
		{
			name:  "inline-comment",
			width: 80,
			doc: func() doc.Doc {
				return doc.Cat(
					doc.Text("f("), doc.Text("x "),
					doc.InlineComment{Contents: doc.Text("/* c */")},
					doc.Text(")"),
				)
			},
			want: "f(x /* c */ )\n",
		},
		{
			name:  "region",
			width: 80,
			doc: func() doc.Doc {
				return doc.Indent{Contents: doc.Cat(
					doc.HardLine, doc.Region{Text: "#region a"},
					doc.HardLine, doc.Text("x"),
					doc.Indent{Contents: doc.Cat(doc.HardLine, doc.Region{Text: "#endregion", End: true})},
				)}
			},
			want: "    #region a\n    x\n    #endregion\n",
		},
		{
			name:  "region-never-fits",
			width: 80,
			doc: func() doc.Doc {
				return doc.NewGroup(doc.Text("a"), doc.LineBreak, doc.Region{Text: "#region"})
			},
			want: "a\n#region\n",
		},
		{
			name:  "always-fits",
			width: 4,
			doc: func() doc.Doc {
				return doc.NewGroup(
					doc.Text("a"), doc.LineBreak,
					doc.AlwaysFits{Contents: doc.Text("verbatim")},
				)
			},
			want: "a verbatim\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, render(t, test.width, test.doc()))
		})
	}
}

func TestConditionalGroup(t *testing.T) {
	t.Parallel()

	call := func(last doc.Doc) doc.Doc {
		return doc.Conditional(
			doc.Text("f(aaaaaaaaaa)"),
			doc.Text("f(a)"),
			doc.Cat(doc.Text("f("), doc.Indent{Contents: doc.Cat(doc.LineBreak, last)}, doc.LineBreak, doc.Text(")")),
		)
	}

	assert.Equal(t, "f(aaaaaaaaaa)\n", render(t, 80, call(doc.Text("x"))))
	assert.Equal(t, "f(a)\n", render(t, 10, call(doc.Text("x"))))

	expanded := doc.Conditional(
		doc.Text("f(aaaaaaaaaa)"),
		doc.Text("f(bbbbbbbbbb)"),
		doc.Cat(doc.Text("f("), doc.Indent{Contents: doc.Cat(doc.SoftLine, doc.Text("x"))}, doc.SoftLine, doc.Text(")")),
	)
	assert.Equal(t, "f(\n    x\n)\n", render(t, 10, expanded))

	// A forced break in the default alternative selects the expanded one
	// outright.
	forced := doc.Conditional(
		doc.Cat(doc.Text("a"), doc.HardLine, doc.Text("b")),
		doc.Text("never"),
		doc.Cat(doc.Text("c"), doc.SoftLine, doc.Text("d")),
	)
	assert.Equal(t, "c\nd\n", render(t, 80, forced))

	// The same holds when an enclosing group is flat.
	nested := doc.NewGroup(doc.Text("x"), doc.Conditional(
		doc.Cat(doc.Text("a"), doc.HardLine, doc.Text("b")),
		doc.Cat(doc.Text("c"), doc.SoftLine, doc.Text("d")),
	))
	assert.Equal(t, "xc\nd\n", render(t, 80, nested))
}

func TestIfBreak(t *testing.T) {
	t.Parallel()

	array := func(ids *doc.IDs) doc.Doc {
		id := ids.New()
		return &doc.Group{
			ID: id,
			Contents: doc.Cat(
				doc.Text("["),
				doc.Indent{Contents: doc.Cat(
					doc.SoftLine, doc.Text("a,"), doc.LineBreak, doc.Text("b"),
					doc.IfBreak{Broken: doc.Text(","), Group: id},
				)},
				doc.SoftLine, doc.Text("]"),
			),
		}
	}

	var ids doc.IDs
	assert.Equal(t, "[a, b]\n", render(t, 80, array(&ids)))
	assert.Equal(t, "[\n    a,\n    b,\n]\n", render(t, 5, array(&ids)))

	// Without a handle, IfBreak follows the innermost enclosing group.
	inner := doc.NewGroup(
		doc.Text("x"),
		doc.IfBreak{Flat: doc.Text(" flat"), Broken: doc.Text(" broken")},
		doc.SoftLine,
	)
	assert.Equal(t, "x flat\n", render(t, 80, inner))
}

func TestIfBreakUnresolved(t *testing.T) {
	t.Parallel()

	var ids doc.IDs
	id := ids.New()
	d := doc.Cat(
		doc.IfBreak{Broken: doc.Text(","), Group: id},
		&doc.Group{ID: id, Contents: doc.Text("x")},
	)

	doc.PropagateBreaks(d)
	_, err := doc.Print(doc.Options{}, d)
	var invariant *doc.InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Contains(t, invariant.Error(), "before it was printed")
}

func TestGroupPrintedTwice(t *testing.T) {
	t.Parallel()

	g := &doc.Group{ID: 1, Contents: doc.Text("x")}
	_, err := doc.Print(doc.Options{}, doc.Cat(g, g))
	var invariant *doc.InvariantError
	require.ErrorAs(t, err, &invariant)
}

func TestUseTabs(t *testing.T) {
	t.Parallel()

	d := doc.Cat(doc.Text("{"), doc.Indent{Contents: doc.Cat(doc.HardLine, doc.Text("x;"))}, doc.HardLine, doc.Text("}"))
	doc.PropagateBreaks(d)

	out, err := doc.Print(doc.Options{UseTabs: true}, d)
	require.NoError(t, err)
	assert.Equal(t, "{\n\tx;\n}\n", out)

	out, err = doc.Print(doc.Options{TabWidth: 2}, d)
	require.NoError(t, err)
	assert.Equal(t, "{\n  x;\n}\n", out)
}

func TestFitsMeasuresUpToNextLineBreak(t *testing.T) {
	t.Parallel()

	call := func() doc.Doc {
		inner := doc.NewGroup(
			doc.Text("f("),
			doc.Indent{Contents: doc.Cat(doc.SoftLine, doc.Text("x"))},
			doc.SoftLine, doc.Text(")"),
		)
		return doc.NewGroup(
			doc.Text("g("),
			doc.Indent{Contents: doc.Cat(doc.SoftLine, inner, doc.Text(","), doc.LineBreak, doc.Text("yyyy"))},
			doc.SoftLine, doc.Text(")"),
		)
	}

	assert.Equal(t, "g(f(x), yyyy)\n", render(t, 13, call()))
	assert.Equal(t, "g(\n    f(x),\n    yyyy\n)\n", render(t, 12, call()))
	// The comma after the inner call is part of its line.
	assert.Equal(t, "g(\n    f(\n        x\n    ),\n    yyyy\n)\n", render(t, 8, call()))
}

func TestRemeasureAfterNewline(t *testing.T) {
	t.Parallel()

	// A flat statement whose first argument spans lines: the arguments after
	// it land on a new line and must fit there on their own.
	stmt := func() doc.Doc {
		fn := doc.NewGroup(
			doc.Text("function() {"),
			doc.Indent{Contents: doc.Cat(doc.HardLine, doc.Text("return 1;"))},
			doc.HardLine, doc.Text("}"),
		)
		args := doc.NewGroup(
			doc.Text("("),
			doc.Indent{Contents: doc.Cat(doc.SoftLine, doc.Text("bbbbbbbb,"), doc.LineBreak, doc.Text("cccccccc"))},
			doc.SoftLine, doc.Text(");"),
		)
		return doc.NewGroup(doc.Text("f("), fn, doc.Text(")"), args)
	}

	assert.Equal(t, "f(function() {\n    return 1;\n})(bbbbbbbb, cccccccc);\n", render(t, 40, stmt()))
	assert.Equal(t, "f(function() {\n    return 1;\n})(\n    bbbbbbbb,\n    cccccccc\n);\n", render(t, 20, stmt()))
}

func TestPrintedComments(t *testing.T) {
	t.Parallel()

	comment := doc.Comment{ID: 1, Contents: doc.Text("/* a */")}
	call := doc.Conditional(
		doc.Cat(doc.Text("f("), comment, doc.Text(" xxxxxxxx)")),
		doc.Cat(doc.Text("f("), comment, doc.Text(" x)")),
		doc.Cat(
			doc.Text("f("),
			doc.Indent{Contents: doc.Cat(doc.HardLine, comment, doc.Text(" x"))},
			doc.HardLine, doc.Text(")"),
		),
	)
	d := doc.Cat(
		call, doc.Text(";"), doc.DeferredLineComment{ID: 2, Contents: doc.Text("// b")},
		doc.HardLine,
		doc.Text("g(x"), doc.InlineComment{ID: 3, Contents: doc.Text("/* c */")}, doc.Text(")"),
		doc.Comment{Contents: doc.Text(" // d")},
	)
	doc.PropagateBreaks(d)

	var printed []doc.ID
	out, err := doc.Print(doc.Options{Width: 16, Printed: func(id doc.ID) {
		printed = append(printed, id)
	}}, d)
	require.NoError(t, err)
	assert.Equal(t, "f(/* a */ x); // b\ng(x /* c */ ) // d\n", out)
	// Alternatives that were measured but not chosen report nothing.
	assert.Equal(t, []doc.ID{1, 2, 3}, printed)
}

func TestDeepDocument(t *testing.T) {
	t.Parallel()

	// Far deeper than any recursive walk could handle comfortably.
	const depth = 100_000
	var d doc.Doc = doc.Text("x")
	for range depth {
		d = doc.ForceFlat{Contents: doc.Cat(doc.Text("("), doc.NewGroup(d), doc.Text(")"))}
	}
	out := render(t, 80, d)
	assert.Len(t, out, 2*depth+2)
}
