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

package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pizzaandy/Gobo-sub001/comments"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/doc"
	"github.com/Pizzaandy/Gobo-sub001/parser"
	"github.com/Pizzaandy/Gobo-sub001/printer"
)

func format(t *testing.T, src string, opts config.Options) string {
	t.Helper()

	file, err := parser.Parse("test.gml", src)
	require.NoError(t, err)
	require.NoError(t, comments.Attach(file))
	tracker := comments.NewTracker(file)

	d := printer.Print(file, opts)
	doc.PropagateBreaks(d)
	out, err := doc.Print(doc.Options{
		Width:                 opts.Width,
		TabWidth:              opts.TabWidth,
		UseTabs:               opts.UseTabs,
		KeepLeadingBlankLines: !opts.StripLeadingBlankLines,
		Printed:               func(id doc.ID) { tracker.Record(int(id)) },
	}, d)
	require.NoError(t, err)
	require.NoError(t, tracker.Check("test.gml"))
	return out
}

func TestPrint(t *testing.T) {
	t.Parallel()

	width := func(n int) func(*config.Options) {
		return func(o *config.Options) { o.Width = n }
	}

	tests := []struct {
		name   string
		src    string
		want   string
		option func(*config.Options)
	}{
		{
			name: "binary",
			src:  "a=1+2+3",
			want: "a = 1 + 2 + 3;\n",
		},
		{
			name:   "binary-breaks-before-operators",
			src:    "x = aaaaaa + bbbbbb + cccccc;",
			want:   "x = aaaaaa\n    + bbbbbb\n    + cccccc;\n",
			option: width(20),
		},
		{
			name: "canonical-operators",
			src:  "if (a and not b or c mod 2 <> 0) {}",
			want: "if (a && !b || c % 2 != 0) {}\n",
		},
		{
			name: "numbers",
			src:  "x := .5; y = $FF;",
			want: "x = 0.5;\ny = $FF;\n",
		},
		{
			name: "unary-minus",
			src:  "x = - -y;",
			want: "x = - -y;\n",
		},
		{
			name: "if-else",
			src:  "if (x) {a()} else {b()}",
			want: "if (x) {\n    a();\n} else {\n    b();\n}\n",
		},
		{
			name: "else-if",
			src:  "if a {x=1} else if b {x=2} else x=3",
			want: "if (a) {\n    x = 1;\n} else if (b) {\n    x = 2;\n} else\n    x = 3;\n",
		},
		{
			name: "comment-before-else",
			src:  "if (a) {\nb();\n}\n// c\nelse {\nd();\n}",
			want: "if (a) {\n    b();\n}\n// c\nelse {\n    d();\n}\n",
		},
		{
			name: "comment-before-else-if",
			src:  "if (a) b();\n/* c */\nelse if (d) e();",
			want: "if (a)\n    b();\n/* c */\nelse if (d)\n    e();\n",
		},
		{
			name: "comment-after-header",
			src:  "with (o) // c\n{\nx = 1;\n}\nif (a) // d\n{}",
			want: "with (o) // c\n{\n    x = 1;\n}\nif (a) // d\n{}\n",
		},
		{
			name: "comment-after-for-header",
			src:  "for (i = 0; i < n; i++) // c\n{\nx();\n}",
			want: "for (i = 0; i < n; i++) // c\n{\n    x();\n}\n",
		},
		{
			name: "comment-after-switch-header",
			src:  "switch (x) // c\n{\ncase 1: break;\n}",
			want: "switch (x) // c\n{\n    case 1:\n        break;\n}\n",
		},
		{
			name: "brace-new-line",
			src:  "if (x) {a()} else {b()}",
			want: "if (x)\n{\n    a();\n}\nelse\n{\n    b();\n}\n",
			option: func(o *config.Options) {
				o.BraceStyle = config.NewLine
			},
		},
		{
			name:   "call-one-argument-per-line",
			src:    "foo(aaaaaaaa, bbbbbbbb, cccccccc);",
			want:   "foo(\n    aaaaaaaa,\n    bbbbbbbb,\n    cccccccc\n);\n",
			option: width(20),
		},
		{
			name:   "call-hugs-function",
			src:    "foo(a, function() { return 1; });",
			want:   "foo(a, function() {\n    return 1;\n});\n",
			option: width(30),
		},
		{
			name:   "call-hugs-struct",
			src:    "foo(alpha, {b: 1, c: 2});",
			want:   "foo(alpha, {\n    b: 1,\n    c: 2,\n});\n",
			option: width(20),
		},
		{
			name: "call-line-comment-breaks",
			src:  "foo(a, // c\n b);",
			want: "foo(\n    a, // c\n    b\n);\n",
		},
		{
			name:   "numeric-array-fills",
			src:    "a = [1, 2, 3, 4, 5, 6, 7, 8, 9, 10];",
			want:   "a = [\n    1, 2, 3, 4, 5,\n    6, 7, 8, 9, 10,\n];\n",
			option: width(20),
		},
		{
			name:   "struct-trailing-comma",
			src:    "s = {alpha: 1, beta: 2, gamma: 3};",
			want:   "s = {\n    alpha: 1,\n    beta: 2,\n    gamma: 3,\n};\n",
			option: width(20),
		},
		{
			name: "struct-flat",
			src:  "s = {a: 1, b, \"c\": [1,2]};",
			want: "s = { a: 1, b, \"c\": [1, 2] };\n",
		},
		{
			name:   "var-list-aligns",
			src:    "var alpha = 1, beta = 2, gamma = 3;",
			want:   "var alpha = 1,\n    beta = 2,\n    gamma = 3;\n",
			option: width(20),
		},
		{
			name:   "for-header-stays-flat",
			src:    "for (var i = 0; i < 10; i++) {}",
			want:   "for (var i = 0; i < 10; i++) {}\n",
			option: width(10),
		},
		{
			name: "for-empty-clauses",
			src:  "for (;;) break",
			want: "for (;;)\n    break;\n",
		},
		{
			name: "switch",
			src:  "switch (x) {case 1: a(); break; default: b()}",
			want: "switch (x) {\n    case 1:\n        a();\n        break;\n    default:\n        b();\n}\n",
		},
		{
			name: "loops",
			src:  "do {i++} until (i > 3)\nwhile (i) i--\nrepeat 3 {a()}\nwith (other) x = 1;",
			want: "do {\n    i++;\n} until (i > 3);\nwhile (i)\n    i--;\nrepeat (3) {\n    a();\n}\nwith (other)\n    x = 1;\n",
		},
		{
			name: "try",
			src:  "try {a()} catch (e) {b()} finally {c()}",
			want: "try {\n    a();\n} catch (e) {\n    b();\n} finally {\n    c();\n}\n",
		},
		{
			name: "enum",
			src:  "enum Color {Red, Green = 2}",
			want: "enum Color {\n    Red,\n    Green = 2,\n}\n",
		},
		{
			name: "constructor",
			src:  "function Vec(x, y = 0) : Base(x) constructor {self.x = x;}",
			want: "function Vec(x, y = 0) : Base(x) constructor {\n    self.x = x;\n}\n",
		},
		{
			name: "expressions",
			src:  "arr[@ i] = m[? k] ? new Vec : f(x)(y).z; exit",
			want: "arr[@ i] = m[? k] ? new Vec() : f(x)(y).z;\nexit;\n",
		},
		{
			name: "empty-statements-are-dropped",
			src:  "a();;;\n;b();",
			want: "a();\nb();\n",
		},
		{
			name: "blank-lines-capped",
			src:  "a();\n\n\n\nb();\nc();",
			want: "a();\n\nb();\nc();\n",
		},
		{
			name: "comments",
			src:  "// lead\na = 1; // trail\n\n\n\nb = 2; /* end */",
			want: "// lead\na = 1; // trail\n\nb = 2; /* end */\n",
		},
		{
			name: "comment-blank-lines-capped-at-two",
			src:  "// a\n\n\n\n\n// b\n\n// c\nx = 1;",
			want: "// a\n\n\n// b\n\n// c\nx = 1;\n",
		},
		{
			name: "format-comments",
			src:  "//x\n///doc\n//!note\na = 1;",
			want: "// x\n///doc\n//!note\na = 1;\n",
		},
		{
			name: "verbatim-comments",
			src:  "//x\na = 1;",
			want: "//x\na = 1;\n",
			option: func(o *config.Options) {
				o.FormatComments = false
			},
		},
		{
			name: "multi-line-block-comment",
			src:  "if (x) {\n/* a\n   b */\nx = 1;\n}",
			want: "if (x) {\n    /* a\n   b */\n    x = 1;\n}\n",
		},
		{
			name: "dangling",
			src:  "f(/* c */);\n{\n// c\n}\ns = {};",
			want: "f(/* c */);\n{\n    // c\n}\ns = {};\n",
		},
		{
			name: "comment-after-open-bracket",
			src:  "f( // c\n  a);",
			want: "f(\n    // c\n    a\n);\n",
		},
		{
			name: "comment-between-operands",
			src:  "x = a +\n    // c\n    b;",
			want: "x = a\n    // c\n    + b;\n",
		},
		{
			name: "fmt-ignore",
			src:  "// fmt-ignore\na   =   [1,\n  2];\nb   =   2;",
			want: "// fmt-ignore\na   =   [1,\n  2];\nb = 2;\n",
		},
		{
			name: "region",
			src:  "#region Foo\na=1\n#endregion\n#macro X 1",
			want: "#region Foo\na = 1;\n#endregion\n#macro X 1\n",
		},
		{
			name: "type-annotations",
			src:  "var x:Real = 1; function f(a : Real) -> Real {}",
			want: "var x: Real = 1;\nfunction f(a: Real) -> Real {}\n",
		},
		{
			name: "remove-syntax-extensions",
			src:  "var x:Real = 1; function f(a : Real) -> Real {}",
			want: "var x = 1;\nfunction f(a) {}\n",
			option: func(o *config.Options) {
				o.RemoveSyntaxExtensions = true
			},
		},
		{
			name: "tabs",
			src:  "if (x) {a()}",
			want: "if (x) {\n\ta();\n}\n",
			option: func(o *config.Options) {
				o.UseTabs = true
			},
		},
		{
			name: "strings",
			src:  "s = @\"a\n  b\" + 'c';",
			want: "s = @\"a\n  b\"\n    + 'c';\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			opts := config.Default()
			if test.option != nil {
				test.option(&opts)
			}
			got := format(t, test.src, opts)
			assert.Equal(t, test.want, got)
			assert.Equal(t, got, format(t, got, opts), "formatting is not idempotent")
		})
	}
}

func TestPrintRecordsComments(t *testing.T) {
	t.Parallel()

	file, err := parser.Parse("test.gml", "f(a, /* a */ b); // c\n// fmt-ignore\nx   = [1, /* d */ 2];\n")
	require.NoError(t, err)
	require.NoError(t, comments.Attach(file))
	require.Len(t, file.Groups, 4)

	tracker := comments.NewTracker(file)
	d := printer.Print(file, config.Default())
	doc.PropagateBreaks(d)
	// Building the document writes nothing out.
	require.Error(t, tracker.Check("test.gml"))

	out, err := doc.Print(doc.Options{Width: 80, Printed: func(id doc.ID) {
		tracker.Record(int(id))
	}}, d)
	require.NoError(t, err)
	assert.Equal(t, "f(a, /* a */ b); // c\n// fmt-ignore\nx   = [1, /* d */ 2];\n", out)
	require.NoError(t, tracker.Check("test.gml"))
	for _, g := range file.Groups {
		assert.Equal(t, 1, tracker.Count(g), "%q", g.Comments[0].Text)
	}
}
