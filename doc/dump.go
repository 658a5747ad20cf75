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

package doc

import (
	"fmt"
	"strings"
)

// Dump renders a document in a pseudo-HTML format. Intended for debugging.
func Dump(d Doc) string {
	type frame struct {
		doc   Doc
		depth int
		close string // If non-empty, this frame only prints a closing tag.
	}

	var out strings.Builder
	stack := []frame{{doc: d}}
	line := func(depth int, format string, args ...any) {
		out.WriteString(strings.Repeat("    ", depth))
		fmt.Fprintf(&out, format, args...)
		out.WriteByte('\n')
	}
	open := func(f frame, tag string, children ...Doc) {
		line(f.depth, "<%s>", tag)
		name, _, _ := strings.Cut(tag, " ")
		stack = append(stack, frame{depth: f.depth, close: name})
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{doc: children[i], depth: f.depth + 1})
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.close != "" {
			line(f.depth, "</%s>", f.close)
			continue
		}

		switch d := f.doc.(type) {
		case nil, null:
			line(f.depth, "<null>")
		case Text:
			line(f.depth, "%q", string(d))
		case Concat:
			open(f, "concat", d...)
		case Line:
			var squash string
			if d.SquashIfBlank {
				squash = " squash"
			}
			line(f.depth, "<line %s%s>", [...]string{"soft", "normal", "hard", "literal"}[d.Kind], squash)
		case *Group:
			attrs := "group"
			if d.ID != 0 {
				attrs += fmt.Sprintf(" id=%d", d.ID)
			}
			if d.Break {
				attrs += " break"
			}
			if len(d.Alternatives) > 0 {
				attrs = "conditional" + strings.TrimPrefix(attrs, "group")
				open(f, attrs, d.Alternatives...)
			} else {
				open(f, attrs, d.Contents)
			}
		case Fill:
			open(f, "fill", d...)
		case Indent:
			open(f, "indent", d.Contents)
		case Align:
			open(f, fmt.Sprintf("align width=%d", d.Width), d.Contents)
		case IfBreak:
			attrs := "if-break"
			if d.Group != 0 {
				attrs += fmt.Sprintf(" group=%d", d.Group)
			}
			open(f, attrs, d.Broken, d.Flat)
		case BreakParent:
			line(f.depth, "<break-parent>")
		case ForceFlat:
			open(f, "force-flat", d.Contents)
		case CollapsedSpace:
			line(f.depth, "<collapsed-space>")
		case Trim:
			line(f.depth, "<trim>")
		case Region:
			line(f.depth, "<region end=%v %q>", d.End, d.Text)
		case DeferredLineComment:
			open(f, fmt.Sprintf("line-comment id=%d", d.ID), d.Contents)
		case InlineComment:
			open(f, fmt.Sprintf("inline-comment id=%d", d.ID), d.Contents)
		case Comment:
			open(f, fmt.Sprintf("comment id=%d", d.ID), d.Contents)
		case AlwaysFits:
			open(f, "always-fits", d.Contents)
		default:
			line(f.depth, "<unknown %T>", d)
		}
	}
	return out.String()
}
