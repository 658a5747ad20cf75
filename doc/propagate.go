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

// PropagateBreaks marks every group that must be printed broken.
//
// Hard and literal lines and [BreakParent] are forced breaks. The innermost
// group around a forced break absorbs it: that group's Break is set, and the
// break does not propagate to groups further out. A conditional group takes
// its break status from its default alternative only, although groups nested
// in its other alternatives are still marked. Forced breaks inside [ForceFlat]
// do not escape it.
//
// Shared subdocuments are visited once per group.
func PropagateBreaks(d Doc) {
	type frame struct {
		doc  Doc
		exit bool
		base int // len(results) when the frame was entered.
	}

	var (
		stack   = []frame{{doc: d}}
		results []bool // One entry per completed subtree: has an unabsorbed break.
		visited = make(map[*Group]struct{})
	)

	enter := func(children ...Doc) {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{doc: children[i]})
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			children := results[f.base:]
			var forced bool
			switch d := f.doc.(type) {
			case *Group:
				// Only the default alternative decides; the others were
				// visited purely to mark their nested groups.
				if len(children) > 0 && children[0] {
					d.Break = true
				}
			case ForceFlat:
				// Absorbed: forced breaks never escape a flat region.
			default:
				for _, c := range children {
					forced = forced || c
				}
			}
			results = append(results[:f.base], forced)
			continue
		}

		switch d := f.doc.(type) {
		case Line:
			results = append(results, d.Kind == Hard || d.Kind == Literal)
			continue
		case BreakParent:
			results = append(results, true)
			continue
		case *Group:
			if _, ok := visited[d]; ok {
				results = append(results, false)
				continue
			}
			visited[d] = struct{}{}
		}

		stack = append(stack, frame{doc: f.doc, exit: true, base: len(results)})
		switch d := f.doc.(type) {
		case Concat:
			enter(d...)
		case Fill:
			enter(d...)
		case *Group:
			if len(d.Alternatives) > 0 {
				enter(d.Alternatives...)
			} else {
				enter(d.Contents)
			}
		case Indent:
			enter(d.Contents)
		case Align:
			enter(d.Contents)
		case IfBreak:
			enter(d.Broken, d.Flat)
		case ForceFlat:
			enter(d.Contents)
		case AlwaysFits:
			enter(d.Contents)
		case DeferredLineComment:
			enter(d.Contents)
		case InlineComment:
			enter(d.Contents)
		case Comment:
			enter(d.Contents)
		}
	}
}

// HasForcedBreak reports whether d contains a forced break in its most
// compact rendering: a hard or literal line, or a [BreakParent], outside the
// non-default alternatives of conditional groups and the broken branches of
// [IfBreak]s.
func HasForcedBreak(d Doc) bool {
	stack := []Doc{d}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := d.(type) {
		case Line:
			if d.Kind == Hard || d.Kind == Literal {
				return true
			}
		case BreakParent:
			return true
		case Concat:
			stack = append(stack, d...)
		case Fill:
			stack = append(stack, d...)
		case *Group:
			stack = append(stack, d.contents())
		case Indent:
			stack = append(stack, d.Contents)
		case Align:
			stack = append(stack, d.Contents)
		case IfBreak:
			stack = append(stack, d.Flat)
		case ForceFlat:
			stack = append(stack, d.Contents)
		case AlwaysFits:
			stack = append(stack, d.Contents)
		case DeferredLineComment:
			stack = append(stack, d.Contents)
		case InlineComment:
			stack = append(stack, d.Contents)
		case Comment:
			stack = append(stack, d.Contents)
		}
	}
	return false
}
