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
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/internal/width"
)

// fits returns whether next, followed by whatever is pending on the printer's
// stack up to the next line break, fits in the remainder of the current line.
//
// If mustBeFlat is set, only next is measured, and any group inside it that is
// already forced to break makes it not fit.
//
// This does not modify the printer's stack; it walks its own.
func (p *printer) fits(next command, mustBeFlat bool) bool {
	remaining := p.Width - p.column
	trailing := p.trailingSpace()
	rest := len(p.stack)

	cmds := append(p.scratch[:0], next)
	defer func() { p.scratch = cmds[:0] }()

	for remaining >= 0 {
		if len(cmds) == 0 {
			if mustBeFlat || rest == 0 {
				return true
			}
			rest--
			cmds = append(cmds, p.stack[rest])
			continue
		}

		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := cmd.doc.(type) {
		case Text:
			text := string(d)
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				return remaining-width.Width(text[:i], p.TabWidth) >= 0
			}
			w := width.Width(text, p.TabWidth)
			remaining -= w
			if trimmed := strings.TrimRight(text, " \t"); trimmed == "" {
				trailing += w
			} else {
				trailing = w - width.Width(trimmed, p.TabWidth)
			}

		case Concat:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{cmd.indent, cmd.mode, d[i]})
			}

		case Fill:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{cmd.indent, cmd.mode, d[i]})
			}

		case Indent:
			cmds = append(cmds, command{cmd.indent, cmd.mode, d.Contents})

		case Align:
			cmds = append(cmds, command{cmd.indent, cmd.mode, d.Contents})

		case *Group:
			if mustBeFlat && d.Break {
				return false
			}
			mode := cmd.mode
			if d.Break && mode != ModeForceFlat {
				mode = ModeBreak
			}
			contents := d.contents()
			if mode == ModeBreak {
				contents = d.expanded()
			}
			cmds = append(cmds, command{cmd.indent, mode, contents})

		case IfBreak:
			mode := cmd.mode
			if d.Group != 0 && int(d.Group) < len(p.modes) && p.modes[d.Group] != unresolved {
				mode = p.modes[d.Group]
			}
			if mode == ModeBreak {
				cmds = append(cmds, command{cmd.indent, cmd.mode, d.Broken})
			} else {
				cmds = append(cmds, command{cmd.indent, cmd.mode, d.Flat})
			}

		case ForceFlat:
			cmds = append(cmds, command{cmd.indent, ModeForceFlat, d.Contents})

		case Comment:
			cmds = append(cmds, command{cmd.indent, cmd.mode, d.Contents})

		case InlineComment:
			cmds = append(cmds,
				command{cmd.indent, cmd.mode, CollapsedSpace{}},
				command{cmd.indent, cmd.mode, d.Contents},
				command{cmd.indent, cmd.mode, CollapsedSpace{}},
			)

		case Line:
			if cmd.mode == ModeBreak || d.Kind == Hard || d.Kind == Literal {
				// A real newline ends the line being measured.
				return true
			}
			if d.Kind == Normal {
				remaining--
				trailing++
			}

		case Region:
			return false

		case Trim:
			remaining += trailing
			trailing = 0

		case CollapsedSpace:
			remaining += trailing - 1
			trailing = 1

		case nil, null, BreakParent, DeferredLineComment, AlwaysFits:
			// No width.

		default:
			invariantf("unexpected document %T", d)
		}
	}
	return false
}
