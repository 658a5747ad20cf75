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
	"math"
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/internal/width"
)

// Options specifies configuration for [Print].
type Options struct {
	// The maximum number of columns to render before breaking groups. A value
	// of zero implies an infinite width.
	Width int

	// The number of columns one indentation unit (and one tab) occupies.
	// Defaults to 4.
	TabWidth int

	// If true, indentation units are tabs rather than spaces.
	UseTabs bool

	// If true, blank lines at the start of the output are kept.
	KeepLeadingBlankLines bool

	// If set, called with the ID of each comment document as it is written
	// to the output. Comments in alternatives that are not chosen are never
	// reported.
	Printed func(ID)
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = math.MaxInt / 2
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	return o
}

// command is one unit of pending work for the printer.
type command struct {
	indent Indentation
	mode   Mode
	doc    Doc
}

// printer holds the state of a single [Print] call. Nothing in it outlives
// the call.
type printer struct {
	Options

	out    []byte
	column int // Width of the current (last) line of out.

	stack []command
	modes []Mode // Resolved group modes, indexed by ID.

	suffixes []command     // Deferred line comments awaiting the next line break.
	regions  []Indentation // Indentation at each open region.

	// Set when a newline is printed: the line we are on is no longer the line
	// an enclosing flat group's fit decision measured, so the next group must
	// measure again instead of inheriting flatness.
	remeasure bool

	scratch []command // Reused by fits.
}

// Print renders a document as text.
//
// The document should have been passed through [PropagateBreaks] first. The
// output ends in exactly one newline, unless it is empty.
func Print(options Options, d Doc) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	p := &printer{Options: options.WithDefaults()}
	p.stack = append(p.stack, command{mode: ModeBreak, doc: d})
	p.run()
	return p.finish(), nil
}

func (p *printer) push(cmds ...command) {
	p.stack = append(p.stack, cmds...)
}

func (p *printer) run() {
	for {
		if len(p.stack) == 0 {
			if len(p.suffixes) == 0 {
				return
			}
			p.flushSuffixes(nil)
			continue
		}

		cmd := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		switch d := cmd.doc.(type) {
		case nil, null, BreakParent:

		case Text:
			p.write(string(d))

		case Concat:
			for i := len(d) - 1; i >= 0; i-- {
				p.push(command{cmd.indent, cmd.mode, d[i]})
			}

		case Line:
			p.line(cmd, d)

		case *Group:
			p.group(cmd, d)

		case Fill:
			p.fill(cmd, d)

		case IfBreak:
			mode := cmd.mode
			if d.Group != 0 {
				mode = p.groupMode(d.Group)
			}
			if mode == ModeBreak {
				p.push(command{cmd.indent, cmd.mode, d.Broken})
			} else {
				p.push(command{cmd.indent, cmd.mode, d.Flat})
			}

		case Indent:
			p.push(command{cmd.indent.Indent(p.Options), cmd.mode, d.Contents})

		case Align:
			if d.Width < 1 {
				invariantf("align width must be positive, got %d", d.Width)
			}
			p.push(command{cmd.indent.Align(d.Width), cmd.mode, d.Contents})

		case ForceFlat:
			p.push(command{cmd.indent, ModeForceFlat, d.Contents})

		case CollapsedSpace:
			if !p.lineIsBlank() {
				p.trim()
				p.write(" ")
			}

		case Trim:
			p.trim()

		case Region:
			p.region(cmd, d)

		case DeferredLineComment:
			p.suffixes = append(p.suffixes, cmd)

		case Comment:
			p.printed(d.ID)
			p.push(command{cmd.indent, cmd.mode, d.Contents})

		case InlineComment:
			p.printed(d.ID)
			p.push(
				command{cmd.indent, cmd.mode, CollapsedSpace{}},
				command{cmd.indent, cmd.mode, d.Contents},
				command{cmd.indent, cmd.mode, CollapsedSpace{}},
			)

		case AlwaysFits:
			p.push(command{cmd.indent, cmd.mode, d.Contents})

		default:
			invariantf("unexpected document %T", d)
		}
	}
}

// printed reports a comment as written.
func (p *printer) printed(id ID) {
	if id != 0 && p.Printed != nil {
		p.Printed(id)
	}
}

// write appends text to the output.
func (p *printer) write(text string) {
	if text == "" {
		return
	}
	p.out = append(p.out, text...)
	if last, multi := width.LastLine(text); multi {
		p.column = width.Width(last, p.TabWidth)
	} else {
		p.column += width.Width(text, p.TabWidth)
	}
}

// newline ends the current line and starts a new one at the given indent.
func (p *printer) newline(indent Indentation) {
	p.trim()
	p.out = append(p.out, '\n')
	p.out = append(p.out, indent.text...)
	p.column = indent.width
}

// trim removes trailing spaces and tabs from the current line.
func (p *printer) trim() {
	for len(p.out) > 0 {
		switch p.out[len(p.out)-1] {
		case ' ':
			p.column--
		case '\t':
			p.column -= p.TabWidth
		default:
			p.column = max(p.column, 0)
			return
		}
		p.out = p.out[:len(p.out)-1]
	}
	p.column = 0
}

// lineIsBlank returns whether the current line contains only whitespace.
func (p *printer) lineIsBlank() bool {
	for i := len(p.out) - 1; i >= 0; i-- {
		switch p.out[i] {
		case ' ', '\t':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// trailingSpace returns the width of whitespace at the end of the output.
func (p *printer) trailingSpace() int {
	var n int
	for i := len(p.out) - 1; i >= 0; i-- {
		switch p.out[i] {
		case ' ':
			n++
		case '\t':
			n += p.TabWidth
		default:
			return n
		}
	}
	return n
}

// lastByte returns the last non-whitespace byte on the current line, if any.
func (p *printer) lastByte() byte {
	for i := len(p.out) - 1; i >= 0; i-- {
		switch b := p.out[i]; b {
		case ' ', '\t':
		case '\n':
			return 0
		default:
			return b
		}
	}
	return 0
}

// endsInBlankLine returns whether the output already ends with an empty line.
func (p *printer) endsInBlankLine() bool {
	s := strings.TrimRight(string(p.out), " \t")
	return strings.HasSuffix(s, "\n\n")
}

func (p *printer) line(cmd command, l Line) {
	if cmd.mode.flat() {
		switch l.Kind {
		case Soft:
			return
		case Normal:
			p.write(" ")
			return
		}
	}

	// Any enclosing flat group measured its line before this newline existed,
	// so groups that follow on the new line must measure for themselves.
	if cmd.mode != ModeForceFlat {
		p.remeasure = true
	}

	if len(p.suffixes) > 0 {
		p.flushSuffixes(&cmd)
		return
	}

	if l.Kind == Literal {
		if l.SquashIfBlank && p.endsInBlankLine() {
			return
		}
		p.out = append(p.out, '\n')
		p.column = 0
		return
	}

	p.newline(cmd.indent)
}

// flushSuffixes schedules the deferred line comments ahead of next, which is
// the line break that triggered the flush (nil at the end of the document).
func (p *printer) flushSuffixes(next *command) {
	pending := p.suffixes
	p.suffixes = nil

	if next != nil {
		p.push(*next)
	}

	// A comment directly after an opening bracket would change what the
	// bracket's line means to a reader; move it onto the line that follows.
	relocate := next != nil && isOpenBracket(p.lastByte())

	for i := len(pending) - 1; i >= 0; i-- {
		c := pending[i]
		comment := c.doc.(DeferredLineComment)
		p.printed(comment.ID)
		p.push(command{c.indent, c.mode, comment.Contents})
		if i == 0 && relocate {
			p.push(command{next.indent, ModeBreak, HardLine})
		} else {
			p.push(command{c.indent, c.mode, CollapsedSpace{}})
		}
	}
}

func isOpenBracket(b byte) bool {
	return b == '(' || b == '[' || b == '{'
}

func (p *printer) group(cmd command, g *Group) {
	var next command
	switch {
	case cmd.mode == ModeForceFlat:
		next = command{cmd.indent, ModeForceFlat, g.contents()}

	case cmd.mode == ModeFlat && !p.remeasure:
		next = command{cmd.indent, ModeFlat, g.contents()}
		if g.Break {
			next = command{cmd.indent, ModeBreak, g.expanded()}
		}

	default:
		p.remeasure = false

		flat := command{cmd.indent, ModeFlat, g.contents()}
		switch {
		case !g.Break && p.fits(flat, false):
			next = flat

		case len(g.Alternatives) > 0:
			next = command{cmd.indent, ModeBreak, g.expanded()}
			if g.Break {
				break
			}
			for _, alt := range g.Alternatives[1 : len(g.Alternatives)-1] {
				try := command{cmd.indent, ModeFlat, alt}
				if p.fits(try, false) {
					next = try
					break
				}
			}

		default:
			next = command{cmd.indent, ModeBreak, g.Contents}
		}
	}

	p.push(next)
	if g.ID != 0 {
		p.setGroupMode(g.ID, next.mode)
	}
}

func (p *printer) setGroupMode(id ID, mode Mode) {
	for int(id) >= len(p.modes) {
		p.modes = append(p.modes, unresolved)
	}
	if p.modes[id] != unresolved {
		invariantf("group %d printed twice", id)
	}
	p.modes[id] = mode
}

// groupMode returns the resolved mode of a group that has been printed.
func (p *printer) groupMode(id ID) Mode {
	if int(id) >= len(p.modes) || p.modes[id] == unresolved {
		invariantf("group %d referenced before it was printed", id)
	}
	return p.modes[id]
}

func (p *printer) fill(cmd command, parts Fill) {
	if len(parts) == 0 {
		return
	}
	if cmd.mode == ModeForceFlat {
		p.push(command{cmd.indent, cmd.mode, Concat(parts)})
		return
	}

	content := parts[0]
	contentFlat := command{cmd.indent, ModeFlat, content}
	contentBreak := command{cmd.indent, ModeBreak, content}
	contentFits := p.fits(contentFlat, true)

	if len(parts) == 1 {
		if contentFits {
			p.push(contentFlat)
		} else {
			p.push(contentBreak)
		}
		return
	}

	sepFlat := command{cmd.indent, ModeFlat, parts[1]}
	sepBreak := command{cmd.indent, ModeBreak, parts[1]}

	if len(parts) == 2 {
		if contentFits {
			p.push(sepFlat, contentFlat)
		} else {
			p.push(sepBreak, contentBreak)
		}
		return
	}

	rest := command{cmd.indent, cmd.mode, parts[2:]}
	pair := command{cmd.indent, ModeFlat, Concat{content, parts[1], parts[2]}}
	switch {
	case p.fits(pair, true):
		p.push(rest, sepFlat, contentFlat)
	case contentFits:
		p.push(rest, sepBreak, contentFlat)
	default:
		p.push(rest, sepBreak, contentBreak)
	}
}

func (p *printer) region(cmd command, r Region) {
	indent := cmd.indent
	if r.End {
		if n := len(p.regions); n > 0 {
			indent = p.regions[n-1]
			p.regions = p.regions[:n-1]
		}
	} else {
		p.regions = append(p.regions, cmd.indent)
	}

	if p.lineIsBlank() {
		// Re-seat the directive at the indentation of its region, whatever
		// the surrounding document has done to the indentation since.
		p.trim()
		p.out = append(p.out, indent.text...)
		p.column = indent.width
	}
	p.write(r.Text)
}

// finish trims trailing blank lines, and optionally leading ones.
func (p *printer) finish() string {
	out := strings.TrimRight(string(p.out), " \t\n")
	if !p.KeepLeadingBlankLines {
		for {
			line, rest, ok := strings.Cut(out, "\n")
			if !ok || strings.TrimSpace(line) != "" {
				break
			}
			out = rest
		}
	}
	if out == "" {
		return ""
	}
	return out + "\n"
}
