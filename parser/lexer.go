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

package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

type tokenKind byte

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
	tokDirective
)

type token struct {
	kind tokenKind
	text string
	span ast.Span
}

// punctuation lists multi-character punctuation, longest first.
var punctuation = []string{
	"<<=", ">>=", "??=",
	"==", "!=", "<>", "<=", ">=", "&&", "||", "^^", "<<", ">>", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "|=", "&=", "^=", ":=", "??", "->",
}

// accessors are the characters that turn an index bracket into an accessor,
// as in `s[$ "key"]`.
const accessors = "@|?#$"

// lexer is a GML lexer. Comments are not tokens; they are collected on the
// side.
type lexer struct {
	src      string
	lines    *ast.Lines
	cursor   int
	tokens   []token
	comments []ast.Comment
}

// Lex performs lexical analysis, stopping at the first error.
func (l *lexer) Lex() error {
	for l.Rest() != "" {
		r, rLen := l.Peek()
		start := l.cursor

		switch {
		case unicode.IsSpace(r):
			l.cursor += rLen

		case l.HasPrefix("//"):
			// Single-line comment. Seek to the next '\n' or the EOF; the
			// newline itself is not part of the comment.
			if i := strings.IndexByte(l.Rest(), '\n'); i >= 0 {
				l.cursor += i
			} else {
				l.SeekEOF()
			}
			l.comment(start)

		case l.HasPrefix("/*"):
			if _, ok := l.SeekInclusive("*/"); !ok {
				return l.errorf(start, "unterminated block comment")
			}
			l.comment(start)

		case r == '#' && l.atLineStart(start):
			if err := l.directive(start); err != nil {
				return err
			}

		case r == '"', r == '\'':
			if err := l.quoted(start, r, true); err != nil {
				return err
			}

		case (r == '@' || r == '$') && (l.byteAt(1) == '"' || l.byteAt(1) == '\''):
			// @"verbatim" strings have no escapes and may span lines.
			// $"template {strings}" are kept as written.
			l.cursor++
			if err := l.quoted(start, rune(l.byteAt(0)), r == '$'); err != nil {
				return err
			}

		case r == '$' && isHexDigit(l.byteAt(1)),
			r == '.' && isDigit(l.byteAt(1)),
			isDigit(l.byteAt(0)):
			l.number(start)

		case r == '_' || unicode.IsLetter(r):
			for {
				r, rLen = l.Peek()
				if r != '_' && !unicode.IsDigit(r) && !unicode.IsLetter(r) {
					break
				}
				l.cursor += rLen
			}
			l.push(tokIdent, start)

		default:
			punct := ""
			for _, p := range punctuation {
				if l.HasPrefix(p) {
					punct = p
					break
				}
			}
			if punct == "" && strings.ContainsRune("{}()[];,.:?+-*/%<>=!~&|^", r) {
				punct = string(r)
			}
			if punct == "" {
				return l.errorf(start, "unexpected character %q", r)
			}
			if punct == "[" && l.afterOperand() && strings.IndexByte(accessors, l.byteAt(1)) >= 0 {
				punct = l.src[l.cursor : l.cursor+2]
			}
			l.cursor += len(punct)
			l.push(tokPunct, start)
		}
	}

	l.tokens = append(l.tokens, token{kind: tokEOF, span: ast.Span{Start: l.cursor, End: l.cursor}})
	return nil
}

// afterOperand returns whether the last token can end an operand, in which
// case a `[` indexes it rather than opening an array literal.
func (l *lexer) afterOperand() bool {
	if len(l.tokens) == 0 {
		return false
	}
	switch t := l.tokens[len(l.tokens)-1]; t.kind {
	case tokNumber, tokString:
		return true
	case tokIdent:
		return !reserved[t.text]
	case tokPunct:
		return t.text == ")" || t.text == "]"
	}
	return false
}

func (l *lexer) push(kind tokenKind, start int) {
	l.tokens = append(l.tokens, token{
		kind: kind,
		text: l.src[start:l.cursor],
		span: ast.Span{Start: start, End: l.cursor},
	})
}

func (l *lexer) comment(start int) {
	text := strings.TrimRight(l.src[start:l.cursor], " \t\r")
	l.comments = append(l.comments, ast.Comment{
		Span: ast.Span{Start: start, End: start + len(text)},
		Text: text,
	})
}

// quoted lexes a string whose opening quote is at the cursor.
func (l *lexer) quoted(start int, quote rune, escapes bool) error {
	l.cursor++
	for {
		r, rLen := l.Peek()
		if rLen == 0 {
			return l.errorf(start, "unterminated string literal")
		}
		l.cursor += rLen
		switch {
		case r == quote:
			l.push(tokString, start)
			return nil
		case r == '\\' && escapes:
			_, n := l.Peek()
			l.cursor += n
		}
	}
}

func (l *lexer) number(start int) {
	hex := l.src[start] == '$'
	switch {
	case hex:
		l.cursor++
	case l.HasPrefix("0x"), l.HasPrefix("0X"):
		l.cursor += 2
		hex = true
	case l.HasPrefix("0b"), l.HasPrefix("0B"):
		l.cursor += 2
	}

	if hex {
		for isHexDigit(l.byteAt(0)) || l.byteAt(0) == '_' {
			l.cursor++
		}
		l.push(tokNumber, start)
		return
	}

	digits := func() {
		for isDigit(l.byteAt(0)) || l.byteAt(0) == '_' {
			l.cursor++
		}
	}
	digits()
	if l.byteAt(0) == '.' && isDigit(l.byteAt(1)) {
		l.cursor++
		digits()
	}
	if b := l.byteAt(0); b == 'e' || b == 'E' {
		switch {
		case isDigit(l.byteAt(1)):
			l.cursor++
			digits()
		case (l.byteAt(1) == '+' || l.byteAt(1) == '-') && isDigit(l.byteAt(2)):
			l.cursor += 2
			digits()
		}
	}
	l.push(tokNumber, start)
}

// directive lexes a #region, #endregion or #macro line.
func (l *lexer) directive(start int) error {
	for {
		i := strings.IndexByte(l.Rest(), '\n')
		if i < 0 {
			l.SeekEOF()
			break
		}
		l.cursor += i
		// Macros continue onto the next line after a trailing backslash.
		if !strings.HasSuffix(strings.TrimRight(l.src[start:l.cursor], " \t\r"), "\\") {
			break
		}
		l.cursor++
	}

	text := strings.TrimRight(l.src[start:l.cursor], " \t\r")
	if directiveKeyword(text) == "" {
		return l.errorf(start, "unknown directive %q", strings.Fields(text)[0])
	}
	l.tokens = append(l.tokens, token{
		kind: tokDirective,
		text: text,
		span: ast.Span{Start: start, End: start + len(text)},
	})
	return nil
}

func directiveKeyword(text string) string {
	word := strings.TrimPrefix(text, "#")
	if i := strings.IndexFunc(word, unicode.IsSpace); i >= 0 {
		word = word[:i]
	}
	switch word {
	case "region", "endregion", "macro":
		return word
	}
	return ""
}

// atLineStart returns whether only whitespace precedes offset on its line.
func (l *lexer) atLineStart(offset int) bool {
	line := l.src[:offset]
	if i := strings.LastIndexByte(line, '\n'); i >= 0 {
		line = line[i+1:]
	}
	return strings.TrimSpace(line) == ""
}

func (l *lexer) errorf(offset int, format string, args ...any) error {
	return reporter.Syntaxf(l.lines.Position(offset), format, args...)
}

// Rest returns unlexed text.
func (l *lexer) Rest() string {
	return l.src[l.cursor:]
}

// Peek peeks the next character; returns that character and its length.
func (l *lexer) Peek() (rune, int) {
	return utf8.DecodeRuneInString(l.Rest())
}

func (l *lexer) byteAt(offset int) byte {
	if l.cursor+offset >= len(l.src) {
		return 0
	}
	return l.src[l.cursor+offset]
}

// HasPrefix checks if the given text exists past the cursor.
func (l *lexer) HasPrefix(prefix string) bool {
	return strings.HasPrefix(l.Rest(), prefix)
}

// SeekInclusive seeks until the given needle is found; returns the prefix
// inclusive of needle, and updates the cursor to point after it.
func (l *lexer) SeekInclusive(needle string) (string, bool) {
	if idx := strings.Index(l.Rest(), needle); idx != -1 {
		prefix := l.Rest()[:idx+len(needle)]
		l.cursor += idx + len(needle)
		return prefix, true
	}
	return "", false
}

// SeekEOF seeks the cursor to the end of the file and returns the remaining
// text.
func (l *lexer) SeekEOF() string {
	rest := l.Rest()
	l.cursor = len(l.src)
	return rest
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
