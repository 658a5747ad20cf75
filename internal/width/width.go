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

// Package width measures the number of terminal cells that a string is
// expected to occupy when printed in a monospaced font.
//
// The printer and its fits predicate both measure text through this package,
// so that a decision made while measuring always matches the column count the
// printer actually produces.
package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Width returns the display width of s.
//
// Grapheme clusters are measured with uniseg, so wide East Asian characters
// count as two cells and combining sequences count as the width of their base.
// Each tab counts as exactly tabstop cells regardless of the column it falls
// on; the result therefore depends only on s, never on where s is placed.
//
// s should not contain newlines; use [LastLine] to measure the trailing line
// of multi-line text.
func Width(s string, tabstop int) int {
	if tabstop < 1 {
		tabstop = 1
	}
	if isASCII(s) {
		return len(s) + strings.Count(s, "\t")*(tabstop-1)
	}

	var n int
	for i, chunk := range strings.Split(s, "\t") {
		if i > 0 {
			n += tabstop
		}
		n += uniseg.StringWidth(chunk)
	}
	return n
}

// LastLine returns the portion of s after its final newline, and whether s
// contained a newline at all.
func LastLine(s string) (last string, multiline bool) {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return s, false
	}
	return s[i+1:], true
}

// isASCII returns whether s consists only of printable ASCII and tabs, in
// which case every byte but a tab is one cell wide.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x7f || (b < 0x20 && b != '\t') {
			return false
		}
	}
	return true
}
