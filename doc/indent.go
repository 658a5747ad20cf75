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

import "strings"

// Indentation is the whitespace printed at the start of a broken line.
//
// It is an immutable value: [Indentation.Indent] and [Indentation.Align]
// return new values, and every pending print command carries its own.
type Indentation struct {
	text  string
	width int
}

// String returns the whitespace for this indentation.
func (i Indentation) String() string {
	return i.text
}

// Width returns the number of columns this indentation occupies.
func (i Indentation) Width() int {
	return i.width
}

// Indent adds one indentation unit: a tab, or Options.TabWidth spaces.
func (i Indentation) Indent(options Options) Indentation {
	if options.UseTabs {
		return Indentation{text: i.text + "\t", width: i.width + options.TabWidth}
	}
	return Indentation{
		text:  i.text + strings.Repeat(" ", options.TabWidth),
		width: i.width + options.TabWidth,
	}
}

// Align adds an alignment overlay of n spaces. Alignment is always made of
// spaces, even when indenting with tabs, so that aligned text lines up
// regardless of the reader's tab width.
func (i Indentation) Align(n int) Indentation {
	if n <= 0 {
		return i
	}
	return Indentation{
		text:  i.text + strings.Repeat(" ", n),
		width: i.width + n,
	}
}
