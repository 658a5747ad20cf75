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

package comments

import (
	"fmt"
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// Tracker records how many times each comment group of a file has been
// printed. It belongs to a single formatting run.
type Tracker struct {
	groups []*ast.CommentGroup
	counts []int // Indexed by group ID.
}

// NewTracker returns a tracker for the groups of file.
func NewTracker(file *ast.File) *Tracker {
	return &Tracker{
		groups: file.Groups,
		counts: make([]int, len(file.Groups)+1),
	}
}

// Record records that the group with the given ID has been printed.
func (t *Tracker) Record(id int) {
	t.counts[id]++
}

// Count returns how many times g has been printed.
func (t *Tracker) Count(g *ast.CommentGroup) int {
	return t.counts[g.ID]
}

// Check verifies that every group was printed exactly once.
func (t *Tracker) Check(path string) error {
	var missing, twice []*ast.CommentGroup
	for _, g := range t.groups {
		switch n := t.counts[g.ID]; {
		case n == 0:
			missing = append(missing, g)
		case n > 1:
			twice = append(twice, g)
		}
	}
	switch {
	case len(missing) > 0:
		return &reporter.InternalError{Kind: reporter.CommentCoverage, Path: path, Comments: missing}
	case len(twice) > 0:
		return &reporter.InternalError{Kind: reporter.DoublePrint, Path: path, Comments: twice}
	}
	return nil
}

// Table renders the comment attachment of file as a table, one group per
// line, for debugging.
func Table(file *ast.File) string {
	var b strings.Builder
	for _, g := range file.Groups {
		owner := g.Owner()
		fmt.Fprintf(&b, "%d\t%v\t%v\t%v\t%v%v\t%q",
			g.ID, g.Span, g.Placement, g.Classification,
			owner.Kind(), owner.Span(), g.Comments[0].Text)
		if len(g.Comments) > 1 {
			fmt.Fprintf(&b, " (+%d)", len(g.Comments)-1)
		}
		if g.Directive == ast.IgnoreDirective {
			b.WriteString(" ignore")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
