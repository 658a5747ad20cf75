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

	"github.com/Pizzaandy/Gobo-sub001/doc"
)

func TestPropagateBreaks(t *testing.T) {
	t.Parallel()

	inner := doc.NewGroup(doc.Text("a"), doc.HardLine, doc.Text("b"))
	middle := doc.NewGroup(inner, doc.LineBreak, doc.Text("c"))
	outer := doc.NewGroup(doc.Indent{Contents: middle}, doc.BreakParent{})

	doc.PropagateBreaks(outer)
	assert.True(t, inner.Break)
	assert.False(t, middle.Break, "the innermost group absorbs the break")
	assert.True(t, outer.Break, "break-parent forces its own group")
}

func TestPropagateBreaksConditional(t *testing.T) {
	t.Parallel()

	nested := doc.NewGroup(doc.Text("x"), doc.HardLine)
	cond := doc.Conditional(
		doc.Text("flat"),
		doc.Cat(doc.Text("y"), doc.HardLine),
		nested,
	)
	doc.PropagateBreaks(cond)
	assert.False(t, cond.Break, "only the default alternative decides")
	assert.True(t, nested.Break, "groups in other alternatives are still marked")
}

func TestPropagateBreaksForceFlat(t *testing.T) {
	t.Parallel()

	inner := doc.NewGroup(doc.Text("a"), doc.LineBreak, doc.Text("b"))
	outer := doc.NewGroup(
		doc.ForceFlat{Contents: doc.Cat(inner, doc.HardLine)},
		doc.LineBreak,
	)
	doc.PropagateBreaks(outer)
	assert.False(t, inner.Break)
	assert.False(t, outer.Break)
}

func TestPropagateBreaksShared(t *testing.T) {
	t.Parallel()

	shared := doc.NewGroup(doc.Text("a"), doc.LiteralLine, doc.Text("b"))
	d := doc.Cat(shared, doc.NewGroup(shared), shared)
	doc.PropagateBreaks(d)
	assert.True(t, shared.Break)
}

func TestHasForcedBreak(t *testing.T) {
	t.Parallel()

	assert.False(t, doc.HasForcedBreak(doc.NewGroup(doc.Text("a"), doc.LineBreak, doc.Text("b"))))
	assert.True(t, doc.HasForcedBreak(doc.Cat(doc.Text("a"), doc.Indent{Contents: doc.NewGroup(doc.HardLine)})))
	assert.True(t, doc.HasForcedBreak(doc.Lines("@\"a\nb\"")))
	assert.True(t, doc.HasForcedBreak(doc.Comment{Contents: doc.BreakParent{}}))
	assert.False(t, doc.HasForcedBreak(doc.Conditional(doc.Text("a"), doc.HardLine)))
	assert.False(t, doc.HasForcedBreak(doc.IfBreak{Flat: doc.Text(","), Broken: doc.HardLine}))
}

func TestDump(t *testing.T) {
	t.Parallel()

	var ids doc.IDs
	d := doc.Cat(
		&doc.Group{ID: ids.New(), Contents: doc.Cat(doc.Text("a"), doc.SoftLine)},
		doc.Indent{Contents: doc.Text("b")},
		doc.Comment{ID: 7, Contents: doc.Text("// c")},
	)
	out := doc.Dump(d)
	assert.Contains(t, out, `"a"`)
	assert.Contains(t, out, "group")
	assert.Contains(t, out, "indent")
	assert.Contains(t, out, "<comment id=7>")
}
