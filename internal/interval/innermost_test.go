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

package interval_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pizzaandy/Gobo-sub001/internal/interval"
)

func TestInnermost(t *testing.T) {
	t.Parallel()
	type in struct {
		start, end int
		value      string
	}
	type out = interval.Entry[int, string]

	tests := []struct {
		name   string
		ranges []in
		want   []out
	}{
		{
			name:   "single",
			ranges: []in{{0, 9, "root"}},
			want:   []out{{0, 9, "root"}},
		},
		{
			name:   "disjoint-roots",
			ranges: []in{{0, 9, "a"}, {20, 29, "b"}},
			want:   []out{{0, 9, "a"}, {20, 29, "b"}},
		},
		{
			name:   "child-in-middle",
			ranges: []in{{0, 9, "p"}, {3, 5, "c"}},
			want:   []out{{0, 2, "p"}, {3, 5, "c"}, {6, 9, "p"}},
		},
		{
			name:   "child-at-edges",
			ranges: []in{{0, 9, "p"}, {0, 2, "l"}, {7, 9, "r"}},
			want:   []out{{0, 2, "l"}, {3, 6, "p"}, {7, 9, "r"}},
		},
		{
			name:   "same-span",
			ranges: []in{{0, 9, "p"}, {0, 9, "c"}},
			want:   []out{{0, 9, "c"}},
		},
		{
			name: "deep",
			ranges: []in{
				{0, 20, "file"},
				{0, 10, "stmt"},
				{4, 9, "expr"},
				{4, 5, "lhs"},
				{8, 9, "rhs"},
				{12, 20, "stmt2"},
			},
			want: []out{
				{0, 3, "stmt"},
				{4, 5, "lhs"},
				{6, 7, "expr"},
				{8, 9, "rhs"},
				{10, 10, "stmt"},
				{11, 11, "file"},
				{12, 20, "stmt2"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var m interval.Innermost[int, string]
			for _, r := range test.ranges {
				require.NoError(t, m.Insert(r.start, r.end, r.value))
			}
			assert.Equal(t, test.want, slices.Collect(m.Entries()), "%v", &m)

			for _, e := range test.want {
				for p := e.Start; p <= e.End; p++ {
					got, ok := m.Get(p)
					assert.True(t, ok)
					assert.Equal(t, e.Value, got, "at %d", p)
				}
			}
		})
	}
}

func TestInnermostMiss(t *testing.T) {
	t.Parallel()

	var m interval.Innermost[int, string]
	require.NoError(t, m.Insert(10, 19, "a"))

	_, ok := m.Get(5)
	assert.False(t, ok)
	_, ok = m.Get(20)
	assert.False(t, ok)
	assert.Equal(t, "{[10, 19]: a}", fmt.Sprintf("%v", &m))
}

func TestInnermostOverlap(t *testing.T) {
	t.Parallel()

	var m interval.Innermost[int, string]
	require.NoError(t, m.Insert(10, 19, "a"))
	require.Error(t, m.Insert(5, 12, "b"))
	require.Error(t, m.Insert(15, 25, "c"))
	require.Error(t, m.Insert(0, 30, "parent-after-child"))
	require.Error(t, m.Insert(3, 2, "backwards"))
	assert.Equal(t, 1, m.Len())
}
