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

package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is a maximal range of points which share the same innermost interval.
type Entry[K Endpoint, V any] struct {
	Start, End K // The range, inclusive.
	Value      V
}

// Contains returns whether an entry contains a given point.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Innermost maps points to the innermost of a set of properly nested
// intervals which contains them. Two intervals are properly nested if they are
// disjoint or one contains the other; the spans of the nodes of a syntax tree
// are the motivating example.
//
// Intervals must be inserted parents first, as produced by a pre-order walk.
// Each insertion then splits exactly one existing entry, so both insertion and
// lookup are O(log n).
//
// A zero value is ready to use.
type Innermost[K Endpoint, V any] struct {
	// Keys in this map are the ends of entries. Entries are pairwise
	// disjoint, but need not cover every point.
	tree btree.Map[K, *Entry[K, V]]
}

// Len returns the number of entries in this map.
func (m *Innermost[K, V]) Len() int {
	return m.tree.Len()
}

// Get returns the innermost interval value containing point.
//
// If no interval contains point, ok is false.
func (m *Innermost[K, V]) Get(point K) (value V, ok bool) {
	iter := m.tree.Iter()
	if !iter.Seek(point) || !iter.Value().Contains(point) {
		return value, false
	}
	return iter.Value().Value, true
}

// Entries returns an iterator over the entries in this map, in order.
func (m *Innermost[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(*iter.Value()) {
				return
			}
		}
	}
}

// Insert adds the interval [start, end] (both inclusive) with the given
// value.
//
// Returns an error if the interval partially overlaps an interval inserted
// before it, or if it lands inside an interval that already has a child
// covering the same points.
func (m *Innermost[K, V]) Insert(start, end K, value V) error {
	if start > end {
		return fmt.Errorf("interval: start (%#v) > end (%#v)", start, end)
	}

	iter := m.tree.Iter()
	if !iter.Seek(start) || end < iter.Value().Start {
		// Nothing overlaps, so this is a new root.
		m.tree.Set(end, &Entry[K, V]{Start: start, End: end, Value: value})
		return nil
	}

	parent := iter.Value()
	if start < parent.Start || end > parent.End {
		return m.overlap(start, end, parent)
	}

	// Split parent into up to three pieces: before, the new interval, and
	// after. The piece after keeps parent's key.
	if parent.Start < start {
		m.tree.Set(start-1, &Entry[K, V]{Start: parent.Start, End: start - 1, Value: parent.Value})
	}
	if end < parent.End {
		parent.Start = end + 1
	} else {
		m.tree.Delete(parent.End)
	}
	m.tree.Set(end, &Entry[K, V]{Start: start, End: end, Value: value})
	return nil
}

func (m *Innermost[K, V]) overlap(start, end K, with *Entry[K, V]) error {
	return fmt.Errorf(
		"interval: [%#v, %#v] is not properly nested with [%#v, %#v]",
		start, end, with.Start, with.End,
	)
}

// Format implements [fmt.Formatter].
func (m *Innermost[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	m.tree.Scan(func(end K, entry *Entry[K, V]) bool {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if entry.Start == end {
			fmt.Fprintf(s, "%#v: ", entry.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", entry.Start, end)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), entry.Value)
		return true
	})
	fmt.Fprint(s, "}")
}
