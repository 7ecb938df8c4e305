// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"strings"
)

// Key selects the rows of an indexable feature that a read or write
// applies to. Construct one with [All], [At], [Span], [SpanFrom],
// [SpanTo], [StepSpan], [List], or [Mask]. The zero Key selects
// all rows.
//
// Every indexable feature normalizes its Key through [Key.Resolve],
// so range checking behaves identically across positions, colors,
// sizes, markers, and textures.
type Key struct {
	kind     keyKind
	at       int
	start    int
	stop     int
	step     int
	hasStart bool
	hasStop  bool
	list     []int
	mask     []bool
}

type keyKind int32

const (
	keyAll keyKind = iota
	keyAt
	keySpan
	keyList
	keyMask
)

// All selects every row.
func All() Key {
	return Key{kind: keyAll}
}

// At selects the single row i.
func At(i int) Key {
	return Key{kind: keyAt, at: i}
}

// Span selects rows start <= i < stop.
func Span(start, stop int) Key {
	return Key{kind: keySpan, start: start, stop: stop, step: 1, hasStart: true, hasStop: true}
}

// SpanFrom selects rows from start through the last row.
func SpanFrom(start int) Key {
	return Key{kind: keySpan, start: start, step: 1, hasStart: true}
}

// SpanTo selects rows 0 <= i < stop.
func SpanTo(stop int) Key {
	return Key{kind: keySpan, stop: stop, step: 1, hasStop: true}
}

// StepSpan selects every step'th row in start <= i < stop.
// A step of 1 is the same as [Span].
func StepSpan(start, stop, step int) Key {
	return Key{kind: keySpan, start: start, stop: stop, step: step, hasStart: true, hasStop: true}
}

// List selects the given rows in order. Duplicates are written twice.
func List(ix ...int) Key {
	return Key{kind: keyList, list: ix}
}

// Mask selects the rows where m is true. len(m) must equal the
// feature's row count.
func Mask(m []bool) Key {
	return Key{kind: keyMask, mask: m}
}

func (k Key) String() string {
	switch k.kind {
	case keyAll:
		return ":"
	case keyAt:
		return fmt.Sprintf("%d", k.at)
	case keySpan:
		b := strings.Builder{}
		if k.hasStart {
			fmt.Fprintf(&b, "%d", k.start)
		}
		b.WriteByte(':')
		if k.hasStop {
			fmt.Fprintf(&b, "%d", k.stop)
		}
		if k.step != 1 {
			fmt.Fprintf(&b, ":%d", k.step)
		}
		return b.String()
	case keyList:
		return fmt.Sprintf("%v", k.list)
	case keyMask:
		return fmt.Sprintf("mask(%d)", len(k.mask))
	}
	return "?"
}

// Resolved is a Key normalized against a row count. A contiguous
// selection has nil Rows and covers Start <= i < Stop; a scattered
// selection lists its rows explicitly and is written one row at a
// time.
type Resolved struct {

	// Start is the first selected row, for contiguous selections.
	Start int

	// Stop is one past the last selected row, for contiguous
	// selections.
	Stop int

	// Rows lists the selected rows for scattered selections
	// (stepped spans, lists, masks), and is nil for contiguous ones.
	Rows []int
}

// IsContiguous reports whether the selection is one contiguous range.
func (r Resolved) IsContiguous() bool {
	return r.Rows == nil
}

// Count returns the number of selected rows.
func (r Resolved) Count() int {
	if r.Rows != nil {
		return len(r.Rows)
	}
	return r.Stop - r.Start
}

// Indices returns all selected rows in order.
func (r Resolved) Indices() []int {
	if r.Rows != nil {
		return r.Rows
	}
	ix := make([]int, 0, r.Stop-r.Start)
	for i := r.Start; i < r.Stop; i++ {
		ix = append(ix, i)
	}
	return ix
}

// Resolve normalizes the key against a feature with n rows:
// a missing span start becomes 0 and a missing stop becomes n.
// It returns an error wrapping [ErrIndex] for a negative start, stop,
// step, or row index, for stop > n, and for any listed row outside
// [0, n). A mask of the wrong length is also an index error.
func (k Key) Resolve(n int) (Resolved, error) {
	switch k.kind {
	case keyAll:
		return Resolved{Start: 0, Stop: n}, nil
	case keyAt:
		if k.at < 0 || k.at >= n {
			return Resolved{}, fmt.Errorf("features.Key %s: %w: index %d not in [0, %d)", k, ErrIndex, k.at, n)
		}
		return Resolved{Start: k.at, Stop: k.at + 1}, nil
	case keySpan:
		start, stop := 0, n
		if k.hasStart {
			start = k.start
		}
		if k.hasStop {
			stop = k.stop
		}
		if start < 0 || stop < 0 || k.step < 0 {
			return Resolved{}, fmt.Errorf("features.Key %s: %w: negative start, stop, or step", k, ErrIndex)
		}
		if k.step == 0 {
			return Resolved{}, fmt.Errorf("features.Key %s: %w: step must be positive", k, ErrIndex)
		}
		if stop > n {
			return Resolved{}, fmt.Errorf("features.Key %s: %w: stop %d > %d", k, ErrIndex, stop, n)
		}
		if start > stop {
			start = stop
		}
		if k.step == 1 {
			return Resolved{Start: start, Stop: stop}, nil
		}
		rows := []int{}
		for i := start; i < stop; i += k.step {
			rows = append(rows, i)
		}
		return Resolved{Rows: rows}, nil
	case keyList:
		rows := make([]int, len(k.list))
		for i, ix := range k.list {
			if ix < 0 || ix >= n {
				return Resolved{}, fmt.Errorf("features.Key %s: %w: index %d not in [0, %d)", k, ErrIndex, ix, n)
			}
			rows[i] = ix
		}
		return Resolved{Rows: rows}, nil
	case keyMask:
		if len(k.mask) != n {
			return Resolved{}, fmt.Errorf("features.Key %s: %w: mask length %d != %d rows", k, ErrIndex, len(k.mask), n)
		}
		rows := []int{}
		for i, on := range k.mask {
			if on {
				rows = append(rows, i)
			}
		}
		return Resolved{Rows: rows}, nil
	}
	return Resolved{}, fmt.Errorf("features.Key: %w: unknown key kind", ErrIndex)
}
