// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/render"
	"github.com/chewxy/math32"
)

// SizesInput is the accepted input for per-vertex point sizes:
// [SizeValue] (one size broadcast) or [SizeValues] (one per row).
type SizesInput interface {
	sizeRows(n int) ([]float32, error)
}

// SizeValue is a single point size broadcast to every selected row.
type SizeValue float32

// SizeValues is one point size per selected row.
type SizeValues []float32

func checkSize(v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("features.PointSizes: %w: size must be finite and >= 0, got %v", ErrValue, v)
	}
	return nil
}

func (in SizeValue) sizeRows(n int) ([]float32, error) {
	if err := checkSize(float32(in)); err != nil {
		return nil, err
	}
	return []float32{float32(in)}, nil
}

func (in SizeValues) sizeRows(n int) ([]float32, error) {
	if len(in) != n {
		return nil, fmt.Errorf("features.PointSizes: %w: got %d sizes for %d vertices", ErrShape, len(in), n)
	}
	for _, v := range in {
		if err := checkSize(v); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// PointSizes is the indexable feature holding per-vertex point sizes
// in a float32 [N, 1] buffer.
type PointSizes struct {
	FeatureBase
	buf *Buffer[float32]
}

// NewPointSizes builds the sizes feature for n vertices. A single
// size broadcasts; per-row input must have exactly n entries.
func NewPointSizes(dv render.Device, owner Owner, n int, input SizesInput) (*PointSizes, error) {
	vals, err := input.sizeRows(n)
	if err != nil {
		return nil, err
	}
	buf, err := NewBuffer[float32](dv, "sizes", n, 1)
	if err != nil {
		return nil, err
	}
	sf := &PointSizes{buf: buf}
	sf.Init("sizes", owner)
	for i := range n {
		v := vals[0]
		if len(vals) > 1 {
			v = vals[i]
		}
		buf.data[i] = v
	}
	if err := buf.UploadAll(); err != nil {
		buf.Release()
		return nil, err
	}
	return sf, nil
}

// N returns the vertex count.
func (sf *PointSizes) N() int { return sf.buf.Rows() }

// Buffer returns the underlying buffer.
func (sf *PointSizes) Buffer() *Buffer[float32] { return sf.buf }

// Get returns the sizes of the selected rows.
func (sf *PointSizes) Get(k Key) ([]float32, error) {
	rows, err := sf.buf.Select(k)
	if err != nil {
		return nil, err
	}
	vals := make([]float32, len(rows))
	for i, row := range rows {
		vals[i] = row[0]
	}
	return vals, nil
}

// Set writes sizes at the key, broadcasting a single size. One event
// dispatches after a successful write; a re-entrant call from one of
// this feature's own handlers is a no-op.
func (sf *PointSizes) Set(k Key, input SizesInput) error {
	if !sf.begin() {
		return nil
	}
	defer sf.end()
	r, err := k.Resolve(sf.buf.Rows())
	if err != nil {
		return err
	}
	vals, err := input.sizeRows(r.Count())
	if err != nil {
		return err
	}
	if err := sf.buf.Set1D(k, vals); err != nil {
		return err
	}
	rows := make([][]float32, len(vals))
	for i, v := range vals {
		rows[i] = []float32{v}
	}
	sf.send(&BufferEvent[float32]{EventBase: sf.eventBase(), Key: k, Value: rows})
	return nil
}

// Destroy releases the buffer reference and drops handlers.
func (sf *PointSizes) Destroy() {
	sf.buf.Release()
	sf.RemoveHandlers()
}
