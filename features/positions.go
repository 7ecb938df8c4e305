// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/render"
	"github.com/chewxy/math32"
)

// PositionsInput is the accepted input for vertex positions:
// [YValues] (y only; x becomes the row index and z becomes 0),
// [PointsXY] (z becomes 0), or [PointsXYZ].
type PositionsInput interface {
	positionRows(rows []int) ([][]float32, error)
}

// YValues is a positions input holding y values only. Row i
// normalizes to (i, y, 0). A single value broadcasts its y to all
// selected rows, keeping x = row index.
type YValues []float32

// PointsXY is a positions input of (x, y) points; z normalizes to 0.
// A single point broadcasts.
type PointsXY [][2]float32

// PointsXYZ is a positions input of (x, y, z) points.
// A single point broadcasts.
type PointsXYZ [][3]float32

func checkFinite(name string, v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return fmt.Errorf("features.%s: %w: value %v is not finite", name, ErrValue, v)
	}
	return nil
}

func (in YValues) positionRows(rows []int) ([][]float32, error) {
	if len(in) != 1 && len(in) != len(rows) {
		return nil, fmt.Errorf("features.VertexPositions: %w: got %d y values for %d vertices", ErrShape, len(in), len(rows))
	}
	out := make([][]float32, len(rows))
	for pos, i := range rows {
		y := in[0]
		if len(in) > 1 {
			y = in[pos]
		}
		if err := checkFinite("VertexPositions", y); err != nil {
			return nil, err
		}
		out[pos] = []float32{float32(i), y, 0}
	}
	return out, nil
}

func (in PointsXY) positionRows(rows []int) ([][]float32, error) {
	if len(in) != 1 && len(in) != len(rows) {
		return nil, fmt.Errorf("features.VertexPositions: %w: got %d points for %d vertices", ErrShape, len(in), len(rows))
	}
	out := make([][]float32, len(rows))
	for pos := range rows {
		p := in[0]
		if len(in) > 1 {
			p = in[pos]
		}
		for _, v := range p {
			if err := checkFinite("VertexPositions", v); err != nil {
				return nil, err
			}
		}
		out[pos] = []float32{p[0], p[1], 0}
	}
	return out, nil
}

func (in PointsXYZ) positionRows(rows []int) ([][]float32, error) {
	if len(in) != 1 && len(in) != len(rows) {
		return nil, fmt.Errorf("features.VertexPositions: %w: got %d points for %d vertices", ErrShape, len(in), len(rows))
	}
	out := make([][]float32, len(rows))
	for pos := range rows {
		p := in[0]
		if len(in) > 1 {
			p = in[pos]
		}
		for _, v := range p {
			if err := checkFinite("VertexPositions", v); err != nil {
				return nil, err
			}
		}
		out[pos] = []float32{p[0], p[1], p[2]}
	}
	return out, nil
}

// VertexPositions is the indexable feature holding per-vertex (x, y,
// z) positions in a float32 [N, 3] buffer.
type VertexPositions struct {
	FeatureBase
	buf *Buffer[float32]
}

// NewVertexPositions builds the positions feature for n vertices from
// the given input, which must have exactly n rows (a single row is
// not broadcast at construction), and uploads the full buffer.
// The feature is named "data" and its buffer "positions".
func NewVertexPositions(dv render.Device, owner Owner, n int, input PositionsInput) (*VertexPositions, error) {
	return newVertexPositions(dv, owner, "data", "positions", n, input)
}

// NewNamedVertexPositions is [NewVertexPositions] with a custom
// feature and buffer name, for graphics holding more than one
// positions feature, such as a vector field's origins and directions.
func NewNamedVertexPositions(dv render.Device, owner Owner, name string, n int, input PositionsInput) (*VertexPositions, error) {
	return newVertexPositions(dv, owner, name, name, n, input)
}

func newVertexPositions(dv render.Device, owner Owner, name, label string, n int, input PositionsInput) (*VertexPositions, error) {
	if got := inputLen(input); got != n {
		return nil, fmt.Errorf("features.VertexPositions: %w: got %d rows for %d vertices", ErrShape, got, n)
	}
	rows, err := input.positionRows(allRows(n))
	if err != nil {
		return nil, err
	}
	buf, err := NewBuffer[float32](dv, label, n, 3)
	if err != nil {
		return nil, err
	}
	pf := &VertexPositions{buf: buf}
	pf.Init(name, owner)
	for i, row := range rows {
		copy(buf.data[i*3:], row)
	}
	if err := buf.UploadAll(); err != nil {
		buf.Release()
		return nil, err
	}
	return pf, nil
}

func inputLen(input PositionsInput) int {
	switch in := input.(type) {
	case YValues:
		return len(in)
	case PointsXY:
		return len(in)
	case PointsXYZ:
		return len(in)
	}
	return 0
}

func allRows(n int) []int {
	ix := make([]int, n)
	for i := range ix {
		ix[i] = i
	}
	return ix
}

// N returns the vertex count.
func (pf *VertexPositions) N() int { return pf.buf.Rows() }

// Buffer returns the underlying buffer, for sharing and for attaching
// to a renderable object.
func (pf *VertexPositions) Buffer() *Buffer[float32] { return pf.buf }

// Get returns views of the selected position rows.
func (pf *VertexPositions) Get(k Key) ([][]float32, error) {
	return pf.buf.Select(k)
}

// Set writes positions at the key. The input normalizes exactly as at
// construction, except that a one-row input broadcasts to the whole
// selection. Only the touched buffer ranges re-upload, and one
// event dispatches after a successful write. A re-entrant call from
// one of this feature's own handlers is a no-op.
func (pf *VertexPositions) Set(k Key, input PositionsInput) error {
	if !pf.begin() {
		return nil
	}
	defer pf.end()
	r, err := k.Resolve(pf.buf.Rows())
	if err != nil {
		return err
	}
	rows, err := input.positionRows(r.Indices())
	if err != nil {
		return err
	}
	if err := pf.buf.SetRows(k, rows); err != nil {
		return err
	}
	pf.send(&BufferEvent[float32]{EventBase: pf.eventBase(), Key: k, Value: rows})
	return nil
}

// Destroy releases the buffer reference and drops handlers.
func (pf *VertexPositions) Destroy() {
	pf.buf.Release()
	pf.RemoveHandlers()
}
