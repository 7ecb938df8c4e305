// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/render"
)

// Scalar is the element type of a vertex buffer: float32 for
// positions, colors, and sizes, uint32 for markers and indices.
type Scalar interface {
	~float32 | ~uint32
}

// both Scalar types are 4 bytes on the GPU
const elemBytes = 4

// Buffer owns the CPU mirror of one GPU vertex buffer, laid out as
// rows x cols elements of E. The row count is fixed at construction;
// resizing means constructing a new Buffer. On every write it
// computes the minimal touched ranges and uploads only those:
// a contiguous row selection is one upload, a scattered selection is
// one upload per row.
//
// A Buffer may be shared by two features (a colormap writing through
// a color feature's buffer); Share and Release maintain a reference
// count so the GPU buffer is released only when the last reference
// is gone.
type Buffer[E Scalar] struct {
	name   string
	data   []E
	rows   int
	cols   int
	gpu    render.Buffer
	shared int
}

// NewBuffer allocates a Buffer with the given fixed row and column
// counts, along with its GPU buffer on the given device. The mirror
// starts zeroed; fill it and call UploadAll, or use the Set methods.
func NewBuffer[E Scalar](dv render.Device, name string, rows, cols int) (*Buffer[E], error) {
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("features.Buffer %s: %w: invalid shape %d x %d", name, ErrShape, rows, cols)
	}
	gpu, err := dv.NewBuffer(name, rows*cols*elemBytes)
	if err != nil {
		return nil, err
	}
	return &Buffer[E]{name: name, data: make([]E, rows*cols), rows: rows, cols: cols, gpu: gpu}, nil
}

// Name returns the buffer's property name, used in labels and errors.
func (bf *Buffer[E]) Name() string { return bf.name }

// Rows returns the fixed row count.
func (bf *Buffer[E]) Rows() int { return bf.rows }

// Cols returns the elements per row.
func (bf *Buffer[E]) Cols() int { return bf.cols }

// GPU returns the underlying GPU buffer, for attaching to an object.
func (bf *Buffer[E]) GPU() render.Buffer { return bf.gpu }

// Data returns the full CPU mirror. Writing through it bypasses
// dirty tracking; use the Set methods instead.
func (bf *Buffer[E]) Data() []E { return bf.data }

// Row returns the mirror view of row i. The view aliases the mirror.
func (bf *Buffer[E]) Row(i int) ([]E, error) {
	if i < 0 || i >= bf.rows {
		return nil, fmt.Errorf("features.Buffer %s: %w: row %d not in [0, %d)", bf.name, ErrIndex, i, bf.rows)
	}
	return bf.data[i*bf.cols : (i+1)*bf.cols], nil
}

// At returns the element at row i, column j.
func (bf *Buffer[E]) At(i, j int) (E, error) {
	var zero E
	if i < 0 || i >= bf.rows {
		return zero, fmt.Errorf("features.Buffer %s: %w: row %d not in [0, %d)", bf.name, ErrIndex, i, bf.rows)
	}
	if j < 0 || j >= bf.cols {
		return zero, fmt.Errorf("features.Buffer %s: %w: column %d not in [0, %d)", bf.name, ErrIndex, j, bf.cols)
	}
	return bf.data[i*bf.cols+j], nil
}

// Select returns views of the rows the key selects. The views alias
// the mirror; copy them before holding across a later write.
func (bf *Buffer[E]) Select(k Key) ([][]E, error) {
	r, err := k.Resolve(bf.rows)
	if err != nil {
		return nil, fmt.Errorf("features.Buffer %s: %w", bf.name, err)
	}
	out := make([][]E, 0, r.Count())
	for _, i := range r.Indices() {
		out = append(out, bf.data[i*bf.cols:(i+1)*bf.cols])
	}
	return out, nil
}

// SetRows writes whole rows at the key. One row broadcasts to every
// selected row; otherwise len(rows) must equal the selection count.
// Each row must have exactly Cols elements. After mutating the
// mirror it uploads the touched ranges.
func (bf *Buffer[E]) SetRows(k Key, rows [][]E) error {
	r, err := k.Resolve(bf.rows)
	if err != nil {
		return fmt.Errorf("features.Buffer %s: %w", bf.name, err)
	}
	n := r.Count()
	if len(rows) != 1 && len(rows) != n {
		return fmt.Errorf("features.Buffer %s: %w: got %d rows for %d selected", bf.name, ErrShape, len(rows), n)
	}
	for _, row := range rows {
		if len(row) != bf.cols {
			return fmt.Errorf("features.Buffer %s: %w: row has %d elements, need %d", bf.name, ErrShape, len(row), bf.cols)
		}
	}
	for pos, i := range r.Indices() {
		src := rows[0]
		if len(rows) > 1 {
			src = rows[pos]
		}
		copy(bf.data[i*bf.cols:(i+1)*bf.cols], src)
	}
	return bf.upload(r)
}

// Set1D writes scalar values at the key on a single-column buffer.
// One value broadcasts to every selected row.
func (bf *Buffer[E]) Set1D(k Key, vals []E) error {
	if bf.cols != 1 {
		return fmt.Errorf("features.Buffer %s: %w: Set1D on %d-column buffer", bf.name, ErrShape, bf.cols)
	}
	rows := make([][]E, len(vals))
	for i, v := range vals {
		rows[i] = []E{v}
	}
	return bf.SetRows(k, rows)
}

// SetColumn writes one column of the selected rows. One value
// broadcasts; otherwise len(vals) must equal the selection count.
// Column writes touch one element per row, so each row uploads
// separately.
func (bf *Buffer[E]) SetColumn(k Key, col int, vals []E) error {
	if col < 0 || col >= bf.cols {
		return fmt.Errorf("features.Buffer %s: %w: column %d not in [0, %d)", bf.name, ErrIndex, col, bf.cols)
	}
	r, err := k.Resolve(bf.rows)
	if err != nil {
		return fmt.Errorf("features.Buffer %s: %w", bf.name, err)
	}
	n := r.Count()
	if len(vals) != 1 && len(vals) != n {
		return fmt.Errorf("features.Buffer %s: %w: got %d values for %d selected", bf.name, ErrShape, len(vals), n)
	}
	for pos, i := range r.Indices() {
		v := vals[0]
		if len(vals) > 1 {
			v = vals[pos]
		}
		at := i*bf.cols + col
		bf.data[at] = v
		if bf.gpu != nil {
			if err := bf.gpu.Upload(render.ToBytes(bf.data[at:at+1]), at*elemBytes); err != nil {
				return err
			}
		}
	}
	return nil
}

// upload re-uploads the ranges the resolved selection touched:
// one contiguous upload, or one per scattered row. If an upload
// fails the mirror stays mutated; the error reports the divergence
// and the caller decides how to proceed.
func (bf *Buffer[E]) upload(r Resolved) error {
	if bf.gpu == nil {
		return nil
	}
	if r.IsContiguous() {
		off := r.Start * bf.cols
		n := (r.Stop - r.Start) * bf.cols
		if n == 0 {
			return nil
		}
		return bf.gpu.Upload(render.ToBytes(bf.data[off:off+n]), off*elemBytes)
	}
	for _, i := range r.Rows {
		off := i * bf.cols
		if err := bf.gpu.Upload(render.ToBytes(bf.data[off:off+bf.cols]), off*elemBytes); err != nil {
			return err
		}
	}
	return nil
}

// UploadAll uploads the entire mirror, used after filling it at
// construction.
func (bf *Buffer[E]) UploadAll() error {
	if bf.gpu == nil || len(bf.data) == 0 {
		return nil
	}
	return bf.gpu.Upload(render.ToBytes(bf.data), 0)
}

// Shared returns the current share count.
func (bf *Buffer[E]) Shared() int { return bf.shared }

// Share adds a reference to this buffer. Each Share needs a matching
// Release before the GPU buffer is actually released.
func (bf *Buffer[E]) Share() {
	bf.shared++
}

// Release drops one reference. When the last reference is dropped,
// the GPU buffer is released and the mirror detached.
func (bf *Buffer[E]) Release() {
	if bf.shared > 0 {
		bf.shared--
		return
	}
	if bf.gpu != nil {
		bf.gpu.Release()
		bf.gpu = nil
	}
}
