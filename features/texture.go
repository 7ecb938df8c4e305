// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"iter"

	"cogentcore.org/gpuplot/render"
)

// chunkStarts returns the logical start offset of each chunk along
// an axis of length n with the given per-texture limit: 0, limit,
// 2*limit, ... with ceil(n/limit) entries.
func chunkStarts(n, limit int) []int {
	nc := (n + limit - 1) / limit
	starts := make([]int, nc)
	for i := range starts {
		starts[i] = i * limit
	}
	return starts
}

// chunkExtent returns the extent of the chunk starting at start.
func chunkExtent(n, limit, start int) int {
	if start+limit > n {
		return n - start
	}
	return limit
}

// Chunk is one GPU-texture-sized tile of a chunked array, as yielded
// by iteration. Index is the chunk grid position, Start the logical
// offsets of the chunk's data in the full array, and Size its
// extents, all ordered (row, col, depth). This is the single source
// of truth for chunk geometry: construction, re-upload, and tile
// placement all derive from it.
type Chunk struct {
	Texture render.Texture
	Index   [3]int
	Start   [3]int
	Size    [3]int
}

// TextureArray is the feature holding one large logical 2D float32
// array split across GPU textures at the hardware size limit. Chunk
// boundaries along each axis fall at multiples of the limit.
//
// A write mutates the master array, re-uploads every chunk texture
// (coarse invalidation: a write may straddle chunks), and dispatches
// one [TextureEvent].
type TextureArray struct {
	FeatureBase

	data      []float32
	rows      int
	cols      int
	limit     int
	rowStarts []int
	colStarts []int
	texs      []render.Texture
	shared    int
}

// NewTextureArray builds a chunked texture array from the given data,
// which must be non-empty and rectangular (an error wrapping
// [ErrShape] otherwise), splitting at the device's 2D texture limit.
// name labels the chunk textures.
func NewTextureArray(dv render.Device, owner Owner, name string, data [][]float32) (*TextureArray, error) {
	rows, cols, err := rectShape("TextureArray", data)
	if err != nil {
		return nil, err
	}
	ta := &TextureArray{
		rows:  rows,
		cols:  cols,
		limit: dv.Limits().MaxTextureDimension2D,
		data:  make([]float32, rows*cols),
	}
	ta.Init("data", owner)
	for r, row := range data {
		copy(ta.data[r*cols:], row)
	}
	ta.rowStarts = chunkStarts(rows, ta.limit)
	ta.colStarts = chunkStarts(cols, ta.limit)
	for ri, rs := range ta.rowStarts {
		rext := chunkExtent(rows, ta.limit, rs)
		for ci, cs := range ta.colStarts {
			cext := chunkExtent(cols, ta.limit, cs)
			tex, err := dv.NewTexture(fmt.Sprintf("%s[%d,%d]", name, ri, ci), render.FormatR32Float, cext, rext, 1)
			if err != nil {
				ta.releaseTextures()
				return nil, err
			}
			ta.texs = append(ta.texs, tex)
		}
	}
	if err := ta.uploadAll(); err != nil {
		ta.releaseTextures()
		return nil, err
	}
	return ta, nil
}

func rectShape(kind string, data [][]float32) (rows, cols int, err error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return 0, 0, fmt.Errorf("features.%s: %w: data must have at least one row and column", kind, ErrShape)
	}
	rows, cols = len(data), len(data[0])
	for r, row := range data {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("features.%s: %w: row %d has %d columns, row 0 has %d", kind, ErrShape, r, len(row), cols)
		}
	}
	return rows, cols, nil
}

// Shape returns the logical (rows, cols) of the full array.
func (ta *TextureArray) Shape() (rows, cols int) {
	return ta.rows, ta.cols
}

// Data returns the master array in row-major order. It is the live
// backing array, not a copy: mutate through Set so the chunk textures
// are re-uploaded and handlers notified.
func (ta *TextureArray) Data() []float32 { return ta.data }

// NumChunks returns the chunk grid dimensions.
func (ta *TextureArray) NumChunks() (rowChunks, colChunks int) {
	return len(ta.rowStarts), len(ta.colStarts)
}

// RowStarts returns the logical row offset of each row chunk.
func (ta *TextureArray) RowStarts() []int { return ta.rowStarts }

// ColStarts returns the logical column offset of each column chunk.
func (ta *TextureArray) ColStarts() []int { return ta.colStarts }

// chunk returns the chunk geometry at grid position (ri, ci).
func (ta *TextureArray) chunk(ri, ci int) Chunk {
	rs, cs := ta.rowStarts[ri], ta.colStarts[ci]
	return Chunk{
		Texture: ta.texs[ri*len(ta.colStarts)+ci],
		Index:   [3]int{ri, ci, 0},
		Start:   [3]int{rs, cs, 0},
		Size:    [3]int{chunkExtent(ta.rows, ta.limit, rs), chunkExtent(ta.cols, ta.limit, cs), 1},
	}
}

// Chunks iterates the chunks in row-major grid order.
func (ta *TextureArray) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for ri := range ta.rowStarts {
			for ci := range ta.colStarts {
				if !yield(ta.chunk(ri, ci)) {
					return
				}
			}
		}
	}
}

// uploadChunk gathers one chunk's data from the master array and
// uploads it to the chunk's texture.
func (ta *TextureArray) uploadChunk(ck Chunk) error {
	scratch := make([]float32, ck.Size[0]*ck.Size[1])
	for y := range ck.Size[0] {
		src := (ck.Start[0]+y)*ta.cols + ck.Start[1]
		copy(scratch[y*ck.Size[1]:], ta.data[src:src+ck.Size[1]])
	}
	return ck.Texture.Upload(render.ToBytes(scratch))
}

func (ta *TextureArray) uploadAll() error {
	for ck := range ta.Chunks() {
		if err := ta.uploadChunk(ck); err != nil {
			return err
		}
	}
	return nil
}

// At returns the value at logical (row, col).
func (ta *TextureArray) At(row, col int) (float32, error) {
	if row < 0 || row >= ta.rows || col < 0 || col >= ta.cols {
		return 0, fmt.Errorf("features.TextureArray: %w: (%d, %d) not in %d x %d", ErrIndex, row, col, ta.rows, ta.cols)
	}
	return ta.data[row*ta.cols+col], nil
}

// Slice returns a copy of the selected region, shaped by the keys.
func (ta *TextureArray) Slice(rows, cols Key) ([][]float32, error) {
	rr, err := rows.Resolve(ta.rows)
	if err != nil {
		return nil, err
	}
	cr, err := cols.Resolve(ta.cols)
	if err != nil {
		return nil, err
	}
	out := make([][]float32, 0, rr.Count())
	for _, r := range rr.Indices() {
		row := make([]float32, 0, cr.Count())
		for _, c := range cr.Indices() {
			row = append(row, ta.data[r*ta.cols+c])
		}
		out = append(out, row)
	}
	return out, nil
}

// Set writes the block into the region the keys select. The block
// must match the selection exactly: len(block) rows of selection
// column count each. All chunk textures re-upload (a write may
// straddle chunks), and one [TextureEvent] dispatches. A re-entrant
// call from one of this feature's own handlers is a no-op.
func (ta *TextureArray) Set(rows, cols Key, block [][]float32) error {
	if !ta.begin() {
		return nil
	}
	defer ta.end()
	return ta.setBlock(rows, cols, block)
}

// SetScalar writes one value across the region the keys select.
func (ta *TextureArray) SetScalar(rows, cols Key, v float32) error {
	if !ta.begin() {
		return nil
	}
	defer ta.end()
	rr, err := rows.Resolve(ta.rows)
	if err != nil {
		return err
	}
	cr, err := cols.Resolve(ta.cols)
	if err != nil {
		return err
	}
	block := make([][]float32, rr.Count())
	for i := range block {
		row := make([]float32, cr.Count())
		for j := range row {
			row[j] = v
		}
		block[i] = row
	}
	return ta.setBlock(rows, cols, block)
}

func (ta *TextureArray) setBlock(rows, cols Key, block [][]float32) error {
	rr, err := rows.Resolve(ta.rows)
	if err != nil {
		return err
	}
	cr, err := cols.Resolve(ta.cols)
	if err != nil {
		return err
	}
	if len(block) != rr.Count() {
		return fmt.Errorf("features.TextureArray: %w: got %d rows for %d selected", ErrShape, len(block), rr.Count())
	}
	for _, row := range block {
		if len(row) != cr.Count() {
			return fmt.Errorf("features.TextureArray: %w: got %d columns for %d selected", ErrShape, len(row), cr.Count())
		}
	}
	for i, r := range rr.Indices() {
		for j, c := range cr.Indices() {
			ta.data[r*ta.cols+c] = block[i][j]
		}
	}
	if err := ta.uploadAll(); err != nil {
		return err
	}
	ta.send(&TextureEvent{EventBase: ta.eventBase(), Rows: rows, Cols: cols, Value: block})
	return nil
}

// Shared returns the current share count.
func (ta *TextureArray) Shared() int { return ta.shared }

// Share adds a reference, as when a new image graphic reuses the
// array. Each Share needs a matching Destroy before the textures are
// released.
func (ta *TextureArray) Share() {
	ta.shared++
}

func (ta *TextureArray) releaseTextures() {
	for _, tex := range ta.texs {
		tex.Release()
	}
	ta.texs = nil
}

// Destroy drops one reference; the last Destroy releases every chunk
// texture and the handlers.
func (ta *TextureArray) Destroy() {
	if ta.shared > 0 {
		ta.shared--
		return
	}
	ta.releaseTextures()
	ta.RemoveHandlers()
}
