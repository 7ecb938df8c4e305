// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"iter"

	"cogentcore.org/gpuplot/render"
)

// TextureArrayVolume is the 3D counterpart of [TextureArray]: one
// large logical (rows, cols, depths) float32 volume split across 3D
// GPU textures at the hardware size limit, with chunk boundaries at
// multiples of the limit along all three axes. Writes re-upload every
// chunk texture and dispatch one [VolumeTextureEvent].
type TextureArrayVolume struct {
	FeatureBase

	data        []float32
	rows        int
	cols        int
	depths      int
	limit       int
	rowStarts   []int
	colStarts   []int
	depthStarts []int
	texs        []render.Texture
	shared      int
}

// NewTextureArrayVolume builds a chunked volume from the given data,
// which must be non-empty and rectangular along all axes (an error
// wrapping [ErrShape] otherwise), splitting at the device's 3D
// texture limit. name labels the chunk textures.
func NewTextureArrayVolume(dv render.Device, owner Owner, name string, data [][][]float32) (*TextureArrayVolume, error) {
	rows, cols, depths, err := boxShape(data)
	if err != nil {
		return nil, err
	}
	tv := &TextureArrayVolume{
		rows:   rows,
		cols:   cols,
		depths: depths,
		limit:  dv.Limits().MaxTextureDimension3D,
		data:   make([]float32, rows*cols*depths),
	}
	tv.Init("data", owner)
	for r, plane := range data {
		for c, row := range plane {
			copy(tv.data[(r*cols+c)*depths:], row)
		}
	}
	tv.rowStarts = chunkStarts(rows, tv.limit)
	tv.colStarts = chunkStarts(cols, tv.limit)
	tv.depthStarts = chunkStarts(depths, tv.limit)
	for ri, rs := range tv.rowStarts {
		rext := chunkExtent(rows, tv.limit, rs)
		for ci, cs := range tv.colStarts {
			cext := chunkExtent(cols, tv.limit, cs)
			for di, ds := range tv.depthStarts {
				dext := chunkExtent(depths, tv.limit, ds)
				tex, err := dv.NewTexture(fmt.Sprintf("%s[%d,%d,%d]", name, ri, ci, di), render.FormatR32Float, cext, rext, dext)
				if err != nil {
					tv.releaseTextures()
					return nil, err
				}
				tv.texs = append(tv.texs, tex)
			}
		}
	}
	if err := tv.uploadAll(); err != nil {
		tv.releaseTextures()
		return nil, err
	}
	return tv, nil
}

// NewTextureArrayVolumeFromPlane builds a single-slice volume from 2D
// data, for rendering a plane with the volume pipeline.
func NewTextureArrayVolumeFromPlane(dv render.Device, owner Owner, name string, data [][]float32) (*TextureArrayVolume, error) {
	rows, cols, err := rectShape("TextureArrayVolume", data)
	if err != nil {
		return nil, err
	}
	vol := make([][][]float32, rows)
	for r := range vol {
		plane := make([][]float32, cols)
		for c := range plane {
			plane[c] = []float32{data[r][c]}
		}
		vol[r] = plane
	}
	return NewTextureArrayVolume(dv, owner, name, vol)
}

func boxShape(data [][][]float32) (rows, cols, depths int, err error) {
	if len(data) == 0 || len(data[0]) == 0 || len(data[0][0]) == 0 {
		return 0, 0, 0, fmt.Errorf("features.TextureArrayVolume: %w: data must be non-empty along all three axes", ErrShape)
	}
	rows, cols, depths = len(data), len(data[0]), len(data[0][0])
	for r, plane := range data {
		if len(plane) != cols {
			return 0, 0, 0, fmt.Errorf("features.TextureArrayVolume: %w: plane %d has %d rows, plane 0 has %d", ErrShape, r, len(plane), cols)
		}
		for c, row := range plane {
			if len(row) != depths {
				return 0, 0, 0, fmt.Errorf("features.TextureArrayVolume: %w: row (%d, %d) has depth %d, row (0, 0) has %d", ErrShape, r, c, len(row), depths)
			}
		}
	}
	return rows, cols, depths, nil
}

// Shape returns the logical (rows, cols, depths) of the full volume.
func (tv *TextureArrayVolume) Shape() (rows, cols, depths int) {
	return tv.rows, tv.cols, tv.depths
}

// Data returns the master array with depth innermost, then columns,
// then rows. It is the live backing array, not a copy: mutate through
// Set so the chunk textures are re-uploaded and handlers notified.
func (tv *TextureArrayVolume) Data() []float32 { return tv.data }

// NumChunks returns the chunk grid dimensions.
func (tv *TextureArrayVolume) NumChunks() (rowChunks, colChunks, depthChunks int) {
	return len(tv.rowStarts), len(tv.colStarts), len(tv.depthStarts)
}

func (tv *TextureArrayVolume) chunk(ri, ci, di int) Chunk {
	rs, cs, ds := tv.rowStarts[ri], tv.colStarts[ci], tv.depthStarts[di]
	return Chunk{
		Texture: tv.texs[(ri*len(tv.colStarts)+ci)*len(tv.depthStarts)+di],
		Index:   [3]int{ri, ci, di},
		Start:   [3]int{rs, cs, ds},
		Size: [3]int{
			chunkExtent(tv.rows, tv.limit, rs),
			chunkExtent(tv.cols, tv.limit, cs),
			chunkExtent(tv.depths, tv.limit, ds),
		},
	}
}

// Chunks iterates the chunks in row, col, depth grid order.
func (tv *TextureArrayVolume) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for ri := range tv.rowStarts {
			for ci := range tv.colStarts {
				for di := range tv.depthStarts {
					if !yield(tv.chunk(ri, ci, di)) {
						return
					}
				}
			}
		}
	}
}

// uploadChunk gathers one chunk from the master volume, depth slices
// outermost to match the texture's layer layout, and uploads it.
func (tv *TextureArrayVolume) uploadChunk(ck Chunk) error {
	scratch := make([]float32, ck.Size[0]*ck.Size[1]*ck.Size[2])
	i := 0
	for z := range ck.Size[2] {
		for y := range ck.Size[0] {
			base := ((ck.Start[0]+y)*tv.cols + ck.Start[1]) * tv.depths
			for x := range ck.Size[1] {
				scratch[i] = tv.data[base+x*tv.depths+ck.Start[2]+z]
				i++
			}
		}
	}
	return ck.Texture.Upload(render.ToBytes(scratch))
}

func (tv *TextureArrayVolume) uploadAll() error {
	for ck := range tv.Chunks() {
		if err := tv.uploadChunk(ck); err != nil {
			return err
		}
	}
	return nil
}

// At returns the value at logical (row, col, depth).
func (tv *TextureArrayVolume) At(row, col, depth int) (float32, error) {
	if row < 0 || row >= tv.rows || col < 0 || col >= tv.cols || depth < 0 || depth >= tv.depths {
		return 0, fmt.Errorf("features.TextureArrayVolume: %w: (%d, %d, %d) not in %d x %d x %d", ErrIndex, row, col, depth, tv.rows, tv.cols, tv.depths)
	}
	return tv.data[(row*tv.cols+col)*tv.depths+depth], nil
}

// Slice returns a copy of the selected region, shaped by the keys.
func (tv *TextureArrayVolume) Slice(rows, cols, depths Key) ([][][]float32, error) {
	rr, err := rows.Resolve(tv.rows)
	if err != nil {
		return nil, err
	}
	cr, err := cols.Resolve(tv.cols)
	if err != nil {
		return nil, err
	}
	dr, err := depths.Resolve(tv.depths)
	if err != nil {
		return nil, err
	}
	out := make([][][]float32, 0, rr.Count())
	for _, r := range rr.Indices() {
		plane := make([][]float32, 0, cr.Count())
		for _, c := range cr.Indices() {
			row := make([]float32, 0, dr.Count())
			for _, d := range dr.Indices() {
				row = append(row, tv.data[(r*tv.cols+c)*tv.depths+d])
			}
			plane = append(plane, row)
		}
		out = append(out, plane)
	}
	return out, nil
}

// Set writes the block into the region the keys select. The block
// must match the selection exactly along all three axes. All chunk
// textures re-upload, and one [VolumeTextureEvent] dispatches. A
// re-entrant call from one of this feature's own handlers is a no-op.
func (tv *TextureArrayVolume) Set(rows, cols, depths Key, block [][][]float32) error {
	if !tv.begin() {
		return nil
	}
	defer tv.end()
	return tv.setBlock(rows, cols, depths, block)
}

// SetScalar writes one value across the region the keys select.
func (tv *TextureArrayVolume) SetScalar(rows, cols, depths Key, v float32) error {
	if !tv.begin() {
		return nil
	}
	defer tv.end()
	rr, err := rows.Resolve(tv.rows)
	if err != nil {
		return err
	}
	cr, err := cols.Resolve(tv.cols)
	if err != nil {
		return err
	}
	dr, err := depths.Resolve(tv.depths)
	if err != nil {
		return err
	}
	block := make([][][]float32, rr.Count())
	for i := range block {
		plane := make([][]float32, cr.Count())
		for j := range plane {
			row := make([]float32, dr.Count())
			for k := range row {
				row[k] = v
			}
			plane[j] = row
		}
		block[i] = plane
	}
	return tv.setBlock(rows, cols, depths, block)
}

func (tv *TextureArrayVolume) setBlock(rows, cols, depths Key, block [][][]float32) error {
	rr, err := rows.Resolve(tv.rows)
	if err != nil {
		return err
	}
	cr, err := cols.Resolve(tv.cols)
	if err != nil {
		return err
	}
	dr, err := depths.Resolve(tv.depths)
	if err != nil {
		return err
	}
	if len(block) != rr.Count() {
		return fmt.Errorf("features.TextureArrayVolume: %w: got %d planes for %d selected", ErrShape, len(block), rr.Count())
	}
	for _, plane := range block {
		if len(plane) != cr.Count() {
			return fmt.Errorf("features.TextureArrayVolume: %w: got %d rows for %d selected", ErrShape, len(plane), cr.Count())
		}
		for _, row := range plane {
			if len(row) != dr.Count() {
				return fmt.Errorf("features.TextureArrayVolume: %w: got %d values for %d selected", ErrShape, len(row), dr.Count())
			}
		}
	}
	for i, r := range rr.Indices() {
		for j, c := range cr.Indices() {
			for k, d := range dr.Indices() {
				tv.data[(r*tv.cols+c)*tv.depths+d] = block[i][j][k]
			}
		}
	}
	if err := tv.uploadAll(); err != nil {
		return err
	}
	tv.send(&VolumeTextureEvent{EventBase: tv.eventBase(), Rows: rows, Cols: cols, Depths: depths, Value: block})
	return nil
}

// Shared returns the current share count.
func (tv *TextureArrayVolume) Shared() int { return tv.shared }

// Share adds a reference. Each Share needs a matching Destroy before
// the textures are released.
func (tv *TextureArrayVolume) Share() {
	tv.shared++
}

func (tv *TextureArrayVolume) releaseTextures() {
	for _, tex := range tv.texs {
		tex.Release()
	}
	tv.texs = nil
}

// Destroy drops one reference; the last Destroy releases every chunk
// texture and the handlers.
func (tv *TextureArrayVolume) Destroy() {
	if tv.shared > 0 {
		tv.shared--
		return
	}
	tv.releaseTextures()
	tv.RemoveHandlers()
}
