// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/render"
)

// MeshIndices is the indexable feature holding triangle vertex
// indices in a uint32 [M, 3] buffer. Every index must be below the
// mesh's vertex count.
type MeshIndices struct {
	FeatureBase
	buf *Buffer[uint32]
	nv  int
}

// NewMeshIndices builds the index feature from the given triangles,
// checking every index against the vertex count nv.
func NewMeshIndices(dv render.Device, owner Owner, nv int, tris [][3]uint32) (*MeshIndices, error) {
	if err := checkTris(tris, nv); err != nil {
		return nil, err
	}
	buf, err := NewBuffer[uint32](dv, "indices", len(tris), 3)
	if err != nil {
		return nil, err
	}
	xf := &MeshIndices{buf: buf, nv: nv}
	xf.Init("indices", owner)
	for i, tri := range tris {
		copy(buf.data[i*3:], tri[:])
	}
	if err := buf.UploadAll(); err != nil {
		buf.Release()
		return nil, err
	}
	return xf, nil
}

func checkTris(tris [][3]uint32, nv int) error {
	for _, tri := range tris {
		for _, ix := range tri {
			if int(ix) >= nv {
				return fmt.Errorf("features.MeshIndices: %w: vertex index %d not in [0, %d)", ErrIndex, ix, nv)
			}
		}
	}
	return nil
}

// N returns the triangle count.
func (xf *MeshIndices) N() int { return xf.buf.Rows() }

// Buffer returns the underlying buffer.
func (xf *MeshIndices) Buffer() *Buffer[uint32] { return xf.buf }

// Get returns the triangles of the selected rows.
func (xf *MeshIndices) Get(k Key) ([][3]uint32, error) {
	rows, err := xf.buf.Select(k)
	if err != nil {
		return nil, err
	}
	tris := make([][3]uint32, len(rows))
	for i, row := range rows {
		copy(tris[i][:], row)
	}
	return tris, nil
}

// Set writes triangles at the key, broadcasting a single triangle.
// Every index is checked against the vertex count. One event
// dispatches after a successful write; a re-entrant call from one of
// this feature's own handlers is a no-op.
func (xf *MeshIndices) Set(k Key, tris [][3]uint32) error {
	if !xf.begin() {
		return nil
	}
	defer xf.end()
	if err := checkTris(tris, xf.nv); err != nil {
		return err
	}
	rows := make([][]uint32, len(tris))
	for i := range tris {
		rows[i] = tris[i][:]
	}
	if err := xf.buf.SetRows(k, rows); err != nil {
		return err
	}
	xf.send(&BufferEvent[uint32]{EventBase: xf.eventBase(), Key: k, Value: rows})
	return nil
}

// Destroy releases the buffer reference and drops handlers.
func (xf *MeshIndices) Destroy() {
	xf.buf.Release()
	xf.RemoveHandlers()
}
