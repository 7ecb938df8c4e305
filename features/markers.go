// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/render"
)

// MarkerNames is the fixed set of scatter marker shapes, in code
// order: the uint32 stored per vertex indexes this list, and the
// marker atlas renders its tiles in the same order.
var MarkerNames = []string{"circle", "square", "diamond", "triangle", "cross", "plus", "star"}

// MarkerCode returns the buffer code for the given marker name,
// or an error wrapping [ErrEnum] for an unknown name.
func MarkerCode(name string) (uint32, error) {
	for i, mn := range MarkerNames {
		if mn == name {
			return uint32(i), nil
		}
	}
	return 0, fmt.Errorf("features.VertexMarkers: %w: marker %q not one of %v", ErrEnum, name, MarkerNames)
}

// MarkersInput is the accepted input for per-vertex marker shapes:
// [Marker] (one shape name broadcast), [Markers] (one name per row),
// or [MarkerCodes] (raw codes).
type MarkersInput interface {
	markerRows(n int) ([]uint32, error)
}

// Marker is a single marker name broadcast to every selected row.
type Marker string

// Markers is one marker name per selected row.
type Markers []string

// MarkerCodes is one marker code per selected row. Each code must
// index [MarkerNames].
type MarkerCodes []uint32

func (in Marker) markerRows(n int) ([]uint32, error) {
	code, err := MarkerCode(string(in))
	if err != nil {
		return nil, err
	}
	return []uint32{code}, nil
}

func (in Markers) markerRows(n int) ([]uint32, error) {
	if len(in) != n {
		return nil, fmt.Errorf("features.VertexMarkers: %w: got %d markers for %d vertices", ErrShape, len(in), n)
	}
	codes := make([]uint32, len(in))
	for i, name := range in {
		code, err := MarkerCode(name)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

func (in MarkerCodes) markerRows(n int) ([]uint32, error) {
	if len(in) != 1 && len(in) != n {
		return nil, fmt.Errorf("features.VertexMarkers: %w: got %d codes for %d vertices", ErrShape, len(in), n)
	}
	for _, code := range in {
		if int(code) >= len(MarkerNames) {
			return nil, fmt.Errorf("features.VertexMarkers: %w: marker code %d not in [0, %d)", ErrEnum, code, len(MarkerNames))
		}
	}
	return in, nil
}

// VertexMarkers is the indexable feature holding per-vertex marker
// shape codes in a uint32 [N, 1] buffer.
type VertexMarkers struct {
	FeatureBase
	buf *Buffer[uint32]
}

// NewVertexMarkers builds the markers feature for n vertices.
// A single name or code broadcasts; per-row input must have exactly
// n entries.
func NewVertexMarkers(dv render.Device, owner Owner, n int, input MarkersInput) (*VertexMarkers, error) {
	codes, err := input.markerRows(n)
	if err != nil {
		return nil, err
	}
	buf, err := NewBuffer[uint32](dv, "markers", n, 1)
	if err != nil {
		return nil, err
	}
	mf := &VertexMarkers{buf: buf}
	mf.Init("markers", owner)
	for i := range n {
		c := codes[0]
		if len(codes) > 1 {
			c = codes[i]
		}
		buf.data[i] = c
	}
	if err := buf.UploadAll(); err != nil {
		buf.Release()
		return nil, err
	}
	return mf, nil
}

// N returns the vertex count.
func (mf *VertexMarkers) N() int { return mf.buf.Rows() }

// Buffer returns the underlying buffer.
func (mf *VertexMarkers) Buffer() *Buffer[uint32] { return mf.buf }

// Get returns the marker codes of the selected rows.
func (mf *VertexMarkers) Get(k Key) ([]uint32, error) {
	rows, err := mf.buf.Select(k)
	if err != nil {
		return nil, err
	}
	codes := make([]uint32, len(rows))
	for i, row := range rows {
		codes[i] = row[0]
	}
	return codes, nil
}

// Set writes marker codes at the key, broadcasting a single marker.
// One event dispatches after a successful write; a re-entrant call
// from one of this feature's own handlers is a no-op.
func (mf *VertexMarkers) Set(k Key, input MarkersInput) error {
	if !mf.begin() {
		return nil
	}
	defer mf.end()
	r, err := k.Resolve(mf.buf.Rows())
	if err != nil {
		return err
	}
	codes, err := input.markerRows(r.Count())
	if err != nil {
		return err
	}
	if err := mf.buf.Set1D(k, codes); err != nil {
		return err
	}
	rows := make([][]uint32, len(codes))
	for i, c := range codes {
		rows[i] = []uint32{c}
	}
	mf.send(&BufferEvent[uint32]{EventBase: mf.eventBase(), Key: k, Value: rows})
	return nil
}

// Destroy releases the buffer reference and drops handlers.
func (mf *VertexMarkers) Destroy() {
	mf.buf.Release()
	mf.RemoveHandlers()
}
