// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/render"
)

// ColorsInput is the accepted input for vertex colors: [ColorName]
// (one parsed color broadcast to all rows), [ColorNames] (one name
// per row), [ColorValue] (one RGBA broadcast), [ColorValues] (one
// RGBA per row), or [Labeled] (integer labels mapped through a
// colormap).
type ColorsInput interface {
	colorRows(n int) ([]colors.RGBA, error)
}

// ColorName is a single color specification parsed with
// [colors.FromString] and broadcast to every selected row.
type ColorName string

// ColorNames is one color specification per selected row.
type ColorNames []string

// ColorValue is a single RGBA broadcast to every selected row.
type ColorValue colors.RGBA

// ColorValues is one RGBA per selected row.
type ColorValues []colors.RGBA

// Labeled maps integer labels through an indexed lookup of the named
// colormap, one label per selected row.
type Labeled struct {
	Labels []int
	Cmap   string
}

func (in ColorName) colorRows(n int) ([]colors.RGBA, error) {
	c, err := colors.FromString(string(in))
	if err != nil {
		return nil, fmt.Errorf("features.VertexColors: %w", err)
	}
	return []colors.RGBA{c}, nil
}

func (in ColorNames) colorRows(n int) ([]colors.RGBA, error) {
	if len(in) != n {
		return nil, fmt.Errorf("features.VertexColors: %w: got %d names for %d vertices", ErrShape, len(in), n)
	}
	cs := make([]colors.RGBA, len(in))
	for i, name := range in {
		c, err := colors.FromString(name)
		if err != nil {
			return nil, fmt.Errorf("features.VertexColors: %w", err)
		}
		cs[i] = c
	}
	return cs, nil
}

func (in ColorValue) colorRows(n int) ([]colors.RGBA, error) {
	c, err := colors.FromAny(colors.RGBA(in))
	if err != nil {
		return nil, fmt.Errorf("features.VertexColors: %w", err)
	}
	return []colors.RGBA{c}, nil
}

func (in ColorValues) colorRows(n int) ([]colors.RGBA, error) {
	if len(in) != n {
		return nil, fmt.Errorf("features.VertexColors: %w: got %d colors for %d vertices", ErrShape, len(in), n)
	}
	cs := make([]colors.RGBA, len(in))
	for i, c := range in {
		v, err := colors.FromAny(c)
		if err != nil {
			return nil, fmt.Errorf("features.VertexColors: %w", err)
		}
		cs[i] = v
	}
	return cs, nil
}

func (in Labeled) colorRows(n int) ([]colors.RGBA, error) {
	if len(in.Labels) != n {
		return nil, fmt.Errorf("features.VertexColors: %w: got %d labels for %d vertices", ErrShape, len(in.Labels), n)
	}
	cm, err := colormap.FromName(in.Cmap)
	if err != nil {
		return nil, fmt.Errorf("features.VertexColors: %w: %s", ErrEnum, err)
	}
	cs := make([]colors.RGBA, len(in.Labels))
	for i, lb := range in.Labels {
		if lb < 0 {
			return nil, fmt.Errorf("features.VertexColors: %w: negative label %d", ErrValue, lb)
		}
		cs[i] = cm.MapIndex(lb)
	}
	return cs, nil
}

// VertexColors is the indexable feature holding per-vertex RGBA
// colors in a float32 [N, 4] buffer.
type VertexColors struct {
	FeatureBase
	buf *Buffer[float32]
}

// NewVertexColors builds the colors feature for n vertices.
// Single-color inputs broadcast to all n rows; per-row inputs must
// have exactly n entries.
func NewVertexColors(dv render.Device, owner Owner, n int, input ColorsInput) (*VertexColors, error) {
	cs, err := input.colorRows(n)
	if err != nil {
		return nil, err
	}
	buf, err := NewBuffer[float32](dv, "colors", n, 4)
	if err != nil {
		return nil, err
	}
	cf := &VertexColors{buf: buf}
	cf.Init("colors", owner)
	cf.write(allRowsResolved(n), cs)
	if err := buf.UploadAll(); err != nil {
		buf.Release()
		return nil, err
	}
	return cf, nil
}

func allRowsResolved(n int) Resolved {
	return Resolved{Start: 0, Stop: n}
}

// write copies normalized colors into the mirror without uploading.
func (cf *VertexColors) write(r Resolved, cs []colors.RGBA) {
	for pos, i := range r.Indices() {
		c := cs[0]
		if len(cs) > 1 {
			c = cs[pos]
		}
		copy(cf.buf.data[i*4:], c[:])
	}
}

// N returns the vertex count.
func (cf *VertexColors) N() int { return cf.buf.Rows() }

// Buffer returns the underlying buffer. A [VertexCmap] shares it.
func (cf *VertexColors) Buffer() *Buffer[float32] { return cf.buf }

// Get returns the colors of the selected rows.
func (cf *VertexColors) Get(k Key) ([]colors.RGBA, error) {
	rows, err := cf.buf.Select(k)
	if err != nil {
		return nil, err
	}
	cs := make([]colors.RGBA, len(rows))
	for i, row := range rows {
		copy(cs[i][:], row)
	}
	return cs, nil
}

// Set writes colors at the key. A single-color input broadcasts to
// the whole selection; per-row inputs must match the selection count.
// Only the touched ranges re-upload, and one [ColorEvent] dispatches
// after a successful write. A re-entrant call from one of this
// feature's own handlers is a no-op.
func (cf *VertexColors) Set(k Key, input ColorsInput) error {
	if !cf.begin() {
		return nil
	}
	defer cf.end()
	r, err := k.Resolve(cf.buf.Rows())
	if err != nil {
		return err
	}
	cs, err := input.colorRows(r.Count())
	if err != nil {
		return err
	}
	cf.write(r, cs)
	if err := cf.buf.upload(r); err != nil {
		return err
	}
	cf.send(&ColorEvent{EventBase: cf.eventBase(), Key: k, Value: cs})
	return nil
}

// Destroy releases the buffer reference and drops handlers.
func (cf *VertexColors) Destroy() {
	cf.buf.Release()
	cf.RemoveHandlers()
}
