// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/minmax"
)

// VertexCmap colors vertices by mapping per-vertex scalar transform
// values through a named colormap. It writes through the same buffer
// as the graphic's [VertexColors] feature (the buffer is shared, not
// copied), so setting a colormap overwrites the colors and setting
// colors overrides the colormap.
type VertexCmap struct {
	FeatureBase

	cf        *VertexColors
	name      string
	transform []float32
	alpha     float32
}

// NewVertexCmap builds a colormap feature over the given colors
// feature, sharing its buffer. name must be a registered colormap.
// transform supplies the per-vertex scalar mapped through the
// colormap; nil means a 0..1 ramp across the vertices. alpha
// multiplies into the mapped colors' alpha.
func NewVertexCmap(cf *VertexColors, name string, transform []float32, alpha float32) (*VertexCmap, error) {
	vc := &VertexCmap{cf: cf, alpha: alpha}
	vc.Init("cmap", cf.Owner())
	if transform != nil {
		if len(transform) != cf.N() {
			return nil, fmt.Errorf("features.VertexCmap: %w: got %d transform values for %d vertices", ErrShape, len(transform), cf.N())
		}
		vc.transform = transform
	}
	if name != "" {
		if err := vc.remap(name); err != nil {
			return nil, err
		}
		vc.name = name
	}
	cf.Buffer().Share()
	return vc, nil
}

// Name returns the current colormap name, or "" if none applied yet.
func (vc *VertexCmap) Name() string { return vc.name }

// Alpha returns the alpha multiplied into mapped colors.
func (vc *VertexCmap) Alpha() float32 { return vc.alpha }

// Transform returns the per-vertex transform values, or nil when the
// default ramp is in effect.
func (vc *VertexCmap) Transform() []float32 { return vc.transform }

// values returns the scalar per vertex to normalize through the map.
func (vc *VertexCmap) values() []float32 {
	n := vc.cf.N()
	if vc.transform != nil {
		return vc.transform
	}
	ramp := make([]float32, n)
	if n > 1 {
		for i := range ramp {
			ramp[i] = float32(i) / float32(n-1)
		}
	}
	return ramp
}

// remap recolors every vertex through the named map and uploads the
// whole shared buffer.
func (vc *VertexCmap) remap(name string) error {
	cm, err := colormap.FromName(name)
	if err != nil {
		return fmt.Errorf("features.VertexCmap: %w: %s", ErrEnum, err)
	}
	vals := vc.values()
	var r minmax.F32
	r.SetInfinity()
	for _, v := range vals {
		r.FitValInRange(v)
	}
	cs := cm.MapValues(vals, r)
	for i := range cs {
		cs[i][3] *= vc.alpha
	}
	n := vc.cf.N()
	vc.cf.write(allRowsResolved(n), cs)
	return vc.cf.Buffer().UploadAll()
}

// Set applies the named colormap across all vertices through the
// shared color buffer and dispatches one [CmapEvent]. A re-entrant
// call from one of this feature's own handlers is a no-op.
func (vc *VertexCmap) Set(name string) error {
	if !vc.begin() {
		return nil
	}
	defer vc.end()
	if err := vc.remap(name); err != nil {
		return err
	}
	vc.name = name
	vc.send(&CmapEvent{EventBase: vc.eventBase(), Name: name, Alpha: vc.alpha})
	return nil
}

// SetTransform replaces the per-vertex transform values and recolors
// through the current map. len(vals) must equal the vertex count.
func (vc *VertexCmap) SetTransform(vals []float32) error {
	if !vc.begin() {
		return nil
	}
	defer vc.end()
	if len(vals) != vc.cf.N() {
		return fmt.Errorf("features.VertexCmap: %w: got %d transform values for %d vertices", ErrShape, len(vals), vc.cf.N())
	}
	if vc.name == "" {
		return fmt.Errorf("features.VertexCmap: %w: no colormap set", ErrEnum)
	}
	vc.transform = vals
	if err := vc.remap(vc.name); err != nil {
		return err
	}
	vc.send(&CmapEvent{EventBase: vc.eventBase(), Name: vc.name, Alpha: vc.alpha})
	return nil
}

// SetAlpha replaces the alpha applied to mapped colors and recolors
// through the current map.
func (vc *VertexCmap) SetAlpha(a float32) error {
	if !vc.begin() {
		return nil
	}
	defer vc.end()
	if a < 0 || a > 1 {
		return fmt.Errorf("features.VertexCmap: %w: alpha %v not in [0, 1]", ErrValue, a)
	}
	vc.alpha = a
	if vc.name != "" {
		if err := vc.remap(vc.name); err != nil {
			return err
		}
	}
	vc.send(&CmapEvent{EventBase: vc.eventBase(), Name: vc.name, Alpha: a})
	return nil
}

// Destroy releases the shared buffer reference and drops handlers.
func (vc *VertexCmap) Destroy() {
	vc.cf.Buffer().Release()
	vc.RemoveHandlers()
}
