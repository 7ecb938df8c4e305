// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// ScatterOptions are the optional settings for [NewScatter].
type ScatterOptions struct {

	// Colors is the per-vertex color input. nil defaults to white.
	Colors features.ColorsInput

	// Cmap colors the vertices through the named colormap, writing
	// through the same buffer as the colors feature.
	Cmap string

	// CmapTransform supplies the per-vertex scalars mapped through
	// the colormap; nil means a 0-1 ramp across the points.
	CmapTransform []float32

	// Alpha multiplies into colormapped colors. Zero means opaque.
	Alpha float32

	// Sizes is the per-vertex point size input. nil uses a single
	// uniform size feature, [gpuplot.Current].PointSize, instead of
	// a per-vertex buffer.
	Sizes features.SizesInput

	// Markers is the per-vertex marker shape input. nil broadcasts
	// [gpuplot.Current].Marker.
	Markers features.MarkersInput
}

// Scatter is a point cloud graphic: per-vertex positions, colors,
// marker shapes drawn from a signed-distance atlas, and either
// per-vertex or uniform point sizes.
type Scatter struct {
	GraphicBase

	positions *features.VertexPositions
	colors    *features.VertexColors
	cmap      *features.VertexCmap
	sizes     *features.PointSizes
	size      *features.FloatValue
	markers   *features.VertexMarkers
	atlas     *MarkerAtlas
}

var _ Graphic = (*Scatter)(nil)

// NewScatter builds a scatter graphic from the given positions input.
func NewScatter(dv render.Device, name string, data features.PositionsInput, opts *ScatterOptions) (*Scatter, error) {
	if opts == nil {
		opts = &ScatterOptions{}
	}
	n, err := positionsLen(data)
	if err != nil {
		return nil, err
	}
	sc := &Scatter{}
	sc.init(dv, name, render.Points)

	sc.positions, err = features.NewVertexPositions(dv, sc, n, data)
	if err != nil {
		sc.Destroy()
		return nil, err
	}
	sc.register(sc.positions)
	sc.object.SetBuffer("positions", sc.positions.Buffer().GPU())

	ci := opts.Colors
	if ci == nil {
		ci = features.ColorName("w")
	}
	sc.colors, err = features.NewVertexColors(dv, sc, n, ci)
	if err != nil {
		sc.Destroy()
		return nil, err
	}
	sc.register(sc.colors)
	sc.object.SetBuffer("colors", sc.colors.Buffer().GPU())

	if opts.Cmap != "" || opts.CmapTransform != nil {
		alpha := opts.Alpha
		if alpha == 0 {
			alpha = 1
		}
		sc.cmap, err = features.NewVertexCmap(sc.colors, opts.Cmap, opts.CmapTransform, alpha)
		if err != nil {
			sc.Destroy()
			return nil, err
		}
		sc.register(sc.cmap)
	}

	if opts.Sizes != nil {
		sc.sizes, err = features.NewPointSizes(dv, sc, n, opts.Sizes)
		if err != nil {
			sc.Destroy()
			return nil, err
		}
		sc.register(sc.sizes)
		sc.object.SetBuffer("sizes", sc.sizes.Buffer().GPU())
	} else {
		sc.size, err = features.NewUniformSize(sc, func(v float32) error {
			return sc.material.Set("size", v)
		}, gpuplot.Current.PointSize)
		if err != nil {
			sc.Destroy()
			return nil, err
		}
		sc.register(sc.size)
	}

	mi := opts.Markers
	if mi == nil {
		mi = features.Marker(gpuplot.Current.Marker)
	}
	sc.markers, err = features.NewVertexMarkers(dv, sc, n, mi)
	if err != nil {
		sc.Destroy()
		return nil, err
	}
	sc.register(sc.markers)
	sc.object.SetBuffer("markers", sc.markers.Buffer().GPU())

	sc.atlas, err = NewMarkerAtlas(dv, name+".atlas")
	if err != nil {
		sc.Destroy()
		return nil, err
	}
	sc.object.SetTexture(sc.atlas.Texture())

	if err := sc.initCommon(); err != nil {
		sc.Destroy()
		return nil, err
	}
	return sc, nil
}

// Positions is the per-vertex position feature, named "data".
func (sc *Scatter) Positions() *features.VertexPositions { return sc.positions }

// Colors is the per-vertex color feature.
func (sc *Scatter) Colors() *features.VertexColors { return sc.colors }

// Cmap is the colormap feature, or nil when none was configured.
func (sc *Scatter) Cmap() *features.VertexCmap { return sc.cmap }

// Sizes is the per-vertex size feature, or nil when the scatter
// uses a uniform size.
func (sc *Scatter) Sizes() *features.PointSizes { return sc.sizes }

// Size is the uniform size feature, or nil when the scatter uses
// per-vertex sizes.
func (sc *Scatter) Size() *features.FloatValue { return sc.size }

// Markers is the per-vertex marker shape feature.
func (sc *Scatter) Markers() *features.VertexMarkers { return sc.markers }

// Atlas is the marker signed-distance atlas.
func (sc *Scatter) Atlas() *MarkerAtlas { return sc.atlas }

func (sc *Scatter) Destroy() {
	if sc.Destroyed() {
		return
	}
	sc.GraphicBase.Destroy()
	if sc.atlas != nil {
		sc.atlas.Release()
		sc.atlas = nil
	}
}
