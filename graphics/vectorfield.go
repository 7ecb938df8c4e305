// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gpuplot/base/errors"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// VectorFieldOptions are the optional settings for [NewVectorField].
type VectorFieldOptions struct {

	// Colors is the per-endpoint color input, two rows per vector,
	// base then tip. A single color broadcasts; per-row inputs must
	// have twice the vector count. nil defaults to white.
	Colors features.ColorsInput

	// UniformColor, when non-empty, renders every vector in one flat
	// color set through the material instead of a per-endpoint color
	// buffer. Any form accepted by [colors.FromString] works.
	UniformColor string

	// Cmap colors the endpoints through the named colormap, writing
	// through the same buffer as the colors feature. Incompatible
	// with UniformColor.
	Cmap string

	// CmapTransform supplies the per-endpoint scalars mapped through
	// the colormap; nil means a 0-1 ramp over the endpoints.
	CmapTransform []float32

	// Alpha multiplies into colormapped colors. Zero means opaque.
	Alpha float32

	// Scale multiplies the directions when placing the segment tips.
	// Zero means 1.
	Scale float32
}

// VectorField draws one line segment per vector, from each origin to
// origin + scale * direction. The origins and directions are plain
// positions features; the graphic derives a segment endpoint buffer
// from them and keeps it current, rebuilding a pair of endpoint rows
// whenever the corresponding origin or direction row changes and all
// tips whenever the scale changes.
type VectorField struct {
	GraphicBase

	origins    *features.VertexPositions
	directions *features.VertexPositions
	segments   *features.Buffer[float32]
	colors     *features.VertexColors
	color      *features.UniformColor
	cmap       *features.VertexCmap
	scale      *features.FloatValue

	// scale0 carries the initial scale until the feature exists.
	scale0 float32
}

var _ Graphic = (*VectorField)(nil)

// NewVectorField builds a vector field graphic from matching origin
// and direction inputs. Directions must be points, not y values.
func NewVectorField(dv render.Device, name string, origins, directions features.PositionsInput, opts *VectorFieldOptions) (*VectorField, error) {
	if opts == nil {
		opts = &VectorFieldOptions{}
	}
	if _, ok := directions.(features.YValues); ok {
		return nil, fmt.Errorf("graphics.NewVectorField %s: %w: directions must be points, not y values", name, features.ErrValue)
	}
	n, err := positionsLen(origins)
	if err != nil {
		return nil, err
	}
	nd, err := positionsLen(directions)
	if err != nil {
		return nil, err
	}
	if nd != n {
		return nil, fmt.Errorf("graphics.NewVectorField %s: %w: got %d directions for %d origins", name, features.ErrShape, nd, n)
	}

	vf := &VectorField{}
	vf.init(dv, name, render.Vectors)

	vf.origins, err = features.NewNamedVertexPositions(dv, vf, "origins", n, origins)
	if err != nil {
		vf.Destroy()
		return nil, err
	}
	vf.register(vf.origins)

	vf.directions, err = features.NewNamedVertexPositions(dv, vf, "directions", n, directions)
	if err != nil {
		vf.Destroy()
		return nil, err
	}
	vf.register(vf.directions)

	vf.scale0 = opts.Scale
	if vf.scale0 == 0 {
		vf.scale0 = 1
	}

	vf.segments, err = features.NewBuffer[float32](dv, "positions", 2*n, 3)
	if err != nil {
		vf.Destroy()
		return nil, err
	}
	vf.object.SetBuffer("positions", vf.segments.GPU())

	vf.origins.AddHandler(func(ev features.Event) {
		be, ok := ev.(*features.BufferEvent[float32])
		if !ok {
			return
		}
		r, err := be.Key.Resolve(vf.origins.N())
		if err != nil {
			errors.Log(err)
			return
		}
		errors.Log(vf.updatePairs(r.Indices(), false))
	})
	vf.directions.AddHandler(func(ev features.Event) {
		be, ok := ev.(*features.BufferEvent[float32])
		if !ok {
			return
		}
		r, err := be.Key.Resolve(vf.directions.N())
		if err != nil {
			errors.Log(err)
			return
		}
		errors.Log(vf.updatePairs(r.Indices(), true))
	})

	vf.scale, err = features.NewFloatValue("scale", vf, func(v float32) error {
		return vf.updateAll(v)
	}, -1e9, 1e9, vf.scale0)
	if err != nil {
		vf.Destroy()
		return nil, err
	}
	vf.register(vf.scale)

	if err := vf.initColors(dv, n, opts); err != nil {
		vf.Destroy()
		return nil, err
	}

	if err := vf.initCommon(); err != nil {
		vf.Destroy()
		return nil, err
	}
	return vf, nil
}

func (vf *VectorField) initColors(dv render.Device, n int, opts *VectorFieldOptions) error {
	if opts.UniformColor != "" {
		if opts.Cmap != "" || opts.CmapTransform != nil {
			return fmt.Errorf("graphics.NewVectorField %s: %w: cmap requires per-endpoint colors", vf.name, features.ErrValue)
		}
		c, err := colors.FromString(opts.UniformColor)
		if err != nil {
			return err
		}
		vf.color, err = features.NewUniformColor("color", vf, func(c colors.RGBA) error {
			return vf.material.Set("color", c)
		}, c)
		if err != nil {
			return err
		}
		vf.register(vf.color)
		return nil
	}

	ci := opts.Colors
	if ci == nil {
		ci = features.ColorName("w")
	}
	cf, err := features.NewVertexColors(dv, vf, 2*n, ci)
	if err != nil {
		return err
	}
	vf.colors = cf
	vf.register(cf)
	vf.object.SetBuffer("colors", cf.Buffer().GPU())

	if opts.Cmap != "" || opts.CmapTransform != nil {
		alpha := opts.Alpha
		if alpha == 0 {
			alpha = 1
		}
		vf.cmap, err = features.NewVertexCmap(cf, opts.Cmap, opts.CmapTransform, alpha)
		if err != nil {
			return err
		}
		vf.register(vf.cmap)
	}
	return nil
}

// scaleNow is the current scale, falling back to the initial scale
// while the feature is under construction.
func (vf *VectorField) scaleNow() float32 {
	if vf.scale != nil {
		return vf.scale.Value()
	}
	return vf.scale0
}

// updatePairs rebuilds the segment rows of the given vectors from the
// current origins, directions, and scale. With tipsOnly, only the tip
// rows rewrite, as for a direction change.
func (vf *VectorField) updatePairs(ix []int, tipsOnly bool) error {
	sc := vf.scaleNow()
	ob := vf.origins.Buffer()
	db := vf.directions.Buffer()
	segRows := make([]int, 0, 2*len(ix))
	rows := make([][]float32, 0, 2*len(ix))
	for _, i := range ix {
		o, err := ob.Row(i)
		if err != nil {
			return err
		}
		d, err := db.Row(i)
		if err != nil {
			return err
		}
		if !tipsOnly {
			segRows = append(segRows, 2*i)
			rows = append(rows, []float32{o[0], o[1], o[2]})
		}
		segRows = append(segRows, 2*i+1)
		rows = append(rows, []float32{o[0] + sc*d[0], o[1] + sc*d[1], o[2] + sc*d[2]})
	}
	return vf.segments.SetRows(features.List(segRows...), rows)
}

// updateAll rewrites the whole segment buffer with the given scale and
// uploads it in one pass.
func (vf *VectorField) updateAll(sc float32) error {
	od := vf.origins.Buffer().Data()
	dd := vf.directions.Buffer().Data()
	sd := vf.segments.Data()
	n := vf.origins.N()
	for i := range n {
		copy(sd[6*i:6*i+3], od[3*i:3*i+3])
		for c := range 3 {
			sd[6*i+3+c] = od[3*i+c] + sc*dd[3*i+c]
		}
	}
	return vf.segments.UploadAll()
}

// Origins is the vector origins feature, named "origins".
func (vf *VectorField) Origins() *features.VertexPositions { return vf.origins }

// Directions is the vector directions feature, named "directions".
func (vf *VectorField) Directions() *features.VertexPositions { return vf.directions }

// Segments returns the derived endpoint buffer, two rows per vector,
// base then tip.
func (vf *VectorField) Segments() *features.Buffer[float32] { return vf.segments }

// Colors is the per-endpoint color feature, or nil for a uniform
// color field.
func (vf *VectorField) Colors() *features.VertexColors { return vf.colors }

// Color is the uniform color feature, or nil for a per-endpoint
// color field.
func (vf *VectorField) Color() *features.UniformColor { return vf.color }

// Cmap is the colormap feature, or nil when none was configured.
func (vf *VectorField) Cmap() *features.VertexCmap { return vf.cmap }

// Scale is the direction scale feature.
func (vf *VectorField) Scale() *features.FloatValue { return vf.scale }

func (vf *VectorField) Destroy() {
	if vf.Destroyed() {
		return
	}
	vf.GraphicBase.Destroy()
	if vf.segments != nil {
		vf.segments.Release()
		vf.segments = nil
	}
}
