// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// LineOptions are the optional settings for [NewLine]. The zero
// value uses per-vertex white colors and the current default
// thickness.
type LineOptions struct {

	// Colors is the per-vertex color input. nil defaults to white.
	Colors features.ColorsInput

	// UniformColor, when non-empty, renders the whole line in one
	// flat color set through the material instead of a per-vertex
	// color buffer. Any form accepted by [colors.FromString] works.
	UniformColor string

	// Cmap colors the vertices through the named colormap, writing
	// through the same buffer as the colors feature. Incompatible
	// with UniformColor.
	Cmap string

	// CmapTransform supplies the per-vertex scalars mapped through
	// the colormap; nil means a 0-1 ramp along the line.
	CmapTransform []float32

	// Alpha multiplies into colormapped colors. Zero means opaque.
	Alpha float32

	// Thickness is the line thickness in pixels. Zero uses
	// [gpuplot.Current].Thickness.
	Thickness float32
}

// Line is a connected line strip graphic with per-vertex positions,
// either per-vertex or uniform color, an optional colormap, and a
// thickness.
type Line struct {
	GraphicBase

	positions *features.VertexPositions
	colors    *features.VertexColors
	color     *features.UniformColor
	cmap      *features.VertexCmap
	thickness *features.FloatValue
}

var _ Graphic = (*Line)(nil)

// NewLine builds a line graphic from the given positions input.
func NewLine(dv render.Device, name string, data features.PositionsInput, opts *LineOptions) (*Line, error) {
	if opts == nil {
		opts = &LineOptions{}
	}
	n, err := positionsLen(data)
	if err != nil {
		return nil, err
	}
	ln := &Line{}
	ln.init(dv, name, render.Lines)

	ln.positions, err = features.NewVertexPositions(dv, ln, n, data)
	if err != nil {
		ln.Destroy()
		return nil, err
	}
	ln.register(ln.positions)
	ln.object.SetBuffer("positions", ln.positions.Buffer().GPU())

	if err := ln.initColors(dv, n, opts); err != nil {
		ln.Destroy()
		return nil, err
	}

	th := opts.Thickness
	if th == 0 {
		th = gpuplot.Current.Thickness
	}
	ln.thickness, err = features.NewThickness(ln, func(v float32) error {
		return ln.material.Set("thickness", v)
	}, th)
	if err != nil {
		ln.Destroy()
		return nil, err
	}
	ln.register(ln.thickness)

	if err := ln.initCommon(); err != nil {
		ln.Destroy()
		return nil, err
	}
	return ln, nil
}

// initColors builds either the uniform color feature or the
// per-vertex colors feature with its optional colormap.
func (ln *Line) initColors(dv render.Device, n int, opts *LineOptions) error {
	if opts.UniformColor != "" {
		if opts.Cmap != "" || opts.CmapTransform != nil {
			return fmt.Errorf("graphics.NewLine %s: %w: cmap requires per-vertex colors", ln.name, features.ErrValue)
		}
		c, err := colors.FromString(opts.UniformColor)
		if err != nil {
			return err
		}
		ln.color, err = features.NewUniformColor("color", ln, func(c colors.RGBA) error {
			return ln.material.Set("color", c)
		}, c)
		if err != nil {
			return err
		}
		ln.register(ln.color)
		return nil
	}

	ci := opts.Colors
	if ci == nil {
		ci = features.ColorName("w")
	}
	cf, err := features.NewVertexColors(dv, ln, n, ci)
	if err != nil {
		return err
	}
	ln.colors = cf
	ln.register(cf)
	ln.object.SetBuffer("colors", cf.Buffer().GPU())

	if opts.Cmap != "" || opts.CmapTransform != nil {
		alpha := opts.Alpha
		if alpha == 0 {
			alpha = 1
		}
		ln.cmap, err = features.NewVertexCmap(cf, opts.Cmap, opts.CmapTransform, alpha)
		if err != nil {
			return err
		}
		ln.register(ln.cmap)
	}
	return nil
}

// Positions is the per-vertex position feature, named "data".
func (ln *Line) Positions() *features.VertexPositions { return ln.positions }

// Colors is the per-vertex color feature, or nil for a uniform
// color line.
func (ln *Line) Colors() *features.VertexColors { return ln.colors }

// Color is the uniform color feature, or nil for a per-vertex
// color line.
func (ln *Line) Color() *features.UniformColor { return ln.color }

// Cmap is the colormap feature, or nil when none was configured.
func (ln *Line) Cmap() *features.VertexCmap { return ln.cmap }

// Thickness is the line thickness feature.
func (ln *Line) Thickness() *features.FloatValue { return ln.thickness }
