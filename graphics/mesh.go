// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// MeshOptions are the optional settings for [NewMesh].
type MeshOptions struct {

	// Colors is the per-vertex color input. nil defaults to white.
	Colors features.ColorsInput

	// UniformColor, when non-empty, shades the whole mesh in one
	// flat color set through the material instead of a per-vertex
	// color buffer.
	UniformColor string
}

// Mesh is an indexed triangle mesh graphic: per-vertex positions, a
// triangle index feature, and either per-vertex or uniform color.
type Mesh struct {
	GraphicBase

	positions *features.VertexPositions
	indices   *features.MeshIndices
	colors    *features.VertexColors
	color     *features.UniformColor
}

var _ Graphic = (*Mesh)(nil)

// NewMesh builds a mesh graphic from the given vertex positions and
// triangles. Every triangle index must be below the vertex count.
func NewMesh(dv render.Device, name string, data features.PositionsInput, tris [][3]uint32, opts *MeshOptions) (*Mesh, error) {
	if opts == nil {
		opts = &MeshOptions{}
	}
	n, err := positionsLen(data)
	if err != nil {
		return nil, err
	}
	ms := &Mesh{}
	ms.init(dv, name, render.Mesh)

	ms.positions, err = features.NewVertexPositions(dv, ms, n, data)
	if err != nil {
		ms.Destroy()
		return nil, err
	}
	ms.register(ms.positions)
	ms.object.SetBuffer("positions", ms.positions.Buffer().GPU())

	ms.indices, err = features.NewMeshIndices(dv, ms, n, tris)
	if err != nil {
		ms.Destroy()
		return nil, err
	}
	ms.register(ms.indices)
	ms.object.SetBuffer("indices", ms.indices.Buffer().GPU())

	if opts.UniformColor != "" {
		c, err := colors.FromString(opts.UniformColor)
		if err != nil {
			ms.Destroy()
			return nil, err
		}
		ms.color, err = features.NewUniformColor("color", ms, func(c colors.RGBA) error {
			return ms.material.Set("color", c)
		}, c)
		if err != nil {
			ms.Destroy()
			return nil, err
		}
		ms.register(ms.color)
	} else {
		ci := opts.Colors
		if ci == nil {
			ci = features.ColorName("w")
		}
		ms.colors, err = features.NewVertexColors(dv, ms, n, ci)
		if err != nil {
			ms.Destroy()
			return nil, err
		}
		ms.register(ms.colors)
		ms.object.SetBuffer("colors", ms.colors.Buffer().GPU())
	}

	if err := ms.initCommon(); err != nil {
		ms.Destroy()
		return nil, err
	}
	return ms, nil
}

// Positions is the per-vertex position feature, named "data".
func (ms *Mesh) Positions() *features.VertexPositions { return ms.positions }

// Indices is the triangle index feature.
func (ms *Mesh) Indices() *features.MeshIndices { return ms.indices }

// Colors is the per-vertex color feature, or nil for a uniform
// color mesh.
func (ms *Mesh) Colors() *features.VertexColors { return ms.colors }

// Color is the uniform color feature, or nil for a per-vertex
// color mesh.
func (ms *Mesh) Color() *features.UniformColor { return ms.color }
