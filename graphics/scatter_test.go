// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func TestNewScatterDefaults(t *testing.T) {
	dv := offscreen.NewDevice()
	sc, err := NewScatter(dv, "pts", features.PointsXY{{0, 0}, {1, 1}, {2, 4}}, nil)
	assert.NoError(t, err)

	ob := sc.Renderable().(*offscreen.Object)
	assert.Equal(t, render.Points, ob.Kind)
	assert.Contains(t, ob.Buffers, "positions")
	assert.Contains(t, ob.Buffers, "colors")
	assert.Contains(t, ob.Buffers, "markers")
	assert.Equal(t, []string{"data", "colors", "size", "markers", "visible", "offset", "deleted"}, featureNames(sc))

	// without per-vertex sizes the size is one material value
	assert.Nil(t, sc.Sizes())
	assert.Equal(t, gpuplot.Current.PointSize, sc.Size().Value())
	mt := sc.Material().(*offscreen.Material)
	assert.Equal(t, gpuplot.Current.PointSize, mt.Values["size"])

	// the default marker fills the whole buffer
	code, _ := features.MarkerCode(gpuplot.Current.Marker)
	codes, err := sc.Markers().Get(features.All())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{code, code, code}, codes)

	// the marker atlas is attached as the object texture
	assert.Same(t, sc.Atlas().Texture(), ob.Texture)
}

func TestScatterPerVertexSizes(t *testing.T) {
	dv := offscreen.NewDevice()
	sc, err := NewScatter(dv, "pts", features.PointsXY{{0, 0}, {1, 1}, {2, 2}},
		&ScatterOptions{Sizes: features.SizeValues{1, 2, 3}})
	assert.NoError(t, err)

	assert.Nil(t, sc.Size())
	assert.Equal(t, []string{"data", "colors", "sizes", "markers", "visible", "offset", "deleted"}, featureNames(sc))
	ob := sc.Renderable().(*offscreen.Object)
	assert.Contains(t, ob.Buffers, "sizes")

	got, err := sc.Sizes().Get(features.All())
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, got)

	assert.NoError(t, sc.Sizes().Set(features.At(1), features.SizeValue(9)))
	got, _ = sc.Sizes().Get(features.All())
	assert.Equal(t, []float32{1, 9, 3}, got)

	err = sc.Sizes().Set(features.At(0), features.SizeValue(-2))
	assert.True(t, errors.Is(err, features.ErrValue))
}

func TestScatterMarkers(t *testing.T) {
	dv := offscreen.NewDevice()
	sc, err := NewScatter(dv, "pts", features.PointsXY{{0, 0}, {1, 1}},
		&ScatterOptions{Markers: features.Markers{"star", "plus"}})
	assert.NoError(t, err)

	star, _ := features.MarkerCode("star")
	plus, _ := features.MarkerCode("plus")
	codes, _ := sc.Markers().Get(features.All())
	assert.Equal(t, []uint32{star, plus}, codes)

	assert.NoError(t, sc.Markers().Set(features.At(0), features.Marker("square")))
	square, _ := features.MarkerCode("square")
	codes, _ = sc.Markers().Get(features.All())
	assert.Equal(t, []uint32{square, plus}, codes)

	err = sc.Markers().Set(features.At(0), features.Marker("blob"))
	assert.True(t, errors.Is(err, features.ErrEnum))
}

func TestScatterCmap(t *testing.T) {
	dv := offscreen.NewDevice()
	sc, err := NewScatter(dv, "pts", features.PointsXY{{0, 0}, {1, 1}, {2, 2}},
		&ScatterOptions{Cmap: "plasma"})
	assert.NoError(t, err)
	assert.Equal(t, "plasma", sc.Cmap().Name())
	cs, _ := sc.Colors().Get(features.All())
	assert.NotEqual(t, cs[0], cs[2])
}

func TestScatterDestroyReleasesAtlas(t *testing.T) {
	dv := offscreen.NewDevice()
	sc, err := NewScatter(dv, "pts", features.PointsXY{{0, 0}}, nil)
	assert.NoError(t, err)
	tex := sc.Atlas().Texture().(*offscreen.Texture)

	sc.Destroy()
	assert.True(t, tex.Released)
	for _, bf := range dv.Buffers {
		assert.True(t, bf.Released, bf.Label)
	}
	sc.Destroy()
}
