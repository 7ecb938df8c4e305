// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func TestNewLineDefaults(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 5, 2}, nil)
	assert.NoError(t, err)

	ob := ln.Renderable().(*offscreen.Object)
	assert.Equal(t, render.Lines, ob.Kind)
	assert.Contains(t, ob.Buffers, "positions")
	assert.Contains(t, ob.Buffers, "colors")

	got, err := ln.Positions().Get(features.All())
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1, 0}, {1, 5, 0}, {2, 2, 0}}, got)

	white := colors.New(1, 1, 1, 1)
	cs, err := ln.Colors().Get(features.All())
	assert.NoError(t, err)
	assert.Equal(t, []colors.RGBA{white, white, white}, cs)

	assert.Equal(t, gpuplot.Current.Thickness, ln.Thickness().Value())
	mt := ln.Material().(*offscreen.Material)
	assert.Equal(t, gpuplot.Current.Thickness, mt.Values["thickness"])
	assert.Nil(t, ln.Color())
	assert.Nil(t, ln.Cmap())
}

func TestLineUniformColor(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2}, &LineOptions{UniformColor: "r"})
	assert.NoError(t, err)

	assert.Nil(t, ln.Colors())
	red, _ := colors.FromString("r")
	assert.Equal(t, red, ln.Color().Value())
	mt := ln.Material().(*offscreen.Material)
	assert.Equal(t, red, mt.Values["color"])
	assert.Equal(t, []string{"data", "color", "thickness", "visible", "offset", "deleted"}, featureNames(ln))

	green, _ := colors.FromString("g")
	assert.NoError(t, ln.Color().Set(green))
	assert.Equal(t, green, mt.Values["color"])
}

func TestLineUniformColorCmapConflict(t *testing.T) {
	dv := offscreen.NewDevice()
	_, err := NewLine(dv, "line", features.YValues{1, 2}, &LineOptions{UniformColor: "r", Cmap: "jet"})
	assert.True(t, errors.Is(err, features.ErrValue))
}

func TestLineCmap(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2, 3, 4}, &LineOptions{Cmap: "jet"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"data", "colors", "cmap", "thickness", "visible", "offset", "deleted"}, featureNames(ln))
	assert.Equal(t, "jet", ln.Cmap().Name())

	// the default ramp maps the endpoints to different colors
	cs, err := ln.Colors().Get(features.All())
	assert.NoError(t, err)
	assert.NotEqual(t, cs[0], cs[3])
}

func TestLineCmapSharesColorBuffer(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2, 3}, &LineOptions{Cmap: "viridis"})
	assert.NoError(t, err)

	assert.Equal(t, 1, ln.Colors().Buffer().Shared())

	// setting colors overrides the colormap in the shared buffer
	assert.NoError(t, ln.Colors().Set(features.All(), features.ColorName("w")))
	cs, _ := ln.Colors().Get(features.All())
	white := colors.New(1, 1, 1, 1)
	assert.Equal(t, []colors.RGBA{white, white, white}, cs)
}

func TestLineCmapTransform(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2, 3}, &LineOptions{Cmap: "viridis", CmapTransform: []float32{0, 0, 1}})
	assert.NoError(t, err)

	cs, _ := ln.Colors().Get(features.All())
	assert.Equal(t, cs[0], cs[1])
	assert.NotEqual(t, cs[0], cs[2])

	_, err = NewLine(dv, "bad", features.YValues{1, 2, 3}, &LineOptions{Cmap: "viridis", CmapTransform: []float32{0, 1}})
	assert.True(t, errors.Is(err, features.ErrShape))
}

func TestLineThickness(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2}, &LineOptions{Thickness: 7})
	assert.NoError(t, err)
	assert.Equal(t, float32(7), ln.Thickness().Value())

	var events int
	ln.Thickness().AddHandler(func(ev features.Event) { events++ })
	assert.NoError(t, ln.Thickness().Set(3))
	mt := ln.Material().(*offscreen.Material)
	assert.Equal(t, float32(3), mt.Values["thickness"])
	assert.Equal(t, 1, events)

	err = ln.Thickness().Set(-1)
	assert.True(t, errors.Is(err, features.ErrValue))
}
