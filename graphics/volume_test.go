// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"testing"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

// ramp3D builds rows x cols x depths data with value (r*cols+c)*depths+d.
func ramp3D(rows, cols, depths int) [][][]float32 {
	data := make([][][]float32, rows)
	for r := range data {
		plane := make([][]float32, cols)
		for c := range plane {
			row := make([]float32, depths)
			for d := range row {
				row[d] = float32((r*cols+c)*depths + d)
			}
			plane[c] = row
		}
		data[r] = plane
	}
	return data
}

// volumeChunkLimits caps 3D textures at 2 pixels per side.
var volumeChunkLimits = render.Limits{
	MaxTextureDimension2D: 8192,
	MaxTextureDimension3D: 2,
	MaxBufferSize:         256 << 20,
}

func TestNewVolumeDefaults(t *testing.T) {
	dv := offscreen.NewDevice()
	vl, err := NewVolume(dv, "vol", ramp3D(2, 2, 2), nil)
	assert.NoError(t, err)

	assert.Len(t, vl.Tiles(), 1)
	ob := vl.Tiles()[0].(*offscreen.Object)
	assert.Equal(t, render.VolumeTile, ob.Kind)
	w, h, d := ob.Texture.(*offscreen.Texture).Size()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{w, h, d})

	rows, cols, depths := vl.Data().Shape()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{rows, cols, depths})

	assert.Equal(t, []string{"data", "vmin", "vmax", "cmap", "mode",
		"iso_threshold", "interpolation", "visible", "offset", "deleted"}, featureNames(vl))

	assert.Equal(t, float32(0), vl.Vmin().Value())
	assert.Equal(t, float32(7), vl.Vmax().Value())
	assert.Equal(t, "mip", vl.Mode().Value())
	assert.Equal(t, gpuplot.Current.IsoThreshold, vl.IsoThreshold().Value())
	assert.Equal(t, "linear", vl.Interpolation().Value())

	mt := ob.Material.(*offscreen.Material)
	assert.Equal(t, "mip", mt.Values["mode"])
	assert.Equal(t, gpuplot.Current.IsoThreshold, mt.Values["iso_threshold"])
	assert.Equal(t, "linear", mt.Values["interpolation"])
}

func TestVolumeChunked(t *testing.T) {
	dv := offscreen.NewDeviceWithLimits(volumeChunkLimits)
	vl, err := NewVolume(dv, "vol", ramp3D(3, 3, 3), nil)
	assert.NoError(t, err)

	rc, cc, dc := vl.Data().NumChunks()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{rc, cc, dc})
	assert.Len(t, vl.Tiles(), 8)

	obs := make([]*offscreen.Object, 8)
	for i, ob := range vl.Tiles() {
		obs[i] = ob.(*offscreen.Object)
	}
	assert.Equal(t, "vol[0,0,0]", obs[0].Label)
	assert.Equal(t, "vol[1,1,1]", obs[7].Label)
	w, h, d := obs[0].Texture.(*offscreen.Texture).Size()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{w, h, d})
	w, h, d = obs[7].Texture.(*offscreen.Texture).Size()
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{w, h, d})

	// each tile sits at its chunk start
	assert.Equal(t, [3]float32{0, 0, 0}, obs[0].Offset)
	assert.Equal(t, [3]float32{2, 2, 2}, obs[7].Offset)

	assert.NoError(t, vl.Offset().Set([3]float32{1, 2, 3}))
	assert.Equal(t, [3]float32{1, 2, 3}, obs[0].Offset)
	assert.Equal(t, [3]float32{3, 4, 5}, obs[7].Offset)
}

func TestVolumeMode(t *testing.T) {
	dv := offscreen.NewDevice()
	vl, err := NewVolume(dv, "vol", ramp3D(2, 2, 2), nil)
	assert.NoError(t, err)

	mt := vl.Tiles()[0].(*offscreen.Object).Material.(*offscreen.Material)
	assert.NoError(t, vl.Mode().Set("iso"))
	assert.Equal(t, "iso", mt.Values["mode"])
	assert.NoError(t, vl.Mode().Set("minip"))
	assert.ErrorIs(t, vl.Mode().Set("slice"), features.ErrEnum)
	assert.Equal(t, "minip", mt.Values["mode"])

	_, err = NewVolume(dv, "bad", ramp3D(2, 2, 2), &VolumeOptions{Mode: "nope"})
	assert.ErrorIs(t, err, features.ErrEnum)
}

func TestVolumeCoarseInvalidation(t *testing.T) {
	dv := offscreen.NewDeviceWithLimits(volumeChunkLimits)
	vl, err := NewVolume(dv, "vol", ramp3D(3, 3, 3), nil)
	assert.NoError(t, err)

	var events []features.Event
	assert.NoError(t, vl.AddEventHandler(func(ev features.Event) {
		events = append(events, ev)
	}, "data"))

	texs := make([]*offscreen.Texture, 0, 8)
	for ck := range vl.Data().Chunks() {
		tex := ck.Texture.(*offscreen.Texture)
		assert.Equal(t, 1, tex.UploadCount, tex.Label)
		texs = append(texs, tex)
	}

	assert.NoError(t, vl.Data().SetScalar(features.At(0), features.At(0), features.All(), 99))
	for _, tex := range texs {
		assert.Equal(t, 2, tex.UploadCount, tex.Label)
	}
	v, err := vl.Data().At(0, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, float32(99), v)

	assert.Len(t, events, 1)
	vev := events[0].(*features.VolumeTextureEvent)
	assert.Equal(t, "data", vev.FeatureName())
	assert.Equal(t, [][][]float32{{{99, 99, 99}}}, vev.Value)
}

func TestVolumePick(t *testing.T) {
	dv := offscreen.NewDeviceWithLimits(volumeChunkLimits)
	vl, err := NewVolume(dv, "vol", ramp3D(3, 3, 3), nil)
	assert.NoError(t, err)

	_, ok := vl.Pick(0, 0)
	assert.False(t, ok)

	// a hit on the last tile re-bases along all three axes
	vl.Tiles()[7].(*offscreen.Object).PickResult = &render.PickInfo{Coord: [3]int{0, 0, 0}}
	pi, ok := vl.Pick(0, 0)
	assert.True(t, ok)
	assert.Equal(t, [3]int{2, 2, 2}, pi.Coord)
}

func TestNewVolumeFromPlane(t *testing.T) {
	dv := offscreen.NewDevice()
	vl, err := NewVolumeFromPlane(dv, "vol", [][]float32{{1, 2}, {3, 4}}, nil)
	assert.NoError(t, err)
	rows, cols, depths := vl.Data().Shape()
	assert.Equal(t, [3]int{2, 2, 1}, [3]int{rows, cols, depths})
	assert.Len(t, vl.Tiles(), 1)
	v, _ := vl.Data().At(1, 0, 0)
	assert.Equal(t, float32(3), v)
}

func TestVolumeDestroy(t *testing.T) {
	dv := offscreen.NewDeviceWithLimits(volumeChunkLimits)
	vl, err := NewVolume(dv, "vol", ramp3D(3, 3, 3), nil)
	assert.NoError(t, err)

	texs := make([]*offscreen.Texture, 0, 8)
	for ck := range vl.Data().Chunks() {
		texs = append(texs, ck.Texture.(*offscreen.Texture))
	}
	obs := make([]*offscreen.Object, 0, 8)
	for _, ob := range vl.Tiles() {
		obs = append(obs, ob.(*offscreen.Object))
	}

	vl.Destroy()
	assert.True(t, vl.Destroyed())
	for _, tex := range texs {
		assert.True(t, tex.Released, tex.Label)
	}
	for _, ob := range obs {
		assert.True(t, ob.Released, ob.Label)
	}
}
