// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot/render"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func rampVolume(rows, cols, depths int) [][][]float32 {
	vol := make([][][]float32, rows)
	for r := range vol {
		vol[r] = make([][]float32, cols)
		for c := range vol[r] {
			vol[r][c] = make([]float32, depths)
			for d := range vol[r][c] {
				vol[r][c][d] = float32((r*cols+c)*depths + d)
			}
		}
	}
	return vol
}

func TestVolumeChunking(t *testing.T) {
	dv := limitedDevice(2)
	tv, err := NewTextureArrayVolume(dv, nil, "vol", rampVolume(5, 4, 3))
	assert.NoError(t, err)

	rows, cols, depths := tv.Shape()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 3, depths)

	rc, cc, dc := tv.NumChunks()
	assert.Equal(t, 3, rc)
	assert.Equal(t, 2, cc)
	assert.Equal(t, 2, dc)
	assert.Len(t, dv.Textures, 12)

	n := 0
	for ck := range tv.Chunks() {
		n++
		w, h, d := ck.Texture.Size()
		assert.Equal(t, ck.Size[1], w)
		assert.Equal(t, ck.Size[0], h)
		assert.Equal(t, ck.Size[2], d)
		for ax := range 3 {
			assert.LessOrEqual(t, ck.Size[ax], 2)
			assert.Equal(t, 0, ck.Start[ax]%2)
		}
	}
	assert.Equal(t, 12, n)
}

func TestVolumeReconstruction(t *testing.T) {
	dv := limitedDevice(2)
	vol := rampVolume(3, 5, 4)
	tv, err := NewTextureArrayVolume(dv, nil, "vol", vol)
	assert.NoError(t, err)

	seen := map[[3]int]float32{}
	for ck := range tv.Chunks() {
		tex := ck.Texture.(*offscreen.Texture)
		vals := make([]float32, ck.Size[0]*ck.Size[1]*ck.Size[2])
		copy(render.ToBytes(vals), tex.Data)
		i := 0
		// depth slices are outermost in the texture layout
		for z := range ck.Size[2] {
			for y := range ck.Size[0] {
				for x := range ck.Size[1] {
					at := [3]int{ck.Start[0] + y, ck.Start[1] + x, ck.Start[2] + z}
					_, dup := seen[at]
					assert.False(t, dup, "cell %v covered twice", at)
					seen[at] = vals[i]
					i++
				}
			}
		}
	}
	assert.Len(t, seen, 3*5*4)
	for at, v := range seen {
		assert.Equal(t, vol[at[0]][at[1]][at[2]], v, "cell %v", at)
	}
}

func TestVolumeSet(t *testing.T) {
	dv := limitedDevice(2)
	tv, err := NewTextureArrayVolume(dv, nil, "vol", rampVolume(3, 3, 3))
	assert.NoError(t, err)

	var events []Event
	tv.AddHandler(func(ev Event) { events = append(events, ev) })

	before := map[string]int{}
	for _, tex := range dv.Textures {
		before[tex.Label] = tex.UploadCount
	}

	err = tv.Set(Span(1, 3), At(1), Span(1, 3), [][][]float32{
		{{100, 101}},
		{{102, 103}},
	})
	assert.NoError(t, err)

	v, _ := tv.At(1, 1, 1)
	assert.Equal(t, float32(100), v)
	v, _ = tv.At(2, 1, 2)
	assert.Equal(t, float32(103), v)
	v, _ = tv.At(0, 0, 0)
	assert.Equal(t, float32(0), v)

	for _, tex := range dv.Textures {
		assert.Equal(t, before[tex.Label]+1, tex.UploadCount, tex.Label)
	}

	assert.Len(t, events, 1)
	vev := events[0].(*VolumeTextureEvent)
	assert.Equal(t, "data", vev.FeatureName())
	assert.Equal(t, [][][]float32{{{100, 101}}, {{102, 103}}}, vev.Value)
}

func TestVolumeSetScalar(t *testing.T) {
	dv := limitedDevice(2)
	tv, err := NewTextureArrayVolume(dv, nil, "vol", rampVolume(2, 2, 2))
	assert.NoError(t, err)

	var events []Event
	tv.AddHandler(func(ev Event) { events = append(events, ev) })

	assert.NoError(t, tv.SetScalar(All(), All(), At(0), 99))
	for r := range 2 {
		for c := range 2 {
			v, _ := tv.At(r, c, 0)
			assert.Equal(t, float32(99), v)
			v, _ = tv.At(r, c, 1)
			assert.NotEqual(t, float32(99), v)
		}
	}
	vev := events[0].(*VolumeTextureEvent)
	assert.Equal(t, [][][]float32{{{99}, {99}}, {{99}, {99}}}, vev.Value)
}

func TestVolumeSlice(t *testing.T) {
	dv := limitedDevice(4)
	tv, err := NewTextureArrayVolume(dv, nil, "vol", rampVolume(3, 3, 3))
	assert.NoError(t, err)

	got, err := tv.Slice(At(1), Span(0, 2), At(2))
	assert.NoError(t, err)
	assert.Equal(t, [][][]float32{{{float32((1*3+0)*3 + 2)}, {float32((1*3+1)*3 + 2)}}}, got)

	_, err = tv.Slice(At(3), All(), All())
	assert.True(t, errors.Is(err, ErrIndex))
}

func TestVolumeFromPlane(t *testing.T) {
	dv := limitedDevice(4)
	tv, err := NewTextureArrayVolumeFromPlane(dv, nil, "vol", rampImage(3, 5))
	assert.NoError(t, err)

	rows, cols, depths := tv.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, 1, depths)

	v, err := tv.At(2, 4, 0)
	assert.NoError(t, err)
	assert.Equal(t, float32(2*5+4), v)
}

func TestVolumeShapeErrors(t *testing.T) {
	dv := limitedDevice(4)

	_, err := NewTextureArrayVolume(dv, nil, "vol", nil)
	assert.True(t, errors.Is(err, ErrShape))
	_, err = NewTextureArrayVolume(dv, nil, "vol", [][][]float32{{{1}, {2}}, {{3}}})
	assert.True(t, errors.Is(err, ErrShape))
	_, err = NewTextureArrayVolume(dv, nil, "vol", [][][]float32{{{1, 2}, {3}}})
	assert.True(t, errors.Is(err, ErrShape))

	tv, err := NewTextureArrayVolume(dv, nil, "vol", rampVolume(2, 2, 2))
	assert.NoError(t, err)
	err = tv.Set(All(), All(), All(), [][][]float32{{{1}}})
	assert.True(t, errors.Is(err, ErrShape))
}
