// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"github.com/chewxy/math32"
)

// VolumeOptions are the optional settings for [NewVolume].
type VolumeOptions struct {

	// Vmin and Vmax are the data values mapped to the colormap
	// endpoints. When both are zero the range is estimated from the
	// data with [QuickMinMax].
	Vmin float32
	Vmax float32

	// Cmap is the colormap name. Empty uses
	// [gpuplot.Current].Colormap.
	Cmap string

	// Mode is the render mode. Empty means "mip".
	Mode string

	// IsoThreshold is the isosurface threshold for "iso" mode.
	// Zero uses [gpuplot.Current].IsoThreshold.
	IsoThreshold float32

	// Interpolation is the data sampling filter, "nearest" or
	// "linear". Empty means "linear".
	Interpolation string
}

// Volume is a 3D scalar volume graphic. The data lives in a chunked
// [features.TextureArrayVolume]; each chunk renders as one tile
// object positioned at the chunk's start. Display mapping is shared
// by all tiles through one material.
type Volume struct {
	GraphicBase

	data   *features.TextureArrayVolume
	chunks []features.Chunk
	tiles  []render.Object

	vmin          *features.FloatValue
	vmax          *features.FloatValue
	cmap          *features.EnumValue
	mode          *features.EnumValue
	isoThreshold  *features.FloatValue
	interpolation *features.EnumValue
}

var _ Graphic = (*Volume)(nil)

// NewVolume builds a volume graphic from the given data, which must
// be a non-empty box: every plane the same shape, every row the same
// length.
func NewVolume(dv render.Device, name string, data [][][]float32, opts *VolumeOptions) (*Volume, error) {
	vl := &Volume{}
	tv, err := features.NewTextureArrayVolume(textureDevice(dv), vl, name, data)
	if err != nil {
		return nil, err
	}
	return finishVolume(dv, vl, name, tv, opts)
}

// NewVolumeFromPlane builds a volume graphic from a single 2D plane,
// as a depth-1 volume.
func NewVolumeFromPlane(dv render.Device, name string, data [][]float32, opts *VolumeOptions) (*Volume, error) {
	vl := &Volume{}
	tv, err := features.NewTextureArrayVolumeFromPlane(textureDevice(dv), vl, name, data)
	if err != nil {
		return nil, err
	}
	return finishVolume(dv, vl, name, tv, opts)
}

func finishVolume(dv render.Device, vl *Volume, name string, tv *features.TextureArrayVolume, opts *VolumeOptions) (*Volume, error) {
	if opts == nil {
		opts = &VolumeOptions{}
	}
	vl.data = tv
	for ck := range tv.Chunks() {
		ob := dv.NewObject(fmt.Sprintf("%s[%d,%d,%d]", name, ck.Index[0], ck.Index[1], ck.Index[2]), render.VolumeTile)
		ob.SetTexture(ck.Texture)
		vl.chunks = append(vl.chunks, ck)
		vl.tiles = append(vl.tiles, ob)
	}
	vl.initWith(dv, name, vl.tiles[0])
	for _, ob := range vl.tiles[1:] {
		ob.SetMaterial(vl.material)
	}
	vl.register(tv)

	vl.applyVisible = func(on bool) error {
		for _, ob := range vl.tiles {
			ob.SetVisible(on)
		}
		return nil
	}
	vl.applyOffset = func(v [3]float32) error {
		for i, ob := range vl.tiles {
			ck := vl.chunks[i]
			ob.SetOffset(v[0]+float32(ck.Start[1]), v[1]+float32(ck.Start[0]), v[2]+float32(ck.Start[2]))
		}
		return nil
	}

	if err := vl.initDisplay(opts); err != nil {
		vl.Destroy()
		return nil, err
	}
	if err := vl.initCommon(); err != nil {
		vl.Destroy()
		return nil, err
	}
	return vl, nil
}

func (vl *Volume) initDisplay(opts *VolumeOptions) error {
	vmin, vmax := opts.Vmin, opts.Vmax
	if vmin == 0 && vmax == 0 {
		vmin, vmax = QuickMinMax(vl.data.Data())
	}
	var err error
	vl.vmin, err = features.NewFloatValue("vmin", vl, func(v float32) error {
		return vl.material.Set("vmin", v)
	}, math32.Inf(-1), math32.Inf(1), vmin)
	if err != nil {
		return err
	}
	vl.register(vl.vmin)

	vl.vmax, err = features.NewFloatValue("vmax", vl, func(v float32) error {
		return vl.material.Set("vmax", v)
	}, math32.Inf(-1), math32.Inf(1), vmax)
	if err != nil {
		return err
	}
	vl.register(vl.vmax)

	cm := opts.Cmap
	if cm == "" {
		cm = gpuplot.Current.Colormap
	}
	vl.cmap, err = features.NewEnumValue("cmap", vl, colormap.AvailableMapsList(), func(s string) error {
		return vl.material.Set("cmap", s)
	}, cm)
	if err != nil {
		return err
	}
	vl.register(vl.cmap)

	mode := opts.Mode
	if mode == "" {
		mode = "mip"
	}
	vl.mode, err = features.NewEnumValue("mode", vl, features.RenderModes, func(s string) error {
		return vl.material.Set("mode", s)
	}, mode)
	if err != nil {
		return err
	}
	vl.register(vl.mode)

	iso := opts.IsoThreshold
	if iso == 0 {
		iso = gpuplot.Current.IsoThreshold
	}
	vl.isoThreshold, err = features.NewFloatValue("iso_threshold", vl, func(v float32) error {
		return vl.material.Set("iso_threshold", v)
	}, math32.Inf(-1), math32.Inf(1), iso)
	if err != nil {
		return err
	}
	vl.register(vl.isoThreshold)

	interp := opts.Interpolation
	if interp == "" {
		interp = "linear"
	}
	vl.interpolation, err = features.NewEnumValue("interpolation", vl, features.InterpolationModes, func(s string) error {
		return vl.material.Set("interpolation", s)
	}, interp)
	if err != nil {
		return err
	}
	vl.register(vl.interpolation)
	return nil
}

// Data is the chunked texture feature holding the volume values.
func (vl *Volume) Data() *features.TextureArrayVolume { return vl.data }

// Tiles returns the tile objects, one per chunk, in [features.Chunk]
// iteration order.
func (vl *Volume) Tiles() []render.Object { return vl.tiles }

// Vmin is the lower end of the displayed value range.
func (vl *Volume) Vmin() *features.FloatValue { return vl.vmin }

// Vmax is the upper end of the displayed value range.
func (vl *Volume) Vmax() *features.FloatValue { return vl.vmax }

// Cmap is the colormap name feature.
func (vl *Volume) Cmap() *features.EnumValue { return vl.cmap }

// Mode is the render mode feature.
func (vl *Volume) Mode() *features.EnumValue { return vl.mode }

// IsoThreshold is the isosurface threshold feature.
func (vl *Volume) IsoThreshold() *features.FloatValue { return vl.isoThreshold }

// Interpolation is the data sampling filter feature.
func (vl *Volume) Interpolation() *features.EnumValue { return vl.interpolation }

// ResetVminVmax re-estimates the displayed value range from the
// current data with [QuickMinMax].
func (vl *Volume) ResetVminVmax() error {
	mn, mx := QuickMinMax(vl.data.Data())
	if err := vl.vmin.Set(mn); err != nil {
		return err
	}
	return vl.vmax.Set(mx)
}

// Pick hit-tests the given position against every tile, re-basing
// the reported data coordinate by the chunk start so the result
// indexes the full volume.
func (vl *Volume) Pick(x, y float32) (render.PickInfo, bool) {
	for i, ob := range vl.tiles {
		pi, ok := ob.Pick(x, y)
		if !ok {
			continue
		}
		ck := vl.chunks[i]
		pi.Coord[0] += ck.Start[1]
		pi.Coord[1] += ck.Start[0]
		pi.Coord[2] += ck.Start[2]
		return pi, true
	}
	return render.PickInfo{}, false
}

func (vl *Volume) Destroy() {
	if vl.Destroyed() {
		return
	}
	tiles := vl.tiles
	vl.GraphicBase.Destroy()
	for _, ob := range tiles[1:] {
		ob.Release()
	}
	vl.tiles = nil
	vl.chunks = nil
}
