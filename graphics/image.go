// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"
	"image"
	"sort"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"github.com/anthonynsimon/bild/effect"
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat"
)

// ImageOptions are the optional settings for [NewImage].
type ImageOptions struct {

	// Vmin and Vmax are the data values mapped to the colormap
	// endpoints. When both are zero the range is estimated from the
	// data with [QuickMinMax].
	Vmin float32
	Vmax float32

	// Cmap is the colormap name. Empty uses
	// [gpuplot.Current].Colormap.
	Cmap string

	// Interpolation is the data sampling filter, "nearest" or
	// "linear". Empty means "nearest".
	Interpolation string

	// CmapInterpolation is the colormap lookup filter. Empty means
	// "linear".
	CmapInterpolation string
}

// Image is a 2D scalar image graphic. The data lives in a chunked
// [features.TextureArray]; each chunk renders as one tile object
// positioned at the chunk's start, so the tiles together cover the
// full array seamlessly. Display mapping (value range, colormap,
// filtering) is shared by all tiles through one material.
type Image struct {
	GraphicBase

	data   *features.TextureArray
	chunks []features.Chunk
	tiles  []render.Object

	vmin              *features.FloatValue
	vmax              *features.FloatValue
	cmap              *features.EnumValue
	interpolation     *features.EnumValue
	cmapInterpolation *features.EnumValue
}

var _ Graphic = (*Image)(nil)

// NewImage builds an image graphic from the given data, which must
// be non-empty and rectangular.
func NewImage(dv render.Device, name string, data [][]float32, opts *ImageOptions) (*Image, error) {
	if opts == nil {
		opts = &ImageOptions{}
	}
	im := &Image{}
	ta, err := features.NewTextureArray(textureDevice(dv), im, name, data)
	if err != nil {
		return nil, err
	}
	im.data = ta
	for ck := range ta.Chunks() {
		ob := dv.NewObject(fmt.Sprintf("%s[%d,%d]", name, ck.Index[0], ck.Index[1]), render.ImageTile)
		ob.SetTexture(ck.Texture)
		im.chunks = append(im.chunks, ck)
		im.tiles = append(im.tiles, ob)
	}
	im.initWith(dv, name, im.tiles[0])
	for _, ob := range im.tiles[1:] {
		ob.SetMaterial(im.material)
	}
	im.register(ta)

	im.applyVisible = func(on bool) error {
		for _, ob := range im.tiles {
			ob.SetVisible(on)
		}
		return nil
	}
	im.applyOffset = func(v [3]float32) error {
		for i, ob := range im.tiles {
			ck := im.chunks[i]
			ob.SetOffset(v[0]+float32(ck.Start[1]), v[1]+float32(ck.Start[0]), v[2])
		}
		return nil
	}

	if err := im.initDisplay(opts); err != nil {
		im.Destroy()
		return nil, err
	}
	if err := im.initCommon(); err != nil {
		im.Destroy()
		return nil, err
	}
	return im, nil
}

// NewImageFromImage builds an image graphic from a standard library
// image, converted to grayscale with values in 0-1.
func NewImageFromImage(dv render.Device, name string, src image.Image, opts *ImageOptions) (*Image, error) {
	gray := effect.Grayscale(src)
	b := gray.Bounds()
	rows := make([][]float32, b.Dy())
	for i := range rows {
		row := make([]float32, b.Dx())
		for j := range row {
			row[j] = float32(gray.RGBAAt(b.Min.X+j, b.Min.Y+i).R) / 255
		}
		rows[i] = row
	}
	return NewImage(dv, name, rows, opts)
}

// initDisplay builds the value-range, colormap, and filtering
// features, all applied through the shared material.
func (im *Image) initDisplay(opts *ImageOptions) error {
	vmin, vmax := opts.Vmin, opts.Vmax
	if vmin == 0 && vmax == 0 {
		vmin, vmax = QuickMinMax(im.data.Data())
	}
	var err error
	im.vmin, err = features.NewFloatValue("vmin", im, func(v float32) error {
		return im.material.Set("vmin", v)
	}, math32.Inf(-1), math32.Inf(1), vmin)
	if err != nil {
		return err
	}
	im.register(im.vmin)

	im.vmax, err = features.NewFloatValue("vmax", im, func(v float32) error {
		return im.material.Set("vmax", v)
	}, math32.Inf(-1), math32.Inf(1), vmax)
	if err != nil {
		return err
	}
	im.register(im.vmax)

	cm := opts.Cmap
	if cm == "" {
		cm = gpuplot.Current.Colormap
	}
	im.cmap, err = features.NewEnumValue("cmap", im, colormap.AvailableMapsList(), func(s string) error {
		return im.material.Set("cmap", s)
	}, cm)
	if err != nil {
		return err
	}
	im.register(im.cmap)

	interp := opts.Interpolation
	if interp == "" {
		interp = "nearest"
	}
	im.interpolation, err = features.NewEnumValue("interpolation", im, features.InterpolationModes, func(s string) error {
		return im.material.Set("interpolation", s)
	}, interp)
	if err != nil {
		return err
	}
	im.register(im.interpolation)

	ci := opts.CmapInterpolation
	if ci == "" {
		ci = "linear"
	}
	im.cmapInterpolation, err = features.NewEnumValue("cmap_interpolation", im, features.InterpolationModes, func(s string) error {
		return im.material.Set("cmap_interpolation", s)
	}, ci)
	if err != nil {
		return err
	}
	im.register(im.cmapInterpolation)
	return nil
}

// Data is the chunked texture feature holding the image values.
func (im *Image) Data() *features.TextureArray { return im.data }

// Tiles returns the tile objects, one per chunk, in [features.Chunk]
// iteration order.
func (im *Image) Tiles() []render.Object { return im.tiles }

// Vmin is the lower end of the displayed value range.
func (im *Image) Vmin() *features.FloatValue { return im.vmin }

// Vmax is the upper end of the displayed value range.
func (im *Image) Vmax() *features.FloatValue { return im.vmax }

// Cmap is the colormap name feature.
func (im *Image) Cmap() *features.EnumValue { return im.cmap }

// Interpolation is the data sampling filter feature.
func (im *Image) Interpolation() *features.EnumValue { return im.interpolation }

// CmapInterpolation is the colormap lookup filter feature.
func (im *Image) CmapInterpolation() *features.EnumValue { return im.cmapInterpolation }

// ResetVminVmax re-estimates the displayed value range from the
// current data with [QuickMinMax].
func (im *Image) ResetVminVmax() error {
	mn, mx := QuickMinMax(im.data.Data())
	if err := im.vmin.Set(mn); err != nil {
		return err
	}
	return im.vmax.Set(mx)
}

// Pick hit-tests the given position against every tile. A tile hit
// reports coordinates local to its chunk; Pick re-bases them by the
// chunk start so the result indexes the full data array.
func (im *Image) Pick(x, y float32) (render.PickInfo, bool) {
	for i, ob := range im.tiles {
		pi, ok := ob.Pick(x, y)
		if !ok {
			continue
		}
		ck := im.chunks[i]
		pi.Coord[0] += ck.Start[1]
		pi.Coord[1] += ck.Start[0]
		pi.Coord[2] += ck.Start[2]
		return pi, true
	}
	return render.PickInfo{}, false
}

func (im *Image) Destroy() {
	if im.Destroyed() {
		return
	}
	tiles := im.tiles
	im.GraphicBase.Destroy()
	for _, ob := range tiles[1:] {
		ob.Release()
	}
	im.tiles = nil
	im.chunks = nil
}

// QuickMinMax estimates a display range for the given values as the
// 1st and 99th percentiles of a strided subsample of at most about
// 10000 values, skipping NaNs. Empty or all-NaN data yields (0, 1).
func QuickMinMax(vals []float32) (vmin, vmax float32) {
	const sample = 10000
	stride := max(1, len(vals)/sample)
	sub := make([]float64, 0, min(len(vals), sample+1))
	for i := 0; i < len(vals); i += stride {
		v := vals[i]
		if math32.IsNaN(v) {
			continue
		}
		sub = append(sub, float64(v))
	}
	if len(sub) == 0 {
		return 0, 1
	}
	sort.Float64s(sub)
	vmin = float32(stat.Quantile(0.01, stat.Empirical, sub, nil))
	vmax = float32(stat.Quantile(0.99, stat.Empirical, sub, nil))
	return vmin, vmax
}

// limitDevice caps the texture limits a device reports, implementing
// the [gpuplot.Settings].TextureLimit override.
type limitDevice struct {
	render.Device
	lim render.Limits
}

func (ld *limitDevice) Limits() render.Limits { return ld.lim }

// textureDevice returns dv, wrapped to cap its texture limits when
// [gpuplot.Current].TextureLimit is set.
func textureDevice(dv render.Device) render.Device {
	tl := gpuplot.Current.TextureLimit
	if tl <= 0 {
		return dv
	}
	lim := dv.Limits()
	lim.MaxTextureDimension2D = min(lim.MaxTextureDimension2D, tl)
	lim.MaxTextureDimension3D = min(lim.MaxTextureDimension3D, tl)
	return &limitDevice{Device: dv, lim: lim}
}
