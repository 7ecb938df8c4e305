// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"github.com/chewxy/math32"
)

// AtlasTileSize is the pixel edge of one marker tile in the atlas.
const AtlasTileSize = 32

// MarkerAtlas holds signed-distance tiles for the marker shapes in
// [features.MarkerNames] code order, laid out as one row of square
// tiles in a single float texture. Distances are in tile half-extent
// units: negative inside the shape, positive outside, zero on the
// outline. Scatter objects sample the tile selected by the
// per-vertex marker code.
type MarkerAtlas struct {
	tex render.Texture
}

// NewMarkerAtlas renders the marker tiles and uploads them as one
// texture with the given label.
func NewMarkerAtlas(dv render.Device, label string) (*MarkerAtlas, error) {
	n := len(features.MarkerNames)
	ts := AtlasTileSize
	w := n * ts
	vals := make([]float32, w*ts)
	for code := range n {
		sd := markerSDF(uint32(code))
		for i := range ts {
			y := 1 - (float32(i)+0.5)*2/float32(ts)
			for j := range ts {
				x := (float32(j)+0.5)*2/float32(ts) - 1
				vals[i*w+code*ts+j] = sd(x, y)
			}
		}
	}
	tex, err := dv.NewTexture(label, render.FormatR32Float, w, ts, 1)
	if err != nil {
		return nil, err
	}
	if err := tex.Upload(render.ToBytes(vals)); err != nil {
		tex.Release()
		return nil, err
	}
	return &MarkerAtlas{tex: tex}, nil
}

// Texture returns the atlas texture.
func (ma *MarkerAtlas) Texture() render.Texture { return ma.tex }

// Release releases the atlas texture.
func (ma *MarkerAtlas) Release() {
	if ma.tex != nil {
		ma.tex.Release()
		ma.tex = nil
	}
}

// TileOrigin returns the pixel x offset of the tile for the given
// marker code.
func TileOrigin(code uint32) int {
	return int(code) * AtlasTileSize
}

// markerSDF returns the signed distance function for the given
// marker code, over tile coordinates in [-1, 1] with y up.
func markerSDF(code uint32) func(x, y float32) float32 {
	switch features.MarkerNames[code] {
	case "circle":
		return func(x, y float32) float32 {
			return math32.Hypot(x, y) - 0.8
		}
	case "square":
		return func(x, y float32) float32 {
			return sdSquare(x, y, 0.72)
		}
	case "diamond":
		return func(x, y float32) float32 {
			return sdDiamond(x, y, 0.9)
		}
	case "triangle":
		return sdTriangle
	case "cross":
		return func(x, y float32) float32 {
			// plus rotated 45 degrees
			const s = math32.Sqrt2 / 2
			return sdPlus(s*(x+y), s*(y-x))
		}
	case "plus":
		return sdPlus
	case "star":
		return func(x, y float32) float32 {
			// square and diamond union: an eight-pointed star
			return math32.Min(sdDiamond(x, y, 0.9), sdSquare(x, y, 0.5))
		}
	}
	return nil
}

func sdSquare(x, y, r float32) float32 {
	return math32.Max(math32.Abs(x), math32.Abs(y)) - r
}

// sdDiamond is the square rotated 45 degrees with vertices at
// distance r on the axes.
func sdDiamond(x, y, r float32) float32 {
	return (math32.Abs(x) + math32.Abs(y) - r) / math32.Sqrt2
}

// sdBar is a centered axis-aligned bar with half extents hx, hy.
func sdBar(x, y, hx, hy float32) float32 {
	return math32.Max(math32.Abs(x)-hx, math32.Abs(y)-hy)
}

func sdPlus(x, y float32) float32 {
	return math32.Min(sdBar(x, y, 0.85, 0.28), sdBar(x, y, 0.28, 0.85))
}

// sdTriangle is an up-pointing triangle, the intersection of the
// half planes below its three edges. Exact inside, approximate
// beyond the vertices.
func sdTriangle(x, y float32) float32 {
	const top, base, half = 0.85, -0.65, 0.8
	// bottom edge
	d := base - y
	// right edge from (half, base) to (0, top), outward normal
	ex, ey := float32(-half), float32(top-base)
	inv := 1 / math32.Hypot(ex, ey)
	nx, ny := ey*inv, -ex*inv
	d = math32.Max(d, nx*(x-half)+ny*(y-base))
	// left edge mirrors the right
	d = math32.Max(d, -nx*(x+half)+ny*(y-base))
	return d
}
