// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides the float32 RGBA color type used in GPU
// vertex buffers, and parsing of user color specifications from
// strings, standard [color.Color] values, and numeric tuples.
package colors

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/gpuplot/base/errors"
	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
)

// RGBA is a color with float32 components in the 0-1 range,
// with straight (non-premultiplied) alpha. This is the layout
// uploaded directly to per-vertex GPU color buffers, so it is an
// array: c[:] is the 4-element row written to a color buffer.
type RGBA [4]float32

// shortNames are the matplotlib-style single letter color codes.
var shortNames = map[string]color.RGBA{
	"r": {255, 0, 0, 255},
	"g": {0, 128, 0, 255},
	"b": {0, 0, 255, 255},
	"c": {0, 255, 255, 255},
	"m": {255, 0, 255, 255},
	"y": {255, 255, 0, 255},
	"k": {0, 0, 0, 255},
	"w": {255, 255, 255, 255},
}

// New returns a color from the given 0-1 components.
func New(r, g, b, a float32) RGBA {
	return RGBA{r, g, b, a}
}

// FromColor returns a color from the given [color.Color] value.
func FromColor(c color.Color) RGBA {
	if c == nil {
		return RGBA{}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA{}
	}
	// un-premultiply so components are straight alpha
	af := float32(a) / 0xffff
	return RGBA{
		float32(r) / float32(a),
		float32(g) / float32(a),
		float32(b) / float32(a),
		af,
	}
}

// FromName returns the color with the given CSS standard color name
// or matplotlib-style single letter code (r, g, b, c, m, y, k, w).
// It returns an error if the name is not found.
func FromName(name string) (RGBA, error) {
	if c, ok := shortNames[name]; ok {
		return FromColor(color.NRGBA(c)), nil
	}
	c, ok := colornames.Map[name]
	if !ok {
		return RGBA{}, errors.New("colors.FromName: name not found: " + name)
	}
	return FromColor(color.NRGBA{c.R, c.G, c.B, c.A}), nil
}

// FromHex parses the given hex color string in one of the formats
// #RGB, #RRGGBB, or #RRGGBBAA (with or without the leading #)
// and returns the resulting color.
func FromHex(hex string) (RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b, a int
	a = 255
	if len(hex) == 3 {
		format := "%1x%1x%1x"
		fmt.Sscanf(hex, format, &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
	} else if len(hex) == 6 {
		format := "%02x%02x%02x"
		fmt.Sscanf(hex, format, &r, &g, &b)
	} else if len(hex) == 8 {
		format := "%02x%02x%02x%02x"
		fmt.Sscanf(hex, format, &r, &g, &b, &a)
	} else {
		return RGBA{}, errors.New("colors.FromHex: could not process: " + hex)
	}
	return FromColor(color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}), nil
}

// FromString returns a color value from the given string.
// It accepts hex values, CSS standard color names, single letter
// codes (r, g, b, c, m, y, k, w), and the functional notations
// rgb(r, g, b) and rgba(r, g, b, a) with 0-255 components.
func FromString(str string) (RGBA, error) {
	if len(str) == 0 {
		return RGBA{}, errors.New("colors.FromString: empty string")
	}
	lstr := strings.ToLower(strings.TrimSpace(str))
	switch {
	case lstr[0] == '#':
		return FromHex(lstr)
	case strings.HasPrefix(lstr, "rgba("):
		val := strings.TrimRight(lstr[5:], ")")
		var r, g, b, a int
		fmt.Sscanf(val, "%d,%d,%d,%d", &r, &g, &b, &a)
		return FromColor(color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}), nil
	case strings.HasPrefix(lstr, "rgb("):
		val := strings.TrimRight(lstr[4:], ")")
		var r, g, b int
		fmt.Sscanf(val, "%d,%d,%d", &r, &g, &b)
		return FromColor(color.NRGBA{uint8(r), uint8(g), uint8(b), 255}), nil
	default:
		return FromName(lstr)
	}
}

// FromAny returns a color from the given value of any type.
// It handles strings per [FromString], [color.Color] values,
// [RGBA] values, and float32 / float64 tuples of length 3 or 4
// (slices or arrays) with 0-1 components.
func FromAny(val any) (RGBA, error) {
	switch v := val.(type) {
	case RGBA:
		return v.validate()
	case string:
		return FromString(v)
	case [3]float32:
		return RGBA{v[0], v[1], v[2], 1}.validate()
	case [4]float32:
		return RGBA(v).validate()
	case []float32:
		return fromSlice(v)
	case []float64:
		f := make([]float32, len(v))
		for i, c := range v {
			f[i] = float32(c)
		}
		return fromSlice(f)
	case color.Color:
		return FromColor(v), nil
	default:
		return RGBA{}, fmt.Errorf("colors.FromAny: could not set color from value %v of type %T", val, val)
	}
}

func fromSlice(v []float32) (RGBA, error) {
	switch len(v) {
	case 3:
		return RGBA{v[0], v[1], v[2], 1}.validate()
	case 4:
		return RGBA{v[0], v[1], v[2], v[3]}.validate()
	}
	return RGBA{}, fmt.Errorf("colors.FromAny: need 3 or 4 components, got %d", len(v))
}

// validate rejects NaN components and clamps components to 0-1.
func (c RGBA) validate() (RGBA, error) {
	for i, v := range c {
		if math32.IsNaN(v) {
			return RGBA{}, fmt.Errorf("colors.FromAny: component %d is NaN", i)
		}
		if v < 0 {
			c[i] = 0
		} else if v > 1 {
			c[i] = 1
		}
	}
	return c, nil
}

// WithAlpha returns the color with the alpha component set to the
// given 0-1 value, leaving the other components unchanged.
func (c RGBA) WithAlpha(a float32) RGBA {
	c[3] = a
	return c
}

// NRGBA returns the color as a standard 8-bit [color.NRGBA] value.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{uint8n(c[0]), uint8n(c[1]), uint8n(c[2]), uint8n(c[3])}
}

// RGBA implements the [color.Color] interface,
// returning premultiplied 16-bit components.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String returns the color as an rgba(r, g, b, a) string
// with 8-bit components.
func (c RGBA) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", n.R, n.G, n.B, n.A)
}

func uint8n(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
