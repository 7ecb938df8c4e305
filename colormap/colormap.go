// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colormap provides standard color maps for mapping scalar
// values to colors, and lookup tables sampled from them for upload
// as GPU textures.
package colormap

import (
	"fmt"
	"sort"

	"cogentcore.org/gpuplot/base/errors"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/minmax"
)

// Map is a color map that maps a normalized 0-1 value to a color
// by linear interpolation between control colors. Indexed maps
// instead assign one discrete color per integer index, for
// qualitative categories.
type Map struct {

	// Name is the registered name of this map.
	Name string

	// Colors are the control colors, evenly spaced across 0-1
	// for continuous maps, or one per category for indexed maps.
	Colors []colors.RGBA

	// Indexed maps use [Map.MapIndex] and do not interpolate.
	Indexed bool

	// NoColor is returned for NaN or out-of-category values.
	NoColor colors.RGBA
}

// Map returns the color for the given normalized 0-1 value,
// interpolating linearly between the control colors.
// Values outside 0-1 are clamped.
func (cm *Map) Map(val float32) colors.RGBA {
	nc := len(cm.Colors)
	if nc == 0 {
		return cm.NoColor
	}
	if cm.Indexed {
		return cm.MapIndex(int(val))
	}
	if val != val { // NaN
		return cm.NoColor
	}
	if val <= 0 {
		return cm.Colors[0]
	}
	if val >= 1 {
		return cm.Colors[nc-1]
	}
	sc := val * float32(nc-1)
	lo := int(sc)
	t := sc - float32(lo)
	a := cm.Colors[lo]
	b := cm.Colors[lo+1]
	var c colors.RGBA
	for i := range 4 {
		c[i] = a[i] + t*(b[i]-a[i])
	}
	return c
}

// MapIndex returns the color for the given index, for indexed maps.
// Indexes wrap around the available colors.
func (cm *Map) MapIndex(idx int) colors.RGBA {
	nc := len(cm.Colors)
	if nc == 0 {
		return cm.NoColor
	}
	if idx < 0 {
		return cm.NoColor
	}
	return cm.Colors[idx%nc]
}

// Table returns n colors sampled evenly across the map,
// as uploaded to a colormap lookup texture.
func (cm *Map) Table(n int) []colors.RGBA {
	tbl := make([]colors.RGBA, n)
	if n == 1 {
		tbl[0] = cm.Map(0)
		return tbl
	}
	for i := range n {
		tbl[i] = cm.Map(float32(i) / float32(n-1))
	}
	return tbl
}

// MapValues maps each value through the map after normalizing it
// within the given range, returning one color per value.
func (cm *Map) MapValues(vals []float32, r minmax.F32) []colors.RGBA {
	cs := make([]colors.RGBA, len(vals))
	for i, v := range vals {
		cs[i] = cm.Map(r.NormValue(v))
	}
	return cs
}

// AvailableMaps is the registry of available color maps,
// initialized with the standard maps. Additional maps can be
// registered directly.
var AvailableMaps = map[string]*Map{}

// FromName returns the registered color map with the given name,
// or an error if no such map exists.
func FromName(name string) (*Map, error) {
	cm, ok := AvailableMaps[name]
	if !ok {
		return nil, fmt.Errorf("colormap.FromName: map not found: %s", name)
	}
	return cm, nil
}

// AvailableMapsList returns a sorted list of the registered map names.
func AvailableMapsList() []string {
	sl := make([]string, 0, len(AvailableMaps))
	for k := range AvailableMaps {
		sl = append(sl, k)
	}
	sort.Strings(sl)
	return sl
}

func hx(s string) colors.RGBA {
	return errors.Must1(colors.FromHex(s))
}

func init() {
	std := []*Map{
		{Name: "gray", Colors: []colors.RGBA{{0, 0, 0, 1}, {1, 1, 1, 1}}},
		{Name: "viridis", Colors: []colors.RGBA{
			hx("#440154"), hx("#472d7b"), hx("#3b528b"), hx("#2c728e"),
			hx("#21918c"), hx("#28ae80"), hx("#5ec962"), hx("#addc30"), hx("#fde725"),
		}},
		{Name: "plasma", Colors: []colors.RGBA{
			hx("#0d0887"), hx("#4c02a1"), hx("#7e03a8"), hx("#aa2395"),
			hx("#cc4778"), hx("#e66c5c"), hx("#f89540"), hx("#fdc527"), hx("#f0f921"),
		}},
		{Name: "magma", Colors: []colors.RGBA{
			hx("#000004"), hx("#1d1147"), hx("#51127c"), hx("#822681"),
			hx("#b73779"), hx("#e75263"), hx("#fc8961"), hx("#fec488"), hx("#fcfdbf"),
		}},
		{Name: "inferno", Colors: []colors.RGBA{
			hx("#000004"), hx("#1b0c42"), hx("#4b0c6b"), hx("#781c6d"),
			hx("#a52c60"), hx("#cf4446"), hx("#ed6925"), hx("#fb9a06"), hx("#fcffa4"),
		}},
		{Name: "jet", Colors: []colors.RGBA{
			{0, 0, 0.5, 1}, {0, 0, 1, 1}, {0, 0.5, 1, 1}, {0, 1, 1, 1},
			{0.5, 1, 0.5, 1}, {1, 1, 0, 1}, {1, 0.5, 0, 1}, {1, 0, 0, 1}, {0.5, 0, 0, 1},
		}},
		{Name: "hot", Colors: []colors.RGBA{
			{0, 0, 0, 1}, {1, 0, 0, 1}, {1, 1, 0, 1}, {1, 1, 1, 1},
		}},
		{Name: "bone", Colors: []colors.RGBA{
			{0, 0, 0, 1}, {0.32, 0.32, 0.45, 1}, {0.65, 0.78, 0.78, 1}, {1, 1, 1, 1},
		}},
		{Name: "cool", Colors: []colors.RGBA{{0, 1, 1, 1}, {1, 0, 1, 1}}},
		{Name: "spring", Colors: []colors.RGBA{{1, 0, 1, 1}, {1, 1, 0, 1}}},
		{Name: "summer", Colors: []colors.RGBA{{0, 0.5, 0.4, 1}, {1, 1, 0.4, 1}}},
		{Name: "autumn", Colors: []colors.RGBA{{1, 0, 0, 1}, {1, 1, 0, 1}}},
		{Name: "winter", Colors: []colors.RGBA{{0, 0, 1, 1}, {0, 1, 0.5, 1}}},
		{Name: "tab10", Indexed: true, Colors: []colors.RGBA{
			hx("#1f77b4"), hx("#ff7f0e"), hx("#2ca02c"), hx("#d62728"), hx("#9467bd"),
			hx("#8c564b"), hx("#e377c2"), hx("#7f7f7f"), hx("#bcbd22"), hx("#17becf"),
		}},
	}
	for _, m := range std {
		AvailableMaps[m.Name] = m
	}
	AvailableMaps["grey"] = AvailableMaps["gray"]
}
