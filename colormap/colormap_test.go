// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colormap

import (
	"sort"
	"testing"

	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/minmax"
	"github.com/stretchr/testify/assert"
)

func TestMapEndpoints(t *testing.T) {
	cm, err := FromName("gray")
	assert.NoError(t, err)
	assert.Equal(t, colors.RGBA{0, 0, 0, 1}, cm.Map(0))
	assert.Equal(t, colors.RGBA{1, 1, 1, 1}, cm.Map(1))
	assert.Equal(t, colors.RGBA{0.5, 0.5, 0.5, 1}, cm.Map(0.5))

	// out of range clamps
	assert.Equal(t, colors.RGBA{0, 0, 0, 1}, cm.Map(-2))
	assert.Equal(t, colors.RGBA{1, 1, 1, 1}, cm.Map(3))
}

func TestFromName(t *testing.T) {
	for _, name := range []string{"viridis", "plasma", "magma", "inferno", "jet", "gray", "grey", "tab10"} {
		cm, err := FromName(name)
		assert.NoError(t, err, name)
		assert.NotEmpty(t, cm.Colors, name)
	}
	_, err := FromName("notamap")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	cm, err := FromName("viridis")
	assert.NoError(t, err)
	tbl := cm.Table(256)
	assert.Equal(t, 256, len(tbl))
	assert.Equal(t, cm.Map(0), tbl[0])
	assert.Equal(t, cm.Map(1), tbl[255])

	one := cm.Table(1)
	assert.Equal(t, cm.Map(0), one[0])
}

func TestIndexed(t *testing.T) {
	cm, err := FromName("tab10")
	assert.NoError(t, err)
	assert.True(t, cm.Indexed)
	c0 := cm.MapIndex(0)
	assert.Equal(t, c0, cm.MapIndex(10)) // wraps
	assert.Equal(t, cm.NoColor, cm.MapIndex(-1))
}

func TestMapValues(t *testing.T) {
	cm, err := FromName("gray")
	assert.NoError(t, err)
	vals := []float32{0, 5, 10}
	cs := cm.MapValues(vals, minmax.F32{Min: 0, Max: 10})
	assert.Equal(t, 3, len(cs))
	assert.Equal(t, colors.RGBA{0, 0, 0, 1}, cs[0])
	assert.Equal(t, colors.RGBA{0.5, 0.5, 0.5, 1}, cs[1])
	assert.Equal(t, colors.RGBA{1, 1, 1, 1}, cs[2])
}

func TestAvailableMapsList(t *testing.T) {
	sl := AvailableMapsList()
	assert.Contains(t, sl, "viridis")
	assert.Contains(t, sl, "jet")
	assert.True(t, sort.StringsAreSorted(sl))
}
