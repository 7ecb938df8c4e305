// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func featureNames(g Graphic) []string {
	names := make([]string, 0, len(g.Features()))
	for _, f := range g.Features() {
		names = append(names, f.FeatureName())
	}
	return names
}

func TestGraphicFeatureRegistry(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 5, 2}, nil)
	assert.NoError(t, err)

	assert.Equal(t, []string{"data", "colors", "thickness", "visible", "offset", "deleted"}, featureNames(ln))
	assert.Same(t, features.Feature(ln.Colors()), ln.Feature("colors"))
	assert.Nil(t, ln.Feature("nope"))
	assert.Equal(t, "line", ln.Name())
}

func TestGraphicAddEventHandlerRouting(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2, 3}, nil)
	assert.NoError(t, err)

	var got []string
	err = ln.AddEventHandler(func(ev features.Event) {
		got = append(got, ev.FeatureName())
	}, "colors", "thickness")
	assert.NoError(t, err)

	assert.NoError(t, ln.Colors().Set(features.At(0), features.ColorName("r")))
	assert.NoError(t, ln.Thickness().Set(5))
	assert.NoError(t, ln.Positions().Set(features.At(0), features.YValues{9}))
	assert.Equal(t, []string{"colors", "thickness"}, got)

	err = ln.AddEventHandler(func(ev features.Event) {}, "nope")
	assert.True(t, errors.Is(err, features.ErrEnum))
}

func TestGraphicAddEventHandlerAllFeatures(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2}, nil)
	assert.NoError(t, err)

	var got []string
	assert.NoError(t, ln.AddEventHandler(func(ev features.Event) {
		got = append(got, ev.FeatureName())
	}))

	assert.NoError(t, ln.Positions().Set(features.At(1), features.YValues{4}))
	assert.NoError(t, ln.Visible().Set(false))
	assert.Equal(t, []string{"data", "visible"}, got)
}

func TestGraphicVisibleAndOffset(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2}, nil)
	assert.NoError(t, err)
	ob := ln.Renderable().(*offscreen.Object)

	assert.True(t, ob.Visible)
	assert.NoError(t, ln.Visible().Set(false))
	assert.False(t, ob.Visible)

	assert.NoError(t, ln.Offset().Set([3]float32{1, 2, 3}))
	assert.Equal(t, [3]float32{1, 2, 3}, ob.Offset)
}

func TestGraphicDestroy(t *testing.T) {
	dv := offscreen.NewDevice()
	ln, err := NewLine(dv, "line", features.YValues{1, 2}, &LineOptions{Cmap: "jet"})
	assert.NoError(t, err)
	ob := ln.Renderable().(*offscreen.Object)

	var deleted []bool
	assert.NoError(t, ln.AddEventHandler(func(ev features.Event) {
		deleted = append(deleted, ev.(*features.BoolEvent).Value)
	}, "deleted"))

	ln.Destroy()
	assert.Equal(t, []bool{true}, deleted)
	assert.True(t, ln.Destroyed())
	assert.Empty(t, ln.Features())
	assert.True(t, ob.Released)
	// the colors buffer is shared with the cmap feature; both
	// references are gone after destroy
	for _, bf := range dv.Buffers {
		assert.True(t, bf.Released, bf.Label)
	}

	// destroy is idempotent and does not re-dispatch deleted
	ln.Destroy()
	assert.Equal(t, []bool{true}, deleted)
}
