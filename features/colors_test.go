// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func TestColorsBroadcastName(t *testing.T) {
	dv := offscreen.NewDevice()
	cf, err := NewVertexColors(dv, nil, 5, ColorName("r"))
	assert.NoError(t, err)
	assert.Equal(t, 5, cf.N())

	got, err := cf.Get(All())
	assert.NoError(t, err)
	red := colors.RGBA{1, 0, 0, 1}
	assert.Equal(t, []colors.RGBA{red, red, red, red, red}, got)
}

func TestColorsSetOneRow(t *testing.T) {
	dv := offscreen.NewDevice()
	cf, err := NewVertexColors(dv, nil, 5, ColorName("r"))
	assert.NoError(t, err)
	gpu := dv.Buffers[0]
	gpu.ResetUploads()

	var events []Event
	cf.AddHandler(func(ev Event) { events = append(events, ev) })

	assert.NoError(t, cf.Set(At(2), ColorName("b")))

	got, _ := cf.Get(All())
	red := colors.RGBA{1, 0, 0, 1}
	blue := colors.RGBA{0, 0, 1, 1}
	assert.Equal(t, []colors.RGBA{red, red, blue, red, red}, got)

	// exactly one upload, covering only row 2
	assert.Equal(t, []offscreen.Upload{{Offset: 2 * 4 * 4, N: 4 * 4}}, gpu.Uploads)

	assert.Len(t, events, 1)
	cev := events[0].(*ColorEvent)
	assert.Equal(t, "colors", cev.FeatureName())
	assert.Equal(t, At(2), cev.Key)
	assert.Equal(t, []colors.RGBA{blue}, cev.Value)
}

func TestColorsPerRowInputs(t *testing.T) {
	dv := offscreen.NewDevice()
	cf, err := NewVertexColors(dv, nil, 3, ColorNames{"red", "#00FF00", "rgba(0, 0, 255, 128)"})
	assert.NoError(t, err)
	got, _ := cf.Get(All())
	assert.Equal(t, colors.RGBA{1, 0, 0, 1}, got[0])
	assert.Equal(t, colors.RGBA{0, 1, 0, 1}, got[1])
	assert.Equal(t, float32(1), got[2][2])
	assert.InDelta(t, 0.5, got[2][3], 0.01)

	cf, err = NewVertexColors(dv, nil, 2, ColorValues{{1, 1, 0, 1}, {0, 1, 1, 0.5}})
	assert.NoError(t, err)
	got, _ = cf.Get(All())
	assert.Equal(t, []colors.RGBA{{1, 1, 0, 1}, {0, 1, 1, 0.5}}, got)
}

func TestColorsLabeled(t *testing.T) {
	dv := offscreen.NewDevice()
	cf, err := NewVertexColors(dv, nil, 4, Labeled{Labels: []int{0, 1, 0, 1}, Cmap: "tab10"})
	assert.NoError(t, err)
	got, _ := cf.Get(All())
	assert.Equal(t, got[0], got[2])
	assert.Equal(t, got[1], got[3])
	assert.NotEqual(t, got[0], got[1])

	_, err = NewVertexColors(dv, nil, 2, Labeled{Labels: []int{0, 1}, Cmap: "nosuch"})
	assert.True(t, errors.Is(err, ErrEnum))

	_, err = NewVertexColors(dv, nil, 2, Labeled{Labels: []int{0, -1}, Cmap: "tab10"})
	assert.True(t, errors.Is(err, ErrValue))
}

func TestColorsErrors(t *testing.T) {
	dv := offscreen.NewDevice()

	_, err := NewVertexColors(dv, nil, 3, ColorNames{"red"})
	assert.True(t, errors.Is(err, ErrShape))

	_, err = NewVertexColors(dv, nil, 2, ColorName("notacolor"))
	assert.Error(t, err)

	cf, err := NewVertexColors(dv, nil, 3, ColorName("white"))
	assert.NoError(t, err)
	var n int
	cf.AddHandler(func(ev Event) { n++ })

	err = cf.Set(All(), ColorValues{{1, 0, 0, 1}})
	assert.True(t, errors.Is(err, ErrShape))
	err = cf.Set(Span(0, 9), ColorName("red"))
	assert.True(t, errors.Is(err, ErrIndex))
	assert.Equal(t, 0, n)
}

func TestColorsSetMaskBroadcast(t *testing.T) {
	dv := offscreen.NewDevice()
	cf, err := NewVertexColors(dv, nil, 4, ColorName("black"))
	assert.NoError(t, err)
	gpu := dv.Buffers[0]
	gpu.ResetUploads()

	m := Mask([]bool{true, false, false, true})
	assert.NoError(t, cf.Set(m, ColorName("green")))

	got, _ := cf.Get(All())
	green, _ := colors.FromName("green")
	black := colors.RGBA{0, 0, 0, 1}
	assert.Equal(t, []colors.RGBA{green, black, black, green}, got)

	// scattered mask rows upload one at a time
	assert.Equal(t, []offscreen.Upload{
		{Offset: 0, N: 16},
		{Offset: 3 * 16, N: 16},
	}, gpu.Uploads)
}
