// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestPositionsFromYValues(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 3, YValues{1, 5, 2})
	assert.NoError(t, err)
	assert.Equal(t, 3, pf.N())

	got, err := pf.Get(All())
	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1, 0}, {1, 5, 0}, {2, 2, 0}}, got)

	// construction uploads the full buffer once
	assert.Equal(t, []offscreen.Upload{{Offset: 0, N: 3 * 3 * 4}}, dv.Buffers[0].Uploads)
}

func TestPositionsFromPoints(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 2, PointsXY{{3, 4}, {5, 6}})
	assert.NoError(t, err)
	got, _ := pf.Get(All())
	assert.Equal(t, [][]float32{{3, 4, 0}, {5, 6, 0}}, got)

	pf, err = NewVertexPositions(dv, nil, 2, PointsXYZ{{1, 2, 3}, {4, 5, 6}})
	assert.NoError(t, err)
	got, _ = pf.Get(All())
	assert.Equal(t, [][]float32{{1, 2, 3}, {4, 5, 6}}, got)
}

func TestPositionsConstructionErrors(t *testing.T) {
	dv := offscreen.NewDevice()

	// no broadcast at construction: row count must match exactly
	_, err := NewVertexPositions(dv, nil, 3, YValues{1})
	assert.True(t, errors.Is(err, ErrShape))

	_, err = NewVertexPositions(dv, nil, 3, PointsXY{{1, 2}})
	assert.True(t, errors.Is(err, ErrShape))

	_, err = NewVertexPositions(dv, nil, 1, YValues{math32.NaN()})
	assert.True(t, errors.Is(err, ErrValue))

	_, err = NewVertexPositions(dv, nil, 1, PointsXY{{math32.Inf(1), 0}})
	assert.True(t, errors.Is(err, ErrValue))
}

func TestPositionsSet(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 4, YValues{0, 0, 0, 0})
	assert.NoError(t, err)
	gpu := dv.Buffers[0]
	gpu.ResetUploads()

	var events []Event
	pf.AddHandler(func(ev Event) { events = append(events, ev) })

	err = pf.Set(Span(1, 3), YValues{7, 8})
	assert.NoError(t, err)

	got, _ := pf.Get(All())
	// y values rebase x on the destination row index
	assert.Equal(t, [][]float32{{0, 0, 0}, {1, 7, 0}, {2, 8, 0}, {3, 0, 0}}, got)
	assert.Equal(t, []offscreen.Upload{{Offset: 1 * 3 * 4, N: 2 * 3 * 4}}, gpu.Uploads)

	assert.Len(t, events, 1)
	bev := events[0].(*BufferEvent[float32])
	assert.Equal(t, "data", bev.FeatureName())
	assert.Equal(t, Span(1, 3), bev.Key)
	assert.Equal(t, [][]float32{{1, 7, 0}, {2, 8, 0}}, bev.Value)
}

func TestPositionsSetBroadcast(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 3, YValues{0, 0, 0})
	assert.NoError(t, err)

	assert.NoError(t, pf.Set(All(), PointsXYZ{{1, 2, 3}}))
	got, _ := pf.Get(All())
	assert.Equal(t, [][]float32{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}, got)

	// a broadcast y still rebases x per destination row
	assert.NoError(t, pf.Set(List(0, 2), YValues{9}))
	got, _ = pf.Get(All())
	assert.Equal(t, [][]float32{{0, 9, 0}, {1, 2, 3}, {2, 9, 0}}, got)
}

func TestPositionsSetErrors(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 3, YValues{1, 2, 3})
	assert.NoError(t, err)
	gpu := dv.Buffers[0]
	gpu.ResetUploads()

	var n int
	pf.AddHandler(func(ev Event) { n++ })

	err = pf.Set(All(), YValues{1, 2})
	assert.True(t, errors.Is(err, ErrShape))
	err = pf.Set(At(5), YValues{1})
	assert.True(t, errors.Is(err, ErrIndex))

	// failed writes neither upload nor notify
	assert.Empty(t, gpu.Uploads)
	assert.Equal(t, 0, n)
}

func TestPositionsDestroy(t *testing.T) {
	dv := offscreen.NewDevice()
	pf, err := NewVertexPositions(dv, nil, 2, YValues{1, 2})
	assert.NoError(t, err)
	pf.AddHandler(func(ev Event) {})

	pf.Destroy()
	assert.True(t, dv.Buffers[0].Released)
	assert.Equal(t, 0, pf.HandlerCount())
}
