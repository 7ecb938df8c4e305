// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"errors"
	"testing"

	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

func TestMeshIndices(t *testing.T) {
	dv := offscreen.NewDevice()
	xf, err := NewMeshIndices(dv, nil, 4, [][3]uint32{{0, 1, 2}, {0, 2, 3}})
	assert.NoError(t, err)
	assert.Equal(t, 2, xf.N())

	got, err := xf.Get(All())
	assert.NoError(t, err)
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}}, got)
}

func TestMeshIndicesSet(t *testing.T) {
	dv := offscreen.NewDevice()
	xf, err := NewMeshIndices(dv, nil, 4, [][3]uint32{{0, 1, 2}, {0, 2, 3}})
	assert.NoError(t, err)
	gpu := dv.Buffers[0]
	gpu.ResetUploads()

	var events []Event
	xf.AddHandler(func(ev Event) { events = append(events, ev) })

	assert.NoError(t, xf.Set(At(1), [][3]uint32{{1, 2, 3}}))
	got, _ := xf.Get(All())
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {1, 2, 3}}, got)
	assert.Equal(t, []offscreen.Upload{{Offset: 12, N: 12}}, gpu.Uploads)

	assert.Len(t, events, 1)
	bev := events[0].(*BufferEvent[uint32])
	assert.Equal(t, "indices", bev.FeatureName())
	assert.Equal(t, At(1), bev.Key)
}

func TestMeshIndicesRangeCheck(t *testing.T) {
	dv := offscreen.NewDevice()

	_, err := NewMeshIndices(dv, nil, 3, [][3]uint32{{0, 1, 3}})
	assert.True(t, errors.Is(err, ErrIndex))

	xf, err := NewMeshIndices(dv, nil, 3, [][3]uint32{{0, 1, 2}})
	assert.NoError(t, err)

	err = xf.Set(At(0), [][3]uint32{{0, 1, 5}})
	assert.True(t, errors.Is(err, ErrIndex))
	got, _ := xf.Get(All())
	assert.Equal(t, [][3]uint32{{0, 1, 2}}, got)
}
