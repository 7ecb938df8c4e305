// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"testing"

	"cogentcore.org/gpuplot/render"
	"cogentcore.org/gpuplot/render/offscreen"
	"github.com/stretchr/testify/assert"
)

// testOwner is a minimal Owner for event plumbing tests.
type testOwner struct {
	name string
	obj  render.Object
}

func newTestOwner(dv *offscreen.Device, name string) *testOwner {
	return &testOwner{name: name, obj: dv.NewObject(name, render.Points)}
}

func (o *testOwner) Name() string              { return o.name }
func (o *testOwner) Renderable() render.Object { return o.obj }

func TestHandlerOrder(t *testing.T) {
	dv := offscreen.NewDevice()
	sf, err := NewPointSizes(dv, nil, 3, SizeValue(1))
	assert.NoError(t, err)

	order := []int{}
	sf.AddHandler(func(ev Event) { order = append(order, 1) })
	sf.AddHandler(func(ev Event) { order = append(order, 2) })
	sf.AddHandler(func(ev Event) { order = append(order, 1) })

	assert.NoError(t, sf.Set(All(), SizeValue(2)))
	assert.Equal(t, []int{1, 2, 1}, order)
	assert.Equal(t, 3, sf.HandlerCount())

	sf.RemoveHandlers()
	assert.Equal(t, 0, sf.HandlerCount())
	order = order[:0]
	assert.NoError(t, sf.Set(All(), SizeValue(3)))
	assert.Empty(t, order)
}

func TestEventCarriesOwner(t *testing.T) {
	dv := offscreen.NewDevice()
	ow := newTestOwner(dv, "scatter0")
	sf, err := NewPointSizes(dv, ow, 2, SizeValue(4))
	assert.NoError(t, err)

	var got Event
	sf.AddHandler(func(ev Event) { got = ev })
	assert.NoError(t, sf.Set(At(0), SizeValue(8)))
	assert.NotNil(t, got)
	assert.Equal(t, "sizes", got.FeatureName())
	assert.Equal(t, ow, got.Graphic())
	assert.Equal(t, ow.obj, got.Renderable())
}

// A handler mutating its own feature must be silently dropped, so one
// external set produces exactly one event and no recursion.
func TestReentrantSelfSet(t *testing.T) {
	dv := offscreen.NewDevice()
	sf, err := NewPointSizes(dv, nil, 3, SizeValue(1))
	assert.NoError(t, err)

	n := 0
	sf.AddHandler(func(ev Event) {
		n++
		assert.NoError(t, sf.Set(All(), SizeValue(99)))
	})
	assert.NoError(t, sf.Set(All(), SizeValue(2)))
	assert.Equal(t, 1, n)

	// the re-entrant write never happened
	vals, err := sf.Get(All())
	assert.NoError(t, err)
	assert.Equal(t, []float32{2, 2, 2}, vals)
}

// Two graphics mirroring each other's feature terminate after one
// round: the echo back into the originating feature is re-entrant and
// drops.
func TestReentrantMutualSet(t *testing.T) {
	dv := offscreen.NewDevice()
	a, err := NewPointSizes(dv, nil, 2, SizeValue(1))
	assert.NoError(t, err)
	b, err := NewPointSizes(dv, nil, 2, SizeValue(1))
	assert.NoError(t, err)

	na, nb := 0, 0
	a.AddHandler(func(ev Event) {
		na++
		bev := ev.(*BufferEvent[float32])
		assert.NoError(t, b.Set(bev.Key, SizeValue(bev.Value[0][0])))
	})
	b.AddHandler(func(ev Event) {
		nb++
		bev := ev.(*BufferEvent[float32])
		assert.NoError(t, a.Set(bev.Key, SizeValue(bev.Value[0][0])))
	})

	assert.NoError(t, a.Set(All(), SizeValue(5)))
	assert.Equal(t, 1, na)
	assert.Equal(t, 1, nb)

	av, _ := a.Get(All())
	bv, _ := b.Get(All())
	assert.Equal(t, []float32{5, 5}, av)
	assert.Equal(t, []float32{5, 5}, bv)
}

// The guard must clear even when a handler panics, so the feature
// accepts writes again afterwards.
func TestGuardResetsAfterPanic(t *testing.T) {
	dv := offscreen.NewDevice()
	sf, err := NewPointSizes(dv, nil, 2, SizeValue(1))
	assert.NoError(t, err)

	sf.AddHandler(func(ev Event) { panic("handler boom") })
	assert.Panics(t, func() { sf.Set(All(), SizeValue(2)) })

	sf.RemoveHandlers()
	assert.NoError(t, sf.Set(All(), SizeValue(3)))
	vals, err := sf.Get(All())
	assert.NoError(t, err)
	assert.Equal(t, []float32{3, 3}, vals)
}
