// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minmax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	var r F32
	r.SetInfinity()
	assert.False(t, r.IsValid())
	for _, v := range []float32{2, -1, 5, 3} {
		r.FitValInRange(v)
	}
	assert.True(t, r.IsValid())
	assert.Equal(t, float32(-1), r.Min)
	assert.Equal(t, float32(5), r.Max)
	assert.Equal(t, float32(6), r.Range())
	assert.Equal(t, float32(2), r.Midpoint())
}

func TestNormValue(t *testing.T) {
	r := F32{Min: 2, Max: 6}
	assert.Equal(t, float32(0), r.NormValue(2))
	assert.Equal(t, float32(1), r.NormValue(6))
	assert.Equal(t, float32(0.5), r.NormValue(4))
	assert.Equal(t, float32(0), r.NormValue(-10))
	assert.Equal(t, float32(1), r.NormValue(100))

	zero := F32{Min: 3, Max: 3}
	assert.Equal(t, float32(0), zero.NormValue(3))
}

func TestClamp(t *testing.T) {
	r := F32{Min: 0, Max: 10}
	assert.Equal(t, float32(0), r.ClampValue(-5))
	assert.Equal(t, float32(10), r.ClampValue(15))
	assert.Equal(t, float32(7), r.ClampValue(7))
	assert.True(t, r.InRange(7))
	assert.False(t, r.InRange(-1))
}
