// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minmax provides a struct that holds Min and Max range values,
// used for image value ranges (vmin / vmax), selection limits,
// and colormap normalization.
package minmax

import "github.com/chewxy/math32"

// F32 represents a min / max range for float32 values.
// Supports clipping, renormalizing, etc.
type F32 struct {
	Min float32
	Max float32
}

// Set sets the min and max values.
func (mr *F32) Set(mn, mx float32) {
	mr.Min = mn
	mr.Max = mx
}

// SetInfinity sets the Min to +MaxFloat32, Max to -MaxFloat32,
// suitable for iteratively calling [F32.FitValInRange].
func (mr *F32) SetInfinity() {
	mr.Min = math32.MaxFloat32
	mr.Max = -math32.MaxFloat32
}

// IsValid returns true if Min <= Max.
func (mr *F32) IsValid() bool {
	return mr.Min <= mr.Max
}

// InRange tests whether value is within the range (>= Min and <= Max).
func (mr *F32) InRange(val float32) bool {
	return val >= mr.Min && val <= mr.Max
}

// Range returns Max - Min.
func (mr *F32) Range() float32 {
	return mr.Max - mr.Min
}

// Scale returns 1 / Range, or 0 if Range is 0.
func (mr *F32) Scale() float32 {
	r := mr.Range()
	if r != 0 {
		return 1 / r
	}
	return 0
}

// Midpoint returns the point halfway between Min and Max.
func (mr *F32) Midpoint() float32 {
	return 0.5 * (mr.Max + mr.Min)
}

// FitValInRange adjusts our Min, Max to fit the given value within the
// range, returning true if an adjustment was needed.
func (mr *F32) FitValInRange(val float32) bool {
	adj := false
	if val < mr.Min {
		mr.Min = val
		adj = true
	}
	if val > mr.Max {
		mr.Max = val
		adj = true
	}
	return adj
}

// ClampValue clamps the given value within the Min, Max range.
func (mr *F32) ClampValue(val float32) float32 {
	if val < mr.Min {
		return mr.Min
	}
	if val > mr.Max {
		return mr.Max
	}
	return val
}

// NormValue returns the given value normalized to the 0-1 range defined
// by Min, Max, clamped to 0-1. A zero range returns 0.
func (mr *F32) NormValue(val float32) float32 {
	s := mr.Scale()
	if s == 0 {
		return 0
	}
	v := (val - mr.Min) * s
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
