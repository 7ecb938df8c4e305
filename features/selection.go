// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"cogentcore.org/gpuplot/minmax"
)

// LinearSelection is the "selection" feature of a linear selector:
// one position along an axis, clamped to the selector's limits.
type LinearSelection struct {
	Uniform[float32]

	// Limits bound the selection; out-of-range values clamp.
	Limits minmax.F32
}

// NewLinearSelection returns a linear selection feature with the
// given limits. The initial value clamps into them.
func NewLinearSelection(owner Owner, apply func(float32) error, limits minmax.F32, initial float32) (*LinearSelection, error) {
	ls := &LinearSelection{Limits: limits}
	if err := ls.InitUniform("selection", owner, apply, limits.ClampValue(initial)); err != nil {
		return nil, err
	}
	return ls, nil
}

// Set clamps the value into the limits, applies and stores it, then
// dispatches one [LinearSelectionEvent]. A re-entrant call from one
// of this feature's own handlers is a no-op.
func (ls *LinearSelection) Set(v float32) error {
	v = ls.Limits.ClampValue(v)
	return ls.set(v, func() Event {
		return &LinearSelectionEvent{EventBase: ls.eventBase(), Value: v}
	})
}

// RegionSelection is the "selection" feature of a 1D region
// selector: a (min, max) range within the selector's limits.
type RegionSelection struct {
	Uniform[[2]float32]

	// Limits bound the selection; out-of-range values clamp.
	Limits minmax.F32
}

// NewRegionSelection returns a region selection feature with the
// given limits.
func NewRegionSelection(owner Owner, apply func([2]float32) error, limits minmax.F32, initial [2]float32) (*RegionSelection, error) {
	rs := &RegionSelection{Limits: limits}
	v, err := rs.clampRegion(initial)
	if err != nil {
		return nil, err
	}
	if err := rs.InitUniform("selection", owner, apply, v); err != nil {
		return nil, err
	}
	return rs, nil
}

func (rs *RegionSelection) clampRegion(v [2]float32) ([2]float32, error) {
	if v[0] > v[1] {
		return v, fmt.Errorf("features.RegionSelection: %w: min %v > max %v", ErrValue, v[0], v[1])
	}
	return [2]float32{rs.Limits.ClampValue(v[0]), rs.Limits.ClampValue(v[1])}, nil
}

// Set validates min <= max, clamps both ends into the limits, applies
// and stores the region, then dispatches one [RegionSelectionEvent].
func (rs *RegionSelection) Set(v [2]float32) error {
	v, err := rs.clampRegion(v)
	if err != nil {
		return err
	}
	return rs.set(v, func() Event {
		return &RegionSelectionEvent{EventBase: rs.eventBase(), Min: v[0], Max: v[1]}
	})
}

// RectangleSelection is the "selection" feature of a rectangle
// selector: (xmin, xmax, ymin, ymax) within per-axis limits.
type RectangleSelection struct {
	Uniform[[4]float32]

	// XLimits and YLimits bound the rectangle; out-of-range
	// values clamp.
	XLimits minmax.F32
	YLimits minmax.F32
}

// NewRectangleSelection returns a rectangle selection feature with
// the given per-axis limits.
func NewRectangleSelection(owner Owner, apply func([4]float32) error, xlim, ylim minmax.F32, initial [4]float32) (*RectangleSelection, error) {
	rc := &RectangleSelection{XLimits: xlim, YLimits: ylim}
	v, err := rc.clampRect(initial)
	if err != nil {
		return nil, err
	}
	if err := rc.InitUniform("selection", owner, apply, v); err != nil {
		return nil, err
	}
	return rc, nil
}

func (rc *RectangleSelection) clampRect(v [4]float32) ([4]float32, error) {
	if v[0] > v[1] || v[2] > v[3] {
		return v, fmt.Errorf("features.RectangleSelection: %w: rectangle %v has min > max", ErrValue, v)
	}
	return [4]float32{
		rc.XLimits.ClampValue(v[0]), rc.XLimits.ClampValue(v[1]),
		rc.YLimits.ClampValue(v[2]), rc.YLimits.ClampValue(v[3]),
	}, nil
}

// Set validates the rectangle, clamps it into the limits, applies and
// stores it, then dispatches one [RectangleSelectionEvent].
func (rc *RectangleSelection) Set(v [4]float32) error {
	v, err := rc.clampRect(v)
	if err != nil {
		return err
	}
	return rc.set(v, func() Event {
		return &RectangleSelectionEvent{EventBase: rc.eventBase(), Rect: v}
	})
}
