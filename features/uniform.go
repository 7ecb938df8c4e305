// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"slices"

	"cogentcore.org/gpuplot/colors"
	"github.com/chewxy/math32"
)

// Uniform is the base for single-value features mapped onto one
// material or object field: no dirty ranges, just validate, apply,
// store, notify. apply pushes the value into the renderable (a
// material field, object visibility, or offset); a nil apply keeps
// the value CPU-side only.
//
// Setting a uniform to its current value is not suppressed: the value
// re-applies and another event dispatches.
type Uniform[T comparable] struct {
	FeatureBase
	value T
	apply func(T) error
}

// InitUniform sets the feature name, owner, and apply hook, then
// validates nothing and applies the initial value without an event.
func (u *Uniform[T]) InitUniform(name string, owner Owner, apply func(T) error, initial T) error {
	u.Init(name, owner)
	u.apply = apply
	u.value = initial
	if u.apply != nil {
		return u.apply(initial)
	}
	return nil
}

// Value returns the current value.
func (u *Uniform[T]) Value() T { return u.value }

// set applies and stores an already validated value, dispatching the
// event ev makes. Re-entrant calls are a no-op.
func (u *Uniform[T]) set(v T, ev func() Event) error {
	if !u.begin() {
		return nil
	}
	defer u.end()
	if u.apply != nil {
		if err := u.apply(v); err != nil {
			return err
		}
	}
	u.value = v
	u.send(ev())
	return nil
}

// Destroy drops the apply hook and handlers.
func (u *Uniform[T]) Destroy() {
	u.apply = nil
	u.RemoveHandlers()
}

// FloatValue is a float uniform feature: thickness, point size,
// vmin, vmax, font size, outline thickness, iso threshold. The
// constructor chooses the constraint.
type FloatValue struct {
	Uniform[float32]
	min float32
	max float32
}

// NewFloatValue returns a float uniform constrained to [min, max]
// (use [math32.Inf] bounds for unconstrained sides).
func NewFloatValue(name string, owner Owner, apply func(float32) error, min, max, initial float32) (*FloatValue, error) {
	fv := &FloatValue{min: min, max: max}
	if err := fv.check(initial); err != nil {
		return nil, err
	}
	if err := fv.InitUniform(name, owner, apply, initial); err != nil {
		return nil, err
	}
	return fv, nil
}

// NewThickness returns the "thickness" feature: finite and >= 0.
func NewThickness(owner Owner, apply func(float32) error, initial float32) (*FloatValue, error) {
	return NewFloatValue("thickness", owner, apply, 0, math32.Inf(1), initial)
}

// NewUniformSize returns the "size" feature: finite and >= 0.
func NewUniformSize(owner Owner, apply func(float32) error, initial float32) (*FloatValue, error) {
	return NewFloatValue("size", owner, apply, 0, math32.Inf(1), initial)
}

func (fv *FloatValue) check(v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return fmt.Errorf("features.FloatValue %s: %w: value %v is not finite", fv.name, ErrValue, v)
	}
	if v < fv.min || v > fv.max {
		return fmt.Errorf("features.FloatValue %s: %w: value %v not in [%v, %v]", fv.name, ErrValue, v, fv.min, fv.max)
	}
	return nil
}

// Set validates, applies, and stores the value, then dispatches one
// [FloatEvent]. A re-entrant call from one of this feature's own
// handlers is a no-op.
func (fv *FloatValue) Set(v float32) error {
	if err := fv.check(v); err != nil {
		return err
	}
	return fv.set(v, func() Event {
		return &FloatEvent{EventBase: fv.eventBase(), Value: v}
	})
}

// BoolValue is a bool uniform feature, such as "visible".
type BoolValue struct {
	Uniform[bool]
}

// NewBoolValue returns a bool uniform feature.
func NewBoolValue(name string, owner Owner, apply func(bool) error, initial bool) (*BoolValue, error) {
	bv := &BoolValue{}
	if err := bv.InitUniform(name, owner, apply, initial); err != nil {
		return nil, err
	}
	return bv, nil
}

// Set applies and stores the value, then dispatches one [BoolEvent].
func (bv *BoolValue) Set(v bool) error {
	return bv.set(v, func() Event {
		return &BoolEvent{EventBase: bv.eventBase(), Value: v}
	})
}

// EnumValue is a string uniform feature restricted to a fixed legal
// set, such as an interpolation filter or volume render mode.
type EnumValue struct {
	Uniform[string]
	legal []string
}

// Legal string sets for the enumerated uniform features.
var (
	// InterpolationModes are the legal texture sampling filters.
	InterpolationModes = []string{"nearest", "linear"}

	// RenderModes are the legal volume render modes: maximum
	// intensity projection, minimum intensity projection, and
	// isosurface.
	RenderModes = []string{"mip", "minip", "iso"}
)

// NewEnumValue returns a string uniform restricted to legal.
func NewEnumValue(name string, owner Owner, legal []string, apply func(string) error, initial string) (*EnumValue, error) {
	ev := &EnumValue{legal: legal}
	if err := ev.check(initial); err != nil {
		return nil, err
	}
	if err := ev.InitUniform(name, owner, apply, initial); err != nil {
		return nil, err
	}
	return ev, nil
}

func (en *EnumValue) check(v string) error {
	if !slices.Contains(en.legal, v) {
		return fmt.Errorf("features.EnumValue %s: %w: %q not one of %v", en.name, ErrEnum, v, en.legal)
	}
	return nil
}

// Set validates the value against the legal set, applies and stores
// it, then dispatches one [EnumEvent].
func (en *EnumValue) Set(v string) error {
	if err := en.check(v); err != nil {
		return err
	}
	return en.set(v, func() Event {
		return &EnumEvent{EventBase: en.eventBase(), Value: v}
	})
}

// UniformColor is a single-color uniform feature, such as a line's
// flat color or a text outline color.
type UniformColor struct {
	Uniform[colors.RGBA]
}

// NewUniformColor returns a color uniform feature.
func NewUniformColor(name string, owner Owner, apply func(colors.RGBA) error, initial colors.RGBA) (*UniformColor, error) {
	uc := &UniformColor{}
	if err := uc.InitUniform(name, owner, apply, initial); err != nil {
		return nil, err
	}
	return uc, nil
}

// Set applies and stores the color, then dispatches one
// [UniformColorEvent].
func (uc *UniformColor) Set(c colors.RGBA) error {
	return uc.set(c, func() Event {
		return &UniformColorEvent{EventBase: uc.eventBase(), Value: c}
	})
}

// SetAny parses the value with [colors.FromAny] and sets it.
func (uc *UniformColor) SetAny(val any) error {
	c, err := colors.FromAny(val)
	if err != nil {
		return fmt.Errorf("features.UniformColor %s: %w", uc.name, err)
	}
	return uc.Set(c)
}

// TextValue is a string uniform feature holding a text graphic's
// string. The apply hook rebuilds the glyph buffers.
type TextValue struct {
	Uniform[string]
}

// NewTextValue returns the "text" feature.
func NewTextValue(owner Owner, apply func(string) error, initial string) (*TextValue, error) {
	tv := &TextValue{}
	if err := tv.InitUniform("text", owner, apply, initial); err != nil {
		return nil, err
	}
	return tv, nil
}

// Set applies and stores the string, then dispatches one [TextEvent].
func (tv *TextValue) Set(s string) error {
	return tv.set(s, func() Event {
		return &TextEvent{EventBase: tv.eventBase(), Value: s}
	})
}

// OffsetValue is the "offset" feature holding a graphic's world
// offset, applied to its renderable object.
type OffsetValue struct {
	Uniform[[3]float32]
}

// NewOffsetValue returns the "offset" feature.
func NewOffsetValue(owner Owner, apply func([3]float32) error, initial [3]float32) (*OffsetValue, error) {
	ov := &OffsetValue{}
	if err := checkOffset(initial); err != nil {
		return nil, err
	}
	if err := ov.InitUniform("offset", owner, apply, initial); err != nil {
		return nil, err
	}
	return ov, nil
}

func checkOffset(v [3]float32) error {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return fmt.Errorf("features.OffsetValue: %w: offset %v is not finite", ErrValue, v)
		}
	}
	return nil
}

// Set validates, applies, and stores the offset, then dispatches one
// [OffsetEvent].
func (ov *OffsetValue) Set(v [3]float32) error {
	if err := checkOffset(v); err != nil {
		return err
	}
	return ov.set(v, func() Event {
		return &OffsetEvent{EventBase: ov.eventBase(), Value: v}
	})
}
