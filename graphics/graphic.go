// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gpuplot/base/keylist"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// Graphic is one renderable plot primitive. Every kind carries the
// common visible, offset, and deleted features in addition to its
// data features; all are reachable by name for event routing.
type Graphic interface {

	// Name returns the graphic's name, used in resource labels
	// and error messages.
	Name() string

	// Renderable returns the graphic's primary renderable object.
	Renderable() render.Object

	// Features returns the graphic's features in registration order.
	Features() []features.Feature

	// Feature returns the feature with the given name, or nil.
	Feature(name string) features.Feature

	// AddEventHandler registers the handler on the named features,
	// or on every feature when no names are given. An unknown name
	// is an error wrapping [features.ErrEnum].
	AddEventHandler(fun func(features.Event), types ...string) error

	// Visible toggles rendering of the graphic's objects.
	Visible() *features.BoolValue

	// Offset is the graphic's world-space offset.
	Offset() *features.OffsetValue

	// Deleted fires once, with value true, when the graphic is
	// destroyed. It is never set back to false.
	Deleted() *features.BoolValue

	// Destroy dispatches the deleted event, then releases the
	// graphic's features and render resources. Shared buffers
	// survive until their last reference is destroyed. Destroy is
	// idempotent.
	Destroy()
}

// GraphicBase is the common state embedded by every graphic kind:
// the name, the primary object and its material, and the ordered
// feature registry. It implements [features.Owner].
type GraphicBase struct {
	name     string
	object   render.Object
	material render.Material
	feats    keylist.List[string, features.Feature]

	visible *features.BoolValue
	offset  *features.OffsetValue
	deleted *features.BoolValue

	// applyVisible and applyOffset, when set before initCommon,
	// replace the single-object defaults. Image and volume graphics
	// use them to fan out across their chunk tiles.
	applyVisible func(on bool) error
	applyOffset  func(v [3]float32) error

	destroyed bool
}

var _ features.Owner = (*GraphicBase)(nil)

// init allocates the primary object and material on the device.
func (gb *GraphicBase) init(dv render.Device, name string, kind render.ObjectKind) {
	gb.name = name
	gb.object = dv.NewObject(name, kind)
	gb.material = dv.NewMaterial(name)
	gb.object.SetMaterial(gb.material)
}

// initWith is init with the primary object supplied by the caller.
// Chunked graphics pass their first tile.
func (gb *GraphicBase) initWith(dv render.Device, name string, object render.Object) {
	gb.name = name
	gb.object = object
	gb.material = dv.NewMaterial(name)
	gb.object.SetMaterial(gb.material)
}

// initCommon builds and registers the visible, offset, and deleted
// features. Kind constructors call it after their own features, so
// the common features come last in registration order and any
// fan-out hooks are in place.
func (gb *GraphicBase) initCommon() error {
	av := gb.applyVisible
	if av == nil {
		av = func(on bool) error {
			gb.object.SetVisible(on)
			return nil
		}
	}
	vis, err := features.NewBoolValue("visible", gb, av, true)
	if err != nil {
		return err
	}
	gb.visible = vis
	gb.register(vis)

	ao := gb.applyOffset
	if ao == nil {
		ao = func(v [3]float32) error {
			gb.object.SetOffset(v[0], v[1], v[2])
			return nil
		}
	}
	off, err := features.NewOffsetValue(gb, ao, [3]float32{})
	if err != nil {
		return err
	}
	gb.offset = off
	gb.register(off)

	del, err := features.NewBoolValue("deleted", gb, nil, false)
	if err != nil {
		return err
	}
	gb.deleted = del
	gb.register(del)
	return nil
}

// register appends the feature to the ordered registry under its name.
func (gb *GraphicBase) register(f features.Feature) {
	gb.feats.Set(f.FeatureName(), f)
}

func (gb *GraphicBase) Name() string {
	return gb.name
}

func (gb *GraphicBase) Renderable() render.Object {
	return gb.object
}

// Material returns the material shared by the graphic's objects.
func (gb *GraphicBase) Material() render.Material {
	return gb.material
}

func (gb *GraphicBase) Features() []features.Feature {
	return gb.feats.Values
}

func (gb *GraphicBase) Feature(name string) features.Feature {
	return gb.feats.At(name)
}

func (gb *GraphicBase) AddEventHandler(fun func(features.Event), types ...string) error {
	if len(types) == 0 {
		for _, f := range gb.feats.Values {
			f.AddHandler(fun)
		}
		return nil
	}
	for _, tp := range types {
		f, ok := gb.feats.AtTry(tp)
		if !ok {
			return fmt.Errorf("graphics.Graphic AddEventHandler: %w: %s has no feature %q", features.ErrEnum, gb.name, tp)
		}
		f.AddHandler(fun)
	}
	return nil
}

func (gb *GraphicBase) Visible() *features.BoolValue {
	return gb.visible
}

func (gb *GraphicBase) Offset() *features.OffsetValue {
	return gb.offset
}

func (gb *GraphicBase) Deleted() *features.BoolValue {
	return gb.deleted
}

// Destroyed reports whether Destroy has run.
func (gb *GraphicBase) Destroyed() bool {
	return gb.destroyed
}

func (gb *GraphicBase) Destroy() {
	if gb.destroyed {
		return
	}
	gb.destroyed = true
	if gb.deleted != nil {
		gb.deleted.Set(true)
	}
	for _, f := range gb.feats.Values {
		f.Destroy()
	}
	gb.feats = keylist.List[string, features.Feature]{}
	if gb.material != nil {
		gb.material.Release()
		gb.material = nil
	}
	if gb.object != nil {
		gb.object.Release()
		gb.object = nil
	}
}

// positionsLen returns the vertex count of a positions input.
func positionsLen(in features.PositionsInput) (int, error) {
	switch v := in.(type) {
	case features.YValues:
		return len(v), nil
	case features.PointsXY:
		return len(v), nil
	case features.PointsXYZ:
		return len(v), nil
	}
	return 0, fmt.Errorf("graphics: %w: unsupported positions input %T", features.ErrShape, in)
}
