// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/render"
)

// Event is a feature change notification, dispatched synchronously to
// each registered handler at the end of every successful mutation.
// Each feature kind has its own concrete event type carrying the key
// and normalized value of the write; handlers type switch on these.
// Events are not retained after dispatch.
type Event interface {

	// FeatureName returns the name of the feature that changed,
	// such as "data", "colors", or "thickness".
	FeatureName() string

	// Graphic returns the graphic whose feature changed,
	// or nil for a standalone feature.
	Graphic() Owner

	// Renderable returns the renderable object of that graphic,
	// or nil.
	Renderable() render.Object
}

// EventBase holds the fields common to all events.
type EventBase struct {

	// Feature is the name of the feature that changed.
	Feature string

	// Owner is the graphic owning the feature, or nil.
	Owner Owner

	// Object is the owner's renderable object, or nil.
	Object render.Object
}

func (eb *EventBase) FeatureName() string {
	return eb.Feature
}

func (eb *EventBase) Graphic() Owner {
	return eb.Owner
}

func (eb *EventBase) Renderable() render.Object {
	return eb.Object
}

// BufferEvent reports a write to an indexable numeric feature such as
// positions, sizes, markers, or mesh indices. Value holds the rows as
// normalized from the input; a single row with a multi-row Key means
// the row was broadcast.
type BufferEvent[E Scalar] struct {
	EventBase

	// Key selects the rows that were written.
	Key Key

	// Value is the normalized written rows.
	Value [][]E
}

// ColorEvent reports a write to a per-vertex color feature.
// Value holds the normalized colors; a single color with a multi-row
// Key means the color was broadcast.
type ColorEvent struct {
	EventBase
	Key   Key
	Value []colors.RGBA
}

// CmapEvent reports a colormap change on a VertexCmap feature:
// a new map name, transform values, or alpha.
type CmapEvent struct {
	EventBase

	// Name is the colormap name now in effect.
	Name string

	// Alpha is the alpha now applied to mapped colors.
	Alpha float32
}

// FloatEvent reports a change to a float uniform feature such as
// thickness, size, vmin, vmax, font size, or iso threshold.
type FloatEvent struct {
	EventBase
	Value float32
}

// BoolEvent reports a change to a bool uniform feature such as
// visible or deleted.
type BoolEvent struct {
	EventBase
	Value bool
}

// EnumEvent reports a change to an enumerated string feature such as
// an interpolation filter or volume render mode.
type EnumEvent struct {
	EventBase
	Value string
}

// TextEvent reports a change to a text feature's string.
type TextEvent struct {
	EventBase
	Value string
}

// UniformColorEvent reports a change to a single-color uniform
// feature such as a line's flat color or a text outline color.
type UniformColorEvent struct {
	EventBase
	Value colors.RGBA
}

// OffsetEvent reports a change to a graphic's world offset.
type OffsetEvent struct {
	EventBase
	Value [3]float32
}

// LinearSelectionEvent reports movement of a linear selection.
type LinearSelectionEvent struct {
	EventBase
	Value float32
}

// RegionSelectionEvent reports a change to a 1D region selection.
type RegionSelectionEvent struct {
	EventBase
	Min float32
	Max float32
}

// RectangleSelectionEvent reports a change to a rectangle selection.
// Rect is xmin, xmax, ymin, ymax.
type RectangleSelectionEvent struct {
	EventBase
	Rect [4]float32
}

// TextureEvent reports a write to a chunked 2D texture array.
// Value is the normalized written block, shaped by the keys;
// a scalar write arrives broadcast across the selected region.
type TextureEvent struct {
	EventBase
	Rows  Key
	Cols  Key
	Value [][]float32
}

// VolumeTextureEvent reports a write to a chunked 3D texture array.
type VolumeTextureEvent struct {
	EventBase
	Rows   Key
	Cols   Key
	Depths Key
	Value  [][][]float32
}
