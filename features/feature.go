// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"cogentcore.org/gpuplot/base/errors"
	"cogentcore.org/gpuplot/render"
)

// Sentinel errors distinguishing the feature error classes.
// All returned errors wrap one of these with context, so callers can
// test with [errors.Is].
var (
	// ErrShape reports input data whose shape or cardinality cannot
	// be reconciled with the feature's fixed layout.
	ErrShape = errors.New("shape mismatch")

	// ErrIndex reports an index or slice outside the valid range.
	ErrIndex = errors.New("index out of range")

	// ErrEnum reports a string value outside its fixed legal set.
	ErrEnum = errors.New("value not in legal set")

	// ErrValue reports a numeric value outside its legal range,
	// such as a negative thickness or a NaN size.
	ErrValue = errors.New("invalid value")
)

// Owner is the graphic that owns a feature. Events carry the owner
// and its renderable object so handlers can reach both.
type Owner interface {

	// Name returns the graphic's name.
	Name() string

	// Renderable returns the graphic's primary renderable object.
	Renderable() render.Object
}

// Feature is one named visual attribute of a graphic.
type Feature interface {

	// FeatureName returns the feature's name, such as "colors"
	// or "thickness". Event routing uses these names.
	FeatureName() string

	// AddHandler registers a handler called on every change to this
	// feature, after any already registered. Registering the same
	// handler twice makes it run twice.
	AddHandler(fun func(Event))

	// Destroy releases the feature's GPU resources, respecting
	// shared reference counts, and drops its handlers.
	Destroy()
}

// FeatureBase is the common state of every feature: its name, owner,
// ordered handler list, and the re-entrancy guard.
type FeatureBase struct {
	name     string
	owner    Owner
	handlers []func(Event)
	busy     bool
}

// Init sets the feature's name and owner. owner may be nil for a
// feature used standalone.
func (fb *FeatureBase) Init(name string, owner Owner) {
	fb.name = name
	fb.owner = owner
}

func (fb *FeatureBase) FeatureName() string {
	return fb.name
}

// Owner returns the owning graphic, or nil.
func (fb *FeatureBase) Owner() Owner {
	return fb.owner
}

func (fb *FeatureBase) AddHandler(fun func(Event)) {
	fb.handlers = append(fb.handlers, fun)
}

// RemoveHandlers drops all registered handlers.
func (fb *FeatureBase) RemoveHandlers() {
	fb.handlers = nil
}

// HandlerCount returns the number of registered handlers.
func (fb *FeatureBase) HandlerCount() int {
	return len(fb.handlers)
}

// begin marks the feature as mutating. It returns false if a mutation
// is already in progress, meaning the caller is a re-entrant call
// from one of this feature's own handlers and must return without
// doing anything. The flag stays set through handler dispatch, which
// is what breaks mutual-update cycles between graphics.
func (fb *FeatureBase) begin() bool {
	if fb.busy {
		return false
	}
	fb.busy = true
	return true
}

// end clears the mutating flag. Deferred by every mutating entry
// point so the flag resets even when a handler panics.
func (fb *FeatureBase) end() {
	fb.busy = false
}

// send dispatches the event to the handlers in registration order.
// All handlers receive the same event value. A handler panic
// propagates to the mutating caller and aborts remaining dispatch.
func (fb *FeatureBase) send(ev Event) {
	for _, fun := range fb.handlers {
		fun(ev)
	}
}

// eventBase returns the common event fields for this feature.
func (fb *FeatureBase) eventBase() EventBase {
	eb := EventBase{Feature: fb.name, Owner: fb.owner}
	if fb.owner != nil {
		eb.Object = fb.owner.Renderable()
	}
	return eb
}
