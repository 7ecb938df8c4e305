// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"fmt"

	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
)

// GraphicCollection is an ordered aggregate of graphics. Members live
// in an [Arena] and the collection holds handles, so a member removed
// elsewhere drops out of the collection instead of dangling.
// [GraphicCollection.Select] narrows the collection to an [Indexer],
// whose feature proxies fan reads and writes out to every selected
// member.
type GraphicCollection struct {
	name    string
	arena   *Arena
	handles []Handle
}

// NewGraphicCollection returns an empty collection backed by its own
// arena.
func NewGraphicCollection(name string) *GraphicCollection {
	return &GraphicCollection{name: name, arena: NewArena()}
}

// NewGraphicCollectionIn returns an empty collection storing its
// members in the given shared arena.
func NewGraphicCollectionIn(name string, arena *Arena) *GraphicCollection {
	return &GraphicCollection{name: name, arena: arena}
}

// Name returns the collection's name.
func (gc *GraphicCollection) Name() string { return gc.name }

// Arena returns the arena holding the members.
func (gc *GraphicCollection) Arena() *Arena { return gc.arena }

// Add appends the graphic as a member and returns its handle.
func (gc *GraphicCollection) Add(g Graphic) Handle {
	h := gc.arena.Add(g)
	gc.handles = append(gc.handles, h)
	return h
}

// Len returns the member count, including members whose handles have
// gone stale.
func (gc *GraphicCollection) Len() int { return len(gc.handles) }

// Graphic returns member i, or false if i is out of range or the
// member's handle has gone stale.
func (gc *GraphicCollection) Graphic(i int) (Graphic, bool) {
	if i < 0 || i >= len(gc.handles) {
		return nil, false
	}
	return gc.arena.Get(gc.handles[i])
}

// Members returns the live members in order.
func (gc *GraphicCollection) Members() []Graphic {
	ms := make([]Graphic, 0, len(gc.handles))
	for _, h := range gc.handles {
		if g, ok := gc.arena.Get(h); ok {
			ms = append(ms, g)
		}
	}
	return ms
}

// RemoveAt takes member i out of the collection and the arena and
// returns it, without destroying it. It returns false if i is out of
// range or the member was already gone.
func (gc *GraphicCollection) RemoveAt(i int) (Graphic, bool) {
	if i < 0 || i >= len(gc.handles) {
		return nil, false
	}
	g, ok := gc.arena.Remove(gc.handles[i])
	gc.handles = append(gc.handles[:i], gc.handles[i+1:]...)
	return g, ok
}

// Select narrows the collection to the members the key picks, with
// the same key normalization as feature rows. Members whose handles
// have gone stale are skipped.
func (gc *GraphicCollection) Select(k features.Key) (*Indexer, error) {
	r, err := k.Resolve(len(gc.handles))
	if err != nil {
		return nil, err
	}
	ix := &Indexer{name: gc.name}
	for _, i := range r.Indices() {
		if g, ok := gc.arena.Get(gc.handles[i]); ok {
			ix.members = append(ix.members, g)
		}
	}
	return ix, nil
}

// All returns an indexer over every live member.
func (gc *GraphicCollection) All() *Indexer {
	return &Indexer{name: gc.name, members: gc.Members()}
}

// AddEventHandler registers the handler on the named features of
// every live member, or on all features of every member when no
// names are given.
func (gc *GraphicCollection) AddEventHandler(fun func(features.Event), types ...string) error {
	for _, g := range gc.Members() {
		if err := g.AddEventHandler(fun, types...); err != nil {
			return err
		}
	}
	return nil
}

// Destroy destroys every live member and empties the collection.
func (gc *GraphicCollection) Destroy() {
	for _, h := range gc.handles {
		if g, ok := gc.arena.Remove(h); ok {
			g.Destroy()
		}
	}
	gc.handles = nil
}

// Indexer is a selected subset of a collection's members. Its feature
// proxies fan writes out to the same-named feature on every member
// and gather reads back per member.
type Indexer struct {
	name    string
	members []Graphic
}

// Members returns the selected members in order.
func (ix *Indexer) Members() []Graphic { return ix.members }

// Len returns the number of selected members.
func (ix *Indexer) Len() int { return len(ix.members) }

// Colors returns the proxy for the members' "colors" features.
func (ix *Indexer) Colors() *CollectionColors {
	return &CollectionColors{collectionFeature{ix.name, "colors", ix.members}}
}

// Positions returns the proxy for the members' "data" features.
func (ix *Indexer) Positions() *CollectionPositions {
	return &CollectionPositions{collectionFeature{ix.name, "data", ix.members}}
}

// Thickness returns the proxy for the members' "thickness" features.
func (ix *Indexer) Thickness() *CollectionThickness {
	return &CollectionThickness{collectionFeature{ix.name, "thickness", ix.members}}
}

// Cmap returns the colormap proxy, which colors each member through
// the members' "colors" features.
func (ix *Indexer) Cmap() *CollectionCmap {
	return &CollectionCmap{collectionFeature{ix.name, "colors", ix.members}}
}

// AddEventHandler registers the handler on the named features of
// every selected member, or on all features when no names are given.
func (ix *Indexer) AddEventHandler(fun func(features.Event), types ...string) error {
	for _, g := range ix.members {
		if err := g.AddEventHandler(fun, types...); err != nil {
			return err
		}
	}
	return nil
}

// collectionFeature is the common state of the feature proxies: the
// collection name for error messages, the feature name to look up,
// and the selected members.
type collectionFeature struct {
	coll    string
	feature string
	members []Graphic
}

// resolve returns the named feature of each member, erroring on any
// member that lacks it.
func (cf *collectionFeature) resolve() ([]features.Feature, error) {
	fs := make([]features.Feature, len(cf.members))
	for i, g := range cf.members {
		f := g.Feature(cf.feature)
		if f == nil {
			return nil, fmt.Errorf("graphics.Collection %s: %w: member %s has no feature %q", cf.coll, features.ErrEnum, g.Name(), cf.feature)
		}
		fs[i] = f
	}
	return fs, nil
}

// AddHandler registers the handler on the named feature of every
// selected member.
func (cf *collectionFeature) AddHandler(fun func(features.Event)) error {
	fs, err := cf.resolve()
	if err != nil {
		return err
	}
	for _, f := range fs {
		f.AddHandler(fun)
	}
	return nil
}

// CollectionColors fans color reads and writes out to the members'
// per-vertex color features.
type CollectionColors struct {
	collectionFeature
}

func (cc *CollectionColors) colorFeatures() ([]*features.VertexColors, error) {
	fs, err := cc.resolve()
	if err != nil {
		return nil, err
	}
	out := make([]*features.VertexColors, len(fs))
	for i, f := range fs {
		vc, ok := f.(*features.VertexColors)
		if !ok {
			return nil, fmt.Errorf("graphics.Collection %s: %w: member %s colors are not per-vertex", cc.coll, features.ErrValue, cc.members[i].Name())
		}
		out[i] = vc
	}
	return out, nil
}

// Set writes the same color input at the key into every member.
func (cc *CollectionColors) Set(k features.Key, in features.ColorsInput) error {
	cfs, err := cc.colorFeatures()
	if err != nil {
		return err
	}
	for _, vc := range cfs {
		if err := vc.Set(k, in); err != nil {
			return err
		}
	}
	return nil
}

// SetEach writes one color input per member at the key. The input
// count must match the member count.
func (cc *CollectionColors) SetEach(k features.Key, ins []features.ColorsInput) error {
	cfs, err := cc.colorFeatures()
	if err != nil {
		return err
	}
	if len(ins) != len(cfs) {
		return fmt.Errorf("graphics.Collection %s: %w: got %d color inputs for %d members", cc.coll, features.ErrShape, len(ins), len(cfs))
	}
	for i, vc := range cfs {
		if err := vc.Set(k, ins[i]); err != nil {
			return err
		}
	}
	return nil
}

// Get gathers the colors at the key from every member.
func (cc *CollectionColors) Get(k features.Key) ([][]colors.RGBA, error) {
	cfs, err := cc.colorFeatures()
	if err != nil {
		return nil, err
	}
	out := make([][]colors.RGBA, len(cfs))
	for i, vc := range cfs {
		cs, err := vc.Get(k)
		if err != nil {
			return nil, err
		}
		out[i] = cs
	}
	return out, nil
}

// CollectionPositions fans position reads and writes out to the
// members' position features.
type CollectionPositions struct {
	collectionFeature
}

func (cp *CollectionPositions) positionFeatures() ([]*features.VertexPositions, error) {
	fs, err := cp.resolve()
	if err != nil {
		return nil, err
	}
	out := make([]*features.VertexPositions, len(fs))
	for i, f := range fs {
		vp, ok := f.(*features.VertexPositions)
		if !ok {
			return nil, fmt.Errorf("graphics.Collection %s: %w: member %s has no position data", cp.coll, features.ErrValue, cp.members[i].Name())
		}
		out[i] = vp
	}
	return out, nil
}

// Set writes the same positions input at the key into every member.
func (cp *CollectionPositions) Set(k features.Key, in features.PositionsInput) error {
	pfs, err := cp.positionFeatures()
	if err != nil {
		return err
	}
	for _, vp := range pfs {
		if err := vp.Set(k, in); err != nil {
			return err
		}
	}
	return nil
}

// SetEach writes one positions input per member at the key. The
// input count must match the member count.
func (cp *CollectionPositions) SetEach(k features.Key, ins []features.PositionsInput) error {
	pfs, err := cp.positionFeatures()
	if err != nil {
		return err
	}
	if len(ins) != len(pfs) {
		return fmt.Errorf("graphics.Collection %s: %w: got %d position inputs for %d members", cp.coll, features.ErrShape, len(ins), len(pfs))
	}
	for i, vp := range pfs {
		if err := vp.Set(k, ins[i]); err != nil {
			return err
		}
	}
	return nil
}

// Get gathers the position rows at the key from every member. The
// returned rows are views into the members' buffers.
func (cp *CollectionPositions) Get(k features.Key) ([][][]float32, error) {
	pfs, err := cp.positionFeatures()
	if err != nil {
		return nil, err
	}
	out := make([][][]float32, len(pfs))
	for i, vp := range pfs {
		rows, err := vp.Get(k)
		if err != nil {
			return nil, err
		}
		out[i] = rows
	}
	return out, nil
}

// CollectionThickness fans thickness reads and writes out to the
// members' thickness features.
type CollectionThickness struct {
	collectionFeature
}

func (ct *CollectionThickness) floatFeatures() ([]*features.FloatValue, error) {
	fs, err := ct.resolve()
	if err != nil {
		return nil, err
	}
	out := make([]*features.FloatValue, len(fs))
	for i, f := range fs {
		fv, ok := f.(*features.FloatValue)
		if !ok {
			return nil, fmt.Errorf("graphics.Collection %s: %w: member %s thickness is not a float feature", ct.coll, features.ErrValue, ct.members[i].Name())
		}
		out[i] = fv
	}
	return out, nil
}

// Set writes the same thickness into every member.
func (ct *CollectionThickness) Set(v float32) error {
	fvs, err := ct.floatFeatures()
	if err != nil {
		return err
	}
	for _, fv := range fvs {
		if err := fv.Set(v); err != nil {
			return err
		}
	}
	return nil
}

// SetEach writes one thickness per member. The value count must
// match the member count.
func (ct *CollectionThickness) SetEach(vs []float32) error {
	fvs, err := ct.floatFeatures()
	if err != nil {
		return err
	}
	if len(vs) != len(fvs) {
		return fmt.Errorf("graphics.Collection %s: %w: got %d thicknesses for %d members", ct.coll, features.ErrShape, len(vs), len(fvs))
	}
	for i, fv := range fvs {
		if err := fv.Set(vs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Get gathers the members' thicknesses.
func (ct *CollectionThickness) Get() ([]float32, error) {
	fvs, err := ct.floatFeatures()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(fvs))
	for i, fv := range fvs {
		out[i] = fv.Value()
	}
	return out, nil
}

// CollectionCmap colors the selected members through a colormap:
// member i takes the i'th of len(members) evenly spaced colors,
// written as a flat per-vertex color over the member's "colors"
// feature.
type CollectionCmap struct {
	collectionFeature
}

// Set maps the members through the named colormap.
func (cm *CollectionCmap) Set(name string) error {
	m, err := colormap.FromName(name)
	if err != nil {
		return fmt.Errorf("graphics.Collection %s: %w: %s", cm.coll, features.ErrEnum, err)
	}
	cc := CollectionColors{cm.collectionFeature}
	cfs, err := cc.colorFeatures()
	if err != nil {
		return err
	}
	tbl := m.Table(len(cfs))
	for i, vc := range cfs {
		if err := vc.Set(features.All(), features.ColorValue(tbl[i])); err != nil {
			return err
		}
	}
	return nil
}

// LineCollectionOptions are the optional settings for
// [NewLineCollection]. At most one of Colors, MemberColors, and Cmap
// may be set.
type LineCollectionOptions struct {

	// Colors is one color input applied to every member line.
	Colors features.ColorsInput

	// MemberColors is one color input per member line. Its length
	// must match the member count.
	MemberColors []features.ColorsInput

	// Cmap colors the member lines through the named colormap:
	// member i takes the i'th of n evenly spaced colors.
	Cmap string

	// Alpha is the alpha applied to Cmap member colors. Zero means
	// opaque.
	Alpha float32

	// Thickness is the thickness of every member line. Zero uses
	// the current default.
	Thickness float32

	// MemberThickness is one thickness per member line. Its length
	// must match the member count.
	MemberThickness []float32
}

// LineCollection is a collection of line graphics built together,
// one per positions input, named "<name>[i]".
type LineCollection struct {
	GraphicCollection

	lines []*Line
}

// NewLineCollection builds one line per positions input.
func NewLineCollection(dv render.Device, name string, data []features.PositionsInput, opts *LineCollectionOptions) (*LineCollection, error) {
	if opts == nil {
		opts = &LineCollectionOptions{}
	}
	modes := 0
	if opts.Colors != nil {
		modes++
	}
	if opts.MemberColors != nil {
		modes++
	}
	if opts.Cmap != "" {
		modes++
	}
	if modes > 1 {
		return nil, fmt.Errorf("graphics.NewLineCollection %s: %w: at most one of Colors, MemberColors, and Cmap may be set", name, features.ErrValue)
	}
	if opts.MemberColors != nil && len(opts.MemberColors) != len(data) {
		return nil, fmt.Errorf("graphics.NewLineCollection %s: %w: got %d member colors for %d lines", name, features.ErrShape, len(opts.MemberColors), len(data))
	}
	if opts.MemberThickness != nil && len(opts.MemberThickness) != len(data) {
		return nil, fmt.Errorf("graphics.NewLineCollection %s: %w: got %d member thicknesses for %d lines", name, features.ErrShape, len(opts.MemberThickness), len(data))
	}
	var tbl []colors.RGBA
	if opts.Cmap != "" {
		m, err := colormap.FromName(opts.Cmap)
		if err != nil {
			return nil, fmt.Errorf("graphics.NewLineCollection %s: %w: %s", name, features.ErrEnum, err)
		}
		tbl = m.Table(len(data))
		if opts.Alpha != 0 {
			for i := range tbl {
				tbl[i] = tbl[i].WithAlpha(opts.Alpha)
			}
		}
	}

	lc := &LineCollection{GraphicCollection: GraphicCollection{name: name, arena: NewArena()}}
	for i, d := range data {
		lo := &LineOptions{Thickness: opts.Thickness}
		if opts.MemberThickness != nil {
			lo.Thickness = opts.MemberThickness[i]
		}
		switch {
		case opts.Colors != nil:
			lo.Colors = opts.Colors
		case opts.MemberColors != nil:
			lo.Colors = opts.MemberColors[i]
		case tbl != nil:
			lo.Colors = features.ColorValue(tbl[i])
		}
		ln, err := NewLine(dv, fmt.Sprintf("%s[%d]", name, i), d, lo)
		if err != nil {
			lc.Destroy()
			return nil, err
		}
		lc.lines = append(lc.lines, ln)
		lc.Add(ln)
	}
	return lc, nil
}

// Lines returns the member lines in construction order.
func (lc *LineCollection) Lines() []*Line { return lc.lines }

// Destroy destroys the member lines and empties the collection.
func (lc *LineCollection) Destroy() {
	lc.GraphicCollection.Destroy()
	lc.lines = nil
}

// LineStackOptions are the optional settings for [NewLineStack].
type LineStackOptions struct {
	LineCollectionOptions

	// Separation is the vertical offset between consecutive member
	// lines. Zero means 10.
	Separation float32
}

// LineStack is a line collection whose members are offset vertically
// by a fixed separation, member i at y = i * separation.
type LineStack struct {
	LineCollection

	separation float32
}

// NewLineStack builds one line per positions input, stacked
// vertically.
func NewLineStack(dv render.Device, name string, data []features.PositionsInput, opts *LineStackOptions) (*LineStack, error) {
	if opts == nil {
		opts = &LineStackOptions{}
	}
	sep := opts.Separation
	if sep == 0 {
		sep = 10
	}
	lc, err := NewLineCollection(dv, name, data, &opts.LineCollectionOptions)
	if err != nil {
		return nil, err
	}
	st := &LineStack{LineCollection: *lc, separation: sep}
	for i, ln := range st.lines {
		if err := ln.Offset().Set([3]float32{0, float32(i) * sep, 0}); err != nil {
			st.Destroy()
			return nil, err
		}
	}
	return st, nil
}

// Separation returns the vertical offset between consecutive members.
func (st *LineStack) Separation() float32 { return st.separation }
