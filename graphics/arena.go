// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

// Handle identifies a graphic stored in an [Arena]. A handle goes
// stale when its graphic is removed; stale handles fail lookups
// instead of reaching whatever reuses the slot. The zero Handle is
// always stale.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether this is the zero Handle, which never
// resolves.
func (h Handle) IsZero() bool { return h.gen == 0 }

type arenaSlot struct {
	graphic Graphic
	gen     uint32
	live    bool
}

// Arena is a generation-checked slot map of graphics. Collections
// hold [Handle] values into an arena rather than direct references,
// so a removed member is detected on access instead of kept alive.
// Slots are reused; removal bumps the slot generation, invalidating
// all outstanding handles to it.
type Arena struct {
	slots []arenaSlot
	free  []uint32
	count int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores the graphic and returns its handle.
func (a *Arena) Add(g Graphic) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		sl := &a.slots[i]
		sl.graphic = g
		sl.live = true
		return Handle{index: i, gen: sl.gen}
	}
	// generations start at 1 so the zero Handle never resolves
	a.slots = append(a.slots, arenaSlot{graphic: g, gen: 1, live: true})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// Get returns the graphic for the handle, or false if the handle is
// stale or zero.
func (a *Arena) Get(h Handle) (Graphic, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	sl := &a.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil, false
	}
	return sl.graphic, true
}

// Remove takes the graphic out of the arena and returns it, or false
// if the handle is already stale. The slot's generation bumps, so
// every other handle to it goes stale too. The graphic itself is not
// destroyed.
func (a *Arena) Remove(h Handle) (Graphic, bool) {
	g, ok := a.Get(h)
	if !ok {
		return nil, false
	}
	sl := &a.slots[h.index]
	sl.graphic = nil
	sl.live = false
	sl.gen++
	a.free = append(a.free, h.index)
	a.count--
	return g, true
}

// Len returns the number of live graphics.
func (a *Arena) Len() int { return a.count }
