// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpuplot is a GPU plotting core: graphics such as lines,
// scatters, images, volumes, meshes, and text hold their visual
// attributes as features backed by CPU-mirrored GPU buffers, with
// minimal re-upload of changed ranges and synchronous change events.
//
// The subpackages are, from the bottom up:
//
//   - [cogentcore.org/gpuplot/render]: the engine contract (device,
//     buffer, texture, material, object) with offscreen and WebGPU
//     drivers.
//   - [cogentcore.org/gpuplot/features]: validated visual attributes
//     over mirrored buffers and chunked texture arrays, with event
//     dispatch and re-entrancy guarding.
//   - [cogentcore.org/gpuplot/graphics]: the graphic kinds composing
//     features into renderable objects, plus collections of graphics
//     with fan-out feature proxies.
//
// This package holds the user-adjustable [Settings] that graphic
// constructors fall back on for unset options.
package gpuplot
