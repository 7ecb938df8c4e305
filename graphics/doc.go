// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graphics provides the renderable plot primitives: [Line],
// [Scatter], [Image], [Volume], [Mesh], [Text], and [VectorField].
// A graphic composes named features from
// [cogentcore.org/gpuplot/features] with one or more renderable
// objects on a [cogentcore.org/gpuplot/render.Device]; all data
// mutation goes through the features, which keep the GPU buffers and
// textures in sync and dispatch change events.
//
// [LineCollection] and [LineStack] aggregate many graphics behind
// fan-out feature proxies, so one write applies to every selected
// member. Graphics in collections are held in an [Arena] and addressed
// by generation-checked [Handle] values.
package graphics
