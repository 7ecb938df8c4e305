// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package features implements the feature and buffer management layer
// at the core of gpuplot. A feature is one named visual attribute of
// a graphic: vertex positions, colors, point sizes, an image's data
// array, a line's thickness.
//
// Indexable features own a [Buffer], the CPU mirror of one GPU vertex
// buffer, validate and normalize heterogeneous user input into its
// fixed layout, and re-upload only the byte ranges a partial write
// touched. Uniform features hold a single value mapped onto one
// material field. The chunked [TextureArray] and [TextureArrayVolume]
// split image and volume data across multiple GPU textures at the
// hardware size limit.
//
// Every successful mutation dispatches exactly one [Event] to the
// feature's handlers, in registration order. A per-feature guard
// makes re-entrant mutation during handler dispatch a no-op, so two
// graphics can mirror each other's state through handlers without
// infinite recursion.
//
// All operations are synchronous on the calling goroutine; the
// package does no locking of its own.
package features
