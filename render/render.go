// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the device, buffer, texture, material, and
// object interfaces that connect feature and buffer management to a
// rendering engine. The engine itself is opaque: this package only
// specifies resource creation, data upload, and picking.
//
// Two drivers are provided: [cogentcore.org/gpuplot/render/offscreen]
// is a headless CPU driver used in tests and for headless operation,
// and [cogentcore.org/gpuplot/render/webgpu] uploads through a WebGPU
// device and queue.
package render

import "github.com/cogentcore/webgpu/wgpu"

// Debug is a global flag for enabling debug logging of resource
// creation and upload activity in drivers.
var Debug = false

// Format is the texture pixel format.
type Format int32

const (
	// FormatR32Float is one float32 per pixel, for scalar image
	// and volume data.
	FormatR32Float Format = iota

	// FormatRGBA8 is 8-bit sRGB RGBA, for colormap lookup tables
	// and glyph atlases.
	FormatRGBA8

	// FormatRGBA32Float is four float32 per pixel.
	FormatRGBA32Float
)

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatR32Float, FormatRGBA8:
		return 4
	case FormatRGBA32Float:
		return 16
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case FormatR32Float:
		return "R32Float"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA32Float:
		return "RGBA32Float"
	}
	return "FormatInvalid"
}

// Limits are the device limits relevant to buffer and texture
// allocation. Data arrays larger than the texture limits are split
// into chunks of at most the limit along each axis.
type Limits struct {

	// MaxTextureDimension2D is the maximum width and height
	// of a 2D texture.
	MaxTextureDimension2D int

	// MaxTextureDimension3D is the maximum extent along each axis
	// of a 3D texture.
	MaxTextureDimension3D int

	// MaxBufferSize is the maximum size in bytes of one buffer.
	MaxBufferSize int
}

// DefaultLimits returns the guaranteed WebGPU baseline limits,
// used when the actual device limits have not been queried.
func DefaultLimits() Limits {
	return Limits{
		MaxTextureDimension2D: 8192,
		MaxTextureDimension3D: 2048,
		MaxBufferSize:         256 << 20,
	}
}

// ObjectKind is the kind of renderable object, which determines
// how the engine interprets the object's buffers.
type ObjectKind int32

const (
	// Lines is a connected line strip.
	Lines ObjectKind = iota

	// Points is a point cloud rendered as screen-space markers.
	Points

	// ImageTile is one textured quad of a chunked 2D image.
	ImageTile

	// VolumeTile is one textured box of a chunked 3D volume.
	VolumeTile

	// Mesh is an indexed triangle mesh.
	Mesh

	// Glyphs is a set of textured glyph quads.
	Glyphs

	// Vectors is a set of independent line segments.
	Vectors
)

func (k ObjectKind) String() string {
	switch k {
	case Lines:
		return "Lines"
	case Points:
		return "Points"
	case ImageTile:
		return "ImageTile"
	case VolumeTile:
		return "VolumeTile"
	case Mesh:
		return "Mesh"
	case Glyphs:
		return "Glyphs"
	case Vectors:
		return "Vectors"
	}
	return "ObjectKindInvalid"
}

// PickInfo reports what part of an object a pick hit, in the
// object's local coordinates. For chunked image and volume tiles,
// the owning graphic re-bases Coord by the chunk start so that
// the reported coordinates index the full data array.
type PickInfo struct {

	// Index is the vertex or element index within the object.
	Index int

	// Coord is the integer data coordinate (x, y, z) within the
	// object, for image and volume tiles.
	Coord [3]int

	// World is the world-space position of the hit.
	World [3]float32
}

// Device is a rendering device that allocates GPU resources.
// Resource creation can fail; uploads report errors from the
// underlying engine.
type Device interface {

	// NewBuffer allocates a buffer of the given size in bytes.
	NewBuffer(label string, numBytes int) (Buffer, error)

	// NewTexture allocates a texture with the given pixel format and
	// extents. Depth of 1 is a 2D texture; greater is a 3D texture.
	NewTexture(label string, format Format, width, height, depth int) (Texture, error)

	// NewMaterial allocates a material holding named uniform values.
	NewMaterial(label string) Material

	// NewObject allocates a renderable object of the given kind.
	NewObject(label string, kind ObjectKind) Object

	// Limits returns the device limits.
	Limits() Limits

	// Release releases all resources created by this device.
	Release()
}

// Buffer is a GPU buffer. The caller keeps its own CPU mirror of the
// contents; a Buffer only receives uploads.
type Buffer interface {

	// Upload copies data into the buffer starting at the given byte
	// offset. offset+len(data) must fit within the buffer.
	Upload(data []byte, offset int) error

	// Len returns the buffer size in bytes.
	Len() int

	// Release releases the buffer.
	Release()
}

// Texture is a GPU texture. Uploads always replace the full contents.
type Texture interface {

	// Upload copies data covering the entire texture extent.
	Upload(data []byte) error

	// Size returns the texture extents.
	Size() (width, height, depth int)

	// Release releases the texture.
	Release()
}

// Material holds named uniform values for an object, such as a flat
// color, line thickness, or value range.
type Material interface {

	// Set sets the named uniform value, re-uploading the material's
	// uniform data. It returns an error for unknown names or values
	// the engine cannot encode.
	Set(name string, value any) error

	// Release releases the material.
	Release()
}

// Object is a renderable object handle tying together buffers,
// a texture, and a material.
type Object interface {

	// SetBuffer attaches a buffer under the given role,
	// such as "positions", "colors", "sizes", or "indices".
	SetBuffer(role string, b Buffer)

	// SetTexture attaches the object's texture.
	SetTexture(t Texture)

	// SetMaterial attaches the object's material.
	SetMaterial(m Material)

	// SetOffset sets the object's world-space offset.
	SetOffset(x, y, z float32)

	// SetVisible sets whether the object is rendered.
	SetVisible(on bool)

	// Pick tests the given screen position against this object,
	// reporting hit info in object-local coordinates.
	Pick(x, y float32) (PickInfo, bool)

	// Release detaches and releases the object. Attached buffers and
	// textures are not released; they may be shared.
	Release()
}

// ToBytes returns the byte view of the given slice, for uploads.
func ToBytes[E any](src []E) []byte {
	return wgpu.ToBytes(src)
}
