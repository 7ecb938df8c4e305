// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a headless CPU implementation of the
// render interfaces, for testing and for running without a GPU.
// Buffers and textures hold their contents in memory, and every
// upload is recorded so tests can inspect exactly which byte ranges
// were written.
package offscreen

import (
	"fmt"
	"log/slog"

	"cogentcore.org/gpuplot/render"
)

var (
	_ render.Device   = (*Device)(nil)
	_ render.Buffer   = (*Buffer)(nil)
	_ render.Texture  = (*Texture)(nil)
	_ render.Material = (*Material)(nil)
	_ render.Object   = (*Object)(nil)
)

// Device is the offscreen [render.Device]. It tracks every resource
// it creates so tests can inspect them and Release can free them all.
type Device struct {

	// DeviceLimits are the limits reported by [Device.Limits].
	// Tests lower the texture limits to exercise chunking.
	DeviceLimits render.Limits

	Buffers   []*Buffer
	Textures  []*Texture
	Materials []*Material
	Objects   []*Object
}

// NewDevice returns a new offscreen device with default limits.
func NewDevice() *Device {
	return &Device{DeviceLimits: render.DefaultLimits()}
}

// NewDeviceWithLimits returns a new offscreen device with the given
// limits, used in tests to force chunking at small sizes.
func NewDeviceWithLimits(lim render.Limits) *Device {
	return &Device{DeviceLimits: lim}
}

func (dv *Device) NewBuffer(label string, numBytes int) (render.Buffer, error) {
	if numBytes < 0 {
		return nil, fmt.Errorf("offscreen.Device NewBuffer %s: negative size %d", label, numBytes)
	}
	if dv.DeviceLimits.MaxBufferSize > 0 && numBytes > dv.DeviceLimits.MaxBufferSize {
		return nil, fmt.Errorf("offscreen.Device NewBuffer %s: size %d exceeds limit %d", label, numBytes, dv.DeviceLimits.MaxBufferSize)
	}
	bf := &Buffer{Label: label, Data: make([]byte, numBytes)}
	dv.Buffers = append(dv.Buffers, bf)
	return bf, nil
}

func (dv *Device) NewTexture(label string, format render.Format, width, height, depth int) (render.Texture, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("offscreen.Device NewTexture %s: invalid size %d x %d x %d", label, width, height, depth)
	}
	lim := dv.DeviceLimits.MaxTextureDimension2D
	if depth > 1 {
		lim = dv.DeviceLimits.MaxTextureDimension3D
	}
	if width > lim || height > lim || depth > lim {
		return nil, fmt.Errorf("offscreen.Device NewTexture %s: size %d x %d x %d exceeds limit %d", label, width, height, depth, lim)
	}
	tx := &Texture{Label: label, Format: format, Width: width, Height: height, Depth: depth,
		Data: make([]byte, width*height*depth*format.BytesPerPixel())}
	dv.Textures = append(dv.Textures, tx)
	return tx, nil
}

func (dv *Device) NewMaterial(label string) render.Material {
	mt := &Material{Label: label, Values: map[string]any{}}
	dv.Materials = append(dv.Materials, mt)
	return mt
}

func (dv *Device) NewObject(label string, kind render.ObjectKind) render.Object {
	ob := &Object{Label: label, Kind: kind, Buffers: map[string]render.Buffer{}, Visible: true}
	dv.Objects = append(dv.Objects, ob)
	return ob
}

func (dv *Device) Limits() render.Limits {
	return dv.DeviceLimits
}

func (dv *Device) Release() {
	for _, bf := range dv.Buffers {
		bf.Release()
	}
	for _, tx := range dv.Textures {
		tx.Release()
	}
	for _, ob := range dv.Objects {
		ob.Release()
	}
	dv.Buffers = nil
	dv.Textures = nil
	dv.Materials = nil
	dv.Objects = nil
}

// Upload records one Upload call on a [Buffer]: the byte offset and
// the number of bytes written.
type Upload struct {
	Offset int
	N      int
}

// Buffer is the offscreen [render.Buffer]. Data always holds the
// current contents, and Uploads records every upload made.
type Buffer struct {
	Label    string
	Data     []byte
	Uploads  []Upload
	Released bool
}

func (bf *Buffer) Upload(data []byte, offset int) error {
	if bf.Released {
		return fmt.Errorf("offscreen.Buffer Upload %s: buffer has been released", bf.Label)
	}
	if offset < 0 || offset+len(data) > len(bf.Data) {
		return fmt.Errorf("offscreen.Buffer Upload %s: range [%d, %d) out of bounds for size %d", bf.Label, offset, offset+len(data), len(bf.Data))
	}
	copy(bf.Data[offset:], data)
	bf.Uploads = append(bf.Uploads, Upload{Offset: offset, N: len(data)})
	if render.Debug {
		slog.Info("offscreen.Buffer Upload", "label", bf.Label, "offset", offset, "bytes", len(data))
	}
	return nil
}

func (bf *Buffer) Len() int {
	return len(bf.Data)
}

func (bf *Buffer) Release() {
	bf.Released = true
}

// ResetUploads clears the upload log, so a test can isolate the
// uploads from one operation.
func (bf *Buffer) ResetUploads() {
	bf.Uploads = nil
}

// Texture is the offscreen [render.Texture]. UploadCount counts the
// full-contents uploads made.
type Texture struct {
	Label       string
	Format      render.Format
	Width       int
	Height      int
	Depth       int
	Data        []byte
	UploadCount int
	Released    bool
}

func (tx *Texture) Upload(data []byte) error {
	if tx.Released {
		return fmt.Errorf("offscreen.Texture Upload %s: texture has been released", tx.Label)
	}
	if len(data) != len(tx.Data) {
		return fmt.Errorf("offscreen.Texture Upload %s: got %d bytes for texture of %d bytes", tx.Label, len(data), len(tx.Data))
	}
	copy(tx.Data, data)
	tx.UploadCount++
	if render.Debug {
		slog.Info("offscreen.Texture Upload", "label", tx.Label, "bytes", len(data))
	}
	return nil
}

func (tx *Texture) Size() (width, height, depth int) {
	return tx.Width, tx.Height, tx.Depth
}

func (tx *Texture) Release() {
	tx.Released = true
}

// Material is the offscreen [render.Material]. Values holds the
// current uniform values by name, and SetCount counts Set calls,
// so tests can verify that setting a value to itself still applies.
type Material struct {
	Label    string
	Values   map[string]any
	SetCount int
}

func (mt *Material) Set(name string, value any) error {
	mt.Values[name] = value
	mt.SetCount++
	return nil
}

func (mt *Material) Release() {
	mt.Values = nil
}

// Object is the offscreen [render.Object].
type Object struct {
	Label    string
	Kind     render.ObjectKind
	Buffers  map[string]render.Buffer
	Texture  render.Texture
	Material render.Material
	Offset   [3]float32
	Visible  bool

	// PickResult, when non-nil, is returned by [Object.Pick].
	// Tests set it to simulate hits.
	PickResult *render.PickInfo

	Released bool
}

func (ob *Object) SetBuffer(role string, b render.Buffer) {
	ob.Buffers[role] = b
}

func (ob *Object) SetTexture(t render.Texture) {
	ob.Texture = t
}

func (ob *Object) SetMaterial(m render.Material) {
	ob.Material = m
}

func (ob *Object) SetOffset(x, y, z float32) {
	ob.Offset = [3]float32{x, y, z}
}

func (ob *Object) SetVisible(on bool) {
	ob.Visible = on
}

func (ob *Object) Pick(x, y float32) (render.PickInfo, bool) {
	if ob.PickResult == nil {
		return render.PickInfo{}, false
	}
	return *ob.PickResult, true
}

func (ob *Object) Release() {
	ob.Released = true
	ob.Buffers = nil
	ob.Texture = nil
	ob.Material = nil
}
