// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webgpu implements the render interfaces on a WebGPU device,
// using github.com/cogentcore/webgpu. It wraps an existing device and
// queue provided by the surrounding application, which remains
// responsible for adapter selection, surface configuration, and the
// render pass itself.
package webgpu

import (
	"fmt"

	"cogentcore.org/gpuplot/base/errors"
	"cogentcore.org/gpuplot/render"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	_ render.Device   = (*Device)(nil)
	_ render.Buffer   = (*Buffer)(nil)
	_ render.Texture  = (*Texture)(nil)
	_ render.Material = (*Material)(nil)
	_ render.Object   = (*Object)(nil)
)

// Device is the WebGPU [render.Device], wrapping a device and queue.
type Device struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	// DeviceLimits are the limits reported by [Device.Limits],
	// as supplied by the caller from its adapter.
	DeviceLimits render.Limits

	buffers  []*Buffer
	textures []*Texture
}

// NewDevice returns a render device wrapping the given WebGPU device
// and queue. limits should be the limits negotiated for the device;
// pass [render.DefaultLimits] when they have not been queried.
func NewDevice(dev *wgpu.Device, queue *wgpu.Queue, limits render.Limits) *Device {
	return &Device{Device: dev, Queue: queue, DeviceLimits: limits}
}

func (dv *Device) NewBuffer(label string, numBytes int) (render.Buffer, error) {
	buf, err := dv.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(numBytes),
		Label:            label,
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	bf := &Buffer{device: dv, buffer: buf, label: label, size: numBytes}
	dv.buffers = append(dv.buffers, bf)
	return bf, nil
}

func textureFormat(format render.Format) wgpu.TextureFormat {
	switch format {
	case render.FormatR32Float:
		return wgpu.TextureFormatR32Float
	case render.FormatRGBA8:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case render.FormatRGBA32Float:
		return wgpu.TextureFormatRGBA32Float
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}

func (dv *Device) NewTexture(label string, format render.Format, width, height, depth int) (render.Texture, error) {
	dim := wgpu.TextureDimension2D
	if depth > 1 {
		dim = wgpu.TextureDimension3D
	}
	t, err := dv.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: uint32(depth),
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     dim,
		Format:        textureFormat(format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		t.Release()
		return nil, err
	}
	tx := &Texture{device: dv, texture: t, view: vw, label: label,
		format: format, width: width, height: height, depth: depth}
	dv.textures = append(dv.textures, tx)
	return tx, nil
}

func (dv *Device) NewMaterial(label string) render.Material {
	return &Material{device: dv, label: label, slots: map[string]int{}}
}

func (dv *Device) NewObject(label string, kind render.ObjectKind) render.Object {
	return &Object{label: label, kind: kind, buffers: map[string]render.Buffer{}, visible: true}
}

func (dv *Device) Limits() render.Limits {
	return dv.DeviceLimits
}

// Release releases the buffers and textures created by this device.
// The wrapped WebGPU device and queue are owned by the caller and
// are not released.
func (dv *Device) Release() {
	for _, bf := range dv.buffers {
		bf.Release()
	}
	for _, tx := range dv.textures {
		tx.Release()
	}
	dv.buffers = nil
	dv.textures = nil
}

// Buffer is the WebGPU [render.Buffer].
type Buffer struct {
	device *Device
	buffer *wgpu.Buffer
	label  string
	size   int
}

func (bf *Buffer) Upload(data []byte, offset int) error {
	if bf.buffer == nil {
		return fmt.Errorf("webgpu.Buffer Upload %s: buffer has been released", bf.label)
	}
	if offset < 0 || offset+len(data) > bf.size {
		return fmt.Errorf("webgpu.Buffer Upload %s: range [%d, %d) out of bounds for size %d", bf.label, offset, offset+len(data), bf.size)
	}
	err := bf.device.Queue.WriteBuffer(bf.buffer, uint64(offset), data)
	if errors.Log(err) != nil {
		return err
	}
	return nil
}

func (bf *Buffer) Len() int {
	return bf.size
}

func (bf *Buffer) Release() {
	if bf.buffer != nil {
		bf.buffer.Release()
		bf.buffer = nil
	}
}

// Texture is the WebGPU [render.Texture].
type Texture struct {
	device  *Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	label   string
	format  render.Format
	width   int
	height  int
	depth   int
}

// View returns the texture view for binding in a render pass.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

func (tx *Texture) Upload(data []byte) error {
	if tx.texture == nil {
		return fmt.Errorf("webgpu.Texture Upload %s: texture has been released", tx.label)
	}
	bpp := tx.format.BytesPerPixel()
	want := tx.width * tx.height * tx.depth * bpp
	if len(data) != want {
		return fmt.Errorf("webgpu.Texture Upload %s: got %d bytes for texture of %d bytes", tx.label, len(data), want)
	}
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(bpp * tx.width),
			RowsPerImage: uint32(tx.height),
		},
		&wgpu.Extent3D{
			Width:              uint32(tx.width),
			Height:             uint32(tx.height),
			DepthOrArrayLayers: uint32(tx.depth),
		},
	)
	return nil
}

func (tx *Texture) Size() (width, height, depth int) {
	return tx.width, tx.height, tx.depth
}

func (tx *Texture) Release() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

// Material is the WebGPU [render.Material]. Named values are packed
// into 16 byte uniform slots in registration order, and the whole
// block is rewritten on every Set.
type Material struct {
	device *Device
	label  string
	slots  map[string]int
	block  []byte
	buffer *wgpu.Buffer
}

// Buffer returns the uniform buffer for binding in a render pass,
// or nil if no value has been set yet.
func (mt *Material) Buffer() *wgpu.Buffer {
	return mt.buffer
}

func (mt *Material) Set(name string, value any) error {
	slot, ok := mt.slots[name]
	if !ok {
		slot = len(mt.slots)
		mt.slots[name] = slot
		mt.block = append(mt.block, make([]byte, 16)...)
		if mt.buffer != nil {
			mt.buffer.Release()
			mt.buffer = nil
		}
	}
	var vec [4]float32
	switch v := value.(type) {
	case float32:
		vec[0] = v
	case float64:
		vec[0] = float32(v)
	case int:
		vec[0] = float32(v)
	case int32:
		vec[0] = float32(v)
	case uint32:
		vec[0] = float32(v)
	case bool:
		if v {
			vec[0] = 1
		}
	case [2]float32:
		vec[0], vec[1] = v[0], v[1]
	case [3]float32:
		vec[0], vec[1], vec[2] = v[0], v[1], v[2]
	case [4]float32:
		vec = v
	default:
		return fmt.Errorf("webgpu.Material Set %s: cannot encode value %v of type %T", mt.label, value, value)
	}
	copy(mt.block[slot*16:], wgpu.ToBytes(vec[:]))
	if mt.buffer == nil {
		buf, err := mt.device.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    mt.label,
			Contents: mt.block,
			Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if errors.Log(err) != nil {
			return err
		}
		mt.buffer = buf
		return nil
	}
	err := mt.device.Queue.WriteBuffer(mt.buffer, 0, mt.block)
	if errors.Log(err) != nil {
		return err
	}
	return nil
}

func (mt *Material) Release() {
	if mt.buffer != nil {
		mt.buffer.Release()
		mt.buffer = nil
	}
}

// Object is the WebGPU [render.Object]. It records the buffers,
// texture, material, offset, and visibility that a render pass binds
// when drawing. Picking requires a readback pass that is part of the
// surrounding engine, so Pick always reports no hit here; the
// offscreen driver supports simulated picking for tests.
type Object struct {
	label    string
	kind     render.ObjectKind
	buffers  map[string]render.Buffer
	texture  render.Texture
	material render.Material
	offset   [3]float32
	visible  bool
}

// Kind returns the object kind.
func (ob *Object) Kind() render.ObjectKind {
	return ob.kind
}

// Buffer returns the buffer attached under the given role, or nil.
func (ob *Object) Buffer(role string) render.Buffer {
	return ob.buffers[role]
}

// Visible returns whether the object should be drawn.
func (ob *Object) Visible() bool {
	return ob.visible
}

// Offset returns the object's world offset.
func (ob *Object) Offset() [3]float32 {
	return ob.offset
}

func (ob *Object) SetBuffer(role string, b render.Buffer) {
	ob.buffers[role] = b
}

func (ob *Object) SetTexture(t render.Texture) {
	ob.texture = t
}

func (ob *Object) SetMaterial(m render.Material) {
	ob.material = m
}

func (ob *Object) SetOffset(x, y, z float32) {
	ob.offset = [3]float32{x, y, z}
}

func (ob *Object) SetVisible(on bool) {
	ob.visible = on
}

func (ob *Object) Pick(x, y float32) (render.PickInfo, bool) {
	return render.PickInfo{}, false
}

func (ob *Object) Release() {
	ob.buffers = nil
	ob.texture = nil
	ob.material = nil
}
