// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawable"
)

// Backend errors.
var (
	// ErrNilDevice is returned when a factory is created without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrInvalidSize is returned for negative surface dimensions.
	ErrInvalidSize = errors.New("wgpu: invalid surface size")

	// ErrPixmapUnsupported is returned by CreatePixmapSurface; the wgpu
	// backend has no native pixmap integration.
	ErrPixmapUnsupported = errors.New("wgpu: pixmap surfaces not supported")

	// ErrUnsupportedClientBuffer is returned when a client buffer is not a
	// hal.Texture.
	ErrUnsupportedClientBuffer = errors.New("wgpu: unsupported client buffer")

	// ErrNoTextureFormat is returned by BindTexImage on a surface created
	// without a texture format.
	ErrNoTextureFormat = errors.New("wgpu: surface has no texture format")

	// ErrNotBound is returned by ReleaseTexImage when no bind is active.
	ErrNotBound = errors.New("wgpu: tex image not bound")

	// ErrUnsupportedAttribute is returned by QuerySurfaceHandle; the wgpu
	// backend exposes no native handles.
	ErrUnsupportedAttribute = errors.New("wgpu: unsupported attribute")
)

// Factory creates HAL-texture-backed surface implementations on a single
// device. The device and queue are owned by the caller and shared by every
// surface the factory creates.
type Factory struct {
	device hal.Device
	queue  hal.Queue
}

// NewFactory creates a factory on the given device and queue.
func NewFactory(device hal.Device, queue hal.Queue) (*Factory, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Factory{device: device, queue: queue}, nil
}

// Register adds the wgpu backend to the drawable registry under the name
// "wgpu" at priority 100. Call once after device creation.
func Register(device hal.Device, queue hal.Queue) {
	drawable.RegisterBackend("wgpu", 100, func() (drawable.ImplFactory, error) {
		return NewFactory(device, queue)
	}, func() bool {
		return device != nil
	})
}

// CreateWindowSurface creates a double-buffered texture surface for the
// window. The handle is opaque to this backend; the surface is sized from
// the attribute set.
func (f *Factory) CreateWindowSurface(state *drawable.SurfaceState, window drawable.NativeWindow, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	if attrs.Width < 0 || attrs.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, attrs.Width, attrs.Height)
	}
	return &SurfaceImpl{
		kind:    drawable.KindWindow,
		state:   state,
		attrs:   attrs,
		factory: f,
	}, nil
}

// CreatePbufferSurface creates a single-texture off-screen surface sized
// from the attribute set.
func (f *Factory) CreatePbufferSurface(state *drawable.SurfaceState, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	if attrs.Width < 0 || attrs.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, attrs.Width, attrs.Height)
	}
	return &SurfaceImpl{
		kind:    drawable.KindPbuffer,
		state:   state,
		attrs:   attrs,
		factory: f,
	}, nil
}

// CreatePbufferFromClientBuffer wraps a caller-owned hal.Texture as a
// pbuffer surface. The texture stays owned by the caller and is not
// destroyed with the surface.
func (f *Factory) CreatePbufferFromClientBuffer(state *drawable.SurfaceState, kind drawable.ClientBufferKind, buffer drawable.ClientBuffer, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	if kind != drawable.ClientBufferTexture {
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedClientBuffer, kind)
	}
	tex, ok := buffer.(hal.Texture)
	if !ok || tex == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedClientBuffer, buffer)
	}
	return &SurfaceImpl{
		kind:    drawable.KindPbuffer,
		state:   state,
		attrs:   attrs,
		factory: f,
		client:  tex,
	}, nil
}

// CreatePixmapSurface always fails; see ErrPixmapUnsupported.
func (f *Factory) CreatePixmapSurface(state *drawable.SurfaceState, pixmap drawable.NativePixmap, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	return nil, ErrPixmapUnsupported
}

// Device returns the factory's device.
func (f *Factory) Device() hal.Device {
	return f.device
}

// Queue returns the factory's queue.
func (f *Factory) Queue() hal.Queue {
	return f.queue
}

// Ensure Factory implements the factory interface.
var _ drawable.ImplFactory = (*Factory)(nil)
