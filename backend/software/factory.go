// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/drawable"
)

// Backend errors.
var (
	// ErrInvalidSize is returned for negative pbuffer dimensions.
	ErrInvalidSize = errors.New("software: invalid surface size")

	// ErrUnknownWindow is returned when a window handle was not created
	// with CreateWindow.
	ErrUnknownWindow = errors.New("software: unknown window handle")

	// ErrUnknownPixmap is returned when a pixmap handle was not registered
	// with RegisterPixmap.
	ErrUnknownPixmap = errors.New("software: unknown pixmap handle")

	// ErrUnsupportedClientBuffer is returned when a client buffer is not a
	// *image.RGBA.
	ErrUnsupportedClientBuffer = errors.New("software: unsupported client buffer")

	// ErrNoTextureFormat is returned by BindTexImage on a surface created
	// without a texture format.
	ErrNoTextureFormat = errors.New("software: surface has no texture format")

	// ErrNotBound is returned by ReleaseTexImage when no bind is active.
	ErrNotBound = errors.New("software: tex image not bound")

	// ErrPostSubBufferUnsupported is returned by PostSubBuffer on
	// off-screen surfaces.
	ErrPostSubBufferUnsupported = errors.New("software: post sub buffer not supported")

	// ErrUnsupportedAttribute is returned by QuerySurfaceHandle for
	// attributes the software backend does not expose.
	ErrUnsupportedAttribute = errors.New("software: unsupported attribute")
)

// AttributeNativeHandle is the QuerySurfaceHandle attribute that returns
// the process-local window or pixmap handle backing the surface.
const AttributeNativeHandle = 0x1

// Factory creates software surface implementations.
// The zero value is ready to use.
type Factory struct{}

// NewFactory returns a software factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateWindowSurface creates the impl for a window created with
// CreateWindow. The handle is resolved at Initialize time.
func (f *Factory) CreateWindowSurface(state *drawable.SurfaceState, window drawable.NativeWindow, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	return &SurfaceImpl{
		kind:      drawable.KindWindow,
		state:     state,
		attrs:     attrs,
		winHandle: window,
	}, nil
}

// CreatePbufferSurface creates the impl for an off-screen pbuffer sized
// from the attribute set.
func (f *Factory) CreatePbufferSurface(state *drawable.SurfaceState, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	if attrs.Width < 0 || attrs.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, attrs.Width, attrs.Height)
	}
	return &SurfaceImpl{
		kind:  drawable.KindPbuffer,
		state: state,
		attrs: attrs,
	}, nil
}

// CreatePbufferFromClientBuffer wraps a caller-owned *image.RGBA as a
// pbuffer surface. Only ClientBufferPixels buffers are supported.
func (f *Factory) CreatePbufferFromClientBuffer(state *drawable.SurfaceState, kind drawable.ClientBufferKind, buffer drawable.ClientBuffer, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	if kind != drawable.ClientBufferPixels {
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedClientBuffer, kind)
	}
	img, ok := buffer.(*image.RGBA)
	if !ok || img == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedClientBuffer, buffer)
	}
	return &SurfaceImpl{
		kind:   drawable.KindPbuffer,
		state:  state,
		attrs:  attrs,
		client: img,
	}, nil
}

// CreatePixmapSurface creates the impl for a pixmap registered with
// RegisterPixmap. The handle is resolved at Initialize time.
func (f *Factory) CreatePixmapSurface(state *drawable.SurfaceState, pixmap drawable.NativePixmap, attrs drawable.Attributes) (drawable.SurfaceImpl, error) {
	return &SurfaceImpl{
		kind:      drawable.KindPixmap,
		state:     state,
		attrs:     attrs,
		pixHandle: pixmap,
	}, nil
}

// Ensure Factory implements the factory interface.
var _ drawable.ImplFactory = (*Factory)(nil)

func init() {
	drawable.RegisterBackend("software", 10, func() (drawable.ImplFactory, error) {
		return NewFactory(), nil
	}, nil)
}
