// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

// NativeWindow is an opaque native window handle.
type NativeWindow uintptr

// NativePixmap is an opaque native pixmap handle.
type NativePixmap uintptr

// ClientBuffer is an externally allocated buffer wrapped as a pbuffer.
// Its concrete type is interpreted by the backend according to the
// ClientBufferKind passed alongside it.
type ClientBuffer any

// ClientBufferKind tags the concrete type of a ClientBuffer.
type ClientBufferKind uint8

const (
	// ClientBufferPixels is a CPU pixel buffer (e.g. *image.RGBA).
	ClientBufferPixels ClientBufferKind = iota

	// ClientBufferTexture is a GPU texture owned by the caller.
	ClientBufferTexture
)

// SwapBehavior describes what happens to the back buffer contents on swap.
// It is queried from the backend only after backend initialization; some
// backends do not know their swap behavior before that point.
type SwapBehavior uint8

const (
	// SwapBehaviorUnknown means the backend has not reported yet.
	SwapBehaviorUnknown SwapBehavior = iota

	// SwapBehaviorPreserved means the back buffer survives a swap.
	SwapBehaviorPreserved

	// SwapBehaviorDestroyed means the back buffer contents are undefined
	// after a swap.
	SwapBehaviorDestroyed
)

// String returns the swap behavior name.
func (b SwapBehavior) String() string {
	switch b {
	case SwapBehaviorPreserved:
		return "preserved"
	case SwapBehaviorDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Rect is a damage rectangle in surface coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// SyncValues are the presentation counters of a surface: the adjusted
// system time of the last swap (UST), the media stream counter (MSC) and
// the swap buffer counter (SBC).
type SyncValues struct {
	UST uint64
	MSC uint64
	SBC uint64
}

// SurfaceImpl is the backend interface behind a Surface.
//
// A SurfaceImpl performs the actual buffer allocation, swap and query
// operations for one concrete surface. It is exclusively owned by the
// Surface that created it and is never shared.
type SurfaceImpl interface {
	// Initialize realizes the native resource. Called exactly once,
	// before any other method.
	Initialize(display *Display) error

	// SwapBehavior reports what happens to back buffer contents on swap.
	// Only valid after Initialize.
	SwapBehavior() SwapBehavior

	// Swap presents the back buffer.
	Swap() error

	// SwapWithDamage presents the back buffer, hinting that only the
	// given rectangles changed.
	SwapWithDamage(rects []Rect) error

	// PostSubBuffer presents a sub-rectangle of the back buffer.
	PostSubBuffer(x, y, width, height int) error

	// IsPostSubBufferSupported reports backend support for PostSubBuffer.
	IsPostSubBufferSupported() bool

	// BindTexImage makes the given buffer of the surface available as
	// texture content.
	BindTexImage(buffer RenderBuffer) error

	// ReleaseTexImage ends texture consumption of the given buffer.
	ReleaseTexImage(buffer RenderBuffer) error

	// Width returns the backend-reported width in pixels.
	Width() int

	// Height returns the backend-reported height in pixels.
	Height() int

	// SyncValues returns the surface's presentation counters.
	SyncValues() (SyncValues, error)

	// SetSwapInterval sets the minimum number of vertical refreshes
	// between swaps.
	SetSwapInterval(interval int)

	// QuerySurfaceHandle returns a backend-specific native handle for the
	// given attribute, for callers that interoperate with platform APIs.
	QuerySurfaceHandle(attribute int) (uintptr, error)

	// Destroy frees all backend resources. The impl must not be used
	// after Destroy.
	Destroy()
}

// ImplFactory produces SurfaceImpl values for each surface kind.
//
// Factories receive the shared SurfaceState (for the config) and the
// resolved attribute set, plus the kind-specific native resource. A
// factory validates the combination and returns an error rather than a
// half-constructed impl.
type ImplFactory interface {
	// CreateWindowSurface creates the impl for a window-bound surface.
	CreateWindowSurface(state *SurfaceState, window NativeWindow, attrs Attributes) (SurfaceImpl, error)

	// CreatePbufferSurface creates the impl for an off-screen pbuffer.
	CreatePbufferSurface(state *SurfaceState, attrs Attributes) (SurfaceImpl, error)

	// CreatePbufferFromClientBuffer wraps an externally allocated buffer
	// as a pbuffer surface.
	CreatePbufferFromClientBuffer(state *SurfaceState, kind ClientBufferKind, buffer ClientBuffer, attrs Attributes) (SurfaceImpl, error)

	// CreatePixmapSurface creates the impl for a pixmap-bound surface.
	CreatePixmapSurface(state *SurfaceState, pixmap NativePixmap, attrs Attributes) (SurfaceImpl, error)
}
