// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

// SurfaceKind identifies what native resource backs a surface.
//
// The kind is fixed at construction time by the variant constructor
// (NewWindowSurface, NewPbufferSurface, NewPixmapSurface) and never
// changes. No kind adds behavior beyond how its backend is constructed.
type SurfaceKind uint8

const (
	// KindWindow is a surface bound to a native window.
	KindWindow SurfaceKind = iota

	// KindPbuffer is an off-screen pixel buffer surface.
	KindPbuffer

	// KindPixmap is a surface bound to a native pixmap.
	KindPixmap
)

// String returns the kind name.
func (k SurfaceKind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindPbuffer:
		return "pbuffer"
	case KindPixmap:
		return "pixmap"
	default:
		return "unknown"
	}
}

// Mask returns the kind as a SurfaceKindMask bit.
func (k SurfaceKind) Mask() SurfaceKindMask {
	return SurfaceKindMask(1) << k
}
