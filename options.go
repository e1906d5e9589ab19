// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

// TexFormat declares how a surface's buffer may be consumed as a texture.
// It applies to non-window surfaces only.
type TexFormat uint8

const (
	// TexFormatNone means the surface cannot be bound as a texture.
	TexFormatNone TexFormat = iota

	// TexFormatRGB exposes the buffer as an RGB texture.
	TexFormatRGB

	// TexFormatRGBA exposes the buffer as an RGBA texture.
	TexFormatRGBA
)

// TexTarget declares the texture target a surface's buffer binds to.
type TexTarget uint8

const (
	// TexTargetNone means the surface cannot be bound as a texture.
	TexTargetNone TexTarget = iota

	// TexTarget2D binds the buffer to a 2D texture target.
	TexTarget2D
)

// Orientation is a rotation hint for the surface contents, passed through
// to the backend unmodified.
type Orientation int

// RenderBuffer identifies which buffer of a surface rendering targets.
type RenderBuffer uint8

const (
	// BackBuffer targets the back buffer. This is the only mode the
	// drawable package currently produces.
	BackBuffer RenderBuffer = iota

	// SingleBuffer targets the front buffer directly.
	SingleBuffer
)

// Attributes is the resolved attribute set used to create a surface.
// It is built from SurfaceOption values by the variant constructors and
// passed to the backend factory unchanged.
type Attributes struct {
	// PostSubBuffer requests support for posting sub-rectangles of the
	// back buffer (see Surface.PostSubBuffer).
	PostSubBuffer bool

	// FlexibleCompatibility requests flexible-compatibility mode.
	FlexibleCompatibility bool

	// DirectComposition requests direct-composition mode.
	DirectComposition bool

	// FixedSize pins the surface size to Width x Height; size queries
	// bypass the backend when set.
	FixedSize bool

	// Width and Height are the caller-specified dimensions. They are only
	// meaningful when FixedSize is set, except for pbuffer surfaces where
	// they also size the buffer allocation.
	Width  int
	Height int

	// TextureFormat and TextureTarget declare texture interop capability.
	// Ignored for window surfaces.
	TextureFormat TexFormat
	TextureTarget TexTarget

	// Orientation is a rotation hint passed through unmodified.
	Orientation Orientation
}

// SurfaceOption configures a surface during creation.
//
// Example:
//
//	surf, err := drawable.NewPbufferSurface(factory, cfg,
//		drawable.WithFixedSize(256, 256),
//		drawable.WithPostSubBuffer())
type SurfaceOption func(*Attributes)

// WithPostSubBuffer requests sub-buffer posting support.
func WithPostSubBuffer() SurfaceOption {
	return func(a *Attributes) {
		a.PostSubBuffer = true
	}
}

// WithFlexibleCompatibility requests flexible-compatibility mode.
func WithFlexibleCompatibility() SurfaceOption {
	return func(a *Attributes) {
		a.FlexibleCompatibility = true
	}
}

// WithDirectComposition requests direct-composition mode.
func WithDirectComposition() SurfaceOption {
	return func(a *Attributes) {
		a.DirectComposition = true
	}
}

// WithFixedSize pins the surface to the given dimensions. Size queries on
// a fixed-size surface return these values regardless of backend rounding.
func WithFixedSize(width, height int) SurfaceOption {
	return func(a *Attributes) {
		a.FixedSize = true
		a.Width = width
		a.Height = height
	}
}

// WithSize sets the requested buffer dimensions without pinning the
// reported size to them. Pbuffer backends use this to size the allocation.
func WithSize(width, height int) SurfaceOption {
	return func(a *Attributes) {
		a.Width = width
		a.Height = height
	}
}

// WithTextureFormat declares that the surface's buffer may be consumed as
// a texture with the given format and target. Window surfaces ignore this.
func WithTextureFormat(format TexFormat, target TexTarget) SurfaceOption {
	return func(a *Attributes) {
		a.TextureFormat = format
		a.TextureTarget = target
	}
}

// WithOrientation sets the surface orientation hint.
func WithOrientation(o Orientation) SurfaceOption {
	return func(a *Attributes) {
		a.Orientation = o
	}
}

// resolveOptions applies opts to a zero Attributes value.
func resolveOptions(opts []SurfaceOption) Attributes {
	var attrs Attributes
	for _, opt := range opts {
		opt(&attrs)
	}
	return attrs
}
