// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import "github.com/gogpu/gputypes"

// Config is an immutable description of a chosen render-target and
// depth/stencil format. A Config is resolved by the platform layer before
// any surface is created; the drawable package only reads it.
//
// Configs are shared: many surfaces may reference the same Config, so a
// Config must never be mutated after construction.
type Config struct {
	// RenderTargetFormat is the pixel format of the back buffer.
	RenderTargetFormat gputypes.TextureFormat

	// DepthStencilFormat is the format of the depth/stencil buffer, or
	// gputypes.TextureFormatUndefined when the config carries none.
	DepthStencilFormat gputypes.TextureFormat

	// Samples is the multisample count. Zero means no multisampling and is
	// reported as 1 by AttachmentSamples.
	Samples int

	// SurfaceKinds is the set of surface kinds this config supports.
	SurfaceKinds SurfaceKindMask

	// Label is an optional debug label carried through to backend resources.
	Label string
}

// Supports reports whether the config supports surfaces of the given kind.
// A config with an empty kind mask supports every kind.
func (c *Config) Supports(kind SurfaceKind) bool {
	if c.SurfaceKinds == 0 {
		return true
	}
	return c.SurfaceKinds&kind.Mask() != 0
}

// SurfaceKindMask is a bit set of SurfaceKind values.
type SurfaceKindMask uint8

// Surface kind mask bits.
const (
	WindowMask SurfaceKindMask = 1 << iota
	PbufferMask
	PixmapMask
)
