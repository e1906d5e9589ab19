// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import "github.com/gogpu/gputypes"

// AttachmentBinding selects which attachment of a framebuffer a query
// refers to.
type AttachmentBinding uint8

const (
	// AttachmentBack is the color attachment backed by the back buffer.
	AttachmentBack AttachmentBinding = iota

	// AttachmentDepthStencil is the combined depth/stencil attachment.
	AttachmentDepthStencil
)

// FramebufferAttachment is the capability contract a framebuffer uses to
// attach an object as a color or depth/stencil target without knowing its
// concrete kind. Surface implements it.
type FramebufferAttachment interface {
	// AttachmentSize returns the attachment extent.
	AttachmentSize() gputypes.Extent3D

	// AttachmentFormat returns the pixel format for the given binding.
	AttachmentFormat(binding AttachmentBinding) gputypes.TextureFormat

	// AttachmentSamples returns the multisample count, at least 1.
	AttachmentSamples() int
}

// DefaultFramebuffer is the render-target wrapper around a surface's
// backing store. It is created by Surface.Initialize, exclusively owned by
// its surface, and detached when the surface is released.
//
// The framebuffer holds no pixel storage of its own; it resolves size and
// formats through the surface's attachment capability, so a generic
// framebuffer consumer sees a surface exactly like any other attachment.
type DefaultFramebuffer struct {
	attachment FramebufferAttachment
	detached   bool
}

// newDefaultFramebuffer wraps the surface's backing store.
func newDefaultFramebuffer(attachment FramebufferAttachment) *DefaultFramebuffer {
	return &DefaultFramebuffer{attachment: attachment}
}

// Width returns the framebuffer width in pixels.
func (f *DefaultFramebuffer) Width() int {
	f.checkAttached()
	return int(f.attachment.AttachmentSize().Width)
}

// Height returns the framebuffer height in pixels.
func (f *DefaultFramebuffer) Height() int {
	f.checkAttached()
	return int(f.attachment.AttachmentSize().Height)
}

// ColorFormat returns the format of the color attachment.
func (f *DefaultFramebuffer) ColorFormat() gputypes.TextureFormat {
	f.checkAttached()
	return f.attachment.AttachmentFormat(AttachmentBack)
}

// DepthStencilFormat returns the format of the depth/stencil attachment,
// or gputypes.TextureFormatUndefined when the surface carries none.
func (f *DefaultFramebuffer) DepthStencilFormat() gputypes.TextureFormat {
	f.checkAttached()
	return f.attachment.AttachmentFormat(AttachmentDepthStencil)
}

// Samples returns the multisample count of the attachments.
func (f *DefaultFramebuffer) Samples() int {
	f.checkAttached()
	return f.attachment.AttachmentSamples()
}

// Detached reports whether the framebuffer has been detached from its
// backing store.
func (f *DefaultFramebuffer) Detached() bool {
	return f.detached
}

// detach releases the framebuffer's hold on backend resources. The surface
// calls this before destroying its backend implementation, so the
// framebuffer never outlives the buffer it attaches to. Idempotent.
func (f *DefaultFramebuffer) detach() {
	if f.detached {
		return
	}
	f.detached = true
	f.attachment = nil
}

func (f *DefaultFramebuffer) checkAttached() {
	if f.detached {
		panic("drawable: default framebuffer used after detach")
	}
}
