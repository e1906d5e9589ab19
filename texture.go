// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

// BoundTexture is the capability a texture object must provide to consume
// a surface's back buffer as its sampled content.
//
// The binding between a surface and a texture is a mutual weak relation:
// neither side owns the other, and whichever side tears down first must
// synchronously clear the other side's half of the relation.
//
//   - Surface.BindTexImage calls BindTexImageFromSurface on the texture.
//   - Surface.ReleaseTexImage calls ReleaseTexImageFromSurface.
//   - A texture destroyed while still bound calls
//     Surface.ReleaseTexImageFromTexture to clear the surface's half
//     without touching the backend.
type BoundTexture interface {
	// BindTexImageFromSurface records the surface as this texture's
	// content source.
	BindTexImageFromSurface(s *Surface)

	// ReleaseTexImageFromSurface clears the texture's reference to the
	// surface it was bound to.
	ReleaseTexImageFromSurface()
}
