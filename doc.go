// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package drawable manages the lifetime of renderable surfaces.
//
// A Surface represents a drawable resource bound to a native window, an
// off-screen pixel buffer (pbuffer), or a native pixmap. The package tracks
// how many rendering contexts currently have a surface bound as current,
// defers destruction until no context still holds it, and optionally
// exposes the surface's back buffer as the sampled content of a texture.
//
// # Architecture
//
// The drawable package separates the lifecycle state machine from the
// platform code that actually allocates and presents buffers:
//
//   - Surface: the core entity. Owns a SurfaceImpl and a DefaultFramebuffer,
//     and tracks currency, destruction and texture binding.
//   - SurfaceImpl: the backend interface. Implementations perform buffer
//     allocation, swap and query operations for one concrete surface kind.
//   - ImplFactory: produces SurfaceImpl values for each surface kind.
//     Backends register factories via the registry (see RegisterBackend).
//
// # Lifecycle
//
// A surface moves through a fixed sequence of states:
//
//	construct -> Initialize -> (SetCurrent(true)/SetCurrent(false) loop)
//	          -> RequestDestroy -> released
//
// RequestDestroy does not free backend resources while any context still
// has the surface current. Release happens at the single point where the
// current count drains to zero after destruction was requested, or
// synchronously when the count is already zero.
//
// # Usage
//
//	factory, err := drawable.DefaultFactory()
//	if err != nil {
//		// no backend registered
//	}
//
//	surf, err := drawable.NewPbufferSurface(factory, cfg,
//		drawable.WithFixedSize(256, 256),
//		drawable.WithTextureFormat(drawable.TexFormatRGBA, drawable.TexTarget2D))
//	if err != nil {
//		// backend refused the attribute combination
//	}
//	if err := surf.Initialize(display); err != nil {
//		// native resource could not be realized
//	}
//
//	surf.SetCurrent(true)
//	// ... render, surf.Swap() ...
//	surf.SetCurrent(false)
//
//	surf.RequestDestroy()
//
// # Contract violations
//
// Backend failures are returned as errors. Violations of the calling
// protocol (unbalanced SetCurrent pairs, binding a texture twice, releasing
// an unbound texture) are programmer errors and panic instead of returning
// an error.
//
// By default the package produces no log output. Call SetLogger to enable
// structured logging of lifecycle transitions.
package drawable
