// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a surface backend backed by gogpu/wgpu HAL
// textures.
//
// Surfaces are realized as GPU textures on a caller-supplied hal.Device:
//
//   - Window surfaces are double-buffered texture pairs. The package has
//     no swapchain integration, so the native window handle is carried as
//     an opaque value and presentation exchanges the texture roles.
//   - Pbuffer surfaces are single preserved textures. A client buffer of
//     kind ClientBufferTexture may wrap a caller-owned hal.Texture.
//   - Pixmap surfaces are not supported; the factory returns an error.
//
// The backend is registered explicitly, because it needs a device:
//
//	wgpu.Register(device, queue)
//	factory, err := drawable.FactoryByName("wgpu")
//
// Registration uses priority 100, so DefaultFactory prefers this backend
// over the software one once registered.
package wgpu
